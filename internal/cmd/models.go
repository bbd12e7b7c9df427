package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/polishai/polish/internal/ai"
	"github.com/polishai/polish/internal/enhance"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Show the model fallback chain and sampling profiles",
	Long: `Models prints the ordered fallback chain the enhancer walks and the
sampling parameters applied for each enhancement type.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Fallback chain (tried in order):")
		for i, model := range ai.FallbackChain() {
			fmt.Printf("  %d. %s\n", i+1, model)
		}

		fmt.Println()
		fmt.Println("Sampling by enhancement type:")
		for _, t := range enhance.Types() {
			params := ai.SamplingFor(string(t))
			fmt.Printf("  %-13s temperature=%.1f max_tokens=%d top_p=%.1f frequency_penalty=%.1f presence_penalty=%.1f\n",
				t, params.Temperature, params.MaxTokens, params.TopP, params.FrequencyPenalty, params.PresencePenalty)
		}
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
