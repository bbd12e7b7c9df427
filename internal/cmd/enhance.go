package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/polishai/polish/internal/config"
	"github.com/polishai/polish/internal/enhance"
	"github.com/polishai/polish/internal/history"
)

var (
	enhanceType         string
	enhanceTone         string
	enhanceAudience     string
	enhanceInstructions string
	enhanceFile         string
	enhanceJSON         bool
	enhanceNoHistory    bool
)

var enhanceCmd = &cobra.Command{
	Use:   "enhance [text]",
	Short: "Enhance a piece of text",
	Long: `Enhance rewrites the given text for clarity and engagement. The text comes
from the argument, --file, or stdin. The result is validated for quality and
retried once with stricter instructions when it scores poorly.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEnhance,
}

func init() {
	rootCmd.AddCommand(enhanceCmd)

	enhanceCmd.Flags().StringVarP(&enhanceType, "type", "t", "general", "Enhancement type (general, professional, creative, academic, concise, technical)")
	enhanceCmd.Flags().StringVar(&enhanceTone, "tone", "", "Tone (formal, casual, friendly, authoritative, persuasive)")
	enhanceCmd.Flags().StringVar(&enhanceAudience, "audience", "", "Target audience for the rewrite")
	enhanceCmd.Flags().StringVarP(&enhanceInstructions, "instructions", "i", "", "Extra instructions for the rewrite")
	enhanceCmd.Flags().StringVarP(&enhanceFile, "file", "f", "", "Read the text from a file ('-' for stdin)")
	enhanceCmd.Flags().BoolVar(&enhanceJSON, "json", false, "Print the full result as JSON")
	enhanceCmd.Flags().BoolVar(&enhanceNoHistory, "no-history", false, "Skip recording the run in local history")
}

func runEnhance(cmd *cobra.Command, args []string) error {
	text, err := readInputText(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	enhancer, logger, err := buildEnhancer(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	req := enhance.Request{
		Text:         text,
		Type:         enhance.ParseType(enhanceType),
		Tone:         enhance.ParseTone(enhanceTone),
		Audience:     enhanceAudience,
		Instructions: enhanceInstructions,
	}

	if !enhanceJSON {
		fmt.Printf("Enhancing %d characters as %s...\n", utf8.RuneCountInString(text), req.Type)
	}

	result, err := enhancer.Enhance(context.Background(), req)
	if err != nil {
		return err
	}

	recordRun(cfg, req, result)

	if enhanceJSON {
		return printJSON(result)
	}

	printResult(result)
	return nil
}

func readInputText(args []string) (string, error) {
	if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
		return args[0], nil
	}

	if enhanceFile != "" && enhanceFile != "-" {
		data, err := os.ReadFile(enhanceFile)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}

	if enhanceFile == "-" {
		return readStdin()
	}

	stat, err := os.Stdin.Stat()
	if err == nil && stat.Mode()&os.ModeCharDevice == 0 {
		return readStdin()
	}

	return "", fmt.Errorf("no input text: pass it as an argument, via --file, or on stdin")
}

func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func recordRun(cfg *config.Config, req enhance.Request, result *enhance.Result) {
	if enhanceNoHistory || cfg.History.Disabled {
		return
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	if _, err := store.Insert(context.Background(), history.RecordOf(req, result)); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record run: %v\n", err)
	}
}

func printJSON(result *enhance.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func printResult(result *enhance.Result) {
	fmt.Println()
	fmt.Println(result.EnhancedText)
	fmt.Println()
	fmt.Printf("Model: %s\n", result.ModelUsed)
	fmt.Printf("Quality: %d/100 (confidence %d)\n", result.QualityScore, result.Confidence)
	fmt.Printf("Length: %d -> %d characters\n", result.OriginalLength, result.EnhancedLength)
	fmt.Printf("Time: %dms in %d stage(s)\n", result.ProcessingTimeMs, result.Stages)
	fmt.Println("Improvements:")
	for _, imp := range result.Improvements {
		fmt.Printf("  - %s\n", imp)
	}
	if !result.Valid {
		fmt.Println("Note: the result did not pass all quality checks; review before use.")
	}
}
