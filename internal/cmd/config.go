package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/polishai/polish/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage polish configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configFilePath()
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists at %s", path)
		}

		if err := config.DefaultConfig().Save(path); err != nil {
			return err
		}

		fmt.Printf("Wrote default config to %s\n", path)
		fmt.Println("Set your API key with: polish config set-key <key>")
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		redacted := *cfg
		if redacted.API.Key != "" {
			redacted.API.Key = "********"
		}

		data, err := yaml.Marshal(&redacted)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}

		fmt.Print(string(data))
		return nil
	},
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key <api-key>",
	Short: "Store the API key in the config file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configFilePath()

		// File values only; env-derived values must not get baked in.
		cfg, err := config.LoadFile(path)
		if err != nil {
			return err
		}

		cfg.API.Key = args[0]
		if err := cfg.Save(path); err != nil {
			return err
		}

		fmt.Printf("Updated API key in %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetKeyCmd)
}
