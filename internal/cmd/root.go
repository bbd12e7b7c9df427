package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/polishai/polish/internal/ai"
	"github.com/polishai/polish/internal/config"
	"github.com/polishai/polish/internal/enhance"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "polish",
	Short: "AI text enhancement from the command line",
	Long: `polish rewrites text for clarity and engagement through an OpenAI-style
chat-completions API, with model fallback, quality validation, and a single
stricter retry when the first result scores poorly.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default: ~/.config/polish/config.yaml)")
	rootCmd.CompletionOptions.HiddenDefaultCmd = false
}

func configFilePath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPath()
}

func loadConfig() (*config.Config, error) {
	return config.Load(configFilePath())
}

func newLogger(level string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		zcfg.Level = zap.NewAtomicLevelAt(parsed)
	}
	return zcfg.Build()
}

func buildEnhancer(cfg *config.Config) (*enhance.Enhancer, *zap.Logger, error) {
	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}

	client, err := ai.NewClient(ai.Config{
		APIKey:            cfg.API.Key,
		BaseURL:           cfg.API.BaseURL,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
	})
	if err != nil {
		return nil, nil, err
	}

	cascade := ai.NewCascade(client, logger)
	return enhance.New(cascade, cfg.API.Model, logger), logger, nil
}
