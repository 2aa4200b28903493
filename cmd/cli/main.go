package main

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/rate-atlas/pkg/runtime/app"
	"github.com/de-tools/rate-atlas/pkg/runtime/terminal"
	"github.com/de-tools/rate-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/rate-atlas/pkg/services/config"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.WarnLevel).
		With().Timestamp().Logger()

	cli := terminal.NewCLI(terminal.Options{
		Loader: load,
		Output: os.Stdout,
	})

	if err := cli.ExecuteContext(logger.WithContext(context.Background())); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func load(ctx context.Context, configPath string) (*commands.Runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	credsPath, err := config.DefaultCredentialsPath()
	if err != nil && cfg.Fred.APIKey == "" {
		return nil, fmt.Errorf("failed to locate credentials file: %w", err)
	}

	a, err := app.New(ctx, cfg, credsPath)
	if err != nil {
		return nil, err
	}

	return &commands.Runtime{
		Dashboard: a.Dashboard,
		NewExporter: func(ctx context.Context, bucket string) (commands.Exporter, error) {
			exp, err := a.NewExporter(ctx, bucket)
			if err != nil {
				return nil, err
			}
			return exp, nil
		},
		Close: a.Close,
	}, nil
}
