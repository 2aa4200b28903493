package main

import (
	"fmt"
	"net"
	"os"

	"github.com/de-tools/rate-atlas/pkg/runtime/app"
	"github.com/de-tools/rate-atlas/pkg/server"
	"github.com/de-tools/rate-atlas/pkg/services/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgPath   string
	credsPath string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Rate Atlas",
		RunE:  runServer,
	}

	defaultPath, _ := config.DefaultCredentialsPath()

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to the rate-atlas config file")
	rootCmd.Flags().StringVar(&credsPath, "credentials", defaultPath,
		"Path to the FRED credentials file (default is $HOME/.fredcfg)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := app.NewLogger(cfg.Log.Level)
	if err != nil {
		return err
	}
	ctx := logger.WithContext(cmd.Context())

	if creds, err := config.NewCredentials(credsPath); err == nil {
		profiles, _ := creds.GetProfiles()
		logger.Info().Msgf("Credentials found at `%s`, profiles: %v, using `%s`.", credsPath, profiles, cfg.Fred.Profile)
	}

	a, err := app.New(ctx, cfg, credsPath)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Dashboard.Prefetch(ctx); err != nil {
		return fmt.Errorf("failed to warm series cache: %w", err)
	}

	host := cfg.Server.Host
	if v := os.Getenv("SERVER_HOST"); v != "" {
		host = v
	}
	port := cfg.Server.Port
	if v := os.Getenv("SERVER_PORT"); v != "" {
		port = v
	}

	api := server.NewWebAPI(server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Dashboard: a.Dashboard,
			Metrics:   a.Metrics,
			Logger:    logger,
		},
	})

	return api.Start()
}
