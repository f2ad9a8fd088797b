package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/crisis-matcher/dispatch/internal/api"
	"github.com/crisis-matcher/dispatch/internal/app"
	"github.com/crisis-matcher/dispatch/internal/model"
	"github.com/crisis-matcher/dispatch/internal/session"
)

var (
	apiURL     string
	configPath string
	dbPath     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dispatch",
		Short: "Terminal client for the Crisis Matcher dispatch backend",
		Long: `Dispatch is a terminal client for crisis response coordinators.
It submits free-text crisis messages for AI urgency scoring and resource
matching, and browses registered NGOs and their available resources.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVar(&apiURL, "api-url", "", "Backend API base URL (overrides config and DISPATCH_API_URL)")
	rootCmd.Flags().StringVar(&configPath, "config", "", "Config file path (default ~/.config/crisis-dispatch/config.yaml)")
	rootCmd.Flags().StringVar(&dbPath, "db", "", "Session database path")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	// A .env file is optional; environment variables win either way.
	_ = godotenv.Load()

	if configPath == "" {
		configPath = model.DefaultConfigPath()
	}
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if dbPath != "" {
		cfg.SessionDBPath = dbPath
	}

	sess, err := session.NewSQLiteStore(cfg.SessionDBPath)
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}
	defer sess.Close()

	client := api.NewClient(cfg.API.BaseURL, sess,
		time.Duration(cfg.API.TimeoutSec)*time.Second)

	services := app.Services{
		Auth:      api.NewAuthService(client),
		Crises:    api.NewCrisisService(client),
		NGOs:      api.NewNGOService(client),
		Resources: api.NewResourceService(client),
	}

	p := tea.NewProgram(app.New(sess, services), tea.WithAltScreen())

	// A 401 anywhere lands the user back on the login view.
	client.OnUnauthorized = func() {
		p.Send(app.UnauthorizedMsg{})
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
