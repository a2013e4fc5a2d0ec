package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/dheerajverma96/ReviewCodeApp/internal/config"
	"github.com/dheerajverma96/ReviewCodeApp/internal/demo"
	"github.com/dheerajverma96/ReviewCodeApp/internal/github"
	"github.com/dheerajverma96/ReviewCodeApp/internal/logger"
	"github.com/dheerajverma96/ReviewCodeApp/internal/review"
	"github.com/dheerajverma96/ReviewCodeApp/internal/ui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	demoMode := false
	for _, arg := range os.Args[1:] {
		switch arg {
		case "--version", "version":
			fmt.Printf("reviewcode %s (commit: %s, built: %s)\n", version, commit, date)
			os.Exit(0)
		case "--demo":
			demoMode = true
		}
	}

	// A .env beside the binary is a convenience, not a requirement.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !demoMode {
		if err := cfg.ValidateToken(); err != nil {
			fmt.Fprintf(os.Stderr, "%v; starting in demo mode\n", err)
			demoMode = true
		} else if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if demoMode {
		cfg.Owner, cfg.Repo = demo.Coordinates()
	}

	log, err := logger.New(config.LogFile(), cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	var provider review.Provider
	if demoMode {
		provider = demo.NewService()
	} else {
		provider = github.NewClient(cfg.Token)
	}
	log.Infow("starting", "version", version, "repo", cfg.Owner+"/"+cfg.Repo, "demo", demoMode)

	store := review.NewStore()
	agg := review.NewAggregator(provider, cfg.Owner, cfg.Repo, log)
	coord := review.NewCoordinator(store, provider, cfg.Owner, cfg.Repo, log)

	p := tea.NewProgram(ui.NewApp(store, agg, coord, cfg, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
