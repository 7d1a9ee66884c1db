package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/azagthoth/metallum/internal/config"
	mhttp "github.com/azagthoth/metallum/internal/http"
	"github.com/azagthoth/metallum/internal/metallum"
	"github.com/azagthoth/metallum/internal/tui"
)

func main() {
	configFlag := flag.String("config", "", "Path to config file")
	flag.Parse()

	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := settings.OpenCache()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening cache: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// The alternate screen owns the terminal, so keep fetch logging quiet.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	client := metallum.NewClient(mhttp.NewClient(mhttp.Config{
		BaseURL:   settings.BaseURL,
		UserAgent: settings.UserAgent,
		Interval:  settings.RequestInterval(),
		Store:     store,
		Logger:    logger,
	}))

	if err := tui.Run(client, settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
