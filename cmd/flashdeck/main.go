package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/flashdeck/flashdeck/internal/config"
	"github.com/flashdeck/flashdeck/internal/session"
	"github.com/flashdeck/flashdeck/internal/storage"
	"github.com/flashdeck/flashdeck/internal/store"
	"github.com/flashdeck/flashdeck/internal/tui"
	"github.com/flashdeck/flashdeck/pkg/logger"
	"github.com/flashdeck/flashdeck/pkg/version"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	dataFile := flag.String("data-file", "", "path to the deck data file (overrides config)")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Print(version.GetDetailedVersionInfo())
		os.Exit(0)
	}

	log := logger.New(
		logger.WithPrefix("[flashdeck] "),
		logger.WithOutput(os.Stderr),
	)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Error loading config: %v", err)
	}

	if *dataFile != "" {
		cfg.DataFile = *dataFile
	}
	if *verbose {
		cfg.Verbose = true
	}
	log.SetVerbose(cfg.Verbose)
	log.Debug("Using data file: %s", cfg.DataFile)

	decks := store.New(storage.NewFileStore(cfg.DataFile), log)
	decks.Load()

	debounce := time.Duration(cfg.DebounceMillis) * time.Millisecond
	sess := session.New(decks, session.WithDebounceDelay(debounce))

	if err := tui.Run(decks, sess, log, debounce); err != nil {
		log.Fatal("Error running UI: %v", err)
	}
}
