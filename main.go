package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"boatyard/internal/config"
	"boatyard/internal/dataservice"
	"boatyard/internal/eventbus"
	"boatyard/internal/storage"
	"boatyard/internal/telemetry"
	"boatyard/internal/ui"
	"boatyard/internal/ui/services/reviews"
)

// e2eEnv makes the app announce readiness for the terminal tests
const e2eEnv = "BOATYARD_E2E_TEST"

func main() {
	// Parse command line arguments
	var (
		configPath  string
		storageType string
		storagePath string
		policy      string
		noSeed      bool
	)
	flag.StringVar(&configPath, "config", "", "Path to the config file (default "+config.DefaultPath()+")")
	flag.StringVar(&configPath, "c", "", "Path to the config file (shorthand)")
	flag.StringVar(&storageType, "storage", "", "Storage backend: memory, sqlite or postgres")
	flag.StringVar(&storagePath, "db", "", "SQLite database file or memory snapshot file")
	flag.StringVar(&policy, "empty-id-policy", "", "Reviews behaviour on an empty boat id: retain or clear")
	flag.BoolVar(&noSeed, "no-seed", false, "Do not load demo data into an empty store")
	flag.Parse()

	if configPath == "" {
		configPath = config.DefaultPath()
	}
	configSvc := config.NewConfigServiceAt(configPath)
	cfg, err := loadOrCreateConfig(configSvc)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Flags win over the file
	if storageType != "" {
		cfg.Storage.Type = storageType
	}
	if storagePath != "" {
		cfg.Storage.Path = storagePath
	}
	if policy != "" {
		cfg.Reviews.EmptyIDPolicy = policy
	}
	if noSeed {
		cfg.Storage.Seed = false
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Set up logging
	if cfg.Logging.File == "" {
		log.SetOutput(io.Discard)
	} else if logFile, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666); err != nil {
		log.SetOutput(io.Discard)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}
	log.Printf("Using config %s", configPath)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := run(ctx, cfg); err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")
}

func run(ctx context.Context, cfg *config.Config) error {
	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("opening %s storage: %w", cfg.Storage.Type, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Failed to close storage: %v", err)
		}
	}()

	if cfg.Storage.Seed {
		seeded, err := storage.SeedIfEmpty(ctx, store, storage.DemoFixture())
		if err != nil {
			return err
		}
		if seeded {
			log.Printf("Seeded empty %s storage with demo data", cfg.Storage.Type)
		}
	}

	tp, err := telemetry.New(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Printf("Failed to flush traces: %v", err)
		}
	}()

	var data dataservice.Service = store
	if tp.Enabled() {
		data = dataservice.NewTraced(store, tp.Tracer())
		log.Printf("Tracing data service calls to %s", cfg.Tracing.Endpoint)
	}

	emptyIDPolicy, err := reviews.ParsePolicy(cfg.Reviews.EmptyIDPolicy)
	if err != nil {
		return err
	}

	bus := eventbus.New()
	if os.Getenv(e2eEnv) != "" {
		bus.Subscribe(eventbus.EventAppReady, func(eventbus.DomainEvent) {
			fmt.Fprint(os.Stderr, "__READY__")
		})
	}

	model := ui.NewModel(ctx, bus, data, ui.Options{
		Storage:       cfg.Storage.Type,
		EmptyIDPolicy: emptyIDPolicy,
		ToastTTL:      time.Duration(cfg.UI.ToastSeconds) * time.Second,
		ShowPictures:  cfg.UI.ShowPictures,
		PageSize:      cfg.UI.PageSize,
	})
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	log.Printf("Starting UI with %s storage...", cfg.Storage.Type)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

// loadOrCreateConfig loads the config file, writing the defaults when it does not exist yet
func loadOrCreateConfig(configSvc config.ConfigService) (*config.Config, error) {
	cfg, err := configSvc.LoadFromPath(configSvc.Path())
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg = config.DefaultConfig()
	if err := configSvc.Save(cfg); err != nil {
		log.Printf("Failed to save config: %v", err)
	}
	cfg.ApplyEnv()
	return cfg, nil
}
