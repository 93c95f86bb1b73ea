// Command boatyard-seed imports a TOML fixture into a boatyard storage backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"boatyard/internal/config"
	"boatyard/internal/storage"
)

func main() {
	var (
		configPath  string
		storageType string
		storagePath string
		storageURL  string
		fixturePath string
	)
	flag.StringVar(&configPath, "config", "", "Path to the config file (default "+config.DefaultPath()+")")
	flag.StringVar(&storageType, "storage", "", "Storage backend: memory, sqlite or postgres")
	flag.StringVar(&storagePath, "db", "", "SQLite database file or memory snapshot file")
	flag.StringVar(&storageURL, "url", "", "PostgreSQL connection URL")
	flag.StringVar(&fixturePath, "fixture", "", "Fixture file to import (default: built-in demo data)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, configPath, storageType, storagePath, storageURL, fixturePath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, storageType, storagePath, storageURL, fixturePath string) error {
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.NewConfigServiceAt(configPath).Load()
	if err != nil {
		return err
	}
	cfg.ApplyEnv()

	if storageType != "" {
		cfg.Storage.Type = storageType
	}
	if storagePath != "" {
		cfg.Storage.Path = storagePath
	}
	if storageURL != "" {
		cfg.Storage.URL = storageURL
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Storage.Type == config.StorageMemory && cfg.Storage.Path == "" {
		return fmt.Errorf("memory storage needs -db to write a snapshot")
	}

	fixture := storage.DemoFixture()
	if fixturePath != "" {
		if fixture, err = storage.LoadFixture(fixturePath); err != nil {
			return err
		}
	}

	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("opening %s storage: %w", cfg.Storage.Type, err)
	}
	defer store.Close()

	before, err := store.CountBoats(ctx)
	if err != nil {
		return err
	}
	if err := store.Import(ctx, fixture); err != nil {
		return err
	}
	after, err := store.CountBoats(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d boats into %s storage (%d total)\n", after-before, cfg.Storage.Type, after)
	return nil
}
