// Package main runs the binder companion REST server: catalog search with
// caching, binder grid management, and export endpoints over a local sqlite
// database.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/pokebinder/pokebinder/internal/api"
	"github.com/pokebinder/pokebinder/internal/api/handlers"
	"github.com/pokebinder/pokebinder/internal/config"
	"github.com/pokebinder/pokebinder/internal/search"
	"github.com/pokebinder/pokebinder/internal/storage"
	"github.com/pokebinder/pokebinder/internal/tcg"
	"github.com/pokebinder/pokebinder/internal/version"
)

var (
	port       = flag.Int("port", 0, "API server port (overrides config)")
	configPath = flag.String("config", "", "Config file path (default: ~/.pokebinder/config.toml)")
	dbPath     = flag.String("db-path", "", "Database path (default: ~/.pokebinder/data.db)")
)

func main() {
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "binderd",
	})

	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	cfgPath := *configPath
	if cfgPath == "" {
		var err error
		cfgPath, err = config.DefaultPath()
		if err != nil {
			logger.Fatal("failed to resolve config path", "err", err)
		}
	}

	cfg, err := config.LoadFrom(cfgPath)
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", "err", err)
	}

	// Environment overrides keep the credential out of the config file.
	if key := os.Getenv("POKEBINDER_API_KEY"); key != "" {
		cfg.Catalog.APIKey = key
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	finalDBPath := *dbPath
	if finalDBPath == "" {
		finalDBPath = cfg.Database.Path
	}
	if finalDBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			logger.Fatal("failed to get home directory", "err", err)
		}
		finalDBPath = filepath.Join(home, ".pokebinder", "data.db")
	}
	if err := os.MkdirAll(filepath.Dir(finalDBPath), 0o755); err != nil {
		logger.Fatal("failed to create database directory", "err", err)
	}

	dbConfig := storage.DefaultConfig(finalDBPath)
	dbConfig.AutoMigrate = true
	db, err := storage.Open(dbConfig)
	if err != nil {
		logger.Fatal("failed to open database", "err", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("error closing database", "err", err)
		}
	}()
	logger.Info("database ready", "path", finalDBPath)

	timeout, err := cfg.GetCatalogTimeout()
	if err != nil {
		logger.Fatal("invalid catalog timeout", "err", err)
	}
	var rateDelay time.Duration
	if cfg.Catalog.RateLimit > 0 {
		rateDelay = time.Duration(float64(time.Second) / cfg.Catalog.RateLimit)
	}
	client := tcg.NewClient(tcg.Options{
		BaseURL:   cfg.Catalog.BaseURL,
		APIKey:    cfg.Catalog.APIKey,
		Timeout:   timeout,
		RateLimit: rateDelay,
	})

	ttl, err := cfg.GetCacheTTL()
	if err != nil {
		logger.Fatal("invalid cache TTL", "err", err)
	}
	searchService := search.NewService(client, search.NewCache(ttl), logger)

	binderRepo := storage.NewBinderRepository(db.Conn())
	templateRepo := storage.NewTemplateRepository(db.Conn())

	backupDir := cfg.Backup.Dir
	if backupDir == "" {
		backupDir = filepath.Join(filepath.Dir(finalDBPath), "backups")
	}
	backupManager := storage.NewBackupManager(db.Path())

	server := api.NewServer(&api.Config{Port: cfg.Server.Port}, &api.Handlers{
		Search:   handlers.NewSearchHandler(searchService, client, logger),
		Binder:   handlers.NewBinderHandler(binderRepo, templateRepo),
		Template: handlers.NewTemplateHandler(templateRepo),
		System:   handlers.NewSystemHandler(backupManager, backupDir, db.Path(), version.GetVersion()),
	}, logger)

	if err := server.Start(); err != nil {
		logger.Fatal("failed to start API server", "err", err)
	}
	logger.Info("server running", "url", "http://localhost", "port", server.Port())

	// Hot-reload the catalog credential on config edits. Other settings
	// (port, cache TTL) take effect on restart.
	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	if _, err := os.Stat(cfgPath); err == nil {
		go func() {
			err := config.Watch(watchCtx, cfgPath, func(next *config.Config) {
				logger.Info("config reloaded", "path", cfgPath)
				key := next.Catalog.APIKey
				if envKey := os.Getenv("POKEBINDER_API_KEY"); envKey != "" {
					key = envKey
				}
				client.SetAPIKey(key)
			})
			if err != nil && watchCtx.Err() == nil {
				logger.Warn("config watcher stopped", "err", err)
			}
		}()
	}

	// Block until interrupted, then drain in-flight requests.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
	logger.Info("goodbye")
}
