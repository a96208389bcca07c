package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	if cfg.Server.Port != 8787 {
		t.Errorf("Port = %d", cfg.Server.Port)
	}
	if cfg.Catalog.BaseURL != "https://api.pokemontcg.io/v2" {
		t.Errorf("BaseURL = %q", cfg.Catalog.BaseURL)
	}
}

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Cache.TTL != "5m" {
		t.Errorf("TTL = %q", cfg.Cache.TTL)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := DefaultConfig()
	cfg.Server.Port = 9191
	cfg.Catalog.APIKey = "test-key"
	cfg.Cache.TTL = "90s"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.Server.Port != 9191 {
		t.Errorf("Port = %d", loaded.Server.Port)
	}
	if loaded.Catalog.APIKey != "test-key" {
		t.Errorf("APIKey = %q", loaded.Catalog.APIKey)
	}
	if ttl, err := loaded.GetCacheTTL(); err != nil || ttl != 90*time.Second {
		t.Errorf("GetCacheTTL() = %v, %v", ttl, err)
	}
}

func TestLoadFromRejectsBrokenTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("server = not toml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"zero port", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, true},
		{"empty base URL", func(c *Config) { c.Catalog.BaseURL = "" }, true},
		{"bad timeout", func(c *Config) { c.Catalog.Timeout = "soon" }, true},
		{"negative rate limit", func(c *Config) { c.Catalog.RateLimit = -1 }, true},
		{"bad cache TTL", func(c *Config) { c.Cache.TTL = "5 minutes" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWatchDeliversUpdatedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := DefaultConfig().SaveTo(path); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := make(chan *Config, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = Watch(ctx, path, func(cfg *Config) {
			select {
			case updates <- cfg:
			default:
			}
		})
	}()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)

	changed := DefaultConfig()
	changed.Catalog.APIKey = "rotated"
	if err := changed.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-updates:
		if cfg.Catalog.APIKey != "rotated" {
			t.Errorf("APIKey = %q", cfg.Catalog.APIKey)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for config update")
	}

	cancel()
	<-done
}

func TestWatchSurvivesFileReplacement(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := DefaultConfig().SaveTo(path); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := make(chan *Config, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = Watch(ctx, path, func(cfg *Config) {
			select {
			case updates <- cfg:
			default:
			}
		})
	}()

	time.Sleep(100 * time.Millisecond)

	// Editors save by moving the file aside and writing a replacement. The
	// watcher must ride out the window where the path does not exist.
	if err := os.Rename(path, path+".old"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(500 * time.Millisecond)

	replaced := DefaultConfig()
	replaced.Catalog.APIKey = "replaced"
	if err := replaced.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-updates:
		if cfg.Catalog.APIKey != "replaced" {
			t.Errorf("APIKey = %q", cfg.Catalog.APIKey)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher went silent after file replacement")
	}

	cancel()
	<-done
}
