package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Store.Driver != "sqlite" {
		t.Errorf("default driver = %q", cfg.Store.Driver)
	}
	if cfg.Effects.ParticleCount != 50 {
		t.Errorf("default particle count = %d", cfg.Effects.ParticleCount)
	}
	if cfg.Site.IconsDir != "data/icons" {
		t.Errorf("default icons dir = %q", cfg.Site.IconsDir)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yml")

	original := DefaultConfig()
	original.Addr = ":9999"
	original.Site.DataURL = "https://cdn.example.org/site/"
	original.Site.HighlightAuthor = "Jane Doe"
	original.Effects.Palette = []string{"#000000"}
	original.Store.Driver = "memory"

	if err := original.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.Addr != ":9999" {
		t.Errorf("addr = %q", loaded.Addr)
	}
	if loaded.Site.DataURL != original.Site.DataURL {
		t.Errorf("data_url = %q", loaded.Site.DataURL)
	}
	if loaded.Site.HighlightAuthor != "Jane Doe" {
		t.Errorf("highlight_author = %q", loaded.Site.HighlightAuthor)
	}
	if len(loaded.Effects.Palette) != 1 || loaded.Effects.Palette[0] != "#000000" {
		t.Errorf("palette = %v", loaded.Effects.Palette)
	}
	if loaded.Store.Driver != "memory" {
		t.Errorf("store.driver = %q", loaded.Store.Driver)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
	if cfg.Site.ContentPath != "data/site-data.yaml" {
		t.Errorf("content_path = %q", cfg.Site.ContentPath)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FOLIO_STORE__DRIVER", "redis")
	t.Setenv("FOLIO_EFFECTS__PARTICLE_COUNT", "12")
	t.Setenv("FOLIO_LOG_LEVEL", "debug")
	t.Setenv("PORT", "3000")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Driver != "redis" {
		t.Errorf("store.driver = %q", cfg.Store.Driver)
	}
	if cfg.Effects.ParticleCount != 12 {
		t.Errorf("particle_count = %d", cfg.Effects.ParticleCount)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log_level = %q", cfg.LogLevel)
	}
	if cfg.Addr != ":3000" {
		t.Errorf("PORT should set addr, got %q", cfg.Addr)
	}
}

func TestLoadIconOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yml")
	body := "site:\n  icon_overrides:\n    phone:\n      fill: none\n      stroke: currentColor\n      stroke_width: \"1.5\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	ov := cfg.Overrides()
	if ov["phone"].StrokeWidth != "1.5" || ov["phone"].Fill != "none" {
		t.Errorf("phone override = %+v", ov["phone"])
	}
	if _, ok := ov["email"]; !ok {
		t.Error("built-in email override missing")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no skeleton", func(c *Config) { c.Site.Skeleton = "" }},
		{"no data", func(c *Config) { c.Site.DataDir = ""; c.Site.DataURL = "" }},
		{"bad driver", func(c *Config) { c.Store.Driver = "mongo" }},
		{"sqlite without path", func(c *Config) { c.Store.SQLitePath = "" }},
		{"negative particles", func(c *Config) { c.Effects.ParticleCount = -1 }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestPortraitBounds(t *testing.T) {
	cfg := DefaultConfig()
	b := cfg.Effects.PortraitBounds.Bounds()
	if b.Container.W != 480 || b.Element.H != 320 {
		t.Errorf("default bounds = %+v", b)
	}

	cfg.Effects.PortraitBounds.ElementW = -1
	if err := cfg.Validate(); err == nil {
		t.Error("negative portrait size should not validate")
	}
}
