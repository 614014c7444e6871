// Package config loads folio's settings: built-in defaults, then an optional
// YAML file, then FOLIO_* environment variables.
package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/Zachkp/folio/internal/effects"
	"github.com/Zachkp/folio/internal/icon"
	"github.com/Zachkp/folio/internal/store"
)

// EnvPrefix marks environment overrides. A double underscore separates
// nesting levels: FOLIO_STORE__DRIVER sets store.driver.
const EnvPrefix = "FOLIO_"

// Config is the top-level configuration, corresponding to folio.yml.
type Config struct {
	Addr     string        `yaml:"addr" koanf:"addr"`
	LogLevel string        `yaml:"log_level" koanf:"log_level"`
	Site     SiteConfig    `yaml:"site" koanf:"site"`
	Effects  EffectsConfig `yaml:"effects" koanf:"effects"`
	Store    store.Options `yaml:"store" koanf:"store"`
}

// SiteConfig says where the page skeleton and data documents live.
type SiteConfig struct {
	// Skeleton is the HTML page the content is rendered into.
	Skeleton string `yaml:"skeleton" koanf:"skeleton"`
	// StaticDir is served under /static.
	StaticDir string `yaml:"static_dir" koanf:"static_dir"`
	// DataDir is the local root for data documents and icons. Ignored when
	// DataURL is set.
	DataDir string `yaml:"data_dir" koanf:"data_dir"`
	// DataURL fetches data documents over HTTP instead.
	DataURL          string                   `yaml:"data_url" koanf:"data_url"`
	ContentPath      string                   `yaml:"content_path" koanf:"content_path"`
	PublicationsPath string                   `yaml:"publications_path" koanf:"publications_path"`
	IconsDir         string                   `yaml:"icons_dir" koanf:"icons_dir"`
	HighlightAuthor  string                   `yaml:"highlight_author" koanf:"highlight_author"`
	IconOverrides    map[string]icon.Override `yaml:"icon_overrides" koanf:"icon_overrides"`
}

// EffectsConfig tunes the decorative effects.
type EffectsConfig struct {
	ParticleCount int      `yaml:"particle_count" koanf:"particle_count"`
	Palette       []string `yaml:"palette" koanf:"palette"`
	// SettleMillis is the pause before the portrait floats again after a
	// drag.
	SettleMillis int `yaml:"settle_millis" koanf:"settle_millis"`
	// PortraitBounds clamps position writes that arrive without the
	// client's measured sizes.
	PortraitBounds BoundsConfig `yaml:"portrait_bounds" koanf:"portrait_bounds"`
}

// BoundsConfig is the portrait container and element size in px.
type BoundsConfig struct {
	ContainerW float64 `yaml:"container_w" koanf:"container_w"`
	ContainerH float64 `yaml:"container_h" koanf:"container_h"`
	ElementW   float64 `yaml:"element_w" koanf:"element_w"`
	ElementH   float64 `yaml:"element_h" koanf:"element_h"`
}

// Bounds converts the sizes for clamping.
func (b BoundsConfig) Bounds() effects.Bounds {
	return effects.Bounds{
		Container: effects.Size{W: b.ContainerW, H: b.ContainerH},
		Element:   effects.Size{W: b.ElementW, H: b.ElementH},
	}
}

// DefaultConfig returns a Config with the layout the site ships with.
func DefaultConfig() *Config {
	return &Config{
		Addr:     ":8080",
		LogLevel: "info",
		Site: SiteConfig{
			Skeleton:         "web/index.html",
			StaticDir:        "web/static",
			DataDir:          "web",
			ContentPath:      "data/site-data.yaml",
			PublicationsPath: "data/publications/data/publications.yaml",
			IconsDir:         "data/icons",
			HighlightAuthor:  "Wenbo Lu",
		},
		Effects: EffectsConfig{
			ParticleCount: 50,
			Palette:       []string{"#6366f1", "#8b5cf6", "#ec4899"},
			SettleMillis:  100,
			PortraitBounds: BoundsConfig{
				ContainerW: 480, ContainerH: 480,
				ElementW: 320, ElementH: 320,
			},
		},
		Store: store.Options{
			Driver:      "sqlite",
			SQLitePath:  "var/folio.db",
			RedisAddr:   "localhost:6379",
			RedisPrefix: "folio:",
		},
	}
}

// Load reads configuration from path if it exists, then overlays FOLIO_*
// environment variables. PORT, when set, wins over addr.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validLevels = []string{"debug", "info", "warn", "error"}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Site.Skeleton == "" {
		return fmt.Errorf("site.skeleton is required")
	}
	if c.Site.DataDir == "" && c.Site.DataURL == "" {
		return fmt.Errorf("one of site.data_dir or site.data_url is required")
	}
	if c.Site.ContentPath == "" || c.Site.PublicationsPath == "" {
		return fmt.Errorf("site.content_path and site.publications_path are required")
	}
	if !slices.Contains(store.Drivers, c.Store.Driver) {
		return fmt.Errorf("invalid store.driver %q: must be one of %s", c.Store.Driver, strings.Join(store.Drivers, ", "))
	}
	if c.Store.Driver == "sqlite" && c.Store.SQLitePath == "" {
		return fmt.Errorf("store.sqlite_path is required for the sqlite driver")
	}
	if c.Effects.ParticleCount < 0 {
		return fmt.Errorf("effects.particle_count must be non-negative")
	}
	if c.Effects.SettleMillis < 0 {
		return fmt.Errorf("effects.settle_millis must be non-negative")
	}
	if b := c.Effects.PortraitBounds; b.ContainerW < 0 || b.ContainerH < 0 || b.ElementW < 0 || b.ElementH < 0 {
		return fmt.Errorf("effects.portrait_bounds sizes must be non-negative")
	}
	if !slices.Contains(validLevels, c.LogLevel) {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return nil
}

// Overrides returns the icon presentation table: the built-in entries with
// any configured ones layered on top.
func (c *Config) Overrides() icon.Overrides {
	ov := icon.DefaultOverrides()
	for name, o := range c.Site.IconOverrides {
		ov[name] = o
	}
	return ov
}
