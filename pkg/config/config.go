// Package config loads the tidytree configuration file.
//
// Configuration lives in a TOML file under the user's config directory
// (~/.config/tidytree/config.toml, honoring XDG_CONFIG_HOME). Every field
// has a sensible default, so the file is optional: [LoadDefault] returns
// the defaults when no file exists. Values from the file are validated
// before use; command-line flags override file values at the CLI layer.
//
// # Example file
//
//	[layout]
//	vertical_gap = 24.0
//	horizontal_gap = 16.0
//
//	[render]
//	style = "sketch"
//	scale = 2.0
//
//	[cache]
//	disabled = false
//
//	[server]
//	addr = ":8080"
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/sibaiper/tidy-tree/pkg/tidy"
)

// appName is the directory name used under the config root.
const appName = "tidytree"

// Config is the full configuration tree decoded from the TOML file.
// Struct tags drive both TOML decoding and validation.
type Config struct {
	Layout  LayoutConfig  `toml:"layout"`
	Measure MeasureConfig `toml:"measure"`
	Render  RenderConfig  `toml:"render"`
	Cache   CacheConfig   `toml:"cache"`
	Server  ServerConfig  `toml:"server"`
}

// LayoutConfig holds the spacing defaults applied when a document or
// flag does not specify gaps.
type LayoutConfig struct {
	VerticalGap   float64 `toml:"vertical_gap" validate:"gte=0"`
	HorizontalGap float64 `toml:"horizontal_gap" validate:"gte=0"`
}

// MeasureConfig holds the auto-sizing expressions used for nodes that
// carry no dimensions. Empty strings mean the built-in defaults.
type MeasureConfig struct {
	WidthExpr  string `toml:"width_expr"`
	HeightExpr string `toml:"height_expr"`
}

// RenderConfig holds rendering defaults.
type RenderConfig struct {
	Style   string  `toml:"style" validate:"oneof=simple sketch"`
	Padding float64 `toml:"padding" validate:"gte=0"`
	Scale   float64 `toml:"scale" validate:"gt=0,lte=8"`
}

// CacheConfig holds caching defaults for the CLI and server.
type CacheConfig struct {
	Disabled bool   `toml:"disabled"`
	Dir      string `toml:"dir"`

	// Redis settings are used by the server; the CLI uses the file cache.
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db" validate:"gte=0"`
}

// ServerConfig holds settings for the tidytree API server.
type ServerConfig struct {
	Addr          string `toml:"addr" validate:"required"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Layout: LayoutConfig{
			VerticalGap:   tidy.DefaultVerticalGap,
			HorizontalGap: tidy.DefaultHorizontalGap,
		},
		Render: RenderConfig{
			Style:   "simple",
			Padding: 24.0,
			Scale:   2.0,
		},
		Server: ServerConfig{
			Addr:          ":8080",
			MongoDatabase: "tidytree",
		},
	}
}

// Path returns the config file location, honoring XDG_CONFIG_HOME.
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads and validates the config file at path. Fields absent from
// the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault loads the config from the standard location, falling back
// to defaults when the file does not exist.
func LoadDefault() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks field constraints via the validator struct tags.
func Validate(cfg Config) error {
	return validator.New().Struct(cfg)
}
