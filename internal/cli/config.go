package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/soromap/soromap/internal/registry"
)

// Config holds the TOML-configurable settings. Flags override file values;
// file values override defaults.
type Config struct {
	Registry RegistryConfig `toml:"registry"`
	Window   WindowConfig   `toml:"window"`
	Export   ExportConfig   `toml:"export"`
}

// RegistryConfig selects the registry API and an optional network filter.
type RegistryConfig struct {
	URL     string `toml:"url"`
	Network string `toml:"network"`
}

// WindowConfig sizes the interactive window.
type WindowConfig struct {
	Width   int  `toml:"width"`
	Height  int  `toml:"height"`
	ShowFPS bool `toml:"show_fps"`
}

// ExportConfig sets default snapshot paths.
type ExportConfig struct {
	SVGPath string `toml:"svg_path"`
	PNGPath string `toml:"png_path"`
}

// defaultConfig returns the built-in settings.
func defaultConfig() Config {
	url := registry.DefaultBaseURL
	if env := os.Getenv(registry.EnvBaseURL); env != "" {
		url = env
	}
	return Config{
		Registry: RegistryConfig{URL: url},
		Window:   WindowConfig{Width: 1280, Height: 800},
	}
}

// defaultConfigPath is the conventional config location under the user
// config directory.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "soromap", "config.toml")
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing file is not an error; defaults apply.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if path == "" {
		path = defaultConfigPath()
		if path == "" {
			return cfg, nil
		}
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	return cfg, nil
}
