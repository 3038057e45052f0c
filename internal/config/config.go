package config

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/designable/internal/config/loader"
	"github.com/dshills/designable/internal/validation"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DESIGNABLE_"

// DefaultPath is the configuration file read when no path is given.
const DefaultPath = "designable.toml"

// Config is the application configuration.
type Config struct {
	Log       LogConfig        `toml:"log"`
	Designer  DesignerConfig   `toml:"designer"`
	Shortcuts []ShortcutConfig `toml:"shortcuts,omitempty" validate:"dive"`
	Document  DocumentConfig   `toml:"document"`
	Metrics   MetricsConfig    `toml:"metrics"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `toml:"level" validate:"oneof=debug info warn error"`
	Format string `toml:"format" validate:"oneof=console json"`
	// File receives log output. Empty discards logs, since the terminal
	// belongs to the designer.
	File string `toml:"file"`
}

// DesignerConfig configures the designer.
type DesignerConfig struct {
	RootComponent string   `toml:"root_component" validate:"required"`
	Screen        string   `toml:"screen" validate:"oneof=PC Mobile Responsive Sketch"`
	DragThreshold int      `toml:"drag_threshold" validate:"gte=0"`
	Workspaces    []string `toml:"workspaces" validate:"min=1,dive,required"`
	Effects       []string `toml:"effects,omitempty" validate:"dive,required"`
}

// ShortcutConfig binds a key sequence to a named action.
type ShortcutConfig struct {
	Name string   `toml:"name" validate:"required"`
	Keys []string `toml:"keys" validate:"min=1,dive,required"`
}

// DocumentConfig names the tree document loaded into the first workspace.
type DocumentConfig struct {
	Path  string `toml:"path"`
	Watch bool   `toml:"watch"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `toml:"enabled"`
	Addr    string `toml:"addr" validate:"required_if=Enabled true"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Designer: DesignerConfig{
			RootComponent: "Root",
			Screen:        "PC",
			DragThreshold: 1,
			Workspaces:    []string{"main"},
		},
		Metrics: MetricsConfig{
			Addr: "127.0.0.1:9464",
		},
	}
}

// Validate checks c against its validation tags.
func (c Config) Validate() error {
	return validation.Struct(c)
}

// defaultMap renders Default as the lowest configuration layer.
func defaultMap() (map[string]any, error) {
	data, err := toml.Marshal(Default())
	if err != nil {
		return nil, err
	}
	return loader.Parse("<defaults>", data)
}

// decode converts merged layers into a Config.
func decode(layers map[string]any) (Config, error) {
	data, err := toml.Marshal(layers)
	if err != nil {
		return Config{}, fmt.Errorf("encoding merged config: %w", err)
	}
	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}
