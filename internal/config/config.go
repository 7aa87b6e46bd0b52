// Package config loads the optional kwpdf YAML configuration file and the
// KWPDF_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"pkt.systems/kwpdf"
)

// Environment variables read by the command.
const (
	EnvConfig = "KWPDF_CONFIG"
	EnvFonts  = "KWPDF_FONTS"
)

// MaxInputSize limits the config file size.
var MaxInputSize = 1 << 20

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrInvalidConfig  = errors.New("invalid config")
)

// Config mirrors the YAML file. Every field is optional.
type Config struct {
	Fonts  []string               `yaml:"fonts"`
	Theme  string                 `yaml:"theme"`
	Labels string                 `yaml:"labels"`
	Page   PageConfig             `yaml:"page"`
	Styles map[string]StyleConfig `yaml:"styles"`
	Log    LogConfig              `yaml:"log"`
}

// PageConfig sets the PDF page.
type PageConfig struct {
	Size   string  `yaml:"size"`   // "A4", "Letter", ...
	Margin float64 `yaml:"margin"` // centimeters
}

// StyleConfig overrides single values of a theme style. Nil fields keep the
// theme value.
type StyleConfig struct {
	Size       *float64 `yaml:"size"`
	Color      string   `yaml:"color"` // "#rrggbb" or "#rgb"
	SpaceAfter *float64 `yaml:"spaceAfter"`
	Leading    *float64 `yaml:"leading"`
	LeftIndent *float64 `yaml:"leftIndent"`
}

// LogConfig sets logging.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads and validates the config file at path. Unknown keys are
// rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML config data. Empty data yields an empty
// config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if len(strings.TrimSpace(string(data))) == 0 {
		return &cfg, nil
	}
	if len(data) > MaxInputSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrConfigParse, len(data), MaxInputSize)
	}
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks names, colors and numeric ranges.
func (c *Config) Validate() error {
	if c.Theme != "" {
		if _, ok := kwpdf.ThemeByName(c.Theme); !ok {
			return fmt.Errorf("%w: unknown theme %q", ErrInvalidConfig, c.Theme)
		}
	}
	if c.Labels != "" {
		if _, ok := kwpdf.LabelsByName(c.Labels); !ok {
			return fmt.Errorf("%w: unknown labels %q", ErrInvalidConfig, c.Labels)
		}
	}
	if c.Page.Margin < 0 {
		return fmt.Errorf("%w: page.margin must not be negative", ErrInvalidConfig)
	}
	for name, st := range c.Styles {
		if !knownStyle(name) {
			return fmt.Errorf("%w: unknown style %q", ErrInvalidConfig, name)
		}
		if st.Color != "" {
			if _, err := kwpdf.ParseColor(st.Color); err != nil {
				return fmt.Errorf("%w: styles.%s.color: %v", ErrInvalidConfig, name, err)
			}
		}
		if st.Size != nil && *st.Size <= 0 {
			return fmt.Errorf("%w: styles.%s.size must be positive", ErrInvalidConfig, name)
		}
		for key, v := range map[string]*float64{"spaceAfter": st.SpaceAfter, "leading": st.Leading, "leftIndent": st.LeftIndent} {
			if v != nil && *v < 0 {
				return fmt.Errorf("%w: styles.%s.%s must not be negative", ErrInvalidConfig, name, key)
			}
		}
	}
	return nil
}

// ApplyStyles returns base with the configured overrides applied.
func (c *Config) ApplyStyles(base kwpdf.Styles) (kwpdf.Styles, error) {
	out := base
	for name, sc := range c.Styles {
		id := kwpdf.StyleID(name)
		if !knownStyle(name) {
			return base, fmt.Errorf("%w: unknown style %q", ErrInvalidConfig, name)
		}
		st := out.Lookup(id)
		if sc.Size != nil {
			st.Size = *sc.Size
		}
		if sc.Color != "" {
			rgb, err := kwpdf.ParseColor(sc.Color)
			if err != nil {
				return base, fmt.Errorf("%w: styles.%s.color: %v", ErrInvalidConfig, name, err)
			}
			st.Color = rgb
		}
		if sc.SpaceAfter != nil {
			st.SpaceAfter = *sc.SpaceAfter
		}
		if sc.Leading != nil {
			st.Leading = *sc.Leading
		}
		if sc.LeftIndent != nil {
			st.LeftIndent = *sc.LeftIndent
		}
		out.Set(id, st)
	}
	return out, nil
}

// PathFromEnv returns the config path named by KWPDF_CONFIG.
func PathFromEnv() string {
	return strings.TrimSpace(os.Getenv(EnvConfig))
}

// FontsFromEnv splits KWPDF_FONTS on the OS path list separator. Empty
// entries are dropped.
func FontsFromEnv() []string {
	value := os.Getenv(EnvFonts)
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var out []string
	for _, p := range filepath.SplitList(value) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func knownStyle(name string) bool {
	for _, id := range kwpdf.StyleIDs() {
		if string(id) == name {
			return true
		}
	}
	return false
}
