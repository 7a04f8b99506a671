package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Config is the covview.yml (or covview.toml) configuration.
type Config struct {
	Version   string          `yaml:"version,omitempty" toml:"version,omitempty" json:"version,omitempty" jsonschema:"description=Configuration version (e.g. '1.0')"`
	Axes      AxesConfig      `yaml:"axes,omitempty" toml:"axes,omitempty" json:"axes,omitempty" jsonschema:"description=Y axis synchronisation"`
	Highlight HighlightConfig `yaml:"highlight,omitempty" toml:"highlight,omitempty" json:"highlight,omitempty" jsonschema:"description=Feature table row highlighting"`
	Colors    ColorsConfig    `yaml:"colors,omitempty" toml:"colors,omitempty" json:"colors,omitempty" jsonschema:"description=Trace colours"`
	Relayout  RelayoutConfig  `yaml:"relayout,omitempty" toml:"relayout,omitempty" json:"relayout,omitempty" jsonschema:"description=Zoom and pan handling"`
	Table     TableConfig     `yaml:"table,omitempty" toml:"table,omitempty" json:"table,omitempty" jsonschema:"description=Feature table source"`
	Server    ServerConfig    `yaml:"server,omitempty" toml:"server,omitempty" json:"server,omitempty" jsonschema:"description=Callback server"`

	// Extensions captures all other top-level keys (for example `logging`).
	Extensions map[string]interface{} `yaml:",inline" toml:"-" json:"-" jsonschema:"-"`
}

// AxisGroup pairs a trace x-axis reference with the y axis it rescales.
type AxisGroup struct {
	X string `yaml:"x" toml:"x" json:"x" jsonschema:"pattern=^x[0-9]*$,description=Trace x-axis reference (x or x3)"`
	Y string `yaml:"y" toml:"y" json:"y" jsonschema:"pattern=^yaxis[0-9]*$,description=Layout y-axis key (yaxis or yaxis3)"`
}

// AxesConfig configures y axis auto-ranging.
type AxesConfig struct {
	Groups  []AxisGroup `yaml:"groups,omitempty" toml:"groups,omitempty" json:"groups,omitempty" jsonschema:"description=Axis groups rescaled together"`
	Floor   float64     `yaml:"floor,omitempty" toml:"floor,omitempty" json:"floor,omitempty" jsonschema:"minimum=0,description=Minimum y maximum when auto-ranging"`
	Padding float64     `yaml:"padding,omitempty" toml:"padding,omitempty" json:"padding,omitempty" jsonschema:"minimum=0,maximum=1,description=Fractional padding around the y range"`
}

// Palette holds the four row background tokens.
type Palette struct {
	VisibleEven string `yaml:"visible_even,omitempty" toml:"visible_even,omitempty" json:"visible_even,omitempty"`
	VisibleOdd  string `yaml:"visible_odd,omitempty" toml:"visible_odd,omitempty" json:"visible_odd,omitempty"`
	NeutralEven string `yaml:"neutral_even,omitempty" toml:"neutral_even,omitempty" json:"neutral_even,omitempty"`
	NeutralOdd  string `yaml:"neutral_odd,omitempty" toml:"neutral_odd,omitempty" json:"neutral_odd,omitempty"`
}

// HighlightConfig configures the feature table highlighter.
type HighlightConfig struct {
	HeaderRows int     `yaml:"header_rows,omitempty" toml:"header_rows,omitempty" json:"header_rows,omitempty" jsonschema:"minimum=0,description=Rendered rows above the first data row"`
	Palette    Palette `yaml:"palette,omitempty" toml:"palette,omitempty" json:"palette,omitempty"`
}

// ColorsConfig configures trace colours.
type ColorsConfig struct {
	Traces      map[string]string `yaml:"traces,omitempty" toml:"traces,omitempty" json:"traces,omitempty" jsonschema:"description=Initial colour per trace (legend group)"`
	FillOpacity float64           `yaml:"fill_opacity,omitempty" toml:"fill_opacity,omitempty" json:"fill_opacity,omitempty" jsonschema:"minimum=0,maximum=1"`
	LineTraces  []string          `yaml:"line_traces,omitempty" toml:"line_traces,omitempty" json:"line_traces,omitempty" jsonschema:"description=Trace names coloured by line instead of fill"`
}

// RelayoutConfig configures zoom and pan handling.
type RelayoutConfig struct {
	PanMargin     float64 `yaml:"pan_margin,omitempty" toml:"pan_margin,omitempty" json:"pan_margin,omitempty" jsonschema:"minimum=0,maximum=1,description=Fraction of the window that triggers a redraw near the loaded edge"`
	WindowPadding float64 `yaml:"window_padding,omitempty" toml:"window_padding,omitempty" json:"window_padding,omitempty" jsonschema:"minimum=0,description=Fraction of the window loaded on each side"`
	DefaultWindow int     `yaml:"default_window,omitempty" toml:"default_window,omitempty" json:"default_window,omitempty" jsonschema:"minimum=1,description=Window width after a contig change"`
}

// TableConfig configures the feature table.
type TableConfig struct {
	Path         string `yaml:"path,omitempty" toml:"path,omitempty" json:"path,omitempty" jsonschema:"description=Feature table file (.json, .yaml or .xlsx)"`
	FocusPadding int    `yaml:"focus_padding,omitempty" toml:"focus_padding,omitempty" json:"focus_padding,omitempty" jsonschema:"minimum=0,description=Bases shown around a clicked feature"`
}

// ServerConfig configures the callback server.
type ServerConfig struct {
	Host        string `yaml:"host,omitempty" toml:"host,omitempty" json:"host,omitempty"`
	Port        int    `yaml:"port,omitempty" toml:"port,omitempty" json:"port,omitempty" jsonschema:"minimum=0,maximum=65535"`
	ReadTimeout string `yaml:"read_timeout,omitempty" toml:"read_timeout,omitempty" json:"read_timeout,omitempty" jsonschema:"description=Go duration string"`
}

// Default values applied by SetDefaults.
const (
	DefaultVersion       = "1.0"
	DefaultFloor         = 10.0
	DefaultPadding       = 0.01
	DefaultHeaderRows    = 2
	DefaultFillOpacity   = 0.4
	DefaultPanMargin     = 0.25
	DefaultWindowPadding = 0.5
	DefaultWindow        = 2000
	DefaultFocusPadding  = 250
	DefaultHost          = "127.0.0.1"
	DefaultPort          = 8080
	DefaultReadTimeout   = "10s"
)

// DefaultPalette is the Bootstrap token set used by the dashboard theme.
var DefaultPalette = Palette{
	VisibleEven: "rgba(var(--bs-primary-rgb), 0.2)",
	VisibleOdd:  "rgba(var(--bs-primary-rgb), 0.3)",
	NeutralEven: "var(--bs-tertiary-bg)",
	NeutralOdd:  "var(--bs-secondary-bg)",
}

// SetDefaults fills every unset field.
func (c *Config) SetDefaults() {
	if c.Version == "" {
		c.Version = DefaultVersion
	}

	if len(c.Axes.Groups) == 0 {
		c.Axes.Groups = []AxisGroup{
			{X: "x", Y: "yaxis"},
			{X: "x3", Y: "yaxis3"},
		}
	}
	if c.Axes.Floor == 0 {
		c.Axes.Floor = DefaultFloor
	}
	if c.Axes.Padding == 0 {
		c.Axes.Padding = DefaultPadding
	}

	if c.Highlight.HeaderRows == 0 {
		c.Highlight.HeaderRows = DefaultHeaderRows
	}
	p := &c.Highlight.Palette
	if p.VisibleEven == "" {
		p.VisibleEven = DefaultPalette.VisibleEven
	}
	if p.VisibleOdd == "" {
		p.VisibleOdd = DefaultPalette.VisibleOdd
	}
	if p.NeutralEven == "" {
		p.NeutralEven = DefaultPalette.NeutralEven
	}
	if p.NeutralOdd == "" {
		p.NeutralOdd = DefaultPalette.NeutralOdd
	}

	if c.Colors.FillOpacity == 0 {
		c.Colors.FillOpacity = DefaultFillOpacity
	}
	if len(c.Colors.LineTraces) == 0 {
		c.Colors.LineTraces = []string{"Mean", "Median"}
	}

	if c.Relayout.PanMargin == 0 {
		c.Relayout.PanMargin = DefaultPanMargin
	}
	if c.Relayout.WindowPadding == 0 {
		c.Relayout.WindowPadding = DefaultWindowPadding
	}
	if c.Relayout.DefaultWindow == 0 {
		c.Relayout.DefaultWindow = DefaultWindow
	}

	if c.Table.FocusPadding == 0 {
		c.Table.FocusPadding = DefaultFocusPadding
	}

	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = DefaultReadTimeout
	}
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// Address returns the host:port the server listens on.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded covview.yml into the provided target struct. The target must be a pointer.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// A missing key leaves the target zero-valued.
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
