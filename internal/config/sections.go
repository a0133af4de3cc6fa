package config

import (
	"github.com/dshills/paper/internal/logging"
)

// EditorConfig holds editing behaviour.
type EditorConfig struct {
	// DefaultType is the block type used for new paragraphs. Empty keeps
	// the schema's own default.
	DefaultType string `toml:"default_type" yaml:"default_type" env:"DEFAULT_TYPE"`

	// IndentWidth is the number of columns per indent level.
	IndentWidth int `toml:"indent_width" yaml:"indent_width" env:"INDENT_WIDTH"`

	// ShowHandles draws the drag handle column.
	ShowHandles bool `toml:"show_handles" yaml:"show_handles" env:"SHOW_HANDLES"`

	// Mouse enables mouse input.
	Mouse bool `toml:"mouse" yaml:"mouse" env:"MOUSE"`

	// StartupScript is a Lua file run once at startup.
	StartupScript string `toml:"startup_script" yaml:"startup_script" env:"STARTUP_SCRIPT"`
}

// BlockTypeConfig declares or overrides a block type.
type BlockTypeConfig struct {
	Type         string         `toml:"type" yaml:"type"`
	Label        string         `toml:"label" yaml:"label"`
	Marker       string         `toml:"marker" yaml:"marker"`
	HasText      *bool          `toml:"has_text" yaml:"has_text"`
	Continuation *bool          `toml:"continuation" yaml:"continuation"`
	Attrs        map[string]any `toml:"attrs" yaml:"attrs"`
}

// SchemaConfig holds the block type definitions.
type SchemaConfig struct {
	// IncludeBuiltin starts from the built-in types.
	IncludeBuiltin bool `toml:"include_builtin" yaml:"include_builtin" env:"INCLUDE_BUILTIN"`

	// Types are added, or override built-in types with the same name.
	Types []BlockTypeConfig `toml:"types" yaml:"types" envPrefix:"TYPES_"`
}

// KeymapConfig holds user key bindings.
type KeymapConfig struct {
	// Bindings maps key specs to action names. An empty action unbinds
	// the key.
	Bindings map[string]string `toml:"bindings" yaml:"bindings"`

	// DisableDefaults drops the built-in bindings.
	DisableDefaults bool `toml:"disable_defaults" yaml:"disable_defaults" env:"DISABLE_DEFAULTS"`
}

// ThemeConfig holds hex colours for the terminal renderer.
type ThemeConfig struct {
	Text       string `toml:"text" yaml:"text" env:"TEXT"`
	Muted      string `toml:"muted" yaml:"muted" env:"MUTED"`
	Accent     string `toml:"accent" yaml:"accent" env:"ACCENT"`
	Handle     string `toml:"handle" yaml:"handle" env:"HANDLE"`
	Indicator  string `toml:"indicator" yaml:"indicator" env:"INDICATOR"`
	StatusText string `toml:"status_text" yaml:"status_text" env:"STATUS_TEXT"`
	StatusBack string `toml:"status_back" yaml:"status_back" env:"STATUS_BACK"`
}

// Colors returns the theme as name/value pairs in a stable order.
func (t ThemeConfig) Colors() [][2]string {
	return [][2]string{
		{"text", t.Text},
		{"muted", t.Muted},
		{"accent", t.Accent},
		{"handle", t.Handle},
		{"indicator", t.Indicator},
		{"status_text", t.StatusText},
		{"status_back", t.StatusBack},
	}
}

// LoggingConfig configures the log output.
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level" env:"LEVEL"`
	Path   string `toml:"path" yaml:"path" env:"PATH"`
	Format string `toml:"format" yaml:"format" env:"FORMAT"`
}

// Logging converts the section to a logging configuration.
func (l LoggingConfig) Logging() logging.Config {
	return logging.Config{
		Level:  l.Level,
		Path:   l.Path,
		Format: logging.Format(l.Format),
	}
}

// ScriptsConfig configures Lua scripting.
type ScriptsConfig struct {
	Enabled bool `toml:"enabled" yaml:"enabled" env:"ENABLED"`

	// Paths are Lua files loaded at startup, in order.
	Paths []string `toml:"paths" yaml:"paths" env:"PATHS" envSeparator:":"`

	// TimeoutMS bounds the run time of one script call. Zero disables
	// the limit.
	TimeoutMS int `toml:"timeout_ms" yaml:"timeout_ms" env:"TIMEOUT_MS"`
}

// BlockConfig seeds one block of the initial document.
type BlockConfig struct {
	ID     string         `toml:"id" yaml:"id"`
	Type   string         `toml:"type" yaml:"type"`
	Indent int            `toml:"indent" yaml:"indent"`
	Text   *string        `toml:"text" yaml:"text"`
	Attrs  map[string]any `toml:"attrs" yaml:"attrs"`
}

// DocumentConfig holds the initial document.
type DocumentConfig struct {
	Blocks []BlockConfig `toml:"blocks" yaml:"blocks" envPrefix:"BLOCKS_"`
}
