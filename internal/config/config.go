package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/paper/internal/config/loader"
	"github.com/dshills/paper/internal/input/key"
	"github.com/dshills/paper/internal/logging"
)

// Section names, as used in files and change notifications.
const (
	SectionEditor   = "editor"
	SectionSchema   = "schema"
	SectionKeymap   = "keymap"
	SectionTheme    = "theme"
	SectionLogging  = "logging"
	SectionScripts  = "scripts"
	SectionDocument = "document"
)

// Config is the complete editor configuration.
type Config struct {
	Editor   EditorConfig   `toml:"editor" yaml:"editor" envPrefix:"EDITOR_"`
	Schema   SchemaConfig   `toml:"schema" yaml:"schema" envPrefix:"SCHEMA_"`
	Keymap   KeymapConfig   `toml:"keymap" yaml:"keymap" envPrefix:"KEYMAP_"`
	Theme    ThemeConfig    `toml:"theme" yaml:"theme" envPrefix:"THEME_"`
	Logging  LoggingConfig  `toml:"logging" yaml:"logging" envPrefix:"LOG_"`
	Scripts  ScriptsConfig  `toml:"scripts" yaml:"scripts" envPrefix:"SCRIPTS_"`
	Document DocumentConfig `toml:"document" yaml:"document" envPrefix:"DOCUMENT_"`

	// Source is the file the configuration was read from, empty when
	// only defaults and environment apply.
	Source string `toml:"-" yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			IndentWidth: 2,
			ShowHandles: true,
			Mouse:       true,
		},
		Schema: SchemaConfig{
			IncludeBuiltin: true,
		},
		Theme: ThemeConfig{
			Text:       "#d8dee9",
			Muted:      "#6b7280",
			Accent:     "#88c0d0",
			Handle:     "#4c566a",
			Indicator:  "#ebcb8b",
			StatusText: "#eceff4",
			StatusBack: "#3b4252",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: string(logging.FormatJSON),
		},
		Scripts: ScriptsConfig{
			Enabled:   true,
			TimeoutMS: 1000,
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(dir, "paper", "config.toml")
}

// Option configures loading.
type Option func(*options)

type options struct {
	fs       loader.FileSystem
	environ  map[string]string
	noEnv    bool
	optional bool
}

// WithFS reads files through fsys.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithEnvironment reads overrides from environ instead of the process
// environment.
func WithEnvironment(environ map[string]string) Option {
	return func(o *options) {
		o.environ = environ
	}
}

// WithoutEnv skips environment overrides.
func WithoutEnv() Option {
	return func(o *options) {
		o.noEnv = true
	}
}

// Optional makes a missing file fall back to defaults instead of
// returning ErrFileNotFound.
func Optional() Option {
	return func(o *options) {
		o.optional = true
	}
}

// Load builds a configuration from defaults, the file at path and the
// environment, then validates it. An empty path skips the file layer.
func Load(path string, opts ...Option) (*Config, error) {
	o := options{fs: loader.DefaultFS()}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := Default()
	if path != "" {
		found, err := loader.LoadFile(o.fs, path, cfg)
		if err != nil {
			return nil, err
		}
		if found {
			cfg.Source = path
		} else if !o.optional {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
	}
	if !o.noEnv {
		if err := loader.LoadEnv(cfg, o.environ); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration. All problems are reported, joined.
func (c *Config) Validate() error {
	var errs []error
	add := func(path, msg string, value any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value})
	}

	if c.Editor.IndentWidth < 1 || c.Editor.IndentWidth > 8 {
		add("editor.indent_width", "must be between 1 and 8", c.Editor.IndentWidth)
	}

	seen := make(map[string]bool)
	for i, t := range c.Schema.Types {
		path := fmt.Sprintf("schema.types[%d]", i)
		switch {
		case strings.TrimSpace(t.Type) == "":
			add(path+".type", "is required", nil)
		case seen[t.Type]:
			add(path+".type", "is declared twice", t.Type)
		}
		seen[t.Type] = true
	}

	for spec, action := range c.Keymap.Bindings {
		if _, err := key.Parse(spec); err != nil {
			add("keymap.bindings", err.Error(), spec)
		}
		if strings.ContainsAny(action, " \t") {
			add("keymap.bindings."+spec, "action names cannot contain spaces", action)
		}
	}

	for _, kv := range c.Theme.Colors() {
		if kv[1] == "" {
			continue
		}
		if _, err := colorful.Hex(kv[1]); err != nil {
			add("theme."+kv[0], "must be a #rrggbb colour", kv[1])
		}
	}

	switch logging.Format(c.Logging.Format) {
	case "", logging.FormatJSON, logging.FormatConsole:
	default:
		add("logging.format", "must be json or console", c.Logging.Format)
	}

	if c.Scripts.TimeoutMS < 0 {
		add("scripts.timeout_ms", "cannot be negative", c.Scripts.TimeoutMS)
	}

	ids := make(map[string]bool)
	for i, b := range c.Document.Blocks {
		if b.ID == "" {
			continue
		}
		if ids[b.ID] {
			add(fmt.Sprintf("document.blocks[%d].id", i), "is used twice", b.ID)
		}
		ids[b.ID] = true
	}

	return errors.Join(errs...)
}

// Sections returns each section value by name.
func (c *Config) Sections() map[string]any {
	return map[string]any{
		SectionEditor:   c.Editor,
		SectionSchema:   c.Schema,
		SectionKeymap:   c.Keymap,
		SectionTheme:    c.Theme,
		SectionLogging:  c.Logging,
		SectionScripts:  c.Scripts,
		SectionDocument: c.Document,
	}
}

// Diff returns the names of the sections that differ between two
// configurations, sorted.
func Diff(old, next *Config) []string {
	a, b := old.Sections(), next.Sections()
	var out []string
	for _, name := range []string{
		SectionDocument, SectionEditor, SectionKeymap, SectionLogging,
		SectionSchema, SectionScripts, SectionTheme,
	} {
		if !reflect.DeepEqual(a[name], b[name]) {
			out = append(out, name)
		}
	}
	return out
}
