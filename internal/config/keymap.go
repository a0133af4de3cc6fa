package config

import (
	"sort"

	"github.com/dshills/paper/internal/input/keymap"
)

// UserKeymapName is the name of the keymap built from the config file.
const UserKeymapName = "user"

// UserKeymap returns the configured bindings as a keymap layered above
// the defaults. Bindings are added in key order so the result is
// deterministic.
func (c *Config) UserKeymap() *keymap.Keymap {
	km := keymap.NewKeymap(UserKeymapName).
		WithPriority(keymap.PriorityUser).
		WithSource("config")

	specs := make([]string, 0, len(c.Keymap.Bindings))
	for spec := range c.Keymap.Bindings {
		specs = append(specs, spec)
	}
	sort.Strings(specs)

	for _, spec := range specs {
		km.Add(spec, c.Keymap.Bindings[spec])
	}
	return km
}

// ApplyKeymap replaces the default and user layers of reg according to
// the configuration.
func (c *Config) ApplyKeymap(reg *keymap.Registry) error {
	if c.Keymap.DisableDefaults {
		reg.Unregister(keymap.Default().Name)
	} else if err := reg.Register(keymap.Default()); err != nil {
		return err
	}
	return reg.Register(c.UserKeymap())
}
