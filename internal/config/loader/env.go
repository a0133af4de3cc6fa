package loader

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "PAPER_"

// LoadEnv applies environment overrides to into, a pointer to a struct
// tagged with `env` and `envPrefix`. Variables that are not set leave
// fields untouched. A nil environ reads the process environment.
func LoadEnv(into any, environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(into, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
