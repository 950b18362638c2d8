package main

import (
	"fmt"
	"os"

	"github.com/rofleksey/refl"

	"gopkg.in/yaml.v2"
)

// Config is the front end's configuration file.
type Config struct {
	// Prompt and Continuation are the REPL prompts for a new statement and
	// for a statement continued from the previous line.
	Prompt       string `yaml:"prompt"`
	Continuation string `yaml:"continuation"`
	// History is the file in which REPL history is kept. Empty means none.
	History string `yaml:"history"`
	// LogLevel is a zerolog level name.
	LogLevel string `yaml:"log_level"`
	// Trace logs each evaluated statement.
	Trace bool `yaml:"trace"`
	// Globals are bound in the root scope before anything runs.
	Globals map[string]interface{} `yaml:"globals"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Prompt:       "refl> ",
		Continuation: "....> ",
		LogLevel:     "info",
	}
}

// LoadConfig reads a configuration file. Fields missing from the file keep
// their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("couldn't read config: %w", err)
	}
	if err := yaml.UnmarshalStrict(b, &cfg); err != nil {
		return cfg, fmt.Errorf("couldn't parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Apply binds the configured globals in the VM's root scope.
func (cfg Config) Apply(vm *refl.VM) error {
	for name, v := range cfg.Globals {
		r, err := globalValue(v)
		if err != nil {
			return fmt.Errorf("global %s: %w", name, err)
		}
		vm.Root.Define(name, r)
	}
	return nil
}

// globalValue converts a decoded YAML scalar to a refl value.
func globalValue(v interface{}) (refl.Value, error) {
	switch v := v.(type) {
	case nil:
		return refl.Nil, nil
	case int:
		return refl.Number(float64(v)), nil
	case int64:
		return refl.Number(float64(v)), nil
	case uint64:
		return refl.Number(float64(v)), nil
	case float64:
		return refl.Number(v), nil
	case string:
		return refl.String(v), nil
	case bool:
		return refl.Bool(v), nil
	}
	return refl.Nil, fmt.Errorf("unsupported value %v of type %T", v, v)
}
