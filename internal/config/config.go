package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// New reads configuration from the process environment into a struct of
// type T. Each binary declares its own T from the sections in this package.
func New[T any]() (T, error) {
	cfg, err := env.ParseAs[T]()
	if err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

// FromEnvironment is New reading from environ instead of the process
// environment.
func FromEnvironment[T any](environ map[string]string) (T, error) {
	cfg, err := env.ParseAsWithOptions[T](env.Options{Environment: environ})
	if err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}
