package config

import (
	"fmt"

	"github.com/dshills/designable/internal/config/loader"
)

// Option configures Load.
type Option func(*options)

type options struct {
	fs  loader.FileSystem
	env *loader.EnvLoader
}

// WithFS reads configuration files from fsys.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *options) { o.fs = fsys }
}

// WithEnv replaces the environment layer. Pass nil to skip it.
func WithEnv(env *loader.EnvLoader) Option {
	return func(o *options) { o.env = env }
}

// Load reads path, applies environment overrides and validates the result.
// An empty path reads DefaultPath.
func Load(path string, opts ...Option) (Config, error) {
	o := options{
		fs:  loader.DefaultFS(),
		env: loader.NewEnvLoader(EnvPrefix),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if path == "" {
		path = DefaultPath
	}

	layers, err := defaultMap()
	if err != nil {
		return Config{}, err
	}

	file, err := loader.NewTOMLLoaderWithFS(o.fs, path).Load()
	if err != nil {
		return Config{}, err
	}
	layers = loader.DeepMerge(layers, file)

	if o.env != nil {
		env, err := o.env.Load()
		if err != nil {
			return Config{}, fmt.Errorf("reading environment: %w", err)
		}
		layers = loader.DeepMerge(layers, env)
	}

	cfg, err := decode(layers)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
