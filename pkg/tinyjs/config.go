package tinyjs

import (
	"fmt"

	"github.com/spf13/viper"
)

// EngineOptions are host-side deployment knobs that are not part of
// language semantics: they never change what a script observes, only
// how generously or cautiously the embedding surface runs it.
type EngineOptions struct {
	// RecursionLimit caps nested Call/New dispatches (spec.md §5's
	// stackBase check). Zero keeps runtime.DefaultRecursionLimit.
	RecursionLimit int `mapstructure:"recursion_limit"`

	// RegexEnabled is loaded from config (default true); New does not
	// consult it, so regex literals are always parsed.
	RegexEnabled bool `mapstructure:"regex_enabled"`

	// LogLevel is a zap level name ("debug", "info", "warn") loaded from
	// config; New does not consult it and keeps the silent default
	// logger unless WithLogger supplies one.
	LogLevel string `mapstructure:"log_level"`
}

// defaultEngineOptions mirrors what New() uses with no config file and
// no WithX overrides present.
func defaultEngineOptions() EngineOptions {
	return EngineOptions{
		RecursionLimit: 0,
		RegexEnabled:   true,
		LogLevel:       "warn",
	}
}

// LoadConfig reads tinyjs.yaml/tinyjs.yml (if present) from the given
// search paths plus TINYJS_-prefixed environment variables, layering
// them over defaultEngineOptions. Grounded on dphaener-conduit's
// config.Load viper pattern; absence of a config file is not an error
// since every field already has a usable default.
func LoadConfig(searchPaths ...string) (EngineOptions, error) {
	v := viper.New()
	opts := defaultEngineOptions()

	v.SetDefault("recursion_limit", opts.RecursionLimit)
	v.SetDefault("regex_enabled", opts.RegexEnabled)
	v.SetDefault("log_level", opts.LogLevel)

	v.SetConfigName("tinyjs")
	v.SetConfigType("yaml")
	if len(searchPaths) == 0 {
		v.AddConfigPath(".")
	}
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("TINYJS")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return opts, fmt.Errorf("tinyjs: reading config: %w", err)
		}
	}

	if err := v.Unmarshal(&opts); err != nil {
		return opts, fmt.Errorf("tinyjs: unmarshaling config: %w", err)
	}
	return opts, nil
}
