package main

import (
	"fmt"
	"os"

	"github.com/TomTonic/discrepancy"
	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const envPrefix = "DISCREPANCY_"

// Config is resolved from defaults, then the YAML file given with --config, then
// DISCREPANCY_* environment variables, then explicitly set flags.
type Config struct {
	NumTestPoints  int    `yaml:"num_test_points" env:"NUM_TEST_POINTS"`
	SamplingMethod string `yaml:"sampling_method" env:"SAMPLING_METHOD"`
	Seed           int64  `yaml:"seed" env:"SEED"`
	RandomSeed     bool   `yaml:"random_seed" env:"RANDOM_SEED"`
	ClipToUnitCube bool   `yaml:"clip_to_unit_cube" env:"CLIP_TO_UNIT_CUBE"`
	Mode           string `yaml:"mode" env:"MODE"`
	Workers        int    `yaml:"workers" env:"WORKERS"`
	LogLevel       string `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat      string `yaml:"log_format" env:"LOG_FORMAT"`
}

func defaultConfig() Config {
	o := discrepancy.DefaultOptions()
	return Config{
		NumTestPoints:  o.NumTestPoints,
		SamplingMethod: o.Method.String(),
		Seed:           o.Seed,
		Mode:           o.Mode.String(),
		LogLevel:       "info",
		LogFormat:      "console",
	}
}

// loadConfig reads path (if not empty) over the defaults and then applies the environment.
// environ replaces the process environment when not nil.
func loadConfig(path string, environ map[string]string) (Config, error) {
	c := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return c, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&c, env.Options{Prefix: envPrefix, Environment: environ}); err != nil {
		return c, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

// applyFlags overrides c with every flag the user set explicitly.
func applyFlags(c *Config, cmd *cobra.Command) error {
	fs := cmd.Flags()
	var err error
	set := func(name string, apply func() error) {
		if err == nil && fs.Changed(name) {
			err = apply()
		}
	}
	set("num-test", func() (e error) { c.NumTestPoints, e = fs.GetInt("num-test"); return })
	set("method", func() (e error) { c.SamplingMethod, e = fs.GetString("method"); return })
	set("seed", func() (e error) { c.Seed, e = fs.GetInt64("seed"); return })
	set("random-seed", func() (e error) { c.RandomSeed, e = fs.GetBool("random-seed"); return })
	set("clip", func() (e error) { c.ClipToUnitCube, e = fs.GetBool("clip"); return })
	set("mode", func() (e error) { c.Mode, e = fs.GetString("mode"); return })
	set("workers", func() (e error) { c.Workers, e = fs.GetInt("workers"); return })
	set("log-level", func() (e error) { c.LogLevel, e = fs.GetString("log-level"); return })
	set("log-format", func() (e error) { c.LogFormat, e = fs.GetString("log-format"); return })
	return err
}

// Options converts c into estimator options. With RandomSeed set, the seed is replaced by a
// fresh one from crypto/rand; the seed actually used is in the returned options.
func (c Config) Options() (discrepancy.Options, error) {
	method, err := discrepancy.ParseSamplingMethod(c.SamplingMethod)
	if err != nil {
		return discrepancy.Options{}, err
	}
	mode, err := discrepancy.ParseMode(c.Mode)
	if err != nil {
		return discrepancy.Options{}, err
	}
	o := discrepancy.Options{
		NumTestPoints: c.NumTestPoints,
		Method:        method,
		Seed:          c.Seed,
		Mode:          mode,
		Clip:          c.ClipToUnitCube,
		Workers:       c.Workers,
	}
	if c.RandomSeed {
		o.Seed = discrepancy.RandomSeed()
	}
	return o, o.Validate()
}
