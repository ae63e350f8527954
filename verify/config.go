// Copyright 2025 go-softfloat Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package verify

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/ajroetker/go-softfloat/softfloat"
)

// Config describes a verification run.
type Config struct {
	// Ops are path.Match patterns over operation names, e.g. "f32_*".
	Ops []string `yaml:"ops"`
	// Modes are rounding mode names (rne, rdn, rup, rtz, rmm).
	Modes []string `yaml:"modes"`
	// Count is the number of vectors generated per operation.
	Count int    `yaml:"count"`
	Seed  uint64 `yaml:"seed"`
	// Workers is the number of checking goroutines; 0 means GOMAXPROCS.
	Workers int  `yaml:"workers"`
	Oracle  Kind `yaml:"oracle"`
	// FlagMask selects the flags that must match.
	FlagMask softfloat.Flags `yaml:"flag_mask"`
	// MaxSamples caps the mismatches kept per operation.
	MaxSamples       int           `yaml:"max_samples"`
	ProgressInterval time.Duration `yaml:"progress_interval"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Ops:              []string{"*"},
		Modes:            lo.Map(softfloat.RoundingModes, func(m softfloat.RoundingMode, _ int) string { return m.String() }),
		Count:            10000,
		Seed:             1,
		Oracle:           KindAuto,
		FlagMask:         DefaultFlagMask,
		MaxSamples:       10,
		ProgressInterval: 5 * time.Second,
	}
}

// RegisterFlags adds the flags required to configure a run to f, using
// the current values of cfg as defaults.
func (cfg *Config) RegisterFlags(f *pflag.FlagSet) {
	f.StringSliceVar(&cfg.Ops, "ops", cfg.Ops, "Operation name patterns to verify.")
	f.StringSliceVar(&cfg.Modes, "modes", cfg.Modes, "Rounding modes to verify.")
	f.IntVar(&cfg.Count, "count", cfg.Count, "Vectors generated per operation.")
	f.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Seed of the vector generator.")
	f.IntVar(&cfg.Workers, "workers", cfg.Workers, "Checking goroutines, 0 for GOMAXPROCS.")
	f.StringVar((*string)(&cfg.Oracle), "oracle", string(cfg.Oracle), "Oracle kind: auto or big.")
	f.Uint16Var((*uint16)(&cfg.FlagMask), "flag-mask", uint16(cfg.FlagMask), "Flags compared between library and oracle.")
	f.IntVar(&cfg.MaxSamples, "max-samples", cfg.MaxSamples, "Mismatches kept per operation.")
	f.DurationVar(&cfg.ProgressInterval, "progress-interval", cfg.ProgressInterval, "Minimum interval between progress log lines.")
}

// LoadConfig reads a YAML configuration file. Fields absent from the file
// keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := Defaults()
	buf, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "reading config")
	}
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, cfg.Validate()
}

// Validate reports the first invalid field.
func (cfg *Config) Validate() error {
	if len(cfg.Ops) == 0 {
		return errors.New("no operations selected")
	}
	if _, err := cfg.RoundingModes(); err != nil {
		return err
	}
	if cfg.Count <= 0 {
		return errors.Errorf("count must be positive, got %d", cfg.Count)
	}
	if cfg.Workers < 0 {
		return errors.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	switch cfg.Oracle {
	case KindAuto, KindBig:
	default:
		return errors.Errorf("unknown oracle %q", cfg.Oracle)
	}
	if cfg.FlagMask&softfloat.FlagDenormal != 0 {
		return errors.New("the denormal flag cannot be verified")
	}
	if cfg.FlagMask&^softfloat.FlagsAll != 0 {
		return errors.Errorf("flag mask %#x has bits outside the IEEE flags", uint16(cfg.FlagMask))
	}
	return nil
}

// RoundingModes parses Modes.
func (cfg *Config) RoundingModes() ([]softfloat.RoundingMode, error) {
	if len(cfg.Modes) == 0 {
		return nil, errors.New("no rounding modes selected")
	}
	modes := make([]softfloat.RoundingMode, 0, len(cfg.Modes))
	for _, s := range lo.Uniq(cfg.Modes) {
		m, ok := softfloat.ParseRoundingMode(s)
		if !ok {
			return nil, errors.Errorf("unknown rounding mode %q", s)
		}
		modes = append(modes, m)
	}
	return modes, nil
}
