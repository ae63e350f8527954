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
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-softfloat/softfloat"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())
	modes, err := cfg.RoundingModes()
	require.NoError(t, err)
	assert.Equal(t, softfloat.RoundingModes, modes)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verify.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
ops: ["f32_*", extF80_add]
modes: [rne, rtz]
count: 50
oracle: big
flag_mask: 0x3d
progress_interval: 1s
`), 0o644))

	got, err := LoadConfig(path)
	require.NoError(t, err)

	want := Defaults()
	want.Ops = []string{"f32_*", "extF80_add"}
	want.Modes = []string{"rne", "rtz"}
	want.Count = 50
	want.Oracle = KindBig
	want.FlagMask = 0x3d
	want.ProgressInterval = time.Second
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadConfig mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("count: [1, 2]\n"), 0o644))
	_, err = LoadConfig(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("modes: [rne, sideways]\n"), 0o644))
	_, err = LoadConfig(invalid)
	assert.ErrorContains(t, err, "sideways")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"no ops", func(c *Config) { c.Ops = nil }, "no operations"},
		{"no modes", func(c *Config) { c.Modes = nil }, "no rounding modes"},
		{"unknown mode", func(c *Config) { c.Modes = []string{"rne", "up"} }, `"up"`},
		{"zero count", func(c *Config) { c.Count = 0 }, "count"},
		{"negative workers", func(c *Config) { c.Workers = -2 }, "workers"},
		{"unknown oracle", func(c *Config) { c.Oracle = "quad" }, "quad"},
		{"denormal flag", func(c *Config) { c.FlagMask = softfloat.FlagsAll }, "denormal"},
		{"rounded up flag", func(c *Config) { c.FlagMask |= softfloat.FlagRoundedUp }, "outside"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.modify(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}

func TestRegisterFlags(t *testing.T) {
	cfg := Defaults()
	fs := pflag.NewFlagSet("verify", pflag.ContinueOnError)
	cfg.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{
		"--ops=f16_*,f32_add", "--modes=rup", "--count=5", "--oracle=big",
		"--seed=42", "--workers=3", "--flag-mask=1", "--progress-interval=0s",
	}))

	assert.Equal(t, []string{"f16_*", "f32_add"}, cfg.Ops)
	assert.Equal(t, []string{"rup"}, cfg.Modes)
	assert.Equal(t, 5, cfg.Count)
	assert.Equal(t, KindBig, cfg.Oracle)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, softfloat.FlagInvalid, cfg.FlagMask)
	assert.Zero(t, cfg.ProgressInterval)
	assert.Equal(t, 10, cfg.MaxSamples, "unset flags keep their defaults")
	assert.NoError(t, cfg.Validate())
}
