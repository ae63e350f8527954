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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level=error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRun(t *testing.T) {
	out, err := execute(t, "run", "--ops=f32_add,f64_to_i32", "--count=100", "--oracle=big")
	require.NoError(t, err, out)
	assert.Contains(t, out, "200 vectors, 0 mismatches in 2 ops")
}

func TestRunConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verify.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ops: [f16_mul]\ncount: 40\noracle: big\n"), 0o644))

	out, err := execute(t, "run", "--config", path)
	require.NoError(t, err, out)
	assert.Contains(t, out, "40 vectors")

	// Flags override the file.
	out, err = execute(t, "run", "--config", path, "--count=7", "--ops=f16_add,f16_sub")
	require.NoError(t, err, out)
	assert.Contains(t, out, "14 vectors, 0 mismatches in 2 ops")
}

func TestGenAndCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vectors.txt.zst")
	out, err := execute(t, "gen", "--ops=f32_*", "--count=20", "--oracle=big", "-o", path)
	require.NoError(t, err, out)
	assert.Contains(t, out, "wrote ")

	out, err = execute(t, "check", path)
	require.NoError(t, err, out)
	assert.Contains(t, out, "0 mismatches")
}

func TestCheckFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("f32_add rne 3f800000 3f800000 => 40000001 0\n"), 0o644))
	out, err := execute(t, "check", path)
	assert.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, "f32_add: 1 of 1 failed")
	assert.Contains(t, out, "got 40000000 0")
}

func TestErrors(t *testing.T) {
	_, err := execute(t, "run", "--modes=sideways")
	assert.ErrorContains(t, err, "sideways")

	_, err = execute(t, "check")
	assert.Error(t, err)

	_, err = execute(t, "cpu", "--log-level=loud")
	assert.Error(t, err)
}

func TestCPU(t *testing.T) {
	out, err := execute(t, "cpu")
	require.NoError(t, err)
	assert.Contains(t, out, "features: ")
	assert.Contains(t, out, "host oracle: ")
}
