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
	"fmt"

	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ajroetker/go-softfloat/internal/hostfpu"
	"github.com/ajroetker/go-softfloat/testfloat"
	"github.com/ajroetker/go-softfloat/verify"
)

// runFlags binds a verify.Config to a command, optionally loaded from a
// YAML file. Flags given on the command line override the file.
type runFlags struct {
	cfg        verify.Config
	configPath string
}

func (f *runFlags) register(fs *pflag.FlagSet) {
	f.cfg = verify.Defaults()
	f.cfg.RegisterFlags(fs)
	fs.StringVar(&f.configPath, "config", "", "YAML configuration file.")
}

// load returns the effective configuration of cmd.
func (f *runFlags) load(fs *pflag.FlagSet) (verify.Config, error) {
	if f.configPath == "" {
		return f.cfg, nil
	}
	cfg, err := verify.LoadConfig(f.configPath)
	if err != nil {
		return cfg, err
	}
	overrides := pflag.NewFlagSet("overrides", pflag.ContinueOnError)
	cfg.RegisterFlags(overrides)
	fs.Visit(func(flag *pflag.Flag) {
		target := overrides.Lookup(flag.Name)
		if err != nil || target == nil {
			return
		}
		if sv, ok := flag.Value.(pflag.SliceValue); ok {
			err = target.Value.(pflag.SliceValue).Replace(sv.GetSlice())
			return
		}
		err = target.Value.Set(flag.Value.String())
	})
	if err != nil {
		return cfg, errors.Wrap(err, "applying flags over config file")
	}
	return cfg, cfg.Validate()
}

func (a *app) runner(cfg verify.Config) (*verify.Runner, *testfloat.Registry, error) {
	reg := testfloat.NewRegistry()
	r, err := verify.NewRunner(cfg, reg, a.logger, a.registry)
	return r, reg, err
}

func report(cmd *cobra.Command, rep *verify.Report, reg *testfloat.Registry) error {
	out := cmd.OutOrStdout()
	if !rep.OK() {
		fmt.Fprint(out, rep.Details(reg))
	}
	fmt.Fprintln(out, rep.Summary())
	if !rep.OK() {
		return errFailed
	}
	return nil
}

func newRunCommand(a *app) *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate vectors and check the library against the oracle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load(cmd.Flags())
			if err != nil {
				return err
			}
			r, reg, err := a.runner(cfg)
			if err != nil {
				return err
			}
			rep, err := r.Run(cmd.Context())
			if err != nil {
				return err
			}
			return report(cmd, rep, reg)
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func newGenCommand(a *app) *cobra.Command {
	var (
		flags  runFlags
		output string
	)
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Write oracle vectors to a file (.gz and .zst are compressed)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load(cmd.Flags())
			if err != nil {
				return err
			}
			r, reg, err := a.runner(cfg)
			if err != nil {
				return err
			}
			w, err := testfloat.Create(output, reg)
			if err != nil {
				return err
			}
			if err := w.Comment(fmt.Sprintf("oracle=%s seed=%d count=%d", r.Oracle().Kind(), cfg.Seed, cfg.Count)); err != nil {
				_ = w.Close()
				return err
			}
			n, err := r.Generate(cmd.Context(), w)
			if cerr := w.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d vectors to %s\n", n, output)
			return nil
		},
	}
	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "vectors.txt", "Output file.")
	return cmd
}

func newCheckCommand(a *app) *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Check the library against vector files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd.Flags())
			if err != nil {
				return err
			}
			r, reg, err := a.runner(cfg)
			if err != nil {
				return err
			}
			var vectors []testfloat.Vector
			for _, path := range args {
				rd, err := testfloat.Open(path, reg)
				if err != nil {
					return err
				}
				vs, err := rd.ReadAll()
				if cerr := rd.Close(); err == nil {
					err = cerr
				}
				if err != nil {
					return errors.Wrap(err, path)
				}
				level.Debug(a.logger).Log("msg", "loaded vectors", "file", path, "vectors", len(vs))
				vectors = append(vectors, vs...)
			}
			rep, err := r.Check(cmd.Context(), vectors)
			if err != nil {
				return err
			}
			return report(cmd, rep, reg)
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func newCPUCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cpu",
		Short: "Show the host floating-point features used by the oracle",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "features: %s\n", hostfpu.Detect())
			host := "enabled"
			if hostfpu.NoHostEnv() {
				host = "disabled (SOFTFLOAT_NO_HOST)"
			}
			fmt.Fprintf(out, "host oracle: %s\n", host)
		},
	}
}
