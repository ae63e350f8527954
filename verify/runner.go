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
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/ajroetker/go-softfloat/internal/workerpool"
	"github.com/ajroetker/go-softfloat/softfloat"
	"github.com/ajroetker/go-softfloat/testfloat"
)

// cancelCheckInterval is how many vectors are processed between context
// checks.
const cancelCheckInterval = 1024

const checkBatchSize = 512

// Runner checks package softfloat against the oracle.
type Runner struct {
	cfg     Config
	modes   []softfloat.RoundingMode
	reg     *testfloat.Registry
	oracle  *Oracle
	logger  log.Logger
	metrics *metrics

	progressMu sync.Mutex
	progress   *rate.Limiter
}

// NewRunner validates cfg and returns a runner over the operations of reg.
// Metrics are registered with r unless it is nil.
func NewRunner(cfg Config, reg *testfloat.Registry, logger log.Logger, r prometheus.Registerer) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	modes, err := cfg.RoundingModes()
	if err != nil {
		return nil, err
	}
	oracle, err := NewOracle(cfg.Oracle)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	limit := rate.Inf
	if cfg.ProgressInterval > 0 {
		limit = rate.Every(cfg.ProgressInterval)
	}
	return &Runner{
		cfg:      cfg,
		modes:    modes,
		reg:      reg,
		oracle:   oracle,
		logger:   logger,
		metrics:  newMetrics(r),
		progress: rate.NewLimiter(limit, 1),
	}, nil
}

// Oracle returns the oracle used by the runner.
func (r *Runner) Oracle() *Oracle { return r.oracle }

// Ops returns the operations selected by the configuration that the oracle
// supports, sorted by name.
func (r *Runner) Ops() ([]*testfloat.Op, error) {
	ops, err := r.reg.Match(r.cfg.Ops...)
	if err != nil {
		return nil, err
	}
	supported, skipped := lo.FilterReject(ops, func(op *testfloat.Op, _ int) bool { return r.oracle.Supports(op) })
	if len(skipped) > 0 {
		level.Debug(r.logger).Log("msg", "skipping operations the oracle cannot evaluate",
			"ops", strings.Join(lo.Map(skipped, func(op *testfloat.Op, _ int) string { return op.Name }), ","))
	}
	if len(supported) == 0 {
		return nil, errors.Errorf("no verifiable operation matches %v", r.cfg.Ops)
	}
	return supported, nil
}

// seedFor derives the generator seed of the i-th operation, so results do
// not depend on scheduling.
func (r *Runner) seedFor(i int) uint64 {
	return r.cfg.Seed + uint64(i)*0x9E3779B97F4A7C15
}

// Expect builds the vector for op applied to args in mode, with the
// oracle's result and flags.
func (r *Runner) Expect(op *testfloat.Op, mode softfloat.RoundingMode, args []testfloat.Value) (testfloat.Vector, error) {
	v, flags, path, err := r.oracle.eval(op, mode, args)
	if err != nil {
		return testfloat.Vector{}, err
	}
	r.metrics.oracle.WithLabelValues(path).Inc()
	return testfloat.Vector{Op: op.Name, Mode: mode, Operands: args, Result: v, Flags: flags}, nil
}

// Run generates Count vectors for every selected operation and checks the
// library against the oracle. Operations run concurrently, up to Workers
// at a time.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	ops, err := r.Ops()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	level.Info(r.logger).Log("msg", "starting verification", "ops", len(ops), "count", r.cfg.Count,
		"modes", strings.Join(r.cfg.Modes, ","), "oracle", r.oracle.Kind(), "host", r.oracle.Host(), "seed", r.cfg.Seed)

	reports := make([]*OpReport, len(ops))
	g, ctx := errgroup.WithContext(ctx)
	workers := r.cfg.Workers
	if workers <= 0 {
		workers = -1
	}
	g.SetLimit(workers)
	for i, op := range ops {
		g.Go(func() error {
			rep, err := r.runOp(ctx, op, r.seedFor(i))
			if err != nil {
				return errors.Wrap(err, op.Name)
			}
			reports[i] = rep
			r.logProgress(rep)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Oracle: r.oracle.Kind(), Seed: r.cfg.Seed, Ops: reports, Elapsed: time.Since(start)}
	level.Info(r.logger).Log("msg", "verification finished", "summary", report.Summary())
	return report, nil
}

func (r *Runner) runOp(ctx context.Context, op *testfloat.Op, seed uint64) (*OpReport, error) {
	start := time.Now()
	gen := testfloat.NewGenerator(seed)
	rep := &OpReport{Op: op.Name}
	for i := range r.cfg.Count {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		want, err := r.Expect(op, gen.Mode(r.modes), gen.Operands(op))
		if err != nil {
			return nil, err
		}
		got, flags, ok := want.Check(op, r.cfg.FlagMask)
		rep.Checked++
		if !ok {
			r.mismatch(rep, op, Mismatch{Want: want, Got: got, GotFlags: flags})
		}
	}
	rep.Duration = time.Since(start)
	r.metrics.checked.WithLabelValues(op.Name).Add(float64(rep.Checked))
	r.metrics.duration.WithLabelValues(op.Name).Observe(rep.Duration.Seconds())
	return rep, nil
}

func (r *Runner) mismatch(rep *OpReport, op *testfloat.Op, m Mismatch) {
	rep.record(m, r.cfg.MaxSamples)
	r.metrics.mismatches.WithLabelValues(op.Name).Inc()
	level.Debug(r.logger).Log("msg", "mismatch", "vector", m.Format(op))
}

func (r *Runner) logProgress(rep *OpReport) {
	if rep.Failed > 0 {
		level.Warn(r.logger).Log("msg", "operation failed", "op", rep.Op, "failed", rep.Failed, "checked", rep.Checked)
		return
	}
	r.progressMu.Lock()
	allow := r.progress.Allow()
	r.progressMu.Unlock()
	if allow {
		level.Info(r.logger).Log("msg", "operation passed", "op", rep.Op, "checked", rep.Checked, "duration", rep.Duration)
	}
}

// Check runs the library on vectors whose expected results were produced
// elsewhere, spreading them over a worker pool. Every vector must name an
// operation of the registry.
func (r *Runner) Check(ctx context.Context, vectors []testfloat.Vector) (*Report, error) {
	begin := time.Now()
	ops := make([]*testfloat.Op, len(vectors))
	mixed := false
	for i, v := range vectors {
		op, err := r.reg.Lookup(v.Op)
		if err != nil {
			return nil, errors.Wrapf(err, "vector %d", i)
		}
		if err := v.Validate(op); err != nil {
			return nil, errors.Wrapf(err, "vector %d", i)
		}
		ops[i] = op
		mixed = mixed || op != ops[0]
	}

	pool := workerpool.New(r.cfg.Workers, nil)
	defer pool.Close()

	var mu sync.Mutex
	byOp := make(map[string]*OpReport)
	work := func(st *softfloat.Status, start, end int) {
		local := make(map[string]*OpReport)
		for i := start; i < end; i++ {
			if (i-start)%cancelCheckInterval == 0 && ctx.Err() != nil {
				return
			}
			v, op := vectors[i], ops[i]
			flagsBefore := st.Flags
			st.Flags = 0
			st.RoundingMode = v.Mode
			got, flags := op.RunWith(st, v.Operands)
			st.Flags |= flagsBefore

			rep := local[op.Name]
			if rep == nil {
				rep = &OpReport{Op: op.Name}
				local[op.Name] = rep
			}
			rep.Checked++
			if got != v.Result || flags&r.cfg.FlagMask != v.Flags&r.cfg.FlagMask {
				r.mismatch(rep, op, Mismatch{Want: v, Got: got, GotFlags: flags})
			}
		}
		mu.Lock()
		defer mu.Unlock()
		for name, rep := range local {
			if total := byOp[name]; total != nil {
				total.merge(rep, r.cfg.MaxSamples)
			} else {
				byOp[name] = rep
			}
		}
	}
	// Mixed files vary in cost per vector; batches keep the workers even.
	var raised softfloat.Flags
	if mixed {
		raised = pool.ParallelForAtomicBatched(len(vectors), checkBatchSize, work)
	} else {
		raised = pool.ParallelFor(len(vectors), work)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{Oracle: r.oracle.Kind(), Seed: r.cfg.Seed, Elapsed: time.Since(begin), Raised: raised}
	for _, rep := range byOp {
		r.metrics.checked.WithLabelValues(rep.Op).Add(float64(rep.Checked))
		report.Ops = append(report.Ops, rep)
	}
	slices.SortFunc(report.Ops, func(a, b *OpReport) int { return strings.Compare(a.Op, b.Op) })
	level.Info(r.logger).Log("msg", "check finished", "summary", report.Summary(), "raised", raised)
	return report, nil
}

// Generate writes Count oracle vectors for every selected operation to w
// and returns how many were written.
func (r *Runner) Generate(ctx context.Context, w *testfloat.Writer) (int, error) {
	ops, err := r.Ops()
	if err != nil {
		return 0, err
	}
	n := 0
	for i, op := range ops {
		if err := w.Comment(op.Name); err != nil {
			return n, err
		}
		gen := testfloat.NewGenerator(r.seedFor(i))
		for j := range r.cfg.Count {
			if j%cancelCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return n, err
				}
			}
			v, err := r.Expect(op, gen.Mode(r.modes), gen.Operands(op))
			if err != nil {
				return n, err
			}
			if err := w.Write(v); err != nil {
				return n, err
			}
			n++
		}
	}
	level.Info(r.logger).Log("msg", "vectors generated", "ops", len(ops), "vectors", n)
	return n, nil
}
