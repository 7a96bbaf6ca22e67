// Package aggregation turns raw 360° survey responses into per-person result
// records. It is a pure transformation: no I/O, no state between calls, and
// inputs are never modified.
package aggregation

import (
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithParallelism aggregates up to n persons concurrently. Values below 2
// keep the run sequential.
func WithParallelism(n int) Option {
	return func(e *Engine) {
		e.parallelism = n
	}
}

// Engine runs aggregations. The zero value is not usable; call New.
type Engine struct {
	logger      *zap.Logger
	parallelism int
}

// Report is the outcome of one run.
type Report struct {
	Results []Result
	// Skipped counts responses dropped for unknown evaluations or
	// competencies, or for a scale answer without a value.
	Skipped int
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:      zap.NewNop(),
		parallelism: 1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Aggregate runs a sequential aggregation with default settings.
func Aggregate(snap Snapshot) []Result {
	return New().Run(snap).Results
}

// Run aggregates every person in the snapshot that has at least one
// evaluation, ordered by overall mean descending. Ties keep input order.
func (e *Engine) Run(snap Snapshot) Report {
	idx := newIndex(snap.Competencies, snap.Evaluations)
	cls := classify(snap, idx)

	slots := make([]*Result, len(snap.Persons))
	build := func(i int) {
		p := snap.Persons[i]
		b, ok := cls.byPerson[p.ID]
		if !ok || len(b.evaluations) == 0 {
			return
		}
		r := aggregatePerson(p, b, idx)
		slots[i] = &r
	}

	if e.parallelism > 1 && len(snap.Persons) > 1 {
		var g errgroup.Group
		g.SetLimit(e.parallelism)
		for i := range snap.Persons {
			g.Go(func() error {
				build(i)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range snap.Persons {
			build(i)
		}
	}

	results := make([]Result, 0, len(slots))
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Overall > results[j].Overall
	})

	e.logger.Debug("aggregation finished",
		zap.Int("persons", len(snap.Persons)),
		zap.Int("results", len(results)),
		zap.Int("skipped_responses", cls.skipped))

	return Report{Results: results, Skipped: cls.skipped}
}
