// Package batch applies composition or masking across a collection while
// keeping record IDs (and optionally SSNs) unique within the batch.
package batch

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/zarlcorp/zmask/internal/identity"
	"github.com/zarlcorp/zmask/internal/mask"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultMaxAttempts bounds regenerations of a single colliding field.
	DefaultMaxAttempts = 8

	progressEvery = 100
)

// ErrUniquenessExhausted is matched by every ExhaustedError.
var ErrUniquenessExhausted = errors.New("uniqueness retries exhausted")

// ExhaustedError reports a field that kept colliding after the retry cap.
// It points at a broken randomness source rather than bad luck.
type ExhaustedError struct {
	Field    string
	Index    int
	Attempts int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("record %d: %s still duplicated after %d attempts", e.Index, e.Field, e.Attempts)
}

func (e *ExhaustedError) Is(target error) bool {
	return target == ErrUniquenessExhausted
}

// Orchestrator runs batch generation and masking.
type Orchestrator struct {
	gen         *identity.Generator
	maxAttempts int
	uniqueSSN   bool
	workers     int
	log         *slog.Logger
	maskOpts    []mask.Option
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithMaxAttempts sets how often one colliding field is regenerated.
func WithMaxAttempts(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.maxAttempts = n
		}
	}
}

// WithUniqueSSN enforces batch-wide SSN uniqueness in addition to IDs.
func WithUniqueSSN(on bool) Option {
	return func(o *Orchestrator) { o.uniqueSSN = on }
}

// WithWorkers builds up to n records concurrently. Output does not depend
// on n.
func WithWorkers(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithLogger sets the logger for progress and collisions.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.log = l }
}

// WithMaskOptions passes options to the per-record maskers.
func WithMaskOptions(opts ...mask.Option) Option {
	return func(o *Orchestrator) { o.maskOpts = append(o.maskOpts, opts...) }
}

// New creates an orchestrator. Every record gets a generator forked from g
// in order, so a seeded g yields the same batch on every run.
func New(g *identity.Generator, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		gen:         g,
		maxAttempts: DefaultMaxAttempts,
		workers:     1,
		log:         slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Generate composes count records with random genders.
func (o *Orchestrator) Generate(count int) ([]identity.Record, error) {
	return o.GenerateWithGender(count, "")
}

// GenerateWithGender composes count records. A valid hint fixes every
// record's gender. A negative count is a validation error; zero yields an
// empty batch.
func (o *Orchestrator) GenerateWithGender(count int, hint identity.Gender) ([]identity.Record, error) {
	if count < 0 {
		return nil, &identity.ValidationError{Field: "count", Value: strconv.Itoa(count), Reason: "must not be negative"}
	}

	gens := o.fork(count)
	recs := make([]identity.Record, count)
	o.build(count, "generate", func(i int) {
		recs[i] = gens[i].Compose(hint)
	})

	ptrs := make([]*identity.Record, count)
	for i := range recs {
		ptrs[i] = &recs[i]
	}
	if err := o.dedupe(ptrs, gens); err != nil {
		return nil, fmt.Errorf("generate batch: %w", err)
	}
	return recs, nil
}

// Mask masks every input record, preserving order. The shift is validated
// before any record is produced.
func (o *Orchestrator) Mask(in []identity.InputRecord, shiftDays int) ([]mask.Result, error) {
	if err := mask.ValidateShift(shiftDays); err != nil {
		return nil, err
	}

	// warnings are logged below, once dedupe has settled each record ID
	opts := append(slices.Clone(o.maskOpts), mask.WithLogger(slog.New(slog.DiscardHandler)))
	gens := o.fork(len(in))
	results := make([]mask.Result, len(in))
	o.build(len(in), "mask", func(i int) {
		results[i] = mask.New(gens[i], opts...).Mask(in[i], shiftDays)
	})

	ptrs := make([]*identity.Record, len(results))
	for i := range results {
		ptrs[i] = &results[i].Record
	}
	if err := o.dedupe(ptrs, gens); err != nil {
		return nil, fmt.Errorf("mask batch: %w", err)
	}
	for i, res := range results {
		for _, w := range res.Warnings {
			o.log.Warn("degraded field", "index", i, "record", res.Record.ID, "field", w.Field, "reason", w.Reason)
		}
	}
	return results, nil
}

// fork derives one generator per record, sequentially, so the partition
// of the parent stream is independent of worker count.
func (o *Orchestrator) fork(n int) []*identity.Generator {
	gens := make([]*identity.Generator, n)
	for i := range gens {
		gens[i] = o.gen.Fork()
	}
	return gens
}

// build calls fn for every index, concurrently when workers > 1.
func (o *Orchestrator) build(n int, op string, fn func(i int)) {
	if o.workers <= 1 {
		for i := range n {
			fn(i)
			o.progress(op, i+1, n)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(o.workers)
	for i := range n {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	// fn never fails
	_ = g.Wait()
	o.log.Debug("batch built", "op", op, "records", n, "workers", o.workers)
}

func (o *Orchestrator) progress(op string, done, total int) {
	if done%progressEvery == 0 && done < total {
		o.log.Debug("batch progress", "op", op, "done", done, "total", total)
	}
}

// dedupe walks records in order and regenerates any ID (or SSN when
// enabled) already claimed by an earlier record, using that record's own
// generator. Only the colliding field is redrawn.
func (o *Orchestrator) dedupe(recs []*identity.Record, gens []*identity.Generator) error {
	ids := make(map[string]struct{}, len(recs))
	var ssns map[string]struct{}
	if o.uniqueSSN {
		ssns = make(map[string]struct{}, len(recs))
	}

	for i, r := range recs {
		if err := o.claim(ids, i, identity.FieldID, &r.ID, gens[i].UUID); err != nil {
			return err
		}
		if o.uniqueSSN && r.SSN != "" {
			if err := o.claim(ssns, i, identity.FieldSSN, &r.SSN, gens[i].SSN); err != nil {
				return err
			}
		}
	}
	return nil
}

func (o *Orchestrator) claim(seen map[string]struct{}, i int, field string, v *string, regen func() string) error {
	for attempts := 0; ; attempts++ {
		if _, dup := seen[*v]; !dup {
			seen[*v] = struct{}{}
			return nil
		}
		if attempts == o.maxAttempts {
			return &ExhaustedError{Field: field, Index: i, Attempts: attempts}
		}
		o.log.Debug("uniqueness collision", "field", field, "index", i, "attempt", attempts+1)
		*v = regen()
	}
}
