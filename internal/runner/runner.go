// Package runner drives headless fixed-step simulations: a known
// number of ticks with metric observation, snapshot sampling and
// context cancellation, no wall clock involved.
package runner

import (
	"context"
	"fmt"

	"github.com/san-kum/gassim/internal/gas"
)

// Metric observes the simulation once per tick and reduces to a single
// value at the end of a run.
type Metric interface {
	Name() string
	Observe(s *gas.Sim, t float64)
	Value() float64
	Reset()
}

// Observer receives a callback after every tick.
type Observer interface {
	OnTick(s *gas.Sim, t float64)
}

// Config controls one headless run. Times are simulation milliseconds.
type Config struct {
	Duration    float64
	SampleEvery int
}

type Result struct {
	Times     []float64
	States    []gas.Snapshot
	Metrics   map[string]float64
	TicksRun  int
	FinalStat gas.Stats
}

type Runner struct {
	sim       *gas.Sim
	metrics   []Metric
	observers []Observer
}

func New(s *gas.Sim) *Runner {
	return &Runner{sim: s}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run executes Duration/TickDuration ticks, sampling a snapshot every
// SampleEvery ticks (plus the initial state). It stops early on context
// cancellation or if the state turns non-finite.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Duration <= 0 {
		return nil, fmt.Errorf("runner: duration must be positive, got %g", cfg.Duration)
	}
	sample := cfg.SampleEvery
	if sample <= 0 {
		sample = 1
	}

	tick := r.sim.World().TickDuration
	steps := int(cfg.Duration / tick)

	result := &Result{
		Times:   make([]float64, 0, steps/sample+1),
		States:  make([]gas.Snapshot, 0, steps/sample+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	t := 0.0
	result.Times = append(result.Times, t)
	result.States = append(result.States, r.sim.Snapshot())

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		r.sim.Step()
		t += tick
		result.TicksRun++

		if !r.sim.Valid() {
			result.FinalStat = r.sim.Stats()
			return result, fmt.Errorf("tick %d (t=%.1fms): %w", i, t, gas.ErrInvalidState)
		}

		for _, m := range r.metrics {
			m.Observe(r.sim, t)
		}
		for _, o := range r.observers {
			o.OnTick(r.sim, t)
		}

		if (i+1)%sample == 0 {
			result.Times = append(result.Times, t)
			result.States = append(result.States, r.sim.Snapshot())
		}
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.FinalStat = r.sim.Stats()

	return result, nil
}

// RunWithCallback steps until Duration elapses or the callback returns
// false, handing the live Sim to the caller after every tick.
func (r *Runner) RunWithCallback(ctx context.Context, cfg Config, callback func(s *gas.Sim, t float64) bool) error {
	if cfg.Duration <= 0 {
		return fmt.Errorf("runner: duration must be positive, got %g", cfg.Duration)
	}

	tick := r.sim.World().TickDuration
	for t := 0.0; t < cfg.Duration; {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		r.sim.Step()
		t += tick

		if !r.sim.Valid() {
			return fmt.Errorf("t=%.1fms: %w", t, gas.ErrInvalidState)
		}
		if !callback(r.sim, t) {
			return nil
		}
	}
	return nil
}
