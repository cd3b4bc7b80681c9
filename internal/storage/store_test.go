package storage

import (
	"context"
	"math/rand"
	"testing"

	"github.com/san-kum/gassim/internal/config"
	"github.com/san-kum/gassim/internal/gas"
	"github.com/san-kum/gassim/internal/runner"
)

func makeRun(t *testing.T) (*config.Config, *runner.Result, uint64) {
	t.Helper()
	cfg := config.Default()
	cfg.Bodies = 10
	cfg.DurationMS = 400
	cfg.SampleEvery = 5
	cfg.Seed = 21

	sim, err := gas.New(cfg.World(), cfg.Bodies, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		t.Fatalf("gas.New: %v", err)
	}
	res, err := runner.New(sim).Run(context.Background(), runner.Config{
		Duration:    cfg.DurationMS,
		SampleEvery: cfg.SampleEvery,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return cfg, res, sim.Digest()
}

func TestSaveAndLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	cfg, res, digest := makeRun(t)
	runID, err := st.Save(cfg, res, digest)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	meta, err := st.LoadMeta(runID)
	if err != nil {
		t.Fatalf("LoadMeta: %v", err)
	}
	if meta.ID != runID {
		t.Errorf("id: got %q, want %q", meta.ID, runID)
	}
	if meta.Bodies != 10 || meta.Seed != 21 {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.TicksRun != res.TicksRun {
		t.Errorf("ticks: got %d, want %d", meta.TicksRun, res.TicksRun)
	}
	if len(meta.FinalDigest) != 16 {
		t.Errorf("digest not 16 hex chars: %q", meta.FinalDigest)
	}

	times, snaps, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("LoadStates: %v", err)
	}
	if len(times) != len(res.Times) {
		t.Fatalf("times: got %d rows, want %d", len(times), len(res.Times))
	}
	if len(snaps[0].Pos) != 10 {
		t.Errorf("bodies per snapshot: got %d, want 10", len(snaps[0].Pos))
	}

	// CSV stores 6 decimal places; reloaded values match to that
	last := len(snaps) - 1
	for b := range snaps[last].Pos {
		d := snaps[last].Pos[b].Sub(res.States[last].Pos[b]).Norm()
		if d > 1e-5 {
			t.Errorf("body %d drifted %g through roundtrip", b, d)
		}
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("List empty: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	cfg, res, digest := makeRun(t)
	if _, err := st.Save(cfg, res, digest); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := st.Save(cfg, res, digest); err != nil {
		t.Fatalf("Save: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestLoadMetaMissing(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.LoadMeta("no_such_run"); err == nil {
		t.Error("expected error for missing run")
	}
}
