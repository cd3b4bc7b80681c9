// Package storage persists simulation runs: a metadata JSON document
// and a CSV of sampled body states per run directory.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/gassim/internal/config"
	"github.com/san-kum/gassim/internal/gas"
	"github.com/san-kum/gassim/internal/runner"
	"github.com/san-kum/gassim/internal/vec"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Bodies      int                `json:"bodies"`
	Width       float64            `json:"width"`
	Height      float64            `json:"height"`
	Radius      float64            `json:"radius"`
	ColRadius   float64            `json:"collision_radius"`
	TickMS      float64            `json:"tick_ms"`
	DurationMS  float64            `json:"duration_ms"`
	TicksRun    int                `json:"ticks_run"`
	Collisions  uint64             `json:"collisions"`
	WallBounces uint64             `json:"wall_bounces"`
	WallImpulse float64            `json:"wall_impulse"`
	Metrics     map[string]float64 `json:"metrics"`

	// FinalDigest is the xxhash of the final body state; identical
	// seed and config must reproduce it exactly.
	FinalDigest string `json:"final_digest"`
}

// Save writes one completed run and returns its generated ID.
func (s *Store) Save(cfg *config.Config, result *runner.Result, digest uint64) (string, error) {
	runID := fmt.Sprintf("%d_%s", time.Now().Unix(), uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	w := cfg.World()
	meta := RunMetadata{
		ID:          runID,
		Timestamp:   time.Now(),
		Seed:        cfg.Seed,
		Bodies:      cfg.Bodies,
		Width:       w.Width,
		Height:      w.Height,
		Radius:      w.Radius,
		ColRadius:   w.ColRadius,
		TickMS:      w.TickDuration,
		DurationMS:  cfg.DurationMS,
		TicksRun:    result.TicksRun,
		Collisions:  result.FinalStat.Collisions,
		WallBounces: result.FinalStat.WallBounces,
		WallImpulse: result.FinalStat.WallImpulse,
		Metrics:     result.Metrics,
		FinalDigest: fmt.Sprintf("%016x", digest),
	}

	if err := s.writeMeta(runDir, meta); err != nil {
		return "", err
	}
	if err := s.writeStates(runDir, result); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) writeMeta(runDir string, meta RunMetadata) error {
	f, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func (s *Store) writeStates(runDir string, result *runner.Result) error {
	f, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if len(result.States) == 0 {
		return nil
	}

	n := len(result.States[0].Pos)
	header := []string{"time"}
	for i := 0; i < n; i++ {
		header = append(header,
			fmt.Sprintf("px%d", i), fmt.Sprintf("py%d", i),
			fmt.Sprintf("vx%d", i), fmt.Sprintf("vy%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, snap := range result.States {
		row := make([]string, 0, 1+4*n)
		row = append(row, strconv.FormatFloat(result.Times[i], 'f', 6, 64))
		for b := 0; b < n; b++ {
			row = append(row,
				strconv.FormatFloat(snap.Pos[b].X, 'f', 6, 64),
				strconv.FormatFloat(snap.Pos[b].Y, 'f', 6, 64),
				strconv.FormatFloat(snap.Vel[b].X, 'f', 6, 64),
				strconv.FormatFloat(snap.Vel[b].Y, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// List returns metadata for every stored run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.LoadMeta(e.Name())
		if err != nil {
			continue // skip unreadable or foreign directories
		}
		runs = append(runs, meta)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) LoadMeta(runID string) (RunMetadata, error) {
	var meta RunMetadata
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return meta, err
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return meta, fmt.Errorf("run %s: %w", runID, err)
	}
	return meta, nil
}

// LoadStates reads back the sampled snapshots of a run.
func (s *Store) LoadStates(runID string) ([]float64, []gas.Snapshot, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) < 2 {
		return nil, nil, nil
	}

	n := (len(records[0]) - 1) / 4
	times := make([]float64, 0, len(records)-1)
	snaps := make([]gas.Snapshot, 0, len(records)-1)

	for _, rec := range records[1:] {
		t, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("run %s: bad time %q: %w", runID, rec[0], err)
		}
		snap := gas.Snapshot{
			Pos: make([]vec.Vec2, n),
			Vel: make([]vec.Vec2, n),
		}
		for b := 0; b < n; b++ {
			vals := make([]float64, 4)
			for k := 0; k < 4; k++ {
				v, err := strconv.ParseFloat(rec[1+b*4+k], 64)
				if err != nil {
					return nil, nil, fmt.Errorf("run %s: bad value %q: %w", runID, rec[1+b*4+k], err)
				}
				vals[k] = v
			}
			snap.Pos[b] = vec.New(vals[0], vals[1])
			snap.Vel[b] = vec.New(vals[2], vals[3])
		}
		times = append(times, t)
		snaps = append(snaps, snap)
	}
	return times, snaps, nil
}
