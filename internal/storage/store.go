package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/orbitsim/internal/physics"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

var trajectoryHeader = []string{"frame", "time", "body", "name", "x", "y", "vx", "vy"}

type Store struct {
	baseDir string
	logger  *slog.Logger
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, logger: slog.With("component", "storage", "dir", baseDir)}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type BodyMeta struct {
	Name   string  `json:"name"`
	Mass   float64 `json:"mass"`
	Radius float64 `json:"radius"`
	Color  string  `json:"color"`
}

type SystemMeta struct {
	G             float64 `json:"g"`
	TraceInterval uint32  `json:"trace_interval"`
	TimeScale     float64 `json:"time_scale"`
	TrailCapacity int     `json:"trail_capacity"`
	Forces        string  `json:"forces"`
	Theta         float64 `json:"theta"`
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Scenario    string             `json:"scenario"`
	Timestamp   time.Time          `json:"timestamp"`
	System      SystemMeta         `json:"system"`
	Dt          float64            `json:"dt"`
	Frames      int                `json:"frames"`
	SampleEvery int                `json:"sample_every"`
	Elapsed     float64            `json:"elapsed"`
	Bodies      []BodyMeta         `json:"bodies"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Describe fills the system and body sections of a run's metadata.
func Describe(scenario string, sys *physics.System) RunMetadata {
	cfg := sys.Config()
	meta := RunMetadata{
		Scenario: scenario,
		System: SystemMeta{
			G:             cfg.G,
			TraceInterval: cfg.TraceInterval,
			TimeScale:     cfg.TimeScale,
			TrailCapacity: cfg.TrailCapacity,
			Forces:        string(cfg.Forces),
			Theta:         cfg.Theta,
		},
		Bodies:  make([]BodyMeta, 0, sys.Len()),
		Metrics: make(map[string]float64),
	}
	for _, b := range sys.Bodies() {
		meta.Bodies = append(meta.Bodies, BodyMeta{Name: b.Name(), Mass: b.Mass(), Radius: b.Radius(), Color: b.Color()})
	}
	return meta
}

// Save writes a new run directory and returns its id. meta.ID and
// meta.Timestamp are assigned here. A failed save leaves no directory behind.
func (s *Store) Save(meta RunMetadata, samples []Sample) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Scenario, now.UnixNano())
	meta.Timestamp = now
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeRun(runDir, &meta, samples); err != nil {
		if rmErr := os.RemoveAll(runDir); rmErr != nil {
			s.logger.Warn("failed to remove partial run", "operation", "save", "id", meta.ID, "error", rmErr)
		}
		return "", err
	}

	s.logger.Debug("run saved", "operation", "save", "id", meta.ID, "samples", len(samples))
	return meta.ID, nil
}

func writeRun(runDir string, meta *RunMetadata, samples []Sample) error {
	err := writeFile(filepath.Join(runDir, metadataFile), func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err != nil {
		return err
	}

	return writeFile(filepath.Join(runDir, trajectoryFile), func(f *os.File) error {
		w := csv.NewWriter(f)
		if err := w.Write(trajectoryHeader); err != nil {
			return err
		}
		for _, smp := range samples {
			if err := w.Write(smp.record()); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	})
}

// writeFile creates path, runs fill and reports the first error of fill or Close.
func writeFile(path string, fill func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fill(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			s.logger.Debug("skipping run directory", "operation", "list", "entry", entry.Name(), "error", err)
			continue
		}
		runs = append(runs, *meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrajectory reads the samples of a run in file order. Malformed rows
// are skipped.
func (s *Store) LoadTrajectory(runID string) ([]Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []Sample{}, nil
	}

	samples := make([]Sample, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		smp, err := parseSample(records[i])
		if err != nil {
			s.logger.Debug("skipping malformed row", "operation", "load_trajectory", "run", runID, "row", i, "error", err)
			continue
		}
		samples = append(samples, smp)
	}

	return samples, nil
}

func parseSample(record []string) (Sample, error) {
	if len(record) != len(trajectoryHeader) {
		return Sample{}, fmt.Errorf("expected %d fields, got %d", len(trajectoryHeader), len(record))
	}

	frame, err := strconv.ParseUint(record[0], 10, 64)
	if err != nil {
		return Sample{}, err
	}
	body, err := strconv.Atoi(record[2])
	if err != nil {
		return Sample{}, err
	}

	var vals [5]float64
	for i, idx := range []int{1, 4, 5, 6, 7} {
		vals[i], err = strconv.ParseFloat(record[idx], 64)
		if err != nil {
			return Sample{}, err
		}
	}

	return Sample{
		Frame: frame,
		Time:  vals[0],
		Body:  body,
		Name:  record[3],
		X:     vals[1],
		Y:     vals[2],
		VX:    vals[3],
		VY:    vals[4],
	}, nil
}
