package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/rkode/internal/dynamo"
	"github.com/san-kum/rkode/internal/trajectory"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
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
	Field       string             `json:"field"`
	Method      string             `json:"method"`
	Timestamp   time.Time          `json:"timestamp"`
	Order       int                `json:"order"`
	T0          float64            `json:"t0"`
	H           float64            `json:"h"`
	N           int                `json:"n"`
	Y0          []float64          `json:"y0"`
	Params      map[string]float64 `json:"params,omitempty"`
	Steps       int                `json:"steps"`
	Evaluations int                `json:"evaluations"`
	FinalTime   float64            `json:"final_time"`
	Final       []float64          `json:"final"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Run is an open run directory. It records trajectory points as they are
// produced; Finish writes the metadata.
type Run struct {
	meta RunMetadata
	dir  string
	file *os.File
	sink *trajectory.CSV
}

// Create allocates a run id and opens the run's trajectory file. Only the
// descriptive fields of meta (field, method, config, y0, params) are used.
func (s *Store) Create(meta RunMetadata) (*Run, error) {
	meta.ID = fmt.Sprintf("%s_%s", meta.Field, uuid.NewString()[:8])
	meta.Timestamp = time.Now()
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, err
	}

	f, err := os.Create(filepath.Join(runDir, trajectoryFile))
	if err != nil {
		return nil, err
	}

	return &Run{
		meta: meta,
		dir:  runDir,
		file: f,
		sink: trajectory.NewCSV(f, meta.Order),
	}, nil
}

func (r *Run) ID() string { return r.meta.ID }

func (r *Run) Record(t float64, y dynamo.State) error {
	return r.sink.Record(t, y)
}

// Finish closes the trajectory file and writes metadata.json from result.
// A nil result still closes the run.
func (r *Run) Finish(result *dynamo.Result) error {
	if err := r.sink.Flush(); err != nil {
		r.file.Close()
		return err
	}
	if err := r.file.Close(); err != nil {
		return err
	}

	if result != nil {
		r.meta.Steps = result.Steps
		r.meta.Evaluations = result.Evaluations
		r.meta.FinalTime = result.FinalTime
		r.meta.Final = result.Final
		r.meta.Metrics = result.Metrics
	}

	metaFile, err := os.Create(filepath.Join(r.dir, metadataFile))
	if err != nil {
		return err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	return enc.Encode(r.meta)
}

// Save stores an already recorded trajectory as a new run.
func (s *Store) Save(meta RunMetadata, tr *trajectory.Trajectory, result *dynamo.Result) (string, error) {
	run, err := s.Create(meta)
	if err != nil {
		return "", err
	}
	if err := tr.Replay(run); err != nil {
		run.Finish(nil)
		return "", err
	}
	if err := run.Finish(result); err != nil {
		return "", err
	}
	return run.ID(), nil
}

// List returns every readable run, oldest first.
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
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
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

func (s *Store) LoadTrajectory(runID string) (*trajectory.Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return trajectory.ReadCSV(file)
}

// TrajectoryPath is the on-disk location of a run's CSV file.
func (s *Store) TrajectoryPath(runID string) string {
	return filepath.Join(s.baseDir, runID, trajectoryFile)
}
