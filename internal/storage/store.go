package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/advsampling/internal/sampler"
)

const (
	DefaultDir   = ".advsampling"
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var framesHeader = []string{"step", "position", "energy", "accepted"}

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID              string             `json:"id"`
	Timestamp       time.Time          `json:"timestamp"`
	Seed            int64              `json:"seed"`
	InitialPosition float64            `json:"initial_position"`
	Trials          int                `json:"trials"`
	MaxDisplacement float64            `json:"max_displacement"`
	Beta            float64            `json:"beta"`
	Metrics         map[string]float64 `json:"metrics"`
}

// Record is one stored frame.
type Record struct {
	Step     int     `json:"step"`
	Position float64 `json:"position"`
	Energy   float64 `json:"energy"`
	Accepted bool    `json:"accepted"`
}

func Records(frames []sampler.Frame) []Record {
	out := make([]Record, len(frames))
	for i, f := range frames {
		out[i] = Record{Step: f.Step, Position: f.Position, Energy: f.Energy, Accepted: f.Accepted}
	}
	return out
}

// Save writes meta and frames under a new run directory and returns its id.
// ID and Timestamp of meta are filled in by the store.
func (s *Store) Save(meta RunMetadata, frames []sampler.Frame) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}
	meta.Timestamp = s.now()
	runID, runDir, err := s.newRunDir(meta.Timestamp)
	if err != nil {
		return "", err
	}
	meta.ID = runID

	err = writeFile(filepath.Join(runDir, metadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err != nil {
		return "", err
	}
	err = writeFile(filepath.Join(runDir, framesFile), func(w io.Writer) error {
		return writeCSV(w, Records(frames))
	})
	if err != nil {
		return "", err
	}
	return runID, nil
}

// writeFile creates path and fills it with write. Errors from write take
// precedence over the one from closing the file.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

// newRunDir creates barrier_<unix>, adding a counter when a run from the
// same second already exists.
func (s *Store) newRunDir(ts time.Time) (string, string, error) {
	base := fmt.Sprintf("barrier_%d", ts.Unix())
	id := base
	for i := 1; ; i++ {
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", "", err
		}
		id = fmt.Sprintf("%s_%d", base, i)
	}
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
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s metadata: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadFrames(runID string) ([]Record, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("storage: %s frames: %w", runID, err)
	}
	if len(records) < 2 {
		return []Record{}, nil
	}

	out := make([]Record, 0, len(records)-1)
	for i, row := range records[1:] {
		rec, err := parseRecord(row)
		if err != nil {
			return nil, fmt.Errorf("storage: %s frames line %d: %w", runID, i+2, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func parseRecord(row []string) (Record, error) {
	var rec Record
	if len(row) != len(framesHeader) {
		return rec, fmt.Errorf("expected %d fields, got %d", len(framesHeader), len(row))
	}
	var err error
	if rec.Step, err = strconv.Atoi(row[0]); err != nil {
		return rec, err
	}
	if rec.Position, err = strconv.ParseFloat(row[1], 64); err != nil {
		return rec, err
	}
	if rec.Energy, err = strconv.ParseFloat(row[2], 64); err != nil {
		return rec, err
	}
	if rec.Accepted, err = strconv.ParseBool(row[3]); err != nil {
		return rec, err
	}
	return rec, nil
}
