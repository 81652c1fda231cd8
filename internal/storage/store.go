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

	"github.com/fluidx-lab/musclesim/internal/dynamo"
	"github.com/fluidx-lab/musclesim/internal/muscle"
)

// Store persists runs under baseDir, one directory per run holding
// metadata.json and states.csv.
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
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Integrator string             `json:"integrator"`
	Samples    int                `json:"samples"`
	ClampCount int                `json:"clamp_count"`
	Params     map[string]float64 `json:"params"`
	Metrics    map[string]float64 `json:"metrics"`
}

var csvHeader = []string{"time", "length", "velocity", "pressure", "strain"}

// Save writes one run. The strain column is derived from the length so
// stored runs can be plotted without the model.
func (s *Store) Save(m *muscle.Muscle, cfg dynamo.Config, integrator string, result *dynamo.Result) (string, error) {
	runID := fmt.Sprintf("muscle_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Timestamp:  time.Now(),
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Integrator: integrator,
		Samples:    result.Samples(),
		ClampCount: result.ClampCount,
		Params:     m.GetParams(),
		Metrics:    result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}

	params := m.Params()
	for i := range result.States {
		length := result.States[i][0]
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(length, 'f', 9, 64),
			strconv.FormatFloat(result.States[i][1], 'f', 9, 64),
			strconv.FormatFloat(result.Pressures[i], 'f', 3, 64),
			strconv.FormatFloat(params.GeometryAt(length).Strain, 'f', 9, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, w.Error()
}

// List returns metadata for all stored runs, newest first.
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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// RunData is a stored trajectory split into named columns.
type RunData struct {
	Times      []float64
	Lengths    []float64
	Velocities []float64
	Pressures  []float64
	Strains    []float64
}

func (s *Store) openStates(runID string) (*os.File, error) {
	return os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
}

func (s *Store) LoadRun(runID string) (*RunData, error) {
	file, err := s.openStates(runID)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return &RunData{}, nil
	}

	data := &RunData{
		Times:      make([]float64, 0, len(records)-1),
		Lengths:    make([]float64, 0, len(records)-1),
		Velocities: make([]float64, 0, len(records)-1),
		Pressures:  make([]float64, 0, len(records)-1),
		Strains:    make([]float64, 0, len(records)-1),
	}
	for _, record := range records[1:] {
		if len(record) < len(csvHeader) {
			continue
		}
		vals := make([]float64, len(csvHeader))
		ok := true
		for j := range vals {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		data.Times = append(data.Times, vals[0])
		data.Lengths = append(data.Lengths, vals[1])
		data.Velocities = append(data.Velocities, vals[2])
		data.Pressures = append(data.Pressures, vals[3])
		data.Strains = append(data.Strains, vals[4])
	}

	return data, nil
}

func (s *Store) Delete(runID string) error {
	runDir := filepath.Join(s.baseDir, runID)
	if _, err := os.Stat(runDir); err != nil {
		return err
	}
	return os.RemoveAll(runDir)
}
