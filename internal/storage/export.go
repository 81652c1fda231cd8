package storage

import (
	"encoding/json"
	"io"
)

// ExportData is the flat JSON form of a stored run.
type ExportData struct {
	Metadata RunMetadata `json:"metadata"`
	Times    []float64   `json:"times"`
	Lengths  []float64   `json:"lengths"`
	Velocity []float64   `json:"velocities"`
	Pressure []float64   `json:"pressures"`
	Strain   []float64   `json:"strains"`
}

// ExportJSON writes a stored run as one indented JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	data, err := s.LoadRun(runID)
	if err != nil {
		return err
	}

	out := ExportData{
		Metadata: *meta,
		Times:    data.Times,
		Lengths:  data.Lengths,
		Velocity: data.Velocities,
		Pressure: data.Pressures,
		Strain:   data.Strains,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// ExportCSV copies the stored trajectory CSV to w.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	file, err := s.openStates(runID)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(w, file)
	return err
}
