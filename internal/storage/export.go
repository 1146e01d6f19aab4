package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/schrodinger/internal/wave"
)

type ExportData struct {
	RunMetadata
	X   []float64           `json:"x"`
	Psi []wave.Wavefunction `json:"psi"`
}

func WriteJSON(w io.Writer, meta *RunMetadata, xs []float64, psis []wave.Wavefunction) error {
	data := ExportData{RunMetadata: *meta, X: xs, Psi: psis}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportJSON writes a stored run to w as one JSON document.
func (s *Store) ExportJSON(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	xs, psis, err := s.LoadStates(runID)
	if err != nil {
		return err
	}
	return WriteJSON(w, meta, xs, psis)
}

// ExportJSONFile writes a stored run to path. Nothing is created when the
// run cannot be loaded.
func (s *Store) ExportJSONFile(runID, path string) (err error) {
	if _, err := s.Load(runID); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return s.ExportJSON(runID, file)
}
