package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/schrodinger/internal/experiment"
	"github.com/san-kum/schrodinger/internal/shooting"
	"github.com/san-kum/schrodinger/internal/wave"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
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

func (s *Store) Dir() string { return s.baseDir }

type GridMetadata struct {
	XLeft  float64 `json:"x_left"`
	XRight float64 `json:"x_right"`
	Points int     `json:"points"`
}

type StateMetadata struct {
	Nodes         int       `json:"nodes"`
	Energy        float64   `json:"energy"`
	Exact         *float64  `json:"exact,omitempty"`
	NodeLocations []float64 `json:"node_locations"`
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Potential string             `json:"potential"`
	Params    map[string]float64 `json:"params,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Units     string             `json:"units"`
	Scheme    string             `json:"scheme"`
	Tol       float64            `json:"tol"`
	Grid      GridMetadata       `json:"grid"`
	States    []StateMetadata    `json:"states"`
}

// Save writes res under a new run directory and returns its ID.
func (s *Store) Save(res *experiment.Result) (string, error) {
	if res == nil || res.Grid == nil {
		return "", errors.New("storage: empty result")
	}
	if err := s.Init(); err != nil {
		return "", err
	}

	now := time.Now()
	runID, runDir, err := s.newRunDir(res.Config.Potential, now)
	if err != nil {
		return "", err
	}

	meta, err := metadataFor(runID, now, res)
	if err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeStates(filepath.Join(runDir, statesFile), res.Grid, res.States); err != nil {
		return "", err
	}
	return runID, nil
}

// newRunDir creates <potential>_<unix>, adding a counter when a run in the
// same second already took the name.
func (s *Store) newRunDir(potential string, now time.Time) (string, string, error) {
	base := fmt.Sprintf("%s_%d", potential, now.Unix())
	for i := 0; ; i++ {
		runID := base
		if i > 0 {
			runID = fmt.Sprintf("%s-%d", base, i)
		}
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", "", err
		}
	}
}

func metadataFor(runID string, now time.Time, res *experiment.Result) (RunMetadata, error) {
	cfg := res.Config
	meta := RunMetadata{
		ID:        runID,
		Potential: cfg.Potential,
		Params:    cfg.Params,
		Timestamp: now,
		Units:     res.Units.String(),
		Scheme:    cfg.Scheme,
		Tol:       cfg.Search.Tol,
		Grid: GridMetadata{
			XLeft:  res.Grid.Left(),
			XRight: res.Grid.Right(),
			Points: res.Grid.Len(),
		},
		States: make([]StateMetadata, len(res.States)),
	}

	for i, st := range res.States {
		locs, err := shooting.NodeLocations(st.Psi, res.Grid, cfg.Search.Tol)
		if err != nil {
			return RunMetadata{}, err
		}
		sm := StateMetadata{Nodes: st.Nodes, Energy: st.Energy, NodeLocations: locs}
		if i < len(res.Exact) && res.Exact[i].Known {
			v := res.Exact[i].Value
			sm.Exact = &v
		}
		if sm.NodeLocations == nil {
			sm.NodeLocations = []float64{}
		}
		meta.States[i] = sm
	}
	return meta, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeStates(path string, g *wave.Grid, states []wave.Eigenstate) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"x"}
	for i := range states {
		header = append(header, fmt.Sprintf("psi%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	row := make([]string, len(states)+1)
	for i := 0; i < g.Len(); i++ {
		row[0] = strconv.FormatFloat(g.At(i), 'g', -1, 64)
		for j, st := range states {
			if i >= len(st.Psi) {
				return fmt.Errorf("%w: state %d has %d values on %d points", wave.ErrLengthMismatch, j, len(st.Psi), g.Len())
			}
			row[j+1] = strconv.FormatFloat(st.Psi[i], 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
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
		return nil, fmt.Errorf("storage: run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadStates reads the grid and every stored wavefunction of a run.
func (s *Store) LoadStates(runID string) ([]float64, []wave.Wavefunction, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("storage: run %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []float64{}, []wave.Wavefunction{}, nil
	}

	cols := len(records[0]) - 1
	xs := make([]float64, 0, len(records)-1)
	psis := make([]wave.Wavefunction, cols)
	for j := range psis {
		psis[j] = make(wave.Wavefunction, 0, len(records)-1)
	}

	for i, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("storage: run %s row %d: %w", runID, i+1, err)
			}
			vals[j] = v
		}
		xs = append(xs, vals[0])
		for j := 0; j < cols; j++ {
			psis[j] = append(psis[j], vals[j+1])
		}
	}
	return xs, psis, nil
}
