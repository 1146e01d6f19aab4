package storage

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/schrodinger/internal/config"
	"github.com/san-kum/schrodinger/internal/experiment"
	"github.com/san-kum/schrodinger/internal/wave"
)

func sineResult(t *testing.T) *experiment.Result {
	t.Helper()
	g, err := wave.NewGrid(0, 1, 51)
	require.NoError(t, err)

	states := make([]wave.Eigenstate, 2)
	for k := range states {
		psi := make(wave.Wavefunction, g.Len())
		for i := range psi {
			psi[i] = math.Sqrt2 * math.Sin(float64(k+1)*math.Pi*g.At(i))
		}
		states[k] = wave.Eigenstate{Energy: float64((k + 1) * (k + 1)), Nodes: k, Psi: psi}
	}

	cfg := config.DefaultConfig()
	cfg.Potential = "squarewell"
	cfg.Params = map[string]float64{"depth": 10}
	cfg.Search.Tol = 1e-9
	return &experiment.Result{
		Config: cfg,
		Grid:   g,
		Units:  wave.Atomic,
		States: states,
		Exact:  []experiment.Level{{Value: 1, Known: true}, {}},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	res := sineResult(t)

	runID, err := st.Save(res)
	require.NoError(t, err)
	assert.NotEmpty(t, runID)

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, "squarewell", meta.Potential)
	assert.Equal(t, "atomic", meta.Units)
	assert.Equal(t, 10.0, meta.Params["depth"])
	assert.Equal(t, GridMetadata{XLeft: 0, XRight: 1, Points: 51}, meta.Grid)

	require.Len(t, meta.States, 2)
	require.NotNil(t, meta.States[0].Exact)
	assert.Equal(t, 1.0, *meta.States[0].Exact)
	assert.Nil(t, meta.States[1].Exact)
	assert.Empty(t, meta.States[0].NodeLocations)
	require.Len(t, meta.States[1].NodeLocations, 1)
	assert.InDelta(t, 0.5, meta.States[1].NodeLocations[0], 1e-9)

	xs, psis, err := st.LoadStates(runID)
	require.NoError(t, err)
	assert.Equal(t, res.Grid.Points(), xs)
	require.Len(t, psis, 2)
	for k := range psis {
		assert.Equal(t, res.States[k].Psi, psis[k], "state %d round trip", k)
	}
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runID, err := st.Save(sineResult(t))
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, runID, "metadata.json"))
	assert.FileExists(t, filepath.Join(dir, runID, "states.csv"))

	data, err := os.ReadFile(filepath.Join(dir, runID, "states.csv"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("x,psi0,psi1\n")))
}

func TestStoreList(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "runs"))

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	first, err := st.Save(sineResult(t))
	require.NoError(t, err)
	second, err := st.Save(sineResult(t))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	// stray entries are skipped
	require.NoError(t, os.WriteFile(filepath.Join(st.Dir(), "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(st.Dir(), "broken"), 0755))

	runs, err = st.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.ElementsMatch(t, []string{first, second}, []string{runs[0].ID, runs[1].ID})
}

func TestStoreLoad_Missing(t *testing.T) {
	st := New(t.TempDir())

	_, err := st.Load("nope")
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, _, err = st.LoadStates("nope")
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = st.Save(nil)
	assert.Error(t, err)
}

func TestExportJSON(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runID, err := st.Save(sineResult(t))
	require.NoError(t, err)

	out := filepath.Join(dir, "run.json")
	require.NoError(t, st.ExportJSONFile(runID, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var doc ExportData
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, runID, doc.ID)
	assert.Len(t, doc.X, 51)
	require.Len(t, doc.Psi, 2)
	assert.Len(t, doc.Psi[1], 51)

	missing := filepath.Join(dir, "missing.json")
	assert.Error(t, st.ExportJSONFile("missing", missing))
	assert.NoFileExists(t, missing)
}

func TestExportJSON_Writer(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(sineResult(t))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, st.ExportJSON(runID, &buf))

	var doc ExportData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, runID, doc.ID)
	assert.Len(t, doc.X, 51)

	buf.Reset()
	assert.ErrorIs(t, st.ExportJSON("missing", &buf), os.ErrNotExist)
	assert.Zero(t, buf.Len())
}

func TestExportJSONFile_BadPath(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(sineResult(t))
	require.NoError(t, err)

	assert.Error(t, st.ExportJSONFile(runID, filepath.Join(t.TempDir(), "no", "such", "dir.json")))
}
