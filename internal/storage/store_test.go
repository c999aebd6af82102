package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/rkode/internal/dynamo"
	"github.com/san-kum/rkode/internal/trajectory"
)

func sampleTrajectory() *trajectory.Trajectory {
	return &trajectory.Trajectory{
		Times:  []float64{0.0, 0.01},
		States: []dynamo.State{{1.0, 0.0}, {0.9, -0.1}},
	}
}

func sampleMeta() RunMetadata {
	return RunMetadata{
		Field:  "harmonic",
		Method: "rk4",
		Order:  2,
		H:      0.01,
		N:      1,
		Y0:     []float64{1, 0},
		Params: map[string]float64{"omega": 1},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	result := &dynamo.Result{
		Method:    "rk4",
		Steps:     1,
		FinalTime: 0.01,
		Final:     dynamo.State{0.9, -0.1},
		Metrics:   map[string]float64{"energy": 1.5},
	}

	runID, err := st.Save(sampleMeta(), sampleTrajectory(), result)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(runID, "harmonic_"), "run id %q", runID)

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, "harmonic", meta.Field)
	assert.Equal(t, "rk4", meta.Method)
	assert.Equal(t, 1.5, meta.Metrics["energy"])
	assert.Equal(t, 1, meta.Steps)
	assert.Equal(t, []float64{0.9, -0.1}, meta.Final)

	tr, err := st.LoadTrajectory(runID)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.0, 0.01}, tr.Times)
	require.Len(t, tr.States, 2)
	assert.Equal(t, dynamo.State{0.9, -0.1}, tr.States[1])
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	first, err := st.Save(sampleMeta(), sampleTrajectory(), nil)
	require.NoError(t, err)
	second, err := st.Save(sampleMeta(), sampleTrajectory(), nil)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	runs, err = st.List()
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "missing"))
	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	require.NoError(t, st.Init())

	run, err := st.Create(sampleMeta())
	require.NoError(t, err)
	require.NoError(t, run.Record(0, dynamo.State{1, 0}))
	require.NoError(t, run.Finish(nil))

	runDir := filepath.Join(tmpDir, run.ID())
	assert.FileExists(t, filepath.Join(runDir, "metadata.json"))
	assert.FileExists(t, filepath.Join(runDir, "trajectory.csv"))

	data, err := os.ReadFile(filepath.Join(runDir, "trajectory.csv"))
	require.NoError(t, err)
	assert.Equal(t, "t,y0,y1\n0,1,0\n", string(data))
}

func TestExport(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runID, err := st.Save(sampleMeta(), sampleTrajectory(), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, st.ExportJSON(&buf, runID))

	var data ExportData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &data))
	assert.Equal(t, runID, data.ID)
	assert.Equal(t, []float64{0.0, 0.01}, data.Times)
	assert.Equal(t, [][]float64{{1.0, 0.0}, {0.9, -0.1}}, data.States)

	buf.Reset()
	require.NoError(t, st.ExportCSV(&buf, runID))
	assert.True(t, strings.HasPrefix(buf.String(), "t,y0,y1\n"))

	assert.Error(t, st.ExportJSON(&buf, "missing"))
}
