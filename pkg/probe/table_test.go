package probe

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tholden/pulsedeck/pkg/circuit"
	"github.com/tholden/pulsedeck/pkg/memory"
)

func testCircuitAndState() (*circuit.Circuit, *memory.StateBuffers) {
	c := &circuit.Circuit{
		Nodes: []circuit.Node{
			{Kind: circuit.RCGround},
			{Kind: circuit.RLSeries},
		},
		Probes: []circuit.Probe{
			{Kind: circuit.ProbeVoltage, NodeIndex: 0, Label: "V1"},
			{Kind: circuit.ProbeCurrent, NodeIndex: 1, Label: "I1"},
		},
	}
	state := memory.NewStateBuffers(2, nil)
	return c, state
}

func TestRegistryValue(t *testing.T) {
	c, state := testCircuitAndState()
	reg := NewRegistry(c, state)
	state.VOld[0] = 42
	state.IOld[1] = 3

	v, err := reg.Value("V1")
	require.NoError(t, err)
	require.Equal(t, 42.0, v)

	i, err := reg.Value("I1")
	require.NoError(t, err)
	require.Equal(t, 3.0, i)

	_, err = reg.Value("nope")
	require.Error(t, err)
}

func TestTableRecordAndCSV(t *testing.T) {
	c, state := testCircuitAndState()
	reg := NewRegistry(c, state)
	table := NewTable(reg.Labels())

	state.VOld[0], state.IOld[1] = 10, 1
	require.NoError(t, table.Record(0, reg))
	state.VOld[0], state.IOld[1] = 5, 2
	require.NoError(t, table.Record(1e-8, reg))

	require.Equal(t, 2, table.Len())

	var buf bytes.Buffer
	require.NoError(t, table.WriteCSV(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "Time(s),V1,I1", lines[0])
}

func TestCheckpointRoundTrip(t *testing.T) {
	c, state := testCircuitAndState()
	reg := NewRegistry(c, state)
	table := NewTable(reg.Labels())
	require.NoError(t, table.Record(0, reg))

	path := filepath.Join(t.TempDir(), "ckpt.gob")
	require.NoError(t, SaveCheckpoint(path, table))

	loaded, err := LoadCheckpoint(path)
	require.NoError(t, err)
	require.Equal(t, table.Rows(), loaded.Rows())
	require.Equal(t, table.labels, loaded.labels)
}

func TestCheckpointLoadMissingFile(t *testing.T) {
	_, err := LoadCheckpoint(filepath.Join(os.TempDir(), "does-not-exist.gob"))
	require.Error(t, err)
}

func TestSmoothAndDownsample(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}
	smoothed := Smooth(data, 3)
	require.Len(t, smoothed, len(data))
	require.InDelta(t, 2.0, smoothed[1], 1e-9)

	rows := []Row{{T: 0}, {T: 1}, {T: 2}, {T: 3}, {T: 4}}
	down := Downsample(rows, 2)
	require.Equal(t, []float64{0, 2, 4}, []float64{down[0].T, down[1].T, down[2].T})
}
