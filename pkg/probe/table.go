package probe

import (
	"encoding/csv"
	"io"
	"strconv"
	"sync"
)

// Row is one recorded instant: the simulation time and one value per
// registered probe label, in Table.Labels order.
type Row struct {
	T      float64
	Values []float64
}

// Table accumulates probe readings over a run. Safe for concurrent
// Record calls, mirroring the mutex-protected accumulator the teacher
// repo uses for its own results sink.
type Table struct {
	mu     sync.Mutex
	labels []string
	rows   []Row
}

// NewTable creates an empty table bound to the given label order.
func NewTable(labels []string) *Table {
	cp := make([]string, len(labels))
	copy(cp, labels)
	return &Table{labels: cp}
}

// Record appends one row by reading every registered label's current
// value out of reg.
func (t *Table) Record(tm float64, reg *Registry) error {
	values := make([]float64, len(t.labels))
	for i, label := range t.labels {
		v, err := reg.Value(label)
		if err != nil {
			return err
		}
		values[i] = v
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append(t.rows, Row{T: tm, Values: values})
	return nil
}

// Rows returns a copy of the accumulated rows.
func (t *Table) Rows() []Row {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// Len returns the number of recorded rows.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rows)
}

// WriteCSV renders the table as "Time(s),<label>..." with every value in
// six-significant-figure scientific notation, the format pulsed-power
// waveform post-processors expect. This is a flat one-shot export, not
// a managed streaming pipeline.
func (t *Table) WriteCSV(w io.Writer) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	cw := csv.NewWriter(w)
	header := append([]string{"Time(s)"}, t.labels...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range t.rows {
		record := make([]string, 0, len(row.Values)+1)
		record = append(record, formatSig(row.T))
		for _, v := range row.Values {
			record = append(record, formatSig(v))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatSig(v float64) string {
	return strconv.FormatFloat(v, 'e', 5, 64)
}

// Smooth returns a centered moving-average of data over the given odd
// window, for callers that want to de-noise a probe trace before
// plotting. Not used internally; exported for downstream tooling.
func Smooth(data []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}
	if window%2 == 0 {
		window++
	}
	half := window / 2
	out := make([]float64, len(data))
	for i := range data {
		lo, hi := i-half, i+half
		if lo < 0 {
			lo = 0
		}
		if hi >= len(data) {
			hi = len(data) - 1
		}
		sum := 0.0
		for j := lo; j <= hi; j++ {
			sum += data[j]
		}
		out[i] = sum / float64(hi-lo+1)
	}
	return out
}

// Downsample returns every stride-th row, always keeping the first and
// last. Not used internally; exported for downstream tooling.
func Downsample(rows []Row, stride int) []Row {
	if stride < 1 {
		stride = 1
	}
	if len(rows) == 0 {
		return nil
	}
	out := make([]Row, 0, len(rows)/stride+1)
	for i := 0; i < len(rows); i += stride {
		out = append(out, rows[i])
	}
	last := rows[len(rows)-1]
	if out[len(out)-1].T != last.T {
		out = append(out, last)
	}
	return out
}
