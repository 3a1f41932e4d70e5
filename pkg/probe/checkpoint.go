package probe

import (
	"encoding/gob"
	"os"
)

// Checkpoint holds enough of a Table to resume recording a long run
// without replaying every prior step.
type Checkpoint struct {
	Labels []string
	Rows   []Row
}

// SaveCheckpoint writes t's current rows to path.
func SaveCheckpoint(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	ckpt := Checkpoint{Labels: t.labels, Rows: t.Rows()}
	return gob.NewEncoder(f).Encode(&ckpt)
}

// LoadCheckpoint reconstructs a Table from a file written by
// SaveCheckpoint.
func LoadCheckpoint(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var ckpt Checkpoint
	if err := gob.NewDecoder(f).Decode(&ckpt); err != nil {
		return nil, err
	}
	return &Table{labels: ckpt.Labels, rows: ckpt.Rows}, nil
}
