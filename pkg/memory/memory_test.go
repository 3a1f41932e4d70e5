package memory

import "testing"

func TestClearZeroesWithoutReallocating(t *testing.T) {
	m := New(3)
	m.D[0] = 1
	m.B[1] = 2
	m.AddEdit(0, 1, 5)

	m.Clear()

	for i, v := range m.D {
		if v != 0 {
			t.Fatalf("D[%d] = %v, want 0", i, v)
		}
	}
	for i, v := range m.B {
		if v != 0 {
			t.Fatalf("B[%d] = %v, want 0", i, v)
		}
	}
	if len(m.Edits) != 0 {
		t.Fatalf("Edits len = %d, want 0", len(m.Edits))
	}
	if cap(m.Edits) == 0 {
		t.Fatal("Clear must not drop the Edits backing array")
	}
}

func TestAddBandPlacesOffsetsCorrectly(t *testing.T) {
	m := New(3)
	m.AddBand(2, 0, 7)  // offset -2 -> L2
	m.AddBand(2, 1, 5)  // offset -1 -> L1
	m.AddBand(2, 2, 3)  // offset 0  -> D
	m.AddBand(2, 3, 9)  // offset +1 -> U1
	m.AddBand(2, 4, 11) // offset +2 -> U2
	m.AddBand(2, 5, 13) // offset +3 -> sparse edit

	if m.L2[2] != 7 || m.L1[2] != 5 || m.D[2] != 3 || m.U1[2] != 9 || m.U2[2] != 11 {
		t.Fatalf("band placement wrong: L2=%v L1=%v D=%v U1=%v U2=%v", m.L2[2], m.L1[2], m.D[2], m.U1[2], m.U2[2])
	}
	if len(m.Edits) != 1 || m.Edits[0] != (SparseEdit{Row: 2, Col: 5, Value: 13}) {
		t.Fatalf("expected one sparse edit for the out-of-band column, got %+v", m.Edits)
	}
}

func TestClearRowZeroesBandAndDropsEdits(t *testing.T) {
	m := New(3)
	m.AddBand(2, 2, 3)
	m.AddBand(2, 1, 5)
	m.AddEdit(2, 5, 13)
	m.AddEdit(1, 5, 99)

	m.ClearRow(2)

	if m.D[2] != 0 || m.L1[2] != 0 || m.U1[2] != 0 || m.L2[2] != 0 || m.U2[2] != 0 {
		t.Fatal("ClearRow must zero every band entry for the row")
	}
	if len(m.Edits) != 1 || m.Edits[0].Row != 1 {
		t.Fatalf("ClearRow must drop only edits for its own row, got %+v", m.Edits)
	}
}

func TestSwapIsInvolutive(t *testing.T) {
	s := NewStateBuffers(2, []float64{1, 2})
	vOld, iOld, vNew, iNew := &s.VOld[0], &s.IOld[0], &s.VNew[0], &s.INew[0]

	s.Swap()
	s.Swap()

	if &s.VOld[0] != vOld || &s.VNew[0] != vNew {
		t.Fatal("two swaps should restore VOld/VNew identity")
	}
	if &s.IOld[0] != iOld || &s.INew[0] != iNew {
		t.Fatal("two swaps should restore IOld/INew identity")
	}
}

func TestNewStateBuffersSeedsInitialVoltage(t *testing.T) {
	s := NewStateBuffers(3, []float64{10, 0, -5})
	want := []float64{10, 0, -5}
	for i, v := range want {
		if s.VOld[i] != v {
			t.Fatalf("VOld[%d] = %v, want %v", i, s.VOld[i], v)
		}
	}
	for i, v := range s.IOld {
		if v != 0 {
			t.Fatalf("IOld[%d] = %v, want 0", i, v)
		}
	}
}
