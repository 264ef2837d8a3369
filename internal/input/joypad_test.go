package input

import "testing"

// TestStrobeSequenceS4 implements spec.md scenario S4.
func TestStrobeSequenceS4(t *testing.T) {
	j := New()
	j.SetButtons([8]bool{true, false, false, true, true, false, false, true}) // A,Start,Up,Right

	j.Write(1)
	j.Write(0)

	want := []uint8{1, 0, 0, 1, 1, 0, 0, 1}
	for i, w := range want {
		if got := j.Read(); got != w {
			t.Fatalf("read %d: got %d want %d", i+1, got, w)
		}
	}
	for i := 0; i < 2; i++ {
		if got := j.Read(); got != 1 {
			t.Fatalf("read %d (past bit 8): got %d want 1", 9+i, got)
		}
	}
}

func TestStrobeHighAlwaysReturnsButtonA(t *testing.T) {
	j := New()
	j.SetButton(ButtonA, true)
	j.SetButton(ButtonB, true)
	j.Write(1)
	for i := 0; i < 5; i++ {
		if got := j.Read(); got != 1 {
			t.Fatalf("strobe-high read %d = %d, want 1 (button A)", i, got)
		}
	}
}

func TestStrobeReassertResetsSequence(t *testing.T) {
	j := New()
	j.SetButtons([8]bool{true, true, false, false, false, false, false, false})
	j.Write(1)
	j.Write(0)
	j.Read()
	j.Read()
	j.Write(1)
	j.Write(0)
	if got := j.Read(); got != 1 {
		t.Fatalf("after re-strobe, first read should be button A again, got %d", got)
	}
}

func TestPropertyJoypadBit0RoundTrip(t *testing.T) {
	for v := uint8(0); v < 2; v++ {
		j := New()
		j.SetButton(ButtonA, v == 1)
		j.Write(1)
		if got := j.Read(); got != v {
			t.Fatalf("Write(1) then Read() should reflect button A bit, got %d want %d", got, v)
		}
	}
}
