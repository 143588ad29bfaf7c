package matrix

import (
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"l": LevelL, "M": LevelM, "q": LevelQ, "H": LevelH, "highest": LevelH}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q) returned error: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseLevel("X"); err == nil {
		t.Errorf("expected error for unknown level")
	}
}

func TestNewRejectsNonSquare(t *testing.T) {
	if _, err := New([][]bool{{true, false}, {true}}); err == nil {
		t.Fatalf("expected error for ragged grid")
	}
	if _, err := New(nil); err == nil {
		t.Fatalf("expected error for empty grid")
	}
}

func TestNeighbors(t *testing.T) {
	m, err := New([][]bool{
		{true, false, false},
		{true, true, false},
		{false, false, true},
	})
	if err != nil {
		t.Fatal(err)
	}

	n := m.Neighbors(1, 1)
	if !n.Active() || n.North() || !n.West() || n.East() || n.South() {
		t.Errorf("unexpected pattern around centre: %v", n)
	}

	corner := m.Neighbors(0, 0)
	if corner.North() || corner.West() || corner[0][0] {
		t.Errorf("cells outside the grid must be light: %v", corner)
	}
	if !corner.South() {
		t.Errorf("expected south neighbour of (0,0) to be active")
	}

	if m.Active(-1, 0) || m.Active(3, 3) {
		t.Errorf("out of range cells must be inactive")
	}
}

func TestSingle(t *testing.T) {
	n := Single(true)
	if !n.Active() || n.North() || n.East() {
		t.Errorf("Single should only carry the centre: %v", n)
	}
}

func TestEncodersAgreeOnSize(t *testing.T) {
	for _, name := range []string{"yeqown", "skip2", "boombuler"} {
		enc, err := EncoderByName(name)
		if err != nil {
			t.Fatalf("EncoderByName(%q): %v", name, err)
		}
		m, err := enc.Encode("Some data", LevelL)
		if err != nil {
			t.Fatalf("%s: encode failed: %v", name, err)
		}
		if m.Size() != 21 {
			t.Errorf("%s: expected a version 1 grid (21 modules), got %d", name, m.Size())
		}

		// The finder pattern's outer ring is always dark.
		for i := 0; i < 7; i++ {
			if !m.Active(0, i) || !m.Active(i, 0) || !m.Active(6, i) || !m.Active(i, 6) {
				t.Errorf("%s: finder ring broken at offset %d", name, i)
				break
			}
		}
		if m.Active(1, 1) {
			t.Errorf("%s: finder separator ring should be light", name)
		}
		if !m.Active(3, 3) {
			t.Errorf("%s: finder centre should be dark", name)
		}
	}
}

func TestEncodeEmptyPayload(t *testing.T) {
	for _, enc := range []Encoder{Yeqown{}, Skip2{}, Boombuler{}} {
		_, err := enc.Encode("", LevelM)
		if !errors.Is(err, ErrEncode) {
			t.Errorf("%T: expected ErrEncode for empty payload, got %v", enc, err)
		}
	}
}

func TestEncodeTooLarge(t *testing.T) {
	payload := strings.Repeat("x", 4000)
	_, err := Yeqown{}.Encode(payload, LevelH)
	if !errors.Is(err, ErrEncode) {
		t.Errorf("expected ErrEncode for payload beyond capacity, got %v", err)
	}
}

func TestEncoderByNameUnknown(t *testing.T) {
	if _, err := EncoderByName("zxing"); err == nil {
		t.Errorf("expected error for unknown encoder")
	}
}
