// Package matrix holds the boolean QR module grid and the encoders that produce it.
package matrix

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEncode is returned when a payload cannot be encoded at the requested level.
var ErrEncode = errors.New("failed to encode payload")

// Level is a QR error-correction level.
type Level int

const (
	LevelL Level = iota
	LevelM
	LevelQ
	LevelH
)

// ParseLevel accepts the single letter names (L, M, Q, H) in any case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L", "LOW":
		return LevelL, nil
	case "M", "MEDIUM", "":
		return LevelM, nil
	case "Q", "QUART", "QUARTILE":
		return LevelQ, nil
	case "H", "HIGH", "HIGHEST":
		return LevelH, nil
	}
	return LevelM, fmt.Errorf("unknown error correction level %q", s)
}

func (l Level) String() string {
	switch l {
	case LevelL:
		return "L"
	case LevelM:
		return "M"
	case LevelQ:
		return "Q"
	case LevelH:
		return "H"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// Matrix is an immutable N×N grid of QR modules.
type Matrix struct {
	size  int
	cells []bool
}

// New copies rows into a Matrix. Rows must form a non-empty square.
func New(rows [][]bool) (Matrix, error) {
	n := len(rows)
	if n == 0 {
		return Matrix{}, fmt.Errorf("empty module grid")
	}
	cells := make([]bool, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return Matrix{}, fmt.Errorf("module grid is not square: row %d has %d cells, want %d", i, len(row), n)
		}
		cells = append(cells, row...)
	}
	return Matrix{size: n, cells: cells}, nil
}

// Size is the number of modules per side.
func (m Matrix) Size() int { return m.size }

// Active reports whether the module at (row, col) is dark. Cells outside the
// grid are light.
func (m Matrix) Active(row, col int) bool {
	if row < 0 || col < 0 || row >= m.size || col >= m.size {
		return false
	}
	return m.cells[row*m.size+col]
}

// Neighbors returns the 3×3 activation pattern centred on (row, col).
func (m Matrix) Neighbors(row, col int) Neighbors {
	var n Neighbors
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			n[dr+1][dc+1] = m.Active(row+dr, col+dc)
		}
	}
	return n
}

// Neighbors is the activation pattern around a module. Index [1][1] is the
// module itself, [0][1] the one above it.
type Neighbors [3][3]bool

// Single is a pattern that only carries the module's own state.
func Single(active bool) Neighbors {
	var n Neighbors
	n[1][1] = active
	return n
}

func (n Neighbors) Active() bool { return n[1][1] }
func (n Neighbors) North() bool  { return n[0][1] }
func (n Neighbors) South() bool  { return n[2][1] }
func (n Neighbors) West() bool   { return n[1][0] }
func (n Neighbors) East() bool   { return n[1][2] }

// Encoder turns a payload into a module grid.
type Encoder interface {
	Encode(payload string, level Level) (Matrix, error)
}

// EncoderByName resolves the configured encoder backend.
func EncoderByName(name string) (Encoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "yeqown":
		return Yeqown{}, nil
	case "skip2":
		return Skip2{}, nil
	case "boombuler":
		return Boombuler{}, nil
	}
	return nil, fmt.Errorf("unknown encoder %q", name)
}

func checkPayload(payload string) error {
	if payload == "" {
		return fmt.Errorf("%w: payload is empty", ErrEncode)
	}
	return nil
}
