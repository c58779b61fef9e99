package ships

import (
	"fmt"
	"strings"
)

// CellState is a tagged enum over the possible states of a single grid
// cell. The ordering Vacant < Occ < {N,E,S,W,One,Inner} lets the propagator
// and logical solver express "never demote" writes as a simple rank
// comparison.
type CellState int8

const (
	Undef CellState = iota - 1
	Vacant
	Occ
	N
	E
	S
	W
	One
	Inner
)

func (s CellState) String() string {
	switch s {
	case Undef:
		return "?"
	case Vacant:
		return "."
	case Occ:
		return "#"
	case N:
		return "^"
	case E:
		return ">"
	case S:
		return "v"
	case W:
		return "<"
	case One:
		return "o"
	case Inner:
		return "x"
	default:
		return "!"
	}
}

// rank orders cells along the "known more precisely" axis used to suppress
// demoting writes. Vacant and the occupied family are not comparable to one
// another; rank only matters for deciding whether a write refines a cell
// already known to be occupied.
func (s CellState) rank() int {
	switch s {
	case Undef:
		return 0
	case Vacant:
		return 1
	case Occ:
		return 2
	default: // N, E, S, W, One, Inner
		return 3
	}
}

// Occupied reports whether s denotes a cell known to hold part of a ship.
func (s CellState) Occupied() bool {
	return s == Occ || s == N || s == E || s == S || s == W || s == One || s == Inner
}

// Typed reports whether s is a refined occupied subtype (not plain Occ).
func (s CellState) Typed() bool {
	return s == N || s == E || s == S || s == W || s == One || s == Inner
}

// Board is an H×W scratch grid of [CellState], owned by a single solver
// invocation.
type Board struct {
	H, W  int
	Cells []CellState
}

// NewBoard returns an h×w board with every cell Undef.
func NewBoard(h, w int) Board {
	cells := make([]CellState, h*w)
	for i := range cells {
		cells[i] = Undef
	}
	return Board{H: h, W: w, Cells: cells}
}

func (b Board) index(y, x int) int { return y*b.W + x }

// InBounds reports whether (y, x) lies on the board.
func (b Board) InBounds(y, x int) bool {
	return y >= 0 && y < b.H && x >= 0 && x < b.W
}

// At returns the cell state at (y, x), or Vacant if (y, x) is off the
// board — the border is always treated as known-empty, matching the
// propagator's and validator's neighbour rules.
func (b Board) At(y, x int) CellState {
	if !b.InBounds(y, x) {
		return Vacant
	}
	return b.Cells[b.index(y, x)]
}

// Set writes v at (y, x) unconditionally. Most callers should use
// [Board.Promote] instead so that refining writes cannot demote a cell.
func (b *Board) Set(y, x int, v CellState) {
	b.Cells[b.index(y, x)] = v
}

// Promote writes v at (y, x) unless that would lower the cell's rank (see
// [CellState.rank]); writes that would cross between the Vacant family and
// the occupied family without visiting Undef first are contradictions the
// propagator does not detect — per spec they are left for the caller's
// final consistency checks to surface, so they are simply not applied here.
// Returns whether the board actually changed.
func (b *Board) Promote(y, x int, v CellState) bool {
	cur := b.At(y, x)
	if cur == v {
		return false
	}
	if cur == Undef {
		b.Set(y, x, v)
		return true
	}
	if cur.rank() >= v.rank() {
		return false
	}
	// cur is Vacant and v is occupied-family, or vice versa: contradiction,
	// leave cur as-is.
	if (cur == Vacant) != (v == Vacant) && cur.Occupied() != v.Occupied() {
		if cur == Vacant || v == Vacant {
			return false
		}
	}
	b.Set(y, x, v)
	return true
}

// Clone returns an independent copy of b.
func (b Board) Clone() Board {
	cells := make([]CellState, len(b.Cells))
	copy(cells, b.Cells)
	return Board{H: b.H, W: b.W, Cells: cells}
}

// Checksum is a cheap 32-bit fingerprint of the board used by the logical
// solver to detect a fixed point without comparing whole grids.
func (b Board) Checksum() uint32 {
	var h uint32 = 2166136261
	for _, c := range b.Cells {
		h ^= uint32(int8(c)) + 128
		h *= 16777619
	}
	return h
}

func (b Board) String() string {
	var sb strings.Builder
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			fmt.Fprint(&sb, b.At(y, x).String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// rotation names the four 90-degree steps used to express the N/E/S/W
// ship-end propagator rule once and apply it under rotation, per the
// "rotated-view abstraction" design note.
type rotation int

const (
	rot0 rotation = iota
	rot90
	rot180
	rot270
)

// endRotation maps a ship-end direction to the rotation under which the
// "arrow points local-up" rule produces that direction's neighbour pattern.
func endRotation(dir CellState) rotation {
	switch dir {
	case N:
		return rot0
	case E:
		return rot90
	case S:
		return rot180
	case W:
		return rot270
	default:
		panic(AssertionError{"endRotation: not a ship-end state"})
	}
}

// rotateOffset rotates a local (dy, dx) offset clockwise by rot steps of
// 90 degrees into a real-board offset.
func rotateOffset(rot rotation, dy, dx int) (int, int) {
	for i := rotation(0); i < rot; i++ {
		dy, dx = dx, -dy
	}
	return dy, dx
}

// CompletedShipDistribution scans the board for fully-determined ships
// (N/W-anchored runs of Inner cells terminated by S/E, plus standalone One
// cells) and returns a histogram indexed by length-1. err is set if an
// anchored run is not properly terminated, or a completed ship's length
// exceeds maxSize.
func CompletedShipDistribution(b Board, maxSize int) (dist []int, err bool) {
	dist = make([]int, maxSize)
	record := func(length int) {
		if length < 1 || length > maxSize {
			err = true
			return
		}
		dist[length-1]++
	}
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			switch b.At(y, x) {
			case One:
				record(1)
			case N:
				length, ok := scanRun(b, y, x, 1, 0, S)
				if !ok {
					err = true
					continue
				}
				record(length)
			case W:
				length, ok := scanRun(b, y, x, 0, 1, E)
				if !ok {
					err = true
					continue
				}
				record(length)
			}
		}
	}
	return dist, err
}

// scanRun walks from an N or W anchor at (y, x) in direction (dy, dx),
// accepting any number of Inner cells and requiring the run to terminate
// on endState. Returns the total run length (including the anchor and the
// terminator) and whether the run terminated properly.
func scanRun(b Board, y, x, dy, dx int, endState CellState) (length int, ok bool) {
	length = 1
	cy, cx := y+dy, x+dx
	for {
		if !b.InBounds(cy, cx) {
			return length, false
		}
		switch b.At(cy, cx) {
		case Inner:
			length++
			cy, cx = cy+dy, cx+dx
		case endState:
			length++
			return length, true
		default:
			return length, false
		}
	}
}
