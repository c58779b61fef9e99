package ships

import "fmt"

// PuzzleState is a single player's working copy of a puzzle: the
// immutable clues, the mutable board the player has written into, and
// the per-row/column "marked done" flags the host tracks alongside it.
// Persisted across requests with encoding/gob.
type PuzzleState struct {
	Clues     Clues
	Board     Board
	RowMarked []bool
	ColMarked []bool
}

// NewPuzzleState seeds a fresh player state from a freshly-issued clue
// set: the working board starts as a copy of the disclosed cells.
func NewPuzzleState(c Clues) PuzzleState {
	return PuzzleState{
		Clues:     c,
		Board:     c.Init.Clone(),
		RowMarked: make([]bool, c.H),
		ColMarked: make([]bool, c.W),
	}
}

// Apply applies one decoded move in place (spec §6.3). Disclosed
// cells are immutable except that a plain Occ disclosure may be refined
// to its true typed state.
func (s *PuzzleState) Apply(mv Move) error {
	for _, d := range mv.Drags {
		y0, y1 := orderPair(d.Y1, d.Y2)
		x0, x1 := orderPair(d.X1, d.X2)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				if !s.Board.InBounds(y, x) || s.Clues.Init.At(y, x) != Undef {
					continue
				}
				if d.Clear {
					if s.Board.At(y, x) == Vacant {
						s.Board.Set(y, x, Undef)
					}
				} else if s.Board.At(y, x) == Undef {
					s.Board.Set(y, x, Vacant)
				}
			}
		}
	}

	for _, cw := range mv.Cells {
		if !s.Board.InBounds(cw.Y, cw.X) {
			return fmt.Errorf("ships: cell (%d,%d) out of bounds", cw.Y, cw.X)
		}
		if disc := s.Clues.Init.At(cw.Y, cw.X); disc != Undef {
			if disc != Occ || !cw.State.Typed() {
				return fmt.Errorf("ships: cell (%d,%d) is disclosed and cannot be overwritten", cw.Y, cw.X)
			}
		}
		s.Board.Set(cw.Y, cw.X, cw.State)
	}

	for _, idx := range mv.ToggledRows {
		if idx < 0 || idx >= len(s.RowMarked) {
			return fmt.Errorf("ships: row index %d out of range", idx)
		}
		s.RowMarked[idx] = !s.RowMarked[idx]
	}
	for _, idx := range mv.ToggledCols {
		if idx < 0 || idx >= len(s.ColMarked) {
			return fmt.Errorf("ships: column index %d out of range", idx)
		}
		s.ColMarked[idx] = !s.ColMarked[idx]
	}

	if mv.Solve {
		for _, cw := range mv.Solution {
			if !s.Board.InBounds(cw.Y, cw.X) {
				return fmt.Errorf("ships: solution cell (%d,%d) out of bounds", cw.Y, cw.X)
			}
			s.Board.Set(cw.Y, cw.X, cw.State)
		}
	}

	return nil
}

func orderPair(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

// Validate runs the [Validate] validator against the current board.
func (s PuzzleState) Validate() ValidationResult {
	return Validate(s.Clues, s.Board)
}

// RenderTypedView returns a copy of b where every plain Occ cell has been
// inferred to its likely N/E/S/W/One/Inner presentation from its
// immediate orthogonal neighbours. Any neighbour that is not occupied
// (Undef, Vacant or off the board) counts as empty, so an Occ with no
// occupied neighbour becomes One; only cells with occupied neighbours
// both vertically and horizontally stay plain Occ. Used by the HTTP layer to draw ship-end triangles
// before the player has manually refined every disclosure.
func RenderTypedView(b Board) Board {
	out := b.Clone()
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			if b.At(y, x) == Occ {
				out.Set(y, x, inferDisplayType(b, y, x))
			}
		}
	}
	return out
}

func inferDisplayType(b Board, y, x int) CellState {
	n := b.At(y-1, x).Occupied()
	s := b.At(y+1, x).Occupied()
	e := b.At(y, x+1).Occupied()
	w := b.At(y, x-1).Occupied()

	switch {
	case !n && !s && !e && !w:
		return One
	case s && !n && !e && !w:
		return N
	case n && !s && !e && !w:
		return S
	case e && !n && !s && !w:
		return W
	case w && !n && !s && !e:
		return E
	case n && s && !e && !w:
		return Inner
	case e && w && !n && !s:
		return Inner
	default:
		return Occ
	}
}
