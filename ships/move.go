package ships

import (
	"fmt"
	"strconv"
	"strings"
)

// CellWrite is a single (y, x) -> state write, used both for individual
// move cells and for the full solver-produced solution stream.
type CellWrite struct {
	Y, X  int
	State CellState
}

// Drag is a rectangular Vacant-marking drag (spec §6.3): Clear=false sets
// every Undef cell in the rectangle to Vacant, Clear=true reverts every
// Vacant cell in the rectangle back to Undef.
type Drag struct {
	Clear          bool
	Y1, X1, Y2, X2 int
}

// Move is one decoded move-description string (spec §6.3): any
// combination of drags, single-cell writes and row/column "marked done"
// toggles, or (mutually exclusive with the rest) a full solver solution.
type Move struct {
	Solve       bool
	Solution    []CellWrite
	Drags       []Drag
	Cells       []CellWrite
	ToggledRows []int
	ToggledCols []int
}

// ParseMove decodes a move-description string per spec §6.3.
func ParseMove(desc string) (Move, error) {
	var mv Move
	i := 0
	n := len(desc)

	readInt := func() (int, error) {
		neg := false
		if i < n && desc[i] == '-' {
			neg = true
			i++
		}
		start := i
		for i < n && desc[i] >= '0' && desc[i] <= '9' {
			i++
		}
		if i == start {
			return 0, fmt.Errorf("ships: expected digits at offset %d", i)
		}
		v, err := strconv.Atoi(desc[start:i])
		if err != nil {
			return 0, err
		}
		if neg {
			v = -v
		}
		return v, nil
	}

	expect := func(tag byte) error {
		if i >= n || desc[i] != tag {
			return fmt.Errorf("ships: expected %q at offset %d", tag, i)
		}
		i++
		return nil
	}

	readCellSuffix := func() (int, int, CellState, error) {
		if err := expect('x'); err != nil {
			return 0, 0, Undef, err
		}
		x, err := readInt()
		if err != nil {
			return 0, 0, Undef, err
		}
		if err := expect('z'); err != nil {
			return 0, 0, Undef, err
		}
		zc, err := readInt()
		if err != nil {
			return 0, 0, Undef, err
		}
		st, err := codeState(zc)
		if err != nil {
			return 0, 0, Undef, err
		}
		return 0, x, st, nil // y filled in by the caller, already consumed
	}

	for i < n {
		switch desc[i] {
		case 'S':
			mv.Solve = true
			i++
			for i < n {
				if err := expect('y'); err != nil {
					return Move{}, err
				}
				y, err := readInt()
				if err != nil {
					return Move{}, err
				}
				_, x, st, err := readCellSuffix()
				if err != nil {
					return Move{}, err
				}
				mv.Solution = append(mv.Solution, CellWrite{Y: y, X: x, State: st})
			}

		case 'd':
			i++
			op, err := readInt()
			if err != nil {
				return Move{}, err
			}
			if op != 0 && op != 1 {
				return Move{}, fmt.Errorf("ships: invalid drag op %d", op)
			}
			if err := expect('y'); err != nil {
				return Move{}, err
			}
			y1, err := readInt()
			if err != nil {
				return Move{}, err
			}
			if err := expect('x'); err != nil {
				return Move{}, err
			}
			x1, err := readInt()
			if err != nil {
				return Move{}, err
			}
			if err := expect('y'); err != nil {
				return Move{}, err
			}
			y2, err := readInt()
			if err != nil {
				return Move{}, err
			}
			if err := expect('x'); err != nil {
				return Move{}, err
			}
			x2, err := readInt()
			if err != nil {
				return Move{}, err
			}
			mv.Drags = append(mv.Drags, Drag{Clear: op == 1, Y1: y1, X1: x1, Y2: y2, X2: x2})

		case 'y':
			i++
			y, err := readInt()
			if err != nil {
				return Move{}, err
			}
			_, x, st, err := readCellSuffix()
			if err != nil {
				return Move{}, err
			}
			mv.Cells = append(mv.Cells, CellWrite{Y: y, X: x, State: st})

		case 'r':
			i++
			idx, err := readInt()
			if err != nil {
				return Move{}, err
			}
			mv.ToggledRows = append(mv.ToggledRows, idx)

		case 'c':
			i++
			idx, err := readInt()
			if err != nil {
				return Move{}, err
			}
			mv.ToggledCols = append(mv.ToggledCols, idx)

		default:
			i++
		}
	}

	return mv, nil
}

// EncodeSolverMove renders the "S" solver move string of spec §6.4: every
// occupied cell of a fully-typed solution board, in row-major order.
func EncodeSolverMove(typed Board) string {
	var sb strings.Builder
	sb.WriteByte('S')
	for y := 0; y < typed.H; y++ {
		for x := 0; x < typed.W; x++ {
			if s := typed.At(y, x); s.Occupied() {
				fmt.Fprintf(&sb, "y%dx%dz%d", y, x, stateCode(s))
			}
		}
	}
	return sb.String()
}
