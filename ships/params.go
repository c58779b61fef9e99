package ships

import (
	"fmt"
	"strconv"
	"strings"
)

// Difficulty selects both the generator's clue-derivation parameters and
// the acceptance contract its tuning loop must satisfy.
type Difficulty int

const (
	Basic Difficulty = iota
	Intermediate
	Advanced
	Unreasonable
)

func (d Difficulty) String() string {
	switch d {
	case Basic:
		return "basic"
	case Intermediate:
		return "intermediate"
	case Advanced:
		return "advanced"
	case Unreasonable:
		return "unreasonable"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

func (d Difficulty) valid() bool { return d >= Basic && d <= Unreasonable }

const (
	MinSize = 7
	MaxSize = 25
)

// GameParams is the parameter surface the generator accepts (spec §6.1).
type GameParams struct {
	Height     int
	Width      int
	Difficulty Difficulty
}

// Validate enforces the bounds from spec §6.1.
func (p GameParams) Validate() error {
	if p.Height < MinSize || p.Height > MaxSize {
		return fmt.Errorf("height must be between %d and %d, got %d", MinSize, MaxSize, p.Height)
	}
	if p.Width < MinSize || p.Width > MaxSize {
		return fmt.Errorf("width must be between %d and %d, got %d", MinSize, MaxSize, p.Width)
	}
	if !p.Difficulty.valid() {
		return fmt.Errorf("invalid difficulty %d", int(p.Difficulty))
	}
	return nil
}

// Hidden is the sentinel row/column total meaning "not disclosed".
const Hidden = -1

// Clues is the immutable puzzle instance handed to the solvers and
// validator: dimensions, the ship multiset, per-row/column totals (or
// Hidden), and the initially-disclosed cells.
type Clues struct {
	H, W  int
	Ships []int // descending
	Rows  []int // len H, each >= -1
	Cols  []int // len W, each >= -1
	Init  Board // H x W, mostly Undef
}

// ShipsSum is the total number of occupied cells in any valid solution.
func (c Clues) ShipsSum() int {
	sum := 0
	for _, s := range c.Ships {
		sum += s
	}
	return sum
}

// RowsSum is the sum of the non-hidden row totals.
func (c Clues) RowsSum() int {
	sum := 0
	for _, r := range c.Rows {
		if r != Hidden {
			sum += r
		}
	}
	return sum
}

// ColsSum is the sum of the non-hidden column totals.
func (c Clues) ColsSum() int {
	sum := 0
	for _, col := range c.Cols {
		if col != Hidden {
			sum += col
		}
	}
	return sum
}

// LongestShip returns the length of the longest ship in the multiset
// (Ships is kept sorted descending, so this is simply the first element).
func (c Clues) LongestShip() int {
	if len(c.Ships) == 0 {
		return 0
	}
	return c.Ships[0]
}

// token is one `<tag><int>` unit of the description/move wire format.
type token struct {
	tag byte
	n   int
}

// scanTokens splits s into tag-prefixed integer tokens, skipping any
// character that isn't a recognized tag letter or part of an integer that
// follows one — this implements "unrecognized characters are skipped" and
// the leading "S" solver-move marker is returned as a zero-valued token.
func scanTokens(s string) ([]token, error) {
	var out []token
	const tags = "srcyxzdSRC"
	i := 0
	for i < len(s) {
		c := s[i]
		if strings.IndexByte(tags, c) < 0 {
			i++
			continue
		}
		if c == 'S' {
			out = append(out, token{tag: 'S'})
			i++
			continue
		}
		j := i + 1
		neg := false
		if j < len(s) && s[j] == '-' {
			neg = true
			j++
		}
		start := j
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		if j == start {
			return nil, fmt.Errorf("missing digits after tag %q at offset %d", c, i)
		}
		n, err := strconv.Atoi(s[start:j])
		if err != nil {
			return nil, fmt.Errorf("invalid integer after tag %q: %w", c, err)
		}
		if neg {
			n = -n
		}
		out = append(out, token{tag: c, n: n})
		i = j
	}
	return out, nil
}

// EncodeDescription renders Clues as the flat tag-prefixed puzzle
// description string (spec §6.2). Token ordering is not significant on
// read, but is emitted ships, rows, cols, then disclosures for
// readability.
func EncodeDescription(c Clues) string {
	var sb strings.Builder
	for _, s := range c.Ships {
		fmt.Fprintf(&sb, "s%d", s)
	}
	for _, r := range c.Rows {
		fmt.Fprintf(&sb, "r%d", r)
	}
	for _, col := range c.Cols {
		fmt.Fprintf(&sb, "c%d", col)
	}
	for y := 0; y < c.Init.H; y++ {
		for x := 0; x < c.Init.W; x++ {
			if v := c.Init.At(y, x); v != Undef {
				fmt.Fprintf(&sb, "y%dx%dz%d", y, x, stateCode(v))
			}
		}
	}
	return sb.String()
}

// stateCode maps a disclosed CellState to the wire code in [-1, 6].
func stateCode(s CellState) int {
	switch s {
	case Vacant:
		return -1
	case Occ:
		return 0
	case N:
		return 1
	case E:
		return 2
	case S:
		return 3
	case W:
		return 4
	case One:
		return 5
	case Inner:
		return 6
	default:
		panic(AssertionError{"stateCode: cell is not disclosable"})
	}
}

func codeState(code int) (CellState, error) {
	switch code {
	case -1:
		return Vacant, nil
	case 0:
		return Occ, nil
	case 1:
		return N, nil
	case 2:
		return E, nil
	case 3:
		return S, nil
	case 4:
		return W, nil
	case 5:
		return One, nil
	case 6:
		return Inner, nil
	default:
		return Undef, fmt.Errorf("invalid cell state code %d", code)
	}
}

// ParseDescription decodes a puzzle description string into Clues,
// validating every rule from spec §6.2.
func ParseDescription(h, w int, desc string) (Clues, error) {
	toks, err := scanTokens(desc)
	if err != nil {
		return Clues{}, err
	}

	c := Clues{
		H:    h,
		W:    w,
		Init: NewBoard(h, w),
	}
	var (
		ys, xs   []int
		zs       []int
		rowCount int
		colCount int
	)

	for _, t := range toks {
		switch t.tag {
		case 's':
			if t.n < 1 {
				return Clues{}, fmt.Errorf("ship length must be >= 1, got %d", t.n)
			}
			minDim := h
			if w < minDim {
				minDim = w
			}
			if t.n > minDim {
				return Clues{}, fmt.Errorf("ship length %d exceeds the smaller board dimension %d", t.n, minDim)
			}
			c.Ships = append(c.Ships, t.n)
		case 'r':
			if t.n < Hidden || t.n > w {
				return Clues{}, fmt.Errorf("row total %d out of range [-1, %d]", t.n, w)
			}
			c.Rows = append(c.Rows, t.n)
			rowCount++
		case 'c':
			if t.n < Hidden || t.n > h {
				return Clues{}, fmt.Errorf("column total %d out of range [-1, %d]", t.n, h)
			}
			c.Cols = append(c.Cols, t.n)
			colCount++
		case 'y':
			ys = append(ys, t.n)
		case 'x':
			xs = append(xs, t.n)
		case 'z':
			zs = append(zs, t.n)
		}
	}

	if rowCount != h {
		return Clues{}, fmt.Errorf("expected %d row totals, got %d", h, rowCount)
	}
	if colCount != w {
		return Clues{}, fmt.Errorf("expected %d column totals, got %d", w, colCount)
	}
	if len(ys) != len(xs) || len(xs) != len(zs) {
		return Clues{}, fmt.Errorf("mismatched disclosure tokens: %d y, %d x, %d z", len(ys), len(xs), len(zs))
	}
	if len(c.Ships) < 1 {
		return Clues{}, fmt.Errorf("at least one ship is required")
	}

	for i := range ys {
		y, x := ys[i], xs[i]
		if !c.Init.InBounds(y, x) {
			return Clues{}, fmt.Errorf("disclosed cell (%d,%d) out of bounds", y, x)
		}
		state, err := codeState(zs[i])
		if err != nil {
			return Clues{}, err
		}
		c.Init.Set(y, x, state)
	}

	sortDescending(c.Ships)

	return c, nil
}

func sortDescending(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] < xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}
