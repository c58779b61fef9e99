package ships

// CellFlag records why [Validate] considers a single cell wrong.
type CellFlag int

const (
	FlagNone CellFlag = iota
	FlagDiagonalTouch
	FlagNeighborMismatch
)

// ValidationResult is the full annotated report of spec §4.G.
type ValidationResult struct {
	CellFlags  []CellFlag // len H*W, row-major
	RowErr     []bool     // len H
	ColErr     []bool     // len W
	ShipsErr   bool
	ShipDone   []bool // per ship in c.Ships order
	Solved     bool
}

func (r ValidationResult) cellFlag(w, y, x int) CellFlag { return r.CellFlags[y*w+x] }
func (r *ValidationResult) setCellFlag(w, y, x int, f CellFlag) {
	if r.CellFlags[y*w+x] == FlagNone {
		r.CellFlags[y*w+x] = f
	}
}

// Validate checks a player-supplied board against every structural
// invariant in spec §4.G and returns the annotated result.
func Validate(c Clues, b Board) ValidationResult {
	r := ValidationResult{
		CellFlags: make([]CellFlag, c.H*c.W),
		RowErr:    make([]bool, c.H),
		ColErr:    make([]bool, c.W),
	}

	checkDiagonalAdjacency(c, b, &r)
	checkNeighborConsistency(c, b, &r)
	checkLineTotals(c, b, &r)

	dist, distErr := CompletedShipDistribution(b, c.LongestShip())
	required := make([]int, c.LongestShip())
	for _, s := range c.Ships {
		required[s-1]++
	}
	for length1, n := range dist {
		if n > required[length1] {
			r.ShipsErr = true
		}
	}
	if distErr {
		r.ShipsErr = true
	}

	completed := append([]int(nil), dist...)
	r.ShipDone = make([]bool, len(c.Ships))
	for i, s := range c.Ships {
		if completed[s-1] > 0 {
			r.ShipDone[i] = true
			completed[s-1]--
		}
	}

	occCount := 0
	for _, cs := range b.Cells {
		if cs.Occupied() {
			occCount++
		}
	}

	anyRowErr, anyColErr := false, false
	for _, e := range r.RowErr {
		anyRowErr = anyRowErr || e
	}
	for _, e := range r.ColErr {
		anyColErr = anyColErr || e
	}
	anyCellErr := false
	for _, f := range r.CellFlags {
		if f != FlagNone {
			anyCellErr = true
			break
		}
	}

	r.Solved = !anyCellErr && !anyRowErr && !anyColErr && !r.ShipsErr && !distErr &&
		occCount == c.ShipsSum()
	for _, done := range r.ShipDone {
		r.Solved = r.Solved && done
	}

	return r
}

func checkDiagonalAdjacency(c Clues, b Board, r *ValidationResult) {
	for y := 0; y < c.H; y++ {
		for x := 0; x < c.W; x++ {
			if !b.At(y, x).Occupied() {
				continue
			}
			for _, d := range [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}} {
				ny, nx := y+d[0], x+d[1]
				if b.InBounds(ny, nx) && b.At(ny, nx).Occupied() {
					r.setCellFlag(c.W, y, x, FlagDiagonalTouch)
				}
			}
		}
	}
}

// checkNeighborConsistency applies, per cell, the rotation-symmetric
// neighbour rule for that cell's symbol: which of its 8 neighbours are
// permitted to be occupied. A cell whose neighbourhood cannot correspond
// to any valid ship layout is flagged.
func checkNeighborConsistency(c Clues, b Board, r *ValidationResult) {
	for y := 0; y < c.H; y++ {
		for x := 0; x < c.W; x++ {
			if !neighborhoodOK(b, y, x) {
				r.setCellFlag(c.W, y, x, FlagNeighborMismatch)
			}
		}
	}
}

func neighborhoodOK(b Board, y, x int) bool {
	state := b.At(y, x)
	occ := func(dy, dx int) bool { return b.At(y+dy, x+dx).Occupied() }

	// no ship symbol ever has an occupied diagonal neighbour
	for _, d := range [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}} {
		if state.Occupied() && occ(d[0], d[1]) {
			return false
		}
	}

	switch state {
	case Vacant, Undef:
		return true
	case One:
		return !occ(-1, 0) && !occ(1, 0) && !occ(0, -1) && !occ(0, 1)
	case Inner:
		// a real interior cell has both neighbours occupied along exactly
		// one axis (the ship continues both ways) and both vacant along
		// the perpendicular axis; one occupied neighbour on an axis with
		// the other empty is really a ship end, not an interior cell.
		horiz := occ(0, -1) && occ(0, 1)
		vert := occ(-1, 0) && occ(1, 0)
		if horiz == vert {
			return false
		}
		if horiz {
			return !occ(-1, 0) && !occ(1, 0)
		}
		return !occ(0, -1) && !occ(0, 1)
	case N, E, S, W:
		return endpointOK(b, y, x, state)
	case Occ:
		// exactly one straight-line neighbour is occupied (an end), or
		// exactly two *opposite* ones are (interior of a longer ship not
		// yet typed); zero is also allowed (an undetermined singleton). A
		// perpendicular pair (an L-junction) is never valid.
		north, south, east, west := occ(-1, 0), occ(1, 0), occ(0, -1), occ(0, 1)
		n := 0
		for _, v := range [4]bool{north, south, east, west} {
			if v {
				n++
			}
		}
		switch n {
		case 0, 1:
			return true
		case 2:
			return (north && south) || (east && west)
		default:
			return false
		}
	default:
		return true
	}
}

func endpointOK(b Board, y, x int, dir CellState) bool {
	dy, dx := 0, 0
	switch dir {
	case N:
		dy = -1
	case S:
		dy = 1
	case E:
		dx = 1
	case W:
		dx = -1
	}
	// the side the arrow points to must be empty; the opposite side must
	// be occupied (continuing the ship); both perpendicular sides must
	// also be empty, or the cell would really be a corner/junction.
	away := b.At(y+dy, x+dx)
	back := b.At(y-dy, x-dx)
	if away.Occupied() || !back.Occupied() {
		return false
	}
	if dx == 0 {
		return !b.At(y, x-1).Occupied() && !b.At(y, x+1).Occupied()
	}
	return !b.At(y-1, x).Occupied() && !b.At(y+1, x).Occupied()
}

func checkLineTotals(c Clues, b Board, r *ValidationResult) {
	for y := 0; y < c.H; y++ {
		if c.Rows[y] == Hidden {
			continue
		}
		occ, vac := 0, 0
		for x := 0; x < c.W; x++ {
			switch {
			case b.At(y, x).Occupied():
				occ++
			case b.At(y, x) == Vacant:
				vac++
			}
		}
		if occ > c.Rows[y] || vac > c.W-c.Rows[y] {
			r.RowErr[y] = true
		}
	}
	for x := 0; x < c.W; x++ {
		if c.Cols[x] == Hidden {
			continue
		}
		occ, vac := 0, 0
		for y := 0; y < c.H; y++ {
			switch {
			case b.At(y, x).Occupied():
				occ++
			case b.At(y, x) == Vacant:
				vac++
			}
		}
		if occ > c.Cols[x] || vac > c.H-c.Cols[x] {
			r.ColErr[x] = true
		}
	}
}
