package ships

// SolveStatus is the outcome of a [LogicalSolve] call.
type SolveStatus int

const (
	// Stuck means the fixed point was reached with fewer occupied cells
	// than ShipsSum.
	Stuck SolveStatus = iota
	// SolvedSimple means every occupied cell was found using only the
	// propagator, row/column counting and the run-length cap.
	SolvedSimple
	// SolvedAdvanced means at least one advanced rule application (R4 or
	// R5) was load-bearing in reaching the solution.
	SolvedAdvanced
)

func (s SolveStatus) String() string {
	switch s {
	case Stuck:
		return "stuck"
	case SolvedSimple:
		return "solved-by-simple"
	case SolvedAdvanced:
		return "solved-using-advanced"
	default:
		return "unknown"
	}
}

// LogicalSolve runs the fixed-point deductive solver (spec §4.C) over a
// fresh board seeded from c.Init. Advanced rules R4/R5 are only tried once
// the simple rules (R1-R3) have stopped changing anything, and only for
// diff >= Advanced.
func LogicalSolve(c Clues, diff Difficulty) (board Board, occCount, vacCount int, status SolveStatus) {
	board = c.Init.Clone()

	advancedEnabled := false
	complexSolve := false
	prevChecksum := board.Checksum()

	for {
		ApplyPropagator(&board)
		applyRowColCounting(&board, c)
		applyRunLengthCap(&board, c)
		if advancedEnabled {
			applyGapTooSmall(&board, c)
			applyForcedPlacement(&board, c)
		}

		cur := board.Checksum()
		if cur == prevChecksum {
			if diff >= Advanced && !advancedEnabled {
				advancedEnabled = true
				prevChecksum = cur
				continue
			}
			break
		}
		if advancedEnabled {
			complexSolve = true
		}
		prevChecksum = cur
	}

	occCount, vacCount = countStates(board)

	status = Stuck
	if occCount == c.ShipsSum() {
		if complexSolve {
			status = SolvedAdvanced
		} else {
			status = SolvedSimple
		}
	}
	return board, occCount, vacCount, status
}

func countStates(b Board) (occ, vac int) {
	for _, c := range b.Cells {
		switch {
		case c.Occupied():
			occ++
		case c == Vacant:
			vac++
		}
	}
	return
}

func countLine(b Board, row bool, idx int) (occ, undef int) {
	if row {
		for x := 0; x < b.W; x++ {
			switch b.At(idx, x) {
			case Undef:
				undef++
			default:
				if b.At(idx, x).Occupied() {
					occ++
				}
			}
		}
	} else {
		for y := 0; y < b.H; y++ {
			switch b.At(y, idx) {
			case Undef:
				undef++
			default:
				if b.At(y, idx).Occupied() {
					occ++
				}
			}
		}
	}
	return
}

// applyRowColCounting is rule R2: per-line occupied/undef counting against
// a known total, plus the aggregate hidden-line budget ships_sum - visible
// sum shared across every hidden row (resp. column).
func applyRowColCounting(b *Board, c Clues) bool {
	changed := false

	for y := 0; y < c.H; y++ {
		if c.Rows[y] == Hidden {
			continue
		}
		occ, undef := countLine(*b, true, y)
		changed = settleLine(b, true, y, occ, undef, c.Rows[y]) || changed
	}
	for x := 0; x < c.W; x++ {
		if c.Cols[x] == Hidden {
			continue
		}
		occ, undef := countLine(*b, false, x)
		changed = settleLine(b, false, x, occ, undef, c.Cols[x]) || changed
	}

	changed = applyHiddenBudget(b, c, true) || changed
	changed = applyHiddenBudget(b, c, false) || changed

	return changed
}

func settleLine(b *Board, row bool, idx, occ, undef, total int) bool {
	changed := false
	if occ == total {
		forEachUndefInLine(*b, row, idx, func(y, x int) {
			changed = b.Promote(y, x, Vacant) || changed
		})
	} else if occ+undef == total {
		forEachUndefInLine(*b, row, idx, func(y, x int) {
			changed = b.Promote(y, x, Occ) || changed
		})
	}
	return changed
}

func forEachUndefInLine(b Board, row bool, idx int, fn func(y, x int)) {
	if row {
		for x := 0; x < b.W; x++ {
			if b.At(idx, x) == Undef {
				fn(idx, x)
			}
		}
	} else {
		for y := 0; y < b.H; y++ {
			if b.At(y, idx) == Undef {
				fn(y, idx)
			}
		}
	}
}

func applyHiddenBudget(b *Board, c Clues, row bool) bool {
	changed := false
	var (
		lines  []int
		budget int
	)
	if row {
		for y := 0; y < c.H; y++ {
			if c.Rows[y] == Hidden {
				lines = append(lines, y)
			}
		}
		budget = c.ShipsSum() - c.RowsSum()
	} else {
		for x := 0; x < c.W; x++ {
			if c.Cols[x] == Hidden {
				lines = append(lines, x)
			}
		}
		budget = c.ShipsSum() - c.ColsSum()
	}
	if len(lines) == 0 {
		return false
	}
	occ, undef := 0, 0
	for _, idx := range lines {
		o, u := countLine(*b, row, idx)
		occ += o
		undef += u
	}
	if occ == budget {
		for _, idx := range lines {
			forEachUndefInLine(*b, row, idx, func(y, x int) {
				changed = b.Promote(y, x, Vacant) || changed
			})
		}
	} else if occ+undef == budget {
		for _, idx := range lines {
			forEachUndefInLine(*b, row, idx, func(y, x int) {
				changed = b.Promote(y, x, Occ) || changed
			})
		}
	}
	return changed
}

// remainingShips returns the lengths of ships not yet accounted for by a
// completed run in b.
func remainingShips(b Board, c Clues) []int {
	maxLen := c.LongestShip()
	if maxLen == 0 {
		return nil
	}
	dist, _ := CompletedShipDistribution(b, maxLen)

	counts := make(map[int]int, len(c.Ships))
	for _, s := range c.Ships {
		counts[s]++
	}
	for length1, n := range dist {
		l := length1 + 1
		for i := 0; i < n && counts[l] > 0; i++ {
			counts[l]--
		}
	}
	var remaining []int
	for l, n := range counts {
		for i := 0; i < n; i++ {
			remaining = append(remaining, l)
		}
	}
	return remaining
}

func maxInts(xs []int) int {
	m := 0
	for _, x := range xs {
		if x > m {
			m = x
		}
	}
	return m
}

func minInts(xs []int) int {
	if len(xs) == 0 {
		return 0
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

// applyRunLengthCap is rule R3: a run of k >= L consecutive occupied cells
// cannot belong to a ship longer than what remains, so its immediate
// neighbours are capped Vacant. For L == 1 the cap is skipped when the
// single cell also looks vertically (resp. horizontally) stretched, per
// the open question recorded in spec §9(i).
func applyRunLengthCap(b *Board, c Clues) bool {
	remaining := remainingShips(*b, c)
	if len(remaining) == 0 {
		return false
	}
	L := maxInts(remaining)
	changed := false

	for y := 0; y < c.H; y++ {
		x := 0
		for x < c.W {
			if !b.At(y, x).Occupied() {
				x++
				continue
			}
			start := x
			for x < c.W && b.At(y, x).Occupied() {
				x++
			}
			k := x - start
			if k >= L && !(L == 1 && k == 1 && (b.At(y-1, start).Occupied() || b.At(y+1, start).Occupied())) {
				changed = b.Promote(y, start-1, Vacant) || changed
				changed = b.Promote(y, x, Vacant) || changed
			}
		}
	}

	for x := 0; x < c.W; x++ {
		y := 0
		for y < c.H {
			if !b.At(y, x).Occupied() {
				y++
				continue
			}
			start := y
			for y < c.H && b.At(y, x).Occupied() {
				y++
			}
			k := y - start
			if k >= L && !(L == 1 && k == 1 && (b.At(start, x-1).Occupied() || b.At(start, x+1).Occupied())) {
				changed = b.Promote(start-1, x, Vacant) || changed
				changed = b.Promote(y, x, Vacant) || changed
			}
		}
	}

	return changed
}

// applyGapTooSmall is advanced rule R4: an Undef cell that cannot be part
// of a run (through itself, in either direction) as long as the shortest
// remaining ship cannot hold any ship at all, and is marked Vacant.
func applyGapTooSmall(b *Board, c Clues) bool {
	remaining := remainingShips(*b, c)
	if len(remaining) == 0 {
		return false
	}
	m := minInts(remaining)
	changed := false

	for y := 0; y < c.H; y++ {
		for x := 0; x < c.W; x++ {
			if b.At(y, x) != Undef {
				continue
			}
			h := runThrough(*b, y, x, 0, 1) + runThrough(*b, y, x, 0, -1) - 1
			v := runThrough(*b, y, x, 1, 0) + runThrough(*b, y, x, -1, 0) - 1
			if maxOf(h, v) < m {
				changed = b.Promote(y, x, Vacant) || changed
			}
		}
	}
	return changed
}

func maxOf(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// runThrough counts non-Vacant cells starting at (y, x) and stepping by
// (dy, dx), inclusive of the starting cell.
func runThrough(b Board, y, x, dy, dx int) int {
	n := 0
	for b.InBounds(y, x) && b.At(y, x) != Vacant {
		n++
		y += dy
		x += dx
	}
	return n
}

// gap is a maximal non-Vacant run along a row or column.
type gap struct {
	row      bool
	idx      int
	start    int // row or column offset of the first cell
	length   int
	hiddenOK bool // the line's total is hidden, so length budget is ships_sum-derived only
}

func (g gap) cell(i int) (y, x int) {
	if g.row {
		return g.idx, g.start + i
	}
	return g.start + i, g.idx
}

func findGaps(b Board, c Clues, minLen int) []gap {
	var gaps []gap
	for y := 0; y < c.H; y++ {
		x := 0
		for x < c.W {
			if b.At(y, x) == Vacant {
				x++
				continue
			}
			start := x
			for x < c.W && b.At(y, x) != Vacant {
				x++
			}
			if length := x - start; length >= minLen {
				gaps = append(gaps, gap{row: true, idx: y, start: start, length: length})
			}
		}
	}
	for x := 0; x < c.W; x++ {
		y := 0
		for y < c.H {
			if b.At(y, x) == Vacant {
				y++
				continue
			}
			start := y
			for y < c.H && b.At(y, x) != Vacant {
				y++
			}
			if length := y - start; length >= minLen {
				gaps = append(gaps, gap{row: false, idx: x, start: start, length: length})
			}
		}
	}
	return gaps
}

// applyForcedPlacement is advanced rule R5: the nonogram-style "how many
// L-length ships must this gap hold" overlap count. When the gaps'
// combined capacity exactly equals the number of remaining longest ships,
// every gap's forced overlap cells are marked Occ.
func applyForcedPlacement(b *Board, c Clues) bool {
	remaining := remainingShips(*b, c)
	if len(remaining) == 0 {
		return false
	}
	L := maxInts(remaining)
	if L == 1 {
		return false
	}
	nL := 0
	for _, l := range remaining {
		if l == L {
			nL++
		}
	}

	gaps := findGaps(*b, c, L)
	total := 0
	counts := make([]int, len(gaps))
	for i, g := range gaps {
		cnt := (g.length + 1) / (L + 1)
		counts[i] = cnt
		total += cnt
	}
	if total != nL {
		return false
	}

	changed := false
	for i, g := range gaps {
		cnt := counts[i]
		if cnt == 0 {
			continue
		}
		k := (g.length + 1) % (L + 1)
		for slot := 0; slot < cnt; slot++ {
			base := slot * (L + 1)
			for off := k; off < L; off++ {
				pos := base + off
				if pos < 0 || pos >= g.length {
					continue
				}
				y, x := g.cell(pos)
				changed = b.Promote(y, x, Occ) || changed
			}
		}
	}
	return changed
}
