package ships

// Orientation distinguishes a horizontal ship (cells extend along x) from
// a vertical one (cells extend along y).
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// ShipPlacement is a single ship's position: (y, x) is its top-left cell.
// A length-1 ship is always recorded Horizontal.
type ShipPlacement struct {
	Orientation Orientation
	Y, X        int
}

func (p ShipPlacement) cells(length int) [][2]int {
	cs := make([][2]int, length)
	for i := 0; i < length; i++ {
		if p.Orientation == Horizontal {
			cs[i] = [2]int{p.Y, p.X + i}
		} else {
			cs[i] = [2]int{p.Y + i, p.X}
		}
	}
	return cs
}

func positionCount(h, w, length int) int {
	horiz := 0
	if w-length+1 > 0 {
		horiz = h * (w - length + 1)
	}
	vert := 0
	if h-length+1 > 0 {
		vert = (h - length + 1) * w
	}
	return horiz + vert
}

func positionAt(h, w, length, idx int) ShipPlacement {
	horizCols := w - length + 1
	horizCount := 0
	if horizCols > 0 {
		horizCount = h * horizCols
	}
	if idx < horizCount {
		return ShipPlacement{Horizontal, idx / horizCols, idx % horizCols}
	}
	idx -= horizCount
	return ShipPlacement{Vertical, idx / w, idx % w}
}

func positionIndex(h, w, length int, p ShipPlacement) int {
	if p.Orientation == Horizontal {
		return p.Y*(w-length+1) + p.X
	}
	horizCols := w - length + 1
	horizCount := 0
	if horizCols > 0 {
		horizCount = h * horizCols
	}
	return horizCount + p.Y*w + p.X
}

// RenderSolution renders a full placement of ships (in the same order as
// lengths) as a typed board: ship ends get N/E/S/W depending on which end
// they are, singletons get One, interior cells get Inner. Used for the
// exhaustive solver's final consistency check and for the solver move
// string (spec §6.4).
func RenderSolution(h, w int, lengths []int, placements []ShipPlacement) Board {
	b := NewBoard(h, w)
	for i, length := range lengths {
		p := placements[i]
		cells := p.cells(length)
		if length == 1 {
			b.Set(cells[0][0], cells[0][1], One)
			continue
		}
		for j, cell := range cells {
			switch {
			case j == 0 && p.Orientation == Horizontal:
				b.Set(cell[0], cell[1], W)
			case j == 0 && p.Orientation == Vertical:
				b.Set(cell[0], cell[1], N)
			case j == length-1 && p.Orientation == Horizontal:
				b.Set(cell[0], cell[1], E)
			case j == length-1 && p.Orientation == Vertical:
				b.Set(cell[0], cell[1], S)
			default:
				b.Set(cell[0], cell[1], Inner)
			}
		}
	}
	return b
}

type exhaustiveSolver struct {
	clues     Clues
	clueBoard Board // propagated once up front, read-only during search

	occ          []bool // flat H*W occupancy bitmap for ships placed so far
	blockedStack []([]bool)
	rowSum       []int
	colSum       []int
	hiddenRowSum int
	hiddenColSum int

	placements []ShipPlacement
	lastSameLen map[int]int // ship index -> position index to resume after, for same-length runs

	calls     int
	callLimit int
	solutions [][]ShipPlacement // capped at 2: enough to prove non-uniqueness
}

// ExhaustiveSolve runs the recursive DFS placement solver (spec §4.D).
// callLimit <= 0 means unbounded. On success returns the unique solution;
// otherwise one of [ErrNoSolution], [ErrNonUnique] or [ErrLimitExceeded].
func ExhaustiveSolve(c Clues, callLimit int) ([]ShipPlacement, int, error) {
	sol, _, calls, err := ExhaustiveSolveWitness(c, callLimit)
	return sol, calls, err
}

// ExhaustiveSolveWitness is [ExhaustiveSolve] plus, when the outcome is
// [ErrNonUnique], the second solution found — used by the generator to
// pick a cell that disambiguates the two (spec §4.F's "ambiguous" step).
func ExhaustiveSolveWitness(c Clues, callLimit int) (sol, sol2 []ShipPlacement, calls int, err error) {
	clueBoard := c.Init.Clone()
	ApplyPropagator(&clueBoard)

	s := &exhaustiveSolver{
		clues:       c,
		clueBoard:   clueBoard,
		occ:         make([]bool, c.H*c.W),
		rowSum:      make([]int, c.H),
		colSum:      make([]int, c.W),
		callLimit:   callLimit,
		lastSameLen: make(map[int]int),
	}

	err = s.recurse(0)
	if err == ErrNonUnique {
		return s.solutions[0], s.solutions[1], s.calls, ErrNonUnique
	}
	if err != nil {
		return nil, nil, s.calls, err
	}
	if len(s.solutions) == 0 {
		return nil, nil, s.calls, ErrNoSolution
	}
	return s.solutions[0], nil, s.calls, nil
}

func (s *exhaustiveSolver) index(y, x int) int { return y*s.clues.W + x }

func (s *exhaustiveSolver) recurse(k int) error {
	if s.callLimit > 0 && s.calls >= s.callLimit {
		return ErrLimitExceeded
	}
	s.calls++

	ships := s.clues.Ships
	if k == len(ships) {
		if s.finalConsistent() {
			sol := make([]ShipPlacement, len(s.placements))
			copy(sol, s.placements)
			s.solutions = append(s.solutions, sol)
			if len(s.solutions) >= 2 {
				return ErrNonUnique
			}
		}
		return nil
	}

	length := ships[k]
	h, w := s.clues.H, s.clues.W
	total := positionCount(h, w, length)
	if length == 1 {
		// Only the horizontal positions: a vertical singleton is the same cell.
		total = h * w
	}

	start := 0
	if k > 0 && ships[k-1] == length {
		start = s.lastSameLen[k-1] + 1
	}

	for idx := start; idx < total; idx++ {
		p := positionAt(h, w, length, idx)

		if !s.candidateAllowed(p, length) {
			continue
		}

		s.place(p, length)
		s.lastSameLen[k] = idx

		ok := true
		if k < len(ships)-1 {
			ok = s.feasible()
		}

		var err error
		if ok {
			s.pushBlocked(p, length)
			ok = s.blockedConsistent()
			if ok {
				s.placements = append(s.placements, p)
				err = s.recurse(k + 1)
				s.placements = s.placements[:len(s.placements)-1]
			}
			s.popBlocked()
		}

		s.unplace(p, length)

		if err != nil {
			if err == ErrNonUnique {
				return err
			}
			if err == ErrLimitExceeded {
				return err
			}
		}
	}

	return nil
}

func (s *exhaustiveSolver) candidateAllowed(p ShipPlacement, length int) bool {
	cells := p.cells(length)

	if length == 1 {
		st := s.clueBoard.At(cells[0][0], cells[0][1])
		if !(st == Undef || st == Occ || st == One) {
			return false
		}
	} else {
		endpoints := [2][2]int{cells[0], cells[length-1]}
		for _, e := range endpoints {
			if s.clueBoard.At(e[0], e[1]) == Inner {
				return false
			}
		}
	}

	for _, cell := range cells {
		y, x := cell[0], cell[1]
		if s.clueBoard.At(y, x) == Vacant {
			return false
		}
		if s.occ[s.index(y, x)] {
			return false
		}
		for _, layer := range s.blockedStack {
			if layer[s.index(y, x)] {
				return false
			}
		}
	}
	return true
}

func (s *exhaustiveSolver) place(p ShipPlacement, length int) {
	for _, cell := range p.cells(length) {
		y, x := cell[0], cell[1]
		s.occ[s.index(y, x)] = true
		s.rowSum[y]++
		s.colSum[x]++
		if s.clues.Rows[y] == Hidden {
			s.hiddenRowSum++
		}
		if s.clues.Cols[x] == Hidden {
			s.hiddenColSum++
		}
	}
}

func (s *exhaustiveSolver) unplace(p ShipPlacement, length int) {
	for _, cell := range p.cells(length) {
		y, x := cell[0], cell[1]
		s.occ[s.index(y, x)] = false
		s.rowSum[y]--
		s.colSum[x]--
		if s.clues.Rows[y] == Hidden {
			s.hiddenRowSum--
		}
		if s.clues.Cols[x] == Hidden {
			s.hiddenColSum--
		}
	}
}

// feasible checks the running-sum pruning bullet of spec §4.D.3.
func (s *exhaustiveSolver) feasible() bool {
	hiddenBudget := s.clues.ShipsSum() - s.clues.RowsSum()
	if s.hiddenRowSum > hiddenBudget {
		return false
	}
	hiddenColBudget := s.clues.ShipsSum() - s.clues.ColsSum()
	if s.hiddenColSum > hiddenColBudget {
		return false
	}
	for y := 0; y < s.clues.H; y++ {
		if s.clues.Rows[y] != Hidden && s.rowSum[y] > s.clues.Rows[y] {
			return false
		}
	}
	for x := 0; x < s.clues.W; x++ {
		if s.clues.Cols[x] != Hidden && s.colSum[x] > s.clues.Cols[x] {
			return false
		}
	}
	return true
}

// pushBlocked builds and pushes the blocked layer for the just-placed
// ship: its cells and a one-cell border, plus any row/column whose total
// is now exactly matched.
func (s *exhaustiveSolver) pushBlocked(p ShipPlacement, length int) {
	layer := make([]bool, s.clues.H*s.clues.W)
	for _, cell := range p.cells(length) {
		cy, cx := cell[0], cell[1]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				y, x := cy+dy, cx+dx
				if s.clueBoard.InBounds(y, x) {
					layer[s.index(y, x)] = true
				}
			}
		}
	}

	hiddenBudget := s.clues.ShipsSum() - s.clues.RowsSum()
	hiddenColBudget := s.clues.ShipsSum() - s.clues.ColsSum()

	for y := 0; y < s.clues.H; y++ {
		matched := (s.clues.Rows[y] != Hidden && s.rowSum[y] == s.clues.Rows[y]) ||
			(s.clues.Rows[y] == Hidden && s.hiddenRowSum == hiddenBudget)
		if matched {
			for x := 0; x < s.clues.W; x++ {
				layer[s.index(y, x)] = true
			}
		}
	}
	for x := 0; x < s.clues.W; x++ {
		matched := (s.clues.Cols[x] != Hidden && s.colSum[x] == s.clues.Cols[x]) ||
			(s.clues.Cols[x] == Hidden && s.hiddenColSum == hiddenColBudget)
		if matched {
			for y := 0; y < s.clues.H; y++ {
				layer[s.index(y, x)] = true
			}
		}
	}

	s.blockedStack = append(s.blockedStack, layer)
}

func (s *exhaustiveSolver) popBlocked() {
	s.blockedStack = s.blockedStack[:len(s.blockedStack)-1]
}

// blockedConsistent checks that the freshly-pushed blocked layer does not
// mask any init cell already known to be occupied (spec §4.D.3, last
// bullet) — a row/column fully blocked as "matched" while a disclosed
// occupied cell in it remains uncovered can never lead to a valid
// solution down this branch.
func (s *exhaustiveSolver) blockedConsistent() bool {
	layer := s.blockedStack[len(s.blockedStack)-1]
	for y := 0; y < s.clues.H; y++ {
		for x := 0; x < s.clues.W; x++ {
			i := s.index(y, x)
			if layer[i] && !s.occ[i] && s.clueBoard.At(y, x).Occupied() {
				return false
			}
		}
	}
	return true
}

// finalConsistent runs the step-5 checks once every ship has been placed:
// exact row/column totals and full consistency against every disclosure.
func (s *exhaustiveSolver) finalConsistent() bool {
	hiddenBudget := s.clues.ShipsSum() - s.clues.RowsSum()
	hiddenColBudget := s.clues.ShipsSum() - s.clues.ColsSum()

	hasHiddenRow, hasHiddenCol := false, false
	for y := 0; y < s.clues.H; y++ {
		if s.clues.Rows[y] == Hidden {
			hasHiddenRow = true
			continue
		}
		if s.rowSum[y] != s.clues.Rows[y] {
			return false
		}
	}
	for x := 0; x < s.clues.W; x++ {
		if s.clues.Cols[x] == Hidden {
			hasHiddenCol = true
			continue
		}
		if s.colSum[x] != s.clues.Cols[x] {
			return false
		}
	}
	if hasHiddenRow && s.hiddenRowSum != hiddenBudget {
		return false
	}
	if hasHiddenCol && s.hiddenColSum != hiddenColBudget {
		return false
	}

	typed := RenderSolution(s.clues.H, s.clues.W, s.clues.Ships, s.placements)
	for y := 0; y < s.clues.H; y++ {
		for x := 0; x < s.clues.W; x++ {
			disc := s.clues.Init.At(y, x)
			if disc == Undef {
				continue
			}
			actual := typed.At(y, x)
			if disc == Occ {
				if !actual.Occupied() {
					return false
				}
				continue
			}
			if disc == Vacant {
				if actual != Vacant {
					return false
				}
				continue
			}
			if actual != disc {
				return false
			}
		}
	}
	return true
}
