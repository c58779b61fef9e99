package ships

import (
	"fmt"
	"math"
)

// GenerateResult is the output of [Generate]: the finished clue set, its
// unique ground-truth solution, and a short trace of the tuning decisions
// taken to reach it (spec §8's "record this in the generator's trace").
type GenerateResult struct {
	Clues    Clues
	Solution []ShipPlacement
	Trace    []string
}

const (
	placeCallLimit     = 4000
	placeAttempts      = 25
	exhaustiveCallCap  = 20000
	unreasonableFloor  = 50
	maxTuningIterations = 400
)

// Generate runs the full generator pipeline of spec §4.F: choose a ship
// multiset, sample a board, derive an initial clue set, then tune it
// against the difficulty's acceptance contract.
func Generate(params GameParams, rng Rand) (GenerateResult, error) {
	if err := params.Validate(); err != nil {
		return GenerateResult{}, err
	}

	minDim := params.Height
	if params.Width < minDim {
		minDim = params.Width
	}
	ships := chooseShipMultiset(minDim, params.Difficulty, rng)

	placements, lengths, ok := sampleBoard(params.Height, params.Width, ships, rng, placeCallLimit, placeAttempts)
	if !ok {
		return GenerateResult{}, fmt.Errorf("ships: could not sample a %dx%d board for ships %v", params.Height, params.Width, ships)
	}

	typed := RenderSolution(params.Height, params.Width, lengths, placements)
	c := deriveClues(params.Height, params.Width, lengths, typed, params.Difficulty, rng)

	var trace []string
	fastReturn := false

	for iter := 0; iter < maxTuningIterations; iter++ {
		solvedBoard, _, _, status := LogicalSolve(c, params.Difficulty)

		accepted, ambiguous, sol2, err := evaluate(c, params.Difficulty, status, fastReturn)
		if err != nil {
			return GenerateResult{}, err
		}

		if accepted {
			trace = append(trace, fmt.Sprintf("iteration %d: accepted, status=%s, fast_return=%v", iter, status, fastReturn))
			return GenerateResult{Clues: c, Solution: placements, Trace: trace}, nil
		}

		if ambiguous {
			discloseDivergence(&c, placements, lengths, sol2, rng)
			fastReturn = true
			trace = append(trace, fmt.Sprintf("iteration %d: ambiguous, disclosed a divergent cell", iter))
			continue
		}

		if tooEasy(status, params.Difficulty, fastReturn) {
			makeHarder(&c, rng)
			trace = append(trace, fmt.Sprintf("iteration %d: too easy, status=%s", iter, status))
		} else {
			makeEasier(&c, solvedBoard, typed, rng)
			fastReturn = true
			trace = append(trace, fmt.Sprintf("iteration %d: too hard, status=%s, fast_return enabled", iter, status))
		}
	}

	return GenerateResult{}, fmt.Errorf("ships: difficulty tuning for %s did not converge", params.Difficulty)
}

// evaluate checks the current clue set against the difficulty's
// acceptance contract (spec §4.F step 4 and §8's testable properties).
// ambiguous is true only for Unreasonable when the exhaustive solver
// found two solutions; sol2 is then the second one.
func evaluate(c Clues, diff Difficulty, status SolveStatus, fastReturn bool) (accepted, ambiguous bool, sol2 []ShipPlacement, err error) {
	switch diff {
	case Basic, Intermediate:
		return status == SolvedSimple, false, nil, nil
	case Advanced:
		if status == SolvedAdvanced {
			return true, false, nil, nil
		}
		if status == SolvedSimple && fastReturn {
			return true, false, nil, nil
		}
		return false, false, nil, nil
	case Unreasonable:
		sol1, second, callCount, solveErr := ExhaustiveSolveWitness(c, exhaustiveCallCap)
		_ = sol1
		switch solveErr {
		case ErrNonUnique:
			return false, true, second, nil
		case ErrNoSolution, ErrLimitExceeded:
			return false, false, nil, nil
		case nil:
			if status == Stuck && callCount >= unreasonableFloor {
				return true, false, nil, nil
			}
			if fastReturn {
				return true, false, nil, nil
			}
			return false, false, nil, nil
		default:
			return false, false, nil, solveErr
		}
	default:
		return false, false, nil, fmt.Errorf("ships: invalid difficulty %d", int(diff))
	}
}

// tooEasy distinguishes "needs more information removed" from "needs more
// information added" for the two non-accepted branches of step 4. Once
// fastReturn is armed a rejection is always treated as still-too-hard,
// since fast-return only ever relaxes acceptance, and a state that fails
// it despite that relaxation cannot be "too easy".
func tooEasy(status SolveStatus, diff Difficulty, fastReturn bool) bool {
	if fastReturn {
		return false
	}
	switch diff {
	case Basic, Intermediate:
		return false // Stuck here means too hard, never too easy
	case Advanced:
		return status == SolvedSimple
	case Unreasonable:
		return status != Stuck
	default:
		return false
	}
}

// chooseShipMultiset implements spec §4.F step 1.
func chooseShipMultiset(minDim int, diff Difficulty, rng Rand) []int {
	if minDim == MinSize {
		return []int{4, 4, 3, 3, 2, 2, 2}
	}

	nShips := 7
	if diff != Basic {
		nShips = 7 + rng.IntN(2)
	}

	lMax := int(math.Round(0.6 * float64(minDim)))
	if lMax < 2 {
		lMax = 2
	}
	values := make([]int, 0, lMax-1)
	for v := 2; v <= lMax; v++ {
		values = append(values, v)
	}
	groups := splitFourGroups(values)

	var lengths []int
	for g := 1; g <= 3; g++ {
		group := groups[g]
		if len(group) == 0 {
			group = groups[0]
		}
		lengths = append(lengths, group[rng.IntN(len(group))])
		lengths = append(lengths, group[rng.IntN(len(group))])
	}

	low := groups[0]
	lowCount := nShips - len(lengths)
	for i := 0; i < lowCount; i++ {
		if diff == Basic || diff == Intermediate {
			lengths = append(lengths, low[len(low)-1])
		} else {
			lengths = append(lengths, low[rng.IntN(len(low))])
		}
	}

	sortDescending(lengths)
	return lengths
}

// splitFourGroups divides an ascending slice into four near-equal,
// contiguous groups, biasing the remainder toward the higher groups; a
// group is never left empty while spare values remain, which is the
// "divisor slightly offset from 4" numerical-stability note in spec §4.F.
func splitFourGroups(values []int) [4][]int {
	n := len(values)
	base := n / 4
	rem := n % 4
	var groups [4][]int
	i := 0
	for g := 0; g < 4; g++ {
		size := base
		if g >= 4-rem {
			size++
		}
		if size == 0 && i < n {
			size = 1
		}
		end := i + size
		if end > n {
			end = n
		}
		groups[g] = values[i:end]
		i = end
	}
	return groups
}

// sampleBoard implements spec §4.F step 2: a bounded number of placement
// attempts, falling back to dropping the median-length ship on repeated
// failure.
func sampleBoard(h, w int, ships []int, rng Rand, callLimit, attempts int) ([]ShipPlacement, []int, bool) {
	lengths := append([]int(nil), ships...)
	for len(lengths) > 0 {
		for a := 0; a < attempts; a++ {
			placements, _, ok := PlaceShips(h, w, lengths, rng, callLimit)
			if ok {
				return placements, lengths, true
			}
		}
		mid := len(lengths) / 2
		lengths = append(append([]int{}, lengths[:mid]...), lengths[mid+1:]...)
	}
	return nil, nil, false
}

// deriveClues implements spec §4.F step 3.
func deriveClues(h, w int, ships []int, typed Board, diff Difficulty, rng Rand) Clues {
	rows, cols := lineTotals(typed)
	shipsSum := 0
	for _, s := range ships {
		shipsSum += s
	}

	var occCells, vacCells [][2]int
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if typed.At(y, x).Occupied() {
				occCells = append(occCells, [2]int{y, x})
			} else {
				vacCells = append(vacCells, [2]int{y, x})
			}
		}
	}

	sumsHidden := 0
	switch diff {
	case Advanced:
		sumsHidden = int(math.Floor(0.1*float64(h+w))) + rng.IntN(2)
	case Unreasonable:
		sumsHidden = int(math.Floor(0.2*float64(h+w))) + rng.IntN(3)
	}
	if sumsHidden > h+w {
		sumsHidden = h + w
	}

	alpha := 0.0
	switch diff {
	case Basic:
		alpha = 0.2
	case Intermediate:
		alpha = 0.1
	case Advanced:
		alpha = 0.05
	case Unreasonable:
		alpha = 0
	}
	iniVacant := int(math.Round(float64(h*w-shipsSum) * alpha))
	if iniVacant > len(vacCells) {
		iniVacant = len(vacCells)
	}

	frac := 0.0
	switch diff {
	case Basic:
		frac = 0.6
	case Intermediate:
		frac = 0.3
	case Advanced:
		frac = 0.2
	case Unreasonable:
		frac = 0.15
	}
	totalDisclosed := int(math.Round(float64(shipsSum) * frac))
	if totalDisclosed > len(occCells) {
		totalDisclosed = len(occCells)
	}
	iniOccupied := 0
	if totalDisclosed > 0 {
		iniOccupied = rng.IntN(totalDisclosed + 1)
	}
	iniTyped := totalDisclosed - iniOccupied

	combined := make([]int, h+w)
	for i := range combined {
		combined[i] = i
	}
	rng.Shuffle(len(combined), func(i, j int) { combined[i], combined[j] = combined[j], combined[i] })
	hidden := make(map[int]bool, sumsHidden)
	for i := 0; i < sumsHidden && i < len(combined); i++ {
		hidden[combined[i]] = true
	}

	outRows := make([]int, h)
	outCols := make([]int, w)
	for y := 0; y < h; y++ {
		if hidden[y] {
			outRows[y] = Hidden
		} else {
			outRows[y] = rows[y]
		}
	}
	for x := 0; x < w; x++ {
		if hidden[h+x] {
			outCols[x] = Hidden
		} else {
			outCols[x] = cols[x]
		}
	}

	rng.Shuffle(len(occCells), func(i, j int) { occCells[i], occCells[j] = occCells[j], occCells[i] })
	rng.Shuffle(len(vacCells), func(i, j int) { vacCells[i], vacCells[j] = vacCells[j], vacCells[i] })

	init := NewBoard(h, w)
	for i := 0; i < iniVacant; i++ {
		cell := vacCells[i]
		init.Set(cell[0], cell[1], Vacant)
	}
	for i := 0; i < iniOccupied && i < len(occCells); i++ {
		cell := occCells[i]
		init.Set(cell[0], cell[1], Occ)
	}
	for i := iniOccupied; i < iniOccupied+iniTyped && i < len(occCells); i++ {
		cell := occCells[i]
		init.Set(cell[0], cell[1], typed.At(cell[0], cell[1]))
	}

	lengths := append([]int(nil), ships...)
	sortDescending(lengths)

	return Clues{H: h, W: w, Ships: lengths, Rows: outRows, Cols: outCols, Init: init}
}

func lineTotals(b Board) (rows, cols []int) {
	rows = make([]int, b.H)
	cols = make([]int, b.W)
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			if b.At(y, x).Occupied() {
				rows[y]++
				cols[x]++
			}
		}
	}
	return rows, cols
}

// makeHarder implements the "too easy" branch of spec §4.F step 4.
func makeHarder(c *Clues, rng Rand) {
	if rng.IntN(2) == 0 && hideOneSum(c, rng) {
		return
	}
	removeOneDisclosure(c, rng)
}

func hideOneSum(c *Clues, rng Rand) bool {
	var visible [][2]int
	for y := 0; y < c.H; y++ {
		if c.Rows[y] != Hidden {
			visible = append(visible, [2]int{0, y})
		}
	}
	for x := 0; x < c.W; x++ {
		if c.Cols[x] != Hidden {
			visible = append(visible, [2]int{1, x})
		}
	}
	if len(visible) == 0 {
		return false
	}
	pick := visible[rng.IntN(len(visible))]
	if pick[0] == 0 {
		c.Rows[pick[1]] = Hidden
	} else {
		c.Cols[pick[1]] = Hidden
	}
	return true
}

func removeOneDisclosure(c *Clues, rng Rand) {
	var cells [][2]int
	for y := 0; y < c.H; y++ {
		for x := 0; x < c.W; x++ {
			if c.Init.At(y, x) != Undef {
				cells = append(cells, [2]int{y, x})
			}
		}
	}
	pool := newCellPool(cells)
	pick, ok := pool.PickRandom(rng)
	if !ok {
		return
	}
	c.Init.Set(pick[0], pick[1], Undef)
}

// makeEasier implements the "too hard" branch of spec §4.F step 4: with
// weights 1:3:1, restore a hidden sum, disclose a vacant cell, or
// disclose a typed cell — preferring cells the logical solver has not
// yet worked out, to maximise information gain per disclosure.
func makeEasier(c *Clues, solved, typed Board, rng Rand) {
	switch pick := rng.IntN(5); {
	case pick == 0:
		if restoreOneSum(c, typed, rng) {
			return
		}
		discloseCell(c, solved, typed, false, rng)
	case pick < 4:
		discloseCell(c, solved, typed, false, rng)
	default:
		discloseCell(c, solved, typed, true, rng)
	}
}

func restoreOneSum(c *Clues, typed Board, rng Rand) bool {
	rows, cols := lineTotals(typed)
	var hidden [][2]int
	for y := 0; y < c.H; y++ {
		if c.Rows[y] == Hidden {
			hidden = append(hidden, [2]int{0, y})
		}
	}
	for x := 0; x < c.W; x++ {
		if c.Cols[x] == Hidden {
			hidden = append(hidden, [2]int{1, x})
		}
	}
	if len(hidden) == 0 {
		return false
	}
	pick := hidden[rng.IntN(len(hidden))]
	if pick[0] == 0 {
		c.Rows[pick[1]] = rows[pick[1]]
	} else {
		c.Cols[pick[1]] = cols[pick[1]]
	}
	return true
}

// discloseCell reveals one more init cell drawn from the solution: typed
// picks among occupied cells (revealed with their true N/E/S/W/One/Inner
// state), otherwise among vacant cells.
func discloseCell(c *Clues, solved, typed Board, wantTyped bool, rng Rand) {
	var undiscovered, any [][2]int
	for y := 0; y < c.H; y++ {
		for x := 0; x < c.W; x++ {
			if c.Init.At(y, x) != Undef {
				continue
			}
			occupied := typed.At(y, x).Occupied()
			if occupied != wantTyped {
				continue
			}
			any = append(any, [2]int{y, x})
			if solved.At(y, x) == Undef {
				undiscovered = append(undiscovered, [2]int{y, x})
			}
		}
	}
	cells := undiscovered
	if len(cells) == 0 {
		cells = any
	}
	pool := newCellPool(cells)
	pick, ok := pool.PickRandom(rng)
	if !ok {
		return
	}
	if wantTyped {
		c.Init.Set(pick[0], pick[1], typed.At(pick[0], pick[1]))
	} else {
		c.Init.Set(pick[0], pick[1], Vacant)
	}
}

// discloseDivergence implements the "ambiguous" branch: pick uniformly a
// cell that is vacant in sol1 (the sampled solution) but occupied in sol2
// and disclose it Vacant, so sol2 is ruled out while sol1 stays valid.
func discloseDivergence(c *Clues, sol1 []ShipPlacement, lengths []int, sol2 []ShipPlacement, rng Rand) {
	t1 := RenderSolution(c.H, c.W, lengths, sol1)
	t2 := RenderSolution(c.H, c.W, lengths, sol2)

	var candidates [][2]int
	for y := 0; y < c.H; y++ {
		for x := 0; x < c.W; x++ {
			if c.Init.At(y, x) != Undef {
				continue
			}
			if !t1.At(y, x).Occupied() && t2.At(y, x).Occupied() {
				candidates = append(candidates, [2]int{y, x})
			}
		}
	}
	if len(candidates) == 0 {
		return
	}
	pick := candidates[rng.IntN(len(candidates))]
	c.Init.Set(pick[0], pick[1], Vacant)
}
