package ships

// placer implements the recursive random ship placement of spec §4.E.
// Unlike the exhaustive solver it has no clue board to respect: it just
// drops the given ship lengths onto an empty grid so their cells and
// borders never touch.
type placer struct {
	h, w         int
	lengths      []int
	rng          Rand
	occ          []bool
	blockedStack [][]bool
	placements   []ShipPlacement
	calls        int
	callLimit    int
}

// PlaceShips samples a random valid arrangement of lengths on an h×w grid.
// callLimit <= 0 means unbounded. ok is false if the call limit was hit
// before a full arrangement was found; the caller (the generator) is
// expected to retry the whole attempt, per spec §4.E's "ship 0's retry
// happens at the caller loop".
func PlaceShips(h, w int, lengths []int, rng Rand, callLimit int) ([]ShipPlacement, int, bool) {
	p := &placer{
		h:         h,
		w:         w,
		lengths:   lengths,
		rng:       rng,
		occ:       make([]bool, h*w),
		callLimit: callLimit,
	}
	ok := p.place(0)
	if !ok {
		return nil, p.calls, false
	}
	placements := make([]ShipPlacement, len(p.placements))
	copy(placements, p.placements)
	return placements, p.calls, true
}

func (p *placer) index(y, x int) int { return y*p.w + x }

func (p *placer) place(k int) bool {
	if k == len(p.lengths) {
		return true
	}
	length := p.lengths[k]
	total := positionCount(p.h, p.w, length)

	for {
		if p.callLimit > 0 && p.calls >= p.callLimit {
			return false
		}
		p.calls++

		idx := p.rng.IntN(total)
		cand := positionAt(p.h, p.w, length, idx)
		if length == 1 {
			cand.Orientation = Horizontal
		}

		if !p.cellsFree(cand, length) {
			continue
		}

		p.occupy(cand, length)
		layer := p.blockLayer(cand, length)
		p.blockedStack = append(p.blockedStack, layer)
		p.placements = append(p.placements, cand)

		if p.place(k + 1) {
			return true
		}

		p.blockedStack = p.blockedStack[:len(p.blockedStack)-1]
		p.placements = p.placements[:len(p.placements)-1]
		p.unoccupy(cand, length)
	}
}

func (p *placer) cellsFree(cand ShipPlacement, length int) bool {
	for _, cell := range cand.cells(length) {
		i := p.index(cell[0], cell[1])
		if p.occ[i] {
			return false
		}
		for _, layer := range p.blockedStack {
			if layer[i] {
				return false
			}
		}
	}
	return true
}

func (p *placer) occupy(cand ShipPlacement, length int) {
	for _, cell := range cand.cells(length) {
		p.occ[p.index(cell[0], cell[1])] = true
	}
}

func (p *placer) unoccupy(cand ShipPlacement, length int) {
	for _, cell := range cand.cells(length) {
		p.occ[p.index(cell[0], cell[1])] = false
	}
}

func (p *placer) blockLayer(cand ShipPlacement, length int) []bool {
	layer := make([]bool, p.h*p.w)
	for _, cell := range cand.cells(length) {
		cy, cx := cell[0], cell[1]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				y, x := cy+dy, cx+dx
				if y >= 0 && y < p.h && x >= 0 && x < p.w {
					layer[p.index(y, x)] = true
				}
			}
		}
	}
	return layer
}
