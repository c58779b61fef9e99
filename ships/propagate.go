package ships

// ApplyPropagator runs the one-shot local enrichment pass described in
// spec §4.B ("solver_init"): ship-end, singleton and interior cells force
// the state of their neighbours; a second pass then marks the diagonal
// neighbours of every occupied cell (of either kind) Vacant, since the
// first pass may itself have produced new occupied cells. Writes never
// demote a cell (see [Board.Promote]); contradictory writes are silently
// dropped rather than detected. Returns whether anything changed.
func ApplyPropagator(b *Board) bool {
	changed := false

	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			switch b.At(y, x) {
			case N, E, S, W:
				changed = applyEndRule(b, y, x) || changed
			case One:
				changed = applyOneRule(b, y, x) || changed
			case Inner:
				changed = applyInnerRule(b, y, x) || changed
			}
		}
	}

	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			if b.At(y, x).Occupied() {
				changed = applyOccDiagonals(b, y, x) || changed
			}
		}
	}

	return changed
}

// applyEndRule implements the N/E/S/W rule once, in the local frame where
// the arrow points "up" (local offset (-1, 0)), and rotates the eight
// local offsets into real offsets according to the direction at (y, x).
func applyEndRule(b *Board, y, x int) bool {
	dir := b.At(y, x)
	rot := endRotation(dir)
	changed := false
	for ldy := -1; ldy <= 1; ldy++ {
		for ldx := -1; ldx <= 1; ldx++ {
			if ldy == 0 && ldx == 0 {
				continue
			}
			rdy, rdx := rotateOffset(rot, ldy, ldx)
			ny, nx := y+rdy, x+rdx
			if !b.InBounds(ny, nx) {
				continue
			}
			if ldy == 1 && ldx == 0 {
				// local-down: opposite the arrow, the ship extends this way.
				changed = b.Promote(ny, nx, Occ) || changed
			} else {
				changed = b.Promote(ny, nx, Vacant) || changed
			}
		}
	}
	return changed
}

// applyOneRule marks all eight neighbours of a singleton ship Vacant.
func applyOneRule(b *Board, y, x int) bool {
	changed := false
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dy == 0 && dx == 0 {
				continue
			}
			if b.InBounds(y+dy, x+dx) {
				changed = b.Promote(y+dy, x+dx, Vacant) || changed
			}
		}
	}
	return changed
}

// applyInnerRule marks the four diagonal neighbours Vacant, then, for
// whichever axis (if any) already shows exactly one known-occupied
// neighbour, infers the ship's orientation: the perpendicular axis becomes
// Vacant and the unconfirmed neighbour on the same axis becomes at least
// Occ.
func applyInnerRule(b *Board, y, x int) bool {
	changed := false
	for _, d := range [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}} {
		if b.InBounds(y+d[0], x+d[1]) {
			changed = b.Promote(y+d[0], x+d[1], Vacant) || changed
		}
	}

	horiz := b.At(y, x-1).Occupied() != b.At(y, x+1).Occupied()
	vert := b.At(y-1, x).Occupied() != b.At(y+1, x).Occupied()

	if horiz {
		if b.InBounds(y-1, x) {
			changed = b.Promote(y-1, x, Vacant) || changed
		}
		if b.InBounds(y+1, x) {
			changed = b.Promote(y+1, x, Vacant) || changed
		}
		if b.At(y, x-1).Occupied() {
			changed = b.Promote(y, x+1, Occ) || changed
		} else {
			changed = b.Promote(y, x-1, Occ) || changed
		}
	}
	if vert {
		if b.InBounds(y, x-1) {
			changed = b.Promote(y, x-1, Vacant) || changed
		}
		if b.InBounds(y, x+1) {
			changed = b.Promote(y, x+1, Vacant) || changed
		}
		if b.At(y-1, x).Occupied() {
			changed = b.Promote(y+1, x, Occ) || changed
		} else {
			changed = b.Promote(y-1, x, Occ) || changed
		}
	}
	return changed
}

// applyOccDiagonals marks the four diagonal neighbours of any occupied
// cell Vacant (ships never touch, even diagonally).
func applyOccDiagonals(b *Board, y, x int) bool {
	changed := false
	for _, d := range [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}} {
		if b.InBounds(y+d[0], x+d[1]) {
			changed = b.Promote(y+d[0], x+d[1], Vacant) || changed
		}
	}
	return changed
}
