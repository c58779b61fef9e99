package ships

import "github.com/avdeenko/battleships-server/internal/tree234"

// cellPool is an ordered set of board cells supporting O(log n) uniform
// random removal, backed by the 2-3-4 tree also used by the generator's
// index-addressed lookups. Building it once per disclosure decision and
// throwing it away is cheap at puzzle sizes (<= 25x25 = 625 cells).
type cellPool struct {
	tree *tree234.Tree234[[2]int]
}

func cmpCell(a, b *[2]int) int {
	switch {
	case a[0] != b[0]:
		if a[0] < b[0] {
			return -1
		}
		return 1
	case a[1] != b[1]:
		if a[1] < b[1] {
			return -1
		}
		return 1
	default:
		return 0
	}
}

func newCellPool(cells [][2]int) *cellPool {
	t := tree234.NewTree234(cmpCell)
	for _, c := range cells {
		cell := c
		t.Add(&cell)
	}
	return &cellPool{tree: t}
}

func (p *cellPool) Len() int { return p.tree.Count() }

// PickRandom removes and returns a uniformly random element.
func (p *cellPool) PickRandom(rng Rand) ([2]int, bool) {
	n := p.tree.Count()
	if n == 0 {
		return [2]int{}, false
	}
	idx := rng.IntN(n)
	e := p.tree.Index(idx)
	cell := *e
	p.tree.DeletePos(idx)
	return cell, true
}
