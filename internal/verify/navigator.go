package verify

// Navigator tracks which rectangle is highlighted. Movement wraps at both
// ends.
type Navigator struct {
	idx int
	n   int
}

// NewNavigator starts at index 0 of n rectangles.
func NewNavigator(n int) *Navigator {
	return &Navigator{n: n}
}

// Index returns the highlighted index.
func (nv *Navigator) Index() int {
	return nv.idx
}

// Len returns the number of rectangles.
func (nv *Navigator) Len() int {
	return nv.n
}

// Next advances to (idx+1) mod n.
func (nv *Navigator) Next() int {
	if nv.n > 0 {
		nv.idx = (nv.idx + 1) % nv.n
	}
	return nv.idx
}

// Prev retreats to (idx-1+n) mod n.
func (nv *Navigator) Prev() int {
	if nv.n > 0 {
		nv.idx = (nv.idx - 1 + nv.n) % nv.n
	}
	return nv.idx
}
