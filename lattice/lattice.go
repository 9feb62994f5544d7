package lattice

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/data-structures/set"
)

// Lattice holds the frequent patterns of a run grouped by level. Levels are
// filled strictly in order: level k accepts patterns until it is finalized
// and only then may level k+1 be written. A finalized level never changes.
type Lattice struct {
	levels    []*set.SortedSet
	finalized int
}

func New() *Lattice {
	return &Lattice{
		levels: make([]*set.SortedSet, 0, 10),
	}
}

func (l *Lattice) Add(k int, p Pattern) error {
	if k != l.finalized+1 {
		return errors.Errorf("cannot add to level %d, the open level is %d", k, l.finalized+1)
	}
	if p.Level() != k {
		return errors.Errorf("pattern %v has level %d, it cannot be stored at level %d", p, p.Level(), k)
	}
	l.grow(k)
	l.levels[k-1].Add(p)
	return nil
}

// Finalize closes level k. An empty level may be finalized, it marks the
// point where the search found nothing more.
func (l *Lattice) Finalize(k int) error {
	if k != l.finalized+1 {
		return errors.Errorf("cannot finalize level %d, the open level is %d", k, l.finalized+1)
	}
	l.grow(k)
	l.finalized = k
	return nil
}

func (l *Lattice) grow(k int) {
	for len(l.levels) < k {
		l.levels = append(l.levels, set.NewSortedSet(10))
	}
}

func (l *Lattice) Finalized() int {
	return l.finalized
}

func (l *Lattice) Has(p Pattern) bool {
	k := p.Level()
	if k < 1 || k > len(l.levels) {
		return false
	}
	return l.levels[k-1].Has(p)
}

// Level returns the patterns at level k in sorted (label) order.
func (l *Lattice) Level(k int) []Pattern {
	if k < 1 || k > len(l.levels) {
		return nil
	}
	s := l.levels[k-1]
	patterns := make([]Pattern, 0, s.Size())
	for i, next := s.Items()(); next != nil; i, next = next() {
		patterns = append(patterns, i.(Pattern))
	}
	return patterns
}

// Levels is the largest level with at least one pattern.
func (l *Lattice) Levels() int {
	for k := len(l.levels); k > 0; k-- {
		if l.levels[k-1].Size() > 0 {
			return k
		}
	}
	return 0
}

func (l *Lattice) Size() int {
	size := 0
	for _, s := range l.levels {
		size += s.Size()
	}
	return size
}

// Edges computes the cover relation of the lattice. The returned patterns
// are in level order and the edges index into them, Src being the parent.
func (l *Lattice) Edges() ([]Pattern, []Edge) {
	V := make([]Pattern, 0, l.Size())
	labels := make(map[string]int, l.Size())
	for k := 1; k <= len(l.levels); k++ {
		for _, p := range l.Level(k) {
			labels[string(p.Label())] = len(V)
			V = append(V, p)
		}
	}
	E := make([]Edge, 0, len(V)*2)
	for j, p := range V {
		n, ok := p.(Parenter)
		if !ok || p.Level() < 2 {
			continue
		}
		for _, parent := range n.Parents() {
			if i, has := labels[string(parent.Label())]; has {
				E = append(E, Edge{Src: i, Targ: j})
			}
		}
	}
	return V, E
}
