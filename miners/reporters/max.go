package reporters

import ()

import (
	"github.com/timtadh/data-structures/set"
	"github.com/timtadh/data-structures/types"
)

import (
	"github.com/timtadh/apriori/lattice"
	"github.com/timtadh/apriori/miners"
)

// Max holds back every pattern until Close and then forwards only the
// maximal ones: those which are not the parent of another reported
// pattern. Patterns must implement lattice.Parenter.
type Max struct {
	Reporter miners.Reporter
	held     []Reported
	parents  *set.SortedSet
}

func NewMax(rptr miners.Reporter) *Max {
	return &Max{
		Reporter: rptr,
		parents:  set.NewSortedSet(10),
	}
}

func (m *Max) Report(level int, p lattice.Pattern, support float64) error {
	m.held = append(m.held, Reported{Level: level, Pattern: p, Support: support})
	if n, ok := p.(lattice.Parenter); ok {
		for _, parent := range n.Parents() {
			m.parents.Add(types.ByteSlice(parent.Label()))
		}
	}
	return nil
}

func (m *Max) Close() error {
	for _, r := range m.held {
		if m.parents.Has(types.ByteSlice(r.Pattern.Label())) {
			continue
		}
		if err := m.Reporter.Report(r.Level, r.Pattern, r.Support); err != nil {
			return err
		}
	}
	m.held = nil
	return m.Reporter.Close()
}
