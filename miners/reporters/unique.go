package reporters

import (
	"github.com/timtadh/data-structures/set"
	"github.com/timtadh/data-structures/types"
)

import (
	"github.com/timtadh/apriori/lattice"
	"github.com/timtadh/apriori/miners"
)

type Unique struct {
	Seen     *set.SortedSet
	Reporter miners.Reporter
}

func NewUnique(reporter miners.Reporter) *Unique {
	return &Unique{
		Seen:     set.NewSortedSet(10),
		Reporter: reporter,
	}
}

func (r *Unique) Report(level int, p lattice.Pattern, support float64) error {
	label := types.ByteSlice(p.Label())
	if r.Seen.Has(label) {
		return nil
	}
	r.Seen.Add(label)
	return r.Reporter.Report(level, p, support)
}

func (r *Unique) Close() error {
	return r.Reporter.Close()
}
