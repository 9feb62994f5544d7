package apriori

import (
	"sort"
)

import (
	"github.com/timtadh/apriori/lattice"
	"github.com/timtadh/apriori/types/itemset"
)

// batchLevel is the common size of the candidates.
func batchLevel(candidates []*itemset.Itemset) (int, error) {
	if len(candidates) == 0 {
		return 0, &lattice.InconsistentSizeError{Count: 0}
	}
	k := candidates[0].Level()
	mixed := false
	for _, c := range candidates[1:] {
		if c.Level() != k {
			mixed = true
			break
		}
	}
	if !mixed {
		return k, nil
	}
	seen := make(map[int]bool)
	sizes := make([]int, 0, 2)
	for _, c := range candidates {
		if !seen[c.Level()] {
			seen[c.Level()] = true
			sizes = append(sizes, c.Level())
		}
	}
	sort.Ints(sizes)
	return 0, &lattice.InconsistentSizeError{Count: len(candidates), Sizes: sizes}
}

// filter stores the candidates whose support strictly exceeds the
// threshold at their level of the lattice, reports them and finalizes the
// level. Every candidate must already be in the frequency table.
func (r *run) filter(candidates []*itemset.Itemset) ([]*itemset.Itemset, error) {
	k, err := batchLevel(candidates)
	if err != nil {
		return nil, err
	}
	frequent := make([]*itemset.Itemset, 0, len(candidates))
	for _, c := range candidates {
		support, err := r.table.Get(c)
		if err != nil {
			return nil, err
		}
		if support <= r.conf.Support {
			continue
		}
		if err := r.lattice.Add(k, c); err != nil {
			return nil, err
		}
		if err := r.rptr.Report(k, c, support); err != nil {
			return nil, err
		}
		frequent = append(frequent, c)
	}
	if err := r.lattice.Finalize(k); err != nil {
		return nil, err
	}
	r.levelFor(k).Frequent += len(frequent)
	return frequent, nil
}
