package apriori

import (
	"sync"
)

import (
	"github.com/timtadh/apriori/lattice"
	"github.com/timtadh/apriori/types/itemset"
)

// Support is the fraction of the rows of dt containing every item of s.
func Support(dt *itemset.Transactions, s *itemset.Itemset) (float64, error) {
	if dt.Rows() == 0 {
		return 0, &lattice.EmptyDatasetError{Items: dt.Items()}
	}
	return support(dt, s), nil
}

func support(dt *itemset.Transactions, s *itemset.Itemset) float64 {
	return float64(dt.Count(s)) / float64(dt.Rows())
}

// count computes the support of every candidate not yet in the frequency
// table. The counts run on the worker pool and are written to the table
// once the whole batch is done.
func (r *run) count(candidates []*itemset.Itemset) error {
	if r.dt.Rows() == 0 {
		return &lattice.EmptyDatasetError{Items: r.dt.Items()}
	}
	if len(candidates) == 0 {
		return nil
	}
	todo := make([]*itemset.Itemset, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, s := range candidates {
		label := string(s.Label())
		if seen[label] {
			continue
		}
		seen[label] = true
		if has, err := r.table.Has(s); err != nil {
			return err
		} else if !has {
			todo = append(todo, s)
		}
	}
	supports := make([]float64, len(todo))
	var wg sync.WaitGroup
	for i, s := range todo {
		i, s := i, s
		wg.Add(1)
		r.workers.Do(func() {
			defer wg.Done()
			supports[i] = support(r.dt, s)
		})
	}
	wg.Wait()
	for i, s := range todo {
		if err := r.table.Put(s, supports[i]); err != nil {
			return err
		}
	}
	if len(todo) > 0 {
		r.levelFor(todo[0].Level()).Counted += len(todo)
	}
	return nil
}
