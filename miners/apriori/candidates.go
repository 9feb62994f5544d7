package apriori

import (
	"github.com/timtadh/data-structures/set"
	"golang.org/x/sync/errgroup"
)

import (
	"github.com/timtadh/apriori/types/itemset"
)

// generate joins the frequent k-itemsets into (k+1)-candidates. Two
// itemsets join when they share k-1 items. A joined candidate is kept only
// if every one of its k-subsets is itself frequent; all others can not be
// frequent and are dropped here, never reaching the counter.
func (r *run) generate(k int) ([]*itemset.Itemset, error) {
	frequent := r.frequent(k)
	if len(frequent) == 0 {
		return nil, nil
	}
	parts := r.workers.Size()
	if parts > len(frequent) {
		parts = len(frequent)
	}
	kept := make([][]*itemset.Itemset, parts)
	pruned := make([][]*itemset.Itemset, parts)
	joined := make([]int, parts)
	var g errgroup.Group
	g.SetLimit(parts)
	for p := 0; p < parts; p++ {
		p := p
		g.Go(func() error {
			for i := p; i < len(frequent); i += parts {
				for j := i + 1; j < len(frequent); j++ {
					a, b := frequent[i], frequent[j]
					if a.Shared(b) != k-1 {
						continue
					}
					candidate := a.Union(b)
					if candidate.Level() != k+1 {
						continue
					}
					joined[p]++
					if r.closed(candidate) {
						kept[p] = append(kept[p], candidate)
					} else {
						pruned[p] = append(pruned[p], candidate)
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	candidates := merge(kept)
	stats := r.levelFor(k + 1)
	for _, n := range joined {
		stats.Joined += n
	}
	stats.Pruned += len(merge(pruned))
	stats.Candidates += len(candidates)
	return candidates, nil
}

// closed reports whether every k-subset of the (k+1)-candidate is in the
// lattice.
func (r *run) closed(candidate *itemset.Itemset) bool {
	for _, sub := range candidate.Subsets() {
		if !r.lattice.Has(sub) {
			return false
		}
	}
	return true
}

// merge de-duplicates the partitions and returns the itemsets in label
// order.
func merge(parts [][]*itemset.Itemset) []*itemset.Itemset {
	size := 0
	for _, part := range parts {
		size += len(part)
	}
	s := set.NewSortedSet(size + 1)
	for _, part := range parts {
		for _, c := range part {
			s.Add(c)
		}
	}
	merged := make([]*itemset.Itemset, 0, s.Size())
	for i, next := s.Items()(); next != nil; i, next = next() {
		merged = append(merged, i.(*itemset.Itemset))
	}
	return merged
}
