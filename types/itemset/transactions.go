package itemset

import (
	"sort"
)

import (
	"github.com/bits-and-blooms/bitset"
)

// Transactions is the dense boolean transaction table: one row per input
// record, one column per item. It is never modified once built so it may be
// shared by any number of goroutines.
type Transactions struct {
	items int
	rows  []*bitset.BitSet
}

func NewTransactions(items int, rows []*bitset.BitSet) *Transactions {
	return &Transactions{
		items: items,
		rows:  rows,
	}
}

// FromLists builds a table from per-row item lists.
func FromLists(items int, lists [][]int) *Transactions {
	rows := make([]*bitset.BitSet, 0, len(lists))
	for _, list := range lists {
		row := bitset.New(uint(items))
		for _, item := range list {
			row.Set(uint(item))
		}
		rows = append(rows, row)
	}
	return NewTransactions(items, rows)
}

func (t *Transactions) Rows() int {
	return len(t.rows)
}

func (t *Transactions) Items() int {
	return t.items
}

func (t *Transactions) Row(i int) *Itemset {
	return FromBitSet(t.rows[i])
}

// Contains selects the columns of s from row and reports whether all of
// them are set.
func (t *Transactions) Contains(row int, s *Itemset) bool {
	r := t.rows[row]
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		if !r.Test(i) {
			return false
		}
	}
	return true
}

// Count is the number of rows containing every item of s.
func (t *Transactions) Count(s *Itemset) int {
	count := 0
	for row := range t.rows {
		if t.Contains(row, s) {
			count++
		}
	}
	return count
}

// Supporting lists the ids of the rows containing s.
func (t *Transactions) Supporting(s *Itemset) []int {
	rows := make([]int, 0, 10)
	for row := range t.rows {
		if t.Contains(row, s) {
			rows = append(rows, row)
		}
	}
	return rows
}

// Lexsort returns a copy of the table with the rows ordered so that rows
// having items with small indices come first:
//
//	[1, 1, 0, ..., 0, 1, 0]
//	[1, 0, 1, ..., 1, 0, 1]
//	[0, 1, 0, ..., 0, 0, 1]
//	...
//	[0, 0, 0, ..., 1, 1, 1]
//
// Supports computed from the copy are identical to those of t.
func (t *Transactions) Lexsort() *Transactions {
	rows := make([]*bitset.BitSet, len(t.rows))
	copy(rows, t.rows)
	sort.SliceStable(rows, func(i, j int) bool {
		return rowLess(rows[i], rows[j])
	})
	return NewTransactions(t.items, rows)
}

func rowLess(a, b *bitset.BitSet) bool {
	c, ok := a.SymmetricDifference(b).NextSet(0)
	if !ok {
		return false
	}
	return a.Test(c)
}
