package itemset

import (
	"encoding/binary"
	"fmt"
	"strings"
)

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/timtadh/data-structures/types"
)

import (
	"github.com/timtadh/apriori/lattice"
)

// Itemset is an immutable set of item indices stored as a bit-set over the
// item universe. Two itemsets with the same members have the same Label
// regardless of how they were built.
type Itemset struct {
	bits  *bitset.BitSet
	size  int
	label []byte
}

func New(items ...int) *Itemset {
	bits := bitset.New(0)
	for _, item := range items {
		if item < 0 {
			panic(fmt.Errorf("negative item index %d", item))
		}
		bits.Set(uint(item))
	}
	return newItemset(bits)
}

// FromBitSet copies b into a new Itemset.
func FromBitSet(b *bitset.BitSet) *Itemset {
	return newItemset(b.Clone())
}

func newItemset(bits *bitset.BitSet) *Itemset {
	s := &Itemset{
		bits: bits,
		size: int(bits.Count()),
	}
	s.label = s.encode()
	return s
}

func (s *Itemset) encode() []byte {
	bytes := make([]byte, 4*(s.size+1))
	binary.BigEndian.PutUint32(bytes[0:4], uint32(s.size))
	off := 4
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		binary.BigEndian.PutUint32(bytes[off:off+4], uint32(i))
		off += 4
	}
	return bytes
}

func (s *Itemset) Level() int {
	return s.size
}

func (s *Itemset) Label() []byte {
	return s.label
}

// Items lists the members in ascending order.
func (s *Itemset) Items() []int {
	items := make([]int, 0, s.size)
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		items = append(items, int(i))
	}
	return items
}

func (s *Itemset) Has(item int) bool {
	if item < 0 {
		return false
	}
	return s.bits.Test(uint(item))
}

func (s *Itemset) Union(o *Itemset) *Itemset {
	return newItemset(s.bits.Union(o.bits))
}

// Shared counts the items s and o have in common.
func (s *Itemset) Shared(o *Itemset) int {
	return int(s.bits.IntersectionCardinality(o.bits))
}

func (s *Itemset) IsSubsetOf(o *Itemset) bool {
	return o.bits.IsSuperSet(s.bits)
}

// Subsets returns every subset of s with exactly one item removed.
func (s *Itemset) Subsets() []*Itemset {
	subsets := make([]*Itemset, 0, s.size)
	if s.size == 0 {
		return subsets
	}
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		bits := s.bits.Clone()
		bits.Clear(i)
		subsets = append(subsets, newItemset(bits))
	}
	return subsets
}

func (s *Itemset) Parents() []lattice.Pattern {
	subsets := s.Subsets()
	parents := make([]lattice.Pattern, 0, len(subsets))
	for _, p := range subsets {
		parents = append(parents, p)
	}
	return parents
}

func (s *Itemset) String() string {
	items := s.Items()
	strs := make([]string, 0, len(items))
	for _, item := range items {
		strs = append(strs, fmt.Sprintf("%d", item))
	}
	return "{" + strings.Join(strs, ", ") + "}"
}

func (s *Itemset) Equals(o types.Equatable) bool {
	a := types.ByteSlice(s.Label())
	switch b := o.(type) {
	case lattice.Labeled:
		return a.Equals(types.ByteSlice(b.Label()))
	default:
		return false
	}
}

func (s *Itemset) Less(o types.Sortable) bool {
	a := types.ByteSlice(s.Label())
	switch b := o.(type) {
	case lattice.Labeled:
		return a.Less(types.ByteSlice(b.Label()))
	default:
		return false
	}
}

func (s *Itemset) Hash() int {
	return types.ByteSlice(s.Label()).Hash()
}
