package itemset

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"bytes"
	"io"
	"strings"
)

import (
	"github.com/timtadh/data-structures/set"
	"github.com/timtadh/data-structures/types"
)

import (
	"github.com/timtadh/apriori/lattice"
)

var items = [][]int{
	{0},
	{1, 2, 3},
	{1, 2, 3},
	{1, 2, 3},
	{2, 3, 4},
	{2, 3, 4},
	{2, 3, 4},
	{7, 8, 9, 10},
	{7, 8, 9, 11},
	{7, 8, 9, 12},
	{1, 12},
	{1, 11},
	{1, 10},
	{1, 8, 10},
	{1, 9, 11},
	{1, 4, 12},
	{1, 12, 7},
	{1, 11, 8},
	{1, 10, 12},
}

func stringInput(data string) lattice.Input {
	return func() (io.Reader, func(), error) {
		return strings.NewReader(data), func() {}, nil
	}
}

func TestItemsetIdentity(x *testing.T) {
	t := assert.New(x)
	a := New(3, 1, 2)
	b := New(1, 2, 3)
	t.Equal(3, a.Level())
	t.Equal([]int{1, 2, 3}, a.Items())
	t.True(a.Equals(b))
	t.Equal(a.Hash(), b.Hash())
	t.Equal(a.Label(), b.Label())
	t.False(a.Equals(New(1, 2)))
	t.Equal("{1, 2, 3}", a.String())
}

func TestItemsetOrdering(x *testing.T) {
	t := assert.New(x)
	t.True(New(5).Less(New(0, 1)), "smaller itemsets sort first")
	t.True(New(0, 1).Less(New(0, 2)))
	t.False(New(0, 2).Less(New(0, 1)))
}

func TestItemsetAsSetKey(x *testing.T) {
	t := assert.New(x)
	s := set.NewSortedSet(10)
	s.Add(New(1, 2))
	s.Add(New(2, 1))
	s.Add(New(2, 3))
	t.Equal(2, s.Size())
	t.True(s.Has(New(1, 2)))
	t.False(s.Has(New(1, 3)))
	t.False(New(1).Equals(types.Int32(1)))
}

func TestUnionAndShared(x *testing.T) {
	t := assert.New(x)
	a := New(1, 2)
	b := New(2, 3)
	u := a.Union(b)
	t.Equal([]int{1, 2, 3}, u.Items())
	t.Equal(1, a.Shared(b))
	t.True(a.IsSubsetOf(u))
	t.False(u.IsSubsetOf(a))
	t.Equal([]int{1, 2}, a.Items(), "union must not modify its operands")
}

func TestSubsets(x *testing.T) {
	t := assert.New(x)
	n123 := New(1, 2, 3)
	expected := set.FromSlice([]types.Hashable{
		New(1, 2),
		New(1, 3),
		New(2, 3),
	})
	subsets := n123.Subsets()
	t.Len(subsets, 3)
	for _, p := range subsets {
		t.True(expected.Has(p), "%v not in %v", p, expected)
	}
	t.Len(n123.Parents(), 3)
	t.Len(New(4).Subsets(), 1)
	t.Equal(0, New(4).Subsets()[0].Level())
}

func TestTransactionsCount(x *testing.T) {
	t := assert.New(x)
	dt := FromLists(13, items)
	t.Equal(19, dt.Rows())
	t.Equal(13, dt.Items())
	t.Equal(3, dt.Count(New(1, 2, 3)))
	t.Equal([]int{1, 2, 3}, dt.Supporting(New(1, 2, 3)))
	t.Equal(3, dt.Count(New(7, 8, 9)))
	t.Equal(0, dt.Count(New(0, 1)))
	t.Equal(dt.Rows(), dt.Count(New()), "every row contains the empty set")
	t.True(dt.Contains(0, New(0)))
	t.False(dt.Contains(0, New(0, 1)))
}

func TestLexsort(x *testing.T) {
	t := assert.New(x)
	dt := FromLists(3, [][]int{{2}, {0, 1}, {1, 2}, {0}, {}})
	sorted := dt.Lexsort()
	t.Equal([]int{0, 1}, sorted.Row(0).Items())
	t.Equal([]int{0}, sorted.Row(1).Items())
	t.Equal([]int{1, 2}, sorted.Row(2).Items())
	t.Equal([]int{2}, sorted.Row(3).Items())
	t.Equal([]int{}, sorted.Row(4).Items())
	t.Equal([]int{2}, dt.Row(0).Items(), "lexsort copies the table")
	for _, s := range []*Itemset{New(0), New(1), New(1, 2), New(0, 1)} {
		t.Equal(dt.Count(s), sorted.Count(s))
	}
}

func TestUniverseOrder(x *testing.T) {
	t := assert.New(x)
	u := NewUniverse([]string{"C", "A", "B", "A"}, Lexicographic)
	t.Equal(3, u.Len())
	a, _ := u.Index("A")
	c, _ := u.Index("C")
	t.Equal(0, a)
	t.Equal(2, c)
	t.Equal("B", u.Name(1))
	n := NewUniverse([]string{"10", "9", "100"}, Numeric)
	t.Equal("9", n.Name(0))
	t.Equal("10", n.Name(1))
	t.Equal("100", n.Name(2))
	s, ok := u.Itemset("C", "A")
	t.True(ok)
	t.Equal([]string{"A", "C"}, u.Names(s))
	_, ok = u.Itemset("D")
	t.False(ok)
}

func TestNameLoader(x *testing.T) {
	t := assert.New(x)
	dt, u, err := NewNameLoader("test").Load(stringInput("A B\nA\nB C\n"))
	t.Nil(err)
	t.Equal(3, u.Len())
	t.Equal(3, dt.Rows())
	ab, _ := u.Itemset("A", "B")
	t.Equal(1, dt.Count(ab))
	a, _ := u.Itemset("A")
	t.Equal(2, dt.Count(a))
}

func TestNameLoaderEmptyLines(x *testing.T) {
	t := assert.New(x)
	dt, u, err := NewNameLoader("test").Load(stringInput("A\n\nA\n"))
	t.Nil(err)
	t.Equal(1, u.Len())
	t.Equal(3, dt.Rows())
}

func TestIntLoaderSkipsBadTokens(x *testing.T) {
	t := assert.New(x)
	dt, u, err := NewIntLoader("test").Load(stringInput("10 1 5 7\n213 2 x 1\n3 4 1\n"))
	t.Nil(err)
	t.Equal(8, u.Len())
	t.Equal("1", u.Name(0))
	t.Equal("213", u.Name(7))
	one, _ := u.Itemset("1")
	t.Equal(3, dt.Count(one))
}

func TestIntLoaderNormalizesTokens(x *testing.T) {
	t := assert.New(x)
	dt, u, err := NewIntLoader("test").Load(stringInput("01 2\n1\n002 +1\n"))
	t.Nil(err)
	t.Equal(2, u.Len())
	t.Equal("1", u.Name(0))
	t.Equal("2", u.Name(1))
	one, _ := u.Itemset("1")
	t.Equal(3, dt.Count(one))
	both, _ := u.Itemset("1", "2")
	t.Equal(2, dt.Count(both))
}

func TestLoaderErrors(x *testing.T) {
	t := assert.New(x)
	_, _, err := NewNameLoader("nothing").Load(nil)
	_, missing := err.(*lattice.MissingInputError)
	t.True(missing, "%v", err)

	_, _, err = NewNameLoader("broken").Load(func() (io.Reader, func(), error) {
		return nil, nil, io.ErrUnexpectedEOF
	})
	t.Equal("input", lattice.Classify(err))

	_, err = LoadTransactions("nomap", stringInput("A\n"), nil, nil)
	_, mapping := err.(*lattice.MappingRequiredError)
	t.True(mapping, "%v", err)

	u := NewUniverse([]string{"A"}, Lexicographic)
	_, err = LoadTransactions("unknown", stringInput("A B\n"), u, nil)
	t.NotNil(err)
}

func TestFormatter(x *testing.T) {
	t := assert.New(x)
	dt, u, err := NewNameLoader("test").Load(stringInput("A B\nA\nB C\n"))
	t.Nil(err)
	f := &Formatter{Universe: u, Transactions: dt}
	a, _ := u.Itemset("A")
	t.Equal("{A}", f.PatternName(a))
	var buf bytes.Buffer
	t.Nil(f.FormatPattern(&buf, 1, a, 2.0/3.0))
	t.Equal("1\t{A}\t0.666667\n", buf.String())
	buf.Reset()
	t.Nil(f.FormatEmbeddings(&buf, a))
	t.Equal("{A}\t0 1\n", buf.String())
	t.Equal("{0 1}", (&Formatter{}).PatternName(New(0, 1)))
}
