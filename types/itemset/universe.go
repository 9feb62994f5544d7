package itemset

import (
	"sort"
	"strconv"
	"strings"
)

type Order int

const (
	// Lexicographic orders item tokens by their bytes.
	Lexicographic Order = iota
	// Numeric orders integer item tokens by value.
	Numeric
)

func (o Order) less(a, b string) bool {
	if o == Numeric {
		x, errx := strconv.Atoi(a)
		y, erry := strconv.Atoi(b)
		if errx == nil && erry == nil {
			return x < y
		}
	}
	return a < b
}

// Universe maps item tokens to dense indices [0, N). Indices follow the
// sorted order of the tokens which keeps labels stable between runs over
// the same data.
type Universe struct {
	index map[string]int
	names []string
}

func NewUniverse(tokens []string, order Order) *Universe {
	seen := make(map[string]bool, len(tokens))
	names := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		names = append(names, tok)
	}
	sort.Slice(names, func(i, j int) bool {
		return order.less(names[i], names[j])
	})
	index := make(map[string]int, len(names))
	for i, name := range names {
		index[name] = i
	}
	return &Universe{
		index: index,
		names: names,
	}
}

func (u *Universe) Len() int {
	return len(u.names)
}

func (u *Universe) Index(token string) (int, bool) {
	i, has := u.index[token]
	return i, has
}

func (u *Universe) Name(i int) string {
	return u.names[i]
}

// Itemset looks up every token and returns the itemset of their indices.
func (u *Universe) Itemset(tokens ...string) (*Itemset, bool) {
	items := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		i, has := u.index[tok]
		if !has {
			return nil, false
		}
		items = append(items, i)
	}
	return New(items...), true
}

func (u *Universe) Names(s *Itemset) []string {
	items := s.Items()
	names := make([]string, 0, len(items))
	for _, item := range items {
		if item < len(u.names) {
			names = append(names, u.names[item])
		} else {
			names = append(names, strconv.Itoa(item))
		}
	}
	return names
}

func (u *Universe) String() string {
	return "<Universe " + strings.Join(u.names, " ") + ">"
}
