package apriori

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"math/rand"
	"path/filepath"
	"sort"
)

import (
	"github.com/timtadh/apriori/config"
	"github.com/timtadh/apriori/lattice"
	"github.com/timtadh/apriori/miners/reporters"
	"github.com/timtadh/apriori/types/itemset"
)

// abc is the table {A B}, {A}, {B C} with A=0, B=1, C=2.
func abc() *itemset.Transactions {
	return itemset.FromLists(3, [][]int{{0, 1}, {0}, {1, 2}})
}

func random(items, rows, width int) *itemset.Transactions {
	lists := make([][]int, 0, rows)
	for i := 0; i < rows; i++ {
		lists = append(lists, rand.Perm(items)[:1+rand.Intn(width)])
	}
	return itemset.FromLists(items, lists)
}

func mine(t *assert.Assertions, conf *config.Config, dt *itemset.Transactions) (*lattice.Lattice, *reporters.Collector, *Miner) {
	c := &reporters.Collector{}
	m := NewMiner(conf)
	l, err := m.Mine(dt, c)
	t.Nil(err)
	t.NotNil(l)
	t.Nil(m.Close())
	t.True(c.Closed)
	return l, c, m
}

func labels(l *lattice.Lattice) []string {
	ls := make([]string, 0, l.Size())
	for k := 1; k <= l.Levels(); k++ {
		for _, p := range l.Level(k) {
			ls = append(ls, string(p.Label()))
		}
	}
	sort.Strings(ls)
	return ls
}

func TestScenario(x *testing.T) {
	t := assert.New(x)
	l, c, m := mine(t, &config.Config{Support: .5}, abc())
	t.Equal(1, l.Levels())
	t.Equal(2, l.Size())
	t.True(l.Has(itemset.New(0)))
	t.True(l.Has(itemset.New(1)))
	t.False(l.Has(itemset.New(2)))
	t.False(l.Has(itemset.New(0, 1)))
	t.Len(c.Reported, 2)
	for _, r := range c.Reported {
		t.Equal(1, r.Level)
		t.InDelta(2.0/3.0, r.Support, 1e-12)
	}
	s := m.Stats()
	t.Len(s, 2)
	t.Equal(3, s[0].Candidates)
	t.Equal(3, s[0].Counted)
	t.Equal(2, s[0].Frequent)
	t.Equal(1, s[1].Joined)
	t.Equal(1, s[1].Candidates)
	t.Equal(1, s[1].Counted)
	t.Equal(0, s[1].Frequent)
}

func TestScenarioLowerThreshold(x *testing.T) {
	t := assert.New(x)
	l, c, _ := mine(t, &config.Config{Support: .3}, abc())
	t.Equal(2, l.Levels())
	t.Equal(5, l.Size())
	t.True(l.Has(itemset.New(0, 1)))
	t.True(l.Has(itemset.New(1, 2)))
	t.False(l.Has(itemset.New(0, 2)))
	t.False(l.Has(itemset.New(0, 1, 2)))
	for i, r := range c.Reported {
		if i > 0 {
			t.True(c.Reported[i-1].Level <= r.Level, "levels are reported in order")
		}
	}
}

func TestThresholdIsStrict(x *testing.T) {
	t := assert.New(x)
	l, _, _ := mine(t, &config.Config{Support: 1.0 / 3.0}, abc())
	t.False(l.Has(itemset.New(2)))
	t.Equal(2, l.Size())
	l, _, _ = mine(t, &config.Config{Support: 1}, abc())
	t.Equal(0, l.Size())
}

func TestMaxLevel(x *testing.T) {
	t := assert.New(x)
	dt := itemset.FromLists(3, [][]int{{0, 1, 2}, {0, 1, 2}})
	l, _, _ := mine(t, &config.Config{Support: .5, MaxLevel: 2}, dt)
	t.Equal(2, l.Levels())
	t.Equal(6, l.Size())
	l, _, _ = mine(t, &config.Config{Support: .5}, dt)
	t.Equal(3, l.Levels())
	t.Equal(7, l.Size())
}

func TestSupport(x *testing.T) {
	t := assert.New(x)
	dt := abc()
	s, err := Support(dt, itemset.New(0, 1))
	t.Nil(err)
	t.Equal(1.0/3.0, s)
	again, err := Support(dt, itemset.New(0, 1))
	t.Nil(err)
	t.Equal(s, again)
	s, err = Support(dt, itemset.New(0))
	t.Nil(err)
	t.Equal(2.0/3.0, s)
	_, err = Support(itemset.FromLists(3, nil), itemset.New(0))
	t.Equal("empty", lattice.Classify(err))
}

func TestEmptyDataset(x *testing.T) {
	t := assert.New(x)
	c := &reporters.Collector{}
	l, err := NewMiner(&config.Config{Support: .5}).Mine(itemset.FromLists(3, nil), c)
	t.Nil(l)
	t.Equal("empty", lattice.Classify(err))
	t.Len(c.Reported, 0)
}

func TestEmptyUniverse(x *testing.T) {
	t := assert.New(x)
	l, c, _ := mine(t, &config.Config{Support: .5}, itemset.FromLists(0, [][]int{{}, {}}))
	t.Equal(0, l.Size())
	t.Len(c.Reported, 0)
}

func TestBadConfig(x *testing.T) {
	t := assert.New(x)
	l, err := NewMiner(&config.Config{Support: 0}).Mine(abc(), &reporters.Collector{})
	t.Nil(l)
	t.Equal("config", lattice.Classify(err))
}

func TestBatchLevel(x *testing.T) {
	t := assert.New(x)
	k, err := batchLevel([]*itemset.Itemset{itemset.New(1, 2), itemset.New(0, 3)})
	t.Nil(err)
	t.Equal(2, k)
	_, err = batchLevel(nil)
	t.Equal("internal", lattice.Classify(err))
	_, err = batchLevel([]*itemset.Itemset{itemset.New(1, 2, 3), itemset.New(0), itemset.New(4, 5, 6)})
	sizeErr, ok := err.(*lattice.InconsistentSizeError)
	t.True(ok)
	t.Equal(3, sizeErr.Count)
	t.Equal([]int{1, 3}, sizeErr.Sizes)
}

func newTestRun(t *assert.Assertions, conf *config.Config, dt *itemset.Transactions) *run {
	r, err := newRun(conf, dt, &reporters.Collector{})
	t.Nil(err)
	return r
}

func TestGeneratePrunes(x *testing.T) {
	t := assert.New(x)
	r := newTestRun(t, &config.Config{Support: .1, Parallelism: 2}, itemset.FromLists(4, [][]int{{0, 1, 2, 3}}))
	defer r.Close()
	for i := 0; i < 4; i++ {
		t.Nil(r.lattice.Add(1, itemset.New(i)))
	}
	t.Nil(r.lattice.Finalize(1))
	for _, s := range []*itemset.Itemset{itemset.New(0, 1), itemset.New(0, 2), itemset.New(1, 2), itemset.New(1, 3)} {
		t.Nil(r.lattice.Add(2, s))
	}
	t.Nil(r.lattice.Finalize(2))
	candidates, err := r.generate(2)
	t.Nil(err)
	t.Len(candidates, 1)
	t.Equal([]int{0, 1, 2}, candidates[0].Items())
	s := r.levelFor(3)
	t.Equal(5, s.Joined)
	t.Equal(2, s.Pruned)
	t.Equal(1, s.Candidates)
}

func TestGenerateEmpty(x *testing.T) {
	t := assert.New(x)
	r := newTestRun(t, &config.Config{Support: .1}, abc())
	defer r.Close()
	candidates, err := r.generate(1)
	t.Nil(err)
	t.Len(candidates, 0)
}

func TestGenerateSorted(x *testing.T) {
	t := assert.New(x)
	r := newTestRun(t, &config.Config{Support: .1, Parallelism: 3}, abc())
	defer r.Close()
	for _, i := range []int{4, 2, 0, 3, 1} {
		t.Nil(r.lattice.Add(1, itemset.New(i)))
	}
	t.Nil(r.lattice.Finalize(1))
	candidates, err := r.generate(1)
	t.Nil(err)
	t.Len(candidates, 10)
	for i := 1; i < len(candidates); i++ {
		t.True(candidates[i-1].Less(candidates[i]))
	}
}

func TestCount(x *testing.T) {
	t := assert.New(x)
	r := newTestRun(t, &config.Config{Support: .1, Parallelism: 4}, abc())
	defer r.Close()
	t.Nil(r.count(nil))
	t.Equal(0, r.table.Size())
	batch := []*itemset.Itemset{itemset.New(0), itemset.New(1), itemset.New(0), itemset.New(2)}
	t.Nil(r.count(batch))
	t.Equal(3, r.table.Size())
	t.Nil(r.count(batch), "evaluated itemsets are skipped")
	t.Equal(3, r.levelFor(1).Counted)
	s, err := r.table.Get(itemset.New(2))
	t.Nil(err)
	t.Equal(1.0/3.0, s)
}

func TestCountEmptyDataset(x *testing.T) {
	t := assert.New(x)
	r := newTestRun(t, &config.Config{Support: .1}, itemset.FromLists(2, nil))
	defer r.Close()
	t.Equal("empty", lattice.Classify(r.count(nil)))
	t.Equal("empty", lattice.Classify(r.count([]*itemset.Itemset{itemset.New(0)})))
}

func TestFilterRejectsBadBatches(x *testing.T) {
	t := assert.New(x)
	r := newTestRun(t, &config.Config{Support: .1}, abc())
	defer r.Close()
	_, err := r.filter(nil)
	t.Equal("internal", lattice.Classify(err))
	batch := []*itemset.Itemset{itemset.New(0), itemset.New(0, 1)}
	t.Nil(r.count(batch))
	_, err = r.filter(batch)
	t.Equal("internal", lattice.Classify(err))
}

func TestFrequencyTables(x *testing.T) {
	t := assert.New(x)
	for _, conf := range []*config.Config{{}, {Cache: x.TempDir()}} {
		table, err := NewFrequencyTable(conf)
		t.Nil(err)
		has, err := table.Has(itemset.New(1, 2))
		t.Nil(err)
		t.False(has)
		_, err = table.Get(itemset.New(1, 2))
		t.NotNil(err)
		t.Nil(table.Put(itemset.New(1, 2), .25))
		t.NotNil(table.Put(itemset.New(2, 1), .5), "entries are write once")
		s, err := table.Get(itemset.New(2, 1))
		t.Nil(err)
		t.Equal(.25, s)
		t.Equal(1, table.Size())
		t.Nil(table.Close())
	}
}

func TestStoreBackedRun(x *testing.T) {
	t := assert.New(x)
	dir := x.TempDir()
	dt := random(10, 60, 5)
	mem, _, _ := mine(t, &config.Config{Support: .1}, dt)
	disk, _, _ := mine(t, &config.Config{Support: .1, Cache: dir}, dt)
	t.Equal(labels(mem), labels(disk))
	files, _ := filepath.Glob(filepath.Join(dir, "*"))
	t.Len(files, 0, "the frequency table is discarded with the run")
}

// bruteForce is every itemset over the universe whose support exceeds
// support.
func bruteForce(dt *itemset.Transactions, support float64) []string {
	frequent := make([]string, 0, 10)
	for mask := 1; mask < 1<<uint(dt.Items()); mask++ {
		items := make([]int, 0, dt.Items())
		for i := 0; i < dt.Items(); i++ {
			if mask&(1<<uint(i)) != 0 {
				items = append(items, i)
			}
		}
		s := itemset.New(items...)
		if float64(dt.Count(s))/float64(dt.Rows()) > support {
			frequent = append(frequent, string(s.Label()))
		}
	}
	sort.Strings(frequent)
	return frequent
}

func TestRandomDatasets(x *testing.T) {
	t := assert.New(x)
	for trial := 0; trial < 10; trial++ {
		dt := random(9, 40, 6)
		support := []float64{.05, .1, .2, .3}[trial%4]
		l, c, _ := mine(t, &config.Config{Support: support, Parallelism: 1 + trial%3}, dt)

		t.Equal(bruteForce(dt, support), labels(l), "every frequent itemset is found")

		for _, r := range c.Reported {
			s := r.Pattern.(*itemset.Itemset)
			t.True(r.Support > support)
			expected, err := Support(dt, s)
			t.Nil(err)
			t.Equal(expected, r.Support)
			for _, sub := range s.Subsets() {
				if sub.Level() > 0 {
					t.True(l.Has(sub), "subset %v of %v is frequent", sub, s)
				}
			}
		}
	}
}

func TestRowOrderInvariance(x *testing.T) {
	t := assert.New(x)
	dt := random(8, 30, 5)
	expected, _, _ := mine(t, &config.Config{Support: .1}, dt)
	perm := rand.Perm(dt.Rows())
	lists := make([][]int, 0, dt.Rows())
	for _, i := range perm {
		lists = append(lists, dt.Row(i).Items())
	}
	shuffled, _, _ := mine(t, &config.Config{Support: .1}, itemset.FromLists(dt.Items(), lists))
	sorted, _, _ := mine(t, &config.Config{Support: .1}, dt.Lexsort())
	t.Equal(labels(expected), labels(shuffled))
	t.Equal(labels(expected), labels(sorted))
}

func TestAllRowOrders(x *testing.T) {
	t := assert.New(x)
	rows := [][]int{{0, 1}, {0}, {1, 2}, {0, 1, 2}}
	expected, _, _ := mine(t, &config.Config{Support: .4}, itemset.FromLists(3, rows))
	orders := 0
	permute(rows, 0, func(lists [][]int) {
		orders++
		l, _, _ := mine(t, &config.Config{Support: .4}, itemset.FromLists(3, lists))
		t.Equal(labels(expected), labels(l))
	})
	t.Equal(24, orders)
}

// permute calls do with every ordering of rows[i:] after the fixed prefix.
func permute(rows [][]int, i int, do func([][]int)) {
	if i == len(rows) {
		do(rows)
		return
	}
	for j := i; j < len(rows); j++ {
		rows[i], rows[j] = rows[j], rows[i]
		permute(rows, i+1, do)
		rows[i], rows[j] = rows[j], rows[i]
	}
}

func TestStateString(x *testing.T) {
	t := assert.New(x)
	t.Equal("seeding", Seeding.String())
	t.Equal("done", Done.String())
	t.Equal("State(9)", State(9).String())
}
