package apriori

import (
	"fmt"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/apriori/config"
	"github.com/timtadh/apriori/lattice"
	"github.com/timtadh/apriori/miners"
	"github.com/timtadh/apriori/types/itemset"
)

type State int

const (
	Seeding State = iota
	Counting
	Filtering
	Generating
	Done
)

func (s State) String() string {
	switch s {
	case Seeding:
		return "seeding"
	case Counting:
		return "counting"
	case Filtering:
		return "filtering"
	case Generating:
		return "generating"
	case Done:
		return "done"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// LevelStats counts the work done for the itemsets of one level.
type LevelStats struct {
	Level      int
	Joined     int
	Pruned     int
	Candidates int
	Counted    int
	Frequent   int
}

func (s *LevelStats) String() string {
	return fmt.Sprintf("level %d: joined %d pruned %d candidates %d counted %d frequent %d",
		s.Level, s.Joined, s.Pruned, s.Candidates, s.Counted, s.Frequent)
}

// Miner is the level-wise frequent itemset miner. Each call to Mine owns a
// fresh frequency table and lattice.
type Miner struct {
	Config *config.Config
	rptr   miners.Reporter
	stats  []*LevelStats
}

func NewMiner(conf *config.Config) *Miner {
	return &Miner{
		Config: conf,
	}
}

// Stats of the most recent run, one entry per level reached.
func (m *Miner) Stats() []*LevelStats {
	return m.stats
}

func (m *Miner) Close() error {
	if m.rptr == nil {
		return nil
	}
	return m.rptr.Close()
}

func (m *Miner) Mine(dt *itemset.Transactions, rptr miners.Reporter) (*lattice.Lattice, error) {
	m.rptr = rptr
	m.stats = nil
	if err := m.Config.Validate(); err != nil {
		return nil, err
	}
	r, err := newRun(m.Config, dt, rptr)
	if err != nil {
		return nil, err
	}
	defer func() {
		m.stats = r.stats
		if err := r.Close(); err != nil {
			errors.Logf("ERROR", "could not release the frequency table: %v", err)
		}
	}()
	if err := r.mine(); err != nil {
		return nil, err
	}
	return r.lattice, nil
}

type run struct {
	conf    *config.Config
	dt      *itemset.Transactions
	rptr    miners.Reporter
	table   FrequencyTable
	lattice *lattice.Lattice
	workers *workers
	stats   []*LevelStats
}

func newRun(conf *config.Config, dt *itemset.Transactions, rptr miners.Reporter) (*run, error) {
	table, err := NewFrequencyTable(conf)
	if err != nil {
		return nil, err
	}
	return &run{
		conf:    conf,
		dt:      dt,
		rptr:    rptr,
		table:   table,
		lattice: lattice.New(),
		workers: newWorkers(conf.Workers()),
	}, nil
}

func (r *run) Close() error {
	r.workers.Stop()
	return r.table.Close()
}

func (r *run) mine() error {
	if r.dt.Rows() == 0 {
		return &lattice.EmptyDatasetError{Items: r.dt.Items()}
	}
	errors.Logf("INFO", "mining %d items over %d transactions, support > %v", r.dt.Items(), r.dt.Rows(), r.conf.Support)
	state := Seeding
	k := 1
	var candidates []*itemset.Itemset
	var frequent []*itemset.Itemset
	var err error
	for state != Done {
		errors.Logf("DEBUG", "%v level %d", state, k)
		switch state {
		case Seeding:
			candidates = r.seed()
			state = Counting
		case Counting:
			if len(candidates) == 0 {
				state = Done
				continue
			}
			if err = r.count(candidates); err != nil {
				return err
			}
			state = Filtering
		case Filtering:
			if frequent, err = r.filter(candidates); err != nil {
				return err
			}
			errors.Logf("INFO", "%v", r.levelFor(k))
			if len(frequent) == 0 {
				state = Done
			} else if !r.conf.Unbounded() && k >= r.conf.MaxLevel {
				errors.Logf("INFO", "reached max level %d", r.conf.MaxLevel)
				state = Done
			} else {
				state = Generating
			}
		case Generating:
			if candidates, err = r.generate(k); err != nil {
				return err
			}
			k++
			if len(candidates) == 0 {
				state = Done
			} else {
				state = Counting
			}
		}
	}
	errors.Logf("INFO", "finished with %d frequent itemsets in %d levels", r.lattice.Size(), r.lattice.Levels())
	return nil
}

// seed is every singleton itemset of the universe.
func (r *run) seed() []*itemset.Itemset {
	candidates := make([]*itemset.Itemset, 0, r.dt.Items())
	for i := 0; i < r.dt.Items(); i++ {
		candidates = append(candidates, itemset.New(i))
	}
	stats := r.levelFor(1)
	stats.Candidates = len(candidates)
	return candidates
}

func (r *run) frequent(k int) []*itemset.Itemset {
	level := r.lattice.Level(k)
	sets := make([]*itemset.Itemset, 0, len(level))
	for _, p := range level {
		sets = append(sets, p.(*itemset.Itemset))
	}
	return sets
}

func (r *run) levelFor(k int) *LevelStats {
	for len(r.stats) < k {
		r.stats = append(r.stats, &LevelStats{Level: len(r.stats) + 1})
	}
	return r.stats[k-1]
}
