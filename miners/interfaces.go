package miners

import ()

import (
	"github.com/timtadh/apriori/lattice"
	"github.com/timtadh/apriori/types/itemset"
)

// Note: the miner's Close function should close the reporter that was
// passed into Mine.
type Miner interface {
	Mine(*itemset.Transactions, Reporter) (*lattice.Lattice, error)
	Close() error
}

// Reporter receives every frequent pattern as it is accepted. Patterns of
// level k are always reported before those of level k+1.
type Reporter interface {
	Report(level int, p lattice.Pattern, support float64) error
	Close() error
}
