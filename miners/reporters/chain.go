package reporters

import ()

import (
	"github.com/timtadh/apriori/lattice"
	"github.com/timtadh/apriori/miners"
)

type Chain struct {
	Reporters []miners.Reporter
}

func (r *Chain) Report(level int, p lattice.Pattern, support float64) error {
	for _, rpt := range r.Reporters {
		err := rpt.Report(level, p, support)
		if err != nil {
			return err
		}
	}
	return nil
}

// Close closes every reporter in the chain and returns the first error.
func (r *Chain) Close() error {
	var first error
	for _, rpt := range r.Reporters {
		err := rpt.Close()
		if err != nil && first == nil {
			first = err
		}
	}
	return first
}
