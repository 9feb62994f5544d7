package reporters

import ()

import (
	"github.com/timtadh/apriori/lattice"
	"github.com/timtadh/apriori/miners"
)

// Skip forwards every n-th pattern.
type Skip struct {
	Skip     int
	Reporter miners.Reporter
	count    int
}

func NewSkip(n int, rptr miners.Reporter) *Skip {
	if n < 1 {
		n = 1
	}
	return &Skip{
		Skip:     n,
		Reporter: rptr,
	}
}

func (r *Skip) Report(level int, p lattice.Pattern, support float64) error {
	r.count++
	if r.count%r.Skip == 0 {
		return r.Reporter.Report(level, p, support)
	}
	return nil
}

func (r *Skip) Close() error {
	return r.Reporter.Close()
}
