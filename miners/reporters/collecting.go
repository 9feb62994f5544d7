package reporters

import ()

import ()

import (
	"github.com/timtadh/apriori/lattice"
)

type Reported struct {
	Level   int
	Pattern lattice.Pattern
	Support float64
}

type Collector struct {
	Reported []Reported
	Closed   bool
}

func (c *Collector) Report(level int, p lattice.Pattern, support float64) error {
	c.Reported = append(c.Reported, Reported{Level: level, Pattern: p, Support: support})
	return nil
}

func (c *Collector) Close() error {
	c.Closed = true
	return nil
}

func (c *Collector) Patterns() []lattice.Pattern {
	patterns := make([]lattice.Pattern, 0, len(c.Reported))
	for _, r := range c.Reported {
		patterns = append(patterns, r.Pattern)
	}
	return patterns
}
