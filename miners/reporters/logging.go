package reporters

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/apriori/lattice"
)

// Log writes one line per pattern, "k: {items}, support", at the given log
// level.
type Log struct {
	fmtr   lattice.Formatter
	level  string
	prefix string
	count  int
}

func NewLog(fmtr lattice.Formatter, level, prefix string) *Log {
	if level == "" {
		level = "INFO"
	}
	return &Log{fmtr: fmtr, level: level, prefix: prefix}
}

func (lr *Log) Report(level int, p lattice.Pattern, support float64) error {
	lr.count++
	name := lr.fmtr.PatternName(p)
	if lr.prefix != "" {
		errors.Logf(lr.level, "%s %v %d: %s, %.6g", lr.prefix, lr.count, level, name, support)
	} else {
		errors.Logf(lr.level, "%v %d: %s, %.6g", lr.count, level, name, support)
	}
	return nil
}

func (lr *Log) Close() error {
	return nil
}
