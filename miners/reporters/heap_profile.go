package reporters

import (
	"fmt"
	"os"
	"runtime/pprof"
)

import (
	"github.com/timtadh/apriori/lattice"
)

// HeapProfile writes a heap profile to <prefix>-<k>.heap when the first
// pattern of level k is reported, starting at level after.
type HeapProfile struct {
	prefix string
	after  int
	last   int
}

func NewHeapProfile(prefix string, after int) *HeapProfile {
	return &HeapProfile{prefix: prefix, after: after}
}

func (hp *HeapProfile) Report(level int, p lattice.Pattern, support float64) error {
	if level == hp.last || level < hp.after {
		return nil
	}
	hp.last = level
	f, err := os.Create(fmt.Sprintf("%s-%d.heap", hp.prefix, level))
	if err != nil {
		return err
	}
	defer f.Close()
	return pprof.WriteHeapProfile(f)
}

func (hp *HeapProfile) Close() error {
	return nil
}
