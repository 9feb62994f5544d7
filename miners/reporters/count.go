package reporters

import (
	"fmt"
	"os"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/apriori/config"
	"github.com/timtadh/apriori/lattice"
	"github.com/timtadh/apriori/stats"
)

// Count tallies the reported patterns per level. On Close it logs and
// writes one "level<TAB>summary" line per level to the named output file.
type Count struct {
	config   *config.Config
	filename string
	supports [][]float64
}

func NewCount(c *config.Config, filename string) *Count {
	return &Count{config: c, filename: filename}
}

func (r *Count) Report(level int, p lattice.Pattern, support float64) error {
	for len(r.supports) < level {
		r.supports = append(r.supports, nil)
	}
	r.supports[level-1] = append(r.supports[level-1], support)
	return nil
}

func (r *Count) Summaries() []stats.Summary {
	summaries := make([]stats.Summary, 0, len(r.supports))
	for _, s := range r.supports {
		summaries = append(summaries, stats.Summarize(s))
	}
	return summaries
}

func (r *Count) Close() error {
	summaries := r.Summaries()
	for i, s := range summaries {
		errors.Logf("INFO", "level %d %v", i+1, s)
	}
	if r.filename == "" {
		return nil
	}
	f, err := os.Create(r.config.OutputFile(r.filename))
	if err != nil {
		return err
	}
	defer f.Close()
	for i, s := range summaries {
		if _, err := fmt.Fprintf(f, "%d\t%v\n", i+1, s); err != nil {
			return err
		}
	}
	return nil
}
