package itemset

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

import (
	"github.com/timtadh/apriori/lattice"
)

type Formatter struct {
	Universe     *Universe
	Transactions *Transactions
}

func (f *Formatter) FileExt() string {
	return ".items"
}

func (f *Formatter) names(s *Itemset) []string {
	if f.Universe != nil {
		return f.Universe.Names(s)
	}
	items := s.Items()
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, strconv.Itoa(item))
	}
	return names
}

func (f *Formatter) PatternName(p lattice.Pattern) string {
	return "{" + strings.Join(f.names(p.(*Itemset)), " ") + "}"
}

func (f *Formatter) FormatPattern(w io.Writer, level int, p lattice.Pattern, support float64) error {
	_, err := fmt.Fprintf(w, "%d\t%s\t%.6g\n", level, f.PatternName(p), support)
	return err
}

// FormatEmbeddings writes the ids of the transactions containing p.
func (f *Formatter) FormatEmbeddings(w io.Writer, p lattice.Pattern) error {
	if f.Transactions == nil {
		_, err := fmt.Fprintf(w, "%s\n", f.PatternName(p))
		return err
	}
	rows := f.Transactions.Supporting(p.(*Itemset))
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, strconv.Itoa(row))
	}
	_, err := fmt.Fprintf(w, "%s\t%s\n", f.PatternName(p), strings.Join(ids, " "))
	return err
}
