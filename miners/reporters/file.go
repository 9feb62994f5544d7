package reporters

import (
	"fmt"
	"io"
	"os"
)

import (
	"github.com/timtadh/apriori/config"
	"github.com/timtadh/apriori/lattice"
)

// File writes the patterns and their supporting rows into the output
// directory. When a lattice file name is given the cover relation of the
// reported patterns is written there on Close.
type File struct {
	config     *config.Config
	fmt        lattice.Formatter
	patterns   io.WriteCloser
	embeddings io.WriteCloser
	latName    string
	lat        *lattice.Lattice
}

func NewFile(c *config.Config, fmt lattice.Formatter, patternsFilename, embeddingsFilename, latticeFilename string) (*File, error) {
	patterns, err := os.Create(c.OutputFile(patternsFilename + fmt.FileExt()))
	if err != nil {
		return nil, err
	}
	embeddings, err := os.Create(c.OutputFile(embeddingsFilename + fmt.FileExt()))
	if err != nil {
		patterns.Close()
		return nil, err
	}
	r := &File{
		config:     c,
		fmt:        fmt,
		patterns:   patterns,
		embeddings: embeddings,
		latName:    latticeFilename,
	}
	if latticeFilename != "" {
		r.lat = lattice.New()
	}
	return r, nil
}

func (r *File) Report(level int, p lattice.Pattern, support float64) error {
	err := r.fmt.FormatPattern(r.patterns, level, p, support)
	if err != nil {
		return err
	}
	err = r.fmt.FormatEmbeddings(r.embeddings, p)
	if err != nil {
		return err
	}
	if r.lat != nil {
		for r.lat.Finalized() < level-1 {
			if err := r.lat.Finalize(r.lat.Finalized() + 1); err != nil {
				return err
			}
		}
		return r.lat.Add(level, p)
	}
	return nil
}

func (r *File) Close() error {
	err := r.patterns.Close()
	if err != nil {
		return err
	}
	err = r.embeddings.Close()
	if err != nil {
		return err
	}
	if r.lat != nil {
		return r.writeLattice()
	}
	return nil
}

func (r *File) writeLattice() error {
	f, err := os.Create(r.config.OutputFile(r.latName))
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteLattice(f, r.fmt, r.lat)
}

// WriteLattice lists the patterns as "vertex <id> <name>" lines followed by
// "edge <parent> <child>" lines.
func WriteLattice(w io.Writer, fmtr lattice.Formatter, l *lattice.Lattice) error {
	V, E := l.Edges()
	for i, p := range V {
		if _, err := fmt.Fprintf(w, "vertex %d %s\n", i, fmtr.PatternName(p)); err != nil {
			return err
		}
	}
	for _, e := range E {
		if _, err := fmt.Fprintf(w, "edge %d %d\n", e.Src, e.Targ); err != nil {
			return err
		}
	}
	return nil
}
