package lattice

import (
	"io"
)

import (
	"github.com/timtadh/data-structures/types"
)

// Input opens a fresh reader over the raw transactions every time it is
// called. Loaders which need more than one pass over the data call it
// once per pass.
type Input func() (reader io.Reader, closer func(), err error)

type Pattern interface {
	types.Hashable
	Label() []byte
	Level() int
}

// Parenter is implemented by patterns which can enumerate their immediate
// sub-patterns (one item removed).
type Parenter interface {
	Pattern
	Parents() []Pattern
}

type Formatter interface {
	FileExt() string
	PatternName(Pattern) string
	FormatPattern(w io.Writer, level int, p Pattern, support float64) error
	FormatEmbeddings(w io.Writer, p Pattern) error
}

type Edge struct {
	Src, Targ int
}

type Labeled interface {
	Label() []byte
}
