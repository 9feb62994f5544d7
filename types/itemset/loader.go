package itemset

import (
	"bufio"
	"strconv"
	"strings"
)

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/apriori/lattice"
)

type Loader interface {
	Load(input lattice.Input) (*Transactions, *Universe, error)
}

// NameLoader reads one transaction per line. Items are arbitrary whitespace
// separated tokens, indexed in lexicographic order:
//
//	bread milk
//	bread
//	milk eggs
type NameLoader struct {
	Source string
}

func NewNameLoader(source string) *NameLoader {
	return &NameLoader{Source: source}
}

func (l *NameLoader) Load(input lattice.Input) (*Transactions, *Universe, error) {
	return load(l.Source, input, Lexicographic, acceptAll, acceptAll)
}

// IntLoader reads one transaction per line of space separated integers.
// Items are indexed in numeric order and named by their decimal value, so
// "01" and "1" are the same item. Tokens which are not integers are logged
// and skipped.
type IntLoader struct {
	Source string
}

func NewIntLoader(source string) *IntLoader {
	return &IntLoader{Source: source}
}

func (l *IntLoader) Load(input lattice.Input) (*Transactions, *Universe, error) {
	return load(l.Source, input, Numeric, intToken(true), intToken(false))
}

// Token maps a raw input token of line tx to the item name it stands for.
// A false return drops the token.
type Token func(tx int, tok string) (string, bool)

func intToken(warn bool) Token {
	return func(tx int, tok string) (string, bool) {
		i, err := strconv.Atoi(tok)
		if err != nil {
			if warn {
				errors.Logf("WARN", "input line %d contained non int '%s'", tx, tok)
			}
			return "", false
		}
		return strconv.Itoa(i), true
	}
}

func acceptAll(_ int, tok string) (string, bool) {
	return tok, true
}

// load makes the two passes over input. Only the first pass's token
// mapping should log rejected tokens.
func load(source string, input lattice.Input, order Order, first, second Token) (*Transactions, *Universe, error) {
	u, err := BuildUniverse(source, input, order, first)
	if err != nil {
		return nil, nil, err
	}
	t, err := LoadTransactions(source, input, u, second)
	if err != nil {
		return nil, nil, err
	}
	errors.Logf("INFO", "%d item names and %d transactions", t.Items(), t.Rows())
	return t, u, nil
}

// BuildUniverse makes a pass over the input collecting every item token.
func BuildUniverse(source string, input lattice.Input, order Order, accept Token) (*Universe, error) {
	if accept == nil {
		accept = acceptAll
	}
	tokens := make([]string, 0, 10)
	err := scan(source, input, func(tx int, line []string) error {
		for _, tok := range line {
			if name, ok := accept(tx, tok); ok {
				tokens = append(tokens, name)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewUniverse(tokens, order), nil
}

// LoadTransactions makes a pass over the input building one row per line.
// Lines without items become empty rows.
func LoadTransactions(source string, input lattice.Input, u *Universe, accept Token) (*Transactions, error) {
	if u == nil {
		return nil, &lattice.MappingRequiredError{Source: source}
	}
	if accept == nil {
		accept = acceptAll
	}
	rows := make([]*bitset.BitSet, 0, 10)
	err := scan(source, input, func(tx int, line []string) error {
		row := bitset.New(uint(u.Len()))
		for _, tok := range line {
			name, ok := accept(tx, tok)
			if !ok {
				continue
			}
			item, has := u.Index(name)
			if !has {
				return errors.Errorf("input line %d has item '%s' which is not in the universe", tx, tok)
			}
			row.Set(uint(item))
		}
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewTransactions(u.Len(), rows), nil
}

func scan(source string, input lattice.Input, do func(tx int, line []string) error) error {
	if input == nil {
		return &lattice.MissingInputError{Source: source}
	}
	reader, closer, err := input()
	if err != nil {
		return &lattice.MissingInputError{Source: source, Err: err}
	}
	defer closer()
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	tx := 0
	for scanner.Scan() {
		if err := do(tx, strings.Fields(scanner.Text())); err != nil {
			return err
		}
		tx++
	}
	if err := scanner.Err(); err != nil {
		return &lattice.MissingInputError{Source: source, Err: err}
	}
	return nil
}
