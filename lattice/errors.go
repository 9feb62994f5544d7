package lattice

import (
	"errors"
	"fmt"
)

// ConfigurationError reports a run parameter outside of its legal range.
type ConfigurationError struct {
	Field    string
	Value    interface{}
	Expected string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("bad configuration: %v = %v, expected %v", e.Field, e.Value, e.Expected)
}

// MissingInputError reports an input source which is absent or unreadable.
type MissingInputError struct {
	Source string
	Err    error
}

func (e *MissingInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("missing input %q: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("missing input %q", e.Source)
}

func (e *MissingInputError) Unwrap() error {
	return e.Err
}

// MappingRequiredError reports a transaction load attempted without an item
// universe to map the tokens through.
type MappingRequiredError struct {
	Source string
}

func (e *MappingRequiredError) Error() string {
	return fmt.Sprintf("loading %q requires an item mapping but none was given", e.Source)
}

// EmptyDatasetError reports a transaction store with zero rows. Support is
// undefined over it.
type EmptyDatasetError struct {
	Items int
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("the transaction store has 0 rows (%d items), support is undefined", e.Items)
}

// InconsistentSizeError reports a candidate batch which is empty or mixes
// itemsets of different sizes.
type InconsistentSizeError struct {
	Count int
	Sizes []int
}

func (e *InconsistentSizeError) Error() string {
	if e.Count == 0 {
		return "candidate batch is empty, the level cannot be determined"
	}
	return fmt.Sprintf("candidate batch of %d itemsets has mixed sizes %v, expected one size", e.Count, e.Sizes)
}

// Classify names the failure kind of err. The names key cmd.ErrorCodes.
func Classify(err error) string {
	var confErr *ConfigurationError
	var inputErr *MissingInputError
	var mappingErr *MappingRequiredError
	var emptyErr *EmptyDatasetError
	var sizeErr *InconsistentSizeError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &confErr):
		return "config"
	case errors.As(err, &inputErr), errors.As(err, &mappingErr):
		return "input"
	case errors.As(err, &emptyErr):
		return "empty"
	case errors.As(err, &sizeErr):
		return "internal"
	default:
		return "unknown"
	}
}
