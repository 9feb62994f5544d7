package config

import (
	"math/rand"
	"path/filepath"
	"runtime"
)

import (
	"github.com/timtadh/apriori/lattice"
	"github.com/timtadh/apriori/stores/bytes_float"
)

type Config struct {
	Cache       string
	Output      string
	Support     float64
	MaxLevel    int
	Parallelism int
	Loader      string
	Sort        bool
}

func (c *Config) Copy() *Config {
	return &Config{
		Cache:       c.Cache,
		Output:      c.Output,
		Support:     c.Support,
		MaxLevel:    c.MaxLevel,
		Parallelism: c.Parallelism,
		Loader:      c.Loader,
		Sort:        c.Sort,
	}
}

// Validate checks the run parameters. Support is the fraction of
// transactions an itemset must strictly exceed to be frequent.
func (c *Config) Validate() error {
	if !(c.Support > 0 && c.Support <= 1) {
		return &lattice.ConfigurationError{Field: "support", Value: c.Support, Expected: "a value in (0, 1]"}
	}
	if c.MaxLevel < 0 {
		return &lattice.ConfigurationError{Field: "max-level", Value: c.MaxLevel, Expected: "0 (unbounded) or a positive level"}
	}
	if c.Parallelism < -1 {
		return &lattice.ConfigurationError{Field: "parallelism", Value: c.Parallelism, Expected: "-1 (all cpus), 0 or a positive worker count"}
	}
	switch c.Loader {
	case "", "names", "int":
	default:
		return &lattice.ConfigurationError{Field: "loader", Value: c.Loader, Expected: "names or int"}
	}
	return nil
}

func (c *Config) Workers() int {
	if c.Parallelism == 0 {
		return 1
	} else if c.Parallelism == -1 {
		return runtime.NumCPU()
	} else {
		return c.Parallelism
	}
}

// Unbounded reports whether the level-wise search runs until exhaustion.
func (c *Config) Unbounded() bool {
	return c.MaxLevel == 0
}

func (c *Config) Randstr() string {
	runes := make([]rune, 0, 10)
	for i := 0; i < 10; i++ {
		runes = append(runes, rune(97+rand.Intn(26)))
	}
	return string(runes)
}

func (c *Config) CacheFile(name string) string {
	return filepath.Join(c.Cache, name)
}

func (c *Config) OutputFile(name string) string {
	return filepath.Join(c.Output, name)
}

func (c *Config) BytesFloatMultiMap(name string) (bytes_float.MultiMap, error) {
	if c.Cache == "" {
		return bytes_float.AnonBpTree()
	} else {
		return bytes_float.NewBpTree(c.CacheFile(name + "-" + c.Randstr() + ".bptree"))
	}
}
