package config

import (
	"os"
)

import (
	"github.com/timtadh/data-structures/errors"
	"gopkg.in/yaml.v3"
)

// File is the on-disk form of a Config. Pointer fields distinguish settings
// which are absent from the file from zero values.
//
//	support: 0.05
//	max-level: 4
//	parallelism: -1
//	loader: names
//	sort: true
//	cache: /tmp/apriori-cache
type File struct {
	Support     *float64 `yaml:"support"`
	MaxLevel    *int     `yaml:"max-level"`
	Parallelism *int     `yaml:"parallelism"`
	Loader      *string  `yaml:"loader"`
	Sort        *bool    `yaml:"sort"`
	Cache       *string  `yaml:"cache"`
	Output      *string  `yaml:"output"`
}

func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseFile(data)
}

func ParseFile(data []byte) (*File, error) {
	f := &File{}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, errors.Errorf("could not parse config file: %v", err)
	}
	return f, nil
}

// Apply copies every setting present in the file onto c.
func (f *File) Apply(c *Config) {
	if f.Support != nil {
		c.Support = *f.Support
	}
	if f.MaxLevel != nil {
		c.MaxLevel = *f.MaxLevel
	}
	if f.Parallelism != nil {
		c.Parallelism = *f.Parallelism
	}
	if f.Loader != nil {
		c.Loader = *f.Loader
	}
	if f.Sort != nil {
		c.Sort = *f.Sort
	}
	if f.Cache != nil {
		c.Cache = *f.Cache
	}
	if f.Output != nil {
		c.Output = *f.Output
	}
}
