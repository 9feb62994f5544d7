package apriori

import (
	"sync"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/data-structures/hashtable"
)

import (
	"github.com/timtadh/apriori/config"
	"github.com/timtadh/apriori/stores/bytes_float"
	"github.com/timtadh/apriori/types/itemset"
)

// FrequencyTable records the support of every itemset evaluated during a
// run. Entries are write once: recording a second support for the same
// itemset is an error.
type FrequencyTable interface {
	Has(s *itemset.Itemset) (bool, error)
	Get(s *itemset.Itemset) (float64, error)
	Put(s *itemset.Itemset, support float64) error
	Size() int
	Close() error
}

// NewFrequencyTable keeps the table in memory unless the config names a
// cache directory, in which case it lives in a B+tree file there.
func NewFrequencyTable(conf *config.Config) (FrequencyTable, error) {
	if conf.Cache == "" {
		return newMemTable(), nil
	}
	return newStoreTable(conf)
}

type memTable struct {
	mutex    sync.Mutex
	supports *hashtable.LinearHash
}

func newMemTable() *memTable {
	return &memTable{
		supports: hashtable.NewLinearHash(),
	}
}

func (t *memTable) Has(s *itemset.Itemset) (bool, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.supports.Has(s), nil
}

func (t *memTable) Get(s *itemset.Itemset) (float64, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if !t.supports.Has(s) {
		return 0, errors.Errorf("no support recorded for %v", s)
	}
	v, err := t.supports.Get(s)
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}

func (t *memTable) Put(s *itemset.Itemset, support float64) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.supports.Has(s) {
		return errors.Errorf("support of %v was already recorded", s)
	}
	return t.supports.Put(s, support)
}

func (t *memTable) Size() int {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.supports.Size()
}

func (t *memTable) Close() error {
	return nil
}

type storeTable struct {
	store bytes_float.MultiMap
}

func newStoreTable(conf *config.Config) (*storeTable, error) {
	store, err := conf.BytesFloatMultiMap("supports")
	if err != nil {
		return nil, err
	}
	return &storeTable{store: store}, nil
}

func (t *storeTable) Has(s *itemset.Itemset) (bool, error) {
	return t.store.Has(s.Label())
}

func (t *storeTable) Get(s *itemset.Itemset) (support float64, err error) {
	found := false
	err = t.store.DoFind(s.Label(), func(_ []byte, v float64) error {
		support = v
		found = true
		return nil
	})
	if err != nil {
		return 0, err
	} else if !found {
		return 0, errors.Errorf("no support recorded for %v", s)
	}
	return support, nil
}

func (t *storeTable) Put(s *itemset.Itemset, support float64) error {
	if has, err := t.store.Has(s.Label()); err != nil {
		return err
	} else if has {
		return errors.Errorf("support of %v was already recorded", s)
	}
	return t.store.Add(s.Label(), support)
}

func (t *storeTable) Size() int {
	return t.store.Size()
}

// Close removes the backing file, the table does not outlive its run.
func (t *storeTable) Close() error {
	return t.store.Delete()
}
