package storage

import (
	"errors"
	"fmt"
	"github.com/cockroachdb/pebble"
)

type pebbleEngine struct {
	db *pebble.DB
}

// NewPebble opens (or creates) a Pebble database in dir.
func NewPebble(dir string) (*Manager, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble: %w", err)
	}
	return newManager(&pebbleEngine{db: db}, "Pebble Storage"), nil
}

func (e *pebbleEngine) get(key []byte) ([]byte, error) {
	v, closer, err := e.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	return append([]byte(nil), v...), nil
}

func (e *pebbleEngine) write(muts []mutation) error {
	b := e.db.NewBatch()
	defer b.Close()

	for _, m := range muts {
		var err error
		if m.delete {
			err = b.Delete(m.key, nil)
		} else {
			err = b.Set(m.key, m.value, nil)
		}
		if err != nil {
			return err
		}
	}
	return b.Commit(pebble.Sync)
}

func (e *pebbleEngine) scan(prefix []byte, fn func(key, value []byte) error) error {
	iter, err := e.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixEnd(prefix),
	})
	if err != nil {
		return err
	}

	for iter.First(); iter.Valid(); iter.Next() {
		v, err := iter.ValueAndErr()
		if err != nil {
			_ = iter.Close()
			return err
		}
		if err := fn(iter.Key(), v); err != nil {
			_ = iter.Close()
			return err
		}
	}
	return iter.Close()
}

func (e *pebbleEngine) close() error {
	return e.db.Close()
}
