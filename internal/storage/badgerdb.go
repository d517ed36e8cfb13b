package storage

import (
	"context"
	"errors"
	"fmt"
	badger "github.com/dgraph-io/badger/v3"
	"github.com/rs/zerolog/log"
	"time"
)

const badgerGCInterval = 30 * time.Second

type badgerEngine struct {
	db     *badger.DB
	cancel context.CancelFunc
	done   chan struct{}
}

// NewBadger opens (or creates) a Badger database in dir. An empty dir keeps everything in
// memory.
func NewBadger(dir string) (*Manager, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	e := &badgerEngine{db: db, cancel: cancel, done: make(chan struct{})}
	if dir == "" {
		close(e.done)
	} else {
		go e.runGC(ctx)
	}

	return newManager(e, "Badger Storage"), nil
}

// runGC reclaims value log space until ctx is cancelled.
func (e *badgerEngine) runGC(ctx context.Context) {
	defer close(e.done)

	ticker := time.NewTicker(badgerGCInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for {
				if err := e.db.RunValueLogGC(0.7); err != nil {
					if !errors.Is(err, badger.ErrNoRewrite) {
						log.Debug().Err(err).Msg("badger value log GC")
					}
					break
				}
			}
		}
	}
}

func (e *badgerEngine) get(key []byte) ([]byte, error) {
	var out []byte
	err := e.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	return out, err
}

func (e *badgerEngine) write(muts []mutation) error {
	return e.db.Update(func(txn *badger.Txn) error {
		for _, m := range muts {
			var err error
			if m.delete {
				err = txn.Delete(m.key)
			} else {
				err = txn.Set(m.key, m.value)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (e *badgerEngine) scan(prefix []byte, fn func(key, value []byte) error) error {
	return e.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			v, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := fn(item.KeyCopy(nil), v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (e *badgerEngine) close() error {
	e.cancel()
	<-e.done
	return e.db.Close()
}
