package entity

import (
	"context"
	"github.com/litetable/litetable-mapper/internal/litetable"
	"github.com/rs/zerolog/log"
)

// SuperColumn is a named, ordered group of columns inside one row.
//
// The parent pointer is a lookup used to resolve the keyspace, row key, family and store at
// save time. It does not own the family: AddSuper rebinds it, and nothing here keeps a family
// alive on behalf of its super columns.
type SuperColumn struct {
	container
	columns ordered[*Column]
	parent  *SuperColumnFamily
}

// NewSuperColumn returns an empty, detached super column.
func NewSuperColumn(name string) *SuperColumn {
	return &SuperColumn{
		container: container{name: name},
		columns:   newOrdered[*Column](),
	}
}

// Parent returns the family the super column is attached to, or nil.
func (sc *SuperColumn) Parent() *SuperColumnFamily {
	return sc.parent
}

// AddColumn returns the column named name, creating an empty one if needed.
func (sc *SuperColumn) AddColumn(name string) *Column {
	if c, ok := sc.columns.get(name); ok {
		return c
	}
	c := NewColumn(name)
	sc.columns.set(name, c)
	return c
}

// GetColumn looks up a column by name.
func (sc *SuperColumn) GetColumn(name string) (*Column, bool) {
	return sc.columns.get(name)
}

// SetColumn sets the value of a column, creating it if needed.
func (sc *SuperColumn) SetColumn(name string, value []byte) *Column {
	c := sc.AddColumn(name)
	c.SetValue(value)
	return c
}

// Columns returns the columns in order.
func (sc *SuperColumn) Columns() []*Column {
	return sc.columns.values()
}

// Names returns the column names in order.
func (sc *SuperColumn) Names() []string {
	return sc.columns.names()
}

func (sc *SuperColumn) Len() int {
	return sc.columns.len()
}

// Delete flags the whole super column for removal on the next save.
func (sc *SuperColumn) Delete() {
	sc.deleted = true
	sc.modified = true
}

// IsModified reports whether the super column or any of its columns has unsaved changes.
func (sc *SuperColumn) IsModified() bool {
	if sc.modified {
		return true
	}
	for _, c := range sc.columns.values() {
		if c.modified {
			return true
		}
	}
	return false
}

// Clone returns a detached deep copy. Use it to attach the same content to a second family.
func (sc *SuperColumn) Clone() *SuperColumn {
	cp := NewSuperColumn(sc.name)
	cp.autoCreate = sc.autoCreate
	cp.modified = sc.modified
	cp.deleted = sc.deleted
	for _, c := range sc.columns.values() {
		cp.columns.set(c.name, c.clone())
	}
	return cp
}

func (sc *SuperColumn) autoCreateFor(override Policy) bool {
	return override.resolve(func() bool {
		return sc.autoCreate.resolve(func() bool {
			if sc.parent != nil {
				return sc.parent.autoCreateFor(PolicyInherit)
			}
			return defaultAutoCreate
		})
	})
}

// Populate sets column values from data. Scalar and Loaded entries become columns when
// auto-create is enabled or the column already exists; anything else is malformed. It returns
// true when the super column has no recorded errors afterwards.
func (sc *SuperColumn) Populate(data Node, policy Policy) bool {
	entries, err := resolvePayload(data)
	if err != nil {
		sc.registerError(err)
		return false
	}

	autoCreate := sc.autoCreateFor(policy)
	for _, e := range entries {
		if !autoCreate && !sc.columns.has(e.Name) {
			continue
		}

		switch v := e.Value.(type) {
		case Scalar:
			sc.AddColumn(e.Name).SetValue([]byte(v))
		case Loaded:
			c := sc.AddColumn(e.Name)
			c.value = v.Value
			c.timestamp = v.Timestamp
			c.deleted = false
		default:
			sc.registerError(newError(ErrMalformedPayload, "column %q: expected a value, got %T",
				e.Name, e.Value))
			return false
		}
	}

	return len(sc.errs) == 0
}

// Save writes the super column's pending changes. It returns false without a store call when
// nothing changed, and records the store's error on failure.
func (sc *SuperColumn) Save(ctx context.Context, opts ...Option) bool {
	if !sc.IsModified() {
		return false
	}
	if sc.parent == nil || sc.parent.store == nil {
		sc.registerError(newError(ErrPathUnresolved, "super column %q is detached", sc.name))
		return false
	}

	o := collect(opts)
	if err := sc.save(ctx, sc.parent.store.ResolveConsistency(o.consistency)); err != nil {
		sc.registerError(err)
		return false
	}
	return true
}

// save flushes the super column at an already resolved level. Unmodified super columns are a
// successful no-op so a family cascade can pass over them.
func (sc *SuperColumn) save(ctx context.Context, level litetable.Consistency) error {
	if !sc.IsModified() {
		return nil
	}

	f := sc.parent
	if f == nil {
		return newError(ErrPathUnresolved, "super column %q is detached", sc.name)
	}
	if err := f.checkPath(f.keyID); err != nil {
		return err
	}

	path := litetable.ColumnPath{Family: f.name, Super: sc.name}

	if sc.deleted {
		if err := f.store.DeleteColumnPath(ctx, f.keyspace, f.keyID, path, 0, level); err != nil {
			return err
		}
		sc.columns = newOrdered[*Column]()
		sc.deleted = false
		sc.modified = false
		return nil
	}

	var (
		cells   []litetable.Cell
		removed []string
	)
	for _, c := range sc.columns.values() {
		switch {
		case c.deleted:
			colPath := path
			colPath.Column = c.name
			if err := f.store.DeleteColumnPath(ctx, f.keyspace, f.keyID, colPath, c.timestamp,
				level); err != nil {
				return err
			}
			removed = append(removed, c.name)
		case c.modified:
			cells = append(cells, c.cell())
		}
	}
	for _, name := range removed {
		sc.columns.remove(name)
	}

	if len(cells) > 0 {
		if err := f.store.Insert(ctx, f.keyspace, f.keyID, path, cells, level); err != nil {
			return err
		}
	}

	log.Debug().
		Str("family", f.name).
		Str("super", sc.name).
		Int("written", len(cells)).
		Int("deleted", len(removed)).
		Msg("super column saved")

	sc.markClean()
	return nil
}

func (sc *SuperColumn) markClean() {
	sc.modified = false
	for _, c := range sc.columns.values() {
		c.modified = false
	}
}
