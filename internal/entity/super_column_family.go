package entity

import (
	"context"
	"fmt"
	"github.com/litetable/litetable-mapper/internal/litetable"
	"github.com/rs/zerolog/log"
)

// SuperColumnFamily is one row of a super column family: an ordered set of SuperColumns keyed
// by name.
//
// Example:
//
//	user := entity.NewSuperColumnFamily(store, "app", "Users")
//	user.SetKeyID("alice")
//	user.Populate(entity.JSON(`{"profile":{"name":"alice","age":"30"}}`), entity.PolicyOn)
//	ok := user.Save(ctx)
type SuperColumnFamily struct {
	container
	store    Store
	keyspace string
	keyID    string
	loaded   bool
	supers   ordered[*SuperColumn]
}

// NewSuperColumnFamily returns an empty row container for family name in keyspace.
func NewSuperColumnFamily(store Store, keyspace, name string) *SuperColumnFamily {
	return &SuperColumnFamily{
		container: container{name: name},
		store:     store,
		keyspace:  keyspace,
		supers:    newOrdered[*SuperColumn](),
	}
}

func (f *SuperColumnFamily) Keyspace() string {
	return f.keyspace
}

func (f *SuperColumnFamily) KeyID() string {
	return f.keyID
}

// SetKeyID sets the row key used by Save and, when no key is passed, by Load.
func (f *SuperColumnFamily) SetKeyID(keyID string) {
	f.keyID = keyID
}

// IsLoaded reports whether the last Load succeeded.
func (f *SuperColumnFamily) IsLoaded() bool {
	return f.loaded
}

// IsModified reports whether the row or any super column has unsaved changes.
func (f *SuperColumnFamily) IsModified() bool {
	if f.modified {
		return true
	}
	for _, sc := range f.supers.values() {
		if sc.IsModified() {
			return true
		}
	}
	return false
}

// Delete flags the entire row for removal on the next save.
func (f *SuperColumnFamily) Delete() {
	f.deleted = true
	f.modified = true
}

// Init discards every super column held in memory.
func (f *SuperColumnFamily) Init() {
	f.supers = newOrdered[*SuperColumn]()
}

// AddSuper attaches sc under its own name, replacing whatever was there, and returns the
// attached instance. sc's parent is rebound to f; attach a Clone to share content between
// families.
func (f *SuperColumnFamily) AddSuper(sc *SuperColumn) *SuperColumn {
	sc.parent = f
	f.supers.set(sc.name, sc)
	f.modified = true

	got, _ := f.GetSuper(sc.name)
	return got
}

// AddColumn returns the super column named name, creating an empty one if needed. Unlike
// AddSuper it never replaces existing data.
func (f *SuperColumnFamily) AddColumn(name string) *SuperColumn {
	if sc, ok := f.supers.get(name); ok {
		return sc
	}
	return f.AddSuper(NewSuperColumn(name))
}

// GetSuper looks up a super column by name.
func (f *SuperColumnFamily) GetSuper(name string) (*SuperColumn, bool) {
	return f.supers.get(name)
}

// Supers returns the super columns in order.
func (f *SuperColumnFamily) Supers() []*SuperColumn {
	return f.supers.values()
}

// Names returns the super column names in order.
func (f *SuperColumnFamily) Names() []string {
	return f.supers.names()
}

func (f *SuperColumnFamily) Len() int {
	return f.supers.len()
}

func (f *SuperColumnFamily) autoCreateFor(override Policy) bool {
	return override.resolve(func() bool {
		return f.autoCreate.resolve(func() bool { return defaultAutoCreate })
	})
}

func (f *SuperColumnFamily) checkPath(keyID string) error {
	if f.store == nil {
		return newError(ErrNoStore, "family %q", f.name)
	}
	if f.keyspace == "" || keyID == "" || f.name == "" {
		return newError(ErrPathUnresolved, "keyspace=%q key=%q family=%q", f.keyspace, keyID,
			f.name)
	}
	return nil
}

// pathOK records an error when the row cannot be addressed.
func (f *SuperColumnFamily) pathOK(keyID string) bool {
	if err := f.checkPath(keyID); err != nil {
		f.registerError(err)
		return false
	}
	return true
}

// Save flushes the row. A deleted row is removed with a single delete; otherwise each super
// column is saved in order and the first failure stops the cascade. Super columns saved before
// the failure stay saved. Save returns false without touching the store when nothing changed.
func (f *SuperColumnFamily) Save(ctx context.Context, opts ...Option) bool {
	if !f.IsModified() {
		return false
	}
	if !f.pathOK(f.keyID) {
		return false
	}

	o := collect(opts)
	level := f.store.ResolveConsistency(o.consistency)

	if f.deleted {
		err := f.store.DeleteColumnPath(ctx, f.keyspace, f.keyID,
			litetable.ColumnPath{Family: f.name}, 0, level)
		if err != nil {
			f.registerError(err)
			return false
		}
		f.Init()
		f.deleted = false
		f.modified = false
		log.Debug().Str("family", f.name).Str("key", f.keyID).Msg("row deleted")
		return true
	}

	for _, sc := range f.supers.values() {
		if err := sc.save(ctx, level); err != nil {
			f.registerError(fmt.Errorf("super column %q: %w", sc.name, err))
			return false
		}
	}

	f.modified = false
	return true
}

// Load reads the row from the store and rebuilds the super columns from the result.
//
// With auto-create enabled the whole row is fetched and every super column found is created.
// With it disabled only the super columns currently defined are fetched, and inside them only
// the columns already defined are filled in. Load returns true when the row resolved and every
// super column populated; an empty row leaves the container not loaded.
func (f *SuperColumnFamily) Load(ctx context.Context, opts ...Option) bool {
	o := collect(opts)

	keyID := o.keyID
	if keyID == "" {
		keyID = f.keyID
	}

	f.loaded = false
	if !f.pathOK(keyID) {
		return false
	}

	autoCreate := f.autoCreateFor(o.autoCreate)
	level := f.store.ResolveConsistency(o.consistency)

	var (
		result []litetable.SuperSlice
		err    error
	)
	if autoCreate {
		result, err = f.store.GetSlice(ctx, f.keyspace, keyID, f.name, nil, level)
	} else {
		var multi map[string][]litetable.SuperSlice
		multi, err = f.store.GetSliceMulti(ctx, f.keyspace, []string{keyID}, f.name, f.Names(),
			nil, level)
		if err == nil {
			var ok bool
			if result, ok = multi[keyID]; !ok {
				err = newError(litetable.ErrNotFound, "key %q", keyID)
			}
		}
	}
	if err != nil {
		f.registerError(err)
		return false
	}

	previous := f.supers
	f.Init()

	policy := policyOf(autoCreate)
	for _, s := range result {
		sc := NewSuperColumn(s.Name)
		if old, ok := previous.get(s.Name); ok {
			sc.autoCreate = old.autoCreate
			for _, name := range old.columns.names() {
				sc.AddColumn(name)
			}
		}

		if f.AddSuper(sc).Populate(FromSlice(s), policy) {
			f.loaded = true
		} else {
			f.loaded = false
			f.registerError(fmt.Errorf("super column %q: %w", s.Name, sc.LastError()))
			break
		}
	}

	if f.loaded {
		f.keyID = keyID
		f.markClean()
	}

	log.Debug().
		Str("family", f.name).
		Str("key", keyID).
		Bool("autoCreate", autoCreate).
		Int("supers", len(result)).
		Bool("loaded", f.loaded).
		Msg("row loaded")

	return f.loaded
}

// Populate fills the row from data. Each entry must be a mapping (or a pre-built SuperColumn)
// and is applied when auto-create is enabled or the super column already exists; other
// entries are skipped. It returns true when the row has no recorded errors afterwards, so
// skipped entries do not count as failures.
func (f *SuperColumnFamily) Populate(data Node, policy Policy) bool {
	entries, err := resolvePayload(data)
	if err != nil {
		f.registerError(err)
		return false
	}

	autoCreate := f.autoCreateFor(policy)
	for _, e := range entries {
		if !autoCreate && !f.supers.has(e.Name) {
			continue
		}

		switch v := e.Value.(type) {
		case *SuperColumn:
			v.parent = f
			f.supers.set(e.Name, v)
			f.modified = true
		case Map, JSON:
			sc, ok := f.supers.get(e.Name)
			if !ok {
				sc = f.AddSuper(NewSuperColumn(e.Name))
			}
			if !sc.Populate(v, policyOf(autoCreate)) {
				f.registerError(fmt.Errorf("super column %q: %w", e.Name, sc.LastError()))
				return false
			}
		default:
			f.registerError(newError(ErrMalformedPayload, "super column %q: expected a mapping, got %T",
				e.Name, e.Value))
			return false
		}
	}

	return len(f.errs) == 0
}

func (f *SuperColumnFamily) markClean() {
	f.modified = false
	for _, sc := range f.supers.values() {
		sc.markClean()
	}
}
