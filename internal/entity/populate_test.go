package entity

import (
	"errors"
	"github.com/stretchr/testify/require"
	"testing"
)

// snapshot flattens a family into super -> column -> value for comparisons.
func snapshot(f *SuperColumnFamily) map[string]map[string]string {
	out := make(map[string]map[string]string)
	for _, sc := range f.Supers() {
		cols := make(map[string]string)
		for _, c := range sc.Columns() {
			cols[c.Name()] = c.String()
		}
		out[sc.Name()] = cols
	}
	return out
}

func TestSuperColumnFamily_Populate(t *testing.T) {
	tests := map[string]struct {
		data     Node
		policy   Policy
		prepare  func(f *SuperColumnFamily)
		expected bool
		errIs    error
		state    map[string]map[string]string
	}{
		"literal mapping": {
			data: M(
				F("profile", M(F("name", S("alice")), F("age", S("30")))),
				F("settings", M(F("theme", S("dark")))),
			),
			policy:   PolicyOn,
			expected: true,
			state: map[string]map[string]string{
				"profile":  {"name": "alice", "age": "30"},
				"settings": {"theme": "dark"},
			},
		},
		"json payload": {
			data:     JSON(`{"profile":{"name":"alice","age":30,"admin":true}}`),
			policy:   PolicyOn,
			expected: true,
			state: map[string]map[string]string{
				"profile": {"name": "alice", "age": "30", "admin": "true"},
			},
		},
		"auto-create off skips unknown super columns": {
			data: M(
				F("profile", M(F("name", S("alice")))),
				F("unknown", M(F("k", S("v")))),
			),
			policy: PolicyOff,
			prepare: func(f *SuperColumnFamily) {
				f.AddColumn("profile").AddColumn("name")
			},
			expected: true,
			state: map[string]map[string]string{
				"profile": {"name": "alice"},
			},
		},
		"auto-create off skips unknown columns": {
			data:   M(F("profile", M(F("name", S("alice")), F("email", S("a@b.c"))))),
			policy: PolicyOff,
			prepare: func(f *SuperColumnFamily) {
				f.AddColumn("profile").AddColumn("name")
			},
			expected: true,
			state: map[string]map[string]string{
				"profile": {"name": "alice"},
			},
		},
		"inherited policy follows the family": {
			data:   M(F("profile", M(F("name", S("alice"))))),
			policy: PolicyInherit,
			prepare: func(f *SuperColumnFamily) {
				f.SetAutoCreate(PolicyOff)
			},
			expected: true,
			state:    map[string]map[string]string{},
		},
		"existing data is merged": {
			data:   M(F("profile", M(F("age", S("31"))))),
			policy: PolicyOn,
			prepare: func(f *SuperColumnFamily) {
				f.AddColumn("profile").SetColumn("name", []byte("alice"))
			},
			expected: true,
			state: map[string]map[string]string{
				"profile": {"name": "alice", "age": "31"},
			},
		},
		"empty mapping": {
			data:     M(),
			policy:   PolicyOn,
			expected: false,
			errIs:    ErrMalformedPayload,
			state:    map[string]map[string]string{},
		},
		"invalid json": {
			data:     JSON(`{"profile":`),
			policy:   PolicyOn,
			expected: false,
			errIs:    ErrMalformedPayload,
			state:    map[string]map[string]string{},
		},
		"json array": {
			data:     JSON(`["profile"]`),
			policy:   PolicyOn,
			expected: false,
			errIs:    ErrMalformedPayload,
			state:    map[string]map[string]string{},
		},
		"scalar at row level": {
			data:     M(F("profile", S("alice"))),
			policy:   PolicyOn,
			expected: false,
			errIs:    ErrMalformedPayload,
			state:    map[string]map[string]string{},
		},
		"nested mapping inside a super column": {
			data:     M(F("profile", M(F("address", M(F("city", S("x"))))))),
			policy:   PolicyOn,
			expected: false,
			errIs:    ErrMalformedPayload,
			state:    map[string]map[string]string{"profile": {}},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)
			f := NewSuperColumnFamily(nil, testKeyspace, testFamily)
			if tc.prepare != nil {
				tc.prepare(f)
			}

			got := f.Populate(tc.data, tc.policy)
			req.Equal(tc.expected, got)
			if tc.errIs != nil {
				req.True(errors.Is(f.LastError(), tc.errIs), "got %v", f.LastError())
			}
			if tc.state != nil {
				req.Equal(tc.state, snapshot(f))
			}
		})
	}
}

func TestSuperColumnFamily_Populate_TextEquivalence(t *testing.T) {
	req := require.New(t)

	fromText := NewSuperColumnFamily(nil, testKeyspace, testFamily)
	req.True(fromText.Populate(JSON(`{"a":{"k":"v"}}`), PolicyInherit))

	fromMap := NewSuperColumnFamily(nil, testKeyspace, testFamily)
	req.True(fromMap.Populate(M(F("a", M(F("k", S("v"))))), PolicyInherit))

	req.Equal(snapshot(fromMap), snapshot(fromText))
	req.Equal(fromMap.Names(), fromText.Names())
	req.Equal(fromMap.IsModified(), fromText.IsModified())
}

func TestSuperColumnFamily_Populate_KeepsDocumentOrder(t *testing.T) {
	req := require.New(t)
	f := NewSuperColumnFamily(nil, testKeyspace, testFamily)

	req.True(f.Populate(JSON(`{"zeta":{"b":"1","a":"2"},"alpha":{"k":"v"}}`), PolicyOn))
	req.Equal([]string{"zeta", "alpha"}, f.Names())

	zeta, _ := f.GetSuper("zeta")
	req.Equal([]string{"b", "a"}, zeta.Names())
}

func TestSuperColumnFamily_Populate_TypedSuperColumn(t *testing.T) {
	req := require.New(t)

	sc := NewSuperColumn("profile")
	sc.SetColumn("name", []byte("alice"))

	f := NewSuperColumnFamily(nil, testKeyspace, testFamily)
	req.True(f.Populate(M(F("profile", sc)), PolicyOn))

	got, ok := f.GetSuper("profile")
	req.True(ok)
	req.Same(sc, got)
	req.Same(f, sc.Parent())

	// gated by policy when the slot is unknown
	other := NewSuperColumnFamily(nil, testKeyspace, testFamily)
	req.True(other.Populate(M(F("profile", NewSuperColumn("profile"))), PolicyOff))
	req.Zero(other.Len())
}

func TestSuperColumnFamily_Populate_ErrorsAreSticky(t *testing.T) {
	req := require.New(t)
	f := NewSuperColumnFamily(nil, testKeyspace, testFamily)

	req.False(f.Populate(JSON(`not json`), PolicyOn))
	req.False(f.Populate(M(F("a", M(F("k", S("v"))))), PolicyOn))

	f.ClearErrors()
	req.True(f.Populate(M(F("a", M(F("k", S("v"))))), PolicyOn))
}

func TestSuperColumn_Populate(t *testing.T) {
	req := require.New(t)
	sc := NewSuperColumn("profile")

	req.True(sc.Populate(M(F("name", S("alice")), F("blob", B([]byte{0x01, 0x02}))), PolicyInherit))
	req.Equal([]string{"name", "blob"}, sc.Names())
	req.True(sc.IsModified())

	name, _ := sc.GetColumn("name")
	req.True(name.IsModified())

	sc.SetAutoCreate(PolicyOff)
	req.True(sc.Populate(M(F("age", S("30"))), PolicyInherit))
	_, ok := sc.GetColumn("age")
	req.False(ok)

	req.False(sc.Populate(S("alice"), PolicyOn))
	req.True(errors.Is(sc.LastError(), ErrMalformedPayload))
}
