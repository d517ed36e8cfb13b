package entity

import "github.com/litetable/litetable-mapper/internal/litetable"

// Column is a leaf name/value pair owned by a single SuperColumn.
type Column struct {
	name      string
	value     []byte
	timestamp int64
	modified  bool
	deleted   bool
}

// NewColumn returns an empty, unmodified column.
func NewColumn(name string) *Column {
	return &Column{name: name}
}

func (c *Column) Name() string {
	return c.name
}

func (c *Column) Value() []byte {
	return c.value
}

// String returns the value as text.
func (c *Column) String() string {
	return string(c.value)
}

// Timestamp is the write time in unix nanos. Zero lets the store stamp the write.
func (c *Column) Timestamp() int64 {
	return c.timestamp
}

// SetValue replaces the value and marks the column modified. A deleted column is revived.
func (c *Column) SetValue(v []byte) {
	c.value = v
	c.modified = true
	c.deleted = false
}

// SetTimestamp pins the write time used by the next save.
func (c *Column) SetTimestamp(ts int64) {
	c.timestamp = ts
	c.modified = true
}

// Delete flags the column for removal on the next save.
func (c *Column) Delete() {
	c.deleted = true
	c.modified = true
}

func (c *Column) IsModified() bool {
	return c.modified
}

func (c *Column) IsDeleted() bool {
	return c.deleted
}

func (c *Column) cell() litetable.Cell {
	return litetable.Cell{
		Name:      c.name,
		Value:     c.value,
		Timestamp: c.timestamp,
	}
}

func (c *Column) clone() *Column {
	cp := *c
	if c.value != nil {
		cp.value = append([]byte(nil), c.value...)
	}
	return &cp
}
