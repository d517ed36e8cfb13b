package entity

// container is the state shared by SuperColumnFamily and SuperColumn.
type container struct {
	name       string
	autoCreate Policy
	modified   bool
	deleted    bool
	errs       []error
}

// Name returns the container's name.
func (c *container) Name() string {
	return c.name
}

// SetAutoCreate sets the container's own auto-create policy.
func (c *container) SetAutoCreate(p Policy) {
	c.autoCreate = p
}

// AutoCreate returns the container's own policy, which may be PolicyInherit.
func (c *container) AutoCreate() Policy {
	return c.autoCreate
}

// IsDeleted reports whether the container is flagged for deletion on the next save.
func (c *container) IsDeleted() bool {
	return c.deleted
}

// Errors returns a copy of the errors recorded on the container.
func (c *container) Errors() []error {
	out := make([]error, len(c.errs))
	copy(out, c.errs)
	return out
}

// LastError returns the most recently recorded error, or nil.
func (c *container) LastError() error {
	if len(c.errs) == 0 {
		return nil
	}
	return c.errs[len(c.errs)-1]
}

// ClearErrors forgets every recorded error.
func (c *container) ClearErrors() {
	c.errs = nil
}

func (c *container) registerError(err error) {
	if err == nil {
		return
	}
	c.errs = append(c.errs, err)
}
