package entity

import "github.com/litetable/litetable-mapper/internal/litetable"

// defaultAutoCreate applies when neither the call, the container nor its parent set a policy.
const defaultAutoCreate = true

// Policy is the auto-create setting of a container or of a single call. PolicyInherit defers to
// the next level up: call -> container -> parent container -> defaultAutoCreate.
type Policy uint8

const (
	PolicyInherit Policy = iota
	PolicyOn
	PolicyOff
)

// policyOf turns a resolved setting back into an explicit policy.
func policyOf(enabled bool) Policy {
	if enabled {
		return PolicyOn
	}
	return PolicyOff
}

// resolve returns the policy's value, or fallback when the policy is PolicyInherit.
func (p Policy) resolve(fallback func() bool) bool {
	switch p {
	case PolicyOn:
		return true
	case PolicyOff:
		return false
	default:
		return fallback()
	}
}

func (p Policy) String() string {
	switch p {
	case PolicyOn:
		return "on"
	case PolicyOff:
		return "off"
	default:
		return "inherit"
	}
}

type options struct {
	keyID       string
	autoCreate  Policy
	consistency litetable.Consistency
}

// Option tunes a single Save or Load call.
type Option func(*options)

// WithKeyID loads the given row instead of the container's current key. Ignored by Save.
func WithKeyID(keyID string) Option {
	return func(o *options) {
		o.keyID = keyID
	}
}

// WithAutoCreate overrides the container's auto-create policy for one Load. Ignored by Save.
func WithAutoCreate(p Policy) Option {
	return func(o *options) {
		o.autoCreate = p
	}
}

// WithConsistency requests a consistency level. Unset levels fall back to the store default.
func WithConsistency(c litetable.Consistency) Option {
	return func(o *options) {
		o.consistency = c
	}
}

func collect(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
