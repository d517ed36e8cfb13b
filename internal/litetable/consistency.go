package litetable

import (
	"fmt"
	"strings"
)

// Consistency is the replication guarantee requested for a store operation. The zero value means
// "not specified" and is resolved by the store client to its configured default.
type Consistency int

const (
	ConsistencyUnset Consistency = iota
	ConsistencyAny
	ConsistencyOne
	ConsistencyQuorum
	ConsistencyAll
)

var consistencyNames = map[Consistency]string{
	ConsistencyUnset:  "UNSET",
	ConsistencyAny:    "ANY",
	ConsistencyOne:    "ONE",
	ConsistencyQuorum: "QUORUM",
	ConsistencyAll:    "ALL",
}

func (c Consistency) String() string {
	if n, ok := consistencyNames[c]; ok {
		return n
	}
	return fmt.Sprintf("Consistency(%d)", int(c))
}

// ParseConsistency converts a level name (case-insensitive) into a Consistency.
func ParseConsistency(s string) (Consistency, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for c, n := range consistencyNames {
		if c != ConsistencyUnset && n == s {
			return c, nil
		}
	}
	return ConsistencyUnset, fmt.Errorf("unknown consistency level: %q", s)
}
