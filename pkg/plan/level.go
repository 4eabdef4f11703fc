// Package plan provides DDL plan descriptors and the explain metadata attached to them.
package plan

import (
	"strings"

	"github.com/TFMV/ddlplan/pkg/errors"
)

// Level is an explain verbosity tier.
type Level int

const (
	LevelUser     Level = iota // EXPLAIN FORMATTED USER
	LevelDefault               // EXPLAIN
	LevelExtended              // EXPLAIN EXTENDED
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case LevelUser:
		return "user"
	case LevelDefault:
		return "default"
	case LevelExtended:
		return "extended"
	default:
		return "unknown"
	}
}

// ParseLevel parses a level name. Matching is case-insensitive.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return LevelUser, nil
	case "", "default":
		return LevelDefault, nil
	case "extended":
		return LevelExtended, nil
	default:
		return LevelDefault, errors.New(errors.CodeInvalidRequest, "unknown explain level").
			WithDetail("level", s)
	}
}

// Levels is a set of explain tiers.
type Levels []Level

// AllLevels lists every tier.
var AllLevels = Levels{LevelUser, LevelDefault, LevelExtended}

// Contains reports whether l is in the set.
func (ls Levels) Contains(l Level) bool {
	for _, x := range ls {
		if x == l {
			return true
		}
	}
	return false
}
