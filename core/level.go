package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnknownLevel is returned when a level name is not part of an enumeration
	ErrUnknownLevel = errors.New("unknown level")
	// ErrInvalidLevels is returned when an enumeration cannot be built
	ErrInvalidLevels = errors.New("invalid levels")
)

// Level is a named severity. Rank 0 is the most severe; higher ranks are
// more verbose.
type Level struct {
	Name string
	Rank int
}

// String returns the level name
func (l Level) String() string {
	return l.Name
}

// MoreSevereThan reports whether l ranks strictly above o
func (l Level) MoreSevereThan(o Level) bool {
	return l.Rank < o.Rank
}

// Levels is an immutable, totally ordered set of named levels.
// The zero value is empty and resolves no names.
type Levels struct {
	names []string
	ranks map[string]int
}

var (
	// Syslog is the eight-level syslog severity set
	Syslog = MustLevels("emerg", "alert", "crit", "err", "warning", "notice", "info", "debug")
	// Standard is the common five-level set
	Standard = MustLevels("fatal", "error", "warn", "info", "debug")
)

// NewLevels builds an enumeration where each name's rank is its position,
// so the first name is the most severe.
func NewLevels(names ...string) (Levels, error) {
	if len(names) == 0 {
		return Levels{}, fmt.Errorf("%w: at least one level is required", ErrInvalidLevels)
	}
	ls := Levels{
		names: make([]string, len(names)),
		ranks: make(map[string]int, len(names)),
	}
	for i, name := range names {
		if name == "" {
			return Levels{}, fmt.Errorf("%w: empty name at rank %d", ErrInvalidLevels, i)
		}
		if prev, ok := ls.ranks[name]; ok {
			return Levels{}, fmt.Errorf("%w: %q declared at ranks %d and %d", ErrInvalidLevels, name, prev, i)
		}
		ls.names[i] = name
		ls.ranks[name] = i
	}
	return ls, nil
}

// LevelsFromRanks builds an enumeration from an explicit name to rank table.
// Ranks must be unique and contiguous from 0.
func LevelsFromRanks(ranks map[string]int) (Levels, error) {
	if len(ranks) == 0 {
		return Levels{}, fmt.Errorf("%w: at least one level is required", ErrInvalidLevels)
	}
	names := make([]string, len(ranks))
	for name, rank := range ranks {
		if rank < 0 || rank >= len(ranks) {
			return Levels{}, fmt.Errorf("%w: rank %d of %q is outside [0, %d)", ErrInvalidLevels, rank, name, len(ranks))
		}
		if names[rank] != "" {
			first, second := names[rank], name
			if second < first {
				first, second = second, first
			}
			return Levels{}, fmt.Errorf("%w: %q and %q share rank %d", ErrInvalidLevels, first, second, rank)
		}
		names[rank] = name
	}
	return NewLevels(names...)
}

// MustLevels is like NewLevels but panics on error. It is meant for
// package-level presets.
func MustLevels(names ...string) Levels {
	ls, err := NewLevels(names...)
	if err != nil {
		panic(err)
	}
	return ls
}

// Len returns the number of levels
func (ls Levels) Len() int {
	return len(ls.names)
}

// Names returns the level names ordered from most to least severe
func (ls Levels) Names() []string {
	out := make([]string, len(ls.names))
	copy(out, ls.names)
	return out
}

// Rank returns the rank of name
func (ls Levels) Rank(name string) (int, bool) {
	r, ok := ls.ranks[name]
	return r, ok
}

// Contains reports whether name is part of the enumeration
func (ls Levels) Contains(name string) bool {
	_, ok := ls.ranks[name]
	return ok
}

// Lookup resolves name to its Level
func (ls Levels) Lookup(name string) (Level, error) {
	r, ok := ls.ranks[name]
	if !ok {
		return Level{}, fmt.Errorf("%w: %q (known: %s)", ErrUnknownLevel, name, strings.Join(ls.names, ", "))
	}
	return Level{Name: name, Rank: r}, nil
}

// At returns the level with the given rank
func (ls Levels) At(rank int) (Level, bool) {
	if rank < 0 || rank >= len(ls.names) {
		return Level{}, false
	}
	return Level{Name: ls.names[rank], Rank: rank}, true
}

// All returns every level ordered from most to least severe
func (ls Levels) All() []Level {
	out := make([]Level, len(ls.names))
	for i, name := range ls.names {
		out[i] = Level{Name: name, Rank: i}
	}
	return out
}

// ParseLevel resolves a user supplied name, ignoring case and surrounding
// whitespace. Exact lookups should use Lookup.
func (ls Levels) ParseLevel(s string) (Level, error) {
	if l, err := ls.Lookup(s); err == nil {
		return l, nil
	}
	want := strings.ToLower(strings.TrimSpace(s))
	for i, name := range ls.names {
		if strings.ToLower(name) == want {
			return Level{Name: name, Rank: i}, nil
		}
	}
	return ls.Lookup(s)
}

// Presets maps preset names to their enumerations
func Presets() map[string]Levels {
	return map[string]Levels{
		"syslog":   Syslog,
		"standard": Standard,
	}
}

// PresetNames returns the sorted names accepted by Preset
func PresetNames() []string {
	names := make([]string, 0, 2)
	for name := range Presets() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset returns a named enumeration
func Preset(name string) (Levels, bool) {
	ls, ok := Presets()[strings.ToLower(name)]
	return ls, ok
}
