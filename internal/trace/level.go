package trace

import (
	"fmt"
	"slices"
	"strings"
)

// Level controls tracing verbosity. Each level passes events up to a
// scope ceiling; LevelError records phases too, into the ring only.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // ring buffer, dumped when the run fails
	LevelPhase        // run and phase boundaries
	LevelDetail       // plus per-file spans
	LevelDebug        // plus per-check spans
)

var levelNames = []string{"off", "error", "phase", "detail", "debug"}

// ceilings[l] is the finest scope level l lets through; zero passes nothing.
var ceilings = [...]Scope{
	LevelOff:    0,
	LevelError:  ScopePhase,
	LevelPhase:  ScopePhase,
	LevelDetail: ScopeFile,
	LevelDebug:  ScopeCheck,
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a --trace-level value; empty means off.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(s)
	if s == "" {
		return LevelOff, nil
	}
	if i := slices.Index(levelNames, s); i >= 0 {
		return Level(i), nil
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames, "|"))
}

// ShouldEmit reports whether events of scope pass this level.
func (l Level) ShouldEmit(scope Scope) bool {
	return int(l) < len(ceilings) && scope != 0 && scope <= ceilings[l]
}
