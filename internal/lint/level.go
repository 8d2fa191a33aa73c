package lint

import (
	"fmt"
	"strings"

	"rillint/internal/diag"
)

// Level is how a lint's findings are treated.
type Level uint8

const (
	Allow Level = iota
	Warn
	// Deny turns findings into errors.
	Deny
)

func (l Level) String() string {
	switch l {
	case Allow:
		return "allow"
	case Warn:
		return "warn"
	case Deny:
		return "deny"
	}
	return "unknown"
}

// ParseLevel accepts allow, warn and deny in any case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "allow":
		return Allow, nil
	case "warn":
		return Warn, nil
	case "deny":
		return Deny, nil
	}
	return Allow, fmt.Errorf("unknown lint level %q (want allow, warn or deny)", s)
}

// Severity maps a level to the severity of its diagnostics.
func (l Level) Severity() diag.Severity {
	if l == Deny {
		return diag.SevError
	}
	return diag.SevWarning
}

// Levels holds per-lint overrides on top of the lint defaults.
type Levels struct {
	overrides map[string]Level
}

func NewLevels() *Levels {
	return &Levels{overrides: make(map[string]Level)}
}

// Set overrides the level of the named lint.
func (l *Levels) Set(name string, level Level) {
	if l.overrides == nil {
		l.overrides = make(map[string]Level)
	}
	l.overrides[name] = level
}

// Of returns the effective level of lint.
func (l *Levels) Of(lint *Lint) Level {
	if l != nil {
		if lvl, ok := l.overrides[lint.Name]; ok {
			return lvl
		}
	}
	return lint.Default
}

// Overrides returns a copy of the explicit settings.
func (l *Levels) Overrides() map[string]Level {
	out := make(map[string]Level, len(l.overrides))
	for k, v := range l.overrides {
		out[k] = v
	}
	return out
}
