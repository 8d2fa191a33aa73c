package lint

import (
	"fmt"
	"slices"
	"strings"
)

// Registry keeps checks in the order they run and indexes their lints.
type Registry struct {
	checks []Check
	lints  []*Lint
	byName map[string]*Lint
}

// NewRegistry registers checks in order. Two lints with the same name are a
// programming error and panic.
func NewRegistry(checks ...Check) *Registry {
	r := &Registry{
		checks: make([]Check, 0, len(checks)),
		byName: make(map[string]*Lint),
	}
	for _, c := range checks {
		r.Add(c)
	}
	return r
}

// Add appends a check after the ones already registered.
func (r *Registry) Add(c Check) {
	for _, l := range c.Lints() {
		if _, dup := r.byName[l.Name]; dup {
			panic(fmt.Sprintf("lint %q registered twice", l.Name))
		}
		r.byName[l.Name] = l
		r.lints = append(r.lints, l)
	}
	r.checks = append(r.checks, c)
}

// Checks returns the registered checks in run order.
func (r *Registry) Checks() []Check {
	return slices.Clone(r.checks)
}

// Lints returns every lint sorted by name.
func (r *Registry) Lints() []*Lint {
	out := slices.Clone(r.lints)
	slices.SortFunc(out, func(a, b *Lint) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// Lookup finds a lint by name. Dashes are accepted in place of underscores.
func (r *Registry) Lookup(name string) (*Lint, bool) {
	l, ok := r.byName[strings.ReplaceAll(name, "-", "_")]
	return l, ok
}

// Len returns the number of registered lints.
func (r *Registry) Len() int {
	return len(r.lints)
}
