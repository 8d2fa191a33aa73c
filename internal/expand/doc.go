// Package expand implements template macros.
//
// A definition `macro m($a, $b) { ... }` stores its body as a token list.
// Every call allocates a fresh hygiene context whose call site is the whole
// invocation; body tokens are re-tagged with that context while `$a`
// arguments are spliced in untouched, so they keep the caller's context.
// The parser consumes the produced tokens in place.
package expand
