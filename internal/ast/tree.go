package ast

import (
	"rillint/internal/source"
)

type Hints struct{ Items, Stmts, Exprs uint }

// Tree holds every node parsed from one file, macro expansions included.
type Tree struct {
	File    source.FileID
	Span    source.Span
	Strings *source.Interner
	Items   *Items
	Stmts   *Stmts
	Exprs   *Exprs
	Types   *Types
	Pats    *Pats
	// Root lists top-level items in source order.
	Root []ItemID
}

// NewTree creates an empty tree for file. strings may be shared between trees.
func NewTree(file source.FileID, strings *source.Interner, hints Hints) *Tree {
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Tree{
		File:    file,
		Strings: strings,
		Items:   NewItems(hints.Items),
		Stmts:   NewStmts(hints.Stmts),
		Exprs:   NewExprs(hints.Exprs),
		Types:   NewTypes(hints.Exprs / 4),
		Pats:    NewPats(hints.Exprs / 4),
	}
}

// HintsFor sizes arenas after the file length; one node per ~8 bytes is typical.
func HintsFor(size int) Hints {
	n := uint(max(size/8, 64)) // #nosec G115 -- size >= 0
	return Hints{Items: n / 16, Stmts: n / 4, Exprs: n}
}

func (t *Tree) PushItem(item ItemID) {
	t.Root = append(t.Root, item)
}

// Name returns the text of an interned identifier.
func (t *Tree) Name(id source.StringID) string {
	s, _ := t.Strings.Lookup(id)
	return s
}

// PathName joins path segments with `::`.
func (t *Tree) PathName(segs []PathSegment) string {
	switch len(segs) {
	case 0:
		return ""
	case 1:
		return t.Name(segs[0].Name)
	}
	n := 0
	for _, s := range segs {
		n += len(t.Name(s.Name)) + 2
	}
	buf := make([]byte, 0, n)
	for i, s := range segs {
		if i > 0 {
			buf = append(buf, ':', ':')
		}
		buf = append(buf, t.Name(s.Name)...)
	}
	return string(buf)
}

// BlockTail returns the trailing expression of a block (last statement
// without `;`), if any.
func (t *Tree) BlockTail(block ExprID) (ExprID, bool) {
	b, ok := t.Exprs.Block(block)
	if !ok || len(b.Stmts) == 0 {
		return NoExprID, false
	}
	es, ok := t.Stmts.Expr(b.Stmts[len(b.Stmts)-1])
	if !ok || es.Semi {
		return NoExprID, false
	}
	return es.Expr, true
}

// StripParens returns the expression inside any number of parentheses.
func (t *Tree) StripParens(id ExprID) ExprID {
	for t.Exprs.Kind(id) == ExprParen {
		in, _ := t.Exprs.Inner(id)
		id = in.Inner
	}
	return id
}
