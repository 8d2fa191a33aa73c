package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"rillint/internal/ast"
	"rillint/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) tree.Span is non-empty and within file content bounds
// 2) every root-context item span is non-empty and fully contained in tree.Span
// 3) every expression span has Start <= End and lies inside its file
// 4) a child expression written in the same context as its parent lies inside it
func CheckSpanInvariants(tree *ast.Tree, sf *source.File) error {
	if tree == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}

	// 1) file span sanity
	if tree.Span.End <= tree.Span.Start && len(sf.Content) > 0 {
		return fmt.Errorf("file span is empty: %v", tree.Span)
	}
	if tree.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", tree.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if tree.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", tree.Span.End, lenContent)
	}

	// 2) item spans within file span
	for _, it := range tree.Root {
		item := tree.Items.Get(it)
		if item == nil {
			return fmt.Errorf("nil item for id=%d", it)
		}
		sp := item.Span
		if sp.Ctxt != source.RootContext {
			continue
		}
		if sp.End <= sp.Start {
			return fmt.Errorf("empty item span: %v", sp)
		}
		if sp.Start < tree.Span.Start || sp.End > tree.Span.End {
			return fmt.Errorf("item span %v is outside file span %v", sp, tree.Span)
		}
	}

	// 3) and 4) expressions
	var failure error
	tree.Inspect(func(n ast.Node) bool {
		if failure != nil {
			return false
		}
		id, ok := n.Expr()
		if !ok {
			return true
		}
		sp := tree.Exprs.Span(id)
		if sp.Start > sp.End || sp.End > lenContent && sp.File == sf.ID {
			failure = fmt.Errorf("%s expression has a broken span %v", tree.Exprs.Kind(id), sp)
			return false
		}
		tree.ForEachChild(n, func(c ast.Node) {
			child, ok := c.Expr()
			if !ok || failure != nil {
				return
			}
			csp := tree.Exprs.Span(child)
			if csp.Ctxt == sp.Ctxt && csp.File == sp.File && !sp.Contains(csp) {
				failure = fmt.Errorf("%s child %v escapes %s parent %v",
					tree.Exprs.Kind(child), csp, tree.Exprs.Kind(id), sp)
			}
		})
		return true
	})
	return failure
}
