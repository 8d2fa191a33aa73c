// Package lint runs checks over a parsed file. Checks are plain values kept
// in an ordered Registry; Walk traverses the tree once and hands every node to
// each enabled check that implements the matching capability interface.
package lint

import (
	"rillint/internal/ast"
	"rillint/internal/diag"
)

// Group is the family a lint belongs to. It only affects documentation.
type Group string

const (
	GroupCorrectness Group = "correctness"
	GroupSuspicious  Group = "suspicious"
	GroupComplexity  Group = "complexity"
	GroupStyle       Group = "style"
	GroupPedantic    Group = "pedantic"
	GroupRestriction Group = "restriction"
	GroupInternal    Group = "internal"
)

// Lint describes one lint.
type Lint struct {
	Name    string
	Code    diag.Code
	Default Level
	Group   Group
	Summary string
}

// Check is a unit of linting. It declares the lints it may emit and
// implements any of ExprChecker, StmtChecker, BlockChecker, ItemChecker and
// FileChecker.
type Check interface {
	Lints() []*Lint
}

// ExprChecker sees every expression, parents before children.
type ExprChecker interface {
	CheckExpr(cx *Context, expr ast.ExprID)
}

// StmtChecker sees every statement.
type StmtChecker interface {
	CheckStmt(cx *Context, stmt ast.StmtID)
}

// BlockChecker sees every block expression before its statements.
type BlockChecker interface {
	CheckBlock(cx *Context, block ast.ExprID)
}

// ItemChecker sees every item, nested ones included.
type ItemChecker interface {
	CheckItem(cx *Context, item ast.ItemID)
}

// FileChecker runs once per file before the traversal.
type FileChecker interface {
	CheckFile(cx *Context)
}
