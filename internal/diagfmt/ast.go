package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"rillint/internal/ast"
	"rillint/internal/source"
)

// ASTNodeOutput is one node of the JSON tree dump.
type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Detail   string          `json:"detail,omitempty"`
	Span     source.Span     `json:"span"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

type treeNode struct {
	label    string
	children []*treeNode
}

// FormatASTPretty prints the tree as an indented outline:
//
//	File test.rl
//	└─ Item Fn f (1:1-1:20)
//	   └─ Expr Block (1:8-1:20)
func FormatASTPretty(w io.Writer, tree *ast.Tree, fs *source.FileSet, file source.FileID) error {
	header := "File"
	if f, ok := fs.Lookup(file); ok {
		header = "File " + f.FormatPath("auto", fs.BaseDir())
	}
	root := &treeNode{label: header}
	for _, id := range tree.Root {
		root.children = append(root.children, buildTreeNode(tree, fs, ast.ItemNode(id)))
	}
	var sb strings.Builder
	sb.WriteString(root.label)
	sb.WriteByte('\n')
	writeChildren(&sb, root.children, "")
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeChildren(sb *strings.Builder, children []*treeNode, prefix string) {
	for i, c := range children {
		branch, next := "├─ ", "│  "
		if i == len(children)-1 {
			branch, next = "└─ ", "   "
		}
		sb.WriteString(prefix + branch + c.label + "\n")
		writeChildren(sb, c.children, prefix+next)
	}
}

func buildTreeNode(tree *ast.Tree, fs *source.FileSet, n ast.Node) *treeNode {
	typ, kind, detail, span := describeNode(tree, n)
	label := typ + " " + kind
	if detail != "" {
		label += " " + detail
	}
	label += " (" + formatSpan(span, fs) + ")"
	if span.FromExpansion() {
		label += fmt.Sprintf(" [ctxt %d]", span.Ctxt)
	}
	node := &treeNode{label: label}
	tree.ForEachChild(n, func(c ast.Node) {
		node.children = append(node.children, buildTreeNode(tree, fs, c))
	})
	return node
}

// describeNode returns the arena, kind, a short detail (name, operator,
// literal) and the span of n.
func describeNode(tree *ast.Tree, n ast.Node) (typ, kind, detail string, span source.Span) {
	if id, ok := n.Item(); ok {
		it := tree.Items.Get(id)
		if it == nil {
			return "Item", "<nil>", "", source.Span{}
		}
		return "Item", it.Kind.String(), tree.Name(it.Name), it.Span
	}
	if id, ok := n.Stmt(); ok {
		st := tree.Stmts.Get(id)
		if st == nil {
			return "Stmt", "<nil>", "", source.Span{}
		}
		if d, ok := tree.Stmts.Expr(id); ok && d.Semi {
			detail = ";"
		}
		return "Stmt", st.Kind.String(), detail, st.Span
	}
	id, _ := n.Expr()
	e := tree.Exprs
	switch e.Kind(id) {
	case ast.ExprLit:
		d, _ := e.Lit(id)
		detail = d.Text
	case ast.ExprPath:
		d, _ := e.Path(id)
		detail = tree.PathName(d.Segments)
	case ast.ExprBinary:
		d, _ := e.Binary(id)
		detail = d.Op.String()
	case ast.ExprUnary:
		d, _ := e.Unary(id)
		detail = d.Op.String()
	case ast.ExprMethodCall:
		d, _ := e.MethodCall(id)
		detail = "." + tree.Name(d.Name)
	case ast.ExprField:
		d, _ := e.Field(id)
		detail = "." + tree.Name(d.Name)
	}
	return "Expr", e.Kind(id).String(), detail, e.Span(id)
}

// FormatASTJSON writes the same tree as JSON.
func FormatASTJSON(w io.Writer, tree *ast.Tree, fs *source.FileSet) error {
	root := ASTNodeOutput{Type: "File"}
	for _, id := range tree.Root {
		root.Children = append(root.Children, buildJSONNode(tree, fs, ast.ItemNode(id)))
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(root)
}

func buildJSONNode(tree *ast.Tree, fs *source.FileSet, n ast.Node) ASTNodeOutput {
	typ, kind, detail, span := describeNode(tree, n)
	out := ASTNodeOutput{Type: typ, Kind: kind, Detail: detail, Span: span}
	if n.Kind == ast.NodeExpr {
		if text, ok := fs.Text(span); ok && !strings.Contains(text, "\n") {
			out.Text = text
		}
	}
	tree.ForEachChild(n, func(c ast.Node) {
		out.Children = append(out.Children, buildJSONNode(tree, fs, c))
	})
	return out
}

// formatSpan formats a source.Span into a string.
// If fs is non-nil, it resolves the span to start and end positions and returns "startLine:startCol-endLine:endCol".
// If fs is nil, it returns "span(start-end)".
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}
