package parser

import (
	"slices"
	"testing"
	"time"

	"go.followtheprocess.codes/test"

	"rillint/internal/diag"
)

// Stray closing tokens inside item and expression lists must be skipped,
// not retried forever.
func TestMalformedListsTerminate(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "struct fields", src: "struct S{)B{}E"},
		{name: "enum variants", src: "enum E { A, ) B }"},
		{name: "variant fields", src: "enum E { A { ] } }"},
		{name: "match arms", src: "fn f(x: i32) { match x { ) } }"},
		{name: "struct literal", src: "fn f() { let s = S { ) }; }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			done := make(chan *diag.Bag, 1)
			go func() {
				_, _, bag := parseSource(t, tt.src)
				done <- bag
			}()
			select {
			case bag := <-done:
				test.True(t, bag.HasErrors(), test.Context("diagnostics: %s", diagnosticsSummary(bag)))
			case <-time.After(5 * time.Second):
				t.Fatalf("parsing %q did not finish", tt.src)
			}
		})
	}
}

func TestSkippedFieldKeepsRest(t *testing.T) {
	tree, _, bag := parseSource(t, "struct S { ), b: i32 }")
	test.True(t, bag.HasErrors())
	test.Equal(t, len(tree.Root), 1)
	st, ok := tree.Items.Struct(tree.Root[0])
	test.True(t, ok)
	test.Equal(t, len(st.Fields), 1)
	test.Equal(t, tree.Name(st.Fields[0].Name), "b")
}

func TestRunawayExpansionStops(t *testing.T) {
	done := make(chan *diag.Bag, 1)
	go func() {
		_, _, bag := parseSource(t, "macro m($a) { m!($a $a) } m!(1)")
		done <- bag
	}()
	select {
	case bag := <-done:
		limited := slices.ContainsFunc(bag.Items(), func(d diag.Diagnostic) bool { return d.Code == diag.ExpRecursionLimit })
		test.True(t, limited, test.Context("diagnostics: %s", diagnosticsSummary(bag)))
	case <-time.After(5 * time.Second):
		t.Fatal("expansion did not stop")
	}
}
