package snippet_test

import (
	"slices"
	"testing"

	"go.followtheprocess.codes/test"

	"rillint/internal/snippet"
)

func TestReindentSingleLine(t *testing.T) {
	for _, in := range []string{"", "...", "    ...", "\t...", "\t\t..."} {
		want := "..."
		if in == "" {
			want = ""
		}
		test.Equal(t, snippet.Reindent(in, false, 0), want, test.Context("Reindent(%q)", in))
	}
}

func TestReindentBlock(t *testing.T) {
	in := "    if x {\n            y\n        } else {\n            z\n        }"
	want := "if x {\n        y\n    } else {\n        z\n    }"
	test.Equal(t, snippet.Reindent(in, false, 0), want)

	in = "    if x {\n        \ty\n        } else {\n        \tz\n        }"
	want = "if x {\n    \ty\n    } else {\n    \tz\n    }"
	test.Equal(t, snippet.Reindent(in, false, 0), want)
}

func TestReindentKeepsEmptyLines(t *testing.T) {
	in := "    if x {\n            y\n\n        } else {\n            z\n        }"
	want := "if x {\n        y\n\n    } else {\n        z\n    }"
	test.Equal(t, snippet.Reindent(in, false, 0), want)
}

func TestReindentDeeper(t *testing.T) {
	in := "if x {\n        y\n    } else {\n        z\n    }"
	want := "if x {\n            y\n        } else {\n            z\n        }"
	test.Equal(t, snippet.Reindent(in, true, 8), want)
}

func TestReindentIsIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"x",
		"    if x {\n            y\n        }",
		"\tmatch v {\n\t\t1 => a,\n\t\t_ => b,\n\t}",
		"{\n  \t mixed\n   }",
		"a\r\nb\r\n",
	}
	for _, in := range inputs {
		for _, indent := range []int{0, 4} {
			for _, ignoreFirst := range []bool{false, true} {
				once := snippet.Reindent(in, ignoreFirst, indent)
				twice := snippet.Reindent(once, ignoreFirst, indent)
				test.Equal(t, twice, once, test.Context("Reindent(%q, %v, %d)", in, ignoreFirst, indent))
			}
		}
	}
}

func TestWithoutBlockComments(t *testing.T) {
	cases := []struct {
		in   []string
		want []string
	}{
		{[]string{"/*", "", "*/"}, nil},
		{[]string{"", "/*", "", "*/", "#[crate_type = \"lib\"]", "/*", "", "*/", ""}, []string{"", "#[crate_type = \"lib\"]", ""}},
		{[]string{"/* rill", "", "*/"}, nil},
		{[]string{"/* one-line comment */"}, nil},
		{[]string{"/* nested", "/* multi-line", "comment", "*/", "test", "*/"}, nil},
		{[]string{"/* nested /* inline /* comment */ test */ */"}, nil},
		{[]string{"foo", "bar", "baz"}, []string{"foo", "bar", "baz"}},
	}
	for _, tc := range cases {
		got := snippet.WithoutBlockComments(tc.in)
		test.EqualFunc(t, got, tc.want, slices.Equal, test.Context("%q", tc.in))
	}
}

func TestPositionBeforeRarrow(t *testing.T) {
	cases := []struct {
		src  string
		want int
		ok   bool
	}{
		{"fn into(self) -> () {}", 13, true},
		{"fn into2(self)-> () {}", 14, true},
		{"fn into3(self)   -> () {}", 14, true},
		{"fn f() {}", 0, false},
	}
	for _, tc := range cases {
		got, ok := snippet.PositionBeforeRarrow(tc.src)
		test.Equal(t, ok, tc.ok, test.Context("%q", tc.src))
		test.Equal(t, got, tc.want, test.Context("%q", tc.src))
	}
}
