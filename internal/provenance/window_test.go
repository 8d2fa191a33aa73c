package provenance_test

import (
	"testing"

	"go.followtheprocess.codes/test"

	"rillint/internal/provenance"
)

func TestElseGap(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		isBlock bool
		want    bool
	}{
		{"same line", " else ", true, false},
		{"same line if", " else ", false, false},
		{"else on next line", "\nelse ", true, false},
		{"blank line before else", "\n\nelse ", true, true},
		{"brace on next line", " else\n", true, true},
		{"allman braces", "\nelse\n", true, false},
		{"else if on next line", " else\n", false, true},
		{"blank line after else", " else\n\n", true, true},
		{"line comment before else", " // c\nelse ", true, false},
		{"line comment on own line", "\n// c\nelse ", true, false},
		{"line comment after else", " else // c\n", true, true},
		{"block comment inline", " /* c */ else ", true, false},
		{"block comment on own line", "\n/* c */\nelse ", true, false},
		{"block comment glued to else", "\n/* c */else ", true, true},
		{"multiline block comment", " /* a\nb */ else ", true, true},
		{"block comment splits else if", " else\n/* c */\n", false, false},
		{"block comment then blank", " else\n/* c */\n\n", false, true},
		{"stray token", " ; else ", true, false},
		{"no else", " ", true, false},
		{"token after else", " else x ", true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := provenance.ElseGap(tc.src, tc.isBlock)
			test.Equal(t, got, tc.want, test.Context("ElseGap(%q, %v)", tc.src, tc.isBlock))
		})
	}
}

func TestSameLineGap(t *testing.T) {
	test.True(t, provenance.SameLineGap(""))
	test.True(t, provenance.SameLineGap(" \t "))
	test.True(t, !provenance.SameLineGap(" \n "))
	test.True(t, !provenance.SameLineGap(" x "))
}

func TestOpGlued(t *testing.T) {
	cases := []struct {
		src, first, second string
		want               bool
	}{
		{"=- 35", "=", "-", true},
		{"=! x", "=", "!", true},
		{"-= 35", "=", "-", false},
		{"=-35", "=", "-", false},
		{"= - 35", "=", "-", false},
		{"=-", "=", "-", false},
		{"-- x", "-", "-", true},
	}
	for _, tc := range cases {
		test.Equal(t, provenance.OpGlued(tc.src, tc.first, tc.second), tc.want, test.Context("%q", tc.src))
	}
}

func TestUnaryLikeBinary(t *testing.T) {
	cases := []struct {
		src   string
		start int
		op    string
		want  bool
	}{
		{"a -b", 2, "-", true},
		{"a - b", 2, "-", false},
		{"a-b", 1, "-", false},
		{"a -/* c */b", 2, "-", false},
		{"a\n&b", 2, "&", true},
		{"a *", 2, "*", false},
		{"-b", 0, "-", false},
		{"a +b", 2, "-", false},
	}
	for _, tc := range cases {
		got := provenance.UnaryLikeBinary(tc.src, tc.start, tc.op)
		test.Equal(t, got, tc.want, test.Context("UnaryLikeBinary(%q, %d, %q)", tc.src, tc.start, tc.op))
	}
}
