package fuzztests

import (
	"path/filepath"
	"testing"

	"go.followtheprocess.codes/txtar"
)

const (
	maxFuzzInput = 1 << 16  // 64 KiB
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
)

var builtinSeeds = []string{
	"",
	"fn main() {}\n",
	"fn f(mut x: i32) {\n    x =- 1;\n    x = -1;\n}\n",
	"macro add($a, $b) { $a + $b }\nfn f() -> i32 { add!(1, 2) }\n",
	"macro r() { r!() } r!()",
	"fn f() { if a {} else if b {}\nelse {} }",
	"struct S {}\nenum E { A(), B {} }\n",
	"fn f() { let v = [1 -2, 3\n-4]; }",
	"fn f(a: bool) { if a == true {} }",
	"r#\"raw\"# 'a' 'label: b\"str\\\"\" /* /* nested */ */ // tail",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addGoldenSeeds(f)
}

// addGoldenSeeds adds the sources of the lint golden archives.
func addGoldenSeeds(f *testing.F) {
	files, err := filepath.Glob(filepath.Join("..", "lint", "checks", "testdata", "*.txtar"))
	if err != nil {
		return
	}
	for _, file := range files {
		archive, err := txtar.ParseFile(file)
		if err != nil {
			continue
		}
		if src, ok := archive.Read("src.rl"); ok {
			f.Add(clampSeed([]byte(src)))
		}
	}
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
