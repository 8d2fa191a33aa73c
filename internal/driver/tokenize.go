package driver

import (
	"slices"

	"rillint/internal/diag"
	"rillint/internal/lexer"
	"rillint/internal/scanner"
	"rillint/internal/source"
	"rillint/internal/token"
)

// TokenizeOptions selects which token view Tokenize builds.
type TokenizeOptions struct {
	MaxDiagnostics int
	// Raw runs the lossless scanner instead of the lexer.
	Raw bool
}

// TokenizeResult holds one view of a file: lexer tokens with leading trivia,
// or the raw scanner stream when Raw was requested.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Raw     []scanner.Token
	Bag     *diag.Bag
}

// Tokenize loads path and lexes it. Macro calls are left as written.
func Tokenize(path string, opts TokenizeOptions) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	res := &TokenizeResult{
		FileSet: fs,
		File:    fs.Get(id),
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
	if opts.Raw {
		// сканер не ошибается, диагностик не будет
		res.Raw = slices.Collect(scanner.TokensWithOffsets(string(res.File.Content)))
		return res, nil
	}
	lx := lexer.New(res.File, lexer.Options{Reporter: diag.BagReporter{Bag: res.Bag}})
	res.Tokens = lx.All()
	return res, nil
}
