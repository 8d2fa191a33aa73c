package driver

import (
	"fortio.org/safecast"

	"rillint/internal/ast"
	"rillint/internal/diag"
	"rillint/internal/expand"
	"rillint/internal/parser"
	"rillint/internal/source"
)

type ParseResult struct {
	FileSet    *source.FileSet
	File       *source.File
	Tree       *ast.Tree
	Expansions []expand.Expansion
	Bag        *diag.Bag
}

// Parse lexes, expands and parses one file without linting it.
func Parse(filePath string, maxDiagnostics int) (*ParseResult, error) {
	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return nil, err
	}

	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	result := parser.ParseFile(fs, file, parser.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
	})
	bag.Sort()

	return &ParseResult{
		FileSet:    fs,
		File:       file,
		Tree:       result.Tree,
		Expansions: result.Expander.Expansions(),
		Bag:        bag,
	}, nil
}
