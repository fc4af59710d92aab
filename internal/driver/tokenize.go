package driver

import (
	"fmt"

	"cbridge/internal/diag"
	"cbridge/internal/lexer"
	"cbridge/internal/source"
	"cbridge/internal/token"
)

// TokenizeResult holds the raw token stream of one file.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes path without parsing it. maxDiagnostics <= 0 is unlimited.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)

	lx := lexer.New(file, lexer.Options{
		Reporter:        diag.BagReporter{Bag: bag},
		KeepLineMarkers: true,
	})
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
