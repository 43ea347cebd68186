// Package compiler turns theme entry files into CSS.
//
// The Compiler interface is the boundary to the external Sass compiler;
// Builder applies it to theme folders, writes the compiled files and keeps
// per-theme failures from aborting a batch.
package compiler

import (
	"context"
	"errors"
	"fmt"
)

// ErrMissingEntry is returned when a theme has no entry file. It is a skip,
// not a failure of the batch.
var ErrMissingEntry = errors.New("entry file not found")

// Request is a single compilation.
type Request struct {
	EntryPath    string   // Absolute or working-directory-relative entry file
	IncludePaths []string // Extra load paths for @import/@use
	SourceMap    bool     // Ask the compiler for a source map
}

// Result is the compiler output.
type Result struct {
	CSS       string
	SourceMap string // Empty unless requested and produced
}

// Compiler compiles one stylesheet.
type Compiler interface {
	Compile(ctx context.Context, req Request) (Result, error)
}

// CompileError reports a compiler rejection for one theme.
type CompileError struct {
	Theme   string
	Message string
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile %s: %s", e.Theme, e.Message)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}
