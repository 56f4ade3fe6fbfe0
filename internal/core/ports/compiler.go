package ports

import "context"

// ImportRequest is what the compiler asks for when it meets an import.
type ImportRequest struct {
	// Current is the specifier as written in the source, possibly without extension.
	Current string
}

// ImportResult is the resolved location and content of an import.
type ImportResult struct {
	Path    string
	Content []byte
}

// Importer resolves imports for a single compiler invocation.
//
//go:generate mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type Importer interface {
	Import(ctx context.Context, req ImportRequest) (*ImportResult, error)
}

// CompileRequest is one compiler invocation.
type CompileRequest struct {
	// Path is the workspace path of the source; used for diagnostics and staging.
	Path string
	// Source is the document text.
	Source []byte
	// Importer is bound to this invocation only.
	Importer Importer
}

// CompileResult is what the compiler reports.
type CompileResult struct {
	// Status is zero on success.
	Status int
	// Formatted is a human readable error message when Status is non-zero.
	Formatted string
	// Text is the compiled style sheet.
	Text []byte
}

// Compiler turns a source document into a style sheet.
type Compiler interface {
	// Compile runs the compiler. A non-zero Status is not an error; err is
	// reserved for failures to run the compiler at all.
	Compile(ctx context.Context, req CompileRequest) (*CompileResult, error)
}
