package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigMissing is returned when a source document carries no usable out directive.
	ErrConfigMissing = zerr.New("no out directive")

	// ErrPathDegenerate is returned when a resolved destination is the source path itself.
	ErrPathDegenerate = zerr.New("destination resolves to the source path")

	// ErrPathOutOfBounds is returned when a parent segment climbs above the workspace root.
	ErrPathOutOfBounds = zerr.New("path escapes the workspace root")

	// ErrCycleDetected is returned when a compile chain revisits a document.
	ErrCycleDetected = zerr.New("cycle detected in compile chain")

	// ErrCompileFailed is returned when the compiler reports a non-zero status.
	ErrCompileFailed = zerr.New("style sheet compilation failed")

	// ErrCompilerUnavailable is returned when the compiler process cannot be run.
	ErrCompilerUnavailable = zerr.New("failed to run style sheet compiler")

	// ErrImportFailed is returned when an import specifier cannot be resolved.
	ErrImportFailed = zerr.New("failed to resolve import")

	// ErrStoreFetchFailed is returned when the workspace store cannot deliver a document.
	ErrStoreFetchFailed = zerr.New("failed to fetch document from workspace store")

	// ErrStoreSaveFailed is returned when the workspace store rejects a write.
	ErrStoreSaveFailed = zerr.New("failed to save document to workspace store")

	// ErrDocumentNotFound is returned by stores when the requested path does not exist.
	ErrDocumentNotFound = zerr.New("document not found")

	// ErrUnknownWorkspace is returned by stores when the workspace identifier is not mapped.
	ErrUnknownWorkspace = zerr.New("unknown workspace")

	// ErrStoreClosed is returned when a store is used after its transport was closed.
	ErrStoreClosed = zerr.New("workspace store is closed")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when a config value is out of range.
	ErrConfigInvalid = zerr.New("invalid configuration value")

	// ErrSweepStartFailed is returned when the eviction sweep cannot be scheduled.
	ErrSweepStartFailed = zerr.New("failed to schedule cache eviction sweep")

	// ErrWatcherFailed is returned when the save-event source cannot start.
	ErrWatcherFailed = zerr.New("failed to start save-event source")

	// ErrTransportFailed is returned when the message bus connection cannot be established.
	ErrTransportFailed = zerr.New("failed to connect to message bus")
)
