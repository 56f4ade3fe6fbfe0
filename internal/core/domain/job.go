package domain

// CompileJob is one step of a compile chain.
type CompileJob struct {
	ID              string
	WorkspaceID     string
	SourcePath      string
	SourceContent   []byte
	Options         Options
	DestinationPath string
}

// ImportContext is the scope in effect for a single compiler invocation.
// It is handed to exactly one invocation and never shared.
type ImportContext struct {
	WorkspaceID       string
	CurrentSourcePath string
	TopLevelExtension string
}

// SaveEvent is an editor save of a document.
type SaveEvent struct {
	SessionID   string `json:"sessionId"`
	WorkspaceID string `json:"workspaceId"`
	Path        string `json:"path"`
	Extension   string `json:"extension"`
	Text        string `json:"text"`
}
