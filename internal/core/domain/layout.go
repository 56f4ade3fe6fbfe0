package domain

import "path/filepath"

const (
	// StateDirName is the name of the local state directory inside a workspace root.
	StateDirName = ".sassline"

	// RevisionsDirName holds prior versions of documents saved with revisioning.
	RevisionsDirName = "revisions"

	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "sassline.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// RevisionsPath returns the revisions directory below a workspace root.
func RevisionsPath(root string) string {
	return filepath.Join(root, StateDirName, RevisionsDirName)
}
