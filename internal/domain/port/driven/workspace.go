package driven

// Workspace defines the driven port for the local directory a command reads
// inputs from and writes its artifacts to. Names are relative to the root.
type Workspace interface {
	// Path returns the full path of name inside the workspace.
	Path(name string) string
	WriteText(name, content string) error
	ReadText(name string) (string, error)
	Exists(name string) bool
	// Move relocates name into subdir, creating subdir when missing, and
	// returns the new workspace-relative name.
	Move(name, subdir string) (string, error)
	// FindOne returns the single regular file whose name ends in suffix.
	// Zero or several matches is an error.
	FindOne(suffix string) (string, error)
}
