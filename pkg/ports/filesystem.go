package ports

// FileSystem is the file access used by the stages. Paths are plain OS paths;
// the mocks package keeps them in memory.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)

	// WriteFile creates or truncates path.
	WriteFile(path string, data []byte) error

	MkdirAll(path string) error

	// Exists reports false with a nil error when path is absent.
	Exists(path string) (bool, error)

	// IsDir reports whether path exists and is a directory.
	IsDir(path string) (bool, error)

	Remove(path string) error

	// ReadDir lists the regular files in a directory, sorted by name.
	// Subdirectories are left out.
	ReadDir(path string) ([]string, error)
}
