package types

import (
	"io/fs"
	"os"
)

// File is the handle returned by FS.Open and FS.OpenFile.
type File interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
	Stat() (fs.FileInfo, error)
}

// FS is the filesystem interface required by drip
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	Open(name string) (File, error)
	OpenFile(name string, flag int, perm os.FileMode) (File, error)

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
}
