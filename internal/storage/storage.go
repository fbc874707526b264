package storage

// Package storage contains the ephemeral upload store abstraction. Payloads
// live on process-local disk with no durability guarantee; the hosting
// platform may reclaim them at any time.

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound signals that no stored file exists under the requested name.
var ErrNotFound = errors.New("file not found")

// SavedFile describes a payload written to the upload directory.
type SavedFile struct {
	Name string // generated name: <unix-millis>-<original filename>
	Path string // absolute location on local disk
	Size int64
}

// FileStore is the local file storage used for uploaded payloads.
type FileStore interface {
	// Save streams the reader to disk under a timestamp-prefixed name derived
	// from originalName. Two saves of the same original name within one
	// millisecond collide and overwrite; callers accept that.
	Save(ctx context.Context, originalName string, r io.Reader) (SavedFile, error)

	// Resolve maps a stored file name to its on-disk path, or ErrNotFound.
	Resolve(name string) (string, error)

	// Remove deletes a stored payload by path. Removing a file that is
	// already gone is not an error.
	Remove(path string) error
}
