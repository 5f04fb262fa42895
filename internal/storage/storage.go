package storage

import (
	"context"
	"errors"
	"io"
)

// Package storage contains blob store abstractions for uploaded file bytes.
// The default implementation writes to a local directory; an S3-compatible
// implementation (MinIO) can be selected via configuration.

// ErrCreateDir reports a failure to create the upload root. Callers
// distinguish it from write failures when classifying upload errors.
var ErrCreateDir = errors.New("create upload directory")

// ObjectInfo contains basic information about a stored blob.
type ObjectInfo struct {
	// Path locates the blob for later Open/Remove/Exists calls. For the disk
	// backend it is an absolute filesystem path; for object stores it is the
	// object key.
	Path string
	Size int64
}

// Storage is the blob store used for document bytes. Implementations must be
// safe for concurrent use.
type Storage interface {
	// Save writes the reader's content under the given name and returns the
	// resulting blob info. The upload root is created if missing.
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (ObjectInfo, error)
	// Open returns the blob's content as a streaming reader.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	// Remove deletes the blob. Removing a blob that does not exist is not an
	// error; only I/O failures are reported.
	Remove(ctx context.Context, path string) error
	// Exists reports whether the blob is present.
	Exists(ctx context.Context, path string) (bool, error)
}
