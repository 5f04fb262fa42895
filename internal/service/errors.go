package service

import "errors"

// Service errors form the taxonomy the HTTP layer maps to status codes.
// Failures wrap one of these sentinels with %w and attach the underlying
// cause, so callers can classify with errors.Is without losing diagnostics.
var (
	ErrIDRequired   = errors.New("id is required")
	ErrReaderNil    = errors.New("reader is nil")
	ErrNameRequired = errors.New("company name is required")

	ErrCompanyNotFound     = errors.New("company not found")
	ErrDocumentNotFound    = errors.New("document not found")
	ErrCompanyHasDocuments = errors.New("company still has documents")

	ErrInvalidFileType  = errors.New("file type not allowed")
	ErrFileSizeExceeded = errors.New("file size exceeds limit")

	ErrUploadDir   = errors.New("upload directory unavailable")
	ErrFileUpload  = errors.New("file upload failed")
	ErrDatabase    = errors.New("database error")
	ErrFileDelete  = errors.New("file delete failed")
	ErrFileMissing = errors.New("backing file not found")
	ErrFileOpen    = errors.New("file open failed")
)
