package model

import "time"

// Document represents a stored file and its metadata, owned by exactly one
// company. FilePath is internal bookkeeping for the blob store and is never
// serialized to API clients.
type Document struct {
	ID               string    `json:"id"`
	FileName         string    `json:"file_name"`
	OriginalFileName string    `json:"original_filename"`
	FilePath         string    `json:"-"`
	FileType         string    `json:"file_type"`
	Size             int64     `json:"size"`
	UploadedAt       time.Time `json:"uploaded_at"`
	CompanyID        string    `json:"company_id"`
}

// DocumentDTO is the external representation of a document. It omits the
// storage path and carries the owning company's name for display.
type DocumentDTO struct {
	ID               string    `json:"id"`
	FileName         string    `json:"file_name"`
	OriginalFileName string    `json:"original_filename"`
	FileType         string    `json:"file_type"`
	Size             int64     `json:"size"`
	UploadedAt       time.Time `json:"uploaded_at"`
	CompanyID        string    `json:"company_id"`
	CompanyName      string    `json:"company_name"`
}
