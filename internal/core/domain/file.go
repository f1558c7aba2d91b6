package domain

import "time"

// DataFile is the metadata of a tabular file served by the content
// service.
type DataFile struct {
	// ID is the file's identifier in the content service.
	ID string

	// Name is the original file name.
	Name string

	// Size is the file size in bytes.
	Size int64

	// CreatedAt is when the file was uploaded.
	CreatedAt time.Time
}
