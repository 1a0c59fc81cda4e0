// Package entity defines the domain entities for the upload feature.
package entity

import "time"

// FileMetadata describes one uploaded file. A row is written once per upload
// and never updated or deleted by this application.
type FileMetadata struct {
	Filename         string    `bson:"filename" json:"filename"`
	OriginalFilename string    `bson:"original_filename" json:"original_filename"`
	Size             int64     `bson:"size" json:"size"`
	Type             string    `bson:"type" json:"type"`
	UploadDate       time.Time `bson:"upload_date" json:"upload_date"`
	Filepath         string    `bson:"filepath" json:"filepath"`
	Status           string    `bson:"status" json:"status"`
}

// Preview is a bounded sample of a file's parsed content. Headers may be nil
// when the source carries none (headerless JSON arrays, empty CSV files).
// Row shape depends on the source: []string for CSV rows and key/value
// tables, map[string]any for JSON record arrays.
type Preview struct {
	Headers []string
	Rows    []any
}
