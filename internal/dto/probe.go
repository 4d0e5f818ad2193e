package dto

import "time"

// ObjectHead is the subset of object head metadata the extractor records.
type ObjectHead struct {
	ContentType  string
	LastModified time.Time
	ETag         string
}

// ProbeResult carries what the inspector reads from an image header.
type ProbeResult struct {
	Width  int
	Height int
	Format string
	Mode   string
}
