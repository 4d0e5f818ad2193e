package entity

import "encoding/json"

// ProcessedBy tags every metadata artifact produced by this service.
const ProcessedBy = "metadata-extractor"

// UploadMetadata is the summary record extracted for one uploaded object.
// Field order is the artifact's field order.
type UploadMetadata struct {
	FileName         string `json:"fileName"`
	BucketName       string `json:"bucketName"`
	FileSize         int64  `json:"fileSize"`
	FileSizeReadable string `json:"fileSizeReadable"`
	ContentType      string `json:"contentType"`
	LastModified     string `json:"lastModified"`
	ETag             string `json:"etag"`
	UploadTime       string `json:"uploadTime"`
	ProcessedBy      string `json:"processedBy"`

	ImageWidth  *int   `json:"imageWidth,omitempty"`
	ImageHeight *int   `json:"imageHeight,omitempty"`
	ImageFormat string `json:"imageFormat,omitempty"`
	ImageMode   string `json:"imageMode,omitempty"`
	ImageError  string `json:"imageError,omitempty"`
}

// Document renders the artifact body stored in object storage.
func (m UploadMetadata) Document() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}
