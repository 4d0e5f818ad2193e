package entity

import (
	"strings"
	"testing"
)

func TestDocumentFieldOrder(t *testing.T) {
	width, height := 800, 600
	m := UploadMetadata{
		FileName:         "pics/photo.png",
		BucketName:       "uploads",
		FileSize:         4096,
		FileSizeReadable: "4.00 KB",
		ContentType:      "image/png",
		LastModified:     "2024-05-14T10:30:00Z",
		ETag:             `"abc123"`,
		UploadTime:       "2024-05-14T10:30:05Z",
		ProcessedBy:      ProcessedBy,
		ImageWidth:       &width,
		ImageHeight:      &height,
		ImageFormat:      "PNG",
		ImageMode:        "NRGBA",
	}

	doc, err := m.Document()
	if err != nil {
		t.Fatalf("Document returned error: %v", err)
	}

	want := `{
  "fileName": "pics/photo.png",
  "bucketName": "uploads",
  "fileSize": 4096,
  "fileSizeReadable": "4.00 KB",
  "contentType": "image/png",
  "lastModified": "2024-05-14T10:30:00Z",
  "etag": "\"abc123\"",
  "uploadTime": "2024-05-14T10:30:05Z",
  "processedBy": "metadata-extractor",
  "imageWidth": 800,
  "imageHeight": 600,
  "imageFormat": "PNG",
  "imageMode": "NRGBA"
}`

	if string(doc) != want {
		t.Fatalf("unexpected document:\n%s\nwant:\n%s", doc, want)
	}
}

func TestDocumentOmitsEmptyImageFields(t *testing.T) {
	m := UploadMetadata{
		FileName:         "docs/report.pdf",
		BucketName:       "uploads",
		FileSize:         2048,
		FileSizeReadable: "2.00 KB",
		ContentType:      "application/pdf",
		LastModified:     "2024-05-14T10:30:00Z",
		ETag:             `"abc123"`,
		UploadTime:       "2024-05-14T10:30:05Z",
		ProcessedBy:      ProcessedBy,
	}

	doc, err := m.Document()
	if err != nil {
		t.Fatalf("Document returned error: %v", err)
	}

	for _, field := range []string{"imageWidth", "imageHeight", "imageFormat", "imageMode", "imageError"} {
		if strings.Contains(string(doc), field) {
			t.Fatalf("field %s must be omitted when empty:\n%s", field, doc)
		}
	}
}

func TestDocumentKeepsImageError(t *testing.T) {
	m := UploadMetadata{
		FileName:   "broken.jpg",
		ImageError: "image: unknown format",
	}

	doc, err := m.Document()
	if err != nil {
		t.Fatalf("Document returned error: %v", err)
	}

	if !strings.Contains(string(doc), `"imageError": "image: unknown format"`) {
		t.Fatalf("imageError must be rendered:\n%s", doc)
	}
}
