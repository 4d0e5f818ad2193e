package persistent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/avmetrik/Metadata-Extractor/internal/dto"
	"github.com/avmetrik/Metadata-Extractor/pkg/s3client"
	"github.com/avmetrik/Metadata-Extractor/pkg/types/errs"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type ObjectRepo struct {
	*s3client.S3Client
}

func NewObjectRepo(s3c *s3client.S3Client) *ObjectRepo {
	return &ObjectRepo{s3c}
}

func (r *ObjectRepo) Head(ctx context.Context, bucket, key string) (dto.ObjectHead, error) {
	out, err := r.Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return dto.ObjectHead{}, fmt.Errorf("ObjectRepo - Head - r.Client.HeadObject: %w", err)
	}

	return dto.ObjectHead{
		ContentType:  aws.ToString(out.ContentType),
		LastModified: aws.ToTime(out.LastModified),
		ETag:         aws.ToString(out.ETag),
	}, nil
}

func (r *ObjectRepo) Download(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	result, err := r.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("ObjectRepo - Download: %w", errs.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("ObjectRepo - Download - r.Client.GetObject: %w", err)
	}

	return result.Body, nil
}

// DownloadToFile streams the object into path, truncating any previous
// content, and reports the byte count written.
func (r *ObjectRepo) DownloadToFile(ctx context.Context, bucket, key, path string) (int64, error) {
	result, err := r.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return 0, fmt.Errorf("ObjectRepo - DownloadToFile - r.Client.GetObject: %w", err)
	}
	defer result.Body.Close()

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("ObjectRepo - DownloadToFile - os.Create: %w", err)
	}

	written, err := io.Copy(f, result.Body)
	if err != nil {
		f.Close()
		return 0, fmt.Errorf("ObjectRepo - DownloadToFile - io.Copy: %w", err)
	}

	err = f.Close()
	if err != nil {
		return 0, fmt.Errorf("ObjectRepo - DownloadToFile - f.Close: %w", err)
	}

	return written, nil
}

func (r *ObjectRepo) UploadBytes(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	_, err := r.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("ObjectRepo - UploadBytes - r.Client.PutObject: %w", err)
	}

	return nil
}

func (r *ObjectRepo) Delete(ctx context.Context, bucket, key string) error {
	_, err := r.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("ObjectRepo - Delete - r.Client.DeleteObject: %w", err)
	}

	return nil
}
