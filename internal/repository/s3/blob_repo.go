package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"go-onboarding-wizard/internal/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ObjectAPI is the subset of the S3 client used by the blob store
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

const filenameMetadataKey = "filename"

type blobRepo struct {
	client ObjectAPI
	bucket string
	prefix string
}

// NewBlobRepository stores blobs as objects under prefix/key in bucket
func NewBlobRepository(client ObjectAPI, bucket, prefix string) domain.BlobStore {
	return &blobRepo{client: client, bucket: bucket, prefix: prefix}
}

func (r *blobRepo) objectKey(key string) string {
	return path.Join(r.prefix, key)
}

func (r *blobRepo) Save(ctx context.Context, key string, blob domain.Blob) error {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(r.objectKey(key)),
		Body:          bytes.NewReader(blob.Data),
		ContentLength: aws.Int64(int64(len(blob.Data))),
		ContentType:   aws.String(blob.ContentType),
		Metadata:      map[string]string{filenameMetadataKey: blob.Filename},
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", key, err)
	}
	return nil
}

func (r *blobRepo) Load(ctx context.Context, key string) (*domain.Blob, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.objectKey(key)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}

	blob := &domain.Blob{
		Data:        data,
		ContentType: aws.ToString(out.ContentType),
		Filename:    out.Metadata[filenameMetadataKey],
		Size:        len(data),
		UpdatedAt:   aws.ToTime(out.LastModified),
	}
	if blob.UpdatedAt.IsZero() {
		blob.UpdatedAt = time.Now()
	}
	return blob, nil
}

// Remove succeeds for absent keys; S3 DeleteObject is idempotent
func (r *blobRepo) Remove(ctx context.Context, key string) error {
	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.objectKey(key)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}
