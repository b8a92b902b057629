package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// DocumentService stores receiving documents (delivery notes, packing
// slips) attached to deliveries and stock requests.
type DocumentService interface {
	Upload(ctx context.Context, itemID uuid.UUID, filename, contentType string, reader io.Reader, size int64) (string, error)
	GetPresignedURL(objectName string, expiry time.Duration) (string, error)
	Delete(ctx context.Context, objectName string) error
	EnsureBucketExists(ctx context.Context) error
}

type documentService struct {
	client *minio.Client
	bucket string
}

func NewDocumentService(endpoint, accessKey, secretKey, bucket string, useSSL bool) (DocumentService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &documentService{client: client, bucket: bucket}, nil
}

// Upload stores the document under a per-item prefix and returns the object
// name for later retrieval.
func (d *documentService) Upload(ctx context.Context, itemID uuid.UUID, filename, contentType string, reader io.Reader, size int64) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	objectName := fmt.Sprintf("%s/%s-%s", itemID.String(), uuid.New().String(), filename)

	_, err := d.client.PutObject(ctx, d.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return objectName, nil
}

func (d *documentService) GetPresignedURL(objectName string, expiry time.Duration) (string, error) {
	url, err := d.client.PresignedGetObject(context.Background(), d.bucket, objectName, expiry, nil)
	if err != nil {
		return "", err
	}
	return url.String(), nil
}

func (d *documentService) Delete(ctx context.Context, objectName string) error {
	return d.client.RemoveObject(ctx, d.bucket, objectName, minio.RemoveObjectOptions{})
}

func (d *documentService) EnsureBucketExists(ctx context.Context) error {
	found, err := d.client.BucketExists(ctx, d.bucket)
	if err != nil {
		return err
	}
	if !found {
		return d.client.MakeBucket(ctx, d.bucket, minio.MakeBucketOptions{})
	}
	return nil
}
