package source

import (
	"context"
	"fmt"
	"io"

	"github.com/iamNilotpal/crcsum/internal/core/domain"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioOptions configures a connection to a self-hosted S3-compatible endpoint.
type MinioOptions struct {
	Endpoint  string // host:port, without scheme
	AccessKey string
	SecretKey string
	Region    string
	Secure    bool
}

// Minio reads "s3://bucket/key" targets from MinIO or any other
// S3-compatible store with a custom endpoint.
type Minio struct {
	client *minio.Client
}

func NewMinio(client *minio.Client) *Minio {
	return &Minio{client: client}
}

func NewMinioFromOptions(opts MinioOptions) (*Minio, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.Secure,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return NewMinio(client), nil
}

func (m *Minio) Open(ctx context.Context, target string) (io.ReadCloser, error) {
	bucket, key, err := ParseObjectURI(target)
	if err != nil {
		return nil, err
	}

	obj, err := m.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}

	// GetObject is lazy; Stat surfaces a missing object before the first Read.
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.Code == "NotFound" {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, target)
		}
		return nil, err
	}

	return obj, nil
}

func (m *Minio) Scheme() string {
	return "s3"
}
