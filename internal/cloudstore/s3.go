package cloudstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const presignExpiry = 4 * time.Hour

// S3Store is a FileStore backed by an S3-compatible bucket.
type S3Store struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewS3 connects to an S3-compatible endpoint. Object keys below prefix are
// exposed as paths starting with "/".
func NewS3(endpoint, bucket, accessKey, secretKey string, useSSL bool, prefix string) (*S3Store, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}
	return &S3Store{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}, nil
}

// Name implements FileStore.
func (s *S3Store) Name() string { return "s3" }

func (s *S3Store) key(p string) string {
	p = strings.TrimPrefix(p, "/")
	if s.prefix == "" {
		return p
	}
	return s.prefix + "/" + p
}

func (s *S3Store) pathOf(key string) string {
	if s.prefix != "" {
		key = strings.TrimPrefix(key, s.prefix+"/")
	}
	return "/" + key
}

func (s *S3Store) file(info minio.ObjectInfo) File {
	p := s.pathOf(info.Key)
	return File{
		// Keys are unique within a bucket; ETags are not.
		ID:        "s3:" + info.Key,
		Name:      path.Base(info.Key),
		Path:      p,
		PathLower: strings.ToLower(p),
		Size:      info.Size,
		Modified:  info.LastModified,
	}
}

// ListPDFs implements FileStore.
func (s *S3Store) ListPDFs(ctx context.Context) ([]File, error) {
	opts := minio.ListObjectsOptions{Recursive: true}
	if s.prefix != "" {
		opts.Prefix = s.prefix + "/"
	}

	var files []File
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", obj.Err)
		}
		if isPDF(obj.Key) {
			files = append(files, s.file(obj))
		}
	}
	return files, nil
}

// Download implements FileStore.
func (s *S3Store) Download(ctx context.Context, p string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key(p), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", p, mapS3Error(err))
	}
	defer func() {
		_ = obj.Close()
	}()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p, mapS3Error(err))
	}
	return data, nil
}

// TemporaryLink implements FileStore with a presigned GET URL.
func (s *S3Store) TemporaryLink(ctx context.Context, p string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, s.key(p), presignExpiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", p, err)
	}
	return u.String(), nil
}

// Move implements FileStore as copy then delete. S3 has no atomic rename.
func (s *S3Store) Move(ctx context.Context, from, to string) (File, error) {
	dstKey := s.key(to)
	if _, err := s.client.StatObject(ctx, s.bucket, dstKey, minio.StatObjectOptions{}); err == nil {
		return File{}, ErrConflict
	} else if !errors.Is(mapS3Error(err), ErrNotFound) {
		return File{}, fmt.Errorf("failed to stat %s: %w", to, err)
	}

	_, err := s.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: s.bucket, Object: dstKey},
		minio.CopySrcOptions{Bucket: s.bucket, Object: s.key(from)},
	)
	if err != nil {
		return File{}, fmt.Errorf("failed to copy %s: %w", from, mapS3Error(err))
	}
	if err := s.client.RemoveObject(ctx, s.bucket, s.key(from), minio.RemoveObjectOptions{}); err != nil {
		return File{}, fmt.Errorf("failed to remove %s: %w", from, err)
	}

	info, err := s.client.StatObject(ctx, s.bucket, dstKey, minio.StatObjectOptions{})
	if err != nil {
		return File{}, fmt.Errorf("failed to stat %s: %w", to, err)
	}
	return s.file(info), nil
}

func mapS3Error(err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.StatusCode == http.StatusNotFound || resp.Code == "NoSuchKey" {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}
