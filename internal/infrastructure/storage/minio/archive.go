// Package minio provides the optional result archive: full pipeline results
// stored as JSON objects in an S3-compatible bucket under results/<id>.json.
package minio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/arthrokinetix/akx-engine/internal/config"
	"github.com/arthrokinetix/akx-engine/internal/infrastructure/monitoring/logging"
	"github.com/arthrokinetix/akx-engine/internal/pipeline"
	apperrors "github.com/arthrokinetix/akx-engine/pkg/errors"
)

const (
	resultPrefix = "results/"
	contentType  = "application/json"
)

// NewClient opens a MinIO client for the configured endpoint.
func NewClient(cfg config.StorageConfig) (*minio.Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeStorageError, "create storage client")
	}
	return client, nil
}

// EnsureBucket creates the configured bucket when it does not exist yet.
func EnsureBucket(ctx context.Context, client *minio.Client, cfg config.StorageConfig) error {
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeStorageError, "check bucket")
	}
	if exists {
		return nil
	}
	if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeStorageError, "create bucket")
	}
	return nil
}

// objectStore is the subset of minio.Client the archive uses.
type objectStore interface {
	PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucket, object string, opts minio.GetObjectOptions) (*minio.Object, error)
}

// ResultArchive stores pipeline results as JSON objects.  It satisfies the
// pipeline's ResultArchive seam.
type ResultArchive struct {
	store  objectStore
	bucket string
	logger logging.Logger
}

// NewResultArchive constructs an archive over an open client.
func NewResultArchive(store objectStore, bucket string, logger logging.Logger) *ResultArchive {
	return &ResultArchive{store: store, bucket: bucket, logger: logging.OrNop(logger)}
}

// ObjectName returns the object key for a signature id.
func ObjectName(id string) string {
	return resultPrefix + id + ".json"
}

// Put stores one result under its signature id.
func (a *ResultArchive) Put(ctx context.Context, id string, result pipeline.Result) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.New(apperrors.ErrCodeBadRequest, "archive id is empty")
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSerialization, "marshal result")
	}

	_, err = a.store.PutObject(ctx, a.bucket, ObjectName(id),
		bytes.NewReader(raw), int64(len(raw)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeStorageError, fmt.Sprintf("store %s", ObjectName(id)))
	}

	a.logger.Debug("result archived",
		logging.String("id", id),
		logging.Int("bytes", len(raw)))
	return nil
}

// Get loads one archived result.  A missing object yields
// ErrCodeArchiveMiss.
func (a *ResultArchive) Get(ctx context.Context, id string) (pipeline.Result, error) {
	obj, err := a.store.GetObject(ctx, a.bucket, ObjectName(id), minio.GetObjectOptions{})
	if err != nil {
		return pipeline.Result{}, apperrors.Wrap(err, apperrors.ErrCodeStorageError, "open archived result")
	}
	defer obj.Close()

	raw, err := io.ReadAll(obj)
	if err != nil {
		if isNotFound(err) {
			return pipeline.Result{}, apperrors.Newf(apperrors.ErrCodeArchiveMiss, "result %s not archived", id)
		}
		return pipeline.Result{}, apperrors.Wrap(err, apperrors.ErrCodeStorageError, "read archived result")
	}

	var result pipeline.Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return pipeline.Result{}, apperrors.Wrap(err, apperrors.ErrCodeSerialization, "decode archived result")
	}
	return result, nil
}

// isNotFound recognizes the storage service's missing-key error.
func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.StatusCode == 404
}
