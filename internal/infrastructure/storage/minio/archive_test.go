package minio

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthrokinetix/akx-engine/internal/pipeline"
	apperrors "github.com/arthrokinetix/akx-engine/pkg/errors"
	"github.com/arthrokinetix/akx-engine/pkg/types/emotion"
)

type fakeStore struct {
	bucket string
	object string
	data   []byte
	putErr error
}

func (f *fakeStore) PutObject(_ context.Context, bucket, object string, reader io.Reader, _ int64, _ minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	f.bucket = bucket
	f.object = object
	data, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.data = data
	return minio.UploadInfo{Bucket: bucket, Key: object, Size: int64(len(data))}, nil
}

func (f *fakeStore) GetObject(context.Context, string, string, minio.GetObjectOptions) (*minio.Object, error) {
	return nil, assert.AnError
}

func TestObjectName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "results/AKX-2024-0307-ab12.json", ObjectName("AKX-2024-0307-ab12"))
}

func TestResultArchivePut(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	archive := NewResultArchive(store, "akx-results", nil)

	result := pipeline.Result{
		Profile: emotion.EmotionalProfile{
			DominantEmotion: emotion.HealingPotential,
			Subspecialty:    emotion.SportsMedicine,
		},
		Signature: emotion.EmotionalSignature{ID: "AKX-2024-0307-ab12", RarityScore: 0.3},
	}
	require.NoError(t, archive.Put(context.Background(), result.Signature.ID, result))

	assert.Equal(t, "akx-results", store.bucket)
	assert.Equal(t, "results/AKX-2024-0307-ab12.json", store.object)

	var stored pipeline.Result
	require.NoError(t, json.Unmarshal(store.data, &stored))
	assert.Equal(t, result.Signature.ID, stored.Signature.ID)
	assert.Equal(t, emotion.SportsMedicine, stored.Profile.Subspecialty)
}

func TestResultArchivePut_EmptyID(t *testing.T) {
	t.Parallel()

	archive := NewResultArchive(&fakeStore{}, "akx-results", nil)
	err := archive.Put(context.Background(), "  ", pipeline.Result{})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeBadRequest))
}

func TestResultArchivePut_StorageError(t *testing.T) {
	t.Parallel()

	archive := NewResultArchive(&fakeStore{putErr: assert.AnError}, "akx-results", nil)
	err := archive.Put(context.Background(), "AKX-2024-0307-ab12", pipeline.Result{})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeStorageError))
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.True(t, isNotFound(minio.ErrorResponse{StatusCode: 404}))
	assert.False(t, isNotFound(assert.AnError))
}
