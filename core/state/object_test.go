package state

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"bookmark-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// failingReader surfaces an error on the first read, the way a minio object
// reports a missing key.
type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestObjectStore_Load(t *testing.T) {
	ctx := context.Background()
	data, err := Encode(sampleState())
	require.NoError(t, err)

	t.Run("Existing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "bucket", "state.json", mock.Anything).
			Return(io.NopCloser(bytes.NewReader(data)), nil)

		loaded, err := NewObjectStore(client, "bucket", "state.json").Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "folder-10", loaded.CollectionFolders[10])
		client.AssertExpectations(t)
	})

	t.Run("NoSuchKey", func(t *testing.T) {
		client := new(mocks.Client)
		missing := minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."}
		client.On("GetObject", mock.Anything, "bucket", "state.json", mock.Anything).
			Return(io.NopCloser(failingReader{err: missing}), nil)

		loaded, err := NewObjectStore(client, "bucket", "state.json").Load(ctx)
		assert.NoError(t, err)
		assert.Nil(t, loaded)
	})

	t.Run("Failure", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "bucket", "state.json", mock.Anything).
			Return(nil, errors.New("connection refused"))

		_, err := NewObjectStore(client, "bucket", "state.json").Load(ctx)
		assert.ErrorContains(t, err, "connection refused")
	})
}

func TestObjectStore_Save(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "bucket", "state.json", mock.Anything, mock.AnythingOfType("int64"),
		mock.MatchedBy(func(opts minio.PutObjectOptions) bool { return opts.ContentType == "application/json" })).
		Return(minio.UploadInfo{Key: "state.json"}, nil)

	err := NewObjectStore(client, "bucket", "state.json").Save(ctx, sampleState())
	assert.NoError(t, err)
	client.AssertExpectations(t)
}

func TestObjectStore_EnsureBucket(t *testing.T) {
	ctx := context.Background()

	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "bucket").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "bucket", mock.Anything).Return(nil)
	assert.NoError(t, NewObjectStore(client, "bucket", "k").EnsureBucket(ctx))
	client.AssertExpectations(t)

	existing := new(mocks.Client)
	existing.On("BucketExists", mock.Anything, "bucket").Return(true, nil)
	assert.NoError(t, NewObjectStore(existing, "bucket", "k").EnsureBucket(ctx))
	existing.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
}

func TestObjectStore_Clear(t *testing.T) {
	client := new(mocks.Client)
	client.On("RemoveObject", mock.Anything, "bucket", "k", mock.Anything).Return(nil)
	assert.NoError(t, NewObjectStore(client, "bucket", "k").Clear(context.Background()))
}
