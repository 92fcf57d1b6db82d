package state

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"bookmark-sync/core/storage"

	"github.com/minio/minio-go/v7"
)

// ObjectStore keeps the snapshot as one object in a bucket. A PutObject
// replaces the object whole, which gives the atomic swap a run needs.
type ObjectStore struct {
	client storage.Client
	bucket string
	key    string
}

// NewObjectStore creates a store for bucket/key.
func NewObjectStore(client storage.Client, bucket, key string) *ObjectStore {
	return &ObjectStore{client: client, bucket: bucket, key: key}
}

// EnsureBucket creates the bucket if it does not exist yet.
func (s *ObjectStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Load fetches the object. Returns nil and no error if it does not exist.
func (s *ObjectStore) Load(ctx context.Context) (*SyncState, error) {
	reader, err := s.client.GetObject(ctx, s.bucket, s.key, minio.GetObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get state object: %w", err)
	}
	defer reader.Close()

	// minio reports a missing key lazily, on the first read.
	data, err := io.ReadAll(reader)
	if err != nil {
		if isNoSuchKey(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read state object: %w", err)
	}
	return Decode(data)
}

// Save uploads the snapshot over the existing object.
func (s *ObjectStore) Save(ctx context.Context, st *SyncState) error {
	data, err := Encode(st)
	if err != nil {
		return err
	}

	_, err = s.client.PutObject(ctx, s.bucket, s.key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to write state object: %w", err)
	}
	return nil
}

// Clear removes the object.
func (s *ObjectStore) Clear(ctx context.Context) error {
	if err := s.client.RemoveObject(ctx, s.bucket, s.key, minio.RemoveObjectOptions{}); err != nil {
		if isNoSuchKey(err) {
			return nil
		}
		return fmt.Errorf("failed to delete state object: %w", err)
	}
	return nil
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
