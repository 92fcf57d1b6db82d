// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small interface. The object state
// backend keeps the SyncState snapshot as a single object through it, and
// tests replace it with the testify mock in core/storage/mocks.
//
// # Operations
//
//   - BucketExists / MakeBucket: make sure the state bucket is there.
//   - PutObject: replace the snapshot object.
//   - GetObject: stream the snapshot back.
//   - RemoveObject: drop the snapshot on reset.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
