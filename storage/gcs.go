package storage

import (
	"context"
	"errors"
	"io"

	"cloud.google.com/go/storage"
)

// GCSMedium stores each key as one object. An object only becomes visible
// once its writer is closed, which gives whole-value replacement.
type GCSMedium struct {
	Bucket *storage.BucketHandle
	Prefix string
}

func NewGCSMedium(client *storage.Client, bucket string, prefix string) *GCSMedium {
	return &GCSMedium{Bucket: client.Bucket(bucket), Prefix: prefix}
}

func (m *GCSMedium) object(key string) *storage.ObjectHandle {
	return m.Bucket.Object(m.Prefix + key + ".json")
}

func (m *GCSMedium) GetItem(ctx context.Context, key string) (string, bool, error) {
	r, err := m.object(key).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	defer r.Close()

	b, err := io.ReadAll(r)
	if err != nil {
		return "", false, err
	}
	return string(b), true, nil
}

func (m *GCSMedium) SetItem(ctx context.Context, key string, value string) error {
	// cancelling the writer's context aborts the upload instead of committing it
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := m.object(key).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := io.WriteString(w, value); err != nil {
		cancel()
		w.Close()
		return err
	}
	return w.Close()
}

func (m *GCSMedium) RemoveItem(ctx context.Context, key string) error {
	err := m.object(key).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return err
}
