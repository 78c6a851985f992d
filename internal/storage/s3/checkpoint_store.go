package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"runsheet/internal/domain"
	"runsheet/internal/port"
)

type checkpointStore struct {
	storage port.ObjectStorage
	bucket  string
	prefix  string
}

// NewCheckpointStore creates a CheckpointStore that writes one JSON object per session
// under prefix in bucket.
func NewCheckpointStore(storage port.ObjectStorage, bucket, prefix string) port.CheckpointStore {
	return &checkpointStore{
		storage: storage,
		bucket:  bucket,
		prefix:  strings.Trim(prefix, "/"),
	}
}

func (s *checkpointStore) objectKey(key string) string {
	return path.Join(s.prefix, key+".json")
}

func (s *checkpointStore) Save(ctx context.Context, key string, cp *domain.Checkpoint) error {
	data, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("s3CheckpointStore.Save marshal: %w", err)
	}
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         s.objectKey(key),
		Body:        bytes.NewReader(data),
		ContentType: "application/json",
		Size:        int64(len(data)),
	})
	if err != nil {
		return fmt.Errorf("s3CheckpointStore.Save: %w", err)
	}
	return nil
}

func (s *checkpointStore) Load(ctx context.Context, key string) (*domain.Checkpoint, error) {
	data, err := s.storage.Download(ctx, s.bucket, s.objectKey(key))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrCheckpointNotFound
		}
		return nil, fmt.Errorf("s3CheckpointStore.Load: %w", err)
	}

	var cp domain.Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("s3CheckpointStore.Load unmarshal: %w", err)
	}
	return &cp, nil
}

func (s *checkpointStore) Delete(ctx context.Context, key string) error {
	if err := s.storage.Delete(ctx, s.bucket, s.objectKey(key)); err != nil {
		return fmt.Errorf("s3CheckpointStore.Delete: %w", err)
	}
	return nil
}

func (s *checkpointStore) List(ctx context.Context) ([]string, error) {
	listPrefix := s.prefix
	if listPrefix != "" {
		listPrefix += "/"
	}
	objects, err := s.storage.List(ctx, s.bucket, listPrefix)
	if err != nil {
		return nil, fmt.Errorf("s3CheckpointStore.List: %w", err)
	}

	keys := make([]string, 0, len(objects))
	for _, obj := range objects {
		name := strings.TrimPrefix(obj, listPrefix)
		if !strings.HasSuffix(name, ".json") || strings.Contains(name, "/") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ".json"))
	}
	return keys, nil
}
