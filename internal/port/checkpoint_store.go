package port

import (
	"context"

	"runsheet/internal/domain"
)

// CheckpointStore persists session checkpoints keyed by session.
// Load returns domain.ErrCheckpointNotFound when nothing is stored under key.
type CheckpointStore interface {
	Save(ctx context.Context, key string, cp *domain.Checkpoint) error
	Load(ctx context.Context, key string) (*domain.Checkpoint, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]string, error)
}
