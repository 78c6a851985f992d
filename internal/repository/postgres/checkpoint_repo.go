package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"runsheet/internal/domain"
	"runsheet/internal/port"
)

type checkpointRepo struct {
	db *sqlx.DB
}

// NewCheckpointRepo creates a new PostgreSQL-backed CheckpointStore.
// Checkpoints are stored whole as JSONB alongside a few columns for listing.
func NewCheckpointRepo(db *sqlx.DB) port.CheckpointStore {
	return &checkpointRepo{db: db}
}

type checkpointRow struct {
	Key      string `db:"session_key"`
	Prospect string `db:"prospect"`
	Status   string `db:"status"`
	Data     []byte `db:"data"`
}

func (r *checkpointRepo) Save(ctx context.Context, key string, cp *domain.Checkpoint) error {
	data, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("checkpointRepo.Save marshal: %w", err)
	}

	row := checkpointRow{
		Key:      key,
		Prospect: cp.Prospect,
		Status:   string(cp.Status),
		Data:     data,
	}
	query := `
		INSERT INTO session_checkpoints (session_key, prospect, status, data, created_at, updated_at)
		VALUES (:session_key, :prospect, :status, :data, NOW(), NOW())
		ON CONFLICT (session_key) DO UPDATE SET
			prospect = EXCLUDED.prospect,
			status = EXCLUDED.status,
			data = EXCLUDED.data,
			updated_at = NOW()`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("checkpointRepo.Save: %w", err)
	}
	return nil
}

func (r *checkpointRepo) Load(ctx context.Context, key string) (*domain.Checkpoint, error) {
	var data []byte
	err := r.db.GetContext(ctx, &data, "SELECT data FROM session_checkpoints WHERE session_key = $1", key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCheckpointNotFound
		}
		return nil, fmt.Errorf("checkpointRepo.Load: %w", err)
	}

	var cp domain.Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("checkpointRepo.Load unmarshal: %w", err)
	}
	return &cp, nil
}

func (r *checkpointRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM session_checkpoints WHERE session_key = $1", key); err != nil {
		return fmt.Errorf("checkpointRepo.Delete: %w", err)
	}
	return nil
}

func (r *checkpointRepo) List(ctx context.Context) ([]string, error) {
	var keys []string
	err := r.db.SelectContext(ctx, &keys, "SELECT session_key FROM session_checkpoints ORDER BY updated_at DESC")
	if err != nil {
		return nil, fmt.Errorf("checkpointRepo.List: %w", err)
	}
	return keys, nil
}
