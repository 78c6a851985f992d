// Package badger stores session checkpoints in an embedded BadgerDB.
package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"runsheet/internal/domain"
	"runsheet/internal/port"
)

const keyPrefix = "checkpoint/"

// Open opens a BadgerDB at path, or an in-memory one when path is empty.
func Open(path string) (*badger.DB, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0750); err != nil {
			return nil, fmt.Errorf("creating badger directory %s: %w", path, err)
		}
		opts = badger.DefaultOptions(path).WithSyncWrites(true)
	}
	opts = opts.WithNumVersionsToKeep(1).WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger database: %w", err)
	}
	return db, nil
}

type checkpointStore struct {
	db *badger.DB
}

// NewCheckpointStore creates a BadgerDB-backed CheckpointStore. The caller owns db.
func NewCheckpointStore(db *badger.DB) port.CheckpointStore {
	return &checkpointStore{db: db}
}

func (s *checkpointStore) Save(ctx context.Context, key string, cp *domain.Checkpoint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("badger.Save: %w", err)
	}
	data, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("badger.Save marshal: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+key), data)
	})
	if err != nil {
		return fmt.Errorf("badger.Save: %w", err)
	}
	return nil
}

func (s *checkpointStore) Load(ctx context.Context, key string) (*domain.Checkpoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("badger.Load: %w", err)
	}
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, domain.ErrCheckpointNotFound
		}
		return nil, fmt.Errorf("badger.Load: %w", err)
	}

	var cp domain.Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("badger.Load unmarshal: %w", err)
	}
	return &cp, nil
}

func (s *checkpointStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("badger.Delete: %w", err)
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(keyPrefix + key))
	})
	if err != nil {
		return fmt.Errorf("badger.Delete: %w", err)
	}
	return nil
}

func (s *checkpointStore) List(ctx context.Context) ([]string, error) {
	keys := make([]string, 0)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			keys = append(keys, strings.TrimPrefix(string(it.Item().Key()), keyPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("badger.List: %w", err)
	}
	return keys, nil
}

// RunGC reclaims value-log space until there is nothing left to collect.
func RunGC(db *badger.DB) {
	for {
		if err := db.RunValueLogGC(0.5); err != nil {
			if !errors.Is(err, badger.ErrNoRewrite) && !errors.Is(err, badger.ErrRejected) {
				log.Printf("badger.RunGC: %v", err)
			}
			return
		}
	}
}
