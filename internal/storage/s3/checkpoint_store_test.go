package s3_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"runsheet/internal/domain"
	"runsheet/internal/port"
	"runsheet/internal/storage/s3"
	"runsheet/mocks"
)

func TestCheckpointStore_SaveThenLoad(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	store := s3.NewCheckpointStore(storage, "runsheets", "/checkpoints/")
	id := uuid.New()
	key := "checkpoints/" + id.String() + ".json"

	var uploaded []byte
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "runsheets" && in.Key == key && in.ContentType == "application/json"
	})).Run(func(args mock.Arguments) {
		in := args.Get(1).(port.UploadInput)
		uploaded, _ = io.ReadAll(in.Body)
	}).Return(&port.UploadOutput{Location: "s3://runsheets/" + key}, nil)

	cp := &domain.Checkpoint{
		SessionID:        id,
		Prospect:         "North Tract",
		TotalAcres:       160,
		Status:           domain.SessionStatusInProgress,
		CurrentRowIndex:  3,
		OngoingOwnership: domain.NewOngoingOwnership(160),
	}
	require.NoError(t, store.Save(context.Background(), id.String(), cp))
	require.NotEmpty(t, uploaded)

	storage.On("Download", mock.Anything, "runsheets", key).Return(uploaded, nil)

	got, err := store.Load(context.Background(), id.String())
	require.NoError(t, err)
	assert.Equal(t, id, got.SessionID)
	assert.Equal(t, 3, got.CurrentRowIndex)
	assert.InDelta(t, 160, got.OngoingOwnership.TotalAcres, 1e-9)
	storage.AssertExpectations(t)
}

func TestCheckpointStore_LoadMissing(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	store := s3.NewCheckpointStore(storage, "runsheets", "checkpoints")
	storage.On("Download", mock.Anything, "runsheets", "checkpoints/abc.json").Return(nil, domain.ErrNotFound)

	_, err := store.Load(context.Background(), "abc")
	assert.ErrorIs(t, err, domain.ErrCheckpointNotFound)
}

func TestCheckpointStore_LoadCorrupt(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	store := s3.NewCheckpointStore(storage, "runsheets", "")
	storage.On("Download", mock.Anything, "runsheets", "abc.json").Return([]byte("{not json"), nil)

	_, err := store.Load(context.Background(), "abc")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrCheckpointNotFound)
}

func TestCheckpointStore_UploadError(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	store := s3.NewCheckpointStore(storage, "runsheets", "checkpoints")
	storage.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	err := store.Save(context.Background(), "abc", &domain.Checkpoint{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestCheckpointStore_DeleteAndList(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	store := s3.NewCheckpointStore(storage, "runsheets", "checkpoints")
	storage.On("Delete", mock.Anything, "runsheets", "checkpoints/abc.json").Return(nil)
	storage.On("List", mock.Anything, "runsheets", "checkpoints/").Return([]string{
		"checkpoints/abc.json",
		"checkpoints/def.json",
		"checkpoints/exports/abc.xlsx",
		"checkpoints/notes.txt",
	}, nil)

	require.NoError(t, store.Delete(context.Background(), "abc"))

	keys, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"abc", "def"}, keys)
}
