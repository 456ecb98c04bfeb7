package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "antrian/internal/errors"
	"antrian/internal/model"
	"antrian/internal/testutil"
)

func TestServiceRepository_EnsureIsIdempotent(t *testing.T) {
	repo := NewServiceRepository(testutil.OpenInMemoryDB(t))
	ctx := context.Background()

	first, err := repo.Ensure(ctx, "Poli Gigi")
	require.NoError(t, err)
	second, err := repo.Ensure(ctx, "Poli Gigi")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestServiceRepository_DuplicateNameConflicts(t *testing.T) {
	repo := NewServiceRepository(testutil.OpenInMemoryDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Service{Name: "Poli Umum"}))
	gigi := &model.Service{Name: "Poli Gigi"}
	require.NoError(t, repo.Create(ctx, gigi))

	assert.ErrorIs(t, repo.Create(ctx, &model.Service{Name: "Poli Umum"}), apperrors.ErrConflict)
	_, err := repo.Update(ctx, &model.Service{ID: gigi.ID, Name: "Poli Umum"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestServiceRepository_CRUD(t *testing.T) {
	repo := NewServiceRepository(testutil.OpenInMemoryDB(t))
	ctx := context.Background()

	s := &model.Service{Name: "Poli Umum"}
	require.NoError(t, repo.Create(ctx, s))

	rows, err := repo.Update(ctx, &model.Service{ID: s.ID, Name: "Poli Anak"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	got, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Poli Anak", got.Name)

	rows, err = repo.Delete(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	_, err = repo.FindByID(ctx, s.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
