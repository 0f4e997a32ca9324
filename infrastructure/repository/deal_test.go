package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/deal-mirror-api/infrastructure/database"
	"github.com/vfg2006/deal-mirror-api/internal/config"
	"github.com/vfg2006/deal-mirror-api/internal/domain"
)

func newTestRepository(t *testing.T) DealRepository {
	t.Helper()

	path := filepath.Join(t.TempDir(), "deals.db")
	conn, err := database.NewConnection(context.Background(), config.Database{
		Driver: config.DriverSQLite,
		Path:   path,
		DSN:    "file:" + path,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	repo := NewDealRepository(conn)
	require.NoError(t, repo.EnsureSchema(context.Background()))

	return repo
}

func strPtr(s string) *string {
	return &s
}

func TestDealRepository_EnsureSchema_Idempotent(t *testing.T) {
	repo := newTestRepository(t)

	assert.NoError(t, repo.EnsureSchema(context.Background()))
}

func TestDealRepository_UpsertAll(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	deals := []*domain.Deal{
		{ID: 2, Title: "Segundo", DateCreate: "2024-03-02", DocumentsIDs: "10,11", City: strPtr("Moscow")},
		{ID: 1, Title: "Primeiro", DateCreate: "2024-03-01", DocumentsIDs: ""},
	}

	result, err := repo.UpsertAll(ctx, deals)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Saved)
	assert.Zero(t, result.Failed)

	stored, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	assert.Equal(t, int64(1), stored[0].ID)
	assert.Equal(t, "Primeiro", stored[0].Title)
	assert.Equal(t, "2024-03-01", stored[0].DateCreate)
	assert.Nil(t, stored[0].City)

	assert.Equal(t, int64(2), stored[1].ID)
	assert.Equal(t, "10,11", stored[1].DocumentsIDs)
	require.NotNil(t, stored[1].City)
	assert.Equal(t, "Moscow", *stored[1].City)
}

func TestDealRepository_UpsertAll_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	deals := []*domain.Deal{
		{ID: 1, Title: "A", DateCreate: "2024-01-01", DocumentsIDs: "1"},
		{ID: 2, Title: "B", DateCreate: "2024-01-02", DocumentsIDs: "2"},
	}

	_, err := repo.UpsertAll(ctx, deals)
	require.NoError(t, err)
	first, err := repo.ListAll(ctx)
	require.NoError(t, err)

	_, err = repo.UpsertAll(ctx, deals)
	require.NoError(t, err)
	second, err := repo.ListAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDealRepository_UpsertAll_LastWriteWins(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	result, err := repo.UpsertAll(ctx, []*domain.Deal{
		{ID: 5, Title: "antigo", DateCreate: "2024-01-01", DocumentsIDs: "1", City: strPtr("Kazan")},
		{ID: 5, Title: "novo", DateCreate: "2024-02-01", DocumentsIDs: "2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Saved)

	deal, err := repo.GetByID(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, deal)
	assert.Equal(t, "novo", deal.Title)
	assert.Equal(t, "2024-02-01", deal.DateCreate)
	assert.Equal(t, "2", deal.DocumentsIDs)
	assert.Nil(t, deal.City, "upsert sobrescreve todos os campos")
}

func TestDealRepository_UpsertAll_Empty(t *testing.T) {
	repo := newTestRepository(t)

	result, err := repo.UpsertAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, &domain.UpsertResult{}, result)
}

func TestDealRepository_GetByID_NotFound(t *testing.T) {
	repo := newTestRepository(t)

	deal, err := repo.GetByID(context.Background(), 404)
	assert.NoError(t, err)
	assert.Nil(t, deal)
}

func TestDealRepository_UpdateFields(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	_, err := repo.UpsertAll(ctx, []*domain.Deal{
		{ID: 7, Title: "original", DateCreate: "2024-05-05", DocumentsIDs: "1,2", City: strPtr("Omsk")},
	})
	require.NoError(t, err)

	updated, err := repo.UpdateFields(ctx, 7, domain.DealPatch{Title: strPtr("renomeado")})
	require.NoError(t, err)
	assert.True(t, updated)

	deal, err := repo.GetByID(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, deal)
	assert.Equal(t, "renomeado", deal.Title)
	assert.Equal(t, "2024-05-05", deal.DateCreate)
	assert.Equal(t, "1,2", deal.DocumentsIDs)
	require.NotNil(t, deal.City)
	assert.Equal(t, "Omsk", *deal.City, "cidade nunca é alterada por atualização parcial")

	updated, err = repo.UpdateFields(ctx, 7, domain.DealPatch{
		DateCreate:   strPtr("2024-06-06"),
		DocumentsIDs: strPtr("3"),
	})
	require.NoError(t, err)
	assert.True(t, updated)

	deal, err = repo.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "renomeado", deal.Title)
	assert.Equal(t, "2024-06-06", deal.DateCreate)
	assert.Equal(t, "3", deal.DocumentsIDs)
}

func TestDealRepository_UpdateFields_EdgeCases(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	updated, err := repo.UpdateFields(ctx, 1, domain.DealPatch{})
	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
	assert.False(t, updated)

	updated, err = repo.UpdateFields(ctx, 999, domain.DealPatch{Title: strPtr("x")})
	assert.NoError(t, err)
	assert.False(t, updated, "deal inexistente não é criado")

	deal, err := repo.GetByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, deal)
}

func TestDealRepository_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	_, err := repo.UpsertAll(ctx, []*domain.Deal{
		{ID: 1, Title: "A", DateCreate: "2024-01-01"},
		{ID: 2, Title: "B", DateCreate: "2024-01-02"},
		{ID: 3, Title: "C", DateCreate: "2024-01-03"},
	})
	require.NoError(t, err)

	deleted, err := repo.DeleteByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = repo.DeleteByID(ctx, 2)
	require.NoError(t, err)
	assert.Zero(t, deleted, "remover deal inexistente não é erro")

	deals, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, deals, 2)

	cleared, err := repo.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), cleared)

	deals, err = repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, deals)

	cleared, err = repo.Clear(ctx)
	require.NoError(t, err)
	assert.Zero(t, cleared)
}

func TestDateColumn_Scan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want string
	}{
		{name: "nulo", src: nil, want: ""},
		{name: "texto", src: "2024-01-02", want: "2024-01-02"},
		{name: "texto com hora", src: "2024-01-02T10:00:00+03:00", want: "2024-01-02"},
		{name: "bytes", src: []byte("2024-01-02 00:00:00"), want: "2024-01-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			require.NoError(t, dateColumn{dst: &got}.Scan(tt.src))
			assert.Equal(t, tt.want, got)
		})
	}

	var got string
	assert.Error(t, dateColumn{dst: &got}.Scan(42))
}
