package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/chorekit/internal/domain/model"
)

func TestBalanceRepo_SaveAndListRecent(t *testing.T) {
	repo := NewBalanceRepo(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, model.BalanceSnapshot{
		AccountName:        "main",
		MonthToDateBalance: "10.50",
		AccountBalance:     "-5.00",
		MonthToDateUsage:   "3.25",
		GeneratedAt:        base,
		RecordedAt:         base,
	}))
	require.NoError(t, repo.Save(ctx, model.BalanceSnapshot{
		AccountName:        "side",
		MonthToDateBalance: "1.00",
		AccountBalance:     "0.00",
		MonthToDateUsage:   "1.00",
		RecordedAt:         base.Add(time.Hour),
	}))

	got, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "side", got[0].AccountName)
	assert.True(t, got[0].GeneratedAt.IsZero())
	assert.Equal(t, "main", got[1].AccountName)
	assert.Equal(t, "10.50", got[1].MonthToDateBalance)
	assert.True(t, base.Equal(got[1].GeneratedAt))
	assert.True(t, base.Equal(got[1].RecordedAt))
}

func TestBalanceRepo_ListRecentLimit(t *testing.T) {
	repo := NewBalanceRepo(setupTestDB(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Save(ctx, model.BalanceSnapshot{AccountName: "a"}))
	}

	got, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.False(t, got[0].RecordedAt.IsZero())
}

func TestBalanceRepo_Empty(t *testing.T) {
	repo := NewBalanceRepo(setupTestDB(t))

	got, err := repo.ListRecent(context.Background(), 5)

	require.NoError(t, err)
	assert.Empty(t, got)
}
