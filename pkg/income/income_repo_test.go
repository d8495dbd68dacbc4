package income

import (
	"context"
	"testing"

	"github.com/fourfold/fourfold/internal/test_utils"
	"github.com/fourfold/fourfold/pkg/money"
	"github.com/fourfold/fourfold/pkg/month"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncomeRepo(t *testing.T) {
	ctx := context.Background()

	t.Run("should store and read back month entries", func(t *testing.T) {
		// given
		db := test_utils.SetupTestDB(t)
		repo := NewIncomeRepo(db)

		// when
		require.NoError(t, repo.Set(ctx, month.MustParse("2024-01"), 1000))
		require.NoError(t, repo.Set(ctx, month.MustParse("2024-03"), 2000))

		// then
		history, err := repo.GetHistory(ctx)
		require.NoError(t, err)
		assert.Equal(t, money.Cents(1000), history.Entries[month.MustParse("2024-01")])
		assert.Equal(t, money.Cents(2000), history.Entries[month.MustParse("2024-03")])
		assert.False(t, history.HasDefault)
	})

	t.Run("should replace an existing entry on set", func(t *testing.T) {
		// given
		db := test_utils.SetupTestDB(t)
		repo := NewIncomeRepo(db)
		require.NoError(t, repo.Set(ctx, month.MustParse("2024-01"), 1000))

		// when
		require.NoError(t, repo.Set(ctx, month.MustParse("2024-01"), 1500))

		// then
		history, err := repo.GetHistory(ctx)
		require.NoError(t, err)
		require.Len(t, history.Entries, 1)
		assert.Equal(t, money.Cents(1500), history.Entries[month.MustParse("2024-01")])
	})

	t.Run("should surface the legacy default row", func(t *testing.T) {
		// given
		db := test_utils.SetupTestDB(t)
		repo := NewIncomeRepo(db)
		_, err := db.Exec("INSERT INTO income_history (month, amount) VALUES ('default', 4200)")
		require.NoError(t, err)

		// when
		history, err := repo.GetHistory(ctx)

		// then
		require.NoError(t, err)
		assert.Empty(t, history.Entries)
		assert.True(t, history.HasDefault)
		assert.Equal(t, money.Cents(4200), history.Default)
	})

	t.Run("should delete a single entry", func(t *testing.T) {
		// given
		db := test_utils.SetupTestDB(t)
		repo := NewIncomeRepo(db)
		require.NoError(t, repo.Set(ctx, month.MustParse("2024-01"), 1000))

		// when
		deleted, err := repo.Delete(ctx, month.MustParse("2024-01"))

		// then
		require.NoError(t, err)
		assert.True(t, deleted)
		history, err := repo.GetHistory(ctx)
		require.NoError(t, err)
		assert.Empty(t, history.Entries)
	})

	t.Run("should report delete of a missing entry", func(t *testing.T) {
		db := test_utils.SetupTestDB(t)
		repo := NewIncomeRepo(db)

		deleted, err := repo.Delete(ctx, month.MustParse("2030-01"))
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("reset should remove entries and the legacy default", func(t *testing.T) {
		// given
		db := test_utils.SetupTestDB(t)
		repo := NewIncomeRepo(db)
		require.NoError(t, repo.Set(ctx, month.MustParse("2024-01"), 1000))
		_, err := db.Exec("INSERT INTO income_history (month, amount) VALUES ('default', 4200)")
		require.NoError(t, err)

		// when
		require.NoError(t, repo.Reset(ctx))

		// then
		history, err := repo.GetHistory(ctx)
		require.NoError(t, err)
		assert.Empty(t, history.Entries)
		assert.False(t, history.HasDefault)
	})
}
