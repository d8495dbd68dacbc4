package settings

import (
	"context"
	"testing"

	"github.com/fourfold/fourfold/internal/test_utils"
	"github.com/fourfold/fourfold/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRepo(t *testing.T) {
	ctx := context.Background()

	t.Run("should return defaults when nothing is stored", func(t *testing.T) {
		db := test_utils.SetupTestDB(t)
		repo := NewSettingsRepo(db)

		settings, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, Settings{Currency: "USD"}, settings)
	})

	t.Run("should store and read back settings", func(t *testing.T) {
		// given
		db := test_utils.SetupTestDB(t)
		repo := NewSettingsRepo(db)
		stored := Settings{InitialSavings: money.Cents(250000), Currency: "EUR"}

		// when
		require.NoError(t, repo.Store(ctx, stored))

		// then
		settings, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, stored, settings)
	})

	t.Run("should overwrite on repeated store", func(t *testing.T) {
		// given
		db := test_utils.SetupTestDB(t)
		repo := NewSettingsRepo(db)
		require.NoError(t, repo.Store(ctx, Settings{InitialSavings: 100, Currency: "USD"}))

		// when
		require.NoError(t, repo.Store(ctx, Settings{InitialSavings: 200, Currency: "USD"}))

		// then
		settings, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, money.Cents(200), settings.InitialSavings)
	})
}
