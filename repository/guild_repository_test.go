package repository

import (
	"context"
	"testing"

	"foxyweb/models"
	"foxyweb/repository/testutil"
	"foxyweb/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuildRepository(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewGuildRepository(testDB.DB)
	ctx := context.Background()

	t.Run("get or create", func(t *testing.T) {
		guild, created, err := repo.GetOrCreate(ctx, models.NewGuild("g1"))
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "g1", guild.ID)
		assert.False(t, guild.JoinLeave.Enabled)
		assert.False(t, guild.ValorantAutoRole.Enabled)
		assert.Empty(t, guild.PremiumKeys)

		again, created, err := repo.GetOrCreate(ctx, models.NewGuild("g1"))
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, guild.CreatedAt, again.CreatedAt)
	})

	t.Run("duplicate premium keys are rejected", func(t *testing.T) {
		guild := models.NewGuild("dup")
		guild.PremiumKeys = []string{"KEY-1", "KEY-1"}

		_, _, err := repo.GetOrCreate(ctx, guild)
		assert.ErrorIs(t, err, service.ErrValidation)

		stored, err := repo.GetByID(ctx, "dup")
		require.NoError(t, err)
		assert.Nil(t, stored)
	})

	t.Run("list and count", func(t *testing.T) {
		_, _, err := repo.GetOrCreate(ctx, models.NewGuild("g2"))
		require.NoError(t, err)

		guilds, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, guilds, 2)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("delete returns removed document", func(t *testing.T) {
		removed, err := repo.Delete(ctx, "g2")
		require.NoError(t, err)
		require.NotNil(t, removed)
		assert.Equal(t, "g2", removed.ID)

		removed, err = repo.Delete(ctx, "g2")
		require.NoError(t, err)
		assert.Nil(t, removed)

		guild, err := repo.GetByID(ctx, "g2")
		require.NoError(t, err)
		assert.Nil(t, guild)
	})
}
