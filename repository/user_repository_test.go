package repository

import (
	"context"
	"sync"
	"testing"

	"foxyweb/models"
	"foxyweb/repository/testutil"
	"foxyweb/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetOrCreate(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("missing user is not found", func(t *testing.T) {
		user, err := repo.GetByID(ctx, "999999")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("creates with defaults", func(t *testing.T) {
		user, created, err := repo.GetOrCreate(ctx, testutil.CreateTestUser("123456"))
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "123456", user.ID)
		assert.Equal(t, int64(0), user.Cakes.Balance)
		assert.Equal(t, []string{models.DefaultBackgroundID}, user.Profile.OwnedBackgrounds)
		assert.Equal(t, models.DefaultLanguage, user.Settings.Language)
		assert.Equal(t, int64(1), user.Version)
	})

	t.Run("existing document is returned untouched", func(t *testing.T) {
		first, _, err := repo.GetOrCreate(ctx, testutil.CreateTestUserWithBalance("222", 500))
		require.NoError(t, err)

		second, created, err := repo.GetOrCreate(ctx, testutil.CreateTestUserWithBalance("222", 9999))
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.Cakes.Balance, second.Cakes.Balance)
	})

	t.Run("concurrent first access creates exactly one document", func(t *testing.T) {
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			created int
		)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, c, err := repo.GetOrCreate(ctx, testutil.CreateTestUser("concurrent"))
				assert.NoError(t, err)
				if c {
					mu.Lock()
					created++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, created)
	})
}

func TestUserRepository_Update(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _, err := repo.GetOrCreate(ctx, testutil.CreateTestUser("1"))
	require.NoError(t, err)

	t.Run("writes document and bumps version", func(t *testing.T) {
		user.Cakes.Balance = 2000
		user.AddBackground("sunset")
		require.NoError(t, repo.Update(ctx, user))
		assert.Equal(t, int64(2), user.Version)

		stored, err := repo.GetByID(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, int64(2000), stored.Cakes.Balance)
		assert.True(t, stored.OwnsBackground("sunset"))
	})

	t.Run("stale version conflicts", func(t *testing.T) {
		stale, err := repo.GetByID(ctx, "1")
		require.NoError(t, err)

		fresh, err := repo.GetByID(ctx, "1")
		require.NoError(t, err)
		fresh.Cakes.Balance = 100
		require.NoError(t, repo.Update(ctx, fresh))

		stale.Cakes.Balance = 50
		err = repo.Update(ctx, stale)
		assert.ErrorIs(t, err, service.ErrVersionConflict)
		assert.ErrorIs(t, err, service.ErrPersistence)
	})

	t.Run("negative balance is rejected", func(t *testing.T) {
		current, err := repo.GetByID(ctx, "1")
		require.NoError(t, err)
		current.Cakes.Balance = -1
		assert.ErrorIs(t, repo.Update(ctx, current), service.ErrValidation)
	})

	t.Run("duplicate owned backgrounds are rejected", func(t *testing.T) {
		current, err := repo.GetByID(ctx, "1")
		require.NoError(t, err)
		version := current.Version
		current.Profile.OwnedBackgrounds = append(current.Profile.OwnedBackgrounds, models.DefaultBackgroundID)

		assert.ErrorIs(t, repo.Update(ctx, current), service.ErrValidation)

		stored, err := repo.GetByID(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, version, stored.Version)
		assert.ElementsMatch(t, []string{models.DefaultBackgroundID, "sunset"}, stored.Profile.OwnedBackgrounds)
	})

	t.Run("invalid new document is not inserted", func(t *testing.T) {
		invalid := testutil.CreateTestUser("invalid")
		invalid.Profile.OwnedBackgrounds = []string{"a", "a"}

		_, _, err := repo.GetOrCreate(ctx, invalid)
		assert.ErrorIs(t, err, service.ErrValidation)

		stored, err := repo.GetByID(ctx, "invalid")
		require.NoError(t, err)
		assert.Nil(t, stored)
	})
}

func TestUserRepository_GetManyForUpdate(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	for _, id := range []string{"b", "a"} {
		_, _, err := repo.GetOrCreate(ctx, testutil.CreateTestUser(id))
		require.NoError(t, err)
	}

	users, err := repo.GetManyForUpdate(ctx, []string{"b", "a", "missing"})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "a", users[0].ID)
	assert.Equal(t, "b", users[1].ID)
}

func TestUserRepository_DeleteAndList(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		_, _, err := repo.GetOrCreate(ctx, testutil.CreateTestUser(id))
		require.NoError(t, err)
	}

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	deleted, err := repo.Delete(ctx, "b")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, "b")
	require.NoError(t, err)
	assert.False(t, deleted)

	users, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.ElementsMatch(t, []string{"a", "c"}, []string{users[0].ID, users[1].ID})
}
