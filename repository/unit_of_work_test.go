package repository

import (
	"context"
	"testing"
	"time"

	"foxyweb/events"
	"foxyweb/models"
	"foxyweb/repository/testutil"
	"foxyweb/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_CommitAndRollback(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	bus := events.NewBus()
	received := make(chan events.Event, 4)
	bus.SubscribeAll(func(ctx context.Context, e events.Event) {
		received <- e
	})

	factory := NewUnitOfWorkFactory(testDB.DB, bus)
	ctx := context.Background()

	t.Run("commit persists and flushes events", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()

		_, _, err := uow.UserRepository().GetOrCreate(ctx, testutil.CreateTestUser("committed"))
		require.NoError(t, err)
		uow.EventBus().Publish(events.UserCreatedEvent{UserID: "committed"})

		require.NoError(t, uow.Commit())

		select {
		case e := <-received:
			assert.Equal(t, events.EventTypeUserCreated, e.Type())
		case <-time.After(2 * time.Second):
			t.Fatal("event not flushed after commit")
		}

		user, err := NewUserRepository(testDB.DB).GetByID(ctx, "committed")
		require.NoError(t, err)
		assert.NotNil(t, user)
	})

	t.Run("rollback discards writes and events", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))

		_, _, err := uow.UserRepository().GetOrCreate(ctx, testutil.CreateTestUser("rolledback"))
		require.NoError(t, err)
		uow.EventBus().Publish(events.UserCreatedEvent{UserID: "rolledback"})

		require.NoError(t, uow.Rollback())

		select {
		case e := <-received:
			t.Fatalf("unexpected event after rollback: %v", e)
		case <-time.After(100 * time.Millisecond):
		}

		user, err := NewUserRepository(testDB.DB).GetByID(ctx, "rolledback")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("repositories require Begin", func(t *testing.T) {
		uow := factory.Create()
		assert.Panics(t, func() { uow.UserRepository() })
	})
}

func TestUnitOfWork_PremiumKeyAndRiotLink(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	require.NoError(t, NewPremiumKeyRepository(testDB.DB).Create(ctx, testutil.CreateTestPremiumKey("KEY-1", models.PremiumTierTwo)))
	require.NoError(t, NewRiotAccountRepository(testDB.DB).Create(ctx, testutil.CreateTestRiotLink("code-1", "puuid-1")))

	factory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	key, err := uow.PremiumKeyRepository().GetForUpdate(ctx, "KEY-1")
	require.NoError(t, err)
	require.NotNil(t, key)
	assert.Equal(t, models.PremiumTierTwo, key.Tier)
	assert.False(t, key.Used)

	require.NoError(t, uow.PremiumKeyRepository().MarkUsed(ctx, "KEY-1", "42"))
	assert.ErrorIs(t, uow.PremiumKeyRepository().MarkUsed(ctx, "KEY-1", "43"), service.ErrKeyUsed)

	link, err := uow.RiotAccountRepository().GetByCode(ctx, "code-1")
	require.NoError(t, err)
	require.NotNil(t, link)
	assert.Equal(t, "puuid-1", link.PUUID)

	require.NoError(t, uow.RiotAccountRepository().Consume(ctx, "code-1"))
	assert.ErrorIs(t, uow.RiotAccountRepository().Consume(ctx, "code-1"), service.ErrCodeNotFound)

	missing, err := uow.PremiumKeyRepository().GetForUpdate(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, uow.Commit())
}
