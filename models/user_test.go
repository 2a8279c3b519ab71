package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser_Defaults(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	user := NewUser("123", now)

	require.NoError(t, user.Validate())

	assert.Equal(t, "123", user.ID)
	assert.Equal(t, now, user.CreationTimestamp)
	assert.False(t, user.IsBanned)
	assert.Equal(t, int64(0), user.Cakes.Balance)
	assert.Nil(t, user.Cakes.LastDaily)
	assert.Nil(t, user.Marriage.PartnerID)
	assert.Equal(t, DefaultBackgroundID, user.Profile.EquippedBackground)
	assert.Equal(t, []string{DefaultBackgroundID}, user.Profile.OwnedBackgrounds)
	assert.Empty(t, user.Profile.OwnedDecorations)
	assert.Nil(t, user.Profile.EquippedDecoration)
	assert.Equal(t, DefaultLayoutID, user.Profile.Layout)
	assert.False(t, user.Premium.Active)
	assert.Equal(t, DefaultLanguage, user.Settings.Language)
	assert.Equal(t, 100, user.Pet.Hunger)
	assert.True(t, user.Pet.IsClean)
	assert.Empty(t, user.Transactions)
	assert.False(t, user.RiotAccount.Linked)
	assert.Equal(t, DefaultRouletteSpins, user.Roulette.AvailableSpins)
}

func TestUser_Validate(t *testing.T) {
	t.Run("negative balance", func(t *testing.T) {
		user := NewUser("1", time.Now())
		user.Cakes.Balance = -1
		assert.Error(t, user.Validate())
	})

	t.Run("duplicate ownership", func(t *testing.T) {
		user := NewUser("1", time.Now())
		user.Profile.OwnedBackgrounds = []string{"a", "a"}
		assert.Error(t, user.Validate())
	})

	t.Run("unknown transaction type", func(t *testing.T) {
		user := NewUser("1", time.Now())
		user.AppendTransaction(&Transaction{To: "1", From: "2", Quantity: 1, Type: "gift"})
		assert.Error(t, user.Validate())
	})
}

func TestUser_Ownership(t *testing.T) {
	user := NewUser("1", time.Now())

	user.AddBackground("sunset")
	user.AddBackground("sunset")
	user.AddDecoration("halo")
	user.AddDecoration("halo")

	assert.Equal(t, []string{DefaultBackgroundID, "sunset"}, user.Profile.OwnedBackgrounds)
	assert.Equal(t, []string{"halo"}, user.Profile.OwnedDecorations)
	assert.True(t, user.OwnsBackground("sunset"))
	assert.False(t, user.OwnsDecoration("crown"))
	assert.NoError(t, user.Validate())
}

func TestUser_PremiumTier(t *testing.T) {
	user := NewUser("1", time.Now())
	assert.Equal(t, PremiumTier(""), user.PremiumTier())

	tier := PremiumTierTwo
	user.Premium.Tier = &tier
	assert.Equal(t, PremiumTier(""), user.PremiumTier(), "inactive premium has no tier")

	user.Premium.Active = true
	assert.Equal(t, PremiumTierTwo, user.PremiumTier())
}

func TestPremiumTier_DailyMultiplier(t *testing.T) {
	assert.Equal(t, 1.25, PremiumTierOne.DailyMultiplier())
	assert.Equal(t, 1.5, PremiumTierTwo.DailyMultiplier())
	assert.Equal(t, 2.0, PremiumTierThree.DailyMultiplier())
	assert.Equal(t, 1.0, PremiumTier("").DailyMultiplier())
	assert.False(t, PremiumTier("4").IsValid())
}

func TestPremiumKey(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	owner := "1"

	key := &PremiumKey{Key: "K", Tier: PremiumTierOne}
	assert.False(t, key.IsExpired(now))
	assert.True(t, key.CanBeRedeemedBy("anyone"))

	key.ExpiresAt = &past
	key.OwnerID = &owner
	assert.True(t, key.IsExpired(now))
	assert.True(t, key.CanBeRedeemedBy("1"))
	assert.False(t, key.CanBeRedeemedBy("2"))
}

func TestTransaction_ChangeAmount(t *testing.T) {
	assert.Equal(t, int64(100), (&Transaction{Quantity: 100, Received: true}).ChangeAmount())
	assert.Equal(t, int64(-100), (&Transaction{Quantity: 100}).ChangeAmount())
}
