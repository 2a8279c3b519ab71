package testutil

import (
	"time"

	"foxyweb/models"
)

// CreateTestUser creates a user document with default values
func CreateTestUser(id string) *models.User {
	return models.NewUser(id, time.Now().UTC().Truncate(time.Millisecond))
}

// CreateTestUserWithBalance creates a user document with a specific balance
func CreateTestUserWithBalance(id string, balance int64) *models.User {
	user := CreateTestUser(id)
	user.Cakes.Balance = balance
	return user
}

// CreateTestPremiumKey creates an unused, unowned premium key
func CreateTestPremiumKey(key string, tier models.PremiumTier) *models.PremiumKey {
	return &models.PremiumKey{
		Key:  key,
		Tier: tier,
	}
}

// CreateTestRiotLink creates a pending riot account link
func CreateTestRiotLink(code, puuid string) *models.RiotAccountLink {
	region := "br1"
	return &models.RiotAccountLink{
		AuthCode: code,
		PUUID:    puuid,
		GameName: "Foxy",
		TagLine:  "BR1",
		Region:   &region,
	}
}
