package models

import (
	"time"
)

// PremiumKey is a redeemable premium subscription key
type PremiumKey struct {
	Key       string      `json:"key" db:"key"`
	OwnerID   *string     `json:"ownerId" db:"owner_id"`
	Tier      PremiumTier `json:"tier" db:"tier"`
	Used      bool        `json:"used" db:"used"`
	UsedBy    *string     `json:"usedBy" db:"used_by"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
	ExpiresAt *time.Time  `json:"expiresAt" db:"expires_at"`
}

// IsExpired reports whether the key can no longer be redeemed at now
func (k *PremiumKey) IsExpired(now time.Time) bool {
	return k.ExpiresAt != nil && !now.Before(*k.ExpiresAt)
}

// CanBeRedeemedBy reports whether userID may redeem the key.
// Keys without an owner can be redeemed by anyone.
func (k *PremiumKey) CanBeRedeemedBy(userID string) bool {
	return k.OwnerID == nil || *k.OwnerID == userID
}
