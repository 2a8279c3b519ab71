package repository

import (
	"context"
	"errors"
	"fmt"

	"foxyweb/database"
	"foxyweb/models"
	"foxyweb/service"

	"github.com/jackc/pgx/v5"
)

// PremiumKeyRepository stores redeemable premium keys
type PremiumKeyRepository struct {
	q queryable
}

// NewPremiumKeyRepository creates a new premium key repository
func NewPremiumKeyRepository(db *database.DB) *PremiumKeyRepository {
	return &PremiumKeyRepository{q: db.Pool}
}

func newPremiumKeyRepositoryWithTx(tx queryable) *PremiumKeyRepository {
	return &PremiumKeyRepository{q: tx}
}

const premiumKeyColumns = `key, owner_id, tier, used, used_by, created_at, expires_at`

// Create stores a new key
func (r *PremiumKeyRepository) Create(ctx context.Context, key *models.PremiumKey) error {
	query := `
		INSERT INTO premium_keys (key, owner_id, tier, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.q.QueryRow(ctx, query, key.Key, key.OwnerID, key.Tier, key.ExpiresAt).Scan(&key.CreatedAt)
	if err != nil {
		return wrapError(err, "failed to create premium key")
	}
	return nil
}

// GetForUpdate returns the key locked for the current transaction, or nil
func (r *PremiumKeyRepository) GetForUpdate(ctx context.Context, key string) (*models.PremiumKey, error) {
	rows, err := r.q.Query(ctx, `SELECT `+premiumKeyColumns+` FROM premium_keys WHERE key = $1 FOR UPDATE`, key)
	if err != nil {
		return nil, wrapError(err, "failed to get premium key")
	}

	pk, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.PremiumKey])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapError(err, "failed to scan premium key")
	}
	return pk, nil
}

// MarkUsed flags an unused key as redeemed by userID
func (r *PremiumKeyRepository) MarkUsed(ctx context.Context, key string, userID string) error {
	query := `
		UPDATE premium_keys
		SET used = TRUE, used_by = $2
		WHERE key = $1 AND used = FALSE
	`
	tag, err := r.q.Exec(ctx, query, key, userID)
	if err != nil {
		return wrapError(err, "failed to mark premium key used")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mark key used: %w", service.ErrKeyUsed)
	}
	return nil
}
