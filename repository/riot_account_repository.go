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

// RiotAccountRepository stores pending Riot account links
type RiotAccountRepository struct {
	q queryable
}

// NewRiotAccountRepository creates a new riot account repository
func NewRiotAccountRepository(db *database.DB) *RiotAccountRepository {
	return &RiotAccountRepository{q: db.Pool}
}

func newRiotAccountRepositoryWithTx(tx queryable) *RiotAccountRepository {
	return &RiotAccountRepository{q: tx}
}

// Create stores a pending link. The RSO callback service writes these rows;
// the dashboard only needs it for tests and tooling.
func (r *RiotAccountRepository) Create(ctx context.Context, link *models.RiotAccountLink) error {
	query := `
		INSERT INTO riot_account_links (auth_code, puuid, game_name, tag_line, region, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.q.QueryRow(ctx, query,
		link.AuthCode, link.PUUID, link.GameName, link.TagLine, link.Region, link.UserID,
	).Scan(&link.CreatedAt)
	if err != nil {
		return wrapError(err, "failed to create riot account link")
	}
	return nil
}

// GetByCode returns the pending link for an auth code, or nil
func (r *RiotAccountRepository) GetByCode(ctx context.Context, code string) (*models.RiotAccountLink, error) {
	query := `
		SELECT auth_code, puuid, game_name, tag_line, region, user_id, created_at
		FROM riot_account_links
		WHERE auth_code = $1
	`
	rows, err := r.q.Query(ctx, query, code)
	if err != nil {
		return nil, wrapError(err, "failed to get riot account link")
	}

	link, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.RiotAccountLink])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapError(err, "failed to scan riot account link")
	}
	return link, nil
}

// Consume deletes a pending link
func (r *RiotAccountRepository) Consume(ctx context.Context, code string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM riot_account_links WHERE auth_code = $1`, code)
	if err != nil {
		return wrapError(err, "failed to consume riot account link")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("consume link: %w", service.ErrCodeNotFound)
	}
	return nil
}
