package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"foxyweb/database"
	"foxyweb/models"
	"foxyweb/service"

	"github.com/jackc/pgx/v5"
)

// GuildRepository stores guild documents as JSONB rows
type GuildRepository struct {
	q queryable
}

// NewGuildRepository creates a new guild repository
func NewGuildRepository(db *database.DB) *GuildRepository {
	return &GuildRepository{q: db.Pool}
}

func newGuildRepositoryWithTx(tx queryable) *GuildRepository {
	return &GuildRepository{q: tx}
}

func scanGuild(row pgx.Row) (*models.Guild, error) {
	var (
		doc   []byte
		guild models.Guild
	)
	if err := row.Scan(&doc, &guild.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(doc, &guild); err != nil {
		return nil, fmt.Errorf("failed to decode guild document: %w", err)
	}
	return &guild, nil
}

// GetByID retrieves a guild document by ID
func (r *GuildRepository) GetByID(ctx context.Context, id string) (*models.Guild, error) {
	guild, err := scanGuild(r.q.QueryRow(ctx, `SELECT document, created_at FROM guilds WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapError(err, fmt.Sprintf("failed to get guild %s", id))
	}
	return guild, nil
}

// GetOrCreate inserts the guild unless it exists and returns the stored
// document. created reports whether this call inserted the row.
func (r *GuildRepository) GetOrCreate(ctx context.Context, guild *models.Guild) (*models.Guild, bool, error) {
	if err := guild.Validate(); err != nil {
		return nil, false, fmt.Errorf("guild %s: %w: %w", guild.ID, service.ErrValidation, err)
	}

	doc, err := json.Marshal(guild)
	if err != nil {
		return nil, false, fmt.Errorf("failed to encode guild document: %w", err)
	}

	insert := `
		INSERT INTO guilds (id, document)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING
	`
	tag, err := r.q.Exec(ctx, insert, guild.ID, doc)
	if err != nil {
		return nil, false, wrapError(err, fmt.Sprintf("failed to create guild %s", guild.ID))
	}
	created := tag.RowsAffected() == 1

	stored, err := r.GetByID(ctx, guild.ID)
	if err != nil {
		return nil, false, err
	}
	if stored == nil {
		return nil, false, fmt.Errorf("guild %s disappeared after insert", guild.ID)
	}
	return stored, created, nil
}

// Delete removes a guild and returns the removed document, or nil if absent
func (r *GuildRepository) Delete(ctx context.Context, id string) (*models.Guild, error) {
	query := `DELETE FROM guilds WHERE id = $1 RETURNING document, created_at`

	guild, err := scanGuild(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapError(err, fmt.Sprintf("failed to delete guild %s", id))
	}
	return guild, nil
}

// GetAll returns every guild document
func (r *GuildRepository) GetAll(ctx context.Context) ([]*models.Guild, error) {
	rows, err := r.q.Query(ctx, `SELECT document, created_at FROM guilds ORDER BY created_at, id`)
	if err != nil {
		return nil, wrapError(err, "failed to get guilds")
	}
	defer rows.Close()

	guilds := []*models.Guild{}
	for rows.Next() {
		guild, err := scanGuild(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan guild: %w", err)
		}
		guilds = append(guilds, guild)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError(err, "failed to iterate guilds")
	}

	return guilds, nil
}

// Count returns the number of guild documents
func (r *GuildRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM guilds`).Scan(&count); err != nil {
		return 0, wrapError(err, "failed to count guilds")
	}
	return count, nil
}
