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

// UserRepository stores user documents as JSONB rows
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepositoryWithTx creates a new user repository with a transaction
func newUserRepositoryWithTx(tx queryable) *UserRepository {
	return &UserRepository{q: tx}
}

const userColumns = `document, version, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var (
		doc  []byte
		user models.User
	)
	if err := row.Scan(&doc, &user.Version, &user.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(doc, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user document: %w", err)
	}
	return &user, nil
}

// GetByID retrieves a user document by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapError(err, fmt.Sprintf("failed to get user %s", id))
	}

	return user, nil
}

// GetForUpdate retrieves a user document with a row lock held until the
// surrounding transaction ends
func (r *UserRepository) GetForUpdate(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 FOR UPDATE`

	user, err := scanUser(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapError(err, fmt.Sprintf("failed to lock user %s", id))
	}

	return user, nil
}

// GetManyForUpdate locks every existing document among ids. Rows are locked
// in id order so two transactions locking overlapping sets cannot deadlock.
func (r *UserRepository) GetManyForUpdate(ctx context.Context, ids []string) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1) ORDER BY id FOR UPDATE`

	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, wrapError(err, "failed to lock users")
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError(err, "failed to iterate locked users")
	}

	return users, nil
}

// GetOrCreate inserts the document unless one already exists for its ID and
// returns whatever is stored. Concurrent callers all observe the same row.
func (r *UserRepository) GetOrCreate(ctx context.Context, user *models.User) (*models.User, bool, error) {
	if err := user.Validate(); err != nil {
		return nil, false, fmt.Errorf("user %s: %w: %w", user.ID, service.ErrValidation, err)
	}

	doc, err := json.Marshal(user)
	if err != nil {
		return nil, false, fmt.Errorf("failed to encode user document: %w", err)
	}

	insert := `
		INSERT INTO users (id, document)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING
	`
	tag, err := r.q.Exec(ctx, insert, user.ID, doc)
	if err != nil {
		return nil, false, wrapError(err, fmt.Sprintf("failed to create user %s", user.ID))
	}
	created := tag.RowsAffected() == 1

	stored, err := r.GetByID(ctx, user.ID)
	if err != nil {
		return nil, false, err
	}
	if stored == nil {
		return nil, false, fmt.Errorf("user %s disappeared after insert", user.ID)
	}

	return stored, created, nil
}

// Update writes the document back and bumps its version. It fails with
// service.ErrVersionConflict if the stored version no longer matches.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("user %s: %w: %w", user.ID, service.ErrValidation, err)
	}

	doc, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user document: %w", err)
	}

	query := `
		UPDATE users
		SET document = $1, version = version + 1, updated_at = NOW()
		WHERE id = $2 AND version = $3
		RETURNING version, updated_at
	`
	err = r.q.QueryRow(ctx, query, doc, user.ID, user.Version).Scan(&user.Version, &user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("user %s: %w", user.ID, service.ErrVersionConflict)
	}
	if err != nil {
		return wrapError(err, fmt.Sprintf("failed to update user %s", user.ID))
	}

	return nil
}

// Delete removes a user document
func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, wrapError(err, fmt.Sprintf("failed to delete user %s", id))
	}
	return tag.RowsAffected() > 0, nil
}

// GetAll returns every user document ordered by creation
func (r *UserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at, id`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, wrapError(err, "failed to get users")
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapError(err, "failed to iterate users")
	}

	return users, nil
}

// Count returns the number of user documents
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, wrapError(err, "failed to count users")
	}
	return count, nil
}
