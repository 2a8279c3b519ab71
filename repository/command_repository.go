package repository

import (
	"context"
	"fmt"

	"foxyweb/database"
	"foxyweb/models"
	"foxyweb/service"

	"github.com/jackc/pgx/v5"
)

// CommandRepository implements the bot command registry
type CommandRepository struct {
	q queryable
}

// NewCommandRepository creates a new command repository
func NewCommandRepository(db *database.DB) *CommandRepository {
	return &CommandRepository{q: db.Pool}
}

func newCommandRepositoryWithTx(tx queryable) *CommandRepository {
	return &CommandRepository{q: tx}
}

const commandColumns = `name, description, usage_count, is_inactive, subcommands, usage, category`

// Upsert registers a command by name. An existing command only has its
// description replaced; a new one starts with zero usage.
func (r *CommandRepository) Upsert(ctx context.Context, name, description string) (*models.Command, error) {
	query := `
		INSERT INTO commands (name, description)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE
		SET description = EXCLUDED.description, updated_at = NOW()
		RETURNING ` + commandColumns

	rows, err := r.q.Query(ctx, query, name, description)
	if err != nil {
		return nil, wrapError(err, fmt.Sprintf("failed to upsert command %s", name))
	}

	command, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.Command])
	if err != nil {
		return nil, wrapError(err, fmt.Sprintf("failed to read command %s", name))
	}

	return command, nil
}

// GetAll returns every registered command ordered by name
func (r *CommandRepository) GetAll(ctx context.Context) ([]*models.Command, error) {
	rows, err := r.q.Query(ctx, `SELECT `+commandColumns+` FROM commands ORDER BY name`)
	if err != nil {
		return nil, wrapError(err, "failed to get commands")
	}

	commands, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[models.Command])
	if err != nil {
		return nil, wrapError(err, "failed to scan commands")
	}
	if commands == nil {
		commands = []*models.Command{}
	}

	return commands, nil
}

// IncrementUsage adds one to the usage counter of a command
func (r *CommandRepository) IncrementUsage(ctx context.Context, name string) error {
	query := `
		UPDATE commands
		SET usage_count = usage_count + 1, updated_at = NOW()
		WHERE name = $1
	`
	tag, err := r.q.Exec(ctx, query, name)
	if err != nil {
		return wrapError(err, fmt.Sprintf("failed to increment usage of command %s", name))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("command %s: %w", name, service.ErrCommandNotFound)
	}
	return nil
}

// TotalUsage returns the sum of every usage counter
func (r *CommandRepository) TotalUsage(ctx context.Context) (int64, error) {
	var total int64
	if err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(usage_count), 0) FROM commands`).Scan(&total); err != nil {
		return 0, wrapError(err, "failed to sum command usage")
	}
	return total, nil
}
