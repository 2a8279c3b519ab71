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

// CatalogRepository reads the purchasable item tables
type CatalogRepository struct {
	q queryable
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *database.DB) *CatalogRepository {
	return &CatalogRepository{q: db.Pool}
}

func newCatalogRepositoryWithTx(tx queryable) *CatalogRepository {
	return &CatalogRepository{q: tx}
}

const catalogColumns = `id, name, cakes, filename, description, author, inactive`

// listItems runs query and collects every row into T by column name
func listItems[T any](ctx context.Context, q queryable, table, query string) ([]*T, error) {
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, wrapError(err, fmt.Sprintf("failed to list %s", table))
	}

	items, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, wrapError(err, fmt.Sprintf("failed to scan %s", table))
	}
	if items == nil {
		items = []*T{}
	}
	return items, nil
}

// getItem looks up one row by business id; nil when absent. A row failing
// its Validate method is rejected so it can never be sold.
func getItem[T any](ctx context.Context, q queryable, table, query, id string) (*T, error) {
	rows, err := q.Query(ctx, query, id)
	if err != nil {
		return nil, wrapError(err, fmt.Sprintf("failed to get %s %s", table, id))
	}

	item, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapError(err, fmt.Sprintf("failed to scan %s %s", table, id))
	}
	if v, ok := any(item).(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("%s %s: %w: %w", table, id, service.ErrValidation, err)
		}
	}
	return item, nil
}

// GetAllBackgrounds returns every background in catalog order
func (r *CatalogRepository) GetAllBackgrounds(ctx context.Context) ([]*models.Background, error) {
	return listItems[models.Background](ctx, r.q, "backgrounds",
		`SELECT `+catalogColumns+` FROM backgrounds ORDER BY storage_id`)
}

// GetBackground returns the background with the given id
func (r *CatalogRepository) GetBackground(ctx context.Context, id string) (*models.Background, error) {
	return getItem[models.Background](ctx, r.q, "background",
		`SELECT `+catalogColumns+` FROM backgrounds WHERE id = $1`, id)
}

// GetAllLayouts returns every layout in catalog order
func (r *CatalogRepository) GetAllLayouts(ctx context.Context) ([]*models.Layout, error) {
	return listItems[models.Layout](ctx, r.q, "layouts",
		`SELECT `+catalogColumns+`, dark_text FROM layouts ORDER BY storage_id`)
}

// GetLayout returns the layout with the given id
func (r *CatalogRepository) GetLayout(ctx context.Context, id string) (*models.Layout, error) {
	return getItem[models.Layout](ctx, r.q, "layout",
		`SELECT `+catalogColumns+`, dark_text FROM layouts WHERE id = $1`, id)
}

// GetAllDecorations returns every avatar decoration in catalog order
func (r *CatalogRepository) GetAllDecorations(ctx context.Context) ([]*models.AvatarDecoration, error) {
	return listItems[models.AvatarDecoration](ctx, r.q, "decorations",
		`SELECT `+catalogColumns+`, is_mask FROM decorations ORDER BY storage_id`)
}

// GetDecoration returns the avatar decoration with the given id
func (r *CatalogRepository) GetDecoration(ctx context.Context, id string) (*models.AvatarDecoration, error) {
	return getItem[models.AvatarDecoration](ctx, r.q, "decoration",
		`SELECT `+catalogColumns+`, is_mask FROM decorations WHERE id = $1`, id)
}
