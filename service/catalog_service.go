package service

import (
	"context"
	"fmt"

	"foxyweb/models"

	log "github.com/sirupsen/logrus"
)

// catalogService implements CatalogService. Catalog data is immutable
// reference data so reads go straight to the pool.
type catalogService struct {
	repo CatalogRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo CatalogRepository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) GetAllBackgrounds(ctx context.Context) ([]*models.Background, error) {
	backgrounds, err := s.repo.GetAllBackgrounds(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get backgrounds: %w", err)
	}
	return backgrounds, nil
}

func (s *catalogService) GetBackground(ctx context.Context, id string) (*models.Background, error) {
	background, err := s.repo.GetBackground(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get background: %w", err)
	}
	return background, nil
}

func (s *catalogService) GetAllLayouts(ctx context.Context) ([]*models.Layout, error) {
	layouts, err := s.repo.GetAllLayouts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get layouts: %w", err)
	}
	return layouts, nil
}

func (s *catalogService) GetLayout(ctx context.Context, id string) (*models.Layout, error) {
	layout, err := s.repo.GetLayout(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get layout: %w", err)
	}
	return layout, nil
}

func (s *catalogService) GetAllDecorations(ctx context.Context) ([]*models.AvatarDecoration, error) {
	decorations, err := s.repo.GetAllDecorations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get decorations: %w", err)
	}
	return decorations, nil
}

func (s *catalogService) GetDecoration(ctx context.Context, id string) (*models.AvatarDecoration, error) {
	decoration, err := s.repo.GetDecoration(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get decoration: %w", err)
	}
	return decoration, nil
}

// ResolveBackgrounds maps owned ids to catalog backgrounds in order,
// skipping ids that are no longer in the catalog
func (s *catalogService) ResolveBackgrounds(ctx context.Context, ids []string) ([]*models.Background, error) {
	backgrounds := make([]*models.Background, 0, len(ids))
	for _, id := range ids {
		background, err := s.GetBackground(ctx, id)
		if err != nil {
			return nil, err
		}
		if background == nil {
			log.WithField("backgroundID", id).Warn("Owned background missing from catalog")
			continue
		}
		backgrounds = append(backgrounds, background)
	}
	return backgrounds, nil
}

// ResolveDecorations maps owned ids to catalog decorations in order,
// skipping ids that are no longer in the catalog
func (s *catalogService) ResolveDecorations(ctx context.Context, ids []string) ([]*models.AvatarDecoration, error) {
	decorations := make([]*models.AvatarDecoration, 0, len(ids))
	for _, id := range ids {
		decoration, err := s.GetDecoration(ctx, id)
		if err != nil {
			return nil, err
		}
		if decoration == nil {
			log.WithField("decorationID", id).Warn("Owned decoration missing from catalog")
			continue
		}
		decorations = append(decorations, decoration)
	}
	return decorations, nil
}
