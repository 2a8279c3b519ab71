package service

import (
	"context"
	"fmt"
	"time"

	"foxyweb/events"
	"foxyweb/models"

	log "github.com/sirupsen/logrus"
)

// storeService implements StoreService
type storeService struct {
	uowFactory UnitOfWorkFactory
	identity   IdentityResolver
	clock      Clock
}

// NewStoreService creates a new store service
func NewStoreService(uowFactory UnitOfWorkFactory, identity IdentityResolver, clock Clock) StoreService {
	if clock == nil {
		clock = time.Now
	}
	return &storeService{
		uowFactory: uowFactory,
		identity:   identity,
		clock:      clock,
	}
}

// GetUser resolves the canonical user id and returns its document,
// creating it with defaults on first access
func (s *storeService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	identity, err := s.identity.ResolveUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user %s: %w", userID, err)
	}
	if identity == nil {
		return nil, fmt.Errorf("user %s: %w", userID, ErrUserNotFound)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := getOrCreateUser(ctx, uow, identity.ID, s.clock())
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return user, nil
}

// getOrCreateUser inserts a default document if none exists and publishes
// UserCreatedEvent when it did
func getOrCreateUser(ctx context.Context, uow UnitOfWork, userID string, now time.Time) (*models.User, error) {
	user, created, err := uow.UserRepository().GetOrCreate(ctx, models.NewUser(userID, now))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if created {
		log.WithField("userID", userID).Info("Created user document")
		uow.EventBus().Publish(events.UserCreatedEvent{UserID: userID})
	}

	return user, nil
}

// GetAllUsers returns every user document
func (s *storeService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	users, err := uow.UserRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	return users, nil
}

// CountUsers returns the number of user documents
func (s *storeService) CountUsers(ctx context.Context) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	count, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// GetGuild returns the guild document, creating it on first access
func (s *storeService) GetGuild(ctx context.Context, guildID string) (*models.Guild, error) {
	return s.AddGuild(ctx, guildID)
}

// AddGuild creates the guild document if absent and returns it
func (s *storeService) AddGuild(ctx context.Context, guildID string) (*models.Guild, error) {
	if guildID == "" {
		return nil, fmt.Errorf("%w: guild id is required", ErrValidation)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	repo := uow.GuildRepository()
	existing, err := repo.GetByID(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	guild, created, err := repo.GetOrCreate(ctx, models.NewGuild(guildID))
	if err != nil {
		return nil, fmt.Errorf("failed to create guild: %w", err)
	}
	if !created {
		return guild, nil
	}
	uow.EventBus().Publish(events.GuildAddedEvent{GuildID: guildID})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithField("guildID", guildID).Info("Created guild document")
	return guild, nil
}

// RemoveGuild deletes the guild document. Removing an unknown guild is not
// an error and returns nil.
func (s *storeService) RemoveGuild(ctx context.Context, guildID string) (*models.Guild, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	guild, err := uow.GuildRepository().Delete(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove guild: %w", err)
	}
	if guild == nil {
		return nil, nil
	}
	uow.EventBus().Publish(events.GuildRemovedEvent{GuildID: guildID})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithField("guildID", guildID).Info("Removed guild document")
	return guild, nil
}

// GetAllGuilds returns every guild document
func (s *storeService) GetAllGuilds(ctx context.Context) ([]*models.Guild, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	guilds, err := uow.GuildRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get guilds: %w", err)
	}
	return guilds, nil
}

// CountGuilds returns the number of guild documents
func (s *storeService) CountGuilds(ctx context.Context) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	count, err := uow.GuildRepository().Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count guilds: %w", err)
	}
	return count, nil
}

// GetCode returns the pending riot account link for an auth code, or nil
func (s *storeService) GetCode(ctx context.Context, code string) (*models.RiotAccountLink, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	link, err := uow.RiotAccountRepository().GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get riot auth code: %w", err)
	}
	return link, nil
}
