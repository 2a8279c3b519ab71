package repository

import (
	"context"
	"errors"
	"fmt"

	"foxyweb/database"
	"foxyweb/events"
	"foxyweb/service"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus
	userRepo         service.UserRepository
	guildRepo        service.GuildRepository
	commandRepo      service.CommandRepository
	catalogRepo      service.CatalogRepository
	riotAccountRepo  service.RiotAccountRepository
	premiumKeyRepo   service.PremiumKeyRepository
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return wrapError(err, "failed to begin transaction")
	}

	u.tx = tx
	u.ctx = ctx

	u.userRepo = newUserRepositoryWithTx(tx)
	u.guildRepo = newGuildRepositoryWithTx(tx)
	u.commandRepo = newCommandRepositoryWithTx(tx)
	u.catalogRepo = newCatalogRepositoryWithTx(tx)
	u.riotAccountRepo = newRiotAccountRepositoryWithTx(tx)
	u.premiumKeyRepo = newPremiumKeyRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction and flushes pending events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	u.tx = nil
	if err != nil {
		u.transactionalBus.Discard()
		return fmt.Errorf("%w: commit: %w", service.ErrPersistence, err)
	}

	u.transactionalBus.Flush(u.ctx)

	return nil
}

// Rollback rolls back the transaction; a no-op after Commit
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(u.ctx)
	u.tx = nil
	u.transactionalBus.Discard()

	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	return nil
}

func mustBegin[T any](repo T, started bool) T {
	if !started {
		panic("unit of work not started - call Begin() first")
	}
	return repo
}

// UserRepository returns the user repository for this unit of work
func (u *unitOfWork) UserRepository() service.UserRepository {
	return mustBegin(u.userRepo, u.userRepo != nil)
}

// GuildRepository returns the guild repository for this unit of work
func (u *unitOfWork) GuildRepository() service.GuildRepository {
	return mustBegin(u.guildRepo, u.guildRepo != nil)
}

// CommandRepository returns the command repository for this unit of work
func (u *unitOfWork) CommandRepository() service.CommandRepository {
	return mustBegin(u.commandRepo, u.commandRepo != nil)
}

// CatalogRepository returns the catalog repository for this unit of work
func (u *unitOfWork) CatalogRepository() service.CatalogRepository {
	return mustBegin(u.catalogRepo, u.catalogRepo != nil)
}

// RiotAccountRepository returns the riot account repository for this unit of work
func (u *unitOfWork) RiotAccountRepository() service.RiotAccountRepository {
	return mustBegin(u.riotAccountRepo, u.riotAccountRepo != nil)
}

// PremiumKeyRepository returns the premium key repository for this unit of work
func (u *unitOfWork) PremiumKeyRepository() service.PremiumKeyRepository {
	return mustBegin(u.premiumKeyRepo, u.premiumKeyRepo != nil)
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	if u.transactionalBus == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalBus
}
