package service

import (
	"context"
	"time"

	"foxyweb/events"
	"foxyweb/models"
)

// UserRepository defines the interface for user document access
type UserRepository interface {
	// GetByID retrieves a user document, returning nil if it does not exist
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetForUpdate retrieves a user document and locks it until the transaction ends
	GetForUpdate(ctx context.Context, id string) (*models.User, error)

	// GetManyForUpdate locks the existing documents among ids in id order
	GetManyForUpdate(ctx context.Context, ids []string) ([]*models.User, error)

	// GetOrCreate inserts user if no document exists for its ID and returns
	// the stored document. created reports whether the insert happened.
	GetOrCreate(ctx context.Context, user *models.User) (stored *models.User, created bool, err error)

	// Update writes the document back if its version is unchanged
	Update(ctx context.Context, user *models.User) error

	// Delete removes a user document, reporting whether one existed
	Delete(ctx context.Context, id string) (bool, error)

	// GetAll returns every user document
	GetAll(ctx context.Context) ([]*models.User, error)

	// Count returns the number of user documents
	Count(ctx context.Context) (int64, error)
}

// GuildRepository defines the interface for guild document access
type GuildRepository interface {
	// GetByID retrieves a guild document, returning nil if it does not exist
	GetByID(ctx context.Context, id string) (*models.Guild, error)

	// GetOrCreate inserts guild if absent and returns the stored document.
	// created reports whether the insert happened.
	GetOrCreate(ctx context.Context, guild *models.Guild) (stored *models.Guild, created bool, err error)

	// Delete removes a guild document and returns it, or nil if it did not exist
	Delete(ctx context.Context, id string) (*models.Guild, error)

	// GetAll returns every guild document
	GetAll(ctx context.Context) ([]*models.Guild, error)

	// Count returns the number of guild documents
	Count(ctx context.Context) (int64, error)
}

// CommandRepository defines the interface for the bot command registry
type CommandRepository interface {
	// Upsert updates the description of an existing command or inserts it with zero usage
	Upsert(ctx context.Context, name, description string) (*models.Command, error)

	// GetAll returns every registered command
	GetAll(ctx context.Context) ([]*models.Command, error)

	// IncrementUsage adds one to a command's usage counter
	IncrementUsage(ctx context.Context, name string) error

	// TotalUsage returns the sum of all usage counters
	TotalUsage(ctx context.Context) (int64, error)
}

// CatalogRepository defines read access to purchasable items.
// Single-item lookups use the business id and return nil when absent.
type CatalogRepository interface {
	GetAllBackgrounds(ctx context.Context) ([]*models.Background, error)
	GetBackground(ctx context.Context, id string) (*models.Background, error)
	GetAllLayouts(ctx context.Context) ([]*models.Layout, error)
	GetLayout(ctx context.Context, id string) (*models.Layout, error)
	GetAllDecorations(ctx context.Context) ([]*models.AvatarDecoration, error)
	GetDecoration(ctx context.Context, id string) (*models.AvatarDecoration, error)
}

// RiotAccountRepository defines access to pending Riot account links
type RiotAccountRepository interface {
	// GetByCode retrieves a pending link by auth code, returning nil if absent
	GetByCode(ctx context.Context, code string) (*models.RiotAccountLink, error)

	// Consume removes a pending link once it has been attached to a user
	Consume(ctx context.Context, code string) error
}

// PremiumKeyRepository defines access to redeemable premium keys
type PremiumKeyRepository interface {
	// GetForUpdate retrieves and locks a key, returning nil if absent
	GetForUpdate(ctx context.Context, key string) (*models.PremiumKey, error)

	// MarkUsed flags the key as redeemed by userID
	MarkUsed(ctx context.Context, key string, userID string) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	UserRepository() UserRepository
	GuildRepository() GuildRepository
	CommandRepository() CommandRepository
	CatalogRepository() CatalogRepository
	RiotAccountRepository() RiotAccountRepository
	PremiumKeyRepository() PremiumKeyRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// IdentityResolver maps a platform user ID to its canonical profile
type IdentityResolver interface {
	ResolveUser(ctx context.Context, userID string) (*Identity, error)
}

// Identity is the canonical profile of a platform user
type Identity struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"globalName,omitempty"`
	Avatar     string `json:"avatar,omitempty"`
}

// RandomSource supplies the randomness used by reward draws
type RandomSource interface {
	// IntN returns a uniform integer in [0, n)
	IntN(n int) int
}

// Clock returns the current time
type Clock func() time.Time

// StoreService exposes the document store accessors
type StoreService interface {
	// GetUser returns the user document, creating it with defaults on first access
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// GetAllUsers returns every user document
	GetAllUsers(ctx context.Context) ([]*models.User, error)

	// CountUsers returns the number of user documents
	CountUsers(ctx context.Context) (int64, error)

	// GetGuild returns the guild document, creating it on first access
	GetGuild(ctx context.Context, guildID string) (*models.Guild, error)

	// AddGuild creates the guild document if absent and returns it
	AddGuild(ctx context.Context, guildID string) (*models.Guild, error)

	// RemoveGuild deletes the guild document; returns nil without error if absent
	RemoveGuild(ctx context.Context, guildID string) (*models.Guild, error)

	// GetAllGuilds returns every guild document
	GetAllGuilds(ctx context.Context) ([]*models.Guild, error)

	// CountGuilds returns the number of guild documents
	CountGuilds(ctx context.Context) (int64, error)

	// GetCode returns the pending Riot account link for an auth code, or nil
	GetCode(ctx context.Context, code string) (*models.RiotAccountLink, error)
}

// CommandService manages the bot command registry
type CommandService interface {
	// RegisterCommand upserts a command by name
	RegisterCommand(ctx context.Context, name, description string) (*models.Command, error)

	// RecordUsage increments the usage counter of a command
	RecordUsage(ctx context.Context, name string) error

	// GetAllCommands returns every registered command
	GetAllCommands(ctx context.Context) ([]*models.Command, error)

	// GetListedCommands returns commands suitable for public listings
	GetListedCommands(ctx context.Context) ([]*models.Command, error)

	// GetCommandsByCategory returns every command in a category
	GetCommandsByCategory(ctx context.Context, category string) ([]*models.Command, error)

	// GetAllUsageCount returns the sum of all usage counters
	GetAllUsageCount(ctx context.Context) (int64, error)
}

// CatalogService exposes read-only catalog lookups
type CatalogService interface {
	GetAllBackgrounds(ctx context.Context) ([]*models.Background, error)
	GetBackground(ctx context.Context, id string) (*models.Background, error)
	GetAllLayouts(ctx context.Context) ([]*models.Layout, error)
	GetLayout(ctx context.Context, id string) (*models.Layout, error)
	GetAllDecorations(ctx context.Context) ([]*models.AvatarDecoration, error)
	GetDecoration(ctx context.Context, id string) (*models.AvatarDecoration, error)

	// ResolveBackgrounds maps background ids to catalog items, skipping unknown ids
	ResolveBackgrounds(ctx context.Context, ids []string) ([]*models.Background, error)

	// ResolveDecorations maps decoration ids to catalog items, skipping unknown ids
	ResolveDecorations(ctx context.Context, ids []string) ([]*models.AvatarDecoration, error)
}

// EconomyService applies the stateful transactions of the cakes economy
type EconomyService interface {
	// PurchaseItem buys a decoration or background, decorations taking precedence
	PurchaseItem(ctx context.Context, userID, itemID string) (*PurchaseResult, error)

	// PurchaseDecoration buys a decoration and equips it
	PurchaseDecoration(ctx context.Context, userID, decorationID string) (*PurchaseResult, error)

	// ChangeBackground equips an owned background
	ChangeBackground(ctx context.Context, userID, backgroundID string) error

	// ChangeDecoration equips an owned decoration
	ChangeDecoration(ctx context.Context, userID, decorationID string) error

	// DailyStatus reports whether the daily reward can be claimed
	DailyStatus(ctx context.Context, userID string) (*DailyStatus, error)

	// ClaimDaily credits the daily reward
	ClaimDaily(ctx context.Context, userID string) (*DailyResult, error)

	// SpinRoulette consumes a spin and credits a weighted random prize
	SpinRoulette(ctx context.Context, userID string) (*RouletteResult, error)

	// RedeemPremiumKey activates premium with a key
	RedeemPremiumKey(ctx context.Context, userID, key string) (*models.Premium, error)

	// LinkRiotAccount attaches a pending Riot account link to the user
	LinkRiotAccount(ctx context.Context, userID, authCode string) (*models.RiotAccount, error)

	// DeleteAccount removes the user document
	DeleteAccount(ctx context.Context, userID string) error
}

// PurchaseResult describes a completed purchase
type PurchaseResult struct {
	Item       models.CatalogItem `json:"item"`
	ItemType   models.ItemType    `json:"itemType"`
	NewBalance int64              `json:"newBalance"`
	Equipped   bool               `json:"equipped"`
}

// DailyStatus describes daily reward eligibility
type DailyStatus struct {
	Allowed     bool      `json:"allowed"`
	AvailableAt time.Time `json:"availableAt"`
}

// DailyResult describes a claimed daily reward
type DailyResult struct {
	Coins      int64 `json:"coins"`
	TotalCoins int64 `json:"totalCoins"`
}

// RouletteResult describes a roulette spin
type RouletteResult struct {
	Prize          int64 `json:"result"`
	NewBalance     int64 `json:"newBalance"`
	AvailableSpins int   `json:"availableSpins"`
}
