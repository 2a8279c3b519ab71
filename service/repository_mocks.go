package service

import (
	"context"

	"foxyweb/events"
	"foxyweb/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetForUpdate(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetManyForUpdate(ctx context.Context, ids []string) ([]*models.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) GetOrCreate(ctx context.Context, user *models.User) (*models.User, bool, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.Bool(1), args.Error(2)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockGuildRepository is a mock implementation of GuildRepository
type MockGuildRepository struct {
	mock.Mock
}

func (m *MockGuildRepository) GetByID(ctx context.Context, id string) (*models.Guild, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Guild), args.Error(1)
}

func (m *MockGuildRepository) GetOrCreate(ctx context.Context, guild *models.Guild) (*models.Guild, bool, error) {
	args := m.Called(ctx, guild)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Guild), args.Bool(1), args.Error(2)
}

func (m *MockGuildRepository) Delete(ctx context.Context, id string) (*models.Guild, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Guild), args.Error(1)
}

func (m *MockGuildRepository) GetAll(ctx context.Context) ([]*models.Guild, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Guild), args.Error(1)
}

func (m *MockGuildRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockCommandRepository is a mock implementation of CommandRepository
type MockCommandRepository struct {
	mock.Mock
}

func (m *MockCommandRepository) Upsert(ctx context.Context, name, description string) (*models.Command, error) {
	args := m.Called(ctx, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Command), args.Error(1)
}

func (m *MockCommandRepository) GetAll(ctx context.Context) ([]*models.Command, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Command), args.Error(1)
}

func (m *MockCommandRepository) IncrementUsage(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockCommandRepository) TotalUsage(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockCatalogRepository is a mock implementation of CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) GetAllBackgrounds(ctx context.Context) ([]*models.Background, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Background), args.Error(1)
}

func (m *MockCatalogRepository) GetBackground(ctx context.Context, id string) (*models.Background, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Background), args.Error(1)
}

func (m *MockCatalogRepository) GetAllLayouts(ctx context.Context) ([]*models.Layout, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Layout), args.Error(1)
}

func (m *MockCatalogRepository) GetLayout(ctx context.Context, id string) (*models.Layout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Layout), args.Error(1)
}

func (m *MockCatalogRepository) GetAllDecorations(ctx context.Context) ([]*models.AvatarDecoration, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AvatarDecoration), args.Error(1)
}

func (m *MockCatalogRepository) GetDecoration(ctx context.Context, id string) (*models.AvatarDecoration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AvatarDecoration), args.Error(1)
}

// MockRiotAccountRepository is a mock implementation of RiotAccountRepository
type MockRiotAccountRepository struct {
	mock.Mock
}

func (m *MockRiotAccountRepository) GetByCode(ctx context.Context, code string) (*models.RiotAccountLink, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RiotAccountLink), args.Error(1)
}

func (m *MockRiotAccountRepository) Consume(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

// MockPremiumKeyRepository is a mock implementation of PremiumKeyRepository
type MockPremiumKeyRepository struct {
	mock.Mock
}

func (m *MockPremiumKeyRepository) GetForUpdate(ctx context.Context, key string) (*models.PremiumKey, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PremiumKey), args.Error(1)
}

func (m *MockPremiumKeyRepository) MarkUsed(ctx context.Context, key string, userID string) error {
	args := m.Called(ctx, key, userID)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repository getters
// return the fields set on it; unset repositories panic like the real one.
type MockUnitOfWork struct {
	mock.Mock
	UserRepo        *MockUserRepository
	GuildRepo       *MockGuildRepository
	CommandRepo     *MockCommandRepository
	CatalogRepo     *MockCatalogRepository
	RiotAccountRepo *MockRiotAccountRepository
	PremiumKeyRepo  *MockPremiumKeyRepository
	Publisher       *MockEventPublisher
}

// NewMockUnitOfWork creates a mock unit of work with every repository mocked
func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		UserRepo:        new(MockUserRepository),
		GuildRepo:       new(MockGuildRepository),
		CommandRepo:     new(MockCommandRepository),
		CatalogRepo:     new(MockCatalogRepository),
		RiotAccountRepo: new(MockRiotAccountRepository),
		PremiumKeyRepo:  new(MockPremiumKeyRepository),
		Publisher:       new(MockEventPublisher),
	}
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) UserRepository() UserRepository {
	return m.UserRepo
}

func (m *MockUnitOfWork) GuildRepository() GuildRepository {
	return m.GuildRepo
}

func (m *MockUnitOfWork) CommandRepository() CommandRepository {
	return m.CommandRepo
}

func (m *MockUnitOfWork) CatalogRepository() CatalogRepository {
	return m.CatalogRepo
}

func (m *MockUnitOfWork) RiotAccountRepository() RiotAccountRepository {
	return m.RiotAccountRepo
}

func (m *MockUnitOfWork) PremiumKeyRepository() PremiumKeyRepository {
	return m.PremiumKeyRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.Publisher
}

// AssertAllExpectations asserts expectations on the unit of work and every repository
func (m *MockUnitOfWork) AssertAllExpectations(t mock.TestingT) {
	m.AssertExpectations(t)
	m.UserRepo.AssertExpectations(t)
	m.GuildRepo.AssertExpectations(t)
	m.CommandRepo.AssertExpectations(t)
	m.CatalogRepo.AssertExpectations(t)
	m.RiotAccountRepo.AssertExpectations(t)
	m.PremiumKeyRepo.AssertExpectations(t)
	m.Publisher.AssertExpectations(t)
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}

// MockIdentityResolver is a mock implementation of IdentityResolver
type MockIdentityResolver struct {
	mock.Mock
}

func (m *MockIdentityResolver) ResolveUser(ctx context.Context, userID string) (*Identity, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Identity), args.Error(1)
}
