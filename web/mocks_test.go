package web

import (
	"context"

	"foxyweb/checkout"
	"foxyweb/identity"
	"foxyweb/models"
	"foxyweb/service"

	"github.com/stretchr/testify/mock"
)

type MockStoreService struct{ mock.Mock }

func (m *MockStoreService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStoreService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockStoreService) CountUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStoreService) GetGuild(ctx context.Context, guildID string) (*models.Guild, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Guild), args.Error(1)
}

func (m *MockStoreService) AddGuild(ctx context.Context, guildID string) (*models.Guild, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Guild), args.Error(1)
}

func (m *MockStoreService) RemoveGuild(ctx context.Context, guildID string) (*models.Guild, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Guild), args.Error(1)
}

func (m *MockStoreService) GetAllGuilds(ctx context.Context) ([]*models.Guild, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Guild), args.Error(1)
}

func (m *MockStoreService) CountGuilds(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStoreService) GetCode(ctx context.Context, code string) (*models.RiotAccountLink, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RiotAccountLink), args.Error(1)
}

type MockEconomyService struct{ mock.Mock }

func (m *MockEconomyService) PurchaseItem(ctx context.Context, userID, itemID string) (*service.PurchaseResult, error) {
	args := m.Called(ctx, userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PurchaseResult), args.Error(1)
}

func (m *MockEconomyService) PurchaseDecoration(ctx context.Context, userID, decorationID string) (*service.PurchaseResult, error) {
	args := m.Called(ctx, userID, decorationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PurchaseResult), args.Error(1)
}

func (m *MockEconomyService) ChangeBackground(ctx context.Context, userID, backgroundID string) error {
	return m.Called(ctx, userID, backgroundID).Error(0)
}

func (m *MockEconomyService) ChangeDecoration(ctx context.Context, userID, decorationID string) error {
	return m.Called(ctx, userID, decorationID).Error(0)
}

func (m *MockEconomyService) DailyStatus(ctx context.Context, userID string) (*service.DailyStatus, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DailyStatus), args.Error(1)
}

func (m *MockEconomyService) ClaimDaily(ctx context.Context, userID string) (*service.DailyResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DailyResult), args.Error(1)
}

func (m *MockEconomyService) SpinRoulette(ctx context.Context, userID string) (*service.RouletteResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RouletteResult), args.Error(1)
}

func (m *MockEconomyService) RedeemPremiumKey(ctx context.Context, userID, key string) (*models.Premium, error) {
	args := m.Called(ctx, userID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Premium), args.Error(1)
}

func (m *MockEconomyService) LinkRiotAccount(ctx context.Context, userID, authCode string) (*models.RiotAccount, error) {
	args := m.Called(ctx, userID, authCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RiotAccount), args.Error(1)
}

func (m *MockEconomyService) DeleteAccount(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type MockCatalogService struct{ mock.Mock }

func (m *MockCatalogService) GetAllBackgrounds(ctx context.Context) ([]*models.Background, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Background), args.Error(1)
}

func (m *MockCatalogService) GetBackground(ctx context.Context, id string) (*models.Background, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Background), args.Error(1)
}

func (m *MockCatalogService) GetAllLayouts(ctx context.Context) ([]*models.Layout, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Layout), args.Error(1)
}

func (m *MockCatalogService) GetLayout(ctx context.Context, id string) (*models.Layout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Layout), args.Error(1)
}

func (m *MockCatalogService) GetAllDecorations(ctx context.Context) ([]*models.AvatarDecoration, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.AvatarDecoration), args.Error(1)
}

func (m *MockCatalogService) GetDecoration(ctx context.Context, id string) (*models.AvatarDecoration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AvatarDecoration), args.Error(1)
}

func (m *MockCatalogService) ResolveBackgrounds(ctx context.Context, ids []string) ([]*models.Background, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*models.Background), args.Error(1)
}

func (m *MockCatalogService) ResolveDecorations(ctx context.Context, ids []string) ([]*models.AvatarDecoration, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*models.AvatarDecoration), args.Error(1)
}

type MockCommandService struct{ mock.Mock }

func (m *MockCommandService) RegisterCommand(ctx context.Context, name, description string) (*models.Command, error) {
	args := m.Called(ctx, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Command), args.Error(1)
}

func (m *MockCommandService) RecordUsage(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *MockCommandService) GetAllCommands(ctx context.Context) ([]*models.Command, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Command), args.Error(1)
}

func (m *MockCommandService) GetListedCommands(ctx context.Context) ([]*models.Command, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Command), args.Error(1)
}

func (m *MockCommandService) GetCommandsByCategory(ctx context.Context, category string) ([]*models.Command, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]*models.Command), args.Error(1)
}

func (m *MockCommandService) GetAllUsageCount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockOAuthProvider struct{ mock.Mock }

func (m *MockOAuthProvider) AuthorizeURL(state string) string {
	return m.Called(state).String(0)
}

func (m *MockOAuthProvider) Exchange(ctx context.Context, code string) (*identity.Token, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Token), args.Error(1)
}

func (m *MockOAuthProvider) CurrentUser(ctx context.Context, accessToken string) (*service.Identity, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Identity), args.Error(1)
}

type MockCheckoutProvider struct{ mock.Mock }

func (m *MockCheckoutProvider) Create(ctx context.Context, userID, itemID string) (*checkout.Checkout, error) {
	args := m.Called(ctx, userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Checkout), args.Error(1)
}

func (m *MockCheckoutProvider) RedirectURL(checkoutID string) string {
	return m.Called(checkoutID).String(0)
}
