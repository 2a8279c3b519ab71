package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"foxyweb/events"
	"foxyweb/models"

	log "github.com/sirupsen/logrus"
)

// EconomyConfig holds the economy settings taken from configuration
type EconomyConfig struct {
	// OperatorID is the bot account on the other side of every transaction
	OperatorID string
	// RouletteEnabled turns the roulette on
	RouletteEnabled bool
}

// economyService implements EconomyService
type economyService struct {
	uowFactory UnitOfWorkFactory
	config     EconomyConfig
	rng        RandomSource
	clock      Clock
}

// NewEconomyService creates a new economy service
func NewEconomyService(uowFactory UnitOfWorkFactory, config EconomyConfig, rng RandomSource, clock Clock) EconomyService {
	if rng == nil {
		rng = DefaultRandomSource()
	}
	if clock == nil {
		clock = time.Now
	}
	return &economyService{
		uowFactory: uowFactory,
		config:     config,
		rng:        rng,
		clock:      clock,
	}
}

// lockUser returns the user document locked for the rest of the unit of
// work, creating it first if needed
func lockUser(ctx context.Context, uow UnitOfWork, userID string, now time.Time) (*models.User, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	if _, err := getOrCreateUser(ctx, uow, userID, now); err != nil {
		return nil, err
	}

	user, err := uow.UserRepository().GetForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, ErrUserNotFound)
	}
	return user, nil
}

// saveUser writes the user back, tagging storage failures as persistence errors
func saveUser(ctx context.Context, uow UnitOfWork, user *models.User) error {
	err := uow.UserRepository().Update(ctx, user)
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrConnection) || errors.Is(err, ErrPersistence) || errors.Is(err, ErrValidation) {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return fmt.Errorf("%w: failed to save user: %w", ErrPersistence, err)
}

// PurchaseItem buys a decoration or a background. Decorations are looked up
// first, so a decoration wins when both share an id.
func (s *economyService) PurchaseItem(ctx context.Context, userID, itemID string) (*PurchaseResult, error) {
	return s.purchase(ctx, userID, itemID, true)
}

// PurchaseDecoration buys a decoration and equips it
func (s *economyService) PurchaseDecoration(ctx context.Context, userID, decorationID string) (*PurchaseResult, error) {
	return s.purchase(ctx, userID, decorationID, false)
}

func (s *economyService) purchase(ctx context.Context, userID, itemID string, allowBackground bool) (*PurchaseResult, error) {
	now := s.clock()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := lockUser(ctx, uow, userID, now)
	if err != nil {
		return nil, err
	}

	item, err := s.resolvePurchasable(ctx, uow, itemID, allowBackground)
	if err != nil {
		return nil, err
	}

	if !user.CanAfford(item.Item.Cakes) {
		return nil, fmt.Errorf("%s costs %d, balance %d: %w", item.Item.ID, item.Item.Cakes, user.Cakes.Balance, ErrInsufficientBalance)
	}

	equipped := false
	switch item.Type {
	case models.ItemTypeDecoration:
		if user.OwnsDecoration(item.Item.ID) {
			return nil, fmt.Errorf("decoration %s: %w", item.Item.ID, ErrAlreadyOwned)
		}
		RecordBalanceChange(uow, user, -item.Item.Cakes, s.config.OperatorID, models.TransactionTypeStore, now)
		user.AddDecoration(item.Item.ID)
		decorationID := item.Item.ID
		user.Profile.EquippedDecoration = &decorationID
		equipped = true
	default:
		if user.OwnsBackground(item.Item.ID) {
			return nil, fmt.Errorf("background %s: %w", item.Item.ID, ErrAlreadyOwned)
		}
		RecordBalanceChange(uow, user, -item.Item.Cakes, s.config.OperatorID, models.TransactionTypeStore, now)
		user.AddBackground(item.Item.ID)
	}

	if err := saveUser(ctx, uow, user); err != nil {
		return nil, err
	}

	bus := uow.EventBus()
	bus.Publish(events.ItemPurchasedEvent{
		UserID:   user.ID,
		ItemID:   item.Item.ID,
		ItemType: item.Type,
		Price:    item.Item.Cakes,
	})
	if equipped {
		bus.Publish(events.ItemEquippedEvent{UserID: user.ID, ItemID: item.Item.ID, ItemType: item.Type})
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"userID":     user.ID,
		"itemID":     item.Item.ID,
		"itemType":   item.Type,
		"price":      item.Item.Cakes,
		"newBalance": user.Cakes.Balance,
	}).Info("Item purchased")

	return &PurchaseResult{
		Item:       item.Item,
		ItemType:   item.Type,
		NewBalance: user.Cakes.Balance,
		Equipped:   equipped,
	}, nil
}

func (s *economyService) resolvePurchasable(ctx context.Context, uow UnitOfWork, itemID string, allowBackground bool) (*models.Purchasable, error) {
	catalog := uow.CatalogRepository()

	decoration, err := catalog.GetDecoration(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get decoration: %w", err)
	}
	if decoration != nil {
		return &models.Purchasable{Item: decoration.CatalogItem, Type: models.ItemTypeDecoration}, nil
	}

	if allowBackground {
		background, err := catalog.GetBackground(ctx, itemID)
		if err != nil {
			return nil, fmt.Errorf("failed to get background: %w", err)
		}
		if background != nil {
			return &models.Purchasable{Item: background.CatalogItem, Type: models.ItemTypeBackground}, nil
		}
	}

	return nil, fmt.Errorf("item %s: %w", itemID, ErrItemNotFound)
}

// ChangeBackground equips an owned background
func (s *economyService) ChangeBackground(ctx context.Context, userID, backgroundID string) error {
	return s.equip(ctx, userID, backgroundID, models.ItemTypeBackground)
}

// ChangeDecoration equips an owned decoration
func (s *economyService) ChangeDecoration(ctx context.Context, userID, decorationID string) error {
	return s.equip(ctx, userID, decorationID, models.ItemTypeDecoration)
}

func (s *economyService) equip(ctx context.Context, userID, itemID string, itemType models.ItemType) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := lockUser(ctx, uow, userID, s.clock())
	if err != nil {
		return err
	}

	catalog := uow.CatalogRepository()
	switch itemType {
	case models.ItemTypeDecoration:
		decoration, err := catalog.GetDecoration(ctx, itemID)
		if err != nil {
			return fmt.Errorf("failed to get decoration: %w", err)
		}
		if decoration == nil {
			return fmt.Errorf("decoration %s: %w", itemID, ErrItemNotFound)
		}
		if !user.OwnsDecoration(decoration.ID) {
			return fmt.Errorf("decoration %s: %w", itemID, ErrNotOwned)
		}
		id := decoration.ID
		user.Profile.EquippedDecoration = &id
	default:
		background, err := catalog.GetBackground(ctx, itemID)
		if err != nil {
			return fmt.Errorf("failed to get background: %w", err)
		}
		if background == nil {
			return fmt.Errorf("background %s: %w", itemID, ErrItemNotFound)
		}
		if !user.OwnsBackground(background.ID) {
			return fmt.Errorf("background %s: %w", itemID, ErrNotOwned)
		}
		user.Profile.EquippedBackground = background.ID
	}

	if err := saveUser(ctx, uow, user); err != nil {
		return err
	}
	uow.EventBus().Publish(events.ItemEquippedEvent{UserID: user.ID, ItemID: itemID, ItemType: itemType})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DailyStatus reports whether the daily reward can be claimed now
func (s *economyService) DailyStatus(ctx context.Context, userID string) (*DailyStatus, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	now := s.clock()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := getOrCreateUser(ctx, uow, userID, now)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &DailyStatus{
		Allowed:     DailyAvailable(user.Cakes.LastDaily, now),
		AvailableAt: NextDailyAt(user.Cakes.LastDaily),
	}, nil
}

// ClaimDaily credits the daily reward if the cooldown has elapsed
func (s *economyService) ClaimDaily(ctx context.Context, userID string) (*DailyResult, error) {
	now := s.clock()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := lockUser(ctx, uow, userID, now)
	if err != nil {
		return nil, err
	}

	if !DailyAvailable(user.Cakes.LastDaily, now) {
		return nil, fmt.Errorf("next claim in %s: %w", TimeUntilDaily(user.Cakes.LastDaily, now).Round(time.Second), ErrDailyNotReady)
	}

	amount := DailyReward(s.rng, user.PremiumTier())
	RecordBalanceChange(uow, user, amount, s.config.OperatorID, models.TransactionTypeDaily, now)
	user.Cakes.LastDaily = &now

	if err := saveUser(ctx, uow, user); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"userID":     user.ID,
		"amount":     amount,
		"newBalance": user.Cakes.Balance,
	}).Info("Daily reward claimed")

	return &DailyResult{Coins: amount, TotalCoins: user.Cakes.Balance}, nil
}

// SpinRoulette consumes a spin and credits a weighted random prize
func (s *economyService) SpinRoulette(ctx context.Context, userID string) (*RouletteResult, error) {
	if !s.config.RouletteEnabled {
		return nil, ErrRouletteDisabled
	}
	now := s.clock()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := lockUser(ctx, uow, userID, now)
	if err != nil {
		return nil, err
	}

	if user.Roulette.AvailableSpins <= 0 {
		return nil, ErrNoSpins
	}

	user.Roulette.AvailableSpins--
	prize := DrawPrize(RoulettePrizes, s.rng)
	RecordBalanceChange(uow, user, prize, s.config.OperatorID, models.TransactionTypeRoulette, now)

	if err := saveUser(ctx, uow, user); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"userID":         user.ID,
		"prize":          prize,
		"availableSpins": user.Roulette.AvailableSpins,
	}).Info("Roulette spun")

	return &RouletteResult{
		Prize:          prize,
		NewBalance:     user.Cakes.Balance,
		AvailableSpins: user.Roulette.AvailableSpins,
	}, nil
}

// RedeemPremiumKey marks a key used and activates its tier on the user
func (s *economyService) RedeemPremiumKey(ctx context.Context, userID, key string) (*models.Premium, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("%w: premium key is required", ErrValidation)
	}
	now := s.clock()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	keyRepo := uow.PremiumKeyRepository()
	premiumKey, err := keyRepo.GetForUpdate(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get premium key: %w", err)
	}
	if premiumKey == nil {
		return nil, ErrKeyNotFound
	}
	if !premiumKey.Tier.IsValid() {
		return nil, fmt.Errorf("%w: premium key %s has unknown tier %q", ErrValidation, key, premiumKey.Tier)
	}
	if premiumKey.Used {
		return nil, ErrKeyUsed
	}
	if premiumKey.IsExpired(now) {
		return nil, ErrKeyExpired
	}
	if !premiumKey.CanBeRedeemedBy(userID) {
		return nil, ErrKeyNotOwned
	}

	user, err := lockUser(ctx, uow, userID, now)
	if err != nil {
		return nil, err
	}

	if err := keyRepo.MarkUsed(ctx, key, user.ID); err != nil {
		return nil, err
	}

	tier := premiumKey.Tier
	user.Premium = models.Premium{Active: true, Since: &now, Tier: &tier}
	if !slices.Contains(user.PremiumKeys, key) {
		user.PremiumKeys = append(user.PremiumKeys, key)
	}

	if err := saveUser(ctx, uow, user); err != nil {
		return nil, err
	}
	uow.EventBus().Publish(events.PremiumActivatedEvent{UserID: user.ID, Key: key, Tier: tier})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"userID": user.ID,
		"tier":   tier,
	}).Info("Premium key redeemed")

	return &user.Premium, nil
}

// LinkRiotAccount attaches the pending link for authCode to the user and
// consumes the code
func (s *economyService) LinkRiotAccount(ctx context.Context, userID, authCode string) (*models.RiotAccount, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	riotRepo := uow.RiotAccountRepository()
	link, err := riotRepo.GetByCode(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get riot auth code: %w", err)
	}
	if link == nil {
		return nil, ErrCodeNotFound
	}

	user, err := lockUser(ctx, uow, userID, s.clock())
	if err != nil {
		return nil, err
	}

	puuid := link.PUUID
	user.RiotAccount = models.RiotAccount{
		Linked:    true,
		PUUID:     &puuid,
		IsPrivate: user.RiotAccount.IsPrivate,
		Region:    link.Region,
	}

	if err := riotRepo.Consume(ctx, authCode); err != nil {
		return nil, err
	}
	if err := saveUser(ctx, uow, user); err != nil {
		return nil, err
	}
	uow.EventBus().Publish(events.RiotAccountLinkedEvent{UserID: user.ID, PUUID: puuid})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithField("userID", user.ID).Info("Riot account linked")
	return &user.RiotAccount, nil
}

// DeleteAccount removes the user document. A partner whose marriage points
// back at the user has that reference cleared.
func (s *economyService) DeleteAccount(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrInvalidUserID
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	repo := uow.UserRepository()
	current, err := repo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if current == nil {
		return nil
	}

	// Lock user and partner together, in id order
	ids := []string{userID}
	if p := current.Marriage.PartnerID; p != nil && *p != userID {
		ids = append(ids, *p)
	}
	locked, err := repo.GetManyForUpdate(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to lock users: %w", err)
	}
	byID := make(map[string]*models.User, len(locked))
	for _, u := range locked {
		byID[u.ID] = u
	}

	user := byID[userID]
	if user == nil {
		return nil
	}

	partnerID := user.Marriage.PartnerID
	if partnerID != nil && *partnerID != userID {
		partner, ok := byID[*partnerID]
		if !ok {
			// The marriage changed between the read and the lock
			partner, err = repo.GetForUpdate(ctx, *partnerID)
			if err != nil {
				return fmt.Errorf("failed to lock partner: %w", err)
			}
		}
		if partner != nil && partner.IsMarriedTo(userID) {
			partner.Marriage.PartnerID = nil
			partner.Marriage.Date = nil
			if err := saveUser(ctx, uow, partner); err != nil {
				return err
			}
		}
	}

	if _, err := repo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	uow.EventBus().Publish(events.UserDeletedEvent{UserID: userID, PartnerID: partnerID})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithField("userID", userID).Info("User account deleted")
	return nil
}
