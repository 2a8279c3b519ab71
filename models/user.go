package models

import (
	"slices"
	"time"
)

const (
	// DefaultBackgroundID is owned and equipped by every new user
	DefaultBackgroundID = "default"
	// DefaultLayoutID is the layout every new user starts with
	DefaultLayoutID = "default"
	// DefaultLanguage is the language assigned to new users
	DefaultLanguage = "pt-br"
	// DefaultRouletteSpins is the number of roulette spins granted on creation
	DefaultRouletteSpins = 5
)

// PremiumTier identifies a premium subscription level
type PremiumTier string

const (
	PremiumTierOne   PremiumTier = "1"
	PremiumTierTwo   PremiumTier = "2"
	PremiumTierThree PremiumTier = "3"
)

// DailyMultiplier returns the daily reward multiplier for the tier
func (t PremiumTier) DailyMultiplier() float64 {
	switch t {
	case PremiumTierOne:
		return 1.25
	case PremiumTierTwo:
		return 1.5
	case PremiumTierThree:
		return 2
	default:
		return 1
	}
}

// IsValid reports whether t is a known tier
func (t PremiumTier) IsValid() bool {
	return t == PremiumTierOne || t == PremiumTierTwo || t == PremiumTierThree
}

// User is the persisted user document, keyed by the Discord user ID
type User struct {
	ID                string     `json:"id" validate:"required"`
	CreationTimestamp time.Time  `json:"creationTimestamp" validate:"required"`
	IsBanned          bool       `json:"isBanned"`
	BanDate           *time.Time `json:"banDate"`
	BanReason         *string    `json:"banReason"`

	Cakes        Cakes          `json:"cakes"`
	Marriage     Marriage       `json:"marriage"`
	Profile      Profile        `json:"profile"`
	Premium      Premium        `json:"premium"`
	Settings     Settings       `json:"settings"`
	Pet          Pet            `json:"pet"`
	Transactions []*Transaction `json:"transactions" validate:"dive"`
	RiotAccount  RiotAccount    `json:"riotAccount"`
	PremiumKeys  []string       `json:"premiumKeys" validate:"unique"`
	Roulette     Roulette       `json:"roulette"`

	// Version is the storage-level optimistic concurrency counter
	Version   int64     `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Cakes holds the currency balance
type Cakes struct {
	Balance   int64      `json:"balance" validate:"gte=0"`
	LastDaily *time.Time `json:"lastDaily"`
}

// Marriage holds the marriage state of a user
type Marriage struct {
	PartnerID *string    `json:"partnerId"`
	Date      *time.Time `json:"date"`
	Locked    bool       `json:"locked"`
}

// Profile holds cosmetic profile state
type Profile struct {
	EquippedDecoration *string    `json:"equippedDecoration"`
	OwnedDecorations   []string   `json:"ownedDecorations" validate:"unique"`
	EquippedBackground string     `json:"equippedBackground" validate:"required"`
	OwnedBackgrounds   []string   `json:"ownedBackgrounds" validate:"required,unique"`
	ReputationCount    int64      `json:"reputationCount" validate:"gte=0"`
	LastRep            *time.Time `json:"lastRep"`
	Layout             string     `json:"layout" validate:"required"`
	Bio                *string    `json:"bio"`
}

// Premium holds the premium subscription state
type Premium struct {
	Active bool         `json:"active"`
	Since  *time.Time   `json:"since"`
	Tier   *PremiumTier `json:"tier"`
}

// Settings holds per-user preferences
type Settings struct {
	Language string `json:"language" validate:"required"`
}

// Pet is an independent sub-aggregate managed by the bot
type Pet struct {
	Name       *string    `json:"name"`
	Type       *string    `json:"type"`
	Rarity     *string    `json:"rarity"`
	Level      int        `json:"level"`
	Hunger     int        `json:"hunger"`
	Happiness  int        `json:"happiness"`
	Health     int        `json:"health"`
	LastHungry *time.Time `json:"lastHungry"`
	LastHappy  *time.Time `json:"lastHappy"`
	IsDead     bool       `json:"isDead"`
	IsClean    bool       `json:"isClean"`
	Food       []string   `json:"food"`
}

// RiotAccount holds the linked Riot Games account
type RiotAccount struct {
	Linked    bool    `json:"linked"`
	PUUID     *string `json:"puuid"`
	IsPrivate bool    `json:"isPrivate"`
	Region    *string `json:"region"`
}

// Roulette holds roulette spin state
type Roulette struct {
	AvailableSpins int `json:"availableSpins" validate:"gte=0"`
}

// NewUser builds a user document with every field set to its default
func NewUser(id string, now time.Time) *User {
	return &User{
		ID:                id,
		CreationTimestamp: now,
		Cakes:             Cakes{Balance: 0},
		Marriage:          Marriage{},
		Profile: Profile{
			OwnedDecorations:   []string{},
			EquippedBackground: DefaultBackgroundID,
			OwnedBackgrounds:   []string{DefaultBackgroundID},
			Layout:             DefaultLayoutID,
		},
		Premium:  Premium{},
		Settings: Settings{Language: DefaultLanguage},
		Pet: Pet{
			Hunger:    100,
			Happiness: 100,
			Health:    100,
			IsClean:   true,
			Food:      []string{},
		},
		Transactions: []*Transaction{},
		PremiumKeys:  []string{},
		Roulette:     Roulette{AvailableSpins: DefaultRouletteSpins},
	}
}

// Validate checks the document invariants
func (u *User) Validate() error {
	return validate.Struct(u)
}

// CanAfford checks if the user has enough cakes for an amount
func (u *User) CanAfford(amount int64) bool {
	return u.Cakes.Balance >= amount
}

// OwnsBackground reports whether the background is in the owned set
func (u *User) OwnsBackground(id string) bool {
	return slices.Contains(u.Profile.OwnedBackgrounds, id)
}

// OwnsDecoration reports whether the decoration is in the owned set
func (u *User) OwnsDecoration(id string) bool {
	return slices.Contains(u.Profile.OwnedDecorations, id)
}

// AddBackground appends a background to the owned set, ignoring duplicates
func (u *User) AddBackground(id string) {
	if !u.OwnsBackground(id) {
		u.Profile.OwnedBackgrounds = append(u.Profile.OwnedBackgrounds, id)
	}
}

// AddDecoration appends a decoration to the owned set, ignoring duplicates
func (u *User) AddDecoration(id string) {
	if !u.OwnsDecoration(id) {
		u.Profile.OwnedDecorations = append(u.Profile.OwnedDecorations, id)
	}
}

// PremiumTier returns the active premium tier, or an empty tier
func (u *User) PremiumTier() PremiumTier {
	if !u.Premium.Active || u.Premium.Tier == nil {
		return ""
	}
	return *u.Premium.Tier
}

// IsMarriedTo reports whether the user's partner reference points at partnerID
func (u *User) IsMarriedTo(partnerID string) bool {
	return u.Marriage.PartnerID != nil && *u.Marriage.PartnerID == partnerID
}

// AppendTransaction appends to the transaction log
func (u *User) AppendTransaction(tx *Transaction) {
	u.Transactions = append(u.Transactions, tx)
}
