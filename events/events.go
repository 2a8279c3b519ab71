package events

import (
	"context"
	"sync"

	"foxyweb/models"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange     EventType = "balance_change"
	EventTypeUserCreated       EventType = "user_created"
	EventTypeUserDeleted       EventType = "user_deleted"
	EventTypeItemPurchased     EventType = "item_purchased"
	EventTypeItemEquipped      EventType = "item_equipped"
	EventTypePremiumActivated  EventType = "premium_activated"
	EventTypeRiotAccountLinked EventType = "riot_account_linked"
	EventTypeGuildAdded        EventType = "guild_added"
	EventTypeGuildRemoved      EventType = "guild_removed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a balance change that occurred
type BalanceChangeEvent struct {
	UserID          string                 `json:"userId"`
	OldBalance      int64                  `json:"oldBalance"`
	NewBalance      int64                  `json:"newBalance"`
	ChangeAmount    int64                  `json:"changeAmount"`
	TransactionType models.TransactionType `json:"transactionType"`
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// UserCreatedEvent represents a lazily created user document
type UserCreatedEvent struct {
	UserID string `json:"userId"`
}

func (e UserCreatedEvent) Type() EventType {
	return EventTypeUserCreated
}

// UserDeletedEvent represents an account deletion
type UserDeletedEvent struct {
	UserID    string  `json:"userId"`
	PartnerID *string `json:"partnerId,omitempty"`
}

func (e UserDeletedEvent) Type() EventType {
	return EventTypeUserDeleted
}

// ItemPurchasedEvent represents a store purchase
type ItemPurchasedEvent struct {
	UserID   string          `json:"userId"`
	ItemID   string          `json:"itemId"`
	ItemType models.ItemType `json:"itemType"`
	Price    int64           `json:"price"`
}

func (e ItemPurchasedEvent) Type() EventType {
	return EventTypeItemPurchased
}

// ItemEquippedEvent represents a cosmetic change
type ItemEquippedEvent struct {
	UserID   string          `json:"userId"`
	ItemID   string          `json:"itemId"`
	ItemType models.ItemType `json:"itemType"`
}

func (e ItemEquippedEvent) Type() EventType {
	return EventTypeItemEquipped
}

// PremiumActivatedEvent represents a redeemed premium key
type PremiumActivatedEvent struct {
	UserID string             `json:"userId"`
	Key    string             `json:"key"`
	Tier   models.PremiumTier `json:"tier"`
}

func (e PremiumActivatedEvent) Type() EventType {
	return EventTypePremiumActivated
}

// RiotAccountLinkedEvent represents a completed Riot account link
type RiotAccountLinkedEvent struct {
	UserID string `json:"userId"`
	PUUID  string `json:"puuid"`
}

func (e RiotAccountLinkedEvent) Type() EventType {
	return EventTypeRiotAccountLinked
}

// GuildAddedEvent represents a newly created guild document
type GuildAddedEvent struct {
	GuildID string `json:"guildId"`
}

func (e GuildAddedEvent) Type() EventType {
	return EventTypeGuildAdded
}

// GuildRemovedEvent represents a deleted guild document
type GuildRemovedEvent struct {
	GuildID string `json:"guildId"`
}

func (e GuildRemovedEvent) Type() EventType {
	return EventTypeGuildRemoved
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu          sync.RWMutex
	handlers    map[EventType][]Handler
	allHandlers []Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// SubscribeAll adds a handler that receives every event
func (b *Bus) SubscribeAll(handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.allHandlers = append(b.allHandlers, handler)
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers[event.Type()])+len(b.allHandlers))
	handlers = append(handlers, b.handlers[event.Type()]...)
	handlers = append(handlers, b.allHandlers...)
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event to handlers")

	// Call handlers asynchronously to avoid blocking
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus holds events raised inside a unit of work until the
// transaction commits
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

// NewTransactionalBus creates a transactional bus flushing into real
func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

// Publish queues an event until Flush
func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Pending returns the queued events
func (b *TransactionalBus) Pending() []Event {
	return b.pending
}

// Flush emits queued events; called after a successful commit
func (b *TransactionalBus) Flush(ctx context.Context) {
	log.WithField("pendingEventCount", len(b.pending)).Debug("Flushing pending events")

	// Handlers outlive the request, so they get a detached context
	eventCtx := context.WithoutCancel(ctx)

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
}

// Discard drops queued events; called after a rollback
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
