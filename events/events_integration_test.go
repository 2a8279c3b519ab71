package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"foxyweb/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEventDeliveryIntegration tests the flow from TransactionalBus to the main Bus
func TestEventDeliveryIntegration(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	eventReceived := make(chan BalanceChangeEvent, 1)
	mainBus.Subscribe(EventTypeBalanceChange, func(ctx context.Context, event Event) {
		if balanceEvent, ok := event.(BalanceChangeEvent); ok {
			eventReceived <- balanceEvent
		} else {
			t.Errorf("Expected BalanceChangeEvent, got %T", event)
		}
	})

	testEvent := BalanceChangeEvent{
		UserID:          "123456",
		OldBalance:      1000,
		NewBalance:      1500,
		ChangeAmount:    500,
		TransactionType: models.TransactionTypeDaily,
	}

	transactionalBus.Publish(testEvent)
	assert.Len(t, transactionalBus.Pending(), 1)

	transactionalBus.Flush(context.Background())
	assert.Empty(t, transactionalBus.Pending())

	select {
	case received := <-eventReceived:
		assert.Equal(t, testEvent, received)
	case <-time.After(2 * time.Second):
		t.Fatal("Event was not received within timeout")
	}
}

func TestMultipleEventsDelivery(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	var mu sync.Mutex
	var received []string
	var wg sync.WaitGroup
	wg.Add(3)

	mainBus.Subscribe(EventTypeItemPurchased, func(ctx context.Context, event Event) {
		defer wg.Done()
		mu.Lock()
		defer mu.Unlock()
		received = append(received, event.(ItemPurchasedEvent).ItemID)
	})

	for _, id := range []string{"a", "b", "c"} {
		transactionalBus.Publish(ItemPurchasedEvent{UserID: "1", ItemID: id, ItemType: models.ItemTypeBackground, Price: 100})
	}
	transactionalBus.Flush(context.Background())

	wg.Wait()
	assert.ElementsMatch(t, []string{"a", "b", "c"}, received)
}

func TestDiscardedEventsAreNotDelivered(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	delivered := make(chan Event, 1)
	mainBus.SubscribeAll(func(ctx context.Context, event Event) {
		delivered <- event
	})

	transactionalBus.Publish(UserDeletedEvent{UserID: "1"})
	transactionalBus.Discard()
	transactionalBus.Flush(context.Background())

	select {
	case ev := <-delivered:
		t.Fatalf("unexpected event delivered: %v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestFlushDetachesFromCancelledContext(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	ctxErr := make(chan error, 1)
	mainBus.Subscribe(EventTypeGuildAdded, func(ctx context.Context, event Event) {
		ctxErr <- ctx.Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	transactionalBus.Publish(GuildAddedEvent{GuildID: "42"})
	transactionalBus.Flush(ctx)

	select {
	case err := <-ctxErr:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Event was not received within timeout")
	}
}

func TestHandlerPanicDoesNotAffectOthers(t *testing.T) {
	bus := NewBus()

	done := make(chan struct{})
	bus.Subscribe(EventTypeUserCreated, func(ctx context.Context, event Event) {
		panic("boom")
	})
	bus.Subscribe(EventTypeUserCreated, func(ctx context.Context, event Event) {
		close(done)
	})

	bus.Emit(context.Background(), UserCreatedEvent{UserID: "1"})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("second handler was not called")
	}
}

type recordingPublisher struct {
	mu       sync.Mutex
	subjects []string
	payloads [][]byte
	err      error
}

func (p *recordingPublisher) Publish(subject string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.subjects = append(p.subjects, subject)
	p.payloads = append(p.payloads, data)
	return nil
}

func TestNATSForwarder_Forward(t *testing.T) {
	pub := &recordingPublisher{}
	forwarder := NewNATSForwarder(pub, "foxy.events")

	event := PremiumActivatedEvent{UserID: "7", Key: "KEY", Tier: models.PremiumTierTwo}
	require.NoError(t, forwarder.Forward(event))

	require.Len(t, pub.subjects, 1)
	assert.Equal(t, "foxy.events.premium_activated", pub.subjects[0])

	var envelope Envelope
	require.NoError(t, json.Unmarshal(pub.payloads[0], &envelope))
	assert.NotEmpty(t, envelope.EventID)
	assert.Equal(t, EventTypePremiumActivated, envelope.EventType)
	assert.Equal(t, "foxyweb", envelope.SourceService)

	var payload PremiumActivatedEvent
	require.NoError(t, json.Unmarshal(envelope.Payload, &payload))
	assert.Equal(t, event, payload)
}

func TestNATSForwarder_PublishError(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("connection closed")}
	forwarder := NewNATSForwarder(pub, "foxy.events")

	err := forwarder.Forward(UserCreatedEvent{UserID: "1"})
	assert.ErrorContains(t, err, "connection closed")

	// Handle only logs
	forwarder.Handle(context.Background(), UserCreatedEvent{UserID: "1"})
}
