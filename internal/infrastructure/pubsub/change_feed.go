package pubsub

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"boardgame-catalog-api/internal/domain"

	"github.com/rs/zerolog"
)

// Subscription receives change events matching its filter
type Subscription struct {
	ID     string
	Filter *ChangeFilter
	Events chan *domain.ChangeEvent
	Done   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
}

// ChangeFilter filters change events. Empty fields match everything.
type ChangeFilter struct {
	Kinds   []string
	Actions []domain.ChangeAction
}

// ChangeFeed fans resource mutations out to in-process subscribers
type ChangeFeed struct {
	mu       sync.RWMutex
	channels map[string]*Subscription
	logger   zerolog.Logger
	nextID   int64
	idMu     sync.Mutex
	buffer   int
}

// NewChangeFeed creates a new change feed
func NewChangeFeed(logger zerolog.Logger) *ChangeFeed {
	return &ChangeFeed{
		channels: make(map[string]*Subscription),
		logger:   logger.With().Str("component", "change_feed").Logger(),
		buffer:   64,
	}
}

// Subscribe creates a subscription that lives until ctx is cancelled or Unsubscribe is called
func (f *ChangeFeed) Subscribe(ctx context.Context, filter *ChangeFilter) *Subscription {
	f.idMu.Lock()
	f.nextID++
	id := fmt.Sprintf("subscription-%d", f.nextID)
	f.idMu.Unlock()

	subCtx, cancel := context.WithCancel(ctx)

	sub := &Subscription{
		ID:     id,
		Filter: filter,
		Events: make(chan *domain.ChangeEvent, f.buffer),
		Done:   make(chan struct{}),
		ctx:    subCtx,
		cancel: cancel,
	}

	f.mu.Lock()
	f.channels[id] = sub
	f.mu.Unlock()

	f.logger.Debug().Str("subscriptionId", id).Msg("Change subscription created")

	go func() {
		<-subCtx.Done()
		f.Unsubscribe(id)
	}()

	return sub
}

// Unsubscribe removes a subscription and closes its channels
func (f *ChangeFeed) Unsubscribe(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	sub, exists := f.channels[id]
	if !exists {
		return
	}

	close(sub.Events)
	close(sub.Done)
	sub.cancel()
	delete(f.channels, id)

	f.logger.Debug().Str("subscriptionId", id).Msg("Change subscription removed")
}

// Publish delivers event to every matching subscriber without blocking
func (f *ChangeFeed) Publish(event *domain.ChangeEvent) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, sub := range f.channels {
		if !sub.Filter.matches(event) {
			continue
		}
		select {
		case sub.Events <- event:
		case <-sub.ctx.Done():
		default:
			f.logger.Warn().
				Str("subscriptionId", sub.ID).
				Str("kind", event.Kind).
				Msg("Subscriber buffer full, dropping change event")
		}
	}
}

// Subscribers returns the number of active subscriptions
func (f *ChangeFeed) Subscribers() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.channels)
}

// Consume subscribes and runs handle for every event on its own goroutine.
// A panicking handler is logged and the consumer keeps running.
func (f *ChangeFeed) Consume(ctx context.Context, filter *ChangeFilter, handle func(*domain.ChangeEvent)) *Subscription {
	sub := f.Subscribe(ctx, filter)
	go func() {
		for event := range sub.Events {
			f.safeHandle(handle, event)
		}
	}()
	return sub
}

func (f *ChangeFeed) safeHandle(handle func(*domain.ChangeEvent), event *domain.ChangeEvent) {
	defer func() {
		if rec := recover(); rec != nil {
			f.logger.Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Str("kind", event.Kind).
				Msg("Change consumer panicked")
		}
	}()
	handle(event)
}

func (filter *ChangeFilter) matches(event *domain.ChangeEvent) bool {
	if filter == nil {
		return true
	}

	if len(filter.Kinds) > 0 && !contains(filter.Kinds, event.Kind) {
		return false
	}

	if len(filter.Actions) > 0 && !contains(filter.Actions, event.Action) {
		return false
	}

	return true
}

func contains[T comparable](items []T, want T) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}
