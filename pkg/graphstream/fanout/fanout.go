// Package fanout distributes one ordered chunk stream to multiple subscribers.
//
// The handler targets a single sink; fanout turns that sink into a pub/sub
// fan-out so several consumers (a UI renderer, a history recorder, a test
// collector) can observe the same stream over buffered channels.
package fanout

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/randalmurphal/graphstream/pkg/graphstream"
)

// Config configures broadcaster behavior.
type Config struct {
	// BufferSize is the channel buffer size per subscription.
	// Default: 256
	BufferSize int

	// NonBlocking makes Publish non-blocking (drops chunks if a
	// subscriber's buffer is full). Default: false (blocking), which
	// delivers every chunk at the cost of backpressure.
	NonBlocking bool

	// OnDrop is called when a chunk is dropped (non-blocking mode).
	OnDrop func(chunk graphstream.StreamChunk, subscriberID string)
}

// DefaultConfig provides reasonable defaults.
var DefaultConfig = Config{
	BufferSize: 256,
}

// Broadcaster fans one chunk stream out to all active subscriptions.
// Publish preserves emission order per subscriber.
type Broadcaster struct {
	config Config

	mu   sync.RWMutex
	subs map[int64]*Subscription

	nextID atomic.Int64
	closed atomic.Bool
}

// New creates a broadcaster.
func New(config Config) *Broadcaster {
	if config.BufferSize <= 0 {
		config.BufferSize = DefaultConfig.BufferSize
	}
	return &Broadcaster{
		config: config,
		subs:   make(map[int64]*Subscription),
	}
}

// Subscription is one consumer's view of the stream.
type Subscription struct {
	id   int64
	ch   chan graphstream.StreamChunk
	done chan struct{}
	b    *Broadcaster

	stopOnce  sync.Once
	closeOnce sync.Once
}

// Chunks returns the channel chunks are delivered on. The channel is closed
// when the subscription is unsubscribed or the broadcaster is closed.
func (s *Subscription) Chunks() <-chan graphstream.StreamChunk {
	return s.ch
}

// stop unblocks in-flight publishes to this subscription.
func (s *Subscription) stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
}

// Unsubscribe removes the subscription and closes its channel.
// Safe to call more than once, and after Close.
func (s *Subscription) Unsubscribe() {
	// Unblock any in-flight Publish first so the lock below cannot wait
	// on a send to a reader that is gone.
	s.stop()

	s.closeOnce.Do(func() {
		s.b.mu.Lock()
		delete(s.b.subs, s.id)
		close(s.ch)
		s.b.mu.Unlock()
	})
}

// Subscribe creates a subscription. Returns nil if the broadcaster is closed.
func (b *Broadcaster) Subscribe() *Subscription {
	if b.closed.Load() {
		return nil
	}
	sub := &Subscription{
		id:   b.nextID.Add(1),
		ch:   make(chan graphstream.StreamChunk, b.config.BufferSize),
		done: make(chan struct{}),
		b:    b,
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed.Load() {
		return nil
	}
	b.subs[sub.id] = sub
	return sub
}

// Publish delivers one chunk to every active subscription.
// No-op after Close.
func (b *Broadcaster) Publish(chunk graphstream.StreamChunk) {
	if b.closed.Load() {
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subs {
		if b.config.NonBlocking {
			select {
			case sub.ch <- chunk:
			case <-sub.done:
			default:
				if b.config.OnDrop != nil {
					b.config.OnDrop(chunk, "sub-"+strconv.FormatInt(sub.id, 10))
				}
			}
		} else {
			select {
			case sub.ch <- chunk:
			case <-sub.done:
			}
		}
	}
}

// Sink returns a graphstream.Sink that publishes into the broadcaster.
func (b *Broadcaster) Sink() graphstream.Sink {
	return b.Publish
}

// Close shuts down the broadcaster and closes all subscription channels.
// Safe to call more than once.
func (b *Broadcaster) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}

	b.mu.RLock()
	subs := make([]*Subscription, 0, len(b.subs))
	for _, sub := range b.subs {
		subs = append(subs, sub)
	}
	b.mu.RUnlock()

	for _, sub := range subs {
		sub.Unsubscribe()
	}
	return nil
}
