// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tabsync propagates local scope changes between tabs.
//
// Every tab subscribes to the [Bus] with its own origin and never sees the
// events it produced itself. Tabs of one process feed the bus directly through
// [store.Storages]; when the local scope is a SQLite file shared by several
// processes a [FileWatcher] turns file notifications into bus events instead.
// A [Listener] reacts to login and logout performed by sibling tabs.
package tabsync

import (
	"sync"

	"github.com/MKhiriev/go-device-trust/internal/logger"
	"github.com/MKhiriev/go-device-trust/models"
)

const defaultBuffer = 32

// Bus fans local scope events out to subscribers. It implements
// [store.Notifier].
type Bus struct {
	mu     sync.RWMutex
	subs   map[uint64]*subscription
	next   uint64
	buffer int
	closed bool
	logger *logger.Logger
}

type subscription struct {
	origin string
	keys   map[string]struct{}
	ch     chan models.StorageEvent
	once   sync.Once
}

func (s *subscription) wants(ev models.StorageEvent) bool {
	if ev.Origin != "" && ev.Origin == s.origin {
		return false
	}
	if len(s.keys) == 0 {
		return true
	}
	_, ok := s.keys[ev.Key]
	return ok
}

func (s *subscription) close() {
	s.once.Do(func() { close(s.ch) })
}

// NewBus returns a bus whose subscribers buffer up to buffer events.
func NewBus(buffer int, log *logger.Logger) *Bus {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Bus{subs: make(map[uint64]*subscription), buffer: buffer, logger: log}
}

// Subscribe delivers events for keys, or for every key when none are given,
// that were not produced by origin. The channel is closed by cancel or by
// [Bus.Close].
func (b *Bus) Subscribe(origin string, keys ...string) (<-chan models.StorageEvent, func()) {
	sub := &subscription{origin: origin, ch: make(chan models.StorageEvent, b.buffer)}
	if len(keys) > 0 {
		sub.keys = make(map[string]struct{}, len(keys))
		for _, k := range keys {
			sub.keys[k] = struct{}{}
		}
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		sub.close()
		return sub.ch, func() {}
	}
	id := b.next
	b.next++
	b.subs[id] = sub
	b.mu.Unlock()

	return sub.ch, func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
		sub.close()
	}
}

// Publish implements [store.Notifier]. It never blocks: a subscriber that
// does not keep up loses the event.
func (b *Bus) Publish(ev models.StorageEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subs {
		if !sub.wants(ev) {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			b.logger.Warn().
				Str("func", "Bus.Publish").
				Str("key", ev.Key).
				Str("subscriber", sub.origin).
				Msg("subscriber is full, storage event dropped")
		}
	}
}

// Close closes every subscription. Later subscriptions are closed at once.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	for id, sub := range b.subs {
		sub.close()
		delete(b.subs, id)
	}
}
