package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-device-trust/internal/logger"
)

// logCodeSender writes codes to the backend log instead of sending an SMS.
type logCodeSender struct {
	logger *logger.Logger
}

// NewLogCodeSender returns the [CodeSender] of the demo backend.
func NewLogCodeSender(log *logger.Logger) CodeSender {
	return &logCodeSender{logger: log}
}

func (s *logCodeSender) SendCode(_ context.Context, phone, code string) error {
	s.logger.Info().Str("phone", MaskPhone(phone)).Str("code", code).Msg("verification code issued")
	return nil
}

// Outbox is a [CodeSender] that keeps the last code sent to each phone.
type Outbox struct {
	mu    sync.Mutex
	codes map[string]string
	sent  int
}

func NewOutbox() *Outbox {
	return &Outbox{codes: make(map[string]string)}
}

func (o *Outbox) SendCode(_ context.Context, phone, code string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.codes[phone] = code
	o.sent++
	return nil
}

// Last returns the most recent code sent to phone.
func (o *Outbox) Last(phone string) (string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	code, ok := o.codes[phone]
	return code, ok
}

// Sent returns how many codes were sent.
func (o *Outbox) Sent() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.sent
}

// MaskPhone keeps the first two and the last four characters of phone.
func MaskPhone(phone string) string {
	if len(phone) <= 6 {
		return strings.Repeat("*", len(phone))
	}
	return phone[:2] + strings.Repeat("*", len(phone)-6) + phone[len(phone)-4:]
}

type expiringItem[V any] struct {
	value    V
	deadline time.Time
}

// expiring is a map whose entries disappear after their deadline. Expired
// entries are never returned; Sweep frees their memory.
type expiring[V any] struct {
	mu    sync.Mutex
	items map[string]expiringItem[V]
	now   func() time.Time
}

func newExpiring[V any](now func() time.Time) *expiring[V] {
	return &expiring[V]{items: make(map[string]expiringItem[V]), now: now}
}

func (e *expiring[V]) Put(key string, value V, ttl time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.items[key] = expiringItem[V]{value: value, deadline: e.now().Add(ttl)}
}

func (e *expiring[V]) Get(key string) (V, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.get(key)
}

func (e *expiring[V]) get(key string) (V, bool) {
	item, ok := e.items[key]
	if !ok || !e.now().Before(item.deadline) {
		delete(e.items, key)
		var zero V
		return zero, false
	}
	return item.value, true
}

// Take returns the entry and removes it.
func (e *expiring[V]) Take(key string) (V, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.get(key)
	delete(e.items, key)
	return v, ok
}

// Update applies fn to a live entry under the lock, keeping its deadline.
// The entry is removed when fn returns false.
func (e *expiring[V]) Update(key string, fn func(v *V) bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.get(key)
	if !ok {
		return false
	}
	if !fn(&v) {
		delete(e.items, key)
		return true
	}
	item := e.items[key]
	item.value = v
	e.items[key] = item
	return true
}

func (e *expiring[V]) Delete(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.items, key)
}

// Sweep drops expired entries and returns how many were dropped.
func (e *expiring[V]) Sweep() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	now, dropped := e.now(), 0
	for k, item := range e.items {
		if !now.Before(item.deadline) {
			delete(e.items, k)
			dropped++
		}
	}
	return dropped
}

// Sweeper periodically frees expired challenges and ceremony sessions.
type Sweeper struct {
	interval time.Duration
	sweeps   []func() int
	logger   *logger.Logger
}

// NewSweeper returns a worker sweeping every interval.
func NewSweeper(interval time.Duration, log *logger.Logger, sweeps ...func() int) *Sweeper {
	return &Sweeper{interval: interval, sweeps: sweeps, logger: log}
}

// Run implements [workers.Worker].
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			dropped := 0
			for _, sweep := range s.sweeps {
				dropped += sweep()
			}
			if dropped > 0 {
				s.logger.Debug().Str("func", "Sweeper.Run").Int("dropped", dropped).Msg("expired entries dropped")
			}
		}
	}
}
