package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-device-trust/internal/logger"
	"github.com/MKhiriev/go-device-trust/models"
)

// Storages is the [StorageAdapter] of one tab: a shared local scope and a
// private session scope. Writes to the local scope are tagged with the tab's
// origin and, when a notifier is set, published as [models.StorageEvent].
type Storages struct {
	local    KV
	session  KV
	origin   string
	notifier Notifier
	logger   *logger.Logger
}

// NewStorages wires the two scopes of a tab. notifier may be nil when local
// scope changes are observed some other way (for example by watching the
// SQLite file).
func NewStorages(local, session KV, origin string, notifier Notifier, log *logger.Logger) *Storages {
	return &Storages{
		local:    local,
		session:  session,
		origin:   origin,
		notifier: notifier,
		logger:   log,
	}
}

// Origin returns the identifier of the tab owning the session scope.
func (s *Storages) Origin() string {
	return s.origin
}

func (s *Storages) scope(scope models.Scope) (KV, error) {
	switch scope {
	case models.ScopeLocal:
		return s.local, nil
	case models.ScopeSession:
		return s.session, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScope, scope)
	}
}

// Get implements [StorageAdapter].
func (s *Storages) Get(ctx context.Context, scope models.Scope, key string) (string, error) {
	kv, err := s.scope(scope)
	if err != nil {
		return "", err
	}
	return kv.Get(ctx, key)
}

// Set implements [StorageAdapter].
func (s *Storages) Set(ctx context.Context, scope models.Scope, key, value string) error {
	kv, err := s.scope(scope)
	if err != nil {
		return err
	}

	old := s.previous(ctx, scope, kv, key)
	if err = kv.Set(ctx, key, value, s.origin); err != nil {
		s.logger.Err(err).
			Str("func", "Storages.Set").
			Str("scope", string(scope)).
			Str("key", key).
			Msg("failed to write storage key")
		return fmt.Errorf("set %s/%s: %w", scope, key, err)
	}

	s.publish(scope, models.StorageEvent{Key: key, OldValue: old, NewValue: value})
	return nil
}

// Remove implements [StorageAdapter].
func (s *Storages) Remove(ctx context.Context, scope models.Scope, key string) error {
	kv, err := s.scope(scope)
	if err != nil {
		return err
	}

	old := s.previous(ctx, scope, kv, key)
	if err = kv.Remove(ctx, key, s.origin); err != nil {
		s.logger.Err(err).
			Str("func", "Storages.Remove").
			Str("scope", string(scope)).
			Str("key", key).
			Msg("failed to remove storage key")
		return fmt.Errorf("remove %s/%s: %w", scope, key, err)
	}

	s.publish(scope, models.StorageEvent{Key: key, OldValue: old, Removed: true})
	return nil
}

// Clear implements [StorageAdapter].
func (s *Storages) Clear(ctx context.Context, scope models.Scope) error {
	kv, err := s.scope(scope)
	if err != nil {
		return err
	}

	var keys []string
	if scope == models.ScopeLocal && s.notifier != nil {
		keys, _ = kv.Keys(ctx)
	}

	if err = kv.Clear(ctx, s.origin); err != nil {
		s.logger.Err(err).
			Str("func", "Storages.Clear").
			Str("scope", string(scope)).
			Msg("failed to clear storage scope")
		return fmt.Errorf("clear %s: %w", scope, err)
	}

	for _, k := range keys {
		s.publish(scope, models.StorageEvent{Key: k, Removed: true})
	}
	return nil
}

// previous reads the value about to be replaced, only when somebody listens.
func (s *Storages) previous(ctx context.Context, scope models.Scope, kv KV, key string) string {
	if scope != models.ScopeLocal || s.notifier == nil {
		return ""
	}
	old, err := kv.Get(ctx, key)
	if err != nil && !errors.Is(err, ErrKeyNotFound) {
		s.logger.Debug().Err(err).Str("func", "Storages.previous").Str("key", key).Msg("old value unavailable")
	}
	return old
}

func (s *Storages) publish(scope models.Scope, event models.StorageEvent) {
	if scope != models.ScopeLocal || s.notifier == nil {
		return
	}
	event.Origin = s.origin
	s.notifier.Publish(event)
}
