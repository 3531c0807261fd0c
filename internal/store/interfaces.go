// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store implements the two key/value scopes a tab works with.
//
// The local scope is shared by every tab and survives restarts; it is backed
// either by SQLite (one file shared between processes) or by an in-process
// map (tabs of one process). The session scope always lives in memory and is
// owned by a single tab.
//
// [Storages] combines both scopes behind [StorageAdapter] and, when
// configured with a [Notifier], publishes local scope mutations so other tabs
// can react to them.
package store

import (
	"context"

	"github.com/MKhiriev/go-device-trust/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// StorageAdapter is the get/set/remove capability over the two named scopes.
// It is injected into every component that persists trust state.
type StorageAdapter interface {
	// Get returns the value stored under key or [ErrKeyNotFound].
	Get(ctx context.Context, scope models.Scope, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, scope models.Scope, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, scope models.Scope, key string) error

	// Clear deletes every key of the scope.
	Clear(ctx context.Context, scope models.Scope) error
}

// KV is a single key/value area.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value, origin string) error
	Remove(ctx context.Context, key, origin string) error
	Clear(ctx context.Context, origin string) error
	Keys(ctx context.Context) ([]string, error)
}

// Notifier receives local scope mutations performed by this process.
type Notifier interface {
	Publish(event models.StorageEvent)
}

// Change is one row of the local scope change log.
type Change struct {
	Key     string
	Value   string
	Origin  string
	Rev     int64
	Deleted bool
}

// ChangeLog exposes the revision-ordered history of the SQLite local scope.
// The storage watcher uses it to turn file notifications into events.
type ChangeLog interface {
	CurrentRev(ctx context.Context) (int64, error)
	ChangesSince(ctx context.Context, rev int64) ([]Change, error)
}
