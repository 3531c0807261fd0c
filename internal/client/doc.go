// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// One process is one tab: it owns a session scope, a device identity, an
// auth flow controller and a terminal UI. The local scope is shared with
// other processes when it is SQLite-backed, and a file watcher turns their
// writes into storage events so that login and logout follow every tab.
package client
