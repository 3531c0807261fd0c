package server

import "context"

// Server defines the lifecycle contract of the backend listener.
type Server interface {
	// Run serves requests until ctx is cancelled, then shuts down
	// gracefully. A listener failure is returned.
	Run(ctx context.Context) error

	// Addr is the address the server listens on once Run has started.
	Addr() string
}
