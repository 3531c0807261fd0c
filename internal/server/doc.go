// Package server runs the HTTP listener of the reference auth backend.
//
// The server is a [workers.Worker]: it serves until its context is cancelled
// and then shuts down gracefully within the configured timeout.
package server
