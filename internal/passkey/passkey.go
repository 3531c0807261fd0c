// Package passkey holds the platform authenticator used for the two passkey
// touch points of the login flow: enrolment after an SMS verification and
// sign-in from the login options screen.
//
// The authenticator is software-backed and keeps its credentials in memory,
// one per user, for the lifetime of the process.
package passkey

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/descope/virtualwebauthn"

	"github.com/MKhiriev/go-device-trust/internal/config"
	"github.com/MKhiriev/go-device-trust/models"
)

var (
	ErrNoCredential   = errors.New("no passkey stored for user")
	ErrInvalidOptions = errors.New("invalid webauthn options")
)

//go:generate mockgen -source=passkey.go -destination=../mock/passkey_mock.go -package=mock

// Authenticator produces WebAuthn attestation and assertion responses.
type Authenticator interface {
	// Register answers creation options for user and keeps the new credential.
	Register(ctx context.Context, user string, opts models.PasskeyOptions) (json.RawMessage, error)

	// Forget drops the credential of user, e.g. when the backend rejected it.
	Forget(user string)

	// Assert answers request options with the credential of user.
	Assert(ctx context.Context, user string, opts models.PasskeyOptions) (json.RawMessage, error)

	// Has reports whether a credential exists for user.
	Has(user string) bool
}

type entry struct {
	authenticator virtualwebauthn.Authenticator
	credential    virtualwebauthn.Credential
}

type virtualAuthenticator struct {
	rp virtualwebauthn.RelyingParty

	mu      sync.RWMutex
	entries map[string]*entry
}

// NewAuthenticator returns an in-memory authenticator for the relying party
// described by cfg.
func NewAuthenticator(cfg config.WebAuthn) Authenticator {
	return &virtualAuthenticator{
		rp: virtualwebauthn.RelyingParty{
			Name:   cfg.RPName,
			ID:     cfg.RPID,
			Origin: cfg.Origin,
		},
		entries: make(map[string]*entry),
	}
}

func (v *virtualAuthenticator) Register(ctx context.Context, user string, opts models.PasskeyOptions) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parsed, err := virtualwebauthn.ParseAttestationOptions(string(opts.Options))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}

	e := &entry{
		authenticator: virtualwebauthn.NewAuthenticator(),
		credential:    virtualwebauthn.NewCredential(virtualwebauthn.KeyTypeEC2),
	}
	attestation := virtualwebauthn.CreateAttestationResponse(v.rp, e.authenticator, e.credential, *parsed)
	e.authenticator.AddCredential(e.credential)

	v.mu.Lock()
	v.entries[user] = e
	v.mu.Unlock()

	return json.RawMessage(attestation), nil
}

func (v *virtualAuthenticator) Forget(user string) {
	v.mu.Lock()
	delete(v.entries, user)
	v.mu.Unlock()
}

func (v *virtualAuthenticator) Assert(ctx context.Context, user string, opts models.PasskeyOptions) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v.mu.RLock()
	e, ok := v.entries[user]
	v.mu.RUnlock()
	if !ok {
		return nil, ErrNoCredential
	}

	parsed, err := virtualwebauthn.ParseAssertionOptions(string(opts.Options))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}

	return json.RawMessage(virtualwebauthn.CreateAssertionResponse(v.rp, e.authenticator, e.credential, *parsed)), nil
}

func (v *virtualAuthenticator) Has(user string) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	_, ok := v.entries[user]
	return ok
}
