package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/MKhiriev/go-device-trust/internal/logger"
	"github.com/MKhiriev/go-device-trust/internal/store"
	"github.com/MKhiriev/go-device-trust/models"
)

// SeedFromFile creates the accounts listed in the JSON file at path. Accounts
// whose handle or phone already exist are skipped, so the file can be applied
// on every start. It returns the number of accounts created.
func SeedFromFile(ctx context.Context, auth AuthService, path string, log *logger.Logger) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}

	var seeds []models.SeedUser
	if err = json.Unmarshal(raw, &seeds); err != nil {
		return 0, fmt.Errorf("parse seed file %s: %w", path, err)
	}

	created := 0
	for _, seed := range seeds {
		_, err = auth.Seed(ctx, seed)
		switch {
		case errors.Is(err, store.ErrHandleAlreadyExists), errors.Is(err, store.ErrPhoneAlreadyExists):
			log.Debug().Str("func", "SeedFromFile").Str("handle", seed.Handle).Msg("seed account exists")
		case err != nil:
			return created, err
		default:
			created++
		}
	}

	log.Info().Str("func", "SeedFromFile").Int("created", created).Int("listed", len(seeds)).Msg("seed applied")
	return created, nil
}
