package store

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/worktrackhq/worktrack/internal/apperrors"
)

// Keys of the persisted JSON documents, one per collection.
const (
	KeyUsers         = "users"
	KeyProjects      = "projects"
	KeyTasks         = "tasks"
	KeyNotifications = "notifications"
)

// DocumentStore persists whole JSON documents under named keys. It is a
// plain blob store: no transactions, no partial updates, single process.
type DocumentStore interface {
	// Get returns the raw document and whether it exists.
	Get(key string) ([]byte, bool, error)

	// Put overwrites the document under key.
	Put(key string, value []byte) error
}

// LoadCollection decodes the document under key into a slice of T. Missing
// or malformed data yields the fallback, never an error: a corrupted
// document must not take the application down, so it is logged and treated
// as absent.
func LoadCollection[T any](s DocumentStore, logger zerolog.Logger, key string, fallback []T) []T {
	raw, found, err := s.Get(key)
	if err != nil {
		logger.Error().Err(err).Str("key", key).Msg("document read failed, using fallback")
		return fallback
	}
	if !found {
		return fallback
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("malformed document, using fallback")
		return fallback
	}
	if items == nil {
		return fallback
	}
	return items
}

// SaveCollection encodes items and writes them under key. Failures are
// logged and come back as storage-kind errors; the previously persisted
// document stays untouched.
func SaveCollection[T any](s DocumentStore, logger zerolog.Logger, key string, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		logger.Error().Err(err).Str("key", key).Msg("failed to encode document")
		return apperrors.Storage("failed to encode "+key, err)
	}
	if err := s.Put(key, raw); err != nil {
		logger.Error().Err(err).Str("key", key).Msg("document write failed")
		return apperrors.Storage("failed to persist "+key, err)
	}
	return nil
}
