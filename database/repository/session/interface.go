package sessionRepo

import (
	"context"
	"errors"

	"skybook/models"
)

var (
	// ErrNotFound is returned when no session exists for the key. Expired
	// and undecodable sessions surface the same way so a turn always starts
	// from a well-formed session.
	ErrNotFound = errors.New("session not found")
	// ErrConflict signals a concurrent write to the same session. The caller
	// retries the whole turn against the freshly loaded session.
	ErrConflict = errors.New("session modified concurrently")
)

// Repository persists one session document per conversation key. Save must
// provide per-key mutual exclusion: it fails with ErrConflict if the stored
// version no longer matches the version the session was loaded with.
type Repository interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, sess *models.Session) error
	Delete(ctx context.Context, id string) error
}
