package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a session id has no live session behind it
// (expired TTL, logout, restart with the memory store).
var ErrNotFound = errors.New("session not found")

// Store persists sessions and parks pending OAuth state values. States are
// one-shot: ClaimState consumes the value so an authorization code can only
// be exchanged once per round trip.
type Store interface {
	SaveSession(ctx context.Context, s *Session, ttl time.Duration) error
	GetSession(ctx context.Context, id string) (*Session, error)
	DeleteSession(ctx context.Context, id string) error

	ParkState(ctx context.Context, state string, ttl time.Duration) error
	ClaimState(ctx context.Context, state string) (bool, error)
}
