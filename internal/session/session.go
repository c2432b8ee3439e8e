package session

import (
	"time"

	"github.com/eighttenaric/gmc-editor/internal/models"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// Session is the explicit context object every action handler works against:
// the operator's OAuth credential, the selected merchant account and the two
// feed snapshots. Nothing here is process-global; the session store owns it
// and the TTL bounds its lifetime.
type Session struct {
	ID        string          `json:"id"`
	Email     string          `json:"email,omitempty"`
	AccountID string          `json:"account_id,omitempty"`
	Token     *oauth2.Token   `json:"token"`
	Original  models.Snapshot `json:"original"`
	Working   models.Snapshot `json:"working"`
	CreatedAt time.Time       `json:"created_at"`
}

func New(token *oauth2.Token) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Token:     token,
		CreatedAt: time.Now(),
	}
}

// HasFeed reports whether a feed has been fetched into this session.
func (s *Session) HasFeed() bool {
	return s.Original.Len() > 0
}

// LoadFeed installs a freshly fetched snapshot as both the immutable
// original and the mutable working copy.
func (s *Session) LoadFeed(snap models.Snapshot) {
	s.Original = snap
	s.Working = snap.Clone()
}
