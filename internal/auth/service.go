package auth

import (
	"context"
	"time"

	"github.com/eighttenaric/gmc-editor/internal/session"
	pkgauth "github.com/eighttenaric/gmc-editor/pkg/auth"
	"github.com/eighttenaric/gmc-editor/pkg/rest"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// stateTTL bounds how long a started authorization may sit before the
// operator comes back through the redirect.
const stateTTL = 10 * time.Minute

type Service interface {
	// AuthURL starts the flow: it parks a one-shot state value and returns
	// the provider URL the browser is sent to.
	AuthURL(ctx context.Context) (string, *rest.ApiErr)

	// Exchange finishes the flow: it validates the state, trades the
	// authorization code for a token set exactly once, and stores a fresh
	// session. The returned JWT binds the browser to that session.
	Exchange(ctx context.Context, state, code string) (*session.Session, string, *rest.ApiErr)

	Logout(ctx context.Context, sessionID string) error
}

type service struct {
	oauth      *oauth2.Config
	store      session.Store
	jwtSecret  string
	sessionTTL int
	logger     *zap.Logger
}

func NewService(oauth *oauth2.Config, store session.Store, jwtSecret string, sessionTTL int, logger *zap.Logger) Service {
	return &service{
		oauth:      oauth,
		store:      store,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

func (s *service) AuthURL(ctx context.Context) (string, *rest.ApiErr) {
	state := uuid.NewString()
	if err := s.store.ParkState(ctx, state, stateTTL); err != nil {
		s.logger.Error("failed to park oauth state", zap.Error(err))
		return "", rest.NewInternalServerError("failed to start authorization")
	}

	url := s.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
	)
	return url, nil
}

func (s *service) Exchange(ctx context.Context, state, code string) (*session.Session, string, *rest.ApiErr) {
	ok, err := s.store.ClaimState(ctx, state)
	if err != nil {
		s.logger.Error("failed to claim oauth state", zap.Error(err))
		return nil, "", rest.NewInternalServerError("failed to finish authorization")
	}
	if !ok {
		return nil, "", rest.NewUnauthorizedRequestError("authorization expired or already used, sign in again")
	}

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		s.logger.Error("token exchange failed", zap.Error(err))
		return nil, "", rest.NewUnauthorizedRequestError("authorization failed: " + err.Error())
	}

	sess := session.New(token)
	if err := s.store.SaveSession(ctx, sess, time.Duration(s.sessionTTL)*time.Second); err != nil {
		s.logger.Error("failed to store session", zap.Error(err))
		return nil, "", rest.NewInternalServerError("failed to store session")
	}

	claims := pkgauth.NewClaims(sess.ID, sess.Email, s.sessionTTL)
	jwt, err := pkgauth.GenerateJWT(claims, s.jwtSecret)
	if err != nil {
		s.logger.Error("failed to sign session token", zap.Error(err))
		return nil, "", rest.NewInternalServerError("failed to create session token")
	}

	s.logger.Info("credentials fetched and stored", zap.String("session_id", sess.ID))
	return sess, jwt, nil
}

func (s *service) Logout(ctx context.Context, sessionID string) error {
	return s.store.DeleteSession(ctx, sessionID)
}
