package domain

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mboard/webclient/internal/api"
	"github.com/mboard/webclient/internal/cache"
	"github.com/mboard/webclient/internal/model"
)

// SessionService is the explicit session holder: it owns the cookie-keyed
// session records and is injected into every handler that needs identity,
// instead of each view reading shared storage on its own.
type SessionService interface {
	// Resolve looks up the session behind a cookie value. Missing or
	// malformed records resolve to nil without error.
	Resolve(sid string) (*model.Session, error)

	// Login and Signup exchange credentials for a token at the remote API
	// and persist the resulting session, returning the new session id.
	Login(ctx context.Context, email, password string) (string, *model.Session, error)
	Signup(ctx context.Context, name, email, password string) (string, *model.Session, error)

	// Destroy removes the session record.
	Destroy(sid string) error

	// ResolveProfile fetches the user's profile with the session's token.
	// Any failure destroys the session: a failed profile fetch is the only
	// signal the client has that a token went stale.
	ResolveProfile(ctx context.Context, sid string, session *model.Session) (model.Profile, error)
}

type sessionService struct {
	store cache.SessionStore
	board api.MovieBoard
	ttl   time.Duration
}

var _ SessionService = (*sessionService)(nil)

func NewSessionService(store cache.SessionStore, board api.MovieBoard, ttl time.Duration) *sessionService {
	return &sessionService{
		store: store,
		board: board,
		ttl:   ttl,
	}
}

func (s *sessionService) Resolve(sid string) (*model.Session, error) {
	if sid == "" {
		return nil, nil
	}
	return s.store.GetSession(sid)
}

func (s *sessionService) Login(ctx context.Context, email, password string) (string, *model.Session, error) {
	session, err := s.board.Login(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	return s.persist(&session)
}

func (s *sessionService) Signup(ctx context.Context, name, email, password string) (string, *model.Session, error) {
	session, err := s.board.Signup(ctx, name, email, password)
	if err != nil {
		return "", nil, err
	}
	return s.persist(&session)
}

func (s *sessionService) persist(session *model.Session) (string, *model.Session, error) {
	sid := uuid.New().String()
	if err := s.store.SetSession(sid, session, s.ttl); err != nil {
		return "", nil, err
	}
	return sid, session, nil
}

func (s *sessionService) Destroy(sid string) error {
	if sid == "" {
		return nil
	}
	return s.store.DeleteSession(sid)
}

func (s *sessionService) ResolveProfile(ctx context.Context, sid string, session *model.Session) (model.Profile, error) {
	profile, err := s.board.Profile(ctx, session.Token)
	if err != nil {
		// Expired or revoked token. Implicit logout rather than a surfaced
		// error; the caller renders the signed-out state.
		_ = s.Destroy(sid)
		return model.Profile{}, err
	}
	return profile, nil
}
