package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/motoflow/web-dashboard/internal/core/domain"
	"github.com/motoflow/web-dashboard/internal/core/ports"
	"github.com/motoflow/web-dashboard/internal/metrics"
)

// SessionService owns the authenticated-state machine: Anonymous or
// Authenticated(Session). It is the single reader and writer of persisted
// credentials; pages only ever see the resolved Session value.
type SessionService struct {
	store ports.SessionStore
	ttl   time.Duration
	log   zerolog.Logger
}

func NewSessionService(store ports.SessionStore, ttl time.Duration, log zerolog.Logger) *SessionService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionService{store: store, ttl: ttl, log: log}
}

// Resolve performs the init() read for a request: it loads the persisted
// record and returns a fully populated Session, or Anonymous. Any defect —
// missing entry, unparseable identity, incomplete fields, expired token —
// clears the stored record so the next read starts clean.
func (s *SessionService) Resolve(ctx context.Context, sid string) domain.Session {
	if sid == "" {
		return domain.Anonymous
	}

	rec, err := s.store.Find(ctx, sid)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			s.log.Error().Err(err).Msg("session store read failed")
		}
		return domain.Anonymous
	}

	var id domain.Identity
	if err := json.Unmarshal(rec.Identity, &id); err != nil {
		s.discard(ctx, sid, "malformed")
		return domain.Anonymous
	}

	sess := domain.Session{Identity: id, Token: rec.Token}
	if !sess.Authenticated() {
		s.discard(ctx, sid, "malformed")
		return domain.Anonymous
	}

	if tokenExpired(rec.Token) {
		s.discard(ctx, sid, "expired")
		return domain.Anonymous
	}

	return sess
}

// Login persists the credential pair and transitions to Authenticated. Calling
// it again under the same sid replaces the session. The new state is readable
// immediately after Login returns.
func (s *SessionService) Login(ctx context.Context, sid, token string, id domain.Identity) error {
	sess := domain.Session{Identity: id, Token: token}
	if !sess.Authenticated() {
		return fmt.Errorf("login: refusing to persist a partial session")
	}

	raw, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("login: marshal identity: %w", err)
	}

	if err := s.store.Save(ctx, sid, ports.SessionRecord{Token: token, Identity: raw}, s.ttl); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	metrics.SessionsStartedTotal.Inc()
	return nil
}

// Logout clears the persisted record and transitions to Anonymous. It is
// idempotent: logging out an absent session succeeds and changes nothing.
func (s *SessionService) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	if err := s.store.Delete(ctx, sid); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return fmt.Errorf("logout: %w", err)
	}
	metrics.SessionsEndedTotal.WithLabelValues("logout").Inc()
	return nil
}

// Expire clears a session whose token the backend stopped accepting.
func (s *SessionService) Expire(ctx context.Context, sid string) {
	if sid == "" {
		return
	}
	s.discard(ctx, sid, "expired")
}

func (s *SessionService) discard(ctx context.Context, sid, reason string) {
	if err := s.store.Delete(ctx, sid); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		s.log.Error().Err(err).Str("reason", reason).Msg("session discard failed")
	}
	metrics.SessionsEndedTotal.WithLabelValues(reason).Inc()
}

// tokenExpired pre-checks a JWT-shaped token's exp claim so a dead credential
// is dropped before it ever reaches the backend. Opaque tokens and tokens
// without an exp claim pass through untouched; the backend stays the
// authority on acceptance.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
