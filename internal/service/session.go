package service

import (
	"context"
	"fmt"

	"github.com/plushmarket/storefront/internal/cache"
	"github.com/plushmarket/storefront/internal/model"
	"github.com/plushmarket/storefront/internal/store"
)

// Session is the read-only caller snapshot handed to the other services.
// An empty Caller means the request is anonymous.
type Session struct {
	Caller string
	Role   model.Role
}

func (s Session) Authenticated() bool { return s.Caller != "" }

func (s Session) IsAdmin() bool { return s.Role == model.RoleAdmin }

type SessionService struct {
	identity store.IdentityClient
	cache    *cache.Cache
}

func NewSessionService(identity store.IdentityClient, c *cache.Cache) *SessionService {
	return &SessionService{identity: identity, cache: c}
}

// Resolve builds the session snapshot for a caller. The role comes from the
// store, cached per caller id: a different identity is a different key, so a
// login change never sees the previous caller's entry.
func (s *SessionService) Resolve(ctx context.Context, caller string) (Session, error) {
	if caller == "" {
		return Session{Role: model.RoleGuest}, nil
	}

	if s.cache != nil {
		var role model.Role
		if err := s.cache.Get(ctx, cache.RoleKey(caller), &role); err == nil {
			return Session{Caller: caller, Role: role}, nil
		}
	}

	role, err := s.identity.GetCallerRole(ctx, caller)
	if err != nil {
		return Session{}, fmt.Errorf("get caller role: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cache.RoleKey(caller), role)
	}
	return Session{Caller: caller, Role: role}, nil
}

// Invalidate drops everything cached for a caller. Called on logout so the
// next identity starts from fresh reads.
func (s *SessionService) Invalidate(ctx context.Context, caller string) error {
	if s.cache == nil || caller == "" {
		return nil
	}
	return s.cache.Invalidate(ctx,
		cache.RoleKey(caller),
		cache.CartKey(caller),
		cache.MySubmissionsKey(caller),
	)
}

func (s *SessionService) Profile(ctx context.Context, sess Session) (*model.UserProfile, error) {
	if !sess.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	profile, err := s.identity.GetProfile(ctx, sess.Caller)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

func (s *SessionService) SaveProfile(ctx context.Context, sess Session, profile model.UserProfile) error {
	if !sess.Authenticated() {
		return ErrNotAuthenticated
	}
	if err := s.identity.SaveProfile(ctx, sess.Caller, profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
