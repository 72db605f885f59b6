package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/strikeball/platform/internal/domain"
	"github.com/strikeball/platform/internal/guard"
	"github.com/strikeball/platform/internal/repository"
	"github.com/strikeball/platform/internal/wire"
	"golang.org/x/crypto/bcrypt"
)

// DefaultSessionTTL is used when no TTL is configured.
const DefaultSessionTTL = 30 * 24 * time.Hour

// AuthService handles registration, login and session resolution.
type AuthService struct {
	pool     *pgxpool.Pool
	users    repository.UserRepository
	sessions repository.SessionRepository
	ttl      time.Duration
}

// NewAuthService creates a new AuthService. A zero ttl falls back to
// DefaultSessionTTL.
func NewAuthService(
	pool *pgxpool.Pool,
	users repository.UserRepository,
	sessions repository.SessionRepository,
	ttl time.Duration,
) *AuthService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &AuthService{pool: pool, users: users, sessions: sessions, ttl: ttl}
}

// AuthResult is returned on successful registration or login.
type AuthResult struct {
	User         *domain.User
	SessionToken string
}

// Register creates a user account and an initial session within a single
// transaction.
func (s *AuthService) Register(ctx context.Context, input wire.RegisterRequest) (*AuthResult, error) {
	if input.Email == "" || input.Password == "" || input.Name == "" {
		return nil, domain.ErrValidation("Email, password and name are required")
	}

	existing, err := s.users.FindByEmail(ctx, s.pool, input.Email)
	if err != nil {
		return nil, domain.ErrInternal("find user", err)
	}
	if existing != nil {
		return nil, domain.ErrConflict("Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.ErrInternal("hash password", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	user, err := s.users.Create(ctx, tx, input.Email, string(hash), input.Name, input.Nickname, input.Team)
	if err != nil {
		return nil, domain.ErrInternal("create user", err)
	}

	token, err := newSessionToken()
	if err != nil {
		return nil, domain.ErrInternal("generate session token", err)
	}
	if err := s.sessions.Create(ctx, tx, user.ID, token, time.Now().Add(s.ttl)); err != nil {
		return nil, domain.ErrInternal("create session", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	return &AuthResult{User: user, SessionToken: token}, nil
}

// Login authenticates a user and issues a fresh session token. Failed
// attempts count toward a lockout window.
func (s *AuthService) Login(ctx context.Context, input wire.LoginRequest, ip string) (*AuthResult, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domain.ErrValidation("Email and password are required")
	}
	if err := guard.CheckLocked(ctx, s.pool, input.Email); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, s.pool, input.Email)
	if err != nil {
		return nil, domain.ErrInternal("find user", err)
	}
	if user == nil {
		guard.RecordAttempt(ctx, s.pool, input.Email, ip, false)
		return nil, domain.ErrUnauthorized("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		guard.RecordAttempt(ctx, s.pool, input.Email, ip, false)
		return nil, domain.ErrUnauthorized("Invalid credentials")
	}
	guard.RecordAttempt(ctx, s.pool, input.Email, ip, true)

	token, err := newSessionToken()
	if err != nil {
		return nil, domain.ErrInternal("generate session token", err)
	}
	if err := s.sessions.Create(ctx, s.pool, user.ID, token, time.Now().Add(s.ttl)); err != nil {
		return nil, domain.ErrInternal("create session", err)
	}

	resolved, err := s.sessions.ResolveUser(ctx, s.pool, token)
	if err != nil {
		return nil, domain.ErrInternal("resolve session", err)
	}

	return &AuthResult{User: resolved, SessionToken: token}, nil
}

// CurrentUser resolves a session token to its user. An unknown or expired
// token is an unauthorized error, never a transport failure.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized("Session token required")
	}
	user, err := s.sessions.ResolveUser(ctx, s.pool, token)
	if err != nil {
		return nil, domain.ErrInternal("resolve session", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized("Invalid or expired session")
	}
	return user, nil
}

// Identity resolves a session token to the authorization view used by the
// admin and matches endpoints.
func (s *AuthService) Identity(ctx context.Context, token string) (*repository.Identity, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized("Session token required")
	}
	ident, err := s.sessions.ResolveIdentity(ctx, s.pool, token)
	if err != nil {
		return nil, domain.ErrInternal("resolve session", err)
	}
	if ident == nil {
		return nil, domain.ErrUnauthorized("Invalid or expired session")
	}
	return ident, nil
}

// Opaque 256-bit token, hex encoded.
func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
