package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/imspro/inventory-system/internal/core/auth"
	"github.com/imspro/inventory-system/internal/core/domain"
	"github.com/imspro/inventory-system/internal/core/ports"
)

// AuthService implements registration, credential verification and both
// authentication modes: stateless signed tokens and server-side sessions.
type AuthService struct {
	repo     ports.OperatorRepository
	hasher   auth.PasswordHasher
	issuer   *auth.TokenIssuer
	sessions ports.SessionStore
	logger   zerolog.Logger
}

func NewAuthService(
	repo ports.OperatorRepository,
	hasher auth.PasswordHasher,
	issuer *auth.TokenIssuer,
	sessions ports.SessionStore,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		repo:     repo,
		hasher:   hasher,
		issuer:   issuer,
		sessions: sessions,
		logger:   logger,
	}
}

// Authenticate verifies username/password. An unknown username, a failed hash
// check and an inactive account all collapse to ErrInvalidCredentials so the
// caller learns nothing about which part failed. On success the operator's
// last-login timestamp is updated and persisted.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.Operator, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	op, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrOperatorNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Check(password, op.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	if !op.Active {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, op.ID, now); err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}
	op.LastLogin = &now

	s.logger.Info().Str("username", op.Username).Str("role", op.Role).Msg("operator authenticated")
	return op, nil
}

// Register creates a new operator account. The role defaults to operator;
// admin is assigned only when explicitly requested. The plaintext secret is
// hashed before it reaches the repository and is never echoed back.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Operator, error) {
	if input.Username == "" || input.Password == "" || input.Email == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.repo.FindByUsername(ctx, input.Username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrOperatorNotFound) {
		return nil, err
	}
	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrOperatorNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := domain.RoleOperator
	if input.Role == domain.RoleAdmin {
		role = domain.RoleAdmin
	}

	op := &domain.Operator{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
		FullName:     input.FullName,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, op)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Str("role", created.Role).Msg("operator registered")
	return created, nil
}

// IssueToken delegates to the token issuer.
func (s *AuthService) IssueToken(username, role string) (string, error) {
	return s.issuer.Issue(username, role)
}

// ValidateToken delegates to the token issuer. The operator's current active
// flag is not re-checked; token claims are trusted for their lifetime.
func (s *AuthService) ValidateToken(token string) (*domain.AuthDecision, error) {
	return s.issuer.Validate(token)
}

// EstablishSession binds the operator's identity to a fresh random session id.
func (s *AuthService) EstablishSession(ctx context.Context, op *domain.Operator) (string, error) {
	id, err := newSessionID()
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	decision := domain.AuthDecision{Username: op.Username, Role: op.Role}
	if err := s.sessions.Put(ctx, id, decision); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return id, nil
}

// ResolveSession looks up the identity bound to a session id.
func (s *AuthService) ResolveSession(ctx context.Context, sessionID string) (*domain.AuthDecision, error) {
	return s.sessions.Get(ctx, sessionID)
}

// TeardownSession invalidates the session immediately and unconditionally.
func (s *AuthService) TeardownSession(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// FindOperator retrieves an operator by exact username.
func (s *AuthService) FindOperator(ctx context.Context, username string) (*domain.Operator, error) {
	return s.repo.FindByUsername(ctx, username)
}

// Deactivate clears the operator's active flag. The record itself is kept.
func (s *AuthService) Deactivate(ctx context.Context, id int64) error {
	return s.repo.SetActive(ctx, id, false)
}

// Stats reports total and active operator counts.
func (s *AuthService) Stats(ctx context.Context) (*ports.OperatorStats, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.repo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	return &ports.OperatorStats{Total: total, Active: active}, nil
}

// newSessionID returns a 128-bit random hex identifier.
func newSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
