package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/imspro/inventory-system/internal/core/auth"
	"github.com/imspro/inventory-system/internal/core/domain"
	"github.com/imspro/inventory-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubOperatorRepo struct {
	byID   map[int64]*domain.Operator
	nextID int64
}

func newStubOperatorRepo() *stubOperatorRepo {
	return &stubOperatorRepo{byID: make(map[int64]*domain.Operator)}
}

func cloneOperator(op *domain.Operator) *domain.Operator {
	if op == nil {
		return nil
	}
	clone := *op
	if op.LastLogin != nil {
		ts := *op.LastLogin
		clone.LastLogin = &ts
	}
	return &clone
}

func (r *stubOperatorRepo) FindByUsername(_ context.Context, username string) (*domain.Operator, error) {
	for _, op := range r.byID {
		if op.Username == username {
			return cloneOperator(op), nil
		}
	}
	return nil, domain.ErrOperatorNotFound
}

func (r *stubOperatorRepo) FindByEmail(_ context.Context, email string) (*domain.Operator, error) {
	for _, op := range r.byID {
		if op.Email == email {
			return cloneOperator(op), nil
		}
	}
	return nil, domain.ErrOperatorNotFound
}

func (r *stubOperatorRepo) FindByID(_ context.Context, id int64) (*domain.Operator, error) {
	op, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrOperatorNotFound
	}
	return cloneOperator(op), nil
}

func (r *stubOperatorRepo) Create(_ context.Context, op *domain.Operator) (*domain.Operator, error) {
	r.nextID++
	clone := cloneOperator(op)
	clone.ID = r.nextID
	r.byID[clone.ID] = clone
	return cloneOperator(clone), nil
}

func (r *stubOperatorRepo) UpdateLastLogin(_ context.Context, id int64, ts time.Time) error {
	op, ok := r.byID[id]
	if !ok {
		return domain.ErrOperatorNotFound
	}
	op.LastLogin = &ts
	return nil
}

func (r *stubOperatorRepo) SetActive(_ context.Context, id int64, active bool) error {
	op, ok := r.byID[id]
	if !ok {
		return domain.ErrOperatorNotFound
	}
	op.Active = active
	return nil
}

func (r *stubOperatorRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrOperatorNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubOperatorRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *stubOperatorRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, op := range r.byID {
		if op.Active {
			n++
		}
	}
	return n, nil
}

type stubSessionStore struct {
	sessions map[string]domain.AuthDecision
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]domain.AuthDecision)}
}

func (s *stubSessionStore) Put(_ context.Context, id string, d domain.AuthDecision) error {
	s.sessions[id] = d
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, id string) (*domain.AuthDecision, error) {
	d, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &d, nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func newTestAuthService(repo ports.OperatorRepository, sessions ports.SessionStore) *AuthService {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	return NewAuthService(repo, auth.NewBcryptHasher(), issuer, sessions, zerolog.Nop())
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubOperatorRepo()
	svc := newTestAuthService(repo, newStubSessionStore())

	op, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Password: "pw1",
		Email:    "a@x.com",
		FullName: "Alice A",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if op.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if op.PasswordHash == "pw1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte("pw1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if op.Role != domain.RoleOperator {
		t.Fatalf("expected default role operator, got %s", op.Role)
	}
	if !op.Active {
		t.Fatalf("expected new operator to be active")
	}
	if op.LastLogin != nil {
		t.Fatalf("expected nil last login before first authentication")
	}
}

func TestAuthService_Register_AdminRole(t *testing.T) {
	svc := newTestAuthService(newStubOperatorRepo(), newStubSessionStore())

	op, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "root", Password: "pw", Email: "root@x.com", Role: domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if op.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %s", op.Role)
	}
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	svc := newTestAuthService(newStubOperatorRepo(), newStubSessionStore())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice", Password: "pw1", Email: "a@x.com",
	}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice", Password: "pw2", Email: "other@x.com",
	})
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	svc := newTestAuthService(newStubOperatorRepo(), newStubSessionStore())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice", Password: "pw1", Email: "a@x.com",
	}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "bob", Password: "pw2", Email: "a@x.com",
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Authenticate
// ---------------------------------------------------------------------------

func TestAuthService_Authenticate_Success(t *testing.T) {
	repo := newStubOperatorRepo()
	svc := newTestAuthService(repo, newStubSessionStore())

	registered, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "carol", Password: "s3cret", Email: "c@x.com",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	op, err := svc.Authenticate(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if op.Username != "carol" {
		t.Fatalf("unexpected operator: %+v", op)
	}
	if op.LastLogin == nil {
		t.Fatalf("expected last login to be set")
	}

	stored, err := repo.FindByID(context.Background(), registered.ID)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if stored.LastLogin == nil {
		t.Fatalf("expected last login to be persisted")
	}
}

func TestAuthService_Authenticate_WrongPassword(t *testing.T) {
	repo := newStubOperatorRepo()
	svc := newTestAuthService(repo, newStubSessionStore())

	registered, _ := svc.Register(context.Background(), ports.RegisterInput{
		Username: "dave", Password: "goodpass", Email: "d@x.com",
	})

	if _, err := svc.Authenticate(context.Background(), "dave", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	// A failed attempt must not touch the last-login timestamp.
	stored, _ := repo.FindByID(context.Background(), registered.ID)
	if stored.LastLogin != nil {
		t.Fatalf("expected last login to remain unset")
	}
}

func TestAuthService_Authenticate_UnknownUsername(t *testing.T) {
	svc := newTestAuthService(newStubOperatorRepo(), newStubSessionStore())

	if _, err := svc.Authenticate(context.Background(), "ghost", "pw"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Authenticate_Inactive(t *testing.T) {
	repo := newStubOperatorRepo()
	svc := newTestAuthService(repo, newStubSessionStore())

	registered, _ := svc.Register(context.Background(), ports.RegisterInput{
		Username: "eve", Password: "pw", Email: "e@x.com",
	})
	if err := svc.Deactivate(context.Background(), registered.ID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), "eve", "pw"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for inactive operator, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Tokens and sessions
// ---------------------------------------------------------------------------

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc := newTestAuthService(newStubOperatorRepo(), newStubSessionStore())

	token, err := svc.IssueToken("alice", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	decision, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}
	if decision.Username != "alice" || decision.Role != domain.RoleAdmin {
		t.Fatalf("unexpected decision: %+v", decision)
	}
}

func TestAuthService_SessionLifecycle(t *testing.T) {
	sessions := newStubSessionStore()
	svc := newTestAuthService(newStubOperatorRepo(), sessions)

	op := &domain.Operator{Username: "frank", Role: domain.RoleOperator}

	id, err := svc.EstablishSession(context.Background(), op)
	if err != nil {
		t.Fatalf("EstablishSession returned error: %v", err)
	}
	if id == "" {
		t.Fatalf("expected non-empty session id")
	}

	decision, err := svc.ResolveSession(context.Background(), id)
	if err != nil {
		t.Fatalf("ResolveSession returned error: %v", err)
	}
	if decision.Username != "frank" || decision.Role != domain.RoleOperator {
		t.Fatalf("unexpected decision: %+v", decision)
	}

	if err := svc.TeardownSession(context.Background(), id); err != nil {
		t.Fatalf("TeardownSession returned error: %v", err)
	}
	if _, err := svc.ResolveSession(context.Background(), id); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after teardown, got %v", err)
	}
}

func TestAuthService_Stats(t *testing.T) {
	repo := newStubOperatorRepo()
	svc := newTestAuthService(repo, newStubSessionStore())

	a, _ := svc.Register(context.Background(), ports.RegisterInput{Username: "a", Password: "pw", Email: "a@x.com"})
	_, _ = svc.Register(context.Background(), ports.RegisterInput{Username: "b", Password: "pw", Email: "b@x.com"})
	_ = svc.Deactivate(context.Background(), a.ID)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.Total != 2 || stats.Active != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
