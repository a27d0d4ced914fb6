package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"bazaar/internal/domain"
	apperrors "bazaar/internal/errors"
)

type mockVerifier struct {
	VerifyFunc func(ctx context.Context, accessToken string) (*Identity, error)
}

func (m *mockVerifier) Verify(ctx context.Context, accessToken string) (*Identity, error) {
	return m.VerifyFunc(ctx, accessToken)
}

type mockUserRepository struct {
	FindByIDFunc   func(ctx context.Context, id string) (*domain.User, error)
	CreateFunc     func(ctx context.Context, user *domain.User) error
	UpdateRoleFunc func(ctx context.Context, id string, role domain.Role) error
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	if m.UpdateRoleFunc != nil {
		return m.UpdateRoleFunc(ctx, id, role)
	}
	return nil
}

type mockSessionRepository struct {
	CreateFunc      func(ctx context.Context, session *domain.Session) error
	FindByTokenFunc func(ctx context.Context, token string) (*domain.Session, error)
	DeleteFunc      func(ctx context.Context, token string) error
}

func (m *mockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	return nil
}

func (m *mockSessionRepository) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	return m.FindByTokenFunc(ctx, token)
}

func (m *mockSessionRepository) Delete(ctx context.Context, token string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, token)
	}
	return nil
}

func googleIdentity() *mockVerifier {
	return &mockVerifier{VerifyFunc: func(_ context.Context, _ string) (*Identity, error) {
		return &Identity{ID: "google-123", Email: "ada@example.com", Name: "Ada"}, nil
	}}
}

func newTestService(verifier IdentityVerifier, users UserRepository, sessions SessionRepository) *Service {
	return NewService(verifier, users, sessions, time.Hour, zap.NewNop())
}

func TestSignIn_FirstSignInCreatesUser(t *testing.T) {
	var created *domain.User
	users := &mockUserRepository{
		FindByIDFunc: func(_ context.Context, id string) (*domain.User, error) {
			return nil, apperrors.NewNotFoundError("user " + id + " not found")
		},
		CreateFunc: func(_ context.Context, user *domain.User) error {
			created = user
			return nil
		},
	}
	var session *domain.Session
	sessions := &mockSessionRepository{CreateFunc: func(_ context.Context, s *domain.Session) error {
		session = s
		return nil
	}}

	svc := newTestService(googleIdentity(), users, sessions)
	token, user, err := svc.SignIn(context.Background(), "provider-token", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created == nil || created.Role != domain.RoleCustomer || !created.IsActive {
		t.Errorf("first sign-in must create an active user with the audience role, got %+v", created)
	}
	if token == "" || session == nil || session.Token != token {
		t.Error("sign-in must issue the stored session token")
	}
	if session.ExpiresAt.Sub(session.CreatedAt) != time.Hour {
		t.Errorf("session must expire after the configured TTL, got %s", session.ExpiresAt.Sub(session.CreatedAt))
	}
	if user.ID != "google-123" {
		t.Errorf("expected the verified identity back, got %s", user.ID)
	}
}

func TestSignIn_BadProviderToken(t *testing.T) {
	verifier := &mockVerifier{VerifyFunc: func(_ context.Context, _ string) (*Identity, error) {
		return nil, apperrors.NewUnauthorizedError("invalid access token")
	}}

	svc := newTestService(verifier, &mockUserRepository{}, &mockSessionRepository{})
	_, _, err := svc.SignIn(context.Background(), "bogus", domain.RoleCustomer)

	if _, ok := apperrors.IsUnauthorizedError(err); !ok {
		t.Fatalf("expected UnauthorizedError, got %v", err)
	}
}

func TestSignIn_DeactivatedAccount(t *testing.T) {
	users := &mockUserRepository{FindByIDFunc: func(_ context.Context, id string) (*domain.User, error) {
		return &domain.User{ID: id, Role: domain.RoleCustomer, IsActive: false}, nil
	}}

	svc := newTestService(googleIdentity(), users, &mockSessionRepository{})
	_, _, err := svc.SignIn(context.Background(), "provider-token", domain.RoleCustomer)

	if _, ok := apperrors.IsForbiddenError(err); !ok {
		t.Fatalf("expected ForbiddenError, got %v", err)
	}
}

func TestSignIn_MerchantAudiencePromotesRole(t *testing.T) {
	var promoted domain.Role
	users := &mockUserRepository{
		FindByIDFunc: func(_ context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Role: domain.RoleCustomer, IsActive: true}, nil
		},
		UpdateRoleFunc: func(_ context.Context, _ string, role domain.Role) error {
			promoted = role
			return nil
		},
	}

	svc := newTestService(googleIdentity(), users, &mockSessionRepository{})
	_, user, err := svc.SignIn(context.Background(), "provider-token", domain.RoleMerchant)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if promoted != domain.RoleMerchant || user.Role != domain.RoleMerchant {
		t.Error("signing in through the merchant service must promote the role")
	}
}

func TestAuthenticate_MissingToken(t *testing.T) {
	svc := newTestService(googleIdentity(), &mockUserRepository{}, &mockSessionRepository{})

	_, err := svc.Authenticate(context.Background(), "")
	if _, ok := apperrors.IsUnauthorizedError(err); !ok {
		t.Fatalf("expected UnauthorizedError, got %v", err)
	}
}

func TestAuthenticate_UnknownToken(t *testing.T) {
	sessions := &mockSessionRepository{FindByTokenFunc: func(_ context.Context, _ string) (*domain.Session, error) {
		return nil, apperrors.NewNotFoundError("session not found")
	}}

	svc := newTestService(googleIdentity(), &mockUserRepository{}, sessions)
	_, err := svc.Authenticate(context.Background(), "stale-token")

	if _, ok := apperrors.IsUnauthorizedError(err); !ok {
		t.Fatalf("expected UnauthorizedError, got %v", err)
	}
}

func TestAuthenticate_ExpiredTokenCleanedUp(t *testing.T) {
	deleted := ""
	sessions := &mockSessionRepository{
		FindByTokenFunc: func(_ context.Context, token string) (*domain.Session, error) {
			return &domain.Session{
				Token:     token,
				UserID:    "google-123",
				ExpiresAt: time.Now().UTC().Add(-time.Minute),
			}, nil
		},
		DeleteFunc: func(_ context.Context, token string) error {
			deleted = token
			return nil
		},
	}

	svc := newTestService(googleIdentity(), &mockUserRepository{}, sessions)
	_, err := svc.Authenticate(context.Background(), "old-token")

	if _, ok := apperrors.IsUnauthorizedError(err); !ok {
		t.Fatalf("expected UnauthorizedError, got %v", err)
	}
	if deleted != "old-token" {
		t.Error("expired sessions should be removed on sight")
	}
}

func TestAuthenticate_ActiveSession(t *testing.T) {
	sessions := &mockSessionRepository{FindByTokenFunc: func(_ context.Context, token string) (*domain.Session, error) {
		return &domain.Session{
			Token:     token,
			UserID:    "google-123",
			ExpiresAt: time.Now().UTC().Add(time.Hour),
		}, nil
	}}
	users := &mockUserRepository{FindByIDFunc: func(_ context.Context, id string) (*domain.User, error) {
		return &domain.User{ID: id, Role: domain.RoleCustomer, IsActive: true}, nil
	}}

	svc := newTestService(googleIdentity(), users, sessions)
	user, err := svc.Authenticate(context.Background(), "live-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "google-123" {
		t.Errorf("expected the session's user, got %s", user.ID)
	}
}

func TestRequireRole_RejectsWrongRole(t *testing.T) {
	sessions := &mockSessionRepository{FindByTokenFunc: func(_ context.Context, token string) (*domain.Session, error) {
		return &domain.Session{Token: token, UserID: "google-123", ExpiresAt: time.Now().UTC().Add(time.Hour)}, nil
	}}
	users := &mockUserRepository{FindByIDFunc: func(_ context.Context, id string) (*domain.User, error) {
		return &domain.User{ID: id, Role: domain.RoleCustomer, IsActive: true}, nil
	}}
	svc := newTestService(googleIdentity(), users, sessions)

	handler := RequireRole(svc, domain.RoleAdmin, zap.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("the handler must not run for the wrong role")
		}))

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set("Authorization", "Bearer live-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

func TestRequireRole_MissingHeader(t *testing.T) {
	sessions := &mockSessionRepository{FindByTokenFunc: func(_ context.Context, _ string) (*domain.Session, error) {
		t.Error("an empty token must be rejected before the store")
		return nil, nil
	}}
	svc := newTestService(googleIdentity(), &mockUserRepository{}, sessions)

	handler := RequireRole(svc, domain.RoleCustomer, zap.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("the handler must not run unauthenticated")
		}))

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole_StoresUserInContext(t *testing.T) {
	sessions := &mockSessionRepository{FindByTokenFunc: func(_ context.Context, token string) (*domain.Session, error) {
		return &domain.Session{Token: token, UserID: "google-123", ExpiresAt: time.Now().UTC().Add(time.Hour)}, nil
	}}
	users := &mockUserRepository{FindByIDFunc: func(_ context.Context, id string) (*domain.User, error) {
		return &domain.User{ID: id, Role: domain.RoleCustomer, IsActive: true}, nil
	}}
	svc := newTestService(googleIdentity(), users, sessions)

	handler := RequireRole(svc, domain.RoleCustomer, zap.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFrom(r.Context())
			if !ok || user.ID != "google-123" {
				t.Error("the authenticated user must be available to the handler")
			}
			w.WriteHeader(http.StatusNoContent)
		}))

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer live-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}

func TestBearerToken_Parsing(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc123", "abc123"},
		{"bearer abc123", "abc123"},
		{"Basic abc123", ""},
		{"Bearer", ""},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		if got := bearerToken(req); got != tt.want {
			t.Errorf("header %q: expected %q, got %q", tt.header, tt.want, got)
		}
	}
}
