package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/marmos91/rosterd/pkg/auth"
	"github.com/marmos91/rosterd/pkg/roster/models"
)

const testSecret = "middleware-test-secret-32-chars-long!"

func newTestJWTService(t *testing.T) *auth.JWTService {
	t.Helper()

	svc, err := auth.NewJWTService(auth.JWTConfig{Secret: testSecret})
	if err != nil {
		t.Fatalf("failed to create JWT service: %v", err)
	}
	return svc
}

func testUser(role string) *models.User {
	return &models.User{ID: 7, Name: "Alice", Email: "alice@example.com", Role: role}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"valid", "Bearer abc123", "abc123", true},
		{"case insensitive scheme", "bearer abc123", "abc123", true},
		{"missing header", "", "", false},
		{"wrong scheme", "Basic abc123", "", false},
		{"no token", "Bearer", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			token, ok := ExtractBearerToken(req)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if token != tt.want {
				t.Errorf("expected token %q, got %q", tt.want, token)
			}
		})
	}
}

func TestSessionAuthAcceptsSessionToken(t *testing.T) {
	jwtService := newTestJWTService(t)
	session, err := jwtService.IssueSessionToken(testUser("user"), false)
	if err != nil {
		t.Fatalf("failed to issue session token: %v", err)
	}

	var gotClaims *auth.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims = GetClaimsFromContext(r.Context())
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	w := httptest.NewRecorder()

	SessionAuth(jwtService)(next).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if gotClaims == nil {
		t.Fatal("expected claims in request context")
	}
	if gotClaims.UserID != 7 {
		t.Errorf("expected user ID 7, got %d", gotClaims.UserID)
	}
}

func TestSessionAuthRejectsMissingHeader(t *testing.T) {
	jwtService := newTestJWTService(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not be reached")
	})

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	SessionAuth(jwtService)(next).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestSessionAuthRejectsGarbageToken(t *testing.T) {
	jwtService := newTestJWTService(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not be reached")
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()

	SessionAuth(jwtService)(next).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestSessionAuthRejectsPendingToken(t *testing.T) {
	jwtService := newTestJWTService(t)
	pending, err := jwtService.IssuePendingToken(testUser("user"))
	if err != nil {
		t.Fatalf("failed to issue pending token: %v", err)
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("a pending token must not unlock session routes")
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+pending)
	w := httptest.NewRecorder()

	SessionAuth(jwtService)(next).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	})

	req := httptest.NewRequest("GET", "/", nil)
	claims := &auth.Claims{UserID: 1, Role: "admin", TokenType: auth.TokenTypeSession}
	req = req.WithContext(WithClaims(req.Context(), claims))
	w := httptest.NewRecorder()

	RequireAdmin()(next).ServeHTTP(w, req)

	if !reached {
		t.Error("expected handler to be reached for admin")
	}
	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestRequireAdminBlocksUser(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not be reached for non-admin")
	})

	req := httptest.NewRequest("GET", "/", nil)
	claims := &auth.Claims{UserID: 1, Role: "user", TokenType: auth.TokenTypeSession}
	req = req.WithContext(WithClaims(req.Context(), claims))
	w := httptest.NewRecorder()

	RequireAdmin()(next).ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
}

func TestRequireAdminWithoutClaims(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not be reached without claims")
	})

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	RequireAdmin()(next).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}
