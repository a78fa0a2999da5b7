package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/employee-api/internal/core/domain"
)

type stubAuthService struct {
	registerFn       func(ctx context.Context, username, password, role string) (*domain.User, error)
	loginFn          func(ctx context.Context, username, password string) (string, string, error)
	changePasswordFn func(ctx context.Context, identity domain.Identity, oldPassword, newPassword string) error
}

func (s *stubAuthService) Register(ctx context.Context, username, password, role string) (*domain.User, error) {
	return s.registerFn(ctx, username, password, role)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, string, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, identity domain.Identity, oldPassword, newPassword string) error {
	return s.changePasswordFn(ctx, identity, oldPassword, newPassword)
}

func newAuthTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandlerRegister(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "success",
			body:     `{"username":"bob","password":"secret"}`,
			wantCode: http.StatusCreated,
			wantBody: "User registered successfully",
		},
		{
			name:     "missing fields",
			body:     `{"username":"bob"}`,
			err:      domain.ErrMissingFields,
			wantCode: http.StatusBadRequest,
			wantBody: "Username and password are required",
		},
		{
			name:     "duplicate username",
			body:     `{"username":"bob","password":"secret"}`,
			err:      domain.ErrUserExists,
			wantCode: http.StatusBadRequest,
			wantBody: "User already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubAuthService{
				registerFn: func(ctx context.Context, username, password, role string) (*domain.User, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return &domain.User{Username: username, Role: domain.RoleUser}, nil
				},
			}
			c, rec := newAuthTestContext(t, http.MethodPost, "/auth/register", tt.body)

			if err := NewAuthHandler(svc).Register(c); err != nil {
				t.Fatalf("Register() error = %v", err)
			}
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if got := rec.Body.String(); got != tt.wantBody {
				t.Errorf("body = %q, want %q", got, tt.wantBody)
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	t.Run("success returns token and role", func(t *testing.T) {
		svc := &stubAuthService{
			loginFn: func(ctx context.Context, username, password string) (string, string, error) {
				return "signed.jwt.token", domain.RoleAdmin, nil
			},
		}
		c, rec := newAuthTestContext(t, http.MethodPost, "/auth/login", `{"username":"root","password":"secret"}`)

		if err := NewAuthHandler(svc).Login(c); err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		body := rec.Body.String()
		if !strings.Contains(body, `"accessToken":"signed.jwt.token"`) {
			t.Errorf("body missing access token: %s", body)
		}
		if !strings.Contains(body, `"role":"admin"`) {
			t.Errorf("body missing role: %s", body)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := &stubAuthService{
			loginFn: func(ctx context.Context, username, password string) (string, string, error) {
				return "", "", domain.ErrUserNotFound
			},
		}
		c, rec := newAuthTestContext(t, http.MethodPost, "/auth/login", `{"username":"ghost","password":"secret"}`)

		if err := NewAuthHandler(svc).Login(c); err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
		if got := rec.Body.String(); got != "Cannot find user" {
			t.Errorf("body = %q, want %q", got, "Cannot find user")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := &stubAuthService{
			loginFn: func(ctx context.Context, username, password string) (string, string, error) {
				return "", "", domain.ErrInvalidCredentials
			},
		}
		c, rec := newAuthTestContext(t, http.MethodPost, "/auth/login", `{"username":"bob","password":"wrong"}`)

		if err := NewAuthHandler(svc).Login(c); err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
		if got := rec.Body.String(); got != "Not Allowed" {
			t.Errorf("body = %q, want %q", got, "Not Allowed")
		}
	})

	t.Run("throttled", func(t *testing.T) {
		svc := &stubAuthService{
			loginFn: func(ctx context.Context, username, password string) (string, string, error) {
				return "", "", domain.ErrTooManyAttempts
			},
		}
		c, rec := newAuthTestContext(t, http.MethodPost, "/auth/login", `{"username":"bob","password":"wrong"}`)

		if err := NewAuthHandler(svc).Login(c); err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if rec.Code != http.StatusTooManyRequests {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusTooManyRequests)
		}
	})
}

func TestAuthHandlerChangePassword(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotIdentity domain.Identity
		svc := &stubAuthService{
			changePasswordFn: func(ctx context.Context, identity domain.Identity, oldPassword, newPassword string) error {
				gotIdentity = identity
				return nil
			},
		}
		c, rec := newAuthTestContext(t, http.MethodPut, "/auth/change-password", `{"oldPassword":"old","newPassword":"new"}`)
		c.Set("identity", domain.Identity{Username: "bob", Role: domain.RoleUser})

		if err := NewAuthHandler(svc).ChangePassword(c); err != nil {
			t.Fatalf("ChangePassword() error = %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if got := rec.Body.String(); got != "Password updated successfully" {
			t.Errorf("body = %q, want %q", got, "Password updated successfully")
		}
		if gotIdentity.Username != "bob" {
			t.Errorf("identity.Username = %q, want %q", gotIdentity.Username, "bob")
		}
	})

	t.Run("unauthenticated is rejected", func(t *testing.T) {
		svc := &stubAuthService{}
		c, _ := newAuthTestContext(t, http.MethodPut, "/auth/change-password", `{"oldPassword":"old","newPassword":"new"}`)

		err := NewAuthHandler(svc).ChangePassword(c)
		he, ok := err.(*echo.HTTPError)
		if !ok {
			t.Fatalf("expected *echo.HTTPError, got %v", err)
		}
		if he.Code != http.StatusUnauthorized {
			t.Errorf("code = %d, want %d", he.Code, http.StatusUnauthorized)
		}
	})

	t.Run("wrong old password", func(t *testing.T) {
		svc := &stubAuthService{
			changePasswordFn: func(ctx context.Context, identity domain.Identity, oldPassword, newPassword string) error {
				return domain.ErrInvalidCredentials
			},
		}
		c, rec := newAuthTestContext(t, http.MethodPut, "/auth/change-password", `{"oldPassword":"bad","newPassword":"new"}`)
		c.Set("identity", domain.Identity{Username: "bob", Role: domain.RoleUser})

		if err := NewAuthHandler(svc).ChangePassword(c); err != nil {
			t.Fatalf("ChangePassword() error = %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}
