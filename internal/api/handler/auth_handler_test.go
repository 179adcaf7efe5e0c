package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hostelhub/hostel-api/internal/core/domain"
	"github.com/hostelhub/hostel-api/internal/core/ports"
)

// fakeAuthService scripts the service layer per test.
type fakeAuthService struct {
	registerUser *domain.User
	registerErr  error
	loginToken   string
	loginUser    *domain.User
	loginErr     error
}

func (f *fakeAuthService) Register(context.Context, ports.RegisterInput) (*domain.User, error) {
	return f.registerUser, f.registerErr
}

func (f *fakeAuthService) Login(context.Context, string, string, string) (string, *domain.User, error) {
	return f.loginToken, f.loginUser, f.loginErr
}

func (f *fakeAuthService) UpdateProfile(context.Context, ports.UpdateProfileInput) (*domain.User, error) {
	return f.loginUser, nil
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	res := rec.Result()
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

var ann = &domain.User{
	ID:        "u1",
	Username:  "ann",
	Email:     "ann@x.com",
	FirstName: "ann",
	Role:      domain.RoleResident,
}

func TestRegister_Created(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{registerUser: ann}, NewSessionWriter(false))
	c, rec := newTestContext(t, http.MethodPost, "/api/auth/register",
		`{"username":"ann","email":"ann@x.com","password":"secret1"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp registerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.User.Role != domain.RoleResident {
		t.Fatalf("role = %q, want resident", resp.User.Role)
	}
	if strings.Contains(rec.Body.String(), "hash") {
		t.Fatalf("response leaks hash material: %s", rec.Body.String())
	}
}

func TestRegister_MissingFields(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{}, NewSessionWriter(false))
	c, rec := newTestContext(t, http.MethodPost, "/api/auth/register",
		`{"username":"ann"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Details) == 0 {
		t.Fatalf("expected per-field details, got %+v", resp)
	}
}

func TestRegister_Conflict(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{registerErr: domain.ErrUserExists}, NewSessionWriter(false))
	c, rec := newTestContext(t, http.MethodPost, "/api/auth/register",
		`{"username":"ann","email":"ann@x.com","password":"secret1"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestLogin_PropagatesSessionToAllChannels(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{loginToken: "tok-123", loginUser: ann}, NewSessionWriter(false))
	c, rec := newTestContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"ann@x.com","password":"secret1"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token != "tok-123" || resp.UserID != "u1" || resp.Role != domain.RoleResident {
		t.Fatalf("body payload mismatch: %+v", resp)
	}

	authCookie := cookieByName(rec, AuthTokenCookie)
	if authCookie == nil {
		t.Fatalf("authToken cookie not set")
	}
	if authCookie.Value != resp.Token {
		t.Fatalf("cookie token %q differs from body token %q", authCookie.Value, resp.Token)
	}
	if !authCookie.HttpOnly {
		t.Fatalf("authToken cookie must be HTTP-only")
	}
	if authCookie.SameSite != http.SameSiteStrictMode {
		t.Fatalf("authToken cookie must be SameSite=Strict")
	}

	dataCookie := cookieByName(rec, UserDataCookie)
	if dataCookie == nil {
		t.Fatalf("userData cookie not set")
	}
	if dataCookie.HttpOnly {
		t.Fatalf("userData cookie must stay readable")
	}
	if !strings.Contains(dataCookie.Value, "resident") {
		t.Fatalf("userData cookie missing projection: %q", dataCookie.Value)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{loginErr: domain.ErrUserNotFound}, NewSessionWriter(false))
	c, rec := newTestContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"ghost@x.com","password":"p"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestLogin_BadPassword(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{loginErr: domain.ErrInvalidCredentials}, NewSessionWriter(false))
	c, rec := newTestContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"ann@x.com","password":"wrong"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "token") {
		t.Fatalf("token material in failure response: %s", rec.Body.String())
	}
}

func TestLogin_MissingFields(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{}, NewSessionWriter(false))
	c, rec := newTestContext(t, http.MethodPost, "/api/auth/login", `{"email":"ann@x.com"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLogout_ExpiresBothCookies(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{}, NewSessionWriter(false))
	c, rec := newTestContext(t, http.MethodPost, "/api/auth/logout", "")

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	for _, name := range []string{AuthTokenCookie, UserDataCookie} {
		cookie := cookieByName(rec, name)
		if cookie == nil {
			t.Fatalf("%s cookie not cleared", name)
		}
		if cookie.MaxAge >= 0 && !cookie.Expires.Before(time.Now()) {
			t.Fatalf("%s cookie not expired: %+v", name, cookie)
		}
		if cookie.Value != "" {
			t.Fatalf("%s cookie still carries a value", name)
		}
	}
}
