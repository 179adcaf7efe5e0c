package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hostelhub/hostel-api/internal/core/domain"
	"github.com/hostelhub/hostel-api/internal/core/service"
)

// Cookie names shared with the client. authToken is HTTP-only; userData is
// readable so the client can hydrate its auth state without a round trip.
const (
	AuthTokenCookie = "authToken"
	UserDataCookie  = "userData"
)

// SessionWriter propagates a freshly issued session into the response: the
// token as an HTTP-only cookie, the sanitized user projection as a readable
// cookie, and both again in the JSON body written by the handler. All three
// derive from the same in-memory values, never independently recomputed.
type SessionWriter struct {
	secure bool
}

// NewSessionWriter returns a writer. secure marks cookies Secure and should
// be true everywhere except local development.
func NewSessionWriter(secure bool) *SessionWriter {
	return &SessionWriter{secure: secure}
}

// Write sets both session cookies on the response.
func (w *SessionWriter) Write(c echo.Context, token string, profile domain.Profile) error {
	maxAge := int(service.TokenTTL / time.Second)

	c.SetCookie(&http.Cookie{
		Name:     AuthTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   w.secure,
		SameSite: http.SameSiteStrictMode,
	})

	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     UserDataCookie,
		Value:    url.QueryEscape(string(data)),
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: false,
		Secure:   w.secure,
		SameSite: http.SameSiteStrictMode,
	})

	return nil
}

// Clear expires both session cookies immediately.
func (w *SessionWriter) Clear(c echo.Context) {
	for _, name := range []string{AuthTokenCookie, UserDataCookie} {
		c.SetCookie(&http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
			HttpOnly: name == AuthTokenCookie,
			Secure:   w.secure,
			SameSite: http.SameSiteStrictMode,
		})
	}
}
