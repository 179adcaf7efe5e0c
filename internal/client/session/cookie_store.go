package session

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"
)

// Cookie names shared with the server's session propagator.
const (
	authTokenCookie = "authToken"
	userDataCookie  = "userData"
)

const cookieMaxAge = 7 * 24 * time.Hour

// CookieStore is the cookie-mirrored durable copy: it reads and writes the
// userData and authToken cookies held in the HTTP client's jar, so a copy
// set by the server's Set-Cookie headers hydrates the store without any
// client-side write having happened.
type CookieStore struct {
	jar  http.CookieJar
	base *url.URL
}

// NewCookieStore wraps the given jar, scoped to the API origin.
func NewCookieStore(jar http.CookieJar, base *url.URL) *CookieStore {
	return &CookieStore{jar: jar, base: base}
}

func (c *CookieStore) Load() (*Snapshot, error) {
	var raw, token string
	for _, cookie := range c.jar.Cookies(c.base) {
		switch cookie.Name {
		case userDataCookie:
			raw = cookie.Value
		case authTokenCookie:
			token = cookie.Value
		}
	}
	if raw == "" {
		return nil, ErrNoSnapshot
	}

	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return nil, ErrNoSnapshot
	}
	var snap Snapshot
	if err := json.Unmarshal([]byte(decoded), &snap); err != nil || snap.ID == "" {
		return nil, ErrNoSnapshot
	}
	snap.Token = token
	return &snap, nil
}

func (c *CookieStore) Save(snap Snapshot) error {
	// The token travels in its own cookie; the projection never carries it.
	token := snap.Token
	snap.Token = ""

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	expires := time.Now().Add(cookieMaxAge)
	cookies := []*http.Cookie{{
		Name:     userDataCookie,
		Value:    url.QueryEscape(string(data)),
		Path:     "/",
		Expires:  expires,
		SameSite: http.SameSiteStrictMode,
	}}
	if token != "" {
		cookies = append(cookies, &http.Cookie{
			Name:     authTokenCookie,
			Value:    token,
			Path:     "/",
			Expires:  expires,
			SameSite: http.SameSiteStrictMode,
		})
	}
	c.jar.SetCookies(c.base, cookies)
	return nil
}

// Clear expires both cookies with an explicit past date.
func (c *CookieStore) Clear() error {
	past := time.Unix(0, 0)
	c.jar.SetCookies(c.base, []*http.Cookie{
		{Name: userDataCookie, Value: "", Path: "/", Expires: past, MaxAge: -1},
		{Name: authTokenCookie, Value: "", Path: "/", Expires: past, MaxAge: -1},
	})
	return nil
}
