package client

import (
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// PersistentJar wraps the stdlib cookie jar with a JSON file so server-set
// cookies survive process restarts, the CLI's stand-in for a browser's
// cookie store. Only cookies for the API origin are persisted.
type PersistentJar struct {
	mu   sync.Mutex
	jar  *cookiejar.Jar
	path string
	base *url.URL
}

type storedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Path    string    `json:"path,omitempty"`
	Expires time.Time `json:"expires,omitempty"`
}

// NewPersistentJar loads any previously saved cookies for base from path.
// A missing or corrupt file starts an empty jar.
func NewPersistentJar(path string, base *url.URL) (*PersistentJar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	p := &PersistentJar{jar: jar, path: path, base: base}

	if data, err := os.ReadFile(path); err == nil {
		var stored []storedCookie
		if json.Unmarshal(data, &stored) == nil {
			cookies := make([]*http.Cookie, 0, len(stored))
			for _, sc := range stored {
				if !sc.Expires.IsZero() && sc.Expires.Before(time.Now()) {
					continue
				}
				cookies = append(cookies, &http.Cookie{
					Name:    sc.Name,
					Value:   sc.Value,
					Path:    sc.Path,
					Expires: sc.Expires,
				})
			}
			jar.SetCookies(base, cookies)
		}
	}
	return p, nil
}

// Cookies implements http.CookieJar.
func (p *PersistentJar) Cookies(u *url.URL) []*http.Cookie {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.jar.Cookies(u)
}

// SetCookies implements http.CookieJar and flushes the API-origin cookies
// to disk after every change, Set-Cookie responses included.
func (p *PersistentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jar.SetCookies(u, cookies)
	_ = p.persistLocked()
}

func (p *PersistentJar) persistLocked() error {
	current := p.jar.Cookies(p.base)
	stored := make([]storedCookie, 0, len(current))
	for _, c := range current {
		stored = append(stored, storedCookie{
			Name:    c.Name,
			Value:   c.Value,
			Path:    c.Path,
			Expires: c.Expires,
		})
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o600)
}
