// Package session identifies a browser with a cookie and scopes storage to
// it, standing in for per-browser local storage on the server.
package session

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-uidemo/pkg/store"
)

const (
	DefaultCookie = "uidemo_session"
	DefaultMaxAge = 30 * 24 * time.Hour
)

// Session is the identity of one browser.
type Session struct {
	ID string
	// New reports whether the id was issued by this request.
	New bool
}

type ctxKey struct{}

// WithSession stores s in ctx.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored by the middleware.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok && s.ID != ""
}

// Options configures a Manager.
type Options struct {
	Cookie string
	MaxAge time.Duration
	Secure bool
}

// OptionFn mutates Options.
type OptionFn func(*Options)

// WithCookie sets the cookie name.
func WithCookie(name string) OptionFn {
	return func(o *Options) {
		if strings.TrimSpace(name) != "" {
			o.Cookie = name
		}
	}
}

// WithMaxAge sets the cookie lifetime.
func WithMaxAge(d time.Duration) OptionFn {
	return func(o *Options) {
		if d > 0 {
			o.MaxAge = d
		}
	}
}

// WithSecure marks the cookie Secure.
func WithSecure(secure bool) OptionFn {
	return func(o *Options) {
		o.Secure = secure
	}
}

// Manager issues session cookies and hands out per-session storage.
type Manager struct {
	opts    Options
	storage store.Storage
}

// NewManager returns a manager whose sessions share backend.
func NewManager(backend store.Storage, opts ...OptionFn) *Manager {
	o := Options{Cookie: DefaultCookie, MaxAge: DefaultMaxAge}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return &Manager{opts: o, storage: backend}
}

// Middleware makes sure every request carries a session, issuing a cookie
// when the request has none or an invalid one.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := Session{}
		if c, err := r.Cookie(m.opts.Cookie); err == nil {
			if id, err := uuid.Parse(c.Value); err == nil {
				s.ID = id.String()
			}
		}
		if s.ID == "" {
			s = Session{ID: uuid.NewString(), New: true}
		}
		http.SetCookie(w, &http.Cookie{
			Name:     m.opts.Cookie,
			Value:    s.ID,
			Path:     "/",
			MaxAge:   int(m.opts.MaxAge / time.Second),
			HttpOnly: true,
			Secure:   m.opts.Secure,
			SameSite: http.SameSiteLaxMode,
		})
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}

// Storage returns the storage scoped to session id.
func (m *Manager) Storage(id string) store.Storage {
	return store.Namespace(m.storage, "session:"+id)
}

// StorageFor returns the storage of the request's session. It falls back to
// an unscoped namespace when ctx carries no session.
func (m *Manager) StorageFor(ctx context.Context) store.Storage {
	s, ok := FromContext(ctx)
	if !ok {
		return m.Storage("anonymous")
	}
	return m.Storage(s.ID)
}
