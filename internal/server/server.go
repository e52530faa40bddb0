// Package server assembles the pages, the middleware and the storage backend
// into one HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	theme "github.com/goliatone/go-theme"

	uidemo "github.com/goliatone/go-uidemo"
	"github.com/goliatone/go-uidemo/internal/config"
	"github.com/goliatone/go-uidemo/internal/logging"
	"github.com/goliatone/go-uidemo/pages"
	"github.com/goliatone/go-uidemo/pages/counter"
	"github.com/goliatone/go-uidemo/pages/formvalidation"
	"github.com/goliatone/go-uidemo/pages/home"
	"github.com/goliatone/go-uidemo/pages/notfound"
	todospage "github.com/goliatone/go-uidemo/pages/todos"
	"github.com/goliatone/go-uidemo/pkg/action"
	"github.com/goliatone/go-uidemo/pkg/components"
	"github.com/goliatone/go-uidemo/pkg/render"
	"github.com/goliatone/go-uidemo/pkg/render/template/gotemplate"
	"github.com/goliatone/go-uidemo/pkg/session"
	"github.com/goliatone/go-uidemo/pkg/store"
	"github.com/goliatone/go-uidemo/pkg/theming"
)

// Server is the assembled application.
type Server struct {
	cfg      *config.Config
	log      *logging.Logger
	router   chi.Router
	storage  store.Storage
	closer   io.Closer
	sessions *session.Manager
}

// Option customises New.
type Option func(*options)

type options struct {
	storage store.Storage
	action  formvalidation.Runner
}

// WithStorage replaces the configured storage backend.
func WithStorage(s store.Storage) Option {
	return func(o *options) {
		o.storage = s
	}
}

// WithAction replaces the server action called by the form page.
func WithAction(r formvalidation.Runner) Option {
	return func(o *options) {
		o.action = r
	}
}

// New builds the server for cfg. Close releases the storage backend.
func New(ctx context.Context, cfg *config.Config, log *logging.Logger, opts ...Option) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logging.Nop()
	}
	o := options{}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	s := &Server{cfg: cfg, log: log, storage: o.storage, closer: nopCloser{}}
	if s.storage == nil {
		backend, closer, err := OpenStorage(ctx, cfg.Storage)
		if err != nil {
			return nil, err
		}
		s.storage, s.closer = backend, closer
	}

	env, err := newEnv(cfg, log)
	if err != nil {
		_ = s.closer.Close()
		return nil, err
	}

	s.sessions = session.NewManager(s.storage,
		session.WithCookie(cfg.Session.Cookie),
		session.WithMaxAge(cfg.Session.MaxAge),
		session.WithSecure(cfg.Session.Secure),
	)
	runner := o.action
	if runner == nil {
		runner = action.New(
			action.WithDelay(cfg.Action.Delay),
			action.WithProjectFile(cfg.Action.ProjectFile),
			action.WithLogger(log.WithFields(map[string]any{"component": "action"})),
		)
	}

	if err := s.routes(env, runner); err != nil {
		_ = s.closer.Close()
		return nil, err
	}
	return s, nil
}

func newEnv(cfg *config.Config, log *logging.Logger) (pages.Env, error) {
	theme, err := selectTheme(cfg.Theme)
	if err != nil {
		return pages.Env{}, err
	}
	engine, err := gotemplate.New(gotemplate.WithFS(uidemo.TemplatesFS()))
	if err != nil {
		return pages.Env{}, fmt.Errorf("server: templates: %w", err)
	}
	html, err := render.NewHTMLRenderer(engine,
		render.WithTheme(theme),
		render.WithSiteName(cfg.Name),
	)
	if err != nil {
		return pages.Env{}, fmt.Errorf("server: html renderer: %w", err)
	}
	renderers := render.NewRegistry()
	if err := renderers.Register(html); err != nil {
		return pages.Env{}, err
	}
	if err := renderers.Register(render.NewJSONRenderer(false)); err != nil {
		return pages.Env{}, err
	}
	comps, err := components.NewRenderer(engine, nil)
	if err != nil {
		return pages.Env{}, fmt.Errorf("server: components: %w", err)
	}
	return pages.Env{Pages: renderers, Components: comps, Logger: log}, nil
}

func selectTheme(cfg config.ThemeConfig) (*theming.Config, error) {
	registry, err := theming.LoadRegistry(uidemo.ThemesFS())
	if err != nil {
		return nil, fmt.Errorf("server: themes: %w", err)
	}
	selector := theme.Selector{Registry: registry}
	resolved, err := theming.Resolve(selector, cfg.Name, cfg.Variant)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	return resolved, nil
}

func (s *Server) routes(env pages.Env, runner formvalidation.Runner) error {
	r := chi.NewRouter()
	r.Use(requestID, requestLogger(s.log), recoverer(s.log), s.sessions.Middleware)

	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServerFS(uidemo.AssetsFS())))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if _, err := home.RegisterRoutes(r, "", home.WithEnv(env)); err != nil {
		return err
	}
	if _, err := counter.RegisterRoutes(r, "",
		counter.WithEnv(env),
		counter.WithOriginPatterns(s.cfg.Server.AllowedOrigins...),
	); err != nil {
		return err
	}
	if _, err := todospage.RegisterRoutes(r, "",
		todospage.WithEnv(env),
		todospage.WithStorage(func(req *http.Request) store.Storage {
			return s.sessions.StorageFor(req.Context())
		}),
	); err != nil {
		return err
	}
	if _, err := formvalidation.RegisterRoutes(r, "",
		formvalidation.WithEnv(env),
		formvalidation.WithAction(runner),
	); err != nil {
		return err
	}

	missing, err := notfound.Handler(notfound.WithEnv(env))
	if err != nil {
		return err
	}
	r.NotFound(missing.ServeHTTP)

	s.router = r
	return nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Sessions returns the session manager.
func (s *Server) Sessions() *session.Manager {
	return s.sessions
}

// Close releases the storage backend.
func (s *Server) Close() error {
	return s.closer.Close()
}

// Run serves on the configured address until ctx is done, then shuts down
// within the configured grace period.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("server: listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.log.WithFields(map[string]any{"addr": ln.Addr().String()}).Info("server listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: serve: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("server shutting down")
	grace := s.cfg.Server.ShutdownGrace
	if grace <= 0 {
		_ = srv.Close()
		<-errCh
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), grace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		_ = srv.Close()
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: serve: %w", err)
	}
	return nil
}
