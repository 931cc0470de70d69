// Package server serves chart layouts over HTTP.
//
// The server holds the current dataset in a dataset.Store, reloads it when
// the source file changes and hands out layouts, schedules and dataset
// summaries as JSON. Dataset changes are pushed to /events listeners as
// datastar signal patches. Finished layouts can be archived and fetched
// again by ID.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/datavis/internal/server/notifier"
	"github.com/leapstack-labs/datavis/internal/state"
	"github.com/leapstack-labs/datavis/pkg/core"
	"github.com/leapstack-labs/datavis/pkg/dataset"
	"github.com/leapstack-labs/datavis/pkg/layout"
	"github.com/leapstack-labs/datavis/pkg/source"
)

// watchDebounce delays reloads until a burst of file events settles.
const watchDebounce = 100 * time.Millisecond

// RequestFunc returns the configured request for a chart kind.
type RequestFunc func(kind layout.ChartKind) (layout.Request, error)

// Config holds configuration for the server.
type Config struct {
	Addr string
	// Source is read on Reload. A zero Source starts with an empty store
	// that is filled through PUT /dataset.
	Source      source.Config
	LoadOptions dataset.Options
	// Requests supplies chart defaults. Nil uses layout.NewRequest.
	Requests        RequestFunc
	Watch           bool
	ShutdownTimeout time.Duration
	// Archive stores finished layouts for GET /layouts. Nil disables it.
	Archive Archive
	// ArchiveKeep bounds the archive to the newest layouts. Zero keeps all.
	ArchiveKeep int
	Logger      *slog.Logger
}

// Archive stores finished layouts.
type Archive interface {
	SaveLayout(ctx context.Context, l *state.Layout) error
	GetLayout(ctx context.Context, id string) (*state.Layout, error)
	ListLayouts(ctx context.Context, kind string, limit int) ([]state.Layout, error)
	PruneLayouts(ctx context.Context, keep int) (int64, error)
}

// Server is the chart layout HTTP server.
type Server struct {
	cfg      Config
	store    *dataset.Store
	engine   *layout.Engine
	notifier *notifier.Notifier
	logger   *slog.Logger
}

// New creates a new server instance.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Requests == nil {
		cfg.Requests = layout.NewRequest
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}
	return &Server{
		cfg:      cfg,
		store:    dataset.NewStore(logger),
		engine:   layout.NewEngine(logger),
		notifier: notifier.New(),
		logger:   logger,
	}
}

// Store returns the server's dataset store.
func (s *Server) Store() *dataset.Store { return s.store }

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier { return s.notifier }

// hasSource reports whether a table source is configured.
func (s *Server) hasSource() bool {
	return s.cfg.Source.Type != "" || s.cfg.Source.Path != ""
}

// Reload reads the configured source and swaps the stored dataset. An
// invalid table is still stored so clients can see why it was rejected.
func (s *Server) Reload(ctx context.Context) error {
	raw, err := source.ReadTable(ctx, s.cfg.Source, s.logger)
	if err != nil {
		return fmt.Errorf("failed to read source: %w", err)
	}
	_, _, err = s.publish(raw, s.cfg.LoadOptions)
	return err
}

// publish loads raw into the store and notifies listeners.
func (s *Server) publish(raw dataset.RawTable, opts dataset.Options) (*dataset.Dataset, uint64, error) {
	ds, v, err := s.store.LoadTable(raw, opts)
	s.notifier.Publish()
	s.logger.Debug("dataset published", "version", v, "rows", ds.Len(), "valid", ds.Valid())
	return ds, v, err
}

// archive stores a finished layout. Failures are logged; the layout is
// still returned to the client.
func (s *Server) archive(ctx context.Context, res layout.Result, version uint64) {
	if s.cfg.Archive == nil || !res.Finished() {
		return
	}
	l := &state.Layout{DatasetVersion: version, Spec: res.Spec, Warnings: res.Warnings}
	if err := s.cfg.Archive.SaveLayout(ctx, l); err != nil {
		s.logger.Error("failed to archive layout", "id", res.Spec.ID, "error", err)
		return
	}
	if s.cfg.ArchiveKeep > 0 {
		if n, err := s.cfg.Archive.PruneLayouts(ctx, s.cfg.ArchiveKeep); err != nil {
			s.logger.Error("failed to prune layout archive", "error", err)
		} else if n > 0 {
			s.logger.Debug("pruned layout archive", "deleted", n)
		}
	}
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		requestLogger(s.logger),
		middleware.Recoverer,
		middleware.Compress(5, "application/json"),
	)
	s.routes(r)
	return r
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	if s.hasSource() {
		// An invalid table is served as such; only read failures are fatal.
		if err := s.Reload(ctx); err != nil && !core.IsInvalidData(err) {
			return err
		}
	}

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("starting server", "addr", "http://"+ln.Addr().String())

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start file watcher if enabled
	if s.cfg.Watch && s.cfg.Source.Path != "" && s.cfg.Source.Path != "-" {
		eg.Go(func() error {
			return s.watchSource(egctx)
		})
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		s.logger.Debug("shutting down server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// watchSource reloads the dataset when the source file changes. The parent
// directory is watched so editors that replace the file are seen too.
func (s *Server) watchSource(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	path, err := filepath.Abs(s.cfg.Source.Path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		s.logger.Error("failed to watch source", "path", path, "error", err)
		// Don't fail - continue without watching
		<-ctx.Done()
		return nil
	}

	// Debounce timer
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(watchDebounce, func() {
				s.logger.Debug("source changed, reloading", "file", event.Name)
				if err := s.Reload(ctx); err != nil {
					s.logger.Error("reload failed", "error", err)
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

// requestLogger logs one line per request.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
