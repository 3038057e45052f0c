// Package app wires the designer to a terminal: configuration, logging,
// the outline renderer, document reloading, Lua effects and metrics. It
// owns the single application loop every component runs on.
package app

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/dshills/designable/internal/config"
	"github.com/dshills/designable/internal/designer"
	"github.com/dshills/designable/internal/document"
	"github.com/dshills/designable/internal/input/surface"
	"github.com/dshills/designable/internal/outline"
)

// shutdownTimeout bounds the metrics server shutdown.
const shutdownTimeout = 2 * time.Second

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file. Empty reads
	// config.DefaultPath when it exists.
	ConfigPath string

	// Document overrides the configured tree document.
	Document string

	// Watch reloads the document when it changes on disk.
	Watch bool

	// LogLevel overrides the configured log level.
	LogLevel string

	// LogFile overrides the configured log file.
	LogFile string

	// Screen is the terminal screen. Nil opens the controlling terminal.
	Screen tcell.Screen
}

// Application is the central coordinator. It manages component lifecycles,
// wiring, and the main event loop.
type Application struct {
	mu sync.Mutex

	config   config.Config
	logger   *zap.Logger
	designer *designer.Designer
	terminal *surface.Terminal
	outline  *outline.Renderer
	watcher  *document.Watcher
	metrics  *Metrics
	server   *http.Server

	metricsAddr string

	running  atomic.Bool
	quit     atomic.Bool
	screenUp bool
	closed   bool

	ready     chan struct{}
	readyOnce sync.Once
}

// New creates an Application from opts. Nothing is drawn until Run.
func New(opts Options) (*Application, error) {
	app := &Application{ready: make(chan struct{})}
	b := newBootstrapper(app, opts)
	if err := b.bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// Config returns the effective configuration.
func (app *Application) Config() config.Config { return app.config }

// Logger returns the application logger.
func (app *Application) Logger() *zap.Logger { return app.logger }

// Designer returns the designer.
func (app *Application) Designer() *designer.Designer { return app.designer }

// Terminal returns the input surface.
func (app *Application) Terminal() *surface.Terminal { return app.terminal }

// Outline returns the renderer.
func (app *Application) Outline() *outline.Renderer { return app.outline }

// Metrics returns the metrics, or nil when disabled.
func (app *Application) Metrics() *Metrics { return app.metrics }

// MetricsAddr returns the address the metrics server listens on, once Run
// has started it.
func (app *Application) MetricsAddr() string { return app.metricsAddr }

// IsRunning reports whether Run is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Ready is closed once Run has mounted the designer and entered the loop.
func (app *Application) Ready() <-chan struct{} {
	return app.ready
}

// Quit asks a running application to exit; Run then returns ErrQuit.
func (app *Application) Quit() {
	app.quit.Store(true)
	app.terminal.Stop()
}

// Shutdown releases every component. It is safe to call more than once and
// from any goroutine once Run has returned.
func (app *Application) Shutdown() error {
	app.mu.Lock()
	if app.closed {
		app.mu.Unlock()
		return nil
	}
	app.closed = true
	app.mu.Unlock()

	var errs ErrorList
	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			errs.Add(NewComponentError("watcher", "close", err))
		}
	}
	if app.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		err := app.server.Shutdown(ctx)
		cancel()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs.Add(NewComponentError("metrics", "shutdown", err))
		}
	}
	if app.metrics != nil {
		app.metrics.Close()
	}
	if app.outline != nil {
		app.outline.Close()
	}
	if app.designer != nil {
		app.designer.Close()
	}
	if app.terminal != nil && app.screenUp {
		app.terminal.Close()
	}
	if err := app.logger.Sync(); err != nil {
		app.logger.Debug("logger sync failed", zap.Error(err))
	}
	return errs.AsError()
}
