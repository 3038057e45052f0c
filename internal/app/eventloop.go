package app

import (
	"context"
	"errors"
	"net"
	"net/http"

	"go.uber.org/zap"

	"github.com/dshills/designable/internal/document"
)

// Run initializes the terminal, mounts the designer on it and runs the loop
// until ctx is cancelled or Quit is called, in which case it returns
// ErrQuit.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.Lock()
	closed := app.closed
	app.mu.Unlock()
	if closed {
		return ErrShutdown
	}

	if err := app.terminal.Init(); err != nil {
		return &InitError{Component: "terminal", Err: err}
	}
	app.screenUp = true

	if err := app.designer.Mount(app.terminal); err != nil {
		return NewComponentError("designer", "mount", err)
	}
	defer app.designer.Unmount()

	if app.metrics != nil {
		cancel := app.terminal.Listen(func(any) { app.metrics.Sample() })
		defer cancel()
		app.metrics.Sample()
		if err := app.serveMetrics(); err != nil {
			return err
		}
	}

	app.outline.Draw()
	app.readyOnce.Do(func() { close(app.ready) })
	app.logger.Info("event loop started")

	err := app.terminal.Run(ctx)
	app.logger.Info("event loop stopped", zap.Error(err))
	if app.quit.Load() {
		return ErrQuit
	}
	return err
}

// scheduleReload is the watcher callback. It runs on the watcher's
// goroutine and hands the reload to the loop.
func (app *Application) scheduleReload(path string) {
	if err := app.terminal.Do(func() { app.reload(path) }); err != nil {
		app.logger.Debug("reload dropped", zap.String("path", path), zap.Error(err))
	}
}

// reload must run on the loop.
func (app *Application) reload(path string) {
	err := document.Reload(app.designer, path)
	if err != nil {
		app.logger.Warn("document reload failed", zap.String("path", path), zap.Error(err))
	}
	if app.metrics != nil {
		app.metrics.RecordReload(err)
		app.metrics.Sample()
	}
}

func (app *Application) serveMetrics() error {
	addr := app.config.Metrics.Addr
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return NewComponentError("metrics", "listen "+addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", app.metrics.Handler())
	app.server = &http.Server{Handler: mux}

	go func() {
		if err := app.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error("metrics server failed", zap.Error(err))
		}
	}()
	app.metricsAddr = ln.Addr().String()
	app.logger.Info("metrics listening", zap.String("addr", app.metricsAddr))
	return nil
}
