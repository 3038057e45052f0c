package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/dshills/designable/internal/config"
	"github.com/dshills/designable/internal/designer"
	"github.com/dshills/designable/internal/document"
	"github.com/dshills/designable/internal/effect/lua"
	"github.com/dshills/designable/internal/input/driver"
	"github.com/dshills/designable/internal/input/surface"
	"github.com/dshills/designable/internal/keyboard"
	"github.com/dshills/designable/internal/outline"
	"github.com/dshills/designable/internal/screen"
	"github.com/dshills/designable/internal/workspace"
)

// ActionQuit names the shortcut that exits the application.
const ActionQuit = "quit"

// quitKeys is bound to ActionQuit unless the configuration binds it.
var quitKeys = []string{"Ctrl+Q"}

// bootstrapper initializes components in dependency order and cleans up
// the ones already built when a later step fails.
type bootstrapper struct {
	app  *Application
	opts Options
}

func newBootstrapper(app *Application, opts Options) *bootstrapper {
	return &bootstrapper{app: app, opts: opts}
}

func (b *bootstrapper) bootstrap() error {
	steps := []func() error{
		b.initConfig,
		b.initLogger,
		b.initTerminal,
		b.initDesigner,
		b.initOutline,
		b.initWatcher,
		b.initMetrics,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			b.cleanup()
			return err
		}
	}
	b.app.logger.Info("application initialized",
		zap.Strings("workspaces", b.app.config.Designer.Workspaces),
		zap.String("document", b.app.config.Document.Path),
		zap.Bool("metrics", b.app.metrics != nil),
	)
	return nil
}

func (b *bootstrapper) initConfig() error {
	cfg, err := config.Load(b.opts.ConfigPath)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	if b.opts.Document != "" {
		cfg.Document.Path = b.opts.Document
	}
	if b.opts.Watch {
		cfg.Document.Watch = true
	}
	if b.opts.LogLevel != "" {
		cfg.Log.Level = b.opts.LogLevel
	}
	if b.opts.LogFile != "" {
		cfg.Log.File = b.opts.LogFile
	}
	if err := cfg.Validate(); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	b.app.config = cfg
	return nil
}

func (b *bootstrapper) initLogger() error {
	logger, err := NewLogger(b.app.config.Log)
	if err != nil {
		return err
	}
	b.app.logger = logger
	return nil
}

func (b *bootstrapper) initTerminal() error {
	if b.opts.Screen != nil {
		b.app.terminal = surface.NewTerminal(b.opts.Screen, surface.WithLogger(b.app.logger))
		return nil
	}
	term, err := surface.Open(surface.WithLogger(b.app.logger))
	if err != nil {
		return &InitError{Component: "terminal", Err: err}
	}
	b.app.terminal = term
	return nil
}

func (b *bootstrapper) initDesigner() error {
	d, err := designer.New(b.props(), designer.WithLogger(b.app.logger))
	if err != nil {
		return &InitError{Component: "designer", Err: err}
	}
	b.app.designer = d
	return nil
}

// props translates the configuration. Workspaces are opened and the
// document loaded by the first effects, so Lua effects see them.
func (b *bootstrapper) props() designer.Props {
	cfg := b.app.config
	effects := []designer.Effect{
		openWorkspaces(cfg.Designer.Workspaces),
	}
	if cfg.Document.Path != "" {
		path := cfg.Document.Path
		effects = append(effects, func(d *designer.Designer) error {
			return document.Reload(d, path)
		})
	}
	for _, path := range cfg.Designer.Effects {
		effects = append(effects, lua.Effect(path))
	}

	return designer.Props{
		Shortcuts:         b.shortcuts(cfg.Shortcuts),
		Effects:           effects,
		Drivers:           driver.Defaults(),
		RootComponentName: cfg.Designer.RootComponent,
		DefaultScreenType: screen.Type(cfg.Designer.Screen),
		DragThreshold:     cfg.Designer.DragThreshold,
	}
}

// shortcuts converts the configured table, falling back to the designer
// defaults, and binds the quit action.
func (b *bootstrapper) shortcuts(configured []config.ShortcutConfig) []keyboard.Shortcut {
	var out []keyboard.Shortcut
	if len(configured) == 0 {
		out = designer.DefaultShortcuts()
	}
	for _, sc := range configured {
		out = append(out, keyboard.Shortcut{Name: sc.Name, Keys: sc.Keys})
	}

	quit := func(context.Context) error {
		b.app.Quit()
		return nil
	}
	bound := false
	for i := range out {
		if out[i].Name == ActionQuit {
			out[i].Handler = quit
			bound = true
		}
	}
	if !bound {
		out = append(out, keyboard.Shortcut{Name: ActionQuit, Keys: quitKeys, Handler: quit})
	}
	return out
}

func openWorkspaces(ids []string) designer.Effect {
	return func(d *designer.Designer) error {
		for _, id := range ids {
			if _, err := d.Workbench().AddWorkspace(workspace.Props{ID: id}); err != nil {
				return err
			}
		}
		return nil
	}
}

func (b *bootstrapper) initOutline() error {
	r, err := outline.New(b.app.terminal.Screen(), b.app.designer,
		outline.WithLogger(b.app.logger),
		outline.WithScheduler(b.app.terminal.Do),
	)
	if err != nil {
		return &InitError{Component: "outline", Err: err}
	}
	b.app.outline = r
	return nil
}

func (b *bootstrapper) initWatcher() error {
	doc := b.app.config.Document
	if doc.Path == "" || !doc.Watch {
		return nil
	}
	w, err := document.Watch(doc.Path, b.app.scheduleReload, document.WithWatchLogger(b.app.logger))
	if err != nil {
		return &InitError{Component: "watcher", Err: err}
	}
	b.app.watcher = w
	return nil
}

func (b *bootstrapper) initMetrics() error {
	if !b.app.config.Metrics.Enabled {
		return nil
	}
	m, err := NewMetrics(b.app.designer)
	if err != nil {
		return &InitError{Component: "metrics", Err: err}
	}
	b.app.metrics = m
	return nil
}

func (b *bootstrapper) cleanup() {
	if b.app.logger == nil {
		b.app.logger = zap.NewNop()
	}
	if err := b.app.Shutdown(); err != nil {
		b.app.logger.Warn("cleanup after failed start", zap.Error(err))
	}
}
