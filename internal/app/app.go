package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/yumosx/recycler/internal/config"
	"github.com/yumosx/recycler/internal/fsext"
	"github.com/yumosx/recycler/internal/log"
	"github.com/yumosx/recycler/internal/tui/components/files"
)

// App owns everything that outlives a single screen: the configuration, the
// browsed directory and the watcher that reports changes to it.
type App struct {
	config *config.Config
	root   string

	watcher *fsext.Watcher
	events  chan tea.Msg

	globalCtx context.Context
	cancel    context.CancelFunc
	watcherWG sync.WaitGroup
}

func New(ctx context.Context, cfg *config.Config, root string) (*App, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	ctx, cancel := context.WithCancel(ctx)
	app := &App{
		config:    cfg,
		root:      root,
		watcher:   fsext.NewWatcher(root, cfg.Options.Ignore),
		events:    make(chan tea.Msg, 16),
		globalCtx: ctx,
		cancel:    cancel,
	}

	app.watcherWG.Add(1)
	go app.runWatcher(ctx)
	return app, nil
}

func (app *App) Config() *config.Config {
	return app.config
}

func (app *App) Root() string {
	return app.root
}

// Events delivers messages produced off the UI goroutine.
func (app *App) Events() <-chan tea.Msg {
	return app.events
}

func (app *App) runWatcher(ctx context.Context) {
	defer app.watcherWG.Done()
	defer log.RecoverPanic("watcher", func() {
		slog.Error("Directory watcher stopped after a panic", "root", app.root)
	})

	err := app.watcher.Watch(ctx, func(paths []string) {
		app.publish(ctx, files.ReloadMsg{Paths: paths})
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Directory watcher failed", "root", app.root, "error", err)
		return
	}
	slog.Debug("Directory watcher stopped", "root", app.root)
}

func (app *App) publish(ctx context.Context, msg tea.Msg) {
	select {
	case app.events <- msg:
	case <-ctx.Done():
	}
}

// Subscribe forwards events to program until the app shuts down.
func (app *App) Subscribe(program *tea.Program) {
	defer log.RecoverPanic("app.Subscribe", func() {
		slog.Info("TUI subscription panic: attempting graceful shutdown")
		program.Quit()
	})

	for {
		select {
		case <-app.globalCtx.Done():
			return
		case msg := <-app.events:
			program.Send(msg)
		}
	}
}

// Shutdown stops the watcher and waits for it to exit.
func (app *App) Shutdown() {
	app.cancel()
	app.watcherWG.Wait()
}
