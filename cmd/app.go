package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikogura/portfolio-admin/pkg/client"
	"github.com/nikogura/portfolio-admin/pkg/config"
	"github.com/nikogura/portfolio-admin/pkg/editor"
	"github.com/nikogura/portfolio-admin/pkg/logging"
	"github.com/nikogura/portfolio-admin/pkg/portfolio"
	"github.com/nikogura/portfolio-admin/pkg/services"
	"github.com/nikogura/portfolio-admin/pkg/storage"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// app bundles everything a command needs to talk to the backend.
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	store    *storage.FileStore
	svc      *services.Services
	provider *portfolio.Provider
	session  *editor.Session
}

// newApp loads config and storage and wires the client stack.
func newApp() (a *app, err error) {
	a = &app{}

	a.cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return a, err
	}

	a.logger, err = logging.New(getVerbose())
	if err != nil {
		return a, err
	}

	storagePath := a.cfg.StoragePath
	if storagePath == "" {
		storagePath, err = storage.DefaultPath()
		if err != nil {
			return a, err
		}
	}

	a.store, err = storage.OpenFile(storagePath)
	if err != nil {
		return a, err
	}

	if getVerbose() {
		fmt.Printf("API: %s\n", a.cfg.APIURL)
		fmt.Printf("Storage: %s\n", storagePath)
	}

	c := client.NewClient(a.cfg.APIURL, a.store, a.logger)
	c.SetTimeout(a.cfg.Timeout())

	a.svc = services.New(c, a.store)
	a.provider = portfolio.NewProvider(a.svc, a.logger)
	a.session = editor.NewSession(a.provider, a.svc, newTerminalAlerter(), a.logger)

	return a, err
}

// loadRetryHint follows a failed initial load. Only show has --retry.
const loadRetryHint = "Run the command again to retry."

// load runs the initial portfolio load, printing the failure the way the page shows it.
func (a *app) load(ctx context.Context) (err error) {
	err = a.session.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading data: %s\n", client.Message(err))
		fmt.Fprintln(os.Stderr, loadRetryHint)
		return err
	}
	return err
}

// admin loads the portfolio and switches the session into admin mode.
func (a *app) admin(ctx context.Context) (err error) {
	err = a.load(ctx)
	if err != nil {
		return err
	}
	a.session.SetAdmin(true)
	return err
}

// close flushes the logger.
func (a *app) close() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// terminalAlerter prints alerts to stderr in a bordered box.
type terminalAlerter struct {
	style lipgloss.Style
}

func newTerminalAlerter() (a *terminalAlerter) {
	a = &terminalAlerter{
		style: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f38ba8")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#f38ba8")),
	}
	return a
}

func (a *terminalAlerter) Alert(message string) {
	fmt.Fprintln(os.Stderr, a.style.Render(message))
}
