package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"lockin/internal/account"
	"lockin/internal/config"
	"lockin/internal/dashboard"
	"lockin/internal/storage"
)

// app is the state shared by every subcommand: config, logger and the
// key-value backend.
type app struct {
	configPath string
	memory     bool

	cfg     config.Config
	log     *log.Logger
	backend account.Backend
	closers []func() error
}

func (a *app) open() error {
	path := a.configPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	if err := a.openLog(); err != nil {
		return err
	}

	if a.memory {
		a.backend = storage.NewMemory()
		a.log.Debug("using in-memory storage")
		return nil
	}
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	a.backend = store
	a.closers = append(a.closers, store.Close)
	a.log.Debug("opened database", "path", cfg.DBPath)
	return nil
}

func (a *app) openLog() error {
	if err := os.MkdirAll(filepath.Dir(a.cfg.LogPath), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(a.cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	a.closers = append(a.closers, f.Close)

	a.log = log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "lockin",
	})
	level, err := log.ParseLevel(a.cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
		a.log.Warn("unknown log level, using info", "level", a.cfg.LogLevel)
	}
	a.log.SetLevel(level)
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && a.log != nil {
			a.log.Error("close", "err", err)
		}
	}
	a.closers = nil
}

func (a *app) dashboard() *dashboard.Dashboard {
	s := a.cfg.Schema
	return dashboard.New(a.backend, dashboard.Options{
		TaskTypes:       s.TaskTypes,
		DefaultType:     s.DefaultType,
		TaskDueRequired: s.TaskDueRequired,
		NoteDueRequired: s.NoteDueRequired,
	}, a.log)
}

func (a *app) accounts() *account.Accounts {
	return account.New(a.backend, a.log)
}
