// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/lapor/internal/api"
	"github.com/tomtom215/lapor/internal/auth"
	"github.com/tomtom215/lapor/internal/config"
	"github.com/tomtom215/lapor/internal/logging"
	"github.com/tomtom215/lapor/internal/mapview"
	"github.com/tomtom215/lapor/internal/models"
	"github.com/tomtom215/lapor/internal/router"
	"github.com/tomtom215/lapor/internal/session"
)

// app wires the client components for one command invocation.
type app struct {
	cfg       *config.Config
	persister session.Persister
	store     *session.Store
	client    *api.Client
	router    *router.HashRouter
	auth      *auth.Orchestrator
	engine    *mapview.MemoryEngine
	maps      *mapview.Controller
}

func loadConfig(opts *globalOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFrom(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if opts.baseURL != "" {
		cfg.API.BaseURL = opts.baseURL
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.Logging.Format = opts.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// loadApp builds the client stack and restores the persisted session.
// Callers must Close the returned app.
func loadApp(ctx context.Context, cmd *cobra.Command, opts *globalOptions, view auth.View) (*app, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    cmd.ErrOrStderr(),
	})
	base := logging.Logger()
	logging.SetLogger(base.With().Str("command", cmd.Name()).Logger())
	logging.Ctx(ctx).Debug().Str("config", opts.configPath).Msg("Configuration loaded")

	persister, err := session.OpenPersister(cfg.Session)
	if err != nil {
		return nil, err
	}
	store := session.NewStore(persister)
	if err := store.Restore(ctx); err != nil {
		_ = persister.Close()
		return nil, err
	}

	client := api.NewClient(&cfg.API, store)
	r := router.New(cfg.Router)
	engine := mapview.NewMemoryEngine()

	return &app{
		cfg:       cfg,
		persister: persister,
		store:     store,
		client:    client,
		router:    r,
		auth:      auth.NewOrchestrator(client, store, r, view, cfg.Router),
		engine:    engine,
		maps:      mapview.NewController(engine, cfg.Map),
	}, nil
}

// Close runs pending router tasks and releases the session store.
func (a *app) Close() error {
	a.router.Drain()
	return errors.Join(a.router.Close(), a.persister.Close())
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// printResult writes res and turns a failed result into a command error.
func printResult[T any](w io.Writer, res models.Result[T]) error {
	if err := printJSON(w, res); err != nil {
		return err
	}
	if !res.OK {
		return errors.New(res.Message)
	}
	return nil
}

// withApp runs fn with a loaded app and closes it afterwards.
func withApp(cmd *cobra.Command, opts *globalOptions, fn func(ctx context.Context, a *app) error) error {
	ctx := logging.ContextWithNewCorrelationID(cmd.Context())
	a, err := loadApp(ctx, cmd, opts, nil)
	if err != nil {
		return err
	}
	return errors.Join(fn(ctx, a), a.Close())
}
