// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/lapor/internal/config"
	"github.com/tomtom215/lapor/internal/logging"
	"github.com/tomtom215/lapor/internal/metrics"
	"github.com/tomtom215/lapor/internal/models"
)

var (
	// ErrLoginFailed wraps the message of a rejected login.
	ErrLoginFailed = errors.New("login failed")

	// ErrNoAccessToken is returned when the backend reports success but no
	// access token can be found in the response.
	ErrNoAccessToken = errors.New("login response carries no access token")

	// ErrLoginInProgress is returned when Login is called while another
	// attempt is still submitting.
	ErrLoginInProgress = errors.New("login already in progress")
)

// Login attempt outcomes recorded in lapor_login_attempts_total.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeNoToken = "no_token"
	OutcomeBusy    = "busy"
)

// View is the login page presenter.
type View interface {
	ShowSubmitLoading()
	HideSubmitLoading()
	LoginFailed(message string)
	LoginSucceeded()
}

// Navigator is the page router.
type Navigator interface {
	CurrentRoute() string
	Navigate(route string)
	Refresh()
	// Defer runs fn on the next tick, after pending navigation settles. It
	// reports false when fn could not be scheduled.
	Defer(fn func()) bool
}

// SessionStore holds the access token.
type SessionStore interface {
	AccessToken() string
	PutAccessToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// LoginAPI is the API client's login operation.
type LoginAPI interface {
	Login(ctx context.Context, email, password string) models.LoginResponse
}

// Orchestrator runs login and logout against the API, session store and router.
type Orchestrator struct {
	api      LoginAPI
	session  SessionStore
	nav      Navigator
	view     View
	routes   config.RouterConfig
	security *logging.SecurityLogger
	logger   zerolog.Logger

	mu    sync.Mutex
	state State
	last  State
}

// NewOrchestrator creates an idle orchestrator. A nil view is replaced by a no-op.
func NewOrchestrator(api LoginAPI, session SessionStore, nav Navigator, view View, routes config.RouterConfig) *Orchestrator {
	if view == nil {
		view = nopView{}
	}
	return &Orchestrator{
		api:      api,
		session:  session,
		nav:      nav,
		view:     view,
		routes:   routes,
		security: logging.NewSecurityLogger(),
		logger:   logging.WithComponent("auth"),
		state:    StateIdle,
		last:     StateIdle,
	}
}

// State returns the current state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// LastOutcome returns the terminal state of the most recent attempt, or
// StateIdle when no attempt has finished.
func (o *Orchestrator) LastOutcome() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.last
}

// Login submits credentials. A nil error means the token is stored and the
// refresh signal has been emitted.
func (o *Orchestrator) Login(ctx context.Context, email, password string) (err error) {
	if !o.enter() {
		metrics.RecordLoginAttempt(OutcomeBusy)
		return ErrLoginInProgress
	}

	o.view.ShowSubmitLoading()
	defer o.view.HideSubmitLoading()
	defer func() { o.leave(err) }()

	resp := o.api.Login(ctx, email, password)
	if !resp.OK {
		o.fail(email, resp.Message, OutcomeFailure)
		return fmt.Errorf("%w: %s", ErrLoginFailed, resp.Message)
	}

	token, source := extractToken(&resp)
	if token == "" {
		o.fail(email, ErrNoAccessToken.Error(), OutcomeNoToken)
		return ErrNoAccessToken
	}

	if err := o.session.PutAccessToken(ctx, token); err != nil {
		o.fail(email, err.Error(), OutcomeFailure)
		return fmt.Errorf("store access token: %w", err)
	}

	o.security.LogLogin(email, resp.Data.UserID, token, true, "")
	o.logger.Debug().Str("token_source", source).Msg("Access token extracted")
	metrics.RecordLoginAttempt(OutcomeSuccess)

	o.view.LoginSucceeded()
	o.emitRefresh()
	return nil
}

// Logout clears the session and navigates to the login route.
func (o *Orchestrator) Logout(ctx context.Context) error {
	token := o.session.AccessToken()
	if err := o.session.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	o.security.LogLogout(token)
	o.nav.Navigate(o.routes.LoginRoute)
	return nil
}

func (o *Orchestrator) enter() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == StateSubmitting {
		return false
	}
	o.state = StateSubmitting
	return true
}

func (o *Orchestrator) leave(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		o.last = StateFailure
	} else {
		o.last = StateSuccess
	}
	o.logger.Debug().Stringer("outcome", o.last).Msg("Login attempt finished")
	o.state = StateIdle
}

func (o *Orchestrator) fail(email, message, outcome string) {
	o.security.LogLogin(email, "", "", false, message)
	metrics.RecordLoginAttempt(outcome)
	o.view.LoginFailed(message)
}

func (o *Orchestrator) emitRefresh() {
	target := o.routes.DefaultRoute
	switch planRefresh(o.nav.CurrentRoute(), target) {
	case navigateThenRefresh:
		o.nav.Navigate(target)
		if !o.nav.Defer(o.nav.Refresh) {
			o.logger.Warn().Str("route", target).Msg("Could not defer refresh, refreshing now")
			o.nav.Refresh()
		}
	case refreshNow:
		o.nav.Refresh()
	}
}

type refreshPlan int

const (
	refreshNow refreshPlan = iota
	navigateThenRefresh
)

// planRefresh decides how to re-render after login. Navigation must settle
// before the refresh, so a route change defers it.
func planRefresh(current, target string) refreshPlan {
	if current != target {
		return navigateThenRefresh
	}
	return refreshNow
}

type nopView struct{}

func (nopView) ShowSubmitLoading() {}
func (nopView) HideSubmitLoading() {}
func (nopView) LoginFailed(string) {}
func (nopView) LoginSucceeded()    {}
