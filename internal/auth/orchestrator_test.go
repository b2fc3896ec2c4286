// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package auth

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/lapor/internal/api"
	"github.com/tomtom215/lapor/internal/config"
	"github.com/tomtom215/lapor/internal/models"
	"github.com/tomtom215/lapor/internal/router"
	"github.com/tomtom215/lapor/internal/session"
	"github.com/tomtom215/lapor/internal/testinfra"
)

var testRoutes = config.RouterConfig{DefaultRoute: "#/", LoginRoute: "#/login"}

type fakeView struct {
	mu        sync.Mutex
	calls     []string
	failures  []string
	showCount int
	hideCount int
}

func (v *fakeView) record(call string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls = append(v.calls, call)
}

func (v *fakeView) ShowSubmitLoading() {
	v.record("show")
	v.mu.Lock()
	v.showCount++
	v.mu.Unlock()
}

func (v *fakeView) HideSubmitLoading() {
	v.record("hide")
	v.mu.Lock()
	v.hideCount++
	v.mu.Unlock()
}

func (v *fakeView) LoginFailed(message string) {
	v.record("failed")
	v.mu.Lock()
	v.failures = append(v.failures, message)
	v.mu.Unlock()
}

func (v *fakeView) LoginSucceeded() { v.record("succeeded") }

func (v *fakeView) snapshot() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.calls...)
}

type fakeNavigator struct {
	route     string
	navigated []string
	refreshes int
	deferred  []func()
	refuse    bool
}

func (n *fakeNavigator) CurrentRoute() string { return n.route }
func (n *fakeNavigator) Navigate(route string) {
	n.route = route
	n.navigated = append(n.navigated, route)
}
func (n *fakeNavigator) Refresh() { n.refreshes++ }
func (n *fakeNavigator) Defer(fn func()) bool {
	if n.refuse {
		return false
	}
	n.deferred = append(n.deferred, fn)
	return true
}

func (n *fakeNavigator) tick() {
	pending := n.deferred
	n.deferred = nil
	for _, fn := range pending {
		fn()
	}
}

type stubLogin struct {
	resp  models.LoginResponse
	calls int
}

func (s *stubLogin) Login(context.Context, string, string) models.LoginResponse {
	s.calls++
	return s.resp
}

func successResponse(data models.LoginData, raw string) models.LoginResponse {
	return models.LoginResponse{
		Result: models.Success("success", data),
		Raw:    json.RawMessage(raw),
	}
}

func TestLogin_AgainstBackend(t *testing.T) {
	t.Parallel()

	backend := testinfra.NewStoryBackend(t)
	store := session.NewStore(nil)
	client := api.NewClient(&config.APIConfig{BaseURL: backend.URL(), RateBurst: 1}, store)
	nav := &fakeNavigator{route: "#/"}
	view := &fakeView{}

	orch := NewOrchestrator(client, store, nav, view, testRoutes)
	if err := orch.Login(context.Background(), testinfra.DefaultEmail, testinfra.DefaultPassword); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if got := store.AccessToken(); got != testinfra.DefaultToken {
		t.Errorf("AccessToken() = %q, want %q", got, testinfra.DefaultToken)
	}
	if nav.refreshes != 1 {
		t.Errorf("refreshes = %d, want exactly 1", nav.refreshes)
	}
	if len(nav.navigated) != 0 {
		t.Errorf("navigated = %v, want none when already on default route", nav.navigated)
	}
	if orch.State() != StateIdle || orch.LastOutcome() != StateSuccess {
		t.Errorf("state = %v last = %v", orch.State(), orch.LastOutcome())
	}

	// Subsequent authenticated calls pick the token up immediately.
	if res := client.ListReports(context.Background()); !res.OK {
		t.Errorf("ListReports() after login OK = false, message %q", res.Message)
	}
}

func TestLogin_TokenInLoginResult(t *testing.T) {
	t.Parallel()

	backend := testinfra.NewStoryBackend(t)
	backend.Handle("POST", "/login", func(w http.ResponseWriter, _ *http.Request) {
		testinfra.WriteJSON(w, http.StatusOK, map[string]any{
			"error":       false,
			"message":     "success",
			"loginResult": map[string]any{"token": "T", "userId": "U", "name": "N"},
		})
	})
	store := session.NewStore(nil)
	client := api.NewClient(&config.APIConfig{BaseURL: backend.URL(), RateBurst: 1}, store)
	nav := &fakeNavigator{route: "#/"}

	orch := NewOrchestrator(client, store, nav, &fakeView{}, testRoutes)
	if err := orch.Login(context.Background(), "a@b.c", "x"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if store.AccessToken() != "T" {
		t.Errorf("AccessToken() = %q, want T", store.AccessToken())
	}
	if nav.refreshes != 1 {
		t.Errorf("refreshes = %d, want 1", nav.refreshes)
	}
}

func TestLogin_MissingTokenIsFailure(t *testing.T) {
	t.Parallel()

	backend := testinfra.NewStoryBackend(t)
	backend.Handle("POST", "/login", func(w http.ResponseWriter, _ *http.Request) {
		testinfra.WriteJSON(w, http.StatusOK, map[string]any{
			"error":       false,
			"message":     "success",
			"loginResult": map[string]any{"userId": "U", "name": "N"},
		})
	})
	persister := session.NewMemoryPersister()
	store := session.NewStore(persister)
	client := api.NewClient(&config.APIConfig{BaseURL: backend.URL(), RateBurst: 1}, store)
	nav := &fakeNavigator{route: "#/login"}
	view := &fakeView{}

	orch := NewOrchestrator(client, store, nav, view, testRoutes)
	err := orch.Login(context.Background(), "a@b.c", "x")
	if !errors.Is(err, ErrNoAccessToken) {
		t.Fatalf("Login() error = %v, want ErrNoAccessToken", err)
	}

	if store.HasToken() {
		t.Error("session mutated on missing token")
	}
	if _, err := persister.Load(context.Background()); !errors.Is(err, session.ErrNoToken) {
		t.Errorf("persister.Load() error = %v, want ErrNoToken", err)
	}
	if nav.refreshes != 0 || len(nav.navigated) != 0 || len(nav.deferred) != 0 {
		t.Errorf("router touched on failure: %+v", nav)
	}
	if orch.LastOutcome() != StateFailure {
		t.Errorf("LastOutcome() = %v, want failure", orch.LastOutcome())
	}
	want := []string{"show", "failed", "hide"}
	if got := view.snapshot(); !equalCalls(got, want) {
		t.Errorf("view calls = %v, want %v", got, want)
	}
}

func TestLogin_ApplicationFailure(t *testing.T) {
	t.Parallel()

	backend := testinfra.NewStoryBackend(t)
	store := session.NewStore(nil)
	client := api.NewClient(&config.APIConfig{BaseURL: backend.URL(), RateBurst: 1}, store)
	view := &fakeView{}

	orch := NewOrchestrator(client, store, &fakeNavigator{route: "#/login"}, view, testRoutes)
	err := orch.Login(context.Background(), testinfra.DefaultEmail, "wrong")
	if !errors.Is(err, ErrLoginFailed) {
		t.Fatalf("Login() error = %v, want ErrLoginFailed", err)
	}
	if len(view.failures) != 1 || view.failures[0] != "Invalid password" {
		t.Errorf("failures = %v, want [Invalid password]", view.failures)
	}
	if view.hideCount != 1 {
		t.Errorf("hideCount = %d, want 1", view.hideCount)
	}
	if store.HasToken() {
		t.Error("session mutated on failed login")
	}
}

func TestLogin_NavigatesThenRefreshesOnNextTick(t *testing.T) {
	t.Parallel()

	stub := &stubLogin{resp: successResponse(models.LoginData{AccessToken: "T"}, `{}`)}
	store := session.NewStore(nil)
	nav := &fakeNavigator{route: "#/login"}
	view := &fakeView{}

	orch := NewOrchestrator(stub, store, nav, view, testRoutes)
	if err := orch.Login(context.Background(), "a@b.c", "x"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if len(nav.navigated) != 1 || nav.navigated[0] != "#/" {
		t.Errorf("navigated = %v, want [#/]", nav.navigated)
	}
	if nav.refreshes != 0 {
		t.Errorf("refresh emitted before the next tick")
	}
	nav.tick()
	if nav.refreshes != 1 {
		t.Errorf("refreshes after tick = %d, want 1", nav.refreshes)
	}

	want := []string{"show", "succeeded", "hide"}
	if got := view.snapshot(); !equalCalls(got, want) {
		t.Errorf("view calls = %v, want %v", got, want)
	}
}

func TestLogin_RouterEventsArriveInOrder(t *testing.T) {
	t.Parallel()

	r := router.New(config.RouterConfig{DefaultRoute: "#/login", LoginRoute: "#/login", QueueSize: 4})
	t.Cleanup(func() { _ = r.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, err := r.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	stub := &stubLogin{resp: successResponse(models.LoginData{AccessToken: "T"}, `{}`)}
	orch := NewOrchestrator(stub, session.NewStore(nil), r, &fakeView{}, testRoutes)
	if err := orch.Login(ctx, "a@b.c", "x"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if n := r.Drain(); n != 1 {
		t.Errorf("Drain() = %d, want the deferred refresh", n)
	}

	var got []router.Event
	for len(got) < 2 {
		select {
		case ev := <-events:
			got = append(got, ev)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after %d events", len(got))
		}
	}
	want := []router.Event{
		{Kind: router.KindRoute, Route: "#/"},
		{Kind: router.KindRefresh, Route: "#/"},
	}
	if got[0] != want[0] || got[1] != want[1] {
		t.Errorf("events = %+v, want %+v", got, want)
	}
	select {
	case ev := <-events:
		t.Errorf("unexpected extra event %+v", ev)
	default:
	}
}

func TestLogin_RefreshesNowWhenDeferRefused(t *testing.T) {
	t.Parallel()

	stub := &stubLogin{resp: successResponse(models.LoginData{AccessToken: "T"}, `{}`)}
	nav := &fakeNavigator{route: "#/login", refuse: true}

	orch := NewOrchestrator(stub, session.NewStore(nil), nav, &fakeView{}, testRoutes)
	if err := orch.Login(context.Background(), "a@b.c", "x"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if len(nav.navigated) != 1 || nav.refreshes != 1 {
		t.Errorf("navigated = %v refreshes = %d, want one navigation and one refresh", nav.navigated, nav.refreshes)
	}
}

type failingSession struct {
	*session.Store
}

func (failingSession) PutAccessToken(context.Context, string) error {
	return errors.New("disk full")
}

func TestLogin_PersistFailure(t *testing.T) {
	t.Parallel()

	stub := &stubLogin{resp: successResponse(models.LoginData{AccessToken: "T"}, `{}`)}
	nav := &fakeNavigator{route: "#/"}
	view := &fakeView{}

	orch := NewOrchestrator(stub, &failingSession{Store: session.NewStore(nil)}, nav, view, testRoutes)
	if err := orch.Login(context.Background(), "a@b.c", "x"); err == nil {
		t.Fatal("Login() error = nil, want persist failure")
	}
	if nav.refreshes != 0 {
		t.Error("refresh emitted although token was not stored")
	}
	if view.hideCount != 1 || len(view.failures) != 1 {
		t.Errorf("view = %+v", view)
	}
}

type blockingLogin struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingLogin) Login(context.Context, string, string) models.LoginResponse {
	close(b.entered)
	<-b.release
	return successResponse(models.LoginData{AccessToken: "T"}, `{}`)
}

func TestLogin_InProgress(t *testing.T) {
	t.Parallel()

	bl := &blockingLogin{entered: make(chan struct{}), release: make(chan struct{})}
	view := &fakeView{}
	orch := NewOrchestrator(bl, session.NewStore(nil), &fakeNavigator{route: "#/"}, view, testRoutes)

	done := make(chan error, 1)
	go func() { done <- orch.Login(context.Background(), "a@b.c", "x") }()
	<-bl.entered

	if orch.State() != StateSubmitting {
		t.Errorf("State() = %v, want submitting", orch.State())
	}
	if err := orch.Login(context.Background(), "a@b.c", "x"); !errors.Is(err, ErrLoginInProgress) {
		t.Errorf("second Login() error = %v, want ErrLoginInProgress", err)
	}

	close(bl.release)
	if err := <-done; err != nil {
		t.Fatalf("first Login() error = %v", err)
	}

	view.mu.Lock()
	defer view.mu.Unlock()
	if view.showCount != 1 || view.hideCount != 1 {
		t.Errorf("show = %d hide = %d, want 1/1", view.showCount, view.hideCount)
	}
}

func TestLogout(t *testing.T) {
	t.Parallel()

	store := session.NewStore(nil)
	if err := store.PutAccessToken(context.Background(), "T"); err != nil {
		t.Fatal(err)
	}
	nav := &fakeNavigator{route: "#/"}

	orch := NewOrchestrator(&stubLogin{}, store, nav, nil, testRoutes)
	if err := orch.Logout(context.Background()); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if store.HasToken() {
		t.Error("token still present after Logout")
	}
	if nav.route != "#/login" {
		t.Errorf("route = %q, want #/login", nav.route)
	}
}

func TestPlanRefresh(t *testing.T) {
	t.Parallel()

	tests := []struct {
		current, target string
		want            refreshPlan
	}{
		{"#/", "#/", refreshNow},
		{"#/login", "#/", navigateThenRefresh},
		{"", "#/", navigateThenRefresh},
	}
	for _, tt := range tests {
		if got := planRefresh(tt.current, tt.target); got != tt.want {
			t.Errorf("planRefresh(%q, %q) = %v, want %v", tt.current, tt.target, got, tt.want)
		}
	}
}

func equalCalls(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
