// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package router

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/lapor/internal/config"
)

func newTestRouter(t *testing.T) *HashRouter {
	t.Helper()
	r := New(config.RouterConfig{DefaultRoute: "#/", LoginRoute: "#/login", QueueSize: 4})
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func nextEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-events:
		if !ok {
			t.Fatal("event channel closed")
		}
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

func TestHashRouter_NavigatePublishesRouteEvent(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := r.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	if got := r.CurrentRoute(); got != "#/" {
		t.Errorf("CurrentRoute() = %q, want #/", got)
	}

	r.Navigate("#/login")
	if got := r.CurrentRoute(); got != "#/login" {
		t.Errorf("CurrentRoute() = %q, want #/login", got)
	}
	ev := nextEvent(t, events)
	if ev.Kind != KindRoute || ev.Route != "#/login" {
		t.Errorf("event = %+v, want route #/login", ev)
	}

	r.Refresh()
	ev = nextEvent(t, events)
	if ev.Kind != KindRefresh || ev.Route != "#/login" {
		t.Errorf("event = %+v, want refresh #/login", ev)
	}
}

func TestHashRouter_DeferRunsOnDrain(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)
	var ran []int
	r.Defer(func() { ran = append(ran, 1) })
	r.Defer(func() { ran = append(ran, 2) })

	if len(ran) != 0 {
		t.Fatal("deferred tasks ran before Drain")
	}
	if n := r.Drain(); n != 2 {
		t.Errorf("Drain() = %d, want 2", n)
	}
	if len(ran) != 2 || ran[0] != 1 || ran[1] != 2 {
		t.Errorf("ran = %v, want [1 2]", ran)
	}
	if n := r.Drain(); n != 0 {
		t.Errorf("second Drain() = %d, want 0", n)
	}
}

func TestHashRouter_DeferDropsWhenFull(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)
	count, queued := 0, 0
	for i := 0; i < 10; i++ {
		if r.Defer(func() { count++ }) {
			queued++
		}
	}
	if queued != 4 {
		t.Errorf("queued = %d, want 4", queued)
	}
	if n := r.Drain(); n != 4 {
		t.Errorf("Drain() = %d, want queue capacity 4", n)
	}
	if count != 4 {
		t.Errorf("count = %d, want 4", count)
	}
}

func TestHashRouter_Serve(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Serve(ctx) }()

	ran := make(chan struct{})
	r.Defer(func() { close(ran) })

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not run deferred task")
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() error = %v, want context.Canceled", err)
	}
}

func TestHashRouter_Close(t *testing.T) {
	t.Parallel()

	r := New(config.RouterConfig{DefaultRoute: "#/", QueueSize: 2})
	events, err := r.Subscribe(context.Background())
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	select {
	case _, ok := <-events:
		if ok {
			t.Error("expected closed event channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("event channel not closed after Close")
	}

	r.Navigate("#/login")
	if r.CurrentRoute() != "#/" {
		t.Error("Navigate after Close should be ignored")
	}
	if r.Defer(func() { t.Error("task ran after Close") }) {
		t.Error("Defer() after Close = true, want false")
	}
	if n := r.Drain(); n != 0 {
		t.Errorf("Drain() after Close = %d, want 0", n)
	}
	if err := r.Serve(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("Serve() after Close error = %v, want ErrClosed", err)
	}
}

func TestHashRouter_EventsKeepCallOrder(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := r.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	for i := 0; i < 100; i++ {
		r.Navigate("#/")
		r.Defer(r.Refresh)
		r.Drain()

		first, second := nextEvent(t, events), nextEvent(t, events)
		if first.Kind != KindRoute || second.Kind != KindRefresh {
			t.Fatalf("iteration %d: got %s then %s, want route then refresh", i, first.Kind, second.Kind)
		}
	}
}

func TestHashRouter_EventBufferedBeforePublishReturns(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := r.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	r.Navigate("#/login")
	select {
	case ev := <-events:
		if ev.Route != "#/login" {
			t.Errorf("event = %+v", ev)
		}
	default:
		t.Fatal("event not available after Navigate returned")
	}
}
