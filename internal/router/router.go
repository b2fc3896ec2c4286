// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package router

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/lapor/internal/config"
	"github.com/tomtom215/lapor/internal/logging"
)

// Topic carries every navigation event.
const Topic = "navigation"

// Event kinds.
const (
	KindRoute   = "route"
	KindRefresh = "refresh"
)

// ErrClosed is returned after Close.
var ErrClosed = errors.New("router closed")

// Event is published for every navigation and refresh.
type Event struct {
	Kind  string `json:"kind"`
	Route string `json:"route"`
}

// HashRouter is a hash-based router. It is safe for concurrent use.
type HashRouter struct {
	mu      sync.RWMutex
	current string
	closed  bool

	tasks  chan func()
	buffer int
	pubsub *gochannel.GoChannel
	logger zerolog.Logger
}

// New creates a router positioned on cfg.DefaultRoute.
//
// Publishing waits for every subscriber to take the event, so subscribers see
// events in the order Navigate and Refresh were called.
func New(cfg config.RouterConfig) *HashRouter {
	size := cfg.QueueSize
	if size < 1 {
		size = 1
	}
	logger := logging.WithComponent("router")
	return &HashRouter{
		current: cfg.DefaultRoute,
		tasks:   make(chan func(), size),
		buffer:  size,
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer:            int64(size),
			BlockPublishUntilSubscriberAck: true,
		}, NewWatermillLogger(logger)),
		logger: logger,
	}
}

// CurrentRoute returns the active route.
func (r *HashRouter) CurrentRoute() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Navigate switches to route and publishes a route event.
func (r *HashRouter) Navigate(route string) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	from := r.current
	r.current = route
	r.mu.Unlock()

	r.logger.Debug().Str("from", from).Str("to", route).Msg("Navigate")
	r.publish(Event{Kind: KindRoute, Route: route})
}

// Refresh publishes a refresh event for the current route.
func (r *HashRouter) Refresh() {
	r.publish(Event{Kind: KindRefresh, Route: r.CurrentRoute()})
}

// Defer queues fn to run on the next tick of Serve (or the next Drain) and
// reports whether it was queued. Tasks are refused after Close and while the
// queue is full.
func (r *HashRouter) Defer(fn func()) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return false
	}
	select {
	case r.tasks <- fn:
		return true
	default:
		r.logger.Warn().Int("capacity", cap(r.tasks)).Msg("Task queue full, refusing deferred task")
		return false
	}
}

// Serve runs queued tasks until ctx is done.
func (r *HashRouter) Serve(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn, ok := <-r.tasks:
			if !ok {
				return ErrClosed
			}
			fn()
		}
	}
}

// Drain runs every task queued so far and returns how many ran.
func (r *HashRouter) Drain() int {
	n := 0
	for {
		select {
		case fn, ok := <-r.tasks:
			if !ok {
				return n
			}
			fn()
			n++
		default:
			return n
		}
	}
}

// Subscribe returns a channel of navigation events closed when ctx is done or
// the router is closed. An event is in the channel before the Navigate or
// Refresh that published it returns. Subscribers must keep reading or cancel
// ctx; a full channel holds up publishers.
func (r *HashRouter) Subscribe(ctx context.Context) (<-chan Event, error) {
	msgs, err := r.pubsub.Subscribe(ctx, Topic)
	if err != nil {
		return nil, fmt.Errorf("subscribe to %s: %w", Topic, err)
	}

	out := make(chan Event, r.buffer)
	go func() {
		defer close(out)
		for msg := range msgs {
			var ev Event
			if err := json.Unmarshal(msg.Payload, &ev); err != nil {
				r.logger.Warn().Err(err).Msg("Dropping malformed navigation event")
				msg.Ack()
				continue
			}

			select {
			case out <- ev:
				msg.Ack()
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Close stops event delivery and closes the task queue.
func (r *HashRouter) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.tasks)
	r.mu.Unlock()

	return r.pubsub.Close()
}

func (r *HashRouter) publish(ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to encode navigation event")
		return
	}
	msg := message.NewMessage(uuid.NewString(), payload)
	if err := r.pubsub.Publish(Topic, msg); err != nil {
		r.logger.Warn().Err(err).Str("kind", ev.Kind).Msg("Failed to publish navigation event")
	}
}
