// Lapor - Disaster Incident Reporting Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapor

package testinfra

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

// Default credentials accepted by the fake backend.
const (
	DefaultEmail    = "budi@example.com"
	DefaultPassword = "rahasia123"
	DefaultUserID   = "user-yj5pc_LARC_AgK61"
	DefaultName     = "Budi"
	DefaultToken    = "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.fake.token"
)

// maxUploadSize bounds multipart parsing.
const maxUploadSize = 10 << 20

// Capture is one request received by the backend.
type Capture struct {
	Method  string
	Path    string
	Route   string
	Headers http.Header
	Body    []byte
}

// Upload is the parsed form of the last report submission.
type Upload struct {
	Fields map[string]string
	Files  map[string]UploadedFile
}

// UploadedFile describes one multipart file part.
type UploadedFile struct {
	Filename    string
	ContentType string
	Size        int64
}

// StoryBackend is a fake story API server.
type StoryBackend struct {
	Server *httptest.Server

	mu        sync.Mutex
	captures  []Capture
	overrides map[string]http.HandlerFunc
	stories   []map[string]any
	upload    *Upload
}

// NewStoryBackend starts a backend that is closed when t finishes.
func NewStoryBackend(t *testing.T) *StoryBackend {
	t.Helper()

	b := &StoryBackend{
		overrides: make(map[string]http.HandlerFunc),
		stories:   make([]map[string]any, 0),
	}

	r := chi.NewRouter()
	r.Post("/register", b.route(b.handleRegister))
	r.Post("/login", b.route(b.handleLogin))
	r.Get("/stories", b.route(b.authenticated(b.handleListStories)))
	r.Post("/stories", b.route(b.authenticated(b.handleCreateStory)))
	r.Get("/stories/{id}", b.route(b.authenticated(b.handleGetStory)))
	r.Post("/notifications/subscribe", b.route(b.authenticated(b.handleMessage("Success to subscribe web push notification."))))
	r.Delete("/notifications/subscribe", b.route(b.authenticated(b.handleMessage("Success to unsubscribe web push notification."))))
	r.Post("/reports/{id}/notify-me", b.route(b.authenticated(b.handleMessage("Notification sent"))))
	r.Post("/reports/{id}/notify", b.route(b.authenticated(b.handleMessage("Notification sent"))))
	r.Post("/reports/{id}/notify-all", b.route(b.authenticated(b.handleMessage("Notification sent"))))
	r.Post("/reports/{id}/comments/{commentId}/notify", b.route(b.authenticated(b.handleMessage("Notification sent"))))

	b.Server = httptest.NewServer(r)
	t.Cleanup(b.Server.Close)
	return b
}

// URL returns the server base URL.
func (b *StoryBackend) URL() string {
	return b.Server.URL
}

// Handle replaces the handler for a route, e.g. Handle("GET", "/stories", h).
// The pattern is the chi route pattern, not the concrete path.
func (b *StoryBackend) Handle(method, pattern string, h http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.overrides[method+" "+pattern] = h
}

// SetStories replaces the stories served by GET /stories.
func (b *StoryBackend) SetStories(stories ...map[string]any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stories = append(make([]map[string]any, 0, len(stories)), stories...)
}

// Story builds a well-formed raw story record.
func Story(id, name string, lat, lon float64) map[string]any {
	return map[string]any{
		"id":          id,
		"name":        name,
		"description": "Laporan " + name,
		"photoUrl":    "https://story-api.dicoding.dev/images/stories/" + id + ".jpg",
		"createdAt":   "2024-03-01T08:30:00.000Z",
		"lat":         lat,
		"lon":         lon,
	}
}

// Captures returns every request received so far.
func (b *StoryBackend) Captures() []Capture {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Capture, len(b.captures))
	copy(out, b.captures)
	return out
}

// Calls returns the total number of requests received.
func (b *StoryBackend) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.captures)
}

// CallsTo counts requests for a method and chi route pattern.
func (b *StoryBackend) CallsTo(method, pattern string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.captures {
		if c.Method == method && c.Route == pattern {
			n++
		}
	}
	return n
}

// LastCapture returns the most recent request, or false if none was received.
func (b *StoryBackend) LastCapture() (Capture, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.captures) == 0 {
		return Capture{}, false
	}
	return b.captures[len(b.captures)-1], true
}

// LastUpload returns the parsed form of the last POST /stories, or nil.
func (b *StoryBackend) LastUpload() *Upload {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.upload
}

// route records the request, then dispatches to an override registered with
// Handle, falling back to h. Recording happens before the response is written
// so call counts are settled by the time the client sees a reply.
func (b *StoryBackend) route(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(io.LimitReader(r.Body, maxUploadSize)) //nolint:errcheck
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))

		pattern := chi.RouteContext(r.Context()).RoutePattern()
		key := r.Method + " " + pattern

		b.mu.Lock()
		b.captures = append(b.captures, Capture{
			Method:  r.Method,
			Path:    r.URL.Path,
			Route:   pattern,
			Headers: r.Header.Clone(),
			Body:    body,
		})
		override := b.overrides[key]
		b.mu.Unlock()

		if override != nil {
			override(w, r)
			return
		}
		h(w, r)
	}
}

func (b *StoryBackend) authenticated(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+DefaultToken {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": true, "message": "Missing authentication"})
			return
		}
		h(w, r)
	}
}

func (b *StoryBackend) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": true, "message": "\"email\" is required"})
		return
	}
	if len(req.Password) < 8 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": true, "message": "Password must be at least 8 characters long"})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"error": false, "message": "User created"})
}

func (b *StoryBackend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": true, "message": "Invalid request body"})
		return
	}
	if req.Email != DefaultEmail || req.Password != DefaultPassword {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": true, "message": "Invalid password"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"error":   false,
		"message": "success",
		"loginResult": map[string]any{
			"userId": DefaultUserID,
			"name":   DefaultName,
			"token":  DefaultToken,
		},
	})
}

func (b *StoryBackend) handleListStories(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	stories := append([]map[string]any(nil), b.stories...)
	b.mu.Unlock()
	if stories == nil {
		stories = []map[string]any{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"error":     false,
		"message":   "Stories fetched successfully",
		"listStory": stories,
	})
}

func (b *StoryBackend) handleGetStory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.stories {
		if s["id"] == id {
			writeJSON(w, http.StatusOK, map[string]any{"error": false, "message": "Story fetched successfully", "story": s})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"error": true, "message": "Story not found"})
}

func (b *StoryBackend) handleCreateStory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": true, "message": "Invalid multipart payload"})
		return
	}

	upload := &Upload{Fields: make(map[string]string), Files: make(map[string]UploadedFile)}
	for k, v := range r.MultipartForm.Value {
		upload.Fields[k] = strings.Join(v, ",")
	}
	for k, headers := range r.MultipartForm.File {
		if len(headers) == 0 {
			continue
		}
		upload.Files[k] = UploadedFile{
			Filename:    headers[0].Filename,
			ContentType: headers[0].Header.Get("Content-Type"),
			Size:        headers[0].Size,
		}
	}

	b.mu.Lock()
	b.upload = upload
	b.mu.Unlock()

	if upload.Fields["description"] == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": true, "message": "\"description\" is required"})
		return
	}
	if _, ok := upload.Files["photo"]; !ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": true, "message": "\"photo\" is required"})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"error": false, "message": "Story created successfully"})
}

func (b *StoryBackend) handleMessage(message string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"error": false, "message": message})
	}
}

// writeJSON writes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// WriteJSON is exported for overrides registered with Handle.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, v)
}
