// Package fakeetapi provides an in-process fake ETAPI server for tests.
// It keeps notes, branches and attributes in memory, checks the
// Authorization header on every /etapi request, and can inject failures
// per route: error statuses, malformed or non-text bodies, and dropped
// connections.
package fakeetapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/etapi-go/etapi.go/internal/rand"
	"github.com/etapi-go/etapi.go/pkg/models"
)

// FailureType represents the type of failure to inject for a route
type FailureType string

const (
	// FailureStatus answers with Status and Body
	FailureStatus FailureType = "status"
	// FailureMalformedBody answers 200 with Body, which should not decode
	FailureMalformedBody FailureType = "malformed_body"
	// FailureInvalidUTF8 answers 200 with bytes that are not text
	FailureInvalidUTF8 FailureType = "invalid_utf8"
	// FailureDropConnection closes the connection without answering
	FailureDropConnection FailureType = "drop_connection"
)

// FailureConfig defines how a matched request fails
type FailureConfig struct {
	Type   FailureType
	Status int
	Body   string
}

// Route matches requests by method and path pattern, in net/http
// ServeMux syntax without the method, e.g. "/etapi/notes/{noteId}".
// An empty Method matches any method.
type Route struct {
	Method string
	Path   string
}

// RecordedRequest is what the server saw for one request.
type RecordedRequest struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	Body          []byte
}

// Server is a fake note server speaking ETAPI over HTTP.
type Server struct {
	// Password is accepted by /auth/login.
	Password string
	// Token is issued by /auth/login and required on /etapi routes.
	Token string

	mu         sync.Mutex
	httpServer *httptest.Server
	notes      map[models.EntityID]*models.Note
	order      []models.EntityID
	branches   map[models.EntityID]*models.Branch
	attributes map[models.EntityID]*models.Attribute
	failures   map[Route]FailureConfig
	requests   []RecordedRequest
}

// NewServer creates a server holding only the root note. Token defaults to
// a random UUID.
func NewServer(password string) *Server {
	s := &Server{
		Password:   password,
		Token:      uuid.NewString(),
		notes:      make(map[models.EntityID]*models.Note),
		branches:   make(map[models.EntityID]*models.Branch),
		attributes: make(map[models.EntityID]*models.Attribute),
		failures:   make(map[Route]FailureConfig),
	}
	now := time.Now()
	s.notes[models.RootNoteID] = &models.Note{
		NoteID:          models.RootNoteID,
		Title:           "root",
		Type:            models.NoteTypeText,
		Mime:            "text/html",
		Attributes:      []models.Attribute{},
		ParentNoteIDs:   []models.EntityID{},
		ChildNoteIDs:    []models.EntityID{},
		ParentBranchIDs: []models.EntityID{},
		ChildBranchIDs:  []models.EntityID{},
		DateCreated:     localDateTime(now),
		DateModified:    localDateTime(now),
		UTCDateCreated:  models.NewUTCDateTime(now),
		UTCDateModified: models.NewUTCDateTime(now),
	}
	return s
}

// Start begins serving on a random local port.
func (s *Server) Start() {
	s.httpServer = httptest.NewServer(s.routes())
}

// URL is the base URL clients should use.
func (s *Server) URL() string {
	return s.httpServer.URL
}

func (s *Server) Close() {
	if s.httpServer != nil {
		s.httpServer.Close()
	}
}

// Fail makes every request matching route fail as configured.
func (s *Server) Fail(route Route, failure FailureConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// LastRequest returns the most recent request, or false if there was none.
func (s *Server) LastRequest() (RecordedRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return RecordedRequest{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// Note returns a copy of the stored note.
func (s *Server) Note(id models.EntityID) (models.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notes[id]
	if !ok {
		return models.Note{}, false
	}
	return *n, true
}

// AddNote stores n under parent without going through the API. parent must
// already exist.
func (s *Server) AddNote(parent models.EntityID, n models.Note) models.Branch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertNote(parent, &n, "", nil, false)
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	handle := func(method, path string, h http.HandlerFunc) {
		route := Route{Method: method, Path: path}
		mux.HandleFunc(method+" "+path, s.middleware(route, h))
	}

	mux.HandleFunc("POST /auth/login", s.middleware(Route{Method: http.MethodPost, Path: "/auth/login"}, s.handleLogin))
	handle(http.MethodGet, "/etapi/app-info", s.handleAppInfo)
	handle(http.MethodPost, "/etapi/create-note", s.handleCreateNote)
	handle(http.MethodGet, "/etapi/notes", s.handleSearchQuery)
	handle(http.MethodPost, "/etapi/notes", s.handleSearchBody)
	handle(http.MethodGet, "/etapi/notes/{noteId}", s.handleGetNote)
	handle(http.MethodPatch, "/etapi/notes/{noteId}", s.handlePatchNote)
	handle(http.MethodDelete, "/etapi/notes/{noteId}", s.handleDeleteNote)
	handle(http.MethodGet, "/etapi/branches/{branchId}", s.handleGetBranch)
	handle(http.MethodPost, "/etapi/attributes", s.handleCreateAttribute)
	handle(http.MethodGet, "/etapi/attributes/{attributeId}", s.handleGetAttribute)
	handle(http.MethodDelete, "/etapi/attributes/{attributeId}", s.handleDeleteAttribute)
	return mux
}

// middleware records the request, applies injected failures and checks the
// token on everything but the login route.
func (s *Server) middleware(route Route, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			RawQuery:      r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			Body:          body,
		})
		failure, failing := s.failures[route]
		if !failing {
			failure, failing = s.failures[Route{Path: route.Path}]
		}
		token := s.Token
		s.mu.Unlock()

		if failing {
			s.fail(w, failure)
			return
		}

		if route.Path != "/auth/login" && r.Header.Get("Authorization") != token {
			writeError(w, http.StatusUnauthorized, "NOT_AUTHENTICATED", "Not authenticated")
			return
		}

		next(w, r)
	}
}

func (s *Server) fail(w http.ResponseWriter, f FailureConfig) {
	switch f.Type {
	case FailureStatus:
		w.WriteHeader(f.Status)
		_, _ = io.WriteString(w, f.Body)
	case FailureMalformedBody:
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, f.Body)
	case FailureInvalidUTF8:
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte{0xff, 0xfe, 0xfd})
	case FailureDropConnection:
		hj, ok := w.(http.Hijacker)
		if !ok {
			panic("fakeetapi: response writer cannot be hijacked")
		}
		conn, _, err := hj.Hijack()
		if err != nil {
			panic(fmt.Sprintf("fakeetapi: hijack: %v", err))
		}
		_ = conn.Close()
	default:
		panic(fmt.Sprintf("fakeetapi: unknown failure type %q", f.Type))
	}
}

type errorResponse struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Status: status, Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func localDateTime(t time.Time) models.LocalDateTime {
	return models.LocalDateTime(t.Format("2006-01-02 15:04:05.000-0700"))
}

func newID() models.EntityID {
	return models.EntityID(rand.String(models.GeneratedIDLength))
}
