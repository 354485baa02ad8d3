// Package web exposes the HTTP submission boundary: login, the dashboard
// and alert views as structured data, and the two bulk-edit actions that
// feed the registries. It renders no HTML; that is the outer UI's job.
package web

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/streammon/control/auth"
	"github.com/streammon/control/registry"
	"github.com/streammon/control/telemetry"
)

// RefreshSeconds is the client refresh delay after a mutating action,
// giving workers a bounded window to observe the restart flag before the
// next dashboard read.
const RefreshSeconds = 2

// SessionCookie carries the JWT session token.
const SessionCookie = "streammon_session"

// Pinger is a backing service checked by /healthz.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	router *mux.Router

	streams  *registry.Streams
	users    *registry.Users
	reader   *telemetry.Reader
	verifier *auth.Verifier
	jwtKey   string

	pingers map[string]Pinger
}

// NewServer builds the HTTP server. The registries, reader, and verifier
// are required; pingers are optional health probes.
func NewServer(jwtKey string, options ...Option) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		jwtKey:  jwtKey,
		pingers: map[string]Pinger{},
	}

	for _, o := range options {
		o(s)
	}

	s.setupRoutes()

	return s
}

type Option func(*Server)

func WithStreams(r *registry.Streams) Option {
	return func(s *Server) { s.streams = r }
}

func WithUsers(r *registry.Users) Option {
	return func(s *Server) { s.users = r }
}

func WithReader(r *telemetry.Reader) Option {
	return func(s *Server) { s.reader = r }
}

func WithVerifier(v *auth.Verifier) Option {
	return func(s *Server) { s.verifier = v }
}

func WithPinger(name string, p Pinger) Option {
	return func(s *Server) { s.pingers[name] = p }
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	s.router.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)

	protected := s.router.NewRoute().Subrouter()
	protected.Use(s.requireSession)

	protected.HandleFunc("/", s.handleDashboard).Methods(http.MethodGet)
	protected.HandleFunc("/alerts", s.handleAlerts).Methods(http.MethodGet)
	protected.HandleFunc("/streams", s.handleListStreams).Methods(http.MethodGet)
	protected.HandleFunc("/streams", s.handleModifyStreams).Methods(http.MethodPost)
	protected.HandleFunc("/users", s.handleListUsers).Methods(http.MethodGet)
	protected.HandleFunc("/users", s.handleModifyUsers).Methods(http.MethodPost)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
