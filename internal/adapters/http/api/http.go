// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/teampick/internal/domain/model"
	"github.com/okian/teampick/internal/domain/roster"
	"github.com/okian/teampick/internal/domain/types"
	"github.com/okian/teampick/pkg/logger"
)

const defaultMaxBodyBytes = 64 << 10

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	StatsProvider

	// Balance returns the most even split of a ten player roster.
	Balance(ctx context.Context, entries []roster.Entry) (types.Lineup, error)
	// Split evaluates a manual choice of Team A.
	Split(ctx context.Context, entries []roster.Entry, teamA []int) (types.SplitView, error)
	// Positions lists the positions a player may take.
	Positions() []model.Position
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	teamsHandler     *TeamsHandler
	positionsHandler *PositionsHandler

	logger logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*serverOptions)

type serverOptions struct {
	maxBodyBytes int64
	logger       logger.Logger
}

// WithMaxBodyBytes caps the size of request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(o *serverOptions) {
		if n > 0 {
			o.maxBodyBytes = n
		}
	}
}

// WithLogger sets the logger used for request failures.
func WithLogger(l logger.Logger) Option {
	return func(o *serverOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	o := serverOptions{maxBodyBytes: defaultMaxBodyBytes}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.Get().Named("api")
	}

	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(deps),
		teamsHandler:     NewTeamsHandler(deps, o.maxBodyBytes, o.logger),
		positionsHandler: NewPositionsHandler(deps),
		logger:           o.logger,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/positions", MetricsMiddleware(s.positionsHandler.HandlePositions, "positions"))
	mux.HandleFunc("/teams/balance", MetricsMiddleware(s.teamsHandler.HandleBalance, "teams_balance"))
	mux.HandleFunc("/teams/split", MetricsMiddleware(s.teamsHandler.HandleSplit, "teams_split"))
}

// Handler wraps h with request ids and panic recovery.
func (s *Server) Handler(h http.Handler) http.Handler {
	return RequestID(Recovery(s.logger)(h))
}

// balanceRequest mirrors the OpenAPI schema for POST /teams/balance.
type balanceRequest struct {
	Players []roster.Entry `json:"players"`
}

// splitRequest mirrors the OpenAPI schema for POST /teams/split.
type splitRequest struct {
	Players []roster.Entry `json:"players"`
	TeamA   []int          `json:"team_a"`
}

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// allowMethod answers 405 with an Allow header unless r uses method.
func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	return false
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{
		Code:      code,
		Message:   msg,
		RequestID: w.Header().Get(RequestIDHeader),
	})
}
