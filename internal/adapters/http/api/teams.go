package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/teampick/internal/domain/model"
	"github.com/okian/teampick/pkg/logger"
)

// TeamsHandler handles balance and manual split requests.
type TeamsHandler struct {
	deps         Dependencies
	maxBodyBytes int64
	logger       logger.Logger
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps Dependencies, maxBodyBytes int64, log logger.Logger) *TeamsHandler {
	return &TeamsHandler{deps: deps, maxBodyBytes: maxBodyBytes, logger: log}
}

// HandleBalance handles POST /teams/balance requests.
func (h *TeamsHandler) HandleBalance(w http.ResponseWriter, r *http.Request) {
	const op = "api.balance"
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var req balanceRequest
	if !h.decode(w, r, op, &req) {
		return
	}

	lineup, err := h.deps.Balance(r.Context(), req.Players)
	if err != nil {
		h.reject(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, lineup)
}

// HandleSplit handles POST /teams/split requests. An uneven split is
// answered with 200 and valid=false.
func (h *TeamsHandler) HandleSplit(w http.ResponseWriter, r *http.Request) {
	const op = "api.split"
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var req splitRequest
	if !h.decode(w, r, op, &req) {
		return
	}

	view, err := h.deps.Split(r.Context(), req.Players, req.TeamA)
	if err != nil {
		h.reject(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *TeamsHandler) decode(w http.ResponseWriter, r *http.Request, op string, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	err := json.NewDecoder(body).Decode(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", WrapKind(op, ErrPayloadTooLarge, err))
		return false
	}
	writeError(w, http.StatusBadRequest, model.ReasonBadRequest, WrapKind(op, ErrBadRequest, err))
	return false
}

func (h *TeamsHandler) reject(w http.ResponseWriter, r *http.Request, op string, err error) {
	code := model.Reason(err)
	h.logger.Debug(r.Context(), "request rejected",
		logger.String("op", op),
		logger.String("code", code),
		logger.String("requestId", GetRequestID(r.Context())),
		logger.Error(err),
	)
	writeError(w, http.StatusBadRequest, code, WrapKind(op, ErrRejected, err))
}

// PositionsProvider lists the positions a player may take.
type PositionsProvider interface {
	Positions() []model.Position
}

// PositionsHandler handles position listing requests.
type PositionsHandler struct {
	provider PositionsProvider
}

// NewPositionsHandler creates a new positions handler.
func NewPositionsHandler(provider PositionsProvider) *PositionsHandler {
	return &PositionsHandler{provider: provider}
}

type positionsResponse struct {
	Positions []model.Position `json:"positions"`
	Default   model.Position   `json:"default"`
}

// HandlePositions handles GET /positions requests.
func (h *PositionsHandler) HandlePositions(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	pos := h.provider.Positions()
	resp := positionsResponse{Positions: pos}
	if len(pos) > 0 {
		resp.Default = pos[0]
	}
	writeJSON(w, http.StatusOK, resp)
}
