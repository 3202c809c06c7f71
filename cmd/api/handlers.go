package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"segmentation-service/internal/segmentation"
)

// StrategyService is the part of segmentation.Service the handlers use.
type StrategyService interface {
	Validate(body segmentation.RequestBody) (segmentation.RequestBody, error)
	Compute(ctx context.Context, body segmentation.RequestBody) (*segmentation.Outcome, error)
	CreateStrategy(ctx context.Context, body segmentation.RequestBody) (*segmentation.SavedStrategy, error)
	GetStrategy(ctx context.Context, id string) (*segmentation.SavedStrategy, error)
	ListStrategies(ctx context.Context) ([]*segmentation.SavedStrategy, error)
	RecentStrategies(ctx context.Context, limit int64) ([]*segmentation.SavedStrategy, error)
	DeleteStrategy(ctx context.Context, id string) error
	SyncStrategies(ctx context.Context) (int, error)
}

type Handler struct {
	service StrategyService
}

func NewHandler(service StrategyService) *Handler {
	return &Handler{service: service}
}

// StrategyResponse is returned by the preview endpoint.
type StrategyResponse struct {
	Message  string                      `json:"message"`
	Strategy segmentation.StrategyResult `json:"strategy"`
}

// ErrorResponse carries a failure and its taxonomy code.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type SyncResponse struct {
	Synced int `json:"synced"`
}

// PreviewStrategy godoc
// @Summary      Preview Strategy
// @Description  Computes a segmentation strategy over the current client pool without saving it. An empty filter list asks for auto-maximized segments.
// @Tags         Strategy
// @Accept       json
// @Produce      json
// @Param        request body segmentation.RequestBody true "Strategy Request"
// @Success      200  {object}  StrategyResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /v1/strategies/preview [post]
func (h *Handler) PreviewStrategy(w http.ResponseWriter, r *http.Request) {
	var body segmentation.RequestBody
	if !decodeBody(w, r, &body) {
		return
	}

	start := time.Now()
	out, err := h.service.Compute(r.Context(), body)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("X-Response-Time", time.Since(start).String())
	writeJSON(w, http.StatusOK, StrategyResponse{Message: out.Message, Strategy: out.Result})
}

// CreateStrategy godoc
// @Summary      Create Strategy
// @Description  Computes a strategy, saves it in DB and syncs it to Redis.
// @Tags         Strategy
// @Accept       json
// @Produce      json
// @Param        request body segmentation.RequestBody true "Strategy Request"
// @Success      201  {object}  segmentation.SavedStrategy
// @Failure      400  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /v1/strategies [post]
func (h *Handler) CreateStrategy(w http.ResponseWriter, r *http.Request) {
	var body segmentation.RequestBody
	if !decodeBody(w, r, &body) {
		return
	}

	saved, err := h.service.CreateStrategy(r.Context(), body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// ValidateFilters godoc
// @Summary      Validate Filters
// @Description  Checks a strategy request without reading any client data and returns it normalized.
// @Tags         Strategy
// @Accept       json
// @Produce      json
// @Param        request body segmentation.RequestBody true "Strategy Request"
// @Success      200  {object}  segmentation.RequestBody
// @Failure      400  {object}  ErrorResponse
// @Router       /v1/filters/validate [post]
func (h *Handler) ValidateFilters(w http.ResponseWriter, r *http.Request) {
	var body segmentation.RequestBody
	if !decodeBody(w, r, &body) {
		return
	}

	normalized, err := h.service.Validate(body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, normalized)
}

// ListStrategies godoc
// @Summary      List Saved Strategies
// @Description  Fetches the latest saved strategies from PostgreSQL.
// @Tags         Strategy
// @Produce      json
// @Success      200  {array}  segmentation.SavedStrategy
// @Router       /v1/strategies [get]
func (h *Handler) ListStrategies(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListStrategies(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []*segmentation.SavedStrategy{}
	}
	writeJSON(w, http.StatusOK, list)
}

// RecentStrategies godoc
// @Summary      Recent Strategies
// @Description  Returns the most recently saved strategies from the Redis hot path.
// @Tags         Strategy
// @Produce      json
// @Param        limit   query      int  false  "Max results (default 20)"
// @Success      200  {array}  segmentation.SavedStrategy
// @Router       /v1/strategies/recent [get]
func (h *Handler) RecentStrategies(w http.ResponseWriter, r *http.Request) {
	var limit int64
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid limit", Code: "InvalidRequest"})
			return
		}
		limit = n
	}

	list, err := h.service.RecentStrategies(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GetStrategy godoc
// @Summary      Get Strategy Detail
// @Description  Reads a saved strategy from Redis, falling back to PostgreSQL.
// @Tags         Strategy
// @Produce      json
// @Param        id   query      string  true  "Strategy ID"
// @Success      200  {object}  segmentation.SavedStrategy
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/strategies/detail [get]
func (h *Handler) GetStrategy(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "id is required", Code: "InvalidRequest"})
		return
	}

	st, err := h.service.GetStrategy(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if st == nil {
		writeError(w, segmentation.ErrStrategyNotFound)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// DeleteStrategy godoc
// @Summary      Delete Strategy
// @Description  Deletes a saved strategy from DB and Redis.
// @Tags         Strategy
// @Param        id   query      string  true  "Strategy ID"
// @Success      204  "No Content"
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/strategies [delete]
func (h *Handler) DeleteStrategy(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "id is required", Code: "InvalidRequest"})
		return
	}

	if err := h.service.DeleteStrategy(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SyncData godoc
// @Summary      Sync DB to Redis
// @Description  Manually pushes all saved strategies from DB to Redis.
// @Tags         Debug
// @Produce      json
// @Success      200  {object}  SyncResponse
// @Router       /debug/sync [post]
func (h *Handler) SyncData(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.SyncStrategies(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SyncResponse{Synced: n})
}

// Health godoc
// @Summary      Health Check
// @Tags         Debug
// @Success      200  "OK"
// @Router       /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "InvalidRequest"})
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case segmentation.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: segmentation.Code(err)})
	case errors.Is(err, segmentation.ErrStrategyNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, segmentation.ErrDataUnavailable):
		log.Printf("[ERROR] %v", err)
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: err.Error(), Code: segmentation.Code(err)})
	default:
		log.Printf("[ERROR] %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[ERROR] encode response: %v", err)
	}
}
