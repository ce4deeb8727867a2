// Package http exposes the REST surface for contestant CRUD and share
// codes, plus the websocket play endpoint.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"millionaire-quiz-service/internal/app"
	"millionaire-quiz-service/internal/domain"
)

// Handler serves contestant CRUD and share/import endpoints.
type Handler struct {
	service *app.ContestantService
	log     zerolog.Logger
}

func NewHandler(service *app.ContestantService, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("component", "http_handler").Logger(),
	}
}

// Register wires the REST routes onto the router.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/contestants", h.list).Methods(http.MethodGet)
	api.HandleFunc("/contestants", h.create).Methods(http.MethodPost)
	api.HandleFunc("/contestants/{id}", h.get).Methods(http.MethodGet)
	api.HandleFunc("/contestants/{id}", h.delete).Methods(http.MethodDelete)
	api.HandleFunc("/contestants/{id}/share", h.share).Methods(http.MethodPost)
	api.HandleFunc("/import", h.importCode).Methods(http.MethodPost)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	w.Write([]byte("ok"))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	contestants, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	if contestants == nil {
		contestants = []domain.Contestant{}
	}
	h.writeJSON(w, http.StatusOK, contestants)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	contestant, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, contestant)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var insert domain.NewContestant
	if err := json.NewDecoder(r.Body).Decode(&insert); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Message: "invalid JSON body"})
		return
	}
	contestant, err := h.service.Create(r.Context(), insert)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, contestant)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) share(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.Share(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, info)
}

type importRequest struct {
	Code string `json:"code"`
}

func (h *Handler) importCode(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Message: "missing share code"})
		return
	}
	contestant, err := h.service.Import(r.Context(), req.Code)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, contestant)
}

type errorBody struct {
	Message string `json:"message"`
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrContestantNotFound), errors.Is(err, domain.ErrShareCodeNotFound):
		h.writeJSON(w, http.StatusNotFound, errorBody{Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidContestant), errors.Is(err, domain.ErrInvalidShareCode):
		h.writeJSON(w, http.StatusUnprocessableEntity, errorBody{Message: err.Error()})
	case errors.Is(err, domain.ErrNoQuestions):
		h.writeJSON(w, http.StatusConflict, errorBody{Message: err.Error()})
	default:
		h.log.Error().Err(err).Msg("request failed")
		h.writeJSON(w, http.StatusInternalServerError, errorBody{Message: "internal error"})
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Error().Err(err).Msg("write response")
	}
}
