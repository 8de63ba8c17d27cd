package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"reclip-backend/internal/repository"
)

type GenerationHandler struct {
	repo *repository.GenerationRepo
}

func NewGenerationHandler(repo *repository.GenerationRepo) *GenerationHandler {
	return &GenerationHandler{repo: repo}
}

func (h *GenerationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid generation id", r))
		return
	}

	gen, err := h.repo.GetByID(r.Context(), id)
	if err == pgx.ErrNoRows {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Generation not found", r))
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load generation", r))
		return
	}

	writeJSON(w, http.StatusOK, gen)
}

func (h *GenerationHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	offset := 0
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v >= 0 {
		offset = v
	}

	generations, err := h.repo.List(r.Context(), limit, offset)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list generations", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"generations": generations,
		"limit":       limit,
		"offset":      offset,
	})
}
