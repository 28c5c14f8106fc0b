package web

import (
	"net/http"

	"hamcrew-club/internal/service"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var form service.EventForm
	if err := decodeJSON(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}
	event, err := h.eventService.CreateEvent(r.Context(), form)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.eventService.GetEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var form service.EventForm
	if err := decodeJSON(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}
	event, err := h.eventService.UpdateEvent(r.Context(), chi.URLParam(r, "id"), form)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.eventService.DeleteEvent(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
