package web

import (
	"net/http"

	"hamcrew-club/internal/models"
	"hamcrew-club/internal/service"

	"github.com/go-chi/chi/v5"
)

func memberFilter(r *http.Request) service.MemberFilter {
	q := r.URL.Query()
	return service.MemberFilter{
		Query:        q.Get("q"),
		ActivityArea: q.Get("activity"),
		Residence:    q.Get("residence"),
		Gender:       models.Gender(q.Get("gender")),
		Sort:         q.Get("sort"),
	}
}

func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.memberService.ListMembers(r.Context(), memberFilter(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(members),
		"members": members,
	})
}

func (h *Handler) RegisterMember(w http.ResponseWriter, r *http.Request) {
	var form service.MemberForm
	if err := decodeJSON(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}
	member, err := h.memberService.RegisterMember(r.Context(), form)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, member)
}

func (h *Handler) GetMember(w http.ResponseWriter, r *http.Request) {
	detail, err := h.memberService.MemberDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *Handler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	var form service.MemberForm
	if err := decodeJSON(r, &form); err != nil {
		h.writeError(w, r, err)
		return
	}
	member, err := h.memberService.UpdateMember(r.Context(), chi.URLParam(r, "id"), form)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

func (h *Handler) UpdateMemberStatus(w http.ResponseWriter, r *http.Request) {
	var change service.StatusChange
	if err := decodeJSON(r, &change); err != nil {
		h.writeError(w, r, err)
		return
	}
	member, err := h.memberService.UpdateMemberStatus(r.Context(), chi.URLParam(r, "id"), change)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

func (h *Handler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	if err := h.memberService.DeleteMember(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type markRequest struct {
	EventID *string `json:"eventId"`
	Status  string  `json:"status"`
}

func (h *Handler) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	var req markRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	err := h.attendanceService.Mark(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "date"), req.EventID, req.Status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) UnmarkAttendance(w http.ResponseWriter, r *http.Request) {
	if err := h.attendanceService.Unmark(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "date")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type seedRequest struct {
	Dates []string `json:"dates"`
}

func (h *Handler) SeedAttendance(w http.ResponseWriter, r *http.Request) {
	var req seedRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	n, err := h.attendanceService.Seed(r.Context(), chi.URLParam(r, "id"), req.Dates)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"seeded": n})
}

func (h *Handler) ListAttendance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	dates, err := h.attendanceService.AttendanceDates(r.Context(), chi.URLParam(r, "id"), q.Get("start"), q.Get("end"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"dates": dates})
}
