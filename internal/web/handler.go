package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"hamcrew-club/internal/repository"
	"hamcrew-club/internal/service"

	"go.uber.org/zap"
)

const genericErrorMessage = "요청 처리 중 오류가 발생했습니다."

type Handler struct {
	eventService      service.EventService
	memberService     service.MemberService
	attendanceService service.AttendanceService
	awardService      service.AwardService
	clock             service.Clock
	loc               *time.Location
	logger            *zap.Logger
}

func NewHandler(
	eventService service.EventService,
	memberService service.MemberService,
	attendanceService service.AttendanceService,
	awardService service.AwardService,
	clock service.Clock,
	loc *time.Location,
	logger *zap.Logger,
) *Handler {
	if clock == nil {
		clock = time.Now
	}
	return &Handler{
		eventService:      eventService,
		memberService:     memberService,
		attendanceService: attendanceService,
		awardService:      awardService,
		clock:             clock,
		loc:               loc,
		logger:            logger,
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError: ошибки формы 400, не найдено 404, дубликат телефона 409,
// остальное - 500 с общим сообщением
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Message, Field: verr.Field})
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "찾을 수 없습니다."})
	case errors.Is(err, service.ErrDuplicatePhone):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Field: "phone"})
	default:
		h.logger.Error("request failed",
			zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: genericErrorMessage})
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return service.NewValidationError("body", "요청 형식이 올바르지 않습니다.")
	}
	return nil
}

// decodeOptionalJSON - пустое тело (в том числе chunked) не ошибка
func decodeOptionalJSON(r *http.Request, v interface{}) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return service.NewValidationError("body", "요청 형식이 올바르지 않습니다.")
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
