package web

import (
	"net/http"
	"time"

	"hamcrew-club/internal/models"
	"hamcrew-club/internal/service"
)

type CalendarAPIResponse struct {
	Month        string                    `json:"month"`
	Start        string                    `json:"start"`
	End          string                    `json:"end"`
	PrevMonth    string                    `json:"prev_month"`
	NextMonth    string                    `json:"next_month"`
	Today        string                    `json:"today"`
	Filtered     bool                      `json:"filtered"`
	Total        int                       `json:"total"`
	WeekDays     []string                  `json:"week_days"`
	CalendarDays []CalendarDayJSON         `json:"calendar_days"`
	Dates        []string                  `json:"dates"`
	ByDate       map[string][]models.Event `json:"by_date"`
}

type CalendarDayJSON struct {
	Date         string   `json:"date"`
	IsToday      bool     `json:"is_today"`
	IsOtherMonth bool     `json:"is_other_month"`
	EventIDs     []string `json:"event_ids"`
}

// CalendarAPI - встречи месяца: ?month=YYYY-MM (по умолчанию текущий)
// и фильтры date, host, member, location
func (h *Handler) CalendarAPI(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	now := h.clock().In(h.location())

	month := q.Get("month")
	if month == "" {
		month = now.Format(service.MonthLayout)
	}
	filter := service.CalendarFilter{
		Date:     q.Get("date"),
		Host:     q.Get("host"),
		Member:   q.Get("member"),
		Location: q.Get("location"),
	}

	cal, err := h.eventService.Calendar(r.Context(), month, filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	first, _ := time.Parse(service.MonthLayout, month)
	writeJSON(w, http.StatusOK, CalendarAPIResponse{
		Month:        cal.Month,
		Start:        cal.Start,
		End:          cal.End,
		PrevMonth:    first.AddDate(0, -1, 0).Format(service.MonthLayout),
		NextMonth:    first.AddDate(0, 1, 0).Format(service.MonthLayout),
		Today:        now.Format(service.DateLayout),
		Filtered:     !filter.Empty(),
		Total:        cal.Total,
		WeekDays:     weekDayHeaders,
		CalendarDays: monthGrid(first, now.Format(service.DateLayout), cal.ByDate),
		Dates:        cal.Dates,
		ByDate:       cal.ByDate,
	})
}

var weekDayHeaders = []string{"일", "월", "화", "수", "목", "금", "토"}

// monthGrid - 6 недель по 7 дней, начиная с воскресенья
func monthGrid(first time.Time, today string, byDate map[string][]models.Event) []CalendarDayJSON {
	start := first.AddDate(0, 0, -int(first.Weekday()))

	days := make([]CalendarDayJSON, 0, 42)
	for i := 0; i < 42; i++ {
		day := start.AddDate(0, 0, i)
		key := day.Format(service.DateLayout)

		ids := []string{}
		for _, ev := range byDate[key] {
			ids = append(ids, ev.ID)
		}
		days = append(days, CalendarDayJSON{
			Date:         key,
			IsToday:      key == today,
			IsOtherMonth: day.Month() != first.Month(),
			EventIDs:     ids,
		})
	}
	return days
}

func (h *Handler) location() *time.Location {
	if h.loc == nil {
		return time.Local
	}
	return h.loc
}
