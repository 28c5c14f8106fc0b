package web

import (
	"net/http"

	award_service "hamcrew-club/internal/service/award"
)

const (
	presetRecent6m = "recent6m"
	presetThisYear = "thisYear"
)

// awardRange: явные start/end, иначе preset, иначе последние 6 месяцев
func (h *Handler) awardRange(r *http.Request) (string, string) {
	q := r.URL.Query()
	start, end := q.Get("start"), q.Get("end")
	if start != "" || end != "" {
		return start, end
	}
	now := h.clock()
	if q.Get("preset") == presetThisYear {
		return award_service.ThisYear(now, h.location())
	}
	return award_service.RecentSixMonths(now, h.location())
}

func (h *Handler) Awards(w http.ResponseWriter, r *http.Request) {
	start, end := h.awardRange(r)
	report, err := h.awardService.Report(r.Context(), start, end)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) ExportAwards(w http.ResponseWriter, r *http.Request) {
	start, end := h.awardRange(r)
	report, err := h.awardService.Report(r.Context(), start, end)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	data, err := GenerateAwardExport(report)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeXLSX(w, "awards_"+report.Start+"_"+report.End+".xlsx", data)
}

func (h *Handler) ExportMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.memberService.ListMembers(r.Context(), memberFilter(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	data, err := GenerateMemberExport(members)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeXLSX(w, "members.xlsx", data)
}

func writeXLSX(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
