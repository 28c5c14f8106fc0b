package bot

import (
	"fmt"
	"strings"
	"time"

	"hamcrew-club/internal/models"
	"hamcrew-club/internal/service"
)

const (
	topN            = 5
	maxListMembers  = 20
	recentDateCount = 5
)

var weekDaysKR = [...]string{"일", "월", "화", "수", "목", "금", "토"}

// formatAwardReport - топ-N по каждой номинации и список самых многолюдных встреч
func formatAwardReport(r *models.AwardReport, n int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🏆 시상 (%s ~ %s)\n", r.Start, r.End)
	fmt.Fprintf(&sb, "벙 %d개\n", r.EventCount)

	sb.WriteString("\n🥇 참석왕\n")
	writeRank(&sb, r.AttendRank, n)

	sb.WriteString("\n👑 벙주왕\n")
	writeRank(&sb, r.HostRank, n)

	if r.MaxEvent.Size == 0 || len(r.MaxEvent.Events) == 0 {
		sb.WriteString("\n🔥 최다 참석 벙\n기록 없음\n")
		return sb.String()
	}
	fmt.Fprintf(&sb, "\n🔥 최다 참석 벙 (%d명)\n", r.MaxEvent.Size)
	for _, e := range r.MaxEvent.Events {
		fmt.Fprintf(&sb, "• %s %s %s - 벙주 %s\n", e.Date, e.Time, e.Location, e.HostName)
	}
	return sb.String()
}

func writeRank(sb *strings.Builder, rank []models.RankEntry, n int) {
	if len(rank) == 0 {
		sb.WriteString("기록 없음\n")
		return
	}
	for i, entry := range rank {
		if i == n {
			break
		}
		fmt.Fprintf(sb, "%d. %s - %d회\n", i+1, entry.Name, entry.Count)
	}
}

func formatCalendar(cal *service.CalendarMonth) string {
	if cal.Total == 0 {
		return fmt.Sprintf("📅 %s 일정이 없습니다.", cal.Month)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 %s 일정 (총 %d개)\n", cal.Month, cal.Total)
	for _, date := range cal.Dates {
		fmt.Fprintf(&sb, "\n%s\n", dayHeader(date))
		for _, ev := range cal.ByDate[date] {
			sb.WriteString(eventLine(ev))
		}
	}
	return sb.String()
}

func formatDay(date string, events []models.Event) string {
	if len(events) == 0 {
		return fmt.Sprintf("📌 %s 일정이 없습니다.", dayHeader(date))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📌 %s\n", dayHeader(date))
	for _, ev := range events {
		sb.WriteString(eventLine(ev))
		if len(ev.AttendeesNames) > 0 {
			fmt.Fprintf(&sb, "  참석: %s\n", strings.Join(nonEmpty(ev.AttendeesNames), ", "))
		}
	}
	return sb.String()
}

// "2025-03-01 (토)"
func dayHeader(date string) string {
	t, err := time.Parse(service.DateLayout, date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s (%s)", date, weekDaysKR[t.Weekday()])
}

func eventLine(ev models.Event) string {
	host := ev.Host
	if host == "" {
		host = models.AnonymousName
	}
	return fmt.Sprintf("• %s %s · 벙주 %s · %d명\n", ev.Time, ev.Location, host, len(ev.AttendeesIDs))
}

func nonEmpty(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}

func formatMemberList(query string, members []*models.Member) string {
	if len(members) == 0 {
		return fmt.Sprintf("🔍 '%s' 검색 결과가 없습니다.", query)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🔍 '%s' 검색 결과 %d명\n", query, len(members))
	for i, m := range members {
		if i == maxListMembers {
			fmt.Fprintf(&sb, "… 외 %d명\n", len(members)-maxListMembers)
			break
		}
		fmt.Fprintf(&sb, "• %s (%s) %s\n", m.Name, m.Status.Label(), m.JoinDate)
	}
	return sb.String()
}

func formatMemberDetail(d *service.MemberDetail) string {
	m := d.Member

	var sb strings.Builder
	fmt.Fprintf(&sb, "👤 %s (%s)\n", m.Name, d.StatusLabel)
	if d.PhoneFormatted != "" {
		fmt.Fprintf(&sb, "📞 %s\n", d.PhoneFormatted)
	}
	fmt.Fprintf(&sb, "가입일: %s\n", m.JoinDate)
	if m.ExitDate != nil && *m.ExitDate != "" {
		fmt.Fprintf(&sb, "탈퇴일: %s\n", *m.ExitDate)
	}
	if m.ActivityArea != "" {
		fmt.Fprintf(&sb, "활동 지역: %s\n", m.ActivityArea)
	}
	fmt.Fprintf(&sb, "참석 %d회 · 벙주 %d회\n", m.AttendCount, m.HostCount)

	if len(d.AttendanceDates) == 0 {
		sb.WriteString("참석 기록 없음\n")
		return sb.String()
	}
	// даты отсортированы по возрастанию, показываем последние
	recent := d.AttendanceDates
	if len(recent) > recentDateCount {
		recent = recent[len(recent)-recentDateCount:]
	}
	fmt.Fprintf(&sb, "최근 참석: %s\n", strings.Join(recent, ", "))
	return sb.String()
}
