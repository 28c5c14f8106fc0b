package award_service

import (
	"sort"

	"hamcrew-club/internal/models"
)

// Агрегатор: чистые функции над уже загруженным списком встреч.
// Ничего не читают из хранилища и не падают на кривых данных.

// ResolveNames - id участника -> имя. Побеждает первое непустое имя:
// внутри встречи сначала attendeesNames, затем поле host.
func ResolveNames(events []models.Event) map[string]string {
	names := make(map[string]string)
	remember := func(id, name string) {
		if id == "" || name == "" {
			return
		}
		if _, ok := names[id]; !ok {
			names[id] = name
		}
	}
	for i := range events {
		ev := &events[i]
		for j, id := range ev.AttendeesIDs {
			remember(id, ev.AttendeeName(j))
		}
		remember(ev.HostID, ev.Host)
	}
	return names
}

func displayName(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return models.AnonymousName
}

type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) inc(id string) {
	if _, ok := c.counts[id]; !ok {
		c.order = append(c.order, id)
	}
	c.counts[id]++
}

// ranked - по убыванию count, при равенстве порядок первого появления
func (c *counter) ranked(names map[string]string) []models.RankEntry {
	out := make([]models.RankEntry, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, models.RankEntry{MemberID: id, Name: displayName(names, id), Count: c.counts[id]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// TallyAttendance считает, во скольких встречах был каждый участник.
// Повтор id внутри одной встречи засчитывается один раз.
func TallyAttendance(events []models.Event) []models.RankEntry {
	names := ResolveNames(events)
	c := newCounter()
	for i := range events {
		seen := make(map[string]struct{}, len(events[i].AttendeesIDs))
		for _, id := range events[i].AttendeesIDs {
			if id == "" {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			c.inc(id)
		}
	}
	return c.ranked(names)
}

// TallyHosting - одна встреча = +1 её ведущему
func TallyHosting(events []models.Event) []models.RankEntry {
	names := ResolveNames(events)
	c := newCounter()
	for i := range events {
		if events[i].HostID != "" {
			c.inc(events[i].HostID)
		}
	}
	return c.ranked(names)
}

// FindMaxAttendanceEvents возвращает все встречи с максимальным числом
// участников. Встречи без ведущего участвуют в поиске максимума,
// но в список не попадают.
func FindMaxAttendanceEvents(events []models.Event) models.MaxAttendance {
	result := models.MaxAttendance{Events: []models.MaxEventEntry{}}

	var top []*models.Event
	for i := range events {
		size := len(events[i].AttendeesIDs)
		switch {
		case size > result.Size:
			result.Size = size
			top = []*models.Event{&events[i]}
		case size == result.Size && size > 0:
			top = append(top, &events[i])
		}
	}
	if result.Size == 0 {
		return result
	}

	names := ResolveNames(events)
	for _, ev := range top {
		if ev.HostID == "" {
			continue
		}
		result.Events = append(result.Events, models.MaxEventEntry{
			EventID:   ev.ID,
			HostID:    ev.HostID,
			HostName:  displayName(names, ev.HostID),
			Date:      ev.Date,
			Time:      ev.Time,
			Location:  ev.Location,
			Attendees: len(ev.AttendeesIDs),
		})
	}
	return result
}

// GroupByDate раскладывает встречи по полю date, сохраняя входной порядок
func GroupByDate(events []models.Event) map[string][]models.Event {
	groups := make(map[string][]models.Event)
	for _, ev := range events {
		groups[ev.Date] = append(groups[ev.Date], ev)
	}
	return groups
}

// SortedDates - ключи группировки по возрастанию
func SortedDates(groups map[string][]models.Event) []string {
	dates := make([]string, 0, len(groups))
	for d := range groups {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

func BuildReport(start, end string, events []models.Event) *models.AwardReport {
	return &models.AwardReport{
		Start:      start,
		End:        end,
		EventCount: len(events),
		AttendRank: TallyAttendance(events),
		HostRank:   TallyHosting(events),
		MaxEvent:   FindMaxAttendanceEvents(events),
	}
}
