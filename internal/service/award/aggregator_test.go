package award_service

import (
	"testing"

	"hamcrew-club/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ev(id, date, hostID, host string, ids, names []string) models.Event {
	return models.Event{ID: id, Date: date, Time: "19:00", Location: "한강", HostID: hostID, Host: host, AttendeesIDs: ids, AttendeesNames: names}
}

func sampleEvents() []models.Event {
	return []models.Event{
		ev("e1", "2025-01-01", "a", "철수", []string{"a", "b", "c"}, []string{"철수", "영희", "민수"}),
		ev("e2", "2025-01-02", "b", "영희", []string{"b", "c"}, []string{"영희", "민수"}),
		ev("e3", "2025-01-03", "a", "철수", []string{"a", "c", "d"}, []string{"철수", "민수"}),
		ev("e4", "2025-01-04", "", "", []string{"d"}, nil),
	}
}

func TestTallyAttendance_SumEqualsMemberships(t *testing.T) {
	events := sampleEvents()
	rank := TallyAttendance(events)

	total := 0
	for _, r := range rank {
		total += r.Count
	}
	memberships := 0
	for _, e := range events {
		memberships += len(e.AttendeesIDs)
	}
	assert.Equal(t, memberships, total)
}

func TestTallyAttendance_SortedWithStableTies(t *testing.T) {
	rank := TallyAttendance(sampleEvents())

	require.Len(t, rank, 4)
	assert.Equal(t, models.RankEntry{MemberID: "c", Name: "민수", Count: 3}, rank[0])
	// a и b по 2: порядок первого появления
	assert.Equal(t, "a", rank[1].MemberID)
	assert.Equal(t, "b", rank[2].MemberID)
	assert.Equal(t, "d", rank[3].MemberID)
	assert.Equal(t, 2, rank[3].Count)
}

func TestTallyAttendance_PlaceholderName(t *testing.T) {
	rank := TallyAttendance(sampleEvents())

	var d models.RankEntry
	for _, r := range rank {
		if r.MemberID == "d" {
			d = r
		}
	}
	assert.Equal(t, models.AnonymousName, d.Name)
	assert.Equal(t, 2, d.Count)
}

func TestTallyAttendance_DuplicateIDCountsOncePerEvent(t *testing.T) {
	events := []models.Event{
		ev("e1", "2025-01-01", "a", "철수", []string{"a", "a", "", "b"}, []string{"철수", "철수", "", "영희"}),
	}
	rank := TallyAttendance(events)

	require.Len(t, rank, 2)
	assert.Equal(t, 1, rank[0].Count)
	assert.Equal(t, 1, rank[1].Count)
}

func TestTallyAttendance_MalformedListsAreEmpty(t *testing.T) {
	events := []models.Event{{ID: "x", Date: "2025-01-01", HostID: "a", Host: "철수"}}
	assert.Empty(t, TallyAttendance(events))
	assert.Len(t, TallyHosting(events), 1)
}

func TestResolveNames_FirstNonEmptyWins(t *testing.T) {
	events := []models.Event{
		ev("e1", "2025-01-01", "a", "", []string{"a"}, []string{""}),
		ev("e2", "2025-01-02", "b", "영희", []string{"b", "a"}, []string{"영희", "철수"}),
		ev("e3", "2025-01-03", "a", "개명", []string{"a"}, []string{"개명"}),
	}
	names := ResolveNames(events)
	assert.Equal(t, "철수", names["a"])
	assert.Equal(t, "영희", names["b"])
}

func TestResolveNames_FallsBackToHostField(t *testing.T) {
	events := []models.Event{
		ev("e1", "2025-01-01", "h", "호스트", []string{"x"}, []string{"엑스"}),
	}
	assert.Equal(t, "호스트", ResolveNames(events)["h"])
}

func TestTallyHosting_CountsPerHost(t *testing.T) {
	rank := TallyHosting(sampleEvents())

	require.Len(t, rank, 2)
	assert.Equal(t, models.RankEntry{MemberID: "a", Name: "철수", Count: 2}, rank[0])
	assert.Equal(t, models.RankEntry{MemberID: "b", Name: "영희", Count: 1}, rank[1])
}

func TestTallyHosting_EveryHostPresent(t *testing.T) {
	events := sampleEvents()
	rank := TallyHosting(events)

	byID := map[string]int{}
	for _, r := range rank {
		byID[r.MemberID] = r.Count
	}
	expected := map[string]int{}
	for _, e := range events {
		if e.HostID != "" {
			expected[e.HostID]++
		}
	}
	assert.Equal(t, expected, byID)
}

func TestFindMaxAttendanceEvents_Empty(t *testing.T) {
	max := FindMaxAttendanceEvents(nil)
	assert.Equal(t, 0, max.Size)
	assert.NotNil(t, max.Events)
	assert.Empty(t, max.Events)
}

func TestFindMaxAttendanceEvents_Single(t *testing.T) {
	events := []models.Event{
		ev("e1", "2025-01-01", "a", "철수", []string{"a", "b", "c", "d", "e"}, []string{"철수"}),
		ev("e2", "2025-01-02", "b", "영희", []string{"b", "c"}, nil),
		ev("e3", "2025-01-03", "c", "민수", []string{"c", "d", "e", "f"}, nil),
	}
	max := FindMaxAttendanceEvents(events)

	assert.Equal(t, 5, max.Size)
	require.Len(t, max.Events, 1)
	assert.Equal(t, models.MaxEventEntry{
		EventID: "e1", HostID: "a", HostName: "철수",
		Date: "2025-01-01", Time: "19:00", Location: "한강", Attendees: 5,
	}, max.Events[0])
}

func TestFindMaxAttendanceEvents_Ties(t *testing.T) {
	five := []string{"a", "b", "c", "d", "e"}
	events := []models.Event{
		ev("e1", "2025-01-01", "a", "철수", five, nil),
		ev("e2", "2025-01-02", "b", "영희", []string{"b"}, nil),
		ev("e3", "2025-01-03", "b", "영희", five, nil),
	}
	max := FindMaxAttendanceEvents(events)

	assert.Equal(t, 5, max.Size)
	require.Len(t, max.Events, 2)
	assert.Equal(t, "e1", max.Events[0].EventID)
	assert.Equal(t, "철수", max.Events[0].HostName)
	assert.Equal(t, "e3", max.Events[1].EventID)
	assert.Equal(t, "영희", max.Events[1].HostName)
}

func TestFindMaxAttendanceEvents_HostlessExcluded(t *testing.T) {
	events := []models.Event{
		ev("e1", "2025-01-01", "", "", []string{"a", "b", "c"}, nil),
		ev("e2", "2025-01-02", "x", "", []string{"a", "b", "c"}, nil),
	}
	max := FindMaxAttendanceEvents(events)

	assert.Equal(t, 3, max.Size)
	require.Len(t, max.Events, 1)
	assert.Equal(t, "e2", max.Events[0].EventID)
	assert.Equal(t, models.AnonymousName, max.Events[0].HostName)
}

func TestGroupByDate_PreservesInputOrder(t *testing.T) {
	events := []models.Event{
		{ID: "1", Date: "2025-01-01"},
		{ID: "2", Date: "2025-01-01"},
		{ID: "3", Date: "2025-01-02"},
	}
	groups := GroupByDate(events)

	require.Len(t, groups, 2)
	require.Len(t, groups["2025-01-01"], 2)
	assert.Equal(t, "1", groups["2025-01-01"][0].ID)
	assert.Equal(t, "2", groups["2025-01-01"][1].ID)
	assert.Equal(t, []string{"2025-01-01", "2025-01-02"}, SortedDates(groups))
}

func TestGroupByDate_UnsortedInput(t *testing.T) {
	events := []models.Event{
		{ID: "b", Date: "2025-01-02"},
		{ID: "z", Date: "2025-01-01"},
		{ID: "a", Date: "2025-01-02"},
	}
	groups := GroupByDate(events)
	assert.Equal(t, "b", groups["2025-01-02"][0].ID)
	assert.Equal(t, "a", groups["2025-01-02"][1].ID)
}

func TestBuildReport(t *testing.T) {
	report := BuildReport("2025-01-01", "2025-01-31", sampleEvents())

	assert.Equal(t, "2025-01-01", report.Start)
	assert.Equal(t, 4, report.EventCount)
	assert.Len(t, report.AttendRank, 4)
	assert.Len(t, report.HostRank, 2)
	assert.Equal(t, 3, report.MaxEvent.Size)
	assert.Len(t, report.MaxEvent.Events, 2)
}
