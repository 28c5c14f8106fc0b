package event_service

import (
	"context"
	"errors"
	"testing"

	"hamcrew-club/internal/models"
	"hamcrew-club/internal/repository"
	"hamcrew-club/internal/repository/memory"
	"hamcrew-club/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAwards struct {
	invalidated int
}

func (s *stubAwards) Report(ctx context.Context, start, end string) (*models.AwardReport, error) {
	return &models.AwardReport{}, nil
}

func (s *stubAwards) Invalidate(ctx context.Context) { s.invalidated++ }

type fixture struct {
	store  *memory.Store
	awards *stubAwards
	svc    service.EventService
	ids    map[string]string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{store: store, awards: &stubAwards{}, ids: map[string]string{}}
	f.svc = NewEventService(store.Members(), store.Events(), store, f.awards, zap.NewNop())

	for _, m := range []models.Member{
		{Name: "김철수", Status: models.StatusActive},
		{Name: "이영희", Status: models.StatusNew},
		{Name: "박민수", Status: models.StatusInjured},
		{Name: "최탈퇴", Status: models.StatusWithdrawn},
	} {
		m := m
		require.NoError(t, store.Members().Create(context.Background(), &m))
		f.ids[m.Name] = m.ID
	}
	return f
}

func (f *fixture) member(t *testing.T, name string) *models.Member {
	t.Helper()
	m, err := f.store.Members().GetByID(context.Background(), f.ids[name])
	require.NoError(t, err)
	return m
}

func (f *fixture) form(host string, attendees ...string) service.EventForm {
	ids := make([]string, 0, len(attendees))
	for _, a := range attendees {
		ids = append(ids, f.ids[a])
	}
	return service.EventForm{
		Date:        "2025-03-01",
		Time:        "19:30",
		Location:    " 한강공원 ",
		HostID:      f.ids[host],
		AttendeeIDs: ids,
	}
}

func TestCreateEvent_HostAddedOnceAndCountersIncremented(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	event, err := f.svc.CreateEvent(ctx, f.form("김철수", "이영희", "박민수"))
	require.NoError(t, err)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "한강공원", event.Location)
	assert.Equal(t, "김철수", event.Host)
	assert.Equal(t, []string{f.ids["이영희"], f.ids["박민수"], f.ids["김철수"]}, event.AttendeesIDs)
	assert.Equal(t, []string{"이영희", "박민수", "김철수"}, event.AttendeesNames)

	host := f.member(t, "김철수")
	assert.Equal(t, 1, host.AttendCount)
	assert.Equal(t, 1, host.HostCount)
	assert.Equal(t, 1, f.member(t, "이영희").AttendCount)
	assert.Equal(t, 0, f.member(t, "이영희").HostCount)
	assert.Equal(t, 1, f.awards.invalidated)

	stored, err := f.store.Events().GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, event.AttendeesIDs, stored.AttendeesIDs)
}

func TestCreateEvent_HostAlreadySelected(t *testing.T) {
	f := newFixture(t)

	event, err := f.svc.CreateEvent(context.Background(), f.form("김철수", "김철수", "이영희", "이영희"))
	require.NoError(t, err)

	assert.Equal(t, []string{f.ids["김철수"], f.ids["이영희"]}, event.AttendeesIDs)
	assert.Equal(t, 1, f.member(t, "김철수").AttendCount)
	assert.Equal(t, 1, f.member(t, "이영희").AttendCount)
}

func TestCreateEvent_Validation(t *testing.T) {
	f := newFixture(t)
	base := f.form("김철수", "이영희")

	cases := []struct {
		name    string
		mutate  func(*service.EventForm)
		field   string
		message string
	}{
		{"no date", func(fm *service.EventForm) { fm.Date = "" }, "date", "날짜를 입력하세요."},
		{"no time", func(fm *service.EventForm) { fm.Time = "" }, "time", "시간을 입력하세요."},
		{"blank location", func(fm *service.EventForm) { fm.Location = "  " }, "location", "장소를 입력하세요."},
		{"no host", func(fm *service.EventForm) { fm.HostID = "" }, "hostId", "모임장을 선택하세요."},
		{"no attendees", func(fm *service.EventForm) { fm.AttendeeIDs = nil }, "attendeeIds", "참석자를 1명 이상 선택하세요."},
		{"withdrawn host", func(fm *service.EventForm) { fm.HostID = f.ids["최탈퇴"] }, "hostId", "선택할 수 없는 모임장입니다."},
		{"bad image", func(fm *service.EventForm) { fm.ImageURL = "https://example.com/page" }, "imageUrl", msgInvalidImage},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fm := base
			fm.AttendeeIDs = append([]string(nil), base.AttendeeIDs...)
			tc.mutate(&fm)

			_, err := f.svc.CreateEvent(context.Background(), fm)
			var verr *service.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
			assert.Equal(t, tc.message, verr.Message)
		})
	}

	assert.Equal(t, 0, f.member(t, "김철수").AttendCount)
	assert.Equal(t, 0, f.awards.invalidated)
}

func TestCreateEvent_WithdrawnAttendeesDropped(t *testing.T) {
	f := newFixture(t)

	event, err := f.svc.CreateEvent(context.Background(), f.form("김철수", "최탈퇴", "이영희"))
	require.NoError(t, err)

	assert.Equal(t, []string{f.ids["이영희"], f.ids["김철수"]}, event.AttendeesIDs)
	assert.Equal(t, 0, f.member(t, "최탈퇴").AttendCount)
}

func TestCreateEvent_OnlyWithdrawnAttendeesKeepsHost(t *testing.T) {
	f := newFixture(t)

	event, err := f.svc.CreateEvent(context.Background(), f.form("김철수", "최탈퇴"))
	require.NoError(t, err)

	assert.Equal(t, []string{f.ids["김철수"]}, event.AttendeesIDs)
	assert.Equal(t, []string{"김철수"}, event.AttendeesNames)

	host := f.member(t, "김철수")
	assert.Equal(t, 1, host.AttendCount)
	assert.Equal(t, 1, host.HostCount)
	assert.Equal(t, 0, f.member(t, "최탈퇴").AttendCount)
	assert.Equal(t, 1, f.awards.invalidated)
}

func TestCreateEvent_FailedCommitLeavesNoPartialState(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("store unavailable")
	f.store.SetCommitHook(func() error { return boom })

	_, err := f.svc.CreateEvent(context.Background(), f.form("김철수", "이영희"))
	require.ErrorIs(t, err, boom)
	assert.False(t, service.IsValidation(err))

	events, err := f.store.Events().GetByDateRange(context.Background(), "2025-01-01", "2025-12-31")
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, 0, f.member(t, "김철수").AttendCount)
	assert.Equal(t, 0, f.member(t, "김철수").HostCount)
	assert.Equal(t, 0, f.awards.invalidated)
}

func TestUpdateEvent_OverwritesFieldsButNotCounters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	event, err := f.svc.CreateEvent(ctx, f.form("김철수", "이영희"))
	require.NoError(t, err)

	fm := f.form("박민수", "최탈퇴")
	fm.Time = "20:00"
	fm.ImageURL = "https://instagram.com/reel/ABC123/?igsh=xyz"
	updated, err := f.svc.UpdateEvent(ctx, event.ID, fm)
	require.NoError(t, err)

	assert.Equal(t, "20:00", updated.Time)
	assert.Equal(t, "박민수", updated.Host)
	assert.Equal(t, []string{f.ids["최탈퇴"], f.ids["박민수"]}, updated.AttendeesIDs)
	assert.Equal(t, []string{"최탈퇴", "박민수"}, updated.AttendeesNames)
	assert.Equal(t, "https://www.instagram.com/reel/ABC123/", updated.ImageURL)
	assert.NotNil(t, updated.UpdatedAt)

	assert.Equal(t, 1, f.member(t, "김철수").HostCount)
	assert.Equal(t, 0, f.member(t, "박민수").HostCount)
	assert.Equal(t, 0, f.member(t, "박민수").AttendCount)
	assert.Equal(t, 2, f.awards.invalidated)
}

func TestUpdateEvent_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.UpdateEvent(context.Background(), "missing", f.form("김철수", "이영희"))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteEvent_KeepsCounters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	event, err := f.svc.CreateEvent(ctx, f.form("김철수", "이영희"))
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteEvent(ctx, event.ID))
	_, err = f.svc.GetEvent(ctx, event.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, 1, f.member(t, "이영희").AttendCount)

	assert.ErrorIs(t, f.svc.DeleteEvent(ctx, event.ID), repository.ErrNotFound)
}

func TestCalendar_GroupsAndFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mk := func(date, tm, location, host string, attendees ...string) {
		fm := f.form(host, attendees...)
		fm.Date, fm.Time, fm.Location = date, tm, location
		_, err := f.svc.CreateEvent(ctx, fm)
		require.NoError(t, err)
	}
	mk("2025-03-05", "20:00", "잠실", "김철수", "이영희")
	mk("2025-03-05", "07:00", "한강", "이영희", "박민수")
	mk("2025-03-20", "19:00", "Olympic Park", "박민수", "김철수")
	mk("2025-04-01", "19:00", "잠실", "김철수", "이영희")

	month, err := f.svc.Calendar(ctx, "2025-03", service.CalendarFilter{})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", month.Start)
	assert.Equal(t, "2025-03-31", month.End)
	assert.Equal(t, 3, month.Total)
	assert.Equal(t, []string{"2025-03-05", "2025-03-20"}, month.Dates)
	require.Len(t, month.ByDate["2025-03-05"], 2)
	assert.Equal(t, "07:00", month.ByDate["2025-03-05"][0].Time)

	month, err = f.svc.Calendar(ctx, "2025-03", service.CalendarFilter{Location: "olympic"})
	require.NoError(t, err)
	assert.Equal(t, 1, month.Total)

	month, err = f.svc.Calendar(ctx, "2025-03", service.CalendarFilter{Member: "민수"})
	require.NoError(t, err)
	assert.Equal(t, 2, month.Total)

	month, err = f.svc.Calendar(ctx, "2025-03", service.CalendarFilter{Host: "철수", Date: "2025-03-05"})
	require.NoError(t, err)
	assert.Equal(t, 1, month.Total)
	assert.Equal(t, "잠실", month.ByDate["2025-03-05"][0].Location)

	_, err = f.svc.Calendar(ctx, "2025-3", service.CalendarFilter{})
	assert.True(t, service.IsValidation(err))
}

func TestNormalizeImageURL(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"", "", true},
		{"  ", "", true},
		{"https://www.instagram.com/p/Cx1/", "https://www.instagram.com/p/Cx1/", true},
		{"https://instagr.am/TV/abc?x=1", "https://www.instagram.com/tv/abc/", true},
		{"https://www.instagram.com/stories/abc/", "", false},
		{"https://cdn.example.com/a/photo.JPG", "https://cdn.example.com/a/photo.JPG", true},
		{"https://cdn.example.com/a/photo.avif?w=100", "https://cdn.example.com/a/photo.avif?w=100", true},
		{"https://cdn.example.com/a/photo.bmp", "", false},
		{"not a url.png", "", false},
	}
	for _, tc := range cases {
		out, ok := NormalizeImageURL(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.out, out, tc.in)
	}
}
