package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"hamcrew-club/internal/models"
	"hamcrew-club/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatch_CommitAppliesEverything(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	m := &models.Member{Name: "김철수"}
	require.NoError(t, s.Members().Create(ctx, m))

	b := s.NewBatch()
	ev := &models.Event{Date: "2025-03-01", Time: "19:00", HostID: m.ID, AttendeesIDs: []string{m.ID}}
	b.CreateEvent(ev)
	b.IncrementCounter(m.ID, models.CounterAttend, 1)
	b.IncrementCounter(m.ID, models.CounterHost, 1)
	require.NoError(t, b.Commit(ctx))

	require.NotEmpty(t, ev.ID)
	stored, err := s.Events().GetByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{m.ID}, stored.AttendeesIDs)

	got, err := s.Members().GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.AttendCount)
	assert.Equal(t, 1, got.HostCount)
	assert.Equal(t, "김철수", got.Name)
}

func TestBatch_FailedCommitLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	s.SetCommitHook(func() error { return errors.New("unavailable") })

	b := s.NewBatch()
	b.CreateEvent(&models.Event{Date: "2025-03-01"})
	b.IncrementCounter("m1", models.CounterAttend, 1)
	require.Error(t, b.Commit(ctx))

	events, err := s.Events().GetByDateRange(ctx, "", "")
	require.NoError(t, err)
	assert.Empty(t, events)
	_, err = s.Members().GetByID(ctx, "m1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBatch_UnknownCounterRejectedBeforeApply(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	b := s.NewBatch()
	b.IncrementCounter("m1", models.CounterAttend, 1)
	b.IncrementCounter("m1", models.Counter("points"), 1)
	require.Error(t, b.Commit(ctx))

	_, err := s.Members().GetByID(ctx, "m1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEvents_RangeQueriesAreOrdered(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	b := s.NewBatch()
	b.CreateEvent(&models.Event{Date: "2025-01-02", Time: "10:00", HostID: "a", AttendeesIDs: []string{"a", "b"}})
	b.CreateEvent(&models.Event{Date: "2025-01-01", Time: "20:00", HostID: "b", AttendeesIDs: []string{"b"}})
	b.CreateEvent(&models.Event{Date: "2025-01-01", Time: "09:00", HostID: "a", AttendeesIDs: []string{"a"}})
	b.CreateEvent(&models.Event{Date: "2025-02-01", Time: "09:00", HostID: "a", AttendeesIDs: []string{"a"}})
	require.NoError(t, b.Commit(ctx))

	events, err := s.Events().GetByDateRange(ctx, "2025-01-01", "2025-01-31")
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "09:00", events[0].Time)
	assert.Equal(t, "20:00", events[1].Time)
	assert.Equal(t, "2025-01-02", events[2].Date)

	byAttendee, err := s.Events().GetByAttendee(ctx, "b", "", "")
	require.NoError(t, err)
	assert.Len(t, byAttendee, 2)

	byHost, err := s.Events().GetByHost(ctx, "a", "2025-01-01", "2025-01-31")
	require.NoError(t, err)
	assert.Len(t, byHost, 2)
}

func TestMembers_UpdateKeepsCounters(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	fixed := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return fixed })

	m := &models.Member{Name: "이영희", Status: models.StatusActive}
	require.NoError(t, s.Members().Create(ctx, m))

	b := s.NewBatch()
	b.IncrementCounter(m.ID, models.CounterAttend, 3)
	require.NoError(t, b.Commit(ctx))

	edit := *m
	edit.Name = "이영희2"
	edit.AttendCount = 0
	require.NoError(t, s.Members().Update(ctx, &edit))

	got, err := s.Members().GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "이영희2", got.Name)
	assert.Equal(t, 3, got.AttendCount)
	require.NotNil(t, got.UpdatedAt)
	assert.Equal(t, fixed, *got.UpdatedAt)
}

func TestAttendances_SetIsUpsert(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	repo := s.Attendances()

	require.NoError(t, repo.Set(ctx, &models.Attendance{MemberID: "m1", Date: "2025-01-05", Status: "present"}))
	require.NoError(t, repo.Set(ctx, &models.Attendance{MemberID: "m1", Date: "2025-01-05", Status: "late"}))
	require.NoError(t, repo.Set(ctx, &models.Attendance{MemberID: "m1", Date: "2025-01-01", Status: "present"}))

	list, err := repo.GetByMember(ctx, "m1", "", "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2025-01-01", list[0].Date)
	assert.Equal(t, "late", list[1].Status)
	assert.Equal(t, "m1_2025-01-05", list[1].ID)

	require.NoError(t, repo.Delete(ctx, "m1", "2025-01-05"))
	list, err = repo.GetByMember(ctx, "m1", "", "")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
