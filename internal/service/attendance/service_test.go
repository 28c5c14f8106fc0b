package attendance_service

import (
	"context"
	"errors"
	"testing"

	"hamcrew-club/internal/models"
	"hamcrew-club/internal/repository/memory"
	"hamcrew-club/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService(store *memory.Store) service.AttendanceService {
	return NewAttendanceService(store.Attendances(), store.Events(), store, zap.NewNop())
}

func seedEvents(t *testing.T, store *memory.Store, events ...models.Event) {
	t.Helper()
	b := store.NewBatch()
	for i := range events {
		b.CreateEvent(&events[i])
	}
	require.NoError(t, b.Commit(context.Background()))
}

func TestAttendanceDates_FallsBackToEvents(t *testing.T) {
	store := memory.NewStore()
	seedEvents(t, store,
		models.Event{Date: "2025-02-01", Time: "19:00", AttendeesIDs: []string{"m1", "m2"}},
		models.Event{Date: "2025-01-15", Time: "07:00", AttendeesIDs: []string{"m1"}},
		models.Event{Date: "2025-01-15", Time: "20:00", AttendeesIDs: []string{"m1"}},
		models.Event{Date: "2025-01-20", Time: "20:00", AttendeesIDs: []string{"m2"}},
	)
	svc := newService(store)

	dates, err := svc.AttendanceDates(context.Background(), "m1", "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-15", "2025-02-01"}, dates)

	dates, err = svc.AttendanceDates(context.Background(), "m1", "2025-01-16", "2025-12-31")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-02-01"}, dates)

	dates, err = svc.AttendanceDates(context.Background(), "nobody", "", "")
	require.NoError(t, err)
	assert.Empty(t, dates)
}

func TestAttendanceDates_PrefersRecords(t *testing.T) {
	store := memory.NewStore()
	seedEvents(t, store, models.Event{Date: "2025-02-01", AttendeesIDs: []string{"m1"}})
	svc := newService(store)
	ctx := context.Background()

	require.NoError(t, svc.Mark(ctx, "m1", "2025-03-02", nil, ""))
	require.NoError(t, svc.Mark(ctx, "m1", "2025-03-01", nil, ""))

	dates, err := svc.AttendanceDates(ctx, "m1", "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-01", "2025-03-02"}, dates)
}

func TestAttendanceDates_OneSidedRangeIgnored(t *testing.T) {
	store := memory.NewStore()
	seedEvents(t, store,
		models.Event{Date: "2025-01-15", AttendeesIDs: []string{"m1"}},
		models.Event{Date: "2025-02-01", AttendeesIDs: []string{"m1"}},
	)
	svc := newService(store)
	ctx := context.Background()

	dates, err := svc.AttendanceDates(ctx, "m1", "2025-01-20", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-15", "2025-02-01"}, dates)

	dates, err = svc.AttendanceDates(ctx, "m1", "", "2025-01-20")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-15", "2025-02-01"}, dates)

	require.NoError(t, svc.Mark(ctx, "m1", "2025-03-01", nil, ""))
	dates, err = svc.AttendanceDates(ctx, "m1", "garbage", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-01"}, dates)
}

func TestAttendanceDates_Validation(t *testing.T) {
	svc := newService(memory.NewStore())
	ctx := context.Background()

	_, err := svc.AttendanceDates(ctx, "", "", "")
	assert.True(t, service.IsValidation(err))

	_, err = svc.AttendanceDates(ctx, "m1", "2025-01-01", "2025-13-01")
	assert.True(t, service.IsValidation(err))
}

func TestMarkUnmark(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store)
	ctx := context.Background()
	eventID := "e1"

	require.NoError(t, svc.Mark(ctx, "m1", "2025-03-01", &eventID, ""))
	require.NoError(t, svc.Mark(ctx, "m1", "2025-03-01", nil, "late"))

	records, err := store.Attendances().GetByMember(ctx, "m1", "", "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "m1_2025-03-01", records[0].ID)
	assert.Equal(t, "late", records[0].Status)

	require.NoError(t, svc.Unmark(ctx, "m1", "2025-03-01"))
	records, err = store.Attendances().GetByMember(ctx, "m1", "", "")
	require.NoError(t, err)
	assert.Empty(t, records)

	err = svc.Mark(ctx, "m1", "2025/03/01", nil, "")
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "date는 'YYYY-MM-DD' 형식이어야 합니다. (입력값: 2025/03/01)", verr.Message)
}

func TestSeed(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store)
	ctx := context.Background()

	n, err := svc.Seed(ctx, "m1", []string{"2025-01-01", "2025-01-02", "2025-01-01"})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	records, err := store.Attendances().GetByMember(ctx, "m1", "", "")
	require.NoError(t, err)
	assert.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, models.AttendancePresent, r.Status)
	}
}

func TestSeed_BadDateWritesNothing(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store)
	ctx := context.Background()

	_, err := svc.Seed(ctx, "m1", []string{"2025-01-01", "01/02/2025"})
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "잘못된 날짜: 01/02/2025", verr.Message)

	records, err := store.Attendances().GetByMember(ctx, "m1", "", "")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSeed_CommitFailure(t *testing.T) {
	store := memory.NewStore()
	boom := errors.New("offline")
	store.SetCommitHook(func() error { return boom })

	_, err := newService(store).Seed(context.Background(), "m1", []string{"2025-01-01"})
	assert.ErrorIs(t, err, boom)
}
