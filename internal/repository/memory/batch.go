package memory

import (
	"context"
	"fmt"

	"hamcrew-club/internal/models"
)

type counterDelta struct {
	memberID string
	counter  models.Counter
	delta    int
}

type batch struct {
	store       *Store
	events      []*models.Event
	increments  []counterDelta
	attendances []*models.Attendance
	committed   bool
}

func (b *batch) CreateEvent(event *models.Event) {
	event.ID = newID()
	b.events = append(b.events, event)
}

func (b *batch) IncrementCounter(memberID string, counter models.Counter, delta int) {
	b.increments = append(b.increments, counterDelta{memberID: memberID, counter: counter, delta: delta})
}

func (b *batch) SetAttendance(attendance *models.Attendance) {
	b.attendances = append(b.attendances, attendance)
}

func (b *batch) Commit(ctx context.Context) error {
	if b.committed {
		return fmt.Errorf("batch already committed")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s := b.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.commitHook != nil {
		if err := s.commitHook(); err != nil {
			return err
		}
	}

	for _, inc := range b.increments {
		if inc.counter != models.CounterAttend && inc.counter != models.CounterHost {
			return fmt.Errorf("unknown counter %q", inc.counter)
		}
	}

	// Как merge+increment в документной БД: отсутствующий участник создаётся заглушкой
	for _, inc := range b.increments {
		m := s.members[inc.memberID]
		m.ID = inc.memberID
		if inc.counter == models.CounterAttend {
			m.AttendCount += inc.delta
		} else {
			m.HostCount += inc.delta
		}
		s.members[inc.memberID] = m
	}

	now := s.now()
	for _, e := range b.events {
		e.CreatedAt = now
		s.events[e.ID] = cloneEvent(*e)
	}
	for _, a := range b.attendances {
		s.setAttendanceLocked(a)
	}

	b.committed = true
	return nil
}
