package memory

import (
	"context"
	"sort"

	"hamcrew-club/internal/models"
	"hamcrew-club/internal/repository"
)

type eventRepository struct {
	s *Store
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	e = cloneEvent(e)
	return &e, nil
}

func (r *eventRepository) GetByDateRange(ctx context.Context, start, end string) ([]models.Event, error) {
	return r.filter(func(e *models.Event) bool {
		return repository.InRange(e.Date, start, end)
	}), nil
}

func (r *eventRepository) GetByAttendee(ctx context.Context, memberID, start, end string) ([]models.Event, error) {
	return r.filter(func(e *models.Event) bool {
		return e.HasAttendee(memberID) && repository.InRange(e.Date, start, end)
	}), nil
}

func (r *eventRepository) GetByHost(ctx context.Context, hostID, start, end string) ([]models.Event, error) {
	return r.filter(func(e *models.Event) bool {
		return e.HostID == hostID && repository.InRange(e.Date, start, end)
	}), nil
}

// filter - выборка, отсортированная по date, time
func (r *eventRepository) filter(match func(e *models.Event) bool) []models.Event {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var events []models.Event
	for _, e := range r.s.events {
		if match(&e) {
			events = append(events, cloneEvent(e))
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		if events[i].Time != events[j].Time {
			return events[i].Time < events[j].Time
		}
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})
	return events
}

func (r *eventRepository) Update(ctx context.Context, event *models.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.events[event.ID]
	if !ok {
		return repository.ErrNotFound
	}

	now := r.s.now()
	event.CreatedAt = existing.CreatedAt
	event.UpdatedAt = &now
	r.s.events[event.ID] = cloneEvent(*event)
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.events[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.events, id)
	return nil
}
