package memory

import (
	"context"
	"sync"
	"time"

	"hamcrew-club/internal/models"
	"hamcrew-club/internal/repository"

	"github.com/google/uuid"
)

// Store - хранилище в памяти: локальная разработка и тесты
type Store struct {
	mu          sync.RWMutex
	members     map[string]models.Member
	events      map[string]models.Event
	attendances map[string]models.Attendance

	now        func() time.Time
	commitHook func() error
}

func NewStore() *Store {
	return &Store{
		members:     make(map[string]models.Member),
		events:      make(map[string]models.Event),
		attendances: make(map[string]models.Attendance),
		now:         time.Now,
	}
}

// SetClock подменяет источник времени для createdAt/updatedAt
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// SetCommitHook вызывается перед применением батча; ошибка отменяет батч целиком
func (s *Store) SetCommitHook(hook func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitHook = hook
}

func (s *Store) Members() repository.MemberRepository         { return &memberRepository{s} }
func (s *Store) Events() repository.EventRepository           { return &eventRepository{s} }
func (s *Store) Attendances() repository.AttendanceRepository { return &attendanceRepository{s} }
func (s *Store) Close(ctx context.Context) error              { return nil }

func (s *Store) NewBatch() repository.Batch {
	return &batch{store: s}
}

func newID() string {
	return uuid.NewString()
}

func cloneEvent(e models.Event) models.Event {
	e.AttendeesIDs = append([]string(nil), e.AttendeesIDs...)
	e.AttendeesNames = append([]string(nil), e.AttendeesNames...)
	return e
}
