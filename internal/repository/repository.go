package repository

import (
	"context"
	"errors"

	"hamcrew-club/internal/models"
)

// ErrNotFound - документ не найден (для всех бэкендов)
var ErrNotFound = errors.New("document not found")

type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	GetByID(ctx context.Context, id string) (*models.Member, error)
	// GetAll возвращает всех участников, новые первыми (createdAt desc)
	GetAll(ctx context.Context) ([]*models.Member, error)
	FindByPhone(ctx context.Context, phone string) ([]*models.Member, error)
	// Update перезаписывает анкету и статус, счётчики не трогает
	Update(ctx context.Context, member *models.Member) error
	Delete(ctx context.Context, id string) error
}

type EventRepository interface {
	GetByID(ctx context.Context, id string) (*models.Event, error)
	// GetByDateRange - date BETWEEN start AND end, ORDER BY date, time
	GetByDateRange(ctx context.Context, start, end string) ([]models.Event, error)
	// GetByAttendee - attendeesIds содержит memberID; пустой диапазон = без ограничения
	GetByAttendee(ctx context.Context, memberID, start, end string) ([]models.Event, error)
	GetByHost(ctx context.Context, hostID, start, end string) ([]models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id string) error
}

type AttendanceRepository interface {
	GetByMember(ctx context.Context, memberID, start, end string) ([]models.Attendance, error)
	// Set - upsert по id memberId_date
	Set(ctx context.Context, attendance *models.Attendance) error
	Delete(ctx context.Context, memberID, date string) error
}

// Batch - набор записей, применяемых атомарно (всё или ничего)
type Batch interface {
	// CreateEvent назначает ID и createdAt событию
	CreateEvent(event *models.Event)
	IncrementCounter(memberID string, counter models.Counter, delta int)
	SetAttendance(attendance *models.Attendance)
	Commit(ctx context.Context) error
}

type Batcher interface {
	NewBatch() Batch
}

type Store interface {
	Batcher
	Members() MemberRepository
	Events() EventRepository
	Attendances() AttendanceRepository
	Close(ctx context.Context) error
}

// InRange - общий фильтр по строковым датам YYYY-MM-DD (пустые границы не ограничивают)
func InRange(date, start, end string) bool {
	if start != "" && date < start {
		return false
	}
	if end != "" && date > end {
		return false
	}
	return true
}
