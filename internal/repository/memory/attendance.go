package memory

import (
	"context"
	"sort"

	"hamcrew-club/internal/models"
	"hamcrew-club/internal/repository"
)

type attendanceRepository struct {
	s *Store
}

func (r *attendanceRepository) GetByMember(ctx context.Context, memberID, start, end string) ([]models.Attendance, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var list []models.Attendance
	for _, a := range r.s.attendances {
		if a.MemberID == memberID && repository.InRange(a.Date, start, end) {
			list = append(list, a)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date < list[j].Date })
	return list, nil
}

func (r *attendanceRepository) Set(ctx context.Context, attendance *models.Attendance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.setAttendanceLocked(attendance)
	return nil
}

func (r *attendanceRepository) Delete(ctx context.Context, memberID, date string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.attendances, models.AttendanceID(memberID, date))
	return nil
}

func (s *Store) setAttendanceLocked(attendance *models.Attendance) {
	attendance.ID = models.AttendanceID(attendance.MemberID, attendance.Date)
	attendance.CreatedAt = s.now()
	s.attendances[attendance.ID] = *attendance
}
