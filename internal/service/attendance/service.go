package attendance_service

import (
	"context"
	"fmt"
	"sort"

	"hamcrew-club/internal/models"
	"hamcrew-club/internal/repository"
	"hamcrew-club/internal/service"

	"go.uber.org/zap"
)

const (
	msgMemberRequired = "memberId가 필요합니다."
	msgRange          = "start/end는 YYYY-MM-DD 형식이어야 합니다."
)

type attendanceService struct {
	attendanceRepo repository.AttendanceRepository
	eventRepo      repository.EventRepository
	batcher        repository.Batcher
	logger         *zap.Logger
}

func NewAttendanceService(attendanceRepo repository.AttendanceRepository, eventRepo repository.EventRepository, batcher repository.Batcher, logger *zap.Logger) service.AttendanceService {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		eventRepo:      eventRepo,
		batcher:        batcher,
		logger:         logger,
	}
}

// normalizeRange: диапазон применяется только если заданы обе границы
func normalizeRange(start, end string) (string, string, error) {
	if start == "" || end == "" {
		return "", "", nil
	}
	if !service.IsYMD(start) || !service.IsYMD(end) {
		return "", "", service.NewValidationError("range", msgRange)
	}
	return start, end, nil
}

func checkDate(date string) error {
	if !service.IsYMD(date) {
		return service.NewValidationError("date", fmt.Sprintf("date는 'YYYY-MM-DD' 형식이어야 합니다. (입력값: %s)", date))
	}
	return nil
}

// AttendanceDates: сначала отдельные записи посещений; если их нет -
// уникальные даты встреч, где участник в attendeesIds.
func (s *attendanceService) AttendanceDates(ctx context.Context, memberID, start, end string) ([]string, error) {
	if memberID == "" {
		return nil, service.NewValidationError("memberId", msgMemberRequired)
	}
	start, end, err := normalizeRange(start, end)
	if err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.GetByMember(ctx, memberID, start, end)
	if err != nil {
		s.logger.Error("failed to load attendances", zap.String("member_id", memberID), zap.Error(err))
		return nil, fmt.Errorf("load attendances: %w", err)
	}
	if len(records) > 0 {
		dates := make([]string, 0, len(records))
		for _, a := range records {
			if a.Date != "" {
				dates = append(dates, a.Date)
			}
		}
		return dates, nil
	}

	events, err := s.eventRepo.GetByAttendee(ctx, memberID, start, end)
	if err != nil {
		s.logger.Error("failed to load member events",
			zap.String("member_id", memberID), zap.String("start", start), zap.String("end", end), zap.Error(err))
		return nil, fmt.Errorf("load member events: %w", err)
	}
	return distinctDates(events), nil
}

func distinctDates(events []models.Event) []string {
	seen := make(map[string]struct{}, len(events))
	dates := []string{}
	for _, ev := range events {
		if ev.Date == "" {
			continue
		}
		if _, ok := seen[ev.Date]; ok {
			continue
		}
		seen[ev.Date] = struct{}{}
		dates = append(dates, ev.Date)
	}
	sort.Strings(dates)
	return dates
}

func (s *attendanceService) Mark(ctx context.Context, memberID, date string, eventID *string, status string) error {
	if memberID == "" {
		return service.NewValidationError("memberId", msgMemberRequired)
	}
	if err := checkDate(date); err != nil {
		return err
	}
	if status == "" {
		status = models.AttendancePresent
	}

	a := &models.Attendance{MemberID: memberID, Date: date, EventID: eventID, Status: status}
	if err := s.attendanceRepo.Set(ctx, a); err != nil {
		s.logger.Error("failed to mark attendance",
			zap.String("member_id", memberID), zap.String("date", date), zap.Error(err))
		return fmt.Errorf("mark attendance: %w", err)
	}
	return nil
}

func (s *attendanceService) Unmark(ctx context.Context, memberID, date string) error {
	if memberID == "" {
		return service.NewValidationError("memberId", msgMemberRequired)
	}
	if err := checkDate(date); err != nil {
		return err
	}
	if err := s.attendanceRepo.Delete(ctx, memberID, date); err != nil {
		s.logger.Error("failed to unmark attendance",
			zap.String("member_id", memberID), zap.String("date", date), zap.Error(err))
		return fmt.Errorf("unmark attendance: %w", err)
	}
	return nil
}

// Seed записывает все даты одним батчем; одна плохая дата отменяет всё
func (s *attendanceService) Seed(ctx context.Context, memberID string, dates []string) (int, error) {
	if memberID == "" {
		return 0, service.NewValidationError("memberId", msgMemberRequired)
	}
	for _, d := range dates {
		if !service.IsYMD(d) {
			return 0, service.NewValidationError("dates", "잘못된 날짜: "+d)
		}
	}
	if len(dates) == 0 {
		return 0, nil
	}

	batch := s.batcher.NewBatch()
	for _, d := range dates {
		batch.SetAttendance(&models.Attendance{MemberID: memberID, Date: d, Status: models.AttendancePresent})
	}
	if err := batch.Commit(ctx); err != nil {
		s.logger.Error("failed to seed attendances",
			zap.String("member_id", memberID), zap.Int("dates", len(dates)), zap.Error(err))
		return 0, fmt.Errorf("seed attendances: %w", err)
	}
	return len(dates), nil
}
