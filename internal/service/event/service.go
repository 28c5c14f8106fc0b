package event_service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hamcrew-club/internal/models"
	"hamcrew-club/internal/repository"
	"hamcrew-club/internal/service"
	award_service "hamcrew-club/internal/service/award"

	"go.uber.org/zap"
)

var formMessages = map[string]string{
	"date":        "날짜를 입력하세요.",
	"time":        "시간을 입력하세요.",
	"location":    "장소를 입력하세요.",
	"hostId":      "모임장을 선택하세요.",
	"attendeeIds": "참석자를 1명 이상 선택하세요.",
}

const (
	msgInvalidHost      = "선택할 수 없는 모임장입니다."
	msgNoValidAttendees = "유효한 참석자가 없습니다."
	msgInvalidImage     = "이미지 주소 또는 인스타그램 게시물 주소를 입력하세요."
	msgInvalidMonth     = "month는 YYYY-MM 형식이어야 합니다."
)

type eventService struct {
	memberRepo repository.MemberRepository
	eventRepo  repository.EventRepository
	batcher    repository.Batcher
	awards     service.AwardService
	logger     *zap.Logger
}

func NewEventService(memberRepo repository.MemberRepository, eventRepo repository.EventRepository, batcher repository.Batcher, awards service.AwardService, logger *zap.Logger) service.EventService {
	return &eventService{
		memberRepo: memberRepo,
		eventRepo:  eventRepo,
		batcher:    batcher,
		awards:     awards,
		logger:     logger,
	}
}

func validateForm(form *service.EventForm) error {
	if err := service.ValidateStruct(form, formMessages); err != nil {
		return err
	}
	image, ok := NormalizeImageURL(form.ImageURL)
	if !ok {
		return service.NewValidationError("imageUrl", msgInvalidImage)
	}
	form.ImageURL = image
	form.Location = strings.TrimSpace(form.Location)
	return nil
}

// unionWithHost - уникальные id участников + ведущий, если его нет в списке
func unionWithHost(ids []string, hostID string) []string {
	seen := make(map[string]struct{}, len(ids)+1)
	out := make([]string, 0, len(ids)+1)
	for _, id := range append(append([]string{}, ids...), hostID) {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (s *eventService) directory(ctx context.Context, activeOnly bool) (map[string]*models.Member, error) {
	members, err := s.memberRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to load members", zap.Error(err))
		return nil, fmt.Errorf("load members: %w", err)
	}
	dir := make(map[string]*models.Member, len(members))
	for _, m := range members {
		if activeOnly && m.IsWithdrawn() {
			continue
		}
		dir[m.ID] = m
	}
	return dir, nil
}

func names(ids []string, dir map[string]*models.Member) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		if m, ok := dir[id]; ok {
			out[i] = m.Name
		}
	}
	return out
}

// CreateEvent: встреча и счётчики участников пишутся одним батчем
func (s *eventService) CreateEvent(ctx context.Context, form service.EventForm) (*models.Event, error) {
	if err := validateForm(&form); err != nil {
		return nil, err
	}

	dir, err := s.directory(ctx, true)
	if err != nil {
		return nil, err
	}
	host, ok := dir[form.HostID]
	if !ok {
		return nil, service.NewValidationError("hostId", msgInvalidHost)
	}

	// сначала объединяем с ведущим, потом отбрасываем неактивных
	var ids []string
	for _, id := range unionWithHost(form.AttendeeIDs, host.ID) {
		if _, ok := dir[id]; ok {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, service.NewValidationError("attendeeIds", msgNoValidAttendees)
	}

	event := &models.Event{
		Date:           form.Date,
		Time:           form.Time,
		Location:       form.Location,
		HostID:         host.ID,
		Host:           host.Name,
		AttendeesIDs:   ids,
		AttendeesNames: names(ids, dir),
		ImageURL:       form.ImageURL,
	}

	batch := s.batcher.NewBatch()
	batch.CreateEvent(event)
	for _, id := range ids {
		batch.IncrementCounter(id, models.CounterAttend, 1)
	}
	batch.IncrementCounter(host.ID, models.CounterHost, 1)

	if err := batch.Commit(ctx); err != nil {
		s.logger.Error("failed to commit event batch",
			zap.String("date", event.Date), zap.String("host_id", host.ID), zap.Error(err))
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.awards.Invalidate(ctx)
	s.logger.Info("event created",
		zap.String("event_id", event.ID), zap.String("date", event.Date), zap.Int("attendees", len(ids)))
	return event, nil
}

// UpdateEvent перезаписывает поля встречи. Счётчики участников не трогает:
// они отражают состав на момент создания.
func (s *eventService) UpdateEvent(ctx context.Context, id string, form service.EventForm) (*models.Event, error) {
	if err := validateForm(&form); err != nil {
		return nil, err
	}

	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	dir, err := s.directory(ctx, false)
	if err != nil {
		return nil, err
	}
	host, ok := dir[form.HostID]
	if !ok {
		return nil, service.NewValidationError("hostId", msgInvalidHost)
	}

	ids := unionWithHost(form.AttendeeIDs, host.ID)
	event.Date = form.Date
	event.Time = form.Time
	event.Location = form.Location
	event.HostID = host.ID
	event.Host = host.Name
	event.AttendeesIDs = ids
	event.AttendeesNames = names(ids, dir)
	event.ImageURL = form.ImageURL

	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("failed to update event", zap.String("event_id", id), zap.Error(err))
		return nil, fmt.Errorf("update event: %w", err)
	}

	s.awards.Invalidate(ctx)
	return event, nil
}

// DeleteEvent удаляет только документ встречи, счётчики не откатываются
func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		s.logger.Error("failed to delete event", zap.String("event_id", id), zap.Error(err))
		return fmt.Errorf("delete event: %w", err)
	}
	s.awards.Invalidate(ctx)
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("failed to load event", zap.String("event_id", id), zap.Error(err))
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) Calendar(ctx context.Context, month string, filter service.CalendarFilter) (*service.CalendarMonth, error) {
	start, end, err := service.MonthRange(month)
	if err != nil {
		return nil, service.NewValidationError("month", msgInvalidMonth)
	}

	events, err := s.eventRepo.GetByDateRange(ctx, start, end)
	if err != nil {
		s.logger.Error("failed to load calendar",
			zap.String("start", start), zap.String("end", end), zap.Error(err))
		return nil, fmt.Errorf("load calendar: %w", err)
	}

	if !filter.Empty() {
		filtered := events[:0:0]
		for _, ev := range events {
			if matchFilter(&ev, filter) {
				filtered = append(filtered, ev)
			}
		}
		events = filtered
	}

	groups := award_service.GroupByDate(events)
	return &service.CalendarMonth{
		Month:  month,
		Start:  start,
		End:    end,
		Dates:  award_service.SortedDates(groups),
		ByDate: groups,
		Total:  len(events),
	}, nil
}

func containsFold(source, needle string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(source), needle)
}

func matchFilter(ev *models.Event, f service.CalendarFilter) bool {
	if f.Date != "" && ev.Date != strings.TrimSpace(f.Date) {
		return false
	}
	if !containsFold(ev.Host, f.Host) {
		return false
	}
	if strings.TrimSpace(f.Member) != "" {
		found := false
		for _, name := range ev.AttendeesNames {
			if containsFold(name, f.Member) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return containsFold(ev.Location, f.Location)
}
