package award_service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hamcrew-club/internal/cache"
	"hamcrew-club/internal/models"
	"hamcrew-club/internal/repository"
	"hamcrew-club/internal/service"

	"go.uber.org/zap"
)

const (
	generationKey = "awards:generation"
	rangeMessage  = "start/end는 YYYY-MM-DD 형식이어야 합니다."
)

type awardService struct {
	eventRepo repository.EventRepository
	kv        cache.KVStore
	ttl       time.Duration
	logger    *zap.Logger
}

func NewAwardService(eventRepo repository.EventRepository, kv cache.KVStore, ttl time.Duration, logger *zap.Logger) service.AwardService {
	if kv == nil {
		kv = cache.NopKVStore{}
	}
	return &awardService{
		eventRepo: eventRepo,
		kv:        kv,
		ttl:       ttl,
		logger:    logger,
	}
}

func (s *awardService) Report(ctx context.Context, start, end string) (*models.AwardReport, error) {
	start, end, err := NormalizeRange(start, end)
	if err != nil {
		return nil, err
	}

	key := s.reportKey(ctx, start, end)
	if report, ok := s.cached(ctx, key); ok {
		return report, nil
	}

	events, err := s.eventRepo.GetByDateRange(ctx, start, end)
	if err != nil {
		s.logger.Error("failed to load events for awards",
			zap.String("start", start), zap.String("end", end), zap.Error(err))
		return nil, fmt.Errorf("load events: %w", err)
	}

	report := BuildReport(start, end, events)
	s.store(ctx, key, report)
	return report, nil
}

func (s *awardService) Invalidate(ctx context.Context) {
	if _, err := s.kv.Incr(ctx, generationKey); err != nil {
		s.logger.Warn("failed to bump award cache generation", zap.Error(err))
	}
}

// reportKey включает поколение: Invalidate делает старые ключи недостижимыми
func (s *awardService) reportKey(ctx context.Context, start, end string) string {
	gen, err := s.kv.Get(ctx, generationKey)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("failed to read award cache generation", zap.Error(err))
		}
		gen = "0"
	}
	return fmt.Sprintf("awards:%s:%s:%s", gen, start, end)
}

func (s *awardService) cached(ctx context.Context, key string) (*models.AwardReport, bool) {
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("award cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var report models.AwardReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		s.logger.Warn("award cache entry is corrupted", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &report, true
}

func (s *awardService) store(ctx context.Context, key string, report *models.AwardReport) {
	if s.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.kv.Set(ctx, key, string(raw), s.ttl); err != nil {
		s.logger.Warn("award cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// NormalizeRange: обе границы обязательны; перепутанные меняются местами
func NormalizeRange(start, end string) (string, string, error) {
	if !service.IsYMD(start) {
		return "", "", service.NewValidationError("start", rangeMessage)
	}
	if !service.IsYMD(end) {
		return "", "", service.NewValidationError("end", rangeMessage)
	}
	if start > end {
		start, end = end, start
	}
	return start, end, nil
}

// RecentSixMonths - диапазон по умолчанию: последние 6 месяцев до сегодня
func RecentSixMonths(now time.Time, loc *time.Location) (string, string) {
	if loc == nil {
		loc = time.Local
	}
	today := now.In(loc)
	return today.AddDate(0, -6, 0).Format(service.DateLayout), today.Format(service.DateLayout)
}

// ThisYear - с 1 января текущего года до сегодня
func ThisYear(now time.Time, loc *time.Location) (string, string) {
	if loc == nil {
		loc = time.Local
	}
	today := now.In(loc)
	first := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, loc)
	return first.Format(service.DateLayout), today.Format(service.DateLayout)
}
