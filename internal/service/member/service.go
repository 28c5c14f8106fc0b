package member_service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"hamcrew-club/internal/models"
	"hamcrew-club/internal/repository"
	"hamcrew-club/internal/service"

	"go.uber.org/zap"
)

var formMessages = map[string]string{
	"name":      "이름을 입력하세요.",
	"birthdate": "생년월일을 입력하세요.",
	"phone":     "전화번호는 숫자 9~11자리로 입력하세요.",
	"joinDate":  "가입일을 입력하세요.",
	"gender":    "성별을 선택하세요.",
}

var statusMessages = map[string]string{
	"status":   "상태를 선택하세요.",
	"exitDate": "탈퇴일은 YYYY-MM-DD 형식이어야 합니다.",
}

type memberService struct {
	memberRepo repository.MemberRepository
	attendance service.AttendanceService
	now        service.Clock
	loc        *time.Location
	logger     *zap.Logger
}

func NewMemberService(memberRepo repository.MemberRepository, attendance service.AttendanceService, clock service.Clock, loc *time.Location, logger *zap.Logger) service.MemberService {
	if clock == nil {
		clock = time.Now
	}
	return &memberService{
		memberRepo: memberRepo,
		attendance: attendance,
		now:        clock,
		loc:        loc,
		logger:     logger,
	}
}

func validateForm(form *service.MemberForm) error {
	if err := service.ValidateStruct(form, formMessages); err != nil {
		return err
	}
	form.Name = strings.TrimSpace(form.Name)
	form.Phone = service.NormalizePhone(form.Phone)
	return nil
}

// checkDuplicatePhone - ErrDuplicatePhone, если номер есть у другого участника
func (s *memberService) checkDuplicatePhone(ctx context.Context, phone, selfID string) error {
	found, err := s.memberRepo.FindByPhone(ctx, phone)
	if err != nil {
		s.logger.Error("failed to look up phone", zap.Error(err))
		return fmt.Errorf("find by phone: %w", err)
	}
	for _, m := range found {
		if m.ID != selfID {
			return service.ErrDuplicatePhone
		}
	}
	return nil
}

func (s *memberService) RegisterMember(ctx context.Context, form service.MemberForm) (*models.Member, error) {
	if err := validateForm(&form); err != nil {
		return nil, err
	}
	if !form.ConfirmDuplicatePhone {
		if err := s.checkDuplicatePhone(ctx, form.Phone, ""); err != nil {
			return nil, err
		}
	}

	now := s.now()
	member := &models.Member{
		Name:            form.Name,
		Birthdate:       form.Birthdate,
		Phone:           form.Phone,
		JoinDate:        form.JoinDate,
		Gender:          form.Gender,
		Status:          models.StatusActive,
		ActivityArea:    strings.TrimSpace(form.ActivityArea),
		Residence:       strings.TrimSpace(form.Residence),
		Memo:            form.Memo,
		StatusUpdatedAt: &now,
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		s.logger.Error("failed to register member", zap.String("name", member.Name), zap.Error(err))
		return nil, fmt.Errorf("register member: %w", err)
	}

	s.logger.Info("member registered", zap.String("member_id", member.ID))
	return member, nil
}

// UpdateMemberStatus: withdrawn ставит exitDate (по умолчанию сегодня),
// любой другой статус его очищает.
func (s *memberService) UpdateMemberStatus(ctx context.Context, id string, change service.StatusChange) (*models.Member, error) {
	if err := service.ValidateStruct(change, statusMessages); err != nil {
		return nil, err
	}

	member, err := s.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}

	if change.Status == models.StatusWithdrawn {
		exit := change.ExitDate
		if exit == "" {
			exit = service.Today(s.now(), s.loc)
		}
		member.ExitDate = &exit
	} else {
		member.ExitDate = nil
	}
	if member.Status != change.Status {
		now := s.now()
		member.StatusUpdatedAt = &now
	}
	member.Status = change.Status

	if err := s.save(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *memberService) UpdateMember(ctx context.Context, id string, form service.MemberForm) (*models.Member, error) {
	if err := validateForm(&form); err != nil {
		return nil, err
	}

	member, err := s.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}
	if !form.ConfirmDuplicatePhone && form.Phone != member.Phone {
		if err := s.checkDuplicatePhone(ctx, form.Phone, member.ID); err != nil {
			return nil, err
		}
	}

	member.Name = form.Name
	member.Birthdate = form.Birthdate
	member.Phone = form.Phone
	member.JoinDate = form.JoinDate
	member.Gender = form.Gender
	member.ActivityArea = strings.TrimSpace(form.ActivityArea)
	member.Residence = strings.TrimSpace(form.Residence)
	member.Memo = form.Memo

	if err := s.save(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *memberService) save(ctx context.Context, member *models.Member) error {
	if err := s.memberRepo.Update(ctx, member); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		s.logger.Error("failed to update member", zap.String("member_id", member.ID), zap.Error(err))
		return fmt.Errorf("update member: %w", err)
	}
	return nil
}

// DeleteMember - без каскада: встречи сохраняют id и снимок имени
func (s *memberService) DeleteMember(ctx context.Context, id string) error {
	if err := s.memberRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		s.logger.Error("failed to delete member", zap.String("member_id", id), zap.Error(err))
		return fmt.Errorf("delete member: %w", err)
	}
	return nil
}

func (s *memberService) GetMember(ctx context.Context, id string) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("failed to load member", zap.String("member_id", id), zap.Error(err))
		return nil, fmt.Errorf("get member: %w", err)
	}
	return member, nil
}

func (s *memberService) ListMembers(ctx context.Context, filter service.MemberFilter) ([]*models.Member, error) {
	all, err := s.memberRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to load members", zap.Error(err))
		return nil, fmt.Errorf("list members: %w", err)
	}

	q := strings.ToLower(strings.TrimSpace(filter.Query))
	area := strings.ToLower(strings.TrimSpace(filter.ActivityArea))
	residence := strings.ToLower(strings.TrimSpace(filter.Residence))

	members := make([]*models.Member, 0, len(all))
	for _, m := range all {
		if q != "" {
			key := strings.ToLower(m.Name + " " + m.Phone + " " + m.ActivityArea + " " + m.Residence)
			if !strings.Contains(key, q) {
				continue
			}
		}
		if area != "" && !strings.Contains(strings.ToLower(m.ActivityArea), area) {
			continue
		}
		if residence != "" && !strings.Contains(strings.ToLower(m.Residence), residence) {
			continue
		}
		if filter.Gender != "" && m.Gender != filter.Gender {
			continue
		}
		members = append(members, m)
	}

	if filter.Sort == service.SortJoinDateDesc {
		keys := make(map[*models.Member]string, len(members))
		for _, m := range members {
			keys[m] = s.joinKey(m)
		}
		sort.SliceStable(members, func(i, j int) bool {
			return keys[members[i]] > keys[members[j]]
		})
	} else {
		// слоги хангыля в Unicode идут в порядке 가나다
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].Name < members[j].Name
		})
	}
	return members, nil
}

// joinKey - дата вступления, а без неё дата создания записи
func (s *memberService) joinKey(m *models.Member) string {
	if m.JoinDate != "" {
		return m.JoinDate
	}
	if m.CreatedAt.IsZero() {
		return ""
	}
	return m.CreatedAt.In(s.loc).Format(service.DateLayout)
}

func (s *memberService) MemberDetail(ctx context.Context, id string) (*service.MemberDetail, error) {
	member, err := s.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}
	dates, err := s.attendance.AttendanceDates(ctx, id, "", "")
	if err != nil {
		return nil, err
	}
	return &service.MemberDetail{
		Member:          member,
		PhoneFormatted:  FormatPhoneKR(member.Phone),
		StatusLabel:     member.Status.Label(),
		AttendanceDates: dates,
	}, nil
}
