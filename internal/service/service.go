package service

import (
	"context"
	"errors"

	"hamcrew-club/internal/models"
)

// ErrDuplicatePhone - предупреждение: телефон уже есть у другого участника.
// Не блокирует регистрацию, если вызывающий подтвердил (ConfirmDuplicatePhone).
var ErrDuplicatePhone = errors.New("동일한 전화번호가 존재합니다")

// ///////////////////////////// награды ////////////////////////////////
type AwardService interface {
	// Report - итоги за [start, end]; диапазон нормализуется
	Report(ctx context.Context, start, end string) (*models.AwardReport, error)
	// Invalidate сбрасывает кэш отчётов после изменения встреч
	Invalidate(ctx context.Context)
}

// ///////////////////////////// встречи ////////////////////////////////
type EventForm struct {
	Date        string   `json:"date" validate:"required,ymd"`
	Time        string   `json:"time" validate:"required,hhmm"`
	Location    string   `json:"location" validate:"notblank"`
	HostID      string   `json:"hostId" validate:"required"`
	AttendeeIDs []string `json:"attendeeIds" validate:"min=1"`
	ImageURL    string   `json:"imageUrl"`
}

type CalendarFilter struct {
	Date     string
	Host     string
	Member   string
	Location string
}

func (f CalendarFilter) Empty() bool {
	return f.Date == "" && f.Host == "" && f.Member == "" && f.Location == ""
}

// CalendarMonth - встречи месяца, сгруппированные по дате
type CalendarMonth struct {
	Month  string                    `json:"month"`
	Start  string                    `json:"start"`
	End    string                    `json:"end"`
	Dates  []string                  `json:"dates"`
	ByDate map[string][]models.Event `json:"byDate"`
	Total  int                       `json:"total"`
}

type EventService interface {
	CreateEvent(ctx context.Context, form EventForm) (*models.Event, error)
	UpdateEvent(ctx context.Context, id string, form EventForm) (*models.Event, error)
	DeleteEvent(ctx context.Context, id string) error
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	// Calendar - month в формате YYYY-MM
	Calendar(ctx context.Context, month string, filter CalendarFilter) (*CalendarMonth, error)
}

// ///////////////////////////// участники ////////////////////////////////
type MemberForm struct {
	Name         string        `json:"name" validate:"notblank"`
	Birthdate    string        `json:"birthdate" validate:"required,ymd"`
	Phone        string        `json:"phone" validate:"phone"`
	JoinDate     string        `json:"joinDate" validate:"required,ymd"`
	Gender       models.Gender `json:"gender" validate:"oneof=male female"`
	ActivityArea string        `json:"activityArea"`
	Residence    string        `json:"residence"`
	Memo         string        `json:"memo"`

	ConfirmDuplicatePhone bool `json:"confirmDuplicatePhone"`
}

type StatusChange struct {
	Status   models.MemberStatus `json:"status" validate:"status"`
	ExitDate string              `json:"exitDate" validate:"omitempty,ymd"`
}

const (
	SortNameAsc      = "nameAsc"
	SortJoinDateDesc = "joinDateDesc"
)

type MemberFilter struct {
	Query        string
	ActivityArea string
	Residence    string
	Gender       models.Gender
	Sort         string
}

type MemberDetail struct {
	Member          *models.Member `json:"member"`
	PhoneFormatted  string         `json:"phoneFormatted"`
	StatusLabel     string         `json:"statusLabel"`
	AttendanceDates []string       `json:"attendanceDates"`
}

type MemberService interface {
	RegisterMember(ctx context.Context, form MemberForm) (*models.Member, error)
	UpdateMemberStatus(ctx context.Context, id string, change StatusChange) (*models.Member, error)
	// UpdateMember - правка анкеты; статус и счётчики не меняет
	UpdateMember(ctx context.Context, id string, form MemberForm) (*models.Member, error)
	DeleteMember(ctx context.Context, id string) error
	GetMember(ctx context.Context, id string) (*models.Member, error)
	ListMembers(ctx context.Context, filter MemberFilter) ([]*models.Member, error)
	MemberDetail(ctx context.Context, id string) (*MemberDetail, error)
}

// ///////////////////////////// посещения ////////////////////////////////
type AttendanceService interface {
	// AttendanceDates - записи посещений, а если их нет - даты встреч участника
	AttendanceDates(ctx context.Context, memberID, start, end string) ([]string, error)
	Mark(ctx context.Context, memberID, date string, eventID *string, status string) error
	Unmark(ctx context.Context, memberID, date string) error
	Seed(ctx context.Context, memberID string, dates []string) (int, error)
}
