package models

import "time"

type Gender string

const (
	GenderUnspecified Gender = ""
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
)

type MemberStatus string

const (
	StatusActive    MemberStatus = "active"
	StatusNew       MemberStatus = "new"
	StatusInjured   MemberStatus = "injured"
	StatusWithdrawn MemberStatus = "withdrawn"
)

// StatusLabels - подписи статусов для экранов и бота
var StatusLabels = map[MemberStatus]string{
	StatusActive:    "정상",
	StatusNew:       "신규",
	StatusInjured:   "부상",
	StatusWithdrawn: "탈퇴",
}

func (s MemberStatus) Valid() bool {
	_, ok := StatusLabels[s]
	return ok
}

func (s MemberStatus) Label() string {
	if l, ok := StatusLabels[s]; ok {
		return l
	}
	return StatusLabels[StatusActive]
}

// Member - участник клуба (연명부)
type Member struct {
	ID              string       `db:"id" json:"id"`
	Name            string       `db:"name" json:"name"`
	Birthdate       string       `db:"birthdate" json:"birthdate"`
	Phone           string       `db:"phone" json:"phone"`
	JoinDate        string       `db:"join_date" json:"joinDate"`
	Gender          Gender       `db:"gender" json:"gender"`
	Status          MemberStatus `db:"status" json:"status"`
	ActivityArea    string       `db:"activity_area" json:"activityArea"`
	Residence       string       `db:"residence" json:"residence"`
	Memo            string       `db:"memo" json:"memo"`
	ExitDate        *string      `db:"exit_date" json:"exitDate"`
	AttendCount     int          `db:"attend_count" json:"attendCount"`
	HostCount       int          `db:"host_count" json:"hostCount"`
	StatusUpdatedAt *time.Time   `db:"status_updated_at" json:"statusUpdatedAt,omitempty"`
	CreatedAt       time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt       *time.Time   `db:"updated_at" json:"updatedAt,omitempty"`
}

func (m *Member) IsWithdrawn() bool {
	return m.Status == StatusWithdrawn
}

// Counter - денормализованный счётчик на документе участника
type Counter string

const (
	CounterAttend Counter = "attendCount"
	CounterHost   Counter = "hostCount"
)
