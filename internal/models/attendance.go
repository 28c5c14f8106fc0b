package models

import "time"

const AttendancePresent = "present"

// Attendance - отдельная запись посещения (устаревший источник, см. events)
type Attendance struct {
	ID        string    `db:"id" json:"id"`
	MemberID  string    `db:"member_id" json:"memberId"`
	Date      string    `db:"date" json:"date"`
	EventID   *string   `db:"event_id" json:"eventId"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// AttendanceID - идентификатор документа вида memberId_date
func AttendanceID(memberID, date string) string {
	return memberID + "_" + date
}
