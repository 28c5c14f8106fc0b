package models

import "time"

// Event - встреча (벙) в календаре клуба
type Event struct {
	ID             string     `db:"id" json:"id"`
	Date           string     `db:"date" json:"date"` // YYYY-MM-DD
	Time           string     `db:"time" json:"time"` // HH:MM
	Location       string     `db:"location" json:"location"`
	HostID         string     `db:"host_id" json:"hostId"`
	Host           string     `db:"host" json:"host"`
	AttendeesIDs   []string   `db:"attendees_ids" json:"attendeesIds"`
	AttendeesNames []string   `db:"attendees_names" json:"attendeesNames"`
	ImageURL       string     `db:"image_url" json:"imageUrl,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt      *time.Time `db:"updated_at" json:"updatedAt,omitempty"`
}

// AttendeeName возвращает снимок имени для i-го участника или ""
func (e *Event) AttendeeName(i int) string {
	if i < 0 || i >= len(e.AttendeesNames) {
		return ""
	}
	return e.AttendeesNames[i]
}

func (e *Event) HasAttendee(memberID string) bool {
	for _, id := range e.AttendeesIDs {
		if id == memberID {
			return true
		}
	}
	return false
}
