package models

// AnonymousName - подпись для участника без известного имени
const AnonymousName = "(무명)"

type RankEntry struct {
	MemberID string `json:"memberId"`
	Name     string `json:"name"`
	Count    int    `json:"count"`
}

type MaxEventEntry struct {
	EventID   string `json:"eventId"`
	HostID    string `json:"hostId"`
	HostName  string `json:"hostName"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Location  string `json:"location"`
	Attendees int    `json:"attendees"`
}

type MaxAttendance struct {
	Size   int             `json:"size"`
	Events []MaxEventEntry `json:"events"`
}

// AwardReport - итоги награждения за период
type AwardReport struct {
	Start      string        `json:"start"`
	End        string        `json:"end"`
	EventCount int           `json:"eventCount"`
	AttendRank []RankEntry   `json:"attendRank"`
	HostRank   []RankEntry   `json:"hostRank"`
	MaxEvent   MaxAttendance `json:"maxEvent"`
}
