package mongodb

import (
	"time"

	"hamcrew-club/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memberDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Name            string             `bson:"name"`
	Birthdate       string             `bson:"birthdate"`
	Phone           string             `bson:"phone"`
	JoinDate        string             `bson:"joinDate"`
	Gender          string             `bson:"gender"`
	Status          string             `bson:"status"`
	ActivityArea    string             `bson:"activityArea"`
	Residence       string             `bson:"residence"`
	Memo            string             `bson:"memo"`
	ExitDate        *string            `bson:"exitDate"`
	AttendCount     int                `bson:"attendCount"`
	HostCount       int                `bson:"hostCount"`
	StatusUpdatedAt *time.Time         `bson:"statusUpdatedAt,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       *time.Time         `bson:"updatedAt,omitempty"`
}

func (d memberDocument) toModel() *models.Member {
	status := models.MemberStatus(d.Status)
	if status == "" {
		status = models.StatusActive
	}
	return &models.Member{
		ID:              d.ID.Hex(),
		Name:            d.Name,
		Birthdate:       d.Birthdate,
		Phone:           d.Phone,
		JoinDate:        d.JoinDate,
		Gender:          models.Gender(d.Gender),
		Status:          status,
		ActivityArea:    d.ActivityArea,
		Residence:       d.Residence,
		Memo:            d.Memo,
		ExitDate:        d.ExitDate,
		AttendCount:     d.AttendCount,
		HostCount:       d.HostCount,
		StatusUpdatedAt: d.StatusUpdatedAt,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// eventDocument - массивы читаются как RawValue: старые документы бывают кривыми
type eventDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Date           string             `bson:"date"`
	Time           string             `bson:"time"`
	Location       string             `bson:"location"`
	HostID         string             `bson:"hostId"`
	Host           string             `bson:"host"`
	AttendeesIDs   bson.RawValue      `bson:"attendeesIds"`
	AttendeesNames bson.RawValue      `bson:"attendeesNames"`
	ImageURL       string             `bson:"imageUrl"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      *time.Time         `bson:"updatedAt,omitempty"`
}

func (d eventDocument) toModel() models.Event {
	return models.Event{
		ID:             d.ID.Hex(),
		Date:           d.Date,
		Time:           d.Time,
		Location:       d.Location,
		HostID:         d.HostID,
		Host:           d.Host,
		AttendeesIDs:   stringList(d.AttendeesIDs),
		AttendeesNames: stringList(d.AttendeesNames),
		ImageURL:       d.ImageURL,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// stringList: не массив -> пустой список, не строка -> ""
func stringList(v bson.RawValue) []string {
	if v.Type != bsontype.Array {
		return []string{}
	}
	arr, ok := v.ArrayOK()
	if !ok {
		return []string{}
	}
	values, err := arr.Values()
	if err != nil {
		return []string{}
	}
	out := make([]string, 0, len(values))
	for _, item := range values {
		s, _ := item.StringValueOK()
		out = append(out, s)
	}
	return out
}

// eventFields - изменяемые поля события (set при создании и обновлении)
func eventFields(e *models.Event) bson.M {
	ids := e.AttendeesIDs
	if ids == nil {
		ids = []string{}
	}
	names := e.AttendeesNames
	if names == nil {
		names = []string{}
	}
	return bson.M{
		"date":           e.Date,
		"time":           e.Time,
		"location":       e.Location,
		"hostId":         e.HostID,
		"host":           e.Host,
		"attendeesIds":   ids,
		"attendeesNames": names,
		"imageUrl":       e.ImageURL,
	}
}

type attendanceDocument struct {
	ID        string    `bson:"_id"`
	MemberID  string    `bson:"memberId"`
	Date      string    `bson:"date"`
	EventID   *string   `bson:"eventId"`
	Status    string    `bson:"status"`
	CreatedAt time.Time `bson:"createdAt"`
}

func (d attendanceDocument) toModel() models.Attendance {
	return models.Attendance{
		ID:        d.ID,
		MemberID:  d.MemberID,
		Date:      d.Date,
		EventID:   d.EventID,
		Status:    d.Status,
		CreatedAt: d.CreatedAt,
	}
}
