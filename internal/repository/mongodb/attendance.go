package mongodb

import (
	"context"
	"time"

	"hamcrew-club/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type attendanceRepository struct {
	coll *mongo.Collection
}

func (r *attendanceRepository) GetByMember(ctx context.Context, memberID, start, end string) ([]models.Attendance, error) {
	filter := bson.M{"memberId": memberID}
	if start != "" && end != "" {
		filter = dateRange(filter, start, end)
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var list []models.Attendance
	for cur.Next(ctx) {
		var doc attendanceDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		list = append(list, doc.toModel())
	}
	return list, cur.Err()
}

func (r *attendanceRepository) Set(ctx context.Context, attendance *models.Attendance) error {
	filter, update := attendanceUpsert(attendance)
	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *attendanceRepository) Delete(ctx context.Context, memberID, date string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": models.AttendanceID(memberID, date)})
	return err
}

// attendanceUpsert - set с merge по id memberId_date
func attendanceUpsert(a *models.Attendance) (bson.M, bson.M) {
	a.ID = models.AttendanceID(a.MemberID, a.Date)
	a.CreatedAt = time.Now().UTC()
	return bson.M{"_id": a.ID}, bson.M{"$set": bson.M{
		"memberId":  a.MemberID,
		"date":      a.Date,
		"eventId":   a.EventID,
		"status":    a.Status,
		"createdAt": a.CreatedAt,
	}}
}
