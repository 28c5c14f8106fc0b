package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hamcrew-club/internal/models"
	"hamcrew-club/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var byDateTime = bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}}

type eventRepository struct {
	coll *mongo.Collection
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	var doc eventDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	event := doc.toModel()
	return &event, nil
}

func (r *eventRepository) GetByDateRange(ctx context.Context, start, end string) ([]models.Event, error) {
	return r.find(ctx, dateRange(bson.M{}, start, end))
}

func (r *eventRepository) GetByAttendee(ctx context.Context, memberID, start, end string) ([]models.Event, error) {
	// равенство по массиву = array-contains
	return r.find(ctx, dateRange(bson.M{"attendeesIds": memberID}, start, end))
}

func (r *eventRepository) GetByHost(ctx context.Context, hostID, start, end string) ([]models.Event, error) {
	return r.find(ctx, dateRange(bson.M{"hostId": hostID}, start, end))
}

func (r *eventRepository) find(ctx context.Context, filter bson.M) ([]models.Event, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(byDateTime))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	events := []models.Event{}
	for cur.Next(ctx) {
		var doc eventDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		events = append(events, doc.toModel())
	}
	return events, cur.Err()
}

func (r *eventRepository) Update(ctx context.Context, event *models.Event) error {
	oid, err := primitive.ObjectIDFromHex(event.ID)
	if err != nil {
		return repository.ErrNotFound
	}

	now := time.Now().UTC()
	set := eventFields(event)
	set["updatedAt"] = now

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update event %s: %w", event.ID, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	event.UpdatedAt = &now
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
