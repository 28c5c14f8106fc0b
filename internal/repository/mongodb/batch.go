package mongodb

import (
	"context"
	"fmt"
	"time"

	"hamcrew-club/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type batchOp func(ctx mongo.SessionContext) error

// batch выполняет все записи в одной транзакции (нужен replica set)
type batch struct {
	client *mongo.Client
	db     *mongo.Database
	ops    []batchOp
	err    error
}

func (b *batch) CreateEvent(event *models.Event) {
	oid := primitive.NewObjectID()
	event.ID = oid.Hex()
	b.ops = append(b.ops, func(ctx mongo.SessionContext) error {
		event.CreatedAt = time.Now().UTC()
		doc := eventFields(event)
		doc["_id"] = oid
		doc["createdAt"] = event.CreatedAt
		_, err := b.db.Collection(eventsCollection).InsertOne(ctx, doc)
		return err
	})
}

func (b *batch) IncrementCounter(memberID string, counter models.Counter, delta int) {
	if counter != models.CounterAttend && counter != models.CounterHost {
		b.err = fmt.Errorf("unknown counter %q", counter)
		return
	}
	oid, err := primitive.ObjectIDFromHex(memberID)
	if err != nil {
		b.err = fmt.Errorf("invalid member id %q: %w", memberID, err)
		return
	}
	b.ops = append(b.ops, func(ctx mongo.SessionContext) error {
		_, err := b.db.Collection(membersCollection).UpdateOne(
			ctx,
			bson.M{"_id": oid},
			bson.M{"$inc": bson.M{string(counter): delta}},
			options.Update().SetUpsert(true),
		)
		return err
	})
}

func (b *batch) SetAttendance(attendance *models.Attendance) {
	b.ops = append(b.ops, func(ctx mongo.SessionContext) error {
		filter, update := attendanceUpsert(attendance)
		_, err := b.db.Collection(attendancesCollection).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
		return err
	})
}

func (b *batch) Commit(ctx context.Context) error {
	if b.err != nil {
		return b.err
	}

	session, err := b.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		for _, op := range b.ops {
			if err := op(sessCtx); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}
