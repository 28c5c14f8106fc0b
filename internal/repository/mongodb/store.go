package mongodb

import (
	"context"

	"hamcrew-club/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	membersCollection     = "members"
	eventsCollection      = "events"
	attendancesCollection = "attendances"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewStore(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{client: client, db: db}
}

// EnsureIndexes создаёт индексы под запросы календаря, наград и карточки участника
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(eventsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}}},
		{Keys: bson.D{{Key: "attendeesIds", Value: 1}, {Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "hostId", Value: 1}, {Key: "date", Value: 1}}},
	})
	if err != nil {
		return err
	}
	_, err = s.db.Collection(attendancesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "memberId", Value: 1}, {Key: "date", Value: 1}},
	})
	if err != nil {
		return err
	}
	_, err = s.db.Collection(membersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "phone", Value: 1}},
		Options: options.Index().SetSparse(true),
	})
	return err
}

func (s *Store) Members() repository.MemberRepository {
	return &memberRepository{coll: s.db.Collection(membersCollection)}
}

func (s *Store) Events() repository.EventRepository {
	return &eventRepository{coll: s.db.Collection(eventsCollection)}
}

func (s *Store) Attendances() repository.AttendanceRepository {
	return &attendanceRepository{coll: s.db.Collection(attendancesCollection)}
}

func (s *Store) NewBatch() repository.Batch {
	return &batch{client: s.client, db: s.db}
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// dateRange - фильтр date >= start AND date <= end; пустые границы опускаются
func dateRange(filter bson.M, start, end string) bson.M {
	cond := bson.M{}
	if start != "" {
		cond["$gte"] = start
	}
	if end != "" {
		cond["$lte"] = end
	}
	if len(cond) > 0 {
		filter["date"] = cond
	}
	return filter
}
