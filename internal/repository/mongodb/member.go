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

type memberRepository struct {
	coll *mongo.Collection
}

func (r *memberRepository) Create(ctx context.Context, member *models.Member) error {
	member.CreatedAt = time.Now().UTC()
	doc := memberDocument{
		Name:            member.Name,
		Birthdate:       member.Birthdate,
		Phone:           member.Phone,
		JoinDate:        member.JoinDate,
		Gender:          string(member.Gender),
		Status:          string(member.Status),
		ActivityArea:    member.ActivityArea,
		Residence:       member.Residence,
		Memo:            member.Memo,
		ExitDate:        member.ExitDate,
		AttendCount:     member.AttendCount,
		HostCount:       member.HostCount,
		StatusUpdatedAt: member.StatusUpdatedAt,
		CreatedAt:       member.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert member: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		member.ID = oid.Hex()
	}
	return nil
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (*models.Member, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	var doc memberDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc.toModel(), nil
}

func (r *memberRepository) GetAll(ctx context.Context) ([]*models.Member, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.M{}, opts)
}

func (r *memberRepository) FindByPhone(ctx context.Context, phone string) ([]*models.Member, error) {
	return r.find(ctx, bson.M{"phone": phone})
}

func (r *memberRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*models.Member, error) {
	cur, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var members []*models.Member
	for cur.Next(ctx) {
		var doc memberDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		members = append(members, doc.toModel())
	}
	return members, cur.Err()
}

func (r *memberRepository) Update(ctx context.Context, member *models.Member) error {
	oid, err := primitive.ObjectIDFromHex(member.ID)
	if err != nil {
		return repository.ErrNotFound
	}

	now := time.Now().UTC()
	set := bson.M{
		"name":         member.Name,
		"birthdate":    member.Birthdate,
		"phone":        member.Phone,
		"joinDate":     member.JoinDate,
		"gender":       string(member.Gender),
		"status":       string(member.Status),
		"activityArea": member.ActivityArea,
		"residence":    member.Residence,
		"memo":         member.Memo,
		"exitDate":     member.ExitDate,
		"updatedAt":    now,
	}
	if member.StatusUpdatedAt != nil {
		set["statusUpdatedAt"] = *member.StatusUpdatedAt
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc memberDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("update member %s: %w", member.ID, err)
	}

	member.AttendCount = doc.AttendCount
	member.HostCount = doc.HostCount
	member.UpdatedAt = &now
	return nil
}

func (r *memberRepository) Delete(ctx context.Context, id string) error {
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
