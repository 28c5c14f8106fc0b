package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func decodeEvent(t *testing.T, doc bson.M) eventDocument {
	t.Helper()
	raw, err := bson.Marshal(doc)
	require.NoError(t, err)
	var ev eventDocument
	require.NoError(t, bson.Unmarshal(raw, &ev))
	return ev
}

func TestEventDocument_WellFormed(t *testing.T) {
	oid := primitive.NewObjectID()
	ev := decodeEvent(t, bson.M{
		"_id":            oid,
		"date":           "2025-01-01",
		"time":           "19:00",
		"hostId":         "m1",
		"host":           "김철수",
		"attendeesIds":   bson.A{"m1", "m2"},
		"attendeesNames": bson.A{"김철수", "이영희"},
	}).toModel()

	assert.Equal(t, oid.Hex(), ev.ID)
	assert.Equal(t, []string{"m1", "m2"}, ev.AttendeesIDs)
	assert.Equal(t, []string{"김철수", "이영희"}, ev.AttendeesNames)
}

func TestEventDocument_MalformedArraysBecomeEmpty(t *testing.T) {
	ev := decodeEvent(t, bson.M{
		"date":           "2025-01-01",
		"attendeesIds":   "m1,m2",
		"attendeesNames": int32(3),
	}).toModel()

	assert.NotNil(t, ev.AttendeesIDs)
	assert.Empty(t, ev.AttendeesIDs)
	assert.Empty(t, ev.AttendeesNames)
}

func TestEventDocument_MissingArraysBecomeEmpty(t *testing.T) {
	ev := decodeEvent(t, bson.M{"date": "2025-01-01"}).toModel()
	assert.Empty(t, ev.AttendeesIDs)
	assert.Empty(t, ev.AttendeesNames)
}

func TestEventDocument_NonStringElements(t *testing.T) {
	ev := decodeEvent(t, bson.M{
		"attendeesIds":   bson.A{"m1", int32(7), nil},
		"attendeesNames": bson.A{"김철수"},
	}).toModel()

	assert.Equal(t, []string{"m1", "", ""}, ev.AttendeesIDs)
	assert.Equal(t, []string{"김철수"}, ev.AttendeesNames)
}

func TestMemberDocument_DefaultsStatus(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"_id": primitive.NewObjectID(), "name": "박민수", "exitDate": nil})
	require.NoError(t, err)
	var doc memberDocument
	require.NoError(t, bson.Unmarshal(raw, &doc))

	m := doc.toModel()
	assert.Equal(t, "박민수", m.Name)
	assert.Equal(t, "active", string(m.Status))
	assert.Nil(t, m.ExitDate)
}

func TestDateRange(t *testing.T) {
	f := dateRange(bson.M{"hostId": "m1"}, "2025-01-01", "2025-01-31")
	assert.Equal(t, bson.M{"hostId": "m1", "date": bson.M{"$gte": "2025-01-01", "$lte": "2025-01-31"}}, f)

	f = dateRange(bson.M{}, "", "")
	assert.Equal(t, bson.M{}, f)
}
