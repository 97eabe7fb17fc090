package timetable

import (
	"context"
	"fmt"

	"github.com/travigo/subwayboard/pkg/ctdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSource reads timetables imported into the timetable_entries collection, one document per row
type MongoSource struct {
	Collection *mongo.Collection
}

func NewMongoSource(collection *mongo.Collection) *MongoSource {
	return &MongoSource{Collection: collection}
}

func (m *MongoSource) Name() string {
	return fmt.Sprintf("mongodb:%s", m.Collection.Name())
}

func (m *MongoSource) List(ctx context.Context) ([]SourceKey, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$source"},
			{Key: "key", Value: bson.D{{Key: "$first", Value: "$key"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := m.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("listing timetable sources: %w", err)
	}
	defer cursor.Close(ctx)

	var keys []SourceKey
	for cursor.Next(ctx) {
		var group struct {
			ID  string            `bson:"_id"`
			Key ctdf.TimetableKey `bson:"key"`
		}
		if err := cursor.Decode(&group); err != nil {
			return nil, fmt.Errorf("decoding timetable source: %w", err)
		}

		keys = append(keys, SourceKey{ID: group.ID, Key: group.Key})
	}

	return keys, cursor.Err()
}

func (m *MongoSource) Load(ctx context.Context, key SourceKey) (*Timetable, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sequence", Value: 1}})

	cursor, err := m.Collection.Find(ctx, bson.M{"source": key.ID}, opts)
	if err != nil {
		return nil, fmt.Errorf("loading timetable %s: %w", key.ID, err)
	}

	var records []Record
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decoding timetable %s: %w", key.ID, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", key.ID, ErrUnknownStation)
	}

	// Sequence is the zero based data row, the CSV line is two further on
	return NewTimetable(key.ID, key.Key, records, records[0].Sequence+2)
}
