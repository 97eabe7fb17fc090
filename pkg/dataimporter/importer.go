package dataimporter

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/travigo/subwayboard/pkg/timetable"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Importer copies every timetable from a source into the timetable_entries collection,
// replacing any rows previously imported for the same source ID
type Importer struct {
	Collection *mongo.Collection
}

type ImportResult struct {
	Sources int
	Rows    int
	Failed  []string
}

func (i *Importer) Import(ctx context.Context, source timetable.Source) (*ImportResult, error) {
	keys, err := source.List(ctx)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}

	for _, key := range keys {
		loaded, err := source.Load(ctx, key)
		if err != nil {
			log.Error().Err(err).Str("id", key.ID).Msg("Skipping timetable")
			result.Failed = append(result.Failed, key.ID)
			continue
		}

		if err := i.write(ctx, key, loaded); err != nil {
			return result, err
		}

		result.Sources++
		result.Rows += len(loaded.Rows)
	}

	return result, nil
}

func (i *Importer) write(ctx context.Context, key timetable.SourceKey, loaded *timetable.Timetable) error {
	operations := []mongo.WriteModel{
		mongo.NewDeleteManyModel().SetFilter(bson.M{"source": key.ID}),
	}

	for _, document := range Documents(key, loaded) {
		operations = append(operations, mongo.NewInsertOneModel().SetDocument(document))
	}

	log.Info().Str("id", key.ID).Int("Length", len(operations)-1).Msg("Bulk write")

	_, err := i.Collection.BulkWrite(ctx, operations, options.BulkWrite().SetOrdered(true))
	if err != nil {
		return fmt.Errorf("writing timetable %s: %w", key.ID, err)
	}

	return nil
}

// Documents converts a parsed timetable back into one record per row, in source order
func Documents(key timetable.SourceKey, loaded *timetable.Timetable) []timetable.Record {
	documents := make([]timetable.Record, 0, len(loaded.Rows))

	for sequence, row := range loaded.Rows {
		documents = append(documents, timetable.Record{
			Line:        row.Key.Line,
			Station:     row.Key.Station,
			Direction:   row.Key.Direction,
			DayType:     string(row.DayType),
			Time:        row.Entry.Time.String(),
			Destination: row.Entry.Destination,
			Remark:      row.Entry.Remark,
			Source:      key.ID,
			Key:         key.Key,
			Sequence:    sequence,
		})
	}

	return documents
}
