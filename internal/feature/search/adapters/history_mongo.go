package adapters

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"logsearch_backend/internal/feature/search/domain/entity"
	"logsearch_backend/internal/feature/search/usecase"
	"logsearch_backend/internal/platform/mongodb"
)

const historyCollection = "search_history"

// historyMongo is the MongoDB implementation of usecase.HistoryRepository.
type historyMongo struct {
	db *mongodb.Client
}

var _ usecase.HistoryRepository = (*historyMongo)(nil)

// NewHistoryMongo creates a historyMongo backed by the given connection
// manager.
func NewHistoryMongo(db *mongodb.Client) *historyMongo {
	return &historyMongo{db: db}
}

// Append inserts one history row. Rows are never updated or deleted.
func (r *historyMongo) Append(ctx context.Context, e *entity.HistoryEntry) error {
	col := r.db.Collection(ctx, historyCollection)
	if col == nil {
		return usecase.ErrHistoryUnavailable
	}
	_, err := col.InsertOne(ctx, e)
	return err
}

// List returns history rows newest first, with the document ID stripped.
func (r *historyMongo) List(ctx context.Context, limit, skip int) ([]map[string]any, error) {
	col := r.db.Collection(ctx, historyCollection)
	if col == nil {
		return nil, usecase.ErrHistoryUnavailable
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(skip)).
		SetProjection(bson.D{{Key: "_id", Value: 0}})

	cur, err := col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	entries := []map[string]any{}
	for cur.Next(ctx) {
		var row map[string]any
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		entries = append(entries, row)
	}
	return entries, cur.Err()
}

// Count returns the number of recorded searches.
func (r *historyMongo) Count(ctx context.Context) (int64, error) {
	col := r.db.Collection(ctx, historyCollection)
	if col == nil {
		return 0, usecase.ErrHistoryUnavailable
	}
	return col.CountDocuments(ctx, bson.D{})
}
