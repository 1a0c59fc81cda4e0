// Package adapters provides the repository implementations for the upload
// feature.
package adapters

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"logsearch_backend/internal/feature/upload/domain/entity"
	"logsearch_backend/internal/feature/upload/usecase"
	"logsearch_backend/internal/platform/mongodb"
)

const filesCollection = "files"

// ErrStoreUnavailable is returned when the document store has no live handle.
var ErrStoreUnavailable = errors.New("file store unavailable")

// fileMongo is the MongoDB implementation of usecase.FileRepository.
type fileMongo struct {
	db *mongodb.Client
}

var _ usecase.FileRepository = (*fileMongo)(nil)

// NewFileMongo creates a fileMongo backed by the given connection manager.
func NewFileMongo(db *mongodb.Client) *fileMongo {
	return &fileMongo{db: db}
}

// Insert stores one metadata row and returns its hex document ID.
func (r *fileMongo) Insert(ctx context.Context, meta *entity.FileMetadata) (string, error) {
	col := r.db.Collection(ctx, filesCollection)
	if col == nil {
		return "", ErrStoreUnavailable
	}
	res, err := col.InsertOne(ctx, meta)
	if err != nil {
		return "", err
	}
	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", nil
	}
	return id.Hex(), nil
}

// Count returns the number of uploaded files on record.
func (r *fileMongo) Count(ctx context.Context) (int64, error) {
	col := r.db.Collection(ctx, filesCollection)
	if col == nil {
		return 0, ErrStoreUnavailable
	}
	return col.CountDocuments(ctx, bson.D{})
}
