package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"logsearch_backend/internal/feature/upload/domain/entity"
)

// FileRepository abstracts persistence for upload metadata.
type FileRepository interface {
	// Insert stores the metadata row and returns its document ID.
	Insert(ctx context.Context, meta *entity.FileMetadata) (string, error)
}

// uploadUsecase ties preview parsing and metadata persistence together.
type uploadUsecase struct {
	files FileRepository
}

// NewUploadUsecase creates a new instance of uploadUsecase.
func NewUploadUsecase(files FileRepository) *uploadUsecase {
	return &uploadUsecase{files: files}
}

// Preview parses a bounded preview of the saved file based on its extension.
func (u *uploadUsecase) Preview(path, ext string, lines int) (*entity.Preview, error) {
	if lines <= 0 {
		lines = DefaultPreviewLines
	}
	switch ext {
	case "csv":
		return ParseCSVPreview(path, lines)
	case "json":
		return ParseJSONPreview(path, lines)
	default:
		return nil, fmt.Errorf("unsupported extension: %s", ext)
	}
}

// StoreMetadata writes the metadata row to the document store. Failures are
// logged and reported through the stored flag; the upload itself still
// succeeds in degraded mode.
func (u *uploadUsecase) StoreMetadata(ctx context.Context, meta *entity.FileMetadata) (string, bool) {
	id, err := u.files.Insert(ctx, meta)
	if err != nil {
		slog.Warn("file metadata not stored", "filename", meta.Filename, "error", err)
		return "", false
	}
	slog.Info("file metadata stored", "filename", meta.Filename, "file_id", id)
	return id, true
}
