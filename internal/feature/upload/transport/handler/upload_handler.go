// Package handler provides the HTTP handlers for the upload feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"logsearch_backend/internal/api"
	"logsearch_backend/internal/config"
	"logsearch_backend/internal/feature/upload/domain/entity"
	"logsearch_backend/internal/feature/upload/usecase"
)

// UploadUsecase defines the upload operations used by the handler.
type UploadUsecase interface {
	// Preview parses a bounded preview of the saved file.
	Preview(path, ext string, lines int) (*entity.Preview, error)
	// StoreMetadata persists the metadata row, reporting degraded storage
	// through the bool.
	StoreMetadata(ctx context.Context, meta *entity.FileMetadata) (string, bool)
}

// UploadHandler processes CSV/JSON file uploads.
type UploadHandler struct {
	uc  UploadUsecase
	cfg config.Config
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uc UploadUsecase, cfg config.Config) *UploadHandler {
	return &UploadHandler{uc: uc, cfg: cfg}
}

// Page renders the upload form.
func (h *UploadHandler) Page(c *gin.Context) {
	c.HTML(http.StatusOK, "upload.html", gin.H{})
}

// Upload validates, persists and previews one uploaded file.
//
// Responses: 400 on missing/empty/disallowed file or a parse failure (the
// saved file is removed on parse failure), 200 with metadata and preview on
// success. A metadata-store outage is reported via mongodb_stored=false, not
// as a request failure.
func (h *UploadHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxContentLength)

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "no file provided"})
		return
	}
	if file.Filename == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "no file selected"})
		return
	}
	if !usecase.AllowedFile(file.Filename, h.cfg.AllowedExtensions) {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "file format not allowed, only CSV and JSON are accepted"})
		return
	}

	filename := usecase.SecureFilename(file.Filename)
	if filename == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid filename"})
		return
	}
	dest := filepath.Join(h.cfg.UploadFolder, filename)

	if err := c.SaveUploadedFile(file, dest); err != nil {
		slog.Error("upload save failed", "filename", filename, "error", err)
		c.JSON(http.StatusInternalServerError, api.FailureResponse{Success: false, Error: "failed to save file"})
		return
	}

	ext := usecase.Extension(filename)
	preview, err := h.uc.Preview(dest, ext, usecase.DefaultPreviewLines)
	if err != nil {
		// A file that cannot be parsed is rolled back entirely.
		if rmErr := os.Remove(dest); rmErr != nil {
			slog.Warn("failed to remove rejected upload", "path", dest, "error", rmErr)
		}
		c.JSON(http.StatusBadRequest, api.FailureResponse{Success: false, Error: err.Error()})
		return
	}

	size := file.Size
	if info, err := os.Stat(dest); err == nil {
		size = info.Size()
	}

	meta := &entity.FileMetadata{
		Filename:         filename,
		OriginalFilename: file.Filename,
		Size:             size,
		Type:             ext,
		UploadDate:       time.Now().UTC(),
		Filepath:         dest,
		Status:           "uploaded",
	}
	fileID, stored := h.uc.StoreMetadata(c.Request.Context(), meta)

	c.JSON(http.StatusOK, api.UploadResponse{
		Success:       true,
		Message:       "file " + filename + " uploaded successfully",
		Filename:      filename,
		Size:          size,
		Type:          ext,
		UploadDate:    meta.UploadDate.Format(time.RFC3339),
		MongoDBStored: stored,
		FileID:        fileID,
		Preview:       preview.Rows,
		Headers:       preview.Headers,
	})
}
