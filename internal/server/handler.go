package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/omnibrief/omnibrief/internal/export"
	"github.com/omnibrief/omnibrief/internal/extractor"
	"github.com/omnibrief/omnibrief/internal/fetcher"
	"github.com/omnibrief/omnibrief/internal/model"
	"github.com/omnibrief/omnibrief/internal/normalizer"
	"github.com/omnibrief/omnibrief/internal/pipeline"
)

// handleUpload accepts a multipart file, runs the pipeline on it, and
// persists the resulting record for the authenticated user.
func (s *Server) handleUpload(c *gin.Context) {
	startTime := time.Now()
	userID := c.GetString("userID")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No file uploaded"})
		return
	}

	ext := filepath.Ext(fileHeader.Filename)
	tempPath := filepath.Join(s.cfg.Paths.Uploads, uuid.NewString()+ext)
	if err := c.SaveUploadedFile(fileHeader, tempPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save upload"})
		return
	}
	defer s.removeFile(c, tempPath)

	asset := model.MediaAsset{
		Path:     tempPath,
		MIMEType: fileHeader.Header.Get("Content-Type"),
		Size:     fileHeader.Size,
	}

	s.processAndRespond(c, asset, fileHeader.Filename, userID, startTime)
}

// handleProcessURL downloads the resource behind a URL and runs the same
// pipeline over the result.
func (s *Server) handleProcessURL(c *gin.Context) {
	startTime := time.Now()
	userID := c.GetString("userID")

	var req struct {
		URL string `json:"url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No URL provided"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.Server.ProcessTimeout)
	defer cancel()

	asset, name, err := s.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		s.logger.Error(ctx, "URL fetch failed: %v", err)
		c.JSON(statusFor(err), gin.H{"success": false, "error": err.Error()})
		return
	}
	defer s.removeFile(c, asset.Path)

	s.processAndRespond(c, asset, name, userID, startTime)
}

// processAndRespond runs the pipeline under the configured deadline, stores
// the record, and writes the HTTP response. Soft AI failures still arrive
// here as a valid result and are persisted like any other.
func (s *Server) processAndRespond(c *gin.Context, asset model.MediaAsset, fileName, userID string, startTime time.Time) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.Server.ProcessTimeout)
	defer cancel()

	result, err := s.pipeline.Process(ctx, asset)
	if err != nil {
		s.logger.Error(ctx, "Processing failed for %s: %v", fileName, err)
		c.JSON(statusFor(err), gin.H{"success": false, "error": err.Error()})
		return
	}

	rec := model.SummaryRecord{
		ID:             uuid.NewString(),
		UserID:         userID,
		FileName:       fileName,
		FileType:       result.FileType,
		FileSize:       asset.Size,
		Summary:        result.Summary,
		KeyPoints:      result.KeyPoints,
		Chapters:       result.Chapters,
		Speakers:       result.Speakers,
		CreatedAt:      time.Now().UTC(),
		ProcessingTime: time.Since(startTime).Milliseconds(),
	}

	if err := s.store.Append(c.Request.Context(), rec); err != nil {
		s.logger.Error(ctx, "Failed to persist summary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save summary"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "summary": rec})
}

func (s *Server) handleHistory(c *gin.Context) {
	userID := c.GetString("userID")

	records, err := s.store.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "summaries": records})
}

func (s *Server) handleHistoryGet(c *gin.Context) {
	userID := c.GetString("userID")

	rec, found, err := s.store.GetByOwner(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch summary"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Summary not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "summary": rec})
}

func (s *Server) handleHistoryDelete(c *gin.Context) {
	userID := c.GetString("userID")

	deleted, err := s.store.DeleteByOwner(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete summary"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Summary not found or unauthorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// handleHistoryExport renders the record as a docx attachment.
func (s *Server) handleHistoryExport(c *gin.Context) {
	userID := c.GetString("userID")

	rec, found, err := s.store.GetByOwner(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch summary"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Summary not found"})
		return
	}

	tempPath := filepath.Join(s.cfg.Paths.Uploads, uuid.NewString()+".docx")
	if err := export.WriteDocx(rec, tempPath); err != nil {
		s.logger.Error(c.Request.Context(), "Docx export failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to export summary"})
		return
	}
	defer s.removeFile(c, tempPath)

	name := strings.TrimSuffix(rec.FileName, filepath.Ext(rec.FileName)) + "_summary.docx"
	c.FileAttachment(tempPath, name)
}

func (s *Server) removeFile(c *gin.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn(c.Request.Context(), "Failed to remove temp file %s: %v", path, err)
	}
}

// statusFor maps hard pipeline failures to HTTP statuses: user-correctable
// input problems are 4xx, deadline overruns are 504, the rest are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, pipeline.ErrUnsupportedType),
		errors.Is(err, extractor.ErrWeakSignal),
		errors.Is(err, normalizer.ErrTooLarge),
		errors.Is(err, normalizer.ErrEmptyOutput),
		errors.Is(err, fetcher.ErrEmptyDownload):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
