package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/omnibrief/omnibrief/internal/model"
)

// ErrUnsupportedType means the declared MIME type matches none of the
// document, audio, video, or image families.
var ErrUnsupportedType = errors.New("unsupported file type")

// Process runs one pipeline invocation over the asset.
func (p *implPipeline) Process(ctx context.Context, asset model.MediaAsset) (model.ProcessResult, error) {
	fileType := classify(asset.MIMEType)
	if fileType == "" {
		return model.ProcessResult{}, fmt.Errorf("%w: %s", ErrUnsupportedType, asset.MIMEType)
	}

	p.logger.Info(ctx, "Processing %s as %s (%d bytes)", asset.Path, fileType, asset.Size)

	// Any transcoded artifact belongs to this invocation and is removed on
	// every exit path, success or failure.
	var tempPath string
	defer func() {
		if tempPath != "" {
			p.cleanupTempFile(ctx, tempPath)
		}
	}()

	var ext model.Extraction

	switch fileType {
	case "audio", "video":
		prepared := &model.PreparedAudio{
			Path:     asset.Path,
			MIMEType: asset.MIMEType,
			Size:     asset.Size,
		}

		if p.normalizer.NeedsNormalization(asset.MIMEType, asset.Size) {
			p.logger.Info(ctx, "Media requires optimization (%d bytes)", asset.Size)
			tempPath = filepath.Join(p.cfg.Paths.Uploads, uuid.NewString()+"_compressed.mp3")

			out, err := p.normalizer.Normalize(ctx, asset.Path, tempPath)
			if err != nil {
				return model.ProcessResult{}, fmt.Errorf("normalize media: %w", err)
			}
			prepared = &out
		}

		ext = model.Extraction{Kind: model.KindAudio, Audio: prepared}

	default: // document, image
		var err error
		ext, err = p.extractor.Extract(ctx, asset.Path, asset.MIMEType)
		if err != nil {
			return model.ProcessResult{}, err
		}
	}

	summary := p.orchestrator.Summarize(ctx, ext, fileType)

	return model.ProcessResult{
		SummaryResult: summary,
		FileType:      fileType,
	}, nil
}

// classify maps a declared MIME type to one of the four file families.
// Empty means unsupported. Text-like application types count as documents so
// logs, configs and unknown office formats get one extraction attempt.
func classify(mimeType string) string {
	mt, _, _ := strings.Cut(strings.ToLower(mimeType), ";")
	mt = strings.TrimSpace(mt)

	switch {
	case strings.HasPrefix(mt, "image/"):
		return "image"
	case strings.HasPrefix(mt, "audio/"):
		return "audio"
	case strings.HasPrefix(mt, "video/"):
		return "video"
	case strings.HasPrefix(mt, "text/"),
		strings.HasPrefix(mt, "application/"),
		strings.Contains(mt, "json"),
		strings.Contains(mt, "xml"):
		return "document"
	default:
		return ""
	}
}

// cleanupTempFile removes a temporary file, logs warning if fails
func (p *implPipeline) cleanupTempFile(ctx context.Context, filePath string) {
	if err := os.Remove(filePath); err != nil {
		if !os.IsNotExist(err) {
			p.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", filePath, err)
		}
		return
	}
	p.logger.Debug(ctx, "Cleaned up temp file: %s", filePath)
}
