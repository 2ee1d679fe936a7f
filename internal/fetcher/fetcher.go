package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/omnibrief/omnibrief/internal/model"
)

// ErrEmptyDownload means the fetch completed but the resulting file has no
// content. This is a fetch failure, never an extraction failure.
var ErrEmptyDownload = errors.New("downloaded file is empty")

var (
	reVideoHost = regexp.MustCompile(`^(https?://)?(www\.|m\.)?(youtube\.com|youtu\.be)/.+$`)
	reUnsafe    = regexp.MustCompile(`[^\w\s]`)
)

// Fetch downloads the resource behind rawURL into the uploads directory and
// returns the local asset, plus a suggested display name.
func (f *implFetcher) Fetch(ctx context.Context, rawURL string) (model.MediaAsset, string, error) {
	fileID := uuid.NewString()

	var (
		path     string
		mimeType string
		name     string
		err      error
	)

	if reVideoHost.MatchString(rawURL) {
		f.logger.Info(ctx, "Fetching video-host URL via yt-dlp: %s", rawURL)
		path, name, err = f.fetchVideoHost(ctx, rawURL, fileID)
		mimeType = "audio/mp3"
	} else {
		f.logger.Info(ctx, "Fetching generic URL: %s", rawURL)
		path, mimeType, name, err = f.fetchGeneric(ctx, rawURL, fileID)
	}
	if err != nil {
		return model.MediaAsset{}, "", err
	}

	// Both paths converge on a stat check; a zero-byte result is a fetch
	// failure regardless of how we got here.
	info, err := os.Stat(path)
	if err != nil {
		return model.MediaAsset{}, "", fmt.Errorf("file not found after download: %w", err)
	}
	if info.Size() == 0 {
		os.Remove(path)
		return model.MediaAsset{}, "", ErrEmptyDownload
	}

	f.logger.Info(ctx, "Downloaded %d bytes -> %s", info.Size(), path)

	return model.MediaAsset{
		Path:     path,
		MIMEType: mimeType,
		Size:     info.Size(),
	}, name, nil
}

// fetchVideoHost extracts audio from a video-hosting link. yt-dlp is invoked
// twice: once in metadata-only mode for the title, once to extract and
// transcode to mp3 at a deterministic path. Warnings on its diagnostic stream
// are tolerated; a missing output file afterwards is not.
func (f *implFetcher) fetchVideoHost(ctx context.Context, rawURL, fileID string) (string, string, error) {
	name := "youtube_" + fileID + ".mp3"

	metaOut, err := f.executor.Execute(ctx, f.cfg.YtDlp.BinaryPath,
		rawURL,
		"--dump-json",
		"--no-warnings",
		"--no-playlist",
		"--prefer-free-formats",
		"--no-check-certificate",
	)
	if err != nil {
		return "", "", fmt.Errorf("yt-dlp metadata: %w", err)
	}

	var meta struct {
		Title string `json:"title"`
	}
	if jsonErr := json.Unmarshal([]byte(strings.TrimSpace(metaOut)), &meta); jsonErr != nil {
		f.logger.Warn(ctx, "Failed to parse yt-dlp metadata, using generated name: %v", jsonErr)
	} else if meta.Title != "" {
		name = reUnsafe.ReplaceAllString(meta.Title, "") + ".mp3"
	}

	f.logger.Info(ctx, "Downloading audio for: %s", name)

	// yt-dlp picks the extension itself, so the output template is keyed by
	// the generated id and the expected result is <id>.mp3.
	outputBase := filepath.Join(f.cfg.Paths.Uploads, fileID)
	_, err = f.executor.Execute(ctx, f.cfg.YtDlp.BinaryPath,
		rawURL,
		"-x",
		"--audio-format", "mp3",
		"--no-playlist",
		"--no-check-certificate",
		"--no-warnings",
		"-o", outputBase+".%(ext)s",
	)
	if err != nil {
		return "", "", fmt.Errorf("yt-dlp download: %w", err)
	}

	return outputBase + ".mp3", name, nil
}

// fetchGeneric streams an HTTP resource to disk without buffering it.
func (f *implFetcher) fetchGeneric(ctx context.Context, rawURL, fileID string) (string, string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", "", "", fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", "", "", fmt.Errorf("fetch url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", "", "", fmt.Errorf("fetch url: unexpected status %s", resp.Status)
	}

	mimeType := "application/octet-stream"
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		mimeType = ct
	}

	name := "downloaded_file"
	if u, err := url.Parse(rawURL); err == nil {
		if last := filepath.Base(u.Path); last != "" && last != "/" && last != "." {
			name = last
		}
	}

	path := filepath.Join(f.cfg.Paths.Uploads, fileID+"_"+name)
	out, err := os.Create(path)
	if err != nil {
		return "", "", "", fmt.Errorf("create download file: %w", err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(path)
		return "", "", "", fmt.Errorf("stream download: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", "", "", fmt.Errorf("close download file: %w", err)
	}

	return path, mimeType, name, nil
}
