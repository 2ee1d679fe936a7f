package fetcher

import (
	"context"

	"github.com/omnibrief/omnibrief/internal/model"
)

// Fetcher turns a URL into a local temporary file plus a best-guess MIME type
// and display name. Video-hosting links go through yt-dlp; everything else is
// streamed straight to disk. The caller owns the resulting file.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (model.MediaAsset, string, error)
}
