package normalizer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/omnibrief/omnibrief/internal/model"
)

// MaxInlineAudioBytes is the safe inline-payload limit for the multimodal
// provider. Audio over this size must be transcoded; output over this size
// cannot be processed at all.
const MaxInlineAudioBytes = 18 * 1024 * 1024

// minOutputBytes guards against a degenerate transcode (no audio stream,
// broken container) that produced a near-empty file.
const minOutputBytes = 100

var (
	// ErrEmptyOutput means the transcode ran but produced no usable audio.
	ErrEmptyOutput = errors.New("audio extraction failed (output file empty)")

	// ErrTooLarge means the audio exceeds the inline ceiling even at the
	// lowest usable bitrate. At 32 kbps that is roughly 90 minutes.
	ErrTooLarge = errors.New("file is too large even after compression; max audio duration is approx 90 minutes")
)

// NeedsNormalization reports whether the input requires transcoding.
func (n *implNormalizer) NeedsNormalization(mimeType string, size int64) bool {
	if strings.HasPrefix(mimeType, "video/") {
		return true
	}
	return strings.HasPrefix(mimeType, "audio/") && size > MaxInlineAudioBytes
}

// Normalize runs a single-pass audio-only transcode to mono 16 kHz 32 kbps
// MP3 with speech-band filtering, then verifies the output against both
// size gates.
func (n *implNormalizer) Normalize(ctx context.Context, inputPath, outputPath string) (model.PreparedAudio, error) {
	n.logger.Info(ctx, "Starting audio enhancement & compression: %s -> %s", inputPath, outputPath)

	// FFmpeg arguments:
	// -vn: drop any video stream
	// afftdn: noise reduction
	// highpass/lowpass: keep human speech band (approx 80Hz - 8kHz)
	// loudnorm: normalize loudness for consistent volume
	// 32 kbps mono at 16kHz keeps 90 minutes of clear speech under 18MB
	args := []string{
		"-i", inputPath,
		"-vn",
		"-af", "afftdn=nf=-25,highpass=f=80,lowpass=f=8000,loudnorm",
		"-ar", "16000",
		"-ac", "1",
		"-b:a", "32k",
		"-f", "mp3",
		"-y",
		outputPath,
	}

	if _, err := n.executor.Execute(ctx, n.cfg.FFmpeg.BinaryPath, args...); err != nil {
		return model.PreparedAudio{}, fmt.Errorf("ffmpeg transcode: %w", err)
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		return model.PreparedAudio{}, fmt.Errorf("stat transcoded audio: %w", err)
	}

	n.logger.Info(ctx, "Compression complete: %d bytes", info.Size())

	if info.Size() < minOutputBytes {
		return model.PreparedAudio{}, ErrEmptyOutput
	}
	if info.Size() > MaxInlineAudioBytes {
		return model.PreparedAudio{}, ErrTooLarge
	}

	return model.PreparedAudio{
		Path:     outputPath,
		MIMEType: "audio/mp3",
		Size:     info.Size(),
	}, nil
}
