package ai

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/omnibrief/omnibrief/internal/model"
)

// maxContentChars bounds how much extracted text is sent to a
// text-generation call, to cap token cost and latency.
const maxContentChars = 15000

const textPromptTemplate = `Task: Summarize the following %s content for a busy professional.
Goal: maximize time savings.

Requirements:
1. Summary: A crystal clear, high-level overview (max 150 words).
2. Key Points: 5-7 bullet points extracting the most critical facts, numbers, or insights.
3. Output: Strict JSON format.

Content:
%s

Response Format (JSON):
{
  "summary": "Concise summary text...",
  "keyPoints": ["Insight 1", "Insight 2", ...]
}`

const mediaPromptTemplate = `Task: Provide an advanced professional analysis of this media file.

Detailed Requirements:
1. Executive Summary: A concise but comprehensive overview of the entire content (max 200 words).
2. Key Insights: 5-7 high-impact points or decisions.
3. Smart Chapters: Divide the content into logical sections with timestamps (e.g., 0:00 - Introduction).
4. Speaker Identification: If multiple people are speaking, identify them (e.g., Speaker A, Speaker B) and describe their primary role or stance.

Response Format (STRICT JSON):
{
  "summary": "...",
  "keyPoints": ["...", "..."],
  "chapters": [{"time": "0:00", "title": "Topic Name", "description": "Brief description"}],
  "speakers": [{"name": "Speaker ID", "traits": "Role/Perspective"}]
}`

const imagePromptTemplate = `Analyze this image. Output JSON: { "summary": String, "keyPoints": Array }`

const transcriptPromptTemplate = `Task: Analyze media transcript. Output JSON with summary and keyPoints.

Transcript: %s`

// Summarize selects the pathway for the extraction variant. Whatever happens
// inside, the result always satisfies the SummaryResult shape.
func (o *implOrchestrator) Summarize(ctx context.Context, ext model.Extraction, fileType string) model.SummaryResult {
	switch ext.Kind {
	case model.KindImage:
		return o.summarizeImage(ctx, ext.Image)
	case model.KindAudio:
		return o.summarizeMedia(ctx, ext.Audio)
	default:
		return o.summarizeText(ctx, ext.Text, fileType)
	}
}

// summarizeText sends truncated content to the text model, retrying once
// without the strict-JSON constraint before giving up.
func (o *implOrchestrator) summarizeText(ctx context.Context, content, fileType string) model.SummaryResult {
	o.logger.Info(ctx, "AI pathway: text (%d chars)", len(content))
	prompt := fmt.Sprintf(textPromptTemplate, fileType, truncate(content, maxContentChars))

	raw, err := o.text.Complete(ctx, prompt, true)
	if err != nil {
		o.logger.Warn(ctx, "Text summary failed in JSON mode, retrying without: %v", err)

		raw, err = o.text.Complete(ctx, prompt+"\n\nPlease output valid JSON.", false)
		if err != nil {
			o.logger.Error(ctx, "Text summary retry failed: %v", err)
			return softFailure(fmt.Sprintf("Failed to generate summary. Error: %v", err))
		}
	}

	res := parseSummary(raw)
	// The text pathway never carries media structure.
	res.Chapters = nil
	res.Speakers = nil
	return res
}

// summarizeImage sends the inline payload to the vision model. Single
// attempt: re-uploading a large image without changing anything is wasted
// spend.
func (o *implOrchestrator) summarizeImage(ctx context.Context, img *model.InlineImage) model.SummaryResult {
	o.logger.Info(ctx, "AI pathway: image (%s)", img.MIMEType)

	raw, err := o.vision.Describe(ctx, imagePromptTemplate, img.Base64, img.MIMEType)
	if err != nil {
		o.logger.Error(ctx, "Image analysis failed: %v", err)
		return softFailure(fmt.Sprintf("Failed to analyze image. Error: %v", err))
	}

	res := parseSummary(raw)
	res.Chapters = nil
	res.Speakers = nil
	return res
}

// summarizeMedia tries the multimodal provider first, then falls back to
// transcription followed by text summarization. Only the primary pathway can
// produce chapters and speakers.
func (o *implOrchestrator) summarizeMedia(ctx context.Context, audio *model.PreparedAudio) model.SummaryResult {
	if !o.media.Available() {
		o.logger.Warn(ctx, "Multimodal provider not configured, using transcription fallback")
		return o.summarizeTranscript(ctx, audio, "")
	}

	o.logger.Info(ctx, "AI pathway: multimodal media (%s, %d bytes)", audio.MIMEType, audio.Size)

	raw, err := o.media.Analyze(ctx, mediaPromptTemplate, audio.Path, audio.MIMEType)
	if err != nil {
		o.logger.Warn(ctx, "Multimodal analysis failed, falling back to transcription: %v", err)
		return o.summarizeTranscript(ctx, audio, err.Error())
	}

	return parseSummary(raw)
}

// summarizeTranscript is the fallback chain: speech-to-text, then the text
// pathway's summarization on the transcript. It never yields chapters or
// speakers. primaryErr, when set, is folded into the soft-failure message so
// the operator can tell which provider broke.
func (o *implOrchestrator) summarizeTranscript(ctx context.Context, audio *model.PreparedAudio, primaryErr string) model.SummaryResult {
	o.logger.Info(ctx, "AI pathway: transcription fallback (%s)", audio.Path)

	fail := func(err error) model.SummaryResult {
		msg := "Media analysis failed."
		if primaryErr != "" {
			msg += fmt.Sprintf("\nGemini error: %s", primaryErr)
		}
		msg += fmt.Sprintf("\nGroq error: %v", err)
		return softFailure(msg)
	}

	transcript, err := o.transcriber.Transcribe(ctx, audio.Path)
	if err != nil {
		o.logger.Error(ctx, "Transcription failed: %v", err)
		return fail(err)
	}

	prompt := fmt.Sprintf(transcriptPromptTemplate, truncate(transcript, maxContentChars))
	raw, err := o.text.Complete(ctx, prompt, true)
	if err != nil {
		o.logger.Error(ctx, "Transcript summary failed: %v", err)
		return fail(err)
	}

	res := parseSummary(raw)
	res.Chapters = nil
	res.Speakers = nil
	return res
}

func softFailure(msg string) model.SummaryResult {
	return model.SummaryResult{
		Summary:   msg,
		KeyPoints: []string{},
	}
}

// truncate cuts s to at most max bytes without splitting a UTF-8 rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
