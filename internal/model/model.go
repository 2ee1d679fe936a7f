package model

import "time"

// Chapter is a timestamped section of a media summary.
type Chapter struct {
	Time        string `json:"time"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Speaker identifies one voice in a media file.
type Speaker struct {
	Name   string `json:"name"`
	Traits string `json:"traits"`
}

// SummaryResult is the canonical shape every AI pathway is coerced into.
// Chapters and Speakers are only populated by the multimodal media pathway.
type SummaryResult struct {
	Summary   string    `json:"summary"`
	KeyPoints []string  `json:"keyPoints"`
	Chapters  []Chapter `json:"chapters,omitempty"`
	Speakers  []Speaker `json:"speakers,omitempty"`
}

// ProcessResult is what one pipeline run produces.
type ProcessResult struct {
	SummaryResult
	FileType string `json:"fileType"` // document | audio | video | image
}

// SummaryRecord is the persisted form of a ProcessResult, owned by one user.
type SummaryRecord struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	FileName       string    `json:"fileName"`
	FileType       string    `json:"fileType"`
	FileSize       int64     `json:"fileSize"`
	Summary        string    `json:"summary"`
	KeyPoints      []string  `json:"keyPoints"`
	Chapters       []Chapter `json:"chapters,omitempty"`
	Speakers       []Speaker `json:"speakers,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	ProcessingTime int64     `json:"processingTime"` // milliseconds
}

// MediaAsset is a temporary file handed to the pipeline. The pipeline never
// deletes it; its lifetime belongs to whoever created it.
type MediaAsset struct {
	Path     string
	MIMEType string
	Size     int64
}

// ExtractionKind tags the variant carried by an Extraction.
type ExtractionKind int

const (
	KindText ExtractionKind = iota
	KindAudio
	KindImage
)

// PreparedAudio is a size-bounded audio artifact ready for inline upload.
type PreparedAudio struct {
	Path     string
	MIMEType string
	Size     int64
}

// InlineImage is a base64-encoded image payload.
type InlineImage struct {
	Base64   string
	MIMEType string
}

// Extraction is the union produced by the extractor/normalizer and consumed
// exactly once by the orchestrator. Exactly one payload field is set,
// according to Kind.
type Extraction struct {
	Kind  ExtractionKind
	Text  string
	Audio *PreparedAudio
	Image *InlineImage
}
