package client

import (
	"encoding/json"
	"time"
)

// Status is the client-side view of a job's lifecycle state. The wire value
// is an open string; anything we do not recognize maps to StatusUnrecognized
// so the poller keeps waiting instead of navigating away prematurely.
type Status int

const (
	StatusUnrecognized Status = iota
	StatusProcessing
	StatusCompleted
	StatusError
)

// ParseStatus maps a wire status string onto the closed enumeration.
func ParseStatus(s string) Status {
	switch s {
	case "processing":
		return StatusProcessing
	case "completed":
		return StatusCompleted
	case "error":
		return StatusError
	default:
		// Older service builds report "failed" transiently on text uploads
		// before processing starts, so it must not be treated as terminal.
		return StatusUnrecognized
	}
}

func (s Status) String() string {
	switch s {
	case StatusProcessing:
		return "processing"
	case StatusCompleted:
		return "completed"
	case StatusError:
		return "error"
	default:
		return "unrecognized"
	}
}

// Terminal reports whether no further polling should occur for this status.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// UnmarshalJSON accepts the open wire string.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseStatus(raw)
	return nil
}

// SourceKind distinguishes file and raw-text submissions.
type SourceKind string

const (
	SourceFile SourceKind = "file"
	SourceText SourceKind = "text"
)

// Job is the transient client view of a submitted unit of work. The service
// owns the job; the ID is the sole key for all status/result/download lookups.
type Job struct {
	ID        string
	Source    SourceKind
	Status    Status
	CreatedAt time.Time
}

// HistoryEntry is a read-only projection of a past job.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"created_at"`
}

// SummaryResult is the finished artifact for a completed job. The summary
// payload is loosely shaped at the boundary: every field may be absent and
// consumers must tolerate any subset being nil.
type SummaryResult struct {
	Filename string   `json:"filename"`
	Status   Status   `json:"status"`
	Summary  *Summary `json:"summary,omitempty"`
}

// Summary is the structured analysis payload.
type Summary struct {
	DocumentSummary  *string          `json:"document_summary,omitempty"`
	SectionSummaries []SectionSummary `json:"section_summaries,omitempty"`
	KeyInformation   *KeyInformation  `json:"key_information,omitempty"`
	ImageAnalysis    []ImageAnalysis  `json:"image_analysis,omitempty"`
	Conclusion       *string          `json:"conclusion,omitempty"`
}

// SectionSummary is one (title, narrative) pair, order preserved.
type SectionSummary struct {
	SectionTitle string `json:"section_title"`
	Summary      string `json:"summary"`
}

// KeyInformation holds the ordered key points and key concepts lists.
type KeyInformation struct {
	KeyPoints   []string `json:"key_points,omitempty"`
	KeyConcepts []string `json:"key_concepts,omitempty"`
}

// ImageAnalysis describes one analyzed image. Confidence is optional and in
// [0,1]; a present zero is a defined value, distinct from absent.
type ImageAnalysis struct {
	Description string   `json:"description"`
	Relevance   string   `json:"relevance"`
	Confidence  *float64 `json:"confidence,omitempty"`
}
