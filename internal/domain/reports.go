package domain

import "time"

// MaxTextChars is the largest text_content accepted by an ingestion call.
const MaxTextChars = 10_000_000

// IngestionRequest is the payload of one ingestion call.
// The caller is expected to be authenticated already.
type IngestionRequest struct {
	TextContent    string `json:"text_content" validate:"required"`
	OrganizationID string `json:"organization_id" validate:"required"`
	FileName       string `json:"file_name,omitempty"`
	DiagnosticMode bool   `json:"diagnostic_mode,omitempty"`
}

// IngestionResponse is the top-level structure returned to the caller.
// Which fields are set depends on the outcome: a committed batch, a text
// whose format could not be detected, or a diagnostic run.
type IngestionResponse struct {
	Success        bool              `json:"success"`
	DiagnosticMode bool              `json:"diagnostic_mode,omitempty"`
	Diagnostic     *DiagnosticReport `json:"diagnostic,omitempty"`
	Error          string            `json:"error,omitempty"`
	Format         Format            `json:"format,omitempty"`

	BatchID           string   `json:"batch_id,omitempty"`
	TotalParsed       int      `json:"total_parsed"`
	Inserted          int      `json:"inserted"`
	DuplicatesSkipped int      `json:"duplicates_skipped"`
	MatchedEmployees  int      `json:"matched_employees"`
	UnmatchedCodes    []string `json:"unmatched_codes"`
	ParseErrors       []string `json:"parse_errors"`
}

// UploadStatus is the terminal status of an ingestion call.
type UploadStatus string

const (
	UploadStatusCompleted           UploadStatus = "completed"
	UploadStatusCompletedWithErrors UploadStatus = "completed_with_errors"
	UploadStatusFailed              UploadStatus = "failed"
)

// UploadLog summarizes one ingestion call. It is written once and never updated.
type UploadLog struct {
	ID                string       `json:"id"`
	BatchID           string       `json:"batch_id"`
	OrganizationID    string       `json:"organization_id"`
	FileName          string       `json:"file_name"`
	Format            Format       `json:"format"`
	TotalParsed       int          `json:"total_parsed"`
	MatchedEmployees  int          `json:"matched_employees"`
	Inserted          int          `json:"inserted"`
	DuplicatesSkipped int          `json:"duplicates_skipped"`
	UnmatchedCodes    []string     `json:"unmatched_codes"`
	ParseErrors       []string     `json:"parse_errors"`
	Status            UploadStatus `json:"status"`
	CreatedAt         time.Time    `json:"created_at"`
}
