package domain

import "time"

// Guess values of a diagnostic classification.
const (
	GuessLikelySummary = "likely_summary"
	GuessLikelyPunch   = "likely_punch"
	GuessUnknown       = "unknown"
)

// TokenCounts counts the token classes the extractors look for.
type TokenCounts struct {
	DateTokens          int `json:"date_tokens"`
	TimeTokens          int `json:"time_tokens"`
	EmployeeCodeHeaders int `json:"employee_code_headers"`
	StatusTokens        int `json:"status_tokens"`
}

// LineStats describes how fragmented the extracted text is.
// Ratios are computed over non-empty lines.
type LineStats struct {
	SingleTokenLineRatio float64 `json:"single_token_line_ratio"`
	NumericOnlyLineRatio float64 `json:"numeric_only_line_ratio"`
	TimeOnlyLineRatio    float64 `json:"time_only_line_ratio"`
	AvgLineLength        float64 `json:"avg_line_length"`
	MinLineLength        int     `json:"min_line_length"`
	MaxLineLength        int     `json:"max_line_length"`
}

// Classification is a best-effort guess of the dialect, with the signals behind it.
type Classification struct {
	Guess   string   `json:"guess"`
	Signals []string `json:"signals"`
}

// DiagnosticReport is a descriptive snapshot of a raw text, kept for triage of
// exports that could not be parsed.
type DiagnosticReport struct {
	TotalChars     int            `json:"total_chars"`
	TotalLines     int            `json:"total_lines"`
	NonEmptyLines  int            `json:"non_empty_lines"`
	FirstChars     string         `json:"first_chars"`
	LastChars      string         `json:"last_chars"`
	FirstLines     []string       `json:"first_lines"`
	TokenCounts    TokenCounts    `json:"token_counts"`
	LineStats      LineStats      `json:"line_stats"`
	Classification Classification `json:"classification"`
	GeneratedAt    time.Time      `json:"generated_at"`
}
