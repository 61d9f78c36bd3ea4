package domain

import "time"

// Format identifies which export dialect a text was parsed as.
type Format string

const (
	FormatPunch   Format = "punch"
	FormatSummary Format = "summary"
	FormatUnknown Format = "unknown"
)

// PunchDatetimeLayout is the local wall-clock layout of ParsedPunch.PunchDatetime.
const PunchDatetimeLayout = "2006-01-02T15:04:05"

// PunchSourceUpload tags rows created from an uploaded export.
const PunchSourceUpload = "upload"

// ParsedPunch is a single punch event extracted from a terminal export.
type ParsedPunch struct {
	EmployeeCode  string `json:"employee_code"`
	CardNo        string `json:"card_no,omitempty"`
	PunchDatetime string `json:"punch_datetime"`
	RawStatus     string `json:"raw_status,omitempty"`
	Name          string `json:"name,omitempty"`
}

// Time parses PunchDatetime in UTC so the wall-clock fields stay as written,
// even inside a daylight saving gap of the host zone.
func (p ParsedPunch) Time() (time.Time, error) {
	return time.ParseInLocation(PunchDatetimeLayout, p.PunchDatetime, time.UTC)
}

// ParseResult is the outcome of running the extractors over one text.
type ParseResult struct {
	Punches []ParsedPunch `json:"punches"`
	Errors  []string      `json:"errors"`
	Format  Format        `json:"format"`
}

// PunchRow is a persisted attendance punch.
// (OrganizationID, ProfileID, PunchDatetime) is unique in the store.
type PunchRow struct {
	OrganizationID string    `json:"organization_id"`
	ProfileID      string    `json:"profile_id"`
	EmployeeCode   string    `json:"employee_code"`
	CardNo         string    `json:"card_no,omitempty"`
	PunchDatetime  time.Time `json:"punch_datetime"`
	PunchSource    string    `json:"punch_source"`
	RawStatus      string    `json:"raw_status,omitempty"`
	UploadBatchID  string    `json:"upload_batch_id"`
}
