package parser

import (
	"fmt"
	"regexp"

	"attendance-ingest/internal/domain"
)

var (
	employeeCodeHeader = regexp.MustCompile(`(?i)employee\s*code`)
	punchRecordsHeader = regexp.MustCompile(`(?i)punch\s*records`)

	summaryDateAtStart = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}\b`)
	statusToken        = regexp.MustCompile(`\b(?:P|A|NA|MIS|HD)\b`)
	clockToken         = regexp.MustCompile(`\b\d{1,2}:\d{2}\b`)
)

// DialectScore is the verdict of one named matcher.
type DialectScore struct {
	Format     domain.Format `json:"format"`
	Matcher    string        `json:"matcher"`
	Confidence float64       `json:"confidence"`
	Signals    []string      `json:"signals,omitempty"`
}

// Classification holds the chosen format and every matcher's score.
type Classification struct {
	Format domain.Format  `json:"format"`
	Scores []DialectScore `json:"scores"`
}

// dialectMatcher scores how strongly the lines look like one dialect.
type dialectMatcher struct {
	name   string
	format domain.Format
	score  func(lines []string) (float64, []string)
}

// matchers are listed in decision order. Punch headers are unambiguous, while
// a summary row needs a date, a status and a time on the same line.
var matchers = []dialectMatcher{
	{name: "punch-header", format: domain.FormatPunch, score: scorePunchHeaders},
	{name: "summary-row", format: domain.FormatSummary, score: scoreSummaryRows},
}

// Classify decides which extraction dialect applies to the normalized lines.
// The first matcher with a positive confidence wins; FormatUnknown means the
// caller should try the extractors in turn.
func Classify(lines []string) Classification {
	result := Classification{Format: domain.FormatUnknown}
	for _, m := range matchers {
		confidence, signals := m.score(lines)
		result.Scores = append(result.Scores, DialectScore{
			Format:     m.format,
			Matcher:    m.name,
			Confidence: confidence,
			Signals:    signals,
		})
		if confidence > 0 && result.Format == domain.FormatUnknown {
			result.Format = m.format
		}
	}
	return result
}

func scorePunchHeaders(lines []string) (float64, []string) {
	var codeHeaders, recordHeaders int
	for _, line := range lines {
		if employeeCodeHeader.MatchString(line) {
			codeHeaders++
		}
		if punchRecordsHeader.MatchString(line) {
			recordHeaders++
		}
	}

	var signals []string
	if codeHeaders > 0 {
		signals = append(signals, fmt.Sprintf("%d Employee Code header line(s)", codeHeaders))
	}
	if recordHeaders > 0 {
		signals = append(signals, fmt.Sprintf("%d Punch Records header line(s)", recordHeaders))
	}
	if len(signals) == 0 {
		return 0, nil
	}
	return 1, signals
}

func scoreSummaryRows(lines []string) (float64, []string) {
	if len(lines) == 0 {
		return 0, nil
	}
	matched := 0
	for _, line := range lines {
		if isSummaryRowCandidate(line) {
			matched++
		}
	}
	if matched == 0 {
		return 0, nil
	}
	ratio := float64(matched) / float64(len(lines))
	signal := fmt.Sprintf("%d of %d line(s) carry a leading date, a status and a time", matched, len(lines))
	return 0.5 + 0.5*ratio, []string{signal}
}

func isSummaryRowCandidate(line string) bool {
	return summaryDateAtStart.MatchString(line) &&
		statusToken.MatchString(line) &&
		clockToken.MatchString(line)
}
