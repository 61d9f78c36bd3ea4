// Package diagnostic describes raw export text that the parser could not
// handle, so an operator can tell why an upload produced nothing.
package diagnostic

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"attendance-ingest/internal/domain"
	"attendance-ingest/internal/parser"
)

const (
	excerptChars   = 500
	firstLineCount = 20

	summaryMinDates   = 20
	summaryMinTimes   = 40
	punchMinHeaders   = 5
	punchMinTimes     = 20
	fragmentedRatio   = 0.5
	numericOnlyRatio  = 0.3
	timeOnlyRatioWarn = 0.25
)

var (
	dateToken   = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`)
	timeToken   = regexp.MustCompile(`\b\d{1,2}:\d{2}\b`)
	codeHeader  = regexp.MustCompile(`(?i)employee\s*code`)
	statusToken = regexp.MustCompile(`\b(?:P|A|NA|MIS|HD)\b`)
	numericOnly = regexp.MustCompile(`^\d+(?:[.,]\d+)?$`)
	timeOnly    = regexp.MustCompile(`^\d{1,2}:\d{2}(?::\d{2})?$`)
	lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

var now = time.Now

// Analyze computes token counts, fragmentation metrics and a classification
// guess over the whole text. The result never influences parsing.
func Analyze(text string) domain.DiagnosticReport {
	lines := parser.NormalizeLines(text)

	report := domain.DiagnosticReport{
		TotalChars:    utf8.RuneCountInString(text),
		TotalLines:    len(strings.Split(lineEndings.Replace(text), "\n")),
		NonEmptyLines: len(lines),
		FirstChars:    firstRunes(text, excerptChars),
		LastChars:     lastRunes(text, excerptChars),
		FirstLines:    head(lines, firstLineCount),
		TokenCounts: domain.TokenCounts{
			DateTokens:          len(dateToken.FindAllStringIndex(text, -1)),
			TimeTokens:          len(timeToken.FindAllStringIndex(text, -1)),
			EmployeeCodeHeaders: len(codeHeader.FindAllStringIndex(text, -1)),
			StatusTokens:        len(statusToken.FindAllStringIndex(text, -1)),
		},
		LineStats:   lineStats(lines),
		GeneratedAt: now().UTC(),
	}
	report.Classification = classify(report.TokenCounts, report.LineStats, len(lines))
	return report
}

func lineStats(lines []string) domain.LineStats {
	if len(lines) == 0 {
		return domain.LineStats{}
	}

	stats := domain.LineStats{MinLineLength: math.MaxInt}
	var singleToken, numeric, clock, totalLen int
	for _, line := range lines {
		n := utf8.RuneCountInString(line)
		totalLen += n
		stats.MinLineLength = min(stats.MinLineLength, n)
		stats.MaxLineLength = max(stats.MaxLineLength, n)

		if len(strings.Fields(line)) == 1 {
			singleToken++
		}
		if numericOnly.MatchString(line) {
			numeric++
		}
		if timeOnly.MatchString(line) {
			clock++
		}
	}

	total := float64(len(lines))
	stats.SingleTokenLineRatio = float64(singleToken) / total
	stats.NumericOnlyLineRatio = float64(numeric) / total
	stats.TimeOnlyLineRatio = float64(clock) / total
	stats.AvgLineLength = float64(totalLen) / total
	return stats
}

func classify(tokens domain.TokenCounts, stats domain.LineStats, nonEmpty int) domain.Classification {
	c := domain.Classification{Guess: domain.GuessUnknown}

	switch {
	case tokens.DateTokens > summaryMinDates && tokens.TimeTokens > summaryMinTimes:
		c.Guess = domain.GuessLikelySummary
		c.Signals = append(c.Signals, fmt.Sprintf(
			"%d date tokens and %d time tokens look like daily summary rows",
			tokens.DateTokens, tokens.TimeTokens))
	case tokens.EmployeeCodeHeaders > punchMinHeaders && tokens.TimeTokens > punchMinTimes:
		c.Guess = domain.GuessLikelyPunch
		c.Signals = append(c.Signals, fmt.Sprintf(
			"%d Employee Code headers with %d time tokens look like punch record blocks",
			tokens.EmployeeCodeHeaders, tokens.TimeTokens))
	case nonEmpty == 0:
		c.Signals = append(c.Signals, "text is empty after normalization")
	default:
		c.Signals = append(c.Signals, fmt.Sprintf(
			"token counts below both thresholds (dates=%d, times=%d, headers=%d, statuses=%d)",
			tokens.DateTokens, tokens.TimeTokens, tokens.EmployeeCodeHeaders, tokens.StatusTokens))
	}

	if stats.SingleTokenLineRatio > fragmentedRatio {
		c.Signals = append(c.Signals, fmt.Sprintf(
			"fragmented extraction: %.0f%% of lines hold a single token, columns were probably split onto separate lines",
			stats.SingleTokenLineRatio*100))
	}
	if stats.NumericOnlyLineRatio > numericOnlyRatio {
		c.Signals = append(c.Signals, fmt.Sprintf(
			"%.0f%% of lines are bare numbers, numeric columns were probably detached from their rows",
			stats.NumericOnlyLineRatio*100))
	}
	if stats.TimeOnlyLineRatio > timeOnlyRatioWarn {
		c.Signals = append(c.Signals, fmt.Sprintf(
			"%.0f%% of lines are bare time values, time columns were probably detached from their dates",
			stats.TimeOnlyLineRatio*100))
	}
	return c
}

func firstRunes(s string, n int) string {
	i := 0
	for count := 0; i < len(s) && count < n; count++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i]
}

func lastRunes(s string, n int) string {
	i := len(s)
	for count := 0; i > 0 && count < n; count++ {
		_, size := utf8.DecodeLastRuneInString(s[:i])
		i -= size
	}
	return s[i:]
}

func head(lines []string, n int) []string {
	if len(lines) > n {
		lines = lines[:n]
	}
	return append([]string{}, lines...)
}
