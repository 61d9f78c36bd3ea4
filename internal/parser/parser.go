package parser

import (
	"attendance-ingest/internal/domain"
)

// ErrFormatUndetected is appended to ParseResult.Errors when neither extractor
// finds a punch.
const ErrFormatUndetected = "could not detect a supported export format: no punch-record headers and no daily summary rows were recognized"

// Parse classifies the text and runs the matching extractor. When the
// classifier cannot decide, the summary extractor is tried before the punch
// extractor and the first one yielding punches wins.
func Parse(text string) domain.ParseResult {
	lines := NormalizeLines(text)
	return ParseLines(lines, Classify(lines))
}

// ParseLines is Parse over lines that were already normalized and classified.
func ParseLines(lines []string, classification Classification) domain.ParseResult {
	switch classification.Format {
	case domain.FormatPunch:
		punches, errs := ExtractPunchFormat(lines)
		return newResult(domain.FormatPunch, punches, errs)
	case domain.FormatSummary:
		punches, errs := ExtractSummaryFormat(lines)
		return newResult(domain.FormatSummary, punches, errs)
	}

	summaryPunches, summaryErrs := ExtractSummaryFormat(lines)
	if len(summaryPunches) > 0 {
		return newResult(domain.FormatSummary, summaryPunches, summaryErrs)
	}
	punchPunches, punchErrs := ExtractPunchFormat(lines)
	if len(punchPunches) > 0 {
		return newResult(domain.FormatPunch, punchPunches, punchErrs)
	}

	errs := append(append([]string{}, summaryErrs...), punchErrs...)
	errs = append(errs, ErrFormatUndetected)
	return newResult(domain.FormatUnknown, nil, errs)
}

func newResult(format domain.Format, punches []domain.ParsedPunch, errs []string) domain.ParseResult {
	if punches == nil {
		punches = make([]domain.ParsedPunch, 0)
	}
	if errs == nil {
		errs = make([]string, 0)
	}
	return domain.ParseResult{Punches: punches, Errors: errs, Format: format}
}
