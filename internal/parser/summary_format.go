package parser

import (
	"fmt"
	"regexp"
	"strings"

	"attendance-ingest/internal/domain"
)

// Daily summary rows, most specific shape first. The full shape accepts up to
// four duration columns (worked, overtime, ...) between the out time and the
// shift label.
var (
	summaryFullRow = regexp.MustCompile(
		`^(\d{1,2}/\d{1,2}/\d{4})\s+(\S+)\s+(.+?)\s+(\S+)\s+(\d{1,2}:\d{2})\s+(\d{1,2}:\d{2})` +
			`(?:\s+\d{1,3}:\d{2}){0,4}\s+(\S+)\s+(\d{1,2}:\d{2}\s*-\s*\d{1,2}:\d{2})\s+(P|A|NA|MIS|HD)\s*$`)
	summarySimpleRow = regexp.MustCompile(
		`^(\d{1,2}/\d{1,2}/\d{4})\s+(\S+)\s+(\d{1,2}:\d{2})\s+(\d{1,2}:\d{2})\s+(P|A|NA|MIS|HD)\b`)
)

// notClockedOut is the out time summary exports print for a missing out punch.
const notClockedOut = "00:00:00"

type summaryRow struct {
	date, code, name, cardNo string
	in, out, status          string
}

// ExtractSummaryFormat extracts in/out punch pairs from daily summary rows.
// Lines matching neither row shape are skipped without an error.
func ExtractSummaryFormat(lines []string) ([]domain.ParsedPunch, []string) {
	var punches []domain.ParsedPunch
	var errs []string
	for i, line := range lines {
		row, ok := matchSummaryRow(line)
		if !ok {
			continue
		}
		rowPunches, err := row.punches()
		if err != nil {
			errs = append(errs, fmt.Sprintf("line %d: %v", i+1, err))
			continue
		}
		punches = append(punches, rowPunches...)
	}
	return punches, errs
}

func matchSummaryRow(line string) (summaryRow, bool) {
	if m := summaryFullRow.FindStringSubmatch(line); m != nil {
		return summaryRow{
			date:   m[1],
			code:   m[2],
			name:   strings.TrimSpace(m[3]),
			cardNo: m[4],
			in:     m[5],
			out:    m[6],
			status: m[9],
		}, true
	}
	if m := summarySimpleRow.FindStringSubmatch(line); m != nil {
		return summaryRow{date: m[1], code: m[2], in: m[3], out: m[4], status: m[5]}, true
	}
	return summaryRow{}, false
}

// punches returns the in punch and, unless the employee never clocked out,
// the out punch of the row.
func (r summaryRow) punches() ([]domain.ParsedPunch, error) {
	date, err := isoDateFromToken(r.date)
	if err != nil {
		return nil, err
	}
	in, err := paddedTime(r.in)
	if err != nil {
		return nil, err
	}
	out, err := paddedTime(r.out)
	if err != nil {
		return nil, err
	}

	punches := []domain.ParsedPunch{r.punchAt(date + "T" + in)}
	if out != notClockedOut {
		punches = append(punches, r.punchAt(date+"T"+out))
	}
	return punches, nil
}

func (r summaryRow) punchAt(datetime string) domain.ParsedPunch {
	return domain.ParsedPunch{
		EmployeeCode:  r.code,
		CardNo:        r.cardNo,
		PunchDatetime: datetime,
		RawStatus:     r.status,
		Name:          r.name,
	}
}
