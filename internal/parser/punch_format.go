package parser

import (
	"fmt"
	"regexp"
	"strings"

	"attendance-ingest/internal/domain"
)

var (
	combinedHeader = regexp.MustCompile(`(?i)employee\s*code\s*[:.\-]?\s*([^\s:]+)\s+.*?\bname\s*[:.\-]?\s*(.+?)(?:\s+card\s*no\.?\s*[:.\-]?\s*(\S+))?\s*$`)
	simpleHeader   = regexp.MustCompile(`(?i)employee\s*code\s*[:.\-]?\s*([^\s:]+)`)
	nameField      = regexp.MustCompile(`(?i)\bname\s*[:.\-]?\s*(.+?)(?:\s+card\s*no\.?\s*[:.\-]?\s*\S+)?\s*$`)
	cardField      = regexp.MustCompile(`(?i)card\s*no\.?\s*[:.\-]?\s*(\S+)`)

	dateToken = regexp.MustCompile(`\b(?:\d{1,2}/\d{1,2}/\d{4}|\d{1,2}-\d{1,2}-\d{4})\b`)
	timeToken = regexp.MustCompile(`\b\d{1,2}:\d{2}(?::\d{2})?\b`)
)

// headerWords are column titles that a header regex can mistake for a code.
var headerWords = map[string]bool{"name": true, "card": true, "department": true, "dept": true}

// employeeState is the header block punches are currently attributed to.
// A nil *employeeState is the "no active employee" state.
type employeeState struct {
	code   string
	name   string
	cardNo string
}

// punchScanner walks a punch-format export line by line. Header lines replace
// the active employee; date/time lines emit punches for it.
type punchScanner struct {
	active  *employeeState
	punches []domain.ParsedPunch
	errors  []string
}

// ExtractPunchFormat extracts punches from exports that group punch lines
// under "Employee Code" header blocks.
func ExtractPunchFormat(lines []string) ([]domain.ParsedPunch, []string) {
	s := &punchScanner{}
	for i, line := range lines {
		s.scan(i+1, line)
	}
	return s.punches, s.errors
}

func (s *punchScanner) scan(lineNo int, line string) {
	if state, ok := parseHeader(line); ok {
		s.active = state
		return
	}
	if s.active == nil {
		return
	}
	s.emit(lineNo, line)
}

func parseHeader(line string) (*employeeState, bool) {
	if m := combinedHeader.FindStringSubmatch(line); m != nil && !headerWords[strings.ToLower(m[1])] {
		return &employeeState{code: m[1], name: strings.TrimSpace(m[2]), cardNo: m[3]}, true
	}

	m := simpleHeader.FindStringSubmatch(line)
	if m == nil || headerWords[strings.ToLower(m[1])] {
		return nil, false
	}
	state := &employeeState{code: m[1]}
	rest := line[strings.Index(line, m[0])+len(m[0]):]
	if nm := nameField.FindStringSubmatch(rest); nm != nil {
		state.name = strings.TrimSpace(nm[1])
	}
	if cm := cardField.FindStringSubmatch(rest); cm != nil {
		state.cardNo = cm[1]
	}
	return state, true
}

// emit records one punch for every time that follows a date on the line.
func (s *punchScanner) emit(lineNo int, line string) {
	dates := dateToken.FindAllStringIndex(line, -1)
	for i, loc := range dates {
		end := len(line)
		if i+1 < len(dates) {
			end = dates[i+1][0]
		}
		dateStr := line[loc[0]:loc[1]]
		for _, clock := range timeToken.FindAllString(line[loc[1]:end], -1) {
			datetime, err := punchDatetime(dateStr, clock)
			if err != nil {
				s.errors = append(s.errors, fmt.Sprintf("line %d: %v", lineNo, err))
				continue
			}
			s.punches = append(s.punches, domain.ParsedPunch{
				EmployeeCode:  s.active.code,
				CardNo:        s.active.cardNo,
				PunchDatetime: datetime,
				Name:          s.active.name,
			})
		}
	}
}
