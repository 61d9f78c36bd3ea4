// Package parser turns the plain text extracted from attendance terminal
// exports into punch events.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var tabRun = regexp.MustCompile(`\t+`)

// NormalizeLines unifies line endings, collapses tab runs to a single space
// and returns the trimmed non-empty lines.
func NormalizeLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = tabRun.ReplaceAllString(text, " ")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// isoDate converts day, month and year strings to YYYY-MM-DD and rejects
// calendar dates that do not exist.
func isoDate(day, month, year string) (string, error) {
	d, errD := strconv.Atoi(day)
	m, errM := strconv.Atoi(month)
	y, errY := strconv.Atoi(year)
	if errD != nil || errM != nil || errY != nil {
		return "", fmt.Errorf("invalid date %s/%s/%s", day, month, year)
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || int(t.Month()) != m || t.Year() != y {
		return "", fmt.Errorf("invalid date %s/%s/%s", day, month, year)
	}
	return t.Format(time.DateOnly), nil
}

// isoDateFromToken converts a DD/MM/YYYY or DD-MM-YYYY token.
func isoDateFromToken(token string) (string, error) {
	parts := strings.FieldsFunc(token, func(r rune) bool { return r == '/' || r == '-' })
	if len(parts) != 3 {
		return "", fmt.Errorf("invalid date %s", token)
	}
	return isoDate(parts[0], parts[1], parts[2])
}

// paddedTime converts H:MM or H:MM:SS to HH:MM:SS.
func paddedTime(token string) (string, error) {
	parts := strings.Split(token, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return "", fmt.Errorf("invalid time %s", token)
	}
	limits := []int{23, 59, 59}
	values := []int{0, 0, 0}
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil || v < 0 || v > limits[i] {
			return "", fmt.Errorf("invalid time %s", token)
		}
		values[i] = v
	}
	return fmt.Sprintf("%02d:%02d:%02d", values[0], values[1], values[2]), nil
}

// punchDatetime combines a date token and a time token into the ParsedPunch layout.
func punchDatetime(dateToken, timeToken string) (string, error) {
	date, err := isoDateFromToken(dateToken)
	if err != nil {
		return "", err
	}
	clock, err := paddedTime(timeToken)
	if err != nil {
		return "", err
	}
	return date + "T" + clock, nil
}
