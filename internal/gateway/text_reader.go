package gateway

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"attendance-ingest/internal/domain"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// TextFileReader loads exported attendance text from disk.
type TextFileReader struct {
	maxChars int
}

// NewTextFileReader creates a reader rejecting files longer than maxChars
// characters. A non-positive maxChars falls back to domain.MaxTextChars.
func NewTextFileReader(maxChars int) *TextFileReader {
	if maxChars <= 0 {
		maxChars = domain.MaxTextChars
	}
	return &TextFileReader{maxChars: maxChars}
}

// ReadText returns the file content as UTF-8. A leading BOM selects UTF-16
// LE/BE or is dropped for UTF-8. Files ending in .csv are flattened to one
// line per record with cells joined by a single space.
func (r *TextFileReader) ReadText(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open export file %s: %w", path, err)
	}
	defer file.Close()

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	limit := int64(r.maxChars)*utf8.UTFMax + 1
	raw, err := io.ReadAll(io.LimitReader(transform.NewReader(file, decoder), limit))
	if err != nil {
		return "", fmt.Errorf("could not decode export file %s: %w", path, err)
	}
	// Reaching the byte limit means the file was cut short, so it is over the
	// character limit as well.
	if int64(len(raw)) == limit || utf8.RuneCount(raw) > r.maxChars {
		return "", fmt.Errorf("%w: %s holds more than %d characters", domain.ErrPayloadTooLarge, path, r.maxChars)
	}

	text := string(raw)
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		if text, err = flattenCSV(raw); err != nil {
			return "", fmt.Errorf("could not read csv records from %s: %w", path, err)
		}
	}
	return text, nil
}

func flattenCSV(raw []byte) (string, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var sb strings.Builder
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		cells := record[:0]
		for _, cell := range record {
			if cell = strings.TrimSpace(cell); cell != "" {
				cells = append(cells, cell)
			}
		}
		sb.WriteString(strings.Join(cells, " "))
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}
