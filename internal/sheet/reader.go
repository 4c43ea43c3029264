package sheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrNoData is returned when the first worksheet is completely empty.
	ErrNoData = errors.New("spreadsheet contains no data")
)

// ReadRows parses the first worksheet of an xlsx workbook into the header
// line and one Row per data line. The first sheet row is always treated as
// the header; a header-only sheet yields zero rows, not an error.
func ReadRows(reader io.Reader) (headers []string, rows []Row, err error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, nil, fmt.Errorf("parse workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	raw, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("read worksheet %q: %w", sheetName, err)
	}
	if len(raw) == 0 {
		return nil, nil, ErrNoData
	}

	headers = raw[0]
	rows = make([]Row, 0, len(raw)-1)
	for i := 1; i < len(raw); i++ {
		rows = append(rows, NewRow(headers, raw[i]))
	}
	return headers, rows, nil
}

// HasHeader reports whether any header matches one of the candidates after
// trimming, case-insensitively.
func HasHeader(headers []string, candidates ...string) bool {
	probe := NewRow(headers, nil)
	for _, c := range candidates {
		want := normalizeHeader(c)
		if want == "" {
			continue
		}
		for _, h := range probe.Headers() {
			if normalizeHeader(h) == want {
				return true
			}
		}
	}
	return false
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}
