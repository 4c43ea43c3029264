package sheet

import "strings"

// Row is a single spreadsheet row as an ordered header-to-cell mapping.
// Header order follows the sheet's column order, which matters for the
// substring fallback in Resolve.
type Row struct {
	headers []string
	cells   map[string]string
}

// NewRow pairs a header line with a data line. Short data lines are padded
// with empty cells; columns with a blank header are dropped.
func NewRow(headers, cells []string) Row {
	r := Row{cells: make(map[string]string, len(headers))}
	for i, h := range headers {
		if strings.TrimSpace(h) == "" {
			continue
		}
		if _, dup := r.cells[h]; dup {
			continue
		}
		var v string
		if i < len(cells) {
			v = cells[i]
		}
		r.headers = append(r.headers, h)
		r.cells[h] = v
	}
	return r
}

// Headers returns the row's header names in column order.
func (r Row) Headers() []string { return r.headers }

// Get returns the raw cell under an exact header name.
func (r Row) Get(header string) (string, bool) {
	v, ok := r.cells[header]
	return v, ok
}

// IsEmpty reports whether every cell normalizes to the empty string.
func (r Row) IsEmpty() bool {
	for _, h := range r.headers {
		if NormalizeCell(r.cells[h]) != "" {
			return false
		}
	}
	return true
}

// Resolve finds the value intended for a field given an ordered list of
// candidate header names. Lookup runs in three stages, first non-blank
// normalized hit wins:
//
//  1. exact, case-sensitive header match, candidates in order
//  2. case-insensitive match ignoring surrounding whitespace
//  3. substring match in either direction (case-insensitive), scanned in
//     row-header order
//
// A matched cell that normalizes to "" does not stop the scan; blank cells
// under a plausible header are treated as no match at all.
func (r Row) Resolve(candidates ...string) string {
	// Stage 1: exact.
	for _, c := range candidates {
		if raw, ok := r.cells[c]; ok {
			if v := NormalizeCell(raw); v != "" {
				return v
			}
		}
	}

	// Stage 2: case-insensitive, trimmed.
	for _, c := range candidates {
		want := strings.ToLower(strings.TrimSpace(c))
		if want == "" {
			continue
		}
		for _, h := range r.headers {
			if strings.ToLower(strings.TrimSpace(h)) == want {
				if v := NormalizeCell(r.cells[h]); v != "" {
					return v
				}
			}
		}
	}

	// Stage 3: substring containment either way.
	for _, h := range r.headers {
		have := strings.ToLower(strings.TrimSpace(h))
		if have == "" {
			continue
		}
		for _, c := range candidates {
			want := strings.ToLower(strings.TrimSpace(c))
			if want == "" {
				continue
			}
			if strings.Contains(have, want) || strings.Contains(want, have) {
				if v := NormalizeCell(r.cells[h]); v != "" {
					return v
				}
			}
		}
	}

	return ""
}

// ResolveBool resolves a flag field and parses it as a boolean cell.
func (r Row) ResolveBool(candidates ...string) Tristate {
	return ParseBoolCell(r.Resolve(candidates...))
}
