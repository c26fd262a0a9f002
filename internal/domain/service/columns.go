package service

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// ErrEmptySheet is returned when the uploaded sheet has no rows at all.
	ErrEmptySheet = errors.New("sheet is empty")
	// ErrColumnsNotFound is returned when neither header matching nor
	// content scoring could resolve the date and name columns.
	ErrColumnsNotFound = errors.New("could not detect date/name columns")
)

// ColumnIndices holds the resolved column ordinals; -1 means unresolved.
// College is optional and falls back to the "unspecified" label.
type ColumnIndices struct {
	Date    int
	College int
	Name    int
}

// Header keyword sets. Matching is by substring containment on normalized
// text, so partial headers like "تاريخ الخفارة " still hit.
var (
	dateKeywords = []string{"تاريخ الخفارة", "تاريخ", "التاريخ", "date"}
	collegeKeywords = []string{
		"مكان العمل", "مكان_العمل", "الكلية", "الموقع",
		"workplace", "college", "location", "site",
	}
	nameKeywords = []string{
		"الاسم الرباعي", "اسم الرباعي", "الاسم", "اسم", "الرباعي",
		"fullname", "full name", "name",
	}
)

// Content-scoring sample bounds.
const (
	dateSampleRows    = 60
	nameSampleRows    = 120
	collegeSampleRows = 200
)

var (
	dmyPattern     = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)
	ymdPattern     = regexp.MustCompile(`^\d{4}/\d{1,2}/\d{1,2}$`)
	numericPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// normalizeHeader strips Arabic diacritics and punctuation so that header
// cells with decoration ("التاريخ:" or "الاسم - الرباعي") still match the
// keyword sets. NFKD decomposition separates diacritics into combining marks,
// which the rune filter then drops along with everything that is not a
// letter, digit, space or underscore.
func normalizeHeader(s string) string {
	decomposed := norm.NFKD.String(s)

	var b strings.Builder
	for _, r := range decomposed {
		if r >= 0x064B && r <= 0x065F { // Arabic tashkeel range
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '_' {
			b.WriteRune(r)
		}
	}

	collapsed := strings.Join(strings.Fields(b.String()), " ")
	return strings.ToLower(collapsed)
}

func matchesAny(header string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(header, normalizeHeader(k)) {
			return true
		}
	}
	return false
}

// isDateLike reports whether a cell plausibly holds a date: a D/M/Y or Y/M/D
// pattern (with -, . separators normalized to /), or a spreadsheet date
// serial in the plausible range (20000, 60000).
func isDateLike(v string) bool {
	s := strings.TrimSpace(v)
	s = strings.ReplaceAll(s, "-", "/")
	s = strings.ReplaceAll(s, ".", "/")
	if dmyPattern.MatchString(s) || ymdPattern.MatchString(s) {
		return true
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil && n > 20000 && n < 60000 {
		return true
	}
	return false
}

// InferColumns determines which columns of a raw 2-D table hold the date,
// college and name. Header-text matching runs first, role by role (date,
// then college, then name) so one column never serves two roles; content
// scoring over a bounded row sample fills whatever the headers left
// unresolved.
func InferColumns(rows [][]string) (ColumnIndices, error) {
	idx := ColumnIndices{Date: -1, College: -1, Name: -1}
	if len(rows) == 0 {
		return idx, ErrEmptySheet
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = normalizeHeader(h)
	}

	data := rows[1:]
	cols := len(headers)
	for _, row := range data {
		if len(row) > cols {
			cols = len(row)
		}
	}

	assigned := make(map[int]bool)
	assign := func(target *int, keywords []string) {
		for i, h := range headers {
			if assigned[i] || h == "" {
				continue
			}
			if matchesAny(h, keywords) {
				*target = i
				assigned[i] = true
				return
			}
		}
	}
	assign(&idx.Date, dateKeywords)
	assign(&idx.College, collegeKeywords)
	assign(&idx.Name, nameKeywords)

	if idx.Date == -1 {
		idx.Date = scoreDateColumn(data, cols, assigned)
		if idx.Date != -1 {
			assigned[idx.Date] = true
		}
	}
	if idx.Name == -1 {
		idx.Name = scoreNameColumn(data, cols, assigned)
		if idx.Name != -1 {
			assigned[idx.Name] = true
		}
	}
	if idx.College == -1 {
		idx.College = scoreCollegeColumn(data, cols, assigned)
	}

	if idx.Date == -1 || idx.Name == -1 {
		return idx, ErrColumnsNotFound
	}

	return idx, nil
}

// scoreDateColumn picks the column with the highest date-like hit ratio over
// non-empty cells, requiring at least 0.6. Ties keep the first column seen.
func scoreDateColumn(data [][]string, cols int, assigned map[int]bool) int {
	best, bestRatio := -1, 0.0
	limit := min(len(data), dateSampleRows)

	for c := 0; c < cols; c++ {
		if assigned[c] {
			continue
		}
		hits, seen := 0, 0
		for r := 0; r < limit; r++ {
			v := cellAt(data[r], c)
			if strings.TrimSpace(v) == "" {
				continue
			}
			seen++
			if isDateLike(v) {
				hits++
			}
		}
		if seen == 0 {
			continue
		}
		ratio := float64(hits) / float64(seen)
		if ratio >= 0.6 && ratio > bestRatio {
			best, bestRatio = c, ratio
		}
	}

	return best
}

// scoreNameColumn favors free-text columns: the average word count per
// non-empty, non-numeric cell (capped at 5 words) is highest for personal
// names and lowest for codes and single tokens.
func scoreNameColumn(data [][]string, cols int, assigned map[int]bool) int {
	best, bestAvg := -1, 0.0
	limit := min(len(data), nameSampleRows)

	for c := 0; c < cols; c++ {
		if assigned[c] {
			continue
		}
		score, seen := 0, 0
		for r := 0; r < limit; r++ {
			s := strings.TrimSpace(cellAt(data[r], c))
			if s == "" || numericPattern.MatchString(s) {
				continue
			}
			words := len(strings.Fields(s))
			if words > 5 {
				words = 5
			}
			score += words
			seen++
		}
		if seen == 0 {
			continue
		}
		avg := float64(score) / float64(seen)
		if avg > bestAvg {
			best, bestAvg = c, avg
		}
	}

	return best
}

// scoreCollegeColumn favors categorical columns: the ratio of distinct
// values to non-empty cells is lowest where a handful of site labels repeat.
func scoreCollegeColumn(data [][]string, cols int, assigned map[int]bool) int {
	best := -1
	bestRatio := 0.0
	limit := min(len(data), collegeSampleRows)

	for c := 0; c < cols; c++ {
		if assigned[c] {
			continue
		}
		distinct := make(map[string]struct{})
		seen := 0
		for r := 0; r < limit; r++ {
			s := strings.TrimSpace(cellAt(data[r], c))
			if s == "" {
				continue
			}
			distinct[s] = struct{}{}
			seen++
		}
		if seen == 0 {
			continue
		}
		ratio := float64(len(distinct)) / float64(seen)
		if best == -1 || ratio < bestRatio {
			best, bestRatio = c, ratio
		}
	}

	return best
}

func cellAt(row []string, i int) string {
	if i >= 0 && i < len(row) {
		return row[i]
	}
	return ""
}
