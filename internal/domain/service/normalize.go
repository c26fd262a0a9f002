package service

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ahmedsaheb/duty-roster-bot/internal/domain"
	"github.com/ahmedsaheb/duty-roster-bot/internal/domain/entity"
)

var (
	ymdCapture = regexp.MustCompile(`^(\d{4})/(\d{1,2})/(\d{1,2})$`)
	dmyCapture = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)

	medicalSciencesRe = regexp.MustCompile(`علوم\s*طبي`)
)

// Excel counts days from 1899-12-30 (serial 0).
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseRosterDate parses the date encodings seen in roster spreadsheets:
// YYYY/M/D and D/M/YYYY with -, . or / separators, spreadsheet date serials,
// and a few common textual layouts as a last resort.
func ParseRosterDate(v string) (time.Time, bool) {
	s := strings.TrimSpace(v)
	if s == "" {
		return time.Time{}, false
	}
	slashed := strings.ReplaceAll(strings.ReplaceAll(s, "-", "/"), ".", "/")

	if m := ymdCapture.FindStringSubmatch(slashed); m != nil {
		return dateFromParts(m[1], m[2], m[3])
	}
	if m := dmyCapture.FindStringSubmatch(slashed); m != nil {
		return dateFromParts(m[3], m[2], m[1])
	}

	if n, err := strconv.ParseFloat(slashed, 64); err == nil && n > 20000 && n < 60000 {
		return excelEpoch.AddDate(0, 0, int(n)), true
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "Jan 2, 2006", "2 Jan 2006", "01-02-06"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}

	return time.Time{}, false
}

func dateFromParts(year, month, day string) (time.Time, bool) {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC), true
}

// NormalizeCollege canonicalizes free-text workplace values: anything in the
// pharmacy domain maps to one fixed label, anything in the medical-sciences
// domain to another, blanks to the "unspecified" sentinel, and everything
// else passes through trimmed.
func NormalizeCollege(val string) string {
	s := strings.TrimSpace(val)
	lower := strings.ToLower(s)
	if strings.Contains(s, "صيدلة") || strings.Contains(s, "الصيدل") || strings.Contains(lower, "pharmac") {
		return domain.CollegePharmacy
	}
	if medicalSciencesRe.MatchString(s) || strings.Contains(s, "العلوم الطبية") || strings.Contains(lower, "medical science") {
		return domain.CollegeMedicalSciences
	}
	if s == "" {
		return domain.UnspecifiedCollege
	}
	return s
}

// normalizeRow converts one raw row into a canonical roster record, or
// reports why the row must be skipped. Ingestion is best-effort per row;
// a bad row is a skip reason, never an error.
func normalizeRow(row []string, idx ColumnIndices) (*entity.RosterRecord, entity.SkipReason) {
	d, ok := ParseRosterDate(cellAt(row, idx.Date))
	if !ok {
		return nil, entity.SkipBadDate
	}

	name := strings.TrimSpace(cellAt(row, idx.Name))
	if name == "" {
		return nil, entity.SkipEmptyName
	}

	return &entity.RosterRecord{
		Date:    d.Format("2006-01-02"),
		College: NormalizeCollege(cellAt(row, idx.College)),
		Name:    name,
	}, ""
}
