package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/ahmedsaheb/duty-roster-bot/internal/domain/contract"
	"github.com/ahmedsaheb/duty-roster-bot/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

// FileFormat identifies an uploaded roster file format.
type FileFormat string

const (
	FormatXLSX    FileFormat = "xlsx"
	FormatXLS     FileFormat = "xls"
	FormatCSV     FileFormat = "csv"
	FormatTSV     FileFormat = "tsv"
	FormatJSON    FileFormat = "json"
	FormatUnknown FileFormat = "unknown"
)

// ErrLegacyXLS is returned for binary .xls uploads, which the OOXML reader
// cannot open.
var ErrLegacyXLS = errors.New("legacy binary xls is not supported")

// JSON import field aliases, checked in priority order. This list is part of
// the import contract: the first present, non-empty alias wins.
var (
	jsonDateAliases    = []string{"d", "date", "تاريخ_الخفارة", "التاريخ", "تاريخ"}
	jsonNameAliases    = []string{"name", "الاسم", "اسم الرباعي", "اسم_الرباعي"}
	jsonCollegeAliases = []string{"college", "site", "الكلية", "مكان العمل", "مكان_العمل"}
)

type importerService struct {
	dm contract.DataManager
}

func newImporter(dm contract.DataManager) *importerService {
	return &importerService{dm: dm}
}

// DetectFormat sniffs the roster file format from the file name, falling
// back to the MIME type.
func DetectFormat(filename, mimeType string) FileFormat {
	n := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(n, ".xlsx"):
		return FormatXLSX
	case strings.HasSuffix(n, ".xls"):
		return FormatXLS
	case strings.HasSuffix(n, ".csv"):
		return FormatCSV
	case strings.HasSuffix(n, ".tsv"):
		return FormatTSV
	case strings.HasSuffix(n, ".json"):
		return FormatJSON
	}

	switch {
	case strings.Contains(mimeType, "spreadsheetml"):
		return FormatXLSX
	case strings.Contains(mimeType, "csv"):
		return FormatCSV
	case strings.Contains(mimeType, "tsv"):
		return FormatTSV
	case strings.Contains(mimeType, "json"):
		return FormatJSON
	}

	return FormatUnknown
}

// Import fully replaces the roster from an uploaded file. The source is
// parsed before the old rows are deleted, so a malformed file never touches
// the store. A crash between the delete and the final insert leaves a
// partially replaced roster; redoing the import is the recovery path.
func (s *importerService) Import(data []byte, format FileFormat) (*entity.ImportSummary, error) {
	if format == FormatJSON {
		return s.importJSON(data)
	}

	rows, err := parseTable(data, format)
	if err != nil {
		return nil, err
	}

	return s.importRows(rows)
}

// ImportRows runs column inference and row normalization over a raw 2-D
// table and replaces the roster with the result.
func (s *importerService) ImportRows(rows [][]string) (*entity.ImportSummary, error) {
	return s.importRows(rows)
}

func (s *importerService) importRows(rows [][]string) (*entity.ImportSummary, error) {
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}

	idx, err := InferColumns(rows)
	if err != nil {
		return nil, err
	}

	if err := s.dm.Roster().Clear(); err != nil {
		return nil, err
	}

	summary := &entity.ImportSummary{}
	for _, row := range rows[1:] {
		record, reason := normalizeRow(row, idx)
		if record == nil {
			summary.AddSkip(reason)
			continue
		}
		if err := s.dm.Roster().Insert(record); err != nil {
			return summary, err
		}
		summary.Imported++
	}

	log.Printf("Roster import finished: %d imported, %d skipped", summary.Imported, summary.Skipped)
	return summary, nil
}

func (s *importerService) importJSON(data []byte) (*entity.ImportSummary, error) {
	var objects []map[string]any
	if err := json.Unmarshal(data, &objects); err != nil {
		return nil, fmt.Errorf("json payload is not an array of objects: %w", err)
	}

	if err := s.dm.Roster().Clear(); err != nil {
		return nil, err
	}

	summary := &entity.ImportSummary{}
	for _, obj := range objects {
		dateStr := lookupAlias(obj, jsonDateAliases)
		name := strings.TrimSpace(lookupAlias(obj, jsonNameAliases))
		college := NormalizeCollege(lookupAlias(obj, jsonCollegeAliases))

		d, ok := ParseRosterDate(dateStr)
		if !ok {
			summary.AddSkip(entity.SkipBadDate)
			continue
		}
		if name == "" {
			summary.AddSkip(entity.SkipEmptyName)
			continue
		}

		record := &entity.RosterRecord{Date: d.Format("2006-01-02"), College: college, Name: name}
		if err := s.dm.Roster().Insert(record); err != nil {
			return summary, err
		}
		summary.Imported++
	}

	log.Printf("Roster import finished: %d imported, %d skipped", summary.Imported, summary.Skipped)
	return summary, nil
}

func lookupAlias(obj map[string]any, aliases []string) string {
	for _, key := range aliases {
		v, ok := obj[key]
		if !ok || v == nil {
			continue
		}
		var s string
		switch val := v.(type) {
		case string:
			s = val
		case float64:
			s = fmt.Sprintf("%v", val)
		default:
			continue
		}
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// parseTable converts the raw bytes of a spreadsheet or delimited-text file
// into a 2-D table. Spreadsheets use the first sheet only. Legacy binary XLS
// is not readable here; callers ask the user to re-save as XLSX.
func parseTable(data []byte, format FileFormat) ([][]string, error) {
	switch format {
	case FormatXLSX:
		return parseWorkbook(data)
	case FormatXLS:
		return nil, ErrLegacyXLS
	case FormatCSV:
		return parseDelimited(data, ',')
	case FormatTSV:
		return parseDelimited(data, '\t')
	default:
		return nil, fmt.Errorf("unsupported roster file format %q", format)
	}
}

func parseWorkbook(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return rows, nil
}

func parseDelimited(data []byte, comma rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse delimited text: %w", err)
	}

	return rows, nil
}
