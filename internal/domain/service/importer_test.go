package service

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/ahmedsaheb/duty-roster-bot/internal/database"
	"github.com/ahmedsaheb/duty-roster-bot/internal/domain/contract"
	"github.com/ahmedsaheb/duty-roster-bot/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func setupImporter(t *testing.T) (*importerService, contract.DataManager, func()) {
	t.Helper()
	db := database.SetupTestDB(t)
	dm := database.NewInstance(db)
	return newImporter(dm), dm, func() { database.CleanupTestDB(t, db) }
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		filename string
		mimeType string
		want     FileFormat
	}{
		{"roster.xlsx", "", FormatXLSX},
		{"ROSTER.XLSX", "", FormatXLSX},
		{"roster.xls", "", FormatXLS},
		{"roster.csv", "", FormatCSV},
		{"roster.tsv", "", FormatTSV},
		{"roster.json", "", FormatJSON},
		{"roster", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", FormatXLSX},
		{"roster", "text/csv", FormatCSV},
		{"roster", "application/json", FormatJSON},
		{"roster.docx", "application/msword", FormatUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectFormat(tt.filename, tt.mimeType), "file %s mime %s", tt.filename, tt.mimeType)
	}
}

func TestImport_CSV(t *testing.T) {
	importer, dm, cleanup := setupImporter(t)
	defer cleanup()

	data := []byte("التاريخ,مكان العمل,الاسم\n" +
		"2025/04/01,كلية الصيدلة,علي حسن كريم\n" +
		"2025/04/01,العلوم الطبية,زهراء عباس فاضل\n" +
		"غير صالح,كلية الصيدلة,محمد كريم\n" +
		"2025/04/02,كلية الصيدلة,\n")

	summary, err := importer.Import(data, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Imported)
	assert.Equal(t, 2, summary.Skipped)
	assert.Equal(t, 1, summary.Reasons[entity.SkipBadDate])
	assert.Equal(t, 1, summary.Reasons[entity.SkipEmptyName])

	records, err := dm.Roster().Range("2025-04-01", "2025-04-01")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "كلية الصيدلة", records[0].College)
	assert.Equal(t, "كلية العلوم الطبية", records[1].College)
}

func TestImport_TSV(t *testing.T) {
	importer, dm, cleanup := setupImporter(t)
	defer cleanup()

	data := []byte("التاريخ\tالاسم\n2025/04/05\tعلي حسن\n")

	summary, err := importer.Import(data, FormatTSV)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Imported)

	md, err := dm.Roster().MinDate()
	require.NoError(t, err)
	assert.Equal(t, "2025-04-05", md)
}

func TestImport_XLSX(t *testing.T) {
	importer, dm, cleanup := setupImporter(t)
	defer cleanup()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"تاريخ الخفارة", "مكان العمل", "الاسم الرباعي"},
		{"2025/04/01", "كلية الصيدلة", "علي حسن كريم جاسم"},
		{"2025/04/02", "علوم طبية", "زهراء عباس فاضل حسين"},
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	summary, err := importer.Import(buf.Bytes(), FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Imported)
	assert.Equal(t, 0, summary.Skipped)

	stats, err := dm.Roster().Stats()
	require.NoError(t, err)
	assert.Equal(t, "2025-04-01", stats.MinDate)
	assert.Equal(t, "2025-04-02", stats.MaxDate)
}

func TestImport_JSON(t *testing.T) {
	importer, dm, cleanup := setupImporter(t)
	defer cleanup()

	data := []byte(`[
		{"d": "2025/04/01", "name": "علي حسن", "college": "صيدلة"},
		{"التاريخ": "2025/04/02", "الاسم": "زهراء عباس", "site": "علوم طبية"},
		{"date": "bad", "name": "محمد"},
		{"d": "2025/04/03", "name": "  "}
	]`)

	summary, err := importer.Import(data, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Imported)
	assert.Equal(t, 1, summary.Reasons[entity.SkipBadDate])
	assert.Equal(t, 1, summary.Reasons[entity.SkipEmptyName])

	records, err := dm.Roster().Range("2025-04-01", "2025-04-02")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "كلية الصيدلة", records[0].College)
	assert.Equal(t, "كلية العلوم الطبية", records[1].College)
}

func TestImport_JSONAliasPriority(t *testing.T) {
	importer, dm, cleanup := setupImporter(t)
	defer cleanup()

	// "d" wins over "date" when both are present
	data := []byte(`[{"d": "2025/04/01", "date": "2025/12/31", "name": "علي حسن"}]`)

	_, err := importer.Import(data, FormatJSON)
	require.NoError(t, err)

	md, err := dm.Roster().MinDate()
	require.NoError(t, err)
	assert.Equal(t, "2025-04-01", md)
}

func TestImport_JSONNotArray(t *testing.T) {
	importer, dm, cleanup := setupImporter(t)
	defer cleanup()

	require.NoError(t, dm.Roster().Insert(&entity.RosterRecord{Date: "2025-01-01", Name: "قديم"}))

	_, err := importer.Import([]byte(`{"not": "an array"}`), FormatJSON)
	assert.Error(t, err)

	// existing roster untouched when the payload does not parse
	stats, err := dm.Roster().Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Count)
}

func TestImport_ReplacesExistingRoster(t *testing.T) {
	importer, dm, cleanup := setupImporter(t)
	defer cleanup()

	require.NoError(t, dm.Roster().Insert(&entity.RosterRecord{Date: "2024-01-01", Name: "قديم"}))

	data := []byte("التاريخ,الاسم\n2025/04/01,جديد\n")
	_, err := importer.Import(data, FormatCSV)
	require.NoError(t, err)

	stats, err := dm.Roster().Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Count)
	assert.Equal(t, "2025-04-01", stats.MinDate)
}

func TestImport_UnreadableTableKeepsRoster(t *testing.T) {
	importer, dm, cleanup := setupImporter(t)
	defer cleanup()

	require.NoError(t, dm.Roster().Insert(&entity.RosterRecord{Date: "2024-01-01", Name: "قديم"}))

	_, err := importer.Import([]byte("not a workbook"), FormatXLSX)
	assert.Error(t, err)

	stats, err := dm.Roster().Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Count)
}

func TestImport_LegacyXLSRejected(t *testing.T) {
	importer, dm, cleanup := setupImporter(t)
	defer cleanup()

	require.NoError(t, dm.Roster().Insert(&entity.RosterRecord{Date: "2024-01-01", Name: "قديم"}))

	_, err := importer.Import([]byte{0xD0, 0xCF, 0x11, 0xE0}, FormatXLS)
	assert.ErrorIs(t, err, ErrLegacyXLS)

	stats, err := dm.Roster().Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Count)
}

func TestImportRows_ColumnsNotFound(t *testing.T) {
	importer, dm, cleanup := setupImporter(t)
	defer cleanup()

	require.NoError(t, dm.Roster().Insert(&entity.RosterRecord{Date: "2024-01-01", Name: "قديم"}))

	rows := [][]string{
		{"c0", "c1"},
		{"نص حر", "نص آخر"},
	}
	_, err := importer.ImportRows(rows)
	assert.ErrorIs(t, err, ErrColumnsNotFound)

	// inference runs before the destructive clear
	stats, err := dm.Roster().Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Count)
}

func TestImportRows_LargeSheet(t *testing.T) {
	importer, _, cleanup := setupImporter(t)
	defer cleanup()

	rows := [][]string{{"التاريخ", "مكان العمل", "الاسم"}}
	for i := 0; i < 300; i++ {
		rows = append(rows, []string{
			fmt.Sprintf("2025/04/%02d", i%28+1),
			"كلية الصيدلة",
			fmt.Sprintf("اسم رباعي تجريبي %d", i),
		})
	}

	summary, err := importer.ImportRows(rows)
	require.NoError(t, err)
	assert.Equal(t, 300, summary.Imported)
}
