package service

import (
	"testing"
	"time"

	"github.com/ahmedsaheb/duty-roster-bot/internal/domain"
	"github.com/ahmedsaheb/duty-roster-bot/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRosterDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{name: "ymd slashes", input: "2025/04/30", want: "2025-04-30", ok: true},
		{name: "ymd single digits", input: "2025/4/5", want: "2025-04-05", ok: true},
		{name: "dmy slashes", input: "30/4/2025", want: "2025-04-30", ok: true},
		{name: "dashes normalized", input: "2025-04-30", want: "2025-04-30", ok: true},
		{name: "dots normalized", input: "30.04.2025", want: "2025-04-30", ok: true},
		{name: "excel serial", input: "45748", want: "2025-04-01", ok: true},
		{name: "textual", input: "Apr 30, 2025", want: "2025-04-30", ok: true},
		{name: "month out of range", input: "2025/13/01", ok: false},
		{name: "day out of range", input: "32/04/2025", ok: false},
		{name: "empty", input: "", ok: false},
		{name: "free text", input: "علي حسن", ok: false},
		{name: "serial out of range", input: "12345678", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseRosterDate(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got.Format("2006-01-02"))
			}
		})
	}
}

func TestParseRosterDate_SerialEpoch(t *testing.T) {
	// serial 25569 is 1970-01-01
	got, ok := ParseRosterDate("25569")
	require.True(t, ok)
	assert.Equal(t, time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestNormalizeCollege(t *testing.T) {
	assert.Equal(t, domain.CollegePharmacy, NormalizeCollege("صيدلة"))
	assert.Equal(t, domain.CollegePharmacy, NormalizeCollege("كلية الصيدلة "))
	assert.Equal(t, domain.CollegePharmacy, NormalizeCollege("فرع الصيدلانيات"))
	assert.Equal(t, domain.CollegePharmacy, NormalizeCollege("College of Pharmacy - Branch X"))
	assert.Equal(t, domain.CollegePharmacy, NormalizeCollege("PHARMACEUTICS DEPT"))
	assert.Equal(t, domain.CollegeMedicalSciences, NormalizeCollege("العلوم الطبية"))
	assert.Equal(t, domain.CollegeMedicalSciences, NormalizeCollege("علوم طبية"))
	assert.Equal(t, domain.CollegeMedicalSciences, NormalizeCollege("كلية علوم  طبية"))
	assert.Equal(t, domain.CollegeMedicalSciences, NormalizeCollege("College of Medical Sciences"))
	assert.Equal(t, domain.UnspecifiedCollege, NormalizeCollege(""))
	assert.Equal(t, domain.UnspecifiedCollege, NormalizeCollege("   "))
	assert.Equal(t, "الإدارة", NormalizeCollege(" الإدارة "))
}

func TestNormalizeRow(t *testing.T) {
	idx := ColumnIndices{Date: 0, College: 1, Name: 2}

	record, reason := normalizeRow([]string{"2025/04/30", "صيدلة", " Omar Ali "}, idx)
	require.Empty(t, reason)
	require.NotNil(t, record)
	assert.Equal(t, "2025-04-30", record.Date)
	assert.Equal(t, domain.CollegePharmacy, record.College)
	assert.Equal(t, "Omar Ali", record.Name)

	record, reason = normalizeRow([]string{"2025/04/30", "College of Pharmacy - Branch X", " Omar Ali "}, idx)
	require.Empty(t, reason)
	require.NotNil(t, record)
	assert.Equal(t, domain.CollegePharmacy, record.College)
}

func TestNormalizeRow_SkipReasons(t *testing.T) {
	idx := ColumnIndices{Date: 0, College: 1, Name: 2}

	record, reason := normalizeRow([]string{"بدون تاريخ", "صيدلة", "علي"}, idx)
	assert.Nil(t, record)
	assert.Equal(t, entity.SkipBadDate, reason)

	record, reason = normalizeRow([]string{"2025/04/30", "صيدلة", "   "}, idx)
	assert.Nil(t, record)
	assert.Equal(t, entity.SkipEmptyName, reason)
}

func TestNormalizeRow_MissingCollegeColumn(t *testing.T) {
	idx := ColumnIndices{Date: 0, College: -1, Name: 1}

	record, reason := normalizeRow([]string{"2025/04/30", "علي حسن"}, idx)
	require.Empty(t, reason)
	require.NotNil(t, record)
	assert.Equal(t, domain.UnspecifiedCollege, record.College)
}
