package service

import (
	"testing"
	"time"

	"github.com/ahmedsaheb/duty-roster-bot/internal/database"
	"github.com/ahmedsaheb/duty-roster-bot/internal/domain"
	"github.com/ahmedsaheb/duty-roster-bot/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parts(year, month, day, hour, minute, weekday int) NowParts {
	return NowParts{Year: year, Month: month, Day: day, Hour: hour, Minute: minute, Weekday: weekday}
}

func TestNowPartsOf(t *testing.T) {
	// 2025-04-06 is a Sunday
	p := NowPartsOf(time.Date(2025, 4, 6, 9, 30, 0, 0, time.UTC))
	assert.Equal(t, parts(2025, 4, 6, 9, 30, 0), p)
}

func TestShouldFire_Weekly(t *testing.T) {
	policy := &entity.SchedulePolicy{Mode: domain.ModeWeeklyDays, Days: []int{0, 2}, Time: "09:00"}

	d := ShouldFire(policy, parts(2025, 4, 6, 9, 0, 0))
	assert.True(t, d.Fire)
	assert.Equal(t, "2025-4-6 9:0-weekly", d.Key)

	// wrong weekday
	assert.False(t, ShouldFire(policy, parts(2025, 4, 7, 9, 0, 1)).Fire)
	// wrong minute
	assert.False(t, ShouldFire(policy, parts(2025, 4, 6, 9, 1, 0)).Fire)
	// wrong hour
	assert.False(t, ShouldFire(policy, parts(2025, 4, 6, 10, 0, 0)).Fire)
}

func TestShouldFire_WeeklyEmptyDaysMeansEveryDay(t *testing.T) {
	policy := &entity.SchedulePolicy{Mode: domain.ModeWeeklyDays, Time: "09:00"}

	for weekday := 0; weekday < 7; weekday++ {
		d := ShouldFire(policy, parts(2025, 4, 6+weekday, 9, 0, weekday))
		assert.True(t, d.Fire, "weekday %d", weekday)
	}
}

func TestShouldFire_Daily(t *testing.T) {
	policy := &entity.SchedulePolicy{Mode: domain.ModeDaily, Time: "21:30"}

	d := ShouldFire(policy, parts(2025, 4, 6, 21, 30, 0))
	assert.True(t, d.Fire)
	assert.Equal(t, "2025-4-6 21:30-daily", d.Key)

	assert.False(t, ShouldFire(policy, parts(2025, 4, 6, 21, 31, 0)).Fire)
}

func TestShouldFire_EveryHours(t *testing.T) {
	policy := &entity.SchedulePolicy{Mode: domain.ModeEveryHours, EveryHours: 6}

	d := ShouldFire(policy, parts(2025, 4, 6, 12, 0, 0))
	assert.True(t, d.Fire)
	assert.Equal(t, "2025-4-6 12:00-everyh-6", d.Key)

	// only fires on the top of the hour
	assert.False(t, ShouldFire(policy, parts(2025, 4, 6, 12, 1, 0)).Fire)
	// hour not divisible by the interval
	assert.False(t, ShouldFire(policy, parts(2025, 4, 6, 13, 0, 0)).Fire)
}

func TestShouldFire_EveryMinutes(t *testing.T) {
	policy := &entity.SchedulePolicy{Mode: domain.ModeEveryMinutes, EveryMinutes: 15}

	d := ShouldFire(policy, parts(2025, 4, 6, 9, 45, 0))
	assert.True(t, d.Fire)
	assert.Equal(t, "2025-4-6 9:45-everym-15", d.Key)

	assert.False(t, ShouldFire(policy, parts(2025, 4, 6, 9, 44, 0)).Fire)
}

func TestShouldFire_IntervalsClamped(t *testing.T) {
	// out-of-range intervals clamp instead of disabling the schedule
	policy := &entity.SchedulePolicy{Mode: domain.ModeEveryMinutes, EveryMinutes: 0}
	d := ShouldFire(policy, parts(2025, 4, 6, 9, 7, 0))
	assert.True(t, d.Fire)
	assert.Equal(t, "2025-4-6 9:7-everym-1", d.Key)

	policy = &entity.SchedulePolicy{Mode: domain.ModeEveryHours, EveryHours: 99}
	d = ShouldFire(policy, parts(2025, 4, 6, 0, 0, 0))
	assert.True(t, d.Fire)
	assert.Equal(t, "2025-4-6 0:00-everyh-24", d.Key)
}

func TestShouldFire_KeyUniquePerInstant(t *testing.T) {
	policy := &entity.SchedulePolicy{Mode: domain.ModeEveryMinutes, EveryMinutes: 1}

	seen := make(map[string]bool)
	for minute := 0; minute < 60; minute++ {
		d := ShouldFire(policy, parts(2025, 4, 6, 9, minute, 0))
		require.True(t, d.Fire)
		assert.False(t, seen[d.Key], "duplicate key %s", d.Key)
		seen[d.Key] = true
	}

	// same instant twice yields the same key
	first := ShouldFire(policy, parts(2025, 4, 6, 9, 0, 0))
	second := ShouldFire(policy, parts(2025, 4, 6, 9, 0, 0))
	assert.Equal(t, first.Key, second.Key)
}

func TestShouldFire_MalformedTimeFallsBack(t *testing.T) {
	policy := &entity.SchedulePolicy{Mode: domain.ModeDaily, Time: "garbage"}

	// falls back to the default 09:00
	d := ShouldFire(policy, parts(2025, 4, 6, 9, 0, 0))
	assert.True(t, d.Fire)
}

func TestLoadPolicy_Defaults(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.CleanupTestDB(t, db)
	dm := database.NewInstance(db)

	policy, err := LoadPolicy(dm.Settings())
	require.NoError(t, err)
	assert.Equal(t, domain.ModeWeeklyDays, policy.Mode)
	assert.Empty(t, policy.Days)
	assert.Equal(t, "09:00", policy.Time)
	assert.Equal(t, 1, policy.EveryHours)
	assert.Equal(t, 1, policy.EveryMinutes)
}

func TestLoadPolicy_FromSettings(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.CleanupTestDB(t, db)
	dm := database.NewInstance(db)

	settings := dm.Settings()
	require.NoError(t, settings.Set(domain.KeySchedMode, domain.ModeDaily))
	require.NoError(t, settings.Set(domain.KeySchedDaysCSV, "0, 2,4"))
	require.NoError(t, settings.Set(domain.KeySchedTime, "21:15"))
	require.NoError(t, settings.Set(domain.KeySchedEveryHours, "6"))
	require.NoError(t, settings.Set(domain.KeySchedEveryMinutes, "30"))

	policy, err := LoadPolicy(settings)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeDaily, policy.Mode)
	assert.Equal(t, []int{0, 2, 4}, policy.Days)
	assert.Equal(t, "21:15", policy.Time)
	assert.Equal(t, 6, policy.EveryHours)
	assert.Equal(t, 30, policy.EveryMinutes)
}
