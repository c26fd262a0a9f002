package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ahmedsaheb/duty-roster-bot/internal/domain"
	"github.com/ahmedsaheb/duty-roster-bot/internal/domain/contract"
	"github.com/ahmedsaheb/duty-roster-bot/internal/domain/entity"
)

// NowParts is the current wall clock broken into calendar fields in the
// configured time zone. Weekday is 0=Sunday..6=Saturday.
type NowParts struct {
	Year    int
	Month   int
	Day     int
	Hour    int
	Minute  int
	Weekday int
}

// NowPartsOf decomposes a wall-clock instant. The caller is expected to
// have moved t into the schedule's time zone already.
func NowPartsOf(t time.Time) NowParts {
	return NowParts{
		Year:    t.Year(),
		Month:   int(t.Month()),
		Day:     t.Day(),
		Hour:    t.Hour(),
		Minute:  t.Minute(),
		Weekday: int(t.Weekday()),
	}
}

// FireDecision says whether "now" is a firing instant. Key uniquely
// identifies the instant and is compared against the last stored key by the
// caller; the evaluator itself holds no state.
type FireDecision struct {
	Fire bool
	Key  string
}

// LoadPolicy reads the schedule policy from the settings store, applying
// the defaults the wizard would have written.
func LoadPolicy(settings contract.SettingsRepo) (*entity.SchedulePolicy, error) {
	mode, err := settings.Get(domain.KeySchedMode)
	if err != nil {
		return nil, err
	}
	if mode == "" {
		mode = domain.ModeWeeklyDays
	}

	daysCSV, err := settings.Get(domain.KeySchedDaysCSV)
	if err != nil {
		return nil, err
	}

	timeHM, err := settings.Get(domain.KeySchedTime)
	if err != nil {
		return nil, err
	}
	if timeHM == "" {
		timeHM = domain.DefaultNotificationTime
	}

	everyHours, err := settingInt(settings, domain.KeySchedEveryHours, 1)
	if err != nil {
		return nil, err
	}
	everyMinutes, err := settingInt(settings, domain.KeySchedEveryMinutes, 1)
	if err != nil {
		return nil, err
	}

	return &entity.SchedulePolicy{
		Mode:         mode,
		Days:         parseDaysCSV(daysCSV),
		Time:         timeHM,
		EveryHours:   everyHours,
		EveryMinutes: everyMinutes,
	}, nil
}

func settingInt(settings contract.SettingsRepo, key string, defaultValue int) (int, error) {
	raw, err := settings.Get(key)
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue, nil
	}
	return n, nil
}

func parseDaysCSV(csv string) []int {
	var days []int
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if d, err := strconv.Atoi(part); err == nil {
			days = append(days, d)
		}
	}
	return days
}

// ShouldFire decides whether the policy fires at the given instant and, if
// so, returns the de-duplication key for it. The tick cadence is assumed to
// be roughly one minute; overlapping invocations inside the same minute
// produce the same key, which is how the caller suppresses double posts.
func ShouldFire(policy *entity.SchedulePolicy, now NowParts) FireDecision {
	switch policy.Mode {
	case domain.ModeEveryMinutes:
		n := clamp(policy.EveryMinutes, 1, 60)
		if now.Minute%n == 0 {
			return FireDecision{Fire: true, Key: fmt.Sprintf("%d-%d-%d %d:%d-everym-%d",
				now.Year, now.Month, now.Day, now.Hour, now.Minute, n)}
		}
		return FireDecision{}

	case domain.ModeEveryHours:
		n := clamp(policy.EveryHours, 1, 24)
		if now.Minute == 0 && now.Hour%n == 0 {
			return FireDecision{Fire: true, Key: fmt.Sprintf("%d-%d-%d %d:00-everyh-%d",
				now.Year, now.Month, now.Day, now.Hour, n)}
		}
		return FireDecision{}
	}

	hour, minute := parseTimeOfDay(policy.Time)

	if policy.Mode == domain.ModeDaily {
		if now.Hour == hour && now.Minute == minute {
			return FireDecision{Fire: true, Key: fmt.Sprintf("%d-%d-%d %d:%d-daily",
				now.Year, now.Month, now.Day, hour, minute)}
		}
		return FireDecision{}
	}

	// weekly_days; an empty day set means every day
	dayMatches := len(policy.Days) == 0
	for _, d := range policy.Days {
		if d == now.Weekday {
			dayMatches = true
			break
		}
	}
	if dayMatches && now.Hour == hour && now.Minute == minute {
		return FireDecision{Fire: true, Key: fmt.Sprintf("%d-%d-%d %d:%d-weekly",
			now.Year, now.Month, now.Day, hour, minute)}
	}
	return FireDecision{}
}

func parseTimeOfDay(timeHM string) (hour, minute int) {
	if timeHM == "" {
		timeHM = domain.DefaultNotificationTime
	}
	parts := strings.Split(timeHM, ":")
	if len(parts) != 2 {
		parts = strings.Split(domain.DefaultNotificationTime, ":")
	}
	hour, _ = strconv.Atoi(parts[0])
	minute, _ = strconv.Atoi(parts[1])
	return hour, minute
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
