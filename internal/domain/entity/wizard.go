package entity

import (
	"fmt"
	"regexp"

	"github.com/ahmedsaheb/duty-roster-bot/internal/domain"
)

// WizardStep tags the current step of the schedule-setup wizard. Transitions
// happen only through the methods below, so the state can never hold values
// that its step did not collect.
type WizardStep string

const (
	StepAwaitingMode         WizardStep = "mode"
	StepAwaitingDays         WizardStep = "days"
	StepAwaitingTime         WizardStep = "time"
	StepAwaitingEvery        WizardStep = "every"
	StepAwaitingEveryMinutes WizardStep = "every_min"
	StepAwaitingSpan         WizardStep = "span"
	StepAwaitingOrderNumber  WizardStep = "order_no"
	StepAwaitingOrderDate    WizardStep = "order_date"
	StepAwaitingFile         WizardStep = "file"
)

var (
	timeOfDayRe = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
	orderDateRe = regexp.MustCompile(`^\d{4}/\d{1,2}/\d{1,2}$`)
)

// WizardState is the per-user schedule-setup state, persisted as JSON in the
// session_state table.
type WizardState struct {
	Step         WizardStep `json:"step"`
	Mode         string     `json:"mode"`
	Days         []int      `json:"days"`
	Time         string     `json:"time"`
	EveryHours   int        `json:"every"`
	EveryMinutes int        `json:"minutes"`
	SpanDays     int        `json:"span"`
	OrderNumber  string     `json:"order_no"`
	OrderDate    string     `json:"order_date"`
}

func NewWizardState() *WizardState {
	return &WizardState{
		Step:         StepAwaitingMode,
		Days:         []int{},
		Time:         domain.DefaultNotificationTime,
		EveryHours:   1,
		EveryMinutes: 1,
		SpanDays:     domain.DefaultSpanDays,
	}
}

func (w *WizardState) ChooseMode(mode string) error {
	if w.Step != StepAwaitingMode {
		return fmt.Errorf("unexpected step %q for mode selection", w.Step)
	}
	w.Mode = mode
	switch mode {
	case domain.ModeWeeklyDays:
		w.Step = StepAwaitingDays
	case domain.ModeDaily:
		w.Step = StepAwaitingTime
	case domain.ModeEveryHours:
		w.Step = StepAwaitingEvery
	case domain.ModeEveryMinutes:
		w.Step = StepAwaitingEveryMinutes
	default:
		return fmt.Errorf("unknown schedule mode %q", mode)
	}
	return nil
}

func (w *WizardState) ToggleDay(day int) error {
	if w.Step != StepAwaitingDays {
		return fmt.Errorf("unexpected step %q for day selection", w.Step)
	}
	if day < domain.Sunday || day > domain.Saturday {
		return fmt.Errorf("weekday %d out of range", day)
	}
	for i, d := range w.Days {
		if d == day {
			w.Days = append(w.Days[:i], w.Days[i+1:]...)
			return nil
		}
	}
	w.Days = append(w.Days, day)
	return nil
}

func (w *WizardState) HasDay(day int) bool {
	for _, d := range w.Days {
		if d == day {
			return true
		}
	}
	return false
}

func (w *WizardState) DaysDone() error {
	if w.Step != StepAwaitingDays {
		return fmt.Errorf("unexpected step %q", w.Step)
	}
	if len(w.Days) == 0 {
		return fmt.Errorf("at least one weekday is required")
	}
	w.Step = StepAwaitingTime
	return nil
}

func (w *WizardState) SetTime(hhmm string) error {
	if w.Step != StepAwaitingTime {
		return fmt.Errorf("unexpected step %q", w.Step)
	}
	if !timeOfDayRe.MatchString(hhmm) {
		return fmt.Errorf("invalid time %q, expected HH:MM", hhmm)
	}
	w.Time = hhmm
	w.Step = StepAwaitingSpan
	return nil
}

func (w *WizardState) SetEveryHours(n int) error {
	if w.Step != StepAwaitingEvery {
		return fmt.Errorf("unexpected step %q", w.Step)
	}
	if n < 1 || n > 24 {
		return fmt.Errorf("hours interval %d out of range 1-24", n)
	}
	w.EveryHours = n
	w.Step = StepAwaitingSpan
	return nil
}

func (w *WizardState) SetEveryMinutes(n int) error {
	if w.Step != StepAwaitingEveryMinutes {
		return fmt.Errorf("unexpected step %q", w.Step)
	}
	if n < 1 || n > 60 {
		return fmt.Errorf("minutes interval %d out of range 1-60", n)
	}
	w.EveryMinutes = n
	// high-frequency test mode keeps messages short
	if w.SpanDays > domain.DefaultSpanDays {
		w.SpanDays = domain.DefaultSpanDays
	}
	w.Step = StepAwaitingSpan
	return nil
}

func (w *WizardState) SetSpan(n int) error {
	if w.Step != StepAwaitingSpan {
		return fmt.Errorf("unexpected step %q", w.Step)
	}
	if n < 1 || n > domain.MaxWizardSpan {
		return fmt.Errorf("span %d out of range 1-%d", n, domain.MaxWizardSpan)
	}
	w.SpanDays = n
	w.Step = StepAwaitingOrderNumber
	return nil
}

func (w *WizardState) SetOrderNumber(s string) error {
	if w.Step != StepAwaitingOrderNumber {
		return fmt.Errorf("unexpected step %q", w.Step)
	}
	w.OrderNumber = s
	w.Step = StepAwaitingOrderDate
	return nil
}

func (w *WizardState) SetOrderDate(s string) error {
	if w.Step != StepAwaitingOrderDate {
		return fmt.Errorf("unexpected step %q", w.Step)
	}
	if !orderDateRe.MatchString(s) {
		return fmt.Errorf("invalid order date %q, expected YYYY/MM/DD", s)
	}
	w.OrderDate = s
	w.Step = StepAwaitingFile
	return nil
}
