package entity

import (
	"testing"

	"github.com/ahmedsaheb/duty-roster-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizard_WeeklyFlow(t *testing.T) {
	w := NewWizardState()
	assert.Equal(t, StepAwaitingMode, w.Step)

	require.NoError(t, w.ChooseMode(domain.ModeWeeklyDays))
	assert.Equal(t, StepAwaitingDays, w.Step)

	require.NoError(t, w.ToggleDay(domain.Sunday))
	require.NoError(t, w.ToggleDay(domain.Tuesday))
	assert.True(t, w.HasDay(domain.Sunday))
	assert.True(t, w.HasDay(domain.Tuesday))
	assert.False(t, w.HasDay(domain.Monday))

	require.NoError(t, w.DaysDone())
	assert.Equal(t, StepAwaitingTime, w.Step)

	require.NoError(t, w.SetTime("21:30"))
	assert.Equal(t, StepAwaitingSpan, w.Step)

	require.NoError(t, w.SetSpan(7))
	assert.Equal(t, StepAwaitingOrderNumber, w.Step)

	require.NoError(t, w.SetOrderNumber("1234"))
	assert.Equal(t, StepAwaitingOrderDate, w.Step)

	require.NoError(t, w.SetOrderDate("2025/04/01"))
	assert.Equal(t, StepAwaitingFile, w.Step)
}

func TestWizard_ToggleDayRemovesSelected(t *testing.T) {
	w := NewWizardState()
	require.NoError(t, w.ChooseMode(domain.ModeWeeklyDays))

	require.NoError(t, w.ToggleDay(domain.Sunday))
	require.NoError(t, w.ToggleDay(domain.Sunday))
	assert.False(t, w.HasDay(domain.Sunday))
	assert.Empty(t, w.Days)
}

func TestWizard_DaysDoneRequiresSelection(t *testing.T) {
	w := NewWizardState()
	require.NoError(t, w.ChooseMode(domain.ModeWeeklyDays))

	assert.Error(t, w.DaysDone())

	require.NoError(t, w.ToggleDay(domain.Friday))
	assert.NoError(t, w.DaysDone())
}

func TestWizard_DailySkipsDays(t *testing.T) {
	w := NewWizardState()
	require.NoError(t, w.ChooseMode(domain.ModeDaily))
	assert.Equal(t, StepAwaitingTime, w.Step)
}

func TestWizard_EveryHoursFlow(t *testing.T) {
	w := NewWizardState()
	require.NoError(t, w.ChooseMode(domain.ModeEveryHours))
	assert.Equal(t, StepAwaitingEvery, w.Step)

	assert.Error(t, w.SetEveryHours(0))
	assert.Error(t, w.SetEveryHours(25))
	require.NoError(t, w.SetEveryHours(6))
	assert.Equal(t, StepAwaitingSpan, w.Step)
}

func TestWizard_EveryMinutesCapsSpan(t *testing.T) {
	w := NewWizardState()
	w.SpanDays = 14
	require.NoError(t, w.ChooseMode(domain.ModeEveryMinutes))

	require.NoError(t, w.SetEveryMinutes(5))
	assert.Equal(t, domain.DefaultSpanDays, w.SpanDays)
}

func TestWizard_InvalidInputsRejected(t *testing.T) {
	w := NewWizardState()
	require.NoError(t, w.ChooseMode(domain.ModeDaily))

	assert.Error(t, w.SetTime("9 pm"))
	assert.Error(t, w.SetTime("0930"))
	require.NoError(t, w.SetTime("9:30"))

	assert.Error(t, w.SetSpan(0))
	assert.Error(t, w.SetSpan(domain.MaxWizardSpan+1))
	require.NoError(t, w.SetSpan(domain.MaxWizardSpan))

	require.NoError(t, w.SetOrderNumber("55"))

	assert.Error(t, w.SetOrderDate("01/04/2025"))
	assert.Error(t, w.SetOrderDate("2025-04-01"))
	require.NoError(t, w.SetOrderDate("2025/4/1"))
}

func TestWizard_StepOrderEnforced(t *testing.T) {
	w := NewWizardState()

	// nothing but mode selection is valid initially
	assert.Error(t, w.ToggleDay(domain.Sunday))
	assert.Error(t, w.SetTime("09:00"))
	assert.Error(t, w.SetSpan(7))
	assert.Error(t, w.SetOrderNumber("1234"))
	assert.Error(t, w.SetOrderDate("2025/04/01"))

	assert.Error(t, w.ChooseMode("nonsense"))
	require.NoError(t, w.ChooseMode(domain.ModeDaily))

	// mode cannot be chosen twice
	assert.Error(t, w.ChooseMode(domain.ModeDaily))
}

func TestWizard_ToggleDayRange(t *testing.T) {
	w := NewWizardState()
	require.NoError(t, w.ChooseMode(domain.ModeWeeklyDays))

	assert.Error(t, w.ToggleDay(-1))
	assert.Error(t, w.ToggleDay(7))
}
