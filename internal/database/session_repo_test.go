package database

import (
	"testing"

	"github.com/ahmedsaheb/duty-roster-bot/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepo_SetAndGet(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	dm := NewInstance(db)
	repo := dm.Session()

	state := entity.NewWizardState()
	require.NoError(t, state.ChooseMode("weekly_days"))
	require.NoError(t, state.ToggleDay(0))
	require.NoError(t, state.ToggleDay(2))

	require.NoError(t, repo.Set(42, state))

	loaded, err := repo.Get(42)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, entity.StepAwaitingDays, loaded.Step)
	assert.Equal(t, "weekly_days", loaded.Mode)
	assert.Equal(t, []int{0, 2}, loaded.Days)
}

func TestSessionRepo_GetMissing(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	dm := NewInstance(db)

	state, err := dm.Session().Get(99)
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestSessionRepo_SetOverwrites(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	dm := NewInstance(db)
	repo := dm.Session()

	first := entity.NewWizardState()
	require.NoError(t, repo.Set(42, first))

	second := entity.NewWizardState()
	require.NoError(t, second.ChooseMode("daily"))
	require.NoError(t, repo.Set(42, second))

	loaded, err := repo.Get(42)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, entity.StepAwaitingTime, loaded.Step)
	assert.Equal(t, "daily", loaded.Mode)
}

func TestSessionRepo_Clear(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	dm := NewInstance(db)
	repo := dm.Session()

	require.NoError(t, repo.Set(42, entity.NewWizardState()))
	require.NoError(t, repo.Clear(42))

	state, err := repo.Get(42)
	require.NoError(t, err)
	assert.Nil(t, state)

	// clearing an absent session is not an error
	assert.NoError(t, repo.Clear(42))
}
