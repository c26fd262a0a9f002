package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRepo_SetAndGet(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	dm := NewInstance(db)
	repo := dm.Settings()

	err := repo.Set("sched_time", "09:30")
	require.NoError(t, err)

	value, err := repo.Get("sched_time")
	require.NoError(t, err)
	assert.Equal(t, "09:30", value)
}

func TestSettingsRepo_GetMissingKey(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	dm := NewInstance(db)

	value, err := dm.Settings().Get("no_such_key")
	require.NoError(t, err)
	assert.Equal(t, "", value)
}

func TestSettingsRepo_SetOverwrites(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	dm := NewInstance(db)
	repo := dm.Settings()

	require.NoError(t, repo.Set("cursor_iso", "2025-04-01"))
	require.NoError(t, repo.Set("cursor_iso", "2025-04-08"))

	value, err := repo.Get("cursor_iso")
	require.NoError(t, err)
	assert.Equal(t, "2025-04-08", value)
}

func TestSettingsRepo_Delete(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	dm := NewInstance(db)
	repo := dm.Settings()

	require.NoError(t, repo.Set("target_topic_id", "42"))
	require.NoError(t, repo.Delete("target_topic_id"))

	value, err := repo.Get("target_topic_id")
	require.NoError(t, err)
	assert.Equal(t, "", value)
}

func TestSettingsRepo_DeleteMissingKey(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	dm := NewInstance(db)

	err := dm.Settings().Delete("never_set")
	assert.NoError(t, err)
}
