package settings_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/iburimskiy/sketchdeck/internal/settings"
)

func openStore(t *testing.T) (*settings.Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := settings.Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, dir
}

func TestStoreKeyValue(t *testing.T) {
	ctx := context.Background()
	store, _ := openStore(t)

	_, ok, err := store.Get(ctx, "limit")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "limit", "10"))
	require.NoError(t, store.Set(ctx, "limit", "12"))
	require.NoError(t, store.Set(ctx, "fullscreen", "true"))

	value, ok, err := store.Get(ctx, "limit")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "12", value)

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"fullscreen", "limit"}, keys)

	require.NoError(t, store.Delete(ctx, "limit"))
	require.NoError(t, store.Delete(ctx, "missing"))
	_, ok, err = store.Get(ctx, "limit")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Clear(ctx))
	keys, err = store.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := settings.Open(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "timerInSeconds", "60"))
	require.NoError(t, store.Close())

	reopened, err := settings.Open(dir)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get(ctx, "timerInSeconds")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "60", value)
}

func TestOpenIsExclusive(t *testing.T) {
	_, dir := openStore(t)

	_, err := settings.Open(dir)
	assert.ErrorIs(t, err, settings.ErrLocked)
}

func TestOpenRejectsOtherSchemaVersion(t *testing.T) {
	dir := t.TempDir()
	store, err := settings.Open(dir)
	require.NoError(t, err)
	path := store.Path()
	require.NoError(t, store.Close())

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec("UPDATE schema_version SET version = 99")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = settings.Open(dir)
	assert.ErrorIs(t, err, settings.ErrSchemaMismatch)
	assert.Equal(t, filepath.Join(dir, "state.db"), path)
}

func TestSessionsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store, _ := openStore(t)
	base := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)

	for i, id := range []string{"first", "second", "third"} {
		started := base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, store.AddSession(ctx, settings.SessionRecord{
			ID:           id,
			StartedAt:    started,
			EndedAt:      started.Add(25 * time.Minute),
			Completed:    i + 1,
			Shown:        i + 2,
			Limit:        10,
			TimerSeconds: 60,
			Categories:   []string{"poses/standing", "hands"},
		}))
	}

	all, err := store.ListSessions(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].ID)
	assert.Equal(t, "first", all[2].ID)
	assert.True(t, all[0].StartedAt.Equal(base.Add(2*time.Hour)))
	assert.Equal(t, 25*time.Minute, all[0].Duration())
	assert.Equal(t, 3, all[0].Completed)
	assert.Equal(t, 4, all[0].Shown)
	assert.Equal(t, []string{"poses/standing", "hands"}, all[0].Categories)

	latest, err := store.ListSessions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "second", latest[1].ID)
}

func TestSessionWithoutCategories(t *testing.T) {
	ctx := context.Background()
	store, _ := openStore(t)
	now := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)

	require.NoError(t, store.AddSession(ctx, settings.SessionRecord{ID: "empty", StartedAt: now, EndedAt: now}))
	records, err := store.ListSessions(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].Categories)
	assert.Zero(t, records[0].Duration())
}
