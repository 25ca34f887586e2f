package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSettingsBackendContract runs a suite of tests to verify that a SettingsBackend
// implementation adheres to the defined interface contract.
// The backend must start empty.
func RunSettingsBackendContract(t *testing.T, backend SettingsBackend) {
	ctx := context.Background()

	t.Run("Get Missing", func(t *testing.T) {
		_, err := backend.Get(ctx, "state.missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Set and Get", func(t *testing.T) {
		require.NoError(t, backend.Set(ctx, "preferences.resource-path", "/cfg/res"))

		val, err := backend.Get(ctx, "preferences.resource-path")
		require.NoError(t, err)
		assert.Equal(t, "/cfg/res", val)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, backend.Set(ctx, "state.show-toolbar-default", "true"))
		require.NoError(t, backend.Set(ctx, "state.show-toolbar-default", "false"))

		val, err := backend.Get(ctx, "state.show-toolbar-default")
		require.NoError(t, err)
		assert.Equal(t, "false", val)
	})

	t.Run("List", func(t *testing.T) {
		values, err := backend.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, "/cfg/res", values["preferences.resource-path"])
		assert.Equal(t, "false", values["state.show-toolbar-default"])
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, backend.Delete(ctx, "preferences.resource-path"))
		_, err := backend.Get(ctx, "preferences.resource-path")
		assert.ErrorIs(t, err, ErrNotFound)

		// Deleting twice is fine
		assert.NoError(t, backend.Delete(ctx, "preferences.resource-path"))
	})
}

// RunRecentStoreContract runs a suite of tests to verify that a RecentStore
// implementation adheres to the defined interface contract.
// The store must start empty.
func RunRecentStoreContract(t *testing.T, store RecentStore) {
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Ordering", func(t *testing.T) {
		require.NoError(t, store.Touch(ctx, "file:///games/a.z5", base))
		require.NoError(t, store.Touch(ctx, "file:///games/b.z5", base.Add(time.Minute)))
		require.NoError(t, store.Touch(ctx, "file:///games/c.ulx", base.Add(2*time.Minute)))

		entries, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"file:///games/c.ulx", "file:///games/b.z5", "file:///games/a.z5"}, uris(entries))
	})

	t.Run("Touch Moves Without Duplicating", func(t *testing.T) {
		require.NoError(t, store.Touch(ctx, "file:///games/a.z5", base.Add(3*time.Minute)))

		entries, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"file:///games/a.z5", "file:///games/c.ulx", "file:///games/b.z5"}, uris(entries))
		assert.True(t, entries[0].AccessedAt.Equal(base.Add(3*time.Minute)))
	})

	t.Run("Trim", func(t *testing.T) {
		require.NoError(t, store.Trim(ctx, 2))

		entries, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"file:///games/a.z5", "file:///games/c.ulx"}, uris(entries))
	})

	t.Run("Remove", func(t *testing.T) {
		require.NoError(t, store.Remove(ctx, "file:///games/c.ulx"))
		require.NoError(t, store.Remove(ctx, "file:///games/never.z5"))

		entries, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"file:///games/a.z5"}, uris(entries))
	})
}

func uris(entries []RecentEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.URI)
	}
	return out
}
