package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yunhang/cloudnav/internal/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	st, err := New(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSnapshotRoundtrip(t *testing.T) {
	st := testStore(t)

	missing, err := st.LoadSnapshot()
	require.NoError(t, err)
	assert.Nil(t, missing)

	snap := models.DefaultSnapshot()
	require.NoError(t, st.SaveSnapshot(snap))

	got, err := st.LoadSnapshot()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, snap.Links, got.Links)
	assert.Equal(t, snap.Categories, got.Categories)
}

func TestSnapshotSlotIsOverwritten(t *testing.T) {
	st := testStore(t)

	first := &models.Snapshot{Links: []models.LinkItem{{ID: "1", Title: "a", URL: "https://a"}}}
	second := &models.Snapshot{Links: []models.LinkItem{{ID: "2", Title: "b", URL: "https://b"}}}

	require.NoError(t, st.SaveSnapshot(first))
	require.NoError(t, st.SaveSnapshot(second))

	got, err := st.LoadSnapshot()
	require.NoError(t, err)
	require.Len(t, got.Links, 1)
	assert.Equal(t, "2", got.Links[0].ID)
}

func TestCorruptSnapshotFallsBack(t *testing.T) {
	st := testStore(t)

	require.NoError(t, st.Set(KeySnapshot, []byte("not json")))

	got, err := st.LoadSnapshot()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTokenLifecycle(t *testing.T) {
	st := testStore(t)

	assert.Empty(t, st.Token())

	require.NoError(t, st.SaveToken("s3cret"))
	assert.Equal(t, "s3cret", st.Token())

	require.NoError(t, st.ClearToken())
	assert.Empty(t, st.Token())
}

func TestThemeDefaultsWhenUnset(t *testing.T) {
	st := testStore(t)

	assert.Equal(t, models.DefaultTheme, st.Theme())

	require.NoError(t, st.SaveTheme("dark"))
	assert.Equal(t, "dark", st.Theme())
}

func TestConfigBlobs(t *testing.T) {
	st := testStore(t)

	assert.Nil(t, st.WebDAVConfig())
	assert.Nil(t, st.AIConfig())

	dav := &models.WebDAVConfig{URL: "https://dav.example.com", Username: "u", Password: "p"}
	require.NoError(t, st.SaveWebDAVConfig(dav))
	assert.Equal(t, dav, st.WebDAVConfig())

	ai := &models.AIConfig{Provider: "openai", Model: "gpt-4o"}
	require.NoError(t, st.SaveAIConfig(ai))
	assert.Equal(t, ai, st.AIConfig())
}
