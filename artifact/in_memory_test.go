package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/roundtable/core"
)

func TestInMemoryStoreSaveGet(t *testing.T) {
	store := NewInMemoryStore()
	art := core.NewArtifact(core.ArtifactTypePRD, "PRD v1", "content", "pm")

	saved, err := store.Save("s1", art)
	require.NoError(t, err)
	assert.Equal(t, 1, saved.Version)

	got, err := store.Get("s1", art.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)
}

func TestInMemoryStoreVersionBump(t *testing.T) {
	store := NewInMemoryStore()
	art := core.NewArtifact(core.ArtifactTypePRD, "PRD", "v1", "pm")

	_, err := store.Save("s1", art)
	require.NoError(t, err)

	art.Content = "v2"
	saved, err := store.Save("s1", art)
	require.NoError(t, err)
	assert.Equal(t, 2, saved.Version)

	got, err := store.Get("s1", art.ID)
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Content)
	assert.Equal(t, 2, got.Version)
}

func TestInMemoryStoreNotFound(t *testing.T) {
	store := NewInMemoryStore()

	_, err := store.Get("s1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	err = store.Delete("s1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemoryStoreListAndDelete(t *testing.T) {
	store := NewInMemoryStore()
	a := core.NewArtifact(core.ArtifactTypePRD, "a", "x", "pm")
	b := core.NewArtifact(core.ArtifactTypeTimeline, "b", "y", "pm")

	_, err := store.Save("s1", a)
	require.NoError(t, err)
	_, err = store.Save("s1", b)
	require.NoError(t, err)

	list, err := store.List("s1")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, store.Delete("s1", a.ID))
	list, err = store.List("s1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	empty, err := store.List("other")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestInMemoryStoreSessionsIsolated(t *testing.T) {
	store := NewInMemoryStore()
	art := core.NewArtifact(core.ArtifactTypePRD, "a", "x", "pm")

	_, err := store.Save("s1", art)
	require.NoError(t, err)

	_, err = store.Get("s2", art.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
