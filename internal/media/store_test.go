package media

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return store
}

func TestSanitizeSlug(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"events", "events"},
		{"  events  ", "events"},
		{"spring-2026_gala", "spring-2026_gala"},
		{"../etc", "etc"},
		{"a/b\\c", "abc"},
		{"", "general"},
		{"   ", "general"},
		{"!!!", "general"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SanitizeSlug(tc.input), "input %q", tc.input)
	}
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "my_photo.jpg", SanitizeFilename("my photo.jpg"))
	assert.Equal(t, "passwd", SanitizeFilename("../../etc/passwd"))
	assert.Equal(t, "shot.png", SanitizeFilename("..\\windows\\shot.png"))
	assert.Equal(t, "", SanitizeFilename(""))
}

func TestSaveReturnsPublicURL(t *testing.T) {
	store := newTestStore(t)

	url, err := store.Save("events", "flyer 2026.pdf", strings.NewReader("content"))
	require.NoError(t, err)
	assert.Equal(t, "/media/events/flyer_2026.pdf", url)

	written, err := os.ReadFile(filepath.Join(store.Root(), "events", "flyer_2026.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(written))
}

func TestSaveFallsBackToGeneralSlug(t *testing.T) {
	store := newTestStore(t)

	url, err := store.Save("  ", "a.txt", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "/media/general/a.txt", url)
}

func TestDeleteFileRejectsTraversal(t *testing.T) {
	store := newTestStore(t)

	outside := filepath.Join(filepath.Dir(store.Root()), "victim.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep me"), 0o644))

	err := store.DeleteFile("../victim.txt")
	assert.ErrorIs(t, err, ErrOutsideRoot)

	_, statErr := os.Stat(outside)
	assert.NoError(t, statErr, "file outside the root must survive")
}

func TestDeleteFileRemovesRegularFileOnly(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Save("events", "a.txt", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, store.DeleteFile("events/a.txt"))
	_, statErr := os.Stat(filepath.Join(store.Root(), "events", "a.txt"))
	assert.True(t, os.IsNotExist(statErr))

	// Directories and missing files are ignored.
	require.NoError(t, store.DeleteFile("events"))
	require.NoError(t, store.DeleteFile("events/missing.txt"))
	_, statErr = os.Stat(filepath.Join(store.Root(), "events"))
	assert.NoError(t, statErr)
}

func TestDeleteSlugDirRemovesTree(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Save("gala", "one.txt", strings.NewReader("1"))
	require.NoError(t, err)
	_, err = store.Save("gala", "two.txt", strings.NewReader("2"))
	require.NoError(t, err)

	require.NoError(t, store.DeleteSlugDir("gala"))
	_, statErr := os.Stat(filepath.Join(store.Root(), "gala"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestDeleteSlugDirRejectsTraversal(t *testing.T) {
	store := newTestStore(t)
	assert.ErrorIs(t, store.DeleteSlugDir("../outside"), ErrOutsideRoot)
}

func TestDeleteSlugDirRefusesMediaRoot(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Save("events", "a.txt", strings.NewReader("x"))
	require.NoError(t, err)

	for _, slug := range []string{".", "", "./"} {
		assert.ErrorIs(t, store.DeleteSlugDir(slug), ErrOutsideRoot, "slug %q", slug)
	}

	_, statErr := os.Stat(filepath.Join(store.Root(), "events", "a.txt"))
	assert.NoError(t, statErr, "media under the root must survive")
}

func TestFilePath(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Save("events", "a.txt", strings.NewReader("x"))
	require.NoError(t, err)

	path, err := store.FilePath("events/a.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(store.Root(), "events", "a.txt"), path)

	_, err = store.FilePath("../secret")
	assert.ErrorIs(t, err, ErrOutsideRoot)

	_, err = store.FilePath("events")
	assert.Error(t, err, "directories are not servable")
}
