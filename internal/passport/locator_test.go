package passport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("%PDF-1.4"), 0o600))
	}
}

func TestLocatorFind(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Паспорт GA9999 v2.pdf", "Паспорт GA9999.pdf", "GA1000.pdf", "GA9999.docx")

	path, found, err := NewLocator(dir, "").Find("GA9999")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, filepath.Join(dir, "Паспорт GA9999 v2.pdf"), path)
}

func TestLocatorNotFound(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "GA1000.pdf")

	_, found, err := NewLocator(dir, DefaultPattern).Find("GA9999")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLocatorArticlePlaceholder(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "ПС_810152.pdf", "ПС_8101520.pdf")

	path, found, err := NewLocator(dir, "ПС_{article}.pdf").Find("810152")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, filepath.Join(dir, "ПС_810152.pdf"), path)
}

func TestLocatorEscapesArticle(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "GA1.pdf", "GA[1].pdf")

	path, found, err := NewLocator(dir, "{ART}.pdf").Find("GA[1]")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, filepath.Join(dir, "GA[1].pdf"), path)

	_, found, err = NewLocator(dir, "{ART}.pdf").Find("GA*")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLocatorBadPattern(t *testing.T) {
	_, _, err := NewLocator(t.TempDir(), "[{ART}.pdf").Find("GA1")
	assert.Error(t, err)
}

func TestLocatorEmptyArticle(t *testing.T) {
	_, _, err := NewLocator(t.TempDir(), "").Find("  ")
	assert.Error(t, err)
}
