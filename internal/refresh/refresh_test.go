package refresh

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmptyIsNoop(t *testing.T) {
	r, err := New("   ")
	require.NoError(t, err)
	assert.IsType(t, Noop{}, r)
	assert.ErrorIs(t, r.Refresh(context.Background(), "doc.docx"), ErrUnavailable)
}

func TestNewCommandParsesQuotes(t *testing.T) {
	c, err := NewCommand(`soffice --headless "macro:///Standard.Fields.Update({file})"`)
	require.NoError(t, err)
	assert.Equal(t, "soffice", c.name)
	assert.Equal(t,
		[]string{"--headless", "macro:///Standard.Fields.Update(/tmp/a b.docx)"},
		c.Args("/tmp/a b.docx"))
}

func TestArgsAppendPath(t *testing.T) {
	c, err := NewCommand("updatefields -q")
	require.NoError(t, err)
	assert.Equal(t, []string{"-q", "out.docx"}, c.Args("out.docx"))
	assert.Equal(t, "updatefields -q", c.String())
}

func TestNewCommandRejectsBadQuoting(t *testing.T) {
	_, err := NewCommand(`soffice "unterminated`)
	assert.Error(t, err)
}

func TestRefreshMissingBinary(t *testing.T) {
	c, err := NewCommand("rpgen-no-such-refresher-binary")
	require.NoError(t, err)
	assert.ErrorIs(t, c.Refresh(context.Background(), "doc.docx"), ErrUnavailable)
}

func TestRefreshRunsCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}
	doc := filepath.Join(t.TempDir(), "out.docx")

	c, err := NewCommand(`sh -c 'touch "$0.refreshed"' {file}`)
	require.NoError(t, err)
	require.NoError(t, c.Refresh(context.Background(), doc))

	_, statErr := os.Stat(doc + ".refreshed")
	assert.NoError(t, statErr)
}

func TestRefreshReportsFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}
	c, err := NewCommand(`sh -c 'echo boom; exit 3'`)
	require.NoError(t, err)

	err = c.Refresh(context.Background(), "doc.docx")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "boom")
}
