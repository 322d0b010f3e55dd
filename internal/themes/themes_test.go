package themes

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"contemporary", "minimalist", "retro"}, Names())
}

func TestCSS(t *testing.T) {
	for _, name := range Names() {
		css, err := CSS(name)
		require.NoError(t, err, name)
		assert.Contains(t, css, ".month-name", name)
	}

	def, err := CSS("")
	require.NoError(t, err)
	minimal, err := CSS(Default)
	require.NoError(t, err)
	assert.Equal(t, minimal, def)
}

func TestCSSUnknown(t *testing.T) {
	for _, name := range []string{"neon", "../go.mod", "minimalist.css"} {
		_, err := CSS(name)
		assert.True(t, errors.Is(err, ErrUnknownTheme), name)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.css")
	require.NoError(t, os.WriteFile(path, []byte("body { color: red; }"), 0644))

	css, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "body { color: red; }", css)

	_, err = Load(filepath.Join(t.TempDir(), "missing.css"))
	assert.True(t, errors.Is(err, ErrUnknownTheme))
}

func TestLoadBundled(t *testing.T) {
	css, err := Load("retro")
	require.NoError(t, err)
	assert.Contains(t, css, "Courier")
}
