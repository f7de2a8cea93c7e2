package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	missing := filepath.Join(t.TempDir(), "none.env")
	root.SetArgs(append([]string{"--env-file", missing}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	out, err := runCLI(t, "render", "--shape", "bar", "--color", "#F87171", "3/4")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<svg"))
	assert.Equal(t, 4, strings.Count(out, "<rect"))
	assert.Equal(t, 3, strings.Count(out, `fill="#F87171"`))
}

func TestRenderCommandRejectsBadInput(t *testing.T) {
	for _, args := range [][]string{
		{"render", "three-quarters"},
		{"render", "1/0"},
		{"render", "--shape", "star", "1/2"},
	} {
		_, err := runCLI(t, args...)
		assert.Error(t, err, args)
	}
}

func TestPlayRejectsUnknownTier(t *testing.T) {
	_, err := runCLI(t, "play", "--tier", "nightmare")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown difficulty tier")
}

func TestParseFraction(t *testing.T) {
	f, err := parseFraction("6/8")
	require.NoError(t, err)
	assert.Equal(t, 6, f.Numerator)
	assert.Equal(t, 8, f.Denominator)
}
