package prompts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	assert.True(t, strings.HasPrefix(c.System, "You are **TripSmith**"))
	assert.False(t, strings.HasSuffix(c.Refinement, "\n"))
	assert.Contains(t, c.ToolIOTemplates, "WEATHER_DATA:")
	assert.Contains(t, c.ToolIOTemplates, "EVENTS_DATA:")
	assert.Contains(t, c.ToolIOTemplates, "BUDGET_DATA:")
	assert.Contains(t, c.Seed(), c.ToneFewshots)
}

func TestRouterRequest(t *testing.T) {
	c := &Catalog{RouterInstructions: "CLASSIFY", RouterFewshots: "SHOTS"}
	assert.Equal(t, "CLASSIFY\n\nSHOTS\n\nUSER: Tokyo in April?\nJSON:", c.RouterRequest("Tokyo in April?"))
}

func TestInstructionsOrder(t *testing.T) {
	c := &Catalog{
		ToolPolicy:      "policy",
		HiddenScaffold:  "scaffold",
		ErrorHandling:   "errors",
		SelfCheck:       "check",
		AnswerStyle:     "style",
		ToolIOTemplates: "io",
	}
	assert.Equal(t, []string{"policy", "scaffold", "errors", "check", "style", "io"}, c.Instructions())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("empty path", func(t *testing.T) {
		c, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), c)
	})

	t.Run("partial override", func(t *testing.T) {
		path := filepath.Join(dir, "override.yaml")
		require.NoError(t, os.WriteFile(path, []byte("answer_style: Reply in haiku.\n"), 0o600))

		c, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "Reply in haiku.", c.AnswerStyle)
		assert.Equal(t, Default().System, c.System)
	})

	t.Run("blanked entry", func(t *testing.T) {
		path := filepath.Join(dir, "blank.yaml")
		require.NoError(t, os.WriteFile(path, []byte("self_check: \"\"\n"), 0o600))

		_, err := Load(path)
		assert.ErrorIs(t, err, ErrMissingPrompt)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("system: [unclosed\n"), 0o600))

		_, err := Load(path)
		assert.Error(t, err)
	})
}
