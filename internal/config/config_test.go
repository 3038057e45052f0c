package config

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/designable/internal/config/loader"
	"github.com/dshills/designable/internal/validation"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load("", WithFS(fstest.MapFS{}), WithEnv(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	fsys := fstest.MapFS{
		"designable.toml": {Data: []byte(`
[log]
level = "debug"
format = "json"
file = "out.log"

[designer]
screen = "Responsive"
workspaces = ["page", "dialog"]
effects = ["effects/init.lua"]

[[shortcuts]]
name = "delete"
keys = ["Delete", "Backspace"]

[[shortcuts]]
name = "select-all"
keys = ["Ctrl+A"]

[document]
path = "page.yaml"
watch = true
`)},
	}

	cfg, err := Load("designable.toml", WithFS(fsys), WithEnv(nil))
	require.NoError(t, err)

	assert.Equal(t, LogConfig{Level: "debug", Format: "json", File: "out.log"}, cfg.Log)
	assert.Equal(t, "Root", cfg.Designer.RootComponent)
	assert.Equal(t, "Responsive", cfg.Designer.Screen)
	assert.Equal(t, 1, cfg.Designer.DragThreshold)
	assert.Equal(t, []string{"page", "dialog"}, cfg.Designer.Workspaces)
	assert.Equal(t, []string{"effects/init.lua"}, cfg.Designer.Effects)
	assert.Equal(t, []ShortcutConfig{
		{Name: "delete", Keys: []string{"Delete", "Backspace"}},
		{Name: "select-all", Keys: []string{"Ctrl+A"}},
	}, cfg.Shortcuts)
	assert.Equal(t, DocumentConfig{Path: "page.yaml", Watch: true}, cfg.Document)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	fsys := fstest.MapFS{
		"designable.toml": {Data: []byte("[designer]\nscreen = \"Mobile\"\n")},
	}
	t.Setenv("DESIGNABLE_SCREEN", "Sketch")
	t.Setenv("DESIGNABLE_DESIGNER_DRAG_THRESHOLD", "3")
	t.Setenv("DESIGNABLE_METRICS_ENABLED", "on")

	cfg, err := Load("designable.toml", WithFS(fsys))
	require.NoError(t, err)
	assert.Equal(t, "Sketch", cfg.Designer.Screen)
	assert.Equal(t, 3, cfg.Designer.DragThreshold)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "127.0.0.1:9464", cfg.Metrics.Addr)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"level":     "[log]\nlevel = \"loud\"\n",
		"screen":    "[designer]\nscreen = \"Watch\"\n",
		"threshold": "[designer]\ndrag_threshold = -1\n",
		"workspace": "[designer]\nworkspaces = []\n",
		"shortcut":  "[[shortcuts]]\nname = \"x\"\nkeys = []\n",
		"metrics":   "[metrics]\nenabled = true\naddr = \"\"\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			fsys := fstest.MapFS{"designable.toml": {Data: []byte(doc)}}
			_, err := Load("designable.toml", WithFS(fsys), WithEnv(nil))
			assert.ErrorIs(t, err, validation.ErrInvalid)
		})
	}
}

func TestLoadParseError(t *testing.T) {
	fsys := fstest.MapFS{"designable.toml": {Data: []byte("[log\n")}}
	_, err := Load("designable.toml", WithFS(fsys), WithEnv(nil))

	var perr *loader.ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestLoadTypeMismatch(t *testing.T) {
	fsys := fstest.MapFS{"designable.toml": {Data: []byte("[designer]\ndrag_threshold = \"far\"\n")}}
	_, err := Load("designable.toml", WithFS(fsys), WithEnv(nil))
	assert.ErrorContains(t, err, "decoding config")
}
