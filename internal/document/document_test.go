package document

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/designable/internal/designer"
	"github.com/dshills/designable/internal/event"
	"github.com/dshills/designable/internal/event/events"
	"github.com/dshills/designable/internal/tree"
	"github.com/dshills/designable/internal/workspace"
)

const jsonDoc = `{
  "componentName": "Root",
  "children": [
    {"componentName": "Form", "children": [{"componentName": "Input"}]},
    {"componentName": "Button", "props": {"label": "OK"}}
  ]
}`

const yamlDoc = `componentName: Root
children:
  - componentName: Card
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newDesigner(t *testing.T) *designer.Designer {
	t.Helper()
	d, err := designer.New(designer.Props{})
	require.NoError(t, err)
	t.Cleanup(d.Close)
	_, err = d.Workbench().AddWorkspace(workspace.Props{ID: "main"})
	require.NoError(t, err)
	return d
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	s, err := Load(writeFile(t, dir, "page.json", jsonDoc))
	require.NoError(t, err)
	assert.Equal(t, "Root", s.ComponentName)
	assert.Equal(t, 4, s.Count())
	assert.Equal(t, "OK", s.Children[1].Props["label"])

	s, err = Load(writeFile(t, dir, "page.yml", yamlDoc))
	require.NoError(t, err)
	assert.Equal(t, 2, s.Count())
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(writeFile(t, dir, "page.txt", jsonDoc))
	assert.ErrorIs(t, err, tree.ErrUnsupportedFormat)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, dir, "broken.json", "{"))
	assert.Error(t, err)
}

func TestReloadReplacesCurrentTree(t *testing.T) {
	d := newDesigner(t)
	rootID := d.GetCurrentTree().ID()

	var got []events.DocumentReloadedPayload
	_, err := event.Listen(d.Bus(), events.DocumentReloaded,
		func(_ context.Context, e event.Event[events.DocumentReloadedPayload]) error {
			got = append(got, e.Payload)
			return nil
		})
	require.NoError(t, err)

	path := writeFile(t, t.TempDir(), "page.json", jsonDoc)
	require.NoError(t, Reload(d, path))

	root := d.GetCurrentTree()
	assert.Equal(t, rootID, root.ID())
	assert.Equal(t, 4, root.Count())
	assert.Len(t, root.FindByComponent("Input"), 1)
	require.Len(t, got, 1)
	assert.Equal(t, path, got[0].Path)
	assert.Equal(t, 4, got[0].NodeCount)
}

func TestReloadFailureKeepsTree(t *testing.T) {
	d := newDesigner(t)
	path := writeFile(t, t.TempDir(), "page.json", jsonDoc)
	require.NoError(t, Reload(d, path))

	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	assert.Error(t, Reload(d, path))
	assert.Equal(t, 4, d.GetCurrentTree().Count())
}

func TestSaveRoundTrip(t *testing.T) {
	d := newDesigner(t)
	dir := t.TempDir()
	require.NoError(t, Reload(d, writeFile(t, dir, "page.json", jsonDoc)))

	out := filepath.Join(dir, "out.yaml")
	require.NoError(t, Save(d, out))

	s, err := Load(out)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Count())
	assert.Equal(t, string(d.GetCurrentTree().ID()), s.ID)
}

func TestSaveWithoutWorkspace(t *testing.T) {
	d, err := designer.New(designer.Props{})
	require.NoError(t, err)
	defer d.Close()

	assert.Error(t, Save(d, filepath.Join(t.TempDir(), "out.json")))
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "page.json", jsonDoc)

	changed := make(chan string, 4)
	w, err := Watch(path, func(p string) { changed <- p }, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	// Unrelated files in the same directory are ignored.
	writeFile(t, dir, "other.json", jsonDoc)
	for range 3 {
		require.NoError(t, os.WriteFile(path, []byte(yamlDoc), 0o644))
	}

	select {
	case p := <-changed:
		assert.Equal(t, w.Path(), p)
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
	assert.GreaterOrEqual(t, w.Changes(), int64(1))
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	path := writeFile(t, t.TempDir(), "page.json", jsonDoc)
	w, err := Watch(path, nil)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
