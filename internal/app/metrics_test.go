package app

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/designable/internal/designer"
	"github.com/dshills/designable/internal/tree"
	"github.com/dshills/designable/internal/workspace"
)

func newMetricsDesigner(t *testing.T) (*designer.Designer, *Metrics) {
	t.Helper()
	d, err := designer.New(designer.Props{})
	require.NoError(t, err)
	t.Cleanup(d.Close)
	m, err := NewMetrics(d)
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return d, m
}

func TestMetricsCountEvents(t *testing.T) {
	d, m := newMetricsDesigner(t)

	ws, err := d.Workbench().AddWorkspace(workspace.Props{ID: "main"})
	require.NoError(t, err)
	_, err = d.CreateNode(tree.Data{ComponentName: "Button"}, ws.Operation().Tree())
	require.NoError(t, err)
	_, err = d.CreateNode(tree.Data{ComponentName: "Input"}, ws.Operation().Tree())
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.events.WithLabelValues("workspace.added")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.events.WithLabelValues("tree.node.created")))

	m.Close()
	_, err = d.CreateNode(tree.Data{ComponentName: "Late"}, ws.Operation().Tree())
	require.NoError(t, err)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.events.WithLabelValues("tree.node.created")))
}

func TestMetricsSample(t *testing.T) {
	d, m := newMetricsDesigner(t)
	ws, err := d.Workbench().AddWorkspace(workspace.Props{ID: "main"})
	require.NoError(t, err)
	btn, err := d.CreateNode(tree.Data{ComponentName: "Button"}, ws.Operation().Tree())
	require.NoError(t, err)
	ws.Operation().Select(btn.ID())

	m.Sample()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.workspaces))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.nodes))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.selected))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.dragging))
	assert.Equal(t, float64(d.Bus().Stats().ActiveSubscriptions), testutil.ToFloat64(m.subscriptions))

	require.NoError(t, d.Cursor().StartDrag(ws, btn.ID()))
	m.Sample()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dragging))
}

func TestMetricsRecordReload(t *testing.T) {
	_, m := newMetricsDesigner(t)

	m.RecordReload(nil)
	m.RecordReload(nil)
	m.RecordReload(errors.New("bad document"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.reloads.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reloads.WithLabelValues("error")))
}

func TestMetricsHandler(t *testing.T) {
	_, m := newMetricsDesigner(t)
	m.Sample()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "designable_workspaces 0"), body)
	assert.Contains(t, body, "# TYPE designable_bus_subscriptions gauge")

	n, err := testutil.GatherAndCount(m.Registry(), "designable_tree_nodes")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
