package outline

import (
	"github.com/dshills/designable/internal/cursor"
	"github.com/dshills/designable/internal/tree"
	"github.com/dshills/designable/internal/workspace"
)

// headerRow is the row holding workspace titles.
const headerRow = 0

type row struct {
	y  int
	id tree.NodeID
}

// pane is the column of one workspace. It is the workspace's Viewport.
type pane struct {
	r     *Renderer
	ws    *workspace.Workspace
	x     int
	width int
	rows  []row
}

func (p *pane) Invalidate() {
	p.r.Invalidate()
}

func (p *pane) contains(x int) bool {
	return x >= p.x && x < p.x+p.width
}

func (p *pane) nodeAt(y int) (tree.NodeID, bool) {
	if y == headerRow {
		return p.ws.Operation().Tree().ID(), true
	}
	for _, rw := range p.rows {
		if rw.y == y {
			return rw.id, true
		}
	}
	return "", false
}

// HitTest resolves a surface cell against the last drawn layout. The title
// row resolves to the workspace's root, empty space below the tree to the
// workspace alone and the status row to nothing.
func (r *Renderer) HitTest(x, y int) (cursor.Hit, bool) {
	if y < 0 || y >= r.statusRow {
		return cursor.Hit{}, false
	}
	for _, p := range r.panes {
		if !p.contains(x) {
			continue
		}
		hit := cursor.Hit{Workspace: p.ws}
		if id, ok := p.nodeAt(y); ok {
			hit.NodeID = id
		}
		return hit, true
	}
	return cursor.Hit{}, false
}

// RowOf returns the row a node was last drawn on.
func (r *Renderer) RowOf(id tree.NodeID) (x, y int, ok bool) {
	for _, p := range r.panes {
		for _, rw := range p.rows {
			if rw.id == id {
				return p.x, rw.y, true
			}
		}
	}
	return 0, 0, false
}

// layout assigns columns to the panes of workspaces, creating and
// attaching panes for new workspaces and dropping panes of removed ones.
func (r *Renderer) layout(workspaces []*workspace.Workspace, width int) {
	panes := make([]*pane, 0, len(workspaces))
	for _, ws := range workspaces {
		p := r.paneOf(ws)
		if p == nil {
			p = &pane{r: r, ws: ws}
			ws.SetViewport(p)
		}
		panes = append(panes, p)
	}
	r.panes = panes

	if len(panes) == 0 {
		return
	}
	colWidth := width / len(panes)
	for i, p := range panes {
		p.x = i * colWidth
		p.width = colWidth
		if i == len(panes)-1 {
			p.width = width - p.x
		}
	}
}

func (r *Renderer) paneOf(ws *workspace.Workspace) *pane {
	for _, p := range r.panes {
		if p.ws == ws {
			return p
		}
	}
	return nil
}
