package outline

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/dshills/designable/internal/designer"
	"github.com/dshills/designable/internal/event"
	"github.com/dshills/designable/internal/event/events"
	"github.com/dshills/designable/internal/event/topic"
	"github.com/dshills/designable/internal/tree"
)

// redrawTopics are the events that change what the outline shows.
var redrawTopics = []topic.Topic{
	"tree.**",
	events.TopicSelectionChanged,
	"workspace.*",
	"drag.*",
	events.TopicScreenChanged,
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithStyles replaces the default palette.
func WithStyles(s Styles) Option {
	return func(r *Renderer) {
		r.styles = s
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithScheduler defers redraws through schedule, typically the terminal
// loop's Do. Invalidations are coalesced until the scheduled flush runs.
// Without a scheduler every invalidation redraws immediately.
func WithScheduler(schedule func(fn func()) error) Option {
	return func(r *Renderer) {
		r.schedule = schedule
	}
}

// Renderer draws the outline of every workspace.
type Renderer struct {
	screen   tcell.Screen
	designer *designer.Designer
	logger   *zap.Logger
	styles   Styles
	schedule func(fn func()) error

	panes     []*pane
	statusRow int
	dirty     bool
	pending   bool
	draws     int
	closed    bool
	disposers []event.Disposer
}

// New creates a renderer for d on screen, installs it as the cursor's hit
// tester and attaches a viewport to every workspace.
func New(screen tcell.Screen, d *designer.Designer, opts ...Option) (*Renderer, error) {
	r := &Renderer{
		screen:   screen,
		designer: d,
		logger:   zap.NewNop(),
		styles:   DefaultStyles(),
	}
	for _, opt := range opts {
		opt(r)
	}

	redraw := func(context.Context, any) error {
		r.Invalidate()
		return nil
	}
	for _, t := range redrawTopics {
		dispose, err := d.Bus().On(t, redraw)
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("outline: subscribe %s: %w", t, err)
		}
		r.disposers = append(r.disposers, dispose)
	}

	width, height := screen.Size()
	r.statusRow = statusRow(height)
	r.layout(d.Workbench().Workspaces(), width)
	d.Cursor().SetHitTester(r)
	return r, nil
}

// Invalidate marks the outline stale and redraws it, directly or through
// the scheduler.
func (r *Renderer) Invalidate() {
	if r.closed {
		return
	}
	r.dirty = true
	if r.schedule == nil {
		r.Draw()
		return
	}
	if r.pending {
		return
	}
	r.pending = true
	if err := r.schedule(r.flush); err != nil {
		r.pending = false
		r.logger.Debug("outline redraw not scheduled", zap.Error(err))
	}
}

func (r *Renderer) flush() {
	r.pending = false
	if r.dirty && !r.closed {
		r.Draw()
	}
}

// Draws returns how many times the outline has been drawn.
func (r *Renderer) Draws() int { return r.draws }

// Draw redraws the whole screen.
func (r *Renderer) Draw() {
	r.dirty = false
	r.draws++

	width, height := r.screen.Size()
	r.statusRow = statusRow(height)
	r.screen.Clear()

	r.layout(r.designer.Workbench().Workspaces(), width)
	if len(r.panes) == 0 {
		r.drawText(0, headerRow, width, "no workspaces", r.styles.Muted)
	}
	current := r.designer.Workbench().CurrentWorkspace()
	dragging := r.designer.Cursor().DragState().NodeIDs
	for i, p := range r.panes {
		r.drawPane(p, p.ws == current, dragging)
		if i < len(r.panes)-1 {
			r.drawDivider(p.x+p.width-1)
		}
	}
	r.drawStatus(width)
	r.screen.Show()
}

func (r *Renderer) drawPane(p *pane, current bool, dragging []tree.NodeID) {
	header := r.styles.Header
	if current {
		header = r.styles.HeaderCurrent
	}
	inner := p.width
	if p.x+p.width < r.screenWidth() {
		inner--
	}
	r.drawText(p.x, headerRow, inner, p.ws.Title(), header)

	p.rows = p.rows[:0]
	op := p.ws.Operation()
	y := headerRow + 1
	op.Tree().Each(func(n *tree.Node) bool {
		if y >= r.statusRow {
			return false
		}
		style := r.styles.Node
		switch {
		case slices.Contains(dragging, n.ID()):
			style = r.styles.Dragging
		case op.Has(n.ID()):
			style = r.styles.Selected
		}
		label := strings.Repeat("  ", n.Depth()) + n.ComponentName()
		r.drawText(p.x, y, inner, label, style)
		p.rows = append(p.rows, row{y: y, id: n.ID()})
		y++
		return true
	})
}

func (r *Renderer) drawDivider(x int) {
	for y := 0; y < r.statusRow; y++ {
		r.screen.SetContent(x, y, tcell.RuneVLine, nil, r.styles.Divider)
	}
}

func (r *Renderer) drawStatus(width int) {
	_, height := r.screen.Size()
	if r.statusRow >= height {
		return
	}
	scr := r.designer.Screen()
	sw, sh := scr.Size()
	line := fmt.Sprintf(" %s %dx%d | %s | %d selected",
		scr.Effective(), sw, sh,
		r.designer.Cursor().State(),
		len(r.designer.GetAllSelectedNodes()),
	)
	for x := 0; x < width; x++ {
		r.screen.SetContent(x, r.statusRow, ' ', nil, r.styles.Status)
	}
	r.drawText(0, r.statusRow, width, line, r.styles.Status)
}

func (r *Renderer) drawText(x, y, width int, s string, style tcell.Style) {
	col := 0
	for _, ch := range s {
		if col >= width {
			return
		}
		r.screen.SetContent(x+col, y, ch, nil, style)
		col++
	}
}

func (r *Renderer) screenWidth() int {
	w, _ := r.screen.Size()
	return w
}

// Close unsubscribes the renderer and detaches it from the cursor and the
// workspaces.
func (r *Renderer) Close() {
	if r.closed {
		return
	}
	r.closed = true
	for _, dispose := range r.disposers {
		dispose()
	}
	r.disposers = nil
	for _, p := range r.panes {
		if p.ws.Viewport() == p {
			p.ws.SetViewport(nil)
		}
	}
	r.panes = nil
	r.designer.Cursor().SetHitTester(nil)
}

// statusRow is the last row, or past the screen when it has a single row.
func statusRow(height int) int {
	if height <= 1 {
		return height
	}
	return height - 1
}
