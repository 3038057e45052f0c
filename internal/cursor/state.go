package cursor

import (
	"github.com/dshills/designable/internal/event/events"
	"github.com/dshills/designable/internal/input/key"
	"github.com/dshills/designable/internal/tree"
	"github.com/dshills/designable/internal/workspace"
)

// State is the drag state of the cursor.
type State int

const (
	// StateIdle means no gesture is active.
	StateIdle State = iota

	// StateDragging means nodes are being dragged.
	StateDragging

	// StateDropped is the outcome of a gesture accepted by a drop target.
	StateDropped

	// StateCancelled is the outcome of an aborted gesture.
	StateCancelled
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateDropped:
		return "dropped"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Position is a pointer position in surface cells.
type Position struct {
	X, Y int
}

// Hit is what lies under the pointer: a workspace and, optionally, a node
// of its tree.
type Hit struct {
	Workspace *workspace.Workspace
	NodeID    tree.NodeID
}

// HitTester resolves surface positions. The outline renderer implements it.
type HitTester interface {
	HitTest(x, y int) (Hit, bool)
}

// DragState is a snapshot of the cursor.
type DragState struct {
	State       State
	OriginID    string
	NodeIDs     []tree.NodeID
	Button      events.Button
	Modifiers   key.Modifier
	StartPos    Position
	CurrentPos  Position
	LastOutcome State
}

// tracker follows a pressed pointer until release.
type tracker struct {
	active    bool
	button    events.Button
	modifiers key.Modifier
	hit       Hit
	hasHit    bool
	startPos  Position
	moved     bool
}

func (t *tracker) start(pos Position, button events.Button, mods key.Modifier, hit Hit, ok bool) {
	*t = tracker{
		active:    true,
		button:    button,
		modifiers: mods,
		hit:       hit,
		hasHit:    ok,
		startPos:  pos,
	}
}

func (t *tracker) distance(pos Position) int {
	dx, dy := pos.X-t.startPos.X, pos.Y-t.startPos.Y
	return max(abs(dx), abs(dy))
}

func (t *tracker) end() {
	*t = tracker{}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
