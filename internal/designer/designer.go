package designer

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/designable/internal/cursor"
	"github.com/dshills/designable/internal/event"
	"github.com/dshills/designable/internal/keyboard"
	"github.com/dshills/designable/internal/screen"
	"github.com/dshills/designable/internal/tree"
	"github.com/dshills/designable/internal/validation"
	"github.com/dshills/designable/internal/workspace"
)

// Option configures a Designer.
type Option func(*options)

type options struct {
	logger   *zap.Logger
	registry *tree.Registry
	bus      *event.Bus
}

// WithLogger sets the logger shared by every collaborator.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRegistry uses an existing node registry instead of a fresh one.
func WithRegistry(r *tree.Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithBus uses an existing bus instead of a fresh one.
func WithBus(b *event.Bus) Option {
	return func(o *options) { o.bus = b }
}

// Designer is the facade over a workbench of workspaces and the input
// collaborators.
type Designer struct {
	id     string
	props  Props
	logger *zap.Logger

	bus       *event.Bus
	registry  *tree.Registry
	workbench *workspace.Workbench
	cursor    *cursor.Cursor
	keyboard  *keyboard.Keyboard
	screen    *screen.Screen

	mu      sync.Mutex
	closers []func()
	closed  bool
}

// New builds a designer from props merged over DefaultProps and runs its
// effects in order. A failing effect closes the designer and is returned.
func New(props Props, opts ...Option) (*Designer, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	props = props.merged()
	if err := validation.Struct(props); err != nil {
		return nil, newOperationError("new", "", err)
	}

	if o.bus == nil {
		o.bus = event.NewBus(event.WithLogger(o.logger))
	}
	if o.registry == nil {
		o.registry = tree.NewRegistry(tree.WithLogger(o.logger))
	}
	o.registry.SetEmitter(o.bus)

	d := &Designer{
		id:       uuid.NewString(),
		props:    props,
		logger:   o.logger,
		bus:      o.bus,
		registry: o.registry,
	}
	d.logger = d.logger.With(zap.String("designer", d.id))

	d.workbench = workspace.NewWorkbench(workspace.Config{
		Registry:          d.registry,
		Bus:               d.bus,
		RootComponentName: props.RootComponentName,
		Logger:            d.logger,
	})

	var err error
	d.screen, err = screen.New(screen.Config{
		Bus:         d.bus,
		DefaultType: props.DefaultScreenType,
		Logger:      d.logger,
	})
	if err != nil {
		return nil, newOperationError("new", "screen", err)
	}

	d.cursor, err = cursor.New(cursor.Config{
		Workbench:     d.workbench,
		Bus:           d.bus,
		DragThreshold: props.DragThreshold,
		Logger:        d.logger,
	})
	if err != nil {
		d.screen.Close()
		return nil, newOperationError("new", "cursor", err)
	}

	d.keyboard, err = keyboard.New(keyboard.Config{
		Bus:       d.bus,
		Shortcuts: d.bindActions(props.Shortcuts),
		Logger:    d.logger,
	})
	if err != nil {
		d.cursor.Close()
		d.screen.Close()
		return nil, newOperationError("new", "keyboard", err)
	}

	for i, effect := range props.Effects {
		if effect == nil {
			continue
		}
		if err := effect(d); err != nil {
			d.Close()
			return nil, newOperationError("effect", fmt.Sprintf("#%d", i), err)
		}
	}

	d.logger.Debug("designer created",
		zap.Int("shortcuts", len(props.Shortcuts)),
		zap.Int("effects", len(props.Effects)),
	)
	return d, nil
}

// ID returns the designer id.
func (d *Designer) ID() string { return d.id }

// Props returns the merged configuration.
func (d *Designer) Props() Props { return d.props }

// Logger returns the designer's logger.
func (d *Designer) Logger() *zap.Logger { return d.logger }

// Bus returns the event bus.
func (d *Designer) Bus() *event.Bus { return d.bus }

// Registry returns the node registry.
func (d *Designer) Registry() *tree.Registry { return d.registry }

// Workbench returns the workbench.
func (d *Designer) Workbench() *workspace.Workbench { return d.workbench }

// Cursor returns the gesture coordinator.
func (d *Designer) Cursor() *cursor.Cursor { return d.cursor }

// Keyboard returns the shortcut matcher.
func (d *Designer) Keyboard() *keyboard.Keyboard { return d.keyboard }

// Screen returns the preview screen.
func (d *Designer) Screen() *screen.Screen { return d.screen }

// SetCurrentTree replaces the current workspace's tree with payload. It is a
// no-op when there is no current workspace.
func (d *Designer) SetCurrentTree(payload tree.Serialized) error {
	ws := d.workbench.CurrentWorkspace()
	if ws == nil {
		return nil
	}
	if err := ws.Operation().Tree().From(payload); err != nil {
		return newOperationError("set-current-tree", ws.ID(), err)
	}
	return nil
}

// GetCurrentTree returns the root of the current workspace's tree, or nil.
func (d *Designer) GetCurrentTree() *tree.Node {
	ws := d.workbench.CurrentWorkspace()
	if ws == nil {
		return nil
	}
	return ws.Operation().Tree()
}

// GetAllSelectedNodes returns the selected nodes of every workspace, in
// workspace order then selection order.
func (d *Designer) GetAllSelectedNodes() []*tree.Node {
	var nodes []*tree.Node
	d.workbench.EachWorkspace(func(ws *workspace.Workspace) bool {
		nodes = append(nodes, ws.Operation().GetSelectedNodes()...)
		return true
	})
	return nodes
}

// FindNodeByID returns the registered node with id, or nil.
func (d *Designer) FindNodeByID(id tree.NodeID) *tree.Node {
	return d.registry.FindByID(id)
}

// FindDraggingNodes returns the nodes being dragged in any workspace. A node
// appears once even if several workspaces report it.
func (d *Designer) FindDraggingNodes() []*tree.Node {
	var nodes []*tree.Node
	d.workbench.EachWorkspace(func(ws *workspace.Workspace) bool {
		for _, n := range ws.Operation().Dragon().DragNodes() {
			if !slices.Contains(nodes, n) {
				nodes = append(nodes, n)
			}
		}
		return true
	})
	return nodes
}

// CreateNode registers a node and appends it to parent when parent is not
// nil.
func (d *Designer) CreateNode(data tree.Data, parent *tree.Node) (*tree.Node, error) {
	n, err := d.registry.CreateNode(data, parent)
	if err != nil {
		target := ""
		if parent != nil {
			target = parent.ID().String()
		}
		return nil, newOperationError("create-node", target, err)
	}
	return n, nil
}

// Mount attaches the bus to src through the configured drivers. Mounting
// again replaces the previous surface.
func (d *Designer) Mount(src event.Source) error {
	if d.isClosed() {
		return newOperationError("mount", "", ErrClosed)
	}
	if err := d.bus.AttachEvents(src, d.props.Drivers...); err != nil {
		return newOperationError("mount", "", err)
	}
	d.logger.Debug("designer mounted", zap.Int("listeners", d.bus.AttachedCount()))
	return nil
}

// Unmount detaches the bus from the input surface. It is safe to call
// without Mount and more than once.
func (d *Designer) Unmount() {
	if !d.bus.Attached() {
		return
	}
	d.bus.DetachEvents()
	d.logger.Debug("designer unmounted")
}

// Mounted reports whether the designer is attached to an input surface.
func (d *Designer) Mounted() bool {
	return d.bus.Attached()
}

// OnClose registers fn to run when the designer closes. Callbacks run in
// reverse registration order.
func (d *Designer) OnClose(fn func()) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closers = append(d.closers, fn)
}

// Close unmounts the designer, releases its collaborators and disposes
// every workspace. It is idempotent.
func (d *Designer) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	closers := d.closers
	d.closers = nil
	d.mu.Unlock()

	d.Unmount()
	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
	d.cursor.Close()
	d.keyboard.Close()
	d.screen.Close()
	d.workbench.Close()
	d.logger.Debug("designer closed")
}

func (d *Designer) isClosed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}
