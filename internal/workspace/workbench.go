package workspace

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/designable/internal/event"
	"github.com/dshills/designable/internal/event/events"
	"github.com/dshills/designable/internal/operation"
	"github.com/dshills/designable/internal/tree"
)

// Common errors.
var (
	ErrWorkspaceExists   = errors.New("workspace already exists")
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrWorkbenchClosed   = errors.New("workbench is closed")
)

// Config configures a Workbench.
type Config struct {
	// Registry is the arena every workspace tree is created in.
	Registry *tree.Registry

	// Bus receives workspace events and is handed to each operation.
	Bus *event.Bus

	// RootComponentName names each new tree's root.
	RootComponentName string

	// Logger is optional.
	Logger *zap.Logger
}

// Workbench owns the ordered workspaces and the current-workspace pointer.
type Workbench struct {
	mu         sync.RWMutex
	cfg        Config
	logger     *zap.Logger
	workspaces []*Workspace
	current    *Workspace
	closed     bool
}

// NewWorkbench creates an empty workbench.
func NewWorkbench(cfg Config) *Workbench {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workbench{cfg: cfg, logger: logger}
}

// AddWorkspace creates a workspace with a fresh operation and appends it.
// The first workspace added becomes current.
func (wb *Workbench) AddWorkspace(props Props) (*Workspace, error) {
	if props.ID == "" {
		props.ID = uuid.NewString()
	}

	wb.mu.Lock()
	if wb.closed {
		wb.mu.Unlock()
		return nil, ErrWorkbenchClosed
	}
	if wb.find(props.ID) != nil {
		wb.mu.Unlock()
		return nil, ErrWorkspaceExists
	}

	op, err := operation.New(operation.Config{
		WorkspaceID:       props.ID,
		Registry:          wb.cfg.Registry,
		Bus:               wb.cfg.Bus,
		RootComponentName: wb.cfg.RootComponentName,
		Logger:            wb.logger,
	})
	if err != nil {
		wb.mu.Unlock()
		return nil, err
	}

	ws := &Workspace{id: props.ID, props: props, operation: op}
	wb.workspaces = append(wb.workspaces, ws)
	focused := false
	if wb.current == nil {
		wb.current = ws
		focused = true
	}
	wb.mu.Unlock()

	wb.logger.Debug("workspace added", zap.String("workspace", ws.id))
	publish(wb, events.WorkspaceAdded, events.WorkspacePayload{WorkspaceID: ws.id, Title: ws.Title()})
	if focused {
		publish(wb, events.WorkspaceFocused, events.WorkspaceFocusedPayload{WorkspaceID: ws.id})
	}
	return ws, nil
}

// RemoveWorkspace disposes the workspace's operation and drops it. When it
// was current, the last remaining workspace becomes current.
func (wb *Workbench) RemoveWorkspace(id string) error {
	wb.mu.Lock()
	ws := wb.find(id)
	if ws == nil {
		wb.mu.Unlock()
		return ErrWorkspaceNotFound
	}
	wb.workspaces = slices.DeleteFunc(wb.workspaces, func(w *Workspace) bool { return w == ws })

	refocus := wb.current == ws
	if refocus {
		wb.current = nil
		if n := len(wb.workspaces); n > 0 {
			wb.current = wb.workspaces[n-1]
		}
	}
	next := wb.current
	wb.mu.Unlock()

	ws.operation.Dispose()

	wb.logger.Debug("workspace removed", zap.String("workspace", id))
	publish(wb, events.WorkspaceRemoved, events.WorkspacePayload{WorkspaceID: id, Title: ws.Title()})
	if refocus {
		var nextID string
		if next != nil {
			nextID = next.id
		}
		publish(wb, events.WorkspaceFocused, events.WorkspaceFocusedPayload{WorkspaceID: nextID, PreviousID: id})
	}
	return nil
}

// SetCurrent marks a workspace as current.
func (wb *Workbench) SetCurrent(id string) error {
	wb.mu.Lock()
	ws := wb.find(id)
	if ws == nil {
		wb.mu.Unlock()
		return ErrWorkspaceNotFound
	}
	prev := wb.current
	wb.current = ws
	wb.mu.Unlock()

	if prev == ws {
		return nil
	}
	var prevID string
	if prev != nil {
		prevID = prev.id
	}
	publish(wb, events.WorkspaceFocused, events.WorkspaceFocusedPayload{WorkspaceID: id, PreviousID: prevID})
	return nil
}

// CurrentWorkspace returns the workspace last marked current, or nil.
func (wb *Workbench) CurrentWorkspace() *Workspace {
	wb.mu.RLock()
	defer wb.mu.RUnlock()
	return wb.current
}

// FindWorkspace returns the workspace with id, or nil.
func (wb *Workbench) FindWorkspace(id string) *Workspace {
	wb.mu.RLock()
	defer wb.mu.RUnlock()
	return wb.find(id)
}

// FindByNode returns the workspace whose tree contains node, or nil.
func (wb *Workbench) FindByNode(node *tree.Node) *Workspace {
	var found *Workspace
	wb.EachWorkspace(func(ws *Workspace) bool {
		if ws.operation.Owns(node) {
			found = ws
			return false
		}
		return true
	})
	return found
}

// EachWorkspace calls fn for every workspace in insertion order over a
// snapshot taken at call start. Returning false stops the iteration.
func (wb *Workbench) EachWorkspace(fn func(*Workspace) bool) {
	for _, ws := range wb.Workspaces() {
		if !fn(ws) {
			return
		}
	}
}

// Workspaces returns a snapshot of the workspaces in insertion order.
func (wb *Workbench) Workspaces() []*Workspace {
	wb.mu.RLock()
	defer wb.mu.RUnlock()
	return slices.Clone(wb.workspaces)
}

// Len returns the number of workspaces.
func (wb *Workbench) Len() int {
	wb.mu.RLock()
	defer wb.mu.RUnlock()
	return len(wb.workspaces)
}

// Close removes every workspace and rejects further additions.
func (wb *Workbench) Close() {
	for _, ws := range wb.Workspaces() {
		if err := wb.RemoveWorkspace(ws.id); err != nil {
			wb.logger.Debug("workspace not removed on close", zap.String("workspace", ws.id), zap.Error(err))
		}
	}
	wb.mu.Lock()
	wb.closed = true
	wb.mu.Unlock()
}

func (wb *Workbench) find(id string) *Workspace {
	for _, ws := range wb.workspaces {
		if ws.id == id {
			return ws
		}
	}
	return nil
}

func publish[T any](wb *Workbench, k event.Kind[T], payload T) {
	if wb.cfg.Bus == nil {
		return
	}
	if err := event.Publish(context.Background(), wb.cfg.Bus, k, payload, "workbench"); err != nil {
		wb.logger.Debug("workspace event not delivered", zap.Error(err))
	}
}
