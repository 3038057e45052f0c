package tree

import (
	"maps"

	"github.com/google/uuid"
)

// NodeID uniquely identifies a node within a Registry.
type NodeID string

// NewNodeID returns a fresh random id.
func NewNodeID() NodeID {
	return NodeID(uuid.NewString())
}

// String returns the id as a string.
func (id NodeID) String() string {
	return string(id)
}

// IDs converts a list of ids to strings.
func IDs(ids []NodeID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

// Data is the semantic payload of a node: the UI component it represents
// and that component's properties.
type Data struct {
	ComponentName string
	Props         map[string]any
}

// Clone returns a copy with its own top-level props map.
func (d Data) Clone() Data {
	return Data{ComponentName: d.ComponentName, Props: maps.Clone(d.Props)}
}

// Serialized is the payload description of a subtree, as loaded from a
// document or produced by Node.Serialize.
type Serialized struct {
	ID            string         `json:"id,omitempty" yaml:"id,omitempty"`
	ComponentName string         `json:"componentName" yaml:"componentName"`
	Props         map[string]any `json:"props,omitempty" yaml:"props,omitempty"`
	Children      []Serialized   `json:"children,omitempty" yaml:"children,omitempty"`
}

// Count returns the number of nodes described, including s itself.
func (s Serialized) Count() int {
	n := 1
	for _, c := range s.Children {
		n += c.Count()
	}
	return n
}
