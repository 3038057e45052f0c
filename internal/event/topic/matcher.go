package topic

import "sync"

// Matcher resolves concrete topics against a set of wildcard patterns using a
// segment trie. It is safe for concurrent use.
type Matcher struct {
	mu   sync.RWMutex
	root *trieNode
}

type trieNode struct {
	children map[string]*trieNode
	patterns []Topic
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[string]*trieNode)}
}

// NewMatcher creates an empty matcher.
func NewMatcher() *Matcher {
	return &Matcher{root: newTrieNode()}
}

// Add registers a pattern. Adding the same pattern twice is a no-op.
func (m *Matcher) Add(pattern Topic) {
	if pattern == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	node := m.root
	for _, seg := range pattern.Segments() {
		child := node.children[seg]
		if child == nil {
			child = newTrieNode()
			node.children[seg] = child
		}
		node = child
	}

	for _, p := range node.patterns {
		if p == pattern {
			return
		}
	}
	node.patterns = append(node.patterns, pattern)
}

// Remove unregisters a pattern and prunes trie branches left empty.
func (m *Matcher) Remove(pattern Topic) {
	if pattern == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	segments := pattern.Segments()
	path := make([]*trieNode, 0, len(segments)+1)
	node := m.root
	path = append(path, node)
	for _, seg := range segments {
		node = node.children[seg]
		if node == nil {
			return
		}
		path = append(path, node)
	}

	for i, p := range node.patterns {
		if p == pattern {
			node.patterns = append(node.patterns[:i], node.patterns[i+1:]...)
			break
		}
	}

	for i := len(segments); i > 0; i-- {
		n := path[i]
		if len(n.patterns) > 0 || len(n.children) > 0 {
			break
		}
		delete(path[i-1].children, segments[i-1])
	}
}

// Has reports whether the exact pattern is registered.
func (m *Matcher) Has(pattern Topic) bool {
	if pattern == "" {
		return false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	node := m.root
	for _, seg := range pattern.Segments() {
		node = node.children[seg]
		if node == nil {
			return false
		}
	}
	for _, p := range node.patterns {
		if p == pattern {
			return true
		}
	}
	return false
}

// Match returns every registered pattern matching the concrete topic. Each
// pattern appears at most once even when "**" offers several paths to it.
func (m *Matcher) Match(eventTopic Topic) []Topic {
	if eventTopic == "" {
		return nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[Topic]struct{})
	var matches []Topic
	collect := func(patterns []Topic) {
		for _, p := range patterns {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			matches = append(matches, p)
		}
	}
	m.match(m.root, eventTopic.Segments(), 0, collect)
	return matches
}

func (m *Matcher) match(node *trieNode, segments []string, depth int, collect func([]Topic)) {
	if depth == len(segments) {
		collect(node.patterns)
		if child := node.children[WildcardMulti]; child != nil {
			m.match(child, segments, depth, collect)
		}
		return
	}

	if child := node.children[segments[depth]]; child != nil {
		m.match(child, segments, depth+1, collect)
	}
	if child := node.children[WildcardSingle]; child != nil {
		m.match(child, segments, depth+1, collect)
	}
	if child := node.children[WildcardMulti]; child != nil {
		for i := depth; i <= len(segments); i++ {
			m.match(child, segments, i, collect)
		}
	}
}

// Count returns the number of registered patterns.
func (m *Matcher) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var count func(n *trieNode) int
	count = func(n *trieNode) int {
		c := len(n.patterns)
		for _, child := range n.children {
			c += count(child)
		}
		return c
	}
	return count(m.root)
}

// Clear removes all patterns.
func (m *Matcher) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.root = newTrieNode()
}
