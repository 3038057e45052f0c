package topic

import (
	"sort"
	"sync"
	"testing"
)

func sortedTopics(ts []Topic) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = string(t)
	}
	sort.Strings(out)
	return out
}

func TestMatcher_AddHasRemove(t *testing.T) {
	m := NewMatcher()

	m.Add("tree.node.created")
	m.Add("tree.node.removed")
	m.Add("selection.changed")

	if !m.Has("tree.node.created") {
		t.Error("expected tree.node.created")
	}
	if m.Has("drag.started") {
		t.Error("did not expect drag.started")
	}

	m.Remove("tree.node.created")
	if m.Has("tree.node.created") {
		t.Error("expected tree.node.created to be removed")
	}
	if !m.Has("tree.node.removed") {
		t.Error("sibling pattern must survive removal")
	}
	if m.Count() != 2 {
		t.Errorf("Count() = %d, want 2", m.Count())
	}
}

func TestMatcher_AddDuplicateAndEmpty(t *testing.T) {
	m := NewMatcher()

	m.Add("drag.started")
	m.Add("drag.started")
	m.Add("")

	if m.Count() != 1 {
		t.Errorf("Count() = %d, want 1", m.Count())
	}
}

func TestMatcher_Match(t *testing.T) {
	m := NewMatcher()
	for _, p := range []Topic{
		"tree.node.created",
		"tree.node.*",
		"tree.*",
		"tree.**",
		"**",
		"drag.*",
	} {
		m.Add(p)
	}

	tests := []struct {
		topic Topic
		want  []string
	}{
		{"tree.node.created", []string{"**", "tree.**", "tree.node.*", "tree.node.created"}},
		{"tree.replaced", []string{"**", "tree.*", "tree.**"}},
		{"drag.dropped", []string{"**", "drag.*"}},
		{"selection.changed", []string{"**"}},
	}

	for _, tt := range tests {
		t.Run(tt.topic.String(), func(t *testing.T) {
			got := sortedTopics(m.Match(tt.topic))
			if len(got) != len(tt.want) {
				t.Fatalf("Match(%q) = %v, want %v", tt.topic, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Match(%q)[%d] = %q, want %q", tt.topic, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMatcher_MatchDeduplicatesMultiWildcard(t *testing.T) {
	m := NewMatcher()
	m.Add("a.**.c")

	got := m.Match("a.c.c.c")
	if len(got) != 1 {
		t.Errorf("Match() = %v, want exactly one pattern", got)
	}
}

func TestMatcher_Clear(t *testing.T) {
	m := NewMatcher()
	m.Add("tree.*")
	m.Clear()

	if m.Count() != 0 {
		t.Errorf("Count() after Clear = %d", m.Count())
	}
	if len(m.Match("tree.replaced")) != 0 {
		t.Error("expected no match after Clear")
	}
}

func TestMatcher_Concurrent(t *testing.T) {
	m := NewMatcher()
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			m.Add("tree.*")
			m.Remove("tree.*")
		}()
		go func() {
			defer wg.Done()
			_ = m.Match("tree.replaced")
		}()
	}
	wg.Wait()
}
