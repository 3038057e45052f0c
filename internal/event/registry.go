package event

import (
	"sort"
	"sync"

	"github.com/dshills/designable/internal/event/topic"
)

// Registry stores subscriptions indexed by pattern. It is safe for
// concurrent use; Match returns a snapshot.
type Registry struct {
	mu      sync.RWMutex
	subs    map[topic.Topic][]*subscription
	byID    map[string]*subscription
	matcher *topic.Matcher
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		subs:    make(map[topic.Topic][]*subscription),
		byID:    make(map[string]*subscription),
		matcher: topic.NewMatcher(),
	}
}

// Add registers a subscription.
func (r *Registry) Add(sub *subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.subs[sub.topic] = append(r.subs[sub.topic], sub)
	r.byID[sub.id] = sub
	r.matcher.Add(sub.topic)
}

// Remove unregisters a subscription by ID.
func (r *Registry) Remove(subID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, ok := r.byID[subID]
	if !ok {
		return false
	}
	delete(r.byID, subID)

	subs := r.subs[sub.topic]
	for i, s := range subs {
		if s.id == subID {
			// Copy so snapshots taken by an in-flight Emit stay intact.
			next := make([]*subscription, 0, len(subs)-1)
			next = append(next, subs[:i]...)
			r.subs[sub.topic] = append(next, subs[i+1:]...)
			break
		}
	}
	if len(r.subs[sub.topic]) == 0 {
		delete(r.subs, sub.topic)
		r.matcher.Remove(sub.topic)
	}
	return true
}

// Match returns the subscriptions whose pattern matches eventTopic, ordered
// by priority then registration order.
func (r *Registry) Match(eventTopic topic.Topic) []*subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []*subscription
	for _, pattern := range r.matcher.Match(eventTopic) {
		all = append(all, r.subs[pattern]...)
	}
	if len(all) == 0 {
		return nil
	}

	sort.SliceStable(all, func(i, j int) bool {
		pi, pj := all[i].config.Priority, all[j].config.Priority
		if pi != pj {
			return pi < pj
		}
		return all[i].seq < all[j].seq
	})
	return all
}

// Count returns the number of registered subscriptions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byID)
}

// CountActive returns the number of active subscriptions.
func (r *Registry) CountActive() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, sub := range r.byID {
		if sub.IsActive() {
			n++
		}
	}
	return n
}

// Clear removes every subscription.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, sub := range r.byID {
		sub.state.Store(int32(SubscriptionStateDisposed))
	}
	r.subs = make(map[topic.Topic][]*subscription)
	r.byID = make(map[string]*subscription)
	r.matcher.Clear()
}
