// Package store holds the client-side application state: who is logged in,
// the server/channel catalog, per-channel message history, and presentation
// flags. Stores are plain structs built by the root composition point and
// passed to whatever needs them; each one guards its own data and notifies
// subscribers after every mutation.
package store

import "sync"

// notifier maintains the subscriber list a store fans its change signal out
// to. Callbacks run synchronously, outside the store's data lock.
type notifier struct {
	subsMutex sync.Mutex
	nextSubID int
	subs      map[int]func()
}

// Subscribe registers fn to run after every mutation and returns a cancel
// function removing the subscription.
func (n *notifier) Subscribe(fn func()) func() {
	n.subsMutex.Lock()
	defer n.subsMutex.Unlock()

	if n.subs == nil {
		n.subs = make(map[int]func())
	}

	id := n.nextSubID
	n.nextSubID++
	n.subs[id] = fn

	return func() {
		n.subsMutex.Lock()
		defer n.subsMutex.Unlock()
		delete(n.subs, id)
	}
}

func (n *notifier) notify() {
	n.subsMutex.Lock()
	fns := make([]func(), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.subsMutex.Unlock()

	for _, fn := range fns {
		fn()
	}
}
