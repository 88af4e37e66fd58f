package zoofile

import (
	"context"
)

// Session is the narrow view of a coordination store connection that the
// handles in this package need. Implementations must be safe for concurrent
// use by multiple goroutines. Errors for missing nodes, already existing
// nodes and non-empty nodes must wrap ErrNoNode, ErrNodeExists and
// ErrNotEmpty respectively.
//
// Implementations can be found in the zkstore, redisstore and memstore
// packages.
type Session interface {
	// Exists reports whether a node is present at path. A missing node is not
	// an error.
	Exists(ctx context.Context, path string) (bool, error)
	// Get returns at most maxBytes bytes of the payload at path together with
	// the full length of the payload as reported by the store.
	Get(ctx context.Context, path string, maxBytes int) ([]byte, int, error)
	// GetW behaves like Get but also arms a one-shot watch on path. The
	// returned channel receives a single Event and is closed afterwards.
	// The watch covers the node itself and never reports changes to its
	// children. Stores may end the watch with EventWatchLost once ctx is done.
	GetW(ctx context.Context, path string, maxBytes int) ([]byte, int, <-chan Event, error)
	// Set overwrites the payload at path regardless of its version.
	Set(ctx context.Context, path string, data []byte) error
	// Create creates an empty, persistent node at path. The parent must exist.
	Create(ctx context.Context, path string) error
	// Delete removes the node at path regardless of its version.
	Delete(ctx context.Context, path string) error
	// Children returns the names of the direct children of path.
	Children(ctx context.Context, path string) ([]string, error)
}

type EventType int

const (
	EventNodeCreated EventType = iota + 1
	EventNodeDeleted
	EventNodeDataChanged
	EventNodeChildrenChanged
	// EventWatchLost is delivered when the session can no longer guarantee
	// the watch, e.g. because the connection was closed.
	EventWatchLost
)

var eventNames = map[EventType]string{
	EventNodeCreated:         "EventNodeCreated",
	EventNodeDeleted:         "EventNodeDeleted",
	EventNodeDataChanged:     "EventNodeDataChanged",
	EventNodeChildrenChanged: "EventNodeChildrenChanged",
	EventWatchLost:           "EventWatchLost",
}

func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return "EventUnknown"
}

// Event is a watch notification for a single path.
type Event struct {
	Type EventType
	Path string
	// Err is set for EventWatchLost if the session knows why.
	Err error
}
