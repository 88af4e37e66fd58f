// Package memstore provides an in-memory coordination store.
//
// MemoryStore implements zoofile.Session using a tree kept in memory and
// therefore allows a simple and cheap store for single processes and tests.
// Nodes will only exist as long as this object is kept in reference and will
// be erased if the program exits.
//
// Like ZooKeeper, reads report the full payload length while returning at
// most the requested number of bytes, creating a node requires its parent to
// exist and only empty nodes can be deleted.
package memstore

import (
	"context"
	"fmt"
	"path"
	"sort"
	"sync"

	"github.com/zoofs/zoofs/pkg/zoofile"
)

var _ zoofile.Session = &MemoryStore{}

type node struct {
	data     []byte
	version  int32
	children map[string]struct{}
}

// MemoryStore is a zoofile.Session backed by memory. The root node "/"
// always exists.
type MemoryStore struct {
	mutex    sync.RWMutex
	nodes    map[string]*node
	watchers map[string][]chan zoofile.Event
}

// New creates an empty store containing only the root node.
func New() *MemoryStore {
	return &MemoryStore{
		nodes: map[string]*node{
			"/": {children: make(map[string]struct{})},
		},
		watchers: make(map[string][]chan zoofile.Event),
	}
}

func noNode(p string) error {
	return fmt.Errorf("memstore: %s: %w", p, zoofile.ErrNoNode)
}

func (store *MemoryStore) Exists(ctx context.Context, p string) (bool, error) {
	if err := zoofile.ValidatePath(p); err != nil {
		return false, err
	}

	store.mutex.RLock()
	defer store.mutex.RUnlock()

	_, ok := store.nodes[p]
	return ok, nil
}

func (store *MemoryStore) Get(ctx context.Context, p string, maxBytes int) ([]byte, int, error) {
	if err := zoofile.ValidatePath(p); err != nil {
		return nil, 0, err
	}

	store.mutex.RLock()
	defer store.mutex.RUnlock()

	return store.read(p, maxBytes)
}

func (store *MemoryStore) GetW(ctx context.Context, p string, maxBytes int) ([]byte, int, <-chan zoofile.Event, error) {
	if err := zoofile.ValidatePath(p); err != nil {
		return nil, 0, nil, err
	}

	store.mutex.Lock()
	defer store.mutex.Unlock()

	data, length, err := store.read(p, maxBytes)
	if err != nil {
		return nil, 0, nil, err
	}

	events := make(chan zoofile.Event, 1)
	store.watchers[p] = append(store.watchers[p], events)
	return data, length, events, nil
}

// read must be called with the mutex held.
func (store *MemoryStore) read(p string, maxBytes int) ([]byte, int, error) {
	n, ok := store.nodes[p]
	if !ok {
		return nil, 0, noNode(p)
	}

	size := len(n.data)
	if size > maxBytes {
		size = maxBytes
	}
	data := make([]byte, size)
	copy(data, n.data)
	return data, len(n.data), nil
}

func (store *MemoryStore) Set(ctx context.Context, p string, data []byte) error {
	if err := zoofile.ValidatePath(p); err != nil {
		return err
	}

	store.mutex.Lock()
	defer store.mutex.Unlock()

	n, ok := store.nodes[p]
	if !ok {
		return noNode(p)
	}

	n.data = append([]byte(nil), data...)
	n.version++
	store.notify(p, zoofile.EventNodeDataChanged)
	return nil
}

func (store *MemoryStore) Create(ctx context.Context, p string) error {
	if err := zoofile.ValidatePath(p); err != nil {
		return err
	}
	if p == "/" {
		return fmt.Errorf("memstore: %s: %w", p, zoofile.ErrNodeExists)
	}

	store.mutex.Lock()
	defer store.mutex.Unlock()

	if _, ok := store.nodes[p]; ok {
		return fmt.Errorf("memstore: %s: %w", p, zoofile.ErrNodeExists)
	}
	parent, ok := store.nodes[path.Dir(p)]
	if !ok {
		return noNode(path.Dir(p))
	}

	store.nodes[p] = &node{children: make(map[string]struct{})}
	parent.children[path.Base(p)] = struct{}{}
	store.notify(p, zoofile.EventNodeCreated)
	return nil
}

func (store *MemoryStore) Delete(ctx context.Context, p string) error {
	if err := zoofile.ValidatePath(p); err != nil {
		return err
	}

	store.mutex.Lock()
	defer store.mutex.Unlock()

	n, ok := store.nodes[p]
	if !ok {
		return noNode(p)
	}
	if len(n.children) > 0 {
		return fmt.Errorf("memstore: %s: %w", p, zoofile.ErrNotEmpty)
	}
	if p == "/" {
		return fmt.Errorf("memstore: the root node cannot be deleted")
	}

	delete(store.nodes, p)
	delete(store.nodes[path.Dir(p)].children, path.Base(p))
	store.notify(p, zoofile.EventNodeDeleted)
	return nil
}

func (store *MemoryStore) Children(ctx context.Context, p string) ([]string, error) {
	if err := zoofile.ValidatePath(p); err != nil {
		return nil, err
	}

	store.mutex.RLock()
	defer store.mutex.RUnlock()

	n, ok := store.nodes[p]
	if !ok {
		return nil, noNode(p)
	}

	children := make([]string, 0, len(n.children))
	for name := range n.children {
		children = append(children, name)
	}
	sort.Strings(children)
	return children, nil
}

// Version returns how often the payload at p has been set.
func (store *MemoryStore) Version(p string) (int32, bool) {
	store.mutex.RLock()
	defer store.mutex.RUnlock()

	n, ok := store.nodes[p]
	if !ok {
		return 0, false
	}
	return n.version, true
}

// notify fires and discards all watches armed on p. It must be called with
// the mutex held.
func (store *MemoryStore) notify(p string, typ zoofile.EventType) {
	for _, events := range store.watchers[p] {
		events <- zoofile.Event{Type: typ, Path: p}
		close(events)
	}
	delete(store.watchers, p)
}
