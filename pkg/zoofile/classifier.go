package zoofile

import (
	"sync"
	"sync/atomic"
)

// Classifier remembers which paths have been committed to being files and
// which to being directories. A path is in at most one of both sets and the
// classification recorded first is kept: MarkAsFile does nothing for a known
// directory and MarkAsDirectory does nothing for a known file. Entries are
// only dropped by Forget, which File.Remove calls after a successful delete.
// Nothing expires, so changes made by other processes are never noticed.
//
// The Classifier also carries the hybrid mode switch consulted by
// File.IsDir. Hybrid mode can be turned on but never off again.
//
// A Classifier is safe for concurrent use.
type Classifier struct {
	mutex       sync.RWMutex
	files       map[string]struct{}
	directories map[string]struct{}

	hybrid atomic.Bool
}

type ClassifierOption func(c *Classifier)

// WithHybridMode makes the Classifier start in hybrid mode.
func WithHybridMode() ClassifierOption {
	return func(c *Classifier) {
		c.hybrid.Store(true)
	}
}

// NewClassifier creates an empty Classifier.
func NewClassifier(options ...ClassifierOption) *Classifier {
	c := &Classifier{
		files:       make(map[string]struct{}),
		directories: make(map[string]struct{}),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// DefaultClassifier is shared by every FS that is not given its own
// Classifier.
var DefaultClassifier = NewClassifier()

// EnableHybridMode switches the Classifier to the hybrid strategy.
func (c *Classifier) EnableHybridMode() {
	c.hybrid.Store(true)
}

func (c *Classifier) HybridMode() bool {
	return c.hybrid.Load()
}

// MarkAsFile records path as a file unless it is already known as a
// directory.
func (c *Classifier) MarkAsFile(path string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, ok := c.directories[path]; ok {
		return
	}
	c.files[path] = struct{}{}
}

// MarkAsDirectory records path as a directory unless it is already known as
// a file.
func (c *Classifier) MarkAsDirectory(path string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, ok := c.files[path]; ok {
		return
	}
	c.directories[path] = struct{}{}
}

func (c *Classifier) IsKnownFile(path string) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	_, ok := c.files[path]
	return ok
}

func (c *Classifier) IsKnownDirectory(path string) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	_, ok := c.directories[path]
	return ok
}

// lookup returns the recorded classification of path. known is false if the
// path has never been marked.
func (c *Classifier) lookup(path string) (isDir bool, known bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if _, ok := c.files[path]; ok {
		return false, true
	}
	if _, ok := c.directories[path]; ok {
		return true, true
	}
	return false, false
}

// Forget removes path from both sets. Forgetting an unknown path is a no-op.
func (c *Classifier) Forget(path string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.files, path)
	delete(c.directories, path)
}

// Len returns the number of known files and known directories.
func (c *Classifier) Len() (files int, directories int) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.files), len(c.directories)
}

// MarkAsFile records path as a file in DefaultClassifier.
func MarkAsFile(path string) {
	DefaultClassifier.MarkAsFile(path)
}

// MarkAsDirectory records path as a directory in DefaultClassifier.
func MarkAsDirectory(path string) {
	DefaultClassifier.MarkAsDirectory(path)
}

// EnableHybridMode switches DefaultClassifier to the hybrid strategy.
func EnableHybridMode() {
	DefaultClassifier.EnableHybridMode()
}
