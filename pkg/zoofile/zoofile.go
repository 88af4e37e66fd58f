// Package zoofile provides file and directory semantics on top of a
// hierarchical coordination store such as ZooKeeper.
//
// Nodes in such a store carry a payload and children at the same time, so
// whether a node is a "file" or a "directory" is a matter of interpretation.
// A File decides this in one of two ways, selected by its Classifier:
//
// In the default mode, a node is a directory exactly when it has children.
// Empty directories therefore look like empty files.
//
// In hybrid mode, the root is always a directory, classifications recorded
// with MarkAsFile and MarkAsDirectory win, nodes with children are
// directories and childless nodes are directories only if their payload is
// empty. IsDir itself never records anything; callers that created a node
// with a known role should mark it.
//
// Basic usage:
//
//	fs, err := zoofile.NewFS(zoofile.Config{
//		Session:    session,
//		Classifier: zoofile.NewClassifier(zoofile.WithHybridMode()),
//	})
//
//	file := fs.File("/config/app")
//	if err := file.Create(ctx); err != nil { ... }
//	file.MarkAsFile()
//	err = file.SetContent(ctx, []byte("{}"))
//	data, err := file.Content(ctx)
//
// Reading content is safe against concurrent writers: payloads larger than
// MaxBufferSize are read a second time at their full size and the read starts
// over if their length changed in between.
package zoofile

import (
	"context"
	"errors"

	"golang.org/x/exp/slog"
)

// FS binds a Session to a Classifier and hands out File handles.
type FS struct {
	config  Config
	session Session

	// Metrics provides numbers of the usage for this FS.
	Metrics Metrics

	logger *slog.Logger
}

// NewFS creates an FS from the given configuration.
func NewFS(config Config) (*FS, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	return &FS{
		config:  config,
		session: config.Session,
		Metrics: newMetrics(),
		logger:  config.Logger,
	}, nil
}

// New returns a handle for path on session using the default configuration
// and DefaultClassifier.
func New(session Session, path string) *File {
	fs, err := NewFS(Config{Session: session})
	if err != nil {
		// Only a nil session fails validation.
		panic(err)
	}
	return fs.File(path)
}

// Classifier returns the classification cache used by this FS.
func (fs *FS) Classifier() *Classifier {
	return fs.config.Classifier
}

// Session returns the underlying store session.
func (fs *FS) Session() Session {
	return fs.session
}

// File returns a handle for path. Creating handles is cheap and does not
// touch the store.
func (fs *FS) File(path string) *File {
	return &File{
		fs:   fs,
		path: path,
	}
}

// File is a view of a single node in the store. It holds no state besides
// its path and may be discarded and recreated at will.
type File struct {
	fs   *FS
	path string
}

func (f *File) Path() string {
	return f.path
}

// storeError wraps err for the given operation and counts it.
func (f *File) storeError(op string, err error) error {
	f.fs.Metrics.incStoreErrors(op)
	return newStoreError(op, f.path, err)
}

// Exists reports whether the node is present. A missing node is not an error.
func (f *File) Exists(ctx context.Context) (bool, error) {
	ok, err := f.fs.session.Exists(ctx, f.path)
	if err != nil {
		if errors.Is(err, ErrNoNode) {
			return false, nil
		}
		return false, f.storeError(OpExists, err)
	}
	return ok, nil
}

// Children returns the names of the node's direct children.
func (f *File) Children(ctx context.Context) ([]string, error) {
	children, err := f.fs.session.Children(ctx, f.path)
	if err != nil {
		return nil, f.storeError(OpChildren, err)
	}
	return children, nil
}

// HasChildren reports whether the node has at least one child.
func (f *File) HasChildren(ctx context.Context) (bool, error) {
	children, err := f.Children(ctx)
	if err != nil {
		return false, err
	}
	return len(children) > 0, nil
}

// IsDir decides whether the node should be presented as a directory. See the
// package documentation for the two strategies. The decision is not recorded
// in the Classifier.
func (f *File) IsDir(ctx context.Context) (bool, error) {
	classifier := f.fs.config.Classifier

	if !classifier.HybridMode() {
		hasChildren, err := f.HasChildren(ctx)
		if err != nil {
			return false, err
		}
		f.fs.Metrics.incClassifications(SourceChildren)
		return hasChildren, nil
	}

	if f.path == "/" {
		f.fs.Metrics.incClassifications(SourceRoot)
		return true, nil
	}

	if isDir, known := classifier.lookup(f.path); known {
		if isDir {
			f.fs.Metrics.incClassifications(SourceCachedDirectory)
		} else {
			f.fs.Metrics.incClassifications(SourceCachedFile)
		}
		return isDir, nil
	}

	hasChildren, err := f.HasChildren(ctx)
	if err != nil {
		return false, err
	}
	if hasChildren {
		f.fs.Metrics.incClassifications(SourceChildren)
		return true, nil
	}

	length, err := f.Length(ctx)
	if err != nil {
		return false, err
	}
	f.fs.Metrics.incClassifications(SourceContent)
	return length == 0, nil
}

// MarkAsFile records the node as a file unless it is already recorded as a
// directory.
func (f *File) MarkAsFile() {
	f.fs.config.Classifier.MarkAsFile(f.path)
}

// MarkAsDirectory records the node as a directory unless it is already
// recorded as a file.
func (f *File) MarkAsDirectory() {
	f.fs.config.Classifier.MarkAsDirectory(f.path)
}

// SetContent overwrites the payload. There is no version check, the last
// writer wins.
func (f *File) SetContent(ctx context.Context, data []byte) error {
	if err := f.fs.session.Set(ctx, f.path, data); err != nil {
		return f.storeError(OpSet, err)
	}
	return nil
}

// Create creates the node with an empty payload. Missing ancestors are not
// created.
func (f *File) Create(ctx context.Context) error {
	if err := f.fs.session.Create(ctx, f.path); err != nil {
		return f.storeError(OpCreate, err)
	}
	return nil
}

// Length returns the size of the payload. It reads the whole payload.
func (f *File) Length(ctx context.Context) (int64, error) {
	data, err := f.Content(ctx)
	if err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}

// Remove deletes the node regardless of its version and forgets its
// classification.
func (f *File) Remove(ctx context.Context) error {
	if err := f.fs.session.Delete(ctx, f.path); err != nil {
		return f.storeError(OpDelete, err)
	}

	f.fs.config.Classifier.Forget(f.path)
	f.fs.logger.Debug("NodeRemoved", "path", f.path)
	return nil
}
