package zoofile

import (
	"context"
	"errors"
	"path"
	"sort"

	"golang.org/x/sync/errgroup"
)

// SkipDir can be returned by a WalkFunc to skip the contents of the directory
// it was called for. Returned for a file, the remaining entries of the
// file's parent are skipped.
var SkipDir = errors.New("zoofile: skip this directory")

// Entry describes a node as seen by ReadDir and Walk.
type Entry struct {
	Name  string
	Path  string
	IsDir bool
	// Size is the payload length for files and zero for directories.
	Size int64
}

type WalkFunc func(entry Entry) error

// Mkdir creates an empty node at p and records it as a directory.
func (fs *FS) Mkdir(ctx context.Context, p string) error {
	file := fs.File(p)
	if err := file.Create(ctx); err != nil {
		return err
	}
	file.MarkAsDirectory()
	return nil
}

// WriteFile records p as a file and stores data in it, creating the node if
// it does not exist yet.
func (fs *FS) WriteFile(ctx context.Context, p string, data []byte) error {
	file := fs.File(p)
	if err := file.Create(ctx); err != nil && !errors.Is(err, ErrNodeExists) {
		return err
	}
	file.MarkAsFile()
	return file.SetContent(ctx, data)
}

// Stat classifies the node at p and, for files, determines its size.
func (fs *FS) Stat(ctx context.Context, p string) (Entry, error) {
	file := fs.File(p)
	isDir, err := file.IsDir(ctx)
	if err != nil {
		return Entry{}, err
	}

	entry := Entry{
		Name:  path.Base(p),
		Path:  p,
		IsDir: isDir,
	}
	if !isDir {
		entry.Size, err = file.Length(ctx)
		if err != nil {
			return Entry{}, err
		}
	}
	return entry, nil
}

// ReadDir lists the children of p sorted by name. The children are classified
// concurrently. Children removed while the listing is in progress are left
// out.
func (fs *FS) ReadDir(ctx context.Context, p string) ([]Entry, error) {
	names, err := fs.File(p).Children(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	entries := make([]Entry, len(names))
	gone := make([]bool, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fs.config.Concurrency)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			entry, err := fs.Stat(gctx, path.Join(p, name))
			if errors.Is(err, ErrNoNode) {
				gone[i] = true
				return nil
			}
			if err != nil {
				return err
			}
			entries[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := entries[:0]
	for i, entry := range entries {
		if !gone[i] {
			result = append(result, entry)
		}
	}
	return result, nil
}

// Walk calls fn for root and every node below it, depth-first in name order.
// Only entries classified as directories are descended into.
func (fs *FS) Walk(ctx context.Context, root string, fn WalkFunc) error {
	entry, err := fs.Stat(ctx, root)
	if err != nil {
		return err
	}

	err = fs.walk(ctx, entry, fn)
	if errors.Is(err, SkipDir) {
		return nil
	}
	return err
}

func (fs *FS) walk(ctx context.Context, entry Entry, fn WalkFunc) error {
	if err := fn(entry); err != nil {
		return err
	}
	if !entry.IsDir {
		return nil
	}

	children, err := fs.ReadDir(ctx, entry.Path)
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := fs.walk(ctx, child, fn); err != nil {
			if !errors.Is(err, SkipDir) {
				return err
			}
			if !child.IsDir {
				return nil
			}
		}
	}
	return nil
}

// RemoveAll removes p and all nodes below it. Children are removed before
// their parent, siblings concurrently. A missing p is not an error. The root
// node itself is never removed, only emptied.
func (fs *FS) RemoveAll(ctx context.Context, p string) error {
	file := fs.File(p)
	children, err := file.Children(ctx)
	if errors.Is(err, ErrNoNode) {
		return nil
	}
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fs.config.Concurrency)
	for _, name := range children {
		child := path.Join(p, name)
		g.Go(func() error {
			return fs.RemoveAll(gctx, child)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if p == "/" {
		return nil
	}
	if err := file.Remove(ctx); err != nil && !errors.Is(err, ErrNoNode) {
		return err
	}
	return nil
}
