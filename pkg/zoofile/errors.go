package zoofile

import (
	"errors"
)

var (
	ErrNoNode                 = errors.New("zoofile: node does not exist")
	ErrNodeExists             = errors.New("zoofile: node already exists")
	ErrNotEmpty               = errors.New("zoofile: node has children")
	ErrConcurrentModification = errors.New("zoofile: content changed during every read attempt")
	ErrInvalidPath            = errors.New("zoofile: invalid node path")
)

// StoreError is returned whenever a Session call fails. Op is one of exists,
// get, set, create, delete or children.
type StoreError struct {
	Op   string
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	return "zoofile: " + e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func newStoreError(op string, path string, err error) *StoreError {
	return &StoreError{Op: op, Path: path, Err: err}
}
