package zoofile

import (
	"fmt"
	"path"
	"strings"
)

// ValidatePath checks that p is an absolute, clean node path as accepted by
// ZooKeeper: it starts with a slash, does not end with one unless it is the
// root and contains no empty, "." or ".." elements. The returned error wraps
// ErrInvalidPath.
func ValidatePath(p string) error {
	if !strings.HasPrefix(p, "/") || (p != "/" && strings.HasSuffix(p, "/")) || path.Clean(p) != p {
		return fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	return nil
}
