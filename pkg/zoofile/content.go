package zoofile

import (
	"context"
	"fmt"
)

// Content returns the complete payload of the node.
//
// The payload is first requested with a buffer of MaxBufferSize bytes. If the
// store reports a larger length, the payload is requested again with exactly
// that length. Should the second read report a different length, the payload
// was modified in between and the whole read starts over. The number of
// attempts is limited by Config.MaxReadAttempts and the context is checked
// before every new attempt.
func (f *File) Content(ctx context.Context) ([]byte, error) {
	maxAttempts := f.fs.config.MaxReadAttempts

	for attempt := 1; maxAttempts < 0 || attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("zoofile: reading %s: %w", f.path, err)
			}
			f.fs.Metrics.incReadRestarts()
		}

		data, length, err := f.fs.session.Get(ctx, f.path, MaxBufferSize)
		if err != nil {
			return nil, f.storeError(OpGet, err)
		}

		if length <= MaxBufferSize {
			return copyPayload(data, length), nil
		}

		f.fs.Metrics.incOversizedReads()
		full, fullLength, err := f.fs.session.Get(ctx, f.path, length)
		if err != nil {
			return nil, f.storeError(OpGet, err)
		}

		if fullLength != length {
			f.fs.logger.Debug("ContentChangedDuringRead", "path", f.path, "attempt", attempt, "expected", length, "read", fullLength)
			continue
		}

		return copyPayload(full, fullLength), nil
	}

	f.fs.logger.Warn("ContentReadAttemptsExceeded", "path", f.path, "attempts", maxAttempts)
	return nil, fmt.Errorf("%w: %s after %d attempts", ErrConcurrentModification, f.path, maxAttempts)
}

// ContentAndSetWatch reads the payload once and arms a watch on the node.
// Unlike Content, it never issues a second read: payloads larger than
// MaxBufferSize are returned truncated to MaxBufferSize bytes.
func (f *File) ContentAndSetWatch(ctx context.Context) ([]byte, <-chan Event, error) {
	data, length, events, err := f.fs.session.GetW(ctx, f.path, MaxBufferSize)
	if err != nil {
		return nil, nil, f.storeError(OpGet, err)
	}

	if length > MaxBufferSize {
		length = MaxBufferSize
	}
	return copyPayload(data, length), events, nil
}

// copyPayload returns a copy of the first length bytes of data, so callers
// never share memory with the session.
func copyPayload(data []byte, length int) []byte {
	if length > len(data) {
		length = len(data)
	}
	if length <= 0 {
		return []byte{}
	}
	payload := make([]byte, length)
	copy(payload, data[:length])
	return payload
}
