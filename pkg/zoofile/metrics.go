package zoofile

import (
	"sync/atomic"
)

// Classification sources counted in Metrics.ClassificationsTotal.
const (
	SourceChildren        = "children"
	SourceRoot            = "root"
	SourceCachedFile      = "cached_file"
	SourceCachedDirectory = "cached_directory"
	SourceContent         = "content"
)

// Store operations counted in Metrics.StoreErrorsTotal.
const (
	OpExists   = "exists"
	OpGet      = "get"
	OpSet      = "set"
	OpCreate   = "create"
	OpDelete   = "delete"
	OpChildren = "children"
)

// Metrics provides numbers about the work done by an FS. Since these may be
// accessed from multiple goroutines, they must be read using the functions
// exposed in the sync/atomic package, such as atomic.LoadUint64. The maps
// must not be modified.
type Metrics struct {
	// ClassificationsTotal counts IsDir decisions by the signal that settled
	// them.
	ClassificationsTotal map[string]*uint64
	// StoreErrorsTotal counts failed Session calls per operation.
	StoreErrorsTotal map[string]*uint64
	// OversizedReads counts content reads that needed a second, full-size
	// read because the payload exceeded MaxBufferSize.
	OversizedReads *uint64
	// ReadRestarts counts content reads that started over because the
	// payload length changed between the first and the full read.
	ReadRestarts *uint64
}

func (m Metrics) incClassifications(source string) {
	if ptr, ok := m.ClassificationsTotal[source]; ok {
		atomic.AddUint64(ptr, 1)
	}
}

func (m Metrics) incStoreErrors(op string) {
	if ptr, ok := m.StoreErrorsTotal[op]; ok {
		atomic.AddUint64(ptr, 1)
	}
}

func (m Metrics) incOversizedReads() {
	atomic.AddUint64(m.OversizedReads, 1)
}

func (m Metrics) incReadRestarts() {
	atomic.AddUint64(m.ReadRestarts, 1)
}

func newMetrics() Metrics {
	return Metrics{
		ClassificationsTotal: map[string]*uint64{
			SourceChildren:        new(uint64),
			SourceRoot:            new(uint64),
			SourceCachedFile:      new(uint64),
			SourceCachedDirectory: new(uint64),
			SourceContent:         new(uint64),
		},
		StoreErrorsTotal: map[string]*uint64{
			OpExists:   new(uint64),
			OpGet:      new(uint64),
			OpSet:      new(uint64),
			OpCreate:   new(uint64),
			OpDelete:   new(uint64),
			OpChildren: new(uint64),
		},
		OversizedReads: new(uint64),
		ReadRestarts:   new(uint64),
	}
}
