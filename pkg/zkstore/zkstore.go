// Package zkstore provides a ZooKeeper based session for zoofile.
//
// The store talks to ZooKeeper through the ZKAPI interface, which is
// implemented by *zk.Conn from github.com/go-zookeeper/zk. Connect dials an
// ensemble and returns a ready to use store:
//
//	store, err := zkstore.Connect([]string{"127.0.0.1:2181"}, 10*time.Second, logger)
//	if err != nil { ... }
//	defer store.Close()
//
//	fs, err := zoofile.NewFS(zoofile.Config{Session: store})
//
// Nodes are created persistent with an open ACL (world:anyone, all
// permissions). Set and Delete ignore node versions.
//
// ZooKeeper's client library always transfers the complete payload, so Get
// cuts the returned data to the requested size while reporting the length
// from the node's Stat, which is what zoofile expects from a session.
//
// Metrics
//
// The durations of all requests sent to ZooKeeper are tracked in the
// zoofs_zk_request_duration_ms summary per operation. Call RegisterMetrics to
// expose them.
package zkstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-zookeeper/zk"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/zoofs/zoofs/pkg/zoofile"
)

const (
	metricExists   = "exists"
	metricGet      = "get"
	metricGetW     = "get_w"
	metricSet      = "set"
	metricCreate   = "create"
	metricDelete   = "delete"
	metricChildren = "children"
)

var _ zoofile.Session = ZKStore{}

// ZKAPI contains the methods of *zk.Conn used by ZKStore. It exists so the
// connection can be replaced in tests.
type ZKAPI interface {
	Exists(path string) (bool, *zk.Stat, error)
	Get(path string) ([]byte, *zk.Stat, error)
	GetW(path string) ([]byte, *zk.Stat, <-chan zk.Event, error)
	Set(path string, data []byte, version int32) (*zk.Stat, error)
	Create(path string, data []byte, flags int32, acl []zk.ACL) (string, error)
	Delete(path string, version int32) error
	Children(path string) ([]string, *zk.Stat, error)
	Close()
}

// See the package documentation for details.
type ZKStore struct {
	// Conn is the ZooKeeper connection all requests are sent over.
	Conn ZKAPI

	// ACL is applied to every created node. Defaults to zk.WorldACL(zk.PermAll).
	ACL []zk.ACL

	// requestDurationMetric holds the prometheus instance for storing the request durations.
	requestDurationMetric *prometheus.SummaryVec
}

// New constructs a new store using the supplied connection.
func New(conn ZKAPI) ZKStore {
	requestDurationMetric := prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Name:       "zoofs_zk_request_duration_ms",
		Help:       "Duration of requests sent to ZooKeeper in milliseconds per operation",
		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
	}, []string{"operation"})

	return ZKStore{
		Conn:                  conn,
		ACL:                   zk.WorldACL(zk.PermAll),
		requestDurationMetric: requestDurationMetric,
	}
}

// RegisterMetrics registers the store's request duration summary.
func (store ZKStore) RegisterMetrics(registry prometheus.Registerer) {
	registry.MustRegister(store.requestDurationMetric)
}

// Close closes the underlying connection. Outstanding watches receive
// zoofile.EventWatchLost.
func (store ZKStore) Close() {
	store.Conn.Close()
}

func (store ZKStore) observeRequestDuration(start time.Time, label string) {
	elapsed := time.Since(start)
	ms := float64(elapsed.Nanoseconds() / int64(time.Millisecond))

	store.requestDurationMetric.WithLabelValues(label).Observe(ms)
}

func (store ZKStore) Exists(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	t := time.Now()
	ok, _, err := store.Conn.Exists(path)
	store.observeRequestDuration(t, metricExists)
	if err != nil {
		return false, convertError(path, err)
	}
	return ok, nil
}

func (store ZKStore) Get(ctx context.Context, path string, maxBytes int) ([]byte, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	t := time.Now()
	data, stat, err := store.Conn.Get(path)
	store.observeRequestDuration(t, metricGet)
	if err != nil {
		return nil, 0, convertError(path, err)
	}
	return truncate(data, maxBytes), int(stat.DataLength), nil
}

func (store ZKStore) GetW(ctx context.Context, path string, maxBytes int) ([]byte, int, <-chan zoofile.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, nil, err
	}

	t := time.Now()
	data, stat, zkEvents, err := store.Conn.GetW(path)
	store.observeRequestDuration(t, metricGetW)
	if err != nil {
		return nil, 0, nil, convertError(path, err)
	}

	events := make(chan zoofile.Event, 1)
	go func() {
		defer close(events)
		event, ok := <-zkEvents
		if !ok {
			events <- zoofile.Event{Type: zoofile.EventWatchLost, Path: path}
			return
		}
		events <- convertEvent(path, event)
	}()

	return truncate(data, maxBytes), int(stat.DataLength), events, nil
}

func (store ZKStore) Set(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t := time.Now()
	_, err := store.Conn.Set(path, data, -1)
	store.observeRequestDuration(t, metricSet)
	if err != nil {
		return convertError(path, err)
	}
	return nil
}

func (store ZKStore) Create(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t := time.Now()
	_, err := store.Conn.Create(path, []byte{}, 0, store.ACL)
	store.observeRequestDuration(t, metricCreate)
	if err != nil {
		return convertError(path, err)
	}
	return nil
}

func (store ZKStore) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t := time.Now()
	err := store.Conn.Delete(path, -1)
	store.observeRequestDuration(t, metricDelete)
	if err != nil {
		return convertError(path, err)
	}
	return nil
}

func (store ZKStore) Children(ctx context.Context, path string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t := time.Now()
	children, _, err := store.Conn.Children(path)
	store.observeRequestDuration(t, metricChildren)
	if err != nil {
		return nil, convertError(path, err)
	}
	return children, nil
}

func truncate(data []byte, maxBytes int) []byte {
	if maxBytes >= 0 && len(data) > maxBytes {
		return data[:maxBytes]
	}
	return data
}

// convertError maps the errors of the ZooKeeper client onto the sentinel
// errors of zoofile. The original error stays part of the chain.
func convertError(path string, err error) error {
	var sentinel error
	switch {
	case errors.Is(err, zk.ErrNoNode):
		sentinel = zoofile.ErrNoNode
	case errors.Is(err, zk.ErrNodeExists):
		sentinel = zoofile.ErrNodeExists
	case errors.Is(err, zk.ErrNotEmpty):
		sentinel = zoofile.ErrNotEmpty
	case errors.Is(err, zk.ErrInvalidPath):
		sentinel = zoofile.ErrInvalidPath
	default:
		return fmt.Errorf("zkstore: %s: %w", path, err)
	}
	return fmt.Errorf("zkstore: %s: %w: %w", path, sentinel, err)
}

func convertEvent(path string, event zk.Event) zoofile.Event {
	converted := zoofile.Event{Path: event.Path, Err: event.Err}
	if converted.Path == "" {
		converted.Path = path
	}

	switch event.Type {
	case zk.EventNodeCreated:
		converted.Type = zoofile.EventNodeCreated
	case zk.EventNodeDeleted:
		converted.Type = zoofile.EventNodeDeleted
	case zk.EventNodeDataChanged:
		converted.Type = zoofile.EventNodeDataChanged
	case zk.EventNodeChildrenChanged:
		converted.Type = zoofile.EventNodeChildrenChanged
	default:
		converted.Type = zoofile.EventWatchLost
	}
	return converted
}
