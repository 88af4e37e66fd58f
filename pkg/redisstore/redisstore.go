// Package redisstore provides a Redis based session for zoofile.
//
// Every node is kept in two keys: the payload in the string
// "{prefix}data:{path}" and the names of its children in the set
// "{prefix}children:{path}". The root node is created when the store is
// constructed. Creating and deleting nodes changes keys of two nodes at once,
// so these operations hold a distributed mutex (see
// github.com/go-redsync/redsync) on the node whose children are affected.
//
// Watches are implemented with Redis Pub/Sub: creation, deletion and payload
// changes of a node are published on "{prefix}watch:{path}". Changes to the
// set of children are not published, since watches only cover the node
// itself. Every armed watch holds its own Pub/Sub connection and goroutine
// until it fires, the context passed to GetW is done, or the client is
// closed. A watch ended by its context delivers EventWatchLost carrying the
// context's error.
//
// Multiple processes may share a store as long as they use the same Redis
// instance and prefix.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strconv"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/slog"

	"github.com/zoofs/zoofs/pkg/zoofile"
)

// LockExpiry is the time after which a structural mutex is released if its
// holder disappeared.
var LockExpiry = 8 * time.Second

var _ zoofile.Session = &RedisStore{}

// MutexLock is the subset of *redsync.Mutex used by RedisStore.
type MutexLock interface {
	LockContext(context.Context) error
	UnlockContext(context.Context) (bool, error)
}

type RedisStore struct {
	Client redis.UniversalClient
	// Prefix is prepended to every key and channel name.
	Prefix string
	// CreateMutex returns the mutex guarding the children of the node at
	// path.
	CreateMutex func(path string) MutexLock
	Logger      *slog.Logger
}

func (store *RedisStore) dataKey(p string) string {
	return store.Prefix + "data:" + p
}

func (store *RedisStore) childrenKey(p string) string {
	return store.Prefix + "children:" + p
}

func (store *RedisStore) watchChannel(p string) string {
	return store.Prefix + "watch:" + p
}

func (store *RedisStore) lockName(p string) string {
	return store.Prefix + "lock:" + p
}

func noNode(p string) error {
	return fmt.Errorf("redisstore: %s: %w", p, zoofile.ErrNoNode)
}

// Close closes the Redis client. Outstanding watches receive
// zoofile.EventWatchLost.
func (store *RedisStore) Close() error {
	return store.Client.Close()
}

func (store *RedisStore) Exists(ctx context.Context, p string) (bool, error) {
	if err := zoofile.ValidatePath(p); err != nil {
		return false, err
	}

	n, err := store.Client.Exists(ctx, store.dataKey(p)).Result()
	if err != nil {
		return false, fmt.Errorf("redisstore: %s: %w", p, err)
	}
	return n == 1, nil
}

func (store *RedisStore) Get(ctx context.Context, p string, maxBytes int) ([]byte, int, error) {
	if err := zoofile.ValidatePath(p); err != nil {
		return nil, 0, err
	}

	return store.read(ctx, p, maxBytes)
}

func (store *RedisStore) read(ctx context.Context, p string, maxBytes int) ([]byte, int, error) {
	key := store.dataKey(p)

	var exists *redis.IntCmd
	var length *redis.IntCmd
	var data *redis.StringCmd
	_, err := store.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		exists = pipe.Exists(ctx, key)
		length = pipe.StrLen(ctx, key)
		if maxBytes > 0 {
			// GETRANGE treats the end offset as inclusive.
			data = pipe.GetRange(ctx, key, 0, int64(maxBytes-1))
		}
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("redisstore: %s: %w", p, err)
	}

	if exists.Val() == 0 {
		return nil, 0, noNode(p)
	}
	if data == nil {
		return []byte{}, int(length.Val()), nil
	}
	return []byte(data.Val()), int(length.Val()), nil
}

func (store *RedisStore) GetW(ctx context.Context, p string, maxBytes int) ([]byte, int, <-chan zoofile.Event, error) {
	if err := zoofile.ValidatePath(p); err != nil {
		return nil, 0, nil, err
	}

	// Subscribe before reading, so no change after the read goes unnoticed.
	pubsub := store.Client.Subscribe(ctx, store.watchChannel(p))
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, 0, nil, fmt.Errorf("redisstore: %s: unable to watch: %w", p, err)
	}

	data, length, err := store.read(ctx, p, maxBytes)
	if err != nil {
		pubsub.Close()
		return nil, 0, nil, err
	}

	events := make(chan zoofile.Event, 1)
	go store.relayEvent(ctx, pubsub, p, events)
	return data, length, events, nil
}

// relayEvent forwards the first notification on the subscription and closes
// both the subscription and events afterwards. Once ctx is done the
// subscription is closed, which ends the pending receive.
func (store *RedisStore) relayEvent(ctx context.Context, pubsub *redis.PubSub, p string, events chan<- zoofile.Event) {
	defer close(events)
	defer pubsub.Close()

	stop := context.AfterFunc(ctx, func() {
		pubsub.Close()
	})
	defer stop()

	msg, err := pubsub.ReceiveMessage(context.Background())
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		store.Logger.Debug("RedisWatchLost", "path", p, "error", err)
		events <- zoofile.Event{Type: zoofile.EventWatchLost, Path: p, Err: err}
		return
	}

	typ, err := strconv.Atoi(msg.Payload)
	if err != nil {
		events <- zoofile.Event{Type: zoofile.EventWatchLost, Path: p, Err: fmt.Errorf("redisstore: malformed event %q", msg.Payload)}
		return
	}
	events <- zoofile.Event{Type: zoofile.EventType(typ), Path: p}
}

func (store *RedisStore) publish(ctx context.Context, p string, typ zoofile.EventType) {
	if err := store.Client.Publish(ctx, store.watchChannel(p), strconv.Itoa(int(typ))).Err(); err != nil {
		store.Logger.Warn("RedisPublishFailed", "path", p, "event", typ.String(), "error", err)
	}
}

func (store *RedisStore) Set(ctx context.Context, p string, data []byte) error {
	if err := zoofile.ValidatePath(p); err != nil {
		return err
	}

	ok, err := store.Client.SetXX(ctx, store.dataKey(p), data, 0).Result()
	if err != nil {
		return fmt.Errorf("redisstore: %s: %w", p, err)
	}
	if !ok {
		return noNode(p)
	}

	store.publish(ctx, p, zoofile.EventNodeDataChanged)
	return nil
}

// lock acquires the mutex guarding the children of p and returns the
// function releasing it.
func (store *RedisStore) lock(ctx context.Context, p string) (func(), error) {
	mutex := store.CreateMutex(store.lockName(p))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, fmt.Errorf("redisstore: unable to lock %s: %w", p, err)
	}

	return func() {
		// The lock expires on its own if unlocking fails.
		if _, err := mutex.UnlockContext(context.Background()); err != nil {
			store.Logger.Warn("RedisUnlockFailed", "path", p, "error", err)
		}
	}, nil
}

func (store *RedisStore) Create(ctx context.Context, p string) error {
	if err := zoofile.ValidatePath(p); err != nil {
		return err
	}
	if p == "/" {
		return fmt.Errorf("redisstore: %s: %w", p, zoofile.ErrNodeExists)
	}

	parent := path.Dir(p)
	unlock, err := store.lock(ctx, parent)
	if err != nil {
		return err
	}
	defer unlock()

	// Nodes below parent are only created while holding its mutex, so the
	// node cannot appear between this check and the transaction below.
	var parentExists *redis.IntCmd
	var nodeExists *redis.IntCmd
	_, err = store.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		parentExists = pipe.Exists(ctx, store.dataKey(parent))
		nodeExists = pipe.Exists(ctx, store.dataKey(p))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redisstore: %s: %w", p, err)
	}
	if nodeExists.Val() == 1 {
		return fmt.Errorf("redisstore: %s: %w", p, zoofile.ErrNodeExists)
	}
	if parentExists.Val() == 0 {
		return noNode(parent)
	}

	_, err = store.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, store.dataKey(p), "", 0)
		pipe.SAdd(ctx, store.childrenKey(parent), path.Base(p))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redisstore: %s: %w", p, err)
	}

	store.publish(ctx, p, zoofile.EventNodeCreated)
	return nil
}

func (store *RedisStore) Delete(ctx context.Context, p string) error {
	if err := zoofile.ValidatePath(p); err != nil {
		return err
	}

	unlock, err := store.lock(ctx, p)
	if err != nil {
		return err
	}
	defer unlock()

	var exists *redis.IntCmd
	var children *redis.IntCmd
	_, err = store.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		exists = pipe.Exists(ctx, store.dataKey(p))
		children = pipe.SCard(ctx, store.childrenKey(p))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redisstore: %s: %w", p, err)
	}
	if exists.Val() == 0 {
		return noNode(p)
	}
	if children.Val() > 0 {
		return fmt.Errorf("redisstore: %s: %w", p, zoofile.ErrNotEmpty)
	}
	if p == "/" {
		return errors.New("redisstore: the root node cannot be deleted")
	}

	parent := path.Dir(p)
	_, err = store.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, store.dataKey(p), store.childrenKey(p))
		pipe.SRem(ctx, store.childrenKey(parent), path.Base(p))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redisstore: %s: %w", p, err)
	}

	store.publish(ctx, p, zoofile.EventNodeDeleted)
	return nil
}

func (store *RedisStore) Children(ctx context.Context, p string) ([]string, error) {
	if err := zoofile.ValidatePath(p); err != nil {
		return nil, err
	}

	var exists *redis.IntCmd
	var members *redis.StringSliceCmd
	_, err := store.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		exists = pipe.Exists(ctx, store.dataKey(p))
		members = pipe.SMembers(ctx, store.childrenKey(p))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("redisstore: %s: %w", p, err)
	}
	if exists.Val() == 0 {
		return nil, noNode(p)
	}

	children := members.Val()
	sort.Strings(children)
	return children, nil
}

// newMutex is the default for RedisStore.CreateMutex.
func newMutex(rs *redsync.Redsync) func(name string) MutexLock {
	return func(name string) MutexLock {
		return rs.NewMutex(name, redsync.WithExpiry(LockExpiry))
	}
}
