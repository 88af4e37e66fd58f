package zkstore

import (
	"fmt"
	"time"

	"github.com/go-zookeeper/zk"
	"golang.org/x/exp/slog"
)

// Connect dials the ZooKeeper ensemble and returns a store using the new
// connection. Session state changes and the client's own messages are
// written to logger. The connection is established in the background; calls
// made before the session is up block until it is.
func Connect(servers []string, sessionTimeout time.Duration, logger *slog.Logger) (ZKStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, sessionEvents, err := zk.Connect(servers, sessionTimeout, zk.WithLogger(printfLogger{logger}))
	if err != nil {
		return ZKStore{}, fmt.Errorf("zkstore: unable to connect to %v: %w", servers, err)
	}

	go logSessionEvents(sessionEvents, logger)

	return New(conn), nil
}

func logSessionEvents(events <-chan zk.Event, logger *slog.Logger) {
	for event := range events {
		if event.Type != zk.EventSession {
			continue
		}

		switch event.State {
		case zk.StateExpired, zk.StateAuthFailed:
			logger.Warn("ZooKeeperSessionState", "state", event.State.String(), "server", event.Server)
		default:
			logger.Debug("ZooKeeperSessionState", "state", event.State.String(), "server", event.Server)
		}
	}
}

// printfLogger adapts slog to the zk.Logger interface.
type printfLogger struct {
	logger *slog.Logger
}

func (l printfLogger) Printf(format string, args ...interface{}) {
	l.logger.Debug("ZooKeeperClient", "message", fmt.Sprintf(format, args...))
}
