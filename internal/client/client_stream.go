package client

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const profileChannelPrefix = "profile.changed."

// Notifier fans profile changes out through redis pub/sub so every API
// instance can serve live watchers. Publish failures are logged, never
// surfaced: a missed live update is repaired by the next one.
type Notifier struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewNotifier(rdb *redis.Client, logger ...*zap.Logger) *Notifier {
	l := zap.L().Named("client.notifier")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("client.notifier")
	}
	return &Notifier{rdb: rdb, logger: l}
}

func (n *Notifier) ProfileChanged(ctx context.Context, clientID string) {
	channel := profileChannelPrefix + clientID
	if err := n.rdb.Publish(ctx, channel, time.Now().UTC().Format(time.RFC3339Nano)).Err(); err != nil {
		n.logger.Warn("profile change publish failed",
			zap.String("client_id", clientID),
			zap.Error(err),
		)
	}
}

// Watch subscribes to one client's change channel. The returned channel
// coalesces bursts and closes when ctx is done.
func (n *Notifier) Watch(ctx context.Context, clientID string) <-chan struct{} {
	sub := n.rdb.Subscribe(ctx, profileChannelPrefix+clientID)
	out := make(chan struct{}, 1)

	go func() {
		defer close(out)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				_ = msg
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out
}
