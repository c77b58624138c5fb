package lock

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

const defaultTTL = 30 * time.Second

var (
	releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

	refreshScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0`)
)

// Redis is a Locker shared by every process pointed at the same Redis server.
// Held locks carry a TTL that a background goroutine keeps extending, so a
// crashed holder frees its books once the TTL lapses.
type Redis struct {
	rdb    *goredis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedis connects to addr and verifies the connection.
func NewRedis(ctx context.Context, addr string, logger *slog.Logger) (*Redis, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}
	return &Redis{rdb: rdb, ttl: defaultTTL, logger: logger}, nil
}

// Close closes the Redis client.
func (r *Redis) Close() error {
	return r.rdb.Close()
}

// TryAcquire sets key with NX and a TTL or returns ErrLocked.
func (r *Redis) TryAcquire(ctx context.Context, key string) (Lock, error) {
	token := uuid.New().String()
	ok, err := r.rdb.SetNX(ctx, key, token, r.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}

	refreshCtx, cancel := context.WithCancel(context.Background())
	l := &redisLock{r: r, key: key, token: token, cancel: cancel, done: make(chan struct{})}
	go l.keepAlive(refreshCtx)
	return l, nil
}

type redisLock struct {
	r      *Redis
	key    string
	token  string
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func (l *redisLock) keepAlive(ctx context.Context) {
	defer close(l.done)
	ticker := time.NewTicker(l.r.ttl / 3)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := refreshScript.Run(ctx, l.r.rdb, []string{l.key}, l.token, l.r.ttl.Milliseconds()).Int()
			if err != nil && ctx.Err() == nil {
				l.r.logger.Warn("failed to refresh lock", "key", l.key, "error", err)
				continue
			}
			if err == nil && n == 0 {
				l.r.logger.Error("lock lost", "key", l.key)
				return
			}
		}
	}
}

// Release stops the refresher and deletes the key if this lock still owns it.
func (l *redisLock) Release(ctx context.Context) error {
	var err error
	l.once.Do(func() {
		l.cancel()
		<-l.done
		if e := releaseScript.Run(ctx, l.r.rdb, []string{l.key}, l.token).Err(); e != nil {
			err = fmt.Errorf("redis release: %w", e)
		}
	})
	return err
}
