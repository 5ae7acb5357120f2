package lock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// ErrNotObtained is returned when another holder owns the key.
var ErrNotObtained = errors.New("lock not obtained")

// DocumentLocker guards a document across instances for the duration of a
// post or cancel. Obtain never waits for a busy key.
type DocumentLocker interface {
	Obtain(ctx context.Context, key string) (Lease, error)
}

// Lease is a held lock.
type Lease interface {
	Release(ctx context.Context) error
}

// DocumentKey is the lock key of an inventory document.
func DocumentKey(docID string) string {
	return "inventory-doc:" + docID
}

// RedisLocker holds keys in Redis so that several API instances exclude each other.
type RedisLocker struct {
	client *redislock.Client
	ttl    time.Duration
}

func NewRedisLocker(rdb redis.UniversalClient, ttl time.Duration) *RedisLocker {
	return &RedisLocker{client: redislock.New(rdb), ttl: ttl}
}

func (l *RedisLocker) Obtain(ctx context.Context, key string) (Lease, error) {
	lk, err := l.client.Obtain(ctx, key, l.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrNotObtained
	}
	if err != nil {
		return nil, err
	}
	return lk, nil
}

// LocalLocker is the single-instance fallback used when Redis is not configured.
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]struct{})}
}

func (l *LocalLocker) Obtain(_ context.Context, key string) (Lease, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, busy := l.held[key]; busy {
		return nil, ErrNotObtained
	}
	l.held[key] = struct{}{}
	return &localLease{owner: l, key: key}, nil
}

type localLease struct {
	owner *LocalLocker
	key   string
	once  sync.Once
}

func (le *localLease) Release(context.Context) error {
	le.once.Do(func() {
		le.owner.mu.Lock()
		delete(le.owner.held, le.key)
		le.owner.mu.Unlock()
	})
	return nil
}
