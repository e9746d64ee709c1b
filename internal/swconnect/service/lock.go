package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Locker 按物料编码串行化修订
type Locker interface {
	// Lock 获取锁，返回的 unlock 必须调用
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

func lockKey(itemCode string) string {
	return "swconnect:lock:item:" + itemCode
}

// MemoryLocker 进程内锁，未配置 redis 时使用
type MemoryLocker struct {
	wait  time.Duration
	mu    sync.Mutex
	slots map[string]*lockSlot
}

type lockSlot struct {
	ch   chan struct{}
	refs int
}

// NewMemoryLocker 创建进程内锁
func NewMemoryLocker(wait time.Duration) *MemoryLocker {
	return &MemoryLocker{wait: wait, slots: make(map[string]*lockSlot)}
}

func (l *MemoryLocker) acquireSlot(key string) *lockSlot {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot, ok := l.slots[key]
	if !ok {
		slot = &lockSlot{ch: make(chan struct{}, 1)}
		l.slots[key] = slot
	}
	slot.refs++
	return slot
}

func (l *MemoryLocker) releaseSlot(key string, slot *lockSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot.refs--
	if slot.refs == 0 {
		delete(l.slots, key)
	}
}

// Lock 获取锁，等待超过 wait 返回 ErrLockTimeout
func (l *MemoryLocker) Lock(ctx context.Context, key string) (func(), error) {
	slot := l.acquireSlot(key)

	if l.wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.wait)
		defer cancel()
	}

	select {
	case slot.ch <- struct{}{}:
	case <-ctx.Done():
		l.releaseSlot(key, slot)
		return nil, ErrLockTimeout
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-slot.ch
			l.releaseSlot(key, slot)
		})
	}, nil
}

// 只删除自己持有的锁
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker 基于 redis SET NX 的分布式锁，多实例部署时使用
type RedisLocker struct {
	rdb      *redis.Client
	ttl      time.Duration
	wait     time.Duration
	interval time.Duration
	logger   *zap.Logger
}

// NewRedisLocker 创建分布式锁
func NewRedisLocker(rdb *redis.Client, ttl, wait time.Duration, logger *zap.Logger) *RedisLocker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisLocker{rdb: rdb, ttl: ttl, wait: wait, interval: 50 * time.Millisecond, logger: logger}
}

// Lock 轮询获取锁，等待超过 wait 返回 ErrLockTimeout
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.New().String()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return nil, ErrLockTimeout
		}
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, ErrLockTimeout
			}
			return nil, ctx.Err()
		case <-time.After(l.interval):
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			n, err := releaseScript.Run(context.Background(), l.rdb, []string{key}, token).Int()
			if err != nil {
				l.logger.Error("Failed to release item lock, held until TTL",
					zap.String("key", key), zap.Duration("ttl", l.ttl), zap.Error(err))
				return
			}
			if n == 0 {
				l.logger.Warn("Item lock expired before release", zap.String("key", key), zap.Duration("ttl", l.ttl))
			}
		})
	}, nil
}
