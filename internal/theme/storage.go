package theme

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	bolt "go.etcd.io/bbolt"
)

// Storage is the durable key-value slot the accent is persisted in.
type Storage interface {
	Load(ctx context.Context, key string) (value string, ok bool, err error)
	Save(ctx context.Context, key, value string) error
}

// MemoryStorage keeps values for the lifetime of the process.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Load(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStorage) Save(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

var settingsBucket = []byte("settings")

// BoltStorage persists to a single bbolt file.
type BoltStorage struct {
	db *bolt.DB
}

func OpenBoltStorage(path string) (*BoltStorage, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open theme store %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(settingsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltStorage{db: db}, nil
}

func (b *BoltStorage) Load(_ context.Context, key string) (string, bool, error) {
	var value []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(settingsBucket).Get([]byte(key)); v != nil {
			value = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return "", false, err
	}
	if value == nil {
		return "", false, nil
	}
	return string(value), true, nil
}

func (b *BoltStorage) Save(_ context.Context, key, value string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(settingsBucket).Put([]byte(key), []byte(value))
	})
}

func (b *BoltStorage) Close() error {
	return b.db.Close()
}

// RedisStorage shares the accent between api replicas.
type RedisStorage struct {
	client redis.Cmdable
	prefix string
}

func NewRedisStorage(client redis.Cmdable, prefix string) *RedisStorage {
	if prefix == "" {
		prefix = "folio:theme"
	}
	return &RedisStorage{client: client, prefix: prefix}
}

func (r *RedisStorage) Load(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.prefix+":"+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *RedisStorage) Save(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.prefix+":"+key, value, 0).Err()
}
