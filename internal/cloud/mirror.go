package cloud

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Fixed keys for the whole-blob mirror. The cloud store never sees plaintext:
// blobs arrive already sealed by the local codec.
const (
	JournalKey  = "achievr:journal"
	ProgressKey = "achievr:progress"
)

var ErrNoRemoteBlob = errors.New("no remote blob for key")

// Mirror synchronizes sealed blobs wholesale with a personal key-value store.
type Mirror struct {
	rdb *redis.Client
}

func NewMirror(addr, password string, db int) *Mirror {
	return &Mirror{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (m *Mirror) Ping(ctx context.Context) error {
	return m.rdb.Ping(ctx).Err()
}

// Push overwrites the remote blob for key. Last writer wins.
func (m *Mirror) Push(ctx context.Context, key string, blob []byte) error {
	if err := m.rdb.Set(ctx, key, blob, 0).Err(); err != nil {
		return fmt.Errorf("push %s: %w", key, err)
	}
	return nil
}

// Pull fetches the remote blob for key.
func (m *Mirror) Pull(ctx context.Context, key string) ([]byte, error) {
	blob, err := m.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoRemoteBlob
		}
		return nil, fmt.Errorf("pull %s: %w", key, err)
	}
	return blob, nil
}

func (m *Mirror) Close() error {
	return m.rdb.Close()
}
