package cloud

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Pusher is the slice of Mirror the queue needs. Satisfied by *Mirror.
type Pusher interface {
	Push(ctx context.Context, key string, blob []byte) error
}

type pendingPush struct {
	Key  string
	Blob []byte
	seq  uint64
}

// Queue holds pushes that could not reach the cloud store and replays them in
// FIFO order once connectivity returns. Unbounded; drained sequentially.
type Queue struct {
	mu      sync.Mutex
	pending []pendingPush
	nextSeq uint64
	pusher  Pusher
	logger  *zap.SugaredLogger
}

func NewQueue(pusher Pusher, logger *zap.Logger) *Queue {
	return &Queue{
		pusher: pusher,
		logger: logger.Sugar(),
	}
}

// Submit tries the push immediately and queues it on failure. A newer blob for
// the same key supersedes a queued older one: the mirror is whole-blob, so
// replaying stale versions would just be overwritten anyway.
func (q *Queue) Submit(ctx context.Context, key string, blob []byte) error {
	if err := q.pusher.Push(ctx, key, blob); err != nil {
		q.logger.Warnw("cloud push failed, queued for retry", "key", key, "err", err)
		q.enqueue(key, blob)
		return err
	}
	return nil
}

func (q *Queue) enqueue(key string, blob []byte) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.nextSeq++
	for i, p := range q.pending {
		if p.Key == key {
			q.pending[i].Blob = blob
			q.pending[i].seq = q.nextSeq
			return
		}
	}
	q.pending = append(q.pending, pendingPush{Key: key, Blob: blob, seq: q.nextSeq})
}

// Pending reports how many pushes are waiting.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Drain replays queued pushes in order, stopping at the first failure so
// ordering is preserved for the next attempt.
func (q *Queue) Drain(ctx context.Context) error {
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.mu.Unlock()
			return nil
		}
		head := q.pending[0]
		q.mu.Unlock()

		if err := q.pusher.Push(ctx, head.Key, head.Blob); err != nil {
			return err
		}

		q.mu.Lock()
		// pop only the exact version that was pushed; a blob that superseded
		// the head mid-flight stays queued for the next loop iteration
		if len(q.pending) > 0 && q.pending[0].Key == head.Key && q.pending[0].seq == head.seq {
			q.pending = q.pending[1:]
		}
		q.mu.Unlock()
		q.logger.Infow("queued cloud push replayed", "key", head.Key)
	}
}

// Run drains on a ticker until ctx is done.
func (q *Queue) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := q.Drain(ctx); err != nil {
				q.logger.Debugw("cloud drain still failing", "err", err)
			}
		}
	}
}
