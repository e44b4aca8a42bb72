// Package cleanup defers deletion of superseded files to a worker outside the request.
package cleanup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// JobName identifies the deferred deletion job on the queue.
const JobName = "delete_old_files_from_storage"

// ErrMalformedJob marks a queue entry that could not be decoded; such entries are dropped.
var ErrMalformedJob = errors.New("malformed cleanup job")

// Job carries the full list of storage paths to delete.
type Job struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Paths      []string  `json:"args"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// Dispatcher hands a batch of superseded paths to the asynchronous queue. It does not wait
// for the deletion to happen.
type Dispatcher interface {
	Enqueue(ctx context.Context, paths []string) error
}

// RedisQueue is a Dispatcher and job source backed by a Redis list.
// Producers LPUSH, the worker BRPOPs, so jobs run in submission order.
type RedisQueue struct {
	client redis.Cmdable
	key    string
	now    func() time.Time
}

// NewRedisQueue returns a queue stored under key.
func NewRedisQueue(client redis.Cmdable, key string) *RedisQueue {
	return &RedisQueue{client: client, key: key, now: time.Now}
}

var _ Dispatcher = (*RedisQueue)(nil)

// Enqueue pushes one job carrying every path.
func (q *RedisQueue) Enqueue(ctx context.Context, paths []string) error {
	job := Job{
		ID:         uuid.NewString(),
		Name:       JobName,
		Paths:      paths,
		EnqueuedAt: q.now().UTC(),
	}
	b, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode cleanup job: %w", err)
	}
	if err := q.client.LPush(ctx, q.key, b).Err(); err != nil {
		return fmt.Errorf("push cleanup job: %w", err)
	}
	return nil
}

// Dequeue blocks up to timeout for the next job. It returns nil, nil when nothing arrived.
func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) (*Job, error) {
	res, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	// res is [key, value]
	if len(res) != 2 {
		return nil, fmt.Errorf("%w: unexpected reply %v", ErrMalformedJob, res)
	}
	var job Job
	if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJob, err)
	}
	if job.Name != JobName {
		return nil, fmt.Errorf("%w: unknown job %q", ErrMalformedJob, job.Name)
	}
	return &job, nil
}

// Len reports how many jobs are waiting.
func (q *RedisQueue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key).Result()
}
