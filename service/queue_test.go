package service

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"
	dmn "github.com/gridweave/gridweave-api/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSortedQueue is an in-memory stand-in for the Redis sorted queue.
type fakeSortedQueue struct {
	mu      sync.Mutex
	entries map[string][]scoredMember
}

type scoredMember struct {
	score  float64
	member string
}

func newFakeSortedQueue() *fakeSortedQueue {
	return &fakeSortedQueue{entries: make(map[string][]scoredMember)}
}

func (q *fakeSortedQueue) Enqueue(_ context.Context, queueKey string, score float64, member string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries[queueKey] = append(q.entries[queueKey], scoredMember{score: score, member: member})
	sort.Slice(q.entries[queueKey], func(a, b int) bool {
		return q.entries[queueKey][a].score < q.entries[queueKey][b].score
	})
	return nil
}

func (q *fakeSortedQueue) DequeTops(_ context.Context, queueKey string, amount int64) ([]string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var members []string
	for int64(len(members)) < amount && len(q.entries[queueKey]) > 0 {
		members = append(members, q.entries[queueKey][0].member)
		q.entries[queueKey] = q.entries[queueKey][1:]
	}
	return members, nil
}

func (q *fakeSortedQueue) Count(_ context.Context, queueKey string) int64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int64(len(q.entries[queueKey]))
}

func newTestQueue(t *testing.T, opts *QueueOptions) (*GenerationQueue, *fakeGridRepo, *fakeSortedQueue) {
	t.Helper()
	repo := newFakeGridRepo()
	grids := newTestGridService(t, repo, nil)
	sorted := newFakeSortedQueue()
	queue, err := NewGenerationQueue(sorted, grids, nopLogger{}, opts)
	require.NoError(t, err)
	return queue, repo, sorted
}

func TestGenerationJobParams(t *testing.T) {
	params := testParams()
	job := newGenerationJob(uuid.New(), params)

	assert.Equal(t, params, job.Params())
	assert.NotZero(t, job.EnqueuedAt)
}

func TestGenerationQueueEnqueue(t *testing.T) {
	queue, _, _ := newTestQueue(t, nil)
	ownerID := uuid.New()

	t.Run("valid job", func(t *testing.T) {
		jobID, err := queue.Enqueue(context.Background(), ownerID, testParams())
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, jobID)
		assert.Equal(t, int64(1), queue.Pending(context.Background()))
	})

	t.Run("invalid parameters never reach the queue", func(t *testing.T) {
		pending := queue.Pending(context.Background())

		bad := testParams()
		bad.Spacing = -1
		_, err := queue.Enqueue(context.Background(), ownerID, bad)
		assert.Error(t, err)
		assert.Equal(t, pending, queue.Pending(context.Background()))
	})
}

func TestGenerationQueueDrain(t *testing.T) {
	var handled []uuid.UUID
	var handledMu sync.Mutex
	var wg sync.WaitGroup

	queue, repo, sorted := newTestQueue(t, &QueueOptions{
		DrainBatch: 8,
		Handler: func(record *dmn.GridRecord) {
			handledMu.Lock()
			handled = append(handled, record.ID)
			handledMu.Unlock()
			wg.Done()
		},
	})

	ownerID := uuid.New()
	for n := 0; n < 3; n++ {
		wg.Add(1)
		_, err := queue.Enqueue(context.Background(), ownerID, testParams())
		require.NoError(t, err)
	}

	generated := queue.drain(context.Background())
	wg.Wait()

	assert.Equal(t, 3, generated)
	assert.Len(t, handled, 3)
	assert.Zero(t, queue.Pending(context.Background()))

	records, err := repo.ByOwner(ownerID)
	require.NoError(t, err)
	assert.Len(t, records, 3)

	t.Run("corrupt members are skipped", func(t *testing.T) {
		err := sorted.Enqueue(context.Background(), queue.queueKey(), 1, "not json")
		require.NoError(t, err)
		assert.Zero(t, queue.drain(context.Background()))
	})
}
