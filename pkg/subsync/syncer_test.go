package subsync

import (
	"context"
	"errors"
	"testing"
	"time"

	"promolink_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSyncer(transport Transport) (*Syncer, *Store) {
	store := NewStore()
	actor := Actor{ID: "brand-1", Role: models.UserRoleBrand}
	syncer := NewSyncer(transport, store, actor, Config{PollInterval: 10 * time.Millisecond})
	return syncer, store
}

func TestSyncerAdvancesSinceOnSuccess(t *testing.T) {
	now := time.Now()
	transport := &fakeTransport{
		pollResults: [][]models.Submission{
			{makeSubmission("sub-1", "post-1", "inf-1", models.SubmissionRequested, now)},
		},
	}
	syncer, store := newTestSyncer(transport)

	before := time.Now()
	require.NoError(t, syncer.SyncNow(context.Background()))
	after := time.Now()

	assert.Equal(t, 1, store.Len())

	// since двигается на локальный момент перед запросом
	since := syncer.Since()
	assert.False(t, since.Before(before))
	assert.False(t, since.After(after))

	// Следующий тик уходит с новым курсором
	require.NoError(t, syncer.SyncNow(context.Background()))
	sent := transport.sinceValues()
	require.Len(t, sent, 2)
	assert.True(t, sent[0].IsZero(), "первый тик - полная выборка с нулевого курсора")
	assert.Equal(t, since, sent[1])
}

func TestSyncerKeepsSinceOnFailure(t *testing.T) {
	transport := &fakeTransport{pollErr: errors.New("network down")}
	syncer, store := newTestSyncer(transport)

	err := syncer.SyncNow(context.Background())
	require.Error(t, err)

	assert.True(t, syncer.Since().IsZero(), "неудачный тик не двигает курсор")
	assert.Equal(t, 0, store.Len())
}

func TestSyncerSinceIsMonotonic(t *testing.T) {
	transport := &fakeTransport{}
	syncer, _ := newTestSyncer(transport)

	var prev time.Time
	for i := 0; i < 3; i++ {
		require.NoError(t, syncer.SyncNow(context.Background()))
		since := syncer.Since()
		assert.False(t, since.Before(prev))
		prev = since
	}
}

func TestSyncerVisibilityGatesPolling(t *testing.T) {
	transport := &fakeTransport{}
	syncer, _ := newTestSyncer(transport)

	syncer.SetVisible(false)
	syncer.Start(context.Background())
	defer syncer.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, transport.sinceValues(), "невидимый экран не должен ходить в сеть")

	syncer.SetVisible(true)
	assert.Eventually(t, func() bool {
		return len(transport.sinceValues()) > 0
	}, time.Second, 5*time.Millisecond, "после возврата видимости опрос возобновляется")
}

func TestSyncerDiscardsResponseAfterStop(t *testing.T) {
	now := time.Now()
	transport := &fakeTransport{
		pollResults: [][]models.Submission{
			{makeSubmission("sub-1", "post-1", "inf-1", models.SubmissionRequested, now)},
		},
	}
	syncer, store := newTestSyncer(transport)

	// Тик стартовал в старом поколении, Stop/Start случился пока ответ летел
	syncer.mu.Lock()
	staleGen := syncer.generation
	syncer.generation++
	syncer.mu.Unlock()

	require.NoError(t, syncer.tick(context.Background(), staleGen))

	assert.Equal(t, 0, store.Len(), "поздний ответ не должен попасть в кеш")
	assert.True(t, syncer.Since().IsZero(), "поздний ответ не должен двигать курсор")
}

func TestSyncerStartStopIdempotent(t *testing.T) {
	transport := &fakeTransport{}
	syncer, _ := newTestSyncer(transport)

	syncer.Start(context.Background())
	syncer.Start(context.Background())
	syncer.Stop()
	syncer.Stop()

	// Повторный запуск после остановки работает
	syncer.Start(context.Background())
	syncer.Stop()
}

func TestSyncerPollsOnTicker(t *testing.T) {
	transport := &fakeTransport{}
	syncer, _ := newTestSyncer(transport)

	syncer.Start(context.Background())
	defer syncer.Stop()

	assert.Eventually(t, func() bool {
		return len(transport.sinceValues()) >= 2
	}, time.Second, 5*time.Millisecond)
}
