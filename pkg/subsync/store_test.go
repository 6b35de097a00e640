package subsync

import (
	"testing"
	"time"

	"promolink_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreMergeReplacesInPlace(t *testing.T) {
	store := NewStore()
	now := time.Now()

	store.Reset([]models.Submission{
		makeSubmission("sub-1", "post-1", "inf-1", models.SubmissionRequested, now),
		makeSubmission("sub-2", "post-1", "inf-2", models.SubmissionRequested, now),
	})

	// Обновление существующей записи не меняет её позицию
	updated := makeSubmission("sub-2", "post-1", "inf-2", models.SubmissionAccepted, now.Add(time.Second))
	store.Merge([]models.Submission{updated})

	snapshot := store.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, "sub-1", snapshot[0].ID)
	assert.Equal(t, "sub-2", snapshot[1].ID)
	assert.Equal(t, models.SubmissionAccepted, snapshot[1].Status)
}

func TestStoreMergePrependsNew(t *testing.T) {
	store := NewStore()
	now := time.Now()

	store.Reset([]models.Submission{
		makeSubmission("sub-1", "post-1", "inf-1", models.SubmissionRequested, now),
	})

	store.Merge([]models.Submission{
		makeSubmission("sub-2", "post-1", "inf-2", models.SubmissionRequested, now.Add(time.Second)),
	})

	snapshot := store.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, "sub-2", snapshot[0].ID, "новая запись должна оказаться сверху")
	assert.Equal(t, "sub-1", snapshot[1].ID)
}

func TestStoreFilterEvictsAfterMerge(t *testing.T) {
	store := NewStore()
	now := time.Now()

	store.SetFilter("requested")
	store.Reset([]models.Submission{
		makeSubmission("sub-1", "post-1", "inf-1", models.SubmissionRequested, now),
		makeSubmission("sub-2", "post-1", "inf-2", models.SubmissionRequested, now),
	})

	// Запись перешла в чужой для вкладки статус - исчезает из кеша
	store.Merge([]models.Submission{
		makeSubmission("sub-1", "post-1", "inf-1", models.SubmissionAccepted, now.Add(time.Second)),
	})

	snapshot := store.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, "sub-2", snapshot[0].ID)
}

func TestStoreFilterAcceptsLegacyAlias(t *testing.T) {
	store := NewStore()
	now := time.Now()

	// Старые сборки присылают pending вместо requested
	store.SetFilter("pending")
	store.Merge([]models.Submission{
		makeSubmission("sub-1", "post-1", "inf-1", models.SubmissionRequested, now),
		makeSubmission("sub-2", "post-1", "inf-2", models.SubmissionAccepted, now),
	})

	snapshot := store.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, "sub-1", snapshot[0].ID)
}

func TestStoreSetFilterEvictsExisting(t *testing.T) {
	store := NewStore()
	now := time.Now()

	store.Reset([]models.Submission{
		makeSubmission("sub-1", "post-1", "inf-1", models.SubmissionRequested, now),
		makeSubmission("sub-2", "post-1", "inf-2", models.SubmissionCreditedMoney, now),
	})

	store.SetFilter("credited_money")

	snapshot := store.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, "sub-2", snapshot[0].ID)

	store.SetFilter("all")
	assert.Equal(t, 1, store.Len(), "снятие фильтра не возвращает выселенные записи")
}

func TestStoreSnapshotIsCopy(t *testing.T) {
	store := NewStore()
	now := time.Now()

	store.Reset([]models.Submission{
		makeSubmission("sub-1", "post-1", "inf-1", models.SubmissionRequested, now),
	})

	snapshot := store.Snapshot()
	snapshot[0].Status = models.SubmissionRejected

	inStore, ok := store.Get("sub-1")
	require.True(t, ok)
	assert.Equal(t, models.SubmissionRequested, inStore.Status)
}
