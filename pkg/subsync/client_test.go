package subsync

import (
	"context"
	"testing"
	"time"

	"promolink_backend/internal/lifecycle"
	"promolink_backend/internal/models"
	"promolink_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientLoadReplacesCache(t *testing.T) {
	now := time.Now()
	transport := &fakeTransport{
		listResult: []models.Submission{
			makeSubmission("sub-1", "post-1", "inf-1", models.SubmissionRequested, now),
			makeSubmission("sub-2", "post-1", "inf-2", models.SubmissionRequested, now),
		},
	}
	client := NewClient(transport, Actor{ID: "brand-1", Role: models.UserRoleBrand}, Config{})

	require.NoError(t, client.Load(context.Background(), "requested"))
	assert.Equal(t, 2, client.Store.Len())
	assert.Equal(t, "requested", client.Store.Filter())
}

// Цикл ревью обратим: review-complete и его отмена гоняют заявку между
// proof_submitted и review_completed, ссылка на пруф при этом не теряется.
func TestReviewCycleKeepsProofFields(t *testing.T) {
	now := time.Now()
	link := "https://example.com/post/42"

	proofSubmitted := makeSubmission("sub-1", "post-1", "inf-1", models.SubmissionProofSubmitted, now)
	proofSubmitted.Link = &link
	proofSubmitted.Description = strPtr("reel")

	reviewCompleted := proofSubmitted
	reviewCompleted.Status = models.SubmissionReviewCompleted
	reviewCompleted.UpdatedAt = now.Add(time.Second)

	undone := proofSubmitted
	undone.UpdatedAt = now.Add(2 * time.Second)

	transport := &fakeTransport{actionResult: &reviewCompleted}
	dispatcher, store := newTestDispatcher(transport, models.UserRoleBrand)
	store.Upsert(proofSubmitted)

	_, err := dispatcher.Perform(context.Background(), "post-1", "inf-1", lifecycle.ActionReviewComplete, nil)
	require.NoError(t, err)

	cached, _ := store.Get("sub-1")
	assert.Equal(t, models.SubmissionReviewCompleted, cached.Status)
	require.NotNil(t, cached.Link)
	assert.Equal(t, link, *cached.Link)

	transport.mu.Lock()
	transport.actionResult = &undone
	transport.mu.Unlock()

	_, err = dispatcher.Perform(context.Background(), "post-1", "inf-1", lifecycle.ActionUndoReviewComplete, nil)
	require.NoError(t, err)

	cached, _ = store.Get("sub-1")
	assert.Equal(t, models.SubmissionProofSubmitted, cached.Status)
	require.NotNil(t, cached.Link, "отмена ревью не должна терять пруф")
	assert.Equal(t, link, *cached.Link)

	// После отмены снова доступен и review-complete, и повторная отмена - нет
	assert.True(t, lifecycle.CanApply(cached.Status, lifecycle.ActionReviewComplete))
	assert.False(t, lifecycle.CanApply(cached.Status, lifecycle.ActionUndoReviewComplete))
}

// Полный счастливый путь: requested -> accepted -> proof_submitted ->
// review_completed -> credited_money, каждый шаг через диспетчер.
func TestFullLifecycleThroughDispatcher(t *testing.T) {
	now := time.Now()

	brandTransport := &fakeTransport{}
	brand, brandStore := newTestDispatcher(brandTransport, models.UserRoleBrand)

	infTransport := &fakeTransport{}
	influencer, infStore := newTestDispatcher(infTransport, models.UserRoleInfluencer)

	sub := makeSubmission("sub-1", "post-1", "inf-1", models.SubmissionRequested, now)
	brandStore.Upsert(sub)
	infStore.Upsert(sub)

	step := func(t *testing.T, d *Dispatcher, ft *fakeTransport, action lifecycle.Action, next models.SubmissionStatus, proof *dto.SubmitProofRequest) models.Submission {
		t.Helper()
		result := sub
		result.Status = next
		result.UpdatedAt = result.UpdatedAt.Add(time.Second)
		if proof != nil {
			result.Link = &proof.Link
			result.Description = &proof.Description
		}
		ft.mu.Lock()
		ft.actionResult = &result
		ft.mu.Unlock()

		got, err := d.Perform(context.Background(), "post-1", "inf-1", action, proof)
		require.NoError(t, err)
		assert.Equal(t, next, got.Status)

		sub = got
		brandStore.Upsert(got)
		infStore.Upsert(got)
		return got
	}

	step(t, brand, brandTransport, lifecycle.ActionAccept, models.SubmissionAccepted, nil)
	step(t, influencer, infTransport, lifecycle.ActionSubmitProof, models.SubmissionProofSubmitted,
		&dto.SubmitProofRequest{Link: "https://example.com/p/1", Description: "story"})
	step(t, brand, brandTransport, lifecycle.ActionReviewComplete, models.SubmissionReviewCompleted, nil)
	final := step(t, brand, brandTransport, lifecycle.ActionCreditMoney, models.SubmissionCreditedMoney, nil)

	assert.True(t, lifecycle.IsTerminal(final.Status))

	// Из конечного статуса не доступно ни одно действие
	_, err := brand.Perform(context.Background(), "post-1", "inf-1", lifecycle.ActionAccept, nil)
	var invalid *lifecycle.ErrInvalidTransition
	assert.ErrorAs(t, err, &invalid)
}
