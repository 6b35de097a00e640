package subsync

import (
	"context"
	"sync"
	"time"

	"promolink_backend/internal/lifecycle"
	"promolink_backend/internal/models"
	"promolink_backend/internal/services/dto"
)

// fakeTransport - сетевой слой без сети.
type fakeTransport struct {
	mu sync.Mutex

	listResult []models.Submission
	listErr    error

	pollResults [][]models.Submission // очередь ответов на тики
	pollErr     error
	pollSince   []time.Time

	actionResult *models.Submission
	actionErr    error
	actionCalls  int
	actionGate   chan struct{} // если не nil, PerformAction ждёт закрытия
}

func (f *fakeTransport) ListSubmissions(ctx context.Context, actor Actor, statusFilter string) ([]models.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResult, nil
}

func (f *fakeTransport) PollSubmissions(ctx context.Context, actor Actor, since time.Time) ([]models.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pollSince = append(f.pollSince, since)
	if f.pollErr != nil {
		return nil, f.pollErr
	}
	if len(f.pollResults) == 0 {
		return nil, nil
	}
	out := f.pollResults[0]
	f.pollResults = f.pollResults[1:]
	return out, nil
}

func (f *fakeTransport) PerformAction(ctx context.Context, actor Actor, postID, influencerID string, action lifecycle.Action, proof *dto.SubmitProofRequest) (*models.Submission, error) {
	f.mu.Lock()
	f.actionCalls++
	gate := f.actionGate
	result := f.actionResult
	err := f.actionErr
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (f *fakeTransport) Apply(ctx context.Context, actor Actor, postID, message string) (*models.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.actionErr != nil {
		return nil, f.actionErr
	}
	return f.actionResult, nil
}

func (f *fakeTransport) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.actionCalls
}

func (f *fakeTransport) sinceValues() []time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Time(nil), f.pollSince...)
}

func strPtr(s string) *string { return &s }

func makeSubmission(id, postID, influencerID string, status models.SubmissionStatus, updatedAt time.Time) models.Submission {
	return models.Submission{
		ID:           id,
		PostID:       postID,
		InfluencerID: influencerID,
		Status:       status,
		UpdatedAt:    updatedAt,
	}
}
