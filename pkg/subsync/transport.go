package subsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"promolink_backend/internal/lifecycle"
	"promolink_backend/internal/models"
	"promolink_backend/internal/services/dto"
)

// Transport - сетевой слой SDK. В тестах подменяется фейком.
type Transport interface {
	// ListSubmissions - полная выборка с фильтром по статусу ("" или "all" - без фильтра)
	ListSubmissions(ctx context.Context, actor Actor, statusFilter string) ([]models.Submission, error)

	// PollSubmissions - записи с updated_at строго позже since
	PollSubmissions(ctx context.Context, actor Actor, since time.Time) ([]models.Submission, error)

	// PerformAction - один переход жизненного цикла; proof обязателен для submit-proof
	PerformAction(ctx context.Context, actor Actor, postID, influencerID string, action lifecycle.Action, proof *dto.SubmitProofRequest) (*models.Submission, error)

	// Apply - заявка инфлюенсера на кампанию
	Apply(ctx context.Context, actor Actor, postID, message string) (*models.Submission, error)
}

// HTTPTransport ходит в REST API с конвертом {success, data?, message?}.
type HTTPTransport struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewHTTPTransport(baseURL, token string, cfg Config) *HTTPTransport {
	return &HTTPTransport{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: cfg.actionTimeout()},
	}
}

// envelope - конверт ответа сервера.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (t *HTTPTransport) do(ctx context.Context, method, path string, query url.Values, body interface{}, out interface{}) error {
	u := t.baseURL + "/api/v1" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("subsync: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+t.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("subsync: decode response: %w", err)
	}

	if !env.Success {
		if resp.StatusCode == http.StatusConflict {
			return fmt.Errorf("%w: %s", ErrStale, env.Message)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("subsync: decode data: %w", err)
		}
	}
	return nil
}

// roleSegment - сегмент пути по роли актора. Агентство ходит брендовыми маршрутами.
func roleSegment(role models.UserRole) string {
	if role == models.UserRoleInfluencer {
		return "influencers"
	}
	return "brands"
}

func (t *HTTPTransport) ListSubmissions(ctx context.Context, actor Actor, statusFilter string) ([]models.Submission, error) {
	query := url.Values{}
	if statusFilter != "" {
		query.Set("status", statusFilter)
	}

	var resp dto.SubmissionListResponse
	path := fmt.Sprintf("/%s/%s/all-submissions", roleSegment(actor.Role), actor.ID)
	if err := t.do(ctx, http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Submissions, nil
}

func (t *HTTPTransport) PollSubmissions(ctx context.Context, actor Actor, since time.Time) ([]models.Submission, error) {
	query := url.Values{}
	if !since.IsZero() {
		query.Set("since", since.UTC().Format(time.RFC3339Nano))
	}

	var resp dto.PollResponse
	path := fmt.Sprintf("/%s/%s/my-submissions/poll", roleSegment(actor.Role), actor.ID)
	if err := t.do(ctx, http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Submissions, nil
}

func (t *HTTPTransport) PerformAction(ctx context.Context, actor Actor, postID, influencerID string, action lifecycle.Action, proof *dto.SubmitProofRequest) (*models.Submission, error) {
	var body interface{}
	if action == lifecycle.ActionSubmitProof {
		body = proof
	}

	var sub models.Submission
	path := fmt.Sprintf("/posts/%s/submissions/%s/%s", postID, influencerID, action)
	if err := t.do(ctx, http.MethodPatch, path, nil, body, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (t *HTTPTransport) Apply(ctx context.Context, actor Actor, postID, message string) (*models.Submission, error) {
	var body interface{}
	if message != "" {
		body = dto.CreateSubmissionRequest{Message: message}
	}

	var sub models.Submission
	path := fmt.Sprintf("/posts/%s/submissions", postID)
	if err := t.do(ctx, http.MethodPost, path, nil, body, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}
