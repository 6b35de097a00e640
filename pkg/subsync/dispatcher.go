package subsync

import (
	"context"
	"sync"
	"time"

	"promolink_backend/internal/lifecycle"
	"promolink_backend/internal/models"
	"promolink_backend/internal/services/dto"
	"promolink_backend/pkg/apperrors"
)

// Dispatcher выполняет действия жизненного цикла над заявками.
//
// На одну заявку - не больше одного действия в полёте: повторное нажатие
// кнопки получает ErrActionInFlight, а не второй сетевой вызов. Кеш
// обновляется только ответом сервера; при ошибке остаётся нетронутым,
// и действие можно повторить.
type Dispatcher struct {
	transport Transport
	store     *Store
	actor     Actor
	timeout   time.Duration

	mu   sync.Mutex
	busy map[string]bool
}

func NewDispatcher(transport Transport, store *Store, actor Actor, cfg Config) *Dispatcher {
	return &Dispatcher{
		transport: transport,
		store:     store,
		actor:     actor,
		timeout:   cfg.actionTimeout(),
		busy:      make(map[string]bool),
	}
}

// Perform валидирует переход по таблице локально, и только потом идёт
// в сеть. Окончательное решение за сервером: его ответ и есть новое
// состояние записи в кеше.
func (d *Dispatcher) Perform(ctx context.Context, postID, influencerID string, action lifecycle.Action, proof *dto.SubmitProofRequest) (models.Submission, error) {
	sub, ok := d.store.GetByPostAndInfluencer(postID, influencerID)
	if !ok {
		return models.Submission{}, ErrUnknownSubmission
	}

	if _, err := lifecycle.Apply(sub.Status, action, effectiveRole(d.actor.Role)); err != nil {
		return models.Submission{}, err
	}

	if action == lifecycle.ActionSubmitProof && (proof == nil || proof.Link == "") {
		return models.Submission{}, apperrors.NewBadRequestError("proof link is required")
	}

	if !d.tryLock(sub.ID) {
		return models.Submission{}, ErrActionInFlight
	}
	defer d.unlock(sub.ID)

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	updated, err := d.transport.PerformAction(ctx, d.actor, postID, influencerID, action, proof)
	if err != nil {
		return models.Submission{}, err
	}

	d.store.Upsert(*updated)
	return *updated, nil
}

// Apply создаёт заявку на кампанию и кладёт её в кеш.
func (d *Dispatcher) Apply(ctx context.Context, postID, message string) (models.Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	sub, err := d.transport.Apply(ctx, d.actor, postID, message)
	if err != nil {
		return models.Submission{}, err
	}

	d.store.Upsert(*sub)
	return *sub, nil
}

// Busy сообщает, выполняется ли сейчас действие по заявке.
// Экраны по этому флагу блокируют кнопки.
func (d *Dispatcher) Busy(submissionID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.busy[submissionID]
}

func (d *Dispatcher) tryLock(submissionID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.busy[submissionID] {
		return false
	}
	d.busy[submissionID] = true
	return true
}

func (d *Dispatcher) unlock(submissionID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.busy, submissionID)
}

// effectiveRole - агентство действует как бренд.
func effectiveRole(role models.UserRole) models.UserRole {
	if role == models.UserRoleAgency {
		return models.UserRoleBrand
	}
	return role
}
