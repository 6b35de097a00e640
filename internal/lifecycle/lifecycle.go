// Package lifecycle - единственный источник правды о жизненном цикле заявки.
// Таблица переходов используется и сервером (повторная валидация перед UPDATE),
// и клиентским SDK (pkg/subsync) для решения, какие действия доступны.
package lifecycle

import (
	"fmt"

	"promolink_backend/internal/models"
)

// Action - действие над заявкой, один PATCH-вызов.
type Action string

const (
	ActionAccept             Action = "accept"
	ActionReject             Action = "reject"
	ActionSubmitProof        Action = "submit-proof"
	ActionReviewComplete     Action = "review-complete"
	ActionUndoReviewComplete Action = "undo-review-complete"
	ActionCreditMoney        Action = "credit-money"
)

// transition - одна строка таблицы переходов.
type transition struct {
	From  models.SubmissionStatus
	Actor models.UserRole
	To    models.SubmissionStatus
}

// transitions - таблица переходов целиком. Других путей между статусами нет.
var transitions = map[Action]transition{
	ActionAccept:             {From: models.SubmissionRequested, Actor: models.UserRoleBrand, To: models.SubmissionAccepted},
	ActionReject:             {From: models.SubmissionRequested, Actor: models.UserRoleBrand, To: models.SubmissionRejected},
	ActionSubmitProof:        {From: models.SubmissionAccepted, Actor: models.UserRoleInfluencer, To: models.SubmissionProofSubmitted},
	ActionReviewComplete:     {From: models.SubmissionProofSubmitted, Actor: models.UserRoleBrand, To: models.SubmissionReviewCompleted},
	ActionUndoReviewComplete: {From: models.SubmissionReviewCompleted, Actor: models.UserRoleBrand, To: models.SubmissionProofSubmitted},
	ActionCreditMoney:        {From: models.SubmissionReviewCompleted, Actor: models.UserRoleBrand, To: models.SubmissionCreditedMoney},
}

// terminal - статусы, из которых нет переходов. Отказ окончателен по контракту.
var terminal = map[models.SubmissionStatus]bool{
	models.SubmissionRejected:      true,
	models.SubmissionCreditedMoney: true,
}

// ErrInvalidTransition возвращается, когда действие не определено
// для текущего статуса заявки.
type ErrInvalidTransition struct {
	Action Action
	From   models.SubmissionStatus
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("action %q is not defined for status %q", e.Action, e.From)
}

// ErrWrongActor возвращается, когда действие пытается выполнить не та роль.
type ErrWrongActor struct {
	Action Action
	Role   models.UserRole
}

func (e *ErrWrongActor) Error() string {
	return fmt.Sprintf("role %q may not perform action %q", e.Role, e.Action)
}

// ParseAction проверяет имя действия из пути запроса.
func ParseAction(s string) (Action, bool) {
	a := Action(s)
	if _, ok := transitions[a]; ok {
		return a, true
	}
	return "", false
}

// ActorFor возвращает роль, которой разрешено действие.
func ActorFor(action Action) (models.UserRole, bool) {
	tr, ok := transitions[action]
	if !ok {
		return "", false
	}
	return tr.Actor, true
}

// Next возвращает статус-результат действия, применённого к from.
// Ошибка означает, что предусловие не выполнено - сетевой вызов делать нельзя.
func Next(from models.SubmissionStatus, action Action) (models.SubmissionStatus, error) {
	tr, ok := transitions[action]
	if !ok || tr.From != from {
		return "", &ErrInvalidTransition{Action: action, From: from}
	}
	return tr.To, nil
}

// Apply - как Next, но дополнительно проверяет роль инициатора.
func Apply(from models.SubmissionStatus, action Action, role models.UserRole) (models.SubmissionStatus, error) {
	tr, ok := transitions[action]
	if !ok || tr.From != from {
		return "", &ErrInvalidTransition{Action: action, From: from}
	}
	if tr.Actor != role {
		return "", &ErrWrongActor{Action: action, Role: role}
	}
	return tr.To, nil
}

// CanApply сообщает, определено ли действие для статуса.
func CanApply(from models.SubmissionStatus, action Action) bool {
	tr, ok := transitions[action]
	return ok && tr.From == from
}

// IsTerminal сообщает, является ли статус конечным.
func IsTerminal(status models.SubmissionStatus) bool {
	return terminal[status]
}

// ValidActions возвращает действия, доступные роли из данного статуса.
// По этому списку экраны решают, какие кнопки показывать.
func ValidActions(from models.SubmissionStatus, role models.UserRole) []Action {
	var out []Action
	for _, a := range []Action{
		ActionAccept,
		ActionReject,
		ActionSubmitProof,
		ActionReviewComplete,
		ActionUndoReviewComplete,
		ActionCreditMoney,
	} {
		tr := transitions[a]
		if tr.From == from && tr.Actor == role {
			out = append(out, a)
		}
	}
	return out
}
