// Package subsync - клиентский SDK синхронизации заявок.
//
// Store держит локальный кеш, Syncer периодически вливает в него
// серверные изменения дифференциальным опросом, Dispatcher выполняет
// действия жизненного цикла с защитой от повторных нажатий.
// UI читает только Store и никогда не ходит в сеть сам.
package subsync

import (
	"errors"
	"time"

	"promolink_backend/internal/models"
)

// Actor - от чьего имени работает SDK.
type Actor struct {
	ID   string
	Role models.UserRole
}

// Config - настройки SDK. Нулевые значения заменяются на значения
// по умолчанию: опрос раз в 15 секунд, таймаут действия 30 секунд.
type Config struct {
	PollInterval  time.Duration
	ActionTimeout time.Duration
}

func (c Config) pollInterval() time.Duration {
	if c.PollInterval <= 0 {
		return 15 * time.Second
	}
	return c.PollInterval
}

func (c Config) actionTimeout() time.Duration {
	if c.ActionTimeout <= 0 {
		return 30 * time.Second
	}
	return c.ActionTimeout
}

var (
	// ErrActionInFlight - по заявке уже выполняется действие.
	ErrActionInFlight = errors.New("subsync: another action for this submission is in flight")

	// ErrUnknownSubmission - заявки нет в локальном кеше.
	ErrUnknownSubmission = errors.New("subsync: submission not found in local cache")

	// ErrStale - сервер отклонил переход: статус уже изменён другим актором.
	ErrStale = errors.New("subsync: submission was changed by another actor")
)

// APIError - неуспешный ответ сервера (success=false).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}
