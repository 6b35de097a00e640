package apperrors

import "net/http"

/*
Фабрики и предопределенные переменные для доменных ошибок маркетплейса.
*/

// ErrNotFound - фабрика для ошибки "не найдено" (404).
// Используется, когда ошибка репозитория (типа gorm.ErrRecordNotFound)
// должна быть преобразована в AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus - фабрика для невалидных статусов (400)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// --- Auth & User ---

var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 6 characters required.",
	http.StatusBadRequest,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrUserSuspended = New(
	CodeForbidden,
	"auth",
	"Your account has been suspended",
	http.StatusForbidden,
)

// --- Posts (кампании) ---

// ErrPostNotActive - на приостановленную или остановленную кампанию
// нельзя подать новую заявку. Существующие заявки продолжают жить.
var ErrPostNotActive = New(
	CodeInvalidStatus,
	"post",
	"Campaign is not accepting new submissions",
	http.StatusConflict,
)

// ErrPostStopped - остановленную кампанию нельзя снова активировать.
var ErrPostStopped = New(
	CodeInvalidStatus,
	"post",
	"Campaign has been stopped permanently",
	http.StatusConflict,
)

// --- Submissions ---

// ErrSubmissionExists - инфлюенсер уже подавал заявку на эту кампанию.
var ErrSubmissionExists = New(
	CodeAlreadyExists,
	"submission",
	"You have already applied to this campaign",
	http.StatusConflict,
)

// ErrStaleSubmission - предусловие перехода не выполнено на сервере:
// другой участник успел изменить заявку раньше. Гонки разрешаются
// отказом, а не last-write-wins.
var ErrStaleSubmission = New(
	CodeInvalidStatus,
	"submission",
	"Submission was changed by another party, refresh and try again",
	http.StatusConflict,
)
