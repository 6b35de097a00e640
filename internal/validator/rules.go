package validator

import (
	"log"

	"promolink_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Критическая ошибка конфигурации, приложение не должно запускаться
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-user-role': роль пользователя валидна
	mustRegister("is-user-role", validateUserRole)

	// 'is-post-status': статус кампании валиден
	mustRegister("is-post-status", validatePostStatus)

	// 'is-submission-status': статус заявки валиден (принимает легаси 'pending')
	mustRegister("is-submission-status", validateSubmissionStatus)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' обрабатывает пустые
	}
	switch models.UserRole(value) {
	case models.UserRoleInfluencer, models.UserRoleBrand, models.UserRoleAgency, models.UserRoleAdmin:
		return true
	default:
		return false
	}
}

func validatePostStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, ok := models.ParsePostStatus(value)
	return ok
}

func validateSubmissionStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, ok := models.ParseSubmissionStatus(value)
	return ok
}
