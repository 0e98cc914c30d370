package validator

import (
	"log"

	"eventhire_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует кастомные правила в экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Приложение не должно стартовать без своих правил.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-user-role': client или vendor
	mustRegister("is-user-role", validateUserRole)

	// 'is-job-category': одна из восьми категорий мероприятий
	mustRegister("is-job-category", validateJobCategory)
}

// --- Функции валидации ---

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Пустые значения - забота 'required'
	}
	return models.UserRole(value).IsValid()
}

func validateJobCategory(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.JobCategory(value).IsValid()
}
