package handlers

import "github.com/go-playground/validator/v10"

// Общий валидатор структур запросов, потокобезопасен
var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct проверяет структуру запроса по validate-тегам
func ValidateStruct(v interface{}) error {
	return validate.Struct(v)
}
