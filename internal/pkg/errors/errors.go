package errors

import (
	"errors"
	"strings"
)

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены
	// (анкета, вопрос, вариант ответа, категория, ответ пользователя).
	ErrNotFound = errors.New("record not found")

	// ErrForbidden используется, когда у вызывающего недостаточно прав для действия
	// (несовпадение категории, структурное изменение не администратором).
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных.
	// Ошибки валидации не прерывают обработку досрочно — они накапливаются
	// и возвращаются вызывающему как данные.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния
	// (например, попытка удалить вопрос, на который уже есть ответы).
	ErrConflict = errors.New("resource state conflict")
)

// ValidationError накапливает все нарушения правил валидации за один проход.
// Вызывающий должен иметь возможность исправить все проблемы за один запрос,
// поэтому сообщение перечисляет каждое нарушение, а не только первое.
type ValidationError struct {
	Errors []string
}

// NewValidationError создает ошибку валидации из списка сообщений
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Errors: messages}
}

// Error реализует интерфейс error. Сообщения объединяются через точку с запятой.
func (e *ValidationError) Error() string {
	return strings.Join(e.Errors, "; ")
}

// Unwrap позволяет использовать errors.Is(err, ErrValidation)
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
