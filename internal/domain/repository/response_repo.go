package repository

import (
	"github.com/google/uuid"

	"github.com/yourusername/questionnaire-api/internal/domain/entity"
)

// ResponseRepository определяет методы для работы с отправками анкет
type ResponseRepository interface {
	// Create сохраняет агрегат целиком (отправка, ответы на вопросы,
	// выбранные варианты) в одной транзакции; частичная запись невозможна
	Create(response *entity.UserQuestionResponse) error

	// GetByID возвращает отправку с предзагруженными ответами и вариантами
	GetByID(id uuid.UUID) (*entity.UserQuestionResponse, error)

	GetByQuestionnaireID(questionnaireID uuid.UUID, page, pageSize int) ([]entity.UserQuestionResponse, int64, error)

	// GetAllByQuestionnaireID возвращает все отправки без пагинации (для экспорта)
	GetAllByQuestionnaireID(questionnaireID uuid.UUID) ([]entity.UserQuestionResponse, error)

	GetByUserID(userID uuid.UUID) ([]entity.UserQuestionResponse, error)

	// CountByQuestionnaireID считает отправки анкеты; ненулевое значение
	// блокирует удаление анкеты
	CountByQuestionnaireID(questionnaireID uuid.UUID) (int64, error)

	// CountByQuestionID считает ответы на вопрос; ненулевое значение
	// блокирует удаление вопроса
	CountByQuestionID(questionID uuid.UUID) (int64, error)
}
