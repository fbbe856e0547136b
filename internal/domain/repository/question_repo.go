package repository

import (
	"github.com/google/uuid"

	"github.com/yourusername/questionnaire-api/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с вопросами и их вариантами
type QuestionRepository interface {
	// Create сохраняет вопрос вместе с вариантами ответов в одной
	// транзакции: сначала вопрос, затем варианты (им нужен его ID)
	Create(question *entity.Question) error

	// GetByID возвращает вопрос с предзагруженным типом и вариантами
	GetByID(id uuid.UUID) (*entity.Question, error)

	// GetByQuestionnaireID возвращает вопросы анкеты по display_order
	GetByQuestionnaireID(questionnaireID uuid.UUID) ([]entity.Question, error)

	// Update сохраняет поля вопроса (без вариантов)
	Update(question *entity.Question) error

	// Delete удаляет вопрос и каскадно его варианты
	Delete(id uuid.UUID) error

	// ReplaceOptions удаляет существующие варианты вопроса и создает
	// новые в одной транзакции
	ReplaceOptions(questionID uuid.UUID, options []entity.Option) error

	// DeleteOptions удаляет все варианты вопроса
	DeleteOptions(questionID uuid.UUID) error

	// MaxDisplayOrder возвращает максимальный display_order среди
	// вопросов анкеты (0, если вопросов нет)
	MaxDisplayOrder(questionnaireID uuid.UUID) (int, error)

	// DisplayOrderTaken проверяет, занят ли display_order другим вопросом анкеты
	DisplayOrderTaken(questionnaireID uuid.UUID, displayOrder int, excludeQuestionID uuid.UUID) (bool, error)
}
