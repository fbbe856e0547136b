package repository

import (
	"github.com/google/uuid"

	"github.com/yourusername/questionnaire-api/internal/domain/entity"
)

// QuestionnaireRepository определяет методы для работы с анкетами.
// GetByID и GetByCategoryID возвращают анкету с предзагруженными
// вопросами, их типами и вариантами ответов.
type QuestionnaireRepository interface {
	// Create сохраняет анкету вместе с вложенными вопросами и вариантами
	// ответов в одной транзакции: либо создается все, либо ничего.
	Create(questionnaire *entity.Questionnaire) error

	GetByID(id uuid.UUID) (*entity.Questionnaire, error)
	GetByCategoryID(categoryID uuid.UUID) (*entity.Questionnaire, error)
	List(page, pageSize int) ([]entity.Questionnaire, int64, error)

	// Update сохраняет метаданные анкеты (без вопросов)
	Update(questionnaire *entity.Questionnaire) error

	// ReplaceQuestions удаляет все вопросы анкеты вместе с вариантами
	// и создает новые в одной транзакции (полная замена, не diff)
	ReplaceQuestions(questionnaireID uuid.UUID, questions []entity.Question) error

	// IncrementVersion увеличивает счетчик версии при структурном изменении
	IncrementVersion(id uuid.UUID) error

	// SoftDelete помечает анкету удаленной; помеченные анкеты
	// не видны ни одному методу чтения
	SoftDelete(id uuid.UUID) error
}
