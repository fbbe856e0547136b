package repository

import (
	"github.com/google/uuid"

	"github.com/yourusername/questionnaire-api/internal/domain/entity"
)

// QuestionTypeRepository определяет методы для работы со справочником типов вопросов
type QuestionTypeRepository interface {
	GetByID(id uuid.UUID) (*entity.QuestionType, error)
	GetByName(typeName string) (*entity.QuestionType, error)
	ListActive() ([]entity.QuestionType, error)
	List() ([]entity.QuestionType, error)
	SetActive(id uuid.UUID, active bool) error
}
