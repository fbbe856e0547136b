package postgres

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yourusername/questionnaire-api/internal/domain/entity"
	apperrors "github.com/yourusername/questionnaire-api/internal/pkg/errors"
)

// QuestionTypeRepo реализует repository.QuestionTypeRepository
type QuestionTypeRepo struct {
	db *gorm.DB
}

// NewQuestionTypeRepo создает новый репозиторий типов вопросов
func NewQuestionTypeRepo(db *gorm.DB) *QuestionTypeRepo {
	return &QuestionTypeRepo{db: db}
}

// GetByID возвращает тип вопроса по ID
func (r *QuestionTypeRepo) GetByID(id uuid.UUID) (*entity.QuestionType, error) {
	var questionType entity.QuestionType
	err := r.db.First(&questionType, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &questionType, nil
}

// GetByName возвращает тип вопроса по имени (без учета регистра)
func (r *QuestionTypeRepo) GetByName(typeName string) (*entity.QuestionType, error) {
	var questionType entity.QuestionType
	err := r.db.Where("LOWER(type_name) = ?", entity.NormalizeTypeName(typeName)).First(&questionType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &questionType, nil
}

// ListActive возвращает активные типы вопросов
func (r *QuestionTypeRepo) ListActive() ([]entity.QuestionType, error) {
	var types []entity.QuestionType
	err := r.db.Where("is_active = ?", true).Order("type_name").Find(&types).Error
	if err != nil {
		return nil, err
	}
	return types, nil
}

// List возвращает все типы вопросов
func (r *QuestionTypeRepo) List() ([]entity.QuestionType, error) {
	var types []entity.QuestionType
	err := r.db.Order("type_name").Find(&types).Error
	if err != nil {
		return nil, err
	}
	return types, nil
}

// SetActive переключает флаг активности типа. Это единственное изменяемое
// поле типа после того, как на него сослался хотя бы один вопрос.
func (r *QuestionTypeRepo) SetActive(id uuid.UUID, active bool) error {
	result := r.db.Model(&entity.QuestionType{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
