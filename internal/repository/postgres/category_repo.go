package postgres

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yourusername/questionnaire-api/internal/domain/entity"
	apperrors "github.com/yourusername/questionnaire-api/internal/pkg/errors"
)

// CategoryRepo реализует repository.CategoryRepository
type CategoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepo создает новый репозиторий категорий
func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// Exists проверяет существование категории
func (r *CategoryRepo) Exists(id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Category{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Name возвращает имя категории
func (r *CategoryRepo) Name(id uuid.UUID) (string, error) {
	var category entity.Category
	err := r.db.Select("name").First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrNotFound
		}
		return "", err
	}
	return category.Name, nil
}
