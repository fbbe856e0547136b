package postgres

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yourusername/questionnaire-api/internal/domain/entity"
	apperrors "github.com/yourusername/questionnaire-api/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create сохраняет вопрос вместе с вариантами ответов.
// GORM пишет вложенные варианты после вопроса в одной транзакции.
func (r *QuestionRepo) Create(question *entity.Question) error {
	return r.db.Create(question).Error
}

// GetByID возвращает вопрос с типом и вариантами
func (r *QuestionRepo) GetByID(id uuid.UUID) (*entity.Question, error) {
	var question entity.Question
	err := r.db.
		Preload("QuestionType").
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_options.display_order")
		}).
		First(&question, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// GetByQuestionnaireID возвращает вопросы анкеты по display_order
func (r *QuestionRepo) GetByQuestionnaireID(questionnaireID uuid.UUID) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.
		Preload("QuestionType").
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_options.display_order")
		}).
		Where("questionnaire_id = ?", questionnaireID).
		Order("display_order").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// Update сохраняет поля вопроса без ассоциаций
func (r *QuestionRepo) Update(question *entity.Question) error {
	return r.db.Omit("Options", "QuestionType").Save(question).Error
}

// Delete удаляет вопрос и каскадно его варианты в одной транзакции
func (r *QuestionRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&entity.Option{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entity.Question{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

// ReplaceOptions удаляет существующие варианты вопроса и создает новые
func (r *QuestionRepo) ReplaceOptions(questionID uuid.UUID, options []entity.Option) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", questionID).Delete(&entity.Option{}).Error; err != nil {
			return err
		}
		for i := range options {
			options[i].QuestionID = questionID
			if err := tx.Create(&options[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteOptions удаляет все варианты вопроса
func (r *QuestionRepo) DeleteOptions(questionID uuid.UUID) error {
	return r.db.Where("question_id = ?", questionID).Delete(&entity.Option{}).Error
}

// MaxDisplayOrder возвращает максимальный display_order среди вопросов анкеты
func (r *QuestionRepo) MaxDisplayOrder(questionnaireID uuid.UUID) (int, error) {
	var max *int
	err := r.db.Model(&entity.Question{}).
		Where("questionnaire_id = ?", questionnaireID).
		Select("MAX(display_order)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// DisplayOrderTaken проверяет, занят ли display_order другим вопросом анкеты
func (r *QuestionRepo) DisplayOrderTaken(questionnaireID uuid.UUID, displayOrder int, excludeQuestionID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.Model(&entity.Question{}).
		Where("questionnaire_id = ? AND display_order = ?", questionnaireID, displayOrder)
	if excludeQuestionID != uuid.Nil {
		query = query.Where("id <> ?", excludeQuestionID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
