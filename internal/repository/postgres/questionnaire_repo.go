package postgres

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yourusername/questionnaire-api/internal/domain/entity"
	apperrors "github.com/yourusername/questionnaire-api/internal/pkg/errors"
)

// QuestionnaireRepo реализует repository.QuestionnaireRepository
type QuestionnaireRepo struct {
	db *gorm.DB
}

// NewQuestionnaireRepo создает новый репозиторий анкет
func NewQuestionnaireRepo(db *gorm.DB) *QuestionnaireRepo {
	return &QuestionnaireRepo{db: db}
}

// preloadDefinitions добавляет предзагрузку вопросов с типами и вариантами,
// упорядоченными по display_order
func preloadDefinitions(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.display_order")
		}).
		Preload("Questions.QuestionType").
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_options.display_order")
		})
}

// Create сохраняет анкету вместе с вложенными вопросами и вариантами.
// GORM создает ассоциации в одной транзакции, так что результат атомарен.
func (r *QuestionnaireRepo) Create(questionnaire *entity.Questionnaire) error {
	return r.db.Create(questionnaire).Error
}

// GetByID возвращает анкету с полным определением вопросов
func (r *QuestionnaireRepo) GetByID(id uuid.UUID) (*entity.Questionnaire, error) {
	var questionnaire entity.Questionnaire
	err := preloadDefinitions(r.db).First(&questionnaire, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &questionnaire, nil
}

// GetByCategoryID возвращает анкету категории (инвариант 1:1)
func (r *QuestionnaireRepo) GetByCategoryID(categoryID uuid.UUID) (*entity.Questionnaire, error) {
	var questionnaire entity.Questionnaire
	err := preloadDefinitions(r.db).First(&questionnaire, "category_id = ?", categoryID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &questionnaire, nil
}

// List возвращает страницу анкет без вопросов
func (r *QuestionnaireRepo) List(page, pageSize int) ([]entity.Questionnaire, int64, error) {
	var questionnaires []entity.Questionnaire
	var total int64

	if err := r.db.Model(&entity.Questionnaire{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.Order("display_order, created_at").Offset(offset).Limit(pageSize).Find(&questionnaires).Error
	if err != nil {
		return nil, 0, err
	}
	return questionnaires, total, nil
}

// Update сохраняет метаданные анкеты
func (r *QuestionnaireRepo) Update(questionnaire *entity.Questionnaire) error {
	return r.db.Omit("Questions").Save(questionnaire).Error
}

// ReplaceQuestions удаляет все вопросы анкеты (каскадно с вариантами)
// и создает новые в одной транзакции. Полная замена, не diff.
func (r *QuestionnaireRepo) ReplaceQuestions(questionnaireID uuid.UUID, questions []entity.Question) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var questionIDs []uuid.UUID
		if err := tx.Model(&entity.Question{}).
			Where("questionnaire_id = ?", questionnaireID).
			Pluck("id", &questionIDs).Error; err != nil {
			return err
		}

		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&entity.Option{}).Error; err != nil {
				return err
			}
			if err := tx.Where("questionnaire_id = ?", questionnaireID).Delete(&entity.Question{}).Error; err != nil {
				return err
			}
		}

		for i := range questions {
			questions[i].QuestionnaireID = questionnaireID
			if err := tx.Create(&questions[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// IncrementVersion увеличивает счетчик версии анкеты
func (r *QuestionnaireRepo) IncrementVersion(id uuid.UUID) error {
	result := r.db.Model(&entity.Questionnaire{}).
		Where("id = ?", id).
		UpdateColumn("version", gorm.Expr("version + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SoftDelete помечает анкету удаленной (deleted_at)
func (r *QuestionnaireRepo) SoftDelete(id uuid.UUID) error {
	result := r.db.Delete(&entity.Questionnaire{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
