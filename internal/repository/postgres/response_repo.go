package postgres

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yourusername/questionnaire-api/internal/domain/entity"
	apperrors "github.com/yourusername/questionnaire-api/internal/pkg/errors"
)

// ResponseRepo реализует repository.ResponseRepository
type ResponseRepo struct {
	db *gorm.DB
}

// NewResponseRepo создает новый репозиторий отправок анкет
func NewResponseRepo(db *gorm.DB) *ResponseRepo {
	return &ResponseRepo{db: db}
}

// Create сохраняет агрегат отправки целиком. Вложенные ответы и выбранные
// варианты пишутся GORM в одной транзакции — при любой ошибке не остается
// ни одной строки.
func (r *ResponseRepo) Create(response *entity.UserQuestionResponse) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(response).Error
	})
}

// GetByID возвращает отправку с ответами и выбранными вариантами
func (r *ResponseRepo) GetByID(id uuid.UUID) (*entity.UserQuestionResponse, error) {
	var response entity.UserQuestionResponse
	err := r.db.
		Preload("Responses").
		Preload("Responses.OptionResponses").
		First(&response, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &response, nil
}

// GetByQuestionnaireID возвращает страницу отправок анкеты
func (r *ResponseRepo) GetByQuestionnaireID(questionnaireID uuid.UUID, page, pageSize int) ([]entity.UserQuestionResponse, int64, error) {
	var responses []entity.UserQuestionResponse
	var total int64

	if err := r.db.Model(&entity.UserQuestionResponse{}).
		Where("questionnaire_id = ?", questionnaireID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.
		Preload("Responses").
		Preload("Responses.OptionResponses").
		Where("questionnaire_id = ?", questionnaireID).
		Order("created_at DESC").
		Offset(offset).Limit(pageSize).
		Find(&responses).Error
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

// GetAllByQuestionnaireID возвращает все отправки анкеты без пагинации (для экспорта)
func (r *ResponseRepo) GetAllByQuestionnaireID(questionnaireID uuid.UUID) ([]entity.UserQuestionResponse, error) {
	var responses []entity.UserQuestionResponse
	err := r.db.
		Preload("Responses").
		Preload("Responses.OptionResponses").
		Where("questionnaire_id = ?", questionnaireID).
		Order("created_at").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// GetByUserID возвращает отправки пользователя
func (r *ResponseRepo) GetByUserID(userID uuid.UUID) ([]entity.UserQuestionResponse, error) {
	var responses []entity.UserQuestionResponse
	err := r.db.
		Preload("Responses").
		Preload("Responses.OptionResponses").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// CountByQuestionnaireID считает отправки анкеты
func (r *ResponseRepo) CountByQuestionnaireID(questionnaireID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&entity.UserQuestionResponse{}).
		Where("questionnaire_id = ?", questionnaireID).
		Count(&count).Error
	return count, err
}

// CountByQuestionID считает ответы, ссылающиеся на вопрос
func (r *ResponseRepo) CountByQuestionID(questionID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&entity.QuestionResponse{}).
		Where("question_id = ?", questionID).
		Count(&count).Error
	return count, err
}
