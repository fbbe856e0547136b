package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/questionnaire-api/internal/domain/entity"
)

// OptionResponse представляет вариант ответа в формате для клиента
type OptionResponse struct {
	ID           uuid.UUID `json:"id"`
	QuestionID   uuid.UUID `json:"question_id"`
	OptionText   string    `json:"option_text"`
	OptionValue  string    `json:"option_value"`
	DisplayOrder int       `json:"display_order"`
	IsCorrect    bool      `json:"is_correct"`
}

// QuestionResponse представляет вопрос анкеты в формате для клиента
type QuestionResponse struct {
	ID               uuid.UUID        `json:"id"`
	QuestionnaireID  uuid.UUID        `json:"questionnaire_id"`
	QuestionText     string           `json:"question_text"`
	QuestionType     string           `json:"question_type"`
	QuestionTypeID   uuid.UUID        `json:"question_type_id"`
	IsRequired       bool             `json:"is_required"`
	DisplayOrder     int              `json:"display_order"`
	MinLength        *int             `json:"min_length,omitempty"`
	MaxLength        *int             `json:"max_length,omitempty"`
	MinValue         *float64         `json:"min_value,omitempty"`
	MaxValue         *float64         `json:"max_value,omitempty"`
	Section          string           `json:"section,omitempty"`
	HelpText         string           `json:"help_text,omitempty"`
	ConditionalLogic entity.JSONText  `json:"conditional_logic,omitempty"`
	ValidationRules  entity.JSONText  `json:"validation_rules,omitempty"`
	Options          []OptionResponse `json:"options,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// QuestionnaireResponse представляет анкету в формате для клиента
type QuestionnaireResponse struct {
	ID            uuid.UUID          `json:"id"`
	CategoryID    uuid.UUID          `json:"category_id"`
	Title         string             `json:"title"`
	Description   string             `json:"description,omitempty"`
	IsMandatory   bool               `json:"is_mandatory"`
	DisplayOrder  int                `json:"display_order"`
	Version       int                `json:"version"`
	QuestionCount int                `json:"question_count"`
	Questions     []QuestionResponse `json:"questions,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// QuestionTypeResponse представляет запись справочника типов вопросов
type QuestionTypeResponse struct {
	ID                 uuid.UUID `json:"id"`
	TypeName           string    `json:"type_name"`
	HasOptions         bool      `json:"has_options"`
	SupportsFileUpload bool      `json:"supports_file_upload"`
	SupportsImage      bool      `json:"supports_image"`
	IsActive           bool      `json:"is_active"`
}

// PaginatedQuestionnaireResponse представляет пагинированный список анкет
type PaginatedQuestionnaireResponse struct {
	Questionnaires []*QuestionnaireResponse `json:"questionnaires"`
	Total          int64                    `json:"total"`
	Page           int                      `json:"page"`
	PerPage        int                      `json:"per_page"`
}

// NewOptionResponse создает DTO для варианта ответа
func NewOptionResponse(o *entity.Option) OptionResponse {
	return OptionResponse{
		ID:           o.ID,
		QuestionID:   o.QuestionID,
		OptionText:   o.OptionText,
		OptionValue:  o.OptionValue,
		DisplayOrder: o.DisplayOrder,
		IsCorrect:    o.IsCorrect,
	}
}

// NewQuestionResponse создает DTO для вопроса вместе с его вариантами
func NewQuestionResponse(q *entity.Question) QuestionResponse {
	options := make([]OptionResponse, len(q.Options))
	for i := range q.Options {
		options[i] = NewOptionResponse(&q.Options[i])
	}

	return QuestionResponse{
		ID:               q.ID,
		QuestionnaireID:  q.QuestionnaireID,
		QuestionText:     q.QuestionText,
		QuestionType:     q.TypeName(),
		QuestionTypeID:   q.QuestionTypeID,
		IsRequired:       q.IsRequired,
		DisplayOrder:     q.DisplayOrder,
		MinLength:        q.MinLength,
		MaxLength:        q.MaxLength,
		MinValue:         q.MinValue,
		MaxValue:         q.MaxValue,
		Section:          q.Section,
		HelpText:         q.HelpText,
		ConditionalLogic: q.ConditionalLogic,
		ValidationRules:  q.ValidationRules,
		Options:          options,
		CreatedAt:        q.CreatedAt,
		UpdatedAt:        q.UpdatedAt,
	}
}

// NewQuestionnaireResponse создает DTO для анкеты
func NewQuestionnaireResponse(questionnaire *entity.Questionnaire, includeQuestions bool) *QuestionnaireResponse {
	if questionnaire == nil {
		return nil
	}

	var questions []QuestionResponse
	if includeQuestions {
		questions = make([]QuestionResponse, len(questionnaire.Questions))
		for i := range questionnaire.Questions {
			questions[i] = NewQuestionResponse(&questionnaire.Questions[i])
		}
	}

	return &QuestionnaireResponse{
		ID:            questionnaire.ID,
		CategoryID:    questionnaire.CategoryID,
		Title:         questionnaire.Title,
		Description:   questionnaire.Description,
		IsMandatory:   questionnaire.IsMandatory,
		DisplayOrder:  questionnaire.DisplayOrder,
		Version:       questionnaire.Version,
		QuestionCount: len(questionnaire.Questions),
		Questions:     questions,
		CreatedAt:     questionnaire.CreatedAt,
		UpdatedAt:     questionnaire.UpdatedAt,
	}
}

// NewListQuestionResponse создает слайс DTO для списка вопросов
func NewListQuestionResponse(questions []entity.Question) []QuestionResponse {
	list := make([]QuestionResponse, len(questions))
	for i := range questions {
		list[i] = NewQuestionResponse(&questions[i])
	}
	return list
}

// NewQuestionTypeResponse создает DTO для типа вопроса
func NewQuestionTypeResponse(t *entity.QuestionType) QuestionTypeResponse {
	return QuestionTypeResponse{
		ID:                 t.ID,
		TypeName:           t.TypeName,
		HasOptions:         t.HasOptions,
		SupportsFileUpload: t.SupportsFileUpload,
		SupportsImage:      t.SupportsImage,
		IsActive:           t.IsActive,
	}
}

// NewPaginatedQuestionnaireResponse создает DTO для пагинированного списка анкет
func NewPaginatedQuestionnaireResponse(questionnaires []entity.Questionnaire, total int64, page, perPage int) *PaginatedQuestionnaireResponse {
	list := make([]*QuestionnaireResponse, len(questionnaires))
	for i := range questionnaires {
		// Вопросы в списке не отдаем
		list[i] = NewQuestionnaireResponse(&questionnaires[i], false)
	}
	return &PaginatedQuestionnaireResponse{
		Questionnaires: list,
		Total:          total,
		Page:           page,
		PerPage:        perPage,
	}
}
