package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/yourusername/questionnaire-api/internal/domain/entity"
	"github.com/yourusername/questionnaire-api/internal/domain/repository"
	redisRepo "github.com/yourusername/questionnaire-api/internal/repository/redis"
	apperrors "github.com/yourusername/questionnaire-api/internal/pkg/errors"
)

// QuestionInput — команда создания/изменения вопроса.
// Options == nil означает "набор вариантов не прислан"; пустой непустой
// слайс различаются, потому что от этого зависит поведение при смене типа.
type QuestionInput struct {
	QuestionText     string          `json:"question_text"`
	QuestionTypeID   uuid.UUID       `json:"question_type_id"`
	IsRequired       bool            `json:"is_required"`
	DisplayOrder     *int            `json:"display_order,omitempty"`
	MinLength        *int            `json:"min_length,omitempty"`
	MaxLength        *int            `json:"max_length,omitempty"`
	MinValue         *float64        `json:"min_value,omitempty"`
	MaxValue         *float64        `json:"max_value,omitempty"`
	Section          string          `json:"section,omitempty"`
	HelpText         string          `json:"help_text,omitempty"`
	ConditionalLogic entity.JSONText `json:"conditional_logic,omitempty"`
	ValidationRules  entity.JSONText `json:"validation_rules,omitempty"`
	Options          []OptionInput   `json:"options,omitempty"`
}

// QuestionService реализует хранилище вопросов и вариантов ответов:
// согласованность набора вариантов с типом вопроса, порядок отображения,
// побочные эффекты смены типа.
type QuestionService struct {
	questionRepo      repository.QuestionRepository
	questionnaireRepo repository.QuestionnaireRepository
	questionTypeRepo  repository.QuestionTypeRepository
	responseRepo      repository.ResponseRepository
	cacheRepo         repository.CacheRepository
}

// NewQuestionService создает новый сервис вопросов
func NewQuestionService(
	questionRepo repository.QuestionRepository,
	questionnaireRepo repository.QuestionnaireRepository,
	questionTypeRepo repository.QuestionTypeRepository,
	responseRepo repository.ResponseRepository,
	cacheRepo repository.CacheRepository,
) *QuestionService {
	return &QuestionService{
		questionRepo:      questionRepo,
		questionnaireRepo: questionnaireRepo,
		questionTypeRepo:  questionTypeRepo,
		responseRepo:      responseRepo,
		cacheRepo:         cacheRepo,
	}
}

// resolveActiveType возвращает тип вопроса; неизвестный или неактивный тип —
// ошибка валидации (BadRequest), а не NotFound
func (s *QuestionService) resolveActiveType(typeID uuid.UUID) (*entity.QuestionType, error) {
	questionType, err := s.questionTypeRepo.GetByID(typeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown question type: %s", typeID))
		}
		return nil, fmt.Errorf("failed to resolve question type: %w", err)
	}
	if !questionType.IsActive {
		return nil, apperrors.NewValidationError(fmt.Sprintf("question type '%s' is inactive and cannot be assigned", questionType.TypeName))
	}
	return questionType, nil
}

// validateQuestionFields проверяет текст и границы вопроса
func validateQuestionFields(input QuestionInput) []string {
	var errs []string

	if input.QuestionText == "" {
		errs = append(errs, "question text must not be empty")
	} else if len([]rune(input.QuestionText)) > 1000 {
		errs = append(errs, "question text must not exceed 1000 characters")
	}

	if input.MinLength != nil && input.MaxLength != nil && *input.MinLength > *input.MaxLength {
		errs = append(errs, fmt.Sprintf("min length %d must not exceed max length %d", *input.MinLength, *input.MaxLength))
	}
	if input.MinValue != nil && input.MaxValue != nil && *input.MinValue > *input.MaxValue {
		errs = append(errs, fmt.Sprintf("min value %v must not exceed max value %v", *input.MinValue, *input.MaxValue))
	}

	return errs
}

// invalidateDefinition сбрасывает кеш определения анкеты после структурного изменения
func (s *QuestionService) invalidateDefinition(questionnaireID uuid.UUID) {
	if s.cacheRepo == nil {
		return
	}
	// Ошибка инвалидации не фатальна: кеш истечет по TTL
	_ = s.cacheRepo.Delete(redisRepo.DefinitionKey(questionnaireID))
}

// CreateQuestion создает вопрос анкеты вместе с вариантами ответов.
// Все нарушения правил накапливаются и возвращаются одной ошибкой валидации.
func (s *QuestionService) CreateQuestion(questionnaireID uuid.UUID, input QuestionInput) (*entity.Question, error) {
	if _, err := s.questionnaireRepo.GetByID(questionnaireID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load questionnaire: %w", err)
	}

	questionType, err := s.resolveActiveType(input.QuestionTypeID)
	if err != nil {
		return nil, err
	}

	errs := validateQuestionFields(input)
	errs = append(errs, validateOptionSet(questionType, input.Options)...)

	// Порядок отображения: пропущенный назначается как max+1,
	// занятый другим вопросом — отклоняется с именем конфликтующего порядка
	displayOrder := 0
	if input.DisplayOrder == nil {
		max, err := s.questionRepo.MaxDisplayOrder(questionnaireID)
		if err != nil {
			return nil, fmt.Errorf("failed to compute display order: %w", err)
		}
		displayOrder = max + 1
	} else {
		displayOrder = *input.DisplayOrder
		taken, err := s.questionRepo.DisplayOrderTaken(questionnaireID, displayOrder, uuid.Nil)
		if err != nil {
			return nil, fmt.Errorf("failed to check display order: %w", err)
		}
		if taken {
			errs = append(errs, fmt.Sprintf("display order %d is already used by another question", displayOrder))
		}
	}

	if len(errs) > 0 {
		return nil, apperrors.NewValidationError(errs...)
	}

	question := &entity.Question{
		QuestionnaireID:  questionnaireID,
		QuestionText:     input.QuestionText,
		QuestionTypeID:   questionType.ID,
		IsRequired:       input.IsRequired,
		DisplayOrder:     displayOrder,
		MinLength:        input.MinLength,
		MaxLength:        input.MaxLength,
		MinValue:         input.MinValue,
		MaxValue:         input.MaxValue,
		Section:          input.Section,
		HelpText:         input.HelpText,
		ConditionalLogic: input.ConditionalLogic,
		ValidationRules:  input.ValidationRules,
		Options:          buildOptions(input.Options),
	}

	if err := s.questionRepo.Create(question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	if err := s.questionnaireRepo.IncrementVersion(questionnaireID); err != nil {
		return nil, fmt.Errorf("failed to bump questionnaire version: %w", err)
	}
	s.invalidateDefinition(questionnaireID)

	question.QuestionType = *questionType
	return question, nil
}

// UpdateQuestion изменяет вопрос. Побочный эффект над вариантами определяется
// переходом (старый тип с вариантами, новый тип с вариантами); чтение текущего
// состояния, валидация и запись нового состояния идут строго в этом порядке.
// Одновременные изменения одного вопроса не координируются: побеждает
// последняя запись.
func (s *QuestionService) UpdateQuestion(questionnaireID, questionID uuid.UUID, input QuestionInput) (*entity.Question, error) {
	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load question: %w", err)
	}
	if question.QuestionnaireID != questionnaireID {
		return nil, apperrors.ErrNotFound
	}

	newType, err := s.resolveActiveType(input.QuestionTypeID)
	if err != nil {
		return nil, err
	}

	errs := validateQuestionFields(input)

	if input.DisplayOrder != nil && *input.DisplayOrder != question.DisplayOrder {
		taken, err := s.questionRepo.DisplayOrderTaken(questionnaireID, *input.DisplayOrder, questionID)
		if err != nil {
			return nil, fmt.Errorf("failed to check display order: %w", err)
		}
		if taken {
			errs = append(errs, fmt.Sprintf("display order %d is already used by another question", *input.DisplayOrder))
		}
	}

	transition := transitionFor(question.HasOptions(), newType.HasOptions)
	switch transition {
	case replaceIfSupplied:
		if input.Options != nil {
			errs = append(errs, validateOptionSet(newType, input.Options)...)
		}
	case requireNewOptions:
		// Набор обязателен и валидируется ровно как при создании
		errs = append(errs, validateOptionSet(newType, input.Options)...)
	}

	if len(errs) > 0 {
		return nil, apperrors.NewValidationError(errs...)
	}

	question.QuestionText = input.QuestionText
	question.QuestionTypeID = newType.ID
	question.IsRequired = input.IsRequired
	if input.DisplayOrder != nil {
		question.DisplayOrder = *input.DisplayOrder
	}
	question.MinLength = input.MinLength
	question.MaxLength = input.MaxLength
	question.MinValue = input.MinValue
	question.MaxValue = input.MaxValue
	question.Section = input.Section
	question.HelpText = input.HelpText
	question.ConditionalLogic = input.ConditionalLogic
	question.ValidationRules = input.ValidationRules

	if err := s.questionRepo.Update(question); err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}

	switch transition {
	case replaceIfSupplied:
		if input.Options != nil {
			if err := s.questionRepo.ReplaceOptions(questionID, buildOptions(input.Options)); err != nil {
				return nil, fmt.Errorf("failed to replace options: %w", err)
			}
		}
	case clearOptions:
		if err := s.questionRepo.DeleteOptions(questionID); err != nil {
			return nil, fmt.Errorf("failed to clear options: %w", err)
		}
	case requireNewOptions:
		if err := s.questionRepo.ReplaceOptions(questionID, buildOptions(input.Options)); err != nil {
			return nil, fmt.Errorf("failed to create options: %w", err)
		}
	}

	if err := s.questionnaireRepo.IncrementVersion(questionnaireID); err != nil {
		return nil, fmt.Errorf("failed to bump questionnaire version: %w", err)
	}
	s.invalidateDefinition(questionnaireID)

	return s.questionRepo.GetByID(questionID)
}

// DeleteQuestion жестко удаляет вопрос с каскадом вариантов.
// История ответов неприкосновенна: вопрос с существующими ответами
// удалить нельзя.
func (s *QuestionService) DeleteQuestion(questionID uuid.UUID) error {
	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to load question: %w", err)
	}

	count, err := s.responseRepo.CountByQuestionID(questionID)
	if err != nil {
		return fmt.Errorf("failed to count question responses: %w", err)
	}
	if count > 0 {
		return apperrors.NewValidationError(
			fmt.Sprintf("question has %d existing responses and cannot be deleted", count))
	}

	if err := s.questionRepo.Delete(questionID); err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}

	if err := s.questionnaireRepo.IncrementVersion(question.QuestionnaireID); err != nil {
		return fmt.Errorf("failed to bump questionnaire version: %w", err)
	}
	s.invalidateDefinition(question.QuestionnaireID)

	return nil
}

// GetQuestionsByQuestionnaire возвращает вопросы анкеты по порядку отображения
func (s *QuestionService) GetQuestionsByQuestionnaire(questionnaireID uuid.UUID) ([]entity.Question, error) {
	if _, err := s.questionnaireRepo.GetByID(questionnaireID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load questionnaire: %w", err)
	}
	return s.questionRepo.GetByQuestionnaireID(questionnaireID)
}

// ListQuestionTypes возвращает активные записи справочника типов вопросов
func (s *QuestionService) ListQuestionTypes() ([]entity.QuestionType, error) {
	return s.questionTypeRepo.ListActive()
}
