package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/questionnaire-api/internal/domain/entity"
	"github.com/yourusername/questionnaire-api/internal/domain/repository"
	redisRepo "github.com/yourusername/questionnaire-api/internal/repository/redis"
	apperrors "github.com/yourusername/questionnaire-api/internal/pkg/errors"
)

// ResponseService реализует прием и хранение отправок анкет.
// Отправка либо проходит валидацию и сохраняется целиком, либо
// отклоняется без единой записанной строки.
type ResponseService struct {
	questionnaireRepo repository.QuestionnaireRepository
	responseRepo      repository.ResponseRepository
	cacheRepo         repository.CacheRepository
	validator         *Validator
	policy            AuthorizationPolicy

	// definitionTTL — время жизни кешированного определения анкеты
	definitionTTL time.Duration
}

// NewResponseService создает новый сервис отправок
func NewResponseService(
	questionnaireRepo repository.QuestionnaireRepository,
	responseRepo repository.ResponseRepository,
	cacheRepo repository.CacheRepository,
	validator *Validator,
	policy AuthorizationPolicy,
	definitionTTL time.Duration,
) *ResponseService {
	return &ResponseService{
		questionnaireRepo: questionnaireRepo,
		responseRepo:      responseRepo,
		cacheRepo:         cacheRepo,
		validator:         validator,
		policy:            policy,
		definitionTTL:     definitionTTL,
	}
}

// loadDefinition возвращает анкету с живыми определениями вопросов,
// сквозь кеш: промах читает из базы и прогревает кеш
func (s *ResponseService) loadDefinition(questionnaireID uuid.UUID) (*entity.Questionnaire, error) {
	key := redisRepo.DefinitionKey(questionnaireID)

	if s.cacheRepo != nil {
		var cached entity.Questionnaire
		if err := s.cacheRepo.GetJSON(key, &cached); err == nil {
			return &cached, nil
		}
	}

	questionnaire, err := s.questionnaireRepo.GetByID(questionnaireID)
	if err != nil {
		return nil, err
	}

	if s.cacheRepo != nil {
		// Ошибка прогрева не фатальна
		_ = s.cacheRepo.SetJSON(key, questionnaire, s.definitionTTL)
	}
	return questionnaire, nil
}

// SubmitResponse валидирует и сохраняет отправку анкеты.
// Порядок строгий: анкета → авторизация → валидация → запись агрегата;
// при любой ошибке валидации не сохраняется ничего.
func (s *ResponseService) SubmitResponse(caller CallerIdentity, questionnaireID uuid.UUID, answers []SubmittedAnswer, timeTaken int) (*entity.UserQuestionResponse, error) {
	questionnaire, err := s.loadDefinition(questionnaireID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load questionnaire: %w", err)
	}

	// Не-администратор отправляет только против анкеты своей категории
	if !s.policy.CanSubmit(caller, questionnaire.CategoryID) {
		return nil, apperrors.ErrForbidden
	}

	if errs := s.validator.Validate(questionnaire.Questions, answers); len(errs) > 0 {
		return nil, apperrors.NewValidationError(errs...)
	}

	now := time.Now().UTC()
	response := &entity.UserQuestionResponse{
		UserID:          caller.UserID,
		QuestionnaireID: questionnaireID,
		StartedAt:       now,
		CompletedAt:     &now,
		IsCompleted:     true,
		IsDraft:         false,
		TimeTaken:       timeTaken,
	}

	for _, answer := range answers {
		question := questionnaire.QuestionByID(answer.QuestionID)
		if question == nil {
			// Валидация уже отклонила бы неизвестный вопрос
			continue
		}
		response.Responses = append(response.Responses, buildQuestionResponse(answer))
	}

	if err := s.responseRepo.Create(response); err != nil {
		return nil, fmt.Errorf("failed to persist response: %w", err)
	}

	return response, nil
}

// buildQuestionResponse отображает присланные поля в запись ответа дословно:
// дата копируется в оба столбца даты, булево выводится эвристикой yes/no,
// имя и тип файла выводятся из URL
func buildQuestionResponse(answer SubmittedAnswer) entity.QuestionResponse {
	qr := entity.QuestionResponse{
		QuestionID:     answer.QuestionID,
		TextResponse:   answer.TextResponse,
		NumberResponse: answer.NumberResponse,
	}

	if answer.DateResponse != nil {
		qr.DateResponse = answer.DateResponse
		qr.DatetimeResponse = answer.DateResponse
	}

	if answer.TextResponse != nil {
		qr.BooleanResponse = entity.DeriveBoolean(*answer.TextResponse)
	}

	if answer.FileURL != nil && *answer.FileURL != "" {
		qr.FilePath = answer.FileURL
		name, fileType := entity.SplitFileURL(*answer.FileURL)
		qr.FileName = &name
		if fileType != "" {
			qr.FileType = &fileType
		}
	}

	for _, optionID := range answer.SelectedOptionIDs {
		qr.OptionResponses = append(qr.OptionResponses, entity.QuestionOptionResponse{
			OptionID: optionID,
		})
	}

	return qr
}

// ValidateResponse — сухой прогон валидации без сохранения.
// Идемпотентен: одинаковый payload дает одинаковый результат и не
// оставляет следов в хранилище.
func (s *ResponseService) ValidateResponse(questionnaireID uuid.UUID, answers []SubmittedAnswer) (*ValidationResult, error) {
	questionnaire, err := s.loadDefinition(questionnaireID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load questionnaire: %w", err)
	}

	errs := s.validator.Validate(questionnaire.Questions, answers)
	return &ValidationResult{IsValid: len(errs) == 0, Errors: errs}, nil
}

// GetResponseByID возвращает отправку. Чужую отправку не-администратор
// получает как NotFound, а не Forbidden, чтобы не подтверждать само
// существование записи.
func (s *ResponseService) GetResponseByID(caller CallerIdentity, id uuid.UUID) (*entity.UserQuestionResponse, error) {
	response, err := s.responseRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load response: %w", err)
	}

	if !s.policy.CanViewResponse(caller, response.UserID) {
		return nil, apperrors.ErrNotFound
	}
	return response, nil
}

// GetResponsesByQuestionnaire возвращает страницу отправок анкеты
// (только для администратора)
func (s *ResponseService) GetResponsesByQuestionnaire(caller CallerIdentity, questionnaireID uuid.UUID, page, pageSize int) ([]entity.UserQuestionResponse, int64, error) {
	if !s.policy.IsAdmin(caller) {
		return nil, 0, apperrors.ErrForbidden
	}
	if _, err := s.questionnaireRepo.GetByID(questionnaireID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, 0, apperrors.ErrNotFound
		}
		return nil, 0, fmt.Errorf("failed to load questionnaire: %w", err)
	}
	return s.responseRepo.GetByQuestionnaireID(questionnaireID, page, pageSize)
}

// GetAllResponsesByQuestionnaire возвращает все отправки анкеты без
// пагинации — для экспорта (только для администратора)
func (s *ResponseService) GetAllResponsesByQuestionnaire(caller CallerIdentity, questionnaireID uuid.UUID) ([]entity.UserQuestionResponse, error) {
	if !s.policy.IsAdmin(caller) {
		return nil, apperrors.ErrForbidden
	}
	return s.responseRepo.GetAllByQuestionnaireID(questionnaireID)
}

// GetUserResponses возвращает отправки самого вызывающего
func (s *ResponseService) GetUserResponses(caller CallerIdentity) ([]entity.UserQuestionResponse, error) {
	return s.responseRepo.GetByUserID(caller.UserID)
}
