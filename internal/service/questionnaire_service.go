package service

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/yourusername/questionnaire-api/internal/domain/entity"
	"github.com/yourusername/questionnaire-api/internal/domain/repository"
	redisRepo "github.com/yourusername/questionnaire-api/internal/repository/redis"
	apperrors "github.com/yourusername/questionnaire-api/internal/pkg/errors"
)

// QuestionnaireInput — команда создания/изменения анкеты.
// Questions == nil при изменении означает "список вопросов не трогать";
// непустой список при изменении полностью заменяет существующие вопросы.
type QuestionnaireInput struct {
	CategoryID   uuid.UUID       `json:"category_id"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	IsMandatory  bool            `json:"is_mandatory"`
	DisplayOrder int             `json:"display_order"`
	Questions    []QuestionInput `json:"questions,omitempty"`
}

// QuestionnaireService реализует операции над агрегатом анкеты:
// инвариант 1:1 категория↔анкета, порядок вопросов, атомарное создание.
type QuestionnaireService struct {
	questionnaireRepo repository.QuestionnaireRepository
	questionTypeRepo  repository.QuestionTypeRepository
	categoryRepo      repository.CategoryRepository
	responseRepo      repository.ResponseRepository
	cacheRepo         repository.CacheRepository
}

// NewQuestionnaireService создает новый сервис анкет
func NewQuestionnaireService(
	questionnaireRepo repository.QuestionnaireRepository,
	questionTypeRepo repository.QuestionTypeRepository,
	categoryRepo repository.CategoryRepository,
	responseRepo repository.ResponseRepository,
	cacheRepo repository.CacheRepository,
) *QuestionnaireService {
	return &QuestionnaireService{
		questionnaireRepo: questionnaireRepo,
		questionTypeRepo:  questionTypeRepo,
		categoryRepo:      categoryRepo,
		responseRepo:      responseRepo,
		cacheRepo:         cacheRepo,
	}
}

// invalidateDefinition сбрасывает кеш определения анкеты
func (s *QuestionnaireService) invalidateDefinition(questionnaireID uuid.UUID) {
	if s.cacheRepo == nil {
		return
	}
	_ = s.cacheRepo.Delete(redisRepo.DefinitionKey(questionnaireID))
}

// validateQuestionList проверяет список вопросов payload-а целиком:
// дубликаты display_order между вопросами перечисляются одним сообщением,
// каждый вопрос валидируется правилами создания. Возвращает готовые
// сущности вопросов с назначенными порядками.
func (s *QuestionnaireService) validateQuestionList(inputs []QuestionInput) ([]entity.Question, []string) {
	var errs []string

	// Пропущенные порядки назначаются последовательно после максимального
	// явного, дубликаты явных порядков отклоняются списком
	maxOrder := 0
	for _, in := range inputs {
		if in.DisplayOrder != nil && *in.DisplayOrder > maxOrder {
			maxOrder = *in.DisplayOrder
		}
	}

	orderCounts := make(map[int]int, len(inputs))
	orders := make([]int, len(inputs))
	next := maxOrder
	for i, in := range inputs {
		if in.DisplayOrder != nil {
			orders[i] = *in.DisplayOrder
		} else {
			next++
			orders[i] = next
		}
		orderCounts[orders[i]]++
	}

	var duplicates []int
	for order, n := range orderCounts {
		if n > 1 {
			duplicates = append(duplicates, order)
		}
	}
	if len(duplicates) > 0 {
		sort.Ints(duplicates)
		errs = append(errs, fmt.Sprintf("duplicate question display orders: %v", duplicates))
	}

	questions := make([]entity.Question, 0, len(inputs))
	for i, in := range inputs {
		questionType, err := s.questionTypeRepo.GetByID(in.QuestionTypeID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				errs = append(errs, fmt.Sprintf("question %d: unknown question type %s", i+1, in.QuestionTypeID))
			} else {
				errs = append(errs, fmt.Sprintf("question %d: failed to resolve question type", i+1))
			}
			continue
		}
		if !questionType.IsActive {
			errs = append(errs, fmt.Sprintf("question %d: question type '%s' is inactive", i+1, questionType.TypeName))
			continue
		}

		for _, msg := range validateQuestionFields(in) {
			errs = append(errs, fmt.Sprintf("question %d: %s", i+1, msg))
		}
		for _, msg := range validateOptionSet(questionType, in.Options) {
			errs = append(errs, fmt.Sprintf("question %d: %s", i+1, msg))
		}

		questions = append(questions, entity.Question{
			QuestionText:     in.QuestionText,
			QuestionTypeID:   questionType.ID,
			IsRequired:       in.IsRequired,
			DisplayOrder:     orders[i],
			MinLength:        in.MinLength,
			MaxLength:        in.MaxLength,
			MinValue:         in.MinValue,
			MaxValue:         in.MaxValue,
			Section:          in.Section,
			HelpText:         in.HelpText,
			ConditionalLogic: in.ConditionalLogic,
			ValidationRules:  in.ValidationRules,
			Options:          buildOptions(in.Options),
		})
	}

	return questions, errs
}

// CreateQuestionnaire создает анкету с вопросами атомарно: при любом
// нарушении правил не создается ничего
func (s *QuestionnaireService) CreateQuestionnaire(input QuestionnaireInput) (*entity.Questionnaire, error) {
	exists, err := s.categoryRepo.Exists(input.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to check category: %w", err)
	}
	if !exists {
		return nil, apperrors.ErrNotFound
	}

	var errs []string
	if input.Title == "" {
		errs = append(errs, "questionnaire title must not be empty")
	}

	// Инвариант одна-анкета-на-категорию держится здесь, в сервисе:
	// схема уникальность не объявляет
	if _, err := s.questionnaireRepo.GetByCategoryID(input.CategoryID); err == nil {
		errs = append(errs, "an active questionnaire already exists for this category")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check category questionnaire: %w", err)
	}

	questions, questionErrs := s.validateQuestionList(input.Questions)
	errs = append(errs, questionErrs...)

	if len(errs) > 0 {
		return nil, apperrors.NewValidationError(errs...)
	}

	questionnaire := &entity.Questionnaire{
		CategoryID:   input.CategoryID,
		Title:        input.Title,
		Description:  input.Description,
		IsMandatory:  input.IsMandatory,
		DisplayOrder: input.DisplayOrder,
		Version:      1,
		Questions:    questions,
	}

	if err := s.questionnaireRepo.Create(questionnaire); err != nil {
		return nil, fmt.Errorf("failed to create questionnaire: %w", err)
	}

	return questionnaire, nil
}

// UpdateQuestionnaire заменяет метаданные анкеты; присланный список
// вопросов полностью замещает существующий (не diff/merge) и увеличивает
// версию анкеты
func (s *QuestionnaireService) UpdateQuestionnaire(id uuid.UUID, input QuestionnaireInput) (*entity.Questionnaire, error) {
	questionnaire, err := s.questionnaireRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load questionnaire: %w", err)
	}

	var errs []string
	if input.Title == "" {
		errs = append(errs, "questionnaire title must not be empty")
	}

	var questions []entity.Question
	if input.Questions != nil {
		var questionErrs []string
		questions, questionErrs = s.validateQuestionList(input.Questions)
		errs = append(errs, questionErrs...)
	}

	if len(errs) > 0 {
		return nil, apperrors.NewValidationError(errs...)
	}

	questionnaire.Title = input.Title
	questionnaire.Description = input.Description
	questionnaire.IsMandatory = input.IsMandatory
	questionnaire.DisplayOrder = input.DisplayOrder

	if err := s.questionnaireRepo.Update(questionnaire); err != nil {
		return nil, fmt.Errorf("failed to update questionnaire: %w", err)
	}

	if input.Questions != nil {
		if err := s.questionnaireRepo.ReplaceQuestions(id, questions); err != nil {
			return nil, fmt.Errorf("failed to replace questions: %w", err)
		}
		if err := s.questionnaireRepo.IncrementVersion(id); err != nil {
			return nil, fmt.Errorf("failed to bump questionnaire version: %w", err)
		}
	}
	s.invalidateDefinition(id)

	return s.questionnaireRepo.GetByID(id)
}

// DeleteQuestionnaire мягко удаляет анкету. История ответов неприкосновенна:
// анкету с существующими отправками удалить нельзя.
func (s *QuestionnaireService) DeleteQuestionnaire(id uuid.UUID) error {
	if _, err := s.questionnaireRepo.GetByID(id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to load questionnaire: %w", err)
	}

	count, err := s.responseRepo.CountByQuestionnaireID(id)
	if err != nil {
		return fmt.Errorf("failed to count questionnaire responses: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: questionnaire has %d existing responses and cannot be deleted",
			apperrors.ErrConflict, count)
	}

	if err := s.questionnaireRepo.SoftDelete(id); err != nil {
		return fmt.Errorf("failed to delete questionnaire: %w", err)
	}
	s.invalidateDefinition(id)

	return nil
}

// GetQuestionnaireByID возвращает анкету с полным определением вопросов
func (s *QuestionnaireService) GetQuestionnaireByID(id uuid.UUID) (*entity.Questionnaire, error) {
	return s.questionnaireRepo.GetByID(id)
}

// GetQuestionnaireByCategory возвращает анкету категории
func (s *QuestionnaireService) GetQuestionnaireByCategory(categoryID uuid.UUID) (*entity.Questionnaire, error) {
	return s.questionnaireRepo.GetByCategoryID(categoryID)
}

// ListQuestionnaires возвращает страницу анкет
func (s *QuestionnaireService) ListQuestionnaires(page, pageSize int) ([]entity.Questionnaire, int64, error) {
	return s.questionnaireRepo.List(page, pageSize)
}
