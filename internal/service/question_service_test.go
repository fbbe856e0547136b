package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/questionnaire-api/internal/domain/entity"
	apperrors "github.com/yourusername/questionnaire-api/internal/pkg/errors"
	redisRepo "github.com/yourusername/questionnaire-api/internal/repository/redis"
)

// ============================================================================
// Хелперы
// ============================================================================

func intPtr(v int) *int { return &v }

type questionServiceFixture struct {
	questionRepo      *MockQuestionRepo
	questionnaireRepo *MockQuestionnaireRepo
	questionTypeRepo  *MockQuestionTypeRepo
	responseRepo      *MockResponseRepo
	service           *QuestionService
}

func newQuestionServiceFixture() *questionServiceFixture {
	f := &questionServiceFixture{
		questionRepo:      new(MockQuestionRepo),
		questionnaireRepo: new(MockQuestionnaireRepo),
		questionTypeRepo:  new(MockQuestionTypeRepo),
		responseRepo:      new(MockResponseRepo),
	}
	// Базовый fixture без кеша; для проверок инвалидации
	// есть вариант с MockCacheRepo
	f.service = NewQuestionService(f.questionRepo, f.questionnaireRepo, f.questionTypeRepo, f.responseRepo, nil)
	return f
}

func radioType() *entity.QuestionType {
	return &entity.QuestionType{ID: uuid.New(), TypeName: entity.TypeRadio, HasOptions: true, IsActive: true}
}

func textareaType() *entity.QuestionType {
	return &entity.QuestionType{ID: uuid.New(), TypeName: entity.TypeTextarea, HasOptions: false, IsActive: true}
}

func validOptions() []OptionInput {
	return []OptionInput{
		{OptionText: "A", OptionValue: "a", DisplayOrder: 1, IsCorrect: true},
		{OptionText: "B", OptionValue: "b", DisplayOrder: 2},
	}
}

// ============================================================================
// CreateQuestion
// ============================================================================

func TestCreateQuestion_Success(t *testing.T) {
	f := newQuestionServiceFixture()
	questionnaireID := uuid.New()
	qt := radioType()

	f.questionnaireRepo.On("GetByID", questionnaireID).Return(&entity.Questionnaire{ID: questionnaireID}, nil)
	f.questionTypeRepo.On("GetByID", qt.ID).Return(qt, nil)
	f.questionRepo.On("MaxDisplayOrder", questionnaireID).Return(3, nil)
	f.questionRepo.On("Create", mock.AnythingOfType("*entity.Question")).Return(nil)
	f.questionnaireRepo.On("IncrementVersion", questionnaireID).Return(nil)

	question, err := f.service.CreateQuestion(questionnaireID, QuestionInput{
		QuestionText:   "Choose one",
		QuestionTypeID: qt.ID,
		IsRequired:     true,
		Options:        validOptions(),
	})

	require.NoError(t, err)
	assert.Equal(t, 4, question.DisplayOrder, "пропущенный порядок назначается как max+1")
	assert.Len(t, question.Options, 2)
	f.questionRepo.AssertExpectations(t)
	f.questionnaireRepo.AssertCalled(t, "IncrementVersion", questionnaireID)
}

func TestCreateQuestion_UnknownQuestionnaire(t *testing.T) {
	f := newQuestionServiceFixture()
	questionnaireID := uuid.New()

	f.questionnaireRepo.On("GetByID", questionnaireID).Return(nil, apperrors.ErrNotFound)

	_, err := f.service.CreateQuestion(questionnaireID, QuestionInput{QuestionText: "x", QuestionTypeID: uuid.New()})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCreateQuestion_InactiveType(t *testing.T) {
	f := newQuestionServiceFixture()
	questionnaireID := uuid.New()
	qt := radioType()
	qt.IsActive = false

	f.questionnaireRepo.On("GetByID", questionnaireID).Return(&entity.Questionnaire{ID: questionnaireID}, nil)
	f.questionTypeRepo.On("GetByID", qt.ID).Return(qt, nil)

	_, err := f.service.CreateQuestion(questionnaireID, QuestionInput{
		QuestionText:   "Choose one",
		QuestionTypeID: qt.ID,
		Options:        validOptions(),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation, "неактивный тип — это BadRequest, не NotFound")
	assert.Contains(t, err.Error(), "inactive")
}

func TestCreateQuestion_DuplicateDisplayOrderNamed(t *testing.T) {
	f := newQuestionServiceFixture()
	questionnaireID := uuid.New()
	qt := textareaType()

	f.questionnaireRepo.On("GetByID", questionnaireID).Return(&entity.Questionnaire{ID: questionnaireID}, nil)
	f.questionTypeRepo.On("GetByID", qt.ID).Return(qt, nil)
	f.questionRepo.On("DisplayOrderTaken", questionnaireID, 7, uuid.Nil).Return(true, nil)

	_, err := f.service.CreateQuestion(questionnaireID, QuestionInput{
		QuestionText:   "Describe",
		QuestionTypeID: qt.ID,
		DisplayOrder:   intPtr(7),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "display order 7", "сообщение должно называть конфликтующий порядок")
	f.questionRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateQuestion_OptionOrderGapsAndDuplicatesEnumerated(t *testing.T) {
	f := newQuestionServiceFixture()
	questionnaireID := uuid.New()
	qt := radioType()

	f.questionnaireRepo.On("GetByID", questionnaireID).Return(&entity.Questionnaire{ID: questionnaireID}, nil)
	f.questionTypeRepo.On("GetByID", qt.ID).Return(qt, nil)
	f.questionRepo.On("MaxDisplayOrder", questionnaireID).Return(0, nil)

	// Порядки {1, 1, 4}: дубликат 1, пропущены 2 и 3
	_, err := f.service.CreateQuestion(questionnaireID, QuestionInput{
		QuestionText:   "Choose one",
		QuestionTypeID: qt.ID,
		Options: []OptionInput{
			{OptionText: "A", OptionValue: "a", DisplayOrder: 1},
			{OptionText: "B", OptionValue: "b", DisplayOrder: 1},
			{OptionText: "C", OptionValue: "c", DisplayOrder: 4},
		},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate option display orders: [1]")
	assert.Contains(t, err.Error(), "missing option display orders: [2 3]")
	f.questionRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateQuestion_OptionsRequiredForOptionType(t *testing.T) {
	f := newQuestionServiceFixture()
	questionnaireID := uuid.New()
	qt := radioType()

	f.questionnaireRepo.On("GetByID", questionnaireID).Return(&entity.Questionnaire{ID: questionnaireID}, nil)
	f.questionTypeRepo.On("GetByID", qt.ID).Return(qt, nil)
	f.questionRepo.On("MaxDisplayOrder", questionnaireID).Return(0, nil)

	_, err := f.service.CreateQuestion(questionnaireID, QuestionInput{
		QuestionText:   "Choose one",
		QuestionTypeID: qt.ID,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least one option")
}

func TestCreateQuestion_SingleCorrectForRadio(t *testing.T) {
	f := newQuestionServiceFixture()
	questionnaireID := uuid.New()
	qt := radioType()

	f.questionnaireRepo.On("GetByID", questionnaireID).Return(&entity.Questionnaire{ID: questionnaireID}, nil)
	f.questionTypeRepo.On("GetByID", qt.ID).Return(qt, nil)
	f.questionRepo.On("MaxDisplayOrder", questionnaireID).Return(0, nil)

	_, err := f.service.CreateQuestion(questionnaireID, QuestionInput{
		QuestionText:   "Choose one",
		QuestionTypeID: qt.ID,
		Options: []OptionInput{
			{OptionText: "A", OptionValue: "a", DisplayOrder: 1, IsCorrect: true},
			{OptionText: "B", OptionValue: "b", DisplayOrder: 2, IsCorrect: true},
		},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "at most one option may be marked correct")
}

func TestCreateQuestion_AccumulatesAllViolations(t *testing.T) {
	f := newQuestionServiceFixture()
	questionnaireID := uuid.New()
	qt := radioType()

	f.questionnaireRepo.On("GetByID", questionnaireID).Return(&entity.Questionnaire{ID: questionnaireID}, nil)
	f.questionTypeRepo.On("GetByID", qt.ID).Return(qt, nil)
	f.questionRepo.On("MaxDisplayOrder", questionnaireID).Return(0, nil)

	// Пустой текст + дубликат значения варианта: обе ошибки за один круг
	_, err := f.service.CreateQuestion(questionnaireID, QuestionInput{
		QuestionTypeID: qt.ID,
		Options: []OptionInput{
			{OptionText: "A", OptionValue: "same", DisplayOrder: 1},
			{OptionText: "B", OptionValue: "same", DisplayOrder: 2},
		},
	})

	require.Error(t, err)
	var vErr *apperrors.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.GreaterOrEqual(t, len(vErr.Errors), 2, "нарушения должны накапливаться")
	assert.Contains(t, err.Error(), "question text must not be empty")
	assert.Contains(t, err.Error(), "duplicate option value: 'same'")
}

// ============================================================================
// UpdateQuestion: четыре квадранта смены типа
// ============================================================================

func TestTransitionFor_AllQuadrants(t *testing.T) {
	assert.Equal(t, replaceIfSupplied, transitionFor(true, true))
	assert.Equal(t, clearOptions, transitionFor(true, false))
	assert.Equal(t, requireNewOptions, transitionFor(false, true))
	assert.Equal(t, noOptionChange, transitionFor(false, false))
}

func TestUpdateQuestion_OptionsToNoOptionsClears(t *testing.T) {
	f := newQuestionServiceFixture()
	questionnaireID := uuid.New()
	questionID := uuid.New()
	oldType := radioType()
	newType := textareaType()

	existing := &entity.Question{
		ID:              questionID,
		QuestionnaireID: questionnaireID,
		QuestionText:    "Choose one",
		QuestionType:    *oldType,
		Options: []entity.Option{
			{ID: uuid.New(), OptionText: "A", DisplayOrder: 1},
			{ID: uuid.New(), OptionText: "B", DisplayOrder: 2},
		},
	}

	f.questionRepo.On("GetByID", questionID).Return(existing, nil).Once()
	f.questionTypeRepo.On("GetByID", newType.ID).Return(newType, nil)
	f.questionRepo.On("Update", mock.AnythingOfType("*entity.Question")).Return(nil)
	f.questionRepo.On("DeleteOptions", questionID).Return(nil)
	f.questionnaireRepo.On("IncrementVersion", questionnaireID).Return(nil)
	f.questionRepo.On("GetByID", questionID).Return(&entity.Question{ID: questionID, QuestionnaireID: questionnaireID, QuestionType: *newType}, nil)

	_, err := f.service.UpdateQuestion(questionnaireID, questionID, QuestionInput{
		QuestionText:   "Describe instead",
		QuestionTypeID: newType.ID,
		Options:        []OptionInput{}, // пустой список при смене на тип без вариантов
	})

	require.NoError(t, err)
	f.questionRepo.AssertCalled(t, "DeleteOptions", questionID)
	f.questionRepo.AssertNotCalled(t, "ReplaceOptions", mock.Anything, mock.Anything)
}

func TestUpdateQuestion_NoOptionsToOptionsRequiresPayload(t *testing.T) {
	f := newQuestionServiceFixture()
	questionnaireID := uuid.New()
	questionID := uuid.New()
	oldType := textareaType()
	newType := radioType()

	existing := &entity.Question{
		ID:              questionID,
		QuestionnaireID: questionnaireID,
		QuestionText:    "Describe",
		QuestionType:    *oldType,
	}

	f.questionRepo.On("GetByID", questionID).Return(existing, nil)
	f.questionTypeRepo.On("GetByID", newType.ID).Return(newType, nil)

	// Без набора вариантов переход отклоняется
	_, err := f.service.UpdateQuestion(questionnaireID, questionID, QuestionInput{
		QuestionText:   "Choose one",
		QuestionTypeID: newType.ID,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least one option")
	f.questionRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestUpdateQuestion_SameTypeWithoutPayloadKeepsOptions(t *testing.T) {
	f := newQuestionServiceFixture()
	questionnaireID := uuid.New()
	questionID := uuid.New()
	qt := radioType()

	existing := &entity.Question{
		ID:              questionID,
		QuestionnaireID: questionnaireID,
		QuestionText:    "Choose one",
		QuestionType:    *qt,
		Options:         []entity.Option{{ID: uuid.New(), OptionText: "A", DisplayOrder: 1}},
	}

	f.questionRepo.On("GetByID", questionID).Return(existing, nil)
	f.questionTypeRepo.On("GetByID", qt.ID).Return(qt, nil)
	f.questionRepo.On("Update", mock.AnythingOfType("*entity.Question")).Return(nil)
	f.questionnaireRepo.On("IncrementVersion", questionnaireID).Return(nil)

	_, err := f.service.UpdateQuestion(questionnaireID, questionID, QuestionInput{
		QuestionText:   "Choose exactly one",
		QuestionTypeID: qt.ID,
		// Options == nil: набор не прислан
	})

	require.NoError(t, err)
	f.questionRepo.AssertNotCalled(t, "ReplaceOptions", mock.Anything, mock.Anything)
	f.questionRepo.AssertNotCalled(t, "DeleteOptions", mock.Anything)
}

func TestUpdateQuestion_WrongQuestionnaireIsNotFound(t *testing.T) {
	f := newQuestionServiceFixture()
	questionID := uuid.New()
	qt := radioType()

	existing := &entity.Question{
		ID:              questionID,
		QuestionnaireID: uuid.New(), // другая анкета
		QuestionType:    *qt,
	}
	f.questionRepo.On("GetByID", questionID).Return(existing, nil)

	_, err := f.service.UpdateQuestion(uuid.New(), questionID, QuestionInput{
		QuestionText:   "x",
		QuestionTypeID: qt.ID,
	})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// ============================================================================
// DeleteQuestion
// ============================================================================

func TestDeleteQuestion_RejectedWithResponses(t *testing.T) {
	f := newQuestionServiceFixture()
	questionID := uuid.New()
	questionnaireID := uuid.New()

	f.questionRepo.On("GetByID", questionID).Return(&entity.Question{ID: questionID, QuestionnaireID: questionnaireID}, nil)
	f.responseRepo.On("CountByQuestionID", questionID).Return(int64(2), nil)

	err := f.service.DeleteQuestion(questionID)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "existing responses")
	f.questionRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestDeleteQuestion_Success(t *testing.T) {
	f := newQuestionServiceFixture()
	questionID := uuid.New()
	questionnaireID := uuid.New()

	f.questionRepo.On("GetByID", questionID).Return(&entity.Question{ID: questionID, QuestionnaireID: questionnaireID}, nil)
	f.responseRepo.On("CountByQuestionID", questionID).Return(int64(0), nil)
	f.questionRepo.On("Delete", questionID).Return(nil)
	f.questionnaireRepo.On("IncrementVersion", questionnaireID).Return(nil)

	err := f.service.DeleteQuestion(questionID)

	require.NoError(t, err)
	f.questionRepo.AssertCalled(t, "Delete", questionID)
}

// ============================================================================
// Инвалидация кеша определения анкеты
// ============================================================================

func newQuestionServiceFixtureWithCache() (*questionServiceFixture, *MockCacheRepo) {
	f := newQuestionServiceFixture()
	cache := new(MockCacheRepo)
	f.service = NewQuestionService(f.questionRepo, f.questionnaireRepo, f.questionTypeRepo, f.responseRepo, cache)
	return f, cache
}

func TestCreateQuestion_InvalidatesDefinitionCache(t *testing.T) {
	f, cache := newQuestionServiceFixtureWithCache()
	questionnaireID := uuid.New()
	qt := textareaType()

	f.questionnaireRepo.On("GetByID", questionnaireID).Return(&entity.Questionnaire{ID: questionnaireID}, nil)
	f.questionTypeRepo.On("GetByID", qt.ID).Return(qt, nil)
	f.questionRepo.On("MaxDisplayOrder", questionnaireID).Return(0, nil)
	f.questionRepo.On("Create", mock.AnythingOfType("*entity.Question")).Return(nil)
	f.questionnaireRepo.On("IncrementVersion", questionnaireID).Return(nil)
	cache.On("Delete", redisRepo.DefinitionKey(questionnaireID)).Return(nil)

	_, err := f.service.CreateQuestion(questionnaireID, QuestionInput{
		QuestionText:   "Tell us about yourself",
		QuestionTypeID: qt.ID,
	})

	require.NoError(t, err)
	cache.AssertCalled(t, "Delete", redisRepo.DefinitionKey(questionnaireID))
}

func TestUpdateQuestion_InvalidatesDefinitionCache(t *testing.T) {
	f, cache := newQuestionServiceFixtureWithCache()
	questionnaireID := uuid.New()
	qt := textareaType()
	question := &entity.Question{
		ID:              uuid.New(),
		QuestionnaireID: questionnaireID,
		QuestionText:    "Old text",
		QuestionTypeID:  qt.ID,
		QuestionType:    *qt,
		DisplayOrder:    1,
	}

	f.questionRepo.On("GetByID", question.ID).Return(question, nil)
	f.questionTypeRepo.On("GetByID", qt.ID).Return(qt, nil)
	f.questionRepo.On("Update", mock.AnythingOfType("*entity.Question")).Return(nil)
	f.questionnaireRepo.On("IncrementVersion", questionnaireID).Return(nil)
	cache.On("Delete", redisRepo.DefinitionKey(questionnaireID)).Return(nil)

	_, err := f.service.UpdateQuestion(questionnaireID, question.ID, QuestionInput{
		QuestionText:   "New text",
		QuestionTypeID: qt.ID,
	})

	require.NoError(t, err)
	cache.AssertCalled(t, "Delete", redisRepo.DefinitionKey(questionnaireID))
}

func TestDeleteQuestion_InvalidatesDefinitionCache(t *testing.T) {
	f, cache := newQuestionServiceFixtureWithCache()
	questionnaireID := uuid.New()
	question := &entity.Question{ID: uuid.New(), QuestionnaireID: questionnaireID}

	f.questionRepo.On("GetByID", question.ID).Return(question, nil)
	f.responseRepo.On("CountByQuestionID", question.ID).Return(int64(0), nil)
	f.questionRepo.On("Delete", question.ID).Return(nil)
	f.questionnaireRepo.On("IncrementVersion", questionnaireID).Return(nil)
	cache.On("Delete", redisRepo.DefinitionKey(questionnaireID)).Return(nil)

	require.NoError(t, f.service.DeleteQuestion(question.ID))
	cache.AssertCalled(t, "Delete", redisRepo.DefinitionKey(questionnaireID))
}
