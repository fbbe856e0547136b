package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/yourusername/questionnaire-api/internal/domain/entity"
)

// ============================================================================
// Моки репозиториев для тестов сервисов.
// Общие для question_service_test.go, questionnaire_service_test.go
// и response_service_test.go.
// ============================================================================

// MockQuestionnaireRepo реализует repository.QuestionnaireRepository
type MockQuestionnaireRepo struct {
	mock.Mock
}

func (m *MockQuestionnaireRepo) Create(questionnaire *entity.Questionnaire) error {
	args := m.Called(questionnaire)
	return args.Error(0)
}

func (m *MockQuestionnaireRepo) GetByID(id uuid.UUID) (*entity.Questionnaire, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Questionnaire), args.Error(1)
}

func (m *MockQuestionnaireRepo) GetByCategoryID(categoryID uuid.UUID) (*entity.Questionnaire, error) {
	args := m.Called(categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Questionnaire), args.Error(1)
}

func (m *MockQuestionnaireRepo) List(page, pageSize int) ([]entity.Questionnaire, int64, error) {
	args := m.Called(page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Questionnaire), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuestionnaireRepo) Update(questionnaire *entity.Questionnaire) error {
	args := m.Called(questionnaire)
	return args.Error(0)
}

func (m *MockQuestionnaireRepo) ReplaceQuestions(questionnaireID uuid.UUID, questions []entity.Question) error {
	args := m.Called(questionnaireID, questions)
	return args.Error(0)
}

func (m *MockQuestionnaireRepo) IncrementVersion(id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockQuestionnaireRepo) SoftDelete(id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockQuestionRepo реализует repository.QuestionRepository
type MockQuestionRepo struct {
	mock.Mock
}

func (m *MockQuestionRepo) Create(question *entity.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepo) GetByID(id uuid.UUID) (*entity.Question, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepo) GetByQuestionnaireID(questionnaireID uuid.UUID) ([]entity.Question, error) {
	args := m.Called(questionnaireID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepo) Update(question *entity.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepo) Delete(id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockQuestionRepo) ReplaceOptions(questionID uuid.UUID, options []entity.Option) error {
	args := m.Called(questionID, options)
	return args.Error(0)
}

func (m *MockQuestionRepo) DeleteOptions(questionID uuid.UUID) error {
	args := m.Called(questionID)
	return args.Error(0)
}

func (m *MockQuestionRepo) MaxDisplayOrder(questionnaireID uuid.UUID) (int, error) {
	args := m.Called(questionnaireID)
	return args.Int(0), args.Error(1)
}

func (m *MockQuestionRepo) DisplayOrderTaken(questionnaireID uuid.UUID, displayOrder int, excludeQuestionID uuid.UUID) (bool, error) {
	args := m.Called(questionnaireID, displayOrder, excludeQuestionID)
	return args.Bool(0), args.Error(1)
}

// MockQuestionTypeRepo реализует repository.QuestionTypeRepository
type MockQuestionTypeRepo struct {
	mock.Mock
}

func (m *MockQuestionTypeRepo) GetByID(id uuid.UUID) (*entity.QuestionType, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.QuestionType), args.Error(1)
}

func (m *MockQuestionTypeRepo) GetByName(typeName string) (*entity.QuestionType, error) {
	args := m.Called(typeName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.QuestionType), args.Error(1)
}

func (m *MockQuestionTypeRepo) ListActive() ([]entity.QuestionType, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuestionType), args.Error(1)
}

func (m *MockQuestionTypeRepo) List() ([]entity.QuestionType, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuestionType), args.Error(1)
}

func (m *MockQuestionTypeRepo) SetActive(id uuid.UUID, active bool) error {
	args := m.Called(id, active)
	return args.Error(0)
}

// MockCategoryRepo реализует repository.CategoryRepository
type MockCategoryRepo struct {
	mock.Mock
}

func (m *MockCategoryRepo) Exists(id uuid.UUID) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepo) Name(id uuid.UUID) (string, error) {
	args := m.Called(id)
	return args.String(0), args.Error(1)
}

// MockResponseRepo реализует repository.ResponseRepository
type MockResponseRepo struct {
	mock.Mock
}

func (m *MockResponseRepo) Create(response *entity.UserQuestionResponse) error {
	args := m.Called(response)
	return args.Error(0)
}

func (m *MockResponseRepo) GetByID(id uuid.UUID) (*entity.UserQuestionResponse, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UserQuestionResponse), args.Error(1)
}

func (m *MockResponseRepo) GetByQuestionnaireID(questionnaireID uuid.UUID, page, pageSize int) ([]entity.UserQuestionResponse, int64, error) {
	args := m.Called(questionnaireID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.UserQuestionResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockResponseRepo) GetAllByQuestionnaireID(questionnaireID uuid.UUID) ([]entity.UserQuestionResponse, error) {
	args := m.Called(questionnaireID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.UserQuestionResponse), args.Error(1)
}

func (m *MockResponseRepo) GetByUserID(userID uuid.UUID) ([]entity.UserQuestionResponse, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.UserQuestionResponse), args.Error(1)
}

func (m *MockResponseRepo) CountByQuestionnaireID(questionnaireID uuid.UUID) (int64, error) {
	args := m.Called(questionnaireID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockResponseRepo) CountByQuestionID(questionID uuid.UUID) (int64, error) {
	args := m.Called(questionID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCacheRepo реализует repository.CacheRepository
type MockCacheRepo struct {
	mock.Mock
}

func (m *MockCacheRepo) Set(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepo) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepo) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheRepo) Increment(key string) (int64, error) {
	args := m.Called(key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCacheRepo) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepo) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

func (m *MockCacheRepo) Exists(key string) (bool, error) {
	args := m.Called(key)
	return args.Bool(0), args.Error(1)
}
