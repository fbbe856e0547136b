package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/questionnaire-api/internal/handler/dto"
	apperrors "github.com/yourusername/questionnaire-api/internal/pkg/errors"
	"github.com/yourusername/questionnaire-api/internal/service"
)

// QuestionHandler обрабатывает запросы, связанные с вопросами и их вариантами
type QuestionHandler struct {
	questionService *service.QuestionService
	policy          service.AuthorizationPolicy
}

// NewQuestionHandler создает новый обработчик вопросов
func NewQuestionHandler(
	questionService *service.QuestionService,
	policy service.AuthorizationPolicy,
) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		policy:          policy,
	}
}

// CreateQuestion обрабатывает запрос на добавление вопроса к анкете
// POST /api/questionnaires/:id/questions
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	if !h.policy.CanManageStructure(callerIdentity(c)) {
		handleError(c, apperrors.ErrForbidden)
		return
	}

	questionnaireID := c.MustGet("questionnaireID").(uuid.UUID)

	var input service.QuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(http.StatusBadRequest, err.Error()))
		return
	}

	question, err := h.questionService.CreateQuestion(questionnaireID, input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.NewQuestionResponse(question)))
}

// UpdateQuestion обрабатывает запрос на изменение вопроса.
// Смена типа валидируется против присланного (или существующего)
// набора вариантов до первой записи.
// PUT /api/questionnaires/:id/questions/:qid
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	if !h.policy.CanManageStructure(callerIdentity(c)) {
		handleError(c, apperrors.ErrForbidden)
		return
	}

	questionnaireID := c.MustGet("questionnaireID").(uuid.UUID)
	questionID := c.MustGet("questionID").(uuid.UUID)

	var input service.QuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(http.StatusBadRequest, err.Error()))
		return
	}

	question, err := h.questionService.UpdateQuestion(questionnaireID, questionID, input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.NewQuestionResponse(question)))
}

// DeleteQuestion обрабатывает запрос на удаление вопроса.
// Вопрос с существующими ответами удалить нельзя.
// DELETE /api/questions/:qid
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	if !h.policy.CanManageStructure(callerIdentity(c)) {
		handleError(c, apperrors.ErrForbidden)
		return
	}

	questionID := c.MustGet("questionID").(uuid.UUID)

	if err := h.questionService.DeleteQuestion(questionID); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKMessage("Question deleted successfully"))
}

// GetQuestions возвращает вопросы анкеты по порядку отображения
// GET /api/questionnaires/:id/questions
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	questionnaireID := c.MustGet("questionnaireID").(uuid.UUID)

	questions, err := h.questionService.GetQuestionsByQuestionnaire(questionnaireID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.NewListQuestionResponse(questions)))
}

// ListQuestionTypes возвращает активные типы вопросов
// GET /api/question-types
func (h *QuestionHandler) ListQuestionTypes(c *gin.Context) {
	types, err := h.questionService.ListQuestionTypes()
	if err != nil {
		handleError(c, err)
		return
	}

	list := make([]dto.QuestionTypeResponse, len(types))
	for i := range types {
		list[i] = dto.NewQuestionTypeResponse(&types[i])
	}

	c.JSON(http.StatusOK, dto.OK(list))
}
