package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/questionnaire-api/internal/handler/dto"
	apperrors "github.com/yourusername/questionnaire-api/internal/pkg/errors"
	"github.com/yourusername/questionnaire-api/internal/service"
)

// QuestionnaireHandler обрабатывает запросы, связанные с анкетами
type QuestionnaireHandler struct {
	questionnaireService *service.QuestionnaireService
	policy               service.AuthorizationPolicy
}

// NewQuestionnaireHandler создает новый обработчик анкет
func NewQuestionnaireHandler(
	questionnaireService *service.QuestionnaireService,
	policy service.AuthorizationPolicy,
) *QuestionnaireHandler {
	return &QuestionnaireHandler{
		questionnaireService: questionnaireService,
		policy:               policy,
	}
}

// callerIdentity извлекает личность вызывающего из контекста запроса
func callerIdentity(c *gin.Context) service.CallerIdentity {
	return c.MustGet("caller").(service.CallerIdentity)
}

// paginationParams извлекает параметры пагинации из query
func paginationParams(c *gin.Context) (page, pageSize int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err = strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}

// CreateQuestionnaire обрабатывает запрос на создание анкеты
// POST /api/questionnaires
func (h *QuestionnaireHandler) CreateQuestionnaire(c *gin.Context) {
	if !h.policy.CanManageStructure(callerIdentity(c)) {
		handleError(c, apperrors.ErrForbidden)
		return
	}

	var input service.QuestionnaireInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(http.StatusBadRequest, err.Error()))
		return
	}

	questionnaire, err := h.questionnaireService.CreateQuestionnaire(input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.NewQuestionnaireResponse(questionnaire, true)))
}

// GetQuestionnaire возвращает анкету с живым определением вопросов
// GET /api/questionnaires/:id
func (h *QuestionnaireHandler) GetQuestionnaire(c *gin.Context) {
	questionnaireID := c.MustGet("questionnaireID").(uuid.UUID)

	questionnaire, err := h.questionnaireService.GetQuestionnaireByID(questionnaireID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.NewQuestionnaireResponse(questionnaire, true)))
}

// ListQuestionnaires возвращает список анкет с пагинацией;
// с параметром category_id возвращает анкету указанной категории
// GET /api/questionnaires?category_id=&page=&page_size=
func (h *QuestionnaireHandler) ListQuestionnaires(c *gin.Context) {
	if categoryStr := c.Query("category_id"); categoryStr != "" {
		categoryID, err := uuid.Parse(categoryStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Fail(http.StatusBadRequest, "invalid category_id"))
			return
		}

		questionnaire, err := h.questionnaireService.GetQuestionnaireByCategory(categoryID)
		if err != nil {
			handleError(c, err)
			return
		}

		c.JSON(http.StatusOK, dto.OK(dto.NewQuestionnaireResponse(questionnaire, true)))
		return
	}

	page, pageSize := paginationParams(c)
	questionnaires, total, err := h.questionnaireService.ListQuestionnaires(page, pageSize)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.NewPaginatedQuestionnaireResponse(questionnaires, total, page, pageSize)))
}

// UpdateQuestionnaire обрабатывает запрос на изменение анкеты.
// Метаданные обновляются всегда; присланный список вопросов целиком
// заменяет существующий.
// PUT /api/questionnaires/:id
func (h *QuestionnaireHandler) UpdateQuestionnaire(c *gin.Context) {
	if !h.policy.CanManageStructure(callerIdentity(c)) {
		handleError(c, apperrors.ErrForbidden)
		return
	}

	questionnaireID := c.MustGet("questionnaireID").(uuid.UUID)

	var input service.QuestionnaireInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(http.StatusBadRequest, err.Error()))
		return
	}

	questionnaire, err := h.questionnaireService.UpdateQuestionnaire(questionnaireID, input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.NewQuestionnaireResponse(questionnaire, true)))
}

// DeleteQuestionnaire обрабатывает запрос на мягкое удаление анкеты
// DELETE /api/questionnaires/:id
func (h *QuestionnaireHandler) DeleteQuestionnaire(c *gin.Context) {
	if !h.policy.CanManageStructure(callerIdentity(c)) {
		handleError(c, apperrors.ErrForbidden)
		return
	}

	questionnaireID := c.MustGet("questionnaireID").(uuid.UUID)

	if err := h.questionnaireService.DeleteQuestionnaire(questionnaireID); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKMessage("Questionnaire deleted successfully"))
}

// handleError отображает ошибки сервисов в единый конверт ответа.
// Ошибки валидации и конфликты — данные для клиента (400), настоящая
// 500 остается только за неожиданными сбоями.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.Fail(http.StatusNotFound, err.Error()))
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.Fail(http.StatusForbidden, err.Error()))
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.Fail(http.StatusBadRequest, err.Error()))
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusBadRequest, dto.Fail(http.StatusBadRequest, err.Error()))
	default:
		log.Printf("ERROR: Internal server error: %v", err)
		c.JSON(http.StatusInternalServerError, dto.Fail(http.StatusInternalServerError, "Internal server error"))
	}
}
