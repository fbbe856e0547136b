package handler

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/questionnaire-api/internal/domain/entity"
	"github.com/yourusername/questionnaire-api/internal/handler/dto"
	"github.com/yourusername/questionnaire-api/internal/handler/helper"
	"github.com/yourusername/questionnaire-api/internal/service"
)

// ResponseHandler обрабатывает запросы, связанные с отправками анкет
type ResponseHandler struct {
	responseService      *service.ResponseService
	questionnaireService *service.QuestionnaireService
}

// NewResponseHandler создает новый обработчик отправок
func NewResponseHandler(
	responseService *service.ResponseService,
	questionnaireService *service.QuestionnaireService,
) *ResponseHandler {
	return &ResponseHandler{
		responseService:      responseService,
		questionnaireService: questionnaireService,
	}
}

// SubmitRequest представляет запрос на отправку ответов анкеты
type SubmitRequest struct {
	Answers   []service.SubmittedAnswer `json:"answers" binding:"required"`
	TimeTaken int                       `json:"time_taken"`
}

// SubmitResponse обрабатывает отправку ответов анкеты.
// Ошибки валидации возвращаются как данные (400), а не как сбой сервера.
// POST /api/questionnaires/:id/responses
func (h *ResponseHandler) SubmitResponse(c *gin.Context) {
	questionnaireID := c.MustGet("questionnaireID").(uuid.UUID)

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(http.StatusBadRequest, err.Error()))
		return
	}

	response, err := h.responseService.SubmitResponse(callerIdentity(c), questionnaireID, req.Answers, req.TimeTaken)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.NewSubmissionResponse(response)))
}

// ValidateRequest представляет запрос на сухой прогон валидации
type ValidateRequest struct {
	Answers []service.SubmittedAnswer `json:"answers" binding:"required"`
}

// ValidateResponse — сухой прогон валидации без сохранения
// POST /api/questionnaires/:id/responses/validate
func (h *ResponseHandler) ValidateResponse(c *gin.Context) {
	questionnaireID := c.MustGet("questionnaireID").(uuid.UUID)

	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(http.StatusBadRequest, err.Error()))
		return
	}

	result, err := h.responseService.ValidateResponse(questionnaireID, req.Answers)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ValidationResultResponse{
		IsValid: result.IsValid,
		Errors:  result.Errors,
	}))
}

// GetResponse возвращает отправку по идентификатору
// GET /api/responses/:id
func (h *ResponseHandler) GetResponse(c *gin.Context) {
	responseID := c.MustGet("responseID").(uuid.UUID)

	response, err := h.responseService.GetResponseByID(callerIdentity(c), responseID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.NewSubmissionResponse(response)))
}

// GetResponsesByQuestionnaire возвращает пагинированные отправки анкеты
// GET /api/questionnaires/:id/responses
func (h *ResponseHandler) GetResponsesByQuestionnaire(c *gin.Context) {
	questionnaireID := c.MustGet("questionnaireID").(uuid.UUID)
	page, pageSize := paginationParams(c)

	responses, total, err := h.responseService.GetResponsesByQuestionnaire(callerIdentity(c), questionnaireID, page, pageSize)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.NewPaginatedSubmissionResponse(responses, total, page, pageSize)))
}

// GetMyResponses возвращает отправки самого вызывающего
// GET /api/users/me/responses
func (h *ResponseHandler) GetMyResponses(c *gin.Context) {
	responses, err := h.responseService.GetUserResponses(callerIdentity(c))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.NewListSubmissionResponse(responses)))
}

// ExportResponses экспортирует все отправки анкеты в Excel
// GET /api/questionnaires/:id/responses/export
func (h *ResponseHandler) ExportResponses(c *gin.Context) {
	questionnaireID := c.MustGet("questionnaireID").(uuid.UUID)
	caller := callerIdentity(c)

	responses, err := h.responseService.GetAllResponsesByQuestionnaire(caller, questionnaireID)
	if err != nil {
		handleError(c, err)
		return
	}

	// Определение анкеты нужно для колонок и меток вариантов
	questionnaire, err := h.questionnaireService.GetQuestionnaireByID(questionnaireID)
	if err != nil {
		handleError(c, err)
		return
	}

	filename := fmt.Sprintf("questionnaire_%s_responses_%s", questionnaireID, time.Now().Format("2006-01-02"))
	h.exportXLSX(c, questionnaire, responses, filename)
}

// exportXLSX пишет отправки в Excel через StreamWriter:
// строка на отправку, колонка на вопрос по порядку отображения
func (h *ResponseHandler) exportXLSX(c *gin.Context, questionnaire *entity.Questionnaire, responses []entity.UserQuestionResponse, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Responses"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[ResponseHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, dto.Fail(http.StatusInternalServerError, "Failed to create Excel file"))
		return
	}

	// Заголовки вложения ставятся только после успешного создания writer,
	// чтобы JSON-ошибка не уходила с заголовками таблицы
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	labels := helper.BuildOptionLabelIndex(questionnaire)

	headers := []interface{}{"Response ID", "User ID", "Started At", "Completed At", "Time Taken (s)"}
	for _, question := range questionnaire.Questions {
		headers = append(headers, sanitizeForExcel(question.QuestionText))
	}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[ResponseHandler] Ошибка записи заголовков: %v", err)
	}

	for i, response := range responses {
		rowNum := i + 2
		cell := fmt.Sprintf("A%d", rowNum)

		completedAt := ""
		if response.CompletedAt != nil {
			completedAt = response.CompletedAt.Format(time.RFC3339)
		}

		// Ответы индексируются по вопросу, чтобы колонки совпадали
		// с порядком определения
		byQuestion := make(map[uuid.UUID]*entity.QuestionResponse, len(response.Responses))
		for j := range response.Responses {
			byQuestion[response.Responses[j].QuestionID] = &response.Responses[j]
		}

		row := []interface{}{
			response.ID.String(),
			response.UserID.String(),
			response.StartedAt.Format(time.RFC3339),
			completedAt,
			response.TimeTaken,
		}
		for _, question := range questionnaire.Questions {
			value := ""
			if record, ok := byQuestion[question.ID]; ok {
				answer := record.AnswerValue(question.TypeName())
				value = answer.Render(labels.Resolve)
			}
			row = append(row, sanitizeForExcel(value))
		}

		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[ResponseHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[ResponseHandler] Ошибка при Flush: %v", err)
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[ResponseHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
