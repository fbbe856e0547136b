package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/questionnaire-api/internal/domain/entity"
)

// SelectedOptionResponse представляет выбранный вариант внутри ответа
type SelectedOptionResponse struct {
	ID         uuid.UUID `json:"id"`
	OptionID   uuid.UUID `json:"option_id"`
	CustomText *string   `json:"custom_text,omitempty"`
}

// AnswerRecordResponse представляет ответ на один вопрос внутри отправки.
// Заполненные слоты отдаются как есть, без интерпретации.
type AnswerRecordResponse struct {
	ID               uuid.UUID                `json:"id"`
	QuestionID       uuid.UUID                `json:"question_id"`
	TextResponse     *string                  `json:"text_response,omitempty"`
	NumberResponse   *float64                 `json:"number_response,omitempty"`
	DateResponse     *time.Time               `json:"date_response,omitempty"`
	DatetimeResponse *time.Time               `json:"datetime_response,omitempty"`
	BooleanResponse  *bool                    `json:"boolean_response,omitempty"`
	FilePath         *string                  `json:"file_path,omitempty"`
	FileName         *string                  `json:"file_name,omitempty"`
	FileSize         *int64                   `json:"file_size,omitempty"`
	FileType         *string                  `json:"file_type,omitempty"`
	SelectedOptions  []SelectedOptionResponse `json:"selected_options,omitempty"`
}

// SubmissionResponse представляет одну полную отправку анкеты
type SubmissionResponse struct {
	ID              uuid.UUID              `json:"id"`
	UserID          uuid.UUID              `json:"user_id"`
	QuestionnaireID uuid.UUID              `json:"questionnaire_id"`
	StartedAt       time.Time              `json:"started_at"`
	CompletedAt     *time.Time             `json:"completed_at,omitempty"`
	IsCompleted     bool                   `json:"is_completed"`
	IsDraft         bool                   `json:"is_draft"`
	TimeTaken       int                    `json:"time_taken"`
	Responses       []AnswerRecordResponse `json:"responses,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
}

// ValidationResultResponse представляет результат сухого прогона валидации
type ValidationResultResponse struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors,omitempty"`
}

// PaginatedSubmissionResponse представляет пагинированный список отправок
type PaginatedSubmissionResponse struct {
	Responses []*SubmissionResponse `json:"responses"`
	Total     int64                 `json:"total"`
	Page      int                   `json:"page"`
	PerPage   int                   `json:"per_page"`
}

// NewAnswerRecordResponse создает DTO для ответа на один вопрос
func NewAnswerRecordResponse(r *entity.QuestionResponse) AnswerRecordResponse {
	selected := make([]SelectedOptionResponse, len(r.OptionResponses))
	for i, opt := range r.OptionResponses {
		selected[i] = SelectedOptionResponse{
			ID:         opt.ID,
			OptionID:   opt.OptionID,
			CustomText: opt.CustomText,
		}
	}

	return AnswerRecordResponse{
		ID:               r.ID,
		QuestionID:       r.QuestionID,
		TextResponse:     r.TextResponse,
		NumberResponse:   r.NumberResponse,
		DateResponse:     r.DateResponse,
		DatetimeResponse: r.DatetimeResponse,
		BooleanResponse:  r.BooleanResponse,
		FilePath:         r.FilePath,
		FileName:         r.FileName,
		FileSize:         r.FileSize,
		FileType:         r.FileType,
		SelectedOptions:  selected,
	}
}

// NewSubmissionResponse создает DTO для отправки анкеты
func NewSubmissionResponse(response *entity.UserQuestionResponse) *SubmissionResponse {
	if response == nil {
		return nil
	}

	answers := make([]AnswerRecordResponse, len(response.Responses))
	for i := range response.Responses {
		answers[i] = NewAnswerRecordResponse(&response.Responses[i])
	}

	return &SubmissionResponse{
		ID:              response.ID,
		UserID:          response.UserID,
		QuestionnaireID: response.QuestionnaireID,
		StartedAt:       response.StartedAt,
		CompletedAt:     response.CompletedAt,
		IsCompleted:     response.IsCompleted,
		IsDraft:         response.IsDraft,
		TimeTaken:       response.TimeTaken,
		Responses:       answers,
		CreatedAt:       response.CreatedAt,
	}
}

// NewPaginatedSubmissionResponse создает DTO для пагинированного списка отправок
func NewPaginatedSubmissionResponse(responses []entity.UserQuestionResponse, total int64, page, perPage int) *PaginatedSubmissionResponse {
	list := make([]*SubmissionResponse, len(responses))
	for i := range responses {
		list[i] = NewSubmissionResponse(&responses[i])
	}
	return &PaginatedSubmissionResponse{
		Responses: list,
		Total:     total,
		Page:      page,
		PerPage:   perPage,
	}
}

// NewListSubmissionResponse создает слайс DTO для списка отправок
func NewListSubmissionResponse(responses []entity.UserQuestionResponse) []*SubmissionResponse {
	list := make([]*SubmissionResponse, len(responses))
	for i := range responses {
		list[i] = NewSubmissionResponse(&responses[i])
	}
	return list
}
