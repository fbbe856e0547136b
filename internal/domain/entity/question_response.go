package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuestionResponse представляет ответ на один вопрос внутри отправки анкеты.
// Из физических слотов (текст/число/дата/булево/файл) заполнен не более
// чем один; какой именно — определяется типом вопроса на момент отправки,
// а не тем, что объявил клиент.
type QuestionResponse struct {
	ID                     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserQuestionResponseID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_question_response_id"`
	QuestionID             uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`

	TextResponse     *string    `gorm:"type:text" json:"text_response,omitempty"`
	NumberResponse   *float64   `json:"number_response,omitempty"`
	DateResponse     *time.Time `json:"date_response,omitempty"`
	DatetimeResponse *time.Time `json:"datetime_response,omitempty"`
	BooleanResponse  *bool      `json:"boolean_response,omitempty"`

	FilePath *string `gorm:"size:1000" json:"file_path,omitempty"`
	FileName *string `gorm:"size:255" json:"file_name,omitempty"`
	FileSize *int64  `json:"file_size,omitempty"`
	FileType *string `gorm:"size:50" json:"file_type,omitempty"`

	OptionResponses []QuestionOptionResponse `gorm:"foreignKey:QuestionResponseID" json:"option_responses,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (QuestionResponse) TableName() string {
	return "question_responses"
}

// BeforeCreate генерирует суррогатный UUID, если он не задан
func (r *QuestionResponse) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// AnswerValue восстанавливает размеченное значение ответа из физических
// слотов записи. Активный слот выбирается по типу вопроса — та же
// диспетчеризация, что и при записи, так что чтение не гадает по
// nullable-колонкам.
func (r *QuestionResponse) AnswerValue(typeName string) Answer {
	switch KindForType(typeName) {
	case AnswerText:
		if r.TextResponse != nil {
			return Answer{Kind: AnswerText, Text: *r.TextResponse}
		}
	case AnswerNumber:
		if r.NumberResponse != nil {
			return Answer{Kind: AnswerNumber, Number: *r.NumberResponse}
		}
		if r.TextResponse != nil {
			if v, ok := ParseNumberText(*r.TextResponse); ok {
				return Answer{Kind: AnswerNumber, Number: v}
			}
		}
	case AnswerDate:
		if r.DateResponse != nil {
			return Answer{Kind: AnswerDate, Date: *r.DateResponse}
		}
		if r.DatetimeResponse != nil {
			return Answer{Kind: AnswerDate, Date: *r.DatetimeResponse}
		}
	case AnswerFile:
		if r.FilePath != nil {
			file := FileRef{URL: *r.FilePath}
			if r.FileName != nil {
				file.Name = *r.FileName
			}
			if r.FileType != nil {
				file.Type = *r.FileType
			}
			if r.FileSize != nil {
				file.Size = *r.FileSize
			}
			return Answer{Kind: AnswerFile, File: file}
		}
	case AnswerOptions:
		if len(r.OptionResponses) > 0 {
			ids := make([]uuid.UUID, 0, len(r.OptionResponses))
			for _, opt := range r.OptionResponses {
				ids = append(ids, opt.OptionID)
			}
			return Answer{Kind: AnswerOptions, OptionIDs: ids}
		}
		// Свободный текст как запасной путь "другое, уточните"
		if r.TextResponse != nil && *r.TextResponse != "" {
			return Answer{Kind: AnswerText, Text: *r.TextResponse}
		}
	}
	return Answer{Kind: AnswerNone}
}

// DeriveBoolean возвращает булево значение из свободного текста "yes"/"no"
// без учета регистра. Это эвристика для удобства чтения, а не правило
// валидации: любое другое значение (например, "maybe") дает nil, не ошибку.
func DeriveBoolean(text string) *bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "yes":
		v := true
		return &v
	case "no":
		v := false
		return &v
	}
	return nil
}

// SplitFileURL выводит имя и расширение файла из его URL:
// имя — последний сегмент после '/', тип — последний сегмент после '.'.
func SplitFileURL(fileURL string) (name string, fileType string) {
	if fileURL == "" {
		return "", ""
	}
	name = fileURL
	if idx := strings.LastIndex(fileURL, "/"); idx >= 0 && idx+1 < len(fileURL) {
		name = fileURL[idx+1:]
	}
	if idx := strings.LastIndex(name, "."); idx >= 0 && idx+1 < len(name) {
		fileType = name[idx+1:]
	}
	return name, fileType
}
