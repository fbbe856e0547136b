package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuestionOptionResponse связывает ответ на вопрос с одним выбранным
// вариантом. Вариант обязан принадлежать тому же вопросу, что и ответ.
type QuestionOptionResponse struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionResponseID uuid.UUID `gorm:"type:uuid;not null;index" json:"question_response_id"`
	OptionID           uuid.UUID `gorm:"type:uuid;not null;index" json:"option_id"`

	// CustomText — свободный текст для вариантов вида "другое, уточните"
	CustomText *string `gorm:"size:500" json:"custom_text,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (QuestionOptionResponse) TableName() string {
	return "question_option_responses"
}

// BeforeCreate генерирует суррогатный UUID, если он не задан
func (r *QuestionOptionResponse) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
