package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserQuestionResponse представляет одну полную отправку анкеты пользователем.
// Агрегат создается один раз при отправке и после этого не изменяется:
// повторная отправка — это новый агрегат.
type UserQuestionResponse struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	QuestionnaireID uuid.UUID `gorm:"type:uuid;not null;index" json:"questionnaire_id"`

	StartedAt   time.Time  `gorm:"not null" json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	IsCompleted bool       `gorm:"not null;default:false" json:"is_completed"`
	IsDraft     bool       `gorm:"not null;default:false" json:"is_draft"`

	// TimeTaken — затраченное время в секундах, как сообщил клиент
	TimeTaken int `gorm:"not null;default:0" json:"time_taken"`

	Responses []QuestionResponse `gorm:"foreignKey:UserQuestionResponseID" json:"responses,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (UserQuestionResponse) TableName() string {
	return "user_question_responses"
}

// BeforeCreate генерирует суррогатный UUID, если он не задан
func (r *UserQuestionResponse) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
