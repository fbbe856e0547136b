package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Option представляет один вариант ответа вопроса.
// DisplayOrder вариантов одного вопроса образует непрерывную
// последовательность 1..N без пропусков и дубликатов.
type Option struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`

	// OptionText — отображаемый текст, уникален в пределах вопроса
	OptionText string `gorm:"size:500;not null" json:"option_text"`

	// OptionValue — машинное значение, уникально в пределах вопроса;
	// используется для обнаружения дубликатов независимо от текста
	OptionValue string `gorm:"size:255;not null" json:"option_value"`

	DisplayOrder int  `gorm:"not null" json:"display_order"`
	IsCorrect    bool `gorm:"not null;default:false" json:"is_correct"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Option) TableName() string {
	return "question_options"
}

// BeforeCreate генерирует суррогатный UUID, если он не задан
func (o *Option) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
