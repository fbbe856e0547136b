package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Имена поддерживаемых типов вопросов.
// TypeName используется как ключ диспетчеризации при валидации ответов,
// сравнение всегда регистронезависимое.
const (
	TypeText        = "text"
	TypeTextarea    = "textarea"
	TypeNumber      = "number"
	TypeDate        = "date"
	TypeEmail       = "email"
	TypeRadio       = "radio"
	TypeCheckbox    = "checkbox"
	TypeSelect      = "select"
	TypeMultiselect = "multiselect"
	TypeFile        = "file"
	TypeRating      = "rating"
)

// QuestionType представляет справочную запись о форме ответа на вопрос.
// Запись неизменяема после того, как на нее сослался хотя бы один вопрос,
// за исключением переключения IsActive.
type QuestionType struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TypeName           string    `gorm:"size:50;not null;uniqueIndex" json:"type_name"`
	HasOptions         bool      `gorm:"not null;default:false" json:"has_options"`
	SupportsFileUpload bool      `gorm:"not null;default:false" json:"supports_file_upload"`
	SupportsImage      bool      `gorm:"not null;default:false" json:"supports_image"`
	IsActive           bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (QuestionType) TableName() string {
	return "question_types"
}

// BeforeCreate генерирует суррогатный UUID, если он не задан
func (t *QuestionType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// NormalizeTypeName приводит имя типа к канонической форме для диспетчеризации
func NormalizeTypeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// IsSingleSelect сообщает, допускает ли тип не более одного правильного варианта.
// Для radio среди вариантов вопроса может быть не более одного IsCorrect=true.
func (t *QuestionType) IsSingleSelect() bool {
	return NormalizeTypeName(t.TypeName) == TypeRadio
}
