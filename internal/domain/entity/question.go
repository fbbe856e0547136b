package entity

import (
	"database/sql/driver"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONText - пользовательский тип для непрозрачных JSONB-блобов.
// Ядро хранит и возвращает условную логику и правила валидации
// как есть, никогда их не интерпретируя.
type JSONText string

// Scan реализует интерфейс sql.Scanner для JSONText
// Используется GORM для чтения JSONB данных из базы
func (j *JSONText) Scan(value interface{}) error {
	if value == nil {
		*j = ""
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*j = JSONText(v)
	case string:
		*j = JSONText(v)
	default:
		return errors.New("failed to scan JSONB value: expected []byte or string")
	}
	return nil
}

// Value реализует интерфейс driver.Valuer для JSONText
// Используется GORM для записи JSONText в JSONB в базе
func (j JSONText) Value() (driver.Value, error) {
	if j == "" {
		return nil, nil
	}
	return string(j), nil
}

// Question представляет вопрос анкеты
type Question struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionnaireID uuid.UUID `gorm:"type:uuid;not null;index" json:"questionnaire_id"`
	QuestionText    string    `gorm:"size:1000;not null" json:"question_text"`
	QuestionTypeID  uuid.UUID `gorm:"type:uuid;not null" json:"question_type_id"`
	IsRequired      bool      `gorm:"not null;default:false" json:"is_required"`

	// DisplayOrder уникален среди вопросов одной анкеты;
	// при пропуске назначается как max(существующих)+1
	DisplayOrder int `gorm:"not null" json:"display_order"`

	MinLength *int     `json:"min_length,omitempty"`
	MaxLength *int     `json:"max_length,omitempty"`
	MinValue  *float64 `json:"min_value,omitempty"`
	MaxValue  *float64 `json:"max_value,omitempty"`

	Section  string `gorm:"size:255" json:"section,omitempty"`
	HelpText string `gorm:"size:500" json:"help_text,omitempty"`

	// Непрозрачные блобы: хранятся, отдаются клиенту, ядром не интерпретируются
	ConditionalLogic JSONText `gorm:"type:jsonb" json:"conditional_logic,omitempty"`
	ValidationRules  JSONText `gorm:"type:jsonb" json:"validation_rules,omitempty"`

	QuestionType QuestionType `gorm:"foreignKey:QuestionTypeID" json:"question_type"`
	Options      []Option     `gorm:"foreignKey:QuestionID" json:"options,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// BeforeCreate генерирует суррогатный UUID, если он не задан
func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// TypeName возвращает каноническое имя типа вопроса
func (q *Question) TypeName() string {
	return NormalizeTypeName(q.QuestionType.TypeName)
}

// HasOptions сообщает, требует ли тип вопроса набор вариантов ответа
func (q *Question) HasOptions() bool {
	return q.QuestionType.HasOptions
}

// OptionByID возвращает вариант ответа вопроса по его идентификатору
func (q *Question) OptionByID(id uuid.UUID) *Option {
	for i := range q.Options {
		if q.Options[i].ID == id {
			return &q.Options[i]
		}
	}
	return nil
}
