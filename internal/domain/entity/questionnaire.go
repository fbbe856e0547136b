package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Questionnaire представляет анкету — упорядоченный набор вопросов,
// привязанный 1:1 к одной категории. Уникальность пары категория↔анкета
// обеспечивается на уровне сервиса, а не схемы.
type Questionnaire struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CategoryID   uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description,omitempty"`
	IsMandatory  bool      `gorm:"not null;default:false" json:"is_mandatory"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`

	// Version монотонно увеличивается при каждом структурном изменении
	// (создание/изменение/удаление вопросов, замена списка вопросов).
	Version int `gorm:"not null;default:1" json:"version"`

	// Вопросы анкеты, упорядоченные по display_order
	Questions []Question `gorm:"foreignKey:QuestionnaireID" json:"questions,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName определяет имя таблицы для GORM
func (Questionnaire) TableName() string {
	return "questionnaires"
}

// BeforeCreate генерирует суррогатный UUID, если он не задан
func (q *Questionnaire) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// QuestionByID возвращает вопрос анкеты по его идентификатору
func (q *Questionnaire) QuestionByID(id uuid.UUID) *Question {
	for i := range q.Questions {
		if q.Questions[i].ID == id {
			return &q.Questions[i]
		}
	}
	return nil
}

// RequiredQuestions возвращает обязательные вопросы анкеты
func (q *Questionnaire) RequiredQuestions() []Question {
	var required []Question
	for _, question := range q.Questions {
		if question.IsRequired {
			required = append(required, question)
		}
	}
	return required
}
