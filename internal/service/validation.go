package service

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/questionnaire-api/internal/domain/entity"
)

// SubmittedAnswer — один присланный ответ. Вызывающий может прислать
// слабо типизированный JSON, поэтому значение принимается и из
// типизированного поля, и из строкового фолбэка TextResponse —
// неоднозначность примиряет entity.ResolveAnswer, исходя из типа вопроса.
type SubmittedAnswer struct {
	QuestionID        uuid.UUID   `json:"question_id"`
	TextResponse      *string     `json:"text_response,omitempty"`
	NumberResponse    *float64    `json:"number_response,omitempty"`
	DateResponse      *time.Time  `json:"date_response,omitempty"`
	FileURL           *string     `json:"file_url,omitempty"`
	SelectedOptionIDs []uuid.UUID `json:"selected_option_ids,omitempty"`
}

// text возвращает строковый фолбэк ответа
func (a SubmittedAnswer) text() string {
	if a.TextResponse == nil {
		return ""
	}
	return *a.TextResponse
}

// HasValue сообщает, заполнено ли хоть одно физическое поле ответа
func (a SubmittedAnswer) HasValue() bool {
	if a.TextResponse != nil && *a.TextResponse != "" {
		return true
	}
	if a.NumberResponse != nil {
		return true
	}
	if a.DateResponse != nil {
		return true
	}
	if a.FileURL != nil && *a.FileURL != "" {
		return true
	}
	return len(a.SelectedOptionIDs) > 0
}

// ValidationResult — результат сухого прогона валидации
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors,omitempty"`
}

// Validator — движок валидации ответов. Сверяет присланный набор ответов
// с живыми определениями вопросов анкеты и накапливает ВСЕ нарушения,
// никогда не прерываясь на первом: вызывающий должен исправить все
// проблемы за один круг.
type Validator struct {
	// Now внедряется для проверки "дата не в будущем"; в тестах подменяется
	Now func() time.Time
}

// NewValidator создает движок валидации
func NewValidator() *Validator {
	return &Validator{Now: time.Now}
}

// Validate возвращает список человекочитаемых нарушений (пустой при успехе).
// Частичного успеха нет: одно нарушение проваливает всю отправку.
func (v *Validator) Validate(questions []entity.Question, answers []SubmittedAnswer) []string {
	var errs []string

	answered := make(map[uuid.UUID]bool, len(answers))

	byID := make(map[uuid.UUID]*entity.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	for _, answer := range answers {
		question, ok := byID[answer.QuestionID]
		if !ok {
			// Неразрешимый вопрос фиксируется, обработка продолжается
			errs = append(errs, fmt.Sprintf("submitted answer references unknown question %s", answer.QuestionID))
			continue
		}
		answered[question.ID] = true

		if !answer.HasValue() {
			if question.IsRequired {
				errs = append(errs, fmt.Sprintf("Question '%s' is required", question.QuestionText))
			}
			// Необязательный вопрос без значения дальше не проверяется
			continue
		}

		errs = append(errs, v.checkAnswer(question, answer)...)
	}

	// Обязательные вопросы, вовсе отсутствующие в отправке, — одним
	// сводным сообщением со всеми текстами вопросов
	var missing []string
	for i := range questions {
		if questions[i].IsRequired && !answered[questions[i].ID] {
			missing = append(missing, questions[i].QuestionText)
		}
	}
	if len(missing) > 0 {
		errs = append(errs, fmt.Sprintf("Required questions not answered: %s", strings.Join(missing, ", ")))
	}

	return errs
}

// checkAnswer выполняет проверки, специфичные для типа вопроса.
// Диспетчеризация идет по имени типа без учета регистра; форма значения
// выводится из типа вопроса, а не из того, какие поля прислал клиент.
func (v *Validator) checkAnswer(question *entity.Question, answer SubmittedAnswer) []string {
	var errs []string

	typeName := question.TypeName()
	text := answer.text()

	switch typeName {
	case entity.TypeEmail:
		if text != "" {
			if _, err := mail.ParseAddress(text); err != nil {
				errs = append(errs, fmt.Sprintf("Invalid email format for question '%s'", question.QuestionText))
			}
		}

	case entity.TypeNumber:
		value, ok := answer.resolve(typeName)
		if !ok {
			errs = append(errs, fmt.Sprintf("Invalid numeric value for question '%s'", question.QuestionText))
		} else if value.Number < 0 {
			errs = append(errs, fmt.Sprintf("Value for question '%s' must not be negative", question.QuestionText))
		}

	case entity.TypeRating:
		value, ok := answer.resolve(typeName)
		if !ok {
			errs = append(errs, fmt.Sprintf("Invalid rating value for question '%s'", question.QuestionText))
		} else if value.Number < 1 || value.Number > 5 {
			errs = append(errs, fmt.Sprintf("Rating for question '%s' must be between 1 and 5", question.QuestionText))
		}

	case entity.TypeDate:
		value, ok := answer.resolve(typeName)
		if !ok {
			errs = append(errs, fmt.Sprintf("Invalid date format for question '%s'", question.QuestionText))
		} else if value.Date.After(v.Now().UTC()) {
			errs = append(errs, fmt.Sprintf("Date for question '%s' must not be in the future", question.QuestionText))
		}

	case entity.TypeCheckbox:
		// Обязательный чекбокс требует выбранных вариантов, если вместо
		// них не прислан свободный текст
		if question.IsRequired && len(answer.SelectedOptionIDs) == 0 && text == "" {
			errs = append(errs, fmt.Sprintf("Question '%s' requires at least one selected option", question.QuestionText))
		}

	case entity.TypeFile:
		if _, ok := answer.resolve(typeName); !ok {
			errs = append(errs, fmt.Sprintf("File is required for question '%s'", question.QuestionText))
		}
	}

	// Выбранные варианты обязаны принадлежать этому же вопросу
	for _, optionID := range answer.SelectedOptionIDs {
		if question.OptionByID(optionID) == nil {
			errs = append(errs, fmt.Sprintf("Option %s does not belong to question '%s'", optionID, question.QuestionText))
		}
	}

	return errs
}

// resolve сводит присланные поля к размеченному объединению по типу вопроса.
// Единая точка диспетчеризации формы значения: и типизированные поля,
// и строковый фолбэк примиряются в entity.ResolveAnswer.
func (a SubmittedAnswer) resolve(typeName string) (entity.Answer, bool) {
	return entity.ResolveAnswer(typeName, a.TextResponse, a.NumberResponse, a.DateResponse, a.FileURL, a.SelectedOptionIDs)
}
