package service

import (
	"fmt"
	"sort"

	"github.com/yourusername/questionnaire-api/internal/domain/entity"
)

// OptionInput — вариант ответа в команде создания/изменения вопроса
type OptionInput struct {
	OptionText   string `json:"option_text"`
	OptionValue  string `json:"option_value"`
	DisplayOrder int    `json:"display_order"`
	IsCorrect    bool   `json:"is_correct"`
}

// optionTransition — действие над набором вариантов при смене типа вопроса.
// Четыре квадранта пары (старый тип с вариантами, новый тип с вариантами)
// выписаны явно, чтобы поведение оставалось исчерпывающим и проверяемым.
type optionTransition int

const (
	// replaceIfSupplied: варианты→варианты — существующий набор заменяется
	// присланным, если он прислан; без присланного набора не трогается
	replaceIfSupplied optionTransition = iota
	// clearOptions: варианты→без вариантов — все варианты жестко удаляются
	clearOptions
	// requireNewOptions: без вариантов→варианты — новый набор обязателен
	// и валидируется как при создании
	requireNewOptions
	// noOptionChange: без вариантов→без вариантов — вариантов нет и не будет
	noOptionChange
)

// transitionFor возвращает действие для пары (старый HasOptions, новый HasOptions)
func transitionFor(oldHasOptions, newHasOptions bool) optionTransition {
	switch {
	case oldHasOptions && newHasOptions:
		return replaceIfSupplied
	case oldHasOptions && !newHasOptions:
		return clearOptions
	case !oldHasOptions && newHasOptions:
		return requireNewOptions
	default:
		return noOptionChange
	}
}

// validateOptionSet проверяет набор вариантов против правил типа вопроса
// и возвращает все найденные нарушения. Порядок отображения обязан быть
// ровно множеством {1..N}; сообщения называют конкретные плохие значения,
// чтобы вызывающий исправил все за один запрос.
func validateOptionSet(questionType *entity.QuestionType, options []OptionInput) []string {
	var errs []string

	if !questionType.HasOptions {
		if len(options) > 0 {
			errs = append(errs, fmt.Sprintf("question type '%s' does not allow options", questionType.TypeName))
		}
		return errs
	}

	if len(options) == 0 {
		errs = append(errs, fmt.Sprintf("question type '%s' requires at least one option", questionType.TypeName))
		return errs
	}

	// Проверка непрерывности порядка: множество display_order == {1..N}
	counts := make(map[int]int, len(options))
	for _, opt := range options {
		counts[opt.DisplayOrder]++
	}

	var duplicates, missing []int
	for order, n := range counts {
		if n > 1 {
			duplicates = append(duplicates, order)
		}
	}
	for order := 1; order <= len(options); order++ {
		if counts[order] == 0 {
			missing = append(missing, order)
		}
	}
	sort.Ints(duplicates)
	sort.Ints(missing)

	if len(duplicates) > 0 {
		errs = append(errs, fmt.Sprintf("duplicate option display orders: %v", duplicates))
	}
	if len(missing) > 0 {
		errs = append(errs, fmt.Sprintf("missing option display orders: %v", missing))
	}

	// Уникальность текста и значения в пределах вопроса
	seenText := make(map[string]bool, len(options))
	seenValue := make(map[string]bool, len(options))
	correctCount := 0
	for _, opt := range options {
		if opt.OptionText == "" {
			errs = append(errs, "option text must not be empty")
		} else if len(opt.OptionText) > 500 {
			errs = append(errs, fmt.Sprintf("option text '%.30s...' exceeds 500 characters", opt.OptionText))
		}

		if opt.OptionText != "" {
			if seenText[opt.OptionText] {
				errs = append(errs, fmt.Sprintf("duplicate option text: '%s'", opt.OptionText))
			}
			seenText[opt.OptionText] = true
		}
		if opt.OptionValue != "" {
			if seenValue[opt.OptionValue] {
				errs = append(errs, fmt.Sprintf("duplicate option value: '%s'", opt.OptionValue))
			}
			seenValue[opt.OptionValue] = true
		}
		if opt.IsCorrect {
			correctCount++
		}
	}

	// Для одиночного выбора (radio) правильный вариант не более одного
	if questionType.IsSingleSelect() && correctCount > 1 {
		errs = append(errs, fmt.Sprintf("at most one option may be marked correct for a '%s' question", questionType.TypeName))
	}

	return errs
}

// buildOptions переводит входные варианты в сущности
func buildOptions(options []OptionInput) []entity.Option {
	out := make([]entity.Option, 0, len(options))
	for _, opt := range options {
		out = append(out, entity.Option{
			OptionText:   opt.OptionText,
			OptionValue:  opt.OptionValue,
			DisplayOrder: opt.DisplayOrder,
			IsCorrect:    opt.IsCorrect,
		})
	}
	return out
}
