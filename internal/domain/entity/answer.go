package entity

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// AnswerKind перечисляет формы значения ответа
type AnswerKind int

const (
	// AnswerNone — значение отсутствует
	AnswerNone AnswerKind = iota
	// AnswerText — свободный текст
	AnswerText
	// AnswerNumber — числовое значение
	AnswerNumber
	// AnswerDate — дата/время
	AnswerDate
	// AnswerBool — булево значение (выводится эвристически из текста)
	AnswerBool
	// AnswerFile — ссылка на загруженный файл
	AnswerFile
	// AnswerOptions — один или несколько выбранных вариантов
	AnswerOptions
)

// FileRef описывает ссылку на загруженный файл
type FileRef struct {
	URL  string
	Name string
	Type string
	Size int64
}

// Answer — размеченное объединение значения ответа. Активный слот
// определяется Kind, который в свою очередь выводится из типа вопроса,
// а не из формы присланных клиентом данных. Это убирает неоднозначность
// "пяти nullable-колонок" при сохранении и чтении.
type Answer struct {
	Kind      AnswerKind
	Text      string
	Number    float64
	Date      time.Time
	Bool      bool
	File      FileRef
	OptionIDs []uuid.UUID
}

// KindForType возвращает ожидаемую форму значения для имени типа вопроса.
// Неизвестные типы трактуются как текстовые.
func KindForType(typeName string) AnswerKind {
	switch NormalizeTypeName(typeName) {
	case TypeText, TypeTextarea, TypeEmail:
		return AnswerText
	case TypeNumber, TypeRating:
		return AnswerNumber
	case TypeDate:
		return AnswerDate
	case TypeFile:
		return AnswerFile
	case TypeRadio, TypeCheckbox, TypeSelect, TypeMultiselect:
		return AnswerOptions
	default:
		return AnswerText
	}
}

// ParseNumberText пытается разобрать число из строкового фолбэка.
// Внешний вызывающий может присылать слабо типизированный JSON, поэтому
// число принимается и из NumberResponse, и из строки TextResponse.
func ParseNumberText(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Форматы дат, принимаемые из строкового фолбэка
var dateTextLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDateText пытается разобрать дату из строкового фолбэка
func ParseDateText(s string) (time.Time, bool) {
	for _, layout := range dateTextLayouts {
		if v, err := time.Parse(layout, s); err == nil {
			return v, true
		}
	}
	return time.Time{}, false
}

// ResolveAnswer сводит присланные поля к одному значению, исходя из типа
// вопроса. Возвращает false, если для ожидаемой формы не нашлось
// пригодного значения. Для типов с вариантами свободный текст принимается
// как запасной путь (сценарий "другое, уточните").
func ResolveAnswer(typeName string, text *string, number *float64, date *time.Time, fileURL *string, optionIDs []uuid.UUID) (Answer, bool) {
	textValue := ""
	if text != nil {
		textValue = *text
	}

	switch KindForType(typeName) {
	case AnswerText:
		if textValue == "" {
			return Answer{}, false
		}
		return Answer{Kind: AnswerText, Text: textValue}, true

	case AnswerNumber:
		if number != nil {
			return Answer{Kind: AnswerNumber, Number: *number}, true
		}
		if v, ok := ParseNumberText(textValue); textValue != "" && ok {
			return Answer{Kind: AnswerNumber, Number: v}, true
		}
		return Answer{}, false

	case AnswerDate:
		if date != nil {
			return Answer{Kind: AnswerDate, Date: *date}, true
		}
		if v, ok := ParseDateText(textValue); textValue != "" && ok {
			return Answer{Kind: AnswerDate, Date: v}, true
		}
		return Answer{}, false

	case AnswerFile:
		if fileURL == nil || *fileURL == "" {
			return Answer{}, false
		}
		name, fileType := SplitFileURL(*fileURL)
		return Answer{Kind: AnswerFile, File: FileRef{URL: *fileURL, Name: name, Type: fileType}}, true

	case AnswerOptions:
		if len(optionIDs) > 0 {
			return Answer{Kind: AnswerOptions, OptionIDs: optionIDs}, true
		}
		if textValue != "" {
			return Answer{Kind: AnswerText, Text: textValue}, true
		}
		return Answer{}, false
	}

	return Answer{}, false
}

// Render возвращает человекочитаемое представление значения для экспорта.
// Варианты ответа переводятся в текст через resolveOption; для остальных
// форм representation не требует контекста вопроса.
func (a Answer) Render(resolveOption func(uuid.UUID) string) string {
	switch a.Kind {
	case AnswerText:
		return a.Text
	case AnswerNumber:
		return strconv.FormatFloat(a.Number, 'f', -1, 64)
	case AnswerDate:
		return a.Date.Format("2006-01-02 15:04:05")
	case AnswerBool:
		if a.Bool {
			return "yes"
		}
		return "no"
	case AnswerFile:
		return a.File.URL
	case AnswerOptions:
		out := ""
		for i, id := range a.OptionIDs {
			if i > 0 {
				out += ", "
			}
			if resolveOption != nil {
				out += resolveOption(id)
			} else {
				out += id.String()
			}
		}
		return out
	}
	return ""
}

// String реализует fmt.Stringer для отладочного вывода
func (a Answer) String() string {
	if a.Kind == AnswerOptions {
		return fmt.Sprintf("options(%d)", len(a.OptionIDs))
	}
	return a.Render(nil)
}
