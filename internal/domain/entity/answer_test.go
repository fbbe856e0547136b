package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string       { return &s }
func numPtr(v float64) *float64     { return &v }
func timePtr(t time.Time) *time.Time { return &t }

func TestResolveAnswer_TextTypes(t *testing.T) {
	// Act
	answer, ok := ResolveAnswer(TypeText, strPtr("свободный ответ"), nil, nil, nil, nil)

	// Assert
	require.True(t, ok, "текстовый ответ должен разрешаться")
	assert.Equal(t, AnswerText, answer.Kind)
	assert.Equal(t, "свободный ответ", answer.Text)

	// Пустой текст не является значением
	_, ok = ResolveAnswer(TypeText, strPtr(""), nil, nil, nil, nil)
	assert.False(t, ok, "пустой текст не должен разрешаться")
}

func TestResolveAnswer_NumberFromTypedField(t *testing.T) {
	answer, ok := ResolveAnswer(TypeNumber, nil, numPtr(42.5), nil, nil, nil)

	require.True(t, ok)
	assert.Equal(t, AnswerNumber, answer.Kind)
	assert.Equal(t, 42.5, answer.Number)
}

func TestResolveAnswer_NumberFromTextFallback(t *testing.T) {
	// Клиент может прислать число строкой — оба пути обязаны работать
	answer, ok := ResolveAnswer(TypeNumber, strPtr("17"), nil, nil, nil, nil)

	require.True(t, ok, "число из строкового фолбэка должно разрешаться")
	assert.Equal(t, AnswerNumber, answer.Kind)
	assert.Equal(t, 17.0, answer.Number)

	// Непарсящийся текст не дает значения
	_, ok = ResolveAnswer(TypeNumber, strPtr("не число"), nil, nil, nil, nil)
	assert.False(t, ok)
}

func TestResolveAnswer_DateFromTextFallback(t *testing.T) {
	answer, ok := ResolveAnswer(TypeDate, strPtr("2024-05-01"), nil, nil, nil, nil)

	require.True(t, ok, "дата из строкового фолбэка должна разрешаться")
	assert.Equal(t, AnswerDate, answer.Kind)
	assert.Equal(t, 2024, answer.Date.Year())

	typed := time.Date(2023, 3, 10, 12, 0, 0, 0, time.UTC)
	answer, ok = ResolveAnswer(TypeDate, nil, nil, timePtr(typed), nil, nil)
	require.True(t, ok)
	assert.True(t, answer.Date.Equal(typed), "типизированное поле имеет приоритет")
}

func TestResolveAnswer_File(t *testing.T) {
	answer, ok := ResolveAnswer(TypeFile, nil, nil, nil, strPtr("https://cdn.example.com/uploads/report.pdf"), nil)

	require.True(t, ok)
	assert.Equal(t, AnswerFile, answer.Kind)
	assert.Equal(t, "report.pdf", answer.File.Name)
	assert.Equal(t, "pdf", answer.File.Type)

	_, ok = ResolveAnswer(TypeFile, nil, nil, nil, strPtr(""), nil)
	assert.False(t, ok, "пустой URL файла не должен разрешаться")
}

func TestResolveAnswer_Options(t *testing.T) {
	optionID := uuid.New()

	answer, ok := ResolveAnswer(TypeRadio, nil, nil, nil, nil, []uuid.UUID{optionID})

	require.True(t, ok)
	assert.Equal(t, AnswerOptions, answer.Kind)
	require.Len(t, answer.OptionIDs, 1)
	assert.Equal(t, optionID, answer.OptionIDs[0])
}

func TestResolveAnswer_CheckboxFreeTextFallback(t *testing.T) {
	// Чекбокс без выбранных вариантов, но со свободным текстом —
	// сценарий "другое, уточните"
	answer, ok := ResolveAnswer(TypeCheckbox, strPtr("другое"), nil, nil, nil, nil)

	require.True(t, ok, "свободный текст должен приниматься вместо вариантов")
	assert.Equal(t, AnswerText, answer.Kind)
	assert.Equal(t, "другое", answer.Text)
}

func TestDeriveBoolean_Heuristic(t *testing.T) {
	// "yes"/"no" без учета регистра дают значение
	v := DeriveBoolean("Yes")
	require.NotNil(t, v)
	assert.True(t, *v)

	v = DeriveBoolean("NO")
	require.NotNil(t, v)
	assert.False(t, *v)

	// Любой другой текст — не ошибка, просто nil
	assert.Nil(t, DeriveBoolean("maybe"), "эвристика не должна быть правилом валидации")
	assert.Nil(t, DeriveBoolean(""))
}

func TestSplitFileURL(t *testing.T) {
	name, fileType := SplitFileURL("https://storage.example.com/bucket/photo.final.jpg")
	assert.Equal(t, "photo.final.jpg", name)
	assert.Equal(t, "jpg", fileType, "тип — последний сегмент после точки")

	name, fileType = SplitFileURL("plain-name")
	assert.Equal(t, "plain-name", name)
	assert.Equal(t, "", fileType)

	name, fileType = SplitFileURL("")
	assert.Equal(t, "", name)
	assert.Equal(t, "", fileType)
}

func TestKindForType_CaseInsensitive(t *testing.T) {
	assert.Equal(t, AnswerNumber, KindForType("RATING"), "диспетчеризация не зависит от регистра")
	assert.Equal(t, AnswerOptions, KindForType("Multiselect"))
	assert.Equal(t, AnswerText, KindForType("unknown-type"), "неизвестный тип трактуется как текст")
}
