package helper

import (
	"github.com/google/uuid"

	"github.com/yourusername/questionnaire-api/internal/domain/entity"
)

// OptionLabelIndex сопоставляет идентификатор варианта его отображаемому
// тексту по всем вопросам анкеты. Используется при экспорте, чтобы в
// выгрузке вместо UUID стояли человекочитаемые метки.
type OptionLabelIndex map[uuid.UUID]string

// BuildOptionLabelIndex строит индекс меток вариантов по определению анкеты
func BuildOptionLabelIndex(questionnaire *entity.Questionnaire) OptionLabelIndex {
	index := make(OptionLabelIndex)
	if questionnaire == nil {
		return index
	}
	for _, question := range questionnaire.Questions {
		for _, option := range question.Options {
			index[option.ID] = option.OptionText
		}
	}
	return index
}

// Resolve возвращает текст варианта; для неизвестного ID — его строковую
// форму, чтобы выгрузка не теряла данные
func (idx OptionLabelIndex) Resolve(optionID uuid.UUID) string {
	if label, ok := idx[optionID]; ok {
		return label
	}
	return optionID.String()
}
