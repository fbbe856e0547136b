package repository

import (
	"github.com/google/uuid"
)

// CategoryRepository — интерфейс внешнего коллаборатора: CRUD категорий
// находится вне ядра, ядру нужны только существование и имя.
type CategoryRepository interface {
	Exists(id uuid.UUID) (bool, error)
	Name(id uuid.UUID) (string, error)
}
