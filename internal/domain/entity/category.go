package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category представляет категорию, к которой привязывается анкета.
// CRUD категорий находится вне ядра — здесь только то, что нужно
// для проверки существования и отображения имени.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Category) TableName() string {
	return "categories"
}

// BeforeCreate генерирует суррогатный UUID, если он не задан
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
