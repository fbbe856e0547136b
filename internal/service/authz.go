package service

import (
	"github.com/google/uuid"
)

// Роли вызывающего. Реальная аутентификация отключена — личность
// поставляется внешним слоем и принимается на веру.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// CallerIdentity — утверждение о личности вызывающего, поставляемое
// (отключенным) слоем аутентификации при каждом вызове
type CallerIdentity struct {
	UserID     uuid.UUID
	Role       string
	CategoryID uuid.UUID
}

// AuthorizationPolicy — точка принятия решений об авторизации.
// Выделена в отдельный внедряемый объект, чтобы подстановка реальной
// аутентификации не затрагивала валидацию и персистентность.
type AuthorizationPolicy interface {
	// IsAdmin сообщает, обладает ли вызывающий административным обходом
	IsAdmin(caller CallerIdentity) bool

	// CanManageStructure разрешает структурные изменения
	// (анкеты, вопросы, варианты)
	CanManageStructure(caller CallerIdentity) bool

	// CanSubmit разрешает отправку ответов против анкеты указанной категории
	CanSubmit(caller CallerIdentity, categoryID uuid.UUID) bool

	// CanViewResponse разрешает просмотр чужой отправки
	CanViewResponse(caller CallerIdentity, ownerID uuid.UUID) bool
}

// RolePolicy — политика по умолчанию: административный обход для роли
// admin, для остальных — совпадение категории и владение записью
type RolePolicy struct{}

// NewRolePolicy создает политику авторизации по умолчанию
func NewRolePolicy() *RolePolicy {
	return &RolePolicy{}
}

// IsAdmin проверяет роль вызывающего
func (p *RolePolicy) IsAdmin(caller CallerIdentity) bool {
	return caller.Role == RoleAdmin
}

// CanManageStructure разрешает структурные изменения только администратору
func (p *RolePolicy) CanManageStructure(caller CallerIdentity) bool {
	return p.IsAdmin(caller)
}

// CanSubmit: администратор отправляет против любой анкеты, остальные —
// только против анкеты своей заявленной категории
func (p *RolePolicy) CanSubmit(caller CallerIdentity, categoryID uuid.UUID) bool {
	if p.IsAdmin(caller) {
		return true
	}
	return caller.CategoryID == categoryID
}

// CanViewResponse: отправку видит только ее автор или администратор
func (p *RolePolicy) CanViewResponse(caller CallerIdentity, ownerID uuid.UUID) bool {
	if p.IsAdmin(caller) {
		return true
	}
	return caller.UserID == ownerID
}
