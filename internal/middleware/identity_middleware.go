package middleware

import (
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/questionnaire-api/internal/service"
	"github.com/yourusername/questionnaire-api/pkg/auth"
)

// IdentityMiddleware поставляет личность вызывающего для каждого запроса.
// Настоящая аутентификация отключена: если Bearer-токен присутствует и
// подпись верна, личность берется из его claims; иначе подставляется
// посевная административная личность. Запрос не отклоняется никогда —
// решения об авторизации принимает политика на уровне сервисов.
type IdentityMiddleware struct {
	jwtService *auth.JWTService
	fallback   service.CallerIdentity
}

// NewIdentityMiddleware создает middleware личности с посевным администратором
func NewIdentityMiddleware(jwtService *auth.JWTService, seededAdminID uuid.UUID) *IdentityMiddleware {
	return &IdentityMiddleware{
		jwtService: jwtService,
		fallback: service.CallerIdentity{
			UserID: seededAdminID,
			Role:   service.RoleAdmin,
		},
	}
}

// Identify извлекает личность вызывающего и кладет ее в контекст под ключом "caller"
func (m *IdentityMiddleware) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := m.fallback

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && m.jwtService != nil {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				claims, err := m.jwtService.ParseToken(parts[1])
				if err == nil {
					caller = service.CallerIdentity{
						UserID:     claims.UserID,
						Role:       claims.Role,
						CategoryID: claims.CategoryID,
					}
				} else {
					// Невалидный токен не блокирует запрос: действует посевная личность
					log.Printf("[IdentityMiddleware] Невалидный токен личности: %v", err)
				}
			}
		}

		c.Set("caller", caller)
		c.Next()
	}
}
