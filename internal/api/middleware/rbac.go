package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/broday/transportes/internal/core/domain"
)

// RBAC rejects callers whose role may not perform op. The roles come from
// the same capability table the services consult.
func RBAC(op domain.Operation) echo.MiddlewareFunc {
	allowed := make(map[string]struct{})
	for _, r := range domain.RolesFor(op) {
		allowed[string(r)] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextRole).(string)
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "acesso negado para o perfil " + role})
			}
			return next(c)
		}
	}
}
