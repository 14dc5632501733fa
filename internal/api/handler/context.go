package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/broday/transportes/internal/api/middleware"
	"github.com/broday/transportes/internal/core/domain"
)

// ctxActor extracts the caller injected by the Auth middleware and fails fast
// before any service call when the claims are unusable.
func ctxActor(c echo.Context) (domain.Actor, error) {
	id, _ := c.Get(middleware.ContextUserID).(string)
	role, _ := c.Get(middleware.ContextRole).(string)
	if id == "" || role == "" {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "credenciais de autenticação ausentes")
	}
	if !domain.Role(role).Valid() {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "perfil desconhecido no token")
	}
	return domain.Actor{ID: id, Role: domain.Role(role)}, nil
}
