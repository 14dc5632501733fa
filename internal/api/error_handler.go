package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/broday/transportes/internal/api/metrics"
	"github.com/broday/transportes/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error         string `json:"error"`
	Detail        string `json:"detail,omitempty"`
	DaysRemaining *int   `json:"dias_restantes,omitempty"`
}

// kindStatus maps lifecycle error kinds to HTTP codes and metric labels.
var kindStatus = []struct {
	kind  error
	code  int
	label string
}{
	{domain.ErrValidation, http.StatusBadRequest, "validation"},
	{domain.ErrInvalidState, http.StatusBadRequest, "invalid_state"},
	{domain.ErrDeadlineExceeded, http.StatusBadRequest, "deadline_exceeded"},
	{domain.ErrNoVehicle, http.StatusBadRequest, "no_vehicle"},
	{domain.ErrForbidden, http.StatusForbidden, "forbidden"},
	{domain.ErrNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrConflict, http.StatusConflict, "conflict"},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that renders every
// error as {"error": "<message>"}. Unknown errors become 500; their cause is
// only echoed back in the detail field outside production.
func NewHTTPErrorHandler(log zerolog.Logger, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c, production)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context, production bool) (int, errorResponse) {
	var de *domain.Error
	if errors.As(err, &de) {
		for _, ks := range kindStatus {
			if errors.Is(de.Kind, ks.kind) {
				metrics.LifecycleErrorsTotal.WithLabelValues(ks.label).Inc()
				return ks.code, errorResponse{Error: de.Message, DaysRemaining: de.DaysRemaining}
			}
		}
	}

	// Echo's own errors (bind failures, 404 from router, auth middleware).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "credenciais inválidas"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Error: "usuário não encontrado"}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, errorResponse{Error: "e-mail já cadastrado"}
	case errors.Is(err, domain.ErrVehicleExists):
		return http.StatusConflict, errorResponse{Error: "placa já cadastrada"}
	}

	// Unexpected error: log the real cause.
	metrics.LifecycleErrorsTotal.WithLabelValues("internal").Inc()
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	resp := errorResponse{Error: "erro interno do servidor"}
	if !production {
		resp.Detail = err.Error()
	}
	return http.StatusInternalServerError, resp
}
