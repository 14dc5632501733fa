package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/broday/transportes/internal/api/metrics"
	"github.com/broday/transportes/internal/core/domain"
	"github.com/broday/transportes/internal/core/ports"
)

// FreteHandler handles HTTP requests for the frete lifecycle.
type FreteHandler struct {
	service ports.FreteService
}

func NewFreteHandler(service ports.FreteService) *FreteHandler {
	return &FreteHandler{service: service}
}

// Create handles POST /v1/fretes.
//
// @Summary      Request a new frete
// @Tags         fretes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string              false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createFreteRequest  true   "Frete details"
// @Success      201              {object}  domain.Frete
// @Failure      400              {object}  map[string]string
// @Failure      401              {object}  map[string]string
// @Failure      403              {object}  map[string]string
// @Router       /v1/fretes [post]
func (h *FreteHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createFreteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "payload inválido")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	f, err := h.service.Create(c.Request().Context(), actor, toCreateInput(req, c.Request().Header.Get("Idempotency-Key")))
	if err != nil {
		return err
	}

	metrics.FretesCreatedTotal.WithLabelValues(f.Origin.State).Inc()
	return c.JSON(http.StatusCreated, f)
}

// ListAvailable handles GET /v1/fretes/disponiveis.
//
// @Summary      List fretes open for drivers
// @Tags         fretes
// @Produce      json
// @Security     BearerAuth
// @Param        origem      query     string   false  "Origin substring (city, district or street)"
// @Param        destino     query     string   false  "Destination substring"
// @Param        tipo_carga  query     string   false  "Cargo type substring"
// @Param        valor_min   query     number   false  "Minimum cargo value"
// @Param        valor_max   query     number   false  "Maximum cargo value"
// @Param        page        query     int      false  "Page (default 1)"
// @Param        limit       query     int      false  "Page size (default 20, max 100)"
// @Success      200         {object}  fretePageResponse
// @Failure      400         {object}  map[string]string
// @Failure      403         {object}  map[string]string
// @Router       /v1/fretes/disponiveis [get]
func (h *FreteHandler) ListAvailable(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	in := ports.ListAvailableInput{
		Origin:      c.QueryParam("origem"),
		Destination: c.QueryParam("destino"),
		CargoType:   c.QueryParam("tipo_carga"),
	}
	b := echo.QueryParamsBinder(c).Int("page", &in.Page).Int("limit", &in.Limit)
	if c.QueryParam("valor_min") != "" {
		in.MinValue = new(float64)
		b = b.Float64("valor_min", in.MinValue)
	}
	if c.QueryParam("valor_max") != "" {
		in.MaxValue = new(float64)
		b = b.Float64("valor_max", in.MaxValue)
	}
	if err := b.BindError(); err != nil {
		return domain.NewError(domain.ErrValidation, "parâmetros de consulta inválidos")
	}

	page, err := h.service.ListAvailable(c.Request().Context(), actor, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page))
}

// ListMine handles GET /v1/fretes.
//
// @Summary      List the caller's fretes
// @Description  Shippers see the fretes they created, drivers the ones they hold, admins all of them.
// @Tags         fretes
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"
// @Param        page    query     int     false  "Page (default 1)"
// @Param        limit   query     int     false  "Page size (default 20, max 100)"
// @Success      200     {object}  fretePageResponse
// @Failure      400     {object}  map[string]string
// @Router       /v1/fretes [get]
func (h *FreteHandler) ListMine(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	in := ports.ListMineInput{Status: c.QueryParam("status")}
	if err := echo.QueryParamsBinder(c).Int("page", &in.Page).Int("limit", &in.Limit).BindError(); err != nil {
		return domain.NewError(domain.ErrValidation, "parâmetros de consulta inválidos")
	}

	page, err := h.service.ListMine(c.Request().Context(), actor, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page))
}

// Get handles GET /v1/fretes/:id.
//
// @Summary      Get a frete
// @Tags         fretes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Frete ID"
// @Success      200  {object}  domain.Frete
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/fretes/{id} [get]
func (h *FreteHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	f, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, f)
}

// GetByCode handles GET /v1/fretes/codigo/:codigo.
//
// @Summary      Get a frete by its code
// @Tags         fretes
// @Produce      json
// @Security     BearerAuth
// @Param        codigo  path      string  true  "Frete code"
// @Success      200     {object}  domain.Frete
// @Failure      403     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /v1/fretes/codigo/{codigo} [get]
func (h *FreteHandler) GetByCode(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	f, err := h.service.GetByCode(c.Request().Context(), actor, c.Param("codigo"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, f)
}

// History handles GET /v1/fretes/:id/eventos.
//
// @Summary      Audit trail of a frete
// @Tags         fretes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Frete ID"
// @Success      200  {object}  freteEventsResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/fretes/{id}/eventos [get]
func (h *FreteHandler) History(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	events, err := h.service.History(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	if events == nil {
		events = []*domain.FreteEvent{}
	}
	return c.JSON(http.StatusOK, freteEventsResponse{Data: events})
}

// Accept handles POST /v1/fretes/:id/aceitar.
//
// @Summary      Accept an available frete
// @Tags         fretes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Frete ID"
// @Success      200  {object}  domain.Frete
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/fretes/{id}/aceitar [post]
func (h *FreteHandler) Accept(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	f, err := h.service.Accept(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			metrics.AcceptConflictsTotal.Inc()
		}
		return err
	}
	return c.JSON(http.StatusOK, f)
}

// AdvanceStatus handles PUT /v1/fretes/:id/status.
//
// @Summary      Move a frete to another status
// @Description  Drivers may set em_transito or entregue, shippers only cancelado, admins any status.
// @Tags         fretes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Frete ID"
// @Param        body  body      advanceStatusRequest  true  "Target status"
// @Success      200   {object}  domain.Frete
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/fretes/{id}/status [put]
func (h *FreteHandler) AdvanceStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req advanceStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "payload inválido")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	f, err := h.service.AdvanceStatus(c.Request().Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, f)
}

// Cancel handles PUT /v1/fretes/:id/cancelar.
//
// @Summary      Cancel a frete
// @Description  Allowed for the owning shipper until the cancellation window before pickup closes.
// @Tags         fretes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true   "Frete ID"
// @Param        body  body      cancelRequest  false  "Cancellation reason"
// @Success      200   {object}  domain.Frete
// @Failure      400   {object}  map[string]interface{}
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/fretes/{id}/cancelar [put]
func (h *FreteHandler) Cancel(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req cancelRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "payload inválido")
		}
	}

	f, err := h.service.Cancel(c.Request().Context(), actor, c.Param("id"), req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, f)
}

// AdminUpdate handles PUT /v1/admin/fretes/:id.
//
// @Summary      Correct a frete manually
// @Description  Applies the given fields without lifecycle checks. An empty motorista_id clears the driver.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Frete ID"
// @Param        body  body      adminUpdateRequest  true  "Fields to overwrite"
// @Success      200   {object}  domain.Frete
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/admin/fretes/{id} [put]
func (h *FreteHandler) AdminUpdate(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req adminUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "payload inválido")
	}

	f, err := h.service.AdminUpdate(c.Request().Context(), actor, c.Param("id"), toAdminPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, f)
}

// AdminReassignDriver handles PUT /v1/admin/fretes/:id/motorista.
//
// @Summary      Hand a frete to another driver
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Frete ID"
// @Param        body  body      reassignRequest  true  "New driver"
// @Success      200   {object}  domain.Frete
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/admin/fretes/{id}/motorista [put]
func (h *FreteHandler) AdminReassignDriver(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req reassignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "payload inválido")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	f, err := h.service.AdminReassignDriver(c.Request().Context(), actor, c.Param("id"), req.DriverID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, f)
}
