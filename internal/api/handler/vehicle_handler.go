package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/broday/transportes/internal/core/domain"
	"github.com/broday/transportes/internal/core/ports"
)

type vehicleRequest struct {
	Plate      string  `json:"placa" validate:"required"`
	Type       string  `json:"tipo" validate:"required"`
	Model      string  `json:"modelo"`
	CapacityKg float64 `json:"capacidade_kg" validate:"gte=0"`
}

type vehicleListResponse struct {
	Data []*domain.Vehicle `json:"data"`
}

// VehicleHandler exposes the driver's fleet.
type VehicleHandler struct {
	service ports.VehicleService
}

func NewVehicleHandler(service ports.VehicleService) *VehicleHandler {
	return &VehicleHandler{service: service}
}

// Register handles POST /v1/veiculos.
//
// @Summary      Register a vehicle for the calling driver
// @Tags         veiculos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      vehicleRequest  true  "Vehicle details"
// @Success      201   {object}  domain.Vehicle
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/veiculos [post]
func (h *VehicleHandler) Register(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req vehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "payload inválido")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	v, err := h.service.Register(c.Request().Context(), actor, ports.RegisterVehicleInput{
		Plate:      req.Plate,
		Type:       req.Type,
		Model:      req.Model,
		CapacityKg: req.CapacityKg,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, v)
}

// List handles GET /v1/veiculos.
//
// @Summary      List the calling driver's vehicles
// @Tags         veiculos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  vehicleListResponse
// @Failure      403  {object}  map[string]string
// @Router       /v1/veiculos [get]
func (h *VehicleHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	vehicles, err := h.service.ListMine(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, vehicleListResponse{Data: vehicles})
}
