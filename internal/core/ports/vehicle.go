package ports

import (
	"context"

	"github.com/broday/transportes/internal/core/domain"
)

// VehicleRepository persists driver vehicles.
type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	ListByDriver(ctx context.Context, driverID string) ([]*domain.Vehicle, error)
	CountActiveByDriver(ctx context.Context, driverID string) (int64, error)
}

// VehicleRegistry answers whether a driver may take fretes.
type VehicleRegistry interface {
	HasActiveVehicle(ctx context.Context, driverID string) (bool, error)
}

// RegisterVehicleInput carries a new vehicle's details.
type RegisterVehicleInput struct {
	Plate      string
	Type       string
	Model      string
	CapacityKg float64
}

// VehicleService defines use-case operations for vehicles.
type VehicleService interface {
	VehicleRegistry
	Register(ctx context.Context, actor domain.Actor, input RegisterVehicleInput) (*domain.Vehicle, error)
	ListMine(ctx context.Context, actor domain.Actor) ([]*domain.Vehicle, error)
}
