package ports

import (
	"context"
	"time"

	"github.com/broday/transportes/internal/core/domain"
)

// PersonInput holds sender or recipient contact details.
type PersonInput struct {
	Name     string
	Phone    string
	Email    string
	Document string
}

// AddressInput holds a physical location.
type AddressInput struct {
	Street   string
	Number   string
	District string
	City     string
	State    string
	CEP      string
}

// CargoInput holds cargo details.
type CargoInput struct {
	Type        string
	WeightKg    float64
	Value       float64
	VolumeM3    float64
	Description string
}

// CreateFreteInput carries all data needed to request a frete.
type CreateFreteInput struct {
	Sender           PersonInput
	Recipient        PersonInput
	Origin           AddressInput
	Destination      AddressInput
	Cargo            CargoInput
	Notes            string
	PickupDeadline   *time.Time
	DeliveryDeadline *time.Time
	IdempotencyKey   string
}

// ListAvailableInput carries the driver-side filters of the available board.
type ListAvailableInput struct {
	Origin      string
	Destination string
	CargoType   string
	MinValue    *float64
	MaxValue    *float64
	Page        int
	Limit       int
}

// ListMineInput carries the filters of the caller's own frete list.
type ListMineInput struct {
	Status string
	Page   int
	Limit  int
}

// FretePage is one page of a frete listing.
type FretePage struct {
	Items      []*domain.Frete
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// AdminPatchInput is the unrestricted correction applied by AdminUpdate.
// Nil fields are left untouched; an empty DriverID clears the driver.
type AdminPatchInput struct {
	Status      *string
	DriverID    *string
	PickupAt    *time.Time
	DeliveredAt *time.Time
}

// FreteService is the freight lifecycle manager.
type FreteService interface {
	Create(ctx context.Context, actor domain.Actor, input CreateFreteInput) (*domain.Frete, error)
	ListAvailable(ctx context.Context, actor domain.Actor, input ListAvailableInput) (*FretePage, error)
	Accept(ctx context.Context, actor domain.Actor, id string) (*domain.Frete, error)
	AdvanceStatus(ctx context.Context, actor domain.Actor, id, target string) (*domain.Frete, error)
	Cancel(ctx context.Context, actor domain.Actor, id, reason string) (*domain.Frete, error)
	AdminUpdate(ctx context.Context, actor domain.Actor, id string, patch AdminPatchInput) (*domain.Frete, error)
	AdminReassignDriver(ctx context.Context, actor domain.Actor, id, driverID string) (*domain.Frete, error)

	Get(ctx context.Context, actor domain.Actor, id string) (*domain.Frete, error)
	GetByCode(ctx context.Context, actor domain.Actor, code string) (*domain.Frete, error)
	ListMine(ctx context.Context, actor domain.Actor, input ListMineInput) (*FretePage, error)
	History(ctx context.Context, actor domain.Actor, id string) ([]*domain.FreteEvent, error)
}
