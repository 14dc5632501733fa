package ports

import (
	"context"
	"time"

	"github.com/broday/transportes/internal/core/domain"
)

// ListFretesFilter carries all query parameters for listing fretes.
// Zero values mean "no filter".
type ListFretesFilter struct {
	Statuses       []domain.FreteStatus
	UnassignedOnly bool // motorista_id IS NULL
	ClientID       string
	DriverID       string
	Origin         string // substring of origin city/district/street
	Destination    string // substring of destination city/district/street
	CargoType      string // substring of carga.tipo
	MinValue       *float64
	MaxValue       *float64
	Page           int // 1-based
	Limit          int
}

// Expectation is the guard of a conditional update. Every non-zero field
// must hold on the stored document for the patch to apply.
type Expectation struct {
	Statuses    []domain.FreteStatus // status IN Statuses
	DriverUnset bool                 // motorista_id IS NULL
	DriverID    string               // motorista_id = DriverID
}

// FretePatch lists the fields a conditional update sets. Nil fields are left
// untouched.
type FretePatch struct {
	Status             *domain.FreteStatus
	DriverID           *string // empty string stores null
	AcceptedAt         *time.Time
	PickupAt           *time.Time
	TransitStartedAt   *time.Time
	DeliveredAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason *string
}

// FreteRepository defines persistence operations for fretes.
type FreteRepository interface {
	// Create inserts a new frete. A duplicate code fails with
	// domain.ErrDuplicateCode.
	Create(ctx context.Context, f *domain.Frete) error
	FindByID(ctx context.Context, id string) (*domain.Frete, error)
	FindByCode(ctx context.Context, code string) (*domain.Frete, error)
	// List returns a page of fretes matching filter, newest first, and the
	// total count.
	List(ctx context.Context, filter ListFretesFilter) ([]*domain.Frete, int64, error)
	// ConditionalUpdate applies patch only when the stored frete matches
	// expect, in a single round trip. ok is false when nothing matched; the
	// updated frete is returned otherwise.
	ConditionalUpdate(ctx context.Context, id string, expect Expectation, patch FretePatch) (updated *domain.Frete, ok bool, err error)
}
