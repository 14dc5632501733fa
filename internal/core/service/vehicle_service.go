package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/broday/transportes/internal/core/domain"
	"github.com/broday/transportes/internal/core/ports"
)

// VehicleService implements ports.VehicleService and doubles as the vehicle
// registry consulted by FreteService.Accept.
type VehicleService struct {
	repo   ports.VehicleRepository
	logger zerolog.Logger
}

func NewVehicleService(repo ports.VehicleRepository, logger zerolog.Logger) *VehicleService {
	return &VehicleService{repo: repo, logger: logger}
}

// HasActiveVehicle reports whether driverID owns at least one active vehicle.
func (s *VehicleService) HasActiveVehicle(ctx context.Context, driverID string) (bool, error) {
	n, err := s.repo.CountActiveByDriver(ctx, driverID)
	if err != nil {
		return false, fmt.Errorf("count vehicles: %w", err)
	}
	return n > 0, nil
}

func (s *VehicleService) Register(ctx context.Context, actor domain.Actor, in ports.RegisterVehicleInput) (*domain.Vehicle, error) {
	if err := domain.Authorize(actor, domain.OpRegisterVehicle); err != nil {
		return nil, err
	}

	plate := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(in.Plate), "-", ""))
	var msgs []string
	if plate == "" {
		msgs = append(msgs, "placa é obrigatória")
	}
	if strings.TrimSpace(in.Type) == "" {
		msgs = append(msgs, "tipo de veículo é obrigatório")
	}
	if in.CapacityKg < 0 {
		msgs = append(msgs, "capacidade não pode ser negativa")
	}
	if len(msgs) > 0 {
		return nil, domain.NewError(domain.ErrValidation, strings.Join(msgs, "; "))
	}

	v := &domain.Vehicle{
		DriverID:   actor.ID,
		Plate:      plate,
		Type:       strings.TrimSpace(in.Type),
		Model:      strings.TrimSpace(in.Model),
		CapacityKg: in.CapacityKg,
		Active:     true,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}

	s.logger.Info().Str("motorista_id", actor.ID).Str("placa", plate).Msg("vehicle registered")
	return v, nil
}

func (s *VehicleService) ListMine(ctx context.Context, actor domain.Actor) ([]*domain.Vehicle, error) {
	if err := domain.Authorize(actor, domain.OpListVehicles); err != nil {
		return nil, err
	}
	vehicles, err := s.repo.ListByDriver(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	if vehicles == nil {
		vehicles = []*domain.Vehicle{}
	}
	return vehicles, nil
}
