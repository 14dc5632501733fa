package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/broday/transportes/internal/core/domain"
	"github.com/broday/transportes/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100

	defaultCancelWindow   = 7 * 24 * time.Hour
	defaultDeliveryWindow = 15 * 24 * time.Hour
)

// IdempotencyStore remembers which frete a client's Idempotency-Key created.
// Reserve claims a key before the insert; when the key is already held it
// reports the stored frete id, or "" while the holder is still running.
type IdempotencyStore interface {
	Reserve(ctx context.Context, scope, key string) (freteID string, claimed bool, err error)
	Complete(ctx context.Context, scope, key, freteID string) error
	Release(ctx context.Context, scope, key string) error
}

// FreteOptions tunes the lifecycle rules.
type FreteOptions struct {
	// CancelWindow is how long before the pickup deadline a shipper may still
	// cancel.
	CancelWindow time.Duration
	// DefaultDeliveryWindow sets prazo_entrega when the shipper leaves it empty.
	DefaultDeliveryWindow time.Duration
	// AvailableIncludesAccepted also lists unassigned fretes in status aceito
	// on the driver board.
	AvailableIncludesAccepted bool
}

// FreteDeps groups the collaborators of FreteService. Recorder and
// Idempotency are optional.
type FreteDeps struct {
	Fretes      ports.FreteRepository
	Users       ports.UserRepository
	Vehicles    ports.VehicleRegistry
	Events      ports.EventRepository
	Recorder    ports.EventRecorder
	Idempotency IdempotencyStore
}

// FreteService implements ports.FreteService.
type FreteService struct {
	repo     ports.FreteRepository
	users    ports.UserRepository
	vehicles ports.VehicleRegistry
	events   ports.EventRepository
	recorder ports.EventRecorder
	idem     IdempotencyStore
	opts     FreteOptions
	logger   zerolog.Logger
	now      func() time.Time
	newCode  func(time.Time) string
}

func NewFreteService(deps FreteDeps, opts FreteOptions, logger zerolog.Logger) *FreteService {
	if opts.CancelWindow <= 0 {
		opts.CancelWindow = defaultCancelWindow
	}
	if opts.DefaultDeliveryWindow <= 0 {
		opts.DefaultDeliveryWindow = defaultDeliveryWindow
	}
	return &FreteService{
		repo:     deps.Fretes,
		users:    deps.Users,
		vehicles: deps.Vehicles,
		events:   deps.Events,
		recorder: deps.Recorder,
		idem:     deps.Idempotency,
		opts:     opts,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
		newCode:  generateFreteCode,
	}
}

// Create registers a new frete request for the calling shipper. If an
// idempotency key was already used by the same shipper, the frete created by
// the first call is returned without side effects.
func (s *FreteService) Create(ctx context.Context, actor domain.Actor, in ports.CreateFreteInput) (*domain.Frete, error) {
	if err := domain.Authorize(actor, domain.OpCreate); err != nil {
		return nil, err
	}
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	reserved := false
	if in.IdempotencyKey != "" && s.idem != nil {
		existing, claimed, err := s.reserveKey(ctx, actor.ID, in.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
		reserved = claimed
	}

	now := s.now()
	delivery := in.DeliveryDeadline
	if delivery == nil {
		d := now.Add(s.opts.DefaultDeliveryWindow)
		delivery = &d
	}

	f := &domain.Frete{
		Code:             s.newCode(now),
		Status:           domain.StatusSolicitado,
		ClientID:         actor.ID,
		Sender:           toPerson(in.Sender),
		Recipient:        toPerson(in.Recipient),
		Origin:           toAddress(in.Origin),
		Destination:      toAddress(in.Destination),
		Cargo:            toCargo(in.Cargo),
		Notes:            strings.TrimSpace(in.Notes),
		PickupDeadline:   utcPtr(in.PickupDeadline),
		DeliveryDeadline: utcPtr(delivery),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, f); err != nil {
		if reserved {
			if relErr := s.idem.Release(ctx, actor.ID, in.IdempotencyKey); relErr != nil {
				s.logger.Warn().Err(relErr).Str("idempotency_key", in.IdempotencyKey).Msg("failed to release idempotency key")
			}
		}
		if errors.Is(err, domain.ErrConflict) {
			s.logger.Warn().Str("codigo", f.Code).Msg("frete code collision")
			return nil, err
		}
		s.logger.Error().Err(err).Msg("failed to create frete")
		return nil, fmt.Errorf("create frete: %w", err)
	}

	if reserved {
		if err := s.idem.Complete(ctx, actor.ID, in.IdempotencyKey, f.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("failed to store idempotency key")
		}
	}

	s.record(f, "", actor, domain.OpCreate, "")
	s.logger.Info().Str("frete_id", f.ID).Str("codigo", f.Code).Str("cliente_id", actor.ID).Msg("frete created")
	return f, nil
}

// reserveKey claims key for this call or returns the frete an earlier call
// with the same key created. A store outage is logged and the creation
// proceeds unprotected.
func (s *FreteService) reserveKey(ctx context.Context, scope, key string) (*domain.Frete, bool, error) {
	id, claimed, err := s.idem.Reserve(ctx, scope, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency reserve failed, creating anyway")
		return nil, false, nil
	}
	if claimed {
		return nil, true, nil
	}
	if id == "" {
		return nil, false, domain.NewError(domain.ErrConflict, "requisição com esta Idempotency-Key ainda em processamento")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("idempotent replay: %w", err)
	}
	s.logger.Info().Str("idempotency_key", key).Str("codigo", existing.Code).Msg("idempotent replay")
	return existing, false, nil
}

// ListAvailable returns the unassigned fretes a driver may accept.
func (s *FreteService) ListAvailable(ctx context.Context, actor domain.Actor, in ports.ListAvailableInput) (*ports.FretePage, error) {
	if err := domain.Authorize(actor, domain.OpListAvailable); err != nil {
		return nil, err
	}
	if in.MinValue != nil && in.MaxValue != nil && *in.MinValue > *in.MaxValue {
		return nil, domain.NewError(domain.ErrValidation, "valor mínimo maior que o valor máximo")
	}

	statuses := []domain.FreteStatus{domain.StatusSolicitado}
	if s.opts.AvailableIncludesAccepted {
		statuses = append(statuses, domain.StatusAceito)
	}

	page, limit := normalizePage(in.Page, in.Limit)
	return s.list(ctx, ports.ListFretesFilter{
		Statuses:       statuses,
		UnassignedOnly: true,
		Origin:         strings.TrimSpace(in.Origin),
		Destination:    strings.TrimSpace(in.Destination),
		CargoType:      strings.TrimSpace(in.CargoType),
		MinValue:       in.MinValue,
		MaxValue:       in.MaxValue,
		Page:           page,
		Limit:          limit,
	})
}

// Accept assigns an available frete to the calling driver. The guard and the
// write are one conditional update, so two drivers racing for the same frete
// cannot both win.
func (s *FreteService) Accept(ctx context.Context, actor domain.Actor, id string) (*domain.Frete, error) {
	if err := domain.Authorize(actor, domain.OpAccept); err != nil {
		return nil, err
	}

	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.Assigned() {
		return nil, domain.NewError(domain.ErrInvalidState, "frete já foi aceito por outro motorista")
	}
	if f.Status != domain.StatusSolicitado {
		return nil, domain.NewError(domain.ErrInvalidState, "frete não está disponível (status "+f.Status.Label()+")")
	}
	if err := s.requireVehicle(ctx, actor.ID); err != nil {
		return nil, err
	}

	now := s.now()
	aceito := domain.StatusAceito
	driverID := actor.ID
	updated, ok, err := s.repo.ConditionalUpdate(ctx, id,
		ports.Expectation{Statuses: []domain.FreteStatus{domain.StatusSolicitado}, DriverUnset: true},
		ports.FretePatch{Status: &aceito, DriverID: &driverID, AcceptedAt: &now, PickupAt: &now},
	)
	if err != nil {
		return nil, fmt.Errorf("accept frete: %w", err)
	}
	if !ok {
		s.logger.Info().Str("frete_id", id).Str("motorista_id", actor.ID).Msg("accept lost race")
		return nil, domain.NewError(domain.ErrConflict, "frete já foi aceito por outro motorista")
	}

	s.record(updated, f.Status, actor, domain.OpAccept, "")
	s.logger.Info().Str("frete_id", id).Str("motorista_id", actor.ID).Msg("frete accepted")
	return updated, nil
}

// requireVehicle fails with ErrNoVehicle unless the driver has an active
// vehicle registered.
func (s *FreteService) requireVehicle(ctx context.Context, driverID string) error {
	hasVehicle, err := s.vehicles.HasActiveVehicle(ctx, driverID)
	if err != nil {
		return fmt.Errorf("vehicle lookup: %w", err)
	}
	if !hasVehicle {
		return domain.NewError(domain.ErrNoVehicle, "cadastre um veículo ativo antes de aceitar fretes")
	}
	return nil
}

// AdvanceStatus moves a frete to target on behalf of a driver or admin. A
// shipper may only request cancelado, which follows the Cancel rules.
func (s *FreteService) AdvanceStatus(ctx context.Context, actor domain.Actor, id, target string) (*domain.Frete, error) {
	if err := domain.Authorize(actor, domain.OpAdvanceStatus); err != nil {
		return nil, err
	}
	next, err := domain.ParseStatus(target)
	if err != nil {
		return nil, err
	}
	if err := domain.AllowedTarget(actor.Role, next); err != nil {
		return nil, err
	}

	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleCliente {
		return s.cancel(ctx, actor, f, "", domain.OpAdvanceStatus)
	}
	if err := domain.CheckAdvance(actor.Role, f.Status, next); err != nil {
		return nil, err
	}

	now := s.now()
	expect := ports.Expectation{Statuses: []domain.FreteStatus{f.Status}}
	patch := ports.FretePatch{Status: &next}

	if actor.Role == domain.RoleMotorista {
		switch {
		case !f.Assigned():
			// Moving an unclaimed frete takes it, under the same rules as Accept.
			if err := s.requireVehicle(ctx, actor.ID); err != nil {
				return nil, err
			}
			driverID := actor.ID
			expect.DriverUnset = true
			patch.DriverID = &driverID
			patch.AcceptedAt = &now
			patch.PickupAt = &now
		case f.AssignedTo(actor.ID):
			expect.DriverID = actor.ID
		default:
			return nil, domain.NewError(domain.ErrForbidden, "frete atribuído a outro motorista")
		}
	}

	switch next {
	case domain.StatusEmTransito:
		patch.TransitStartedAt = &now
	case domain.StatusEntregue:
		patch.DeliveredAt = &now
	}

	updated, ok, err := s.repo.ConditionalUpdate(ctx, id, expect, patch)
	if err != nil {
		return nil, fmt.Errorf("advance status: %w", err)
	}
	if !ok {
		return nil, domain.NewError(domain.ErrConflict, "frete foi alterado por outra operação, tente novamente")
	}

	s.record(updated, f.Status, actor, domain.OpAdvanceStatus, "")
	s.logger.Info().
		Str("frete_id", id).
		Str("from", string(f.Status)).
		Str("to", string(next)).
		Str("role", string(actor.Role)).
		Msg("frete status advanced")
	return updated, nil
}

// Cancel terminates a frete on behalf of its shipper.
func (s *FreteService) Cancel(ctx context.Context, actor domain.Actor, id, reason string) (*domain.Frete, error) {
	if err := domain.Authorize(actor, domain.OpCancel); err != nil {
		return nil, err
	}
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.cancel(ctx, actor, f, reason, domain.OpCancel)
}

func (s *FreteService) cancel(ctx context.Context, actor domain.Actor, f *domain.Frete, reason string, op domain.Operation) (*domain.Frete, error) {
	if !f.OwnedBy(actor.ID) {
		return nil, domain.NewError(domain.ErrForbidden, "frete pertence a outro cliente")
	}
	if err := domain.CheckCancel(f.Status); err != nil {
		return nil, err
	}

	now := s.now()
	if f.PickupDeadline != nil {
		cutoff := f.PickupDeadline.Add(-s.opts.CancelWindow)
		if now.After(cutoff) {
			return nil, domain.NewDeadlineError(
				fmt.Sprintf("cancelamento permitido somente até %d dias antes da data de coleta", windowDays(s.opts.CancelWindow)),
				daysUntil(now, *f.PickupDeadline),
			)
		}
	}

	cancelado := domain.StatusCancelado
	reason = strings.TrimSpace(reason)
	updated, ok, err := s.repo.ConditionalUpdate(ctx, f.ID,
		ports.Expectation{Statuses: []domain.FreteStatus{f.Status}},
		ports.FretePatch{Status: &cancelado, CancelledAt: &now, CancellationReason: &reason},
	)
	if err != nil {
		return nil, fmt.Errorf("cancel frete: %w", err)
	}
	if !ok {
		return nil, domain.NewError(domain.ErrConflict, "frete foi alterado por outra operação, tente novamente")
	}

	s.record(updated, f.Status, actor, op, reason)
	s.logger.Info().Str("frete_id", f.ID).Str("cliente_id", actor.ID).Msg("frete cancelled")
	return updated, nil
}

// AdminUpdate applies a manual correction without state-machine checks.
func (s *FreteService) AdminUpdate(ctx context.Context, actor domain.Actor, id string, in ports.AdminPatchInput) (*domain.Frete, error) {
	if err := domain.Authorize(actor, domain.OpAdminUpdate); err != nil {
		return nil, err
	}

	var patch ports.FretePatch
	empty := true
	if in.Status != nil {
		st, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		patch.Status = &st
		empty = false
	}
	if in.DriverID != nil {
		driverID := strings.TrimSpace(*in.DriverID)
		patch.DriverID = &driverID
		empty = false
	}
	if in.PickupAt != nil {
		patch.PickupAt = utcPtr(in.PickupAt)
		empty = false
	}
	if in.DeliveredAt != nil {
		patch.DeliveredAt = utcPtr(in.DeliveredAt)
		empty = false
	}

	before, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if empty {
		return before, nil
	}

	updated, ok, err := s.repo.ConditionalUpdate(ctx, id, ports.Expectation{}, patch)
	if err != nil {
		return nil, fmt.Errorf("admin update: %w", err)
	}
	if !ok {
		return nil, domain.ErrFreteNotFound
	}

	s.record(updated, before.Status, actor, domain.OpAdminUpdate, "")
	s.logger.Warn().Str("frete_id", id).Str("admin_id", actor.ID).Msg("frete overridden by admin")
	return updated, nil
}

// AdminReassignDriver hands a frete to another active driver, replacing any
// current assignment.
func (s *FreteService) AdminReassignDriver(ctx context.Context, actor domain.Actor, id, driverID string) (*domain.Frete, error) {
	if err := domain.Authorize(actor, domain.OpAdminReassign); err != nil {
		return nil, err
	}

	driverID = strings.TrimSpace(driverID)
	if driverID == "" {
		return nil, domain.NewError(domain.ErrValidation, "motorista_id é obrigatório")
	}
	driver, err := s.users.FindByID(ctx, driverID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.NewError(domain.ErrValidation, "motorista informado não existe")
		}
		return nil, fmt.Errorf("reassign driver: %w", err)
	}
	if !driver.ActiveDriver() {
		return nil, domain.NewError(domain.ErrValidation, "usuário informado não é um motorista ativo")
	}

	before, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	aceito := domain.StatusAceito
	updated, ok, err := s.repo.ConditionalUpdate(ctx, id, ports.Expectation{},
		ports.FretePatch{Status: &aceito, DriverID: &driverID, AcceptedAt: &now},
	)
	if err != nil {
		return nil, fmt.Errorf("reassign driver: %w", err)
	}
	if !ok {
		return nil, domain.ErrFreteNotFound
	}

	previous := ""
	if before.Assigned() {
		previous = *before.DriverID
	}
	s.record(updated, before.Status, actor, domain.OpAdminReassign, "motorista anterior: "+previous)
	s.logger.Warn().
		Str("frete_id", id).
		Str("admin_id", actor.ID).
		Str("previous_driver", previous).
		Str("new_driver", driverID).
		Msg("frete driver reassigned")
	return updated, nil
}

// Get returns a single frete the actor is allowed to see.
func (s *FreteService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Frete, error) {
	if err := domain.Authorize(actor, domain.OpGet); err != nil {
		return nil, err
	}
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !f.VisibleTo(actor) {
		return nil, domain.NewError(domain.ErrForbidden, "acesso negado a este frete")
	}
	return f, nil
}

// GetByCode looks a frete up by its codigo, with the same visibility as Get.
func (s *FreteService) GetByCode(ctx context.Context, actor domain.Actor, code string) (*domain.Frete, error) {
	if err := domain.Authorize(actor, domain.OpGet); err != nil {
		return nil, err
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, domain.NewError(domain.ErrValidation, "código do frete é obrigatório")
	}
	f, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !f.VisibleTo(actor) {
		return nil, domain.NewError(domain.ErrForbidden, "acesso negado a este frete")
	}
	return f, nil
}

// ListMine lists the fretes the actor owns (shipper), holds (driver), or all
// of them (admin).
func (s *FreteService) ListMine(ctx context.Context, actor domain.Actor, in ports.ListMineInput) (*ports.FretePage, error) {
	if err := domain.Authorize(actor, domain.OpListMine); err != nil {
		return nil, err
	}

	page, limit := normalizePage(in.Page, in.Limit)
	filter := ports.ListFretesFilter{Page: page, Limit: limit}
	switch actor.Role {
	case domain.RoleCliente:
		filter.ClientID = actor.ID
	case domain.RoleMotorista:
		filter.DriverID = actor.ID
	}
	if in.Status != "" {
		st, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		filter.Statuses = []domain.FreteStatus{st}
	}
	return s.list(ctx, filter)
}

// History returns the audit trail of a frete visible to the actor.
func (s *FreteService) History(ctx context.Context, actor domain.Actor, id string) ([]*domain.FreteEvent, error) {
	if err := domain.Authorize(actor, domain.OpHistory); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, actor, id); err != nil {
		return nil, err
	}
	events, err := s.events.ListByFrete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("frete history: %w", err)
	}
	return events, nil
}

func (s *FreteService) list(ctx context.Context, filter ports.ListFretesFilter) (*ports.FretePage, error) {
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list fretes: %w", err)
	}
	if items == nil {
		items = []*domain.Frete{}
	}
	return &ports.FretePage{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

func (s *FreteService) record(f *domain.Frete, from domain.FreteStatus, actor domain.Actor, op domain.Operation, notes string) {
	if s.recorder == nil {
		return
	}
	s.recorder.Record(domain.FreteEvent{
		FreteID:    f.ID,
		Code:       f.Code,
		From:       from,
		To:         f.Status,
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Operation:  op,
		Notes:      notes,
		OccurredAt: s.now(),
	})
}

// validateCreate checks the fields a frete request cannot do without.
func validateCreate(in ports.CreateFreteInput) error {
	var msgs []string
	if strings.TrimSpace(in.Cargo.Type) == "" {
		msgs = append(msgs, "tipo de carga é obrigatório")
	}
	if !(in.Cargo.WeightKg > 0) {
		msgs = append(msgs, "peso da carga deve ser maior que zero")
	}
	if !(in.Cargo.Value > 0) {
		msgs = append(msgs, "valor da carga deve ser maior que zero")
	}
	if strings.TrimSpace(in.Origin.City) == "" || strings.TrimSpace(in.Origin.State) == "" {
		msgs = append(msgs, "cidade e estado de origem são obrigatórios")
	}
	if strings.TrimSpace(in.Destination.City) == "" || strings.TrimSpace(in.Destination.State) == "" {
		msgs = append(msgs, "cidade e estado de destino são obrigatórios")
	}
	if in.PickupDeadline != nil && in.DeliveryDeadline != nil && in.DeliveryDeadline.Before(*in.PickupDeadline) {
		msgs = append(msgs, "prazo de entrega anterior ao prazo de coleta")
	}
	if len(msgs) > 0 {
		return domain.NewError(domain.ErrValidation, strings.Join(msgs, "; "))
	}
	return nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

// daysUntil returns whole days from now to t, rounded down; negative once t
// has passed.
func daysUntil(now, t time.Time) int {
	return int(math.Floor(t.Sub(now).Hours() / 24))
}

func windowDays(d time.Duration) int {
	return int(d / (24 * time.Hour))
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func toPerson(p ports.PersonInput) domain.Person {
	return domain.Person{
		Name:     strings.TrimSpace(p.Name),
		Phone:    strings.TrimSpace(p.Phone),
		Email:    strings.TrimSpace(p.Email),
		Document: strings.TrimSpace(p.Document),
	}
}

func toAddress(a ports.AddressInput) domain.Address {
	return domain.Address{
		Street:   strings.TrimSpace(a.Street),
		Number:   strings.TrimSpace(a.Number),
		District: strings.TrimSpace(a.District),
		City:     strings.TrimSpace(a.City),
		State:    strings.ToUpper(strings.TrimSpace(a.State)),
		CEP:      strings.TrimSpace(a.CEP),
	}
}

func toCargo(c ports.CargoInput) domain.Cargo {
	return domain.Cargo{
		Type:        strings.TrimSpace(c.Type),
		WeightKg:    c.WeightKg,
		Value:       c.Value,
		VolumeM3:    c.VolumeM3,
		Description: strings.TrimSpace(c.Description),
	}
}
