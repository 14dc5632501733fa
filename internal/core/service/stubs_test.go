package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/broday/transportes/internal/core/domain"
	"github.com/broday/transportes/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub frete repository
// ---------------------------------------------------------------------------

type stubFreteRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Frete
	seq       int
	createErr error // if set, Create returns this error
	updateErr error // if set, ConditionalUpdate returns this error
	updates   int   // successful conditional updates
}

func newStubFreteRepo() *stubFreteRepo {
	return &stubFreteRepo{byID: make(map[string]*domain.Frete)}
}

func cloneFrete(f *domain.Frete) *domain.Frete {
	clone := *f
	if f.DriverID != nil {
		id := *f.DriverID
		clone.DriverID = &id
	}
	return &clone
}

func (r *stubFreteRepo) Create(_ context.Context, f *domain.Frete) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.byID {
		if existing.Code == f.Code {
			return domain.ErrDuplicateCode
		}
	}
	if f.ID == "" {
		r.seq++
		f.ID = fmt.Sprintf("frete-%d", r.seq)
	}
	r.byID[f.ID] = cloneFrete(f)
	return nil
}

func (r *stubFreteRepo) FindByID(_ context.Context, id string) (*domain.Frete, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrFreteNotFound
	}
	return cloneFrete(f), nil
}

func (r *stubFreteRepo) FindByCode(_ context.Context, code string) (*domain.Frete, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, f := range r.byID {
		if f.Code == code {
			return cloneFrete(f), nil
		}
	}
	return nil, domain.ErrFreteNotFound
}

// List applies the same filters the real Mongo repo would use.
func (r *stubFreteRepo) List(_ context.Context, f ports.ListFretesFilter) ([]*domain.Frete, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contains := func(haystack, needle string) bool {
		return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
	}

	var matched []*domain.Frete
	for _, fr := range r.byID {
		if len(f.Statuses) > 0 && !statusIn(fr.Status, f.Statuses) {
			continue
		}
		if f.UnassignedOnly && fr.DriverID != nil {
			continue
		}
		if f.ClientID != "" && fr.ClientID != f.ClientID {
			continue
		}
		if f.DriverID != "" && !fr.AssignedTo(f.DriverID) {
			continue
		}
		if f.Origin != "" && !contains(fr.Origin.City+" "+fr.Origin.District+" "+fr.Origin.Street, f.Origin) {
			continue
		}
		if f.Destination != "" && !contains(fr.Destination.City+" "+fr.Destination.District+" "+fr.Destination.Street, f.Destination) {
			continue
		}
		if f.CargoType != "" && !contains(fr.Cargo.Type, f.CargoType) {
			continue
		}
		if f.MinValue != nil && fr.Cargo.Value < *f.MinValue {
			continue
		}
		if f.MaxValue != nil && fr.Cargo.Value > *f.MaxValue {
			continue
		}
		matched = append(matched, cloneFrete(fr))
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	skip := (f.Page - 1) * f.Limit
	if skip > len(matched) {
		return []*domain.Frete{}, total, nil
	}
	end := skip + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

// ConditionalUpdate checks and writes under one lock, like the single
// findOneAndUpdate the Mongo repo issues.
func (r *stubFreteRepo) ConditionalUpdate(_ context.Context, id string, expect ports.Expectation, patch ports.FretePatch) (*domain.Frete, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.updateErr != nil {
		return nil, false, r.updateErr
	}
	f, ok := r.byID[id]
	if !ok {
		return nil, false, nil
	}
	if len(expect.Statuses) > 0 && !statusIn(f.Status, expect.Statuses) {
		return nil, false, nil
	}
	if expect.DriverUnset && f.DriverID != nil {
		return nil, false, nil
	}
	if expect.DriverID != "" && !f.AssignedTo(expect.DriverID) {
		return nil, false, nil
	}

	if patch.Status != nil {
		f.Status = *patch.Status
	}
	if patch.DriverID != nil {
		if *patch.DriverID == "" {
			f.DriverID = nil
		} else {
			id := *patch.DriverID
			f.DriverID = &id
		}
	}
	if patch.AcceptedAt != nil {
		f.AcceptedAt = patch.AcceptedAt
	}
	if patch.PickupAt != nil {
		f.PickupAt = patch.PickupAt
	}
	if patch.TransitStartedAt != nil {
		f.TransitStartedAt = patch.TransitStartedAt
	}
	if patch.DeliveredAt != nil {
		f.DeliveredAt = patch.DeliveredAt
	}
	if patch.CancelledAt != nil {
		f.CancelledAt = patch.CancelledAt
	}
	if patch.CancellationReason != nil {
		f.CancellationReason = *patch.CancellationReason
	}
	r.updates++
	return cloneFrete(f), true, nil
}

func statusIn(s domain.FreteStatus, set []domain.FreteStatus) bool {
	for _, candidate := range set {
		if s == candidate {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Other collaborators
// ---------------------------------------------------------------------------

type stubVehicles struct {
	withVehicle map[string]bool
	err         error
}

func (v *stubVehicles) HasActiveVehicle(_ context.Context, driverID string) (bool, error) {
	if v.err != nil {
		return false, v.err
	}
	return v.withVehicle[driverID], nil
}

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User // keyed by email
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = "user-" + user.Email
	}
	r.users[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type stubEventRepo struct {
	events []*domain.FreteEvent
	err    error
}

func (r *stubEventRepo) InsertEvent(_ context.Context, e *domain.FreteEvent) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, e)
	return nil
}

func (r *stubEventRepo) ListByFrete(_ context.Context, freteID string) ([]*domain.FreteEvent, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*domain.FreteEvent
	for _, e := range r.events {
		if e.FreteID == freteID {
			out = append(out, e)
		}
	}
	return out, nil
}

// stubRecorder stores events synchronously.
type stubRecorder struct {
	mu     sync.Mutex
	events []domain.FreteEvent
}

func (r *stubRecorder) Record(e domain.FreteEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// stubIdempotency holds "" for a reserved key whose creation is in flight.
type stubIdempotency struct {
	mu         sync.Mutex
	keys       map[string]string
	reserveErr error
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{keys: make(map[string]string)}
}

func (s *stubIdempotency) Reserve(_ context.Context, scope, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.reserveErr != nil {
		return "", false, s.reserveErr
	}
	if id, ok := s.keys[scope+":"+key]; ok {
		return id, false, nil
	}
	s.keys[scope+":"+key] = ""
	return "", true, nil
}

func (s *stubIdempotency) Complete(_ context.Context, scope, key, freteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[scope+":"+key] = freteID
	return nil
}

func (s *stubIdempotency) Release(_ context.Context, scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, scope+":"+key)
	return nil
}

var discardLogger = zerolog.Nop()
