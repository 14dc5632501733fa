package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/broday/transportes/internal/core/domain"
)

type stubEventRepo struct {
	mu     sync.Mutex
	events []domain.FreteEvent
	err    error
}

func (r *stubEventRepo) InsertEvent(_ context.Context, e *domain.FreteEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, *e)
	return nil
}

func (r *stubEventRepo) ListByFrete(_ context.Context, freteID string) ([]*domain.FreteEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.FreteEvent
	for i := range r.events {
		if r.events[i].FreteID == freteID {
			e := r.events[i]
			out = append(out, &e)
		}
	}
	return out, nil
}

func TestDispatcher_PreservesPerFreteOrder(t *testing.T) {
	repo := &stubEventRepo{}
	d := NewDispatcher(4, repo, zerolog.Nop())
	d.Start(context.Background())

	sequence := []domain.FreteStatus{domain.StatusSolicitado, domain.StatusAceito, domain.StatusEmTransito, domain.StatusEntregue}
	for _, to := range sequence {
		for f := 0; f < 10; f++ {
			d.Record(domain.FreteEvent{FreteID: fmt.Sprintf("frete-%d", f), To: to, ActorRole: domain.RoleMotorista})
		}
	}
	d.Stop()

	if len(repo.events) != 40 {
		t.Fatalf("expected 40 persisted events, got %d", len(repo.events))
	}
	for f := 0; f < 10; f++ {
		events, _ := repo.ListByFrete(context.Background(), fmt.Sprintf("frete-%d", f))
		if len(events) != len(sequence) {
			t.Fatalf("frete-%d: expected %d events, got %d", f, len(sequence), len(events))
		}
		for i, e := range events {
			if e.To != sequence[i] {
				t.Errorf("frete-%d: event %d out of order: %s", f, i, e.To)
			}
		}
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	repo := &stubEventRepo{}
	d := NewDispatcher(1, repo, zerolog.Nop())

	for i := 0; i < channelBuffer+10; i++ {
		d.Record(domain.FreteEvent{FreteID: "frete-1", To: domain.StatusAceito})
	}
	d.Start(context.Background())
	d.Stop()

	if len(repo.events) != channelBuffer {
		t.Errorf("expected %d persisted events, got %d", channelBuffer, len(repo.events))
	}
}

func TestDispatcher_RecordAfterStop(t *testing.T) {
	repo := &stubEventRepo{}
	d := NewDispatcher(2, repo, zerolog.Nop())
	d.Start(context.Background())
	d.Stop()
	d.Stop()

	d.Record(domain.FreteEvent{FreteID: "frete-1", To: domain.StatusCancelado})

	if len(repo.events) != 0 {
		t.Errorf("events recorded after Stop must be dropped, got %d", len(repo.events))
	}
}

func TestDispatcher_WriteErrorDoesNotStopWorker(t *testing.T) {
	repo := &stubEventRepo{err: errors.New("mongo down")}
	d := NewDispatcher(1, repo, zerolog.Nop())
	d.Start(context.Background())

	d.Record(domain.FreteEvent{FreteID: "frete-1", To: domain.StatusAceito})
	d.Stop()

	if len(repo.events) != 0 {
		t.Errorf("expected no persisted events, got %d", len(repo.events))
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(8, &stubEventRepo{}, zerolog.Nop())
	for i := 0; i < 100; i++ {
		id := fmt.Sprintf("frete-%d", i)
		a, b := d.shardIndex(id), d.shardIndex(id)
		if a != b || a < 0 || a >= 8 {
			t.Fatalf("unstable or out of range shard for %s: %d %d", id, a, b)
		}
	}
}
