package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/broday/transportes/internal/core/domain"
	"github.com/broday/transportes/internal/core/ports"
)

const collectionEvents = "frete_events"

// EventRepository implements ports.EventRepository using MongoDB.
type EventRepository struct {
	col *mongo.Collection
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection(collectionEvents)}
}

var _ ports.EventRepository = (*EventRepository)(nil)

// InsertEvent appends a lifecycle event to the frete_events audit collection.
func (r *EventRepository) InsertEvent(ctx context.Context, event *domain.FreteEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := *event
	doc.OccurredAt = event.OccurredAt.UTC()
	_, err := r.col.InsertOne(ctx, doc)
	return err
}

// ListByFrete returns the events of one frete, oldest first.
func (r *EventRepository) ListByFrete(ctx context.Context, freteID string) ([]*domain.FreteEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "ocorrido_em", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"frete_id": freteID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}
	defer cur.Close(ctx)

	events := []*domain.FreteEvent{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}

// EnsureIndexes creates the lookup index used by ListByFrete.
func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "frete_id", Value: 1}, {Key: "ocorrido_em", Value: 1}},
	})
	return err
}
