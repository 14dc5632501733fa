package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/broday/transportes/internal/core/domain"
	"github.com/broday/transportes/internal/core/ports"
)

const collectionFretes = "fretes"

// FreteRepository implements ports.FreteRepository using MongoDB.
type FreteRepository struct {
	col *mongo.Collection
}

func NewFreteRepository(db *mongo.Database) *FreteRepository {
	return &FreteRepository{col: db.Collection(collectionFretes)}
}

// Create inserts a new frete document, assigning its ID.
func (r *FreteRepository) Create(ctx context.Context, f *domain.Frete) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if f.ID == "" {
		f.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, f); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateCode
		}
		return err
	}
	return nil
}

func (r *FreteRepository) FindByID(ctx context.Context, id string) (*domain.Frete, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *FreteRepository) FindByCode(ctx context.Context, code string) (*domain.Frete, error) {
	return r.findOne(ctx, bson.M{"codigo": code})
}

func (r *FreteRepository) findOne(ctx context.Context, filter bson.M) (*domain.Frete, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var f domain.Frete
	if err := r.col.FindOne(ctx, filter).Decode(&f); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFreteNotFound
		}
		return nil, err
	}
	return &f, nil
}

// List returns one page of fretes matching the filter, newest first.
func (r *FreteRepository) List(ctx context.Context, f ports.ListFretesFilter) ([]*domain.Frete, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := listFilter(f)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count fretes: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "criado_em", Value: -1}}).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find fretes: %w", err)
	}
	defer cur.Close(ctx)

	fretes := make([]*domain.Frete, 0, f.Limit)
	for cur.Next(ctx) {
		var fr domain.Frete
		if err := cur.Decode(&fr); err != nil {
			return nil, 0, fmt.Errorf("decode frete: %w", err)
		}
		fretes = append(fretes, &fr)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, err
	}
	return fretes, total, nil
}

// ConditionalUpdate checks the expectation and applies the patch in one
// findOneAndUpdate, returning the document after the update.
func (r *FreteRepository) ConditionalUpdate(ctx context.Context, id string, expect ports.Expectation, patch ports.FretePatch) (*domain.Frete, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var f domain.Frete
	err := r.col.FindOneAndUpdate(ctx, expectationFilter(id, expect), patchUpdate(patch, time.Now().UTC()), opts).Decode(&f)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &f, true, nil
}

// EnsureIndexes creates necessary indexes on the fretes collection.
func (r *FreteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "codigo", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "motorista_id", Value: 1}, {Key: "criado_em", Value: -1}}},
		{Keys: bson.D{{Key: "cliente_id", Value: 1}, {Key: "criado_em", Value: -1}}},
		{Keys: bson.D{{Key: "motorista_id", Value: 1}, {Key: "criado_em", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
