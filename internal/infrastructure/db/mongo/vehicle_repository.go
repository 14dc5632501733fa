package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/broday/transportes/internal/core/domain"
)

const collectionVehicles = "veiculos"

// VehicleRepository implements ports.VehicleRepository using MongoDB.
type VehicleRepository struct {
	col *mongo.Collection
}

func NewVehicleRepository(db *mongo.Database) *VehicleRepository {
	return &VehicleRepository{col: db.Collection(collectionVehicles)}
}

func (r *VehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if v.ID == "" {
		v.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, v); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrVehicleExists
		}
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

func (r *VehicleRepository) ListByDriver(ctx context.Context, driverID string) ([]*domain.Vehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "criado_em", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"motorista_id": driverID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var vehicles []*domain.Vehicle
	if err := cur.All(ctx, &vehicles); err != nil {
		return nil, fmt.Errorf("decode vehicles: %w", err)
	}
	return vehicles, nil
}

func (r *VehicleRepository) CountActiveByDriver(ctx context.Context, driverID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"motorista_id": driverID, "ativo": true})
}

// EnsureIndexes makes plates unique and speeds up the per-driver lookups.
func (r *VehicleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "placa", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "motorista_id", Value: 1}, {Key: "ativo", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
