package domain

import "time"

// Vehicle is a truck or van registered by a driver.
type Vehicle struct {
	ID         string    `json:"id" bson:"_id"`
	DriverID   string    `json:"motorista_id" bson:"motorista_id"`
	Plate      string    `json:"placa" bson:"placa"`
	Type       string    `json:"tipo" bson:"tipo"`
	Model      string    `json:"modelo,omitempty" bson:"modelo,omitempty"`
	CapacityKg float64   `json:"capacidade_kg" bson:"capacidade_kg"`
	Active     bool      `json:"ativo" bson:"ativo"`
	CreatedAt  time.Time `json:"criado_em" bson:"criado_em"`
}
