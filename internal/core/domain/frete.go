package domain

import "time"

// Address represents a pickup or delivery location.
type Address struct {
	Street   string `json:"logradouro" bson:"logradouro"`
	Number   string `json:"numero" bson:"numero"`
	District string `json:"bairro" bson:"bairro"`
	City     string `json:"cidade" bson:"cidade"`
	State    string `json:"estado" bson:"estado"`
	CEP      string `json:"cep" bson:"cep"`
}

// Person represents a sender or recipient.
type Person struct {
	Name     string `json:"nome" bson:"nome"`
	Phone    string `json:"telefone" bson:"telefone"`
	Email    string `json:"email,omitempty" bson:"email,omitempty"`
	Document string `json:"documento,omitempty" bson:"documento,omitempty"`
}

// Cargo describes what is being carried.
type Cargo struct {
	Type        string  `json:"tipo" bson:"tipo"`
	WeightKg    float64 `json:"peso_kg" bson:"peso_kg"`
	Value       float64 `json:"valor" bson:"valor"`
	VolumeM3    float64 `json:"volume_m3,omitempty" bson:"volume_m3,omitempty"`
	Description string  `json:"descricao,omitempty" bson:"descricao,omitempty"`
}

// Frete is the shipment aggregate root.
type Frete struct {
	ID       string      `json:"id" bson:"_id"`
	Code     string      `json:"codigo" bson:"codigo"`
	Status   FreteStatus `json:"status" bson:"status"`
	ClientID string      `json:"cliente_id" bson:"cliente_id"`
	DriverID *string     `json:"motorista_id" bson:"motorista_id"`

	Sender      Person  `json:"remetente" bson:"remetente"`
	Recipient   Person  `json:"destinatario" bson:"destinatario"`
	Origin      Address `json:"origem" bson:"origem"`
	Destination Address `json:"destino" bson:"destino"`
	Cargo       Cargo   `json:"carga" bson:"carga"`
	Notes       string  `json:"observacoes,omitempty" bson:"observacoes,omitempty"`

	PickupDeadline   *time.Time `json:"prazo_coleta" bson:"prazo_coleta"`
	DeliveryDeadline *time.Time `json:"prazo_entrega" bson:"prazo_entrega"`

	AcceptedAt       *time.Time `json:"aceito_em,omitempty" bson:"aceito_em,omitempty"`
	PickupAt         *time.Time `json:"coletado_em,omitempty" bson:"coletado_em,omitempty"`
	TransitStartedAt *time.Time `json:"transito_iniciado_em,omitempty" bson:"transito_iniciado_em,omitempty"`
	DeliveredAt      *time.Time `json:"entregue_em,omitempty" bson:"entregue_em,omitempty"`

	CancellationReason string     `json:"motivo_cancelamento,omitempty" bson:"motivo_cancelamento,omitempty"`
	CancelledAt        *time.Time `json:"cancelado_em,omitempty" bson:"cancelado_em,omitempty"`

	CreatedAt time.Time `json:"criado_em" bson:"criado_em"`
	UpdatedAt time.Time `json:"atualizado_em" bson:"atualizado_em"`
}

// Assigned reports whether a driver holds the frete.
func (f *Frete) Assigned() bool {
	return f.DriverID != nil && *f.DriverID != ""
}

// AssignedTo reports whether driverID holds the frete.
func (f *Frete) AssignedTo(driverID string) bool {
	return f.Assigned() && *f.DriverID == driverID
}

// OwnedBy reports whether clientID created the frete.
func (f *Frete) OwnedBy(clientID string) bool {
	return f.ClientID == clientID
}

// Available reports whether a driver may still claim the frete.
func (f *Frete) Available() bool {
	return f.Status == StatusSolicitado && !f.Assigned()
}

// VisibleTo reports whether actor may read the frete.
func (f *Frete) VisibleTo(actor Actor) bool {
	switch actor.Role {
	case RoleAdmin:
		return true
	case RoleCliente:
		return f.OwnedBy(actor.ID)
	case RoleMotorista:
		return f.AssignedTo(actor.ID) || f.Available()
	default:
		return false
	}
}
