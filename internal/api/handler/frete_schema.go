package handler

import (
	"time"

	"github.com/broday/transportes/internal/core/domain"
)

// --- Requests ---

type personRequest struct {
	Name     string `json:"nome"`
	Phone    string `json:"telefone"`
	Email    string `json:"email" validate:"omitempty,email"`
	Document string `json:"documento"`
}

type addressRequest struct {
	Street   string `json:"logradouro"`
	Number   string `json:"numero"`
	District string `json:"bairro"`
	City     string `json:"cidade" validate:"required"`
	State    string `json:"estado" validate:"required,len=2"`
	CEP      string `json:"cep"`
}

type cargoRequest struct {
	Type        string  `json:"tipo" validate:"required"`
	WeightKg    float64 `json:"peso_kg" validate:"gt=0"`
	Value       float64 `json:"valor" validate:"gt=0"`
	VolumeM3    float64 `json:"volume_m3" validate:"gte=0"`
	Description string  `json:"descricao"`
}

type createFreteRequest struct {
	Sender           personRequest  `json:"remetente"`
	Recipient        personRequest  `json:"destinatario"`
	Origin           addressRequest `json:"origem"`
	Destination      addressRequest `json:"destino"`
	Cargo            cargoRequest   `json:"carga"`
	Notes            string         `json:"observacoes"`
	PickupDeadline   *time.Time     `json:"prazo_coleta"`
	DeliveryDeadline *time.Time     `json:"prazo_entrega"`
}

type advanceStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type cancelRequest struct {
	Reason string `json:"motivo"`
}

type adminUpdateRequest struct {
	Status      *string    `json:"status"`
	DriverID    *string    `json:"motorista_id"`
	PickupAt    *time.Time `json:"coletado_em"`
	DeliveredAt *time.Time `json:"entregue_em"`
}

type reassignRequest struct {
	DriverID string `json:"motorista_id" validate:"required"`
}

// --- Responses ---

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type fretePageResponse struct {
	Data       []*domain.Frete    `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type freteEventsResponse struct {
	Data []*domain.FreteEvent `json:"data"`
}
