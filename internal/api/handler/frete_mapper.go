package handler

import (
	"github.com/broday/transportes/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createFreteRequest, idempotencyKey string) ports.CreateFreteInput {
	return ports.CreateFreteInput{
		Sender:           toPersonInput(req.Sender),
		Recipient:        toPersonInput(req.Recipient),
		Origin:           toAddressInput(req.Origin),
		Destination:      toAddressInput(req.Destination),
		Cargo:            toCargoInput(req.Cargo),
		Notes:            req.Notes,
		PickupDeadline:   req.PickupDeadline,
		DeliveryDeadline: req.DeliveryDeadline,
		IdempotencyKey:   idempotencyKey,
	}
}

func toPersonInput(p personRequest) ports.PersonInput {
	return ports.PersonInput{
		Name:     p.Name,
		Phone:    p.Phone,
		Email:    p.Email,
		Document: p.Document,
	}
}

func toAddressInput(a addressRequest) ports.AddressInput {
	return ports.AddressInput{
		Street:   a.Street,
		Number:   a.Number,
		District: a.District,
		City:     a.City,
		State:    a.State,
		CEP:      a.CEP,
	}
}

func toCargoInput(c cargoRequest) ports.CargoInput {
	return ports.CargoInput{
		Type:        c.Type,
		WeightKg:    c.WeightKg,
		Value:       c.Value,
		VolumeM3:    c.VolumeM3,
		Description: c.Description,
	}
}

func toAdminPatch(req adminUpdateRequest) ports.AdminPatchInput {
	return ports.AdminPatchInput{
		Status:      req.Status,
		DriverID:    req.DriverID,
		PickupAt:    req.PickupAt,
		DeliveredAt: req.DeliveredAt,
	}
}

// --- Service result → HTTP response ---

func toPageResponse(p *ports.FretePage) fretePageResponse {
	return fretePageResponse{
		Data: p.Items,
		Pagination: paginationResponse{
			Total:      p.Total,
			Page:       p.Page,
			Limit:      p.Limit,
			TotalPages: p.TotalPages,
		},
	}
}
