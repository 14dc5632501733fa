package mongo

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/broday/transportes/internal/core/domain"
	"github.com/broday/transportes/internal/core/ports"
)

// listFilter translates a ListFretesFilter into a Mongo query document.
func listFilter(f ports.ListFretesFilter) bson.M {
	filter := bson.M{}

	if len(f.Statuses) > 0 {
		filter["status"] = bson.M{"$in": statusValues(f.Statuses)}
	}
	if f.UnassignedOnly {
		filter["motorista_id"] = nil
	}
	if f.ClientID != "" {
		filter["cliente_id"] = f.ClientID
	}
	if f.DriverID != "" {
		filter["motorista_id"] = f.DriverID
	}

	var and []bson.M
	if f.Origin != "" {
		and = append(and, addressMatch("origem", f.Origin))
	}
	if f.Destination != "" {
		and = append(and, addressMatch("destino", f.Destination))
	}
	if len(and) > 0 {
		filter["$and"] = and
	}

	if f.CargoType != "" {
		filter["carga.tipo"] = containsRegex(f.CargoType)
	}

	value := bson.M{}
	if f.MinValue != nil {
		value["$gte"] = *f.MinValue
	}
	if f.MaxValue != nil {
		value["$lte"] = *f.MaxValue
	}
	if len(value) > 0 {
		filter["carga.valor"] = value
	}

	return filter
}

// addressMatch matches term against the street, district or city of the
// embedded address at prefix.
func addressMatch(prefix, term string) bson.M {
	re := containsRegex(term)
	return bson.M{"$or": bson.A{
		bson.M{prefix + ".cidade": re},
		bson.M{prefix + ".bairro": re},
		bson.M{prefix + ".logradouro": re},
	}}
}

func containsRegex(term string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(term), "$options": "i"}
}

// expectationFilter is the guard of a conditional update on id.
func expectationFilter(id string, e ports.Expectation) bson.M {
	filter := bson.M{"_id": id}
	if len(e.Statuses) > 0 {
		filter["status"] = bson.M{"$in": statusValues(e.Statuses)}
	}
	switch {
	case e.DriverUnset:
		filter["motorista_id"] = nil
	case e.DriverID != "":
		filter["motorista_id"] = e.DriverID
	}
	return filter
}

// patchUpdate builds the $set document of a conditional update.
func patchUpdate(p ports.FretePatch, now time.Time) bson.M {
	set := bson.M{"atualizado_em": now}

	if p.Status != nil {
		set["status"] = string(*p.Status)
	}
	if p.DriverID != nil {
		if *p.DriverID == "" {
			set["motorista_id"] = nil
		} else {
			set["motorista_id"] = *p.DriverID
		}
	}
	setTime(set, "aceito_em", p.AcceptedAt)
	setTime(set, "coletado_em", p.PickupAt)
	setTime(set, "transito_iniciado_em", p.TransitStartedAt)
	setTime(set, "entregue_em", p.DeliveredAt)
	setTime(set, "cancelado_em", p.CancelledAt)
	if p.CancellationReason != nil {
		set["motivo_cancelamento"] = *p.CancellationReason
	}

	return bson.M{"$set": set}
}

func setTime(set bson.M, field string, t *time.Time) {
	if t != nil {
		set[field] = t.UTC()
	}
}

func statusValues(statuses []domain.FreteStatus) bson.A {
	out := make(bson.A, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}
