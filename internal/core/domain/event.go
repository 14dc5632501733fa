package domain

import "time"

// FreteEvent records one lifecycle transition for the audit trail.
type FreteEvent struct {
	FreteID    string      `json:"frete_id" bson:"frete_id"`
	Code       string      `json:"codigo" bson:"codigo"`
	From       FreteStatus `json:"de,omitempty" bson:"de,omitempty"`
	To         FreteStatus `json:"para" bson:"para"`
	ActorID    string      `json:"ator_id" bson:"ator_id"`
	ActorRole  Role        `json:"ator_perfil" bson:"ator_perfil"`
	Operation  Operation   `json:"operacao" bson:"operacao"`
	Notes      string      `json:"observacao,omitempty" bson:"observacao,omitempty"`
	OccurredAt time.Time   `json:"ocorrido_em" bson:"ocorrido_em"`
}
