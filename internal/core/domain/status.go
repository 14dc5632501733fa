package domain

// FreteStatus represents the lifecycle state of a frete.
type FreteStatus string

const (
	StatusSolicitado FreteStatus = "solicitado"
	StatusAceito     FreteStatus = "aceito"
	StatusEmTransito FreteStatus = "em_transito"
	StatusEntregue   FreteStatus = "entregue"
	StatusCancelado  FreteStatus = "cancelado"

	// StatusCotado is a legacy value found on old records. It is accepted when
	// decoding but no operation can set it.
	StatusCotado FreteStatus = "cotado"
)

// Statuses lists every status an operation may set, in lifecycle order.
var Statuses = []FreteStatus{
	StatusSolicitado,
	StatusAceito,
	StatusEmTransito,
	StatusEntregue,
	StatusCancelado,
}

// ParseStatus converts s into a FreteStatus, failing with ErrValidation for
// anything outside the five settable statuses.
func ParseStatus(s string) (FreteStatus, error) {
	st := FreteStatus(s)
	if !st.Valid() {
		return "", NewError(ErrValidation, "status inválido: "+s)
	}
	return st, nil
}

// Valid reports whether s is one of the five settable statuses.
func (s FreteStatus) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether no further non-admin transition is allowed from s.
func (s FreteStatus) Terminal() bool {
	return s == StatusEntregue || s == StatusCancelado
}

// Label returns the human-readable Portuguese name used in messages.
func (s FreteStatus) Label() string {
	switch s {
	case StatusSolicitado:
		return "solicitado"
	case StatusAceito:
		return "aceito"
	case StatusEmTransito:
		return "em trânsito"
	case StatusEntregue:
		return "entregue"
	case StatusCancelado:
		return "cancelado"
	case StatusCotado:
		return "cotado"
	default:
		return string(s)
	}
}

// advanceTargets is the transition table for AdvanceStatus: the targets each
// role may request. Admins are listed with every status and skip the
// terminal-state check in CheckAdvance.
var advanceTargets = map[Role]map[FreteStatus]struct{}{
	RoleCliente: {
		StatusCancelado: {},
	},
	RoleMotorista: {
		StatusEmTransito: {},
		StatusEntregue:   {},
	},
	RoleAdmin: {
		StatusSolicitado: {},
		StatusAceito:     {},
		StatusEmTransito: {},
		StatusEntregue:   {},
		StatusCancelado:  {},
	},
}

// AllowedTarget reports whether role may request target through
// AdvanceStatus at all, regardless of the frete's current status.
func AllowedTarget(role Role, target FreteStatus) error {
	if !target.Valid() {
		return NewError(ErrValidation, "status inválido: "+string(target))
	}
	allowed, ok := advanceTargets[role]
	if !ok {
		return NewError(ErrForbidden, "perfil sem permissão para alterar status")
	}
	if _, ok := allowed[target]; !ok {
		return NewError(ErrForbidden, "perfil "+string(role)+" não pode definir status "+target.Label())
	}
	return nil
}

// CheckAdvance is the single choke point for (role, current, target) triples
// reaching AdvanceStatus. Ownership is checked by the caller.
//
// There is no adjacency requirement: a driver may go from aceito straight to
// entregue.
func CheckAdvance(role Role, current, target FreteStatus) error {
	if err := AllowedTarget(role, target); err != nil {
		return err
	}

	switch role {
	case RoleCliente:
		return CheckCancel(current)
	case RoleMotorista:
		if current.Terminal() {
			return NewError(ErrInvalidState, "frete já está "+current.Label())
		}
	}
	return nil
}

// CheckCancel reports whether a shipper may cancel a frete in status current.
func CheckCancel(current FreteStatus) error {
	switch current {
	case StatusEntregue:
		return NewError(ErrInvalidState, "não é possível cancelar um frete já entregue")
	case StatusEmTransito:
		return NewError(ErrInvalidState, "não é possível cancelar um frete em trânsito")
	case StatusCancelado:
		return NewError(ErrInvalidState, "frete já está cancelado")
	}
	return nil
}
