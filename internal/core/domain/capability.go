package domain

// Role identifies the kind of actor calling an operation.
type Role string

const (
	RoleCliente   Role = "cliente"
	RoleMotorista Role = "motorista"
	RoleAdmin     Role = "admin"
)

// Roles lists every known role.
var Roles = []Role{RoleCliente, RoleMotorista, RoleAdmin}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleCliente || r == RoleMotorista || r == RoleAdmin
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   string
	Role Role
}

// Operation names an entry point of the frete lifecycle.
type Operation string

const (
	OpCreate          Operation = "create"
	OpListAvailable   Operation = "list_available"
	OpAccept          Operation = "accept"
	OpAdvanceStatus   Operation = "advance_status"
	OpCancel          Operation = "cancel"
	OpAdminUpdate     Operation = "admin_update"
	OpAdminReassign   Operation = "admin_reassign"
	OpGet             Operation = "get"
	OpListMine        Operation = "list_mine"
	OpHistory         Operation = "history"
	OpRegisterVehicle Operation = "register_vehicle"
	OpListVehicles    Operation = "list_vehicles"
)

// capabilities maps each operation to the roles allowed to call it.
var capabilities = map[Operation][]Role{
	OpCreate:          {RoleCliente},
	OpListAvailable:   {RoleMotorista},
	OpAccept:          {RoleMotorista},
	OpAdvanceStatus:   {RoleCliente, RoleMotorista, RoleAdmin},
	OpCancel:          {RoleCliente},
	OpAdminUpdate:     {RoleAdmin},
	OpAdminReassign:   {RoleAdmin},
	OpGet:             {RoleCliente, RoleMotorista, RoleAdmin},
	OpListMine:        {RoleCliente, RoleMotorista, RoleAdmin},
	OpHistory:         {RoleCliente, RoleMotorista, RoleAdmin},
	OpRegisterVehicle: {RoleMotorista},
	OpListVehicles:    {RoleMotorista},
}

// Can reports whether role may call op.
func Can(role Role, op Operation) bool {
	for _, r := range capabilities[op] {
		if r == role {
			return true
		}
	}
	return false
}

// RolesFor returns the roles allowed to call op.
func RolesFor(op Operation) []Role {
	out := make([]Role, len(capabilities[op]))
	copy(out, capabilities[op])
	return out
}

// Authorize returns ErrForbidden when the actor's role may not call op.
func Authorize(actor Actor, op Operation) error {
	if !Can(actor.Role, op) {
		return NewError(ErrForbidden, "operação não permitida para o perfil "+string(actor.Role))
	}
	return nil
}
