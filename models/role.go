package models

// Role is the closed set of account roles. The token and the database both
// carry the string form, so new roles must be added here and nowhere else.
type Role string

const (
	RoleHost  Role = "HOST"
	RoleGuest Role = "GUEST"
)

// Operation names a guarded mutation.
type Operation string

const (
	OpCreateProperty    Operation = "property:create"
	OpUpdateProperty    Operation = "property:update"
	OpDeleteProperty    Operation = "property:delete"
	OpAttachAmenity     Operation = "property:attach_amenity"
	OpCreateReservation Operation = "reservation:create"
	OpCancelOwnBooking  Operation = "reservation:cancel_own"
	OpCancelAsHost      Operation = "reservation:cancel_as_host"
)

var rolePermissions = map[Role]map[Operation]bool{
	RoleHost: {
		OpCreateProperty: true,
		OpUpdateProperty: true,
		OpDeleteProperty: true,
		OpAttachAmenity:  true,
		OpCancelAsHost:   true,
	},
	RoleGuest: {
		OpCreateReservation: true,
		OpCancelOwnBooking:  true,
	},
}

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// Can reports whether the role is allowed to perform op.
func (r Role) Can(op Operation) bool {
	return rolePermissions[r][op]
}
