package entity

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Can reports whether a caller holding role r may perform an
// operation that requires the given role.
func (r Role) Can(required Role) bool {
	return r == required
}
