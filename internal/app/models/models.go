package models

// Role is the single source of truth for what a user may do.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleLeader Role = "leader"
	RoleMember Role = "member"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleLeader, RoleMember:
		return true
	}
	return false
}

// SelfAssignable reports whether a user may pick r at registration.
func (r Role) SelfAssignable() bool {
	return r == RoleLeader || r == RoleMember
}

// RegistrationType selects how users take part in an event.
type RegistrationType string

const (
	RegistrationIndividual RegistrationType = "individual"
	RegistrationTeam       RegistrationType = "team"
)

// Valid reports whether t is a known registration type.
func (t RegistrationType) Valid() bool {
	return t == RegistrationIndividual || t == RegistrationTeam
}
