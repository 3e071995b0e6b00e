package user

type Role string

const (
	// RoleUser files and cancels booking requests.
	RoleUser Role = "user"
	// RoleLogistics acts on the room approval lane.
	RoleLogistics Role = "logistics"
	// RoleITAdmin acts on the zoom approval lane.
	RoleITAdmin Role = "it_admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleLogistics, RoleITAdmin:
		return true
	default:
		return false
	}
}
