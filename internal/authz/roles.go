package authz

const (
	RoleAgent   = 10
	RoleManager = 40
	RoleAdmin   = 50
)

func IsElevated(roleID int) bool {
	return roleID == RoleManager || roleID == RoleAdmin
}
