package domain

const (
	RoleUser          = "user"
	RoleOperator      = "operator"
	RoleBusinessCoach = "business_coach"
	RoleSuperuser     = "superuser"
)

// Action names a protected operation checked against the policy table.
type Action string

const (
	ActionLoginOTP        Action = "login_otp"
	ActionManageUsers     Action = "manage_users"
	ActionManageAllowList Action = "manage_allowlist"
)

// policy is the single role/action table. Flows ask Allow instead of
// repeating role literals inline.
var policy = map[Action][]string{
	ActionLoginOTP:        {RoleUser, RoleOperator, RoleBusinessCoach, RoleSuperuser},
	ActionManageUsers:     {RoleOperator, RoleSuperuser},
	ActionManageAllowList: {RoleSuperuser},
}

// Allow reports whether the given role may perform the action.
func Allow(role string, action Action) bool {
	for _, r := range policy[action] {
		if r == role {
			return true
		}
	}
	return false
}
