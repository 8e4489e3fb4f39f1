// model/role.go
package model

type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleMinter    Role = "MINTER"
	RoleCurator   Role = "CURATOR"
	RoleUpdater   Role = "UPDATER"
	RoleModerator Role = "MODERATOR"
)

var AllRoles = []Role{RoleAdmin, RoleMinter, RoleCurator, RoleUpdater, RoleModerator}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMinter, RoleCurator, RoleUpdater, RoleModerator:
		return true
	}
	return false
}
