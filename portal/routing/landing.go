package routing

import (
	"github.com/Oggm2/registroServicio/core/user"
)

// Landing maps a role to the page it lands on after signing in.
// Unrecognized roles fall back to the dashboard, where the guard takes
// over.
func Landing(rol user.Role) string {
	switch rol {
	case user.RoleEstudiante:
		return PathFeria
	case user.RoleBecario:
		return PathBuscarEstudiante
	default:
		return PathDashboard
	}
}
