package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Oggm2/registroServicio/core/user"
)

func Test_Landing(t *testing.T) {
	assert.Equal(t, PathFeria, Landing(user.RoleEstudiante))
	assert.Equal(t, PathBuscarEstudiante, Landing(user.RoleBecario))
	assert.Equal(t, PathDashboard, Landing(user.RoleAdmin))
	assert.Equal(t, PathDashboard, Landing(user.Role("Desconocido")))
}

// every role must be admitted to its own landing page
func Test_Landing_reachable(t *testing.T) {
	for _, rol := range user.AllRoles {
		landing := Landing(rol)
		rd, ok := FindRoute(landing)
		if !ok {
			t.Fatalf("Landing(%v) = %v: not in the route table", rol, landing)
		}
		decision := Evaluate(snapFor(rol), rd)
		assert.Equal(t, ActionRender, decision.Action, "Landing(%v) = %v", rol, landing)
	}
}
