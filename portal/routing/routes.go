// Package routing decides what an authenticated (or anonymous) user may
// see and where the portal sends them.
package routing

import (
	"strings"

	"github.com/Oggm2/registroServicio/core/user"
)

// Paths known to the portal. Parameterized paths use echo-style ":param"
// segments.
const (
	PathLogin          = "/login"
	PathRegister       = "/register"
	PathForgotPassword = "/forgot-password"
	PathResetPassword  = "/reset-password/:token"

	PathFeria        = "/feria"
	PathMisProyectos = "/mis-proyectos"
	PathServicios    = "/servicios"
	PathMiPerfil     = "/mi-perfil"

	PathBuscarEstudiante  = "/buscar-estudiante"
	PathValidarAsistencia = "/validar-asistencia"
	PathInscribirServicio = "/inscribir-servicio"
	PathPreregistros      = "/preregistros"

	PathDashboard          = "/dashboard"
	PathGestionServicios   = "/gestion-servicios"
	PathGestionSocios      = "/gestion-socios"
	PathSocioFormador      = "/socios-formadores/:id"
	PathGestionEstudiantes = "/gestion-estudiantes"
	PathGestionBecarios    = "/gestion-becarios"
	PathReportes           = "/reportes"
)

// RouteDescriptor is a protected or public portal route. An empty
// RequiredRoles means the route is public.
type RouteDescriptor struct {
	Path          string
	RequiredRoles []user.Role
}

func (rd RouteDescriptor) Public() bool { return len(rd.RequiredRoles) == 0 }

// Allows reports whether rol may enter the route.
func (rd RouteDescriptor) Allows(rol user.Role) bool {
	if rd.Public() {
		return true
	}
	for _, required := range rd.RequiredRoles {
		if rol == required {
			return true
		}
	}
	return false
}

var (
	staffRoles = []user.Role{user.RoleBecario, user.RoleAdmin}
	adminOnly  = []user.Role{user.RoleAdmin}
	estudiante = []user.Role{user.RoleEstudiante}
)

// Routes is the portal's route table.
var Routes = []RouteDescriptor{
	{Path: PathLogin},
	{Path: PathRegister},
	{Path: PathForgotPassword},
	{Path: PathResetPassword},

	{Path: PathFeria, RequiredRoles: estudiante},
	{Path: PathMisProyectos, RequiredRoles: estudiante},
	{Path: PathServicios, RequiredRoles: estudiante},
	{Path: PathMiPerfil, RequiredRoles: estudiante},

	{Path: PathBuscarEstudiante, RequiredRoles: staffRoles},
	{Path: PathValidarAsistencia, RequiredRoles: staffRoles},
	{Path: PathInscribirServicio, RequiredRoles: staffRoles},
	{Path: PathPreregistros, RequiredRoles: staffRoles},

	{Path: PathDashboard, RequiredRoles: adminOnly},
	{Path: PathGestionServicios, RequiredRoles: adminOnly},
	{Path: PathGestionSocios, RequiredRoles: adminOnly},
	{Path: PathSocioFormador, RequiredRoles: adminOnly},
	{Path: PathGestionEstudiantes, RequiredRoles: adminOnly},
	{Path: PathGestionBecarios, RequiredRoles: adminOnly},
	{Path: PathReportes, RequiredRoles: adminOnly},
}

// FindRoute matches path against the route table. Parameterized segments
// match any non-empty value.
func FindRoute(path string) (RouteDescriptor, bool) {
	for _, rd := range Routes {
		if matchPath(rd.Path, path) {
			return rd, true
		}
	}
	return RouteDescriptor{}, false
}

func matchPath(pattern, path string) bool {
	if pattern == path {
		return true
	}
	pSegs := strings.Split(strings.Trim(pattern, "/"), "/")
	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(pSegs) != len(segs) {
		return false
	}
	for i, pSeg := range pSegs {
		if strings.HasPrefix(pSeg, ":") {
			if segs[i] == "" {
				return false
			}
			continue
		}
		if pSeg != segs[i] {
			return false
		}
	}
	return true
}
