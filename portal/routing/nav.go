package routing

import (
	"github.com/Oggm2/registroServicio/core/user"
)

type (
	// NavEntry is one sidebar link. Icon is a named icon for the shell
	// to resolve.
	NavEntry struct {
		Path  string `json:"path"`
		Label string `json:"label"`
		Icon  string `json:"icon"`
	}

	NavSection struct {
		Title   string     `json:"title"`
		Entries []NavEntry `json:"entries"`
	}
)

var gestionSection = NavSection{
	Title: "Gestión",
	Entries: []NavEntry{
		{Path: PathBuscarEstudiante, Label: "Buscar Estudiante", Icon: "magnifying-glass"},
		{Path: PathValidarAsistencia, Label: "Validar Asistencia", Icon: "clipboard-document-check"},
		{Path: PathInscribirServicio, Label: "Inscribir a Servicio", Icon: "user-plus"},
		{Path: PathPreregistros, Label: "Pre-registros", Icon: "queue-list"},
	},
}

var navByRole = map[user.Role][]NavSection{
	user.RoleEstudiante: {
		{
			Title: "Mi Portal",
			Entries: []NavEntry{
				{Path: PathFeria, Label: "Registro Feria", Icon: "calendar-days"},
				{Path: PathMisProyectos, Label: "Mis Proyectos", Icon: "clipboard-document-list"},
				{Path: PathServicios, Label: "Servicios Disponibles", Icon: "eye"},
				{Path: PathMiPerfil, Label: "Mi Perfil", Icon: "user-circle"},
			},
		},
	},
	user.RoleBecario: {
		gestionSection,
	},
	user.RoleAdmin: {
		{
			Title: "Panel",
			Entries: []NavEntry{
				{Path: PathDashboard, Label: "Dashboard", Icon: "chart-bar-square"},
			},
		},
		gestionSection,
		{
			Title: "Administración",
			Entries: []NavEntry{
				{Path: PathGestionServicios, Label: "Gestión Servicios", Icon: "cog-6-tooth"},
				{Path: PathGestionSocios, Label: "Socios Formadores", Icon: "building-office-2"},
				{Path: PathGestionEstudiantes, Label: "Gestión Estudiantes", Icon: "academic-cap"},
				{Path: PathGestionBecarios, Label: "Gestión Becarios", Icon: "user-group"},
				{Path: PathReportes, Label: "Reportes", Icon: "document-arrow-down"},
			},
		},
	},
}

// Navigation returns the sidebar sections for rol. Unrecognized roles
// get no sections.
func Navigation(rol user.Role) []NavSection {
	return navByRole[rol]
}
