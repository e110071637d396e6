package toolschema

func projectFields() []*Field {
	return fields(
		Str("name", "Name of the project"),
		Str("announcement", "Description or announcement of the project"),
		Bool("showAnnouncement", "Show the announcement on the project overview page"),
	)
}

var (
	GetProjects = New(join(
		fields(Bool("isCompleted", "true to return completed projects only, false for active projects only")),
		pagination(),
	)...)

	GetProject = New(
		ID("projectId", "ID of the project").Require(),
	)

	AddProject = New(join(
		required(projectFields(), "name"),
		fields(Int("suiteMode", "Suite mode: 1 single suite, 2 single suite with baselines, 3 multiple suites").OneOf(1, 2, 3)),
	)...)

	UpdateProject = New(join(
		fields(ID("projectId", "ID of the project").Require()),
		projectFields(),
		fields(Bool("isCompleted", "Mark the project as completed")),
	)...)

	DeleteProject = New(
		ID("projectId", "ID of the project to delete").Require(),
	)
)
