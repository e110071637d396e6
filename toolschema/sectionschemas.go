package toolschema

var (
	GetSections = New(join(
		fields(
			ID("projectId", "ID of the project").Require(),
			ID("suiteId", "ID of the test suite (required unless the project runs in single suite mode)"),
		),
		pagination(),
	)...)

	GetSection = New(
		ID("sectionId", "ID of the section").Require(),
	)

	AddSection = New(
		ID("projectId", "ID of the project").Require(),
		Str("name", "Name of the section").Require(),
		ID("suiteId", "ID of the test suite (required unless the project runs in single suite mode)"),
		ID("parentId", "ID of the parent section, to build section hierarchies"),
		Str("description", "Description of the section"),
	)

	MoveSection = New(
		ID("sectionId", "ID of the section to move").Require(),
		ID("parentId", "ID of the new parent section; omit to keep the current parent"),
		ID("afterId", "ID of the sibling section to place this section after"),
		Bool("toRoot", "true to move the section to the top level; cannot be combined with parentId"),
	)

	UpdateSection = New(
		ID("sectionId", "ID of the section").Require(),
		Str("name", "Name of the section"),
		Str("description", "Description of the section"),
	)

	DeleteSection = New(
		ID("sectionId", "ID of the section to delete").Require(),
		Bool("soft", "true to only report what would be deleted without deleting it"),
	)
)
