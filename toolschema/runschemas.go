package toolschema

func runSelection() []*Field {
	return fields(
		Bool("includeAll", "true to include all test cases of the suite, false for a custom case selection"),
		IDList("caseIds", "IDs of the test cases for a custom case selection"),
	)
}

var (
	GetRuns = New(join(
		fields(
			ID("projectId", "ID of the project").Require(),
			Bool("isCompleted", "true to return completed runs only, false for active runs only"),
			IDList("milestoneId", "Only return runs linked to one of these milestone IDs"),
			IDList("suiteId", "Only return runs of one of these suite IDs"),
		),
		pagination(),
	)...)

	GetRun = New(
		ID("runId", "ID of the test run").Require(),
	)

	AddRun = New(join(
		fields(
			ID("projectId", "ID of the project").Require(),
			Str("name", "Name of the test run").Require(),
			ID("suiteId", "ID of the test suite (required unless the project runs in single suite mode)"),
			Str("description", "Description of the test run"),
			ID("milestoneId", "ID of the milestone to link the test run to"),
			ID("assignedtoId", "ID of the user the test run is assigned to"),
		),
		runSelection(),
		fields(Str("refs", "Comma-separated list of references or requirements")),
	)...)

	UpdateRun = New(join(
		fields(
			ID("runId", "ID of the test run").Require(),
			Str("name", "Name of the test run"),
			Str("description", "Description of the test run"),
			ID("milestoneId", "ID of the milestone to link the test run to"),
		),
		runSelection(),
		fields(Str("refs", "Comma-separated list of references or requirements")),
	)...)

	CloseRun = New(
		ID("runId", "ID of the test run to close").Require(),
	)

	DeleteRun = New(
		ID("runId", "ID of the test run to delete").Require(),
	)
)
