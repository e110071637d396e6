package toolschema

func planEntryFields() []*Field {
	return join(
		fields(
			ID("suiteId", "ID of the test suite of the entry").Require(),
			Str("name", "Name of the entry"),
			Str("description", "Description of the entry"),
			ID("assignedtoId", "ID of the user the entry is assigned to"),
		),
		runSelection(),
		fields(
			IDList("configIds", "IDs of the configurations of the entry"),
			List("runs", "Runs of the entry, one per configuration combination", Item(
				Bool("includeAll", "true to include all test cases of the suite"),
				IDList("caseIds", "IDs of the test cases for a custom case selection"),
				IDList("configIds", "IDs of the configurations of this run"),
				ID("assignedtoId", "ID of the user the run is assigned to"),
			)),
		),
	)
}

var (
	GetPlans = New(join(
		fields(
			ID("projectId", "ID of the project").Require(),
			Bool("isCompleted", "true to return completed plans only, false for active plans only"),
			IDList("milestoneId", "Only return plans linked to one of these milestone IDs"),
		),
		pagination(),
	)...)

	GetPlan = New(
		ID("planId", "ID of the test plan").Require(),
	)

	AddPlan = New(
		ID("projectId", "ID of the project").Require(),
		Str("name", "Name of the test plan").Require(),
		Str("description", "Description of the test plan"),
		ID("milestoneId", "ID of the milestone to link the test plan to"),
		List("entries", "Entries of the test plan, one per test suite", Item(planEntryFields()...)),
	)

	AddPlanEntry = New(join(
		fields(ID("planId", "ID of the test plan").Require()),
		planEntryFields(),
	)...)

	UpdatePlan = New(
		ID("planId", "ID of the test plan").Require(),
		Str("name", "Name of the test plan"),
		Str("description", "Description of the test plan"),
		ID("milestoneId", "ID of the milestone to link the test plan to"),
	)

	UpdatePlanEntry = New(join(
		fields(
			ID("planId", "ID of the test plan").Require(),
			Str("entryId", "ID of the plan entry").Require(),
			Str("name", "Name of the entry"),
			Str("description", "Description of the entry"),
			ID("assignedtoId", "ID of the user the entry is assigned to"),
		),
		runSelection(),
	)...)

	ClosePlan = New(
		ID("planId", "ID of the test plan to close").Require(),
	)

	DeletePlan = New(
		ID("planId", "ID of the test plan to delete").Require(),
	)

	DeletePlanEntry = New(
		ID("planId", "ID of the test plan").Require(),
		Str("entryId", "ID of the plan entry to delete").Require(),
	)
)
