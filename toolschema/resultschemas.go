package toolschema

func resultFields() []*Field {
	return fields(
		ID("statusId", "ID of the result status (1 passed, 2 blocked, 4 retest, 5 failed by default)"),
		Str("comment", "Comment or description of the result"),
		Str("version", "Version or build tested against"),
		Str("elapsed", `Time it took to execute the test, e.g. "30s" or "1m 45s"`),
		Str("defects", "Comma-separated list of defects linked to the result"),
		ID("assignedtoId", "ID of the user the test is assigned to"),
	)
}

var (
	GetResults = New(join(
		fields(
			ID("testId", "ID of the test").Require(),
			statusFilter(),
		),
		pagination(),
	)...)

	GetResultsForCase = New(join(
		fields(
			ID("runId", "ID of the test run").Require(),
			ID("caseId", "ID of the test case").Require(),
			statusFilter(),
		),
		pagination(),
	)...)

	GetResultsForRun = New(join(
		fields(
			ID("runId", "ID of the test run").Require(),
			statusFilter(),
		),
		pagination(),
	)...)

	AddResult = New(join(
		fields(ID("testId", "ID of the test").Require()),
		resultFields(),
	)...)

	AddResultForCase = New(join(
		fields(
			ID("runId", "ID of the test run").Require(),
			ID("caseId", "ID of the test case").Require(),
		),
		resultFields(),
	)...)

	AddResults = New(
		ID("runId", "ID of the test run").Require(),
		List("results", "Results to add, one per test",
			Item(join(fields(ID("testId", "ID of the test").Require()), resultFields())...),
		).Require(),
	)

	AddResultsForCases = New(
		ID("runId", "ID of the test run").Require(),
		List("results", "Results to add, one per test case",
			Item(join(fields(ID("caseId", "ID of the test case").Require()), resultFields())...),
		).Require(),
	)
)
