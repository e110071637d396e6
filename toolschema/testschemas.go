package toolschema

var (
	GetTests = New(join(
		fields(
			ID("runId", "ID of the test run").Require(),
			statusFilter(),
		),
		pagination(),
	)...)

	GetTest = New(
		ID("testId", "ID of the test").Require(),
	)
)
