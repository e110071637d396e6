package toolschema

var (
	GetSuites = New(
		ID("projectId", "ID of the project").Require(),
	)

	GetSuite = New(
		ID("suiteId", "ID of the test suite").Require(),
	)

	AddSuite = New(
		ID("projectId", "ID of the project").Require(),
		Str("name", "Name of the test suite").Require(),
		Str("description", "Description of the test suite"),
	)

	UpdateSuite = New(
		ID("suiteId", "ID of the test suite").Require(),
		Str("name", "Name of the test suite"),
		Str("description", "Description of the test suite"),
	)

	DeleteSuite = New(
		ID("suiteId", "ID of the test suite to delete").Require(),
	)
)
