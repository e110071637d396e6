package toolschema

var (
	GetSharedSteps = New(join(
		fields(ID("projectId", "ID of the project").Require()),
		pagination(),
	)...)

	GetSharedStep = New(
		ID("sharedStepId", "ID of the shared step set").Require(),
	)

	AddSharedStep = New(
		ID("projectId", "ID of the project").Require(),
		Str("title", "Title of the shared step set").Require(),
		List("customStepsSeparated", "Steps of the shared step set", stepItem()),
	)

	UpdateSharedStep = New(
		ID("sharedStepId", "ID of the shared step set").Require(),
		Str("title", "Title of the shared step set"),
		List("customStepsSeparated", "Steps of the shared step set; replaces all existing steps", stepItem()),
	)

	DeleteSharedStep = New(
		ID("sharedStepId", "ID of the shared step set to delete").Require(),
		Bool("keepInCases", "true to keep the steps in test cases that use the shared step set"),
	)
)
