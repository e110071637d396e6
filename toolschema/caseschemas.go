package toolschema

func caseFields() []*Field {
	return fields(
		Str("title", "Title of the test case"),
		ID("templateId", "ID of the template (field layout)"),
		ID("typeId", "ID of the case type"),
		ID("priorityId", "ID of the case priority"),
		Str("estimate", `Estimate, e.g. "30s" or "1m 45s"`),
		ID("milestoneId", "ID of the milestone to link the test case to"),
		Str("refs", "Comma-separated list of references or requirements"),
		Str("customPreconds", "Preconditions of the test case"),
		Str("customSteps", "Steps of the test case (text template)"),
		Str("customExpected", "Expected result of the test case (text template)"),
		List("customStepsSeparated", "Separated steps of the test case (steps template)", stepItem()),
	)
}

var (
	GetCase = New(
		ID("caseId", "ID of the test case").Require(),
	)

	GetCases = New(
		ID("projectId", "ID of the project").Require(),
		ID("suiteId", "ID of the test suite (required unless the project runs in single suite mode)"),
		ID("sectionId", "Only return cases of this section"),
		Int("limit", "Maximum number of test cases to return").Min(1).WithDefault(DefaultLimit),
		Int("offset", "Number of test cases to skip").Min(0).WithDefault(DefaultOffset),
		Str("filter", "Only return cases whose title contains this text"),
		IDList("priorityId", "Only return cases with one of these priority IDs"),
		IDList("typeId", "Only return cases with one of these type IDs"),
		IDList("milestoneId", "Only return cases linked to one of these milestone IDs"),
		Int("createdAfter", "Only return cases created after this UNIX timestamp"),
		Int("createdBefore", "Only return cases created before this UNIX timestamp"),
		Int("updatedAfter", "Only return cases updated after this UNIX timestamp"),
		Int("updatedBefore", "Only return cases updated before this UNIX timestamp"),
	)

	AddCase = New(join(
		fields(ID("sectionId", "ID of the section the test case is added to").Require()),
		required(caseFields(), "title"),
	)...)

	UpdateCase = New(join(
		fields(ID("caseId", "ID of the test case").Require()),
		caseFields(),
	)...)

	UpdateCases = New(
		ID("projectId", "ID of the project").Require(),
		ID("suiteId", "ID of the test suite; omit to target the whole project"),
		IDList("caseIds", "IDs of the test cases to update").Require(),
		Obj("data", "Field values applied to every listed test case", caseFields()...).Require(),
	)

	DeleteCase = New(
		ID("caseId", "ID of the test case to delete").Require(),
		Bool("soft", "true to only report what would be deleted without deleting it"),
	)

	DeleteCases = New(
		ID("projectId", "ID of the project").Require(),
		ID("suiteId", "ID of the test suite; omit to target the whole project"),
		IDList("caseIds", "IDs of the test cases to delete").Require(),
		Bool("soft", "true to only report what would be deleted without deleting it"),
	)

	CopyCasesToSection = New(
		ID("sectionId", "ID of the destination section").Require(),
		IDList("caseIds", "IDs of the test cases to copy").Require(),
	)

	MoveCasesToSection = New(
		ID("sectionId", "ID of the destination section").Require(),
		ID("suiteId", "ID of the suite of the destination section").Require(),
		IDList("caseIds", "IDs of the test cases to move").Require(),
	)

	GetCaseHistory = New(
		ID("caseId", "ID of the test case").Require(),
	)

	GetCaseTypes = New()

	GetCaseFields = New()
)
