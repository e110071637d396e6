package toolschema

// Entity schemas describe upstream records in the wire vocabulary. They are
// advisory: records are passed through untouched and undeclared custom_* keys
// are allowed.

func nullable(fs ...*Field) []*Field {
	for _, f := range fs {
		f.Nullable = true
	}
	return fs
}

func stepRecord() *Field {
	return Item(nullable(
		Str("content", "Action of the step"),
		Str("expected", "Expected result of the step"),
		Str("additional_info", "Additional information for the step"),
		Str("refs", "References of the step"),
	)...)
}

var (
	ProjectEntity = New(join(
		fields(ID("id", "Unique ID of the project").Require()),
		nullable(
			Str("name", "Name of the project"),
			Str("announcement", "Description or announcement of the project"),
			Bool("show_announcement", "Whether the announcement is shown on the overview page"),
			Bool("is_completed", "Whether the project is completed"),
			Int("completed_on", "Completion date as UNIX timestamp"),
			Int("suite_mode", "Suite mode: 1 single, 2 baselines, 3 multiple"),
			Str("url", "Address of the project in the user interface"),
		),
	)...)

	SuiteEntity = New(join(
		fields(ID("id", "Unique ID of the test suite").Require()),
		nullable(
			ID("project_id", "ID of the project"),
			Str("name", "Name of the test suite"),
			Str("description", "Description of the test suite"),
			Bool("is_baseline", "Whether the suite is a baseline"),
			Bool("is_master", "Whether the suite is the master suite"),
			Bool("is_completed", "Whether the suite is completed"),
			Int("completed_on", "Completion date as UNIX timestamp"),
			Str("url", "Address of the suite in the user interface"),
		),
	)...)

	SectionEntity = New(join(
		fields(ID("id", "Unique ID of the section").Require()),
		nullable(
			ID("suite_id", "ID of the test suite"),
			ID("parent_id", "ID of the parent section"),
			Str("name", "Name of the section"),
			Str("description", "Description of the section"),
			Int("depth", "Level in the section hierarchy"),
			Int("display_order", "Order in the test suite"),
		),
	)...)

	CaseEntity = New(join(
		fields(ID("id", "Unique ID of the test case").Require()),
		nullable(
			Str("title", "Title of the test case"),
			ID("section_id", "ID of the section"),
			ID("suite_id", "ID of the test suite"),
			ID("template_id", "ID of the template"),
			ID("type_id", "ID of the case type"),
			ID("priority_id", "ID of the priority"),
			ID("milestone_id", "ID of the linked milestone"),
			Str("refs", "References or requirements"),
			Str("estimate", "Estimate"),
			Int("created_by", "ID of the creator"),
			Int("created_on", "Creation date as UNIX timestamp"),
			Int("updated_by", "ID of the last editor"),
			Int("updated_on", "Last update as UNIX timestamp"),
			Str("custom_preconds", "Preconditions"),
			Str("custom_steps", "Steps (text template)"),
			Str("custom_expected", "Expected result (text template)"),
			List("custom_steps_separated", "Separated steps (steps template)", stepRecord()),
		),
	)...)

	RunEntity = New(join(
		fields(ID("id", "Unique ID of the test run").Require()),
		nullable(
			ID("project_id", "ID of the project"),
			ID("suite_id", "ID of the test suite"),
			ID("plan_id", "ID of the test plan the run belongs to"),
			ID("milestone_id", "ID of the linked milestone"),
			ID("assignedto_id", "ID of the assignee"),
			Str("name", "Name of the test run"),
			Str("description", "Description of the test run"),
			Bool("include_all", "Whether all test cases of the suite are included"),
			Bool("is_completed", "Whether the run is closed"),
			IDList("config_ids", "IDs of the configurations"),
			Int("passed_count", "Number of passed tests"),
			Int("failed_count", "Number of failed tests"),
			Int("blocked_count", "Number of blocked tests"),
			Int("retest_count", "Number of tests marked retest"),
			Int("untested_count", "Number of untested tests"),
			Str("refs", "References or requirements"),
			Str("url", "Address of the run in the user interface"),
		),
	)...)

	TestEntity = New(join(
		fields(ID("id", "Unique ID of the test").Require()),
		nullable(
			ID("case_id", "ID of the test case"),
			ID("run_id", "ID of the test run"),
			ID("status_id", "ID of the current status"),
			ID("assignedto_id", "ID of the assignee"),
			Str("title", "Title of the test case"),
		),
	)...)

	ResultEntity = New(join(
		fields(ID("id", "Unique ID of the result").Require()),
		nullable(
			ID("test_id", "ID of the test"),
			ID("status_id", "ID of the status"),
			Str("comment", "Comment of the result"),
			Str("version", "Version or build tested against"),
			Str("elapsed", "Time it took to execute the test"),
			Str("defects", "Linked defects"),
			ID("assignedto_id", "ID of the assignee"),
			Int("created_by", "ID of the creator"),
			Int("created_on", "Creation date as UNIX timestamp"),
		),
	)...)

	PlanEntity = New(join(
		fields(ID("id", "Unique ID of the test plan").Require()),
		nullable(
			ID("project_id", "ID of the project"),
			ID("milestone_id", "ID of the linked milestone"),
			Str("name", "Name of the test plan"),
			Str("description", "Description of the test plan"),
			Bool("is_completed", "Whether the plan is closed"),
			Int("passed_count", "Number of passed tests"),
			Int("failed_count", "Number of failed tests"),
			Int("untested_count", "Number of untested tests"),
			List("entries", "Entries of the test plan", Item(nullable(
				Str("id", "Unique ID of the entry"),
				ID("suite_id", "ID of the test suite"),
				Str("name", "Name of the entry"),
				List("runs", "Runs of the entry", Item(ID("id", "ID of the run"))),
			)...)),
			Str("url", "Address of the plan in the user interface"),
		),
	)...)

	MilestoneEntity = New(join(
		fields(ID("id", "Unique ID of the milestone").Require()),
		nullable(
			ID("project_id", "ID of the project"),
			ID("parent_id", "ID of the parent milestone"),
			Str("name", "Name of the milestone"),
			Str("description", "Description of the milestone"),
			Int("due_on", "Due date as UNIX timestamp"),
			Int("start_on", "Scheduled start as UNIX timestamp"),
			Bool("is_completed", "Whether the milestone is completed"),
			Bool("is_started", "Whether the milestone is started"),
			Str("refs", "References or requirements"),
			Str("url", "Address of the milestone in the user interface"),
		),
	)...)

	SharedStepEntity = New(join(
		fields(ID("id", "Unique ID of the shared step set").Require()),
		nullable(
			ID("project_id", "ID of the project"),
			Str("title", "Title of the shared step set"),
			List("custom_steps_separated", "Steps of the shared step set", stepRecord()),
			IDList("case_ids", "IDs of the test cases using the set"),
			Int("created_on", "Creation date as UNIX timestamp"),
			Int("updated_on", "Last update as UNIX timestamp"),
		),
	)...)
)

// EntitySchemas maps each entity name to its record schema.
var EntitySchemas = map[string]*Schema{
	"project":    ProjectEntity,
	"suite":      SuiteEntity,
	"section":    SectionEntity,
	"case":       CaseEntity,
	"run":        RunEntity,
	"test":       TestEntity,
	"result":     ResultEntity,
	"plan":       PlanEntity,
	"milestone":  MilestoneEntity,
	"sharedStep": SharedStepEntity,
}
