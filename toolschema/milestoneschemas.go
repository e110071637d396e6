package toolschema

func milestoneFields() []*Field {
	return fields(
		Str("name", "Name of the milestone"),
		Str("description", "Description of the milestone"),
		Int("dueOn", "Due date of the milestone as UNIX timestamp"),
		Int("startOn", "Scheduled start date of the milestone as UNIX timestamp"),
		ID("parentId", "ID of the parent milestone, to create a sub-milestone"),
		Str("refs", "Comma-separated list of references or requirements"),
	)
}

var (
	GetMilestones = New(join(
		fields(
			ID("projectId", "ID of the project").Require(),
			Bool("isCompleted", "true to return completed milestones only, false for open ones only"),
			Bool("isStarted", "true to return started milestones only, false for upcoming ones only"),
		),
		pagination(),
	)...)

	GetMilestone = New(
		ID("milestoneId", "ID of the milestone").Require(),
	)

	AddMilestone = New(join(
		fields(ID("projectId", "ID of the project").Require()),
		required(milestoneFields(), "name"),
	)...)

	UpdateMilestone = New(join(
		fields(ID("milestoneId", "ID of the milestone").Require()),
		milestoneFields(),
		fields(
			Bool("isCompleted", "Mark the milestone as completed"),
			Bool("isStarted", "Mark the milestone as started"),
		),
	)...)

	DeleteMilestone = New(
		ID("milestoneId", "ID of the milestone to delete").Require(),
	)
)
