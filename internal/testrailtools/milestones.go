package testrailtools

import (
	"context"
	"fmt"

	"github.com/contenox/testrail-mcp/apiframework"
	"github.com/contenox/testrail-mcp/testrailsdk"
	"github.com/contenox/testrail-mcp/toolschema"
)

func (r *Registry) registerMilestoneTools() {
	milestones := r.client.Milestones

	r.register(&Tool{
		Name:        "getMilestones",
		Description: "List the milestones of a project.",
		Entity:      "milestone",
		Schema:      toolschema.GetMilestones,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			projectID := args.Int("projectId")
			filter, err := decode[testrailsdk.MilestoneFilter](args)
			if err != nil {
				return fail(fmt.Sprintf("Failed to get milestones of project %d", projectID), err)
			}
			page, err := milestones.List(ctx, projectID, filter)
			if err != nil {
				return fail(fmt.Sprintf("Failed to get milestones of project %d", projectID), err)
			}
			return apiframework.Success(fmt.Sprintf("Retrieved %d milestones of project %d", len(page.Items), projectID), listData(page, args))
		},
	})

	r.register(&Tool{
		Name:        "getMilestone",
		Description: "Get one milestone by ID.",
		Entity:      "milestone",
		Schema:      toolschema.GetMilestone,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			milestoneID := args.Int("milestoneId")
			milestone, err := milestones.Get(ctx, milestoneID)
			if err != nil {
				return fail(fmt.Sprintf("Failed to get milestone %d", milestoneID), err)
			}
			return ok(fmt.Sprintf("Retrieved milestone %d", milestoneID), "milestone", milestone)
		},
	})

	r.register(&Tool{
		Name:        "addMilestone",
		Description: "Create a milestone, optionally as a sub-milestone of parentId.",
		Entity:      "milestone",
		Schema:      toolschema.AddMilestone,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			projectID := args.Int("projectId")
			req, err := decode[testrailsdk.MilestoneRequest](args)
			if err != nil {
				return fail(fmt.Sprintf("Failed to add milestone to project %d", projectID), err)
			}
			milestone, err := milestones.Add(ctx, projectID, req)
			if err != nil {
				return fail(fmt.Sprintf("Failed to add milestone to project %d", projectID), err)
			}
			return ok(fmt.Sprintf("Created milestone %q in project %d", req.Name, projectID), "milestone", milestone)
		},
	})

	r.register(&Tool{
		Name:        "updateMilestone",
		Description: "Update a milestone, including its started and completed state.",
		Entity:      "milestone",
		Schema:      toolschema.UpdateMilestone,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			milestoneID := args.Int("milestoneId")
			req, err := decode[testrailsdk.MilestoneRequest](args)
			if err != nil {
				return fail(fmt.Sprintf("Failed to update milestone %d", milestoneID), err)
			}
			milestone, err := milestones.Update(ctx, milestoneID, req)
			if err != nil {
				return fail(fmt.Sprintf("Failed to update milestone %d", milestoneID), err)
			}
			return ok(fmt.Sprintf("Updated milestone %d", milestoneID), "milestone", milestone)
		},
	})

	r.register(&Tool{
		Name:        "deleteMilestone",
		Description: "Delete a milestone. This cannot be undone.",
		Entity:      "milestone",
		Schema:      toolschema.DeleteMilestone,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			milestoneID := args.Int("milestoneId")
			if err := milestones.Delete(ctx, milestoneID); err != nil {
				return fail(fmt.Sprintf("Failed to delete milestone %d", milestoneID), err)
			}
			return apiframework.Success(fmt.Sprintf("Deleted milestone %d", milestoneID), nil)
		},
	})
}
