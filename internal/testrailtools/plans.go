package testrailtools

import (
	"context"
	"fmt"

	"github.com/contenox/testrail-mcp/apiframework"
	"github.com/contenox/testrail-mcp/testrailsdk"
	"github.com/contenox/testrail-mcp/toolschema"
)

func (r *Registry) registerPlanTools() {
	plans := r.client.Plans

	r.register(&Tool{
		Name:        "getPlans",
		Description: "List the test plans of a project.",
		Entity:      "plan",
		Schema:      toolschema.GetPlans,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			projectID := args.Int("projectId")
			filter, err := decode[testrailsdk.PlanFilter](args)
			if err != nil {
				return fail(fmt.Sprintf("Failed to get plans of project %d", projectID), err)
			}
			page, err := plans.List(ctx, projectID, filter)
			if err != nil {
				return fail(fmt.Sprintf("Failed to get plans of project %d", projectID), err)
			}
			return apiframework.Success(fmt.Sprintf("Retrieved %d plans of project %d", len(page.Items), projectID), listData(page, args))
		},
	})

	r.register(&Tool{
		Name:        "getPlan",
		Description: "Get one test plan by ID, including its entries and runs.",
		Entity:      "plan",
		Schema:      toolschema.GetPlan,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			planID := args.Int("planId")
			plan, err := plans.Get(ctx, planID)
			if err != nil {
				return fail(fmt.Sprintf("Failed to get plan %d", planID), err)
			}
			return ok(fmt.Sprintf("Retrieved plan %d", planID), "plan", plan)
		},
	})

	r.register(&Tool{
		Name:        "addPlan",
		Description: "Create a test plan, optionally with entries (one per suite) and runs per configuration.",
		Entity:      "plan",
		Schema:      toolschema.AddPlan,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			projectID := args.Int("projectId")
			req, err := decode[testrailsdk.PlanRequest](args)
			if err != nil {
				return fail(fmt.Sprintf("Failed to add plan to project %d", projectID), err)
			}
			plan, err := plans.Add(ctx, projectID, req)
			if err != nil {
				return fail(fmt.Sprintf("Failed to add plan to project %d", projectID), err)
			}
			return ok(fmt.Sprintf("Created plan %q in project %d", req.Name, projectID), "plan", plan)
		},
	})

	r.register(&Tool{
		Name:        "addPlanEntry",
		Description: "Add a suite entry to a test plan.",
		Entity:      "plan",
		Schema:      toolschema.AddPlanEntry,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			planID := args.Int("planId")
			req, err := decode[testrailsdk.PlanEntryRequest](args)
			if err != nil {
				return fail(fmt.Sprintf("Failed to add entry to plan %d", planID), err)
			}
			entry, err := plans.AddEntry(ctx, planID, req)
			if err != nil {
				return fail(fmt.Sprintf("Failed to add entry to plan %d", planID), err)
			}
			return ok(fmt.Sprintf("Added entry to plan %d", planID), "entry", entry)
		},
	})

	r.register(&Tool{
		Name:        "updatePlan",
		Description: "Update the name, description or milestone of a test plan.",
		Entity:      "plan",
		Schema:      toolschema.UpdatePlan,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			planID := args.Int("planId")
			req, err := decode[testrailsdk.PlanRequest](args)
			if err != nil {
				return fail(fmt.Sprintf("Failed to update plan %d", planID), err)
			}
			plan, err := plans.Update(ctx, planID, req)
			if err != nil {
				return fail(fmt.Sprintf("Failed to update plan %d", planID), err)
			}
			return ok(fmt.Sprintf("Updated plan %d", planID), "plan", plan)
		},
	})

	r.register(&Tool{
		Name:        "updatePlanEntry",
		Description: "Update an entry of a test plan and the runs it contains.",
		Entity:      "plan",
		Schema:      toolschema.UpdatePlanEntry,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			planID, entryID := args.Int("planId"), args.String("entryId")
			msg := fmt.Sprintf("Failed to update entry %s of plan %d", entryID, planID)
			req, err := decode[testrailsdk.PlanEntryRequest](args)
			if err != nil {
				return fail(msg, err)
			}
			entry, err := plans.UpdateEntry(ctx, planID, entryID, req)
			if err != nil {
				return fail(msg, err)
			}
			return ok(fmt.Sprintf("Updated entry %s of plan %d", entryID, planID), "entry", entry)
		},
	})

	r.register(&Tool{
		Name:        "closePlan",
		Description: "Close a test plan and its runs. Closed plans cannot be edited.",
		Entity:      "plan",
		Schema:      toolschema.ClosePlan,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			planID := args.Int("planId")
			plan, err := plans.Close(ctx, planID)
			if err != nil {
				return fail(fmt.Sprintf("Failed to close plan %d", planID), err)
			}
			return ok(fmt.Sprintf("Closed plan %d", planID), "plan", plan)
		},
	})

	r.register(&Tool{
		Name:        "deletePlan",
		Description: "Delete a test plan with its runs and results. This cannot be undone.",
		Entity:      "plan",
		Schema:      toolschema.DeletePlan,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			planID := args.Int("planId")
			if err := plans.Delete(ctx, planID); err != nil {
				return fail(fmt.Sprintf("Failed to delete plan %d", planID), err)
			}
			return apiframework.Success(fmt.Sprintf("Deleted plan %d", planID), nil)
		},
	})

	r.register(&Tool{
		Name:        "deletePlanEntry",
		Description: "Delete an entry and its runs from a test plan.",
		Entity:      "plan",
		Schema:      toolschema.DeletePlanEntry,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			planID, entryID := args.Int("planId"), args.String("entryId")
			if err := plans.DeleteEntry(ctx, planID, entryID); err != nil {
				return fail(fmt.Sprintf("Failed to delete entry %s of plan %d", entryID, planID), err)
			}
			return apiframework.Success(fmt.Sprintf("Deleted entry %s of plan %d", entryID, planID), nil)
		},
	})
}
