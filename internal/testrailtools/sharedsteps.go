package testrailtools

import (
	"context"
	"fmt"

	"github.com/contenox/testrail-mcp/apiframework"
	"github.com/contenox/testrail-mcp/testrailsdk"
	"github.com/contenox/testrail-mcp/toolschema"
)

func (r *Registry) registerSharedStepTools() {
	sharedSteps := r.client.SharedSteps

	r.register(&Tool{
		Name:        "getSharedSteps",
		Description: "List the shared step sets of a project.",
		Entity:      "sharedStep",
		Schema:      toolschema.GetSharedSteps,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			projectID := args.Int("projectId")
			pagination, err := decode[testrailsdk.Pagination](args)
			if err != nil {
				return fail(fmt.Sprintf("Failed to get shared steps of project %d", projectID), err)
			}
			page, err := sharedSteps.List(ctx, projectID, pagination)
			if err != nil {
				return fail(fmt.Sprintf("Failed to get shared steps of project %d", projectID), err)
			}
			return apiframework.Success(fmt.Sprintf("Retrieved %d shared step sets of project %d", len(page.Items), projectID), listData(page, args))
		},
	})

	r.register(&Tool{
		Name:        "getSharedStep",
		Description: "Get one shared step set by ID.",
		Entity:      "sharedStep",
		Schema:      toolschema.GetSharedStep,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			sharedStepID := args.Int("sharedStepId")
			sharedStep, err := sharedSteps.Get(ctx, sharedStepID)
			if err != nil {
				return fail(fmt.Sprintf("Failed to get shared step %d", sharedStepID), err)
			}
			return ok(fmt.Sprintf("Retrieved shared step %d", sharedStepID), "sharedStep", sharedStep)
		},
	})

	r.register(&Tool{
		Name:        "addSharedStep",
		Description: "Create a shared step set that test cases can reference.",
		Entity:      "sharedStep",
		Schema:      toolschema.AddSharedStep,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			projectID := args.Int("projectId")
			req, err := decode[testrailsdk.SharedStepRequest](args)
			if err != nil {
				return fail(fmt.Sprintf("Failed to add shared step to project %d", projectID), err)
			}
			sharedStep, err := sharedSteps.Add(ctx, projectID, req)
			if err != nil {
				return fail(fmt.Sprintf("Failed to add shared step to project %d", projectID), err)
			}
			return ok(fmt.Sprintf("Created shared step %q in project %d", req.Title, projectID), "sharedStep", sharedStep)
		},
	})

	r.register(&Tool{
		Name:        "updateSharedStep",
		Description: "Update a shared step set. Given steps replace all existing steps.",
		Entity:      "sharedStep",
		Schema:      toolschema.UpdateSharedStep,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			sharedStepID := args.Int("sharedStepId")
			req, err := decode[testrailsdk.SharedStepRequest](args)
			if err != nil {
				return fail(fmt.Sprintf("Failed to update shared step %d", sharedStepID), err)
			}
			sharedStep, err := sharedSteps.Update(ctx, sharedStepID, req)
			if err != nil {
				return fail(fmt.Sprintf("Failed to update shared step %d", sharedStepID), err)
			}
			return ok(fmt.Sprintf("Updated shared step %d", sharedStepID), "sharedStep", sharedStep)
		},
	})

	r.register(&Tool{
		Name:        "deleteSharedStep",
		Description: "Delete a shared step set. With keepInCases=true its steps are copied into the cases using it.",
		Entity:      "sharedStep",
		Schema:      toolschema.DeleteSharedStep,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			sharedStepID := args.Int("sharedStepId")
			if err := sharedSteps.Delete(ctx, sharedStepID, args.Bool("keepInCases")); err != nil {
				return fail(fmt.Sprintf("Failed to delete shared step %d", sharedStepID), err)
			}
			return apiframework.Success(fmt.Sprintf("Deleted shared step %d", sharedStepID), nil)
		},
	})
}
