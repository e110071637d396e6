package testrailtools

import (
	"context"
	"fmt"

	"github.com/contenox/testrail-mcp/apiframework"
	"github.com/contenox/testrail-mcp/testrailsdk"
	"github.com/contenox/testrail-mcp/toolschema"
)

func (r *Registry) registerRunTools() {
	runs := r.client.Runs

	r.register(&Tool{
		Name:        "getRuns",
		Description: "List the test runs of a project that are not part of a plan.",
		Entity:      "run",
		Schema:      toolschema.GetRuns,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			projectID := args.Int("projectId")
			filter, err := decode[testrailsdk.RunFilter](args)
			if err != nil {
				return fail(fmt.Sprintf("Failed to get runs of project %d", projectID), err)
			}
			page, err := runs.List(ctx, projectID, filter)
			if err != nil {
				return fail(fmt.Sprintf("Failed to get runs of project %d", projectID), err)
			}
			return apiframework.Success(fmt.Sprintf("Retrieved %d runs of project %d", len(page.Items), projectID), listData(page, args))
		},
	})

	r.register(&Tool{
		Name:        "getRun",
		Description: "Get one test run by ID, including its status counts.",
		Entity:      "run",
		Schema:      toolschema.GetRun,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			runID := args.Int("runId")
			run, err := runs.Get(ctx, runID)
			if err != nil {
				return fail(fmt.Sprintf("Failed to get run %d", runID), err)
			}
			return ok(fmt.Sprintf("Retrieved run %d", runID), "run", run)
		},
	})

	r.register(&Tool{
		Name:        "addRun",
		Description: "Create a test run with all cases of a suite (includeAll) or a custom selection (caseIds).",
		Entity:      "run",
		Schema:      toolschema.AddRun,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			projectID := args.Int("projectId")
			req, err := decode[testrailsdk.RunRequest](args)
			if err != nil {
				return fail(fmt.Sprintf("Failed to add run to project %d", projectID), err)
			}
			run, err := runs.Add(ctx, projectID, req)
			if err != nil {
				return fail(fmt.Sprintf("Failed to add run to project %d", projectID), err)
			}
			return ok(fmt.Sprintf("Created run %q in project %d", req.Name, projectID), "run", run)
		},
	})

	r.register(&Tool{
		Name:        "updateRun",
		Description: "Update a test run. Only the given fields change.",
		Entity:      "run",
		Schema:      toolschema.UpdateRun,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			runID := args.Int("runId")
			req, err := decode[testrailsdk.RunRequest](args)
			if err != nil {
				return fail(fmt.Sprintf("Failed to update run %d", runID), err)
			}
			run, err := runs.Update(ctx, runID, req)
			if err != nil {
				return fail(fmt.Sprintf("Failed to update run %d", runID), err)
			}
			return ok(fmt.Sprintf("Updated run %d", runID), "run", run)
		},
	})

	r.register(&Tool{
		Name:        "closeRun",
		Description: "Close a test run and archive its tests and results. Closed runs cannot be edited.",
		Entity:      "run",
		Schema:      toolschema.CloseRun,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			runID := args.Int("runId")
			run, err := runs.Close(ctx, runID)
			if err != nil {
				return fail(fmt.Sprintf("Failed to close run %d", runID), err)
			}
			return ok(fmt.Sprintf("Closed run %d", runID), "run", run)
		},
	})

	r.register(&Tool{
		Name:        "deleteRun",
		Description: "Delete a test run with its tests and results. This cannot be undone.",
		Entity:      "run",
		Schema:      toolschema.DeleteRun,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			runID := args.Int("runId")
			if err := runs.Delete(ctx, runID); err != nil {
				return fail(fmt.Sprintf("Failed to delete run %d", runID), err)
			}
			return apiframework.Success(fmt.Sprintf("Deleted run %d", runID), nil)
		},
	})
}
