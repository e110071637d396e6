package testrailtools

import (
	"context"
	"fmt"

	"github.com/contenox/testrail-mcp/apiframework"
	"github.com/contenox/testrail-mcp/testrailsdk"
	"github.com/contenox/testrail-mcp/toolschema"
)

func (r *Registry) registerSuiteTools() {
	suites := r.client.Suites

	r.register(&Tool{
		Name:        "getSuites",
		Description: "List the test suites of a project.",
		Entity:      "suite",
		Schema:      toolschema.GetSuites,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			projectID := args.Int("projectId")
			list, err := suites.List(ctx, projectID)
			if err != nil {
				return fail(fmt.Sprintf("Failed to get suites of project %d", projectID), err)
			}
			return ok(fmt.Sprintf("Retrieved %d suites of project %d", len(list), projectID), "suites", records(list))
		},
	})

	r.register(&Tool{
		Name:        "getSuite",
		Description: "Get one test suite by ID.",
		Entity:      "suite",
		Schema:      toolschema.GetSuite,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			suiteID := args.Int("suiteId")
			suite, err := suites.Get(ctx, suiteID)
			if err != nil {
				return fail(fmt.Sprintf("Failed to get suite %d", suiteID), err)
			}
			return ok(fmt.Sprintf("Retrieved suite %d", suiteID), "suite", suite)
		},
	})

	r.register(&Tool{
		Name:        "addSuite",
		Description: "Create a test suite in a project that uses multiple suites.",
		Entity:      "suite",
		Schema:      toolschema.AddSuite,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			projectID := args.Int("projectId")
			req, err := decode[testrailsdk.SuiteRequest](args)
			if err != nil {
				return fail(fmt.Sprintf("Failed to add suite to project %d", projectID), err)
			}
			suite, err := suites.Add(ctx, projectID, req)
			if err != nil {
				return fail(fmt.Sprintf("Failed to add suite to project %d", projectID), err)
			}
			return ok(fmt.Sprintf("Created suite %q in project %d", req.Name, projectID), "suite", suite)
		},
	})

	r.register(&Tool{
		Name:        "updateSuite",
		Description: "Update the name or description of a test suite.",
		Entity:      "suite",
		Schema:      toolschema.UpdateSuite,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			suiteID := args.Int("suiteId")
			req, err := decode[testrailsdk.SuiteRequest](args)
			if err != nil {
				return fail(fmt.Sprintf("Failed to update suite %d", suiteID), err)
			}
			suite, err := suites.Update(ctx, suiteID, req)
			if err != nil {
				return fail(fmt.Sprintf("Failed to update suite %d", suiteID), err)
			}
			return ok(fmt.Sprintf("Updated suite %d", suiteID), "suite", suite)
		},
	})

	r.register(&Tool{
		Name:        "deleteSuite",
		Description: "Delete a test suite with all its sections and cases. This cannot be undone.",
		Entity:      "suite",
		Schema:      toolschema.DeleteSuite,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			suiteID := args.Int("suiteId")
			if err := suites.Delete(ctx, suiteID); err != nil {
				return fail(fmt.Sprintf("Failed to delete suite %d", suiteID), err)
			}
			return apiframework.Success(fmt.Sprintf("Deleted suite %d", suiteID), nil)
		},
	})
}
