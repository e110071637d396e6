package testrailtools

import (
	"context"
	"fmt"

	"github.com/contenox/testrail-mcp/apiframework"
	"github.com/contenox/testrail-mcp/testrailsdk"
	"github.com/contenox/testrail-mcp/toolschema"
)

func (r *Registry) registerTestTools() {
	tests := r.client.Tests

	r.register(&Tool{
		Name:        "getTests",
		Description: "List the tests of a run, optionally only those with the given statuses.",
		Entity:      "test",
		Schema:      toolschema.GetTests,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			runID := args.Int("runId")
			filter, err := decode[testrailsdk.StatusFilter](args)
			if err != nil {
				return fail(fmt.Sprintf("Failed to get tests of run %d", runID), err)
			}
			page, err := tests.List(ctx, runID, filter)
			if err != nil {
				return fail(fmt.Sprintf("Failed to get tests of run %d", runID), err)
			}
			return apiframework.Success(fmt.Sprintf("Retrieved %d tests of run %d", len(page.Items), runID), listData(page, args))
		},
	})

	r.register(&Tool{
		Name:        "getTest",
		Description: "Get one test (a case instance within a run) by ID.",
		Entity:      "test",
		Schema:      toolschema.GetTest,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			testID := args.Int("testId")
			test, err := tests.Get(ctx, testID)
			if err != nil {
				return fail(fmt.Sprintf("Failed to get test %d", testID), err)
			}
			return ok(fmt.Sprintf("Retrieved test %d", testID), "test", test)
		},
	})
}
