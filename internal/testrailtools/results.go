package testrailtools

import (
	"context"
	"fmt"

	"github.com/contenox/testrail-mcp/apiframework"
	"github.com/contenox/testrail-mcp/testrailsdk"
	"github.com/contenox/testrail-mcp/toolschema"
)

type bulkResults struct {
	Results []testrailsdk.ResultRequest `mapstructure:"results"`
}

func (r *Registry) registerResultTools() {
	results := r.client.Results

	r.register(&Tool{
		Name:        "getResults",
		Description: "List the results of a test, newest first.",
		Entity:      "result",
		Schema:      toolschema.GetResults,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			testID := args.Int("testId")
			filter, err := decode[testrailsdk.StatusFilter](args)
			if err != nil {
				return fail(fmt.Sprintf("Failed to get results of test %d", testID), err)
			}
			page, err := results.ListForTest(ctx, testID, filter)
			if err != nil {
				return fail(fmt.Sprintf("Failed to get results of test %d", testID), err)
			}
			return apiframework.Success(fmt.Sprintf("Retrieved %d results of test %d", len(page.Items), testID), listData(page, args))
		},
	})

	r.register(&Tool{
		Name:        "getResultsForCase",
		Description: "List the results of a test case within a run.",
		Entity:      "result",
		Schema:      toolschema.GetResultsForCase,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			runID, caseID := args.Int("runId"), args.Int("caseId")
			msg := fmt.Sprintf("Failed to get results of case %d in run %d", caseID, runID)
			filter, err := decode[testrailsdk.StatusFilter](args)
			if err != nil {
				return fail(msg, err)
			}
			page, err := results.ListForCase(ctx, runID, caseID, filter)
			if err != nil {
				return fail(msg, err)
			}
			return apiframework.Success(fmt.Sprintf("Retrieved %d results of case %d in run %d", len(page.Items), caseID, runID), listData(page, args))
		},
	})

	r.register(&Tool{
		Name:        "getResultsForRun",
		Description: "List the results of all tests of a run.",
		Entity:      "result",
		Schema:      toolschema.GetResultsForRun,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			runID := args.Int("runId")
			filter, err := decode[testrailsdk.StatusFilter](args)
			if err != nil {
				return fail(fmt.Sprintf("Failed to get results of run %d", runID), err)
			}
			page, err := results.ListForRun(ctx, runID, filter)
			if err != nil {
				return fail(fmt.Sprintf("Failed to get results of run %d", runID), err)
			}
			return apiframework.Success(fmt.Sprintf("Retrieved %d results of run %d", len(page.Items), runID), listData(page, args))
		},
	})

	r.register(&Tool{
		Name:        "addResult",
		Description: "Add a result to a test.",
		Entity:      "result",
		Schema:      toolschema.AddResult,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			testID := args.Int("testId")
			req, err := decode[testrailsdk.ResultRequest](args)
			if err != nil {
				return fail(fmt.Sprintf("Failed to add result to test %d", testID), err)
			}
			// the test is addressed by the path
			req.TestID = nil
			result, err := results.Add(ctx, testID, req)
			if err != nil {
				return fail(fmt.Sprintf("Failed to add result to test %d", testID), err)
			}
			return ok(fmt.Sprintf("Added result to test %d", testID), "result", result)
		},
	})

	r.register(&Tool{
		Name:        "addResultForCase",
		Description: "Add a result for a test case within a run.",
		Entity:      "result",
		Schema:      toolschema.AddResultForCase,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			runID, caseID := args.Int("runId"), args.Int("caseId")
			msg := fmt.Sprintf("Failed to add result for case %d in run %d", caseID, runID)
			req, err := decode[testrailsdk.ResultRequest](args)
			if err != nil {
				return fail(msg, err)
			}
			req.CaseID = nil
			result, err := results.AddForCase(ctx, runID, caseID, req)
			if err != nil {
				return fail(msg, err)
			}
			return ok(fmt.Sprintf("Added result for case %d in run %d", caseID, runID), "result", result)
		},
	})

	r.register(&Tool{
		Name:        "addResults",
		Description: "Add results for several tests of a run in one request. Each item names its testId.",
		Entity:      "result",
		Schema:      toolschema.AddResults,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			runID := args.Int("runId")
			bulk, err := decode[bulkResults](args)
			if err != nil {
				return fail(fmt.Sprintf("Failed to add results to run %d", runID), err)
			}
			created, err := results.AddMany(ctx, runID, bulk.Results)
			if err != nil {
				return fail(fmt.Sprintf("Failed to add %d results to run %d", len(bulk.Results), runID), err)
			}
			return ok(fmt.Sprintf("Added %d results to run %d", len(created), runID), "results", records(created))
		},
	})

	r.register(&Tool{
		Name:        "addResultsForCases",
		Description: "Add results for several test cases of a run in one request. Each item names its caseId.",
		Entity:      "result",
		Schema:      toolschema.AddResultsForCases,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			runID := args.Int("runId")
			bulk, err := decode[bulkResults](args)
			if err != nil {
				return fail(fmt.Sprintf("Failed to add case results to run %d", runID), err)
			}
			created, err := results.AddManyForCases(ctx, runID, bulk.Results)
			if err != nil {
				return fail(fmt.Sprintf("Failed to add %d case results to run %d", len(bulk.Results), runID), err)
			}
			return ok(fmt.Sprintf("Added %d case results to run %d", len(created), runID), "results", records(created))
		},
	})
}
