package testrailtools

import (
	"context"
	"fmt"
	"maps"

	"github.com/contenox/testrail-mcp/apiframework"
	"github.com/contenox/testrail-mcp/testrailsdk"
	"github.com/contenox/testrail-mcp/toolschema"
)

// Step fields are dropped from case listings to keep them small; getCase
// returns them.
var caseDetailFields = []string{
	"custom_steps",
	"custom_expected",
	"custom_preconds",
	"custom_steps_separated",
}

func summarizeCase(c testrailsdk.Record) testrailsdk.Record {
	out := maps.Clone(c)
	for _, key := range caseDetailFields {
		delete(out, key)
	}
	return out
}

func (r *Registry) registerCaseTools() {
	cases := r.client.Cases

	r.register(&Tool{
		Name:        "getCase",
		Description: "Get one test case by ID, including preconditions, steps and expected results.",
		Entity:      "case",
		Schema:      toolschema.GetCase,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			caseID := args.Int("caseId")
			testCase, err := cases.Get(ctx, caseID)
			if err != nil {
				return fail(fmt.Sprintf("Failed to get test case %d", caseID), err)
			}
			return ok(fmt.Sprintf("Retrieved test case %d", caseID), "case", testCase)
		},
	})

	r.register(&Tool{
		Name: "getCases",
		Description: "List test cases of a project, one page at a time (limit 50 by default). " +
			"Steps, expected results and preconditions are omitted; use getCase for the full case. " +
			"hasMore tells whether another page exists.",
		Entity: "case",
		Schema: toolschema.GetCases,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			projectID := args.Int("projectId")
			filter, err := decode[testrailsdk.CaseFilter](args)
			if err != nil {
				return fail(fmt.Sprintf("Failed to get test cases of project %d", projectID), err)
			}
			page, err := cases.List(ctx, projectID, filter)
			if err != nil {
				return fail(fmt.Sprintf("Failed to get test cases of project %d", projectID), err)
			}

			summaries := make([]testrailsdk.Record, len(page.Items))
			for i, c := range page.Items {
				summaries[i] = summarizeCase(c)
			}
			data := listData(page, args)
			delete(data, page.ItemsKey)
			data["cases"] = summaries
			return apiframework.Success(fmt.Sprintf("Retrieved %d test cases of project %d", len(summaries), projectID), data)
		},
	})

	r.register(&Tool{
		Name:        "addCase",
		Description: "Create a test case in a section.",
		Entity:      "case",
		Schema:      toolschema.AddCase,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			sectionID := args.Int("sectionId")
			req, err := decode[testrailsdk.CaseRequest](args)
			if err != nil {
				return fail(fmt.Sprintf("Failed to add test case to section %d", sectionID), err)
			}
			testCase, err := cases.Add(ctx, sectionID, req)
			if err != nil {
				return fail(fmt.Sprintf("Failed to add test case to section %d", sectionID), err)
			}
			return ok(fmt.Sprintf("Created test case %q in section %d", req.Title, sectionID), "case", testCase)
		},
	})

	r.register(&Tool{
		Name:        "updateCase",
		Description: "Update fields of a test case. Only the given fields change.",
		Entity:      "case",
		Schema:      toolschema.UpdateCase,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			caseID := args.Int("caseId")
			req, err := decode[testrailsdk.CaseRequest](args)
			if err != nil {
				return fail(fmt.Sprintf("Failed to update test case %d", caseID), err)
			}
			testCase, err := cases.Update(ctx, caseID, req)
			if err != nil {
				return fail(fmt.Sprintf("Failed to update test case %d", caseID), err)
			}
			return ok(fmt.Sprintf("Updated test case %d", caseID), "case", testCase)
		},
	})

	r.register(&Tool{
		Name:        "updateCases",
		Description: "Apply the same field values to several test cases of a project in one request.",
		Entity:      "case",
		Schema:      toolschema.UpdateCases,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			projectID := args.Int("projectId")
			caseIDs := args.IntSlice("caseIds")
			msg := fmt.Sprintf("Failed to update test cases %v of project %d", caseIDs, projectID)

			fields, err := decode[testrailsdk.CaseRequest](args.Object("data"))
			if err != nil {
				return fail(msg, err)
			}
			updated, err := cases.UpdateMany(ctx, projectID, args.OptionalInt("suiteId"), testrailsdk.BulkCaseUpdate{
				CaseRequest: fields,
				CaseIDs:     caseIDs,
			})
			if err != nil {
				return fail(msg, err)
			}
			return ok(fmt.Sprintf("Updated %d test cases of project %d", len(caseIDs), projectID), "cases", updated)
		},
	})

	r.register(&Tool{
		Name:        "deleteCase",
		Description: "Delete a test case and its results. With soft=true only reports what would be deleted.",
		Entity:      "case",
		Schema:      toolschema.DeleteCase,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			caseID := args.Int("caseId")
			soft := args.Bool("soft")
			preview, err := cases.Delete(ctx, caseID, soft)
			if err != nil {
				return fail(fmt.Sprintf("Failed to delete test case %d", caseID), err)
			}
			if soft {
				return ok(fmt.Sprintf("Previewed deletion of test case %d", caseID), "preview", preview)
			}
			return apiframework.Success(fmt.Sprintf("Deleted test case %d", caseID), nil)
		},
	})

	r.register(&Tool{
		Name:        "deleteCases",
		Description: "Delete several test cases of a project in one request. With soft=true only reports what would be deleted.",
		Entity:      "case",
		Schema:      toolschema.DeleteCases,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			projectID := args.Int("projectId")
			caseIDs := args.IntSlice("caseIds")
			soft := args.Bool("soft")
			preview, err := cases.DeleteMany(ctx, projectID, args.OptionalInt("suiteId"), caseIDs, soft)
			if err != nil {
				return fail(fmt.Sprintf("Failed to delete test cases %v of project %d", caseIDs, projectID), err)
			}
			if soft {
				return ok(fmt.Sprintf("Previewed deletion of test cases %v", caseIDs), "preview", preview)
			}
			return apiframework.Success(fmt.Sprintf("Deleted test cases %v of project %d", caseIDs, projectID), nil)
		},
	})

	r.register(&Tool{
		Name:        "copyCasesToSection",
		Description: "Copy test cases into a section, possibly of another suite or project.",
		Entity:      "case",
		Schema:      toolschema.CopyCasesToSection,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			sectionID := args.Int("sectionId")
			caseIDs := args.IntSlice("caseIds")
			copied, err := cases.CopyToSection(ctx, sectionID, caseIDs)
			if err != nil {
				return fail(fmt.Sprintf("Failed to copy test cases %v to section %d", caseIDs, sectionID), err)
			}
			return ok(fmt.Sprintf("Copied test cases %v to section %d", caseIDs, sectionID), "cases", records(copied))
		},
	})

	r.register(&Tool{
		Name:        "moveCasesToSection",
		Description: "Move test cases into a section of the given suite.",
		Entity:      "case",
		Schema:      toolschema.MoveCasesToSection,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			sectionID := args.Int("sectionId")
			caseIDs := args.IntSlice("caseIds")
			if err := cases.MoveToSection(ctx, sectionID, args.Int("suiteId"), caseIDs); err != nil {
				return fail(fmt.Sprintf("Failed to move test cases %v to section %d", caseIDs, sectionID), err)
			}
			return apiframework.Success(fmt.Sprintf("Moved test cases %v to section %d", caseIDs, sectionID), nil)
		},
	})

	r.register(&Tool{
		Name:        "getCaseHistory",
		Description: "Get the edit history of a test case.",
		Schema:      toolschema.GetCaseHistory,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			caseID := args.Int("caseId")
			page, err := cases.History(ctx, caseID)
			if err != nil {
				return fail(fmt.Sprintf("Failed to get history of test case %d", caseID), err)
			}
			return apiframework.Success(fmt.Sprintf("Retrieved %d history entries of test case %d", len(page.Items), caseID), listData(page, args))
		},
	})

	r.register(&Tool{
		Name:        "getCaseTypes",
		Description: "List the available test case types.",
		Schema:      toolschema.GetCaseTypes,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			types, err := cases.Types(ctx)
			if err != nil {
				return fail("Failed to get case types", err)
			}
			return ok(fmt.Sprintf("Retrieved %d case types", len(types)), "caseTypes", records(types))
		},
	})

	r.register(&Tool{
		Name:        "getCaseFields",
		Description: "List the test case fields, including custom fields and their configurations.",
		Schema:      toolschema.GetCaseFields,
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			fields, err := cases.Fields(ctx)
			if err != nil {
				return fail("Failed to get case fields", err)
			}
			return ok(fmt.Sprintf("Retrieved %d case fields", len(fields)), "caseFields", records(fields))
		},
	})
}
