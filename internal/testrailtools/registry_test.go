package testrailtools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/contenox/testrail-mcp/apiframework"
	"github.com/contenox/testrail-mcp/libbus"
	"github.com/contenox/testrail-mcp/libtracker"
	"github.com/contenox/testrail-mcp/testrailsdk"
	"github.com/contenox/testrail-mcp/toolschema"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dataOf(t *testing.T, env apiframework.Envelope) map[string]any {
	t.Helper()
	require.True(t, env.Success, "expected success, got %+v", env.Error)
	data, ok := env.Data.(map[string]any)
	require.True(t, ok, "data is %T", env.Data)
	return data
}

func TestUnit_Registry_RegistersFullCatalogue(t *testing.T) {
	r, _ := setupRegistry(t)

	expected := []string{
		"getProjects", "getProject", "addProject", "updateProject", "deleteProject",
		"getSuites", "getSuite", "addSuite", "updateSuite", "deleteSuite",
		"getSections", "getSection", "addSection", "moveSection", "updateSection", "deleteSection",
		"getCase", "getCases", "addCase", "updateCase", "updateCases", "deleteCase", "deleteCases",
		"copyCasesToSection", "moveCasesToSection", "getCaseHistory", "getCaseTypes", "getCaseFields",
		"getRuns", "getRun", "addRun", "updateRun", "closeRun", "deleteRun",
		"getTests", "getTest",
		"getResults", "getResultsForCase", "getResultsForRun", "addResult", "addResultForCase", "addResults", "addResultsForCases",
		"getPlans", "getPlan", "addPlan", "addPlanEntry", "updatePlan", "updatePlanEntry", "closePlan", "deletePlan", "deletePlanEntry",
		"getMilestones", "getMilestone", "addMilestone", "updateMilestone", "deleteMilestone",
		"getSharedSteps", "getSharedStep", "addSharedStep", "updateSharedStep", "deleteSharedStep",
	}

	var names []string
	for _, tool := range r.Tools() {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, tool.Name)
		require.NotNil(t, tool.Schema, tool.Name)
		assert.Equal(t, strings.HasPrefix(tool.Name, "get"), tool.ReadOnly, tool.Name)
		if tool.Entity != "" {
			assert.Contains(t, toolschema.EntitySchemas, tool.Entity, tool.Name)
		}

		_, err := tool.Schema.JSONSchema()
		require.NoError(t, err, tool.Name)
	}
	assert.Equal(t, expected, names)
}

func TestUnit_Call_InvalidArgumentsNeverReachUpstream(t *testing.T) {
	r, fake := setupRegistry(t)

	cases := map[string]map[string]any{
		"getCase":          {},
		"addCase":          {"sectionId": 1},
		"addResultForCase": {"runId": "one", "caseId": 2},
		"updateCases":      {"projectId": 1, "caseIds": []any{1}},
		"addProject":       {"name": "P", "suiteMode": 9},
		"deletePlanEntry":  {"planId": 1},
	}
	for name, args := range cases {
		env := r.CallArgs(context.Background(), name, normalize(t, args))

		assert.False(t, env.Success, name)
		require.NotNil(t, env.Error, name)
		assert.Equal(t, apiframework.KindValidation, env.Error.Kind, name)
		assert.NotEmpty(t, env.Error.Field, name)
	}
	assert.Equal(t, 0, fake.requestCount())
}

func TestUnit_Call_AddCaseThenGetCaseRoundTrips(t *testing.T) {
	r, _ := setupRegistry(t)
	ctx := context.Background()

	added := r.CallArgs(ctx, "addCase", normalize(t, map[string]any{
		"sectionId":      5,
		"title":          "Login with valid credentials",
		"priorityId":     2,
		"refs":           "REQ-1",
		"customPreconds": "User exists",
		"customStepsSeparated": []any{
			map[string]any{"content": "Open login page", "expected": "Form shown"},
			map[string]any{"content": "Submit", "expected": "Dashboard shown"},
		},
	}))
	created := dataOf(t, added)["case"].(testrailsdk.Record)
	caseID := int(created["id"].(float64))

	got := r.CallArgs(ctx, "getCase", map[string]any{"caseId": float64(caseID)})
	record := dataOf(t, got)["case"].(testrailsdk.Record)

	submitted := map[string]any{
		"title":           "Login with valid credentials",
		"priority_id":     float64(2),
		"refs":            "REQ-1",
		"custom_preconds": "User exists",
		"custom_steps_separated": []any{
			map[string]any{"content": "Open login page", "expected": "Form shown"},
			map[string]any{"content": "Submit", "expected": "Dashboard shown"},
		},
	}
	subset := map[string]any{}
	for k := range submitted {
		subset[k] = record[k]
	}
	if diff := cmp.Diff(submitted, subset, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("round trip mismatch (-submitted +retrieved):\n%s", diff)
	}
	assert.Equal(t, float64(5), record["section_id"])
	assert.Contains(t, got.Message, "Retrieved test case")
}

func TestUnit_Call_GetCasesStripsDetailFieldsButGetCaseKeepsThem(t *testing.T) {
	r, fake := setupRegistry(t)
	ctx := context.Background()

	for _, title := range []string{"A", "B", "C"} {
		env := r.CallArgs(ctx, "addCase", normalize(t, map[string]any{
			"sectionId":            1,
			"title":                title,
			"customSteps":          "1. do",
			"customExpected":       "done",
			"customPreconds":       "ready",
			"customStepsSeparated": []any{map[string]any{"content": "x"}},
		}))
		require.True(t, env.Success)
	}

	env := r.CallArgs(ctx, "getCases", normalize(t, map[string]any{"projectId": 1, "limit": 2}))
	data := dataOf(t, env)

	assert.Equal(t, "/api/v2/get_cases/1?limit=2&offset=0", fake.lastRequest(t).URI)
	assert.Equal(t, true, data["hasMore"])
	assert.Equal(t, 2, data["limit"])
	assert.Equal(t, 0, data["offset"])
	assert.Equal(t, 2, data["size"])

	listed := data["cases"].([]testrailsdk.Record)
	require.Len(t, listed, 2)
	for _, c := range listed {
		for _, key := range []string{"custom_steps", "custom_expected", "custom_preconds", "custom_steps_separated"} {
			assert.NotContains(t, c, key)
		}
		assert.Contains(t, c, "title")
	}

	last := r.CallArgs(ctx, "getCases", normalize(t, map[string]any{"projectId": 1, "limit": 2, "offset": 2}))
	assert.Equal(t, false, dataOf(t, last)["hasMore"])

	full := dataOf(t, r.CallArgs(ctx, "getCase", normalize(t, map[string]any{"caseId": 1})))["case"].(testrailsdk.Record)
	for _, key := range []string{"custom_steps", "custom_expected", "custom_preconds", "custom_steps_separated"} {
		assert.Contains(t, full, key)
	}
}

func TestUnit_Call_GetCasesAppliesDefaultPagination(t *testing.T) {
	r, fake := setupRegistry(t)

	env := r.CallArgs(context.Background(), "getCases", normalize(t, map[string]any{"projectId": 1, "suiteId": ""}))
	data := dataOf(t, env)

	assert.Equal(t, "/api/v2/get_cases/1?limit=50&offset=0", fake.lastRequest(t).URI)
	assert.Equal(t, 50, data["limit"])
	assert.Equal(t, 0, data["offset"])
	assert.Equal(t, false, data["hasMore"])
}

func TestUnit_Call_DeleteCaseTwiceReportsTransportError(t *testing.T) {
	r, _ := setupRegistry(t)
	ctx := context.Background()

	require.True(t, r.CallArgs(ctx, "addCase", normalize(t, map[string]any{"sectionId": 1, "title": "T"})).Success)

	first := r.CallArgs(ctx, "deleteCase", normalize(t, map[string]any{"caseId": 1}))
	assert.True(t, first.Success)
	assert.Nil(t, first.Data)

	second := r.CallArgs(ctx, "deleteCase", normalize(t, map[string]any{"caseId": 1}))
	assert.False(t, second.Success)
	require.NotNil(t, second.Error)
	assert.Equal(t, apiframework.KindTransport, second.Error.Kind)
	assert.Equal(t, 400, second.Error.Status)
	assert.Equal(t, "bad_request", second.Error.Reason)
	assert.Contains(t, second.Message, "1")
}

func TestUnit_Call_UpdateCasesSendsOneBulkRequest(t *testing.T) {
	r, fake := setupRegistry(t)
	fake.canned["update_cases"] = `{"updated_cases":[{"id":1},{"id":2},{"id":3}]}`

	env := r.CallArgs(context.Background(), "updateCases", normalize(t, map[string]any{
		"projectId": 1,
		"suiteId":   1,
		"data":      map[string]any{"title": "X"},
		"caseIds":   []any{1, 2, 3},
	}))
	require.True(t, env.Success)

	require.Equal(t, 1, fake.requestCount())
	req := fake.lastRequest(t)
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "/api/v2/update_cases/1?suite_id=1", req.URI)
	assert.JSONEq(t, `{"title":"X","case_ids":[1,2,3]}`, req.Body)
}

func TestUnit_Call_AddResultForCaseReturnsUpstreamRecord(t *testing.T) {
	r, fake := setupRegistry(t)
	fake.canned["add_result_for_case"] = `{"id":501,"test_id":77,"status_id":1,"comment":null,"custom_env":"staging"}`

	env := r.CallArgs(context.Background(), "addResultForCase", normalize(t, map[string]any{
		"runId":    1,
		"caseId":   2,
		"statusId": 1,
	}))

	require.Equal(t, 1, fake.requestCount())
	req := fake.lastRequest(t)
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "/api/v2/add_result_for_case/1/2", req.URI)
	assert.JSONEq(t, `{"status_id":1}`, req.Body)

	result := dataOf(t, env)["result"].(testrailsdk.Record)
	assert.Equal(t, testrailsdk.Record{
		"id":         float64(501),
		"test_id":    float64(77),
		"status_id":  float64(1),
		"comment":    nil,
		"custom_env": "staging",
	}, result)
}

func TestUnit_Call_AddResultsMapsEveryItem(t *testing.T) {
	r, fake := setupRegistry(t)
	fake.canned["add_results"] = `[{"id":1},{"id":2}]`

	env := r.CallArgs(context.Background(), "addResults", normalize(t, map[string]any{
		"runId": 3,
		"results": []any{
			map[string]any{"testId": 10, "statusId": 1, "comment": ""},
			map[string]any{"testId": 11, "statusId": 5, "defects": "BUG-7", "elapsed": "1m"},
		},
	}))
	require.True(t, env.Success)

	assert.Equal(t, 1, fake.requestCount())
	req := fake.lastRequest(t)
	assert.Equal(t, "/api/v2/add_results/3", req.URI)
	assert.JSONEq(t, `{"results":[
		{"test_id":10,"status_id":1},
		{"test_id":11,"status_id":5,"defects":"BUG-7","elapsed":"1m"}
	]}`, req.Body)
	assert.Len(t, dataOf(t, env)["results"], 2)
}

func TestUnit_Call_UpstreamNotFoundNamesTheID(t *testing.T) {
	r, _ := setupRegistry(t)

	env := r.CallArgs(context.Background(), "getCase", normalize(t, map[string]any{"caseId": 999}))

	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "999")
	require.NotNil(t, env.Error)
	assert.Equal(t, apiframework.KindTransport, env.Error.Kind)
	assert.Equal(t, 404, env.Error.Status)
	assert.Equal(t, "not_found", env.Error.Reason)
	assert.Equal(t, "get case 999", env.Error.Operation)
	assert.NotNil(t, env.Error.Upstream)

	encoded, err := env.JSON()
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"success": false`)
}

func TestUnit_Call_UnknownTool(t *testing.T) {
	r, fake := setupRegistry(t)

	env := r.CallArgs(context.Background(), "getEverything", nil)

	assert.False(t, env.Success)
	assert.Equal(t, apiframework.KindUnknown, env.Error.Kind)
	assert.Equal(t, 0, fake.requestCount())
}

func TestUnit_Call_MalformedJSONIsValidationError(t *testing.T) {
	r, fake := setupRegistry(t)

	env := r.Call(context.Background(), "getCase", json.RawMessage(`[1,2]`))

	assert.False(t, env.Success)
	assert.Equal(t, apiframework.KindValidation, env.Error.Kind)
	assert.Equal(t, 0, fake.requestCount())
}

func TestUnit_Call_RawArgumentsAreDecoded(t *testing.T) {
	r, fake := setupRegistry(t)
	fake.canned["get_run"] = `{"id":4,"name":"Nightly"}`

	env := r.Call(context.Background(), "getRun", json.RawMessage(`{"runId": 4}`))

	run := dataOf(t, env)["run"].(testrailsdk.Record)
	assert.Equal(t, "Nightly", run["name"])
	assert.Equal(t, "/api/v2/get_run/4", fake.lastRequest(t).URI)
}

func TestUnit_Call_RecoversHandlerPanic(t *testing.T) {
	r, _ := setupRegistry(t)
	r.register(&Tool{
		Name:   "explode",
		Schema: toolschema.New(),
		Handler: func(ctx context.Context, args toolschema.Args) apiframework.Envelope {
			panic("boom")
		},
	})

	env := r.CallArgs(context.Background(), "explode", nil)

	assert.False(t, env.Success)
	assert.Equal(t, apiframework.KindUnknown, env.Error.Kind)
	assert.Contains(t, env.Error.Message, "boom")
}

func TestUnit_Call_KeepsCallerRequestID(t *testing.T) {
	bus := libbus.NewInMem()
	auditor := NewAuditor(bus, "", nil)
	r, fake := setupRegistry(t, WithAuditor(auditor))
	fake.canned["get_test"] = `{"id":1}`

	ch := make(chan []byte, 1)
	sub, err := bus.Stream(context.Background(), DefaultAuditSubject+".>", ch)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	ctx := context.WithValue(context.Background(), libtracker.ContextKeyRequestID, "caller-id")
	require.True(t, r.CallArgs(ctx, "getTest", normalize(t, map[string]any{"testId": 1})).Success)

	select {
	case raw := <-ch:
		var ev ToolCallEvent
		require.NoError(t, json.Unmarshal(raw, &ev))
		assert.Equal(t, "caller-id", ev.RequestID)
	case <-time.After(time.Second):
		t.Fatal("no audit event")
	}
}

func TestUnit_Call_PublishesAuditEventWithoutArguments(t *testing.T) {
	bus := libbus.NewInMem()
	auditor := NewAuditor(bus, "audit", nil)
	r, _ := setupRegistry(t, WithAuditor(auditor))

	ch := make(chan []byte, 1)
	sub, err := bus.Stream(context.Background(), "audit.getCase", ch)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	env := r.CallArgs(context.Background(), "getCase", normalize(t, map[string]any{"caseId": 424242}))
	require.False(t, env.Success)

	select {
	case raw := <-ch:
		assert.NotContains(t, string(raw), "424242")
		var ev ToolCallEvent
		require.NoError(t, json.Unmarshal(raw, &ev))
		assert.Equal(t, "getCase", ev.Tool)
		assert.False(t, ev.Success)
		assert.Equal(t, apiframework.KindTransport, ev.Kind)
		assert.NotEmpty(t, ev.RequestID)
	case <-time.After(time.Second):
		t.Fatal("no audit event")
	}
}

func TestUnit_Call_ClosedAuditBusDoesNotChangeOutcome(t *testing.T) {
	bus := libbus.NewInMem()
	require.NoError(t, bus.Close())
	auditor := NewAuditor(bus, "", nil)
	r, fake := setupRegistry(t, WithAuditor(auditor))
	fake.canned["get_project"] = `{"id":1,"name":"P"}`

	env := r.CallArgs(context.Background(), "getProject", normalize(t, map[string]any{"projectId": 1}))
	auditor.Wait()

	assert.True(t, env.Success)
}

func TestUnit_Call_SoftDeleteReturnsPreview(t *testing.T) {
	r, fake := setupRegistry(t)
	fake.canned["delete_section"] = `{"cases":3,"tests":10,"results":20}`

	env := r.CallArgs(context.Background(), "deleteSection", normalize(t, map[string]any{"sectionId": 4, "soft": true}))

	preview := dataOf(t, env)["preview"].(testrailsdk.Record)
	assert.Equal(t, float64(3), preview["cases"])
	assert.JSONEq(t, `{"soft":1}`, fake.lastRequest(t).Body)
}

func TestUnit_Call_AddPlanTranslatesNestedEntries(t *testing.T) {
	r, fake := setupRegistry(t)
	fake.canned["add_plan"] = `{"id":9}`

	env := r.CallArgs(context.Background(), "addPlan", normalize(t, map[string]any{
		"projectId": 1,
		"name":      "Release 1.0",
		"entries": []any{
			map[string]any{
				"suiteId":    2,
				"includeAll": false,
				"caseIds":    []any{1, 2},
				"configIds":  []any{5, 6},
				"runs": []any{
					map[string]any{"includeAll": true, "configIds": []any{5}},
				},
			},
		},
	}))
	require.True(t, env.Success)

	assert.Equal(t, "/api/v2/add_plan/1", fake.lastRequest(t).URI)
	assert.JSONEq(t, `{
		"name": "Release 1.0",
		"entries": [{
			"suite_id": 2,
			"include_all": false,
			"case_ids": [1, 2],
			"config_ids": [5, 6],
			"runs": [{"include_all": true, "config_ids": [5]}]
		}]
	}`, fake.lastRequest(t).Body)
}

func TestUnit_Call_WriteToolsTranslateArguments(t *testing.T) {
	tests := []struct {
		name     string
		tool     string
		args     map[string]any
		canned   map[string]string
		wantURI  string
		wantBody string
	}{
		{
			name:     "deleteCases scoped to a suite",
			tool:     "deleteCases",
			args:     map[string]any{"projectId": 1, "suiteId": 2, "caseIds": []any{5, 6}},
			wantURI:  "/api/v2/delete_cases/1?suite_id=2",
			wantBody: `{"case_ids":[5,6]}`,
		},
		{
			name:     "deleteCases across the whole project",
			tool:     "deleteCases",
			args:     map[string]any{"projectId": 1, "caseIds": []any{5, 6}, "soft": true},
			wantURI:  "/api/v2/delete_cases/1",
			wantBody: `{"case_ids":[5,6],"soft":1}`,
		},
		{
			name: "addResultsForCases in one batch",
			tool: "addResultsForCases",
			args: map[string]any{"runId": 3, "results": []any{
				map[string]any{"caseId": 7, "statusId": 1, "comment": ""},
				map[string]any{"caseId": 8, "statusId": 5, "defects": "BUG-1", "assignedtoId": 2},
			}},
			canned:  map[string]string{"add_results_for_cases": `[{"id":1},{"id":2}]`},
			wantURI: "/api/v2/add_results_for_cases/3",
			wantBody: `{"results":[
				{"case_id":7,"status_id":1},
				{"case_id":8,"status_id":5,"defects":"BUG-1","assignedto_id":2}
			]}`,
		},
		{
			name:     "addRun with a custom case selection",
			tool:     "addRun",
			args:     map[string]any{"projectId": 1, "suiteId": 2, "name": "Smoke", "includeAll": false, "caseIds": []any{3, 4}},
			wantURI:  "/api/v2/add_run/1",
			wantBody: `{"suite_id":2,"name":"Smoke","include_all":false,"case_ids":[3,4]}`,
		},
		{
			name:     "updateRun switching to all cases",
			tool:     "updateRun",
			args:     map[string]any{"runId": 9, "includeAll": true, "description": ""},
			wantURI:  "/api/v2/update_run/9",
			wantBody: `{"include_all":true}`,
		},
		{
			name:     "addPlanEntry with a custom case selection",
			tool:     "addPlanEntry",
			args:     map[string]any{"planId": 4, "suiteId": 2, "includeAll": false, "caseIds": []any{1}},
			wantURI:  "/api/v2/add_plan_entry/4",
			wantBody: `{"suite_id":2,"include_all":false,"case_ids":[1]}`,
		},
		{
			name:     "addMilestone below a parent",
			tool:     "addMilestone",
			args:     map[string]any{"projectId": 1, "name": "M1", "dueOn": 1700000000, "parentId": 3},
			wantURI:  "/api/v2/add_milestone/1",
			wantBody: `{"name":"M1","due_on":1700000000,"parent_id":3}`,
		},
		{
			name:     "updateMilestone completion",
			tool:     "updateMilestone",
			args:     map[string]any{"milestoneId": 5, "isCompleted": true},
			wantURI:  "/api/v2/update_milestone/5",
			wantBody: `{"is_completed":true}`,
		},
		{
			name: "addSharedStep with steps",
			tool: "addSharedStep",
			args: map[string]any{"projectId": 1, "title": "Login", "customStepsSeparated": []any{
				map[string]any{"content": "open", "expected": "opened", "refs": ""},
			}},
			wantURI:  "/api/v2/add_shared_step/1",
			wantBody: `{"title":"Login","custom_steps_separated":[{"content":"open","expected":"opened"}]}`,
		},
		{
			name:     "deleteSharedStep keeping steps in cases",
			tool:     "deleteSharedStep",
			args:     map[string]any{"sharedStepId": 6, "keepInCases": true},
			wantURI:  "/api/v2/delete_shared_step/6",
			wantBody: `{"keep_in_cases":1}`,
		},
		{
			name:     "addProject with suite mode",
			tool:     "addProject",
			args:     map[string]any{"name": "Shop", "suiteMode": 3, "announcement": ""},
			wantURI:  "/api/v2/add_project",
			wantBody: `{"name":"Shop","suite_mode":3}`,
		},
		{
			name:     "updateProject completion",
			tool:     "updateProject",
			args:     map[string]any{"projectId": 2, "isCompleted": true},
			wantURI:  "/api/v2/update_project/2",
			wantBody: `{"is_completed":true}`,
		},
		{
			name:     "addSuite",
			tool:     "addSuite",
			args:     map[string]any{"projectId": 1, "name": "Regression"},
			wantURI:  "/api/v2/add_suite/1",
			wantBody: `{"name":"Regression"}`,
		},
		{
			name:     "deleteSuite",
			tool:     "deleteSuite",
			args:     map[string]any{"suiteId": 3},
			wantURI:  "/api/v2/delete_suite/3",
			wantBody: `{}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, fake := setupRegistry(t)
			for endpoint, body := range tt.canned {
				fake.canned[endpoint] = body
			}

			env := r.CallArgs(context.Background(), tt.tool, normalize(t, tt.args))
			require.True(t, env.Success, "%s: %+v", tt.tool, env.Error)

			require.Equal(t, 1, fake.requestCount())
			req := fake.lastRequest(t)
			assert.Equal(t, "POST", req.Method)
			assert.Equal(t, tt.wantURI, req.URI)
			assert.JSONEq(t, tt.wantBody, req.Body)
		})
	}
}

func TestUnit_Call_MoveSectionKeepsParentUnlessToRoot(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]any
		wantBody string
	}{
		{"reorder only", map[string]any{"sectionId": 7, "afterId": 4}, `{"after_id":4}`},
		{"null and empty are absent", map[string]any{"sectionId": 7, "parentId": nil, "afterId": ""}, `{}`},
		{"new parent", map[string]any{"sectionId": 7, "parentId": 2}, `{"parent_id":2}`},
		{"to root", map[string]any{"sectionId": 7, "toRoot": true, "afterId": 1}, `{"parent_id":null,"after_id":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, fake := setupRegistry(t)

			env := r.CallArgs(context.Background(), "moveSection", normalize(t, tt.args))
			require.True(t, env.Success, "%+v", env.Error)

			req := fake.lastRequest(t)
			assert.Equal(t, "/api/v2/move_section/7", req.URI)
			assert.JSONEq(t, tt.wantBody, req.Body)
		})
	}
}

func TestUnit_Call_MoveSectionRejectsToRootWithParent(t *testing.T) {
	r, fake := setupRegistry(t)

	env := r.CallArgs(context.Background(), "moveSection", normalize(t, map[string]any{"sectionId": 7, "parentId": 2, "toRoot": true}))

	assert.False(t, env.Success)
	assert.Equal(t, apiframework.KindValidation, env.Error.Kind)
	assert.Equal(t, "toRoot", env.Error.Field)
	assert.Equal(t, 0, fake.requestCount())
}

func TestUnit_Call_OversizedIDNeverReachesUpstream(t *testing.T) {
	r, fake := setupRegistry(t)

	env := r.CallArgs(context.Background(), "getCase", normalize(t, map[string]any{"caseId": 1e30}))

	assert.False(t, env.Success)
	assert.Equal(t, apiframework.KindValidation, env.Error.Kind)
	assert.Equal(t, "caseId", env.Error.Field)
	assert.Equal(t, 0, fake.requestCount())
}

func TestUnit_Call_UnknownToolIsAuditedUnderFixedSubject(t *testing.T) {
	bus := libbus.NewInMem()
	auditor := NewAuditor(bus, "", nil)
	r, _ := setupRegistry(t, WithAuditor(auditor))

	ch := make(chan []byte, 1)
	sub, err := bus.Stream(context.Background(), DefaultAuditSubject+".unknown", ch)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	env := r.CallArgs(context.Background(), "get case.*", nil)
	require.False(t, env.Success)
	auditor.Wait()

	select {
	case raw := <-ch:
		var ev ToolCallEvent
		require.NoError(t, json.Unmarshal(raw, &ev))
		assert.Equal(t, "get case.*", ev.Tool)
		assert.Equal(t, apiframework.KindUnknown, ev.Kind)
	case <-time.After(time.Second):
		t.Fatal("no audit event")
	}
}

func TestUnit_Call_SlowAuditBusDoesNotDelayEnvelope(t *testing.T) {
	bus := libbus.NewInMem()
	auditor := NewAuditor(bus, "", nil)
	r, fake := setupRegistry(t, WithAuditor(auditor))
	fake.canned["get_test"] = `{"id":1}`

	// nobody reads ch until the call returned, so the publish blocks
	ch := make(chan []byte)
	sub, err := bus.Stream(context.Background(), DefaultAuditSubject+".getTest", ch)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	start := time.Now()
	env := r.CallArgs(context.Background(), "getTest", normalize(t, map[string]any{"testId": 1}))
	require.True(t, env.Success)
	assert.Less(t, time.Since(start), publishTimeout/2)

	select {
	case raw := <-ch:
		assert.Contains(t, string(raw), `"tool":"getTest"`)
	case <-time.After(time.Second):
		t.Fatal("no audit event")
	}
	auditor.Wait()
}

// normalize turns Go literals into what a JSON decoder produces.
func normalize(t *testing.T, args map[string]any) map[string]any {
	t.Helper()
	b, err := json.Marshal(args)
	require.NoError(t, err)
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}
