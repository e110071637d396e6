package testrailsdk_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/contenox/testrail-mcp/apiframework"
	"github.com/contenox/testrail-mcp/libtracker"
	"github.com/contenox/testrail-mcp/testrailsdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Method string
	URI    string
	Body   string
	Header http.Header
}

// upstream records every request and answers with the configured handler.
type upstream struct {
	mu       sync.Mutex
	requests []capturedRequest
	respond  func(w http.ResponseWriter, r *http.Request)
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	u.mu.Lock()
	u.requests = append(u.requests, capturedRequest{
		Method: r.Method,
		URI:    r.URL.RequestURI(),
		Body:   string(body),
		Header: r.Header.Clone(),
	})
	u.mu.Unlock()
	u.respond(w, r)
}

func (u *upstream) last(t *testing.T) capturedRequest {
	t.Helper()
	u.mu.Lock()
	defer u.mu.Unlock()
	require.NotEmpty(t, u.requests)
	return u.requests[len(u.requests)-1]
}

func setupClient(t *testing.T, respond func(w http.ResponseWriter, r *http.Request)) (*testrailsdk.Client, *upstream) {
	t.Helper()
	up := &upstream{respond: respond}
	srv := httptest.NewServer(up)
	t.Cleanup(srv.Close)

	client, err := testrailsdk.NewClient(testrailsdk.Config{
		BaseURL:  srv.URL + "/",
		Username: "qa@example.com",
		APIKey:   "secret-key",
	})
	require.NoError(t, err)
	return client, up
}

func respondJSON(status int, body string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func intPtr(i int) *int { return &i }

func TestUnit_Client_GetCaseSendsAuthenticatedGet(t *testing.T) {
	client, up := setupClient(t, respondJSON(http.StatusOK, `{"id":12,"title":"Login","custom_steps":"1. open"}`))

	ctx := context.WithValue(context.Background(), libtracker.ContextKeyRequestID, "req-1")
	got, err := client.Cases.Get(ctx, 12)
	require.NoError(t, err)

	assert.Equal(t, testrailsdk.Record{"id": float64(12), "title": "Login", "custom_steps": "1. open"}, got)

	req := up.last(t)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/api/v2/get_case/12", req.URI)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, "req-1", req.Header.Get("X-Request-ID"))

	user, pass, ok := (&http.Request{Header: req.Header}).BasicAuth()
	require.True(t, ok)
	assert.Equal(t, "qa@example.com", user)
	assert.Equal(t, "secret-key", pass)
}

func TestUnit_Client_UpdateCasesPostsBulkBody(t *testing.T) {
	client, up := setupClient(t, respondJSON(http.StatusOK, `{"updated_cases":[]}`))

	_, err := client.Cases.UpdateMany(context.Background(), 1, intPtr(1), testrailsdk.BulkCaseUpdate{
		CaseRequest: testrailsdk.CaseRequest{Title: "X"},
		CaseIDs:     []int{1, 2, 3},
	})
	require.NoError(t, err)

	up.mu.Lock()
	require.Len(t, up.requests, 1)
	up.mu.Unlock()
	req := up.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/v2/update_cases/1?suite_id=1", req.URI)
	assert.JSONEq(t, `{"title":"X","case_ids":[1,2,3]}`, req.Body)
}

func TestUnit_Client_AddResultForCaseUsesBothPathIDs(t *testing.T) {
	client, up := setupClient(t, respondJSON(http.StatusOK, `{"id":100,"test_id":7,"status_id":1}`))

	got, err := client.Results.AddForCase(context.Background(), 1, 2, testrailsdk.ResultRequest{StatusID: intPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, testrailsdk.Record{"id": float64(100), "test_id": float64(7), "status_id": float64(1)}, got)

	req := up.last(t)
	assert.Equal(t, "/api/v2/add_result_for_case/1/2", req.URI)
	assert.JSONEq(t, `{"status_id":1}`, req.Body)
}

func TestUnit_Client_DeleteSendsEmptyOrSoftBody(t *testing.T) {
	client, up := setupClient(t, respondJSON(http.StatusOK, ``))

	_, err := client.Cases.Delete(context.Background(), 5, false)
	require.NoError(t, err)
	assert.Equal(t, "/api/v2/delete_case/5", up.last(t).URI)
	assert.JSONEq(t, `{}`, up.last(t).Body)

	_, err = client.Cases.Delete(context.Background(), 5, true)
	require.NoError(t, err)
	assert.JSONEq(t, `{"soft":1}`, up.last(t).Body)
}

func TestUnit_Client_ListDecodesPaginationEnvelope(t *testing.T) {
	client, up := setupClient(t, respondJSON(http.StatusOK, `{
		"offset": 0, "limit": 2, "size": 2,
		"_links": {"next": "/api/v2/get_cases/1&limit=2&offset=2", "prev": null},
		"cases": [{"id": 1}, {"id": 2}]
	}`))

	page, err := client.Cases.List(context.Background(), 1, testrailsdk.CaseFilter{
		SuiteID:     intPtr(3),
		PriorityIDs: []int{1, 2},
		Pagination:  testrailsdk.Pagination{Limit: intPtr(2), Offset: intPtr(0)},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, page.Size)
	assert.Equal(t, 2, page.Limit)
	assert.True(t, page.HasMore())
	assert.Equal(t, "cases", page.ItemsKey)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, "/api/v2/get_cases/1?limit=2&offset=0&priority_id=1%2C2&suite_id=3", up.last(t).URI)
}

func TestUnit_Client_ListAcceptsBareArray(t *testing.T) {
	client, _ := setupClient(t, respondJSON(http.StatusOK, `[{"id": 1}, {"id": 2}, {"id": 3}]`))

	page, err := client.Runs.List(context.Background(), 1, testrailsdk.RunFilter{})
	require.NoError(t, err)

	assert.False(t, page.HasMore())
	assert.Equal(t, 3, page.Size)
	assert.Equal(t, "runs", page.ItemsKey)

	encoded, err := json.Marshal(page)
	require.NoError(t, err)
	assert.JSONEq(t, `{"offset":0,"limit":3,"size":3,"_links":{"next":null,"prev":null},"runs":[{"id":1},{"id":2},{"id":3}]}`, string(encoded))
}

func TestUnit_Client_NotFoundBecomesAPIError(t *testing.T) {
	client, _ := setupClient(t, respondJSON(http.StatusBadRequest, `{"error":"Field :case_id is not a valid test case."}`))

	_, err := client.Cases.Get(context.Background(), 999)
	require.Error(t, err)

	var apiErr *apiframework.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "get case 999", apiErr.Operation)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Field :case_id is not a valid test case.", apiErr.Upstream)
	assert.ErrorIs(t, err, apiframework.ErrTransport)
	assert.ErrorIs(t, err, apiframework.ErrBadRequest)
	assert.Contains(t, err.Error(), "999")
}

func TestUnit_Client_NonJSONErrorBodyIsKept(t *testing.T) {
	client, _ := setupClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	})

	_, err := client.Projects.Get(context.Background(), 1)

	var apiErr *apiframework.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "maintenance", apiErr.Upstream)
	assert.ErrorIs(t, err, apiframework.ErrInternalServerError)
}

func TestUnit_Client_UndecodableBodyIsTransportError(t *testing.T) {
	client, _ := setupClient(t, respondJSON(http.StatusOK, `<html>login</html>`))

	_, err := client.Suites.Get(context.Background(), 1)

	var apiErr *apiframework.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "get suite 1", apiErr.Operation)
	assert.ErrorIs(t, err, apiframework.ErrTransport)
}

func TestUnit_Client_NetworkFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client, err := testrailsdk.NewClient(testrailsdk.Config{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.Runs.Get(context.Background(), 4)

	var apiErr *apiframework.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.StatusCode)
	assert.Equal(t, "/api/v2/get_run/4", apiErr.Path)
	assert.ErrorIs(t, err, apiframework.ErrTransport)
}

func TestUnit_Client_TimeoutIsReported(t *testing.T) {
	up := &upstream{respond: func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}}
	srv := httptest.NewServer(up)
	t.Cleanup(srv.Close)

	client, err := testrailsdk.NewClient(testrailsdk.Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = client.Tests.Get(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, apiframework.ErrTimeout)
	assert.Equal(t, "timeout", apiframework.ReasonOf(err))
	assert.ErrorIs(t, err, apiframework.ErrTransport)
}

func TestUnit_Client_SetHeaderAppliesToEveryService(t *testing.T) {
	client, up := setupClient(t, respondJSON(http.StatusOK, `{"id":1}`))

	client.SetHeader("X-Debug", "on")

	_, err := client.Milestones.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "on", up.last(t).Header.Get("X-Debug"))

	_, err = client.Plans.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "on", up.last(t).Header.Get("X-Debug"))
}

func TestUnit_Client_PlanEntryIDIsEscapedInPath(t *testing.T) {
	client, up := setupClient(t, respondJSON(http.StatusOK, ``))

	err := client.Plans.DeleteEntry(context.Background(), 9, "3933d74b-4282-4c1f-be62-a641ab427063")
	require.NoError(t, err)
	assert.Equal(t, "/api/v2/delete_plan_entry/9/3933d74b-4282-4c1f-be62-a641ab427063", up.last(t).URI)
}

func TestUnit_Client_MoveSectionSendsOnlyGivenMembers(t *testing.T) {
	client, up := setupClient(t, respondJSON(http.StatusOK, `{"id":3}`))

	_, err := client.Sections.Move(context.Background(), 3, testrailsdk.SectionMove{AfterID: intPtr(2)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"after_id":2}`, up.last(t).Body)

	_, err = client.Sections.Move(context.Background(), 3, testrailsdk.SectionMove{ParentID: intPtr(8)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"parent_id":8}`, up.last(t).Body)

	_, err = client.Sections.Move(context.Background(), 3, testrailsdk.SectionMove{ToRoot: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"parent_id":null}`, up.last(t).Body)
}

func TestUnit_Client_AddResultsSendsOneBatch(t *testing.T) {
	client, up := setupClient(t, respondJSON(http.StatusOK, `[{"id":1},{"id":2}]`))

	got, err := client.Results.AddMany(context.Background(), 4, []testrailsdk.ResultRequest{
		{TestID: intPtr(10), StatusID: intPtr(1)},
		{TestID: intPtr(11), StatusID: intPtr(5), Comment: "broken"},
	})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	up.mu.Lock()
	assert.Len(t, up.requests, 1)
	up.mu.Unlock()
	assert.Equal(t, "/api/v2/add_results/4", up.last(t).URI)
	assert.JSONEq(t, `{"results":[{"test_id":10,"status_id":1},{"test_id":11,"status_id":5,"comment":"broken"}]}`, up.last(t).Body)
}

func TestUnit_NewClient_RequiresBaseURL(t *testing.T) {
	_, err := testrailsdk.NewClient(testrailsdk.Config{})
	require.Error(t, err)
}
