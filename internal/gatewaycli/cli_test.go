package gatewaycli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the command tree with an empty config file so the host's
// own settings never leak in.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	for _, key := range []string{"TESTRAIL_URL", "TESTRAIL_USERNAME", "TESTRAIL_API_KEY", "TESTRAIL_TIMEOUT", "TESTRAIL_LOG_LEVEL", "TESTRAIL_LOG_FORMAT", "TESTRAIL_AUDIT_NATS_URL", "TESTRAIL_AUDIT_SUBJECT"} {
		t.Setenv(key, "")
	}
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("{}\n"), 0o600))

	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", configPath}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func fakeUpstream(t *testing.T, handler http.HandlerFunc) string {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestUnit_Call_PrintsEnvelope(t *testing.T) {
	url := fakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		user, key, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "qa@example.com", user)
		assert.Equal(t, "secret", key)
		assert.Equal(t, "/api/v2/get_case/7", r.URL.Path)
		assert.Equal(t, "testrail-mcp/"+Version, r.UserAgent())
		_, _ = io.WriteString(w, `{"id":7,"title":"Refund"}`)
	})

	stdout, _, err := runCLI(t, "", "--url", url, "--username", "qa@example.com", "--api-key", "secret",
		"call", "getCase", "--args", `{"caseId": 7}`)
	require.NoError(t, err)

	var env map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &env))
	assert.Equal(t, true, env["success"])
	assert.Equal(t, "Retrieved test case 7", env["message"])
}

func TestUnit_Call_JSONPathSelectsFromEnvelope(t *testing.T) {
	url := fakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"offset":0,"limit":50,"size":2,"_links":{"next":null,"prev":null},
			"cases":[{"id":1,"title":"First"},{"id":2,"title":"Second"}]}`)
	})

	stdout, _, err := runCLI(t, "", "--url", url, "--username", "u", "--api-key", "k",
		"call", "getCases", "--args", `{"projectId": 1}`, "--jsonpath", "$.data.cases[*].title")
	require.NoError(t, err)
	assert.JSONEq(t, `["First","Second"]`, stdout)

	stdout, _, err = runCLI(t, "", "--url", url, "--username", "u", "--api-key", "k",
		"call", "getCases", "--args", `{"projectId": 1}`, "--jsonpath", "$.message")
	require.NoError(t, err)
	assert.Equal(t, "Retrieved 2 test cases of project 1\n", stdout)
}

func TestUnit_Call_ReadsArgumentsFromStdin(t *testing.T) {
	url := fakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/get_run/4", r.URL.Path)
		_, _ = io.WriteString(w, `{"id":4}`)
	})

	_, _, err := runCLI(t, `{"runId": 4}`, "--url", url, "--username", "u", "--api-key", "k",
		"call", "getRun", "--args", "-")
	require.NoError(t, err)
}

func TestUnit_Call_FailureEnvelopeExitsNonZero(t *testing.T) {
	hits := 0
	url := fakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
	})

	stdout, _, err := runCLI(t, "", "--url", url, "--username", "u", "--api-key", "k",
		"call", "getCase", "--args", `{"caseId": 0}`)
	require.ErrorIs(t, err, errCallFailed)
	assert.Equal(t, 0, hits)

	var env map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &env))
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "validation", env["error"].(map[string]any)["kind"])
}

func TestUnit_Call_RequiresCredentials(t *testing.T) {
	_, _, err := runCLI(t, "", "call", "getCase", "--args", `{"caseId": 1}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "url is required")
}

func TestUnit_Tools_ListsCatalogueWithoutCredentials(t *testing.T) {
	stdout, _, err := runCLI(t, "", "tools")
	require.NoError(t, err)
	assert.Contains(t, stdout, "NAME")
	assert.Contains(t, stdout, "getCases")
	assert.Contains(t, stdout, "deleteSharedStep")

	stdout, _, err = runCLI(t, "", "tools", "--json")
	require.NoError(t, err)
	var tools []toolInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &tools))
	require.NotEmpty(t, tools)
	assert.Equal(t, "getProjects", tools[0].Name)
	assert.True(t, tools[0].ReadOnly)
	var schema map[string]any
	require.NoError(t, json.Unmarshal(tools[0].InputSchema, &schema))
	assert.Equal(t, "object", schema["type"])

	byName := make(map[string]toolInfo, len(tools))
	for _, info := range tools {
		byName[info.Name] = info
	}
	getCase := byName["getCase"]
	assert.Equal(t, "case", getCase.Entity)
	var record struct {
		Required   []string                  `json:"required"`
		Properties map[string]map[string]any `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(getCase.RecordSchema, &record))
	assert.Equal(t, []string{"id"}, record.Required)
	assert.Contains(t, record.Properties, "section_id")

	assert.Empty(t, byName["getCaseTypes"].Entity)
	assert.Nil(t, byName["getCaseTypes"].RecordSchema)
}
