package testrailtools

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/contenox/testrail-mcp/testrailsdk"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	URI    string
	Body   string
}

// fakeTestRail keeps test cases in memory and answers the case endpoints the
// way TestRail does. Other endpoints answer with canned bodies.
type fakeTestRail struct {
	mu       sync.Mutex
	nextID   int
	cases    map[int]map[string]any
	canned   map[string]string
	requests []recordedRequest
}

func newFakeTestRail() *fakeTestRail {
	return &fakeTestRail{
		nextID: 1,
		cases:  make(map[int]map[string]any),
		canned: make(map[string]string),
	}
}

func (f *fakeTestRail) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, recordedRequest{Method: r.Method, URI: r.URL.RequestURI(), Body: string(body)})

	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/v2/"), "/")
	name := parts[0]
	var id int
	if len(parts) > 1 {
		id, _ = strconv.Atoi(parts[1])
	}

	if canned, ok := f.canned[name]; ok {
		writeJSON(w, http.StatusOK, canned)
		return
	}

	switch name {
	case "add_case":
		var fields map[string]any
		if err := json.Unmarshal(body, &fields); err != nil {
			writeJSON(w, http.StatusBadRequest, `{"error":"Invalid JSON"}`)
			return
		}
		record := map[string]any{"id": float64(f.nextID), "section_id": float64(id), "milestone_id": nil}
		for k, v := range fields {
			record[k] = v
		}
		f.cases[f.nextID] = record
		f.nextID++
		writeRecord(w, record)
	case "get_case":
		record, ok := f.cases[id]
		if !ok {
			writeJSON(w, http.StatusNotFound, fmt.Sprintf(`{"error":"Field :case_id is not a valid test case (%d)."}`, id))
			return
		}
		writeRecord(w, record)
	case "delete_case":
		if _, ok := f.cases[id]; !ok {
			writeJSON(w, http.StatusBadRequest, `{"error":"Field :case_id is not a valid test case."}`)
			return
		}
		delete(f.cases, id)
		w.WriteHeader(http.StatusOK)
	case "get_cases":
		f.listCases(w, r)
	default:
		writeJSON(w, http.StatusOK, `{}`)
	}
}

func (f *fakeTestRail) listCases(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	ids := make([]int, 0, len(f.cases))
	for id := range f.cases {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	items := []map[string]any{}
	for i := offset; i < len(ids) && len(items) < limit; i++ {
		items = append(items, f.cases[ids[i]])
	}
	var next any
	if offset+len(items) < len(ids) {
		next = fmt.Sprintf("/api/v2/get_cases/1&limit=%d&offset=%d", limit, offset+limit)
	}
	doc := map[string]any{
		"offset": offset,
		"limit":  limit,
		"size":   len(items),
		"_links": map[string]any{"next": next, "prev": nil},
		"cases":  items,
	}
	b, _ := json.Marshal(doc)
	writeJSON(w, http.StatusOK, string(b))
}

func (f *fakeTestRail) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeTestRail) lastRequest(t *testing.T) recordedRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

func writeRecord(w http.ResponseWriter, record map[string]any) {
	b, _ := json.Marshal(record)
	writeJSON(w, http.StatusOK, string(b))
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func setupRegistry(t *testing.T, opts ...Option) (*Registry, *fakeTestRail) {
	t.Helper()
	fake := newFakeTestRail()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := testrailsdk.NewClient(testrailsdk.Config{
		BaseURL:  srv.URL,
		Username: "qa@example.com",
		APIKey:   "key",
	})
	require.NoError(t, err)
	return New(client, opts...), fake
}
