package testrailsdk

import (
	"context"
	"fmt"
)

// ResultService covers the result endpoints.
type ResultService interface {
	ListForTest(ctx context.Context, testID int, filter StatusFilter) (*Page, error)
	ListForCase(ctx context.Context, runID, caseID int, filter StatusFilter) (*Page, error)
	ListForRun(ctx context.Context, runID int, filter StatusFilter) (*Page, error)
	Add(ctx context.Context, testID int, result ResultRequest) (Record, error)
	AddForCase(ctx context.Context, runID, caseID int, result ResultRequest) (Record, error)
	// AddMany submits one result per test in a single request.
	AddMany(ctx context.Context, runID int, results []ResultRequest) ([]Record, error)
	// AddManyForCases submits one result per case in a single request.
	AddManyForCases(ctx context.Context, runID int, results []ResultRequest) ([]Record, error)
}

// ResultRequest is one result. TestID and CaseID are only set in bulk submissions.
type ResultRequest struct {
	TestID       *int   `mapstructure:"testId" json:"test_id,omitempty"`
	CaseID       *int   `mapstructure:"caseId" json:"case_id,omitempty"`
	StatusID     *int   `mapstructure:"statusId" json:"status_id,omitempty"`
	Comment      string `mapstructure:"comment" json:"comment,omitempty"`
	Version      string `mapstructure:"version" json:"version,omitempty"`
	Elapsed      string `mapstructure:"elapsed" json:"elapsed,omitempty"`
	Defects      string `mapstructure:"defects" json:"defects,omitempty"`
	AssignedToID *int   `mapstructure:"assignedtoId" json:"assignedto_id,omitempty"`
}

type resultsBody struct {
	Results []ResultRequest `json:"results"`
}

type HTTPResultService struct {
	transport *Transport
}

func NewHTTPResultService(transport *Transport) ResultService {
	return &HTTPResultService{transport: transport}
}

func (s *HTTPResultService) ListForTest(ctx context.Context, testID int, filter StatusFilter) (*Page, error) {
	page := newPage("results")
	op := fmt.Sprintf("get results of test %d", testID)
	if err := s.transport.Get(ctx, op, endpoint("get_results", testID), filter.values(), page); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *HTTPResultService) ListForCase(ctx context.Context, runID, caseID int, filter StatusFilter) (*Page, error) {
	page := newPage("results")
	op := fmt.Sprintf("get results of case %d in run %d", caseID, runID)
	if err := s.transport.Get(ctx, op, endpoint("get_results_for_case", runID, caseID), filter.values(), page); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *HTTPResultService) ListForRun(ctx context.Context, runID int, filter StatusFilter) (*Page, error) {
	page := newPage("results")
	op := fmt.Sprintf("get results of run %d", runID)
	if err := s.transport.Get(ctx, op, endpoint("get_results_for_run", runID), filter.values(), page); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *HTTPResultService) Add(ctx context.Context, testID int, result ResultRequest) (Record, error) {
	var created Record
	op := fmt.Sprintf("add result to test %d", testID)
	if err := s.transport.Post(ctx, op, endpoint("add_result", testID), nil, result, &created); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *HTTPResultService) AddForCase(ctx context.Context, runID, caseID int, result ResultRequest) (Record, error) {
	var created Record
	op := fmt.Sprintf("add result for case %d in run %d", caseID, runID)
	if err := s.transport.Post(ctx, op, endpoint("add_result_for_case", runID, caseID), nil, result, &created); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *HTTPResultService) AddMany(ctx context.Context, runID int, results []ResultRequest) ([]Record, error) {
	var created []Record
	op := fmt.Sprintf("add %d results to run %d", len(results), runID)
	if err := s.transport.Post(ctx, op, endpoint("add_results", runID), nil, resultsBody{Results: results}, &created); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *HTTPResultService) AddManyForCases(ctx context.Context, runID int, results []ResultRequest) ([]Record, error) {
	var created []Record
	op := fmt.Sprintf("add %d case results to run %d", len(results), runID)
	if err := s.transport.Post(ctx, op, endpoint("add_results_for_cases", runID), nil, resultsBody{Results: results}, &created); err != nil {
		return nil, err
	}
	return created, nil
}
