package testrailsdk

import (
	"context"
	"fmt"
	"net/url"
)

// RunService covers the test run endpoints.
type RunService interface {
	List(ctx context.Context, projectID int, filter RunFilter) (*Page, error)
	Get(ctx context.Context, runID int) (Record, error)
	Add(ctx context.Context, projectID int, run RunRequest) (Record, error)
	Update(ctx context.Context, runID int, run RunRequest) (Record, error)
	Close(ctx context.Context, runID int) (Record, error)
	Delete(ctx context.Context, runID int) error
}

type RunFilter struct {
	IsCompleted  *bool `mapstructure:"isCompleted"`
	MilestoneIDs []int `mapstructure:"milestoneId"`
	SuiteIDs     []int `mapstructure:"suiteId"`
	Pagination   `mapstructure:",squash"`
}

// RunSelection picks the cases of a run: the whole suite, or CaseIDs only.
type RunSelection struct {
	IncludeAll *bool `mapstructure:"includeAll" json:"include_all,omitempty"`
	CaseIDs    []int `mapstructure:"caseIds" json:"case_ids,omitempty"`
}

// RunRequest is the body of add_run and update_run.
type RunRequest struct {
	SuiteID      *int   `mapstructure:"suiteId" json:"suite_id,omitempty"`
	Name         string `mapstructure:"name" json:"name,omitempty"`
	Description  string `mapstructure:"description" json:"description,omitempty"`
	MilestoneID  *int   `mapstructure:"milestoneId" json:"milestone_id,omitempty"`
	AssignedToID *int   `mapstructure:"assignedtoId" json:"assignedto_id,omitempty"`
	RunSelection `mapstructure:",squash"`
	Refs         string `mapstructure:"refs" json:"refs,omitempty"`
}

// HTTPRunService implements RunService on the shared transport.
type HTTPRunService struct {
	transport *Transport
}

func NewHTTPRunService(transport *Transport) RunService {
	return &HTTPRunService{transport: transport}
}

func (s *HTTPRunService) List(ctx context.Context, projectID int, filter RunFilter) (*Page, error) {
	q := url.Values{}
	setBool(q, "is_completed", filter.IsCompleted)
	setIDs(q, "milestone_id", filter.MilestoneIDs)
	setIDs(q, "suite_id", filter.SuiteIDs)
	filter.Pagination.apply(q)

	page := newPage("runs")
	op := fmt.Sprintf("get runs of project %d", projectID)
	if err := s.transport.Get(ctx, op, endpoint("get_runs", projectID), q, page); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *HTTPRunService) Get(ctx context.Context, runID int) (Record, error) {
	var run Record
	op := fmt.Sprintf("get run %d", runID)
	if err := s.transport.Get(ctx, op, endpoint("get_run", runID), nil, &run); err != nil {
		return nil, err
	}
	return run, nil
}

func (s *HTTPRunService) Add(ctx context.Context, projectID int, run RunRequest) (Record, error) {
	var created Record
	op := fmt.Sprintf("add run to project %d", projectID)
	if err := s.transport.Post(ctx, op, endpoint("add_run", projectID), nil, run, &created); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *HTTPRunService) Update(ctx context.Context, runID int, run RunRequest) (Record, error) {
	var updated Record
	op := fmt.Sprintf("update run %d", runID)
	if err := s.transport.Post(ctx, op, endpoint("update_run", runID), nil, run, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *HTTPRunService) Close(ctx context.Context, runID int) (Record, error) {
	var closed Record
	op := fmt.Sprintf("close run %d", runID)
	if err := s.transport.Post(ctx, op, endpoint("close_run", runID), nil, nil, &closed); err != nil {
		return nil, err
	}
	return closed, nil
}

func (s *HTTPRunService) Delete(ctx context.Context, runID int) error {
	op := fmt.Sprintf("delete run %d", runID)
	return s.transport.Post(ctx, op, endpoint("delete_run", runID), nil, nil, nil)
}
