package testrailsdk

import (
	"context"
	"fmt"
	"net/url"
)

// PlanService covers the test plan endpoints.
type PlanService interface {
	List(ctx context.Context, projectID int, filter PlanFilter) (*Page, error)
	Get(ctx context.Context, planID int) (Record, error)
	Add(ctx context.Context, projectID int, plan PlanRequest) (Record, error)
	AddEntry(ctx context.Context, planID int, entry PlanEntryRequest) (Record, error)
	Update(ctx context.Context, planID int, plan PlanRequest) (Record, error)
	UpdateEntry(ctx context.Context, planID int, entryID string, entry PlanEntryRequest) (Record, error)
	Close(ctx context.Context, planID int) (Record, error)
	Delete(ctx context.Context, planID int) error
	DeleteEntry(ctx context.Context, planID int, entryID string) error
}

type PlanFilter struct {
	IsCompleted  *bool `mapstructure:"isCompleted"`
	MilestoneIDs []int `mapstructure:"milestoneId"`
	Pagination   `mapstructure:",squash"`
}

// PlanRequest is the body of add_plan and update_plan. Entries are only
// accepted by add_plan.
type PlanRequest struct {
	Name        string             `mapstructure:"name" json:"name,omitempty"`
	Description string             `mapstructure:"description" json:"description,omitempty"`
	MilestoneID *int               `mapstructure:"milestoneId" json:"milestone_id,omitempty"`
	Entries     []PlanEntryRequest `mapstructure:"entries" json:"entries,omitempty"`
}

// PlanEntryRequest is one suite of a plan, optionally split into runs per
// configuration.
type PlanEntryRequest struct {
	SuiteID      *int   `mapstructure:"suiteId" json:"suite_id,omitempty"`
	Name         string `mapstructure:"name" json:"name,omitempty"`
	Description  string `mapstructure:"description" json:"description,omitempty"`
	AssignedToID *int   `mapstructure:"assignedtoId" json:"assignedto_id,omitempty"`
	RunSelection `mapstructure:",squash"`
	ConfigIDs    []int            `mapstructure:"configIds" json:"config_ids,omitempty"`
	Runs         []PlanRunRequest `mapstructure:"runs" json:"runs,omitempty"`
}

type PlanRunRequest struct {
	RunSelection `mapstructure:",squash"`
	ConfigIDs    []int `mapstructure:"configIds" json:"config_ids,omitempty"`
	AssignedToID *int  `mapstructure:"assignedtoId" json:"assignedto_id,omitempty"`
}

type HTTPPlanService struct {
	transport *Transport
}

func NewHTTPPlanService(transport *Transport) PlanService {
	return &HTTPPlanService{transport: transport}
}

func (s *HTTPPlanService) List(ctx context.Context, projectID int, filter PlanFilter) (*Page, error) {
	q := url.Values{}
	setBool(q, "is_completed", filter.IsCompleted)
	setIDs(q, "milestone_id", filter.MilestoneIDs)
	filter.Pagination.apply(q)

	page := newPage("plans")
	op := fmt.Sprintf("get plans of project %d", projectID)
	if err := s.transport.Get(ctx, op, endpoint("get_plans", projectID), q, page); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *HTTPPlanService) Get(ctx context.Context, planID int) (Record, error) {
	var plan Record
	op := fmt.Sprintf("get plan %d", planID)
	if err := s.transport.Get(ctx, op, endpoint("get_plan", planID), nil, &plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *HTTPPlanService) Add(ctx context.Context, projectID int, plan PlanRequest) (Record, error) {
	var created Record
	op := fmt.Sprintf("add plan to project %d", projectID)
	if err := s.transport.Post(ctx, op, endpoint("add_plan", projectID), nil, plan, &created); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *HTTPPlanService) AddEntry(ctx context.Context, planID int, entry PlanEntryRequest) (Record, error) {
	var created Record
	op := fmt.Sprintf("add entry to plan %d", planID)
	if err := s.transport.Post(ctx, op, endpoint("add_plan_entry", planID), nil, entry, &created); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *HTTPPlanService) Update(ctx context.Context, planID int, plan PlanRequest) (Record, error) {
	var updated Record
	op := fmt.Sprintf("update plan %d", planID)
	if err := s.transport.Post(ctx, op, endpoint("update_plan", planID), nil, plan, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *HTTPPlanService) UpdateEntry(ctx context.Context, planID int, entryID string, entry PlanEntryRequest) (Record, error) {
	var updated Record
	op := fmt.Sprintf("update entry %s of plan %d", entryID, planID)
	if err := s.transport.Post(ctx, op, endpoint("update_plan_entry", planID, entryID), nil, entry, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *HTTPPlanService) Close(ctx context.Context, planID int) (Record, error) {
	var closed Record
	op := fmt.Sprintf("close plan %d", planID)
	if err := s.transport.Post(ctx, op, endpoint("close_plan", planID), nil, nil, &closed); err != nil {
		return nil, err
	}
	return closed, nil
}

func (s *HTTPPlanService) Delete(ctx context.Context, planID int) error {
	op := fmt.Sprintf("delete plan %d", planID)
	return s.transport.Post(ctx, op, endpoint("delete_plan", planID), nil, nil, nil)
}

func (s *HTTPPlanService) DeleteEntry(ctx context.Context, planID int, entryID string) error {
	op := fmt.Sprintf("delete entry %s of plan %d", entryID, planID)
	return s.transport.Post(ctx, op, endpoint("delete_plan_entry", planID, entryID), nil, nil, nil)
}
