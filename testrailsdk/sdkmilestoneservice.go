package testrailsdk

import (
	"context"
	"fmt"
	"net/url"
)

// MilestoneService covers the milestone endpoints.
type MilestoneService interface {
	List(ctx context.Context, projectID int, filter MilestoneFilter) (*Page, error)
	Get(ctx context.Context, milestoneID int) (Record, error)
	Add(ctx context.Context, projectID int, milestone MilestoneRequest) (Record, error)
	Update(ctx context.Context, milestoneID int, milestone MilestoneRequest) (Record, error)
	Delete(ctx context.Context, milestoneID int) error
}

type MilestoneFilter struct {
	IsCompleted *bool `mapstructure:"isCompleted"`
	IsStarted   *bool `mapstructure:"isStarted"`
	Pagination  `mapstructure:",squash"`
}

// MilestoneRequest is the body of add_milestone and update_milestone. Dates are
// UNIX timestamps.
type MilestoneRequest struct {
	Name        string `mapstructure:"name" json:"name,omitempty"`
	Description string `mapstructure:"description" json:"description,omitempty"`
	DueOn       *int   `mapstructure:"dueOn" json:"due_on,omitempty"`
	StartOn     *int   `mapstructure:"startOn" json:"start_on,omitempty"`
	ParentID    *int   `mapstructure:"parentId" json:"parent_id,omitempty"`
	Refs        string `mapstructure:"refs" json:"refs,omitempty"`
	IsCompleted *bool  `mapstructure:"isCompleted" json:"is_completed,omitempty"`
	IsStarted   *bool  `mapstructure:"isStarted" json:"is_started,omitempty"`
}

type HTTPMilestoneService struct {
	transport *Transport
}

func NewHTTPMilestoneService(transport *Transport) MilestoneService {
	return &HTTPMilestoneService{transport: transport}
}

func (s *HTTPMilestoneService) List(ctx context.Context, projectID int, filter MilestoneFilter) (*Page, error) {
	q := url.Values{}
	setBool(q, "is_completed", filter.IsCompleted)
	setBool(q, "is_started", filter.IsStarted)
	filter.Pagination.apply(q)

	page := newPage("milestones")
	op := fmt.Sprintf("get milestones of project %d", projectID)
	if err := s.transport.Get(ctx, op, endpoint("get_milestones", projectID), q, page); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *HTTPMilestoneService) Get(ctx context.Context, milestoneID int) (Record, error) {
	var milestone Record
	op := fmt.Sprintf("get milestone %d", milestoneID)
	if err := s.transport.Get(ctx, op, endpoint("get_milestone", milestoneID), nil, &milestone); err != nil {
		return nil, err
	}
	return milestone, nil
}

func (s *HTTPMilestoneService) Add(ctx context.Context, projectID int, milestone MilestoneRequest) (Record, error) {
	var created Record
	op := fmt.Sprintf("add milestone to project %d", projectID)
	if err := s.transport.Post(ctx, op, endpoint("add_milestone", projectID), nil, milestone, &created); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *HTTPMilestoneService) Update(ctx context.Context, milestoneID int, milestone MilestoneRequest) (Record, error) {
	var updated Record
	op := fmt.Sprintf("update milestone %d", milestoneID)
	if err := s.transport.Post(ctx, op, endpoint("update_milestone", milestoneID), nil, milestone, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *HTTPMilestoneService) Delete(ctx context.Context, milestoneID int) error {
	op := fmt.Sprintf("delete milestone %d", milestoneID)
	return s.transport.Post(ctx, op, endpoint("delete_milestone", milestoneID), nil, nil, nil)
}
