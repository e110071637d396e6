package testrailsdk

import (
	"context"
	"fmt"
	"net/url"
)

// ProjectService covers the project endpoints.
type ProjectService interface {
	List(ctx context.Context, filter ProjectFilter) (*Page, error)
	Get(ctx context.Context, projectID int) (Record, error)
	Add(ctx context.Context, project ProjectRequest) (Record, error)
	Update(ctx context.Context, projectID int, project ProjectRequest) (Record, error)
	Delete(ctx context.Context, projectID int) error
}

// ProjectFilter narrows get_projects.
type ProjectFilter struct {
	IsCompleted *bool `mapstructure:"isCompleted"`
	Pagination  `mapstructure:",squash"`
}

// ProjectRequest is the body of add_project and update_project.
type ProjectRequest struct {
	Name             string `mapstructure:"name" json:"name,omitempty"`
	Announcement     string `mapstructure:"announcement" json:"announcement,omitempty"`
	ShowAnnouncement *bool  `mapstructure:"showAnnouncement" json:"show_announcement,omitempty"`
	SuiteMode        *int   `mapstructure:"suiteMode" json:"suite_mode,omitempty"`
	IsCompleted      *bool  `mapstructure:"isCompleted" json:"is_completed,omitempty"`
}

// HTTPProjectService implements ProjectService on the shared transport.
type HTTPProjectService struct {
	transport *Transport
}

// NewHTTPProjectService creates a ProjectService using transport.
func NewHTTPProjectService(transport *Transport) ProjectService {
	return &HTTPProjectService{transport: transport}
}

// List implements ProjectService.List
func (s *HTTPProjectService) List(ctx context.Context, filter ProjectFilter) (*Page, error) {
	q := url.Values{}
	setBool(q, "is_completed", filter.IsCompleted)
	filter.Pagination.apply(q)

	page := newPage("projects")
	if err := s.transport.Get(ctx, "get projects", endpoint("get_projects"), q, page); err != nil {
		return nil, err
	}
	return page, nil
}

// Get implements ProjectService.Get
func (s *HTTPProjectService) Get(ctx context.Context, projectID int) (Record, error) {
	var project Record
	op := fmt.Sprintf("get project %d", projectID)
	if err := s.transport.Get(ctx, op, endpoint("get_project", projectID), nil, &project); err != nil {
		return nil, err
	}
	return project, nil
}

// Add implements ProjectService.Add
func (s *HTTPProjectService) Add(ctx context.Context, project ProjectRequest) (Record, error) {
	var created Record
	op := fmt.Sprintf("add project %q", project.Name)
	if err := s.transport.Post(ctx, op, endpoint("add_project"), nil, project, &created); err != nil {
		return nil, err
	}
	return created, nil
}

// Update implements ProjectService.Update
func (s *HTTPProjectService) Update(ctx context.Context, projectID int, project ProjectRequest) (Record, error) {
	var updated Record
	op := fmt.Sprintf("update project %d", projectID)
	if err := s.transport.Post(ctx, op, endpoint("update_project", projectID), nil, project, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete implements ProjectService.Delete
func (s *HTTPProjectService) Delete(ctx context.Context, projectID int) error {
	op := fmt.Sprintf("delete project %d", projectID)
	return s.transport.Post(ctx, op, endpoint("delete_project", projectID), nil, nil, nil)
}
