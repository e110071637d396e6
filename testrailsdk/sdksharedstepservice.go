package testrailsdk

import (
	"context"
	"fmt"
	"net/url"
)

// SharedStepService covers the shared step endpoints.
type SharedStepService interface {
	List(ctx context.Context, projectID int, page Pagination) (*Page, error)
	Get(ctx context.Context, sharedStepID int) (Record, error)
	Add(ctx context.Context, projectID int, sharedStep SharedStepRequest) (Record, error)
	Update(ctx context.Context, sharedStepID int, sharedStep SharedStepRequest) (Record, error)
	// Delete removes the set; keepInCases copies its steps into the cases using it.
	Delete(ctx context.Context, sharedStepID int, keepInCases bool) error
}

type SharedStepRequest struct {
	Title                string `mapstructure:"title" json:"title,omitempty"`
	CustomStepsSeparated []Step `mapstructure:"customStepsSeparated" json:"custom_steps_separated,omitempty"`
}

type HTTPSharedStepService struct {
	transport *Transport
}

func NewHTTPSharedStepService(transport *Transport) SharedStepService {
	return &HTTPSharedStepService{transport: transport}
}

func (s *HTTPSharedStepService) List(ctx context.Context, projectID int, pagination Pagination) (*Page, error) {
	q := url.Values{}
	pagination.apply(q)

	page := newPage("shared_steps")
	op := fmt.Sprintf("get shared steps of project %d", projectID)
	if err := s.transport.Get(ctx, op, endpoint("get_shared_steps", projectID), q, page); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *HTTPSharedStepService) Get(ctx context.Context, sharedStepID int) (Record, error) {
	var sharedStep Record
	op := fmt.Sprintf("get shared step %d", sharedStepID)
	if err := s.transport.Get(ctx, op, endpoint("get_shared_step", sharedStepID), nil, &sharedStep); err != nil {
		return nil, err
	}
	return sharedStep, nil
}

func (s *HTTPSharedStepService) Add(ctx context.Context, projectID int, sharedStep SharedStepRequest) (Record, error) {
	var created Record
	op := fmt.Sprintf("add shared step to project %d", projectID)
	if err := s.transport.Post(ctx, op, endpoint("add_shared_step", projectID), nil, sharedStep, &created); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *HTTPSharedStepService) Update(ctx context.Context, sharedStepID int, sharedStep SharedStepRequest) (Record, error) {
	var updated Record
	op := fmt.Sprintf("update shared step %d", sharedStepID)
	if err := s.transport.Post(ctx, op, endpoint("update_shared_step", sharedStepID), nil, sharedStep, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *HTTPSharedStepService) Delete(ctx context.Context, sharedStepID int, keepInCases bool) error {
	var body any
	if keepInCases {
		body = map[string]int{"keep_in_cases": 1}
	}
	op := fmt.Sprintf("delete shared step %d", sharedStepID)
	return s.transport.Post(ctx, op, endpoint("delete_shared_step", sharedStepID), nil, body, nil)
}
