package testrailsdk

import (
	"context"
	"fmt"
)

// SuiteService covers the test suite endpoints.
type SuiteService interface {
	List(ctx context.Context, projectID int) ([]Record, error)
	Get(ctx context.Context, suiteID int) (Record, error)
	Add(ctx context.Context, projectID int, suite SuiteRequest) (Record, error)
	Update(ctx context.Context, suiteID int, suite SuiteRequest) (Record, error)
	Delete(ctx context.Context, suiteID int) error
}

// SuiteRequest is the body of add_suite and update_suite.
type SuiteRequest struct {
	Name        string `mapstructure:"name" json:"name,omitempty"`
	Description string `mapstructure:"description" json:"description,omitempty"`
}

// HTTPSuiteService implements SuiteService on the shared transport.
type HTTPSuiteService struct {
	transport *Transport
}

func NewHTTPSuiteService(transport *Transport) SuiteService {
	return &HTTPSuiteService{transport: transport}
}

// get_suites is not paginated.
func (s *HTTPSuiteService) List(ctx context.Context, projectID int) ([]Record, error) {
	var suites []Record
	op := fmt.Sprintf("get suites of project %d", projectID)
	if err := s.transport.Get(ctx, op, endpoint("get_suites", projectID), nil, &suites); err != nil {
		return nil, err
	}
	return suites, nil
}

func (s *HTTPSuiteService) Get(ctx context.Context, suiteID int) (Record, error) {
	var suite Record
	op := fmt.Sprintf("get suite %d", suiteID)
	if err := s.transport.Get(ctx, op, endpoint("get_suite", suiteID), nil, &suite); err != nil {
		return nil, err
	}
	return suite, nil
}

func (s *HTTPSuiteService) Add(ctx context.Context, projectID int, suite SuiteRequest) (Record, error) {
	var created Record
	op := fmt.Sprintf("add suite to project %d", projectID)
	if err := s.transport.Post(ctx, op, endpoint("add_suite", projectID), nil, suite, &created); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *HTTPSuiteService) Update(ctx context.Context, suiteID int, suite SuiteRequest) (Record, error) {
	var updated Record
	op := fmt.Sprintf("update suite %d", suiteID)
	if err := s.transport.Post(ctx, op, endpoint("update_suite", suiteID), nil, suite, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *HTTPSuiteService) Delete(ctx context.Context, suiteID int) error {
	op := fmt.Sprintf("delete suite %d", suiteID)
	return s.transport.Post(ctx, op, endpoint("delete_suite", suiteID), nil, nil, nil)
}
