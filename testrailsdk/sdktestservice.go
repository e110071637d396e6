package testrailsdk

import (
	"context"
	"fmt"
	"net/url"
)

// TestService covers the test endpoints. Tests are created by runs and are
// read-only here.
type TestService interface {
	List(ctx context.Context, runID int, filter StatusFilter) (*Page, error)
	Get(ctx context.Context, testID int) (Record, error)
}

// StatusFilter narrows the test and result listings to some statuses.
type StatusFilter struct {
	StatusIDs  []int `mapstructure:"statusId"`
	Pagination `mapstructure:",squash"`
}

func (f StatusFilter) values() url.Values {
	q := url.Values{}
	setIDs(q, "status_id", f.StatusIDs)
	f.Pagination.apply(q)
	return q
}

type HTTPTestService struct {
	transport *Transport
}

func NewHTTPTestService(transport *Transport) TestService {
	return &HTTPTestService{transport: transport}
}

func (s *HTTPTestService) List(ctx context.Context, runID int, filter StatusFilter) (*Page, error) {
	page := newPage("tests")
	op := fmt.Sprintf("get tests of run %d", runID)
	if err := s.transport.Get(ctx, op, endpoint("get_tests", runID), filter.values(), page); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *HTTPTestService) Get(ctx context.Context, testID int) (Record, error) {
	var test Record
	op := fmt.Sprintf("get test %d", testID)
	if err := s.transport.Get(ctx, op, endpoint("get_test", testID), nil, &test); err != nil {
		return nil, err
	}
	return test, nil
}
