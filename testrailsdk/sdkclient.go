package testrailsdk

import "errors"

// Client is the main SDK client that provides access to all services
type Client struct {
	transport *Transport

	Projects    ProjectService
	Suites      SuiteService
	Sections    SectionService
	Cases       CaseService
	Runs        RunService
	Tests       TestService
	Results     ResultService
	Plans       PlanService
	Milestones  MilestoneService
	SharedSteps SharedStepService
}

// NewClient creates a client whose services all share one transport.
func NewClient(config Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, errors.New("testrailsdk: base URL is required")
	}
	transport := NewTransport(config)

	return &Client{
		transport:   transport,
		Projects:    NewHTTPProjectService(transport),
		Suites:      NewHTTPSuiteService(transport),
		Sections:    NewHTTPSectionService(transport),
		Cases:       NewHTTPCaseService(transport),
		Runs:        NewHTTPRunService(transport),
		Tests:       NewHTTPTestService(transport),
		Results:     NewHTTPResultService(transport),
		Plans:       NewHTTPPlanService(transport),
		Milestones:  NewHTTPMilestoneService(transport),
		SharedSteps: NewHTTPSharedStepService(transport),
	}, nil
}

// SetHeader sets a default header on the shared transport, so it is sent by
// every service from now on.
func (c *Client) SetHeader(key, value string) {
	c.transport.SetHeader(key, value)
}
