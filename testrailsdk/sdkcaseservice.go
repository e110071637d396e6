package testrailsdk

import (
	"context"
	"fmt"
	"net/url"
)

// CaseService covers the test case endpoints.
type CaseService interface {
	Get(ctx context.Context, caseID int) (Record, error)
	List(ctx context.Context, projectID int, filter CaseFilter) (*Page, error)
	Add(ctx context.Context, sectionID int, testCase CaseRequest) (Record, error)
	Update(ctx context.Context, caseID int, testCase CaseRequest) (Record, error)
	// UpdateMany applies the same field values to every listed case of a project.
	// The response shape differs between TestRail versions and is returned as decoded.
	UpdateMany(ctx context.Context, projectID int, suiteID *int, update BulkCaseUpdate) (any, error)
	Delete(ctx context.Context, caseID int, soft bool) (Record, error)
	DeleteMany(ctx context.Context, projectID int, suiteID *int, caseIDs []int, soft bool) (Record, error)
	CopyToSection(ctx context.Context, sectionID int, caseIDs []int) ([]Record, error)
	MoveToSection(ctx context.Context, sectionID, suiteID int, caseIDs []int) error
	History(ctx context.Context, caseID int) (*Page, error)
	Types(ctx context.Context) ([]Record, error)
	Fields(ctx context.Context) ([]Record, error)
}

// CaseFilter narrows get_cases.
type CaseFilter struct {
	SuiteID       *int   `mapstructure:"suiteId"`
	SectionID     *int   `mapstructure:"sectionId"`
	Filter        string `mapstructure:"filter"`
	PriorityIDs   []int  `mapstructure:"priorityId"`
	TypeIDs       []int  `mapstructure:"typeId"`
	MilestoneIDs  []int  `mapstructure:"milestoneId"`
	CreatedAfter  *int   `mapstructure:"createdAfter"`
	CreatedBefore *int   `mapstructure:"createdBefore"`
	UpdatedAfter  *int   `mapstructure:"updatedAfter"`
	UpdatedBefore *int   `mapstructure:"updatedBefore"`
	Pagination    `mapstructure:",squash"`
}

func (f CaseFilter) values() url.Values {
	q := url.Values{}
	setInt(q, "suite_id", f.SuiteID)
	setInt(q, "section_id", f.SectionID)
	setString(q, "filter", f.Filter)
	setIDs(q, "priority_id", f.PriorityIDs)
	setIDs(q, "type_id", f.TypeIDs)
	setIDs(q, "milestone_id", f.MilestoneIDs)
	setInt(q, "created_after", f.CreatedAfter)
	setInt(q, "created_before", f.CreatedBefore)
	setInt(q, "updated_after", f.UpdatedAfter)
	setInt(q, "updated_before", f.UpdatedBefore)
	f.Pagination.apply(q)
	return q
}

// CaseRequest is the body of add_case and update_case.
type CaseRequest struct {
	Title                string `mapstructure:"title" json:"title,omitempty"`
	TemplateID           *int   `mapstructure:"templateId" json:"template_id,omitempty"`
	TypeID               *int   `mapstructure:"typeId" json:"type_id,omitempty"`
	PriorityID           *int   `mapstructure:"priorityId" json:"priority_id,omitempty"`
	Estimate             string `mapstructure:"estimate" json:"estimate,omitempty"`
	MilestoneID          *int   `mapstructure:"milestoneId" json:"milestone_id,omitempty"`
	Refs                 string `mapstructure:"refs" json:"refs,omitempty"`
	CustomPreconds       string `mapstructure:"customPreconds" json:"custom_preconds,omitempty"`
	CustomSteps          string `mapstructure:"customSteps" json:"custom_steps,omitempty"`
	CustomExpected       string `mapstructure:"customExpected" json:"custom_expected,omitempty"`
	CustomStepsSeparated []Step `mapstructure:"customStepsSeparated" json:"custom_steps_separated,omitempty"`
}

// BulkCaseUpdate is the body of update_cases: the shared field values plus the
// targeted case ids.
type BulkCaseUpdate struct {
	CaseRequest
	CaseIDs []int `json:"case_ids"`
}

type caseIDsBody struct {
	SuiteID *int  `json:"suite_id,omitempty"`
	CaseIDs []int `json:"case_ids"`
	Soft    int   `json:"soft,omitempty"`
}

// HTTPCaseService implements CaseService on the shared transport.
type HTTPCaseService struct {
	transport *Transport
}

func NewHTTPCaseService(transport *Transport) CaseService {
	return &HTTPCaseService{transport: transport}
}

// Get implements CaseService.Get
func (s *HTTPCaseService) Get(ctx context.Context, caseID int) (Record, error) {
	var testCase Record
	op := fmt.Sprintf("get case %d", caseID)
	if err := s.transport.Get(ctx, op, endpoint("get_case", caseID), nil, &testCase); err != nil {
		return nil, err
	}
	return testCase, nil
}

// List implements CaseService.List
func (s *HTTPCaseService) List(ctx context.Context, projectID int, filter CaseFilter) (*Page, error) {
	page := newPage("cases")
	op := fmt.Sprintf("get cases of project %d", projectID)
	if err := s.transport.Get(ctx, op, endpoint("get_cases", projectID), filter.values(), page); err != nil {
		return nil, err
	}
	return page, nil
}

// Add implements CaseService.Add
func (s *HTTPCaseService) Add(ctx context.Context, sectionID int, testCase CaseRequest) (Record, error) {
	var created Record
	op := fmt.Sprintf("add case to section %d", sectionID)
	if err := s.transport.Post(ctx, op, endpoint("add_case", sectionID), nil, testCase, &created); err != nil {
		return nil, err
	}
	return created, nil
}

// Update implements CaseService.Update
func (s *HTTPCaseService) Update(ctx context.Context, caseID int, testCase CaseRequest) (Record, error) {
	var updated Record
	op := fmt.Sprintf("update case %d", caseID)
	if err := s.transport.Post(ctx, op, endpoint("update_case", caseID), nil, testCase, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateMany implements CaseService.UpdateMany
func (s *HTTPCaseService) UpdateMany(ctx context.Context, projectID int, suiteID *int, update BulkCaseUpdate) (any, error) {
	q := url.Values{}
	setInt(q, "suite_id", suiteID)

	var updated any
	op := fmt.Sprintf("update cases %v of project %d", update.CaseIDs, projectID)
	if err := s.transport.Post(ctx, op, endpoint("update_cases", projectID), q, update, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete implements CaseService.Delete
func (s *HTTPCaseService) Delete(ctx context.Context, caseID int, soft bool) (Record, error) {
	var preview Record
	op := fmt.Sprintf("delete case %d", caseID)
	if err := s.transport.Post(ctx, op, endpoint("delete_case", caseID), nil, softBody(soft), &preview); err != nil {
		return nil, err
	}
	return preview, nil
}

// DeleteMany implements CaseService.DeleteMany
func (s *HTTPCaseService) DeleteMany(ctx context.Context, projectID int, suiteID *int, caseIDs []int, soft bool) (Record, error) {
	q := url.Values{}
	setInt(q, "suite_id", suiteID)
	body := caseIDsBody{CaseIDs: caseIDs}
	if soft {
		body.Soft = 1
	}

	var preview Record
	op := fmt.Sprintf("delete cases %v of project %d", caseIDs, projectID)
	if err := s.transport.Post(ctx, op, endpoint("delete_cases", projectID), q, body, &preview); err != nil {
		return nil, err
	}
	return preview, nil
}

// CopyToSection implements CaseService.CopyToSection
func (s *HTTPCaseService) CopyToSection(ctx context.Context, sectionID int, caseIDs []int) ([]Record, error) {
	var copied []Record
	op := fmt.Sprintf("copy cases %v to section %d", caseIDs, sectionID)
	body := caseIDsBody{CaseIDs: caseIDs}
	if err := s.transport.Post(ctx, op, endpoint("copy_cases_to_section", sectionID), nil, body, &copied); err != nil {
		return nil, err
	}
	return copied, nil
}

// MoveToSection implements CaseService.MoveToSection
func (s *HTTPCaseService) MoveToSection(ctx context.Context, sectionID, suiteID int, caseIDs []int) error {
	op := fmt.Sprintf("move cases %v to section %d", caseIDs, sectionID)
	body := caseIDsBody{SuiteID: &suiteID, CaseIDs: caseIDs}
	return s.transport.Post(ctx, op, endpoint("move_cases_to_section", sectionID), nil, body, nil)
}

// History implements CaseService.History
func (s *HTTPCaseService) History(ctx context.Context, caseID int) (*Page, error) {
	page := newPage("history")
	op := fmt.Sprintf("get history of case %d", caseID)
	if err := s.transport.Get(ctx, op, endpoint("get_history_for_case", caseID), nil, page); err != nil {
		return nil, err
	}
	return page, nil
}

// Types implements CaseService.Types
func (s *HTTPCaseService) Types(ctx context.Context) ([]Record, error) {
	var types []Record
	if err := s.transport.Get(ctx, "get case types", endpoint("get_case_types"), nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}

// Fields implements CaseService.Fields
func (s *HTTPCaseService) Fields(ctx context.Context) ([]Record, error) {
	var fields []Record
	if err := s.transport.Get(ctx, "get case fields", endpoint("get_case_fields"), nil, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
