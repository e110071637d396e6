package testrailsdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// SectionService covers the section endpoints.
type SectionService interface {
	List(ctx context.Context, projectID int, filter SectionFilter) (*Page, error)
	Get(ctx context.Context, sectionID int) (Record, error)
	Add(ctx context.Context, projectID int, section SectionRequest) (Record, error)
	Move(ctx context.Context, sectionID int, move SectionMove) (Record, error)
	Update(ctx context.Context, sectionID int, section SectionRequest) (Record, error)
	// Delete returns the upstream preview of affected records when soft is set.
	Delete(ctx context.Context, sectionID int, soft bool) (Record, error)
}

type SectionFilter struct {
	SuiteID    *int `mapstructure:"suiteId"`
	Pagination `mapstructure:",squash"`
}

// SectionRequest is the body of add_section and update_section.
type SectionRequest struct {
	SuiteID     *int   `mapstructure:"suiteId" json:"suite_id,omitempty"`
	ParentID    *int   `mapstructure:"parentId" json:"parent_id,omitempty"`
	Name        string `mapstructure:"name" json:"name,omitempty"`
	Description string `mapstructure:"description" json:"description,omitempty"`
}

// SectionMove is the body of move_section. Unset members are left out so the
// section keeps its current parent; ToRoot sends an explicit null parent.
type SectionMove struct {
	ParentID *int `mapstructure:"parentId"`
	AfterID  *int `mapstructure:"afterId"`
	ToRoot   bool `mapstructure:"toRoot"`
}

func (m SectionMove) MarshalJSON() ([]byte, error) {
	body := map[string]any{}
	switch {
	case m.ParentID != nil:
		body["parent_id"] = *m.ParentID
	case m.ToRoot:
		body["parent_id"] = nil
	}
	if m.AfterID != nil {
		body["after_id"] = *m.AfterID
	}
	return json.Marshal(body)
}

// HTTPSectionService implements SectionService on the shared transport.
type HTTPSectionService struct {
	transport *Transport
}

func NewHTTPSectionService(transport *Transport) SectionService {
	return &HTTPSectionService{transport: transport}
}

func (s *HTTPSectionService) List(ctx context.Context, projectID int, filter SectionFilter) (*Page, error) {
	q := url.Values{}
	setInt(q, "suite_id", filter.SuiteID)
	filter.Pagination.apply(q)

	page := newPage("sections")
	op := fmt.Sprintf("get sections of project %d", projectID)
	if err := s.transport.Get(ctx, op, endpoint("get_sections", projectID), q, page); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *HTTPSectionService) Get(ctx context.Context, sectionID int) (Record, error) {
	var section Record
	op := fmt.Sprintf("get section %d", sectionID)
	if err := s.transport.Get(ctx, op, endpoint("get_section", sectionID), nil, &section); err != nil {
		return nil, err
	}
	return section, nil
}

func (s *HTTPSectionService) Add(ctx context.Context, projectID int, section SectionRequest) (Record, error) {
	var created Record
	op := fmt.Sprintf("add section to project %d", projectID)
	if err := s.transport.Post(ctx, op, endpoint("add_section", projectID), nil, section, &created); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *HTTPSectionService) Move(ctx context.Context, sectionID int, move SectionMove) (Record, error) {
	var moved Record
	op := fmt.Sprintf("move section %d", sectionID)
	if err := s.transport.Post(ctx, op, endpoint("move_section", sectionID), nil, move, &moved); err != nil {
		return nil, err
	}
	return moved, nil
}

func (s *HTTPSectionService) Update(ctx context.Context, sectionID int, section SectionRequest) (Record, error) {
	var updated Record
	op := fmt.Sprintf("update section %d", sectionID)
	if err := s.transport.Post(ctx, op, endpoint("update_section", sectionID), nil, section, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *HTTPSectionService) Delete(ctx context.Context, sectionID int, soft bool) (Record, error) {
	var preview Record
	op := fmt.Sprintf("delete section %d", sectionID)
	if err := s.transport.Post(ctx, op, endpoint("delete_section", sectionID), nil, softBody(soft), &preview); err != nil {
		return nil, err
	}
	return preview, nil
}
