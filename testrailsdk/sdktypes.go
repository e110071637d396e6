package testrailsdk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Record is one upstream entity, kept in the upstream's snake_case vocabulary
// so custom fields of the instance survive untouched.
type Record map[string]any

// Links is the "_links" member of a paginated response.
type Links struct {
	Next *string `json:"next"`
	Prev *string `json:"prev"`
}

// Page is one page of a paginated list endpoint. Older TestRail versions return
// a bare array instead of the envelope; both decode into a Page.
type Page struct {
	Offset int
	Limit  int
	Size   int
	Links  Links
	// ItemsKey names the items member, e.g. "cases". Set it before decoding.
	ItemsKey string
	Items    []Record
}

func newPage(itemsKey string) *Page {
	return &Page{ItemsKey: itemsKey}
}

// HasMore reports whether the upstream announced a next page.
func (p *Page) HasMore() bool {
	return p.Links.Next != nil && *p.Links.Next != ""
}

func (p *Page) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &p.Items); err != nil {
			return err
		}
		p.Offset = 0
		p.Limit = len(p.Items)
		p.Size = len(p.Items)
		return nil
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}
	for key, raw := range members {
		var err error
		switch key {
		case "offset":
			err = json.Unmarshal(raw, &p.Offset)
		case "limit":
			err = json.Unmarshal(raw, &p.Limit)
		case "size":
			err = json.Unmarshal(raw, &p.Size)
		case "_links":
			err = json.Unmarshal(raw, &p.Links)
		default:
			if p.ItemsKey == "" || key == p.ItemsKey {
				trimmed := bytes.TrimSpace(raw)
				if len(trimmed) == 0 || trimmed[0] != '[' {
					continue
				}
				p.ItemsKey = key
				err = json.Unmarshal(raw, &p.Items)
			}
		}
		if err != nil {
			return fmt.Errorf("decode page member %q: %w", key, err)
		}
	}
	return nil
}

// Pagination is the limit/offset pair accepted by every paginated endpoint.
type Pagination struct {
	Limit  *int `mapstructure:"limit"`
	Offset *int `mapstructure:"offset"`
}

func (p Pagination) apply(q url.Values) {
	setInt(q, "limit", p.Limit)
	setInt(q, "offset", p.Offset)
}

// Step is one entry of a separated-steps list.
type Step struct {
	Content        string `mapstructure:"content" json:"content,omitempty"`
	Expected       string `mapstructure:"expected" json:"expected,omitempty"`
	AdditionalInfo string `mapstructure:"additionalInfo" json:"additional_info,omitempty"`
	Refs           string `mapstructure:"refs" json:"refs,omitempty"`
}

func setInt(q url.Values, key string, v *int) {
	if v != nil {
		q.Set(key, strconv.Itoa(*v))
	}
}

// TestRail encodes booleans in query strings as 0/1.
func setBool(q url.Values, key string, v *bool) {
	if v == nil {
		return
	}
	if *v {
		q.Set(key, "1")
	} else {
		q.Set(key, "0")
	}
}

func setString(q url.Values, key, v string) {
	if v != "" {
		q.Set(key, v)
	}
}

// Id lists are comma separated, e.g. priority_id=1,2.
func setIDs(q url.Values, key string, ids []int) {
	if len(ids) == 0 {
		return
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	q.Set(key, strings.Join(parts, ","))
}

func softBody(soft bool) any {
	if soft {
		return map[string]int{"soft": 1}
	}
	return nil
}
