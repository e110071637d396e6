package testrailtools

import (
	"github.com/contenox/testrail-mcp/apiframework"
	"github.com/contenox/testrail-mcp/testrailsdk"
	"github.com/contenox/testrail-mcp/toolschema"
)

// ok wraps data under the resource key, e.g. {"case": {...}}.
func ok(message, key string, data any) apiframework.Envelope {
	return apiframework.Success(message, map[string]any{key: data})
}

func fail(message string, err error) apiframework.Envelope {
	return apiframework.Failure(message, err)
}

func decode[T any](args toolschema.Args) (T, error) {
	var v T
	err := args.Decode(&v)
	return v, err
}

// listData flattens a page into {<items>, offset, limit, size, hasMore}. The
// limit and offset are the ones asked for when given.
func listData(page *testrailsdk.Page, args toolschema.Args) map[string]any {
	items := page.Items
	if items == nil {
		items = []testrailsdk.Record{}
	}
	limit, offset := page.Limit, page.Offset
	if v := args.OptionalInt("limit"); v != nil {
		limit = *v
	}
	if v := args.OptionalInt("offset"); v != nil {
		offset = *v
	}
	return map[string]any{
		page.ItemsKey: items,
		"offset":      offset,
		"limit":       limit,
		"size":        page.Size,
		"hasMore":     page.HasMore(),
	}
}

func records(list []testrailsdk.Record) []testrailsdk.Record {
	if list == nil {
		return []testrailsdk.Record{}
	}
	return list
}
