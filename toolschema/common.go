package toolschema

// Default page size of list tools that paginate on behalf of the caller.
const (
	DefaultLimit  = 50
	DefaultOffset = 0
)

func pagination() []*Field {
	return []*Field{
		Int("limit", "Maximum number of records to return").Min(1),
		Int("offset", "Number of records to skip").Min(0),
	}
}

func statusFilter() *Field {
	return IDList("statusId", "Only return records with one of these status IDs")
}

func stepItem() *Field {
	return Item(
		Str("content", "Action of the step"),
		Str("expected", "Expected result of the step"),
		Str("additionalInfo", "Additional information for the step"),
		Str("refs", "Comma-separated references of the step"),
	)
}

// required returns fields with the named ones marked required.
func required(fields []*Field, names ...string) []*Field {
	for _, f := range fields {
		for _, name := range names {
			if f.Name == name {
				f.Required = true
			}
		}
	}
	return fields
}

func fields(fs ...*Field) []*Field {
	return fs
}
