package schema

// Document is a unit of loaded content plus free-form metadata.
type Document struct {
	PageContent string
	Metadata    map[string]any
}

func (d Document) String() string {
	return d.PageContent
}

func NewDocument(content string, metadata map[string]any) Document {
	if metadata == nil {
		metadata = make(map[string]any)
	}
	return Document{
		PageContent: content,
		Metadata:    metadata,
	}
}

// Source returns the "source" metadata entry, or an empty string.
func (d Document) Source() string {
	if s, ok := d.Metadata["source"].(string); ok {
		return s
	}
	return ""
}
