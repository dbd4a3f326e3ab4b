package meta

import "time"

// DefaultPageSize is the number of items requested per page when a caller
// does not specify one.
const DefaultPageSize = 10

// Envelope is the wrapper the API server places around every successful
// response body. Data should be set to a pointer to the object the payload is
// to be unmarshaled into before the envelope itself is unmarshaled.
type Envelope struct {
	// Message is an optional, human readable status message.
	Message string `json:"message,omitempty"`
	// Data is the response payload.
	Data interface{} `json:"data,omitempty"`
}

// ListOptions represents paging options for API operations that return
// ordered collections of resources.
type ListOptions struct {
	// Page is the zero-based index of the page to retrieve.
	Page int
	// Size is the maximum number of items on a page.
	Size int
}

// QueryParams returns ListOptions as query parameters understood by the API
// server. A zero Size is replaced with DefaultPageSize.
func (l ListOptions) QueryParams() map[string]interface{} {
	size := l.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	page := l.Page
	if page < 0 {
		page = 0
	}
	return map[string]interface{}{
		"page": page,
		"size": size,
	}
}

// ListMeta is metadata for ordered collections of resources.
type ListMeta struct {
	// HasNext indicates whether another page of results follows this one.
	HasNext bool `json:"hasNext"`
}

// Timestamp is a point in time as rendered by the API server. The server
// emits local date-times without a zone designator, so Timestamp tolerates
// both that form and RFC 3339.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	str := string(data)
	if str == "null" || str == `""` {
		return nil
	}
	if len(str) < 2 || str[0] != '"' || str[len(str)-1] != '"' {
		return &time.ParseError{Value: str, Message: ": timestamp is not a string"}
	}
	str = str[1 : len(str)-1]
	var err error
	for _, layout := range timestampLayouts {
		var parsed time.Time
		if parsed, err = time.ParseInLocation(layout, str, time.Local); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return err
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(time.RFC3339) + `"`), nil
}
