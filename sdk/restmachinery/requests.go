package restmachinery

import (
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"strings"
)

// OutboundRequest represents an API request. It is an immutable value: every
// With* method returns a modified copy and leaves the receiver untouched, so a
// partially built request can safely be reused as a template.
type OutboundRequest struct {
	// Method is the HTTP method. GET is assumed when it is empty.
	Method string
	// Path is resolved against the API address. It is required.
	Path string
	// QueryParams are appended to the URL.
	QueryParams map[string]string
	// Headers are added to the request. Authorization is managed by the client
	// and Content-Type is derived from the body; values set here for either are
	// overridden.
	Headers map[string]string
	// ReqBodyObj is the request body. A MultipartForm is sent as
	// multipart/form-data. []byte is sent verbatim. Anything else is marshaled
	// to JSON. It is ignored for GET requests.
	ReqBodyObj interface{}
}

// NewRequest returns an OutboundRequest for the given method and path.
func NewRequest(method, path string) OutboundRequest {
	return OutboundRequest{
		Method: method,
		Path:   path,
	}
}

// WithMethod returns a copy of the request with its method replaced.
func (o OutboundRequest) WithMethod(method string) OutboundRequest {
	o.Method = strings.ToUpper(method)
	return o
}

// Get returns a copy of the request using the GET method.
func (o OutboundRequest) Get() OutboundRequest {
	return o.WithMethod(http.MethodGet)
}

// Post returns a copy of the request using the POST method.
func (o OutboundRequest) Post() OutboundRequest {
	return o.WithMethod(http.MethodPost)
}

// Patch returns a copy of the request using the PATCH method.
func (o OutboundRequest) Patch() OutboundRequest {
	return o.WithMethod(http.MethodPatch)
}

// Delete returns a copy of the request using the DELETE method.
func (o OutboundRequest) Delete() OutboundRequest {
	return o.WithMethod(http.MethodDelete)
}

// WithPath returns a copy of the request with its path replaced.
func (o OutboundRequest) WithPath(path string) OutboundRequest {
	o.Path = path
	return o
}

// WithHeaders returns a copy of the request with the given headers merged
// into its existing headers. Where both define a header, the new value wins.
func (o OutboundRequest) WithHeaders(headers map[string]string) OutboundRequest {
	merged := make(map[string]string, len(o.Headers)+len(headers))
	for k, v := range o.Headers {
		merged[k] = v
	}
	for k, v := range headers {
		merged[k] = v
	}
	o.Headers = merged
	return o
}

// WithQuery returns a copy of the request with its query parameters replaced.
// Values are rendered with fmt.Sprint, so strings, numbers and booleans may
// be mixed freely.
func (o OutboundRequest) WithQuery(params map[string]interface{}) OutboundRequest {
	queryParams := make(map[string]string, len(params))
	for k, v := range params {
		queryParams[k] = fmt.Sprint(v)
	}
	o.QueryParams = queryParams
	return o
}

// WithJSONBody returns a copy of the request whose body is a deep copy of the
// given map. Later changes the caller makes to the map (or to maps and slices
// nested within it) do not affect the request. Files are shared, not copied.
func (o OutboundRequest) WithJSONBody(body map[string]interface{}) OutboundRequest {
	if body == nil {
		body = map[string]interface{}{}
	}
	o.ReqBodyObj = deepCopy(body)
	return o
}

// AsMultipart returns a copy of the request whose JSON body has been converted
// into a multipart form with one part per top-level key. It must be called
// after WithJSONBody. A request without a map body gets an empty form.
func (o OutboundRequest) AsMultipart() OutboundRequest {
	form := MultipartForm{}
	switch body := o.ReqBodyObj.(type) {
	case map[string]interface{}:
		for k, v := range body {
			form[k] = v
		}
	case MultipartForm:
		for k, v := range body {
			form[k] = v
		}
	}
	o.ReqBodyObj = form
	return o
}

// Body returns the request body as it will be sent, before encoding.
func (o OutboundRequest) Body() interface{} {
	return o.ReqBodyObj
}

// IsMultipart returns true if the request body will be sent as
// multipart/form-data.
func (o OutboundRequest) IsMultipart() bool {
	_, ok := o.ReqBodyObj.(MultipartForm)
	return ok
}

func (o OutboundRequest) method() string {
	if o.Method == "" {
		return http.MethodGet
	}
	return o.Method
}

// String renders the request for debug logging. Header values and body values
// are omitted since they may hold credentials.
func (o OutboundRequest) String() string {
	sb := strings.Builder{}
	sb.WriteString(o.method())
	sb.WriteString(" ")
	sb.WriteString(o.Path)
	if len(o.QueryParams) > 0 {
		sb.WriteString(" query=")
		sb.WriteString(fmt.Sprint(o.QueryParams))
	}
	if len(o.Headers) > 0 {
		sb.WriteString(" headers=")
		sb.WriteString(strings.Join(sortedKeys(o.Headers), ","))
	}
	switch body := o.ReqBodyObj.(type) {
	case MultipartForm:
		sb.WriteString(" multipart=")
		sb.WriteString(strings.Join(body.fieldNames(), ","))
	case map[string]interface{}:
		keys := make([]string, 0, len(body))
		for k := range body {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString(" json=")
		sb.WriteString(strings.Join(keys, ","))
	}
	return sb.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var fileType = reflect.TypeOf(&File{})

// deepCopy copies maps, slices, arrays and pointers reachable from value, of
// any element type. *File values are shared.
func deepCopy(value interface{}) interface{} {
	if value == nil {
		return nil
	}
	return copyValue(reflect.ValueOf(value)).Interface()
}

func copyValue(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		c := reflect.New(v.Type()).Elem()
		c.Set(copyValue(v.Elem()))
		return c
	case reflect.Map:
		if v.IsNil() {
			return v
		}
		c := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			c.SetMapIndex(iter.Key(), copyValue(iter.Value()))
		}
		return c
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		c := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			c.Index(i).Set(copyValue(v.Index(i)))
		}
		return c
	case reflect.Array:
		c := reflect.New(v.Type()).Elem()
		for i := 0; i < v.Len(); i++ {
			c.Index(i).Set(copyValue(v.Index(i)))
		}
		return c
	case reflect.Ptr:
		if v.IsNil() || v.Type() == fileType {
			return v
		}
		c := reflect.New(v.Type().Elem())
		c.Elem().Set(copyValue(v.Elem()))
		return c
	case reflect.Struct:
		c := reflect.New(v.Type()).Elem()
		c.Set(v)
		for i := 0; i < v.NumField(); i++ {
			// Unexported fields stay as they are
			if f := c.Field(i); f.CanSet() {
				f.Set(copyValue(v.Field(i)))
			}
		}
		return c
	default:
		return v
	}
}
