package mockapi

import (
	"encoding/json"
	"io/ioutil"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
)

// maxMultipartMemory bounds how much of a multipart body is held in memory.
const maxMultipartMemory = 10 << 20

// Endpoints is an interface for components that register HTTP handlers.
type Endpoints interface {
	Register(router *mux.Router)
}

// InboundRequest bundles everything ServeRequest needs to handle a request.
type InboundRequest struct {
	W                   http.ResponseWriter
	R                   *http.Request
	ReqBodySchemaLoader gojsonschema.JSONLoader
	ReqBodyObj          interface{}
	EndpointLogic       func() (interface{}, error)
	SuccessCode         int
	SuccessMessage      string
}

// envelope wraps every successful response body.
type envelope struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// BaseEndpoints provides request handling common to every endpoint.
type BaseEndpoints struct {
	TokenAuthFilter *TokenAuthFilter
	Logger          *zap.Logger
}

func (b *BaseEndpoints) readAndValidateRequestBody(
	w http.ResponseWriter,
	r *http.Request,
	bodySchemaLoader gojsonschema.JSONLoader,
	bodyObj interface{},
) bool {
	defer r.Body.Close()
	bodyBytes, err := ioutil.ReadAll(r.Body)
	if err != nil {
		b.Logger.Debug("error reading request body", zap.Error(err))
		b.WriteError(
			w,
			r,
			&ErrBadRequest{Code: "INVALID_BODY", Reason: "Could not read request body."},
		)
		return false
	}
	if bodySchemaLoader != nil {
		var validationResult *gojsonschema.Result
		validationResult, err = gojsonschema.Validate(
			bodySchemaLoader,
			gojsonschema.NewBytesLoader(bodyBytes),
		)
		if err != nil {
			b.Logger.Debug("error validating request body", zap.Error(err))
			b.WriteError(
				w,
				r,
				&ErrBadRequest{
					Code:   "INVALID_BODY",
					Reason: "Could not validate request body.",
				},
			)
			return false
		}
		if !validationResult.Valid() {
			reason := "Request body failed JSON validation:"
			for _, verr := range validationResult.Errors() {
				reason += " " + verr.String() + ";"
			}
			b.WriteError(w, r, &ErrBadRequest{Code: "INVALID_BODY", Reason: reason})
			return false
		}
	}
	if bodyObj != nil {
		if err = json.Unmarshal(bodyBytes, bodyObj); err != nil {
			b.Logger.Error("error unmarshaling request body", zap.Error(err))
			b.WriteError(w, r, err)
			return false
		}
	}
	return true
}

// ServeRequest validates and decodes the request body, if one is expected,
// runs the endpoint logic and writes its result or error.
func (b *BaseEndpoints) ServeRequest(req InboundRequest) {
	if req.ReqBodySchemaLoader != nil || req.ReqBodyObj != nil {
		if !b.readAndValidateRequestBody(
			req.W,
			req.R,
			req.ReqBodySchemaLoader,
			req.ReqBodyObj,
		) {
			return
		}
	}
	respBodyObj, err := req.EndpointLogic()
	if err != nil {
		b.WriteError(req.W, req.R, err)
		return
	}
	if req.SuccessCode == http.StatusNoContent {
		req.W.WriteHeader(http.StatusNoContent)
		return
	}
	b.WriteAPIResponse(
		req.W,
		req.SuccessCode,
		envelope{
			Message: req.SuccessMessage,
			Data:    respBodyObj,
		},
	)
}

// WriteError writes err as an error response body.
func (b *BaseEndpoints) WriteError(
	w http.ResponseWriter,
	r *http.Request,
	err error,
) {
	status, body := errorResponse(errors.Cause(err), r.URL.Path)
	if status == http.StatusInternalServerError {
		b.Logger.Error("internal error", zap.Error(err))
	}
	b.WriteAPIResponse(w, status, body)
}

// WriteAPIResponse writes response as JSON with the given status code.
func (b *BaseEndpoints) WriteAPIResponse(
	w http.ResponseWriter,
	statusCode int,
	response interface{},
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	responseBody, err := json.Marshal(response)
	if err != nil {
		b.Logger.Error("error marshaling response body", zap.Error(err))
	}
	if _, err := w.Write(responseBody); err != nil {
		b.Logger.Debug("error writing response body", zap.Error(err))
	}
}

// parseMultipartForm parses a multipart request body, reporting failure as a
// bad request.
func parseMultipartForm(r *http.Request) error {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return &ErrBadRequest{
			Code:   "INVALID_BODY",
			Reason: "Request body is not a valid multipart form.",
		}
	}
	return nil
}

// formFile returns the named file part of a parsed multipart form, or nil if
// there is none.
func formFile(r *http.Request, name string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	if files := r.MultipartForm.File[name]; len(files) > 0 {
		return files[0]
	}
	return nil
}

// idVar returns the named path variable as an identifier.
func idVar(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, &ErrBadRequest{
			Code:   "INVALID_ID",
			Reason: "Invalid identifier " + strconv.Quote(mux.Vars(r)[name]) + ".",
		}
	}
	return id, nil
}

// pageQuery returns the page and size query parameters, applying defaults.
func pageQuery(r *http.Request) (int, int, error) {
	page, size := 0, 10
	var err error
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if page, err = strconv.Atoi(pageStr); err != nil || page < 0 {
			return 0, 0, &ErrBadRequest{
				Code:   "INVALID_PAGE",
				Reason: `Invalid value ` + strconv.Quote(pageStr) + ` for "page".`,
			}
		}
	}
	if sizeStr := r.URL.Query().Get("size"); sizeStr != "" {
		if size, err = strconv.Atoi(sizeStr); err != nil || size < 1 || size > 100 {
			return 0, 0, &ErrBadRequest{
				Code:   "INVALID_SIZE",
				Reason: `Invalid value ` + strconv.Quote(sizeStr) + ` for "size".`,
			}
		}
	}
	return page, size, nil
}
