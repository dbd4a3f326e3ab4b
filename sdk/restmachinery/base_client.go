package restmachinery

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	"github.com/todayseafood/seafood/sdk/meta"
	"github.com/todayseafood/seafood/sdk/session"
	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/sync/singleflight"
)

// BaseClient provides API client functionality common to all of the SDK's
// specialized clients: attaching the access token, capturing rotated access
// tokens, and transparently refreshing an expired access token once per
// request. A BaseClient is safe for concurrent use and must not be copied
// after first use.
type BaseClient struct {
	APIAddress             string
	HTTPClient             *http.Client
	Tokens                 session.TokenStore
	Logger                 *zap.Logger
	OnSessionExpired       func()
	RefreshPath            string
	MaxRefreshAttempts     uint
	RefreshInitialInterval time.Duration
	RefreshTimeout         time.Duration

	refreshGroup singleflight.Group
}

// NewBaseClient returns a BaseClient for the API server at the given address.
func NewBaseClient(apiAddress string, opts *APIClientOptions) *BaseClient {
	if opts == nil {
		opts = &APIClientOptions{}
	}
	tokens := opts.TokenStore
	if tokens == nil {
		tokens = session.NewMemoryTokenStore("")
	}
	jar := opts.CookieJar
	if jar == nil {
		// cookiejar.New never returns a non-nil error
		jar, _ = cookiejar.New(
			&cookiejar.Options{PublicSuffixList: publicsuffix.List},
		)
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	} else if timeout < 0 {
		timeout = 0
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	refreshPath := opts.RefreshPath
	if refreshPath == "" {
		refreshPath = DefaultRefreshPath
	}
	maxRefreshAttempts := opts.MaxRefreshAttempts
	if maxRefreshAttempts == 0 {
		maxRefreshAttempts = defaultMaxRefreshAttempts
	}
	refreshInitialInterval := opts.RefreshInitialInterval
	if refreshInitialInterval == 0 {
		refreshInitialInterval = defaultRefreshInitialInterval
	}
	refreshTimeout := opts.RefreshTimeout
	if refreshTimeout == 0 {
		refreshTimeout = defaultRefreshTimeout
	}
	return &BaseClient{
		APIAddress: strings.TrimSuffix(apiAddress, "/"),
		HTTPClient: &http.Client{
			Jar:     jar,
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: opts.AllowInsecureConnections, // nolint: gosec
				},
			},
		},
		Tokens:                 tokens,
		Logger:                 logger,
		OnSessionExpired:       opts.OnSessionExpired,
		RefreshPath:            refreshPath,
		MaxRefreshAttempts:     maxRefreshAttempts,
		RefreshInitialInterval: refreshInitialInterval,
		RefreshTimeout:         refreshTimeout,
	}
}

// Response is a successful (2xx) response from the API server.
type Response struct {
	StatusCode int
	Header     http.Header
	// Body is the raw response body. It may be empty.
	Body        []byte
	hasJSONBody bool
}

// HasJSONBody returns true if the response carries a JSON body, i.e. its
// status is neither 204 nor 205 and its Content-Type is application/json.
func (r *Response) HasJSONBody() bool {
	return r.hasJSONBody
}

// Decode unmarshals the response's JSON body into obj. It is a no-op for
// responses without a JSON body.
func (r *Response) Decode(obj interface{}) error {
	if !r.hasJSONBody || obj == nil {
		return nil
	}
	return errors.Wrap(
		json.Unmarshal(r.Body, obj),
		"error unmarshaling response body",
	)
}

// ExecuteRequest submits the request and, if the response carries a JSON
// body, unmarshals it into respObj (when non-nil).
func (b *BaseClient) ExecuteRequest(
	ctx context.Context,
	req OutboundRequest,
	respObj interface{},
) error {
	resp, err := b.SubmitRequest(ctx, req)
	if err != nil {
		return err
	}
	return resp.Decode(respObj)
}

// SubmitRequest submits the request and returns the response if its status
// is in the 2xx range. If the API server responds 401, the access token is
// refreshed and the request is re-submitted exactly once; the outcome of that
// second attempt is returned. Any other non-2xx status is returned as a
// *meta.APIError. Transport-level errors are returned as they are.
func (b *BaseClient) SubmitRequest(
	ctx context.Context,
	req OutboundRequest,
) (*Response, error) {
	return b.submit(ctx, req, false)
}

func (b *BaseClient) submit(
	ctx context.Context,
	req OutboundRequest,
	isRetry bool,
) (*Response, error) {
	if req.Path == "" {
		return nil, &meta.ErrConfiguration{Reason: "request has no path"}
	}

	r, err := b.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	logger := b.Logger.With(
		zap.String("requestID", uuid.NewV4().String()),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
		zap.Bool("retry", isRetry),
	)
	logger.Debug("submitting request", zap.Stringer("request", req))

	httpResp, err := b.HTTPClient.Do(r)
	if err != nil {
		logger.Debug("request failed", zap.Error(err))
		return nil, err
	}
	defer httpResp.Body.Close()

	// The server may rotate the access token on any response, successful or
	// not.
	b.captureAccessToken(httpResp.Header)

	bodyBytes, err := ioutil.ReadAll(httpResp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "error reading response body")
	}
	resp := &Response{
		StatusCode:  httpResp.StatusCode,
		Header:      httpResp.Header,
		Body:        bodyBytes,
		hasJSONBody: canHaveJSONBody(httpResp),
	}
	logger.Debug("received response", zap.Int("status", resp.StatusCode))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	apiErr := newAPIError(resp)
	if resp.StatusCode == http.StatusUnauthorized && !isRetry {
		if err = b.refreshAccessToken(ctx, apiErr); err != nil {
			return nil, err
		}
		return b.submit(ctx, req, true)
	}
	return nil, apiErr
}

func (b *BaseClient) buildRequest(
	ctx context.Context,
	req OutboundRequest,
) (*http.Request, error) {
	reqURL, err := b.buildURL(req)
	if err != nil {
		return nil, err
	}

	method := req.method()
	var bodyReader io.Reader
	var contentType string
	if method != http.MethodGet {
		switch body := req.ReqBodyObj.(type) {
		case MultipartForm:
			var bodyBytes []byte
			if bodyBytes, contentType, err = body.encode(); err != nil {
				return nil, errors.Wrap(err, "error encoding multipart request body")
			}
			bodyReader = bytes.NewReader(bodyBytes)
		case []byte:
			bodyReader = bytes.NewReader(body)
		case nil:
			bodyReader = strings.NewReader("{}")
			contentType = "application/json"
		default:
			bodyBytes, err := json.Marshal(body)
			if err != nil {
				return nil, errors.Wrap(err, "error marshaling request body")
			}
			bodyReader = bytes.NewReader(bodyBytes)
			contentType = "application/json"
		}
	}

	r, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, errors.Wrapf(
			err,
			"error creating request %s %s",
			method,
			req.Path,
		)
	}
	for k, v := range req.Headers {
		r.Header.Set(k, v)
	}
	// The body, not the caller, determines the Content-Type. For multipart
	// bodies this is what carries the boundary.
	r.Header.Del("Content-Type")
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	r.Header.Del("Authorization")
	if token := b.Tokens.AccessToken(); token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	if r.Header.Get("Accept") == "" {
		r.Header.Set("Accept", "application/json")
	}
	return r, nil
}

func (b *BaseClient) buildURL(req OutboundRequest) (string, error) {
	base, err := url.Parse(b.APIAddress)
	if err != nil {
		return "", &meta.ErrConfiguration{
			Reason: errors.Wrapf(
				err,
				"invalid API address %q",
				b.APIAddress,
			).Error(),
		}
	}
	ref, err := url.Parse(req.Path)
	if err != nil {
		return "", &meta.ErrConfiguration{
			Reason: errors.Wrapf(err, "invalid path %q", req.Path).Error(),
		}
	}
	// The path is appended to, not resolved against, the API address so that
	// an address with a path prefix keeps it.
	u := *base
	u.Path = strings.TrimSuffix(base.Path, "/") + "/" +
		strings.TrimPrefix(ref.Path, "/")
	u.RawPath = ""
	q := ref.Query()
	for k, v := range req.QueryParams {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (b *BaseClient) captureAccessToken(header http.Header) {
	authHeader := header.Get("Authorization")
	if authHeader == "" {
		return
	}
	parts := strings.Fields(authHeader)
	if len(parts) >= 2 && parts[0] == "Bearer" {
		b.Tokens.SetAccessToken(parts[1])
	}
}

func canHaveJSONBody(resp *http.Response) bool {
	if resp.StatusCode == http.StatusNoContent ||
		resp.StatusCode == http.StatusResetContent {
		return false
	}
	return strings.Contains(resp.Header.Get("Content-Type"), "application/json")
}

// newAPIError builds an APIError from a failed response. The fields are
// filled on a best-effort basis from the body; the status always comes from
// the response itself.
func newAPIError(resp *Response) *meta.APIError {
	apiErr := &meta.APIError{}
	if resp.hasJSONBody {
		// A malformed body leaves the fields empty.
		_ = json.Unmarshal(resp.Body, apiErr) // nolint: errcheck
	}
	apiErr.Status = resp.StatusCode
	return apiErr
}
