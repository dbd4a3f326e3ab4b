package restmachinery

import (
	"net/http"
	"time"

	"github.com/todayseafood/seafood/sdk/session"
	"go.uber.org/zap"
)

const (
	// DefaultRefreshPath is the API path used to exchange the refresh token
	// cookie for a new access token.
	DefaultRefreshPath = "/auth/access/token/refresh"

	defaultTimeout                = 30 * time.Second
	defaultMaxRefreshAttempts     = 3
	defaultRefreshInitialInterval = 200 * time.Millisecond
	defaultRefreshTimeout         = 2 * time.Minute
)

// APIClientOptions encapsulates optional API client configuration. The zero
// value is usable; every unset field falls back to a sensible default.
type APIClientOptions struct {
	// AllowInsecureConnections indicates whether SSL errors should be ignored
	// (e.g. for a development API server using a self-signed certificate).
	AllowInsecureConnections bool
	// Timeout bounds each individual HTTP round trip. Zero means 30 seconds. A
	// negative value disables the timeout.
	Timeout time.Duration
	// TokenStore holds the access token. Clients that should share a session
	// must share a TokenStore. When nil, a new in-memory store is used.
	TokenStore session.TokenStore
	// CookieJar carries the refresh token cookie. Clients that should share a
	// session must share a CookieJar. When nil, a new in-memory jar is used.
	CookieJar http.CookieJar
	// Logger receives debug logs for every request and info/warn logs for
	// token refreshes. When nil, nothing is logged.
	Logger *zap.Logger
	// OnSessionExpired, when non-nil, is invoked once each time the API server
	// rejects an attempt to refresh the access token.
	OnSessionExpired func()
	// RefreshPath overrides DefaultRefreshPath.
	RefreshPath string
	// MaxRefreshAttempts bounds how many times a refresh that fails for
	// reasons other than an expired session is attempted. Zero means 3.
	MaxRefreshAttempts uint
	// RefreshInitialInterval is the delay before the first refresh re-attempt.
	// Subsequent delays grow exponentially. Zero means 200 milliseconds.
	RefreshInitialInterval time.Duration
	// RefreshTimeout bounds a refresh, including every re-attempt. A refresh
	// is shared by all callers waiting on it and outlives any one of them
	// giving up. Zero means 2 minutes.
	RefreshTimeout time.Duration
}
