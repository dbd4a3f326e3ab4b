package authx

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/todayseafood/seafood/sdk/meta"
	"github.com/todayseafood/seafood/sdk/restmachinery"
)

const (
	loginPath  = "/auth/access/token"
	logoutPath = "/auth/logout"
)

// LoginResult is the outcome of a login attempt. On success, the access token
// has already been captured by the client; LoginResult carries the profile
// details the client is expected to cache.
type LoginResult struct {
	LoginSuccess bool   `json:"loginSuccess"`
	ID           int64  `json:"id"`
	Nickname     string `json:"nickname"`
	ProfileImage string `json:"profileImage"`
	// LikedPostIDs identifies every Post the User has liked.
	LikedPostIDs IDList `json:"likedPostids"`
}

// IDList is a list of resource identifiers. The API server renders it either
// as a JSON array of numbers or as a single comma-joined string.
type IDList []int64

// UnmarshalJSON implements json.Unmarshaler.
func (i *IDList) UnmarshalJSON(data []byte) error {
	var ids []int64
	if err := json.Unmarshal(data, &ids); err == nil {
		*i = ids
		return nil
	}
	var str *string
	if err := json.Unmarshal(data, &str); err != nil {
		return errors.Wrap(err, "error unmarshaling ID list")
	}
	if str == nil {
		*i = nil
		return nil
	}
	ids, err := ParseIDList(*str)
	if err != nil {
		return err
	}
	*i = ids
	return nil
}

// String renders the list comma-joined.
func (i IDList) String() string {
	strs := make([]string, len(i))
	for idx, id := range i {
		strs[idx] = strconv.FormatInt(id, 10)
	}
	return strings.Join(strs, ",")
}

// ParseIDList parses a comma-joined list of identifiers. Empty elements are
// skipped.
func ParseIDList(str string) (IDList, error) {
	ids := IDList{}
	for _, part := range strings.Split(str, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid ID %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// SessionsClient is the specialized client for managing API Sessions.
type SessionsClient interface {
	// Login exchanges an email address and password for an access token (kept
	// by the client) and a refresh token (kept in the client's cookie jar).
	Login(ctx context.Context, email string, password string) (LoginResult, error)
	// Logout ends the current Session. The client's access token is discarded
	// even if the API server could not be reached.
	Logout(context.Context) error
	// Refresh exchanges the refresh token for a new access token.
	Refresh(context.Context) error
}

type sessionsClient struct {
	*restmachinery.BaseClient
}

// NewSessionsClient returns a specialized client for managing API Sessions.
func NewSessionsClient(
	apiAddress string,
	opts *restmachinery.APIClientOptions,
) SessionsClient {
	return NewSessionsClientWithBaseClient(
		restmachinery.NewBaseClient(apiAddress, opts),
	)
}

// NewSessionsClientWithBaseClient returns a specialized client for managing
// API Sessions that shares the given BaseClient, and therefore its session.
func NewSessionsClientWithBaseClient(
	baseClient *restmachinery.BaseClient,
) SessionsClient {
	return &sessionsClient{
		BaseClient: baseClient,
	}
}

func (s *sessionsClient) Login(
	ctx context.Context,
	email string,
	password string,
) (LoginResult, error) {
	result := LoginResult{}
	err := s.ExecuteRequest(
		ctx,
		restmachinery.NewRequest(http.MethodPost, loginPath).WithJSONBody(
			map[string]interface{}{
				"email":    email,
				"password": password,
			},
		),
		&meta.Envelope{Data: &result},
	)
	return result, err
}

func (s *sessionsClient) Logout(ctx context.Context) error {
	defer s.Tokens.Clear()
	_, err := s.SubmitRequest(
		ctx,
		restmachinery.NewRequest(http.MethodPost, logoutPath),
	)
	return err
}

func (s *sessionsClient) Refresh(ctx context.Context) error {
	return s.RefreshAccessToken(ctx)
}
