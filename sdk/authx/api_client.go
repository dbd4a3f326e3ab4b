package authx

import "github.com/todayseafood/seafood/sdk/restmachinery"

// APIClient is the root client for authentication and User management.
type APIClient interface {
	// Sessions returns a specialized client for Session management.
	Sessions() SessionsClient
	// Users returns a specialized client for User management.
	Users() UsersClient
}

type apiClient struct {
	// sessionsClient is a specialized client for Session management.
	sessionsClient SessionsClient
	// usersClient is a specialized client for User management.
	usersClient UsersClient
}

// NewAPIClient returns an APIClient whose specialized clients all share one
// session.
func NewAPIClient(
	apiAddress string,
	opts *restmachinery.APIClientOptions,
) APIClient {
	return NewAPIClientWithBaseClient(
		restmachinery.NewBaseClient(apiAddress, opts),
	)
}

// NewAPIClientWithBaseClient returns an APIClient whose specialized clients
// all share the given BaseClient.
func NewAPIClientWithBaseClient(
	baseClient *restmachinery.BaseClient,
) APIClient {
	return &apiClient{
		sessionsClient: NewSessionsClientWithBaseClient(baseClient),
		usersClient:    NewUsersClientWithBaseClient(baseClient),
	}
}

func (a *apiClient) Sessions() SessionsClient {
	return a.sessionsClient
}

func (a *apiClient) Users() UsersClient {
	return a.usersClient
}
