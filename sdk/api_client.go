package sdk

import (
	"github.com/todayseafood/seafood/sdk/authx"
	"github.com/todayseafood/seafood/sdk/core"
	"github.com/todayseafood/seafood/sdk/restmachinery"
	"github.com/todayseafood/seafood/sdk/system"
)

// APIClient is the root of the 오늘의 수산 client SDK. Every specialized client
// reachable from it shares a single HTTP client, cookie jar and token store,
// so logging in through Authx() authenticates requests made through Core().
type APIClient interface {
	// Authx returns a client for Sessions and Users.
	Authx() authx.APIClient
	// Core returns a client for Posts and Comments.
	Core() core.APIClient
	// System returns a client for checking on the API server itself.
	System() system.APIClient
	// BaseClient returns the client all requests are executed by.
	BaseClient() *restmachinery.BaseClient
}

type apiClient struct {
	baseClient   *restmachinery.BaseClient
	authxClient  authx.APIClient
	coreClient   core.APIClient
	systemClient system.APIClient
}

// NewAPIClient returns an APIClient for the API server at the given address.
func NewAPIClient(
	apiAddress string,
	opts *restmachinery.APIClientOptions,
) APIClient {
	baseClient := restmachinery.NewBaseClient(apiAddress, opts)
	return &apiClient{
		baseClient:   baseClient,
		authxClient:  authx.NewAPIClientWithBaseClient(baseClient),
		coreClient:   core.NewAPIClientWithBaseClient(baseClient),
		systemClient: system.NewAPIClientWithBaseClient(baseClient),
	}
}

func (a *apiClient) Authx() authx.APIClient {
	return a.authxClient
}

func (a *apiClient) Core() core.APIClient {
	return a.coreClient
}

func (a *apiClient) System() system.APIClient {
	return a.systemClient
}

func (a *apiClient) BaseClient() *restmachinery.BaseClient {
	return a.baseClient
}
