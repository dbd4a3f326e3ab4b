package system

import "github.com/todayseafood/seafood/sdk/restmachinery"

// APIClient is the root client for operations concerning the API server
// itself rather than any resource it manages.
type APIClient interface {
	// Health returns a specialized client for checking on the API server.
	Health() HealthClient
}

type apiClient struct {
	healthClient HealthClient
}

// NewAPIClient returns an APIClient for the API server at the given address.
func NewAPIClient(
	apiAddress string,
	opts *restmachinery.APIClientOptions,
) APIClient {
	return NewAPIClientWithBaseClient(
		restmachinery.NewBaseClient(apiAddress, opts),
	)
}

// NewAPIClientWithBaseClient returns an APIClient that shares the given
// BaseClient.
func NewAPIClientWithBaseClient(
	baseClient *restmachinery.BaseClient,
) APIClient {
	return &apiClient{
		healthClient: NewHealthClientWithBaseClient(baseClient),
	}
}

func (a *apiClient) Health() HealthClient {
	return a.healthClient
}
