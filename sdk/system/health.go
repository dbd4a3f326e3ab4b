package system

import (
	"context"
	"net/http"

	"github.com/todayseafood/seafood/sdk/meta"
	"github.com/todayseafood/seafood/sdk/restmachinery"
)

const healthPath = "/healthz"

// HealthClient is the specialized client for checking on the API server.
type HealthClient interface {
	// Check returns nil if the API server answered its health check.
	Check(context.Context) error
}

type healthClient struct {
	*restmachinery.BaseClient
}

// NewHealthClient returns a specialized client for checking on the API
// server.
func NewHealthClient(
	apiAddress string,
	opts *restmachinery.APIClientOptions,
) HealthClient {
	return NewHealthClientWithBaseClient(
		restmachinery.NewBaseClient(apiAddress, opts),
	)
}

// NewHealthClientWithBaseClient returns a specialized client for checking on
// the API server that shares the given BaseClient.
func NewHealthClientWithBaseClient(
	baseClient *restmachinery.BaseClient,
) HealthClient {
	return &healthClient{
		BaseClient: baseClient,
	}
}

func (h *healthClient) Check(ctx context.Context) error {
	return h.ExecuteRequest(
		ctx,
		restmachinery.NewRequest(http.MethodGet, healthPath),
		&meta.Envelope{},
	)
}
