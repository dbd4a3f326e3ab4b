package authx

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/todayseafood/seafood/sdk/restmachinery"
	"github.com/todayseafood/seafood/sdk/session"
)

const (
	testAPIAddress          = "https://localhost:8443"
	testAccessToken         = "11223344"
	testClientAllowInsecure = true
)

func testClientOptions(tokens session.TokenStore) *restmachinery.APIClientOptions {
	return &restmachinery.APIClientOptions{
		AllowInsecureConnections: testClientAllowInsecure,
		TokenStore:               tokens,
	}
}

func requireBaseClient(t *testing.T, baseClient *restmachinery.BaseClient) {
	require.NotNil(t, baseClient)
	require.Equal(t, testAPIAddress, baseClient.APIAddress)
	require.NotNil(t, baseClient.HTTPClient)
	require.NotNil(t, baseClient.Tokens)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprint(w, body)
}
