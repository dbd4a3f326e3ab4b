package core

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/todayseafood/seafood/sdk/restmachinery"
	"github.com/todayseafood/seafood/sdk/session"
)

const (
	testAPIAddress          = "https://localhost:8443"
	testAccessToken         = "11223344"
	testClientAllowInsecure = true
	testPostID              = int64(42)
	testUserID              = int64(7)
)

func testClientOptions(tokens session.TokenStore) *restmachinery.APIClientOptions {
	return &restmachinery.APIClientOptions{
		AllowInsecureConnections: testClientAllowInsecure,
		TokenStore:               tokens,
		RefreshInitialInterval:   time.Millisecond,
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

func requireJSONBody(t *testing.T, r *http.Request, expected string) {
	require.Equal(t, "application/json", r.Header.Get("Content-Type"))
	bodyBytes, err := ioutil.ReadAll(r.Body)
	require.NoError(t, err)
	require.JSONEq(t, expected, string(bodyBytes))
}
