package core

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/todayseafood/seafood/sdk/session"
)

func TestNewAPIClient(t *testing.T) {
	client := NewAPIClient(
		testAPIAddress,
		testClientOptions(session.NewMemoryTokenStore(testAccessToken)),
	)
	require.IsType(t, &apiClient{}, client)
	require.NotNil(t, client.(*apiClient).postsClient)
	require.NotNil(t, client.Posts())
	require.NotNil(t, client.(*apiClient).commentsClient)
	require.NotNil(t, client.Comments())
}
