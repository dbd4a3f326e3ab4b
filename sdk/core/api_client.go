package core

import "github.com/todayseafood/seafood/sdk/restmachinery"

// APIClient is the root client for Posts and their Comments.
type APIClient interface {
	// Posts returns a specialized client for Post management.
	Posts() PostsClient
	// Comments returns a specialized client for Comment management.
	Comments() CommentsClient
}

type apiClient struct {
	postsClient    PostsClient
	commentsClient CommentsClient
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
		postsClient:    NewPostsClientWithBaseClient(baseClient),
		commentsClient: NewCommentsClientWithBaseClient(baseClient),
	}
}

func (a *apiClient) Posts() PostsClient {
	return a.postsClient
}

func (a *apiClient) Comments() CommentsClient {
	return a.commentsClient
}
