package core

import (
	"context"
	"fmt"
	"net/http"

	"github.com/todayseafood/seafood/sdk/meta"
	"github.com/todayseafood/seafood/sdk/restmachinery"
)

func commentsPath(postID int64) string {
	return fmt.Sprintf("%s/comment", postPath(postID))
}

func commentPath(postID int64, id int64) string {
	return fmt.Sprintf("%s/%d", commentsPath(postID), id)
}

// Comment is a User's reply to a Post.
type Comment struct {
	ID                 int64          `json:"id"`
	AuthorID           int64          `json:"authorId"`
	AuthorNickname     string         `json:"authorNickname"`
	AuthorProfileImage string         `json:"authorProfileImage,omitempty"`
	Content            string         `json:"content"`
	UpdatedAt          meta.Timestamp `json:"updatedAt"`
}

// CommentList is an ordered and pageable list of Comments.
type CommentList struct {
	// Items is a list of Comments.
	Items []Comment `json:"contents"`
	// ListMeta contains list metadata.
	meta.ListMeta `json:",inline"`
}

// CommentsClient is the specialized client for managing the Comments on a
// Post.
type CommentsClient interface {
	// Create adds a Comment by the specified User to the specified Post.
	Create(
		ctx context.Context,
		postID int64,
		userID int64,
		content string,
	) (Comment, error)
	// List returns a CommentList for the specified Post.
	List(
		ctx context.Context,
		postID int64,
		opts *meta.ListOptions,
	) (CommentList, error)
	// Update replaces the content of the specified Comment and returns the
	// Comment as amended.
	Update(
		ctx context.Context,
		postID int64,
		id int64,
		content string,
	) (Comment, error)
	// Delete removes the specified Comment.
	Delete(ctx context.Context, postID int64, id int64) error
}

type commentsClient struct {
	*restmachinery.BaseClient
}

// NewCommentsClient returns a specialized client for managing Comments.
func NewCommentsClient(
	apiAddress string,
	opts *restmachinery.APIClientOptions,
) CommentsClient {
	return NewCommentsClientWithBaseClient(
		restmachinery.NewBaseClient(apiAddress, opts),
	)
}

// NewCommentsClientWithBaseClient returns a specialized client for managing
// Comments that shares the given BaseClient.
func NewCommentsClientWithBaseClient(
	baseClient *restmachinery.BaseClient,
) CommentsClient {
	return &commentsClient{
		BaseClient: baseClient,
	}
}

func (c *commentsClient) Create(
	ctx context.Context,
	postID int64,
	userID int64,
	content string,
) (Comment, error) {
	comment := Comment{}
	err := c.ExecuteRequest(
		ctx,
		restmachinery.NewRequest(http.MethodPost, commentsPath(postID)).
			WithJSONBody(
				map[string]interface{}{
					"userId":  userID,
					"content": content,
				},
			),
		&meta.Envelope{Data: &comment},
	)
	return comment, err
}

func (c *commentsClient) List(
	ctx context.Context,
	postID int64,
	opts *meta.ListOptions,
) (CommentList, error) {
	comments := CommentList{}
	if opts == nil {
		opts = &meta.ListOptions{}
	}
	err := c.ExecuteRequest(
		ctx,
		restmachinery.NewRequest(http.MethodGet, commentsPath(postID)).
			WithQuery(opts.QueryParams()),
		&meta.Envelope{Data: &comments},
	)
	return comments, err
}

func (c *commentsClient) Update(
	ctx context.Context,
	postID int64,
	id int64,
	content string,
) (Comment, error) {
	comment := Comment{}
	err := c.ExecuteRequest(
		ctx,
		restmachinery.NewRequest(http.MethodPatch, commentPath(postID, id)).
			WithJSONBody(map[string]interface{}{"content": content}),
		&meta.Envelope{Data: &comment},
	)
	return comment, err
}

func (c *commentsClient) Delete(
	ctx context.Context,
	postID int64,
	id int64,
) error {
	_, err := c.SubmitRequest(
		ctx,
		restmachinery.NewRequest(http.MethodDelete, commentPath(postID, id)),
	)
	return err
}
