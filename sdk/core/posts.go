package core

import (
	"context"
	"fmt"
	"net/http"

	"github.com/todayseafood/seafood/sdk/meta"
	"github.com/todayseafood/seafood/sdk/restmachinery"
)

const postsPath = "/post"

func postPath(id int64) string {
	return fmt.Sprintf("%s/%d", postsPath, id)
}

// PostSummary is the abbreviated form of a Post that appears in a PostList.
type PostSummary struct {
	ID             int64          `json:"id"`
	Title          string         `json:"title"`
	Like           int64          `json:"like"`
	CommentCount   int64          `json:"commentCount"`
	Hit            int64          `json:"hit"`
	CreatedAt      meta.Timestamp `json:"createdAt"`
	AuthorImage    string         `json:"authorImage,omitempty"`
	AuthorNickname string         `json:"authorNickname"`
}

// PostList is an ordered and pageable list of PostSummaries.
type PostList struct {
	// Items is a list of PostSummaries.
	Items []PostSummary `json:"contents"`
	// ListMeta contains list metadata.
	meta.ListMeta `json:",inline"`
}

// Post is a single article posted by a User, with its counters.
type Post struct {
	ID             int64          `json:"id"`
	Title          string         `json:"title"`
	Article        string         `json:"article"`
	ArticleImage   string         `json:"articleImage,omitempty"`
	Category       string         `json:"category,omitempty"`
	AuthorID       int64          `json:"authorId,omitempty"`
	AuthorNickname string         `json:"authorNickname"`
	AuthorImage    string         `json:"authorImage,omitempty"`
	Like           int64          `json:"like"`
	CommentCount   int64          `json:"commentCount"`
	Hit            int64          `json:"hit"`
	CreatedAt      meta.Timestamp `json:"createdAt"`
}

// NewPost is everything required to publish a Post.
type NewPost struct {
	AuthorID     int64
	Title        string
	Article      string
	Category     string
	ArticleImage *restmachinery.File
}

// PostUpdate describes changes to an existing Post. ArticleImage may be nil
// to keep the current image; OldFileName names the image being replaced.
type PostUpdate struct {
	Title        string
	Article      string
	Category     string
	OldFileName  string
	ArticleImage *restmachinery.File
}

// PostsClient is the specialized client for managing Posts.
type PostsClient interface {
	// List returns a PostList, newest first.
	List(context.Context, *meta.ListOptions) (PostList, error)
	// Create publishes a new Post.
	Create(context.Context, NewPost) (Post, error)
	// Get retrieves a single Post specified by its identifier.
	Get(context.Context, int64) (Post, error)
	// Update amends the Post specified by its identifier.
	Update(context.Context, int64, PostUpdate) (Post, error)
	// Delete deletes a single Post specified by its identifier.
	Delete(context.Context, int64) error

	// Like records that the specified User likes the specified Post.
	Like(ctx context.Context, id int64, userID int64) error
	// CancelLike withdraws the specified User's like of the specified Post.
	CancelLike(ctx context.Context, id int64, userID int64) error
	// Hit increments the view count of the specified Post.
	Hit(context.Context, int64) error
}

type postsClient struct {
	*restmachinery.BaseClient
}

// NewPostsClient returns a specialized client for managing Posts.
func NewPostsClient(
	apiAddress string,
	opts *restmachinery.APIClientOptions,
) PostsClient {
	return NewPostsClientWithBaseClient(
		restmachinery.NewBaseClient(apiAddress, opts),
	)
}

// NewPostsClientWithBaseClient returns a specialized client for managing
// Posts that shares the given BaseClient.
func NewPostsClientWithBaseClient(
	baseClient *restmachinery.BaseClient,
) PostsClient {
	return &postsClient{
		BaseClient: baseClient,
	}
}

func (p *postsClient) List(
	ctx context.Context,
	opts *meta.ListOptions,
) (PostList, error) {
	posts := PostList{}
	if opts == nil {
		opts = &meta.ListOptions{}
	}
	err := p.ExecuteRequest(
		ctx,
		restmachinery.NewRequest(http.MethodGet, postsPath).
			WithQuery(opts.QueryParams()),
		&meta.Envelope{Data: &posts},
	)
	return posts, err
}

func (p *postsClient) Create(ctx context.Context, post NewPost) (Post, error) {
	created := Post{}
	err := p.ExecuteRequest(
		ctx,
		restmachinery.NewRequest(http.MethodPost, postsPath).
			WithJSONBody(
				map[string]interface{}{
					"authorId":     post.AuthorID,
					"title":        post.Title,
					"article":      post.Article,
					"category":     post.Category,
					"articleImage": post.ArticleImage,
				},
			).
			AsMultipart(),
		&meta.Envelope{Data: &created},
	)
	return created, err
}

func (p *postsClient) Get(ctx context.Context, id int64) (Post, error) {
	post := Post{}
	err := p.ExecuteRequest(
		ctx,
		restmachinery.NewRequest(http.MethodGet, postPath(id)),
		&meta.Envelope{Data: &post},
	)
	return post, err
}

func (p *postsClient) Update(
	ctx context.Context,
	id int64,
	update PostUpdate,
) (Post, error) {
	post := Post{}
	err := p.ExecuteRequest(
		ctx,
		restmachinery.NewRequest(http.MethodPatch, postPath(id)).
			WithJSONBody(
				map[string]interface{}{
					"title":        update.Title,
					"article":      update.Article,
					"category":     update.Category,
					"oldFileName":  update.OldFileName,
					"articleImage": update.ArticleImage,
				},
			).
			AsMultipart(),
		&meta.Envelope{Data: &post},
	)
	return post, err
}

func (p *postsClient) Delete(ctx context.Context, id int64) error {
	_, err := p.SubmitRequest(
		ctx,
		restmachinery.NewRequest(http.MethodDelete, postPath(id)),
	)
	return err
}

func (p *postsClient) Like(ctx context.Context, id int64, userID int64) error {
	return p.like(ctx, fmt.Sprintf("%s/like", postPath(id)), userID)
}

func (p *postsClient) CancelLike(
	ctx context.Context,
	id int64,
	userID int64,
) error {
	return p.like(ctx, fmt.Sprintf("%s/like/cancel", postPath(id)), userID)
}

func (p *postsClient) like(ctx context.Context, path string, userID int64) error {
	_, err := p.SubmitRequest(
		ctx,
		restmachinery.NewRequest(http.MethodPost, path).
			WithJSONBody(map[string]interface{}{"userId": userID}),
	)
	return err
}

func (p *postsClient) Hit(ctx context.Context, id int64) error {
	_, err := p.SubmitRequest(
		ctx,
		restmachinery.NewRequest(
			http.MethodPost,
			fmt.Sprintf("%s/hit", postPath(id)),
		).WithJSONBody(nil),
	)
	return err
}
