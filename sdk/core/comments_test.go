package core

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/todayseafood/seafood/sdk/meta"
	"github.com/todayseafood/seafood/sdk/session"
)

func TestNewCommentsClient(t *testing.T) {
	client := NewCommentsClient(
		testAPIAddress,
		testClientOptions(session.NewMemoryTokenStore(testAccessToken)),
	)
	require.IsType(t, &commentsClient{}, client)
	requireBaseClient(t, client.(*commentsClient).BaseClient)
}

func TestCommentsClientCreate(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/post/42/comment", r.URL.Path)
				requireJSONBody(t, r, `{"userId":7,"content":"맛있겠다"}`)
				writeJSON(
					w,
					http.StatusCreated,
					`{"data":{"id":5,"authorId":7,"content":"맛있겠다"}}`,
				)
			},
		),
	)
	defer server.Close()
	client := NewCommentsClient(
		server.URL,
		testClientOptions(session.NewMemoryTokenStore(testAccessToken)),
	)
	comment, err := client.Create(
		context.Background(),
		testPostID,
		testUserID,
		"맛있겠다",
	)
	require.NoError(t, err)
	require.Equal(t, int64(5), comment.ID)
	require.Equal(t, testUserID, comment.AuthorID)
}

func TestCommentsClientList(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodGet, r.Method)
				require.Equal(t, "/post/42/comment", r.URL.Path)
				require.Equal(t, "page=1&size=5", r.URL.RawQuery)
				writeJSON(
					w,
					http.StatusOK,
					`{"data":{"contents":[{"id":1,"authorId":7,`+
						`"authorNickname":"참치왕","content":"첫 댓글",`+
						`"updatedAt":"2025-01-02T03:04:05"}],"hasNext":false}}`,
				)
			},
		),
	)
	defer server.Close()
	client := NewCommentsClient(
		server.URL,
		testClientOptions(session.NewMemoryTokenStore(testAccessToken)),
	)
	comments, err := client.List(
		context.Background(),
		testPostID,
		&meta.ListOptions{Page: 1, Size: 5},
	)
	require.NoError(t, err)
	require.False(t, comments.HasNext)
	require.Len(t, comments.Items, 1)
	require.Equal(t, "첫 댓글", comments.Items[0].Content)
	require.False(t, comments.Items[0].UpdatedAt.IsZero())
}

func TestCommentsClientUpdate(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPatch, r.Method)
				require.Equal(t, "/post/42/comment/5", r.URL.Path)
				requireJSONBody(t, r, `{"content":"수정"}`)
				writeJSON(
					w,
					http.StatusOK,
					`{"data":{"content":"수정","updatedAt":"2025-01-02T03:04:05"}}`,
				)
			},
		),
	)
	defer server.Close()
	client := NewCommentsClient(
		server.URL,
		testClientOptions(session.NewMemoryTokenStore(testAccessToken)),
	)
	comment, err := client.Update(context.Background(), testPostID, 5, "수정")
	require.NoError(t, err)
	require.Equal(t, "수정", comment.Content)
}

func TestCommentsClientDelete(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodDelete, r.Method)
				require.Equal(t, "/post/42/comment/5", r.URL.Path)
				w.WriteHeader(http.StatusNoContent)
			},
		),
	)
	defer server.Close()
	client := NewCommentsClient(
		server.URL,
		testClientOptions(session.NewMemoryTokenStore(testAccessToken)),
	)
	require.NoError(t, client.Delete(context.Background(), testPostID, 5))
}

func TestCommentsClientDeleteForbidden(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				writeJSON(
					w,
					http.StatusForbidden,
					`{"code":"NOT_AUTHOR","message":"작성자만 삭제할 수 있습니다"}`,
				)
			},
		),
	)
	defer server.Close()
	tokens := session.NewMemoryTokenStore(testAccessToken)
	client := NewCommentsClient(server.URL, testClientOptions(tokens))
	err := client.Delete(context.Background(), testPostID, 5)
	require.Error(t, err)
	require.True(t, meta.IsStatus(err, http.StatusForbidden))
	// A 403 outside of a refresh leaves the session alone
	require.Equal(t, testAccessToken, tokens.AccessToken())
}
