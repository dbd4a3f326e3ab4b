package core

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/todayseafood/seafood/sdk/meta"
	"github.com/todayseafood/seafood/sdk/restmachinery"
	"github.com/todayseafood/seafood/sdk/session"
)

func TestNewPostsClient(t *testing.T) {
	client := NewPostsClient(
		testAPIAddress,
		testClientOptions(session.NewMemoryTokenStore(testAccessToken)),
	)
	require.IsType(t, &postsClient{}, client)
	requireBaseClient(t, client.(*postsClient).BaseClient)
}

func TestPostsClientList(t *testing.T) {
	testCases := []struct {
		name          string
		opts          *meta.ListOptions
		expectedQuery string
	}{
		{
			name:          "default paging",
			opts:          nil,
			expectedQuery: "page=0&size=10",
		},
		{
			name:          "explicit paging",
			opts:          &meta.ListOptions{Page: 3, Size: 20},
			expectedQuery: "page=3&size=20",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			server := httptest.NewServer(
				http.HandlerFunc(
					func(w http.ResponseWriter, r *http.Request) {
						require.Equal(t, http.MethodGet, r.Method)
						require.Equal(t, "/post", r.URL.Path)
						require.Equal(t, testCase.expectedQuery, r.URL.RawQuery)
						require.Zero(t, r.ContentLength)
						writeJSON(
							w,
							http.StatusOK,
							`{"data":{"contents":[{"id":1,"title":"방어 손질법",`+
								`"like":3,"commentCount":2,"hit":50,`+
								`"createdAt":"2025-01-02T03:04:05",`+
								`"authorNickname":"참치왕"}],"hasNext":true}}`,
						)
					},
				),
			)
			defer server.Close()
			client := NewPostsClient(
				server.URL,
				testClientOptions(session.NewMemoryTokenStore(testAccessToken)),
			)
			posts, err := client.List(context.Background(), testCase.opts)
			require.NoError(t, err)
			require.True(t, posts.HasNext)
			require.Len(t, posts.Items, 1)
			require.Equal(t, "방어 손질법", posts.Items[0].Title)
			require.Equal(t, int64(50), posts.Items[0].Hit)
			require.Equal(t, 2025, posts.Items[0].CreatedAt.Year())
		})
	}
}

func TestPostsClientCreate(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/post", r.URL.Path)
				require.NoError(t, r.ParseMultipartForm(1<<20))
				require.Equal(t, "7", r.FormValue("authorId"))
				require.Equal(t, "오늘의 광어", r.FormValue("title"))
				require.Equal(t, "싱싱합니다", r.FormValue("article"))
				require.Equal(t, "fish", r.FormValue("category"))
				file, header, err := r.FormFile("articleImage")
				require.NoError(t, err)
				defer file.Close()
				require.Equal(t, "flatfish.jpg", header.Filename)
				require.Equal(t, "image/jpeg", header.Header.Get("Content-Type"))
				content, err := ioutil.ReadAll(file)
				require.NoError(t, err)
				require.Equal(t, []byte("JPEG"), content)
				writeJSON(
					w,
					http.StatusCreated,
					`{"data":{"id":42,"title":"오늘의 광어"}}`,
				)
			},
		),
	)
	defer server.Close()
	client := NewPostsClient(
		server.URL,
		testClientOptions(session.NewMemoryTokenStore(testAccessToken)),
	)
	post, err := client.Create(
		context.Background(),
		NewPost{
			AuthorID: testUserID,
			Title:    "오늘의 광어",
			Article:  "싱싱합니다",
			Category: "fish",
			ArticleImage: &restmachinery.File{
				Name:    "flatfish.jpg",
				Content: []byte("JPEG"),
			},
		},
	)
	require.NoError(t, err)
	require.Equal(t, testPostID, post.ID)
}

func TestPostsClientGet(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodGet, r.Method)
				require.Equal(t, "/post/42", r.URL.Path)
				writeJSON(
					w,
					http.StatusOK,
					`{"data":{"id":42,"title":"t","article":"a","category":"fish",`+
						`"authorNickname":"n","like":1,"commentCount":0,"hit":9,`+
						`"createdAt":"2025-05-06 07:08:09"}}`,
				)
			},
		),
	)
	defer server.Close()
	client := NewPostsClient(
		server.URL,
		testClientOptions(session.NewMemoryTokenStore(testAccessToken)),
	)
	post, err := client.Get(context.Background(), testPostID)
	require.NoError(t, err)
	require.Equal(t, testPostID, post.ID)
	require.Equal(t, "fish", post.Category)
	require.Equal(t, int64(9), post.Hit)
	require.Equal(t, 8, post.CreatedAt.Minute())
}

func TestPostsClientUpdate(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPatch, r.Method)
				require.Equal(t, "/post/42", r.URL.Path)
				require.NoError(t, r.ParseMultipartForm(1<<20))
				require.Equal(t, "old.jpg", r.FormValue("oldFileName"))
				require.Equal(t, "new title", r.FormValue("title"))
				_, ok := r.MultipartForm.File["articleImage"]
				require.False(t, ok)
				writeJSON(w, http.StatusOK, `{"data":{"id":42,"title":"new title"}}`)
			},
		),
	)
	defer server.Close()
	client := NewPostsClient(
		server.URL,
		testClientOptions(session.NewMemoryTokenStore(testAccessToken)),
	)
	post, err := client.Update(
		context.Background(),
		testPostID,
		PostUpdate{
			Title:       "new title",
			Article:     "a",
			Category:    "fish",
			OldFileName: "old.jpg",
		},
	)
	require.NoError(t, err)
	require.Equal(t, "new title", post.Title)
}

func TestPostsClientDelete(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodDelete, r.Method)
				require.Equal(t, "/post/42", r.URL.Path)
				w.WriteHeader(http.StatusNoContent)
			},
		),
	)
	defer server.Close()
	client := NewPostsClient(
		server.URL,
		testClientOptions(session.NewMemoryTokenStore(testAccessToken)),
	)
	require.NoError(t, client.Delete(context.Background(), testPostID))
}

func TestPostsClientLikeAndCancel(t *testing.T) {
	testCases := []struct {
		name         string
		expectedPath string
		call         func(PostsClient) error
	}{
		{
			name:         "like",
			expectedPath: "/post/42/like",
			call: func(c PostsClient) error {
				return c.Like(context.Background(), testPostID, testUserID)
			},
		},
		{
			name:         "cancel like",
			expectedPath: "/post/42/like/cancel",
			call: func(c PostsClient) error {
				return c.CancelLike(context.Background(), testPostID, testUserID)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			server := httptest.NewServer(
				http.HandlerFunc(
					func(w http.ResponseWriter, r *http.Request) {
						require.Equal(t, http.MethodPost, r.Method)
						require.Equal(t, testCase.expectedPath, r.URL.Path)
						requireJSONBody(t, r, `{"userId":7}`)
						writeJSON(w, http.StatusOK, `{"message":"ok"}`)
					},
				),
			)
			defer server.Close()
			client := NewPostsClient(
				server.URL,
				testClientOptions(session.NewMemoryTokenStore(testAccessToken)),
			)
			require.NoError(t, testCase.call(client))
		})
	}
}

func TestPostsClientLikeRefreshesExpiredToken(t *testing.T) {
	var calls int32
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				switch r.URL.Path {
				case "/auth/access/token/refresh":
					w.Header().Set("Authorization", "Bearer NEWTOK")
					writeJSON(w, http.StatusOK, `{}`)
				case "/post/42/like":
					if r.Header.Get("Authorization") != "Bearer NEWTOK" {
						writeJSON(w, http.StatusUnauthorized, `{"code":"EXPIRED"}`)
						return
					}
					requireJSONBody(t, r, `{"userId":7}`)
					writeJSON(w, http.StatusOK, `{"message":"ok"}`)
				default:
					t.Fatalf("unexpected path %s", r.URL.Path)
				}
			},
		),
	)
	defer server.Close()
	tokens := session.NewMemoryTokenStore("oldtoken")
	client := NewPostsClient(server.URL, testClientOptions(tokens))
	require.NoError(t, client.Like(context.Background(), testPostID, testUserID))
	require.Equal(t, int32(3), atomic.LoadInt32(&calls))
	require.Equal(t, "NEWTOK", tokens.AccessToken())
}

func TestPostsClientHit(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/post/42/hit", r.URL.Path)
				requireJSONBody(t, r, `{}`)
				w.WriteHeader(http.StatusNoContent)
			},
		),
	)
	defer server.Close()
	client := NewPostsClient(
		server.URL,
		testClientOptions(session.NewMemoryTokenStore(testAccessToken)),
	)
	require.NoError(t, client.Hit(context.Background(), testPostID))
}
