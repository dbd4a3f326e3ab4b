package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/todayseafood/seafood/internal/mockapi"
	"github.com/todayseafood/seafood/sdk/authx"
	"github.com/todayseafood/seafood/sdk/core"
	"github.com/todayseafood/seafood/sdk/meta"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	testEmail    = "tuna@sea.food"
	testPassword = "Hunter2!pw"
)

type testAPI struct {
	server     *mockapi.Server
	httpServer *httptest.Server
	home       string
}

func newTestAPI(t *testing.T) *testAPI {
	config := mockapi.NewConfigWithDefaults()
	config.BcryptCost = bcrypt.MinCost
	server := mockapi.NewServer(config, nil)
	httpServer := httptest.NewServer(server.Handler())
	t.Cleanup(httpServer.Close)
	return &testAPI{
		server:     server,
		httpServer: httpServer,
		home:       t.TempDir(),
	}
}

// session starts what would be a new CLI invocation.
func (a *testAPI) session(t *testing.T) *session {
	s, err := newSession(a.home, a.httpServer.URL+"/", false, zap.NewNop())
	require.NoError(t, err)
	return s
}

// login registers a user and logs them in, persisting the session the way a
// `seafood login` invocation would.
func (a *testAPI) login(t *testing.T) authx.LoginResult {
	ctx := context.Background()
	s := a.session(t)
	_, err := s.client.Authx().Users().Create(
		ctx,
		authx.UserSignup{
			Email:    testEmail,
			Password: testPassword,
			Nickname: "참치왕",
		},
	)
	require.NoError(t, err)
	result, err := s.client.Authx().Sessions().Login(ctx, testEmail, testPassword)
	require.NoError(t, err)
	s.state.SetUser(result)
	require.NoError(t, s.save())
	return result
}

func TestNewSessionRejectsBadAddress(t *testing.T) {
	_, err := newSession(t.TempDir(), "localhost:8080", false, zap.NewNop())
	require.Error(t, err)
}

func TestSessionSurvivesAcrossInvocations(t *testing.T) {
	api := newTestAPI(t)
	login := api.login(t)

	s := api.session(t)
	require.True(t, s.state.LoggedIn())
	require.Len(t, s.state.Cookies, 1)
	require.Equal(t, mockapi.RefreshTokenCookieName, s.state.Cookies[0].Name)
	require.Equal(t, "/", s.state.Cookies[0].Path)
	require.True(t, s.state.Cookies[0].HttpOnly)
	require.True(t, s.state.Cookies[0].Expires.After(time.Now()))

	// The new process has no access token, only the refresh cookie
	require.Empty(t, s.client.BaseClient().Tokens.AccessToken())
	user, err := s.client.Authx().Users().Get(context.Background(), login.ID)
	require.NoError(t, err)
	require.Equal(t, "참치왕", user.Nickname)
	require.NotEmpty(t, s.client.BaseClient().Tokens.AccessToken())
	require.NoError(t, s.save())

	// The refresh token was rotated; the next invocation must use the new one
	s = api.session(t)
	_, err = s.client.Authx().Users().Get(context.Background(), login.ID)
	require.NoError(t, err)
}

func TestExpiredSessionClearsLocalState(t *testing.T) {
	api := newTestAPI(t)
	login := api.login(t)
	api.server.Store().RevokeRefreshTokens()

	s := api.session(t)
	s.state.RecordView(1, time.Now())
	_, err := s.client.Authx().Users().Get(context.Background(), login.ID)
	require.True(t, meta.IsSessionExpired(err))
	require.False(t, s.state.LoggedIn())
	require.NoError(t, s.save())

	s = api.session(t)
	require.False(t, s.state.LoggedIn())
	require.Empty(t, s.state.Cookies)
	require.NotEmpty(t, s.state.LastViewed)
	_, err = s.requireLogin()
	require.Error(t, err)
}

func TestSessionExpiryIsAnnouncedOnce(t *testing.T) {
	api := newTestAPI(t)
	login := api.login(t)
	ctx := context.Background()
	s := api.session(t)
	post, err := s.client.Core().Posts().Create(
		ctx,
		core.NewPost{AuthorID: login.ID, Title: "방어", Article: "제철"},
	)
	require.NoError(t, err)
	require.NoError(t, s.save())
	api.server.Store().RevokeRefreshTokens()

	s = api.session(t)
	notices := &bytes.Buffer{}
	s.notices = notices
	countView(ctx, s, post.ID)
	_, err = getPostDetail(ctx, s, post.ID)
	require.True(t, meta.IsSessionExpired(err))
	require.Equal(t, 1, strings.Count(notices.String(), sessionExpiredNotice))
	require.False(t, s.state.LoggedIn())
}

func TestPostViewsAreCountedOncePerCooldown(t *testing.T) {
	api := newTestAPI(t)
	login := api.login(t)
	ctx := context.Background()

	s := api.session(t)
	post, err := s.client.Core().Posts().Create(
		ctx,
		core.NewPost{AuthorID: login.ID, Title: "방어", Article: "제철"},
	)
	require.NoError(t, err)
	_, err = s.client.Core().Comments().Create(ctx, post.ID, login.ID, "맛있겠다")
	require.NoError(t, err)

	countView(ctx, s, post.ID)
	countView(ctx, s, post.ID)
	detail, err := getPostDetail(ctx, s, post.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), detail.Hit)
	require.Len(t, detail.Comments, 1)
	require.False(t, detail.MoreComments)
	require.False(t, detail.Liked)

	// View history is kept across invocations
	require.NoError(t, s.save())
	s = api.session(t)
	require.False(t, s.state.ViewDue(post.ID, time.Now()))
}

func TestGetPostDetailNotFound(t *testing.T) {
	api := newTestAPI(t)
	api.login(t)
	_, err := getPostDetail(context.Background(), api.session(t), 404)
	require.Error(t, err)
}

func TestPing(t *testing.T) {
	api := newTestAPI(t)
	require.NoError(
		t,
		api.session(t).client.System().Health().Check(context.Background()),
	)
}
