package localstate

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/todayseafood/seafood/sdk/authx"
)

func TestStateSetUserAndClear(t *testing.T) {
	state := &State{}
	require.False(t, state.LoggedIn())
	state.SetUser(
		authx.LoginResult{
			LoginSuccess: true,
			ID:           7,
			Nickname:     "참치왕",
			ProfileImage: "tuna.png",
			LikedPostIDs: authx.IDList{3, 9},
		},
	)
	require.True(t, state.LoggedIn())
	require.Equal(t, "3,9", state.LikedPostIDs)
	state.RecordView(3, time.Now())
	state.SetCookies([]*http.Cookie{{Name: "refreshToken", Value: "r"}})

	state.Clear()
	require.False(t, state.LoggedIn())
	require.Empty(t, state.Nickname)
	require.Empty(t, state.ProfileImage)
	require.Empty(t, state.LikedPostIDs)
	require.Empty(t, state.Cookies)
	// View history outlives the session
	require.Len(t, state.LastViewed, 1)
}

func TestStateLikedPosts(t *testing.T) {
	testCases := []struct {
		name       string
		liked      string
		assertions func(*testing.T, *State)
	}{
		{
			name:  "empty",
			liked: "",
			assertions: func(t *testing.T, state *State) {
				require.Empty(t, state.LikedPosts())
				require.False(t, state.IsLiked(1))
				state.SetLiked(1, true)
				require.Equal(t, "1", state.LikedPostIDs)
			},
		},
		{
			name:  "like is idempotent",
			liked: "1,2",
			assertions: func(t *testing.T, state *State) {
				state.SetLiked(2, true)
				require.Equal(t, "1,2", state.LikedPostIDs)
			},
		},
		{
			name:  "unlike",
			liked: "1,2,3",
			assertions: func(t *testing.T, state *State) {
				require.True(t, state.IsLiked(2))
				state.SetLiked(2, false)
				require.Equal(t, "1,3", state.LikedPostIDs)
				require.False(t, state.IsLiked(2))
			},
		},
		{
			name:  "malformed cache reads as empty",
			liked: "1,x",
			assertions: func(t *testing.T, state *State) {
				require.Empty(t, state.LikedPosts())
				state.SetLiked(4, true)
				require.Equal(t, "4", state.LikedPostIDs)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.assertions(t, &State{LikedPostIDs: testCase.liked})
		})
	}
}

func TestStateViewCooldown(t *testing.T) {
	state := &State{}
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	require.True(t, state.ViewDue(42, now))
	state.RecordView(42, now)
	require.False(t, state.ViewDue(42, now))
	require.False(t, state.ViewDue(42, now.Add(59*time.Second)))
	require.True(t, state.ViewDue(42, now.Add(ViewCooldown)))
	// Other posts are unaffected
	require.True(t, state.ViewDue(43, now))
}

func TestStateCookies(t *testing.T) {
	now := time.Now()
	state := &State{}
	state.SetCookies(
		[]*http.Cookie{
			{Name: "refreshToken", Value: "r", Path: "/", HttpOnly: true},
			{Name: "stale", Value: "s", Expires: now.Add(-time.Hour)},
		},
	)
	require.Len(t, state.Cookies, 2)
	cookies := state.HTTPCookies(now)
	require.Len(t, cookies, 1)
	require.Equal(t, "refreshToken", cookies[0].Name)
	require.Equal(t, "r", cookies[0].Value)
	require.True(t, cookies[0].HttpOnly)
}
