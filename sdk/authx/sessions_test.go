package authx

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/todayseafood/seafood/sdk/session"
)

const (
	testEmail       = "tuna@sea.food"
	testPassword    = "hunter2!"
	testFreshToken  = "fresh-token"
	testNickname    = "참치왕"
	testUserIDValue = int64(7)
)

func TestIDListUnmarshalJSON(t *testing.T) {
	testCases := []struct {
		name    string
		json    string
		want    IDList
		wantErr bool
	}{
		{
			name: "array",
			json: `[1,2,3]`,
			want: IDList{1, 2, 3},
		},
		{
			name: "comma joined string",
			json: `"4,5, 6"`,
			want: IDList{4, 5, 6},
		},
		{
			name: "empty string",
			json: `""`,
			want: IDList{},
		},
		{
			name: "null",
			json: `null`,
		},
		{
			name:    "garbage in string",
			json:    `"1,two"`,
			wantErr: true,
		},
		{
			name:    "object",
			json:    `{}`,
			wantErr: true,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			var ids IDList
			err := json.Unmarshal([]byte(testCase.json), &ids)
			if testCase.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, testCase.want, ids)
		})
	}
}

func TestIDListString(t *testing.T) {
	require.Equal(t, "", IDList{}.String())
	require.Equal(t, "1,22,333", IDList{1, 22, 333}.String())
}

func TestNewSessionsClient(t *testing.T) {
	client := NewSessionsClient(
		testAPIAddress,
		testClientOptions(session.NewMemoryTokenStore(testAccessToken)),
	)
	require.IsType(t, &sessionsClient{}, client)
	requireBaseClient(t, client.(*sessionsClient).BaseClient)
}

func TestSessionsClientLogin(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, loginPath, r.URL.Path)
				require.Empty(t, r.Header.Get("Authorization"))
				bodyBytes, err := ioutil.ReadAll(r.Body)
				require.NoError(t, err)
				require.JSONEq(
					t,
					`{"email":"tuna@sea.food","password":"hunter2!"}`,
					string(bodyBytes),
				)
				http.SetCookie(
					w,
					&http.Cookie{Name: "refreshToken", Value: "r", HttpOnly: true},
				)
				w.Header().Set("Authorization", "Bearer "+testFreshToken)
				writeJSON(
					w,
					http.StatusOK,
					`{"message":"login success","data":{"loginSuccess":true,"id":7,`+
						`"nickname":"참치왕","profileImage":"a.png","likedPostids":"3,9"}}`,
				)
			},
		),
	)
	defer server.Close()
	tokens := session.NewMemoryTokenStore("")
	client := NewSessionsClient(server.URL, testClientOptions(tokens))
	result, err := client.Login(context.Background(), testEmail, testPassword)
	require.NoError(t, err)
	require.True(t, result.LoginSuccess)
	require.Equal(t, testUserIDValue, result.ID)
	require.Equal(t, testNickname, result.Nickname)
	require.Equal(t, "a.png", result.ProfileImage)
	require.Equal(t, IDList{3, 9}, result.LikedPostIDs)
	require.Equal(t, testFreshToken, tokens.AccessToken())
}

func TestSessionsClientLoginRejected(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				writeJSON(
					w,
					http.StatusBadRequest,
					`{"code":"INVALID_PASSWORD","message":"비밀번호가 틀렸습니다"}`,
				)
			},
		),
	)
	defer server.Close()
	tokens := session.NewMemoryTokenStore("")
	client := NewSessionsClient(server.URL, testClientOptions(tokens))
	_, err := client.Login(context.Background(), testEmail, "wrong")
	require.Error(t, err)
	require.Contains(t, err.Error(), "INVALID_PASSWORD")
	require.Empty(t, tokens.AccessToken())
}

func TestSessionsClientLogout(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, logoutPath, r.URL.Path)
				require.Equal(
					t,
					"Bearer "+testAccessToken,
					r.Header.Get("Authorization"),
				)
				w.WriteHeader(http.StatusNoContent)
			},
		),
	)
	defer server.Close()
	tokens := session.NewMemoryTokenStore(testAccessToken)
	client := NewSessionsClient(server.URL, testClientOptions(tokens))
	require.NoError(t, client.Logout(context.Background()))
	require.Empty(t, tokens.AccessToken())
}

func TestSessionsClientLogoutClearsTokenOnFailure(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusInternalServerError, `{"message":"boom"}`)
			},
		),
	)
	defer server.Close()
	tokens := session.NewMemoryTokenStore(testAccessToken)
	client := NewSessionsClient(server.URL, testClientOptions(tokens))
	require.Error(t, client.Logout(context.Background()))
	require.Empty(t, tokens.AccessToken())
}

func TestSessionsClientRefresh(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/auth/access/token/refresh", r.URL.Path)
				w.Header().Set("Authorization", "Bearer "+testFreshToken)
				writeJSON(w, http.StatusOK, `{"message":"refreshed"}`)
			},
		),
	)
	defer server.Close()
	tokens := session.NewMemoryTokenStore(testAccessToken)
	client := NewSessionsClient(server.URL, testClientOptions(tokens))
	require.NoError(t, client.Refresh(context.Background()))
	require.Equal(t, testFreshToken, tokens.AccessToken())
}
