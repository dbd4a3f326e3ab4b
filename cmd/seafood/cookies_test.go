package main

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCookieJarRemembersAttributes(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	jar := newCookieJar()
	jar.now = func() time.Time { return now }
	u, err := url.Parse("http://localhost:8080/auth/access/token")
	require.NoError(t, err)

	jar.SetCookies(
		u,
		[]*http.Cookie{
			{
				Name:     "refreshToken",
				Value:    "r1",
				Path:     "/",
				MaxAge:   3600,
				HttpOnly: true,
				Secure:   true,
			},
			{Name: "session", Value: "s"},
		},
	)
	cookies := jar.remembered()
	require.Len(t, cookies, 2)
	require.Equal(t, "refreshToken", cookies[0].Name)
	require.Equal(t, "r1", cookies[0].Value)
	require.Equal(t, "/", cookies[0].Path)
	require.Equal(t, now.Add(time.Hour), cookies[0].Expires)
	require.Zero(t, cookies[0].MaxAge)
	require.True(t, cookies[0].HttpOnly)
	require.True(t, cookies[0].Secure)
	require.Equal(t, "session", cookies[1].Name)
	require.True(t, cookies[1].Expires.IsZero())

	// Rotation replaces, a negative Max-Age deletes
	jar.SetCookies(
		u,
		[]*http.Cookie{
			{Name: "refreshToken", Value: "r2", Path: "/", MaxAge: 60},
			{Name: "session", MaxAge: -1},
		},
	)
	cookies = jar.remembered()
	require.Len(t, cookies, 1)
	require.Equal(t, "r2", cookies[0].Value)

	// Expired cookies are forgotten
	now = now.Add(2 * time.Minute)
	require.Empty(t, jar.remembered())
}
