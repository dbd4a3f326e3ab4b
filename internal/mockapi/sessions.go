package mockapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/todayseafood/seafood/sdk/authx"
)

// RefreshTokenCookieName is the name of the cookie that carries the refresh
// token.
const RefreshTokenCookieName = "refreshToken"

type sessionsEndpoints struct {
	*BaseEndpoints
	store        *Store
	secureCookie bool
	cookieMaxAge int
}

func (e *sessionsEndpoints) Register(router *mux.Router) {
	// Log in
	router.HandleFunc(
		"/auth/access/token",
		e.login, // No filters applied to this request
	).Methods(http.MethodPost)

	// Refresh access token
	router.HandleFunc(
		"/auth/access/token/refresh",
		e.refresh, // No filters applied to this request
	).Methods(http.MethodPost)

	// Log out
	router.HandleFunc(
		"/auth/logout",
		e.logout, // Works with an expired access token too
	).Methods(http.MethodPost)
}

func (e *sessionsEndpoints) setRefreshCookie(
	w http.ResponseWriter,
	value string,
	maxAge int,
) {
	http.SetCookie(
		w,
		&http.Cookie{
			Name:     RefreshTokenCookieName,
			Value:    value,
			Path:     "/",
			MaxAge:   maxAge,
			HttpOnly: true,
			Secure:   e.secureCookie,
			SameSite: http.SameSiteLaxMode,
		},
	)
}

func (e *sessionsEndpoints) login(w http.ResponseWriter, r *http.Request) {
	credentials := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{}
	e.ServeRequest(
		InboundRequest{
			W:                   w,
			R:                   r,
			ReqBodySchemaLoader: loginSchemaLoader,
			ReqBodyObj:          &credentials,
			EndpointLogic: func() (interface{}, error) {
				u, accessToken, refreshToken, err :=
					e.store.Login(credentials.Email, credentials.Password)
				if err != nil {
					return nil, err
				}
				e.setRefreshCookie(w, refreshToken, e.cookieMaxAge)
				w.Header().Set("Authorization", "Bearer "+accessToken)
				return authx.LoginResult{
					LoginSuccess: true,
					ID:           u.id,
					Nickname:     u.nickname,
					ProfileImage: u.profileImage,
					LikedPostIDs: e.store.LikedPostIDs(u.id),
				}, nil
			},
			SuccessCode:    http.StatusOK,
			SuccessMessage: "login success",
		},
	)
}

func (e *sessionsEndpoints) refresh(w http.ResponseWriter, r *http.Request) {
	e.ServeRequest(
		InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				cookie, err := r.Cookie(RefreshTokenCookieName)
				if err != nil {
					return nil, &ErrAuthentication{
						Code:   "MISSING_REFRESH_TOKEN",
						Reason: "Refresh token is missing. Please log in again.",
					}
				}
				accessToken, refreshToken, err := e.store.Refresh(cookie.Value)
				if err != nil {
					e.setRefreshCookie(w, "", -1)
					return nil, err
				}
				e.setRefreshCookie(w, refreshToken, e.cookieMaxAge)
				w.Header().Set("Authorization", "Bearer "+accessToken)
				return nil, nil
			},
			SuccessCode:    http.StatusOK,
			SuccessMessage: "access token refreshed",
		},
	)
}

func (e *sessionsEndpoints) logout(w http.ResponseWriter, r *http.Request) {
	e.ServeRequest(
		InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				var refreshToken string
				if cookie, err := r.Cookie(RefreshTokenCookieName); err == nil {
					refreshToken = cookie.Value
				}
				e.store.Logout(bearerToken(r), refreshToken)
				e.setRefreshCookie(w, "", -1)
				return nil, nil
			},
			SuccessCode: http.StatusNoContent,
		},
	)
}
