package localstate

import (
	"net/http"
	"strconv"
	"time"

	"github.com/todayseafood/seafood/sdk/authx"
)

// ViewCooldown is the minimum interval between two view counts of the same
// Post by the same client.
const ViewCooldown = 60 * time.Second

// Cookie is the durable form of an http.Cookie.
type Cookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Path     string    `json:"path,omitempty"`
	Domain   string    `json:"domain,omitempty"`
	Expires  time.Time `json:"expires,omitempty"`
	Secure   bool      `json:"secure,omitempty"`
	HttpOnly bool      `json:"httpOnly,omitempty"`
}

// State is everything the client remembers between invocations. The access
// token is never part of it.
type State struct {
	UserID       int64  `json:"userId,omitempty"`
	Nickname     string `json:"nickname,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
	// LikedPostIDs is the comma-joined list of Posts the User has liked.
	LikedPostIDs string `json:"likedPostIds,omitempty"`
	// LastViewed maps Post identifiers to the Unix time, in milliseconds, at
	// which each was last counted as viewed.
	LastViewed map[string]int64 `json:"lastViewed,omitempty"`
	// Cookies holds the cookies, including the refresh token, that the API
	// server issued for this client.
	Cookies []Cookie `json:"cookies,omitempty"`
}

// LoggedIn returns true if a User is recorded as logged in.
func (s *State) LoggedIn() bool {
	return s.UserID != 0
}

// SetUser records the User who just logged in.
func (s *State) SetUser(result authx.LoginResult) {
	s.UserID = result.ID
	s.Nickname = result.Nickname
	s.ProfileImage = result.ProfileImage
	s.LikedPostIDs = result.LikedPostIDs.String()
}

// Clear forgets the current User and their cookies. View history survives.
func (s *State) Clear() {
	s.UserID = 0
	s.Nickname = ""
	s.ProfileImage = ""
	s.LikedPostIDs = ""
	s.Cookies = nil
}

// LikedPosts returns the Posts the current User has liked. A malformed cache
// reads as empty.
func (s *State) LikedPosts() authx.IDList {
	ids, err := authx.ParseIDList(s.LikedPostIDs)
	if err != nil {
		return authx.IDList{}
	}
	return ids
}

// IsLiked returns true if the current User has liked the specified Post.
func (s *State) IsLiked(postID int64) bool {
	for _, id := range s.LikedPosts() {
		if id == postID {
			return true
		}
	}
	return false
}

// SetLiked adds the specified Post to, or removes it from, the liked cache.
func (s *State) SetLiked(postID int64, liked bool) {
	ids := s.LikedPosts()
	kept := make(authx.IDList, 0, len(ids)+1)
	for _, id := range ids {
		if id != postID {
			kept = append(kept, id)
		}
	}
	if liked {
		kept = append(kept, postID)
	}
	s.LikedPostIDs = kept.String()
}

// ViewDue returns true if the specified Post has not been counted as viewed
// within ViewCooldown of now.
func (s *State) ViewDue(postID int64, now time.Time) bool {
	last, ok := s.LastViewed[strconv.FormatInt(postID, 10)]
	if !ok {
		return true
	}
	return now.Sub(time.Unix(0, last*int64(time.Millisecond))) >= ViewCooldown
}

// RecordView records that the specified Post was counted as viewed at now.
func (s *State) RecordView(postID int64, now time.Time) {
	if s.LastViewed == nil {
		s.LastViewed = map[string]int64{}
	}
	s.LastViewed[strconv.FormatInt(postID, 10)] =
		now.UnixNano() / int64(time.Millisecond)
}

// SetCookies replaces the remembered cookies.
func (s *State) SetCookies(cookies []*http.Cookie) {
	s.Cookies = make([]Cookie, len(cookies))
	for i, c := range cookies {
		s.Cookies[i] = Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
		}
	}
}

// HTTPCookies returns the remembered cookies that have not yet expired.
func (s *State) HTTPCookies(now time.Time) []*http.Cookie {
	cookies := make([]*http.Cookie, 0, len(s.Cookies))
	for _, c := range s.Cookies {
		if !c.Expires.IsZero() && c.Expires.Before(now) {
			continue
		}
		cookies = append(
			cookies,
			&http.Cookie{
				Name:     c.Name,
				Value:    c.Value,
				Path:     c.Path,
				Domain:   c.Domain,
				Expires:  c.Expires,
				Secure:   c.Secure,
				HttpOnly: c.HttpOnly,
			},
		)
	}
	return cookies
}
