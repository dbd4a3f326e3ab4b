package mockapi

import (
	"io/ioutil"
	"mime/multipart"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	"golang.org/x/crypto/bcrypt"
)

type user struct {
	id           int64
	email        string
	nickname     string
	profileImage string
	passwordHash []byte
}

type post struct {
	id           int64
	authorID     int64
	title        string
	article      string
	articleImage string
	category     string
	hit          int64
	likes        map[int64]struct{}
	createdAt    time.Time
}

type comment struct {
	id        int64
	postID    int64
	authorID  int64
	content   string
	updatedAt time.Time
}

type token struct {
	userID  int64
	expires time.Time
}

// Store is the in-memory state of the mock API server. All methods are safe
// for concurrent use.
type Store struct {
	mu sync.RWMutex

	now             func() time.Time
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	bcryptCost      int

	nextUserID    int64
	nextPostID    int64
	nextCommentID int64

	users         map[int64]*user
	posts         map[int64]*post
	comments      map[int64]*comment
	accessTokens  map[string]token
	refreshTokens map[string]token
	images        map[string][]byte
}

// NewStore returns an empty Store.
func NewStore(config Config) *Store {
	cost := config.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Store{
		now:             time.Now,
		accessTokenTTL:  config.AccessTokenTTL,
		refreshTokenTTL: config.RefreshTokenTTL,
		bcryptCost:      cost,
		users:           map[int64]*user{},
		posts:           map[int64]*post{},
		comments:        map[int64]*comment{},
		accessTokens:    map[string]token{},
		refreshTokens:   map[string]token{},
		images:          map[string][]byte{},
	}
}

// issueTokens creates a new access token and refresh token for the given
// User. The caller must hold the write lock.
func (s *Store) issueTokens(userID int64) (string, string) {
	now := s.now()
	accessToken := uuid.NewV4().String()
	refreshToken := uuid.NewV4().String()
	s.accessTokens[accessToken] = token{
		userID:  userID,
		expires: now.Add(s.accessTokenTTL),
	}
	s.refreshTokens[refreshToken] = token{
		userID:  userID,
		expires: now.Add(s.refreshTokenTTL),
	}
	return accessToken, refreshToken
}

// revokeUserTokens discards every token issued to the given User. The caller
// must hold the write lock.
func (s *Store) revokeUserTokens(userID int64) {
	for k, t := range s.accessTokens {
		if t.userID == userID {
			delete(s.accessTokens, k)
		}
	}
	for k, t := range s.refreshTokens {
		if t.userID == userID {
			delete(s.refreshTokens, k)
		}
	}
}

// Login verifies the given credentials and, if they are valid, issues an
// access token and a refresh token.
func (s *Store) Login(
	email string,
	password string,
) (*user, string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)) != nil {
			break
		}
		accessToken, refreshToken := s.issueTokens(u.id)
		return u, accessToken, refreshToken, nil
	}
	return nil, "", "", &ErrBadRequest{
		Code:   "INVALID_CREDENTIALS",
		Reason: "이메일 또는 비밀번호가 올바르지 않습니다.",
	}
}

// Refresh exchanges a refresh token for a new access token. The refresh token
// is rotated: the one presented is revoked and a new one is returned.
func (s *Store) Refresh(refreshToken string) (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.refreshTokens[refreshToken]
	if !ok || s.now().After(t.expires) {
		delete(s.refreshTokens, refreshToken)
		return "", "", &ErrAuthentication{
			Code:   "INVALID_REFRESH_TOKEN",
			Reason: "Refresh token is invalid or has expired. Please log in again.",
		}
	}
	delete(s.refreshTokens, refreshToken)
	accessToken, newRefreshToken := s.issueTokens(t.userID)
	return accessToken, newRefreshToken, nil
}

// Logout revokes the given tokens. Unknown tokens are ignored.
func (s *Store) Logout(accessToken string, refreshToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.accessTokens, accessToken)
	delete(s.refreshTokens, refreshToken)
}

// Authenticate returns the identifier of the User the given access token was
// issued to.
func (s *Store) Authenticate(accessToken string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.accessTokens[accessToken]
	if !ok {
		return 0, &ErrAuthentication{
			Code:   "INVALID_ACCESS_TOKEN",
			Reason: "Access token is invalid.",
		}
	}
	if s.now().After(t.expires) {
		return 0, &ErrAuthentication{
			Code:   "ACCESS_TOKEN_EXPIRED",
			Reason: "Access token has expired.",
		}
	}
	return t.userID, nil
}

// ExpireAccessTokens immediately expires every outstanding access token.
func (s *Store) ExpireAccessTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	past := s.now().Add(-time.Second)
	for k, t := range s.accessTokens {
		t.expires = past
		s.accessTokens[k] = t
	}
}

// RevokeRefreshTokens immediately revokes every outstanding refresh token.
func (s *Store) RevokeRefreshTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshTokens = map[string]token{}
}

// saveImage stores an uploaded image under a new, unique name and returns
// that name. A nil header yields an empty name.
func (s *Store) saveImage(header *multipart.FileHeader) (string, error) {
	if header == nil {
		return "", nil
	}
	f, err := header.Open()
	if err != nil {
		return "", errors.Wrap(err, "error opening uploaded file")
	}
	defer f.Close()
	content, err := ioutil.ReadAll(f)
	if err != nil {
		return "", errors.Wrap(err, "error reading uploaded file")
	}
	name := uuid.NewV4().String() + filepath.Ext(header.Filename)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[name] = content
	return name, nil
}

// Image returns the content of a stored image.
func (s *Store) Image(name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.images[name]
	return content, ok
}

// deleteImage discards a stored image. The caller must hold the write lock.
func (s *Store) deleteImage(name string) {
	delete(s.images, name)
}
