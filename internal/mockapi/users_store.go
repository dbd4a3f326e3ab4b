package mockapi

import (
	"mime/multipart"
	"sort"

	"github.com/pkg/errors"
	"github.com/todayseafood/seafood/sdk/authx"
	"golang.org/x/crypto/bcrypt"
)

func (u *user) toSDK() authx.User {
	return authx.User{
		ID:           u.id,
		Email:        u.email,
		Nickname:     u.nickname,
		ProfileImage: u.profileImage,
	}
}

// emailTaken and nicknameTaken must be called with at least the read lock
// held. except is a User to disregard.
func (s *Store) emailTaken(email string, except int64) bool {
	for _, u := range s.users {
		if u.id != except && u.email == email {
			return true
		}
	}
	return false
}

func (s *Store) nicknameTaken(nickname string, except int64) bool {
	for _, u := range s.users {
		if u.id != except && u.nickname == nickname {
			return true
		}
	}
	return false
}

// EmailAvailable returns true if no User is registered with the given email.
func (s *Store) EmailAvailable(email string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.emailTaken(email, 0)
}

// NicknameAvailable returns true if no User has the given nickname.
func (s *Store) NicknameAvailable(nickname string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.nicknameTaken(nickname, 0)
}

// CreateUser registers a new User.
func (s *Store) CreateUser(
	email string,
	password string,
	nickname string,
	profileImage *multipart.FileHeader,
) (authx.User, error) {
	if email == "" || password == "" || nickname == "" {
		return authx.User{}, &ErrBadRequest{
			Code:   "INVALID_BODY",
			Reason: "email, password and nickname are all required.",
		}
	}
	passwordHash, err :=
		bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return authx.User{}, errors.Wrap(err, "error hashing password")
	}
	imageName, err := s.saveImage(profileImage)
	if err != nil {
		return authx.User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emailTaken(email, 0) {
		s.deleteImage(imageName)
		return authx.User{}, &ErrConflict{
			Code:   "DUPLICATE_EMAIL",
			Reason: "이미 가입된 이메일입니다.",
		}
	}
	if s.nicknameTaken(nickname, 0) {
		s.deleteImage(imageName)
		return authx.User{}, &ErrConflict{
			Code:   "DUPLICATE_NICKNAME",
			Reason: "이미 사용 중인 닉네임입니다.",
		}
	}
	s.nextUserID++
	u := &user{
		id:           s.nextUserID,
		email:        email,
		nickname:     nickname,
		profileImage: imageName,
		passwordHash: passwordHash,
	}
	s.users[u.id] = u
	return u.toSDK(), nil
}

// GetUser returns the specified User.
func (s *Store) GetUser(id int64) (authx.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return authx.User{}, &ErrNotFound{Type: "User", ID: id}
	}
	return u.toSDK(), nil
}

// requireSelf returns an error unless principal is the User with the given
// identifier. The caller must hold at least the read lock.
func (s *Store) requireSelf(principal int64, id int64) (*user, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, &ErrNotFound{Type: "User", ID: id}
	}
	if principal != id {
		return nil, &ErrAuthorization{
			Reason: "Users may only modify their own account.",
		}
	}
	return u, nil
}

// UpdateUser changes the nickname and, optionally, the profile image of the
// specified User. oldFileName must name the User's current profile image when
// a new one is supplied.
func (s *Store) UpdateUser(
	principal int64,
	id int64,
	nickname string,
	oldFileName string,
	profileImage *multipart.FileHeader,
) (authx.User, error) {
	imageName, err := s.saveImage(profileImage)
	if err != nil {
		return authx.User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, err := s.requireSelf(principal, id)
	if err != nil {
		s.deleteImage(imageName)
		return authx.User{}, err
	}
	if nickname != "" && nickname != u.nickname {
		if s.nicknameTaken(nickname, id) {
			s.deleteImage(imageName)
			return authx.User{}, &ErrConflict{
				Code:   "DUPLICATE_NICKNAME",
				Reason: "이미 사용 중인 닉네임입니다.",
			}
		}
		u.nickname = nickname
	}
	if imageName != "" {
		if oldFileName != "" && oldFileName == u.profileImage {
			s.deleteImage(oldFileName)
		}
		u.profileImage = imageName
	}
	return u.toSDK(), nil
}

// UpdatePassword replaces the specified User's password.
func (s *Store) UpdatePassword(
	principal int64,
	id int64,
	password string,
) error {
	passwordHash, err :=
		bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return errors.Wrap(err, "error hashing password")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, err := s.requireSelf(principal, id)
	if err != nil {
		return err
	}
	u.passwordHash = passwordHash
	return nil
}

// DeleteUser removes the specified User along with their Posts, Comments,
// likes and tokens.
func (s *Store) DeleteUser(principal int64, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, err := s.requireSelf(principal, id)
	if err != nil {
		return err
	}
	for postID, p := range s.posts {
		if p.authorID == id {
			s.deletePost(postID)
			continue
		}
		delete(p.likes, id)
	}
	for commentID, c := range s.comments {
		if c.authorID == id {
			delete(s.comments, commentID)
		}
	}
	s.deleteImage(u.profileImage)
	s.revokeUserTokens(id)
	delete(s.users, id)
	return nil
}

// LikedPostIDs returns, in ascending order, the Posts the specified User has
// liked.
func (s *Store) LikedPostIDs(userID int64) authx.IDList {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := authx.IDList{}
	for _, p := range s.posts {
		if _, ok := p.likes[userID]; ok {
			ids = append(ids, p.id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
