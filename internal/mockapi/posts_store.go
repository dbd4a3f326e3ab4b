package mockapi

import (
	"mime/multipart"
	"sort"

	"github.com/todayseafood/seafood/sdk/core"
	"github.com/todayseafood/seafood/sdk/meta"
)

// postFields are the writable fields of a Post.
type postFields struct {
	title    string
	article  string
	category string
}

func (f postFields) validate() error {
	if f.title == "" || f.article == "" {
		return &ErrBadRequest{
			Code:   "INVALID_BODY",
			Reason: "title and article are both required.",
		}
	}
	if len([]rune(f.title)) > 26 {
		return &ErrBadRequest{
			Code:   "INVALID_TITLE",
			Reason: "title may be at most 26 characters long.",
		}
	}
	return nil
}

// author returns the nickname and profile image of a Post or Comment author.
// The caller must hold at least the read lock.
func (s *Store) author(id int64) (string, string) {
	if u, ok := s.users[id]; ok {
		return u.nickname, u.profileImage
	}
	return "", ""
}

// commentCount must be called with at least the read lock held.
func (s *Store) commentCount(postID int64) int64 {
	var count int64
	for _, c := range s.comments {
		if c.postID == postID {
			count++
		}
	}
	return count
}

// toSDK must be called with at least the read lock held.
func (s *Store) postToSDK(p *post) core.Post {
	nickname, image := s.author(p.authorID)
	return core.Post{
		ID:             p.id,
		Title:          p.title,
		Article:        p.article,
		ArticleImage:   p.articleImage,
		Category:       p.category,
		AuthorID:       p.authorID,
		AuthorNickname: nickname,
		AuthorImage:    image,
		Like:           int64(len(p.likes)),
		CommentCount:   s.commentCount(p.id),
		Hit:            p.hit,
		CreatedAt:      meta.Timestamp{Time: p.createdAt},
	}
}

// ListPosts returns the requested page of Posts, newest first.
func (s *Store) ListPosts(page int, size int) core.PostList {
	s.mu.RLock()
	defer s.mu.RUnlock()
	posts := make([]*post, 0, len(s.posts))
	for _, p := range s.posts {
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].id > posts[j].id })
	list := core.PostList{Items: []core.PostSummary{}}
	start := page * size
	if start >= len(posts) {
		return list
	}
	end := start + size
	if end > len(posts) {
		end = len(posts)
	}
	for _, p := range posts[start:end] {
		full := s.postToSDK(p)
		list.Items = append(
			list.Items,
			core.PostSummary{
				ID:             full.ID,
				Title:          full.Title,
				Like:           full.Like,
				CommentCount:   full.CommentCount,
				Hit:            full.Hit,
				CreatedAt:      full.CreatedAt,
				AuthorImage:    full.AuthorImage,
				AuthorNickname: full.AuthorNickname,
			},
		)
	}
	list.HasNext = end < len(posts)
	return list
}

// CreatePost publishes a new Post on behalf of principal.
func (s *Store) CreatePost(
	principal int64,
	authorID int64,
	fields postFields,
	articleImage *multipart.FileHeader,
) (core.Post, error) {
	if principal != authorID {
		return core.Post{}, &ErrAuthorization{
			Reason: "Posts may only be published by their author.",
		}
	}
	if err := fields.validate(); err != nil {
		return core.Post{}, err
	}
	imageName, err := s.saveImage(articleImage)
	if err != nil {
		return core.Post{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextPostID++
	p := &post{
		id:           s.nextPostID,
		authorID:     authorID,
		title:        fields.title,
		article:      fields.article,
		articleImage: imageName,
		category:     fields.category,
		likes:        map[int64]struct{}{},
		createdAt:    s.now(),
	}
	s.posts[p.id] = p
	return s.postToSDK(p), nil
}

// GetPost returns the specified Post.
func (s *Store) GetPost(id int64) (core.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	if !ok {
		return core.Post{}, &ErrNotFound{Type: "Post", ID: id}
	}
	return s.postToSDK(p), nil
}

// requireAuthor returns an error unless principal wrote the specified Post.
// The caller must hold at least the read lock.
func (s *Store) requireAuthor(principal int64, id int64) (*post, error) {
	p, ok := s.posts[id]
	if !ok {
		return nil, &ErrNotFound{Type: "Post", ID: id}
	}
	if p.authorID != principal {
		return nil, &ErrAuthorization{
			Reason: "Posts may only be modified by their author.",
		}
	}
	return p, nil
}

// UpdatePost amends the specified Post.
func (s *Store) UpdatePost(
	principal int64,
	id int64,
	fields postFields,
	oldFileName string,
	articleImage *multipart.FileHeader,
) (core.Post, error) {
	if err := fields.validate(); err != nil {
		return core.Post{}, err
	}
	imageName, err := s.saveImage(articleImage)
	if err != nil {
		return core.Post{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.requireAuthor(principal, id)
	if err != nil {
		s.deleteImage(imageName)
		return core.Post{}, err
	}
	p.title = fields.title
	p.article = fields.article
	if fields.category != "" {
		p.category = fields.category
	}
	if imageName != "" {
		if oldFileName != "" && oldFileName == p.articleImage {
			s.deleteImage(oldFileName)
		}
		p.articleImage = imageName
	}
	return s.postToSDK(p), nil
}

// deletePost removes a Post and its Comments. The caller must hold the write
// lock.
func (s *Store) deletePost(id int64) {
	if p, ok := s.posts[id]; ok {
		s.deleteImage(p.articleImage)
	}
	for commentID, c := range s.comments {
		if c.postID == id {
			delete(s.comments, commentID)
		}
	}
	delete(s.posts, id)
}

// DeletePost removes the specified Post and its Comments.
func (s *Store) DeletePost(principal int64, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.requireAuthor(principal, id); err != nil {
		return err
	}
	s.deletePost(id)
	return nil
}

// SetLike records or withdraws userID's like of the specified Post and
// returns the resulting like count. Liking twice is a no-op.
func (s *Store) SetLike(
	principal int64,
	id int64,
	userID int64,
	liked bool,
) (int64, error) {
	if principal != userID {
		return 0, &ErrAuthorization{
			Reason: "Users may only like Posts on their own behalf.",
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return 0, &ErrNotFound{Type: "Post", ID: id}
	}
	if liked {
		p.likes[userID] = struct{}{}
	} else {
		delete(p.likes, userID)
	}
	return int64(len(p.likes)), nil
}

// Hit increments the view count of the specified Post and returns the new
// count.
func (s *Store) Hit(id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return 0, &ErrNotFound{Type: "Post", ID: id}
	}
	p.hit++
	return p.hit, nil
}
