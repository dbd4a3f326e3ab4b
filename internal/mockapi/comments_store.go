package mockapi

import (
	"sort"

	"github.com/todayseafood/seafood/sdk/core"
	"github.com/todayseafood/seafood/sdk/meta"
)

// commentToSDK must be called with at least the read lock held.
func (s *Store) commentToSDK(c *comment) core.Comment {
	nickname, image := s.author(c.authorID)
	return core.Comment{
		ID:                 c.id,
		AuthorID:           c.authorID,
		AuthorNickname:     nickname,
		AuthorProfileImage: image,
		Content:            c.content,
		UpdatedAt:          meta.Timestamp{Time: c.updatedAt},
	}
}

// CreateComment adds a Comment by userID to the specified Post.
func (s *Store) CreateComment(
	principal int64,
	postID int64,
	userID int64,
	content string,
) (core.Comment, error) {
	if principal != userID {
		return core.Comment{}, &ErrAuthorization{
			Reason: "Users may only comment on their own behalf.",
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[postID]; !ok {
		return core.Comment{}, &ErrNotFound{Type: "Post", ID: postID}
	}
	s.nextCommentID++
	c := &comment{
		id:        s.nextCommentID,
		postID:    postID,
		authorID:  userID,
		content:   content,
		updatedAt: s.now(),
	}
	s.comments[c.id] = c
	return s.commentToSDK(c), nil
}

// ListComments returns the requested page of the specified Post's Comments,
// oldest first.
func (s *Store) ListComments(
	postID int64,
	page int,
	size int,
) (core.CommentList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.posts[postID]; !ok {
		return core.CommentList{}, &ErrNotFound{Type: "Post", ID: postID}
	}
	comments := []*comment{}
	for _, c := range s.comments {
		if c.postID == postID {
			comments = append(comments, c)
		}
	}
	sort.Slice(
		comments,
		func(i, j int) bool { return comments[i].id < comments[j].id },
	)
	list := core.CommentList{Items: []core.Comment{}}
	start := page * size
	if start >= len(comments) {
		return list, nil
	}
	end := start + size
	if end > len(comments) {
		end = len(comments)
	}
	for _, c := range comments[start:end] {
		list.Items = append(list.Items, s.commentToSDK(c))
	}
	list.HasNext = end < len(comments)
	return list, nil
}

// requireCommentAuthor returns an error unless principal wrote the specified
// Comment on the specified Post. The caller must hold at least the read lock.
func (s *Store) requireCommentAuthor(
	principal int64,
	postID int64,
	id int64,
) (*comment, error) {
	c, ok := s.comments[id]
	if !ok || c.postID != postID {
		return nil, &ErrNotFound{Type: "Comment", ID: id}
	}
	if c.authorID != principal {
		return nil, &ErrAuthorization{
			Reason: "Comments may only be modified by their author.",
		}
	}
	return c, nil
}

// UpdateComment replaces the content of the specified Comment.
func (s *Store) UpdateComment(
	principal int64,
	postID int64,
	id int64,
	content string,
) (core.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.requireCommentAuthor(principal, postID, id)
	if err != nil {
		return core.Comment{}, err
	}
	c.content = content
	c.updatedAt = s.now()
	return s.commentToSDK(c), nil
}

// DeleteComment removes the specified Comment.
func (s *Store) DeleteComment(principal int64, postID int64, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.requireCommentAuthor(principal, postID, id); err != nil {
		return err
	}
	delete(s.comments, id)
	return nil
}
