package app

import (
	"errors"
	"strings"

	"kekambas-blog/internal/logger"
	"kekambas-blog/internal/model"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrNotPostAuthor = errors.New("you may only modify your own posts")
)

type PostStore interface {
	Create(post *model.Post) error
	GetByID(id uint) (*model.Post, error)
	ListAll() ([]model.Post, error)
	ListByUserID(userID uint) ([]model.Post, error)
	Update(post *model.Post) error
	Delete(id uint) error
}

type PostService struct {
	posts PostStore
	log   *logger.Logger
}

type CreatePostInput struct {
	UserID  uint
	Title   string
	Content string
}

type UpdatePostInput struct {
	PostID  uint
	UserID  uint
	Title   string
	Content string
}

func NewPostService(posts PostStore, log *logger.Logger) *PostService {
	return &PostService{
		posts: posts,
		log:   log,
	}
}

func (s *PostService) Create(input CreatePostInput) (*model.Post, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if input.UserID == 0 || title == "" || content == "" {
		return nil, ErrInvalidInput
	}

	post := &model.Post{
		Title:   title,
		Content: content,
		UserID:  input.UserID,
	}
	if err := s.posts.Create(post); err != nil {
		return nil, err
	}

	s.log.Infow("post created", "post_id", post.ID, "user_id", post.UserID)
	return post, nil
}

// Get returns the post for anyone; reads have no ownership gate.
func (s *PostService) Get(id uint) (*model.Post, error) {
	if id == 0 {
		return nil, ErrPostNotFound
	}
	post, err := s.posts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *PostService) ListAll() ([]model.Post, error) {
	return s.posts.ListAll()
}

func (s *PostService) ListByAuthor(userID uint) ([]model.Post, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	return s.posts.ListByUserID(userID)
}

// Update overwrites title and content. Ownership is a single stable-ID
// comparison against the post's author.
func (s *PostService) Update(input UpdatePostInput) (*model.Post, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if input.UserID == 0 || title == "" || content == "" {
		return nil, ErrInvalidInput
	}

	post, err := s.posts.GetByID(input.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.UserID != input.UserID {
		return nil, ErrNotPostAuthor
	}

	post.Title = title
	post.Content = content
	if err := s.posts.Update(post); err != nil {
		return nil, err
	}

	s.log.Infow("post updated", "post_id", post.ID, "user_id", input.UserID)
	return post, nil
}

// Delete removes the post outright; there is no soft delete.
func (s *PostService) Delete(postID, userID uint) (*model.Post, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}

	post, err := s.posts.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.UserID != userID {
		return nil, ErrNotPostAuthor
	}

	if err := s.posts.Delete(post.ID); err != nil {
		return nil, err
	}

	s.log.Infow("post deleted", "post_id", post.ID, "user_id", userID)
	return post, nil
}
