package unit

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/MexicoHamburger/Copoto/internal/domain"
)

type mockUserRepo struct {
	users map[string]*domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[string]*domain.User{}}
}

func (r *mockUserRepo) Create(_ context.Context, user *domain.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *mockUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	var users []domain.User
	for _, u := range r.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *mockUserRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}

func (r *mockUserRepo) ExistsByNickname(_ context.Context, nickname string) (bool, error) {
	for _, u := range r.users {
		if u.Nickname == nickname {
			return true, nil
		}
	}
	return false, nil
}

func (r *mockUserRepo) Update(_ context.Context, user *domain.User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

type mockRefreshRepo struct {
	sessions map[string]domain.RefreshToken // keyed by user ID
}

func newMockRefreshRepo() *mockRefreshRepo {
	return &mockRefreshRepo{sessions: map[string]domain.RefreshToken{}}
}

func (r *mockRefreshRepo) Replace(_ context.Context, token *domain.RefreshToken) error {
	r.sessions[token.UserID] = *token
	return nil
}

func (r *mockRefreshRepo) FindByToken(_ context.Context, value string) (*domain.RefreshToken, error) {
	for _, tok := range r.sessions {
		if tok.Token == value {
			copied := tok
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockRefreshRepo) DeleteByUser(_ context.Context, userID string) (bool, error) {
	if _, ok := r.sessions[userID]; !ok {
		return false, nil
	}
	delete(r.sessions, userID)
	return true, nil
}

type mockPostRepo struct {
	posts  map[uint]*domain.Post
	nextID uint
}

func newMockPostRepo() *mockPostRepo {
	return &mockPostRepo{posts: map[uint]*domain.Post{}}
}

func (r *mockPostRepo) Create(_ context.Context, post *domain.Post) error {
	r.nextID++
	post.PostID = r.nextID
	post.CreatedAt = time.Now()
	copied := *post
	r.posts[post.PostID] = &copied
	return nil
}

func (r *mockPostRepo) FindByID(_ context.Context, id uint) (*domain.Post, error) {
	if p, ok := r.posts[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockPostRepo) FindAll(_ context.Context) ([]domain.Post, error) {
	var posts []domain.Post
	for _, p := range r.posts {
		posts = append(posts, *p)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].PostID < posts[j].PostID })
	return posts, nil
}

func (r *mockPostRepo) FindByType(_ context.Context, typ string) ([]domain.Post, error) {
	var posts []domain.Post
	for _, p := range r.posts {
		if p.Type == typ {
			posts = append(posts, *p)
		}
	}
	return posts, nil
}

func (r *mockPostRepo) FindByUser(_ context.Context, userID string) ([]domain.Post, error) {
	var posts []domain.Post
	for _, p := range r.posts {
		if p.UserID == userID {
			posts = append(posts, *p)
		}
	}
	return posts, nil
}

func (r *mockPostRepo) Update(_ context.Context, post *domain.Post) error {
	copied := *post
	r.posts[post.PostID] = &copied
	return nil
}

func (r *mockPostRepo) Delete(_ context.Context, id uint) error {
	delete(r.posts, id)
	return nil
}

type mockCommentRepo struct {
	comments map[uint]*domain.Comment
	nextID   uint
}

func newMockCommentRepo() *mockCommentRepo {
	return &mockCommentRepo{comments: map[uint]*domain.Comment{}}
}

func (r *mockCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	r.nextID++
	comment.ID = r.nextID
	comment.CreatedAt = time.Now()
	copied := *comment
	r.comments[comment.ID] = &copied
	return nil
}

func (r *mockCommentRepo) FindByID(_ context.Context, id uint) (*domain.Comment, error) {
	if c, ok := r.comments[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockCommentRepo) FindByPost(_ context.Context, postID uint) ([]domain.Comment, error) {
	var comments []domain.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			comments = append(comments, *c)
		}
	}
	return comments, nil
}

func (r *mockCommentRepo) FindByUser(_ context.Context, userID string) ([]domain.Comment, error) {
	var comments []domain.Comment
	for _, c := range r.comments {
		if c.UserID == userID {
			comments = append(comments, *c)
		}
	}
	return comments, nil
}

func (r *mockCommentRepo) Update(_ context.Context, comment *domain.Comment) error {
	copied := *comment
	r.comments[comment.ID] = &copied
	return nil
}

func (r *mockCommentRepo) Delete(_ context.Context, id uint) error {
	delete(r.comments, id)
	return nil
}

type mockTempPostRepo struct {
	drafts map[uint]*domain.TempPost
	nextID uint
}

func newMockTempPostRepo() *mockTempPostRepo {
	return &mockTempPostRepo{drafts: map[uint]*domain.TempPost{}}
}

func (r *mockTempPostRepo) Create(_ context.Context, post *domain.TempPost) error {
	r.nextID++
	post.ID = r.nextID
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	copied := *post
	r.drafts[post.ID] = &copied
	return nil
}

func (r *mockTempPostRepo) FindByID(_ context.Context, id uint) (*domain.TempPost, error) {
	if d, ok := r.drafts[id]; ok {
		copied := *d
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockTempPostRepo) FindByUser(_ context.Context, userID string) ([]domain.TempPost, error) {
	var drafts []domain.TempPost
	for _, d := range r.drafts {
		if d.UserID == userID {
			drafts = append(drafts, *d)
		}
	}
	sort.Slice(drafts, func(i, j int) bool { return drafts[i].ID < drafts[j].ID })
	return drafts, nil
}

func (r *mockTempPostRepo) CountByUser(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, d := range r.drafts {
		if d.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *mockTempPostRepo) FindOldestByUser(_ context.Context, userID string) (*domain.TempPost, error) {
	var oldest *domain.TempPost
	for _, d := range r.drafts {
		if d.UserID != userID {
			continue
		}
		if oldest == nil || d.CreatedAt.Before(oldest.CreatedAt) || (d.CreatedAt.Equal(oldest.CreatedAt) && d.ID < oldest.ID) {
			oldest = d
		}
	}
	if oldest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *oldest
	return &copied, nil
}

func (r *mockTempPostRepo) Delete(_ context.Context, id uint) error {
	delete(r.drafts, id)
	return nil
}

// stubClassifier flags texts listed in flagged and fails with err when set.
type stubClassifier struct {
	flagged map[string]bool
	err     error
	calls   int
}

func (c *stubClassifier) Classify(_ context.Context, text string) (bool, error) {
	c.calls++
	if c.err != nil {
		return false, c.err
	}
	return c.flagged[text], nil
}

type recordingPublisher struct {
	registered []string
	posts      []uint
}

func (p *recordingPublisher) UserRegistered(_ context.Context, userID, _ string) error {
	p.registered = append(p.registered, userID)
	return nil
}

func (p *recordingPublisher) PostCreated(_ context.Context, postID uint, _ string) error {
	p.posts = append(p.posts, postID)
	return nil
}
