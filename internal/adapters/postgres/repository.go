package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/MexicoHamburger/Copoto/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	ExistsByNickname(ctx context.Context, nickname string) (bool, error)
	Update(ctx context.Context, user *domain.User) error
}

type RefreshTokenRepository interface {
	// Replace atomically removes any existing row for token.UserID and
	// inserts the new one; concurrent logins must never leave two rows.
	Replace(ctx context.Context, token *domain.RefreshToken) error
	FindByToken(ctx context.Context, value string) (*domain.RefreshToken, error)
	// DeleteByUser reports whether a row existed.
	DeleteByUser(ctx context.Context, userID string) (bool, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	FindByID(ctx context.Context, id uint) (*domain.Post, error)
	FindAll(ctx context.Context) ([]domain.Post, error)
	FindByType(ctx context.Context, typ string) ([]domain.Post, error)
	FindByUser(ctx context.Context, userID string) ([]domain.Post, error)
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id uint) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	FindByID(ctx context.Context, id uint) (*domain.Comment, error)
	FindByPost(ctx context.Context, postID uint) ([]domain.Comment, error)
	FindByUser(ctx context.Context, userID string) ([]domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id uint) error
}

type TempPostRepository interface {
	Create(ctx context.Context, post *domain.TempPost) error
	FindByID(ctx context.Context, id uint) (*domain.TempPost, error)
	FindByUser(ctx context.Context, userID string) ([]domain.TempPost, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	// FindOldestByUser returns the user's oldest draft for cap eviction.
	FindOldestByUser(ctx context.Context, userID string) (*domain.TempPost, error)
	Delete(ctx context.Context, id uint) error
}

type userRepo struct{ db *gorm.DB }

type refreshTokenRepo struct{ db *gorm.DB }

type postRepo struct{ db *gorm.DB }

type commentRepo struct{ db *gorm.DB }

type tempPostRepo struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository               { return &userRepo{db: db} }
func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository { return &refreshTokenRepo{db: db} }
func NewPostRepository(db *gorm.DB) PostRepository               { return &postRepo{db: db} }
func NewCommentRepository(db *gorm.DB) CommentRepository         { return &commentRepo{db: db} }
func NewTempPostRepository(db *gorm.DB) TempPostRepository       { return &tempPostRepo{db: db} }

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := r.db.WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepo) ExistsByNickname(ctx context.Context, nickname string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Where("nickname = ?", nickname).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *refreshTokenRepo) Replace(ctx context.Context, token *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", token.UserID).Delete(&domain.RefreshToken{}).Error; err != nil {
			return err
		}
		return tx.Create(token).Error
	})
}

func (r *refreshTokenRepo) FindByToken(ctx context.Context, value string) (*domain.RefreshToken, error) {
	var token domain.RefreshToken
	if err := r.db.WithContext(ctx).Where("token = ?", value).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *refreshTokenRepo) DeleteByUser(ctx context.Context, userID string) (bool, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.RefreshToken{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *postRepo) Create(ctx context.Context, post *domain.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepo) FindByID(ctx context.Context, id uint) (*domain.Post, error) {
	var post domain.Post
	if err := r.db.WithContext(ctx).Where("post_id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepo) FindAll(ctx context.Context) ([]domain.Post, error) {
	var posts []domain.Post
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepo) FindByType(ctx context.Context, typ string) ([]domain.Post, error) {
	var posts []domain.Post
	if err := r.db.WithContext(ctx).Where("type = ?", typ).Order("created_at desc").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepo) FindByUser(ctx context.Context, userID string) ([]domain.Post, error) {
	var posts []domain.Post
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepo) Update(ctx context.Context, post *domain.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("post_id = ?", id).Delete(&domain.Post{}).Error
}

func (r *commentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepo) FindByID(ctx context.Context, id uint) (*domain.Comment, error) {
	var comment domain.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepo) FindByPost(ctx context.Context, postID uint) ([]domain.Comment, error) {
	var comments []domain.Comment
	if err := r.db.WithContext(ctx).Where("post_id = ?", postID).Order("created_at").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepo) FindByUser(ctx context.Context, userID string) ([]domain.Comment, error) {
	var comments []domain.Comment
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepo) Update(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *commentRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Comment{}).Error
}

func (r *tempPostRepo) Create(ctx context.Context, post *domain.TempPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *tempPostRepo) FindByID(ctx context.Context, id uint) (*domain.TempPost, error) {
	var post domain.TempPost
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *tempPostRepo) FindByUser(ctx context.Context, userID string) ([]domain.TempPost, error) {
	var posts []domain.TempPost
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *tempPostRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.TempPost{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *tempPostRepo) FindOldestByUser(ctx context.Context, userID string) (*domain.TempPost, error) {
	var post domain.TempPost
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at").First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *tempPostRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.TempPost{}).Error
}
