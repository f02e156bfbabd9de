package repositories

import (
	"context"
	"fmt"

	"github.com/pulsefeed/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	GetAllPosts(ctx context.Context) ([]models.Post, error)
	GetPostsByHashtagID(ctx context.Context, hashtagID uint) ([]models.Post, error)
	SetImageURL(ctx context.Context, id uint, url string) error
	AttachHashtag(ctx context.Context, postID uint, tag *models.Hashtag) error
	DeletePost(ctx context.Context, id uint) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post in PostgreSQL
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetPostByID retrieves a post with its hashtags by ID from PostgreSQL
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Hashtags").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetAllPosts retrieves all posts with their hashtags, ordered by ID
func (r *PostgresPostRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).Preload("Hashtags").Order("id ASC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostsByHashtagID retrieves all posts attached to a hashtag, ordered by ID
func (r *PostgresPostRepository) GetPostsByHashtagID(ctx context.Context, hashtagID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("Hashtags").
		Joins("JOIN post_hashtags ON post_hashtags.post_id = posts.id").
		Where("post_hashtags.hashtag_id = ?", hashtagID).
		Order("posts.id ASC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// SetImageURL sets the image reference of a post once after creation
func (r *PostgresPostRepository) SetImageURL(ctx context.Context, id uint, url string) error {
	res := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Update("image_url", url)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("post %d not found", id)
	}
	return nil
}

// AttachHashtag associates a hashtag with a post via the join table
func (r *PostgresPostRepository) AttachHashtag(ctx context.Context, postID uint, tag *models.Hashtag) error {
	return r.db.WithContext(ctx).
		Model(&models.Post{ID: postID}).
		Association("Hashtags").
		Append(tag)
}

// DeletePost deletes a post together with all its comments, reactions and
// hashtag associations in a single transaction. The cascade is explicit so it
// stays auditable: comment IDs are collected first, then removed along with
// the reactions and join rows before the post itself.
func (r *PostgresPostRepository) DeletePost(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, id).Error; err != nil {
			return err
		}

		var commentIDs []uint
		if err := tx.Model(&models.Comment{}).Where("post_id = ?", id).Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Delete(&models.Comment{}, commentIDs).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("post_id = ?", id).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&post).Association("Hashtags").Clear(); err != nil {
			return err
		}

		return tx.Delete(&post).Error
	})
}
