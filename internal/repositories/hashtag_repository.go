package repositories

import (
	"context"
	"errors"

	"github.com/pulsefeed/backend/internal/models"
	"gorm.io/gorm"
)

// HashtagRepository defines the interface for hashtag data operations
type HashtagRepository interface {
	GetOrCreateHashtag(ctx context.Context, name string) (*models.Hashtag, error)
	GetHashtagByName(ctx context.Context, name string) (*models.Hashtag, error)
	TopHashtags(ctx context.Context, n int) ([]models.Hashtag, error)
}

// PostgresHashtagRepository implements HashtagRepository for PostgreSQL
type PostgresHashtagRepository struct {
	db *gorm.DB
}

// NewPostgresHashtagRepository creates a new PostgresHashtagRepository
func NewPostgresHashtagRepository(db *gorm.DB) *PostgresHashtagRepository {
	return &PostgresHashtagRepository{db: db}
}

// GetOrCreateHashtag returns the hashtag with the given normalized name,
// creating it lazily the first time the name is seen
func (r *PostgresHashtagRepository) GetOrCreateHashtag(ctx context.Context, name string) (*models.Hashtag, error) {
	var tag models.Hashtag
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag = models.Hashtag{Name: name}
	if err := r.db.WithContext(ctx).Create(&tag).Error; err != nil {
		// Lost a race against a concurrent insert; the unique index on name
		// guarantees a single row, so fall back to reading it.
		var existing models.Hashtag
		if lookupErr := r.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error; lookupErr == nil {
			return &existing, nil
		}
		return nil, err
	}
	return &tag, nil
}

// GetHashtagByName retrieves a hashtag by its normalized name
func (r *PostgresHashtagRepository) GetHashtagByName(ctx context.Context, name string) (*models.Hashtag, error) {
	var tag models.Hashtag
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// TopHashtags retrieves up to n hashtags ordered by the number of distinct
// posts attached to them, descending, ties broken by hashtag ID. Hashtags
// with no attached posts are never returned because of the inner join.
func (r *PostgresHashtagRepository) TopHashtags(ctx context.Context, n int) ([]models.Hashtag, error) {
	var tags []models.Hashtag
	err := r.db.WithContext(ctx).
		Model(&models.Hashtag{}).
		Select("hashtags.*, COUNT(DISTINCT post_hashtags.post_id) AS post_count").
		Joins("JOIN post_hashtags ON post_hashtags.hashtag_id = hashtags.id").
		Group("hashtags.id").
		Order("post_count DESC, hashtags.id ASC").
		Limit(n).
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}
