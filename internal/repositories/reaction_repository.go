package repositories

import (
	"context"

	"github.com/pulsefeed/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionRepository defines the interface for reaction data operations
type ReactionRepository interface {
	UpsertReaction(ctx context.Context, reaction *models.Reaction) error
	GetReaction(ctx context.Context, postID, userID uint) (*models.Reaction, error)
	CountsByPostID(ctx context.Context, postID uint) (models.ReactionCounts, error)
}

// PostgresReactionRepository implements ReactionRepository for PostgreSQL
type PostgresReactionRepository struct {
	db *gorm.DB
}

// NewPostgresReactionRepository creates a new PostgresReactionRepository
func NewPostgresReactionRepository(db *gorm.DB) *PostgresReactionRepository {
	return &PostgresReactionRepository{db: db}
}

// UpsertReaction inserts a reaction or, when one already exists for the same
// (post, user) pair, overwrites its type in place. The unique index on
// (post_id, user_id) makes concurrent upserts serialize instead of inserting
// duplicates.
func (r *PostgresReactionRepository) UpsertReaction(ctx context.Context, reaction *models.Reaction) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"type": reaction.Type}),
	}).Create(reaction).Error
}

// GetReaction retrieves the reaction of a user on a post
func (r *PostgresReactionRepository) GetReaction(ctx context.Context, postID, userID uint) (*models.Reaction, error) {
	var reaction models.Reaction
	if err := r.db.WithContext(ctx).Where("post_id = ? AND user_id = ?", postID, userID).First(&reaction).Error; err != nil {
		return nil, err
	}
	return &reaction, nil
}

// CountsByPostID retrieves the up/down vote totals for a post
func (r *PostgresReactionRepository) CountsByPostID(ctx context.Context, postID uint) (models.ReactionCounts, error) {
	var counts models.ReactionCounts

	var plus int64
	if err := r.db.WithContext(ctx).Model(&models.Reaction{}).
		Where("post_id = ? AND type = ?", postID, models.ReactionPlus).
		Count(&plus).Error; err != nil {
		return counts, err
	}

	var minus int64
	if err := r.db.WithContext(ctx).Model(&models.Reaction{}).
		Where("post_id = ? AND type = ?", postID, models.ReactionMinus).
		Count(&minus).Error; err != nil {
		return counts, err
	}

	counts.Plus = int(plus)
	counts.Minus = int(minus)
	return counts, nil
}
