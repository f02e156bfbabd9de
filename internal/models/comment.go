package models

import "time"

// Comment represents a threaded reply on a post. ParentID is nil for
// top-level comments; when set it references another comment on the same
// post.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	PostID    uint      `json:"post_id" gorm:"index;not null"`
	ParentID  *uint     `json:"parent_id,omitempty" gorm:"index"`
	AuthorID  uint      `json:"author_id" gorm:"index;not null"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=2000"`
	ParentID *uint  `json:"parent_id,omitempty"`
}
