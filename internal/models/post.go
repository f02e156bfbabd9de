package models

import "time"

// Post represents a top-level content item. Comments and Reactions are
// children of the post and are removed with it; Hashtags are shared through
// the post_hashtags join table.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:200;not null"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	AuthorID  uint      `json:"author_id" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
	ImageURL  string    `json:"image_url,omitempty" gorm:"size:256"`
	Hashtags  []Hashtag `json:"hashtags,omitempty" gorm:"many2many:post_hashtags"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
	Body  string `json:"body" validate:"required,min=1"`
}
