package models

// Hashtag represents a normalized topic label. Names are stored lowercase and
// are globally unique; rows are created lazily the first time a name is seen.
type Hashtag struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"uniqueIndex;size:64;not null"`
	Posts []Post `json:"-" gorm:"many2many:post_hashtags"`
}

// TagCount pairs a hashtag with the number of distinct posts attached to it.
type TagCount struct {
	Hashtag Hashtag `json:"hashtag"`
	Count   int     `json:"count"`
}
