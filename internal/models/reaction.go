package models

// Reaction types. A second vote by the same user on the same post overwrites
// the stored type instead of creating a new row.
const (
	ReactionPlus  = "plus"
	ReactionMinus = "minus"
	ReactionNone  = "none"
)

// Reaction represents a user's single up/down vote on a post. The composite
// unique index enforces at most one reaction per (post, user) pair.
type Reaction struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	PostID uint   `json:"post_id" gorm:"not null;uniqueIndex:idx_reaction_post_user"`
	UserID uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_reaction_post_user"`
	Type   string `json:"type" gorm:"size:10;not null"`
}

// ReactionCounts holds per-post vote totals.
type ReactionCounts struct {
	Plus  int `json:"plus"`
	Minus int `json:"minus"`
}

// ReactionSummary is the per-post view returned to a caller: vote totals plus
// the caller's own reaction ("none" for anonymous callers or no vote).
type ReactionSummary struct {
	Plus         int    `json:"plus"`
	Minus        int    `json:"minus"`
	YourReaction string `json:"your_reaction"`
}
