package feed

import (
	"time"

	"github.com/pulsefeed/backend/internal/models"
)

// Scoring weights. The formula must stay stable: ranked orders are asserted
// against exact integer scores.
const (
	plusWeight     = 2  // each positive reaction
	reactionWeight = 1  // each reaction, regardless of type
	commentWeight  = 5  // each comment, nested replies included
	trendingBonus  = 10 // post carries at least one trending hashtag
	freshWindow    = 7  // days during which a post earns a recency bonus
)

// PostStats is the point-in-time snapshot of one post's score inputs. It is
// copied out of the store before scoring, so a ranking pass never observes a
// half-applied write.
type PostStats struct {
	Plus       int
	Minus      int
	Comments   int
	HashtagIDs []uint
	CreatedAt  time.Time
}

// Score computes the popularity score of a post from its snapshot and the
// trending set of the current ranking pass:
//
//	2*plus + (plus+minus) + 5*comments + 10 if any hashtag is trending
//	+ recency bonus of 7-days_old for posts at most 7 days old
//
// The trending set is supplied by the caller so every post in one pass is
// compared against the same snapshot.
func Score(stats PostStats, topTags []models.Hashtag, now time.Time) int {
	score := stats.Plus * plusWeight
	score += (stats.Plus + stats.Minus) * reactionWeight
	score += stats.Comments * commentWeight

	if hasTrendingTag(stats.HashtagIDs, topTags) {
		score += trendingBonus
	}

	score += recencyBonus(stats.CreatedAt, now)
	return score
}

func hasTrendingTag(hashtagIDs []uint, topTags []models.Hashtag) bool {
	for _, id := range hashtagIDs {
		for _, tag := range topTags {
			if tag.ID == id {
				return true
			}
		}
	}
	return false
}

// recencyBonus grants 7 points to a post created today, one point fewer per
// full day of age, and nothing after a week. A missing timestamp degrades
// silently to zero so one malformed post cannot abort a ranking pass.
func recencyBonus(createdAt, now time.Time) int {
	if createdAt.IsZero() {
		return 0
	}
	daysOld := int(now.Sub(createdAt).Hours() / 24)
	if daysOld > freshWindow {
		return 0
	}
	bonus := freshWindow - daysOld
	if bonus > freshWindow {
		// Clock skew can put created_at in the future; cap at the maximum.
		bonus = freshWindow
	}
	if bonus < 0 {
		bonus = 0
	}
	return bonus
}
