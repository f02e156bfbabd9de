package feed

import (
	"testing"
	"time"

	"github.com/pulsefeed/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

var scoreNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestScoreScenarios(t *testing.T) {
	topTags := []models.Hashtag{{ID: 1, Name: "go"}, {ID: 2, Name: "rust"}}

	t.Run("fresh post with trending tag", func(t *testing.T) {
		// 2*3 + (3+1) + 5*2 + 10 + 7 = 37
		stats := PostStats{
			Plus:       3,
			Minus:      1,
			Comments:   2,
			HashtagIDs: []uint{1},
			CreatedAt:  scoreNow,
		}
		assert.Equal(t, 37, Score(stats, topTags, scoreNow))
	})

	t.Run("same post ten days old loses the recency bonus", func(t *testing.T) {
		stats := PostStats{
			Plus:       3,
			Minus:      1,
			Comments:   2,
			HashtagIDs: []uint{1},
			CreatedAt:  scoreNow.AddDate(0, 0, -10),
		}
		assert.Equal(t, 30, Score(stats, topTags, scoreNow))
	})

	t.Run("no trending bonus without a top tag", func(t *testing.T) {
		stats := PostStats{
			Plus:       1,
			HashtagIDs: []uint{99},
			CreatedAt:  scoreNow.AddDate(0, 0, -30),
		}
		// 2*1 + 1
		assert.Equal(t, 3, Score(stats, topTags, scoreNow))
	})

	t.Run("deterministic for unchanged inputs", func(t *testing.T) {
		stats := PostStats{
			Plus:       2,
			Minus:      5,
			Comments:   3,
			HashtagIDs: []uint{2},
			CreatedAt:  scoreNow.AddDate(0, 0, -3),
		}
		first := Score(stats, topTags, scoreNow)
		second := Score(stats, topTags, scoreNow)
		assert.Equal(t, first, second)
	})
}

func TestRecencyBonus(t *testing.T) {
	tests := []struct {
		name      string
		createdAt time.Time
		want      int
	}{
		{"created just now", scoreNow, 7},
		{"three days old", scoreNow.AddDate(0, 0, -3), 4},
		{"exactly seven days old", scoreNow.AddDate(0, 0, -7), 0},
		{"eight days old", scoreNow.AddDate(0, 0, -8), 0},
		{"missing timestamp degrades silently", time.Time{}, 0},
		{"future timestamp is capped", scoreNow.Add(48 * time.Hour), 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, recencyBonus(tt.createdAt, scoreNow))
		})
	}
}
