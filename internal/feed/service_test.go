package feed

import (
	"context"
	"testing"
	"time"

	"github.com/pulsefeed/backend/internal/models"
	"github.com/pulsefeed/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *repositories.MemoryStore) {
	t.Helper()
	store := repositories.NewMemoryStore()
	svc := NewService(store, store, store, store)
	svc.now = func() time.Time { return scoreNow }
	return svc, store
}

func seedPost(t *testing.T, store *repositories.MemoryStore, title string, daysOld int) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:     title,
		Body:      "body",
		AuthorID:  1,
		CreatedAt: scoreNow.AddDate(0, 0, -daysOld),
	}
	require.NoError(t, store.CreatePost(context.Background(), post))
	return post
}

func tagPost(t *testing.T, store *repositories.MemoryStore, postID uint, names ...string) {
	t.Helper()
	ctx := context.Background()
	for _, name := range names {
		tag, err := store.GetOrCreateHashtag(ctx, name)
		require.NoError(t, err)
		require.NoError(t, store.AttachHashtag(ctx, postID, tag))
	}
}

func TestRecordReaction(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid type leaves no state", func(t *testing.T) {
		svc, store := newTestService(t)
		post := seedPost(t, store, "a", 0)

		err := svc.RecordReaction(ctx, post.ID, 1, "love")
		assert.ErrorIs(t, err, ErrInvalidReactionType)

		counts, err := store.CountsByPostID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ReactionCounts{}, counts)
	})

	t.Run("unknown post", func(t *testing.T) {
		svc, _ := newTestService(t)
		err := svc.RecordReaction(ctx, 42, 1, models.ReactionPlus)
		assert.ErrorIs(t, err, ErrPostNotFound)
	})

	t.Run("re-vote of the same type is idempotent", func(t *testing.T) {
		svc, store := newTestService(t)
		post := seedPost(t, store, "a", 0)

		require.NoError(t, svc.RecordReaction(ctx, post.ID, 1, models.ReactionPlus))
		require.NoError(t, svc.RecordReaction(ctx, post.ID, 1, models.ReactionPlus))

		counts, err := store.CountsByPostID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ReactionCounts{Plus: 1}, counts)
	})

	t.Run("opposite vote overwrites in place", func(t *testing.T) {
		svc, store := newTestService(t)
		post := seedPost(t, store, "a", 0)

		require.NoError(t, svc.RecordReaction(ctx, post.ID, 1, models.ReactionPlus))
		first, err := store.GetReaction(ctx, post.ID, 1)
		require.NoError(t, err)

		require.NoError(t, svc.RecordReaction(ctx, post.ID, 1, models.ReactionMinus))
		second, err := store.GetReaction(ctx, post.ID, 1)
		require.NoError(t, err)

		// Same row, new type, no duplicate
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, models.ReactionMinus, second.Type)

		counts, err := store.CountsByPostID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ReactionCounts{Minus: 1}, counts)
	})

	t.Run("votes from different users accumulate", func(t *testing.T) {
		svc, store := newTestService(t)
		post := seedPost(t, store, "a", 0)

		require.NoError(t, svc.RecordReaction(ctx, post.ID, 1, models.ReactionPlus))
		require.NoError(t, svc.RecordReaction(ctx, post.ID, 2, models.ReactionPlus))
		require.NoError(t, svc.RecordReaction(ctx, post.ID, 3, models.ReactionMinus))

		counts, err := store.CountsByPostID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ReactionCounts{Plus: 2, Minus: 1}, counts)
	})
}

func TestReactionSummary(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	post := seedPost(t, store, "a", 0)

	require.NoError(t, svc.RecordReaction(ctx, post.ID, 1, models.ReactionPlus))
	require.NoError(t, svc.RecordReaction(ctx, post.ID, 2, models.ReactionMinus))

	t.Run("caller with a vote", func(t *testing.T) {
		summary, err := svc.ReactionSummary(ctx, post.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, models.ReactionSummary{Plus: 1, Minus: 1, YourReaction: models.ReactionMinus}, summary)
	})

	t.Run("caller without a vote", func(t *testing.T) {
		summary, err := svc.ReactionSummary(ctx, post.ID, 3)
		require.NoError(t, err)
		assert.Equal(t, models.ReactionNone, summary.YourReaction)
	})

	t.Run("anonymous caller", func(t *testing.T) {
		summary, err := svc.ReactionSummary(ctx, post.ID, 0)
		require.NoError(t, err)
		assert.Equal(t, models.ReactionNone, summary.YourReaction)
	})

	t.Run("unknown post", func(t *testing.T) {
		_, err := svc.ReactionSummary(ctx, 42, 1)
		assert.ErrorIs(t, err, ErrPostNotFound)
	})
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()

	t.Run("top-level comment", func(t *testing.T) {
		svc, store := newTestService(t)
		post := seedPost(t, store, "a", 0)

		comment, err := svc.AddComment(ctx, post.ID, 1, "hello", nil)
		require.NoError(t, err)
		assert.NotZero(t, comment.ID)
		assert.Equal(t, post.ID, comment.PostID)
		assert.Nil(t, comment.ParentID)
		assert.Equal(t, scoreNow, comment.CreatedAt)
	})

	t.Run("nested reply", func(t *testing.T) {
		svc, store := newTestService(t)
		post := seedPost(t, store, "a", 0)

		parent, err := svc.AddComment(ctx, post.ID, 1, "parent", nil)
		require.NoError(t, err)

		reply, err := svc.AddComment(ctx, post.ID, 2, "reply", &parent.ID)
		require.NoError(t, err)
		require.NotNil(t, reply.ParentID)
		assert.Equal(t, parent.ID, *reply.ParentID)

		replies, err := svc.Replies(ctx, parent.ID)
		require.NoError(t, err)
		require.Len(t, replies, 1)
		assert.Equal(t, reply.ID, replies[0].ID)
	})

	t.Run("content is trimmed", func(t *testing.T) {
		svc, store := newTestService(t)
		post := seedPost(t, store, "a", 0)

		comment, err := svc.AddComment(ctx, post.ID, 1, "  hello  ", nil)
		require.NoError(t, err)
		assert.Equal(t, "hello", comment.Content)
	})

	t.Run("whitespace-only content", func(t *testing.T) {
		svc, store := newTestService(t)
		post := seedPost(t, store, "a", 0)

		_, err := svc.AddComment(ctx, post.ID, 1, "   \t\n", nil)
		assert.ErrorIs(t, err, ErrEmptyContent)

		count, err := store.CountCommentsByPostID(ctx, post.ID)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("unknown post", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.AddComment(ctx, 42, 1, "hello", nil)
		assert.ErrorIs(t, err, ErrPostNotFound)
	})

	t.Run("unknown parent", func(t *testing.T) {
		svc, store := newTestService(t)
		post := seedPost(t, store, "a", 0)

		missing := uint(999)
		_, err := svc.AddComment(ctx, post.ID, 1, "hello", &missing)
		assert.ErrorIs(t, err, ErrCommentNotFound)
	})

	t.Run("parent on a different post is rejected", func(t *testing.T) {
		svc, store := newTestService(t)
		postA := seedPost(t, store, "a", 0)
		postB := seedPost(t, store, "b", 0)

		parent, err := svc.AddComment(ctx, postA.ID, 1, "on post a", nil)
		require.NoError(t, err)

		_, err = svc.AddComment(ctx, postB.ID, 1, "cross-post reply", &parent.ID)
		assert.ErrorIs(t, err, ErrParentMismatch)

		count, err := store.CountCommentsByPostID(ctx, postB.ID)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestCommentOrdering(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	post := seedPost(t, store, "a", 0)

	// Same CreatedAt for all three (fixed clock): ties break by ID
	first, err := svc.AddComment(ctx, post.ID, 1, "first", nil)
	require.NoError(t, err)
	second, err := svc.AddComment(ctx, post.ID, 1, "second", nil)
	require.NoError(t, err)
	reply, err := svc.AddComment(ctx, post.ID, 1, "reply", &first.ID)
	require.NoError(t, err)

	topLevel, err := svc.TopLevelComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, topLevel, 2)
	assert.Equal(t, first.ID, topLevel[0].ID)
	assert.Equal(t, second.ID, topLevel[1].ID)

	replies, err := svc.Replies(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, reply.ID, replies[0].ID)
}

func TestCreatePostAttachesHashtags(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	post, err := svc.CreatePost(ctx, 1, "Loving #rust", "and #Go! #rust again")
	require.NoError(t, err)

	names := make([]string, len(post.Hashtags))
	for i, tag := range post.Hashtags {
		names[i] = tag.Name
	}
	assert.ElementsMatch(t, []string{"rust", "go"}, names)

	// Hashtag rows are shared: a second post with #go reuses the row
	other, err := svc.CreatePost(ctx, 1, "more #go", "content")
	require.NoError(t, err)
	require.Len(t, other.Hashtags, 1)

	var goID uint
	for _, tag := range post.Hashtags {
		if tag.Name == "go" {
			goID = tag.ID
		}
	}
	assert.Equal(t, goID, other.Hashtags[0].ID)
}

func TestDeletePostCascades(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	post := seedPost(t, store, "a", 0)
	keep := seedPost(t, store, "b", 0)

	parent, err := svc.AddComment(ctx, post.ID, 1, "parent", nil)
	require.NoError(t, err)
	reply, err := svc.AddComment(ctx, post.ID, 2, "reply", &parent.ID)
	require.NoError(t, err)
	deep, err := svc.AddComment(ctx, post.ID, 3, "deep reply", &reply.ID)
	require.NoError(t, err)
	kept, err := svc.AddComment(ctx, keep.ID, 1, "unrelated", nil)
	require.NoError(t, err)

	require.NoError(t, svc.RecordReaction(ctx, post.ID, 1, models.ReactionPlus))
	require.NoError(t, svc.RecordReaction(ctx, keep.ID, 1, models.ReactionMinus))

	require.NoError(t, svc.DeletePost(ctx, post.ID))

	_, err = svc.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)

	// Every comment in the subtree is gone, no orphans survive
	for _, id := range []uint{parent.ID, reply.ID, deep.ID} {
		_, err := store.GetCommentByID(ctx, id)
		assert.Error(t, err)
	}
	_, err = store.GetReaction(ctx, post.ID, 1)
	assert.Error(t, err)

	// The other post is untouched
	_, err = store.GetCommentByID(ctx, kept.ID)
	assert.NoError(t, err)
	counts, err := store.CountsByPostID(ctx, keep.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionCounts{Minus: 1}, counts)

	t.Run("deleting an unknown post", func(t *testing.T) {
		assert.ErrorIs(t, svc.DeletePost(ctx, post.ID), ErrPostNotFound)
	})
}
