package feed

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/pulsefeed/backend/internal/models"
	"github.com/pulsefeed/backend/internal/repositories"
	"gorm.io/gorm"
)

// DefaultTopTags is the size of the trending set used for the scoring bonus.
const DefaultTopTags = 5

// RankedPost is a post annotated with its popularity score for one ranking
// pass.
type RankedPost struct {
	models.Post
	Score int `json:"score"`
}

// Service is the ranking and aggregation engine. It reads the current
// persisted state through the repository interfaces and performs pure
// computation; RecordReaction, AddComment, CreatePost and DeletePost are its
// only writes. Caller identity is always an explicit argument, never ambient
// state.
type Service struct {
	posts     repositories.PostRepository
	comments  repositories.CommentRepository
	reactions repositories.ReactionRepository
	hashtags  repositories.HashtagRepository

	now func() time.Time
}

// NewService creates a Service over the given repositories. Timestamps are
// taken in UTC.
func NewService(
	posts repositories.PostRepository,
	comments repositories.CommentRepository,
	reactions repositories.ReactionRepository,
	hashtags repositories.HashtagRepository,
) *Service {
	return &Service{
		posts:     posts,
		comments:  comments,
		reactions: reactions,
		hashtags:  hashtags,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreatePost creates a post for the given author, extracts hashtags from the
// title and body, and attaches them, lazily creating hashtag rows the first
// time a name is seen. Returns the post reloaded with its hashtags.
func (s *Service) CreatePost(ctx context.Context, authorID uint, title, body string) (*models.Post, error) {
	post := &models.Post{
		Title:     title,
		Body:      body,
		AuthorID:  authorID,
		CreatedAt: s.now(),
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	for _, name := range ExtractHashtags(title + " " + body) {
		tag, err := s.hashtags.GetOrCreateHashtag(ctx, name)
		if err != nil {
			return nil, err
		}
		if err := s.posts.AttachHashtag(ctx, post.ID, tag); err != nil {
			return nil, err
		}
	}

	return s.posts.GetPostByID(ctx, post.ID)
}

// GetPost retrieves a post by ID.
func (s *Service) GetPost(ctx context.Context, postID uint) (*models.Post, error) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, orNotFound(err, ErrPostNotFound)
	}
	return post, nil
}

// SetPostImage sets a post's image reference once after creation.
func (s *Service) SetPostImage(ctx context.Context, postID uint, url string) error {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return orNotFound(err, ErrPostNotFound)
	}
	return s.posts.SetImageURL(ctx, postID, url)
}

// DeletePost removes a post and cascades to all of its comments (nested
// replies included) and reactions. Authorization is the caller's concern.
func (s *Service) DeletePost(ctx context.Context, postID uint) error {
	if err := s.posts.DeletePost(ctx, postID); err != nil {
		return orNotFound(err, ErrPostNotFound)
	}
	return nil
}

// RecordReaction records an up/down vote by a user on a post. A repeated vote
// of the same type is a no-op; a vote of the other type overwrites the stored
// reaction in place. Un-voting is not supported.
func (s *Service) RecordReaction(ctx context.Context, postID, userID uint, reactionType string) error {
	if reactionType != models.ReactionPlus && reactionType != models.ReactionMinus {
		return ErrInvalidReactionType
	}

	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return orNotFound(err, ErrPostNotFound)
	}

	existing, err := s.reactions.GetReaction(ctx, postID, userID)
	if err == nil && existing.Type == reactionType {
		return nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.reactions.UpsertReaction(ctx, &models.Reaction{
		PostID: postID,
		UserID: userID,
		Type:   reactionType,
	})
}

// ReactionSummary returns the vote totals for a post plus the caller's own
// reaction. userID 0 means anonymous and always yields "none".
func (s *Service) ReactionSummary(ctx context.Context, postID, userID uint) (models.ReactionSummary, error) {
	var summary models.ReactionSummary

	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return summary, orNotFound(err, ErrPostNotFound)
	}

	counts, err := s.reactions.CountsByPostID(ctx, postID)
	if err != nil {
		return summary, err
	}
	summary.Plus = counts.Plus
	summary.Minus = counts.Minus
	summary.YourReaction = models.ReactionNone

	if userID != 0 {
		reaction, err := s.reactions.GetReaction(ctx, postID, userID)
		if err == nil {
			summary.YourReaction = reaction.Type
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return summary, err
		}
	}
	return summary, nil
}

// AddComment creates a comment on a post, optionally nested under parentID.
// The parent must exist and belong to the same post; content must be
// non-empty after trimming. A failed call leaves the store untouched.
func (s *Service) AddComment(ctx context.Context, postID, authorID uint, content string, parentID *uint) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return nil, orNotFound(err, ErrPostNotFound)
	}

	if parentID != nil {
		parent, err := s.comments.GetCommentByID(ctx, *parentID)
		if err != nil {
			return nil, orNotFound(err, ErrCommentNotFound)
		}
		if parent.PostID != postID {
			return nil, ErrParentMismatch
		}
	}

	comment := &models.Comment{
		Content:   content,
		CreatedAt: s.now(),
		PostID:    postID,
		ParentID:  parentID,
		AuthorID:  authorID,
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// TopLevelComments returns a post's root comments, oldest first.
func (s *Service) TopLevelComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return nil, orNotFound(err, ErrPostNotFound)
	}
	return s.comments.GetTopLevelComments(ctx, postID)
}

// Replies returns the direct replies of a comment, oldest first.
func (s *Service) Replies(ctx context.Context, commentID uint) ([]models.Comment, error) {
	if _, err := s.comments.GetCommentByID(ctx, commentID); err != nil {
		return nil, orNotFound(err, ErrCommentNotFound)
	}
	return s.comments.GetReplies(ctx, commentID)
}

// TopTags returns up to n hashtags ranked by distinct-post usage. n <= 0
// falls back to the default trending set size.
func (s *Service) TopTags(ctx context.Context, n int) ([]models.Hashtag, error) {
	if n <= 0 {
		n = DefaultTopTags
	}
	return s.hashtags.TopHashtags(ctx, n)
}

// Rank orders all posts by popularity score, highest first. The trending set
// is computed once per pass so every post is scored against the same
// snapshot; equal scores preserve the store's ID order.
func (s *Service) Rank(ctx context.Context) ([]RankedPost, error) {
	posts, err := s.posts.GetAllPosts(ctx)
	if err != nil {
		return nil, err
	}
	return s.rankPosts(ctx, posts)
}

// RankByHashtag ranks only the posts attached to the given hashtag. The name
// is normalized before lookup; an unknown hashtag is a not-found condition,
// not an empty feed.
func (s *Service) RankByHashtag(ctx context.Context, name string) ([]RankedPost, error) {
	tag, err := s.hashtags.GetHashtagByName(ctx, NormalizeTag(name))
	if err != nil {
		return nil, orNotFound(err, ErrTagNotFound)
	}

	posts, err := s.posts.GetPostsByHashtagID(ctx, tag.ID)
	if err != nil {
		return nil, err
	}
	return s.rankPosts(ctx, posts)
}

func (s *Service) rankPosts(ctx context.Context, posts []models.Post) ([]RankedPost, error) {
	topTags, err := s.hashtags.TopHashtags(ctx, DefaultTopTags)
	if err != nil {
		return nil, err
	}
	now := s.now()

	ranked := make([]RankedPost, len(posts))
	for i, post := range posts {
		stats, err := s.statsFor(ctx, &post)
		if err != nil {
			return nil, err
		}
		ranked[i] = RankedPost{Post: post, Score: Score(stats, topTags, now)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked, nil
}

// statsFor copies one post's score inputs out of the store.
func (s *Service) statsFor(ctx context.Context, post *models.Post) (PostStats, error) {
	counts, err := s.reactions.CountsByPostID(ctx, post.ID)
	if err != nil {
		return PostStats{}, err
	}

	commentCount, err := s.comments.CountCommentsByPostID(ctx, post.ID)
	if err != nil {
		return PostStats{}, err
	}

	hashtagIDs := make([]uint, len(post.Hashtags))
	for i, tag := range post.Hashtags {
		hashtagIDs[i] = tag.ID
	}

	return PostStats{
		Plus:       counts.Plus,
		Minus:      counts.Minus,
		Comments:   int(commentCount),
		HashtagIDs: hashtagIDs,
		CreatedAt:  post.CreatedAt,
	}, nil
}

// orNotFound maps the store's record-not-found error to a domain sentinel and
// passes every other error through.
func orNotFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
