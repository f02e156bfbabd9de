package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/pulsefeed/backend/internal/models"
	"gorm.io/gorm"
)

// MemoryStore is an in-memory implementation of every repository interface.
// It backs the test suite and the STORAGE=memory development mode. A single
// mutex serializes writes, which gives the same one-writer-per-aggregate
// guarantee the Postgres unique index provides for reactions.
//
// Not-found lookups return gorm.ErrRecordNotFound so callers can treat both
// stores uniformly.
type MemoryStore struct {
	mu sync.Mutex

	users     map[uint]*models.User
	posts     map[uint]*models.Post
	comments  map[uint]*models.Comment
	reactions map[uint]*models.Reaction
	hashtags  map[uint]*models.Hashtag
	postTags  map[uint]map[uint]bool // post ID -> set of hashtag IDs

	nextID uint
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[uint]*models.User),
		posts:     make(map[uint]*models.Post),
		comments:  make(map[uint]*models.Comment),
		reactions: make(map[uint]*models.Reaction),
		hashtags:  make(map[uint]*models.Hashtag),
		postTags:  make(map[uint]map[uint]bool),
		nextID:    1,
	}
}

func (s *MemoryStore) allocID() uint {
	id := s.nextID
	s.nextID++
	return id
}

// --- UserRepository ---

func (s *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Login == user.Login {
			return fmt.Errorf("login %q already taken", user.Login)
		}
	}
	user.ID = s.allocID()
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *MemoryStore) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *MemoryStore) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Login == login {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *MemoryStore) UpdateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

// --- PostRepository ---

func (s *MemoryStore) CreatePost(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post.ID = s.allocID()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	stored := *post
	stored.Hashtags = nil
	s.posts[post.ID] = &stored
	s.postTags[post.ID] = make(map[uint]bool)
	return nil
}

func (s *MemoryStore) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := s.snapshotPost(post)
	return &copied, nil
}

func (s *MemoryStore) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := make([]models.Post, 0, len(s.posts))
	for _, post := range s.posts {
		posts = append(posts, s.snapshotPost(post))
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts, nil
}

func (s *MemoryStore) GetPostsByHashtagID(ctx context.Context, hashtagID uint) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var posts []models.Post
	for postID, tags := range s.postTags {
		if tags[hashtagID] {
			posts = append(posts, s.snapshotPost(s.posts[postID]))
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts, nil
}

func (s *MemoryStore) SetImageURL(ctx context.Context, id uint, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	post.ImageURL = url
	return nil
}

func (s *MemoryStore) AttachHashtag(ctx context.Context, postID uint, tag *models.Hashtag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[postID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if _, ok := s.hashtags[tag.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.postTags[postID][tag.ID] = true
	return nil
}

// DeletePost removes a post together with its comment tree, reactions and
// hashtag associations. The comment cascade is an explicit walk from the
// top-level comments down through every reply.
func (s *MemoryStore) DeletePost(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return gorm.ErrRecordNotFound
	}

	for _, comment := range s.comments {
		if comment.PostID == id && comment.ParentID == nil {
			s.deleteCommentSubtree(comment.ID)
		}
	}
	for rid, reaction := range s.reactions {
		if reaction.PostID == id {
			delete(s.reactions, rid)
		}
	}
	delete(s.postTags, id)
	delete(s.posts, id)
	return nil
}

func (s *MemoryStore) deleteCommentSubtree(id uint) {
	for _, comment := range s.comments {
		if comment.ParentID != nil && *comment.ParentID == id {
			s.deleteCommentSubtree(comment.ID)
		}
	}
	delete(s.comments, id)
}

func (s *MemoryStore) snapshotPost(post *models.Post) models.Post {
	copied := *post
	copied.Hashtags = nil
	for tagID := range s.postTags[post.ID] {
		copied.Hashtags = append(copied.Hashtags, *s.hashtags[tagID])
	}
	sort.Slice(copied.Hashtags, func(i, j int) bool { return copied.Hashtags[i].ID < copied.Hashtags[j].ID })
	return copied
}

// --- CommentRepository ---

func (s *MemoryStore) CreateComment(ctx context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment.ID = s.allocID()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}
	stored := *comment
	s.comments[comment.ID] = &stored
	return nil
}

func (s *MemoryStore) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment, ok := s.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *comment
	return &copied, nil
}

func (s *MemoryStore) GetTopLevelComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var comments []models.Comment
	for _, comment := range s.comments {
		if comment.PostID == postID && comment.ParentID == nil {
			comments = append(comments, *comment)
		}
	}
	sortComments(comments)
	return comments, nil
}

func (s *MemoryStore) GetReplies(ctx context.Context, parentID uint) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var comments []models.Comment
	for _, comment := range s.comments {
		if comment.ParentID != nil && *comment.ParentID == parentID {
			comments = append(comments, *comment)
		}
	}
	sortComments(comments)
	return comments, nil
}

func (s *MemoryStore) CountCommentsByPostID(ctx context.Context, postID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, comment := range s.comments {
		if comment.PostID == postID {
			count++
		}
	}
	return count, nil
}

func sortComments(comments []models.Comment) {
	sort.Slice(comments, func(i, j int) bool {
		if comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].ID < comments[j].ID
		}
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
}

// --- ReactionRepository ---

func (s *MemoryStore) UpsertReaction(ctx context.Context, reaction *models.Reaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.reactions {
		if existing.PostID == reaction.PostID && existing.UserID == reaction.UserID {
			existing.Type = reaction.Type
			reaction.ID = existing.ID
			return nil
		}
	}
	reaction.ID = s.allocID()
	stored := *reaction
	s.reactions[reaction.ID] = &stored
	return nil
}

func (s *MemoryStore) GetReaction(ctx context.Context, postID, userID uint) (*models.Reaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, reaction := range s.reactions {
		if reaction.PostID == postID && reaction.UserID == userID {
			copied := *reaction
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *MemoryStore) CountsByPostID(ctx context.Context, postID uint) (models.ReactionCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var counts models.ReactionCounts
	for _, reaction := range s.reactions {
		if reaction.PostID != postID {
			continue
		}
		switch reaction.Type {
		case models.ReactionPlus:
			counts.Plus++
		case models.ReactionMinus:
			counts.Minus++
		}
	}
	return counts, nil
}

// --- HashtagRepository ---

func (s *MemoryStore) GetOrCreateHashtag(ctx context.Context, name string) (*models.Hashtag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tag := range s.hashtags {
		if tag.Name == name {
			copied := *tag
			return &copied, nil
		}
	}
	tag := &models.Hashtag{ID: s.allocID(), Name: name}
	s.hashtags[tag.ID] = tag
	copied := *tag
	return &copied, nil
}

func (s *MemoryStore) GetHashtagByName(ctx context.Context, name string) (*models.Hashtag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tag := range s.hashtags {
		if tag.Name == name {
			copied := *tag
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *MemoryStore) TopHashtags(ctx context.Context, n int) ([]models.Hashtag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[uint]int)
	for _, tags := range s.postTags {
		for tagID := range tags {
			counts[tagID]++
		}
	}

	var ranked []models.TagCount
	for tagID, count := range counts {
		if count == 0 {
			continue
		}
		ranked = append(ranked, models.TagCount{Hashtag: *s.hashtags[tagID], Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count == ranked[j].Count {
			return ranked[i].Hashtag.ID < ranked[j].Hashtag.ID
		}
		return ranked[i].Count > ranked[j].Count
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	tags := make([]models.Hashtag, 0, n)
	for _, tc := range ranked[:n] {
		tags = append(tags, tc.Hashtag)
	}
	return tags, nil
}
