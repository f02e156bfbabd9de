package feed

import "errors"

// Errors returned by the feed service. The presentation layer maps them to
// user-visible responses; the service itself never logs.
var (
	// ErrInvalidReactionType is returned when a reaction type is neither
	// "plus" nor "minus". No state changes.
	ErrInvalidReactionType = errors.New("invalid reaction type")

	// ErrEmptyContent is returned when a comment is empty after trimming.
	ErrEmptyContent = errors.New("comment content is empty")

	// ErrPostNotFound is returned when a referenced post does not exist.
	ErrPostNotFound = errors.New("post not found")

	// ErrCommentNotFound is returned when a referenced comment does not exist.
	ErrCommentNotFound = errors.New("comment not found")

	// ErrParentMismatch is returned when a reply references a parent comment
	// that belongs to a different post.
	ErrParentMismatch = errors.New("parent comment belongs to a different post")

	// ErrTagNotFound is returned when a hashtag name resolves to no row.
	ErrTagNotFound = errors.New("hashtag not found")
)
