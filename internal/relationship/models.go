// internal/relationship/models.go
// Directed edges between users. A "match" is never stored: it is derived
// on demand from a reciprocal pair of like edges.

package relationship

import (
	"time"
)

// LikeEdge is a directed expression of interest from sender to receiver.
// At most one edge exists per ordered pair, enforced by a unique index on
// (sender_id, receiver_id). Edges are never mutated and not deleted by any
// normal flow, since deleting one would silently un-match a pair.
type LikeEdge struct {
	ID         int64     `json:"id" db:"id"`
	SenderID   int64     `json:"sender_id" db:"sender_id"`
	ReceiverID int64     `json:"receiver_id" db:"receiver_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// DislikeEdge records negative interest. Consulted only by discovery to
// keep a passed user out of future results, never by the match detector.
type DislikeEdge struct {
	ID         int64     `json:"id" db:"id"`
	SenderID   int64     `json:"sender_id" db:"sender_id"`
	ReceiverID int64     `json:"receiver_id" db:"receiver_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// BlockEdge suppresses the target from the blocker's discovery results
// and vice versa. Independent of likes and dislikes.
type BlockEdge struct {
	ID         int64     `json:"id" db:"id"`
	SenderID   int64     `json:"sender_id" db:"sender_id"`
	ReceiverID int64     `json:"receiver_id" db:"receiver_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// UserSummary is the slice of another user shown in match and liker lists
type UserSummary struct {
	ID          int64   `json:"id" db:"id"`
	Username    string  `json:"username" db:"username"`
	DisplayName string  `json:"display_name" db:"display_name"`
	PhotoURL    *string `json:"photo_url,omitempty" db:"photo_url"`
}

// MatchView is a derived match as presented to the participant
type MatchView struct {
	UserID    int64        `json:"user_id" db:"user_id"`
	MatchedAt time.Time    `json:"matched_at" db:"matched_at"`
	ChannelID string       `json:"channel_id"`
	User      *UserSummary `json:"user,omitempty"`
}

// LikeResult is the outcome of a like submission
type LikeResult struct {
	Matched      bool   `json:"matched"`
	AlreadyLiked bool   `json:"already_liked"`
	ChannelID    string `json:"channel_id,omitempty"`
}
