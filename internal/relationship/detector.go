// internal/relationship/detector.go
// Mutual-match detection. A match between A and B exists if and only if
// both directed like edges (A->B) and (B->A) are present. The answer is
// recomputed from the store on every call; no cached flag is consulted,
// so a retracted edge can never leave a stale allow behind.

package relationship

import (
	"context"
	"fmt"
)

// Detector answers mutual-match queries over the relationship store.
// It satisfies the authz.MatchChecker interface.
type Detector struct {
	repo Repository
}

// NewDetector creates a detector bound to the given repository
func NewDetector(repo Repository) *Detector {
	return &Detector{repo: repo}
}

// IsMatch reports whether userA and userB have liked each other.
// A user never matches themselves, one-way interest is not a match, and a
// store error propagates so the caller fails closed rather than allowing.
func (d *Detector) IsMatch(ctx context.Context, userA, userB int64) (bool, error) {
	if userA == userB {
		return false, nil
	}
	if userA <= 0 || userB <= 0 {
		return false, nil
	}

	edges, err := d.repo.FindLikesBetween(ctx, userA, userB)
	if err != nil {
		return false, err
	}

	// Presence of each direction is the criterion, not edge count.
	var aToB, bToA bool
	for _, edge := range edges {
		if edge.SenderID == userA && edge.ReceiverID == userB {
			aToB = true
		}
		if edge.SenderID == userB && edge.ReceiverID == userA {
			bToA = true
		}
	}

	return aToB && bToA, nil
}

// ChannelID builds the deterministic chat-channel key for a pair of users.
// The pair is sorted so both participants derive the same key. The key is
// an opaque handle for the messaging collaborator, never an authorization
// input.
func ChannelID(userA, userB int64) string {
	lo, hi := userA, userB
	if lo > hi {
		lo, hi = hi, lo
	}
	return fmt.Sprintf("match_%d_%d", lo, hi)
}

// ParseChannelID recovers the participant pair from a channel identifier.
// ok is false when the string is not a well-formed channel ID.
func ParseChannelID(channelID string) (lo, hi int64, ok bool) {
	var parsedLo, parsedHi int64
	n, err := fmt.Sscanf(channelID, "match_%d_%d", &parsedLo, &parsedHi)
	if err != nil || n != 2 || parsedLo <= 0 || parsedLo >= parsedHi {
		return 0, 0, false
	}
	return parsedLo, parsedHi, true
}
