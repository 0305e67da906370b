// internal/relationship/service.go
// Business logic for likes, dislikes, blocks, and derived matches.

package relationship

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/heartlinkapp/heartlink-backend/internal/common/apperrors"
)

// Notifier receives relationship events. Fire-and-forget; failures are
// logged by the implementation and never affect the stored edge.
type Notifier interface {
	NotifyMatch(ctx context.Context, userA, userB int64)
	NotifyLike(ctx context.Context, senderID, receiverID int64)
}

// NopNotifier discards events
type NopNotifier struct{}

func (NopNotifier) NotifyMatch(context.Context, int64, int64) {}
func (NopNotifier) NotifyLike(context.Context, int64, int64)  {}

// Service interface
type Service interface {
	Like(ctx context.Context, senderID, receiverID int64) (*LikeResult, error)
	Dislike(ctx context.Context, senderID, receiverID int64) error
	Block(ctx context.Context, senderID, receiverID int64) error
	ListMatches(ctx context.Context, userID int64) ([]*MatchView, error)
	CheckMatch(ctx context.Context, userID, otherID int64) (bool, error)
	ListLikers(ctx context.Context, userID int64) ([]*UserSummary, error)
}

type service struct {
	repo     Repository
	detector *Detector
	notifier Notifier
}

// NewService creates a relationship service
func NewService(repo Repository, detector *Detector, notifier Notifier) Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &service{
		repo:     repo,
		detector: detector,
		notifier: notifier,
	}
}

// Like records interest from sender to receiver. A duplicate submission,
// concurrent or not, is recovered into an "already liked" outcome. When the
// edge completes a reciprocal pair the result reports the match and its
// channel key.
func (s *service) Like(ctx context.Context, senderID, receiverID int64) (*LikeResult, error) {
	if senderID == receiverID {
		return nil, apperrors.New(apperrors.KindMalformedRequest, "cannot like yourself")
	}

	blocked, err := s.repo.BlockExistsBetween(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if blocked {
		// Masked: a blocked user must not learn the block exists
		return nil, apperrors.New(apperrors.KindResourceNotFound, "user not found")
	}

	result := &LikeResult{}

	if err := s.repo.CreateLike(ctx, senderID, receiverID); err != nil {
		if !apperrors.IsKind(err, apperrors.KindDuplicateRelationship) {
			return nil, err
		}
		result.AlreadyLiked = true
	}

	matched, err := s.detector.IsMatch(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}

	likesTotal.WithLabelValues(likeOutcome(result.AlreadyLiked)).Inc()

	if matched {
		result.Matched = true
		result.ChannelID = ChannelID(senderID, receiverID)

		if !result.AlreadyLiked {
			matchesTotal.Inc()
			go s.notifier.NotifyMatch(context.WithoutCancel(ctx), senderID, receiverID)
		}
	} else if !result.AlreadyLiked {
		go s.notifier.NotifyLike(context.WithoutCancel(ctx), senderID, receiverID)
	}

	logrus.WithFields(logrus.Fields{
		"sender_id":   senderID,
		"receiver_id": receiverID,
		"matched":     matched,
		"duplicate":   result.AlreadyLiked,
	}).Debug("like recorded")

	return result, nil
}

// Dislike records a pass. Duplicates are a silent no-op.
func (s *service) Dislike(ctx context.Context, senderID, receiverID int64) error {
	if senderID == receiverID {
		return apperrors.New(apperrors.KindMalformedRequest, "cannot dislike yourself")
	}

	err := s.repo.CreateDislike(ctx, senderID, receiverID)
	if err != nil && !apperrors.IsKind(err, apperrors.KindDuplicateRelationship) {
		return err
	}

	likesTotal.WithLabelValues("disliked").Inc()
	return nil
}

// Block hides both users from each other's discovery. Duplicates are a no-op.
func (s *service) Block(ctx context.Context, senderID, receiverID int64) error {
	if senderID == receiverID {
		return apperrors.New(apperrors.KindMalformedRequest, "cannot block yourself")
	}

	err := s.repo.CreateBlock(ctx, senderID, receiverID)
	if err != nil && !apperrors.IsKind(err, apperrors.KindDuplicateRelationship) {
		return err
	}

	return nil
}

func (s *service) ListMatches(ctx context.Context, userID int64) ([]*MatchView, error) {
	return s.repo.ListMatches(ctx, userID)
}

func (s *service) CheckMatch(ctx context.Context, userID, otherID int64) (bool, error) {
	return s.detector.IsMatch(ctx, userID, otherID)
}

func (s *service) ListLikers(ctx context.Context, userID int64) ([]*UserSummary, error) {
	return s.repo.ListLikers(ctx, userID)
}

func likeOutcome(duplicate bool) string {
	if duplicate {
		return "duplicate"
	}
	return "created"
}
